package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codeweave/internal/models"
)

type ModelSettingRepository interface {
	List() ([]models.ModelSetting, error)
	GetByKey(modelKey string) (*models.ModelSetting, error)
	Upsert(modelKey, provider string, enabled bool) (*models.ModelSetting, error)
	SetProviderEnabled(provider string, enabled bool) error
}

type modelSettingRepository struct {
	db *gorm.DB
}

func NewModelSettingRepository(db *gorm.DB) ModelSettingRepository {
	return &modelSettingRepository{db: db}
}

func (r *modelSettingRepository) List() ([]models.ModelSetting, error) {
	var settings []models.ModelSetting
	if err := r.db.Order("provider, model_key").Find(&settings).Error; err != nil {
		return nil, readErr("list model settings", err)
	}
	return settings, nil
}

func (r *modelSettingRepository) GetByKey(modelKey string) (*models.ModelSetting, error) {
	if modelKey == "" {
		return nil, fmt.Errorf("model key is required")
	}
	var setting models.ModelSetting
	if err := r.db.Where("model_key = ?", modelKey).Take(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readErr("get model setting "+modelKey, err)
	}
	return &setting, nil
}

func (r *modelSettingRepository) Upsert(modelKey, provider string, enabled bool) (*models.ModelSetting, error) {
	if modelKey == "" {
		return nil, fmt.Errorf("model key is required")
	}
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}
	record := models.ModelSetting{
		ModelKey: modelKey,
		Provider: provider,
		Enabled:  enabled,
	}
	if err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "model_key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"enabled":    enabled,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
		}),
	}).Create(&record).Error; err != nil {
		return nil, writeErr("upsert model setting "+modelKey, err)
	}
	return &record, nil
}

func (r *modelSettingRepository) SetProviderEnabled(provider string, enabled bool) error {
	if provider == "" {
		return fmt.Errorf("provider is required")
	}
	err := r.db.Model(&models.ModelSetting{}).
		Where("provider = ?", provider).
		Update("enabled", enabled).Error
	if err != nil {
		return writeErr("set provider enabled "+provider, err)
	}
	return nil
}
