package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"codeweave/internal/models"
)

type ProjectSettingsRepository interface {
	Get(ctx context.Context) (*models.ProjectSettings, error)
	Update(ctx context.Context, settings *models.ProjectSettings) error
}

type projectSettingsRepository struct {
	db *gorm.DB
}

func NewProjectSettingsRepository(db *gorm.DB) ProjectSettingsRepository {
	return &projectSettingsRepository{db: db}
}

func (r *projectSettingsRepository) Get(ctx context.Context) (*models.ProjectSettings, error) {
	var settings models.ProjectSettings
	if err := r.db.WithContext(ctx).First(&settings, 1).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Return default settings if not found
			return &models.ProjectSettings{
				ID:        1,
				Framework: models.FrameworkAuto,
				UILibrary: models.UILibraryNone,
				Database:  models.DatabaseNone,
			}, nil
		}
		return nil, readErr("get project settings", err)
	}
	return &settings, nil
}

func (r *projectSettingsRepository) Update(ctx context.Context, settings *models.ProjectSettings) error {
	// Ensure ID is set to 1 for single-row table
	settings.ID = 1
	if err := r.db.WithContext(ctx).Save(settings).Error; err != nil {
		return writeErr("update project settings", err)
	}
	return nil
}
