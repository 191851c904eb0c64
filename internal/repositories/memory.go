package repositories

import (
	"context"
	"fmt"
	"sync"

	"codeweave/internal/models"
)

// In-memory fallbacks used when the store is unavailable at startup: the
// settings forms keep working for the session, nothing survives a restart.

type memoryProjectSettingsRepository struct {
	mu       sync.Mutex
	settings *models.ProjectSettings
}

func NewMemoryProjectSettingsRepository() ProjectSettingsRepository {
	return &memoryProjectSettingsRepository{}
}

func (r *memoryProjectSettingsRepository) Get(ctx context.Context) (*models.ProjectSettings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.settings == nil {
		return &models.ProjectSettings{
			ID:        1,
			Framework: models.FrameworkAuto,
			UILibrary: models.UILibraryNone,
			Database:  models.DatabaseNone,
		}, nil
	}
	copied := *r.settings
	return &copied, nil
}

func (r *memoryProjectSettingsRepository) Update(ctx context.Context, settings *models.ProjectSettings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	settings.ID = 1
	copied := *settings
	r.settings = &copied
	return nil
}

type memoryModelSettingRepository struct {
	mu       sync.Mutex
	settings map[string]models.ModelSetting
}

func NewMemoryModelSettingRepository() ModelSettingRepository {
	return &memoryModelSettingRepository{settings: make(map[string]models.ModelSetting)}
}

func (r *memoryModelSettingRepository) List() ([]models.ModelSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.ModelSetting, 0, len(r.settings))
	for _, s := range r.settings {
		out = append(out, s)
	}
	return out, nil
}

func (r *memoryModelSettingRepository) GetByKey(modelKey string) (*models.ModelSetting, error) {
	if modelKey == "" {
		return nil, fmt.Errorf("model key is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.settings[modelKey]; ok {
		return &s, nil
	}
	return nil, nil
}

func (r *memoryModelSettingRepository) Upsert(modelKey, provider string, enabled bool) (*models.ModelSetting, error) {
	if modelKey == "" {
		return nil, fmt.Errorf("model key is required")
	}
	if provider == "" {
		return nil, fmt.Errorf("provider is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	record := models.ModelSetting{ModelKey: modelKey, Provider: provider, Enabled: enabled}
	r.settings[modelKey] = record
	return &record, nil
}

func (r *memoryModelSettingRepository) SetProviderEnabled(provider string, enabled bool) error {
	if provider == "" {
		return fmt.Errorf("provider is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, s := range r.settings {
		if s.Provider == provider {
			s.Enabled = enabled
			r.settings[key] = s
		}
	}
	return nil
}
