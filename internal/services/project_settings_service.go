package services

import (
	"context"
	"errors"
	"fmt"

	"codeweave/internal/models"
	"codeweave/internal/repositories"
)

var validFrameworks = []string{
	models.FrameworkAuto, models.FrameworkNext, models.FrameworkReact,
	models.FrameworkVue, models.FrameworkPy,
}

var validUILibraries = []string{
	models.UILibraryNone, models.UILibraryShadcn,
	models.UILibraryNextUI, models.UILibraryFlowbite,
}

var validDatabases = []string{
	models.DatabaseNone, models.DatabaseSQLite, models.DatabaseSupabase,
	models.DatabaseFirebase, models.DatabaseMongoDB,
}

// ProjectSettingsService owns the single-row project configuration the
// settings form binds to: framework, UI library, database, and the selected
// LLM provider/model.
type ProjectSettingsService interface {
	Startup(ctx context.Context)
	Get() (*models.ProjectSettings, error)
	Update(framework, uiLibrary, database, modelKey string) (*models.ProjectSettings, error)
}

type projectSettingsService struct {
	settings     repositories.ProjectSettingsRepository
	modelConfigs ModelConfigService
	ctx          context.Context
}

func NewProjectSettingsService(settings repositories.ProjectSettingsRepository, modelConfigs ModelConfigService) ProjectSettingsService {
	return &projectSettingsService{settings: settings, modelConfigs: modelConfigs}
}

func (s *projectSettingsService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *projectSettingsService) Get() (*models.ProjectSettings, error) {
	return s.settings.Get(context.Background())
}

func (s *projectSettingsService) Update(framework, uiLibrary, database, modelKey string) (*models.ProjectSettings, error) {
	if !contains(validFrameworks, framework) {
		return nil, fmt.Errorf("unknown framework %q", framework)
	}
	if !contains(validUILibraries, uiLibrary) {
		return nil, fmt.Errorf("unknown UI library %q", uiLibrary)
	}
	if !contains(validDatabases, database) {
		return nil, fmt.Errorf("unknown database %q", database)
	}

	var provider string
	if modelKey != "" {
		mdl, err := s.modelConfigs.GetModel(modelKey)
		if err != nil {
			return nil, err
		}
		if !mdl.Enabled {
			return nil, errors.New("selected model is disabled")
		}
		provider = mdl.ProviderID
	}

	current, err := s.settings.Get(context.Background())
	if err != nil {
		return nil, err
	}

	current.Framework = framework
	current.UILibrary = uiLibrary
	current.Database = database
	current.Provider = provider
	current.ModelKey = modelKey

	if err := s.settings.Update(context.Background(), current); err != nil {
		return nil, err
	}

	return current, nil
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
