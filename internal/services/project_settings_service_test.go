package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeweave/internal/models"
	"codeweave/internal/repositories"
	"codeweave/internal/services"
)

func newProjectSettingsService(t *testing.T) (services.ProjectSettingsService, services.ModelConfigService) {
	t.Helper()
	modelSvc := newModelService(t, repositories.NewMemoryModelSettingRepository())
	svc := services.NewProjectSettingsService(repositories.NewMemoryProjectSettingsRepository(), modelSvc)
	svc.Startup(context.Background())
	return svc, modelSvc
}

func TestProjectSettingsService_GetDefaults(t *testing.T) {
	svc, _ := newProjectSettingsService(t)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, models.FrameworkAuto, settings.Framework)
	assert.Equal(t, models.UILibraryNone, settings.UILibrary)
	assert.Equal(t, models.DatabaseNone, settings.Database)
	assert.Empty(t, settings.ModelKey)
}

func TestProjectSettingsService_UpdateDerivesProvider(t *testing.T) {
	svc, _ := newProjectSettingsService(t)

	updated, err := svc.Update(models.FrameworkNext, models.UILibraryShadcn, models.DatabaseSQLite, "openai/gpt-4o")
	require.NoError(t, err)
	assert.Equal(t, "openai", updated.Provider)
	assert.Equal(t, "openai/gpt-4o", updated.ModelKey)

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, models.FrameworkNext, settings.Framework)
	assert.Equal(t, models.UILibraryShadcn, settings.UILibrary)
}

func TestProjectSettingsService_UpdateRejectsUnknownValues(t *testing.T) {
	svc, _ := newProjectSettingsService(t)

	_, err := svc.Update("Rails", models.UILibraryNone, models.DatabaseNone, "")
	require.Error(t, err)

	_, err = svc.Update(models.FrameworkAuto, "Bootstrap", models.DatabaseNone, "")
	require.Error(t, err)

	_, err = svc.Update(models.FrameworkAuto, models.UILibraryNone, "Postgres", "")
	require.Error(t, err)

	_, err = svc.Update(models.FrameworkAuto, models.UILibraryNone, models.DatabaseNone, "openai/gpt-999")
	require.Error(t, err)
}

func TestProjectSettingsService_UpdateRejectsDisabledModel(t *testing.T) {
	svc, modelSvc := newProjectSettingsService(t)

	_, err := modelSvc.SetModelEnabled("openai/gpt-4o", false)
	require.NoError(t, err)

	_, err = svc.Update(models.FrameworkAuto, models.UILibraryNone, models.DatabaseNone, "openai/gpt-4o")
	require.Error(t, err)
}
