package services

import (
	"context"

	"gorm.io/gorm"

	"codeweave/internal/repositories"
)

// DbServices aggregates the domain services backed by the database. A nil
// db builds the degraded container: sessions stay in memory only and the
// conversation remains usable without persistence.
type DbServices struct {
	ChatSessions    ChatSessionService
	ChatSync        ChatSyncService
	ProjectSettings ProjectSettingsService
	ModelConfigs    ModelConfigService
}

// NewDbServices constructs the service container using repositories backed by db.
func NewDbServices(db *gorm.DB) *DbServices {
	var (
		sessionRepo      repositories.ChatSessionRepository
		settingsRepo     repositories.ProjectSettingsRepository
		modelSettingRepo repositories.ModelSettingRepository
	)
	if db != nil {
		sessionRepo = repositories.NewChatSessionRepository(db)
		settingsRepo = repositories.NewProjectSettingsRepository(db)
		modelSettingRepo = repositories.NewModelSettingRepository(db)
	} else {
		settingsRepo = repositories.NewMemoryProjectSettingsRepository()
		modelSettingRepo = repositories.NewMemoryModelSettingRepository()
	}

	modelConfigs := NewModelConfigService(modelSettingRepo)
	return &DbServices{
		ChatSessions:    NewChatSessionService(sessionRepo),
		ChatSync:        NewChatSyncService(sessionRepo),
		ProjectSettings: NewProjectSettingsService(settingsRepo, modelConfigs),
		ModelConfigs:    modelConfigs,
	}
}

// StartDbServices runs every service's startup hook with the app context.
func (s *DbServices) StartDbServices(ctx context.Context) error {
	s.ChatSessions.Startup(ctx)
	s.ChatSync.Startup(ctx)
	s.ProjectSettings.Startup(ctx)
	return s.ModelConfigs.Startup(ctx)
}
