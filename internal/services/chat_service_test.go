package services_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeweave/internal/events"
	"codeweave/internal/repositories"
	"codeweave/internal/services"
)

func captureEvents(t *testing.T) map[string][]events.ChatEvent {
	t.Helper()
	captured := make(map[string][]events.ChatEvent)
	events.SetCustomEmitter(func(ctx context.Context, name string, evt events.ChatEvent) {
		captured[name] = append(captured[name], evt)
	})
	t.Cleanup(func() { events.SetCustomEmitter(nil) })
	return captured
}

func newChatService(t *testing.T, workspace *services.WorkspaceService) *services.ChatService {
	t.Helper()
	modelSvc := newModelService(t, repositories.NewMemoryModelSettingRepository())
	settingsSvc := services.NewProjectSettingsService(repositories.NewMemoryProjectSettingsRepository(), modelSvc)
	settingsSvc.Startup(context.Background())

	syncSvc := services.NewChatSyncService(nil)
	syncSvc.Startup(context.Background())

	chat := services.NewChatService(syncSvc, workspace, services.NewKeyringService(), modelSvc, settingsSvc)
	require.NoError(t, chat.Startup(context.Background()))
	return chat
}

func TestChatService_WorkspaceFailureIsNoticeNotPersist(t *testing.T) {
	workspace, dir := newTestWorkspace(t)
	require.NoError(t, os.RemoveAll(dir)) // checkout vanishes under the service

	captured := captureEvents(t)
	chat := newChatService(t, workspace)

	// no model is selected, so Send fails after the workspace step
	require.Error(t, chat.Send("hello"))

	require.NotEmpty(t, captured[events.ChatEventNotice])
	assert.Contains(t, captured[events.ChatEventNotice][0].Message, "file modifications")
	assert.Equal(t, events.EventWarn, captured[events.ChatEventNotice][0].Type)
	assert.Empty(t, captured[events.ChatEventPersist])
}

func TestChatService_SendRejectsEmptyInput(t *testing.T) {
	chat := newChatService(t, services.NewWorkspaceService())
	require.Error(t, chat.Send("   "))
}
