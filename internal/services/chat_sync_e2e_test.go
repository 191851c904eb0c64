package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeweave/internal/database"
	"codeweave/internal/models"
	"codeweave/internal/repositories"
	"codeweave/internal/services"
)

// New conversation against a real store: first persist allocates ids, and
// reloading by the returned slug yields the same message log.
func TestChatSync_EndToEndNewConversation(t *testing.T) {
	db, err := database.Init(database.Config{
		Path: filepath.Join(t.TempDir(), "e2e.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	repo := repositories.NewChatSessionRepository(db)

	svc := services.NewChatSyncService(repo)
	svc.Startup(context.Background())

	res, err := svc.Hydrate("")
	require.NoError(t, err)
	require.True(t, res.Ready)
	require.Empty(t, res.InitialMessages)

	require.NoError(t, svc.Persist([]models.Message{models.NewUserMessage("hello")}))
	assert.Equal(t, "1", svc.SessionID())
	assert.Equal(t, "hello", svc.URLID())

	// a second synchronizer hydrating by the slug sees the same log
	reload := services.NewChatSyncService(repo)
	reload.Startup(context.Background())
	res, err = reload.Hydrate("hello")
	require.NoError(t, err)
	require.Len(t, res.InitialMessages, 1)
	assert.Equal(t, "hello", res.InitialMessages[0].Content)
	assert.Equal(t, "1", reload.SessionID())
}
