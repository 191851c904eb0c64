package database_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeweave/internal/database"
	"codeweave/internal/models"
	"codeweave/internal/repositories"
)

func TestInit_UnopenablePathIsStoreUnavailable(t *testing.T) {
	// parent directory does not exist, so SQLite cannot create the file
	_, err := database.Init(database.Config{
		Path: filepath.Join(t.TempDir(), "missing", "chat.db"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, database.ErrStoreUnavailable)
	assert.ErrorIs(t, err, repositories.ErrStoreUnavailable)
}

func TestInit_OpensAndMigrates(t *testing.T) {
	db, err := database.Init(database.Config{
		Path: filepath.Join(t.TempDir(), "chat.db"),
	})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.ChatSession{}))
	assert.True(t, db.Migrator().HasTable(&models.ProjectSettings{}))
	assert.True(t, db.Migrator().HasTable(&models.ModelSetting{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())
}
