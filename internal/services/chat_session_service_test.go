package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeweave/internal/models"
	"codeweave/internal/services"
	"codeweave/internal/tests/mocks"
)

func TestChatSessionService_ListMapsHistoryItems(t *testing.T) {
	slug := "my-chat"
	repo := &mocks.ChatSessionRepositoryMock{
		GetAllFunc: func() ([]models.ChatSession, error) {
			return []models.ChatSession{
				{ID: "1", URLID: &slug, Description: "my chat", Timestamp: "2024-06-01T00:00:00Z"},
				{ID: "2"},
			}, nil
		},
	}
	svc := services.NewChatSessionService(repo)
	svc.Startup(context.Background())

	items, err := svc.List()
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "my-chat", items[0].URLID)
	assert.Equal(t, "", items[1].URLID)
}

func TestChatSessionService_GetValidation(t *testing.T) {
	svc := services.NewChatSessionService(&mocks.ChatSessionRepositoryMock{})
	svc.Startup(context.Background())

	_, err := svc.Get("  ")
	require.Error(t, err)

	err = svc.Delete("")
	require.Error(t, err)
}

func TestChatSessionService_DeleteDelegates(t *testing.T) {
	deleted := ""
	repo := &mocks.ChatSessionRepositoryMock{
		DeleteByIDFunc: func(id string) error {
			deleted = id
			return nil
		},
	}
	svc := services.NewChatSessionService(repo)
	svc.Startup(context.Background())

	require.NoError(t, svc.Delete(" 5 "))
	assert.Equal(t, "5", deleted)
}

func TestChatSessionService_NilRepo(t *testing.T) {
	svc := services.NewChatSessionService(nil)
	svc.Startup(context.Background())

	items, err := svc.List()
	require.NoError(t, err)
	assert.Empty(t, items)

	sess, err := svc.Get("1")
	require.NoError(t, err)
	assert.Nil(t, sess)

	require.NoError(t, svc.Delete("1"))
}
