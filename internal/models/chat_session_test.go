package models_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeweave/internal/models"
)

func TestChatSession_MessagesRoundTrip(t *testing.T) {
	sess := &models.ChatSession{ID: "1"}

	in := []models.Message{
		models.NewUserMessage("hello"),
		{
			ID:      "a-1",
			Role:    models.RoleAssistant,
			Content: "done",
			ToolInvocations: []models.ToolInvocation{
				{ToolCallID: "tc-1", ToolName: "write_file", Args: `{"path":"main.go"}`, Result: "ok"},
			},
		},
	}
	require.NoError(t, sess.SetMessages(in))

	out, err := sess.Messages()
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, models.RoleUser, out[0].Role)
	assert.Equal(t, "hello", out[0].Content)
	require.Len(t, out[1].ToolInvocations, 1)
	assert.Equal(t, "write_file", out[1].ToolInvocations[0].ToolName)
}

func TestChatSession_NilMessagesStoredAsEmptyArray(t *testing.T) {
	sess := &models.ChatSession{ID: "1"}
	require.NoError(t, sess.SetMessages(nil))
	assert.Equal(t, "[]", sess.MessagesJSON)

	msgs, err := sess.Messages()
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestChatSession_URLIDValue(t *testing.T) {
	sess := &models.ChatSession{ID: "1"}
	assert.Equal(t, "", sess.URLIDValue())

	slug := "my-chat"
	sess.URLID = &slug
	assert.Equal(t, "my-chat", sess.URLIDValue())
}
