package client

import (
	"context"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codeweave/internal/models"
)

func TestNormalizeConversationHistory_AlreadyNormalized(t *testing.T) {
	history := []*schema.Message{
		schema.SystemMessage("system"),
		schema.UserMessage("hi"),
		schema.AssistantMessage("hello", nil),
	}

	out, changed := normalizeConversationHistory(history, "Hello")
	assert.False(t, changed)
	assert.Equal(t, history, out)
}

func TestNormalizeConversationHistory_DropsLeadingAssistant(t *testing.T) {
	history := []*schema.Message{
		schema.SystemMessage("system"),
		schema.AssistantMessage("orphan", nil),
		schema.UserMessage("hi"),
	}

	out, changed := normalizeConversationHistory(history, "Hello")
	assert.True(t, changed)
	require.Len(t, out, 2)
	assert.Equal(t, schema.System, out[0].Role)
	assert.Equal(t, schema.User, out[1].Role)
	assert.Equal(t, "hi", out[1].Content)
}

func TestNormalizeConversationHistory_FallbackWhenNoUserTurn(t *testing.T) {
	history := []*schema.Message{
		schema.SystemMessage("system"),
		schema.AssistantMessage("orphan", nil),
	}

	out, changed := normalizeConversationHistory(history, "Hello")
	assert.True(t, changed)
	require.Len(t, out, 2)
	assert.Equal(t, schema.System, out[0].Role)
	assert.Equal(t, schema.User, out[1].Role)
	assert.Equal(t, "Hello", out[1].Content)
}

func TestNormalizeConversationHistory_EmptyHistory(t *testing.T) {
	out, changed := normalizeConversationHistory(nil, "Hello")
	assert.True(t, changed)
	require.Len(t, out, 1)
	assert.Equal(t, schema.User, out[0].Role)
	assert.Equal(t, "Hello", out[0].Content)
}

func TestToSchemaMessages(t *testing.T) {
	msgs := toSchemaMessages("prompt", []models.Message{
		models.NewUserMessage("hi"),
		models.NewAssistantMessage("hello"),
	})

	require.Len(t, msgs, 3)
	assert.Equal(t, schema.System, msgs[0].Role)
	assert.Equal(t, "prompt", msgs[0].Content)
	assert.Equal(t, schema.User, msgs[1].Role)
	assert.Equal(t, schema.Assistant, msgs[2].Role)

	// no system prompt, no system message
	msgs = toSchemaMessages("", []models.Message{models.NewUserMessage("hi")})
	require.Len(t, msgs, 1)
	assert.Equal(t, schema.User, msgs[0].Role)
}

func TestNewLLMClient_Validation(t *testing.T) {
	ctx := context.Background()

	_, err := NewLLMClient(ctx, ProviderOpenAI, "", "gpt-4o")
	require.Error(t, err)

	_, err = NewLLMClient(ctx, ProviderOpenAI, "key", "")
	require.Error(t, err)

	_, err = NewLLMClient(ctx, "mistral", "key", "some-model")
	require.Error(t, err)
}
