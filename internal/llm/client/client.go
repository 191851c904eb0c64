package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"codeweave/internal/models"
)

const defaultMaxTokens = 8192

// Providers the client can be constructed for. These match the provider ids
// in the embedded model catalog.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// LLMClient wraps a provider chat model behind one streaming surface. The
// client is stateless with respect to conversations; callers own the message
// history and the abort context.
type LLMClient struct {
	chatModel einomodel.BaseChatModel
	provider  string
	modelName string
}

// NewLLMClient builds a chat model for the given provider and API model name.
func NewLLMClient(ctx context.Context, provider, apiKey, modelName string) (*LLMClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key is required")
	}
	if modelName == "" {
		return nil, fmt.Errorf("model name is required")
	}

	var (
		chatModel einomodel.BaseChatModel
		err       error
	)
	switch provider {
	case ProviderOpenAI:
		chatModel, err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey: apiKey,
			Model:  modelName,
		})
	case ProviderAnthropic:
		chatModel, err = claude.NewChatModel(ctx, &claude.Config{
			APIKey:    apiKey,
			Model:     modelName,
			MaxTokens: defaultMaxTokens,
		})
	case ProviderGemini:
		var genaiClient *genai.Client
		genaiClient, err = genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err == nil {
			chatModel, err = gemini.NewChatModel(ctx, &gemini.Config{
				Client: genaiClient,
				Model:  modelName,
			})
		}
	default:
		return nil, fmt.Errorf("unknown provider %q", provider)
	}
	if err != nil {
		log.Printf("Error creating %s client: %v", provider, err)
		return nil, err
	}

	return &LLMClient{chatModel: chatModel, provider: provider, modelName: modelName}, nil
}

func (c *LLMClient) Provider() string { return c.provider }
func (c *LLMClient) Model() string    { return c.modelName }

// Stream sends the conversation and streams the assistant reply, invoking
// onChunk for every content delta. It returns the full assistant text once
// the stream finishes. Cancelling ctx aborts the stream; the partial text is
// discarded and the error returned wraps ctx.Err().
func (c *LLMClient) Stream(ctx context.Context, systemPrompt string, history []models.Message, onChunk func(delta string)) (string, error) {
	msgs := toSchemaMessages(systemPrompt, history)
	msgs, _ = normalizeConversationHistory(msgs, "Hello")

	reader, err := c.chatModel.Stream(ctx, msgs)
	if err != nil {
		return "", fmt.Errorf("start stream: %w", err)
	}
	if reader == nil {
		return "", fmt.Errorf("model returned nil stream reader")
	}
	defer reader.Close()

	var b strings.Builder
	for {
		msg, recvErr := reader.Recv()
		if recvErr != nil {
			if errors.Is(recvErr, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				return "", fmt.Errorf("stream aborted: %w", ctx.Err())
			}
			return "", fmt.Errorf("stream recv: %w", recvErr)
		}
		if msg == nil || msg.Role != schema.Assistant || len(msg.Content) == 0 {
			continue
		}
		b.WriteString(msg.Content)
		if onChunk != nil {
			onChunk(msg.Content)
		}
	}

	if b.Len() == 0 {
		return "", fmt.Errorf("no assistant content produced during streaming")
	}
	return b.String(), nil
}

func toSchemaMessages(systemPrompt string, history []models.Message) []*schema.Message {
	msgs := make([]*schema.Message, 0, len(history)+1)
	if systemPrompt != "" {
		msgs = append(msgs, schema.SystemMessage(systemPrompt))
	}
	for _, m := range history {
		switch m.Role {
		case models.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(m.Content, nil))
		default:
			msgs = append(msgs, schema.UserMessage(m.Content))
		}
	}
	return msgs
}

// normalizeConversationHistory drops leading assistant turns so the first
// non-system message is always from the user, which some providers require.
// When nothing usable remains, a fallback user message is inserted. The
// returned bool reports whether the history was altered.
func normalizeConversationHistory(history []*schema.Message, fallback string) ([]*schema.Message, bool) {
	out := make([]*schema.Message, 0, len(history))
	changed := false

	i := 0
	for ; i < len(history); i++ {
		if history[i].Role == schema.System {
			out = append(out, history[i])
			continue
		}
		break
	}
	for ; i < len(history); i++ {
		if history[i].Role != schema.User {
			changed = true
			continue
		}
		break
	}
	if i == len(history) {
		out = append(out, schema.UserMessage(fallback))
		return out, true
	}
	out = append(out, history[i:]...)
	if !changed && len(out) == len(history) {
		// untouched, hand back the original slice
		return history, false
	}
	return out, true
}
