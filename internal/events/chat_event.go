package events

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventInfo    EventType = "info"
	EventWarn    EventType = "warn"
	EventSuccess EventType = "success"
	EventError   EventType = "error"
)

// Event names consumed by the frontend.
const (
	ChatEventStream  = "event:chat:stream"
	ChatEventDone    = "event:chat:done"
	ChatEventPersist = "event:chat:persist"
	ChatEventNotice  = "event:chat:notice"
)

// ChatEvent is the backend event payload pushed to the frontend: stream
// chunks, completion notices, and persistence failure toasts.
type ChatEvent struct {
	ID         string            `json:"id"`
	Type       EventType         `json:"type"`
	Message    string            `json:"message"`
	Timestamp  time.Time         `json:"timestamp"`
	SessionKey string            `json:"sessionKey,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

type contextKey string

const sessionContextKey contextKey = "codeweave/events/session"

// WithSession returns a derived context annotated with the given session key
// so event emitters can automatically scope payloads.
func WithSession(ctx context.Context, sessionKey string) context.Context {
	if strings.TrimSpace(sessionKey) == "" {
		return ctx
	}
	return context.WithValue(ctx, sessionContextKey, sessionKey)
}

// SessionFromContext extracts the session key associated with ctx.
func SessionFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(sessionContextKey).(string); ok {
		return v
	}
	return ""
}

func CreateChatEvent(eventType EventType, message string) ChatEvent {
	return ChatEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// NewInfo creates an info ChatEvent.
func NewInfo(message string) ChatEvent {
	return CreateChatEvent(EventInfo, message)
}

// NewWarn creates a warn ChatEvent.
func NewWarn(message string) ChatEvent {
	return CreateChatEvent(EventWarn, message)
}

// NewError creates an error ChatEvent.
func NewError(message string) ChatEvent {
	return CreateChatEvent(EventError, message)
}

// NewSuccess creates a success ChatEvent.
func NewSuccess(message string) ChatEvent {
	return CreateChatEvent(EventSuccess, message)
}
