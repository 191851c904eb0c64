package models

import "github.com/google/uuid"

// Message roles mirror the wire format of the streaming chat transport.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ToolInvocation captures a tool call recorded on an assistant message.
// It is stored as opaque JSON; the persistence layer never inspects it.
type ToolInvocation struct {
	ToolCallID string `json:"toolCallId"`
	ToolName   string `json:"toolName"`
	Args       any    `json:"args,omitempty"`
	Result     any    `json:"result,omitempty"`
}

// Message is one conversation turn. Content is plain text; file or shell
// modification markup is pre-serialized into Content before the message is
// appended, so persistence stays content-agnostic.
type Message struct {
	ID              string           `json:"id"`
	Role            string           `json:"role"`
	Content         string           `json:"content"`
	ToolInvocations []ToolInvocation `json:"toolInvocations,omitempty"`
}

func NewUserMessage(content string) Message {
	return Message{ID: uuid.NewString(), Role: RoleUser, Content: content}
}

func NewAssistantMessage(content string) Message {
	return Message{ID: uuid.NewString(), Role: RoleAssistant, Content: content}
}
