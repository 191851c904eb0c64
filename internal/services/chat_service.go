package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeweave/internal/events"
	"codeweave/internal/llm/client"
	"codeweave/internal/models"
	"codeweave/internal/uilibrary"
)

// ChatService drives the active conversation: it owns the in-memory message
// buffer (the source of truth for the rendered session), streams assistant
// replies, feeds workspace modifications into outgoing user turns, and
// triggers persistence through the synchronizer after every accepted turn.
// Persistence failures surface as toast events and never disturb the
// rendered conversation.
type ChatService struct {
	ctx             context.Context
	sync            ChatSyncService
	workspace       *WorkspaceService
	keyring         *KeyringService
	modelConfigs    ModelConfigService
	projectSettings ProjectSettingsService

	mu        sync.Mutex
	messages  []models.Message
	streaming bool
	abort     context.CancelFunc

	llm         *client.LLMClient
	llmModelKey string
}

func NewChatService(syncSvc ChatSyncService, workspace *WorkspaceService, keyring *KeyringService, modelConfigs ModelConfigService, projectSettings ProjectSettingsService) *ChatService {
	return &ChatService{
		sync:            syncSvc,
		workspace:       workspace,
		keyring:         keyring,
		modelConfigs:    modelConfigs,
		projectSettings: projectSettings,
	}
}

func (s *ChatService) Startup(ctx context.Context) error {
	s.ctx = ctx
	if s.sync == nil {
		return fmt.Errorf("sync service not configured")
	}
	if s.workspace == nil {
		return fmt.Errorf("workspace service not configured")
	}
	if s.keyring == nil {
		return fmt.Errorf("keyring service not configured")
	}
	if s.modelConfigs == nil {
		return fmt.Errorf("model configuration service not configured")
	}
	if s.projectSettings == nil {
		return fmt.Errorf("project settings service not configured")
	}
	return nil
}

// Hydrate loads the routed session into the buffer at mount.
func (s *ChatService) Hydrate(routeID string) (*HydrationResult, error) {
	res, err := s.sync.Hydrate(routeID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.messages = append([]models.Message(nil), res.InitialMessages...)
	s.mu.Unlock()
	return res, nil
}

// Messages returns a copy of the buffer for rendering.
func (s *ChatService) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Message(nil), s.messages...)
}

func (s *ChatService) IsStreaming() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.streaming
}

// SessionURLID exposes the slug assigned on first persist so the frontend
// can update the route.
func (s *ChatService) SessionURLID() string {
	return s.sync.URLID()
}

// Send appends the user turn (with any pending workspace modifications
// serialized in front of the input), streams the assistant reply, and
// persists after each accepted turn. Only fully received replies are
// appended; an aborted stream leaves the buffer exactly as it was.
func (s *ChatService) Send(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return fmt.Errorf("message is empty")
	}

	s.mu.Lock()
	if s.streaming {
		s.mu.Unlock()
		return fmt.Errorf("a response is already streaming")
	}
	s.streaming = true
	streamCtx, cancel := context.WithCancel(s.ctx)
	s.abort = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.streaming = false
		s.abort = nil
		s.mu.Unlock()
	}()

	content := input
	markup, err := s.workspace.ModificationsMarkup()
	if err != nil {
		events.Emit(s.ctx, events.ChatEventNotice, events.NewWarn("failed to collect file modifications: "+err.Error()))
	} else if markup != "" {
		content = markup + "\n\n" + input
		if err := s.workspace.ResetModifications(); err != nil {
			events.Emit(s.ctx, events.ChatEventNotice, events.NewWarn("failed to reset file modifications: "+err.Error()))
		}
	}

	s.mu.Lock()
	s.messages = append(s.messages, models.NewUserMessage(content))
	history := append([]models.Message(nil), s.messages...)
	s.mu.Unlock()
	s.persistCurrent()

	llm, systemPrompt, err := s.prepareModel(streamCtx)
	if err != nil {
		return err
	}

	reply, err := llm.Stream(streamCtx, systemPrompt, history, func(delta string) {
		evt := events.NewInfo(delta)
		evt.SessionKey = s.sync.SessionID()
		events.Emit(s.ctx, events.ChatEventStream, evt)
	})
	if err != nil {
		if streamCtx.Err() != nil {
			// user abort: the partial reply is discarded, nothing persists
			return nil
		}
		events.Emit(s.ctx, events.ChatEventDone, events.NewError("There was an error processing your request"))
		return err
	}

	s.mu.Lock()
	s.messages = append(s.messages, models.NewAssistantMessage(reply))
	s.mu.Unlock()
	events.Emit(s.ctx, events.ChatEventDone, events.NewSuccess("done"))
	s.persistCurrent()
	return nil
}

// Abort cancels the in-flight assistant response, if any.
func (s *ChatService) Abort() {
	s.mu.Lock()
	cancel := s.abort
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// persistCurrent flushes the buffer through the synchronizer. Failures are
// reported as transient notifications; the last-known-good in-memory state
// stays untouched so the next turn retries.
func (s *ChatService) persistCurrent() {
	s.mu.Lock()
	snapshot := append([]models.Message(nil), s.messages...)
	s.mu.Unlock()

	if err := s.sync.Persist(snapshot); err != nil {
		events.Emit(s.ctx, events.ChatEventPersist, events.NewError("failed to save chat: "+err.Error()))
	}
}

// prepareModel resolves the configured provider/model, fetches its API key
// and builds (or reuses) the streaming client plus the system prompt.
func (s *ChatService) prepareModel(ctx context.Context) (*client.LLMClient, string, error) {
	settings, err := s.projectSettings.Get()
	if err != nil {
		return nil, "", fmt.Errorf("load project settings: %w", err)
	}
	if settings.ModelKey == "" {
		return nil, "", fmt.Errorf("no model selected")
	}

	mdl, err := s.modelConfigs.GetModel(settings.ModelKey)
	if err != nil {
		return nil, "", err
	}
	if !mdl.Enabled {
		return nil, "", fmt.Errorf("model %s is disabled", mdl.DisplayName)
	}

	s.mu.Lock()
	llm := s.llm
	cachedKey := s.llmModelKey
	s.mu.Unlock()

	if llm == nil || cachedKey != mdl.Key {
		apiKey, err := s.keyring.GetApiKey(mdl.ProviderID)
		if err != nil {
			return nil, "", fmt.Errorf("no API key stored for %s: %w", mdl.ProviderName, err)
		}
		llm, err = client.NewLLMClient(ctx, mdl.ProviderID, apiKey, mdl.APIName)
		if err != nil {
			return nil, "", err
		}
		s.mu.Lock()
		s.llm = llm
		s.llmModelKey = mdl.Key
		s.mu.Unlock()
	}

	uiContext, err := uilibrary.Context(settings.UILibrary)
	if err != nil {
		events.Emit(s.ctx, events.ChatEventNotice, events.NewWarn("failed to build UI library context: "+err.Error()))
		uiContext = ""
	}
	return llm, client.SystemPrompt(uiContext), nil
}
