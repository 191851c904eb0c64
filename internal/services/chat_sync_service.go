package services

import (
	"context"
	"fmt"
	"sync"

	"codeweave/internal/models"
	"codeweave/internal/repositories"
	"codeweave/internal/utils"
)

// SyncState is the synchronizer's lifecycle state for the active session.
type SyncState int

const (
	SyncUninitialized SyncState = iota
	SyncHydrating
	SyncReady
	SyncPersisting
)

const (
	descriptionMaxLen = 100
	slugMaxLen        = 60
)

// HydrationResult is handed to the chat shell at mount.
type HydrationResult struct {
	Ready           bool             `json:"ready"`
	InitialMessages []models.Message `json:"initialMessages"`
}

// ChatSyncService bridges the live, growing message list and the session
// store. It decides when to read and write and derives the session's ids:
// hydration happens once at mount, persistence whenever the in-memory
// message count exceeds the last persisted count. Constructed with a nil
// repository it degrades to an in-memory-only session: hydration yields an
// empty list and persistence is skipped, so the conversation stays usable
// when the store could not be opened.
type ChatSyncService interface {
	Startup(ctx context.Context)
	Hydrate(routeID string) (*HydrationResult, error)
	Persist(messages []models.Message) error
	SessionID() string
	URLID() string
	Description() string
	State() SyncState
}

type chatSyncService struct {
	repo repositories.ChatSessionRepository
	ctx  context.Context

	mu            sync.Mutex
	state         SyncState
	sessionID     string
	urlID         string
	description   string
	lastPersisted int
}

func NewChatSyncService(repo repositories.ChatSessionRepository) ChatSyncService {
	return &chatSyncService{repo: repo}
}

func (s *chatSyncService) Startup(ctx context.Context) {
	s.ctx = ctx
}

// Hydrate loads the session addressed by routeID (primary id or slug) into
// memory. An empty or unknown routeID starts a fresh session; ids are then
// allocated on first persist.
func (s *chatSyncService) Hydrate(routeID string) (*HydrationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = SyncHydrating
	s.sessionID = ""
	s.urlID = ""
	s.description = ""
	s.lastPersisted = 0

	if s.repo == nil || routeID == "" {
		s.state = SyncReady
		return &HydrationResult{Ready: true, InitialMessages: []models.Message{}}, nil
	}

	sess, err := s.repo.GetByEitherID(routeID)
	if err != nil {
		s.state = SyncUninitialized
		return nil, err
	}
	if sess == nil {
		s.state = SyncReady
		return &HydrationResult{Ready: true, InitialMessages: []models.Message{}}, nil
	}

	msgs, err := sess.Messages()
	if err != nil {
		s.state = SyncUninitialized
		return nil, fmt.Errorf("decode session %s: %w", sess.ID, err)
	}
	if msgs == nil {
		msgs = []models.Message{}
	}

	s.sessionID = sess.ID
	s.urlID = sess.URLIDValue()
	s.description = sess.Description
	s.lastPersisted = len(msgs)
	s.state = SyncReady
	return &HydrationResult{Ready: true, InitialMessages: msgs}, nil
}

// Persist writes the full message log when it has genuinely grown since the
// last successful persist. A call with an unchanged count is a no-op, which
// makes rapid duplicate triggers harmless. On the first persist of a new
// session the primary id and slug are allocated; on failure no bookkeeping
// changes, so the next turn retries with the same state.
func (s *chatSyncService) Persist(messages []models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.repo == nil {
		return nil
	}
	if s.state == SyncUninitialized || s.state == SyncHydrating {
		return fmt.Errorf("session not hydrated")
	}
	if len(messages) <= s.lastPersisted {
		return nil
	}

	s.state = SyncPersisting
	defer func() { s.state = SyncReady }()

	sessionID := s.sessionID
	urlID := s.urlID
	description := s.description

	if sessionID == "" {
		id, err := s.repo.NextID()
		if err != nil {
			return err
		}
		sessionID = id

		if first := firstUserContent(messages); first != "" {
			description = utils.TruncateWords(first, descriptionMaxLen)
			if candidate := utils.Slugify(utils.TruncateWords(first, slugMaxLen)); candidate != "" {
				allocated, err := s.repo.AllocateURLID(candidate)
				if err != nil {
					return err
				}
				urlID = allocated
			}
		}
	}

	session := &models.ChatSession{ID: sessionID, Description: description}
	if urlID != "" {
		session.URLID = &urlID
	}
	if err := session.SetMessages(messages); err != nil {
		return fmt.Errorf("encode session %s: %w", sessionID, err)
	}
	if err := s.repo.Upsert(session); err != nil {
		return err
	}

	s.sessionID = sessionID
	s.urlID = urlID
	s.description = description
	s.lastPersisted = len(messages)
	return nil
}

func (s *chatSyncService) SessionID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessionID
}

func (s *chatSyncService) URLID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.urlID
}

func (s *chatSyncService) Description() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.description
}

func (s *chatSyncService) State() SyncState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func firstUserContent(messages []models.Message) string {
	for _, m := range messages {
		if m.Role == models.RoleUser {
			return m.Content
		}
	}
	return ""
}
