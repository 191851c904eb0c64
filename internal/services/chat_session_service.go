package services

import (
	"context"
	"fmt"
	"strings"

	"codeweave/internal/models"
	"codeweave/internal/repositories"
)

// ChatHistoryItem is a session summary for the sidebar menu.
type ChatHistoryItem struct {
	ID          string `json:"id"`
	URLID       string `json:"urlId,omitempty"`
	Description string `json:"description,omitempty"`
	Timestamp   string `json:"timestamp"`
}

// ChatSessionService is the frontend-facing facade over the session store:
// listing for the sidebar, lookup by either id, and explicit deletion.
type ChatSessionService interface {
	Startup(ctx context.Context)
	List() ([]ChatHistoryItem, error)
	Get(id string) (*models.ChatSession, error)
	GetMessages(id string) ([]models.Message, error)
	Delete(id string) error
}

type chatSessionService struct {
	repo repositories.ChatSessionRepository
	ctx  context.Context
}

func NewChatSessionService(repo repositories.ChatSessionRepository) ChatSessionService {
	return &chatSessionService{repo: repo}
}

func (s *chatSessionService) Startup(ctx context.Context) {
	s.ctx = ctx
}

func (s *chatSessionService) List() ([]ChatHistoryItem, error) {
	if s.repo == nil {
		return []ChatHistoryItem{}, nil
	}
	sessions, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]ChatHistoryItem, 0, len(sessions))
	for _, sess := range sessions {
		items = append(items, ChatHistoryItem{
			ID:          sess.ID,
			URLID:       sess.URLIDValue(),
			Description: sess.Description,
			Timestamp:   sess.Timestamp,
		})
	}
	return items, nil
}

// Get resolves a session by primary id first, then by slug.
func (s *chatSessionService) Get(id string) (*models.ChatSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if s.repo == nil {
		return nil, nil
	}
	return s.repo.GetByEitherID(id)
}

func (s *chatSessionService) GetMessages(id string) ([]models.Message, error) {
	sess, err := s.Get(id)
	if err != nil || sess == nil {
		return nil, err
	}
	return sess.Messages()
}

// Delete removes a session by primary id. Unknown ids are a no-op.
func (s *chatSessionService) Delete(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("session id is required")
	}
	if s.repo == nil {
		return nil
	}
	return s.repo.DeleteByID(id)
}
