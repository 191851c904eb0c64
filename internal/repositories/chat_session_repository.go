package repositories

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"codeweave/internal/models"
)

// ChatSessionRepository is the session store: transactional CRUD over the
// chat-session table plus id allocation. NextID and AllocateURLID assume a
// single active writer per database; two concurrent processes can race on
// allocation and that is a documented limitation, not handled here.
type ChatSessionRepository interface {
	GetAll() ([]models.ChatSession, error)
	Upsert(session *models.ChatSession) error
	GetByID(id string) (*models.ChatSession, error)
	GetByURLID(urlID string) (*models.ChatSession, error)
	GetByEitherID(id string) (*models.ChatSession, error)
	DeleteByID(id string) error
	NextID() (string, error)
	AllocateURLID(candidate string) (string, error)
}

type chatSessionRepository struct {
	db *gorm.DB
}

func NewChatSessionRepository(db *gorm.DB) ChatSessionRepository {
	return &chatSessionRepository{db: db}
}

func (r *chatSessionRepository) GetAll() ([]models.ChatSession, error) {
	var sessions []models.ChatSession
	if err := r.db.Find(&sessions).Error; err != nil {
		return nil, readErr("get all", err)
	}
	return sessions, nil
}

// Upsert fully replaces the record under session.ID, inserting when absent.
// Timestamp is rewritten on every call; the caller's value is ignored.
func (r *chatSessionRepository) Upsert(session *models.ChatSession) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	if session.ID == "" {
		return fmt.Errorf("session id is required")
	}
	session.Timestamp = time.Now().UTC().Format(time.RFC3339)
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"url_id", "messages_json", "description", "timestamp",
		}),
	}).Create(session).Error
	if err != nil {
		return writeErr("upsert "+session.ID, err)
	}
	return nil
}

func (r *chatSessionRepository) GetByID(id string) (*models.ChatSession, error) {
	var sess models.ChatSession
	if err := r.db.Where("id = ?", id).Take(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readErr("get "+id, err)
	}
	return &sess, nil
}

func (r *chatSessionRepository) GetByURLID(urlID string) (*models.ChatSession, error) {
	var sess models.ChatSession
	if err := r.db.Where("url_id = ?", urlID).Take(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, readErr("get by url id "+urlID, err)
	}
	return &sess, nil
}

// GetByEitherID resolves a route identifier that may be either the stable
// numeric id or the shareable slug: primary lookup first, then secondary.
func (r *chatSessionRepository) GetByEitherID(id string) (*models.ChatSession, error) {
	sess, err := r.GetByID(id)
	if err != nil || sess != nil {
		return sess, err
	}
	return r.GetByURLID(id)
}

// DeleteByID removes the session. Deleting an id that does not exist is a
// no-op, not an error.
func (r *chatSessionRepository) DeleteByID(id string) error {
	if err := r.db.Where("id = ?", id).Delete(&models.ChatSession{}).Error; err != nil {
		return writeErr("delete "+id, err)
	}
	return nil
}

// NextID scans all primary ids and returns max+1 as a string, "1" on an
// empty table. O(n) over the local history, which stays small; a persisted
// counter would add a second writer path for no measurable gain.
func (r *chatSessionRepository) NextID() (string, error) {
	var ids []string
	if err := r.db.Model(&models.ChatSession{}).Pluck("id", &ids).Error; err != nil {
		return "", readErr("next id", err)
	}
	highest := 0
	for _, id := range ids {
		n, err := strconv.Atoi(id)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return strconv.Itoa(highest + 1), nil
}

// AllocateURLID returns candidate if no session uses it as a slug, otherwise
// the first free of candidate-2, candidate-3, ... Each probe queries the
// table afresh so the loop never trusts a stale slug set.
func (r *chatSessionRepository) AllocateURLID(candidate string) (string, error) {
	if candidate == "" {
		return "", fmt.Errorf("url id candidate is required")
	}
	taken, err := r.urlIDTaken(candidate)
	if err != nil {
		return "", err
	}
	if !taken {
		return candidate, nil
	}
	for i := 2; ; i++ {
		probe := fmt.Sprintf("%s-%d", candidate, i)
		taken, err := r.urlIDTaken(probe)
		if err != nil {
			return "", err
		}
		if !taken {
			return probe, nil
		}
	}
}

func (r *chatSessionRepository) urlIDTaken(urlID string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.ChatSession{}).Where("url_id = ?", urlID).Count(&count).Error; err != nil {
		return false, readErr("probe url id "+urlID, err)
	}
	return count > 0, nil
}
