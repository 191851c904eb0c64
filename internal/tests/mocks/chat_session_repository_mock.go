package mocks

import (
	"codeweave/internal/models"
)

type ChatSessionRepositoryMock struct {
	GetAllFunc        func() ([]models.ChatSession, error)
	UpsertFunc        func(session *models.ChatSession) error
	GetByIDFunc       func(id string) (*models.ChatSession, error)
	GetByURLIDFunc    func(urlID string) (*models.ChatSession, error)
	GetByEitherIDFunc func(id string) (*models.ChatSession, error)
	DeleteByIDFunc    func(id string) error
	NextIDFunc        func() (string, error)
	AllocateURLIDFunc func(candidate string) (string, error)
}

func (m *ChatSessionRepositoryMock) GetAll() ([]models.ChatSession, error) {
	if m.GetAllFunc != nil {
		return m.GetAllFunc()
	}
	return nil, nil
}

func (m *ChatSessionRepositoryMock) Upsert(session *models.ChatSession) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(session)
	}
	return nil
}

func (m *ChatSessionRepositoryMock) GetByID(id string) (*models.ChatSession, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(id)
	}
	return nil, nil
}

func (m *ChatSessionRepositoryMock) GetByURLID(urlID string) (*models.ChatSession, error) {
	if m.GetByURLIDFunc != nil {
		return m.GetByURLIDFunc(urlID)
	}
	return nil, nil
}

func (m *ChatSessionRepositoryMock) GetByEitherID(id string) (*models.ChatSession, error) {
	if m.GetByEitherIDFunc != nil {
		return m.GetByEitherIDFunc(id)
	}
	return nil, nil
}

func (m *ChatSessionRepositoryMock) DeleteByID(id string) error {
	if m.DeleteByIDFunc != nil {
		return m.DeleteByIDFunc(id)
	}
	return nil
}

func (m *ChatSessionRepositoryMock) NextID() (string, error) {
	if m.NextIDFunc != nil {
		return m.NextIDFunc()
	}
	return "1", nil
}

func (m *ChatSessionRepositoryMock) AllocateURLID(candidate string) (string, error) {
	if m.AllocateURLIDFunc != nil {
		return m.AllocateURLIDFunc(candidate)
	}
	return candidate, nil
}
