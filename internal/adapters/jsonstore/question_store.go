package jsonstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// QuestionStore implements repositories.QuestionRepository on the shared
// document.
type QuestionStore struct {
	store *Store
}

// NewQuestionStore creates a question repository backed by the given store.
func NewQuestionStore(store *Store) *QuestionStore {
	return &QuestionStore{store: store}
}

func (s *QuestionStore) Create(ctx context.Context, question *entities.Question) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Questions = append(s.store.doc.Questions, copyQuestion(question))
	return s.store.persistLocked()
}

func (s *QuestionStore) GetByID(ctx context.Context, id string) (*entities.Question, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, q := range s.store.doc.Questions {
		if q.ID == id {
			return copyQuestion(q), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("question %s not found", id))
}

func (s *QuestionStore) ListByService(ctx context.Context, serviceID string) ([]*entities.Question, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []*entities.Question{}
	for _, q := range s.store.doc.Questions {
		if q.ServiceID == serviceID {
			out = append(out, copyQuestion(q))
		}
	}
	return out, nil
}

func (s *QuestionStore) Update(ctx context.Context, id string, patch repositories.QuestionPatch) (*entities.Question, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, q := range s.store.doc.Questions {
		if q.ID != id {
			continue
		}
		if patch.Answer != nil {
			q.Answer = *patch.Answer
		}
		if err := s.store.persistLocked(); err != nil {
			return nil, err
		}
		return copyQuestion(q), nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("question %s not found", id))
}

func (s *QuestionStore) Upsert(ctx context.Context, question *entities.Question) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, q := range s.store.doc.Questions {
		if q.ID == question.ID {
			return false, nil
		}
	}
	if question.ID == "" {
		question.ID = uuid.NewString()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Questions = append(s.store.doc.Questions, copyQuestion(question))
	if err := s.store.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}
