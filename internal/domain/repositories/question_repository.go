package repositories

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// QuestionPatch is a shallow merge over an existing question.
type QuestionPatch struct {
	Answer *string
}

// QuestionRepository defines the per-question store operations.
type QuestionRepository interface {
	// Create stores a new question, assigning an id and createdAt when
	// empty.
	Create(ctx context.Context, question *entities.Question) error

	// GetByID retrieves a question by id.
	GetByID(ctx context.Context, id string) (*entities.Question, error)

	// ListByService returns the questions asked on one service.
	ListByService(ctx context.Context, serviceID string) ([]*entities.Question, error)

	// Update merges the patch over an existing question.
	Update(ctx context.Context, id string, patch QuestionPatch) (*entities.Question, error)

	// Upsert inserts the question when its id is absent; otherwise it
	// changes nothing. Used by the snapshot import.
	Upsert(ctx context.Context, question *entities.Question) (bool, error)
}
