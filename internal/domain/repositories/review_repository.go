package repositories

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// ReviewFilter narrows review lookups. ServiceID matches a single service,
// ServiceIDs any of a set. When neither is set the filter matches every
// review — a documented legacy fall-through that callers rely on and tests
// pin down.
type ReviewFilter struct {
	ServiceID  string
	ServiceIDs []string
}

// ReviewRepository defines the per-review store operations.
type ReviewRepository interface {
	// Create stores a new review, assigning an id and createdAt when
	// empty. Duplicate author+service pairs are allowed.
	Create(ctx context.Context, review *entities.Review) error

	// List returns reviews matching the filter.
	List(ctx context.Context, filter ReviewFilter) ([]*entities.Review, error)

	// Upsert inserts the review when its id is absent; otherwise it
	// changes nothing. Used by the snapshot import.
	Upsert(ctx context.Context, review *entities.Review) (bool, error)
}
