package jsonstore

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
)

// ReviewStore implements repositories.ReviewRepository on the shared
// document.
type ReviewStore struct {
	store *Store
}

// NewReviewStore creates a review repository backed by the given store.
func NewReviewStore(store *Store) *ReviewStore {
	return &ReviewStore{store: store}
}

func (s *ReviewStore) Create(ctx context.Context, review *entities.Review) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Reviews = append(s.store.doc.Reviews, copyReview(review))
	return s.store.persistLocked()
}

func (s *ReviewStore) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	var idSet map[string]struct{}
	if len(filter.ServiceIDs) > 0 {
		idSet = make(map[string]struct{}, len(filter.ServiceIDs))
		for _, id := range filter.ServiceIDs {
			idSet[id] = struct{}{}
		}
	}

	out := []*entities.Review{}
	for _, r := range s.store.doc.Reviews {
		switch {
		case filter.ServiceID != "":
			if r.ServiceID != filter.ServiceID {
				continue
			}
		case idSet != nil:
			if _, ok := idSet[r.ServiceID]; !ok {
				continue
			}
		}
		// No filter set: fall through and match every review. Callers
		// depend on this.
		out = append(out, copyReview(r))
	}
	return out, nil
}

func (s *ReviewStore) Upsert(ctx context.Context, review *entities.Review) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, r := range s.store.doc.Reviews {
		if r.ID == review.ID {
			return false, nil
		}
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Reviews = append(s.store.doc.Reviews, copyReview(review))
	if err := s.store.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}
