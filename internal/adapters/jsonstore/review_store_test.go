package jsonstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
)

func seedReviews(t *testing.T) *jsonstore.ReviewStore {
	t.Helper()
	ctx := context.Background()
	reviews := jsonstore.NewReviewStore(newTestStore(t))
	for _, r := range []*entities.Review{
		{ID: "r1", ServiceID: "svc-1", AuthorID: "u1", Rating: 5},
		{ID: "r2", ServiceID: "svc-1", AuthorID: "u2", Rating: 3},
		{ID: "r3", ServiceID: "svc-2", AuthorID: "u1", Rating: 4},
	} {
		require.NoError(t, reviews.Create(ctx, r))
	}
	return reviews
}

func TestReviewStore_ListByService(t *testing.T) {
	reviews := seedReviews(t)

	got, err := reviews.List(context.Background(), repositories.ReviewFilter{ServiceID: "svc-1"})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestReviewStore_ListByServiceIDs(t *testing.T) {
	reviews := seedReviews(t)

	got, err := reviews.List(context.Background(), repositories.ReviewFilter{ServiceIDs: []string{"svc-2"}})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "r3", got[0].ID)
}

// An empty filter matches every review. ReviewService depends on this when
// it guards the provider listing, so it is pinned here.
func TestReviewStore_EmptyFilterMatchesAll(t *testing.T) {
	reviews := seedReviews(t)

	got, err := reviews.List(context.Background(), repositories.ReviewFilter{})
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestReviewStore_CreateAssignsDefaults(t *testing.T) {
	ctx := context.Background()
	reviews := jsonstore.NewReviewStore(newTestStore(t))

	r := &entities.Review{ServiceID: "svc-1", AuthorID: "u1", Rating: 5}
	require.NoError(t, reviews.Create(ctx, r))
	assert.NotEmpty(t, r.ID)
	assert.False(t, r.CreatedAt.IsZero())
}

func TestReviewStore_UpsertKeepsExisting(t *testing.T) {
	ctx := context.Background()
	reviews := seedReviews(t)

	created, err := reviews.Upsert(ctx, &entities.Review{ID: "r1", ServiceID: "svc-1", AuthorID: "u9", Rating: 1})
	require.NoError(t, err)
	assert.False(t, created)

	got, err := reviews.List(ctx, repositories.ReviewFilter{ServiceID: "svc-1"})
	require.NoError(t, err)
	for _, r := range got {
		if r.ID == "r1" {
			assert.Equal(t, 5, r.Rating)
		}
	}
}
