package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/domain/entities"
	apperrors "github.com/servineo/backend/pkg/errors"
)

type reviewFixture struct {
	svc       *services.ReviewService
	contracts *jsonstore.ContractStore
	reviews   *jsonstore.ReviewStore
}

func newReviewFixture(t *testing.T) *reviewFixture {
	t.Helper()
	ctx := context.Background()
	store := newTestStore(t)

	servicesRepo := jsonstore.NewServiceStore(store)
	require.NoError(t, servicesRepo.Create(ctx, &entities.Service{
		ID: "svc-1", Title: "Fontanería", ProviderID: "prov-1",
	}))
	require.NoError(t, servicesRepo.Create(ctx, &entities.Service{
		ID: "svc-2", Title: "Jardinería", ProviderID: "prov-2",
	}))

	contracts := jsonstore.NewContractStore(store)
	reviews := jsonstore.NewReviewStore(store)
	return &reviewFixture{
		svc:       services.NewReviewService(reviews, servicesRepo, contracts),
		contracts: contracts,
		reviews:   reviews,
	}
}

func TestReviewService_CreateRequiresPriorContract(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	_, err := f.svc.Create(ctx, services.CreateReviewInput{
		ServiceID: "svc-1", AuthorID: "client-1", Rating: 5,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeForbidden))
}

func TestReviewService_CreateWithContract(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	// Any contract counts, whatever its status.
	require.NoError(t, f.contracts.Create(ctx, &entities.Contract{
		ServiceID: "svc-1", ClientID: "client-1", ProviderID: "prov-1",
		Status: entities.ContractStatusRejected,
	}))

	review, err := f.svc.Create(ctx, services.CreateReviewInput{
		ServiceID: "svc-1", AuthorID: "client-1", Rating: 4, Comment: "Muy bien",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, review.ID)
	assert.Equal(t, 4, review.Rating)
}

func TestReviewService_CreateValidatesRating(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	require.NoError(t, f.contracts.Create(ctx, &entities.Contract{
		ServiceID: "svc-1", ClientID: "client-1", ProviderID: "prov-1",
	}))

	for _, rating := range []int{0, 6, -1} {
		_, err := f.svc.Create(ctx, services.CreateReviewInput{
			ServiceID: "svc-1", AuthorID: "client-1", Rating: rating,
		})
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation), "rating %d", rating)
	}
}

func TestReviewService_ListByProvider(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	require.NoError(t, f.reviews.Create(ctx, &entities.Review{ServiceID: "svc-1", AuthorID: "u1", Rating: 5}))
	require.NoError(t, f.reviews.Create(ctx, &entities.Review{ServiceID: "svc-2", AuthorID: "u1", Rating: 2}))

	got, err := f.svc.ListByProvider(ctx, "prov-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "svc-1", got[0].ServiceID)
}

// A provider with no services gets an empty list, never the whole review
// table.
func TestReviewService_ListByProviderWithoutServices(t *testing.T) {
	ctx := context.Background()
	f := newReviewFixture(t)

	require.NoError(t, f.reviews.Create(ctx, &entities.Review{ServiceID: "svc-1", AuthorID: "u1", Rating: 5}))

	got, err := f.svc.ListByProvider(ctx, "prov-without-services")
	require.NoError(t, err)
	assert.Empty(t, got)
}
