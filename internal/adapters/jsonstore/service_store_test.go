package jsonstore_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

func seedCatalog(t *testing.T) (*jsonstore.Store, *jsonstore.ServiceStore) {
	t.Helper()
	ctx := context.Background()
	store := newTestStore(t)

	users := jsonstore.NewUserStore(store)
	require.NoError(t, users.Create(ctx, &entities.User{
		ID:       "prov-1",
		Name:     "Marta",
		Email:    "marta@example.com",
		Password: "secret",
		Role:     entities.RoleProvider,
	}))

	services := jsonstore.NewServiceStore(store)
	require.NoError(t, services.Create(ctx, &entities.Service{
		ID: "svc-1", Title: "Fontanería", Category: "hogar", Location: "Madrid", ProviderID: "prov-1",
	}))
	require.NoError(t, services.Create(ctx, &entities.Service{
		ID: "svc-2", Title: "Clases de inglés", Category: "educación", Location: "Sevilla", ProviderID: "prov-1",
	}))
	require.NoError(t, services.Create(ctx, &entities.Service{
		ID: "svc-3", Title: "Huérfano", Category: "hogar", Location: "Madrid", ProviderID: "gone",
	}))

	reviews := jsonstore.NewReviewStore(store)
	for _, rating := range []int{5, 3, 4} {
		require.NoError(t, reviews.Create(ctx, &entities.Review{
			ServiceID: "svc-1", AuthorID: "client-1", Rating: rating,
		}))
	}
	return store, services
}

func TestServiceStore_ListAggregatesRatings(t *testing.T) {
	ctx := context.Background()
	_, services := seedCatalog(t)

	list, err := services.List(ctx, repositories.ServiceFilter{})
	require.NoError(t, err)
	require.Len(t, list, 3)

	byID := map[string]*entities.ServiceListing{}
	for _, l := range list {
		byID[l.ID] = l
	}

	rated := byID["svc-1"]
	require.NotNil(t, rated.Provider)
	assert.Equal(t, "Marta", rated.Provider.Name)
	assert.Equal(t, entities.RoleProvider, rated.Provider.Role)
	assert.InDelta(t, 4.0, rated.Provider.Rating, 1e-9)
	assert.Equal(t, 3, rated.Provider.Reviews)

	unrated := byID["svc-2"]
	require.NotNil(t, unrated.Provider)
	assert.Zero(t, unrated.Provider.Rating)
	assert.Zero(t, unrated.Provider.Reviews)

	// Owner no longer exists: listing survives with no provider block.
	assert.Nil(t, byID["svc-3"].Provider)
}

func TestServiceStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	_, services := seedCatalog(t)

	byCategory, err := services.List(ctx, repositories.ServiceFilter{Category: "educación"})
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "svc-2", byCategory[0].ID)

	byBoth, err := services.List(ctx, repositories.ServiceFilter{Category: "hogar", Location: "Madrid"})
	require.NoError(t, err)
	assert.Len(t, byBoth, 2)

	byProvider, err := services.List(ctx, repositories.ServiceFilter{ProviderID: "prov-1"})
	require.NoError(t, err)
	assert.Len(t, byProvider, 2)
}

func TestServiceStore_GetDetail(t *testing.T) {
	ctx := context.Background()
	_, services := seedCatalog(t)

	detail, err := services.GetDetail(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Fontanería", detail.Title)
	require.NotNil(t, detail.Provider)
	assert.Equal(t, "Marta", detail.Provider.Name)
	assert.Empty(t, detail.Provider.Password)
	assert.Len(t, detail.Reviews, 3)
}

func TestServiceStore_GetDetailMissingOwner(t *testing.T) {
	ctx := context.Background()
	_, services := seedCatalog(t)

	detail, err := services.GetDetail(ctx, "svc-3")
	require.NoError(t, err)
	assert.Nil(t, detail.Provider)
	assert.NotNil(t, detail.Reviews)
}

func TestServiceStore_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	_, services := seedCatalog(t)

	updated, err := services.Update(ctx, "svc-1", repositories.ServicePatch{Price: strPtr("30 €/h")})
	require.NoError(t, err)
	assert.Equal(t, "30 €/h", updated.Price)
	assert.Equal(t, "Fontanería", updated.Title)

	removed, err := services.Delete(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "svc-1", removed.ID)

	_, err = services.GetByID(ctx, "svc-1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestServiceStore_UpsertKeepsExisting(t *testing.T) {
	ctx := context.Background()
	_, services := seedCatalog(t)

	created, err := services.Upsert(ctx, &entities.Service{ID: "svc-1", Title: "Otro título"})
	require.NoError(t, err)
	assert.False(t, created)

	got, err := services.GetByID(ctx, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, "Fontanería", got.Title)

	created, err = services.Upsert(ctx, &entities.Service{ID: "svc-9", Title: "Nuevo", ProviderID: "prov-1"})
	require.NoError(t, err)
	assert.True(t, created)
}
