package jsonstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

func newTestStore(t *testing.T) *jsonstore.Store {
	t.Helper()
	store, err := jsonstore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	return store
}

func strPtr(s string) *string { return &s }

func TestUserStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	users := jsonstore.NewUserStore(newTestStore(t))

	u := &entities.User{Name: "Ana", Email: "ana@example.com", Role: entities.RoleClient}
	require.NoError(t, users.Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.NotNil(t, u.Favorites)

	byID, err := users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", byID.Email)

	byEmail, err := users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	_, err = users.GetByID(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserStore_UpdatePatchLeavesOtherFields(t *testing.T) {
	ctx := context.Background()
	users := jsonstore.NewUserStore(newTestStore(t))

	u := &entities.User{Name: "Ana", Email: "ana@example.com", Phone: "111"}
	require.NoError(t, users.Create(ctx, u))

	updated, err := users.Update(ctx, repositories.UserKey{ID: u.ID}, repositories.UserPatch{
		Name: strPtr("Ana María"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.Name)
	assert.Equal(t, "111", updated.Phone)
	assert.Equal(t, "ana@example.com", updated.Email)
}

func TestUserStore_UpdateByEmailKey(t *testing.T) {
	ctx := context.Background()
	users := jsonstore.NewUserStore(newTestStore(t))

	u := &entities.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, users.Create(ctx, u))

	updated, err := users.Update(ctx, repositories.UserKey{Email: "ana@example.com"}, repositories.UserPatch{
		About: strPtr("plumber"),
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, updated.ID)
	assert.Equal(t, "plumber", updated.About)
}

func TestUserStore_ToggleFavoriteIsInvolution(t *testing.T) {
	ctx := context.Background()
	users := jsonstore.NewUserStore(newTestStore(t))

	u := &entities.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, users.Create(ctx, u))

	after, err := users.ToggleFavorite(ctx, u.ID, "svc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-1"}, after.Favorites)

	after, err = users.ToggleFavorite(ctx, u.ID, "svc-1")
	require.NoError(t, err)
	assert.Empty(t, after.Favorites)
}

func TestUserStore_DeleteReturnsRemovedUser(t *testing.T) {
	ctx := context.Background()
	users := jsonstore.NewUserStore(newTestStore(t))

	u := &entities.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, users.Create(ctx, u))

	removed, err := users.Delete(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, removed.ID)

	_, err = users.GetByID(ctx, u.ID)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserStore_UpsertByEmailNeverOverwrites(t *testing.T) {
	ctx := context.Background()
	users := jsonstore.NewUserStore(newTestStore(t))

	created, err := users.UpsertByEmail(ctx, &entities.User{ID: "u1", Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.True(t, created)

	// Same email, different id and name: the existing record wins.
	created, err = users.UpsertByEmail(ctx, &entities.User{ID: "u2", Name: "Impostor", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.False(t, created)

	got, err := users.GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", got.ID)
	assert.Equal(t, "Ana", got.Name)

	_, err = users.GetByID(ctx, "u2")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestUserStore_ListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	users := jsonstore.NewUserStore(newTestStore(t))

	require.NoError(t, users.Create(ctx, &entities.User{Name: "Ana", Email: "ana@example.com"}))

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	list[0].Name = "mutated"

	again, err := users.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ana", again[0].Name)
}
