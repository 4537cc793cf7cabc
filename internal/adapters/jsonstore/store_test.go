package jsonstore_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/domain/entities"
	apperrors "github.com/servineo/backend/pkg/errors"
)

func TestOpen_InitializesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "db.json")

	store, err := jsonstore.Open(path)
	require.NoError(t, err)
	require.NotNil(t, store)

	// The empty document is persisted immediately.
	_, err = os.Stat(path)
	require.NoError(t, err)

	users, err := jsonstore.NewUserStore(store).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestOpen_CorruptFileIsStorageError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := jsonstore.Open(path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
}

func TestOpen_ReopenPreservesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	ctx := context.Background()

	store, err := jsonstore.Open(path)
	require.NoError(t, err)

	users := jsonstore.NewUserStore(store)
	require.NoError(t, users.Create(ctx, &entities.User{
		Name:  "Ana",
		Email: "ana@example.com",
	}))

	reopened, err := jsonstore.Open(path)
	require.NoError(t, err)

	got, err := jsonstore.NewUserStore(reopened).GetByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.NotEmpty(t, got.ID)
}

func TestLoadSnapshot_MissingFile(t *testing.T) {
	_, err := jsonstore.LoadSnapshot(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeStorage))
}

func TestLoadSnapshot_ReadsCollections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.json")
	doc := `{"users":[{"id":"u1","name":"Ana","email":"ana@example.com"}],"services":[{"id":"s1","title":"Plumbing","providerId":"u1"}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	snap, err := jsonstore.LoadSnapshot(path)
	require.NoError(t, err)
	require.Len(t, snap.Users, 1)
	require.Len(t, snap.Services, 1)
	assert.Equal(t, "u1", snap.Users[0].ID)
	assert.Equal(t, "Plumbing", snap.Services[0].Title)
	// Absent collections come back as empty slices, not nil.
	assert.NotNil(t, snap.Contracts)
	assert.NotNil(t, snap.Reviews)
}
