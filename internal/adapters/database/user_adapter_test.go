package database_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servineo/backend/internal/adapters/database"
	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servineo/backend/pkg/errors"
)

func newMockAdapter(t *testing.T) (repositories.UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return database.NewUserAdapter(postgres.NewClientFromDB(db)), mock
}

func userRows(mock sqlmock.Sqlmock) *sqlmock.Rows {
	return mock.NewRows([]string{
		"id", "name", "email", "password", "role",
		"phone", "location", "about", "avatar", "category", "favorites",
	})
}

func TestUserAdapter_GetByID(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs("u1").
		WillReturnRows(userRows(mock).AddRow(
			"u1", "Ana", "ana@example.com", "secret", "client",
			"", "", "", "", "", []byte("{svc-1,svc-2}"),
		))

	u, err := adapter.GetByID(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.Equal(t, []string{"svc-1", "svc-2"}, u.Favorites)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAdapter_GetByIDNotFound(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs("missing").
		WillReturnRows(userRows(mock))

	_, err := adapter.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAdapter_EmptyFavoritesScanToEmptySlice(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE email = \\$1").
		WithArgs("ana@example.com").
		WillReturnRows(userRows(mock).AddRow(
			"u1", "Ana", "ana@example.com", "secret", "client",
			"", "", "", "", "", []byte("{}"),
		))

	u, err := adapter.GetByEmail(context.Background(), "ana@example.com")
	require.NoError(t, err)
	assert.NotNil(t, u.Favorites)
	assert.Empty(t, u.Favorites)
}

func TestUserAdapter_UpsertByEmail(t *testing.T) {
	t.Run("inserts when email is new", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectExec("INSERT INTO users (.+) ON CONFLICT \\(email\\) DO NOTHING").
			WillReturnResult(sqlmock.NewResult(0, 1))

		created, err := adapter.UpsertByEmail(context.Background(), &entities.User{
			ID: "u1", Name: "Ana", Email: "ana@example.com",
		})
		require.NoError(t, err)
		assert.True(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports existing on conflict", func(t *testing.T) {
		adapter, mock := newMockAdapter(t)

		mock.ExpectExec("INSERT INTO users (.+) ON CONFLICT \\(email\\) DO NOTHING").
			WillReturnResult(sqlmock.NewResult(0, 0))

		created, err := adapter.UpsertByEmail(context.Background(), &entities.User{
			ID: "u2", Name: "Ana", Email: "ana@example.com",
		})
		require.NoError(t, err)
		assert.False(t, created)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserAdapter_ToggleFavorite(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs("u1").
		WillReturnRows(userRows(mock).AddRow(
			"u1", "Ana", "ana@example.com", "secret", "client",
			"", "", "", "", "", []byte("{}"),
		))
	mock.ExpectExec("UPDATE \"users\" SET \"favorites\"").
		WillReturnResult(sqlmock.NewResult(0, 1))

	u, err := adapter.ToggleFavorite(context.Background(), "u1", "svc-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"svc-1"}, u.Favorites)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserAdapter_UpdateWithEmptyPatchSkipsWrite(t *testing.T) {
	adapter, mock := newMockAdapter(t)

	// No UPDATE expected: an empty patch goes straight to the re-read.
	mock.ExpectQuery("SELECT (.+) FROM users WHERE id = \\$1").
		WithArgs("u1").
		WillReturnRows(userRows(mock).AddRow(
			"u1", "Ana", "ana@example.com", "secret", "client",
			"", "", "", "", "", []byte("{}"),
		))

	u, err := adapter.Update(context.Background(), repositories.UserKey{ID: "u1"}, repositories.UserPatch{})
	require.NoError(t, err)
	assert.Equal(t, "Ana", u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}
