package services_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/servineo/backend/internal/adapters/jsonstore"
	"github.com/servineo/backend/internal/application/services"
	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
)

func newImporter(t *testing.T) (*services.ImportService, *jsonstore.Store) {
	t.Helper()
	store := newTestStore(t)
	importer := services.NewImportService(
		jsonstore.NewUserStore(store),
		jsonstore.NewServiceStore(store),
		jsonstore.NewContractStore(store),
		jsonstore.NewNotificationStore(store),
		jsonstore.NewReviewStore(store),
		jsonstore.NewQuestionStore(store),
		zerolog.Nop(),
	)
	return importer, store
}

func sampleSnapshot() *jsonstore.Snapshot {
	return &jsonstore.Snapshot{
		Users: []*entities.User{
			{ID: "u1", Name: "Ana", Email: "ana@example.com"},
			{ID: "u2", Name: "Marta", Email: "marta@example.com", Role: entities.RoleProvider},
		},
		Services: []*entities.Service{
			{ID: "s1", Title: "Fontanería", ProviderID: "u2"},
		},
		Contracts: []*entities.Contract{
			{ID: "c1", ServiceID: "s1", ClientID: "u1", ProviderID: "u2", Status: entities.ContractStatusPending},
		},
		Notifications: []*entities.Notification{
			{ID: "n1", UserID: "u2", Message: "hola"},
		},
		Reviews: []*entities.Review{
			{ID: "r1", ServiceID: "s1", AuthorID: "u1", Rating: 5},
		},
		Questions: []*entities.Question{
			{ID: "q1", ServiceID: "s1", UserID: "u1", Text: "¿Precio?"},
		},
	}
}

func TestImportService_ImportsCleanSnapshot(t *testing.T) {
	ctx := context.Background()
	importer, store := newImporter(t)

	summary, err := importer.Run(ctx, sampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, services.CollectionResult{Imported: 2}, summary.Users)
	assert.Equal(t, services.CollectionResult{Imported: 1}, summary.Services)
	assert.Equal(t, services.CollectionResult{Imported: 1}, summary.Contracts)
	assert.Equal(t, services.CollectionResult{Imported: 1}, summary.Notifications)
	assert.Equal(t, services.CollectionResult{Imported: 1}, summary.Reviews)
	assert.Equal(t, services.CollectionResult{Imported: 1}, summary.Questions)

	svc, err := jsonstore.NewServiceStore(store).GetByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Fontanería", svc.Title)
}

func TestImportService_RerunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	importer, _ := newImporter(t)

	_, err := importer.Run(ctx, sampleSnapshot())
	require.NoError(t, err)

	summary, err := importer.Run(ctx, sampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, services.CollectionResult{Existing: 2}, summary.Users)
	assert.Equal(t, services.CollectionResult{Existing: 1}, summary.Services)
	assert.Equal(t, services.CollectionResult{Existing: 1}, summary.Contracts)
	assert.Equal(t, services.CollectionResult{Existing: 1}, summary.Notifications)
	assert.Equal(t, services.CollectionResult{Existing: 1}, summary.Reviews)
	assert.Equal(t, services.CollectionResult{Existing: 1}, summary.Questions)
}

func TestImportService_SkipsUnresolvedReferences(t *testing.T) {
	ctx := context.Background()
	importer, _ := newImporter(t)

	snap := sampleSnapshot()
	snap.Services = append(snap.Services, &entities.Service{
		ID: "s-orphan", Title: "Huérfano", ProviderID: "nobody",
	})
	snap.Contracts = append(snap.Contracts, &entities.Contract{
		ID: "c-orphan", ServiceID: "s-orphan", ClientID: "u1", ProviderID: "u2",
	})
	snap.Reviews = append(snap.Reviews, &entities.Review{
		ID: "r-orphan", ServiceID: "s1", AuthorID: "nobody", Rating: 3,
	})

	summary, err := importer.Run(ctx, snap)
	require.NoError(t, err)

	assert.Equal(t, services.CollectionResult{Imported: 1, Skipped: 1}, summary.Services)
	// The orphaned service was skipped, so its contract cannot resolve
	// either.
	assert.Equal(t, services.CollectionResult{Imported: 1, Skipped: 1}, summary.Contracts)
	assert.Equal(t, services.CollectionResult{Imported: 1, Skipped: 1}, summary.Reviews)
}

// A snapshot user whose email already exists in the target does not get
// inserted, and records hanging off the snapshot id are skipped rather
// than attached to the wrong account.
func TestImportService_EmailCollisionKeepsTargetUser(t *testing.T) {
	ctx := context.Background()
	importer, store := newImporter(t)

	users := jsonstore.NewUserStore(store)
	require.NoError(t, users.Create(ctx, &entities.User{
		ID: "existing", Name: "Marta la de siempre", Email: "marta@example.com",
	}))

	summary, err := importer.Run(ctx, sampleSnapshot())
	require.NoError(t, err)

	assert.Equal(t, services.CollectionResult{Imported: 1, Existing: 1}, summary.Users)
	// Snapshot id u2 never made it in, so the service owned by u2 skips.
	assert.Equal(t, services.CollectionResult{Skipped: 1}, summary.Services)

	got, err := users.GetByEmail(ctx, "marta@example.com")
	require.NoError(t, err)
	assert.Equal(t, "existing", got.ID)
	assert.Equal(t, "Marta la de siempre", got.Name)
}

func TestImportService_ImportedDataServesReads(t *testing.T) {
	ctx := context.Background()
	importer, store := newImporter(t)

	_, err := importer.Run(ctx, sampleSnapshot())
	require.NoError(t, err)

	listings, err := jsonstore.NewServiceStore(store).List(ctx, repositories.ServiceFilter{})
	require.NoError(t, err)
	require.Len(t, listings, 1)
	require.NotNil(t, listings[0].Provider)
	assert.Equal(t, "Marta", listings[0].Provider.Name)
	assert.InDelta(t, 5.0, listings[0].Provider.Rating, 1e-9)
	assert.Equal(t, 1, listings[0].Provider.Reviews)
}
