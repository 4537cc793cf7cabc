package repositories

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// ContractFilter narrows contract lookups by equality match. Zero-valued
// fields are ignored.
type ContractFilter struct {
	ServiceID  string
	ClientID   string
	ProviderID string
}

// ContractOwnerFilter selects contracts for bulk deletion by either side
// of the relationship.
type ContractOwnerFilter struct {
	ProviderID string
	ClientID   string
}

// ContractPatch is a shallow merge over an existing contract. Status is
// the only mutable field; transitions are caller-driven.
type ContractPatch struct {
	Status *string
}

// ContractRepository defines the per-contract store operations.
type ContractRepository interface {
	// Create stores a new contract, assigning an id and createdAt when
	// empty and defaulting status to pending.
	Create(ctx context.Context, contract *entities.Contract) error

	// GetByID retrieves a contract by id.
	GetByID(ctx context.Context, id string) (*entities.Contract, error)

	// List returns contracts matching the filter; the zero filter
	// returns everything.
	List(ctx context.Context, filter ContractFilter) ([]*entities.Contract, error)

	// Update merges the patch over an existing contract.
	Update(ctx context.Context, id string, patch ContractPatch) (*entities.Contract, error)

	// Delete removes a contract. Deleting a missing contract is a
	// no-op, not an error.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every contract matching the owner filter.
	DeleteAll(ctx context.Context, filter ContractOwnerFilter) error

	// Upsert inserts the contract when its id is absent; otherwise it
	// changes nothing. Used by the snapshot import.
	Upsert(ctx context.Context, contract *entities.Contract) (bool, error)
}
