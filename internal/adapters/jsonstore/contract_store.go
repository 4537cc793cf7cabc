package jsonstore

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// ContractStore implements repositories.ContractRepository on the shared
// document.
type ContractStore struct {
	store *Store
}

// NewContractStore creates a contract repository backed by the given store.
func NewContractStore(store *Store) *ContractStore {
	return &ContractStore{store: store}
}

func (s *ContractStore) Create(ctx context.Context, contract *entities.Contract) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	if contract.Status == "" {
		contract.Status = entities.ContractStatusPending
	}
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Contracts = append(s.store.doc.Contracts, copyContract(contract))
	return s.store.persistLocked()
}

func (s *ContractStore) GetByID(ctx context.Context, id string) (*entities.Contract, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, c := range s.store.doc.Contracts {
		if c.ID == id {
			return copyContract(c), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("contract %s not found", id))
}

func (s *ContractStore) List(ctx context.Context, filter repositories.ContractFilter) ([]*entities.Contract, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []*entities.Contract{}
	for _, c := range s.store.doc.Contracts {
		if filter.ServiceID != "" && c.ServiceID != filter.ServiceID {
			continue
		}
		if filter.ClientID != "" && c.ClientID != filter.ClientID {
			continue
		}
		if filter.ProviderID != "" && c.ProviderID != filter.ProviderID {
			continue
		}
		out = append(out, copyContract(c))
	}
	return out, nil
}

func (s *ContractStore) Update(ctx context.Context, id string, patch repositories.ContractPatch) (*entities.Contract, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, c := range s.store.doc.Contracts {
		if c.ID != id {
			continue
		}
		if patch.Status != nil {
			c.Status = *patch.Status
		}
		if err := s.store.persistLocked(); err != nil {
			return nil, err
		}
		return copyContract(c), nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("contract %s not found", id))
}

func (s *ContractStore) Delete(ctx context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for i, c := range s.store.doc.Contracts {
		if c.ID == id {
			s.store.doc.Contracts = append(s.store.doc.Contracts[:i], s.store.doc.Contracts[i+1:]...)
			return s.store.persistLocked()
		}
	}
	return nil
}

func (s *ContractStore) DeleteAll(ctx context.Context, filter repositories.ContractOwnerFilter) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	kept := s.store.doc.Contracts[:0]
	removed := false
	for _, c := range s.store.doc.Contracts {
		match := (filter.ProviderID != "" && c.ProviderID == filter.ProviderID) ||
			(filter.ClientID != "" && c.ClientID == filter.ClientID)
		if match {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	s.store.doc.Contracts = kept
	if !removed {
		return nil
	}
	return s.store.persistLocked()
}

func (s *ContractStore) Upsert(ctx context.Context, contract *entities.Contract) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, c := range s.store.doc.Contracts {
		if c.ID == contract.ID {
			return false, nil
		}
	}
	if contract.ID == "" {
		contract.ID = uuid.NewString()
	}
	if contract.Status == "" {
		contract.Status = entities.ContractStatusPending
	}
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Contracts = append(s.store.doc.Contracts, copyContract(contract))
	if err := s.store.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}
