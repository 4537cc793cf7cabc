package repositories

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// ServiceFilter narrows service listings by equality match. Zero-valued
// fields are ignored; the zero filter matches everything.
type ServiceFilter struct {
	Category   string
	Location   string
	ProviderID string
}

// ServicePatch is a shallow merge over an existing service.
type ServicePatch struct {
	Title           *string
	Description     *string
	Category        *string
	Location        *string
	Price           *string
	Image           *string
	SocialInstagram *string
	SocialWhatsapp  *string
}

// ServiceRepository defines the per-service store operations.
type ServiceRepository interface {
	// GetByID retrieves a bare service by id.
	GetByID(ctx context.Context, id string) (*entities.Service, error)

	// GetDetail retrieves a service with its sanitized provider and its
	// reviews.
	GetDetail(ctx context.Context, id string) (*entities.ServiceDetail, error)

	// List returns services matching the filter, each enriched with a
	// provider summary and the rating aggregate computed from reviews.
	List(ctx context.Context, filter ServiceFilter) ([]*entities.ServiceListing, error)

	// Create stores a new service, assigning an id and createdAt when
	// empty. The provider reference is NOT validated here; only the
	// snapshot import enforces it.
	Create(ctx context.Context, service *entities.Service) error

	// Update merges the patch over an existing service.
	Update(ctx context.Context, id string, patch ServicePatch) (*entities.Service, error)

	// Delete removes a service and returns the removed record.
	Delete(ctx context.Context, id string) (*entities.Service, error)

	// Upsert inserts the service when its id is absent; otherwise it
	// changes nothing. Used by the snapshot import.
	Upsert(ctx context.Context, service *entities.Service) (bool, error)
}
