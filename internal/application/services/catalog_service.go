package services

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// defaultServiceImage is used when a listing is created without one.
const defaultServiceImage = "https://via.placeholder.com/400"

// CatalogService handles the service listings catalog.
type CatalogService struct {
	services repositories.ServiceRepository
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(services repositories.ServiceRepository) *CatalogService {
	return &CatalogService{services: services}
}

// List returns enriched listings matching the filter.
func (s *CatalogService) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.ServiceListing, error) {
	return s.services.List(ctx, filter)
}

// Get returns one service with its provider and reviews.
func (s *CatalogService) Get(ctx context.Context, id string) (*entities.ServiceDetail, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	return s.services.GetDetail(ctx, id)
}

// CreateServiceInput carries the fields accepted when publishing a
// listing.
type CreateServiceInput struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Location        string `json:"location"`
	Price           string `json:"price"`
	Image           string `json:"image"`
	SocialInstagram string `json:"socialInstagram"`
	SocialWhatsapp  string `json:"socialWhatsapp"`
	ProviderID      string `json:"providerId"`
}

// Create publishes a listing. The provider reference is not verified;
// orphaned listings are tolerated the same way dangling favorites are.
func (s *CatalogService) Create(ctx context.Context, input CreateServiceInput) (*entities.Service, error) {
	if input.Title == "" || input.Description == "" || input.Category == "" ||
		input.Location == "" || input.Price == "" {
		return nil, apperrors.NewValidationError("title, description, category, location and price are required")
	}
	if input.ProviderID == "" {
		return nil, apperrors.NewValidationError("providerId is required")
	}

	image := input.Image
	if image == "" {
		image = defaultServiceImage
	}

	service := &entities.Service{
		Title:           input.Title,
		Description:     input.Description,
		Category:        input.Category,
		Location:        input.Location,
		Price:           input.Price,
		Image:           image,
		SocialInstagram: input.SocialInstagram,
		SocialWhatsapp:  input.SocialWhatsapp,
		ProviderID:      input.ProviderID,
	}
	if err := s.services.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// Update merges the patch over an existing listing.
func (s *CatalogService) Update(ctx context.Context, id string, patch repositories.ServicePatch) (*entities.Service, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	return s.services.Update(ctx, id, patch)
}

// Delete removes a listing and returns the removed record.
func (s *CatalogService) Delete(ctx context.Context, id string) (*entities.Service, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	return s.services.Delete(ctx, id)
}
