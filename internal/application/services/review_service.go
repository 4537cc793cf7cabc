package services

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// ReviewService handles ratings and the hire-before-review rule.
type ReviewService struct {
	reviews   repositories.ReviewRepository
	services  repositories.ServiceRepository
	contracts repositories.ContractRepository
}

// NewReviewService creates a new review service.
func NewReviewService(
	reviews repositories.ReviewRepository,
	services repositories.ServiceRepository,
	contracts repositories.ContractRepository,
) *ReviewService {
	return &ReviewService{
		reviews:   reviews,
		services:  services,
		contracts: contracts,
	}
}

// CreateReviewInput carries a new rating.
type CreateReviewInput struct {
	ServiceID string `json:"serviceId"`
	AuthorID  string `json:"authorId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Create stores a review. The author must have at least one contract for
// the service, in any status; otherwise the request is forbidden.
func (s *ReviewService) Create(ctx context.Context, input CreateReviewInput) (*entities.Review, error) {
	if input.ServiceID == "" || input.AuthorID == "" || input.Comment == "" {
		return nil, apperrors.NewValidationError("serviceId, authorId and comment are required")
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	contracts, err := s.contracts.List(ctx, repositories.ContractFilter{
		ServiceID: input.ServiceID,
		ClientID:  input.AuthorID,
	})
	if err != nil {
		return nil, err
	}
	if len(contracts) == 0 {
		return nil, apperrors.NewForbiddenError("you must hire the service before reviewing it")
	}

	review := &entities.Review{
		ServiceID: input.ServiceID,
		AuthorID:  input.AuthorID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListByService returns the reviews of one service.
func (s *ReviewService) ListByService(ctx context.Context, serviceID string) ([]*entities.Review, error) {
	if serviceID == "" {
		return nil, apperrors.NewValidationError("serviceId is required")
	}
	return s.reviews.List(ctx, repositories.ReviewFilter{ServiceID: serviceID})
}

// ListByProvider returns every review across the provider's services. A
// provider with no services gets an empty list; the repository's match-all
// fall-through on an empty filter must not be reachable from here.
func (s *ReviewService) ListByProvider(ctx context.Context, providerID string) ([]*entities.Review, error) {
	if providerID == "" {
		return nil, apperrors.NewValidationError("providerId is required")
	}

	listings, err := s.services.List(ctx, repositories.ServiceFilter{ProviderID: providerID})
	if err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return []*entities.Review{}, nil
	}

	ids := make([]string, 0, len(listings))
	for _, l := range listings {
		ids = append(ids, l.ID)
	}
	return s.reviews.List(ctx, repositories.ReviewFilter{ServiceIDs: ids})
}
