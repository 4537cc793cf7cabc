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

// ServiceStore implements repositories.ServiceRepository on the shared
// document.
type ServiceStore struct {
	store *Store
}

// NewServiceStore creates a service repository backed by the given store.
func NewServiceStore(store *Store) *ServiceStore {
	return &ServiceStore{store: store}
}

func (s *ServiceStore) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, svc := range s.store.doc.Services {
		if svc.ID == id {
			return copyService(svc), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("service %s not found", id))
}

func (s *ServiceStore) GetDetail(ctx context.Context, id string) (*entities.ServiceDetail, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, svc := range s.store.doc.Services {
		if svc.ID != id {
			continue
		}
		detail := &entities.ServiceDetail{Service: *copyService(svc), Reviews: []*entities.Review{}}
		for _, u := range s.store.doc.Users {
			if u.ID == svc.ProviderID {
				detail.Provider = u.Sanitized()
				break
			}
		}
		for _, r := range s.store.doc.Reviews {
			if r.ServiceID == id {
				detail.Reviews = append(detail.Reviews, copyReview(r))
			}
		}
		return detail, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("service %s not found", id))
}

func (s *ServiceStore) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.ServiceListing, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	usersByID := make(map[string]*entities.User, len(s.store.doc.Users))
	for _, u := range s.store.doc.Users {
		usersByID[u.ID] = u
	}

	ratingSum := map[string]int{}
	ratingCount := map[string]int{}
	for _, r := range s.store.doc.Reviews {
		ratingSum[r.ServiceID] += r.Rating
		ratingCount[r.ServiceID]++
	}

	out := []*entities.ServiceListing{}
	for _, svc := range s.store.doc.Services {
		if filter.Category != "" && svc.Category != filter.Category {
			continue
		}
		if filter.Location != "" && svc.Location != filter.Location {
			continue
		}
		if filter.ProviderID != "" && svc.ProviderID != filter.ProviderID {
			continue
		}

		listing := &entities.ServiceListing{Service: *copyService(svc)}
		if owner, ok := usersByID[svc.ProviderID]; ok {
			summary := &entities.ProviderSummary{
				ID:      owner.ID,
				Name:    owner.Name,
				Role:    owner.Role,
				Reviews: ratingCount[svc.ID],
			}
			if n := ratingCount[svc.ID]; n > 0 {
				summary.Rating = float64(ratingSum[svc.ID]) / float64(n)
			}
			listing.Provider = summary
		}
		out = append(out, listing)
	}
	return out, nil
}

func (s *ServiceStore) Create(ctx context.Context, service *entities.Service) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if service.ID == "" {
		service.ID = uuid.NewString()
	}
	if service.CreatedAt.IsZero() {
		service.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Services = append(s.store.doc.Services, copyService(service))
	return s.store.persistLocked()
}

func (s *ServiceStore) Update(ctx context.Context, id string, patch repositories.ServicePatch) (*entities.Service, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, svc := range s.store.doc.Services {
		if svc.ID != id {
			continue
		}
		applyServicePatch(svc, patch)
		if err := s.store.persistLocked(); err != nil {
			return nil, err
		}
		return copyService(svc), nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("service %s not found", id))
}

func (s *ServiceStore) Delete(ctx context.Context, id string) (*entities.Service, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for i, svc := range s.store.doc.Services {
		if svc.ID == id {
			removed := copyService(svc)
			s.store.doc.Services = append(s.store.doc.Services[:i], s.store.doc.Services[i+1:]...)
			if err := s.store.persistLocked(); err != nil {
				return nil, err
			}
			return removed, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("service %s not found", id))
}

func (s *ServiceStore) Upsert(ctx context.Context, service *entities.Service) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, svc := range s.store.doc.Services {
		if svc.ID == service.ID {
			return false, nil
		}
	}
	if service.ID == "" {
		service.ID = uuid.NewString()
	}
	if service.CreatedAt.IsZero() {
		service.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Services = append(s.store.doc.Services, copyService(service))
	if err := s.store.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

func applyServicePatch(svc *entities.Service, patch repositories.ServicePatch) {
	if patch.Title != nil {
		svc.Title = *patch.Title
	}
	if patch.Description != nil {
		svc.Description = *patch.Description
	}
	if patch.Category != nil {
		svc.Category = *patch.Category
	}
	if patch.Location != nil {
		svc.Location = *patch.Location
	}
	if patch.Price != nil {
		svc.Price = *patch.Price
	}
	if patch.Image != nil {
		svc.Image = *patch.Image
	}
	if patch.SocialInstagram != nil {
		svc.SocialInstagram = *patch.SocialInstagram
	}
	if patch.SocialWhatsapp != nil {
		svc.SocialWhatsapp = *patch.SocialWhatsapp
	}
}
