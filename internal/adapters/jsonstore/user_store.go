package jsonstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// UserStore implements repositories.UserRepository on the shared document.
type UserStore struct {
	store *Store
}

// NewUserStore creates a user repository backed by the given store.
func NewUserStore(store *Store) *UserStore {
	return &UserStore{store: store}
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*entities.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, u := range s.store.doc.Users {
		if u.ID == id {
			return copyUser(u), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	for _, u := range s.store.doc.Users {
		if u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
}

func (s *UserStore) List(ctx context.Context) ([]*entities.User, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := make([]*entities.User, 0, len(s.store.doc.Users))
	for _, u := range s.store.doc.Users {
		out = append(out, copyUser(u))
	}
	return out, nil
}

func (s *UserStore) Create(ctx context.Context, user *entities.User) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Favorites == nil {
		user.Favorites = []string{}
	}
	s.store.doc.Users = append(s.store.doc.Users, copyUser(user))
	return s.store.persistLocked()
}

func (s *UserStore) Update(ctx context.Context, key repositories.UserKey, patch repositories.UserPatch) (*entities.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	idx := -1
	for i, u := range s.store.doc.Users {
		if (key.ID != "" && u.ID == key.ID) || (key.ID == "" && key.Email != "" && u.Email == key.Email) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, apperrors.NewNotFoundError("user not found")
	}

	u := s.store.doc.Users[idx]
	applyUserPatch(u, patch)
	if err := s.store.persistLocked(); err != nil {
		return nil, err
	}
	return copyUser(u), nil
}

func (s *UserStore) Delete(ctx context.Context, id string) (*entities.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for i, u := range s.store.doc.Users {
		if u.ID == id {
			removed := copyUser(u)
			s.store.doc.Users = append(s.store.doc.Users[:i], s.store.doc.Users[i+1:]...)
			if err := s.store.persistLocked(); err != nil {
				return nil, err
			}
			return removed, nil
		}
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", id))
}

func (s *UserStore) ToggleFavorite(ctx context.Context, userID, serviceID string) (*entities.User, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, u := range s.store.doc.Users {
		if u.ID != userID {
			continue
		}
		if u.HasFavorite(serviceID) {
			kept := u.Favorites[:0]
			for _, fav := range u.Favorites {
				if fav != serviceID {
					kept = append(kept, fav)
				}
			}
			u.Favorites = kept
		} else {
			u.Favorites = append(u.Favorites, serviceID)
		}
		if err := s.store.persistLocked(); err != nil {
			return nil, err
		}
		return copyUser(u), nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user %s not found", userID))
}

func (s *UserStore) UpsertByEmail(ctx context.Context, user *entities.User) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, u := range s.store.doc.Users {
		if u.Email == user.Email {
			return false, nil
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Favorites == nil {
		user.Favorites = []string{}
	}
	s.store.doc.Users = append(s.store.doc.Users, copyUser(user))
	if err := s.store.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}

func applyUserPatch(u *entities.User, patch repositories.UserPatch) {
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.Email != nil {
		u.Email = *patch.Email
	}
	if patch.Password != nil {
		u.Password = *patch.Password
	}
	if patch.Role != nil {
		u.Role = *patch.Role
	}
	if patch.Phone != nil {
		u.Phone = *patch.Phone
	}
	if patch.Location != nil {
		u.Location = *patch.Location
	}
	if patch.About != nil {
		u.About = *patch.About
	}
	if patch.Avatar != nil {
		u.Avatar = *patch.Avatar
	}
	if patch.Category != nil {
		u.Category = *patch.Category
	}
	if patch.Favorites != nil {
		u.Favorites = append([]string(nil), (*patch.Favorites)...)
	}
}
