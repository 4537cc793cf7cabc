package services

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// UserService handles accounts, authentication and favorites.
type UserService struct {
	users    repositories.UserRepository
	services repositories.ServiceRepository
}

// NewUserService creates a new user service.
func NewUserService(users repositories.UserRepository, services repositories.ServiceRepository) *UserService {
	return &UserService{users: users, services: services}
}

// RegisterInput carries the fields accepted at signup.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	About    string `json:"about"`
	Avatar   string `json:"avatar"`
	Category string `json:"category"`
}

// Register creates an account. The email must be unused. Passwords are
// stored as given; there is no hashing in this system.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*entities.User, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.NewValidationError("name, email and password are required")
	}

	if _, err := s.users.GetByEmail(ctx, input.Email); err == nil {
		return nil, apperrors.NewConflictError("email is already registered")
	} else if !apperrors.IsNotFound(err) {
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = entities.RoleClient
	}

	user := &entities.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Role:     role,
		Phone:    input.Phone,
		Location: input.Location,
		About:    input.About,
		Avatar:   input.Avatar,
		Category: input.Category,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// Authenticate checks the credentials by plain equality and returns the
// sanitized user.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*entities.User, error) {
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}
	if user.Password != password {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}
	return user.Sanitized(), nil
}

// Get returns one sanitized user.
func (s *UserService) Get(ctx context.Context, id string) (*entities.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Sanitized(), nil
}

// List returns every user, sanitized.
func (s *UserService) List(ctx context.Context) ([]*entities.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*entities.User, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return out, nil
}

// UpdateProfileInput carries a self-service profile update, keyed by
// email. Changing the password requires the current one.
type UpdateProfileInput struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}

// UpdateProfile updates name and/or password for the account with the
// given email.
func (s *UserService) UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entities.User, error) {
	if input.Email == "" {
		return nil, apperrors.NewValidationError("email is required")
	}

	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	patch := repositories.UserPatch{}
	if input.Name != "" {
		patch.Name = &input.Name
	}
	if input.NewPassword != "" {
		if user.Password != input.Password {
			return nil, apperrors.NewUnauthorizedError("current password is incorrect")
		}
		patch.Password = &input.NewPassword
	}

	updated, err := s.users.Update(ctx, repositories.UserKey{Email: input.Email}, patch)
	if err != nil {
		return nil, err
	}
	return updated.Sanitized(), nil
}

// AdminUpdate updates name, email and role of any account by id.
func (s *UserService) AdminUpdate(ctx context.Context, id string, patch repositories.UserPatch) (*entities.User, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	updated, err := s.users.Update(ctx, repositories.UserKey{ID: id}, patch)
	if err != nil {
		return nil, err
	}
	return updated.Sanitized(), nil
}

// Delete removes an account and returns the removed record, sanitized.
func (s *UserService) Delete(ctx context.Context, id string) (*entities.User, error) {
	if id == "" {
		return nil, apperrors.NewValidationError("id is required")
	}
	removed, err := s.users.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	return removed.Sanitized(), nil
}

// ToggleFavorite flips serviceID in the user's favorites and returns the
// resulting favorites set.
func (s *UserService) ToggleFavorite(ctx context.Context, userID, serviceID string) ([]string, error) {
	if userID == "" || serviceID == "" {
		return nil, apperrors.NewValidationError("userId and serviceId are required")
	}
	user, err := s.users.ToggleFavorite(ctx, userID, serviceID)
	if err != nil {
		return nil, err
	}
	return user.Favorites, nil
}

// ListFavorites returns the user's favorited services as catalog listings.
// Favorite IDs whose service no longer exists are silently dropped.
func (s *UserService) ListFavorites(ctx context.Context, userID string) ([]*entities.ServiceListing, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	listings, err := s.services.List(ctx, repositories.ServiceFilter{})
	if err != nil {
		return nil, err
	}

	favorites := make(map[string]struct{}, len(user.Favorites))
	for _, id := range user.Favorites {
		favorites[id] = struct{}{}
	}
	out := []*entities.ServiceListing{}
	for _, listing := range listings {
		if _, ok := favorites[listing.ID]; ok {
			out = append(out, listing)
		}
	}
	return out, nil
}
