package repositories

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// UserKey identifies a user by id or by email. When both are set the id
// wins.
type UserKey struct {
	ID    string
	Email string
}

// UserPatch is a shallow merge over an existing user: nil fields are left
// untouched.
type UserPatch struct {
	Name      *string
	Email     *string
	Password  *string
	Role      *string
	Phone     *string
	Location  *string
	About     *string
	Avatar    *string
	Category  *string
	Favorites *[]string
}

// UserRepository defines the per-user store operations. Both the JSON file
// store and the Postgres adapter implement it with identical observable
// behavior.
type UserRepository interface {
	// GetByID retrieves a user by id.
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by email.
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// List returns every user.
	List(ctx context.Context) ([]*entities.User, error)

	// Create stores a new user, assigning an id when empty and
	// defaulting favorites to an empty set.
	Create(ctx context.Context, user *entities.User) error

	// Update merges the patch over the user identified by key and
	// returns the merged record.
	Update(ctx context.Context, key UserKey, patch UserPatch) (*entities.User, error)

	// Delete removes a user and returns the removed record. Related
	// services, contracts and notifications are NOT cascaded; their
	// references are allowed to dangle.
	Delete(ctx context.Context, id string) (*entities.User, error)

	// ToggleFavorite adds serviceID to the user's favorites when absent
	// and removes it when present. Applying it twice is a no-op.
	ToggleFavorite(ctx context.Context, userID, serviceID string) (*entities.User, error)

	// UpsertByEmail inserts the user when no user with that email
	// exists; otherwise it changes nothing. Returns whether a record
	// was inserted. Used by the snapshot import.
	UpsertByEmail(ctx context.Context, user *entities.User) (bool, error)
}
