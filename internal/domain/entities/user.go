package entities

// User roles
const (
	RoleClient   = "client"
	RoleProvider = "provider"
)

// User represents a marketplace account, either a client or a service
// provider. JSON field names are the legacy wire shape and must not change.
type User struct {
	ID       string `json:"id" db:"id"`
	Name     string `json:"name" db:"name"`
	Email    string `json:"email" db:"email"`
	Password string `json:"password,omitempty" db:"password"`
	Role     string `json:"role" db:"role"`
	Phone    string `json:"phone,omitempty" db:"phone"`
	Location string `json:"location,omitempty" db:"location"`
	About    string `json:"about,omitempty" db:"about"`
	Avatar   string `json:"avatar,omitempty" db:"avatar"`

	// Category is only meaningful for providers.
	Category string `json:"category,omitempty" db:"category"`

	// Favorites holds service IDs. Entries may dangle: a favorited
	// service can be deleted without cascading here.
	Favorites []string `json:"favorites" db:"favorites"`
}

// Sanitized returns a copy of the user with the password stripped, safe to
// return to HTTP callers.
func (u *User) Sanitized() *User {
	out := *u
	out.Password = ""
	out.Favorites = append([]string(nil), u.Favorites...)
	return &out
}

// HasFavorite reports whether serviceID is in the user's favorites.
func (u *User) HasFavorite(serviceID string) bool {
	for _, id := range u.Favorites {
		if id == serviceID {
			return true
		}
	}
	return false
}
