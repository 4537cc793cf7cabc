package entities

import "time"

// Notification types
const (
	NotificationTypeContract = "contract"
	NotificationTypeSystem   = "system"
	NotificationTypeMessage  = "message"
)

// Notification is an in-app message for a single recipient. Delivery is
// best-effort: fan-out failures never roll back the operation that
// triggered them.
type Notification struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Read      bool      `json:"read" db:"read"`
	Type      string    `json:"type,omitempty" db:"type"`
	Link      string    `json:"link,omitempty" db:"link"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
