package repositories

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
)

// NotificationRepository defines the per-notification store operations.
type NotificationRepository interface {
	// Create stores a new notification, assigning an id and createdAt
	// when empty and defaulting read to false.
	Create(ctx context.Context, notification *entities.Notification) error

	// ListByUser returns the recipient's notifications, newest first.
	ListByUser(ctx context.Context, userID string) ([]*entities.Notification, error)

	// MarkRead flags one notification as read. Missing ids are a no-op.
	MarkRead(ctx context.Context, id string) error

	// MarkAllRead flags every notification of the recipient as read.
	MarkAllRead(ctx context.Context, userID string) error

	// Delete removes a notification. Missing ids are a no-op.
	Delete(ctx context.Context, id string) error

	// DeleteAllForUser removes every notification of the recipient.
	DeleteAllForUser(ctx context.Context, userID string) error

	// Upsert inserts the notification when its id is absent; otherwise
	// it changes nothing. Used by the snapshot import.
	Upsert(ctx context.Context, notification *entities.Notification) (bool, error)
}
