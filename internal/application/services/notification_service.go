package services

import (
	"context"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// NotificationService exposes the per-user notification feed.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List returns the recipient's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID string) ([]*entities.Notification, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("userId is required")
	}
	return s.notifications.ListByUser(ctx, userID)
}

// MarkRead flags one notification as read.
func (s *NotificationService) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("id is required")
	}
	return s.notifications.MarkRead(ctx, id)
}

// MarkAllRead flags the recipient's whole feed as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.NewValidationError("userId is required")
	}
	return s.notifications.MarkAllRead(ctx, userID)
}

// Delete removes one notification.
func (s *NotificationService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.NewValidationError("id is required")
	}
	return s.notifications.Delete(ctx, id)
}

// DeleteAll clears the recipient's feed.
func (s *NotificationService) DeleteAll(ctx context.Context, userID string) error {
	if userID == "" {
		return apperrors.NewValidationError("userId is required")
	}
	return s.notifications.DeleteAllForUser(ctx, userID)
}
