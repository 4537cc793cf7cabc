package jsonstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/servineo/backend/internal/domain/entities"
)

// NotificationStore implements repositories.NotificationRepository on the
// shared document.
type NotificationStore struct {
	store *Store
}

// NewNotificationStore creates a notification repository backed by the
// given store.
func NewNotificationStore(store *Store) *NotificationStore {
	return &NotificationStore{store: store}
}

func (s *NotificationStore) Create(ctx context.Context, notification *entities.Notification) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Notifications = append(s.store.doc.Notifications, copyNotification(notification))
	return s.store.persistLocked()
}

func (s *NotificationStore) ListByUser(ctx context.Context, userID string) ([]*entities.Notification, error) {
	s.store.mu.RLock()
	defer s.store.mu.RUnlock()

	out := []*entities.Notification{}
	for _, n := range s.store.doc.Notifications {
		if n.UserID == userID {
			out = append(out, copyNotification(n))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (s *NotificationStore) MarkRead(ctx context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, n := range s.store.doc.Notifications {
		if n.ID == id {
			n.Read = true
			return s.store.persistLocked()
		}
	}
	return nil
}

func (s *NotificationStore) MarkAllRead(ctx context.Context, userID string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	changed := false
	for _, n := range s.store.doc.Notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.store.persistLocked()
}

func (s *NotificationStore) Delete(ctx context.Context, id string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for i, n := range s.store.doc.Notifications {
		if n.ID == id {
			s.store.doc.Notifications = append(s.store.doc.Notifications[:i], s.store.doc.Notifications[i+1:]...)
			return s.store.persistLocked()
		}
	}
	return nil
}

func (s *NotificationStore) DeleteAllForUser(ctx context.Context, userID string) error {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	kept := s.store.doc.Notifications[:0]
	removed := false
	for _, n := range s.store.doc.Notifications {
		if n.UserID == userID {
			removed = true
			continue
		}
		kept = append(kept, n)
	}
	s.store.doc.Notifications = kept
	if !removed {
		return nil
	}
	return s.store.persistLocked()
}

func (s *NotificationStore) Upsert(ctx context.Context, notification *entities.Notification) (bool, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	for _, n := range s.store.doc.Notifications {
		if n.ID == notification.ID {
			return false, nil
		}
	}
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	s.store.doc.Notifications = append(s.store.doc.Notifications, copyNotification(notification))
	if err := s.store.persistLocked(); err != nil {
		return false, err
	}
	return true, nil
}
