package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// NotificationAdapter implements notification persistence in Postgres.
type NotificationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewNotificationAdapter creates a new notification adapter.
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	if notification.ID == "" {
		notification.ID = newID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = nowUTC()
	}

	record := goqu.Record{
		"id":         notification.ID,
		"user_id":    notification.UserID,
		"message":    notification.Message,
		"read":       notification.Read,
		"type":       notification.Type,
		"link":       notification.Link,
		"created_at": notification.CreatedAt,
	}
	query, args, err := a.db.Insert("notifications").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build notification insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create notification", err)
	}
	return nil
}

func (a *NotificationAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Notification, error) {
	query := `SELECT id, user_id, message, read, type, link, created_at
		FROM notifications WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := a.client.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}
	defer rows.Close()

	out := []*entities.Notification{}
	for rows.Next() {
		var n entities.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.Type, &n.Link, &n.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan notification", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate notifications", err)
	}
	return out, nil
}

func (a *NotificationAdapter) MarkRead(ctx context.Context, id string) error {
	query, args, err := a.db.Update("notifications").
		Set(goqu.Record{"read": true}).
		Where(goqu.Ex{"id": id}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build notification update query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to mark notification read", err)
	}
	return nil
}

func (a *NotificationAdapter) MarkAllRead(ctx context.Context, userID string) error {
	query, args, err := a.db.Update("notifications").
		Set(goqu.Record{"read": true}).
		Where(goqu.Ex{"user_id": userID}).
		Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build notification update query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to mark notifications read", err)
	}
	return nil
}

func (a *NotificationAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("notifications").Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build notification delete query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete notification", err)
	}
	return nil
}

func (a *NotificationAdapter) DeleteAllForUser(ctx context.Context, userID string) error {
	query, args, err := a.db.Delete("notifications").Where(goqu.Ex{"user_id": userID}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build notification delete query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete notifications", err)
	}
	return nil
}

func (a *NotificationAdapter) Upsert(ctx context.Context, notification *entities.Notification) (bool, error) {
	if notification.ID == "" {
		notification.ID = newID()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = nowUTC()
	}
	query := `INSERT INTO notifications (id, user_id, message, read, type, link, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO NOTHING`
	res, err := a.client.DB().ExecContext(ctx, query,
		notification.ID, notification.UserID, notification.Message,
		notification.Read, notification.Type, notification.Link, notification.CreatedAt)
	if err != nil {
		return false, apperrors.NewInternalError("failed to upsert notification", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to read upsert result", err)
	}
	return n > 0, nil
}
