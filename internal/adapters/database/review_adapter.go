package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// ReviewAdapter implements review persistence in Postgres.
type ReviewAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReviewAdapter creates a new review adapter.
func NewReviewAdapter(client *postgres.Client) repositories.ReviewRepository {
	return &ReviewAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func (a *ReviewAdapter) Create(ctx context.Context, review *entities.Review) error {
	if review.ID == "" {
		review.ID = newID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = nowUTC()
	}

	record := goqu.Record{
		"id":         review.ID,
		"service_id": review.ServiceID,
		"author_id":  review.AuthorID,
		"rating":     review.Rating,
		"comment":    review.Comment,
		"created_at": review.CreatedAt,
	}
	query, args, err := a.db.Insert("reviews").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build review insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create review", err)
	}
	return nil
}

// List applies the first populated filter field; an empty filter matches
// every review, which callers depend on.
func (a *ReviewAdapter) List(ctx context.Context, filter repositories.ReviewFilter) ([]*entities.Review, error) {
	base := "SELECT id, service_id, author_id, rating, comment, created_at FROM reviews"
	var (
		query = base
		args  []any
	)
	switch {
	case filter.ServiceID != "":
		query = base + " WHERE service_id = $1"
		args = []any{filter.ServiceID}
	case len(filter.ServiceIDs) > 0:
		query = base + " WHERE service_id = ANY($1)"
		args = []any{pq.Array(filter.ServiceIDs)}
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reviews", err)
	}
	defer rows.Close()

	out := []*entities.Review{}
	for rows.Next() {
		var r entities.Review
		if err := rows.Scan(&r.ID, &r.ServiceID, &r.AuthorID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		out = append(out, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}
	return out, nil
}

func (a *ReviewAdapter) Upsert(ctx context.Context, review *entities.Review) (bool, error) {
	if review.ID == "" {
		review.ID = newID()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = nowUTC()
	}
	query := `INSERT INTO reviews (id, service_id, author_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`
	res, err := a.client.DB().ExecContext(ctx, query,
		review.ID, review.ServiceID, review.AuthorID,
		review.Rating, review.Comment, review.CreatedAt)
	if err != nil {
		return false, apperrors.NewInternalError("failed to upsert review", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to read upsert result", err)
	}
	return n > 0, nil
}
