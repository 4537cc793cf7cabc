package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/servineo/backend/internal/domain/entities"
	"github.com/servineo/backend/internal/domain/repositories"
	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servineo/backend/pkg/errors"
)

const serviceColumns = "id, title, description, category, location, price, image, social_instagram, social_whatsapp, provider_id, created_at"

// ServiceAdapter implements service persistence in Postgres.
type ServiceAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewServiceAdapter creates a new service adapter.
func NewServiceAdapter(client *postgres.Client) repositories.ServiceRepository {
	return &ServiceAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanService(row interface{ Scan(dest ...any) error }) (*entities.Service, error) {
	var s entities.Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Category, &s.Location,
		&s.Price, &s.Image, &s.SocialInstagram, &s.SocialWhatsapp,
		&s.ProviderID, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (a *ServiceAdapter) GetByID(ctx context.Context, id string) (*entities.Service, error) {
	query := fmt.Sprintf("SELECT %s FROM services WHERE id = $1", serviceColumns)
	svc, err := scanService(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("service %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get service", err)
	}
	return svc, nil
}

func (a *ServiceAdapter) GetDetail(ctx context.Context, id string) (*entities.ServiceDetail, error) {
	svc, err := a.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	detail := &entities.ServiceDetail{Service: *svc, Reviews: []*entities.Review{}}

	owner, err := scanUser(a.client.DB().QueryRowContext(ctx,
		fmt.Sprintf("SELECT %s FROM users WHERE id = $1", userColumns), svc.ProviderID))
	if err != nil && err != sql.ErrNoRows {
		return nil, apperrors.NewInternalError("failed to get service provider", err)
	}
	if owner != nil {
		detail.Provider = owner.Sanitized()
	}

	rows, err := a.client.DB().QueryContext(ctx,
		"SELECT id, service_id, author_id, rating, comment, created_at FROM reviews WHERE service_id = $1", id)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list service reviews", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r entities.Review
		if err := rows.Scan(&r.ID, &r.ServiceID, &r.AuthorID, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan review", err)
		}
		detail.Reviews = append(detail.Reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate reviews", err)
	}
	return detail, nil
}

// List joins owners and review aggregates in one pass. The provider block
// is null for orphaned services rather than an error.
func (a *ServiceAdapter) List(ctx context.Context, filter repositories.ServiceFilter) ([]*entities.ServiceListing, error) {
	query := `
		SELECT s.id, s.title, s.description, s.category, s.location, s.price, s.image,
		       s.social_instagram, s.social_whatsapp, s.provider_id, s.created_at,
		       u.id, u.name, u.role,
		       COALESCE(AVG(r.rating), 0), COUNT(r.id)
		FROM services s
		LEFT JOIN users u ON u.id = s.provider_id
		LEFT JOIN reviews r ON r.service_id = s.id
		WHERE ($1 = '' OR s.category = $1)
		  AND ($2 = '' OR s.location = $2)
		  AND ($3 = '' OR s.provider_id = $3)
		GROUP BY s.id, u.id, u.name, u.role`

	rows, err := a.client.DB().QueryContext(ctx, query, filter.Category, filter.Location, filter.ProviderID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list services", err)
	}
	defer rows.Close()

	out := []*entities.ServiceListing{}
	for rows.Next() {
		var (
			listing   entities.ServiceListing
			ownerID   sql.NullString
			ownerName sql.NullString
			ownerRole sql.NullString
			rating    float64
			count     int
		)
		s := &listing.Service
		err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Category, &s.Location,
			&s.Price, &s.Image, &s.SocialInstagram, &s.SocialWhatsapp,
			&s.ProviderID, &s.CreatedAt,
			&ownerID, &ownerName, &ownerRole, &rating, &count)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan service listing", err)
		}
		if ownerID.Valid {
			listing.Provider = &entities.ProviderSummary{
				ID:      ownerID.String,
				Name:    ownerName.String,
				Role:    ownerRole.String,
				Rating:  rating,
				Reviews: count,
			}
		}
		out = append(out, &listing)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate services", err)
	}
	return out, nil
}

func serviceRecord(s *entities.Service) goqu.Record {
	return goqu.Record{
		"id":               s.ID,
		"title":            s.Title,
		"description":      s.Description,
		"category":         s.Category,
		"location":         s.Location,
		"price":            s.Price,
		"image":            s.Image,
		"social_instagram": s.SocialInstagram,
		"social_whatsapp":  s.SocialWhatsapp,
		"provider_id":      s.ProviderID,
		"created_at":       s.CreatedAt,
	}
}

func (a *ServiceAdapter) Create(ctx context.Context, service *entities.Service) error {
	if service.ID == "" {
		service.ID = newID()
	}
	if service.CreatedAt.IsZero() {
		service.CreatedAt = nowUTC()
	}
	query, args, err := a.db.Insert("services").Rows(serviceRecord(service)).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build service insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create service", err)
	}
	return nil
}

func (a *ServiceAdapter) Update(ctx context.Context, id string, patch repositories.ServicePatch) (*entities.Service, error) {
	record := goqu.Record{}
	if patch.Title != nil {
		record["title"] = *patch.Title
	}
	if patch.Description != nil {
		record["description"] = *patch.Description
	}
	if patch.Category != nil {
		record["category"] = *patch.Category
	}
	if patch.Location != nil {
		record["location"] = *patch.Location
	}
	if patch.Price != nil {
		record["price"] = *patch.Price
	}
	if patch.Image != nil {
		record["image"] = *patch.Image
	}
	if patch.SocialInstagram != nil {
		record["social_instagram"] = *patch.SocialInstagram
	}
	if patch.SocialWhatsapp != nil {
		record["social_whatsapp"] = *patch.SocialWhatsapp
	}

	if len(record) > 0 {
		query, args, err := a.db.Update("services").Set(record).Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build service update query", err)
		}
		res, err := a.client.DB().ExecContext(ctx, query, args...)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to update service", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("service %s not found", id))
		}
	}
	return a.GetByID(ctx, id)
}

func (a *ServiceAdapter) Delete(ctx context.Context, id string) (*entities.Service, error) {
	svc, err := a.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	query, args, err := a.db.Delete("services").Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build service delete query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to delete service", err)
	}
	return svc, nil
}

func (a *ServiceAdapter) Upsert(ctx context.Context, service *entities.Service) (bool, error) {
	if service.ID == "" {
		service.ID = newID()
	}
	if service.CreatedAt.IsZero() {
		service.CreatedAt = nowUTC()
	}
	query := `INSERT INTO services (id, title, description, category, location, price, image, social_instagram, social_whatsapp, provider_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO NOTHING`
	res, err := a.client.DB().ExecContext(ctx, query,
		service.ID, service.Title, service.Description, service.Category, service.Location,
		service.Price, service.Image, service.SocialInstagram, service.SocialWhatsapp,
		service.ProviderID, service.CreatedAt)
	if err != nil {
		return false, apperrors.NewInternalError("failed to upsert service", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to read upsert result", err)
	}
	return n > 0, nil
}
