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

const contractColumns = "id, service_id, client_id, provider_id, status, created_at"

// ContractAdapter implements contract persistence in Postgres.
type ContractAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewContractAdapter creates a new contract adapter.
func NewContractAdapter(client *postgres.Client) repositories.ContractRepository {
	return &ContractAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanContract(row interface{ Scan(dest ...any) error }) (*entities.Contract, error) {
	var c entities.Contract
	err := row.Scan(&c.ID, &c.ServiceID, &c.ClientID, &c.ProviderID, &c.Status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (a *ContractAdapter) Create(ctx context.Context, contract *entities.Contract) error {
	if contract.ID == "" {
		contract.ID = newID()
	}
	if contract.Status == "" {
		contract.Status = entities.ContractStatusPending
	}
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = nowUTC()
	}

	record := goqu.Record{
		"id":          contract.ID,
		"service_id":  contract.ServiceID,
		"client_id":   contract.ClientID,
		"provider_id": contract.ProviderID,
		"status":      contract.Status,
		"created_at":  contract.CreatedAt,
	}
	query, args, err := a.db.Insert("contracts").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build contract insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create contract", err)
	}
	return nil
}

func (a *ContractAdapter) GetByID(ctx context.Context, id string) (*entities.Contract, error) {
	query := fmt.Sprintf("SELECT %s FROM contracts WHERE id = $1", contractColumns)
	c, err := scanContract(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("contract %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get contract", err)
	}
	return c, nil
}

func (a *ContractAdapter) List(ctx context.Context, filter repositories.ContractFilter) ([]*entities.Contract, error) {
	query := fmt.Sprintf(`SELECT %s FROM contracts
		WHERE ($1 = '' OR service_id = $1)
		  AND ($2 = '' OR client_id = $2)
		  AND ($3 = '' OR provider_id = $3)`, contractColumns)
	rows, err := a.client.DB().QueryContext(ctx, query, filter.ServiceID, filter.ClientID, filter.ProviderID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list contracts", err)
	}
	defer rows.Close()

	out := []*entities.Contract{}
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan contract", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate contracts", err)
	}
	return out, nil
}

func (a *ContractAdapter) Update(ctx context.Context, id string, patch repositories.ContractPatch) (*entities.Contract, error) {
	if patch.Status != nil {
		query, args, err := a.db.Update("contracts").
			Set(goqu.Record{"status": *patch.Status}).
			Where(goqu.Ex{"id": id}).
			Prepared(true).ToSQL()
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build contract update query", err)
		}
		res, err := a.client.DB().ExecContext(ctx, query, args...)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to update contract", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("contract %s not found", id))
		}
	}
	return a.GetByID(ctx, id)
}

func (a *ContractAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("contracts").Where(goqu.Ex{"id": id}).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build contract delete query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete contract", err)
	}
	return nil
}

func (a *ContractAdapter) DeleteAll(ctx context.Context, filter repositories.ContractOwnerFilter) error {
	conds := []goqu.Expression{}
	if filter.ProviderID != "" {
		conds = append(conds, goqu.Ex{"provider_id": filter.ProviderID})
	}
	if filter.ClientID != "" {
		conds = append(conds, goqu.Ex{"client_id": filter.ClientID})
	}
	if len(conds) == 0 {
		return nil
	}
	query, args, err := a.db.Delete("contracts").Where(goqu.Or(conds...)).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build contracts delete query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to delete contracts", err)
	}
	return nil
}

func (a *ContractAdapter) Upsert(ctx context.Context, contract *entities.Contract) (bool, error) {
	if contract.ID == "" {
		contract.ID = newID()
	}
	if contract.Status == "" {
		contract.Status = entities.ContractStatusPending
	}
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = nowUTC()
	}
	query := `INSERT INTO contracts (id, service_id, client_id, provider_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`
	res, err := a.client.DB().ExecContext(ctx, query,
		contract.ID, contract.ServiceID, contract.ClientID, contract.ProviderID,
		contract.Status, contract.CreatedAt)
	if err != nil {
		return false, apperrors.NewInternalError("failed to upsert contract", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to read upsert result", err)
	}
	return n > 0, nil
}
