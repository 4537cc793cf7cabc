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

const questionColumns = "id, service_id, user_id, question, answer, created_at"

// QuestionAdapter implements question persistence in Postgres.
type QuestionAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewQuestionAdapter creates a new question adapter.
func NewQuestionAdapter(client *postgres.Client) repositories.QuestionRepository {
	return &QuestionAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func scanQuestion(row interface{ Scan(dest ...any) error }) (*entities.Question, error) {
	var q entities.Question
	err := row.Scan(&q.ID, &q.ServiceID, &q.UserID, &q.Text, &q.Answer, &q.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (a *QuestionAdapter) Create(ctx context.Context, question *entities.Question) error {
	if question.ID == "" {
		question.ID = newID()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = nowUTC()
	}

	record := goqu.Record{
		"id":         question.ID,
		"service_id": question.ServiceID,
		"user_id":    question.UserID,
		"question":   question.Text,
		"answer":     question.Answer,
		"created_at": question.CreatedAt,
	}
	query, args, err := a.db.Insert("questions").Rows(record).Prepared(true).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build question insert query", err)
	}
	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create question", err)
	}
	return nil
}

func (a *QuestionAdapter) GetByID(ctx context.Context, id string) (*entities.Question, error) {
	query := fmt.Sprintf("SELECT %s FROM questions WHERE id = $1", questionColumns)
	q, err := scanQuestion(a.client.DB().QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("question %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get question", err)
	}
	return q, nil
}

func (a *QuestionAdapter) ListByService(ctx context.Context, serviceID string) ([]*entities.Question, error) {
	query := fmt.Sprintf("SELECT %s FROM questions WHERE service_id = $1", questionColumns)
	rows, err := a.client.DB().QueryContext(ctx, query, serviceID)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list questions", err)
	}
	defer rows.Close()

	out := []*entities.Question{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan question", err)
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to iterate questions", err)
	}
	return out, nil
}

func (a *QuestionAdapter) Update(ctx context.Context, id string, patch repositories.QuestionPatch) (*entities.Question, error) {
	if patch.Answer != nil {
		query, args, err := a.db.Update("questions").
			Set(goqu.Record{"answer": *patch.Answer}).
			Where(goqu.Ex{"id": id}).
			Prepared(true).ToSQL()
		if err != nil {
			return nil, apperrors.NewInternalError("failed to build question update query", err)
		}
		res, err := a.client.DB().ExecContext(ctx, query, args...)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to update question", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("question %s not found", id))
		}
	}
	return a.GetByID(ctx, id)
}

func (a *QuestionAdapter) Upsert(ctx context.Context, question *entities.Question) (bool, error) {
	if question.ID == "" {
		question.ID = newID()
	}
	if question.CreatedAt.IsZero() {
		question.CreatedAt = nowUTC()
	}
	query := `INSERT INTO questions (id, service_id, user_id, question, answer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO NOTHING`
	res, err := a.client.DB().ExecContext(ctx, query,
		question.ID, question.ServiceID, question.UserID, question.Text,
		question.Answer, question.CreatedAt)
	if err != nil {
		return false, apperrors.NewInternalError("failed to upsert question", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, apperrors.NewInternalError("failed to read upsert result", err)
	}
	return n > 0, nil
}
