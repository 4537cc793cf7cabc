package database

import (
	"context"

	"github.com/servineo/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/servineo/backend/pkg/errors"
)

// schemaStatements create the relational schema. Idempotent so the
// migration command and tests can run them repeatedly.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL UNIQUE,
		password   TEXT NOT NULL,
		role       TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		location   TEXT NOT NULL DEFAULT '',
		about      TEXT NOT NULL DEFAULT '',
		avatar     TEXT NOT NULL DEFAULT '',
		category   TEXT NOT NULL DEFAULT '',
		favorites  TEXT[] NOT NULL DEFAULT '{}'
	)`,
	`CREATE TABLE IF NOT EXISTS services (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		description      TEXT NOT NULL DEFAULT '',
		category         TEXT NOT NULL DEFAULT '',
		location         TEXT NOT NULL DEFAULT '',
		price            TEXT NOT NULL DEFAULT '',
		image            TEXT NOT NULL DEFAULT '',
		social_instagram TEXT NOT NULL DEFAULT '',
		social_whatsapp  TEXT NOT NULL DEFAULT '',
		provider_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS contracts (
		id          TEXT PRIMARY KEY,
		service_id  TEXT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
		client_id   TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		provider_id TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		status      TEXT NOT NULL DEFAULT 'pending',
		created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		message    TEXT NOT NULL,
		read       BOOLEAN NOT NULL DEFAULT FALSE,
		type       TEXT NOT NULL DEFAULT '',
		link       TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id         TEXT PRIMARY KEY,
		service_id TEXT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
		author_id  TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		rating     INTEGER NOT NULL,
		comment    TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS questions (
		id         TEXT PRIMARY KEY,
		service_id TEXT NOT NULL REFERENCES services(id) ON DELETE CASCADE,
		user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		question   TEXT NOT NULL,
		answer     TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_services_provider ON services(provider_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_client ON contracts(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_contracts_provider ON contracts(provider_id)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_reviews_service ON reviews(service_id)`,
	`CREATE INDEX IF NOT EXISTS idx_questions_service ON questions(service_id)`,
}

// EnsureSchema creates all tables and indexes if they are missing.
func EnsureSchema(ctx context.Context, client *postgres.Client) error {
	for _, stmt := range schemaStatements {
		if _, err := client.DB().ExecContext(ctx, stmt); err != nil {
			return apperrors.NewStorageError("applying schema", err)
		}
	}
	return nil
}
