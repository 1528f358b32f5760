package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS predictions (
		id UUID PRIMARY KEY,
		soh DOUBLE PRECISION NOT NULL,
		threshold DOUBLE PRECISION NOT NULL,
		status TEXT NOT NULL,
		mean DOUBLE PRECISION NOT NULL,
		median DOUBLE PRECISION NOT NULL,
		std DOUBLE PRECISION NOT NULL,
		min_v DOUBLE PRECISION NOT NULL,
		max_v DOUBLE PRECISION NOT NULL,
		skew DOUBLE PRECISION NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS provider_usage (
		id UUID PRIMARY KEY,
		provider_id TEXT NOT NULL,
		intent TEXT NOT NULL,
		success BOOLEAN NOT NULL,
		reason TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_provider_usage_created_at ON provider_usage (created_at)`,
}

// EnsureSchema creates the audit tables when missing
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return errors.Wrap(err, "schema setup failed")
		}
	}
	return nil
}
