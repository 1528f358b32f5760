package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Inshalc/battery-soh-chatbot/ports"
)

// PredictionRepositoryImpl implements ports.PredictionRepository for PostgreSQL
type PredictionRepositoryImpl struct {
	db *sqlx.DB
}

// NewPredictionRepository creates a new PostgreSQL prediction repository
func NewPredictionRepository(db *sqlx.DB) ports.PredictionRepository {
	return &PredictionRepositoryImpl{db: db}
}

// Record persists one analysis outcome
func (r *PredictionRepositoryImpl) Record(ctx context.Context, record *ports.PredictionRecord) error {
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO predictions (
			id, soh, threshold, status, mean, median, std, min_v, max_v, skew, created_at
		) VALUES (
			:id, :soh, :threshold, :status, :mean, :median, :std, :min_v, :max_v, :skew, :created_at
		)
	`, record)
	return err
}

// ListRecent returns the newest analysis records
func (r *PredictionRepositoryImpl) ListRecent(ctx context.Context, limit int) ([]*ports.PredictionRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	var records []*ports.PredictionRecord
	err := r.db.SelectContext(ctx, &records, `
		SELECT id, soh, threshold, status, mean, median, std, min_v, max_v, skew, created_at
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	return records, err
}
