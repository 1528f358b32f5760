package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Inshalc/battery-soh-chatbot/ports"
)

// UsageRepositoryImpl implements ports.UsageRepository for PostgreSQL
type UsageRepositoryImpl struct {
	db *sqlx.DB
}

// NewUsageRepository creates a new PostgreSQL provider-usage repository
func NewUsageRepository(db *sqlx.DB) ports.UsageRepository {
	return &UsageRepositoryImpl{db: db}
}

// Record persists one provider attempt
func (r *UsageRepositoryImpl) Record(ctx context.Context, usage *ports.ProviderUsage) error {
	if usage.ID == uuid.Nil {
		usage.ID = uuid.New()
	}
	if usage.CreatedAt.IsZero() {
		usage.CreatedAt = time.Now()
	}

	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO provider_usage (
			id, provider_id, intent, success, reason, created_at
		) VALUES (
			:id, :provider_id, :intent, :success, :reason, :created_at
		)
	`, usage)
	return err
}

// Summary aggregates attempts per provider since a point in time
func (r *UsageRepositoryImpl) Summary(ctx context.Context, since time.Time) ([]*ports.ProviderUsageSummary, error) {
	var summaries []*ports.ProviderUsageSummary
	err := r.db.SelectContext(ctx, &summaries, `
		SELECT provider_id,
		       COUNT(*) AS request_count,
		       COUNT(*) FILTER (WHERE success) AS success_count
		FROM provider_usage
		WHERE created_at >= $1
		GROUP BY provider_id
		ORDER BY request_count DESC
	`, since)
	return summaries, err
}
