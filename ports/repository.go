package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
)

// PredictionRecord is one persisted analysis outcome, kept for audit
// only. The chat path never reads these back.
type PredictionRecord struct {
	ID        uuid.UUID              `json:"id" db:"id"`
	SOH       float64                `json:"soh" db:"soh"`
	Threshold float64                `json:"threshold" db:"threshold"`
	Status    battery.HealthStatus   `json:"status" db:"status"`
	Mean      float64                `json:"mean" db:"mean"`
	Median    float64                `json:"median" db:"median"`
	Std       float64                `json:"std" db:"std"`
	MinV      float64                `json:"min" db:"min_v"`
	MaxV      float64                `json:"max" db:"max_v"`
	Skew      float64                `json:"skew" db:"skew"`
	CreatedAt time.Time              `json:"created_at" db:"created_at"`
}

// PredictionRepository persists analysis outcomes
type PredictionRepository interface {
	Record(ctx context.Context, record *PredictionRecord) error
	ListRecent(ctx context.Context, limit int) ([]*PredictionRecord, error)
}

// ProviderUsage is one recorded provider attempt
type ProviderUsage struct {
	ID         uuid.UUID `json:"id" db:"id"`
	ProviderID string    `json:"provider_id" db:"provider_id"`
	Intent     string    `json:"intent" db:"intent"`
	Success    bool      `json:"success" db:"success"`
	Reason     string    `json:"reason" db:"reason"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ProviderUsageSummary aggregates attempts per provider
type ProviderUsageSummary struct {
	ProviderID   string `json:"provider_id" db:"provider_id"`
	RequestCount int    `json:"request_count" db:"request_count"`
	SuccessCount int    `json:"success_count" db:"success_count"`
}

// UsageRepository persists provider attempt records
type UsageRepository interface {
	Record(ctx context.Context, usage *ProviderUsage) error
	Summary(ctx context.Context, since time.Time) ([]*ProviderUsageSummary, error)
}
