package usage

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Inshalc/battery-soh-chatbot/domain/chat"
	"github.com/Inshalc/battery-soh-chatbot/internal"
	"github.com/Inshalc/battery-soh-chatbot/ports"
)

// Service records provider attempts for observability. Recording is
// best-effort: a tracking failure never fails the caller's request.
type Service struct {
	repo   ports.UsageRepository
	logger *internal.Logger
}

// NewService creates a new usage service. A nil repository disables
// recording entirely (no DATABASE_URL configured).
func NewService(repo ports.UsageRepository) *Service {
	return &Service{repo: repo, logger: internal.NewDefaultLogger()}
}

// RecordAttempts asynchronously persists the attempts of one chat turn
func (s *Service) RecordAttempts(intent chat.Intent, attempts []chat.ProviderAttempt) {
	if s == nil || s.repo == nil || len(attempts) == 0 {
		return
	}

	records := make([]*ports.ProviderUsage, 0, len(attempts))
	now := time.Now()
	for _, attempt := range attempts {
		records = append(records, &ports.ProviderUsage{
			ID:         uuid.New(),
			ProviderID: attempt.ProviderID,
			Intent:     string(intent),
			Success:    attempt.Success,
			Reason:     attempt.Reason,
			CreatedAt:  now,
		})
	}

	// Async persistence keeps tracking off the chat latency path
	go func() {
		for _, record := range records {
			if err := s.persistWithRetry(record); err != nil {
				s.logger.Error("Failed to persist provider attempt for %s: %v", record.ProviderID, err)
			}
		}
	}()
}

// Summary aggregates recorded attempts per provider
func (s *Service) Summary(ctx context.Context, since time.Time) ([]*ports.ProviderUsageSummary, error) {
	if s == nil || s.repo == nil {
		return nil, nil
	}
	return s.repo.Summary(ctx, since)
}

// Enabled reports whether a repository is wired in
func (s *Service) Enabled() bool {
	return s != nil && s.repo != nil
}

func (s *Service) persistWithRetry(record *ports.ProviderUsage) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err = s.repo.Record(ctx, record)
		cancel()
		if err == nil {
			return nil
		}
		time.Sleep(time.Duration(attempt+1) * 500 * time.Millisecond)
	}
	return err
}
