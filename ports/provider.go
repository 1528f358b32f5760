package ports

import "context"

// Provider is the capability interface one generative response source
// implements. The chain holds an ordered list of these; it never cares
// which vendor or model sits behind an entry.
type Provider interface {
	// ID identifies the provider for observability and attempt records
	ID() string

	// Respond produces text for a prompt. Failures are recovered by the
	// caller advancing to the next provider; implementations should
	// honor ctx deadlines rather than block.
	Respond(ctx context.Context, prompt string) (string, error)
}
