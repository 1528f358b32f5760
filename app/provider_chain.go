package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Inshalc/battery-soh-chatbot/domain/chat"
	"github.com/Inshalc/battery-soh-chatbot/internal"
	"github.com/Inshalc/battery-soh-chatbot/ports"
)

// systemPrompt embeds the static domain context every generative
// provider receives ahead of the user's question.
const systemPrompt = `You are a Battery Health Expert AI assistant integrated with a machine learning system that predicts battery State of Health (SOH).

System Context:
- Uses a regression machine learning model
- Analyzes 21 cell voltage measurements (U1-U21)
- Aggregates data into statistical features (mean, median, std, min, max, skew)
- Classifies batteries as healthy (SOH >= 60%%) or problematic (SOH < 60%%)

User question: %s

Provide a helpful, expert response about battery technology. Focus on:
- Battery State of Health (SOH) analysis
- Maintenance best practices
- Recycling importance
- Lifespan optimization
- General battery technology

If the question is unrelated to batteries, gently steer the conversation back to battery topics while still being helpful.`

// ProviderChain walks an ordered list of generative providers and
// falls back to the static knowledge base. It never fails: some text
// always comes back. The list is data; every request starts from
// priority 0 with no memory of which provider last worked.
type ProviderChain struct {
	providers []ports.Provider
	timeout   time.Duration
	logger    *internal.Logger
}

// NewProviderChain creates a chain over the configured providers
func NewProviderChain(providers []ports.Provider, timeout time.Duration) *ProviderChain {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ProviderChain{
		providers: providers,
		timeout:   timeout,
		logger:    internal.NewDefaultLogger(),
	}
}

// Respond produces sanitized text for a message. The returned provider
// ID names the source (a provider, the knowledge base, or the generic
// redirect); attempts record the fallback walk for observability.
func (c *ProviderChain) Respond(ctx context.Context, message string) (string, string, []chat.ProviderAttempt) {
	prompt := fmt.Sprintf(systemPrompt, message)
	attempts := make([]chat.ProviderAttempt, 0, len(c.providers))

	for _, provider := range c.providers {
		text, err := c.callProvider(ctx, provider, prompt)
		if err != nil {
			c.logger.Warn("Provider %s failed, advancing chain: %v", provider.ID(), err)
			attempts = append(attempts, chat.ProviderAttempt{
				ProviderID: provider.ID(),
				Success:    false,
				Reason:     err.Error(),
			})
			continue
		}

		attempts = append(attempts, chat.ProviderAttempt{ProviderID: provider.ID(), Success: true})
		return chat.SanitizeProviderText(text), provider.ID(), attempts
	}

	// Every external attempt failed: static knowledge base, then the
	// generic redirect. Both are curated and already clean.
	answer, matched := chat.LookupKnowledge(message)
	source := chat.ProviderKnowledge
	if !matched {
		source = chat.ProviderNone
	}
	return answer, source, attempts
}

func (c *ProviderChain) callProvider(ctx context.Context, provider ports.Provider, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := provider.Respond(callCtx, prompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty response")
	}
	return text, nil
}
