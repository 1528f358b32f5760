package app

import (
	"context"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
	"github.com/Inshalc/battery-soh-chatbot/domain/chat"
	"github.com/Inshalc/battery-soh-chatbot/internal"
	"github.com/Inshalc/battery-soh-chatbot/internal/usage"
)

// apologyReply is the degraded answer for unexpected internal failures.
// The conversation never hard-fails toward the user.
const apologyReply = "Sorry, something went wrong on my end. Please try asking your battery question again."

// ChatOrchestrator composes intent routing, the provider chain, and
// the health classifier into one chat turn. Stateless: the last known
// SOH travels with each request, never server-side.
type ChatOrchestrator struct {
	chain            *ProviderChain
	usage            *usage.Service
	defaultThreshold float64
	logger           *internal.Logger
}

// NewChatOrchestrator creates a chat orchestrator. usageSvc may be nil.
func NewChatOrchestrator(chain *ProviderChain, usageSvc *usage.Service, defaultThreshold float64) *ChatOrchestrator {
	if defaultThreshold <= 0 || defaultThreshold > 1 {
		defaultThreshold = battery.DefaultThreshold
	}
	return &ChatOrchestrator{
		chain:            chain,
		usage:            usageSvc,
		defaultThreshold: defaultThreshold,
		logger:           internal.NewDefaultLogger(),
	}
}

// HandleMessage produces the reply for one chat turn. It never returns
// an error: internal failures degrade to a generic apology.
func (o *ChatOrchestrator) HandleMessage(ctx context.Context, message string, knownSOH *float64) (reply chat.Reply) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("Recovered from panic during chat turn: %v", r)
			reply = chat.Reply{
				Text:     apologyReply,
				Intent:   chat.IntentOffTopic,
				Provider: chat.ProviderNone,
				SOH:      knownSOH,
			}
		}
	}()

	// An out-of-range SOH from the caller is treated as unknown rather
	// than rejected; the chat path has no error state.
	sohKnown := knownSOH != nil && *knownSOH >= 0 && *knownSOH <= 1
	intent := chat.RouteIntent(message, sohKnown)

	reply = chat.Reply{Intent: intent, SOH: knownSOH}

	switch intent {
	case chat.IntentHealthStatusQuery:
		reply.Provider = chat.ProviderDirect
		if !sohKnown {
			reply.Text = chat.AnalysisFirstMessage
			return reply
		}
		prediction, err := battery.Classify(*knownSOH, o.defaultThreshold)
		if err != nil {
			// sohKnown already bounds the value; this cannot happen.
			o.logger.Error("Classification of known SOH failed: %v", err)
			reply.Text = apologyReply
			reply.Provider = chat.ProviderNone
			return reply
		}
		reply.Text = chat.HealthReport(prediction)
		return reply

	default:
		text, providerID, attempts := o.chain.Respond(ctx, message)
		reply.Text = text
		reply.Provider = providerID
		reply.Attempts = attempts
		o.usage.RecordAttempts(intent, attempts)
		return reply
	}
}
