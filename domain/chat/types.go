package chat

// Intent is the classified purpose of a user's chat message
type Intent string

const (
	IntentHealthStatusQuery      Intent = "health_status"
	IntentGeneralBatteryQuestion Intent = "battery_question"
	IntentOffTopic               Intent = "off_topic"
)

// Message is one turn of a conversation. History is owned by the
// caller; the core is stateless per call.
type Message struct {
	Text     string `json:"text"`
	FromUser bool   `json:"fromUser"`
}

// ProviderAttempt records one provider invocation within a single
// request. Ephemeral: drives fallback order and observability only.
type ProviderAttempt struct {
	ProviderID string `json:"providerId"`
	Success    bool   `json:"success"`
	Reason     string `json:"reason,omitempty"`
}

// Provider identifiers reported back to the caller for observability
const (
	ProviderDirect    = "direct"
	ProviderKnowledge = "knowledge_base"
	ProviderNone      = "none"
)

// Reply is the final outcome of one chat turn
type Reply struct {
	Text     string            `json:"response"`
	Intent   Intent            `json:"intent"`
	Provider string            `json:"provider"`
	SOH      *float64          `json:"soh,omitempty"`
	Attempts []ProviderAttempt `json:"-"`
}
