package app

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/Inshalc/battery-soh-chatbot/domain/chat"
	"github.com/Inshalc/battery-soh-chatbot/internal/testkit"
	"github.com/Inshalc/battery-soh-chatbot/ports"
)

func newTestOrchestrator(providers ...ports.Provider) *ChatOrchestrator {
	chain := NewProviderChain(providers, 0)
	return NewChatOrchestrator(chain, nil, 0.6)
}

func TestChatHealthQueryWithKnownSOH(t *testing.T) {
	provider := &testkit.MockProvider{Name: "gemini:flash", Response: "should not be used"}
	orchestrator := newTestOrchestrator(provider)

	soh := 0.75
	reply := orchestrator.HandleMessage(context.Background(), "check my battery health", &soh)

	if reply.Intent != chat.IntentHealthStatusQuery {
		t.Errorf("intent = %s, want %s", reply.Intent, chat.IntentHealthStatusQuery)
	}
	if reply.Provider != chat.ProviderDirect {
		t.Errorf("provider = %s, want %s (deterministic path)", reply.Provider, chat.ProviderDirect)
	}
	if provider.Calls != 0 {
		t.Errorf("generative provider was called %d times for a status query", provider.Calls)
	}
	if !strings.Contains(reply.Text, "75.0%") {
		t.Errorf("reply missing SOH percentage: %q", reply.Text)
	}
	if reply.SOH == nil || *reply.SOH != 0.75 {
		t.Error("known SOH should be echoed back")
	}
}

func TestChatHealthQueryWithoutSOH(t *testing.T) {
	orchestrator := newTestOrchestrator()

	reply := orchestrator.HandleMessage(context.Background(), "check my battery status", nil)
	if reply.Intent != chat.IntentHealthStatusQuery {
		t.Errorf("intent = %s, want %s", reply.Intent, chat.IntentHealthStatusQuery)
	}
	if !strings.Contains(reply.Text, "Analyze Battery") {
		t.Errorf("expected run-an-analysis-first guidance, got %q", reply.Text)
	}
}

func TestChatOutOfRangeSOHTreatedAsUnknown(t *testing.T) {
	orchestrator := newTestOrchestrator()

	bogus := 3.2
	reply := orchestrator.HandleMessage(context.Background(), "check my battery health", &bogus)
	if !strings.Contains(reply.Text, "Analyze Battery") {
		t.Errorf("out-of-range SOH should fall back to guidance, got %q", reply.Text)
	}
}

func TestChatGeneralQuestionUsesChain(t *testing.T) {
	provider := &testkit.MockProvider{Name: "gemini:flash", Response: "Store packs at 40-60% charge."}
	orchestrator := newTestOrchestrator(provider)

	reply := orchestrator.HandleMessage(context.Background(), "any battery storage tips?", nil)
	if reply.Intent != chat.IntentGeneralBatteryQuestion {
		t.Errorf("intent = %s, want %s", reply.Intent, chat.IntentGeneralBatteryQuestion)
	}
	if reply.Provider != "gemini:flash" {
		t.Errorf("provider = %s, want gemini:flash", reply.Provider)
	}
	if provider.Calls != 1 {
		t.Errorf("provider calls = %d, want 1", provider.Calls)
	}
}

func TestChatNeverFails(t *testing.T) {
	// Every provider broken and the message off-topic: the reply must
	// still be usable text.
	orchestrator := newTestOrchestrator(
		&testkit.MockProvider{Name: "gemini:a", Err: fmt.Errorf("down")},
		&testkit.MockProvider{Name: "openai:b", Err: fmt.Errorf("down")},
	)

	reply := orchestrator.HandleMessage(context.Background(), "tell me a joke", nil)
	if reply.Text == "" {
		t.Fatal("reply text must never be empty")
	}
	if reply.Intent != chat.IntentOffTopic {
		t.Errorf("intent = %s, want %s", reply.Intent, chat.IntentOffTopic)
	}
	if strings.Contains(reply.Text, "down") {
		t.Errorf("raw provider error leaked: %q", reply.Text)
	}
}
