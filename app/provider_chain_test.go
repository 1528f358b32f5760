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

func TestProviderChainPrimarySuccess(t *testing.T) {
	primary := &testkit.MockProvider{Name: "gemini:flash", Response: "Keep your pack cool."}
	backup := &testkit.MockProvider{Name: "openai:gpt", Response: "unused"}
	chain := NewProviderChain([]ports.Provider{primary, backup}, 0)

	text, providerID, attempts := chain.Respond(context.Background(), "battery tips?")
	if text != "Keep your pack cool." {
		t.Errorf("text = %q", text)
	}
	if providerID != "gemini:flash" {
		t.Errorf("provider = %s, want gemini:flash", providerID)
	}
	if backup.Calls != 0 {
		t.Errorf("backup was called %d times, want 0", backup.Calls)
	}
	if len(attempts) != 1 || !attempts[0].Success {
		t.Errorf("attempts = %+v", attempts)
	}
}

func TestProviderChainAdvancesOnFailure(t *testing.T) {
	primary := &testkit.MockProvider{Name: "gemini:flash", Err: fmt.Errorf("rate limited")}
	backup := &testkit.MockProvider{Name: "openai:gpt", Response: "Charge to 80%."}
	chain := NewProviderChain([]ports.Provider{primary, backup}, 0)

	text, providerID, attempts := chain.Respond(context.Background(), "battery tips?")
	if providerID != "openai:gpt" {
		t.Errorf("provider = %s, want openai:gpt", providerID)
	}
	if text != "Charge to 80%." {
		t.Errorf("text = %q", text)
	}
	if primary.Calls != 1 {
		t.Errorf("primary calls = %d, want 1", primary.Calls)
	}
	if len(attempts) != 2 || attempts[0].Success || !attempts[1].Success {
		t.Errorf("attempts = %+v", attempts)
	}
}

func TestProviderChainFallsBackToKnowledgeBase(t *testing.T) {
	failing := []ports.Provider{
		&testkit.MockProvider{Name: "gemini:a", Err: fmt.Errorf("boom")},
		&testkit.MockProvider{Name: "gemini:b", Err: fmt.Errorf("boom")},
	}
	chain := NewProviderChain(failing, 0)

	text, providerID, attempts := chain.Respond(context.Background(), "how do I recycle a battery?")
	if providerID != chat.ProviderKnowledge {
		t.Errorf("provider = %s, want %s", providerID, chat.ProviderKnowledge)
	}
	if text == "" {
		t.Fatal("chain must always terminate in some text")
	}
	if strings.Contains(text, "boom") || strings.Contains(text, "goroutine") {
		t.Errorf("raw error leaked into reply: %q", text)
	}
	if len(attempts) != 2 {
		t.Errorf("attempts = %+v", attempts)
	}
}

func TestProviderChainRedirectWhenNothingMatches(t *testing.T) {
	chain := NewProviderChain(nil, 0)

	text, providerID, _ := chain.Respond(context.Background(), "what's the weather like")
	if providerID != chat.ProviderNone {
		t.Errorf("provider = %s, want %s", providerID, chat.ProviderNone)
	}
	if !strings.Contains(text, "battery") {
		t.Errorf("redirect should mention batteries: %q", text)
	}
}

func TestProviderChainSanitizesOutput(t *testing.T) {
	provider := &testkit.MockProvider{Name: "gemini:flash", Response: "**Tip:** avoid *deep* discharges and `heat`."}
	chain := NewProviderChain([]ports.Provider{provider}, 0)

	text, _, _ := chain.Respond(context.Background(), "battery tips?")
	want := "Tip: avoid deep discharges and heat."
	if text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestProviderChainEmptyResponseIsFailure(t *testing.T) {
	// A provider returning whitespace is as useless as one that errors
	empty := &testkit.MockProvider{Name: "gemini:flash", Response: "   "}
	backup := &testkit.MockProvider{Name: "openai:gpt", Response: "Use the right charger."}
	chain := NewProviderChain([]ports.Provider{empty, backup}, 0)

	_, providerID, _ := chain.Respond(context.Background(), "battery tips?")
	if providerID != "openai:gpt" {
		t.Errorf("provider = %s, want openai:gpt", providerID)
	}
}
