package chat

import "testing"

func TestRouteIntent(t *testing.T) {
	cases := []struct {
		name     string
		message  string
		sohKnown bool
		want     Intent
	}{
		{"health check", "check my battery health", false, IntentHealthStatusQuery},
		{"status of soh", "what's the status of my SOH?", false, IntentHealthStatusQuery},
		{"colloquial with known soh", "how is my battery doing?", true, IntentHealthStatusQuery},
		{"colloquial without known soh", "how is my battery doing?", false, IntentGeneralBatteryQuestion},
		{"lifespan question", "how do I extend battery lifespan", false, IntentGeneralBatteryQuestion},
		{"lithium question", "tell me about lithium cells", false, IntentGeneralBatteryQuestion},
		{"recycling question", "where can I recycle old packs", false, IntentGeneralBatteryQuestion},
		{"off topic", "what's the weather", false, IntentOffTopic},
		{"off topic known soh", "what's the weather", true, IntentOffTopic},
		{"mixed case", "CHECK MY BATTERY", false, IntentHealthStatusQuery},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RouteIntent(tc.message, tc.sohKnown)
			if got != tc.want {
				t.Errorf("RouteIntent(%q, %v) = %s, want %s", tc.message, tc.sohKnown, got, tc.want)
			}
		})
	}
}

func TestRouteIntentFirstRuleWins(t *testing.T) {
	// Contains both health-check verbs and general keywords; rule 1
	// must win because order matters.
	got := RouteIntent("check battery status and give me maintenance tips", false)
	if got != IntentHealthStatusQuery {
		t.Errorf("got %s, want %s", got, IntentHealthStatusQuery)
	}
}
