package chat

import "strings"

// intentRule pairs a predicate with the intent it selects. Rules are
// evaluated in order; the first match wins.
type intentRule struct {
	matches func(message string, sohKnown bool) bool
	intent  Intent
}

var healthVerbs = []string{"check", "status", "health"}

var healthSubjects = []string{"battery", "soh"}

// howIsMyBatteryPhrases cover the colloquial status question a user
// asks after running an analysis.
var howIsMyBatteryPhrases = []string{
	"how is my battery",
	"how's my battery",
	"how my battery",
}

var batteryTopics = []string{
	"battery", "soh", "lithium", "charge", "recycle",
	"maintain", "extend", "lifespan", "tip",
}

var intentRules = []intentRule{
	{
		matches: func(m string, sohKnown bool) bool {
			if containsAny(m, healthVerbs) && containsAny(m, healthSubjects) {
				return true
			}
			return sohKnown && containsAny(m, howIsMyBatteryPhrases)
		},
		intent: IntentHealthStatusQuery,
	},
	{
		matches: func(m string, _ bool) bool {
			return containsAny(m, batteryTopics)
		},
		intent: IntentGeneralBatteryQuestion,
	},
}

// RouteIntent classifies a message. Deliberately a keyword table, not a
// statistical model: deterministic and independently testable.
func RouteIntent(message string, sohKnown bool) Intent {
	m := strings.ToLower(strings.TrimSpace(message))
	for _, rule := range intentRules {
		if rule.matches(m, sohKnown) {
			return rule.intent
		}
	}
	return IntentOffTopic
}

func containsAny(message string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}
