package chat

import "strings"

// knowledgeEntry maps topic substrings to a curated answer. The table
// is the last line of defense when every provider has failed, so
// entries must stand on their own as complete replies.
type knowledgeEntry struct {
	topics []string
	answer string
}

var knowledgeBase = []knowledgeEntry{
	{
		topics: []string{"hello", "hi "},
		answer: "Hello! I'm your Battery Health Assistant. I can help with battery State of Health analysis, maintenance tips, and recycling information. How can I assist you with batteries today?",
	},
	{
		topics: []string{"state of health", "soh"},
		answer: "State of Health (SOH) measures battery condition. Our system aggregates 21 cell voltage measurements into statistical features and feeds them to a regression model to predict SOH. You can analyze your battery using the Analyze Battery feature.",
	},
	{
		topics: []string{"lithium"},
		answer: "Lithium-ion batteries offer high energy density and are used in EVs and electronics. Our system analyzes 21 cell voltages with a regression model to predict battery health. Proper maintenance extends their lifespan significantly.",
	},
	{
		topics: []string{"keep a battery healthy", "maintain", "maintenance tips", "care"},
		answer: "To maintain battery health: avoid extreme temperatures, keep charge between 20-80%, use compatible chargers, store at 40-60% charge, and perform regular calibration cycles.",
	},
	{
		topics: []string{"recycl"},
		answer: "Battery recycling recovers valuable materials like lithium, cobalt, and nickel while keeping toxic compounds out of landfills. Take used packs to a certified recycling point rather than discarding them with household waste.",
	},
	{
		topics: []string{"extend", "lifespan"},
		answer: "To extend battery lifespan, avoid deep discharges, keep the pack away from heat, and prefer partial charge cycles over full 0-100% cycles. Monitoring SOH regularly helps you catch degradation early.",
	},
}

// redirectMessage is the terminal fallback: always non-empty, always
// steers back toward battery topics.
const redirectMessage = "I specialize in battery technology and health analysis. Our system aggregates 21 cell voltages into statistical features and predicts battery State of Health with a regression model. You can analyze your battery or ask me about maintenance, recycling, or battery technology."

// LookupKnowledge answers from the static knowledge base. The boolean
// reports whether a topic entry matched; when false the returned text
// is the generic redirect and is still usable as a reply.
func LookupKnowledge(message string) (string, bool) {
	m := strings.ToLower(strings.TrimSpace(message))
	for _, entry := range knowledgeBase {
		for _, topic := range entry.topics {
			if strings.Contains(m, topic) {
				return entry.answer, true
			}
		}
	}
	return redirectMessage, false
}
