package chat

import (
	"fmt"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
)

// Advice bands keyed by SOH
const (
	adviceExcellentBand = 0.8
	adviceGoodBand      = battery.DefaultThreshold
)

// HealthAdvice returns the maintenance advice for an SOH band
func HealthAdvice(soh float64) string {
	switch {
	case soh >= adviceExcellentBand:
		return "Your battery is in excellent condition! Continue with your current maintenance practices."
	case soh >= adviceGoodBand:
		return "Your battery is in good condition but showing some aging. Monitor regularly and maintain good charging habits."
	default:
		return "Your battery requires attention. Consider replacement soon and avoid demanding applications."
	}
}

// HealthReport formats the deterministic answer to a health-status
// query when an SOH value is known. No provider is involved; this path
// is fast and fully reproducible.
func HealthReport(prediction battery.SOHPrediction) string {
	report := fmt.Sprintf(
		"Battery Health Report\n\nState of Health: %.1f%%\nStatus: %s\nThreshold: %.0f%% (industry standard)\nInput Data: 21 cell voltages aggregated to 6 features",
		prediction.SOH*100, prediction.Status, prediction.Threshold*100,
	)
	return report + "\n\n" + HealthAdvice(prediction.SOH)
}

// AnalysisFirstMessage guides a user who asked for a status check
// before running any analysis.
const AnalysisFirstMessage = "I'd be happy to check your battery health! First, please use the 'Analyze Battery' feature to measure the State of Health. This requires 21 cell voltage measurements from your battery pack."
