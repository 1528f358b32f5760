package battery

import (
	"fmt"

	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
)

// Classify turns a model-predicted SOH into a status verdict. The
// boundary is inclusive: soh == threshold is healthy.
func Classify(soh, threshold float64) (SOHPrediction, error) {
	if soh < 0 || soh > 1 {
		return SOHPrediction{}, errors.Validationf("soh %.4f outside valid range [0,1]", soh)
	}
	if threshold < 0 || threshold > 1 {
		return SOHPrediction{}, errors.Validationf("threshold %.4f outside valid range [0,1]", threshold)
	}

	prediction := SOHPrediction{
		SOH:       soh,
		Threshold: threshold,
	}
	if soh >= threshold {
		prediction.Status = StatusHealthy
		prediction.Message = fmt.Sprintf("The battery is healthy: SOH %.1f%% meets the %.1f%% threshold.", soh*100, threshold*100)
	} else {
		prediction.Status = StatusHasProblem
		prediction.Message = fmt.Sprintf("The battery has a problem: SOH %.1f%% is below the %.1f%% threshold.", soh*100, threshold*100)
	}
	return prediction, nil
}

// ClassifyDefault classifies against the 60% convention
func ClassifyDefault(soh float64) (SOHPrediction, error) {
	return Classify(soh, DefaultThreshold)
}
