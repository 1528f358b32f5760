package battery

import (
	"math"

	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
)

// PackCellCount is the number of per-cell voltage readings that
// characterize one pack (U1..U21).
const PackCellCount = 21

// Voltage bounds a reading is conventionally expected to fall in.
const (
	MinCellVoltage = 2.5
	MaxCellVoltage = 4.5
)

// DefaultThreshold is the SOH cutoff separating healthy from problem
// packs (the 60% industry convention).
const DefaultThreshold = 0.6

// CellVoltageSample is an ordered, validated sequence of exactly 21
// per-cell voltage readings. Immutable once constructed.
type CellVoltageSample struct {
	voltages [PackCellCount]float64
}

// NewCellVoltageSample validates raw readings and constructs a sample
func NewCellVoltageSample(voltages []float64) (*CellVoltageSample, error) {
	if len(voltages) != PackCellCount {
		return nil, errors.Validationf("expected %d cell voltages, got %d", PackCellCount, len(voltages))
	}

	sample := &CellVoltageSample{}
	for i, v := range voltages {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Validationf("cell U%d: voltage is not a finite number", i+1)
		}
		if v < MinCellVoltage || v > MaxCellVoltage {
			return nil, errors.Validationf("cell U%d: voltage %.3fV outside expected range [%.1f, %.1f]", i+1, v, MinCellVoltage, MaxCellVoltage)
		}
		sample.voltages[i] = v
	}
	return sample, nil
}

// Voltages returns a copy of the readings in cell order
func (s *CellVoltageSample) Voltages() []float64 {
	out := make([]float64, PackCellCount)
	copy(out[:], s.voltages[:])
	return out
}

// FeatureVector holds the 6 statistical aggregates the regression model
// consumes, in training order: mean, median, std, min, max, skew.
type FeatureVector struct {
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Skew   float64 `json:"skew"`
}

// Slice returns the features in model input order
func (fv FeatureVector) Slice() []float64 {
	return []float64{fv.Mean, fv.Median, fv.Std, fv.Min, fv.Max, fv.Skew}
}

// HealthStatus classifies a pack relative to the SOH threshold
type HealthStatus string

const (
	StatusHealthy    HealthStatus = "healthy"
	StatusHasProblem HealthStatus = "has a problem"
)

// SOHPrediction is the classified outcome for one pack
type SOHPrediction struct {
	SOH       float64      `json:"soh"`
	Threshold float64      `json:"threshold"`
	Status    HealthStatus `json:"status"`
	Message   string       `json:"message"`
}

// IsHealthy reports whether the prediction cleared the threshold
func (p SOHPrediction) IsHealthy() bool {
	return p.Status == StatusHealthy
}
