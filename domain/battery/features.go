package battery

import (
	"math"

	montstats "github.com/montanaflynn/stats"

	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
)

// skewEpsilon guards the skewness computation: a near-constant sample
// has no meaningful third moment and would divide by ~0.
const skewEpsilon = 1e-3

// AggregateFeatures reduces 21 cell voltages to the 6-feature vector
// the regression model was trained on. Pure and deterministic: the same
// input always produces the same output.
func AggregateFeatures(voltages []float64) (FeatureVector, error) {
	if len(voltages) != PackCellCount {
		return FeatureVector{}, errors.Validationf("expected %d cell voltages, got %d", PackCellCount, len(voltages))
	}
	for i, v := range voltages {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return FeatureVector{}, errors.Validationf("cell U%d: voltage is not a finite number", i+1)
		}
	}

	data := montstats.Float64Data(voltages)

	mean, err := data.Mean()
	if err != nil {
		return FeatureVector{}, errors.Wrap(err, "mean computation failed")
	}
	// 21 elements: the median is the 11th of the ascending sort, no
	// averaging involved.
	median, err := data.Median()
	if err != nil {
		return FeatureVector{}, errors.Wrap(err, "median computation failed")
	}
	// Population standard deviation (divide by n), matching the
	// preprocessing the model was trained with.
	std, err := data.StandardDeviationPopulation()
	if err != nil {
		return FeatureVector{}, errors.Wrap(err, "std computation failed")
	}
	min, err := data.Min()
	if err != nil {
		return FeatureVector{}, errors.Wrap(err, "min computation failed")
	}
	max, err := data.Max()
	if err != nil {
		return FeatureVector{}, errors.Wrap(err, "max computation failed")
	}

	return FeatureVector{
		Mean:   mean,
		Median: median,
		Std:    std,
		Min:    min,
		Max:    max,
		Skew:   sampleSkewness(voltages, mean, std),
	}, nil
}

// sampleSkewness computes the bias-corrected sample skewness
// (adjusted Fisher-Pearson coefficient):
//
//	g1 = Σ((x−mean)/σ)³ / n, then g1 · √(n(n−1)) / (n−2)
//
// with σ the population standard deviation. Returns 0 when σ falls
// below skewEpsilon.
func sampleSkewness(data []float64, mean, std float64) float64 {
	if len(data) < 3 || std < skewEpsilon {
		return 0
	}

	n := float64(len(data))
	sumCubed := 0.0
	for _, x := range data {
		d := (x - mean) / std
		sumCubed += d * d * d
	}

	skew := sumCubed / n
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skew * correction
}
