package battery

import (
	"math"

	montstats "github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// SampleDiagnostics describes the shape of one voltage sample. Attached
// to prediction results for auditability; never affects the verdict.
type SampleDiagnostics struct {
	OutlierCount int     `json:"outlierCount"`
	Spread       float64 `json:"spread"`
	IsNormal     bool    `json:"isNormal"`
	NormalityP   float64 `json:"normalityP"`
}

// ProfileSample computes distribution diagnostics for a voltage sample.
// Outliers use the 1.5*IQR rule; normality is a skewness/kurtosis
// approximation, not a full Shapiro-Wilk test.
func ProfileSample(voltages []float64) SampleDiagnostics {
	diag := SampleDiagnostics{}
	if len(voltages) < 4 {
		return diag
	}

	data := montstats.Float64Data(voltages)
	min, _ := data.Min()
	max, _ := data.Max()
	diag.Spread = max - min

	q25, err1 := data.Percentile(25)
	q75, err2 := data.Percentile(75)
	if err1 == nil && err2 == nil {
		diag.OutlierCount = countOutliers(voltages, q25, q75)
	}

	diag.IsNormal, diag.NormalityP = approxNormality(voltages)
	return diag
}

// countOutliers applies the 1.5*IQR fence
func countOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lower := q25 - 1.5*iqr
	upper := q75 + 1.5*iqr

	count := 0
	for _, x := range data {
		if x < lower || x > upper {
			count++
		}
	}
	return count
}

// approxNormality estimates normality from the combined magnitude of
// skewness and excess kurtosis, mapped through a chi-squared tail.
func approxNormality(data []float64) (bool, float64) {
	d := montstats.Float64Data(data)
	mean, err := d.Mean()
	if err != nil {
		return false, 1.0
	}
	std, err := d.StandardDeviationPopulation()
	if err != nil || std < skewEpsilon {
		// Constant samples carry no shape information; treat as normal.
		return true, 1.0
	}

	skew := sampleSkewness(data, mean, std)
	kurt := sampleKurtosis(data, mean, std)

	testStat := math.Abs(skew) + math.Abs(kurt-3)/2

	chiDist := distuv.ChiSquared{K: 2}
	pValue := 1 - chiDist.CDF(testStat*testStat)
	return pValue > 0.05, pValue
}

// sampleKurtosis computes bias-corrected total kurtosis (normal = 3)
func sampleKurtosis(data []float64, mean, std float64) float64 {
	if len(data) < 4 {
		return 3
	}

	n := float64(len(data))
	sumFourth := 0.0
	for _, x := range data {
		d := (x - mean) / std
		sumFourth += d * d * d * d
	}

	excess := sumFourth/n - 3
	correction := (n - 1) / ((n - 2) * (n - 3))
	excess = excess*correction + 6/(n+1)
	return excess + 3
}
