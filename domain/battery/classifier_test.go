package battery

import (
	"strings"
	"testing"
)

func TestClassifyBoundary(t *testing.T) {
	// The boundary is inclusive: soh == threshold is healthy
	prediction, err := Classify(0.6, 0.6)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if prediction.Status != StatusHealthy {
		t.Errorf("status = %s, want %s", prediction.Status, StatusHealthy)
	}
	if !prediction.IsHealthy() {
		t.Error("IsHealthy() = false at inclusive boundary")
	}

	prediction, err = Classify(0.5999, 0.6)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if prediction.Status != StatusHasProblem {
		t.Errorf("status = %s, want %s", prediction.Status, StatusHasProblem)
	}
}

func TestClassifyMessages(t *testing.T) {
	healthy, err := Classify(0.85, 0.6)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !strings.Contains(healthy.Message, "85.0%") || !strings.Contains(healthy.Message, "60.0%") {
		t.Errorf("healthy message missing percentages: %q", healthy.Message)
	}
	if !strings.Contains(healthy.Message, "healthy") {
		t.Errorf("healthy message missing status: %q", healthy.Message)
	}

	problem, err := Classify(0.42, 0.6)
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if !strings.Contains(problem.Message, "42.0%") || !strings.Contains(problem.Message, "problem") {
		t.Errorf("problem message malformed: %q", problem.Message)
	}
}

func TestClassifyValidation(t *testing.T) {
	cases := []struct {
		name      string
		soh       float64
		threshold float64
	}{
		{"soh below range", -0.1, 0.6},
		{"soh above range", 1.1, 0.6},
		{"threshold below range", 0.5, -0.2},
		{"threshold above range", 0.5, 1.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Classify(tc.soh, tc.threshold); err == nil {
				t.Errorf("Classify(%v, %v) accepted invalid input", tc.soh, tc.threshold)
			}
		})
	}
}

func TestClassifyDefault(t *testing.T) {
	prediction, err := ClassifyDefault(0.75)
	if err != nil {
		t.Fatalf("ClassifyDefault failed: %v", err)
	}
	if prediction.Threshold != DefaultThreshold {
		t.Errorf("threshold = %v, want %v", prediction.Threshold, DefaultThreshold)
	}
	if prediction.Status != StatusHealthy {
		t.Errorf("status = %s, want %s", prediction.Status, StatusHealthy)
	}
}
