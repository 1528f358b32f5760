package testkit

import (
	"context"
	"sync"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
)

// MockProvider is a scripted generative provider for tests
type MockProvider struct {
	Name     string
	Response string // Set this for testing
	Err      error  // Set this to simulate errors
	Calls    int
}

func (m *MockProvider) ID() string {
	if m.Name != "" {
		return m.Name
	}
	return "mock"
}

func (m *MockProvider) Respond(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return "Batteries degrade as cells age; monitoring SOH helps you plan replacement.", nil
}

// MockPredictor is a scripted regression collaborator for tests.
// Safe for concurrent use (the batch service calls it in parallel).
type MockPredictor struct {
	SOH float64
	Err error

	mu    sync.Mutex
	Calls int

	// LastFeatures captures the vector the service submitted
	LastFeatures battery.FeatureVector
}

func (m *MockPredictor) Predict(ctx context.Context, features battery.FeatureVector) (float64, error) {
	m.mu.Lock()
	m.Calls++
	m.LastFeatures = features
	m.mu.Unlock()

	if m.Err != nil {
		return 0, m.Err
	}
	return m.SOH, nil
}

// UniformVoltages returns 21 identical readings
func UniformVoltages(v float64) []float64 {
	out := make([]float64, battery.PackCellCount)
	for i := range out {
		out[i] = v
	}
	return out
}

// SplitVoltages returns low readings for the first n cells and high
// readings for the rest.
func SplitVoltages(low, high float64, n int) []float64 {
	out := make([]float64, battery.PackCellCount)
	for i := range out {
		if i < n {
			out[i] = low
		} else {
			out[i] = high
		}
	}
	return out
}
