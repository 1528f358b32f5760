package app

import (
	"context"
	"time"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
	"github.com/Inshalc/battery-soh-chatbot/internal"
	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
	"github.com/Inshalc/battery-soh-chatbot/ports"
)

// PredictionResult is the composed outcome of one analysis, including
// the intermediate feature vector for auditability.
type PredictionResult struct {
	SOH           float64                   `json:"soh"`
	Threshold     float64                   `json:"threshold"`
	Status        battery.HealthStatus      `json:"status"`
	Message       string                    `json:"message"`
	FeatureVector battery.FeatureVector     `json:"featureVector"`
	Diagnostics   battery.SampleDiagnostics `json:"diagnostics"`
}

// PredictionService orchestrates validation, feature aggregation, the
// external model call, and classification.
type PredictionService struct {
	predictor        ports.Predictor
	history          ports.PredictionRepository // optional, audit only
	defaultThreshold float64
	modelTimeout     time.Duration
	logger           *internal.Logger
}

// NewPredictionService creates a prediction service. history may be nil.
func NewPredictionService(predictor ports.Predictor, history ports.PredictionRepository, defaultThreshold float64, modelTimeout time.Duration) *PredictionService {
	if defaultThreshold <= 0 || defaultThreshold > 1 {
		defaultThreshold = battery.DefaultThreshold
	}
	if modelTimeout <= 0 {
		modelTimeout = 10 * time.Second
	}
	return &PredictionService{
		predictor:        predictor,
		history:          history,
		defaultThreshold: defaultThreshold,
		modelTimeout:     modelTimeout,
		logger:           internal.NewDefaultLogger(),
	}
}

// DefaultThreshold returns the configured threshold
func (s *PredictionService) DefaultThreshold() float64 {
	return s.defaultThreshold
}

// Analyze runs the full pipeline for one pack's voltage readings.
// threshold == nil uses the configured default. Validation failures
// come back as validation errors; collaborator failures as model
// errors, surfaced once and never retried.
func (s *PredictionService) Analyze(ctx context.Context, voltages []float64, threshold *float64) (*PredictionResult, error) {
	sample, err := battery.NewCellVoltageSample(voltages)
	if err != nil {
		return nil, err
	}

	features, err := battery.AggregateFeatures(sample.Voltages())
	if err != nil {
		return nil, err
	}

	result, err := s.AnalyzeFeatures(ctx, features, threshold)
	if err != nil {
		return nil, err
	}
	result.Diagnostics = battery.ProfileSample(sample.Voltages())
	return result, nil
}

// AnalyzeFeatures runs the pipeline from an already-aggregated vector
func (s *PredictionService) AnalyzeFeatures(ctx context.Context, features battery.FeatureVector, threshold *float64) (*PredictionResult, error) {
	th := s.defaultThreshold
	if threshold != nil {
		if *threshold < 0 || *threshold > 1 {
			return nil, errors.Validationf("threshold %.4f outside valid range [0,1]", *threshold)
		}
		th = *threshold
	}

	modelCtx, cancel := context.WithTimeout(ctx, s.modelTimeout)
	defer cancel()

	soh, err := s.predictor.Predict(modelCtx, features)
	if err != nil {
		if errors.IsModel(err) {
			return nil, err
		}
		return nil, errors.Model("regression model call failed", err)
	}

	prediction, err := battery.Classify(soh, th)
	if err != nil {
		// The predictor clips to [0,1]; anything else is its fault.
		return nil, errors.Model("regression model returned unclassifiable SOH", err)
	}

	result := &PredictionResult{
		SOH:           prediction.SOH,
		Threshold:     prediction.Threshold,
		Status:        prediction.Status,
		Message:       prediction.Message,
		FeatureVector: features,
	}
	s.recordHistory(result)
	return result, nil
}

// recordHistory persists the outcome asynchronously; audit only
func (s *PredictionService) recordHistory(result *PredictionResult) {
	if s.history == nil {
		return
	}

	record := &ports.PredictionRecord{
		SOH:       result.SOH,
		Threshold: result.Threshold,
		Status:    result.Status,
		Mean:      result.FeatureVector.Mean,
		Median:    result.FeatureVector.Median,
		Std:       result.FeatureVector.Std,
		MinV:      result.FeatureVector.Min,
		MaxV:      result.FeatureVector.Max,
		Skew:      result.FeatureVector.Skew,
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.history.Record(ctx, record); err != nil {
			s.logger.Error("Failed to record prediction history: %v", err)
		}
	}()
}
