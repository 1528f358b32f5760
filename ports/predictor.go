package ports

import (
	"context"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
)

// Predictor is the external regression collaborator, consumed as a
// black-box function over the 6-feature vector. A failed or slow call
// is a model error surfaced once to the caller; it is never retried.
type Predictor interface {
	Predict(ctx context.Context, features battery.FeatureVector) (float64, error)
}
