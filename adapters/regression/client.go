package regression

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
)

// Client talks to the out-of-process regression model over HTTP JSON.
// The service exposes POST /predict taking the 6-feature vector and
// returning the predicted SOH.
type Client struct {
	baseURL string
	timeout time.Duration
}

// NewClient creates a regression model client
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.ConfigInvalid("missing regression model service URL")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
	}, nil
}

// Predict implements ports.Predictor. Every failure mode (unreachable
// service, timeout, non-2xx, unparseable or out-of-range output) maps
// to a model error; the caller surfaces it once and never retries.
func (c *Client) Predict(ctx context.Context, features battery.FeatureVector) (float64, error) {
	type reqBody struct {
		Features []float64 `json:"features"`
	}

	raw, err := json.Marshal(reqBody{Features: features.Slice()})
	if err != nil {
		return 0, errors.Model("marshal model request", err)
	}

	client := &http.Client{Timeout: c.timeout}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(raw))
	if err != nil {
		return 0, errors.Model("build model request", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return 0, errors.Model("regression model unreachable", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, errors.Model("read model response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, errors.Model(fmt.Sprintf("regression model http %d: %s", resp.StatusCode, string(respRaw)), nil)
	}

	type respBody struct {
		SOH float64 `json:"soh"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return 0, errors.Model(fmt.Sprintf("unparseable model output: %s", string(respRaw)), err)
	}
	if math.IsNaN(decoded.SOH) || math.IsInf(decoded.SOH, 0) {
		return 0, errors.Model("regression model returned non-finite SOH", nil)
	}

	// Clip to the valid range, matching the model service's own
	// post-processing for slight overshoot.
	soh := math.Max(0, math.Min(1, decoded.SOH))
	return soh, nil
}
