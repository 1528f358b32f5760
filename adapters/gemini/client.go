package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
	"github.com/Inshalc/battery-soh-chatbot/ports"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Config holds Gemini client settings
type Config struct {
	APIKey      string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Client calls the Gemini generateContent API for one fixed model. The
// chain holds one Client per model in priority order; no client ever
// swaps its model after a failure.
type Client struct {
	apiKey      string
	baseURL     string
	model       string
	timeout     time.Duration
	temperature float64
	maxTokens   int
}

// NewClient creates a Gemini provider for a single model
func NewClient(config Config, model string) (*Client, error) {
	if config.APIKey == "" {
		return nil, errors.ConfigInvalid("missing Gemini API key")
	}
	if strings.TrimSpace(model) == "" {
		return nil, errors.ConfigInvalid("missing Gemini model")
	}

	baseURL := strings.TrimSpace(config.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxTokens := config.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		apiKey:      config.APIKey,
		baseURL:     baseURL,
		model:       model,
		timeout:     timeout,
		temperature: config.Temperature,
		maxTokens:   maxTokens,
	}, nil
}

// ID implements ports.Provider
func (c *Client) ID() string {
	return "gemini:" + c.model
}

// Respond implements ports.Provider
func (c *Client) Respond(ctx context.Context, prompt string) (string, error) {
	type part struct {
		Text string `json:"text"`
	}
	type content struct {
		Parts []part `json:"parts"`
	}
	type generationConfig struct {
		Temperature     float64 `json:"temperature"`
		TopK            int     `json:"topK"`
		TopP            float64 `json:"topP"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	}
	type reqBody struct {
		Contents         []content        `json:"contents"`
		GenerationConfig generationConfig `json:"generationConfig"`
	}

	body := reqBody{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     c.temperature,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: c.maxTokens,
		},
	}

	raw, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	client := &http.Client{Timeout: c.timeout}
	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", strings.TrimRight(c.baseURL, "/"), c.model, c.apiKey)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	respRaw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("gemini http %d: %s", resp.StatusCode, string(respRaw))
	}

	type respPart struct {
		Text string `json:"text"`
	}
	type respContent struct {
		Parts []respPart `json:"parts"`
	}
	type candidate struct {
		Content respContent `json:"content"`
	}
	type respBody struct {
		Candidates []candidate `json:"candidates"`
	}
	var decoded respBody
	if err := json.Unmarshal(respRaw, &decoded); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini response missing candidates")
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}

// FromPriorityList builds one provider per configured model, in order
func FromPriorityList(config Config, models []string) ([]ports.Provider, error) {
	providers := make([]ports.Provider, 0, len(models))
	for _, model := range models {
		client, err := NewClient(config, model)
		if err != nil {
			return nil, err
		}
		providers = append(providers, client)
	}
	return providers, nil
}
