package regression

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
)

func testFeatures() battery.FeatureVector {
	return battery.FeatureVector{Mean: 3.7, Median: 3.7, Std: 0.05, Min: 3.6, Max: 3.8, Skew: 0.1}
}

func TestPredictSuccess(t *testing.T) {
	var gotFeatures []float64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict" {
			t.Errorf("path = %s, want /predict", r.URL.Path)
		}
		var body struct {
			Features []float64 `json:"features"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotFeatures = body.Features
		json.NewEncoder(w).Encode(map[string]float64{"soh": 0.82})
	}))
	defer server.Close()

	client, err := NewClient(server.URL, 5*time.Second)
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	soh, err := client.Predict(context.Background(), testFeatures())
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if soh != 0.82 {
		t.Errorf("soh = %v, want 0.82", soh)
	}
	if len(gotFeatures) != 6 {
		t.Fatalf("sent %d features, want 6", len(gotFeatures))
	}
	// Model input order: mean, median, std, min, max, skew
	if gotFeatures[0] != 3.7 || gotFeatures[5] != 0.1 {
		t.Errorf("feature order wrong: %v", gotFeatures)
	}
}

func TestPredictClipsOutOfRange(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]float64{"soh": 1.07})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, 5*time.Second)
	soh, err := client.Predict(context.Background(), testFeatures())
	if err != nil {
		t.Fatalf("Predict failed: %v", err)
	}
	if soh != 1.0 {
		t.Errorf("soh = %v, want clipped to 1.0", soh)
	}
}

func TestPredictServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model file not found"}`, http.StatusInternalServerError)
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, 5*time.Second)
	_, err := client.Predict(context.Background(), testFeatures())
	if !errors.IsModel(err) {
		t.Fatalf("expected model error, got %v", err)
	}
}

func TestPredictMalformedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json at all"))
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, 5*time.Second)
	_, err := client.Predict(context.Background(), testFeatures())
	if !errors.IsModel(err) {
		t.Fatalf("expected model error for unparseable output, got %v", err)
	}
}

func TestPredictTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(map[string]float64{"soh": 0.9})
	}))
	defer server.Close()

	client, _ := NewClient(server.URL, 20*time.Millisecond)
	_, err := client.Predict(context.Background(), testFeatures())
	if !errors.IsModel(err) {
		t.Fatalf("timeout should surface as model error, got %v", err)
	}
}

func TestPredictUnreachable(t *testing.T) {
	client, _ := NewClient("http://127.0.0.1:1", 500*time.Millisecond)
	_, err := client.Predict(context.Background(), testFeatures())
	if !errors.IsModel(err) {
		t.Fatalf("unreachable service should surface as model error, got %v", err)
	}
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", time.Second); err == nil {
		t.Error("empty URL should be rejected")
	}
}
