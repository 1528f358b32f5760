// Command modeld is a development stand-in for the out-of-process
// regression model. It serves the same HTTP contract the real model
// service exposes, using a fixed linear heuristic over the feature
// vector. Never linked into the API server.
package main

import (
	"encoding/json"
	"flag"
	"log"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type predictRequest struct {
	Features []float64 `json:"features"`
}

type predictResponse struct {
	SOH float64 `json:"soh"`
}

// estimateSOH maps the mean cell voltage linearly onto [0,1]: 3.0V
// and below reads as fully degraded, 4.0V and above as new. Spread and
// skew penalties approximate what the trained model learned from
// imbalanced packs. Deterministic so tests can assert on it.
func estimateSOH(features []float64) float64 {
	mean := features[0]
	std := features[2]
	skew := features[5]

	soh := (mean - 3.0) / 1.0
	soh -= 0.5 * std
	soh -= 0.05 * math.Abs(skew)
	return math.Max(0, math.Min(1, soh))
}

func handlePredict(w http.ResponseWriter, r *http.Request) {
	var req predictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"invalid JSON body"}`, http.StatusBadRequest)
		return
	}
	if len(req.Features) != 6 {
		http.Error(w, `{"error":"expected 6 features"}`, http.StatusBadRequest)
		return
	}
	for _, f := range req.Features {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			http.Error(w, `{"error":"non-finite feature value"}`, http.StatusBadRequest)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(predictResponse{SOH: estimateSOH(req.Features)})
}

func main() {
	addr := flag.String("addr", ":8000", "listen address")
	flag.Parse()

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Post("/predict", handlePredict)
	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	log.Printf("[modeld] development model stand-in listening on %s", *addr)
	if err := http.ListenAndServe(*addr, r); err != nil {
		log.Fatalf("modeld failed: %v", err)
	}
}
