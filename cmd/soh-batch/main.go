// Command soh-batch analyzes a file of cell-voltage rows (xlsx or csv,
// 21 columns U1..U21 per row) against the regression model service and
// prints a per-row verdict plus a summary.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/Inshalc/battery-soh-chatbot/adapters/regression"
	"github.com/Inshalc/battery-soh-chatbot/app"
	"github.com/Inshalc/battery-soh-chatbot/internal/config"
)

func main() {
	file := flag.String("file", "", "path to xlsx/csv file of voltage rows")
	threshold := flag.Float64("threshold", 0, "SOH threshold override (0 = configured default)")
	concurrency := flag.Int("concurrency", 4, "max concurrent model calls")
	asJSON := flag.Bool("json", false, "emit the full report as JSON")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "usage: soh-batch -file readings.xlsx [-threshold 0.6] [-json]")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	predictor, err := regression.NewClient(cfg.Model.URL, cfg.Model.Timeout)
	if err != nil {
		log.Fatalf("Failed to create regression client: %v", err)
	}

	predictions := app.NewPredictionService(predictor, nil, cfg.Battery.DefaultThreshold, cfg.Model.Timeout)
	batch := app.NewBatchService(predictions, *concurrency)

	var th *float64
	if *threshold > 0 {
		th = threshold
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	report, err := batch.AnalyzeFile(ctx, *file, th)
	if err != nil {
		log.Fatalf("Batch analysis failed: %v", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			log.Fatalf("Failed to encode report: %v", err)
		}
		return
	}

	for _, row := range report.Rows {
		if row.Error != "" {
			fmt.Printf("row %d: FAILED: %s\n", row.Row, row.Error)
			continue
		}
		fmt.Printf("row %d: SOH %.1f%% (%s)\n", row.Row, row.Result.SOH*100, row.Result.Status)
	}
	fmt.Printf("\n%d packs: %d healthy, %d with problems, %d failed\n",
		report.Total, report.Healthy, report.Problems, report.Failed)
}
