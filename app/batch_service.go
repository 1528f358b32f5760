package app

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/Inshalc/battery-soh-chatbot/adapters/excel"
	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
	"github.com/Inshalc/battery-soh-chatbot/internal/errors"
)

// BatchRowResult is the outcome for one file row
type BatchRowResult struct {
	Row    int               `json:"row"`
	Result *PredictionResult `json:"result,omitempty"`
	Error  string            `json:"error,omitempty"`
}

// BatchReport summarizes a batch analysis run
type BatchReport struct {
	Total    int              `json:"total"`
	Healthy  int              `json:"healthy"`
	Problems int              `json:"problems"`
	Failed   int              `json:"failed"`
	Rows     []BatchRowResult `json:"rows"`
}

// BatchService runs the prediction pipeline over a file of voltage
// rows with bounded concurrency. Row order is preserved in the report.
type BatchService struct {
	predictions *PredictionService
	concurrency int64
}

// NewBatchService creates a batch service
func NewBatchService(predictions *PredictionService, concurrency int) *BatchService {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &BatchService{
		predictions: predictions,
		concurrency: int64(concurrency),
	}
}

// AnalyzeFile reads U1..U21 rows from an xlsx/csv file and analyzes
// each pack. Per-row failures land in the report; only file-level
// problems return an error.
func (s *BatchService) AnalyzeFile(ctx context.Context, path string, threshold *float64) (*BatchReport, error) {
	reader := excel.NewVoltageReader(path)
	rows, err := reader.ReadRows()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read voltage file")
	}

	report := &BatchReport{
		Total: len(rows),
		Rows:  make([]BatchRowResult, len(rows)),
	}

	sem := semaphore.NewWeighted(s.concurrency)
	var wg sync.WaitGroup

	for i, row := range rows {
		if err := sem.Acquire(ctx, 1); err != nil {
			return nil, errors.Wrap(err, "batch analysis cancelled")
		}

		wg.Add(1)
		go func(idx int, row excel.VoltageRow) {
			defer wg.Done()
			defer sem.Release(1)

			result, err := s.predictions.Analyze(ctx, row.Voltages, threshold)
			if err != nil {
				report.Rows[idx] = BatchRowResult{Row: row.Row, Error: err.Error()}
				return
			}
			report.Rows[idx] = BatchRowResult{Row: row.Row, Result: result}
		}(i, row)
	}
	wg.Wait()

	for _, rowResult := range report.Rows {
		switch {
		case rowResult.Error != "":
			report.Failed++
		case rowResult.Result.Status == battery.StatusHealthy:
			report.Healthy++
		default:
			report.Problems++
		}
	}
	return report, nil
}
