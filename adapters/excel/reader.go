package excel

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/Inshalc/battery-soh-chatbot/domain/battery"
	"github.com/Inshalc/battery-soh-chatbot/internal"
)

// VoltageReader reads batches of cell-voltage rows from Excel or CSV
// files. Each data row carries 21 numeric columns (U1..U21); a header
// row naming the columns is skipped when present.
type VoltageReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// VoltageRow is one pack's readings with its source row for reporting
type VoltageRow struct {
	Row      int
	Voltages []float64
}

// NewVoltageReader creates a reader that handles both Excel and CSV files
func NewVoltageReader(filePath string) *VoltageReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &VoltageReader{filePath: filePath, fileType: fileType}
}

// ReadRows reads all voltage rows from the file
func (r *VoltageReader) ReadRows() ([]VoltageRow, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		return r.readCSVRows()
	case "xlsx":
		return r.readExcelRows()
	default:
		return nil, fmt.Errorf("unsupported file type: %s", r.fileType)
	}
}

func (r *VoltageReader) readExcelRows() ([]VoltageRow, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	// Always use Sheet1
	rows, err := f.GetRows("Sheet1")
	if err != nil {
		return nil, fmt.Errorf("failed to read Sheet1: %w", err)
	}
	internal.DefaultLogger.Debug("Read %d rows from Sheet1 of %s", len(rows), r.filePath)

	return parseRows(rows)
}

func (r *VoltageReader) readCSVRows() ([]VoltageRow, error) {
	f, err := os.Open(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	internal.DefaultLogger.Debug("Read %d rows from %s", len(records), r.filePath)

	return parseRows(records)
}

// parseRows converts raw cells into voltage rows, skipping a header
// row when the first cell is not numeric.
func parseRows(rows [][]string) ([]VoltageRow, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("file has no rows")
	}

	start := 0
	if len(rows[0]) > 0 {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][0]), 64); err != nil {
			start = 1 // header row
		}
	}

	out := make([]VoltageRow, 0, len(rows)-start)
	for i := start; i < len(rows); i++ {
		cells := rows[i]
		if isBlankRow(cells) {
			continue
		}
		if len(cells) < battery.PackCellCount {
			return nil, fmt.Errorf("row %d: expected %d voltage columns, got %d", i+1, battery.PackCellCount, len(cells))
		}

		voltages := make([]float64, battery.PackCellCount)
		for j := 0; j < battery.PackCellCount; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(cells[j]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d, column U%d: %q is not numeric", i+1, j+1, cells[j])
			}
			voltages[j] = v
		}
		out = append(out, VoltageRow{Row: i + 1, Voltages: voltages})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("file has no data rows")
	}
	return out, nil
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
