package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func csvRow(base float64) string {
	cells := make([]string, 21)
	for i := range cells {
		cells[i] = fmt.Sprintf("%.2f", base)
	}
	return strings.Join(cells, ",")
}

func TestReadCSVWithHeader(t *testing.T) {
	header := make([]string, 21)
	for i := range header {
		header[i] = fmt.Sprintf("U%d", i+1)
	}
	content := strings.Join(header, ",") + "\n" + csvRow(3.7) + "\n" + csvRow(3.5) + "\n"

	path := filepath.Join(t.TempDir(), "readings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := NewVoltageReader(path).ReadRows()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 2, rows[0].Row)
	require.Len(t, rows[0].Voltages, 21)
	require.InDelta(t, 3.7, rows[0].Voltages[0], 1e-9)
	require.InDelta(t, 3.5, rows[1].Voltages[20], 1e-9)
}

func TestReadCSVWithoutHeader(t *testing.T) {
	content := csvRow(3.7) + "\n\n" + csvRow(3.6) + "\n"

	path := filepath.Join(t.TempDir(), "readings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	rows, err := NewVoltageReader(path).ReadRows()
	require.NoError(t, err)
	require.Len(t, rows, 2) // blank row skipped
	require.Equal(t, 1, rows[0].Row)
}

func TestReadCSVBadCell(t *testing.T) {
	// Keep the first cell numeric so the row is not mistaken for a header
	bad := strings.Replace(csvRow(3.7), ",3.70", ",oops", 1)
	path := filepath.Join(t.TempDir(), "readings.csv")
	require.NoError(t, os.WriteFile(path, []byte(bad+"\n"), 0o644))

	_, err := NewVoltageReader(path).ReadRows()
	require.Error(t, err)
	require.Contains(t, err.Error(), "oops")
}

func TestReadCSVShortRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "readings.csv")
	require.NoError(t, os.WriteFile(path, []byte("3.7,3.7,3.7\n"), 0o644))

	_, err := NewVoltageReader(path).ReadRows()
	require.Error(t, err)
	require.Contains(t, err.Error(), "21")
}

func TestReadExcelSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	for col := 0; col < 21; col++ {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		require.NoError(t, err)
		require.NoError(t, f.SetCellStr("Sheet1", cell, fmt.Sprintf("U%d", col+1)))

		cell, err = excelize.CoordinatesToCellName(col+1, 2)
		require.NoError(t, err)
		require.NoError(t, f.SetCellFloat("Sheet1", cell, 3.65, 2, 64))
	}

	path := filepath.Join(t.TempDir(), "readings.xlsx")
	require.NoError(t, f.SaveAs(path))

	rows, err := NewVoltageReader(path).ReadRows()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.InDelta(t, 3.65, rows[0].Voltages[10], 1e-9)
}

func TestReadMissingFile(t *testing.T) {
	_, err := NewVoltageReader("/does/not/exist.xlsx").ReadRows()
	require.Error(t, err)
}
