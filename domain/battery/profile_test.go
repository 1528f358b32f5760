package battery

import "testing"

func TestProfileSampleUniform(t *testing.T) {
	diag := ProfileSample(uniform(3.7, PackCellCount))

	if diag.OutlierCount != 0 {
		t.Errorf("outliers = %d, want 0", diag.OutlierCount)
	}
	if diag.Spread != 0 {
		t.Errorf("spread = %v, want 0", diag.Spread)
	}
	if !diag.IsNormal {
		t.Error("constant sample should not be flagged as abnormal")
	}
}

func TestProfileSampleOutlier(t *testing.T) {
	voltages := uniform(3.7, PackCellCount)
	// One cell sagging far below the pack
	voltages[7] = 2.6

	diag := ProfileSample(voltages)
	if diag.OutlierCount != 1 {
		t.Errorf("outliers = %d, want 1", diag.OutlierCount)
	}
	if diag.Spread <= 1.0 {
		t.Errorf("spread = %v, want > 1.0", diag.Spread)
	}
}

func TestProfileSampleTooShort(t *testing.T) {
	diag := ProfileSample([]float64{3.7, 3.7})
	if diag.OutlierCount != 0 || diag.IsNormal {
		t.Errorf("short sample should yield zero diagnostics, got %+v", diag)
	}
}
