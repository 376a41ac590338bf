package analysis

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestDiagnose(t *testing.T) {
	moves := timed("R R' U F U' D D D", 0, 100, 200, 1000, 1800, 3900, 4000, 4100)
	d := Diagnose(moves)

	if d.Reversals != 1 || d.FullCycles != 0 || d.ShortLoops != 1 {
		t.Errorf("reversals/cycles/loops = %d/%d/%d, want 1/0/1", d.Reversals, d.FullCycles, d.ShortLoops)
	}
	if d.BaseTurns != 3 || d.LongestBaseRun != 3 {
		t.Errorf("base turns = %d run %d, want 3 run 3", d.BaseTurns, d.LongestBaseRun)
	}

	if d.DistinctFaces != 4 {
		t.Errorf("DistinctFaces = %d, want 4", d.DistinctFaces)
	}
	want := 1.0 + 0.375 + 0.375*math.Log2(8.0/3.0)
	if !scalar.EqualWithinAbs(d.FaceEntropy, want, 1e-9) {
		t.Errorf("FaceEntropy = %v, want %v", d.FaceEntropy, want)
	}

	if d.MinGapMs != 100 || d.MaxGapMs != 2100 {
		t.Errorf("gap range = %d..%d, want 100..2100", d.MinGapMs, d.MaxGapMs)
	}
	if !scalar.EqualWithinAbs(d.AvgGapMs, 4100.0/7, 1e-9) {
		t.Errorf("AvgGapMs = %v", d.AvgGapMs)
	}
	if d.GapsOver750ms != 3 || d.GapsOver1500ms != 1 || d.GapsOver3000ms != 0 {
		t.Errorf("gap buckets = %d/%d/%d, want 3/1/0", d.GapsOver750ms, d.GapsOver1500ms, d.GapsOver3000ms)
	}
}

func TestDiagnose_FullCycles(t *testing.T) {
	tests := []struct {
		in        string
		cycles    int
		reversals int
	}{
		{"U U U U", 1, 0},
		{"U U' U U'", 1, 3},
		{"U U U U'", 0, 1},
		{"U U U U U", 2, 0},
	}

	for _, tt := range tests {
		ts := make([]int64, 8)
		d := Diagnose(timed(tt.in, ts...))
		if d.FullCycles != tt.cycles || d.Reversals != tt.reversals {
			t.Errorf("%q: cycles %d reversals %d, want %d %d", tt.in, d.FullCycles, d.Reversals, tt.cycles, tt.reversals)
		}
	}
}

func TestDiagnose_Empty(t *testing.T) {
	d := Diagnose(nil)
	if d.FaceEntropy != 0 || d.DistinctFaces != 0 || d.MinGapMs != 0 {
		t.Errorf("empty diagnostics = %+v", d)
	}
}
