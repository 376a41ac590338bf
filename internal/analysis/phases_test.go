package analysis

import (
	"testing"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

func TestPhaseSplits(t *testing.T) {
	marks := []storage.PhaseMark{
		{TsMs: 2000, MoveIndex: 6, Phase: "cross"},
		{TsMs: 2500, MoveIndex: 7, Phase: "bogus"},
		{TsMs: 6000, MoveIndex: 20, Phase: "second_layer"},
		{TsMs: 9000, MoveIndex: 35, Phase: "solved"},
	}

	splits := PhaseSplits(marks)
	if len(splits) != 3 {
		t.Fatalf("got %d splits, want 3", len(splits))
	}

	first := splits[0]
	if first.Phase != cubesim.PhaseCross || first.StartTsMs != 0 || first.DurationMs != 2000 || first.MoveCount != 6 {
		t.Errorf("first split = %+v", first)
	}
	if first.TPS != 3 {
		t.Errorf("first TPS = %v, want 3", first.TPS)
	}

	second := splits[1]
	if second.Phase != cubesim.PhaseSecondLayer || second.StartTsMs != 2000 || second.DurationMs != 4000 || second.MoveCount != 14 {
		t.Errorf("second split = %+v", second)
	}
	if last := splits[2]; last.Phase != cubesim.PhaseSolved || last.MoveCount != 15 || last.DurationMs != 3000 {
		t.Errorf("last split = %+v", last)
	}

	if PhaseSplits(nil) != nil {
		t.Error("no marks should give no splits")
	}
}
