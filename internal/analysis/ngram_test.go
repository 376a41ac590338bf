package analysis

import (
	"testing"

	"github.com/SeamusWaldron/cubesim"
)

func TestMoveToken_RoundTrip(t *testing.T) {
	for _, f := range cubesim.Faces {
		for _, cw := range []bool{true, false} {
			m := cubesim.Move{Face: f, Clockwise: cw}
			if got := moveFromToken(moveToken(m)); got != m {
				t.Errorf("token round trip of %s gave %s", m.Notation(), got.Notation())
			}
		}
	}
}

func TestRollingHash_MatchesFreshHash(t *testing.T) {
	tokens := []uint8{3, 7, 1, 0, 9, 3, 7, 1}
	rolling := NewRollingHash(3)
	for i, tok := range tokens {
		rolling.Roll(tok)
		if !rolling.Ready() {
			continue
		}
		fresh := NewRollingHash(3)
		for _, w := range tokens[i-2 : i+1] {
			fresh.Roll(w)
		}
		if rolling.Hash() != fresh.Hash() {
			t.Errorf("window ending at %d: rolling hash %d, fresh %d", i, rolling.Hash(), fresh.Hash())
		}
	}
}

func TestMineNGrams(t *testing.T) {
	moves := timed("R U R' U' R U R' U' F", 0, 100, 200, 300, 1000, 1100, 1200, 1300, 2000)
	report := MineNGrams(moves, 2, 4, 2)

	four := report.TopNGrams[4]
	if len(four) != 1 {
		t.Fatalf("4-grams = %+v, want one", four)
	}
	if four[0].Notation() != "R U R' U'" || four[0].Count != 2 {
		t.Errorf("top 4-gram = %s x%d", four[0].Notation(), four[0].Count)
	}
	if occ := four[0].Occurrences; len(occ) != 2 || occ[0].StartIndex != 0 || occ[1].TsMs != 1000 {
		t.Errorf("occurrences = %+v", occ)
	}

	two := report.TopNGrams[2]
	if len(two) != 2 || two[0].Notation() != "R U" || two[1].Notation() != "R' U'" {
		t.Errorf("2-grams = %+v", two)
	}

	if got := len(report.TopNGrams[3]); got != 2 {
		t.Errorf("3-grams = %d, want 2", got)
	}

	if empty := MineNGrams(timed("R U F", 0, 0, 0), 2, 4, 5); len(empty.TopNGrams) != 0 {
		t.Errorf("no repeats should give no n-grams: %+v", empty.TopNGrams)
	}
}

func TestMineNGramsAcrossSolves(t *testing.T) {
	moves := timed("R U R' U' R U R' U'", 0, 1, 2, 3, 4, 5, 6, 7)
	reports := map[string]*NGramReport{
		"b": MineNGrams(moves, 4, 4, 3),
		"a": MineNGrams(moves, 4, 4, 3),
	}

	merged := MineNGramsAcrossSolves(reports, 1)
	top := merged.TopNGrams[4]
	if len(top) != 1 || top[0].Notation() != "R U R' U'" || top[0].Count != 4 {
		t.Fatalf("merged 4-grams = %+v", top)
	}
	if occ := top[0].Occurrences; len(occ) != 4 || occ[0].SolveID != "a" || occ[3].SolveID != "b" {
		t.Errorf("occurrences = %+v", occ)
	}
}
