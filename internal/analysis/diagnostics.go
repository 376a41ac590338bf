package analysis

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/SeamusWaldron/cubesim"
)

// Diagnostics describes how a solve flowed: how scattered the turns were,
// how often the solver undid themselves, and how the gaps between moves
// were spread.
type Diagnostics struct {
	// Shannon entropy in bits of the layer distribution. Searching solves
	// score high; algorithmic runs score low.
	FaceEntropy   float64 `json:"face_entropy"`
	DistinctFaces int     `json:"distinct_faces"`

	Reversals  int `json:"reversals"`   // X X'
	FullCycles int `json:"full_cycles"` // Four turns of one layer that return it
	ShortLoops int `json:"short_loops"` // A B A' and A B C A'

	BaseTurns      int `json:"base_turns"`
	LongestBaseRun int `json:"longest_base_run"`

	MinGapMs       int64   `json:"min_gap_ms"`
	MaxGapMs       int64   `json:"max_gap_ms"`
	AvgGapMs       float64 `json:"avg_gap_ms"`
	GapsOver750ms  int     `json:"gaps_over_750ms"`
	GapsOver1500ms int     `json:"gaps_over_1500ms"`
	GapsOver3000ms int     `json:"gaps_over_3000ms"`
}

// Diagnose computes flow diagnostics for moves.
func Diagnose(moves []TimedMove) *Diagnostics {
	d := &Diagnostics{}
	d.FaceEntropy, d.DistinctFaces = faceEntropy(moves)
	d.Reversals, d.FullCycles = countReversals(moves)
	d.ShortLoops = countShortLoops(moves)
	d.BaseTurns, d.LongestBaseRun = baseTurns(moves)
	analyzeGaps(moves, d)
	return d
}

func faceEntropy(moves []TimedMove) (float64, int) {
	if len(moves) == 0 {
		return 0, 0
	}

	counts := make(map[cubesim.Face]int)
	for _, m := range moves {
		counts[m.Move.Face]++
	}
	p := make([]float64, 0, len(counts))
	for _, f := range cubesim.Faces {
		if n := counts[f]; n > 0 {
			p = append(p, float64(n)/float64(len(moves)))
		}
	}
	return stat.Entropy(p) / math.Ln2, len(counts)
}

func countReversals(moves []TimedMove) (reversals, fullCycles int) {
	for i := 1; i < len(moves); i++ {
		if moves[i].Move == moves[i-1].Move.Inverse() {
			reversals++
		}
	}

	for i := 3; i < len(moves); i++ {
		face := moves[i].Move.Face
		net := 0
		same := true
		for _, m := range moves[i-3 : i+1] {
			if m.Move.Face != face {
				same = false
				break
			}
			if m.Move.Clockwise {
				net++
			} else {
				net--
			}
		}
		if same && net%4 == 0 {
			fullCycles++
		}
	}
	return reversals, fullCycles
}

func countShortLoops(moves []TimedMove) int {
	loops := 0
	for i := 2; i < len(moves); i++ {
		a := moves[i-2].Move
		if moves[i].Move == a.Inverse() && moves[i-1].Move.Face != a.Face {
			loops++
		}
	}
	for i := 3; i < len(moves); i++ {
		a := moves[i-3].Move
		if moves[i].Move == a.Inverse() && moves[i-2].Move.Face != a.Face && moves[i-1].Move.Face != a.Face {
			loops++
		}
	}
	return loops
}

func baseTurns(moves []TimedMove) (count, longest int) {
	run := 0
	for _, m := range moves {
		if m.Move.Face != cubesim.FaceD {
			run = 0
			continue
		}
		count++
		run++
		longest = max(longest, run)
	}
	return count, longest
}

func analyzeGaps(moves []TimedMove, d *Diagnostics) {
	if len(moves) < 2 {
		return
	}

	gaps := make([]float64, 0, len(moves)-1)
	d.MinGapMs = math.MaxInt64
	for i := 1; i < len(moves); i++ {
		gap := moves[i].TsMs - moves[i-1].TsMs
		gaps = append(gaps, float64(gap))
		d.MinGapMs = min(d.MinGapMs, gap)
		d.MaxGapMs = max(d.MaxGapMs, gap)

		if gap > 750 {
			d.GapsOver750ms++
		}
		if gap > 1500 {
			d.GapsOver1500ms++
		}
		if gap > 3000 {
			d.GapsOver3000ms++
		}
	}
	d.AvgGapMs = stat.Mean(gaps, nil)
}
