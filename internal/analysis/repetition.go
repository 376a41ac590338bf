package analysis

import "github.com/SeamusWaldron/cubesim"

// Cancellation is a move immediately undone by the next one (R followed by R').
type Cancellation struct {
	Index1 int    `json:"index1"`
	Index2 int    `json:"index2"`
	Move1  string `json:"move1"`
	Move2  string `json:"move2"`
	TsMs   int64  `json:"ts_ms"`
}

// MergeOpportunity is three identical quarter turns in a row, which one
// turn the other way would replace (R R R = R').
type MergeOpportunity struct {
	StartIndex int    `json:"start_index"`
	Move       string `json:"move"`
	MergedMove string `json:"merged_move"`
	TsMs       int64  `json:"ts_ms"`
}

// BackAndForthPattern is a pair of moves repeated in a row (R U R U R U).
type BackAndForthPattern struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Pattern    []string `json:"pattern"`
	Count      int      `json:"count"`
	TsMs       int64    `json:"ts_ms"`
}

// RepetitionReport contains all repetition analysis results.
type RepetitionReport struct {
	ImmediateCancellations []Cancellation        `json:"immediate_cancellations"`
	MergeOpportunities     []MergeOpportunity    `json:"merge_opportunities"`
	BackAndForthPatterns   []BackAndForthPattern `json:"back_and_forth_patterns"`
	TotalWastedMoves       int                   `json:"total_wasted_moves"`
}

// AnalyzeRepetitions looks for wasted motion in a move sequence.
func AnalyzeRepetitions(moves []TimedMove) *RepetitionReport {
	report := &RepetitionReport{
		ImmediateCancellations: []Cancellation{},
		MergeOpportunities:     []MergeOpportunity{},
		BackAndForthPatterns:   []BackAndForthPattern{},
	}

	for i := 0; i+1 < len(moves); i++ {
		m1, m2 := moves[i], moves[i+1]
		if m2.Move == m1.Move.Inverse() {
			report.ImmediateCancellations = append(report.ImmediateCancellations, Cancellation{
				Index1: i,
				Index2: i + 1,
				Move1:  m1.Move.Notation(),
				Move2:  m2.Move.Notation(),
				TsMs:   m1.TsMs,
			})
			report.TotalWastedMoves += 2
			i++
		}
	}

	for i := 0; i+2 < len(moves); i++ {
		m := moves[i].Move
		if moves[i+1].Move == m && moves[i+2].Move == m {
			report.MergeOpportunities = append(report.MergeOpportunities, MergeOpportunity{
				StartIndex: i,
				Move:       m.Notation(),
				MergedMove: m.Inverse().Notation(),
				TsMs:       moves[i].TsMs,
			})
			report.TotalWastedMoves += 2
			i += 2
		}
	}

	report.BackAndForthPatterns = findBackAndForth(moves)

	return report
}

// findBackAndForth finds a pair of different moves repeated at least three
// times in a row.
func findBackAndForth(moves []TimedMove) []BackAndForthPattern {
	patterns := []BackAndForthPattern{}

	i := 0
	for i+3 < len(moves) {
		a, b := moves[i].Move, moves[i+1].Move
		if a == b {
			i++
			continue
		}

		count := 1
		j := i + 2
		for j+1 < len(moves) && moves[j].Move == a && moves[j+1].Move == b {
			count++
			j += 2
		}

		if count >= 3 {
			patterns = append(patterns, BackAndForthPattern{
				StartIndex: i,
				EndIndex:   i + count*2 - 1,
				Pattern:    []string{a.Notation(), b.Notation()},
				Count:      count,
				TsMs:       moves[i].TsMs,
			})
			i = j
		} else {
			i++
		}
	}

	return patterns
}

// OptimizeMoves collapses runs of turns of the same layer to their net
// effect, repeatedly, so R U U' R' vanishes and R R R becomes R'.
func OptimizeMoves(moves []cubesim.Move) []cubesim.Move {
	type run struct {
		face    cubesim.Face
		quarter int // Net clockwise quarter turns, 0..3
	}

	var stack []run
	for _, m := range moves {
		q := 1
		if !m.Clockwise {
			q = 3
		}
		if n := len(stack); n > 0 && stack[n-1].face == m.Face {
			stack[n-1].quarter = (stack[n-1].quarter + q) % 4
			if stack[n-1].quarter == 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, run{face: m.Face, quarter: q})
	}

	result := make([]cubesim.Move, 0, len(moves))
	for _, r := range stack {
		switch r.quarter {
		case 1:
			result = append(result, cubesim.Move{Face: r.face, Clockwise: true})
		case 2:
			result = append(result, cubesim.Move{Face: r.face, Clockwise: true}, cubesim.Move{Face: r.face, Clockwise: true})
		case 3:
			result = append(result, cubesim.Move{Face: r.face, Clockwise: false})
		}
	}
	return result
}

// CalculateEfficiency returns the optimized to original length ratio.
func CalculateEfficiency(original, optimized []cubesim.Move) float64 {
	if len(original) == 0 {
		return 1.0
	}
	return float64(len(optimized)) / float64(len(original))
}
