// Package analysis computes statistics over recorded solves.
package analysis

import (
	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// PauseThresholdMs is the gap after which a hesitation counts as a pause.
const PauseThresholdMs = 1500

// TimedMove is a move with its offset into the solve.
type TimedMove struct {
	Move cubesim.Move
	TsMs int64
}

// FromRecords converts stored moves.
func FromRecords(records []storage.MoveRecord) []TimedMove {
	moves := make([]TimedMove, len(records))
	for i, r := range records {
		moves[i] = TimedMove{Move: r.Move(), TsMs: r.TsMs}
	}
	return moves
}

// SolveSummary contains statistics for a single solve.
type SolveSummary struct {
	SolveID            string               `json:"solve_id"`
	Solved             bool                 `json:"solved"`
	DurationMs         int64                `json:"duration_ms"`
	TotalMoves         int                  `json:"total_moves"`
	TPSOverall         float64              `json:"tps_overall"`
	AvgMoveDurationMs  float64              `json:"avg_move_duration_ms"`
	LongestPauseMs     int64                `json:"longest_pause_ms"`
	PauseCountOver1500 int                  `json:"pause_count_over_1500ms"`
	Cancellations      int                  `json:"cancellations"`
	OptimizedMoves     int                  `json:"optimized_moves"`
	Efficiency         float64              `json:"efficiency"`
	Repetitions        *RepetitionReport    `json:"repetitions"`
	Diagnostics        *Diagnostics         `json:"diagnostics"`
	Phases             []PhaseSplit         `json:"phases,omitempty"`
	FaceCounts         map[cubesim.Face]int `json:"face_counts"`
	MostUsedFace       cubesim.Face         `json:"most_used_face,omitempty"`
}

// Summarize computes a summary of solve s from its moves.
func Summarize(s storage.Solve, moves []TimedMove) *SolveSummary {
	sum := &SolveSummary{
		SolveID:            s.SolveID,
		Solved:             s.Solved,
		TotalMoves:         len(moves),
		AvgMoveDurationMs:  CalculateAvgMoveDuration(moves),
		LongestPauseMs:     FindLongestPause(moves),
		PauseCountOver1500: CountPausesOver(moves, PauseThresholdMs),
		Cancellations:      CountCancellations(moves),
		FaceCounts:         make(map[cubesim.Face]int),
	}
	if s.DurationMs != nil {
		sum.DurationMs = *s.DurationMs
	}
	sum.TPSOverall = CalculateTPS(len(moves), sum.DurationMs)

	plain := make([]cubesim.Move, len(moves))
	for i, m := range moves {
		plain[i] = m.Move
	}
	optimized := OptimizeMoves(plain)
	sum.OptimizedMoves = len(optimized)
	sum.Efficiency = CalculateEfficiency(plain, optimized)
	sum.Repetitions = AnalyzeRepetitions(moves)
	sum.Diagnostics = Diagnose(moves)

	most := 0
	for _, m := range moves {
		sum.FaceCounts[m.Move.Face]++
	}
	// Iterate in face order so ties resolve the same way every time.
	for _, f := range cubesim.Faces {
		if n := sum.FaceCounts[f]; n > most {
			most = n
			sum.MostUsedFace = f
		}
	}

	return sum
}

// CalculateTPS calculates turns per second.
func CalculateTPS(moves int, durationMs int64) float64 {
	if durationMs <= 0 {
		return 0
	}
	return float64(moves) / (float64(durationMs) / 1000.0)
}

// CalculateAvgMoveDuration calculates the average time between moves.
func CalculateAvgMoveDuration(moves []TimedMove) float64 {
	if len(moves) < 2 {
		return 0
	}
	totalGap := moves[len(moves)-1].TsMs - moves[0].TsMs
	return float64(totalGap) / float64(len(moves)-1)
}

// FindLongestPause finds the longest gap between consecutive moves.
func FindLongestPause(moves []TimedMove) int64 {
	var longest int64
	for i := 1; i < len(moves); i++ {
		if gap := moves[i].TsMs - moves[i-1].TsMs; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CountPausesOver counts gaps longer than thresholdMs.
func CountPausesOver(moves []TimedMove, thresholdMs int64) int {
	count := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].TsMs-moves[i-1].TsMs > thresholdMs {
			count++
		}
	}
	return count
}

// CountCancellations counts moves immediately undone by the next one,
// such as R followed by R'.
func CountCancellations(moves []TimedMove) int {
	count := 0
	for i := 1; i < len(moves); i++ {
		if moves[i].Move == moves[i-1].Move.Inverse() {
			count++
			i++
		}
	}
	return count
}
