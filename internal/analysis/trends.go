package analysis

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// AverageSizes are the trimmed averages reported by AnalyzeTrends.
var AverageSizes = []int{5, 12, 50, 100}

// TrendReport contains trend analysis across multiple solves.
type TrendReport struct {
	TotalSolves     int       `json:"total_solves"`
	CompletedSolves int       `json:"completed_solves"`
	DateRange       DateRange `json:"date_range"`

	AvgDurationMs float64 `json:"avg_duration_ms"`
	AvgMoves      float64 `json:"avg_moves"`
	AvgTPS        float64 `json:"avg_tps"`

	BestSolve  SolveStats `json:"best_solve"`
	WorstSolve SolveStats `json:"worst_solve"`

	ImprovementPct   float64 `json:"improvement_pct"`
	ConsistencyScore float64 `json:"consistency_score"`

	// Averages of the most recent N completed solves, best and worst dropped
	Averages map[int]float64 `json:"averages"`

	Solves []SolveStats `json:"solves"`
}

// DateRange represents a date range.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// SolveStats represents statistics for a single solve in trend context.
type SolveStats struct {
	SolveID    string  `json:"solve_id"`
	Timestamp  string  `json:"timestamp"`
	DurationMs int64   `json:"duration_ms"`
	MoveCount  int     `json:"move_count"`
	TPS        float64 `json:"tps"`
}

func statsOf(s storage.Solve) SolveStats {
	return SolveStats{
		SolveID:    s.SolveID,
		Timestamp:  s.StartedAt.Format(time.RFC3339),
		DurationMs: *s.DurationMs,
		MoveCount:  s.MoveCount,
		TPS:        CalculateTPS(s.MoveCount, *s.DurationMs),
	}
}

// AnalyzeTrends analyzes trends across solves. Only solved attempts with a
// duration count as completed.
func AnalyzeTrends(solves []storage.Solve) *TrendReport {
	report := &TrendReport{
		TotalSolves: len(solves),
		Averages:    make(map[int]float64),
		Solves:      []SolveStats{},
	}

	var completed []storage.Solve
	for _, s := range solves {
		if s.Solved && s.DurationMs != nil && *s.DurationMs > 0 {
			completed = append(completed, s)
		}
	}
	report.CompletedSolves = len(completed)
	if len(completed) == 0 {
		return report
	}

	sort.Slice(completed, func(i, j int) bool {
		return completed[i].StartedAt.Before(completed[j].StartedAt)
	})

	report.DateRange = DateRange{
		Start: completed[0].StartedAt.Format(time.RFC3339),
		End:   completed[len(completed)-1].StartedAt.Format(time.RFC3339),
	}

	durations := make([]float64, len(completed))
	moves := make([]float64, len(completed))
	tps := make([]float64, len(completed))
	best, worst := 0, 0
	for i, s := range completed {
		st := statsOf(s)
		report.Solves = append(report.Solves, st)
		durations[i] = float64(st.DurationMs)
		moves[i] = float64(st.MoveCount)
		tps[i] = st.TPS

		if durations[i] < durations[best] {
			best = i
		}
		if durations[i] > durations[worst] {
			worst = i
		}
	}

	report.AvgDurationMs = stat.Mean(durations, nil)
	report.AvgMoves = stat.Mean(moves, nil)
	report.AvgTPS = stat.Mean(tps, nil)
	report.BestSolve = report.Solves[best]
	report.WorstSolve = report.Solves[worst]
	report.ImprovementPct = calculateImprovement(durations)
	report.ConsistencyScore = calculateConsistency(durations)

	for _, n := range AverageSizes {
		if avg, ok := TrimmedAverage(durations, n); ok {
			report.Averages[n] = avg
		}
	}

	return report
}

// TrimmedAverage returns the mean of the last n durations with the best and
// worst dropped. It needs at least n durations and n >= 3.
func TrimmedAverage(durations []float64, n int) (float64, bool) {
	if n < 3 || len(durations) < n {
		return 0, false
	}
	recent := append([]float64(nil), durations[len(durations)-n:]...)
	sort.Float64s(recent)
	return stat.Mean(recent[1:n-1], nil), true
}

// calculateImprovement compares the first and last quarter of the solves.
// Positive means faster.
func calculateImprovement(durations []float64) float64 {
	if len(durations) < 4 {
		return 0
	}

	q := len(durations) / 4
	first := stat.Mean(durations[:q], nil)
	last := stat.Mean(durations[len(durations)-q:], nil)
	if first <= 0 {
		return 0
	}
	return (first - last) / first * 100
}

// calculateConsistency maps the coefficient of variation to 0-100, where
// 100 means identical times.
func calculateConsistency(durations []float64) float64 {
	if len(durations) < 2 {
		return 100
	}

	mean, std := stat.MeanStdDev(durations, nil)
	if mean <= 0 {
		return 100
	}

	score := 100 - std/mean*100
	return min(max(score, 0), 100)
}
