package analysis

import (
	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/storage"
)

// PhaseSplit is the stretch of a solve that ended when a phase was first
// reached.
type PhaseSplit struct {
	Phase      cubesim.Phase `json:"-"`
	Key        string        `json:"phase"`
	StartTsMs  int64         `json:"start_ts_ms"`
	EndTsMs    int64         `json:"end_ts_ms"`
	DurationMs int64         `json:"duration_ms"`
	MoveCount  int           `json:"move_count"`
	TPS        float64       `json:"tps"`
}

// PhaseSplits turns phase marks into consecutive splits. The first split
// starts at the first move; marks with an unknown phase are skipped.
func PhaseSplits(marks []storage.PhaseMark) []PhaseSplit {
	var (
		splits    []PhaseSplit
		lastTs    int64
		lastMoves int
	)
	for _, m := range marks {
		p, ok := cubesim.ParsePhase(m.Phase)
		if !ok {
			continue
		}
		s := PhaseSplit{
			Phase:      p,
			Key:        m.Phase,
			StartTsMs:  lastTs,
			EndTsMs:    m.TsMs,
			DurationMs: m.TsMs - lastTs,
			MoveCount:  m.MoveIndex - lastMoves,
		}
		s.TPS = CalculateTPS(s.MoveCount, s.DurationMs)
		splits = append(splits, s)
		lastTs, lastMoves = m.TsMs, m.MoveIndex
	}
	return splits
}
