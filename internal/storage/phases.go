package storage

import (
	"fmt"

	"github.com/SeamusWaldron/cubesim"
)

// PhaseMark records the moment a solve first reached a phase.
type PhaseMark struct {
	PhaseMarkID int64
	SolveID     string
	TsMs        int64 // Milliseconds since the solve started
	MoveIndex   int   // Number of moves made when the phase was reached
	Phase       string
}

// PhaseRepository provides CRUD operations for phase marks.
type PhaseRepository struct {
	db *DB
}

// NewPhaseRepository creates a new phase repository.
func NewPhaseRepository(db *DB) *PhaseRepository {
	return &PhaseRepository{db: db}
}

// CreateMark stores a phase mark and returns its ID. Marking a phase a
// second time for the same solve is an error.
func (r *PhaseRepository) CreateMark(solveID string, tsMs int64, moveIndex int, phase cubesim.Phase) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO phase_marks (solve_id, ts_ms, move_index, phase)
		VALUES (?, ?, ?, ?)
	`, solveID, tsMs, moveIndex, phase.String())
	if err != nil {
		return 0, fmt.Errorf("failed to create phase mark: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get phase mark ID: %w", err)
	}
	return id, nil
}

// GetMarks retrieves all phase marks for a solve in time order.
func (r *PhaseRepository) GetMarks(solveID string) ([]PhaseMark, error) {
	rows, err := r.db.Query(`
		SELECT phase_mark_id, solve_id, ts_ms, move_index, phase
		FROM phase_marks
		WHERE solve_id = ?
		ORDER BY ts_ms, move_index
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get phase marks: %w", err)
	}
	defer rows.Close()

	var marks []PhaseMark
	for rows.Next() {
		var m PhaseMark
		if err := rows.Scan(&m.PhaseMarkID, &m.SolveID, &m.TsMs, &m.MoveIndex, &m.Phase); err != nil {
			return nil, fmt.Errorf("failed to scan phase mark: %w", err)
		}
		marks = append(marks, m)
	}
	return marks, rows.Err()
}
