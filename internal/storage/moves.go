package storage

import (
	"database/sql"
	"fmt"

	"github.com/SeamusWaldron/cubesim"
)

// MoveRecord represents a move in the database.
type MoveRecord struct {
	MoveID    int64
	SolveID   string
	MoveIndex int
	TsMs      int64 // Milliseconds since the solve started
	Face      string
	Clockwise bool
	Notation  string
}

// Move converts the record back to a cube move.
func (m MoveRecord) Move() cubesim.Move {
	return cubesim.Move{Face: cubesim.Face(m.Face), Clockwise: m.Clockwise}
}

// MoveRepository provides CRUD operations for moves.
type MoveRepository struct {
	db *DB
}

// NewMoveRepository creates a new move repository.
func NewMoveRepository(db *DB) *MoveRepository {
	return &MoveRepository{db: db}
}

const insertMove = `
	INSERT INTO moves (solve_id, move_index, ts_ms, face, clockwise, notation)
	VALUES (?, ?, ?, ?, ?, ?)
`

// Create stores one move and returns its ID.
func (r *MoveRepository) Create(solveID string, moveIndex int, tsMs int64, m cubesim.Move) (int64, error) {
	result, err := r.db.Exec(insertMove, solveID, moveIndex, tsMs, string(m.Face), m.Clockwise, m.Notation())
	if err != nil {
		return 0, fmt.Errorf("failed to create move: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get move ID: %w", err)
	}
	return id, nil
}

// CreateBatch stores moves with consecutive indexes in one transaction.
// tsMs holds one timestamp per move.
func (r *MoveRepository) CreateBatch(solveID string, startIndex int, moves []cubesim.Move, tsMs []int64) error {
	if len(moves) != len(tsMs) {
		return fmt.Errorf("%d moves but %d timestamps", len(moves), len(tsMs))
	}
	return r.db.Transaction(func(tx *sql.Tx) error {
		for i, m := range moves {
			_, err := tx.Exec(insertMove, solveID, startIndex+i, tsMs[i], string(m.Face), m.Clockwise, m.Notation())
			if err != nil {
				return fmt.Errorf("failed to create move %d: %w", startIndex+i, err)
			}
		}
		return nil
	})
}

// GetBySolve retrieves all moves for a solve in order.
func (r *MoveRepository) GetBySolve(solveID string) ([]MoveRecord, error) {
	rows, err := r.db.Query(`
		SELECT move_id, solve_id, move_index, ts_ms, face, clockwise, notation
		FROM moves
		WHERE solve_id = ?
		ORDER BY move_index
	`, solveID)
	if err != nil {
		return nil, fmt.Errorf("failed to get moves: %w", err)
	}
	defer rows.Close()

	var moves []MoveRecord
	for rows.Next() {
		var m MoveRecord
		if err := rows.Scan(&m.MoveID, &m.SolveID, &m.MoveIndex, &m.TsMs, &m.Face, &m.Clockwise, &m.Notation); err != nil {
			return nil, fmt.Errorf("failed to scan move: %w", err)
		}
		moves = append(moves, m)
	}
	return moves, rows.Err()
}

// Count returns the number of moves for a solve.
func (r *MoveRepository) Count(solveID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM moves WHERE solve_id = ?", solveID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count moves: %w", err)
	}
	return count, nil
}

// ToMoves converts records to cube moves.
func ToMoves(records []MoveRecord) []cubesim.Move {
	moves := make([]cubesim.Move, len(records))
	for i, r := range records {
		moves[i] = r.Move()
	}
	return moves
}
