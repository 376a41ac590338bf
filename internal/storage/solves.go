package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout sorts lexically in UTC.
const timeLayout = "2006-01-02T15:04:05.000Z07:00"

// Solve represents a solve attempt in the database.
type Solve struct {
	SolveID      string
	StartedAt    time.Time
	EndedAt      *time.Time
	DurationMs   *int64
	ScrambleText *string
	MoveCount    int
	Solved       bool
	Source       string // keyboard, drag or smartcube
	AppVersion   *string
}

// SolveRepository provides CRUD operations for solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a new solve repository.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// Create creates a new solve and returns its ID.
func (r *SolveRepository) Create(startedAt time.Time, scramble, source, appVersion string) (string, error) {
	id := uuid.New().String()

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, started_at, scramble_text, source, app_version)
		VALUES (?, ?, ?, ?, ?)
	`, id, startedAt.UTC().Format(timeLayout), optional(scramble), source, optional(appVersion))
	if err != nil {
		return "", fmt.Errorf("failed to create solve: %w", err)
	}

	return id, nil
}

// End closes a solve. duration is the timed duration, which excludes pauses
// and so may be shorter than the wall-clock span.
func (r *SolveRepository) End(solveID string, endedAt time.Time, duration time.Duration, moveCount int, solved bool) error {
	res, err := r.db.Exec(`
		UPDATE solves
		SET ended_at = ?, duration_ms = ?, move_count = ?, solved = ?
		WHERE solve_id = ?
	`, endedAt.UTC().Format(timeLayout), duration.Milliseconds(), moveCount, solved, solveID)
	if err != nil {
		return fmt.Errorf("failed to end solve: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to end solve %s: %w", solveID, sql.ErrNoRows)
	}
	return nil
}

const solveColumns = `solve_id, started_at, ended_at, duration_ms, scramble_text, move_count, solved, source, app_version`

type scanner interface {
	Scan(dest ...any) error
}

func scanSolve(row scanner) (*Solve, error) {
	var s Solve
	var startedAt string
	var endedAt sql.NullString

	err := row.Scan(
		&s.SolveID, &startedAt, &endedAt, &s.DurationMs, &s.ScrambleText,
		&s.MoveCount, &s.Solved, &s.Source, &s.AppVersion,
	)
	if err != nil {
		return nil, err
	}

	s.StartedAt, _ = time.Parse(timeLayout, startedAt)
	if endedAt.Valid {
		t, _ := time.Parse(timeLayout, endedAt.String)
		s.EndedAt = &t
	}
	return &s, nil
}

// Get retrieves a solve by ID. It returns nil if there is none.
func (r *SolveRepository) Get(solveID string) (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow(`SELECT `+solveColumns+` FROM solves WHERE solve_id = ?`, solveID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get solve: %w", err)
	}
	return s, nil
}

// GetLast retrieves the most recent solve.
func (r *SolveRepository) GetLast() (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow(`SELECT ` + solveColumns + ` FROM solves ORDER BY started_at DESC LIMIT 1`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last solve: %w", err)
	}
	return s, nil
}

// List retrieves recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`SELECT `+solveColumns+` FROM solves ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		s, err := scanSolve(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		solves = append(solves, *s)
	}
	return solves, rows.Err()
}

// Best returns the fastest completed solve, or nil.
func (r *SolveRepository) Best() (*Solve, error) {
	s, err := scanSolve(r.db.QueryRow(`
		SELECT ` + solveColumns + ` FROM solves
		WHERE solved = 1 AND duration_ms IS NOT NULL
		ORDER BY duration_ms ASC LIMIT 1
	`))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get best solve: %w", err)
	}
	return s, nil
}

// Delete deletes a solve with its moves and phase marks.
func (r *SolveRepository) Delete(solveID string) error {
	return r.db.Transaction(func(tx *sql.Tx) error {
		for _, table := range []string{"phase_marks", "moves", "solves"} {
			if _, err := tx.Exec("DELETE FROM "+table+" WHERE solve_id = ?", solveID); err != nil {
				return fmt.Errorf("failed to delete solve from %s: %w", table, err)
			}
		}
		return nil
	})
}
