package recorder

import (
	"fmt"
	"time"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/game"
	"github.com/SeamusWaldron/cubesim/internal/storage"
	"github.com/sirupsen/logrus"
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

var (
	_ game.Listener      = (*Session)(nil)
	_ game.PhaseListener = (*Session)(nil)
)

// Session records solve attempts reported by a game controller. Each
// scramble opens a solve; it closes when the cube is solved, reset or
// scrambled again.
type Session struct {
	stateFile  *StateFile
	solveRepo  *storage.SolveRepository
	moveRepo   *storage.MoveRepository
	phaseRepo  *storage.PhaseRepository
	log        *logrus.Logger
	clock      func() time.Time
	source     string
	appVersion string

	state     SessionState
	solveID   string
	moveIndex int
	lastErr   error
}

// NewSession creates a recorder writing to db. stateFile may be nil.
func NewSession(db *storage.DB, stateFile *StateFile, log *logrus.Logger) *Session {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Session{
		stateFile: stateFile,
		solveRepo: storage.NewSolveRepository(db),
		moveRepo:  storage.NewMoveRepository(db),
		phaseRepo: storage.NewPhaseRepository(db),
		log:       log,
		clock:     time.Now,
		source:    "keyboard",
	}
}

// SetSource labels recorded solves with the input they came from.
func (s *Session) SetSource(source string) {
	s.source = source
}

// SetAppVersion sets the version stored with each solve.
func (s *Session) SetAppVersion(v string) {
	s.appVersion = v
}

// SetClock replaces the wall clock used for solve timestamps.
func (s *Session) SetClock(clock func() time.Time) {
	s.clock = clock
}

// State returns the current session state.
func (s *Session) State() SessionState {
	return s.state
}

// SolveID returns the current or last solve ID.
func (s *Session) SolveID() string {
	return s.solveID
}

// MoveCount returns the number of moves recorded for the current solve.
func (s *Session) MoveCount() int {
	return s.moveIndex
}

// Err returns the last storage error, if any.
func (s *Session) Err() error {
	return s.lastErr
}

// Scrambled opens a new solve, closing any open one as unsolved.
func (s *Session) Scrambled(scramble []cubesim.Move) {
	s.abandon()

	id, err := s.solveRepo.Create(s.clock(), cubesim.FormatMoves(scramble), s.source, s.appVersion)
	if err != nil {
		s.fail(err)
		return
	}

	s.solveID = id
	s.moveIndex = 0
	s.state = StateRecording
	s.log.WithField("solve_id", id).Debug("recording solve")

	if s.stateFile != nil {
		if err := s.stateFile.SetActiveSolve(id); err != nil {
			s.log.WithError(err).Warn("failed to save state")
		}
	}
}

// Moved stores a move at its offset into the solve.
func (s *Session) Moved(m cubesim.Move, elapsed time.Duration) {
	if s.state != StateRecording {
		return
	}
	if _, err := s.moveRepo.Create(s.solveID, s.moveIndex, elapsed.Milliseconds(), m); err != nil {
		s.fail(err)
		return
	}
	s.moveIndex++
}

// PhaseReached marks the first time the solve reached p.
func (s *Session) PhaseReached(p cubesim.Phase, elapsed time.Duration, moves int) {
	if s.state != StateRecording {
		return
	}
	if _, err := s.phaseRepo.CreateMark(s.solveID, elapsed.Milliseconds(), moves, p); err != nil {
		s.fail(err)
	}
}

// Solved closes the solve as completed.
func (s *Session) Solved(elapsed time.Duration, moves int) {
	s.end(elapsed, moves, true)
}

// Reset closes an open solve as unsolved.
func (s *Session) Reset() {
	s.abandon()
}

// Close closes an open solve as unsolved. Call it before closing the
// database.
func (s *Session) Close() {
	s.abandon()
}

func (s *Session) abandon() {
	if s.state != StateRecording {
		return
	}
	var elapsed time.Duration
	if recs, err := s.moveRepo.GetBySolve(s.solveID); err == nil && len(recs) > 0 {
		elapsed = time.Duration(recs[len(recs)-1].TsMs) * time.Millisecond
	}
	s.end(elapsed, s.moveIndex, false)
}

func (s *Session) end(elapsed time.Duration, moves int, solved bool) {
	if s.state != StateRecording {
		return
	}
	if err := s.solveRepo.End(s.solveID, s.clock(), elapsed, moves, solved); err != nil {
		s.fail(err)
		return
	}
	s.state = StateEnded
	s.log.WithFields(logrus.Fields{
		"solve_id": s.solveID,
		"solved":   solved,
		"moves":    moves,
	}).Info("solve recorded")

	if s.stateFile != nil {
		if err := s.stateFile.ClearActiveSolve(); err != nil {
			s.log.WithError(err).Warn("failed to save state")
		}
	}
}

func (s *Session) fail(err error) {
	s.lastErr = fmt.Errorf("recorder: %w", err)
	s.log.WithError(err).Error("failed to record solve")
}
