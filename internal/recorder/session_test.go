package recorder

import (
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubesim"
	"github.com/SeamusWaldron/cubesim/internal/game"
	"github.com/SeamusWaldron/cubesim/internal/storage"
	"github.com/sirupsen/logrus"
)

type harness struct {
	ctrl    *game.Controller
	session *Session
	solves  *storage.SolveRepository
	moves   *storage.MoveRepository
	state   *StateFile
	now     time.Time
}

func (h *harness) clock() time.Time { return h.now }

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()

	db, err := storage.Open(filepath.Join(dir, "cubesim.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := db.MigrateUp(); err != nil {
		t.Fatalf("MigrateUp: %v", err)
	}

	sf, err := NewStateFile(filepath.Join(dir, "state.json"))
	if err != nil {
		t.Fatalf("NewStateFile: %v", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	h := &harness{
		solves: storage.NewSolveRepository(db),
		moves:  storage.NewMoveRepository(db),
		state:  sf,
		now:    time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC),
	}

	seq := cubesim.NewSequencer(cubesim.NewCube(), cubesim.WithClock(h.clock))
	h.ctrl = game.New(seq, h.clock, log)
	h.session = NewSession(db, sf, log)
	h.session.SetClock(h.clock)
	h.ctrl.AddListener(h.session)
	return h
}

func (h *harness) play(moves ...cubesim.Move) {
	for _, m := range moves {
		h.now = h.now.Add(500 * time.Millisecond)
		h.ctrl.Turn(m)
		h.ctrl.Sequencer().Flush()
	}
}

func TestSession_RecordsSolvedAttempt(t *testing.T) {
	h := newHarness(t)

	if err := h.ctrl.ScrambleWith([]cubesim.Move{cubesim.R, cubesim.U}); err != nil {
		t.Fatalf("ScrambleWith: %v", err)
	}
	h.ctrl.Sequencer().Flush()

	if h.session.State() != StateRecording {
		t.Fatalf("state = %s, want recording", h.session.State())
	}
	if got := h.state.State().ActiveSolveID; got != h.session.SolveID() {
		t.Errorf("active solve in state file = %q, want %q", got, h.session.SolveID())
	}

	h.play(cubesim.UPrime, cubesim.RPrime)

	if err := h.session.Err(); err != nil {
		t.Fatalf("session error: %v", err)
	}
	if h.session.State() != StateEnded {
		t.Fatalf("state = %s, want ended", h.session.State())
	}

	s, err := h.solves.Get(h.session.SolveID())
	if err != nil || s == nil {
		t.Fatalf("Get: %v, %v", s, err)
	}
	if !s.Solved || s.MoveCount != 2 {
		t.Errorf("solved=%v moves=%d, want true 2", s.Solved, s.MoveCount)
	}
	if s.ScrambleText == nil || *s.ScrambleText != "R U" {
		t.Errorf("scramble = %v, want R U", s.ScrambleText)
	}
	if s.DurationMs == nil || *s.DurationMs != 500 {
		t.Errorf("duration = %v, want 500", s.DurationMs)
	}

	records, err := h.moves.GetBySolve(s.SolveID)
	if err != nil {
		t.Fatalf("GetBySolve: %v", err)
	}
	if got := cubesim.FormatMoves(storage.ToMoves(records)); got != "U' R'" {
		t.Errorf("moves = %q, want %q", got, "U' R'")
	}
	if h.state.State().ActiveSolveID != "" {
		t.Error("active solve should be cleared")
	}
}

func TestSession_ResetAbandonsAttempt(t *testing.T) {
	h := newHarness(t)

	h.ctrl.ScrambleWith([]cubesim.Move{cubesim.F})
	h.play(cubesim.R)
	h.ctrl.Reset()
	h.ctrl.Sequencer().Flush()

	s, err := h.solves.GetLast()
	if err != nil || s == nil {
		t.Fatalf("GetLast: %v, %v", s, err)
	}
	if s.Solved {
		t.Error("reset attempt should not be solved")
	}
	if s.EndedAt == nil || s.MoveCount != 1 {
		t.Errorf("ended=%v moves=%d, want ended with 1 move", s.EndedAt, s.MoveCount)
	}
}

func TestSession_RescrambleClosesPrevious(t *testing.T) {
	h := newHarness(t)

	h.ctrl.ScrambleWith([]cubesim.Move{cubesim.F})
	first := h.session.SolveID()
	h.ctrl.ScrambleWith([]cubesim.Move{cubesim.B})

	if h.session.SolveID() == first {
		t.Fatal("second scramble should open a new solve")
	}
	s, _ := h.solves.Get(first)
	if s == nil || s.EndedAt == nil || s.Solved {
		t.Errorf("first solve should be closed unsolved: %+v", s)
	}
}

func TestAppState_Defaults(t *testing.T) {
	var s AppState
	if s.TurnDuration() != cubesim.DefaultTurnDuration {
		t.Errorf("TurnDuration = %v", s.TurnDuration())
	}
	if s.Scramble() != cubesim.DefaultScrambleLength {
		t.Errorf("Scramble = %d", s.Scramble())
	}

	path := filepath.Join(t.TempDir(), "nested", "state.json")
	sf, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("NewStateFile: %v", err)
	}
	if err := sf.SetLastDevice("AA:BB", "GoCube_1"); err != nil {
		t.Fatalf("SetLastDevice: %v", err)
	}

	again, err := NewStateFile(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.State().LastDeviceName != "GoCube_1" {
		t.Errorf("LastDeviceName = %q", again.State().LastDeviceName)
	}
}

func TestSession_RecordsPhaseMarks(t *testing.T) {
	h := newHarness(t)

	h.ctrl.ScrambleWith([]cubesim.Move{cubesim.D, cubesim.D})
	h.ctrl.Sequencer().Flush()
	h.play(cubesim.D, cubesim.D)

	if err := h.session.Err(); err != nil {
		t.Fatalf("session error: %v", err)
	}

	marks, err := h.session.phaseRepo.GetMarks(h.session.SolveID())
	if err != nil {
		t.Fatalf("GetMarks: %v", err)
	}
	if len(marks) != 2 {
		t.Fatalf("got %d marks, want 2: %+v", len(marks), marks)
	}
	if marks[0].Phase != "last_cross" || marks[0].MoveIndex != 1 || marks[0].TsMs != 0 {
		t.Errorf("first mark = %+v", marks[0])
	}
	if marks[1].Phase != "solved" || marks[1].MoveIndex != 2 || marks[1].TsMs != 500 {
		t.Errorf("second mark = %+v", marks[1])
	}
}
