package game

import (
	"io"
	"testing"
	"time"

	"github.com/SeamusWaldron/cubesim"
	"github.com/sirupsen/logrus"
)

type fakeClock struct {
	t time.Time
}

func (f *fakeClock) Now() time.Time { return f.t }
func (f *fakeClock) Advance(d time.Duration) { f.t = f.t.Add(d) }

type recordingListener struct {
	scrambles [][]cubesim.Move
	moves     []cubesim.Move
	solved    []int
	resets    int
}

func (r *recordingListener) Scrambled(s []cubesim.Move) { r.scrambles = append(r.scrambles, s) }
func (r *recordingListener) Moved(m cubesim.Move, _ time.Duration) { r.moves = append(r.moves, m) }
func (r *recordingListener) Solved(_ time.Duration, moves int) { r.solved = append(r.solved, moves) }
func (r *recordingListener) Reset() { r.resets++ }

func newTestController(t *testing.T) (*Controller, *fakeClock, *recordingListener) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	log := logrus.New()
	log.SetOutput(io.Discard)

	seq := cubesim.NewSequencer(cubesim.NewCube(),
		cubesim.WithClock(clock.Now),
		cubesim.WithSeed(1),
		cubesim.WithTurnDuration(200*time.Millisecond),
		cubesim.WithScrambleDuration(50*time.Millisecond),
	)
	c := New(seq, clock.Now, log)
	l := &recordingListener{}
	c.AddListener(l)
	return c, clock, l
}

func TestKeyMove(t *testing.T) {
	tests := []struct {
		key  string
		want cubesim.Move
		ok   bool
	}{
		{"r", cubesim.R, true},
		{"R", cubesim.RPrime, true},
		{"u", cubesim.U, true},
		{"M", cubesim.MPrime, true},
		{"s", cubesim.S, true},
		{"x", cubesim.Move{}, false},
		{"rr", cubesim.Move{}, false},
		{" ", cubesim.Move{}, false},
	}

	for _, tt := range tests {
		got, ok := KeyMove(tt.key)
		if ok != tt.ok || got != tt.want {
			t.Errorf("KeyMove(%q) = %v, %v; want %v, %v", tt.key, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScrambleThenSolve_StopsTimer(t *testing.T) {
	c, clock, l := newTestController(t)
	seq := c.Sequencer()

	scramble := []cubesim.Move{cubesim.R, cubesim.U, cubesim.FPrime}
	if err := c.ScrambleWith(scramble); err != nil {
		t.Fatalf("ScrambleWith: %v", err)
	}
	seq.Flush()

	if seq.Cube().IsSolved() {
		t.Fatal("cube should be scrambled")
	}
	if c.Timer().HasStarted() {
		t.Error("scramble turns must not start the timer")
	}

	for _, m := range cubesim.InverseMoves(scramble) {
		clock.Advance(time.Second)
		c.Turn(m)
		seq.Flush()
	}

	if len(l.solved) != 1 || l.solved[0] != 3 {
		t.Fatalf("solved events = %v, want [3]", l.solved)
	}
	if len(l.moves) != 3 {
		t.Errorf("moved events = %d, want 3", len(l.moves))
	}
	if c.IsScrambled() {
		t.Error("attempt should end when solved")
	}
	if c.Timer().IsRunning() {
		t.Error("timer should stop when solved")
	}
	// The timer starts at the first commit and the last two moves each
	// came one second later.
	if got := c.Timer().Elapsed(); got != 2*time.Second {
		t.Errorf("elapsed = %v, want 2s", got)
	}
}

func TestMovesBeforeScramble_NotCounted(t *testing.T) {
	c, _, l := newTestController(t)

	c.HandleKey("r")
	c.HandleKey("R")
	c.Sequencer().Flush()

	if len(l.moves) != 0 || len(l.solved) != 0 {
		t.Errorf("unscrambled play should not report moves: %v %v", l.moves, l.solved)
	}
	if c.Timer().MoveCount() != 0 {
		t.Errorf("MoveCount = %d, want 0", c.Timer().MoveCount())
	}
}

func TestReset_ClearsAttempt(t *testing.T) {
	c, _, l := newTestController(t)
	seq := c.Sequencer()

	c.Scramble(10)
	c.HandleKey("f")
	p := c.Reset()
	if p.Resolved() {
		t.Fatal("reset should wait behind queued turns")
	}
	seq.Flush()

	if !p.Resolved() {
		t.Fatal("reset did not commit")
	}
	if l.resets != 1 {
		t.Errorf("reset events = %d, want 1", l.resets)
	}
	if !seq.Cube().IsSolved() {
		t.Error("cube should be solved after reset")
	}
	if c.IsScrambled() || c.Timer().HasStarted() || c.Timer().MoveCount() != 0 {
		t.Error("attempt should be cleared after reset")
	}
}

func TestDrag_PreviewThenCommit(t *testing.T) {
	c, _, _ := newTestController(t)
	hit := cubesim.ClickedFace{Axis: cubesim.AxisZ, Direction: 1, Position: [3]float64{1, 1, 1}}

	c.PointerDown(hit, 100, 100)

	if _, ok := c.PointerMove(103, 100); ok {
		t.Fatal("short drag should not turn")
	}
	if c.ActiveDrag().Preview != nil {
		t.Error("no preview expected within the preview distance")
	}

	c.PointerMove(110, 100)
	if p := c.ActiveDrag().Preview; p == nil || *p != cubesim.UPrime {
		t.Errorf("preview = %v, want U'", p)
	}

	m, ok := c.PointerMove(140, 100)
	if !ok || m != cubesim.UPrime {
		t.Fatalf("commit = %v, %v; want U', true", m, ok)
	}
	if c.ActiveDrag() != nil {
		t.Error("drag should end after commit")
	}
	if !c.Sequencer().IsAnimating() {
		t.Error("committed drag should start a rotation")
	}
}

func TestDrag_PointerUpCancels(t *testing.T) {
	c, _, _ := newTestController(t)
	hit := cubesim.ClickedFace{Axis: cubesim.AxisX, Direction: 1, Position: [3]float64{1, 0, 1}}

	c.PointerDown(hit, 0, 0)
	c.PointerMove(0, 10)
	c.PointerUp()

	if _, ok := c.PointerMove(0, 50); ok {
		t.Error("move after pointer up should not turn")
	}
	if c.Sequencer().IsAnimating() {
		t.Error("no rotation expected")
	}
}

func TestTogglePause(t *testing.T) {
	c, clock, _ := newTestController(t)
	seq := c.Sequencer()

	c.TogglePause()
	if c.Timer().HasStarted() {
		t.Fatal("pause before a solve starts should do nothing")
	}

	c.ScrambleWith([]cubesim.Move{cubesim.R})
	c.HandleKey("u")
	seq.Flush()

	clock.Advance(3 * time.Second)
	c.TogglePause()
	if c.Timer().IsRunning() {
		t.Fatal("timer should be paused")
	}

	clock.Advance(10 * time.Second)
	c.TogglePause()
	clock.Advance(time.Second)

	if got := c.Timer().Elapsed(); got != 4*time.Second {
		t.Errorf("elapsed = %v, want 4s", got)
	}
}

func TestPhase_TracksFurthestReached(t *testing.T) {
	c, _, _ := newTestController(t)
	seq := c.Sequencer()

	if err := c.ScrambleWith([]cubesim.Move{cubesim.D, cubesim.D}); err != nil {
		t.Fatal(err)
	}
	seq.Flush()
	if c.Phase() != cubesim.PhaseScrambled {
		t.Fatalf("phase after scramble = %s", c.Phase())
	}

	c.Turn(cubesim.D)
	seq.Flush()
	if c.Phase() != cubesim.PhaseLastCross {
		t.Fatalf("phase = %s, want last_cross", c.Phase())
	}

	c.Turn(cubesim.D)
	seq.Flush()
	if c.Phase() != cubesim.PhaseSolved {
		t.Fatalf("phase = %s, want solved", c.Phase())
	}

	c.Reset()
	seq.Flush()
	if c.Phase() != cubesim.PhaseScrambled {
		t.Errorf("phase after reset = %s", c.Phase())
	}
}
