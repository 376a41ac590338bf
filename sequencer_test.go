package cubesim

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"
)

var t0 = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestSequencer(opts ...Option) (*Sequencer, *time.Time) {
	now := t0
	opts = append([]Option{WithClock(func() time.Time { return now })}, opts...)
	return NewSequencer(NewCube(), opts...), &now
}

func TestSequencer_QueueOrder(t *testing.T) {
	seq, _ := newTestSequencer()

	var commits []Commit
	seq.OnCommit(func(c Commit) { commits = append(commits, c) })

	d := 100 * time.Millisecond
	pu, _ := seq.Enqueue(U, d)
	pr, _ := seq.Enqueue(R, d)
	pf, _ := seq.Enqueue(F, d)

	if !seq.IsAnimating() || seq.QueueLen() != 2 {
		t.Fatalf("animating=%v queue=%d, want true 2", seq.IsAnimating(), seq.QueueLen())
	}

	seq.Tick(t0.Add(d))
	if !pu.Resolved() || pr.Resolved() || pf.Resolved() {
		t.Fatal("only U should have committed")
	}
	seq.Tick(t0.Add(2 * d))
	if !pr.Resolved() || pf.Resolved() {
		t.Fatal("R should commit before F")
	}
	seq.Tick(t0.Add(3 * d))
	if !pf.Resolved() {
		t.Fatal("F should have committed")
	}

	if len(commits) != 3 {
		t.Fatalf("commits = %d, want 3", len(commits))
	}
	for i, want := range []Move{U, R, F} {
		if commits[i].Move != want || commits[i].Seq != i+1 {
			t.Errorf("commit %d = %+v, want %s seq %d", i, commits[i], want, i+1)
		}
	}
	if seq.IsAnimating() || seq.QueueLen() != 0 {
		t.Error("sequencer should be idle")
	}

	want := NewCube()
	want.Apply(U, R, F)
	if seq.Cube().String() != want.String() {
		t.Errorf("animated result differs from instant result:\n%s\nwant\n%s", seq.Cube(), want)
	}
}

func TestSequencer_CommitsOnceAtEnd(t *testing.T) {
	seq, _ := newTestSequencer()
	c := seq.Cube().Cubie(Vec3{1, 1, 1})

	p, _ := seq.Enqueue(U, time.Second)
	for _, ms := range []int{0, 250, 500, 999} {
		seq.Tick(t0.Add(time.Duration(ms) * time.Millisecond))
		if p.Resolved() {
			t.Fatalf("resolved early at %dms", ms)
		}
		if c.Position != (Vec3{1, 1, 1}) || c.Orientation != Identity {
			t.Fatalf("committed model changed at %dms", ms)
		}
	}

	seq.Tick(t0.Add(time.Second))
	if !p.Resolved() {
		t.Fatal("should resolve at full duration")
	}
	if c.Position != (Vec3{-1, 1, 1}) {
		t.Errorf("position = %v, want (-1, 1, 1)", c.Position)
	}

	// Extra ticks do nothing.
	seq.Tick(t0.Add(2 * time.Second))
	if c.Position != (Vec3{-1, 1, 1}) {
		t.Errorf("position after idle tick = %v", c.Position)
	}
}

func TestSequencer_PoseFollowsEasedAngle(t *testing.T) {
	seq, _ := newTestSequencer()
	cube := seq.Cube()
	moving := cube.Cubie(Vec3{1, 1, 1})
	still := cube.Cubie(Vec3{1, -1, 1})

	seq.Enqueue(U, time.Second)
	seq.Tick(t0.Add(500 * time.Millisecond))

	eased := EaseOutCubic(0.5)
	if eased != 0.875 {
		t.Fatalf("EaseOutCubic(0.5) = %v, want 0.875", eased)
	}
	theta := -math.Pi / 2 * eased
	sin, cos := math.Sincos(theta)
	want := []float64{cos + sin, 1, -sin + cos}

	pose := seq.Pose(moving)
	if !floats.EqualApprox(pose.Position[:], want, 1e-9) {
		t.Errorf("pose = %v, want %v", pose.Position, want)
	}

	_, angle, ok := seq.Active()
	if !ok || math.Abs(angle-theta) > 1e-9 {
		t.Errorf("active angle = %v, %v; want %v", angle, ok, theta)
	}

	rest := seq.Pose(still)
	if !floats.EqualApprox(rest.Position[:], []float64{1, -1, 1}, 1e-12) {
		t.Errorf("cubie outside the layer moved: %v", rest.Position)
	}
	if rest.Rotation != (quat.Number{Real: 1}) {
		t.Errorf("rotation = %v, want identity", rest.Rotation)
	}
}

func TestSequencer_PoseMatchesCommitAtEnd(t *testing.T) {
	seq, _ := newTestSequencer()
	c := seq.Cube().Cubie(Vec3{1, 1, -1})

	seq.Enqueue(R, time.Second)
	seq.Tick(t0.Add(time.Second - time.Nanosecond))
	before := seq.Pose(c)

	seq.Tick(t0.Add(time.Second))
	after := seq.Pose(c)

	if !floats.EqualApprox(before.Position[:], after.Position[:], 1e-6) {
		t.Errorf("pose jumps at commit: %v -> %v", before.Position, after.Position)
	}

	// q and -q are the same rotation.
	b, a := before.Rotation, after.Rotation
	if quat.Abs(quat.Sub(b, a)) > 1e-6 && quat.Abs(quat.Add(b, a)) > 1e-6 {
		t.Errorf("rotation jumps at commit: %v -> %v", b, a)
	}
}

func TestSequencer_NextStartsAtCommitTime(t *testing.T) {
	seq, _ := newTestSequencer()

	seq.Enqueue(U, 100*time.Millisecond)
	pr, _ := seq.Enqueue(R, 100*time.Millisecond)

	// A late tick commits U and starts R at that tick.
	seq.Tick(t0.Add(150 * time.Millisecond))
	if pr.Resolved() {
		t.Fatal("R committed on the tick that started it")
	}
	seq.Tick(t0.Add(240 * time.Millisecond))
	if pr.Resolved() {
		t.Fatal("R committed before its full duration")
	}
	seq.Tick(t0.Add(250 * time.Millisecond))
	if !pr.Resolved() {
		t.Fatal("R should commit 100ms after it started")
	}
}

func TestSequencer_ZeroDurationCommitsOnNextTick(t *testing.T) {
	seq, _ := newTestSequencer()
	p, _ := seq.Enqueue(F, 0)
	if p.Resolved() {
		t.Fatal("enqueue must not commit synchronously")
	}
	seq.Tick(t0)
	if !p.Resolved() {
		t.Fatal("zero duration should commit on the first tick")
	}
}

func TestSequencer_InvalidFace(t *testing.T) {
	seq, _ := newTestSequencer()
	if _, err := seq.Enqueue(Move{Face: "Z"}, time.Second); !errors.Is(err, ErrInvalidFace) {
		t.Errorf("err = %v, want ErrInvalidFace", err)
	}
	if seq.IsAnimating() {
		t.Error("invalid request should not start")
	}
}

func TestSequencer_ResetIsABarrier(t *testing.T) {
	seq, _ := newTestSequencer()

	var commits []Commit
	seq.OnCommit(func(c Commit) { commits = append(commits, c) })

	seq.Enqueue(R, 100*time.Millisecond)
	reset := seq.Reset()
	pu, _ := seq.Enqueue(U, 100*time.Millisecond)

	if reset.Resolved() {
		t.Fatal("reset should wait for R")
	}

	seq.Tick(t0.Add(100 * time.Millisecond))
	if !reset.Resolved() {
		t.Fatal("reset should apply right after R commits")
	}
	if !seq.IsAnimating() {
		t.Fatal("U should start after the reset")
	}

	seq.Tick(t0.Add(200 * time.Millisecond))
	if !pu.Resolved() {
		t.Fatal("U should commit")
	}

	want := NewCube()
	want.Apply(U)
	if seq.Cube().String() != want.String() {
		t.Errorf("expected only U after reset:\n%s", seq.Cube())
	}
	if len(commits) != 3 || !commits[1].Reset {
		t.Errorf("commits = %+v, want R, reset, U", commits)
	}
}

func TestSequencer_DirectCubeResetDropsActiveTurn(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	seq, _ := newTestSequencer(WithLogger(log))

	p, _ := seq.Enqueue(R, 100*time.Millisecond)
	pu, _ := seq.Enqueue(U, 100*time.Millisecond)
	seq.Cube().Reset()

	seq.Tick(t0.Add(100 * time.Millisecond))
	if !p.Resolved() {
		t.Fatal("R should still resolve")
	}
	if !seq.Cube().IsSolved() {
		t.Error("R must not turn the freshly reset cube")
	}

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "cube was reset under an active rotation" {
			warned = true
		}
	}
	if !warned {
		t.Error("expected a warning about the reset")
	}

	// The queued U started after the reset and turns the new layout.
	seq.Tick(t0.Add(200 * time.Millisecond))
	if !pu.Resolved() {
		t.Fatal("U should commit")
	}
	want := NewCube()
	want.Apply(U)
	if seq.Cube().String() != want.String() {
		t.Errorf("expected only U:\n%s", seq.Cube())
	}
}

func TestSequencer_Scramble(t *testing.T) {
	seq, _ := newTestSequencer(WithSeed(3), WithScrambleDuration(10*time.Millisecond))

	var scrambleCommits int
	seq.OnCommit(func(c Commit) {
		if c.Scramble {
			scrambleCommits++
		}
	})

	moves, last := seq.Scramble(DefaultScrambleLength)
	if len(moves) != 20 {
		t.Fatalf("moves = %d, want 20", len(moves))
	}
	for _, m := range moves {
		if m.Face.IsSlice() {
			t.Errorf("scramble used slice move %s", m)
		}
	}

	seq.Flush()

	if !last.Resolved() {
		t.Fatal("last scramble move should resolve")
	}
	if scrambleCommits != 20 || seq.Commits() != 20 {
		t.Errorf("commits = %d (%d scramble), want 20", seq.Commits(), scrambleCommits)
	}
	if seq.Cube().IsSolved() {
		t.Error("scrambled cube should not be solved")
	}

	want := NewCube()
	want.Apply(moves...)
	if seq.Cube().String() != want.String() {
		t.Error("scramble result differs from its reported moves")
	}
}

func TestSequencer_ScrambleIsSeeded(t *testing.T) {
	a, _ := newTestSequencer(WithSeed(11))
	b, _ := newTestSequencer(WithSeed(11))

	ma, _ := a.Scramble(15)
	mb, _ := b.Scramble(15)
	if FormatMoves(ma) != FormatMoves(mb) {
		t.Errorf("same seed gave %q and %q", FormatMoves(ma), FormatMoves(mb))
	}
}

func TestPending_Wait(t *testing.T) {
	seq, _ := newTestSequencer()
	p, _ := seq.Turn(R)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := p.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait = %v, want context.Canceled", err)
	}

	seq.Flush()
	if err := p.Wait(context.Background()); err != nil {
		t.Errorf("Wait after commit = %v", err)
	}
	select {
	case <-p.Done():
	default:
		t.Error("Done should be closed")
	}
}
