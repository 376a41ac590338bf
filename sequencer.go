package cubesim

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// Pending is a handle on a queued rotation. It resolves once the rotation's
// discrete commit has been applied to the cube.
type Pending struct {
	move  Move
	reset bool
	done  chan struct{}
}

func newPending(m Move, reset bool) *Pending {
	return &Pending{move: m, reset: reset, done: make(chan struct{})}
}

// Move returns the move this handle tracks. It is zero for a reset.
func (p *Pending) Move() Move {
	return p.move
}

// Done returns a channel closed on commit.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Resolved reports whether the commit has happened.
func (p *Pending) Resolved() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the commit or until ctx is done. Some other goroutine
// must be driving Tick for the commit to happen.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Commit describes one discrete change applied by the sequencer.
type Commit struct {
	Seq      int  // 1-based count of commits since the sequencer was created
	Move     Move // Zero for a reset
	Scramble bool // The move was issued by Scramble
	Reset    bool // The cube was reset to the canonical layout
}

type request struct {
	move     Move
	duration time.Duration
	scramble bool
	reset    bool
	pending  *Pending
}

type animation struct {
	req        request
	frame      *rotationFrame
	start      time.Time
	generation int
}

// Sequencer serializes rotations of a cube: at most one turn animates at a
// time, later requests wait in a FIFO queue, and each turn is committed to
// the cube exactly once, when its animation completes.
//
// A Sequencer is driven by Tick and is not safe for concurrent use. Reset
// the cube through Sequencer.Reset; a direct Cube.Reset while a turn is in
// flight detaches the turning cubies, and that turn resolves without
// changing the new layout.
type Sequencer struct {
	cube    *Cube
	cfg     *config
	log     *logrus.Logger
	active  *animation
	queue   []request
	commits int
	hooks   []func(Commit)
}

// NewSequencer creates a sequencer that owns cube transforms while it runs.
func NewSequencer(cube *Cube, opts ...Option) *Sequencer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Sequencer{
		cube: cube,
		cfg:  cfg,
		log:  cfg.logger,
	}
}

// Cube returns the sequenced cube.
func (s *Sequencer) Cube() *Cube {
	return s.cube
}

// OnCommit registers a hook called once per commit, after the Pending of
// that commit has resolved and before the next queued request starts.
func (s *Sequencer) OnCommit(fn func(Commit)) {
	s.hooks = append(s.hooks, fn)
}

// IsAnimating reports whether a rotation is in flight.
func (s *Sequencer) IsAnimating() bool {
	return s.active != nil
}

// QueueLen returns the number of requests waiting behind the active one.
func (s *Sequencer) QueueLen() int {
	return len(s.queue)
}

// Commits returns the number of commits applied so far.
func (s *Sequencer) Commits() int {
	return s.commits
}

// Active returns the in-flight move and its current angle in radians.
func (s *Sequencer) Active() (Move, float64, bool) {
	if s.active == nil {
		return Move{}, 0, false
	}
	return s.active.req.move, s.active.frame.angle, true
}

// Enqueue requests a turn animated over d. It starts at once when nothing
// is animating, and otherwise waits behind every earlier request.
func (s *Sequencer) Enqueue(m Move, d time.Duration) (*Pending, error) {
	if !m.Face.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFace, string(m.Face))
	}
	p := newPending(m, false)
	s.submit(request{move: m, duration: d, pending: p})
	return p, nil
}

// Turn enqueues m with the configured turn duration.
func (s *Sequencer) Turn(m Move) (*Pending, error) {
	return s.Enqueue(m, s.cfg.turnDuration)
}

// Reset enqueues a reset of the cube. It takes effect after every earlier
// request has committed.
func (s *Sequencer) Reset() *Pending {
	p := newPending(Move{}, true)
	s.submit(request{reset: true, pending: p})
	return p
}

// Scramble enqueues n random outer-face quarter turns with the scramble
// duration. It returns the moves and the handle of the last one.
func (s *Sequencer) Scramble(n int) ([]Move, *Pending) {
	moves := make([]Move, 0, n)
	for i := 0; i < n; i++ {
		moves = append(moves, Move{
			Face:      OuterFaces[s.cfg.rng.Intn(len(OuterFaces))],
			Clockwise: s.cfg.rng.Float64() > 0.5,
		})
	}
	last, _ := s.EnqueueScramble(moves)
	return moves, last
}

// EnqueueScramble queues moves as scramble turns with the scramble duration.
// It returns the handle of the last one, or nil for no moves.
func (s *Sequencer) EnqueueScramble(moves []Move) (*Pending, error) {
	for _, m := range moves {
		if !m.Face.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrInvalidFace, string(m.Face))
		}
	}

	var last *Pending
	for _, m := range moves {
		last = newPending(m, false)
		s.submit(request{move: m, duration: s.cfg.scrambleDuration, scramble: true, pending: last})
	}
	s.log.WithField("moves", FormatMoves(moves)).Debug("scramble queued")
	return last, nil
}

func (s *Sequencer) submit(r request) {
	s.queue = append(s.queue, r)
	if s.active != nil {
		s.log.WithFields(logrus.Fields{
			"move":  r.move.Notation(),
			"queue": len(s.queue),
		}).Debug("rotation queued")
		return
	}
	s.advance(s.cfg.clock())
}

// advance starts queued requests until one is animating or the queue is
// empty. Resets have no animation and apply on the spot.
func (s *Sequencer) advance(now time.Time) {
	for s.active == nil && len(s.queue) > 0 {
		r := s.queue[0]
		s.queue = s.queue[1:]

		if r.reset {
			s.cube.Reset()
			s.finish(r)
			continue
		}

		s.active = &animation{
			req:        r,
			frame:      newRotationFrame(r.move, s.cube.CubiesOnFace(r.move.Face)),
			start:      now,
			generation: s.cube.Generation(),
		}
		s.log.WithFields(logrus.Fields{
			"move":     r.move.Notation(),
			"duration": r.duration,
		}).Debug("rotation started")
	}
}

// Tick samples the active animation at now. When the animation completes,
// its turn is committed and the next queued request starts.
func (s *Sequencer) Tick(now time.Time) {
	a := s.active
	if a == nil {
		return
	}

	progress := 1.0
	if a.req.duration > 0 {
		progress = float64(now.Sub(a.start)) / float64(a.req.duration)
		progress = min(max(progress, 0), 1)
	}
	a.frame.setProgress(EaseOutCubic(progress))
	if progress < 1 {
		return
	}

	if a.generation != s.cube.Generation() {
		s.log.WithField("move", a.req.move.Notation()).Warn("cube was reset under an active rotation")
	} else {
		s.cube.commit(a.frame)
	}
	s.active = nil
	s.finish(a.req)
	s.advance(now)
}

func (s *Sequencer) finish(r request) {
	s.commits++
	close(r.pending.done)

	c := Commit{Seq: s.commits, Move: r.move, Scramble: r.scramble, Reset: r.reset}
	if r.reset {
		s.log.Debug("cube reset")
	} else {
		s.log.WithFields(logrus.Fields{
			"move": r.move.Notation(),
			"seq":  c.Seq,
		}).Debug("rotation committed")
	}

	for _, fn := range s.hooks {
		fn(c)
	}
}

// Pose returns where to draw c right now: its committed transform, plus the
// in-flight rotation if c belongs to the turning layer.
func (s *Sequencer) Pose(c *Cubie) Pose {
	if s.active != nil && s.active.frame.member[c] {
		return s.active.frame.pose(c)
	}
	return Pose{Position: c.Position.Float(), Rotation: c.Quaternion()}
}

// Flush commits everything queued, as if each animation ran to completion.
func (s *Sequencer) Flush() {
	for s.active != nil {
		s.Tick(s.active.start.Add(s.active.req.duration))
	}
}
