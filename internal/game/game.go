// Package game runs a timed solve on top of a cube sequencer: keyboard and
// drag input, scramble, reset, pause and solved detection.
package game

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/SeamusWaldron/cubesim"
	"github.com/sirupsen/logrus"
)

// Listener receives solve events. Calls happen on the goroutine that
// drives the sequencer.
type Listener interface {
	Scrambled(scramble []cubesim.Move)
	Moved(m cubesim.Move, elapsed time.Duration)
	Solved(elapsed time.Duration, moves int)
	Reset()
}

// PhaseListener is implemented by listeners that also want to hear when an
// attempt first reaches a solve phase.
type PhaseListener interface {
	PhaseReached(p cubesim.Phase, elapsed time.Duration, moves int)
}

// Controller turns player input into queued rotations and keeps the solve
// timer in step with committed moves.
type Controller struct {
	seq     *cubesim.Sequencer
	tracker *cubesim.Tracker
	timer   *cubesim.SolveTimer
	log     *logrus.Logger

	listeners []Listener
	scrambled bool
	scramble  []cubesim.Move
	drag      *Drag
	status    string
	phase     cubesim.Phase // Furthest phase reached this attempt
}

// New creates a controller for seq. A nil clock means time.Now.
func New(seq *cubesim.Sequencer, clock func() time.Time, log *logrus.Logger) *Controller {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Controller{
		seq:     seq,
		tracker: cubesim.NewTracker(seq.Cube()),
		timer:   cubesim.NewSolveTimer(clock),
		log:     log,
		status:  "Press Ctrl+S to scramble",
	}
	seq.OnCommit(c.onCommit)
	return c
}

// AddListener registers l for solve events.
func (c *Controller) AddListener(l Listener) {
	c.listeners = append(c.listeners, l)
}

// Sequencer returns the underlying sequencer.
func (c *Controller) Sequencer() *cubesim.Sequencer {
	return c.seq
}

// Timer returns the solve timer.
func (c *Controller) Timer() *cubesim.SolveTimer {
	return c.timer
}

// IsScrambled reports whether a solve attempt is in progress.
func (c *Controller) IsScrambled() bool {
	return c.scrambled
}

// LastScramble returns the moves of the latest scramble.
func (c *Controller) LastScramble() []cubesim.Move {
	return c.scramble
}

// Phase returns the furthest solve phase reached in the current attempt.
func (c *Controller) Phase() cubesim.Phase {
	return c.phase
}

// Status returns a one-line description of the last game event.
func (c *Controller) Status() string {
	return c.status
}

// KeyMove maps a key to a move: a face letter turns clockwise in lowercase
// and counter-clockwise in uppercase (shift held).
func KeyMove(key string) (cubesim.Move, bool) {
	runes := []rune(key)
	if len(runes) != 1 {
		return cubesim.Move{}, false
	}

	face, err := cubesim.ParseFace(string(runes[0]))
	if err != nil {
		return cubesim.Move{}, false
	}
	return cubesim.Move{Face: face, Clockwise: !unicode.IsUpper(runes[0])}, true
}

// HandleKey queues the move bound to key. It reports whether key was a move.
func (c *Controller) HandleKey(key string) bool {
	m, ok := KeyMove(key)
	if !ok {
		return false
	}
	return c.Turn(m)
}

// Turn queues a user move.
func (c *Controller) Turn(m cubesim.Move) bool {
	if _, err := c.seq.Turn(m); err != nil {
		c.log.WithError(err).Warn("turn rejected")
		return false
	}
	return true
}

// Scramble queues n random turns and arms the timer for the first user move.
func (c *Controller) Scramble(n int) []cubesim.Move {
	moves, _ := c.seq.Scramble(n)
	c.startAttempt(moves)
	return moves
}

// ScrambleWith queues a given scramble, such as one loaded from history.
func (c *Controller) ScrambleWith(moves []cubesim.Move) error {
	if _, err := c.seq.EnqueueScramble(moves); err != nil {
		return err
	}
	c.startAttempt(moves)
	return nil
}

func (c *Controller) startAttempt(moves []cubesim.Move) {
	c.timer.Initialize()
	c.scrambled = true
	c.scramble = moves
	c.phase = cubesim.PhaseScrambled
	c.status = "Scrambled! Make your first move to start the timer"

	c.log.WithFields(logrus.Fields{
		"length":   len(moves),
		"scramble": cubesim.FormatMoves(moves),
	}).Info("cube scrambled")

	for _, l := range c.listeners {
		l.Scrambled(moves)
	}
}

// Reset queues a reset behind any pending turns. The timer and the
// attempt are cleared when the reset commits.
func (c *Controller) Reset() *cubesim.Pending {
	c.CancelDrag()
	return c.seq.Reset()
}

// TogglePause pauses or resumes a started timer.
func (c *Controller) TogglePause() {
	if !c.scrambled || !c.timer.HasStarted() {
		return
	}
	if c.timer.IsRunning() {
		c.timer.Pause()
		c.status = "Timer paused"
	} else {
		c.timer.Resume()
		c.status = "Timer resumed"
	}
	c.log.Info(strings.ToLower(c.status))
}

func (c *Controller) onCommit(cm cubesim.Commit) {
	switch {
	case cm.Reset:
		c.tracker.Reset()
		c.timer.Reset()
		c.scrambled = false
		c.scramble = nil
		c.phase = cubesim.PhaseScrambled
		c.status = "Cube reset"
		c.log.Info("cube reset")
		for _, l := range c.listeners {
			l.Reset()
		}

	case cm.Scramble:
		c.tracker.Observe(cm)

	default:
		c.tracker.Observe(cm)
		if !c.scrambled {
			return
		}

		c.timer.RecordMove()
		for _, l := range c.listeners {
			l.Moved(cm.Move, c.timer.Elapsed())
		}
		c.observePhase()

		if c.tracker.IsSolved() {
			c.timer.Stop()
			c.scrambled = false
			c.status = fmt.Sprintf("Solved! Time: %s | Moves: %d", c.timer.Format(), c.timer.MoveCount())
			c.log.WithFields(logrus.Fields{
				"elapsed": c.timer.Elapsed(),
				"moves":   c.timer.MoveCount(),
			}).Info("cube solved")
			for _, l := range c.listeners {
				l.Solved(c.timer.Elapsed(), c.timer.MoveCount())
			}
		}
	}
}

func (c *Controller) observePhase() {
	p := c.seq.Cube().Phase()
	if p <= c.phase {
		return
	}
	c.phase = p
	c.log.WithFields(logrus.Fields{
		"phase":   p.String(),
		"elapsed": c.timer.Elapsed(),
		"moves":   c.timer.MoveCount(),
	}).Info("phase reached")

	for _, l := range c.listeners {
		if pl, ok := l.(PhaseListener); ok {
			pl.PhaseReached(p, c.timer.Elapsed(), c.timer.MoveCount())
		}
	}
}
