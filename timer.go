package cubesim

import (
	"fmt"
	"time"
)

// SolveTimer times a solve attempt. It starts on the first recorded move
// and counts moves while the attempt lasts.
type SolveTimer struct {
	clock      func() time.Time
	started    time.Time // Start of the current running segment
	elapsed    time.Duration
	running    bool
	hasStarted bool
	moves      int
}

// NewSolveTimer creates a stopped timer. A nil clock means time.Now.
func NewSolveTimer(clock func() time.Time) *SolveTimer {
	if clock == nil {
		clock = time.Now
	}
	return &SolveTimer{clock: clock}
}

// Initialize readies the timer for a new attempt after a scramble.
func (t *SolveTimer) Initialize() {
	t.Reset()
}

// Start starts or resumes the timer.
func (t *SolveTimer) Start() {
	if t.running {
		return
	}
	t.started = t.clock()
	t.running = true
	t.hasStarted = true
}

// Pause freezes the elapsed time.
func (t *SolveTimer) Pause() {
	if !t.running {
		return
	}
	t.elapsed += t.clock().Sub(t.started)
	t.running = false
}

// Resume continues a paused timer.
func (t *SolveTimer) Resume() {
	t.Start()
}

// Stop ends the attempt, keeping the elapsed time and move count.
func (t *SolveTimer) Stop() {
	t.Pause()
}

// Reset zeroes the time and move count.
func (t *SolveTimer) Reset() {
	t.started = time.Time{}
	t.elapsed = 0
	t.running = false
	t.hasStarted = false
	t.moves = 0
}

// RecordMove counts a move and starts the timer on the first one.
func (t *SolveTimer) RecordMove() {
	t.moves++
	if !t.hasStarted && !t.running {
		t.Start()
	}
}

// Elapsed returns the time spent running.
func (t *SolveTimer) Elapsed() time.Duration {
	if t.running {
		return t.elapsed + t.clock().Sub(t.started)
	}
	return t.elapsed
}

// MoveCount returns the number of moves recorded.
func (t *SolveTimer) MoveCount() int {
	return t.moves
}

// IsRunning reports whether the timer is counting.
func (t *SolveTimer) IsRunning() bool {
	return t.running
}

// HasStarted reports whether the timer has run since the last reset.
func (t *SolveTimer) HasStarted() bool {
	return t.hasStarted
}

// Format returns the elapsed time as MM:SS.cc.
func (t *SolveTimer) Format() string {
	return FormatElapsed(t.Elapsed())
}

// FormatElapsed formats d as MM:SS.cc with truncated hundredths.
func FormatElapsed(d time.Duration) string {
	ms := d.Milliseconds()
	if ms < 0 {
		ms = 0
	}
	total := ms / 1000
	return fmt.Sprintf("%02d:%02d.%02d", total/60, total%60, (ms%1000)/10)
}
