package cubesim

// Tracker wraps a Cube and reports when it becomes solved.
type Tracker struct {
	cube           *Cube
	wasSolved      bool
	moves          int
	solvedCallback func(moves int)
}

// NewTracker creates a tracker for cube.
func NewTracker(cube *Cube) *Tracker {
	return &Tracker{
		cube:      cube,
		wasSolved: cube.IsSolved(),
	}
}

// SetSolvedCallback sets a callback that fires when a user move leaves the
// cube solved after it was not. It receives the user move count.
func (t *Tracker) SetSolvedCallback(cb func(moves int)) {
	t.solvedCallback = cb
}

// Attach makes t observe every commit of seq.
func (t *Tracker) Attach(seq *Sequencer) {
	seq.OnCommit(t.Observe)
}

// Observe updates the tracker after a commit.
func (t *Tracker) Observe(c Commit) {
	if c.Reset {
		t.Reset()
		return
	}
	if !c.Scramble {
		t.moves++
	}
	t.checkSolved(!c.Scramble)
}

// ApplyMove rotates the cube instantly and checks for a solve.
func (t *Tracker) ApplyMove(m Move) error {
	if err := t.cube.Rotate(m); err != nil {
		return err
	}
	t.moves++
	t.checkSolved(true)
	return nil
}

func (t *Tracker) checkSolved(notify bool) {
	solved := t.cube.IsSolved()
	if solved && !t.wasSolved && notify && t.solvedCallback != nil {
		t.solvedCallback(t.moves)
	}
	t.wasSolved = solved
}

// Reset clears the move count and re-reads the cube.
func (t *Tracker) Reset() {
	t.moves = 0
	t.wasSolved = t.cube.IsSolved()
}

// IsSolved returns true if the cube is solved.
func (t *Tracker) IsSolved() bool {
	return t.cube.IsSolved()
}

// Moves returns the number of user moves since the last reset.
func (t *Tracker) Moves() int {
	return t.moves
}

// Cube returns the underlying cube for inspection.
func (t *Tracker) Cube() *Cube {
	return t.cube
}

// CubeString returns a string representation of the cube.
func (t *Tracker) CubeString() string {
	return t.cube.String()
}
