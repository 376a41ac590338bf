package cubesim

import (
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// Default animation durations.
const (
	DefaultTurnDuration     = 300 * time.Millisecond
	DefaultScrambleDuration = 100 * time.Millisecond
	DefaultScrambleLength   = 20
)

// Option configures Sequencer behavior.
type Option func(*config)

type config struct {
	turnDuration     time.Duration
	scrambleDuration time.Duration
	clock            func() time.Time
	rng              *rand.Rand
	logger           *logrus.Logger
}

func defaultConfig() *config {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	return &config{
		turnDuration:     DefaultTurnDuration,
		scrambleDuration: DefaultScrambleDuration,
		clock:            time.Now,
		rng:              rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:           logger,
	}
}

// WithTurnDuration sets the animation length used by Turn.
func WithTurnDuration(d time.Duration) Option {
	return func(c *config) {
		c.turnDuration = d
	}
}

// WithScrambleDuration sets the animation length of each scramble turn.
func WithScrambleDuration(d time.Duration) Option {
	return func(c *config) {
		c.scrambleDuration = d
	}
}

// WithClock sets the time source used to stamp the start of each animation.
// Tests use it to drive animations deterministically.
func WithClock(now func() time.Time) Option {
	return func(c *config) {
		if now != nil {
			c.clock = now
		}
	}
}

// WithRand sets the random source used by Scramble.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rng = r
		}
	}
}

// WithSeed seeds the random source used by Scramble.
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithLogger sets the logger for rotation start and commit events.
// The default logger discards everything.
func WithLogger(l *logrus.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
