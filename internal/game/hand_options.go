package game

import (
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
)

const (
	DefaultSmallBlind = 5
	DefaultBigBlind   = 10
)

// Observer is told about every hand once it has been settled.
type Observer interface {
	HandFinished(summary HandSummary)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(HandSummary)

func (f ObserverFunc) HandFinished(s HandSummary) { f(s) }

// HandOption configures hands created by NewHand or a Game.
type HandOption func(*handConfig)

type handConfig struct {
	smallBlind    int
	bigBlind      int
	actionTimeout time.Duration
	clock         quartz.Clock
	logger        zerolog.Logger
	observer      Observer
}

func defaultHandConfig() handConfig {
	return handConfig{
		smallBlind: DefaultSmallBlind,
		bigBlind:   DefaultBigBlind,
		clock:      quartz.NewReal(),
		logger:     zerolog.Nop(),
	}
}

// WithBlinds sets the small and big blind.
func WithBlinds(small, big int) HandOption {
	return func(c *handConfig) {
		c.smallBlind = small
		c.bigBlind = big
	}
}

// WithActionTimeout bounds how long a player may take to answer the action
// menu. Zero waits forever.
func WithActionTimeout(d time.Duration) HandOption {
	return func(c *handConfig) { c.actionTimeout = d }
}

// WithClock replaces the clock used for action timeouts.
func WithClock(clock quartz.Clock) HandOption {
	return func(c *handConfig) { c.clock = clock }
}

// WithLogger sets the parent logger.
func WithLogger(logger zerolog.Logger) HandOption {
	return func(c *handConfig) { c.logger = logger }
}

// WithObserver registers an observer for finished hands.
func WithObserver(o Observer) HandOption {
	return func(c *handConfig) { c.observer = o }
}
