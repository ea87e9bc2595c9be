// Package client plays a seat at the dealer's table. It follows the line
// protocol with a State reducer and asks a Policy whenever the dealer wants
// an action.
package client

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/protocol"
)

// Conn is the client's session with the dealer. *protocol.Conn satisfies it.
type Conn interface {
	Send(msg string) error
	ReadLine(ctx context.Context) (string, error)
	Close() error
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithOnJoined registers fn to run once the dealer has accepted a name.
func WithOnJoined(fn func(s *State)) Option {
	return func(c *Client) { c.onJoined = fn }
}

// Client drives one player session from the lobby to Goodbye.
type Client struct {
	conn     Conn
	name     string
	policy   Policy
	state    *State
	logger   zerolog.Logger
	attempts int
	sent     protocol.Action
	rejected *protocol.Action
	onJoined func(*State)
}

// New creates a client that will ask to be seated as name.
func New(conn Conn, name string, policy Policy, opts ...Option) *Client {
	c := &Client{
		conn:   conn,
		name:   sanitizeName(name),
		policy: policy,
		state:  NewState(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the reconstructed table state.
func (c *Client) State() *State {
	return c.state
}

// Run plays until the dealer says Goodbye, the connection fails or ctx ends.
func (c *Client) Run(ctx context.Context) error {
	for {
		line, err := c.conn.ReadLine(ctx)
		if err != nil {
			return fmt.Errorf("reading from dealer: %w", err)
		}

		ev, err := c.state.Apply(line)
		if err != nil {
			return err
		}

		switch ev.Kind {
		case EventNameRequested:
			name := c.nextName()
			c.logger.Debug().Str("name", name).Msg("Requesting name")
			if err := c.conn.Send(name); err != nil {
				return fmt.Errorf("sending name: %w", err)
			}

		case EventJoined:
			c.logger = c.logger.With().Str("player", c.state.Name).Logger()
			c.logger.Info().Int("seat", c.state.Seat).Int("seats", c.state.Seats).Msg("Joined table")
			if c.onJoined != nil {
				c.onJoined(c.state)
			}

		case EventPrompt:
			action := c.decide(ev.CanRaise)
			c.sent = action
			c.state.Sent(action)
			if err := c.conn.Send(action.String()); err != nil {
				return fmt.Errorf("sending action: %w", err)
			}

		case EventAccepted:
			c.rejected = nil

		case EventRejected:
			rejected := c.sent
			c.rejected = &rejected
			c.logger.Warn().Str("action", rejected.String()).Str("reason", ev.Reason).Msg("Action rejected")

		case EventGameOver:
			c.logger.Info().
				Bool("champion", c.state.Champion).
				Int("hands", c.state.HandNumber).
				Msg("Game over")
			return nil
		}
	}
}

// decide asks the policy. A raise that is not on offer, or a repeat of the
// action the dealer just rejected, becomes a call.
func (c *Client) decide(canRaise bool) protocol.Action {
	action := c.policy.Decide(c.state, canRaise)
	if action.Kind == protocol.Raise && !canRaise {
		action = protocol.CallAction()
	}
	if c.rejected != nil && *c.rejected == action {
		c.logger.Debug().Str("action", action.String()).Msg("Policy repeated a rejected action, calling")
		action = protocol.CallAction()
	}
	c.logger.Debug().Str("action", action.String()).Bool("can_raise", canRaise).Msg("Decided")
	return action
}

// nextName returns the configured name, then numbered variants after the
// lobby turns one down.
func (c *Client) nextName() string {
	c.attempts++
	if c.attempts == 1 {
		return c.name
	}
	return fmt.Sprintf("%s-%d", c.name, c.attempts)
}

func sanitizeName(name string) string {
	name = strings.NewReplacer(" ", "_", ",", "_").Replace(strings.TrimSpace(name))
	if name == "" {
		return "player"
	}
	return name
}
