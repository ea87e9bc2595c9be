// Package bot provides the built-in decision policies a client can play with.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
)

// Factory builds a policy. rng is the bot's private random stream.
type Factory func(rng *rand.Rand, logger zerolog.Logger) (client.Policy, error)

var registry = map[string]Factory{
	"call": func(*rand.Rand, zerolog.Logger) (client.Policy, error) {
		return NewCallBot(), nil
	},
	"fold": func(*rand.Rand, zerolog.Logger) (client.Policy, error) {
		return NewFoldBot(), nil
	},
	"random": func(rng *rand.Rand, _ zerolog.Logger) (client.Policy, error) {
		return NewRandBot(rng), nil
	},
	"highcard": func(_ *rand.Rand, logger zerolog.Logger) (client.Policy, error) {
		return NewHighCardBot(logger), nil
	},
	"maniac": func(rng *rand.Rand, logger zerolog.Logger) (client.Policy, error) {
		return NewManiacBot(rng, logger), nil
	},
	"tag": func(rng *rand.Rand, logger zerolog.Logger) (client.Policy, error) {
		return NewTAGBot(rng, logger), nil
	},
	"human": func(_ *rand.Rand, _ zerolog.Logger) (client.Policy, error) {
		h, err := NewHumanBot(nil)
		if err != nil {
			return nil, err
		}
		return h, nil
	},
}

// New builds the named policy.
func New(name string, rng *rand.Rand, logger zerolog.Logger) (client.Policy, error) {
	factory, ok := registry[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown bot %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return factory(rng, logger.With().Str("bot", name).Logger())
}

// Names lists the registered policies, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// raiseRoom is what the player could still raise by after calling.
func raiseRoom(s *client.State) int {
	me := s.Me()
	return me.Holdings + me.Bet - s.PotBet
}

// raiseOrCall raises by amount when raising is allowed and amount is
// positive, and calls otherwise.
func raiseOrCall(amount int, canRaise bool) protocol.Action {
	if !canRaise || amount <= 0 {
		return protocol.CallAction()
	}
	return protocol.RaiseAction(amount)
}
