package bot

import (
	rand "math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
)

// ManiacBot is an extremely aggressive bot that shoves frequently
type ManiacBot struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewManiacBot creates a new ManiacBot instance
func NewManiacBot(rng *rand.Rand, logger zerolog.Logger) *ManiacBot {
	return &ManiacBot{rng: rng, logger: logger}
}

func (m *ManiacBot) Decide(s *client.State, canRaise bool) protocol.Action {
	room := raiseRoom(s)
	action, reason := m.decide(s, canRaise, room)
	m.logger.Debug().Str("action", action.String()).Str("reason", reason).Msg("Maniac decision")
	return action
}

func (m *ManiacBot) decide(s *client.State, canRaise bool, room int) (protocol.Action, string) {
	if s.ToCall() == 0 {
		// Nothing to call, but maniacs prefer to bet
		if m.rng.Float64() < 0.85 {
			if s.Me().Holdings <= 20*s.BigBlind || m.rng.Float64() < 0.3 {
				return raiseOrCall(room, canRaise), "shove"
			}
			return raiseOrCall(room*3/4, canRaise), "big raise"
		}
		return protocol.CallAction(), "checking"
	}

	// Facing a bet
	r := m.rng.Float64()
	if r < 0.4 && canRaise && room > 0 {
		return protocol.RaiseAction(room), "shove over bet"
	}
	if r < 0.8 {
		return protocol.CallAction(), "call"
	}
	return protocol.FoldAction(), "fold"
}
