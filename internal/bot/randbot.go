package bot

import (
	rand "math/rand/v2"

	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
)

// RandBot picks uniformly among the legal actions. Raises are sized
// uniformly between 1 and its holdings, so many of them are refused and the
// client falls back to calling.
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (r *RandBot) Decide(s *client.State, canRaise bool) protocol.Action {
	options := 2
	if canRaise {
		options = 3
	}

	switch r.rng.IntN(options) {
	case 0:
		return protocol.FoldAction()
	case 1:
		return protocol.CallAction()
	}

	holdings := s.Me().Holdings
	if holdings < 1 {
		return protocol.CallAction()
	}
	return protocol.RaiseAction(1 + r.rng.IntN(holdings))
}
