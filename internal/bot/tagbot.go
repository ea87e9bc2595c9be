package bot

import (
	rand "math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

// TAGBot is a Tight Aggressive bot that plays premium hands aggressively
type TAGBot struct {
	rng    *rand.Rand
	logger zerolog.Logger
}

// NewTAGBot creates a new TAGBot instance
func NewTAGBot(rng *rand.Rand, logger zerolog.Logger) *TAGBot {
	return &TAGBot{rng: rng, logger: logger}
}

func (t *TAGBot) Decide(s *client.State, canRaise bool) protocol.Action {
	// Preflop only: raise a quarter of what we have behind with premium hands
	if len(s.Community) == 0 && isPremium(s.Hand) && canRaise {
		if room := raiseRoom(s); room >= 4 {
			t.logger.Debug().Str("hand", poker.FormatCards(s.Hand)).Msg("TAG raise premium")
			return protocol.RaiseAction(room / 4)
		}
	}

	if s.ToCall() == 0 {
		return protocol.CallAction()
	}
	if t.rng.Float64() < 0.3 {
		return protocol.CallAction()
	}
	return protocol.FoldAction()
}

// isPremium reports tens or better paired, and AK or AQ.
func isPremium(hole []poker.Card) bool {
	if len(hole) != 2 {
		return false
	}
	a, b := hole[0].Rank(), hole[1].Rank()
	if a == b {
		return a == poker.Ace || a >= poker.Ten
	}
	if b == poker.Ace {
		a, b = b, a
	}
	return a == poker.Ace && (b == poker.King || b == poker.Queen)
}
