package bot

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

const (
	DefaultFoldThreshold = 0.3
	DefaultCallThreshold = 0.6
)

// HighCardBot bets on the highest card it can see. Confidence is the best
// face value among hole and community cards over 13, with the Ace counting
// as one.
type HighCardBot struct {
	FoldThreshold float64
	CallThreshold float64

	logger zerolog.Logger
}

// NewHighCardBot creates a HighCardBot with the default thresholds.
func NewHighCardBot(logger zerolog.Logger) *HighCardBot {
	return &HighCardBot{
		FoldThreshold: DefaultFoldThreshold,
		CallThreshold: DefaultCallThreshold,
		logger:        logger,
	}
}

func (h *HighCardBot) Decide(s *client.State, canRaise bool) protocol.Action {
	confidence := HighCardConfidence(s)

	var action protocol.Action
	switch {
	case confidence < h.FoldThreshold:
		action = protocol.FoldAction()
	case confidence < h.CallThreshold || !canRaise:
		action = protocol.CallAction()
	default:
		action = raiseOrCall(heuristicRaise(raiseRoom(s), confidence), canRaise)
	}

	h.logger.Debug().
		Float64("confidence", confidence).
		Str("action", action.String()).
		Msg("High card decision")
	return action
}

// HighCardConfidence scores the visible cards in [0, 1].
func HighCardConfidence(s *client.State) float64 {
	best := 0
	for _, cards := range [][]poker.Card{s.Hand, s.Community} {
		for _, c := range cards {
			best = max(best, c.Rank()+1)
		}
	}
	return float64(best) / 13
}

// heuristicRaise sizes a raise from the chips left after calling. The
// exponential term lets a nearly broke player put in everything.
func heuristicRaise(possible int, confidence float64) int {
	if possible <= 0 {
		return 0
	}
	p := float64(possible)
	return int(math.RoundToEven(p * confidence * 0.5 * (1 + math.Exp(1-p))))
}
