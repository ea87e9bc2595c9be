package game

import (
	"slices"

	"github.com/lox/holdem-dealer/poker"
)

// Streets names the betting rounds by index.
var Streets = [...]string{"preflop", "flop", "turn", "river"}

// HandSummary is a settled hand as handed to an Observer.
type HandSummary struct {
	Number     int
	StartPos   int
	SmallBlind int
	BigBlind   int
	Seats      []SeatSummary
	Board      []poker.Card
	Actions    []ActionRecord
	Pots       []PotSummary
}

// SeatSummary is one player's part in a hand.
type SeatSummary struct {
	Name          string
	Hole          []poker.Card
	StartingStack int
	FinalStack    int
	Won           int
	Folded        bool
	Disconnected  bool
	Score         string // empty unless the player reached showdown
}

// ActionRecord is one chip movement or fold. Round indexes Streets.
type ActionRecord struct {
	Round  int
	Player string
	Action string
	Amount int
}

// PotSummary is how one pot layer was paid out. Every winner gets Share;
// the first Remainder winners, in seat order from the start position, get
// one chip more.
type PotSummary struct {
	Amount    int
	Level     int
	Winners   []string
	Share     int
	Remainder int
}

func (h *Hand) summary() HandSummary {
	s := HandSummary{
		Number:     h.number,
		StartPos:   h.startPos,
		SmallBlind: h.smallBlind,
		BigBlind:   h.bigBlind,
		Board:      slices.Clone(h.board),
		Actions:    slices.Clone(h.actions),
		Pots:       slices.Clone(h.results),
	}
	for i, hp := range h.players {
		seat := SeatSummary{
			Name:          hp.Name,
			Hole:          slices.Clone(hp.Hole),
			StartingStack: h.starting[i],
			FinalStack:    hp.Stack,
			Won:           h.winnings[hp],
			Folded:        hp.Folded,
			Disconnected:  hp.Disconnected,
		}
		if score, ok := h.scores[hp]; ok {
			seat.Score = score.String()
		}
		s.Seats = append(s.Seats, seat)
	}
	return s
}
