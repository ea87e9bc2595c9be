package poker

import (
	"errors"
	"fmt"
	"slices"
)

// Category enumerates the hand categories ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

// String returns the label used in showdown announcements.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High card"
	case OnePair:
		return "One pair"
	case TwoPair:
		return "Two pairs"
	case ThreeOfAKind:
		return "3 of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "4 of a kind"
	case StraightFlush:
		return "Straight flush"
	case RoyalFlush:
		return "Royal flush"
	default:
		return "Unknown"
	}
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(label string) (Category, bool) {
	for c := HighCard; c <= RoyalFlush; c++ {
		if c.String() == label {
			return c, true
		}
	}
	return 0, false
}

// ErrInvalidHandSize is returned when the evaluator is given the wrong number of cards.
var ErrInvalidHandSize = errors.New("invalid hand size")

// InvalidHandSizeError reports how many cards were expected and received.
type InvalidHandSizeError struct {
	Want int
	Got  int
}

func (e *InvalidHandSizeError) Error() string {
	return fmt.Sprintf("%v: want %d cards, got %d", ErrInvalidHandSize, e.Want, e.Got)
}

func (e *InvalidHandSizeError) Unwrap() error {
	return ErrInvalidHandSize
}

// Score is the comparable outcome of evaluating a hand.
// Value = category*13 + tiebreak rank, so categories never overlap.
type Score struct {
	Category Category
	Cards    []Card // cards that decided the category and tiebreak
	Value    int
}

// String renders "<category>: <cards>".
func (s Score) String() string {
	return s.Category.String() + ": " + FormatCards(s.Cards)
}

// GetHandMax returns the best score over all 5-card combinations of the 7 cards.
func GetHandMax(cards []Card) (Score, error) {
	if len(cards) != 7 {
		return Score{}, &InvalidHandSizeError{Want: 7, Got: len(cards)}
	}

	// Canonical order keeps the reported cards independent of input order.
	sorted := slices.Clone(cards)
	slices.Sort(sorted)

	var best Score
	found := false
	five := make([]Card, 5)
	for a := 0; a < 7; a++ {
		for b := a + 1; b < 7; b++ {
			// Each combination leaves out exactly two cards.
			n := 0
			for i, c := range sorted {
				if i != a && i != b {
					five[n] = c
					n++
				}
			}
			s := scoreFive(five)
			if !found || s.Value > best.Value {
				best = s
				found = true
			}
		}
	}
	return best, nil
}

// ScoreFive scores exactly five cards.
func ScoreFive(cards []Card) (Score, error) {
	if len(cards) != 5 {
		return Score{}, &InvalidHandSizeError{Want: 5, Got: len(cards)}
	}
	return scoreFive(cards), nil
}

func scoreFive(cards []Card) Score {
	var counts [13]int
	for _, c := range cards {
		counts[c.Rank()]++
	}
	distinct := 0
	for _, n := range counts {
		if n > 0 {
			distinct++
		}
	}

	flush := isFlush(cards)
	switch {
	case flush && isRoyal(counts):
		return newScore(RoyalFlush, cards, false)
	case flush && isStraight(counts):
		return newScore(StraightFlush, cards, true)
	}
	if rank, ok := nOfAKind(counts, 4); ok {
		return newScore(FourOfAKind, withRanks(cards, rank), true)
	}
	if distinct == 2 {
		trips, _ := nOfAKind(counts, 3)
		return newScore(FullHouse, withRanks(cards, trips), true)
	}
	if flush {
		return newScore(Flush, cards, true)
	}
	if isStraight(counts) {
		return newScore(Straight, cards, true)
	}
	if rank, ok := nOfAKind(counts, 3); ok {
		return newScore(ThreeOfAKind, withRanks(cards, rank), true)
	}
	if distinct == 3 {
		var pairs []int
		for rank, n := range counts {
			if n == 2 {
				pairs = append(pairs, rank)
			}
		}
		return newScore(TwoPair, withRanks(cards, pairs...), true)
	}
	if rank, ok := nOfAKind(counts, 2); ok {
		return newScore(OnePair, withRanks(cards, rank), true)
	}
	return newScore(HighCard, withRanks(cards, highRank(cards)), true)
}

func newScore(cat Category, cards []Card, tiebreak bool) Score {
	value := int(cat) * 13
	if tiebreak {
		value += highRank(cards)
	}
	return Score{Category: cat, Cards: slices.Clone(cards), Value: value}
}

func isFlush(cards []Card) bool {
	for _, c := range cards[1:] {
		if c.Suit() != cards[0].Suit() {
			return false
		}
	}
	return true
}

// isRoyal reports whether the ranks are exactly 10, J, Q, K, A.
func isRoyal(counts [13]int) bool {
	for _, r := range []int{Ten, Jack, Queen, King, Ace} {
		if counts[r] != 1 {
			return false
		}
	}
	return true
}

// isStraight reports five consecutive ranks. The Ace may sit above the King
// but never below the Two.
func isStraight(counts [13]int) bool {
	if isRoyal(counts) {
		return true
	}
	run := 0
	for _, n := range counts[Two:] {
		switch {
		case n == 1:
			run++
			if run == 5 {
				return true
			}
		case n > 1:
			return false
		default:
			run = 0
		}
	}
	return false
}

// nOfAKind finds the highest rank appearing at least n times.
func nOfAKind(counts [13]int, n int) (int, bool) {
	for rank := King; rank >= Ace; rank-- {
		if counts[rank] >= n {
			return rank, true
		}
	}
	return 0, false
}

func withRanks(cards []Card, ranks ...int) []Card {
	var out []Card
	for _, c := range cards {
		if slices.Contains(ranks, c.Rank()) {
			out = append(out, c)
		}
	}
	return out
}

func highRank(cards []Card) int {
	high := 0
	for _, c := range cards {
		high = max(high, c.Rank())
	}
	return high
}
