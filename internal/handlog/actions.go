package handlog

import (
	"fmt"
	"strings"

	"github.com/lox/holdem-dealer/poker"
)

const (
	phhRanks = "A23456789TJQK"
	phhSuits = "shcd"
)

// Card renders a card in PHH notation, e.g. "Th".
func Card(c poker.Card) string {
	return string(phhRanks[c.Rank()]) + string(phhSuits[c.Suit()])
}

// Cards renders cards back to back, e.g. "AsKd".
func Cards(cards []poker.Card) string {
	var b strings.Builder
	for _, c := range cards {
		b.WriteString(Card(c))
	}
	return b.String()
}

func seat(i int) string {
	return fmt.Sprintf("p%d", i+1)
}

// DealHole is the dealer action giving seat i its hole cards.
func DealHole(i int, hole []poker.Card) string {
	return "d dh " + seat(i) + " " + Cards(hole)
}

// DealBoard is the dealer action turning board cards over.
func DealBoard(cards []poker.Card) string {
	return "d db " + Cards(cards)
}

// Fold records seat i folding.
func Fold(i int) string {
	return seat(i) + " f"
}

// CheckCall records seat i checking or calling.
func CheckCall(i int) string {
	return seat(i) + " cc"
}

// BetRaise records seat i completing, betting or raising to total for the
// street.
func BetRaise(i, total int) string {
	return fmt.Sprintf("%s cbr %d", seat(i), total)
}

// ShowMuck records seat i showing its hole cards at showdown.
func ShowMuck(i int, hole []poker.Card) string {
	return seat(i) + " sm " + Cards(hole)
}

// Comment is a PHH comment line, used for events with no PHH action.
func Comment(format string, args ...any) string {
	return "# " + fmt.Sprintf(format, args...)
}
