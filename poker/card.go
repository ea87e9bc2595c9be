package poker

import (
	"fmt"
	"strings"
)

// Card is one of the 52 cards, identified by its code: suit*13 + rank.
type Card uint8

// NumCards is the size of a full deck.
const NumCards = 52

// Ranks in code order. The Ace is rank 0.
const (
	Ace = iota
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// Suits in code order.
const (
	Spades = iota
	Hearts
	Clubs
	Diamonds
)

var (
	rankNames = [13]string{"Ace", "2", "3", "4", "5", "6", "7", "8", "9", "10", "Jack", "Queen", "King"}
	suitNames = [4]string{"spades", "hearts", "clubs", "diamonds"}
)

// byName maps wire names ("Ace of spades") back to cards.
var byName = func() map[string]Card {
	m := make(map[string]Card, NumCards)
	for code := range NumCards {
		c := Card(code)
		m[c.String()] = c
	}
	return m
}()

// NewCard creates a card from a rank (0-12) and suit (0-3).
func NewCard(rank, suit int) Card {
	return Card(suit*13 + rank)
}

// Code returns the stable numeric code of the card (0-51).
func (c Card) Code() int {
	return int(c)
}

// Rank returns 0 (Ace) through 12 (King).
func (c Card) Rank() int {
	return int(c) % 13
}

// Suit returns 0 (spades) through 3 (diamonds).
func (c Card) Suit() int {
	return int(c) / 13
}

// String returns the wire name, e.g. "Queen of hearts".
func (c Card) String() string {
	if int(c) >= NumCards {
		return fmt.Sprintf("Card(%d)", int(c))
	}
	return rankNames[c.Rank()] + " of " + suitNames[c.Suit()]
}

// ParseCard parses a wire name produced by Card.String.
func ParseCard(name string) (Card, error) {
	c, ok := byName[strings.TrimSpace(name)]
	if !ok {
		return 0, fmt.Errorf("invalid card %q", name)
	}
	return c, nil
}

// ParseCards parses a comma separated list of card names.
func ParseCards(s string) ([]Card, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	cards := make([]Card, 0, len(parts))
	for _, part := range parts {
		c, err := ParseCard(part)
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// FormatCards joins card names the way they travel on the wire.
func FormatCards(cards []Card) string {
	names := make([]string, len(cards))
	for i, c := range cards {
		names[i] = c.String()
	}
	return strings.Join(names, ", ")
}
