package poker

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
)

// ErrEmptyDeck is returned when drawing from a deck with no cards left.
var ErrEmptyDeck = errors.New("deck is empty")

// EmptyDeckError reports a draw against an exhausted deck.
type EmptyDeckError struct {
	Drawn int
}

func (e *EmptyDeckError) Error() string {
	return fmt.Sprintf("draw after %d cards: %v", e.Drawn, ErrEmptyDeck)
}

func (e *EmptyDeckError) Unwrap() error {
	return ErrEmptyDeck
}

// Deck is an ordered draw pile. The top of the deck is the end of the slice.
type Deck struct {
	cards []Card
	drawn int
	rng   *rand.Rand // Random source for deterministic shuffling
}

// NewDeck creates a full deck and shuffles it with the given RNG.
func NewDeck(rng *rand.Rand) *Deck {
	d := NewOrderedDeck()
	d.rng = rng
	d.Shuffle()
	return d
}

// NewOrderedDeck creates a full deck in canonical (suit, rank) order, unshuffled.
func NewOrderedDeck() *Deck {
	d := &Deck{cards: make([]Card, 0, NumCards)}
	for suit := range 4 {
		for rank := range 13 {
			d.cards = append(d.cards, NewCard(rank, suit))
		}
	}
	return d
}

// NewDeckFromCards builds a deck whose next draws are cards[len-1], cards[len-2], ...
func NewDeckFromCards(cards []Card) *Deck {
	d := &Deck{cards: make([]Card, len(cards))}
	copy(d.cards, cards)
	return d
}

// Shuffle shuffles the remaining cards using Fisher-Yates
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		var j int
		if d.rng != nil {
			j = d.rng.IntN(i + 1)
		} else {
			j = rand.IntN(i + 1)
		}
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Draw removes and returns the top card.
func (d *Deck) Draw() (Card, error) {
	if len(d.cards) == 0 {
		return 0, &EmptyDeckError{Drawn: d.drawn}
	}
	c := d.cards[len(d.cards)-1]
	d.cards = d.cards[:len(d.cards)-1]
	d.drawn++
	return c, nil
}

// Return puts cards back at the bottom of the deck.
func (d *Deck) Return(cards ...Card) {
	if len(cards) == 0 {
		return
	}
	d.cards = append(append(make([]Card, 0, len(d.cards)+len(cards)), cards...), d.cards...)
}

// Len returns the number of cards left in the deck.
func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns a copy of the remaining cards, bottom first.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}
