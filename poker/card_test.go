package poker

import (
	"testing"
)

func TestCardCodes(t *testing.T) {
	t.Parallel()

	aceSpades := NewCard(Ace, Spades)
	if aceSpades.Code() != 0 {
		t.Errorf("Expected Ace of spades to have code 0, got %d", aceSpades.Code())
	}
	if aceSpades.String() != "Ace of spades" {
		t.Errorf("Expected 'Ace of spades', got %s", aceSpades.String())
	}

	kingDiamonds := NewCard(King, Diamonds)
	if kingDiamonds.Code() != 51 {
		t.Errorf("Expected King of diamonds to have code 51, got %d", kingDiamonds.Code())
	}

	tenHearts := NewCard(Ten, Hearts)
	if tenHearts.Code() != 13+9 {
		t.Errorf("Expected 10 of hearts to have code 22, got %d", tenHearts.Code())
	}
	if tenHearts.Rank() != Ten || tenHearts.Suit() != Hearts {
		t.Errorf("Expected rank %d suit %d, got %d %d", Ten, Hearts, tenHearts.Rank(), tenHearts.Suit())
	}
}

func TestParseCardRoundTrip(t *testing.T) {
	t.Parallel()

	for code := range NumCards {
		c := Card(code)
		parsed, err := ParseCard(c.String())
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", c.String(), err)
		}
		if parsed != c {
			t.Errorf("ParseCard(%q) = %d, want %d", c.String(), parsed, c)
		}
	}
}

func TestParseCardInvalid(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "As", "Ace of cups", "11 of spades"} {
		if _, err := ParseCard(input); err == nil {
			t.Errorf("ParseCard(%q) should fail", input)
		}
	}
}

func TestParseCards(t *testing.T) {
	t.Parallel()

	cards, err := ParseCards("Ace of spades, 10 of hearts, King of diamonds")
	if err != nil {
		t.Fatalf("ParseCards: %v", err)
	}
	want := []Card{NewCard(Ace, Spades), NewCard(Ten, Hearts), NewCard(King, Diamonds)}
	if len(cards) != len(want) {
		t.Fatalf("Expected %d cards, got %d", len(want), len(cards))
	}
	for i := range want {
		if cards[i] != want[i] {
			t.Errorf("card %d: got %s, want %s", i, cards[i], want[i])
		}
	}

	if got := FormatCards(cards); got != "Ace of spades, 10 of hearts, King of diamonds" {
		t.Errorf("FormatCards = %q", got)
	}
}
