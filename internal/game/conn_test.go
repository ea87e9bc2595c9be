package game

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

var errBrokenPipe = errors.New("broken pipe")

// scriptConn is an in-memory player session. It answers ReadLine from a list
// of replies, then by going all-in when shove is set, then with fallback
// forever. With none of those it blocks until the context ends, signalling on
// reading first.
type scriptConn struct {
	mu       sync.Mutex
	lines    []string
	replies  []string
	shove    bool
	fallback string
	reading  chan struct{}
	readErr  error
	sendErr  error
	closed   bool
}

func callingConn() *scriptConn {
	return &scriptConn{fallback: "Call"}
}

func (c *scriptConn) Send(msg string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sendErr != nil {
		return c.sendErr
	}
	c.lines = append(c.lines, strings.Split(msg, "\n")...)
	return nil
}

func (c *scriptConn) ReadLine(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.readErr != nil {
		c.mu.Unlock()
		return "", c.readErr
	}
	if len(c.replies) > 0 {
		reply := c.replies[0]
		c.replies = c.replies[1:]
		c.mu.Unlock()
		return reply, nil
	}
	if c.shove {
		defer c.mu.Unlock()
		return c.shoveReply(), nil
	}
	if c.fallback != "" {
		c.mu.Unlock()
		return c.fallback, nil
	}
	reading := c.reading
	c.mu.Unlock()

	if reading != nil {
		reading <- struct{}{}
	}
	<-ctx.Done()
	return "", ctx.Err()
}

// shoveReply raises everything behind when the menu allows it and calls
// otherwise, including after a rejected action.
func (c *scriptConn) shoveReply() string {
	n := len(c.lines)
	if n < 2 || c.lines[n-1] != protocol.Menu(true) || strings.HasPrefix(c.lines[n-2], protocol.ErrorPrefix) {
		return "Call"
	}
	potBet := c.lastValue(protocol.CurrentPotBet)
	bet := c.lastValue(protocol.YourCurrentBet)
	holdings := c.lastValue(protocol.YourHoldings)
	raise := holdings - (potBet - bet)
	if raise <= 0 {
		return "Call"
	}
	return protocol.RaiseAction(raise).String()
}

func (c *scriptConn) lastValue(prefix string) int {
	for i := len(c.lines) - 1; i >= 0; i-- {
		if v, ok := strings.CutPrefix(c.lines[i], prefix); ok {
			n, _ := strconv.Atoi(v)
			return n
		}
	}
	return 0
}

func (c *scriptConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *scriptConn) received() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.lines)
}

func (c *scriptConn) count(line string) int {
	n := 0
	for _, l := range c.received() {
		if l == line {
			n++
		}
	}
	return n
}

func (c *scriptConn) saw(line string) bool {
	return c.count(line) > 0
}

var testNames = []string{"ann", "bob", "cat", "dan", "eve", "fay"}

// seatPlayers creates players with the given stacks on the given conns.
func seatPlayers(t *testing.T, stacks []int, conns []*scriptConn) []*Player {
	t.Helper()
	if len(stacks) != len(conns) {
		t.Fatalf("got %d stacks for %d conns", len(stacks), len(conns))
	}
	players := make([]*Player, len(stacks))
	for i, stack := range stacks {
		players[i] = NewPlayer(i, testNames[i], stack, conns[i])
	}
	return players
}

// stackedDeck returns a full deck whose first draws are the given cards in order.
func stackedDeck(t *testing.T, draws ...poker.Card) *poker.Deck {
	t.Helper()
	var cards []poker.Card
	for code := range poker.NumCards {
		c := poker.Card(code)
		if !slices.Contains(draws, c) {
			cards = append(cards, c)
		}
	}
	for i := len(draws) - 1; i >= 0; i-- {
		cards = append(cards, draws[i])
	}
	if len(cards) != poker.NumCards {
		t.Fatalf("stacked deck has %d cards, duplicate draws?", len(cards))
	}
	return poker.NewDeckFromCards(cards)
}

func card(t *testing.T, name string) poker.Card {
	t.Helper()
	c, err := poker.ParseCard(name)
	if err != nil {
		t.Fatalf("bad card %q: %v", name, err)
	}
	return c
}

func cards(t *testing.T, names ...string) []poker.Card {
	t.Helper()
	out := make([]poker.Card, len(names))
	for i, name := range names {
		out[i] = card(t, name)
	}
	return out
}

func menuCount(c *scriptConn) int {
	return c.count(protocol.Menu(true)) + c.count(protocol.Menu(false))
}
