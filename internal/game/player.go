package game

import (
	"context"

	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

// Conn is a player's session as the dealer sees it. *protocol.Conn satisfies it.
type Conn interface {
	Send(msg string) error
	ReadLine(ctx context.Context) (string, error)
	Close() error
}

// Player is a seated participant that survives across hands.
type Player struct {
	ID       int
	Name     string
	Holdings int
	Conn     Conn
}

// NewPlayer seats a player with the given starting holdings.
func NewPlayer(id int, name string, holdings int, conn Conn) *Player {
	return &Player{ID: id, Name: name, Holdings: holdings, Conn: conn}
}

// HasMoney reports whether the player can be dealt into another hand.
func (p *Player) HasMoney() bool {
	return p.Holdings > 0
}

// Leave sends any final messages followed by Goodbye and closes the session.
// Send errors are ignored; the player is leaving either way.
func (p *Player) Leave(msgs ...string) error {
	for _, msg := range msgs {
		_ = p.Conn.Send(msg)
	}
	_ = p.Conn.Send(protocol.Goodbye)
	return p.Conn.Close()
}

// HandPlayer is a Player's state for the duration of one hand. Stack starts as
// a copy of Holdings and is written back when the hand ends.
type HandPlayer struct {
	*Player
	Seat         int
	Hole         []poker.Card
	Stack        int
	Bet          int // cumulative over the hand
	Folded       bool
	Disconnected bool
}

func newHandPlayer(p *Player, seat int) *HandPlayer {
	return &HandPlayer{Player: p, Seat: seat, Stack: p.Holdings}
}

// HasMoney reports whether the player still has chips behind in this hand.
func (hp *HandPlayer) HasMoney() bool {
	return hp.Stack > 0
}

// Active players can still be asked for a decision.
func (hp *HandPlayer) Active() bool {
	return !hp.Folded && hp.Stack > 0
}

func (hp *HandPlayer) wager(amount int) {
	hp.Stack -= amount
	hp.Bet += amount
}
