package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/game"
	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/internal/transport"
)

// reservedNames would make protocol lines ambiguous ("You: 100", "ERROR: ...").
var reservedNames = []string{"you", "error"}

// Lobby seats players as they connect until the table is full.
type Lobby struct {
	listener transport.Listener
	seats    int
	holdings int
	logger   zerolog.Logger
}

// NewLobby creates a lobby for seats players with holdings chips each.
func NewLobby(listener transport.Listener, seats, holdings int, logger zerolog.Logger) *Lobby {
	return &Lobby{
		listener: listener,
		seats:    seats,
		holdings: holdings,
		logger:   logger.With().Str("component", "lobby").Logger(),
	}
}

// Gather blocks until every seat is taken. A connection that drops before
// choosing a name gives its seat to the next arrival. On error, the players
// already seated are disconnected.
func (l *Lobby) Gather(ctx context.Context) ([]*game.Player, error) {
	var players []*game.Player
	taken := make(map[string]bool)

	for len(players) < l.seats {
		rwc, err := l.listener.Accept(ctx)
		if err != nil {
			for _, p := range players {
				_ = p.Conn.Close()
			}
			return nil, fmt.Errorf("waiting for players: %w", err)
		}

		conn := protocol.NewConn(rwc)
		seat := len(players) + 1
		name, err := l.negotiate(ctx, conn, seat, taken)
		if err != nil {
			l.logger.Warn().Err(err).Int("seat", seat).Msg("Connection left the lobby")
			_ = conn.Close()
			continue
		}

		taken[name] = true
		players = append(players, game.NewPlayer(seat-1, name, l.holdings, conn))
		l.logger.Info().Str("player", name).Int("seat", seat).Int("seats", l.seats).Msg("Player joined")
	}

	l.logger.Info().Int("players", len(players)).Msg("All players have joined")
	return players, nil
}

// negotiate asks for a name until an acceptable one arrives.
func (l *Lobby) negotiate(ctx context.Context, conn *protocol.Conn, seat int, taken map[string]bool) (string, error) {
	if err := conn.Send(protocol.Welcome(seat, l.seats)); err != nil {
		return "", err
	}
	for {
		line, err := conn.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		name := strings.TrimSpace(line)

		var prompt string
		switch {
		case name == "" || strings.ContainsAny(name, ", "):
			prompt = protocol.NameInvalidPrompt
		case isReserved(name):
			prompt = protocol.NameReservedPrompt
		case taken[name]:
			prompt = protocol.NameTakenPrompt
		default:
			return name, conn.Send(protocol.Greeting(name))
		}

		l.logger.Debug().Str("name", name).Str("reply", prompt).Msg("Name refused")
		if err := conn.Send(prompt); err != nil {
			return "", err
		}
	}
}

func isReserved(name string) bool {
	for _, r := range reservedNames {
		if strings.EqualFold(name, r) {
			return true
		}
	}
	return false
}
