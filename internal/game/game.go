package game

import (
	"context"
	"fmt"
	"slices"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

// Game plays hands until a single player is left. It owns the deck and lends
// it to one hand at a time.
type Game struct {
	players  []*Player
	deck     *poker.Deck
	startPos int
	hands    int
	opts     []HandOption
	logger   zerolog.Logger
}

// NewGame seats players in order. opts are applied to every hand.
func NewGame(players []*Player, deck *poker.Deck, opts ...HandOption) *Game {
	cfg := defaultHandConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Game{
		players: slices.Clone(players),
		deck:    deck,
		opts:    opts,
		logger:  cfg.logger.With().Str("component", "game").Logger(),
	}
}

// Players returns the players still in the game.
func (g *Game) Players() []*Player {
	return g.players
}

// HandsPlayed is the number of hands started so far.
func (g *Game) HandsPlayed() int {
	return g.hands
}

// Finished reports whether fewer than two players remain.
func (g *Game) Finished() bool {
	return len(g.players) < 2
}

// Run plays hands until the game is finished and returns the champion, or
// nil if nobody is left standing.
func (g *Game) Run(ctx context.Context) (*Player, error) {
	for !g.Finished() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.PlayHand(ctx); err != nil {
			return nil, err
		}
	}
	return g.congratulate(), nil
}

// PlayHand plays one hand, then removes broke and disconnected players and
// moves the start position on.
func (g *Game) PlayHand(ctx context.Context) error {
	g.hands++
	hand, err := NewHand(g.hands, g.players, g.deck, g.startPos, g.opts...)
	if err != nil {
		return err
	}
	if err := hand.Run(ctx); err != nil {
		return err
	}
	if g.deck.Len() != poker.NumCards {
		return fmt.Errorf("hand %d left %d cards in the deck", g.hands, g.deck.Len())
	}

	disconnected := make(map[*Player]bool)
	for _, hp := range hand.Players() {
		if hp.Disconnected {
			disconnected[hp.Player] = true
		}
	}

	remaining := g.players[:0]
	for _, p := range g.players {
		switch {
		case disconnected[p]:
			g.logger.Info().Str("player", p.Name).Int("holdings", p.Holdings).Msg("Dropping disconnected player")
			_ = p.Conn.Close()
		case !p.HasMoney():
			g.logger.Info().Str("player", p.Name).Int("hand", g.hands).Msg("Player eliminated")
			_ = p.Leave(protocol.OutOfMoney)
		default:
			remaining = append(remaining, p)
		}
	}
	g.players = remaining

	if len(g.players) > 0 {
		g.startPos = (g.startPos + 1) % len(g.players)
	}
	return nil
}

func (g *Game) congratulate() *Player {
	if len(g.players) != 1 {
		g.logger.Warn().Int("players", len(g.players)).Msg("Game ended without a champion")
		return nil
	}
	champion := g.players[0]
	g.logger.Info().Str("player", champion.Name).Int("holdings", champion.Holdings).Int("hands", g.hands).Msg("Champion decided")
	_ = champion.Leave(protocol.Champion)
	return champion
}
