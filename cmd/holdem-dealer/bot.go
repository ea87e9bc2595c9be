package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/cmd/holdem-dealer/shared"
	"github.com/lox/holdem-dealer/internal/bot"
	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/internal/randutil"
	"github.com/lox/holdem-dealer/internal/transport"
)

type BotCmd struct {
	shared.LogFlags `embed:""`

	Kind      string `arg:"" optional:"" default:"highcard" help:"Bot type (${bots})"`
	Server    string `default:"localhost:8080" help:"Dealer address"`
	Transport string `enum:"tcp,websocket" default:"tcp" help:"Transport: tcp or websocket"`
	Name      string `help:"Player name (defaults to the bot type)"`
	Seed      *int64 `help:"Seed for bots that play randomly"`
}

func (c *BotCmd) Run() error {
	logger := c.Logger()
	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	kind, err := transport.ParseKind(c.Transport)
	if err != nil {
		return err
	}
	seed, rng := randutil.Seed(c.Seed)
	name := c.Name
	if name == "" {
		name = strings.ToLower(c.Kind)
	}
	logger = logger.With().Str("bot", c.Kind).Logger()

	policy, err := bot.New(c.Kind, rng, logger)
	if err != nil {
		return err
	}
	if closer, ok := policy.(io.Closer); ok {
		defer closer.Close()
	}

	rwc, err := transport.Dial(ctx, kind, c.Server)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", c.Server, err)
	}
	conn := protocol.NewConn(rwc)
	defer conn.Close()

	logger.Info().Str("server", c.Server).Int64("seed", seed).Msg("Connected to dealer")
	cl := client.New(conn, name, policy, client.WithLogger(logger))
	if err := cl.Run(ctx); err != nil {
		return err
	}
	report(logger, cl.State())
	return nil
}

func report(logger zerolog.Logger, s *client.State) {
	ev := logger.Info().Str("name", s.Name)
	switch {
	case s.Champion:
		ev.Int("holdings", s.Me().Holdings).Msg("Won the game")
	case s.Eliminated:
		ev.Msg("Eliminated")
	default:
		ev.Msg("Game ended")
	}
}
