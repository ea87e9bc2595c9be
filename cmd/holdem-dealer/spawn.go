package main

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem-dealer/cmd/holdem-dealer/shared"
	"github.com/lox/holdem-dealer/internal/bot"
	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/internal/randutil"
	"github.com/lox/holdem-dealer/internal/server"
	"github.com/lox/holdem-dealer/internal/transport"
)

// SpawnCmd runs a dealer on a local port and fills every seat with bots.
type SpawnCmd struct {
	shared.LogFlags `embed:""`

	Bots           string `default:"highcard:2,random:1,call:1" help:"Bots to seat in order, e.g. highcard:2,maniac:1"`
	Transport      string `enum:"tcp,websocket" default:"tcp" help:"Transport: tcp or websocket"`
	SmallBlind     int    `default:"5" help:"Small blind"`
	BigBlind       int    `default:"10" help:"Big blind"`
	StartHoldings  int    `default:"100" help:"Chips each player starts with"`
	ActionTimeout  string `default:"5s" help:"Time a bot has to act"`
	Seed           *int64 `help:"Seed for the shuffle and every bot"`
	HandHistoryDir string `type:"path" help:"Write one PHH file per hand into this directory"`
}

type seatGroup struct {
	kind  string
	count int
}

func parseLineup(lineup string) ([]seatGroup, error) {
	var groups []seatGroup
	for part := range strings.SplitSeq(lineup, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kind, countStr, found := strings.Cut(part, ":")
		count := 1
		if found {
			n, err := strconv.Atoi(countStr)
			if err != nil || n < 1 {
				return nil, fmt.Errorf("invalid count in %q", part)
			}
			count = n
		}
		kind = strings.ToLower(strings.TrimSpace(kind))
		if kind == "human" {
			return nil, fmt.Errorf("human players connect with the bot command")
		}
		if !slices.Contains(bot.Names(), kind) {
			return nil, fmt.Errorf("unknown bot %q (available: %s)", kind, strings.Join(bot.Names(), ", "))
		}
		groups = append(groups, seatGroup{kind: kind, count: count})
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no bots in %q", lineup)
	}
	return groups, nil
}

func (c *SpawnCmd) Run() error {
	logger := c.Logger()
	groups, err := parseLineup(c.Bots)
	if err != nil {
		return err
	}

	seats := 0
	for _, s := range groups {
		seats += s.count
	}
	seed, _ := randutil.Seed(c.Seed)

	cfg := server.DefaultConfig()
	cfg.Server.Address = "127.0.0.1:0"
	cfg.Server.Transport = c.Transport
	cfg.Server.Players = seats
	cfg.Server.SmallBlind = c.SmallBlind
	cfg.Server.BigBlind = c.BigBlind
	cfg.Server.StartHoldings = c.StartHoldings
	cfg.Server.ActionTimeout = c.ActionTimeout
	cfg.Server.Seed = &seed
	cfg.Server.HandHistoryDir = c.HandHistoryDir
	if err := cfg.Validate(); err != nil {
		return err
	}
	kind, _ := transport.ParseKind(c.Transport)

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	result, err := playLineup(ctx, cfg, kind, groups, seed, logger, server.WithLogger(logger))
	if err != nil {
		return err
	}
	logger.Info().
		Str("champion", result.Champion).
		Int("hands", result.Hands).
		Int64("seed", result.Seed).
		Msg("Spawned game finished")
	return nil
}

// playLineup runs a dealer and its bots to the end of one game.
func playLineup(ctx context.Context, cfg *server.Config, kind transport.Kind, groups []seatGroup, seed int64, logger zerolog.Logger, opts ...server.Option) (*server.Result, error) {
	srv := server.New(cfg, opts...)
	if err := srv.Listen(); err != nil {
		return nil, err
	}
	defer srv.Close()
	addr := srv.Addr().String()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	var result *server.Result
	g.Go(func() error {
		var err error
		result, err = srv.Serve(gctx)
		return err
	})

	if err := seatBots(gctx, g, kind, addr, groups, seed, logger); err != nil {
		cancel()
		if werr := g.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
			return nil, werr
		}
		return nil, err
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// seatBots connects the bots one at a time and waits for each to be seated
// before dialing the next, so seat n always goes to the nth bot of the lineup.
func seatBots(ctx context.Context, g *errgroup.Group, kind transport.Kind, addr string, groups []seatGroup, seed int64, logger zerolog.Logger) error {
	n := 0
	for _, s := range groups {
		for range s.count {
			n++
			botLogger := logger.With().Str("bot", s.kind).Int("seat", n).Logger()
			policy, err := bot.New(s.kind, randutil.Derive(seed, n), botLogger)
			if err != nil {
				return err
			}
			joined := make(chan struct{})
			g.Go(func() error {
				return runBot(ctx, kind, addr, s.kind, policy, botLogger,
					client.WithOnJoined(func(*client.State) { close(joined) }))
			})
			select {
			case <-joined:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return nil
}

func runBot(ctx context.Context, kind transport.Kind, addr, name string, policy client.Policy, logger zerolog.Logger, opts ...client.Option) error {
	rwc, err := transport.Dial(ctx, kind, addr)
	if err != nil {
		return fmt.Errorf("bot %s: %w", name, err)
	}
	conn := protocol.NewConn(rwc)
	defer conn.Close()
	opts = append([]client.Option{client.WithLogger(logger)}, opts...)
	return client.New(conn, name, policy, opts...).Run(ctx)
}
