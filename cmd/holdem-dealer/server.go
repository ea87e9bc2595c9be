package main

import (
	"github.com/lox/holdem-dealer/cmd/holdem-dealer/shared"
	"github.com/lox/holdem-dealer/internal/server"
)

// ServerCmd deals a single game. Flags override the config file.
type ServerCmd struct {
	shared.LogFlags `embed:""`

	Config         string `short:"c" default:"dealer.hcl" type:"path" help:"HCL config file (defaults apply when missing)"`
	Addr           string `help:"Listen address"`
	Transport      string `help:"Transport: tcp or websocket"`
	Players        int    `short:"n" help:"Number of seats to fill before dealing"`
	SmallBlind     int    `help:"Small blind"`
	BigBlind       int    `help:"Big blind"`
	StartHoldings  int    `help:"Chips each player starts with"`
	ActionTimeout  string `help:"Time a player has to act, e.g. 30s (0 waits forever)"`
	Seed           *int64 `help:"Deterministic shuffle seed"`
	HandHistoryDir string `type:"path" help:"Write one PHH file per hand into this directory"`
}

func (c *ServerCmd) Run() error {
	logger := c.Logger()

	cfg, err := server.LoadConfig(c.Config)
	if err != nil {
		return err
	}
	c.apply(&cfg.Server)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	s := cfg.Server
	logger.Info().
		Str("config", c.Config).
		Int("players", s.Players).
		Int("small_blind", s.SmallBlind).
		Int("big_blind", s.BigBlind).
		Int("start_holdings", s.StartHoldings).
		Str("action_timeout", s.ActionTimeout).
		Msg("Starting dealer")

	srv := server.New(cfg, server.WithLogger(logger))
	defer srv.Close()

	result, err := srv.ListenAndServe(ctx)
	if err != nil {
		return err
	}
	logger.Info().
		Str("champion", result.Champion).
		Int("hands", result.Hands).
		Int64("seed", result.Seed).
		Msg("Finished")
	return nil
}

func (c *ServerCmd) apply(s *server.Settings) {
	if c.Addr != "" {
		s.Address = c.Addr
	}
	if c.Transport != "" {
		s.Transport = c.Transport
	}
	if c.Players != 0 {
		s.Players = c.Players
	}
	if c.SmallBlind != 0 {
		s.SmallBlind = c.SmallBlind
	}
	if c.BigBlind != 0 {
		s.BigBlind = c.BigBlind
	}
	if c.StartHoldings != 0 {
		s.StartHoldings = c.StartHoldings
	}
	if c.ActionTimeout != "" {
		s.ActionTimeout = c.ActionTimeout
	}
	if c.Seed != nil {
		s.Seed = c.Seed
	}
	if c.HandHistoryDir != "" {
		s.HandHistoryDir = c.HandHistoryDir
	}
}
