package server

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/lox/holdem-dealer/internal/game"
	"github.com/lox/holdem-dealer/internal/transport"
)

const (
	DefaultAddress       = ":8080"
	DefaultPlayers       = 4
	DefaultStartHoldings = 100
)

// Config is the dealer configuration file.
type Config struct {
	Server Settings `hcl:"server,block"`
}

// Settings is the body of the server block.
type Settings struct {
	Address        string `hcl:"address,optional"`
	Transport      string `hcl:"transport,optional"`
	Players        int    `hcl:"players,optional"`
	SmallBlind     int    `hcl:"small_blind,optional"`
	BigBlind       int    `hcl:"big_blind,optional"`
	StartHoldings  int    `hcl:"start_holdings,optional"`
	ActionTimeout  string `hcl:"action_timeout,optional"`
	Seed           *int64 `hcl:"seed,optional"`
	HandHistoryDir string `hcl:"hand_history_dir,optional"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Server: Settings{
			Address:       DefaultAddress,
			Transport:     string(transport.TCP),
			Players:       DefaultPlayers,
			SmallBlind:    game.DefaultSmallBlind,
			BigBlind:      game.DefaultBigBlind,
			StartHoldings: DefaultStartHoldings,
		},
	}
}

// LoadConfig reads an HCL config file. A missing file yields the defaults.
func LoadConfig(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	if diags := gohcl.DecodeBody(file.Body, nil, &config); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	s := &c.Server
	if s.Address == "" {
		s.Address = DefaultAddress
	}
	if s.Transport == "" {
		s.Transport = string(transport.TCP)
	}
	if s.Players == 0 {
		s.Players = DefaultPlayers
	}
	if s.SmallBlind == 0 && s.BigBlind == 0 {
		s.SmallBlind = game.DefaultSmallBlind
		s.BigBlind = game.DefaultBigBlind
	}
	if s.StartHoldings == 0 {
		s.StartHoldings = DefaultStartHoldings
	}
}

// Timeout parses action_timeout. Empty means no timeout.
func (s Settings) Timeout() (time.Duration, error) {
	if s.ActionTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s.ActionTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid action_timeout %q: %w", s.ActionTimeout, err)
	}
	return d, nil
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	s := c.Server
	if _, err := transport.ParseKind(s.Transport); err != nil {
		return err
	}
	if s.Players < 2 {
		return fmt.Errorf("players must be at least 2, got %d", s.Players)
	}
	if s.SmallBlind < 0 || s.BigBlind < 0 {
		return fmt.Errorf("blinds must not be negative")
	}
	if s.SmallBlind > s.BigBlind {
		return fmt.Errorf("small blind %d is larger than big blind %d", s.SmallBlind, s.BigBlind)
	}
	if s.StartHoldings <= 0 {
		return fmt.Errorf("start_holdings must be positive, got %d", s.StartHoldings)
	}
	d, err := s.Timeout()
	if err != nil {
		return err
	}
	if d < 0 {
		return fmt.Errorf("action_timeout must not be negative")
	}
	return nil
}
