package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dealer.hcl")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
server {
  address          = "127.0.0.1:9000"
  transport        = "websocket"
  players          = 6
  small_blind      = 1
  big_blind        = 2
  start_holdings   = 500
  action_timeout   = "30s"
  seed             = 42
  hand_history_dir = "hands"
}
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	s := cfg.Server
	assert.Equal(t, "127.0.0.1:9000", s.Address)
	assert.Equal(t, "websocket", s.Transport)
	assert.Equal(t, 6, s.Players)
	assert.Equal(t, 1, s.SmallBlind)
	assert.Equal(t, 2, s.BigBlind)
	assert.Equal(t, 500, s.StartHoldings)
	require.NotNil(t, s.Seed)
	assert.Equal(t, int64(42), *s.Seed)
	assert.Equal(t, "hands", s.HandHistoryDir)

	d, err := s.Timeout()
	require.NoError(t, err)
	assert.Equal(t, 30*time.Second, d)
}

func TestLoadConfigFillsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := LoadConfig(writeConfig(t, "server {\n  players = 3\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Server.Players)
	assert.Equal(t, DefaultAddress, cfg.Server.Address)
	assert.Equal(t, "tcp", cfg.Server.Transport)
	assert.Equal(t, 5, cfg.Server.SmallBlind)
	assert.Equal(t, 10, cfg.Server.BigBlind)
	assert.Equal(t, DefaultStartHoldings, cfg.Server.StartHoldings)
	assert.Nil(t, cfg.Server.Seed)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(writeConfig(t, "server {\n  players = \n"))
	require.ErrorContains(t, err, "failed to parse HCL file")

	_, err = LoadConfig(writeConfig(t, "server {\n  seats = 3\n}\n"))
	require.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Settings)
		errMsg string
	}{
		{"one player", func(s *Settings) { s.Players = 1 }, "players must be at least 2"},
		{"unknown transport", func(s *Settings) { s.Transport = "udp" }, "unknown transport"},
		{"inverted blinds", func(s *Settings) { s.SmallBlind = 20 }, "small blind 20 is larger than big blind 10"},
		{"negative blind", func(s *Settings) { s.SmallBlind, s.BigBlind = -1, -1 }, "blinds must not be negative"},
		{"no holdings", func(s *Settings) { s.StartHoldings = 0 }, "start_holdings must be positive"},
		{"bad timeout", func(s *Settings) { s.ActionTimeout = "soon" }, "invalid action_timeout"},
		{"negative timeout", func(s *Settings) { s.ActionTimeout = "-1s" }, "must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(&cfg.Server)
			require.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
