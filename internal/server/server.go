// Package server runs one dealer table: it listens for players, seats them
// through the lobby and plays a game until a champion is left.
package server

import (
	"context"
	"fmt"
	"net"

	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/game"
	"github.com/lox/holdem-dealer/internal/handlog"
	"github.com/lox/holdem-dealer/internal/randutil"
	"github.com/lox/holdem-dealer/internal/transport"
	"github.com/lox/holdem-dealer/poker"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithClock replaces the clock used for action timeouts and hand history
// timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithObserver adds an observer for finished hands alongside the hand
// history recorder.
func WithObserver(o game.Observer) Option {
	return func(s *Server) { s.observers = append(s.observers, o) }
}

// Result describes a finished game.
type Result struct {
	GameID   string
	Seed     int64
	Hands    int
	Champion string // empty when nobody was left standing
}

// Server is a single-table dealer.
type Server struct {
	cfg       Settings
	gameID    string
	logger    zerolog.Logger
	clock     quartz.Clock
	observers []game.Observer
	listener  transport.Listener
}

// New creates a server. The config must already be valid.
func New(cfg *Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg.Server,
		gameID: uuid.NewString(),
		logger: zerolog.Nop(),
		clock:  quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("game", s.gameID).Logger()
	return s
}

// GameID identifies this server's game in logs and hand histories.
func (s *Server) GameID() string {
	return s.gameID
}

// Listen opens the configured listener.
func (s *Server) Listen() error {
	kind, err := transport.ParseKind(s.cfg.Transport)
	if err != nil {
		return err
	}
	ln, err := transport.Listen(kind, s.cfg.Address)
	if err != nil {
		return err
	}
	s.listener = ln
	s.logger.Info().Str("address", ln.Addr().String()).Str("transport", string(kind)).Msg("Dealer listening")
	return nil
}

// Addr returns the listening address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// ListenAndServe listens and plays one game.
func (s *Server) ListenAndServe(ctx context.Context) (*Result, error) {
	if err := s.Listen(); err != nil {
		return nil, err
	}
	return s.Serve(ctx)
}

// Serve fills the table and plays one game to the end. The listener is
// closed once every seat is taken.
func (s *Server) Serve(ctx context.Context) (*Result, error) {
	if s.listener == nil {
		return nil, fmt.Errorf("server is not listening")
	}
	timeout, err := s.cfg.Timeout()
	if err != nil {
		return nil, err
	}

	lobby := NewLobby(s.listener, s.cfg.Players, s.cfg.StartHoldings, s.logger)
	players, err := lobby.Gather(ctx)
	_ = s.listener.Close()
	if err != nil {
		return nil, err
	}

	seed, rng := randutil.Seed(s.cfg.Seed)
	s.logger.Info().Int64("seed", seed).Msg("Shuffling deck")

	opts := []game.HandOption{
		game.WithBlinds(s.cfg.SmallBlind, s.cfg.BigBlind),
		game.WithActionTimeout(timeout),
		game.WithClock(s.clock),
		game.WithLogger(s.logger),
	}
	observers := s.observers
	if s.cfg.HandHistoryDir != "" {
		recorder, err := handlog.NewRecorder(s.cfg.HandHistoryDir, s.logger)
		if err != nil {
			closeAll(players)
			return nil, err
		}
		observers = append(observers, newHandHistoryAdapter(s.gameID, recorder, s.clock, s.logger))
	}
	if len(observers) > 0 {
		opts = append(opts, game.WithObserver(fanOut(observers)))
	}

	g := game.NewGame(players, poker.NewDeck(rng), opts...)
	champion, err := g.Run(ctx)
	if err != nil {
		closeAll(g.Players())
		return nil, fmt.Errorf("game %s: %w", s.gameID, err)
	}

	result := &Result{GameID: s.gameID, Seed: seed, Hands: g.HandsPlayed()}
	if champion != nil {
		result.Champion = champion.Name
	}
	s.logger.Info().Str("champion", result.Champion).Int("hands", result.Hands).Msg("Game over")
	return result, nil
}

// Close stops listening. Seated players are not affected.
func (s *Server) Close() error {
	if s.listener == nil {
		return nil
	}
	return s.listener.Close()
}

func closeAll(players []*game.Player) {
	for _, p := range players {
		_ = p.Conn.Close()
	}
}

type fanOut []game.Observer

func (f fanOut) HandFinished(summary game.HandSummary) {
	for _, o := range f {
		o.HandFinished(summary)
	}
}
