package game

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

// Hand runs a single hand of Texas Hold'em against the players' sessions.
// It borrows the deck for the duration of Run and gives every card back.
type Hand struct {
	number   int
	players  []*HandPlayer
	deck     *poker.Deck
	startPos int

	smallBlind    int
	bigBlind      int
	actionTimeout time.Duration
	clock         quartz.Clock
	logger        zerolog.Logger
	observer      Observer

	discard  []poker.Card
	faceDown []poker.Card
	board    []poker.Card
	pots     []*Pot
	round    int
	actions  []ActionRecord
	settling bool
	starting []int
	results  []PotSummary
	scores   map[*HandPlayer]poker.Score
	winnings map[*HandPlayer]int
}

// NewHand prepares hand number for players, who must all have money.
func NewHand(number int, players []*Player, deck *poker.Deck, startPos int, opts ...HandOption) (*Hand, error) {
	if len(players) < 2 {
		return nil, &InvalidConfigError{Reason: fmt.Sprintf("need at least 2 players, got %d", len(players))}
	}
	if startPos < 0 || startPos > len(players) {
		return nil, &InvalidConfigError{Reason: fmt.Sprintf("start position %d larger than number of players %d", startPos, len(players))}
	}

	cfg := defaultHandConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.smallBlind > cfg.bigBlind {
		return nil, &InvalidConfigError{Reason: fmt.Sprintf("small blind %d is bigger than big blind %d", cfg.smallBlind, cfg.bigBlind)}
	}

	h := &Hand{
		number:        number,
		deck:          deck,
		startPos:      startPos % len(players),
		smallBlind:    cfg.smallBlind,
		bigBlind:      cfg.bigBlind,
		actionTimeout: cfg.actionTimeout,
		clock:         cfg.clock,
		observer:      cfg.observer,
		logger:        cfg.logger.With().Str("component", "hand").Int("hand", number).Logger(),
		scores:        make(map[*HandPlayer]poker.Score),
		winnings:      make(map[*HandPlayer]int),
	}
	for i, p := range players {
		hp := newHandPlayer(p, i)
		h.players = append(h.players, hp)
		h.starting = append(h.starting, hp.Stack)
	}
	h.pots = []*Pot{{Eligible: slices.Clone(h.players)}}
	return h, nil
}

// Players returns the hand's seats in order.
func (h *Hand) Players() []*HandPlayer {
	return h.players
}

// Pots returns the pot layers, top pot last.
func (h *Hand) Pots() []*Pot {
	return h.pots
}

// Run plays the hand through to settlement and writes the final stacks back
// to each Player. Only structural problems are returned as errors; player
// faults are handled inside the hand.
func (h *Hand) Run(ctx context.Context) error {
	defer h.returnCards()

	if err := h.deal(); err != nil {
		return err
	}
	h.logger.Debug().Int("start_pos", h.startPos).Int("players", len(h.players)).Msg("Hand started")

	h.announce()
	for _, hp := range h.players {
		h.send(hp, protocol.HoleCards(hp.Hole))
	}

	outcome, err := h.bettingRound(ctx, true)
	if err != nil {
		return fmt.Errorf("hand %d preflop: %w", h.number, err)
	}
	for _, n := range []int{3, 1, 1} {
		if outcome == HandOver {
			break
		}
		h.reveal(n)
		if outcome, err = h.bettingRound(ctx, false); err != nil {
			return fmt.Errorf("hand %d round %d: %w", h.number, h.round, err)
		}
	}

	h.settling = true
	if outcome == HandOver {
		h.broadcast(protocol.Results(0), nil)
	} else if err := h.showdown(); err != nil {
		return fmt.Errorf("hand %d showdown: %w", h.number, err)
	}
	h.settle()

	for _, hp := range h.players {
		hp.Holdings = hp.Stack
	}
	if h.observer != nil {
		h.observer.HandFinished(h.summary())
	}
	return nil
}

// deal draws two hole cards per player round-robin, then the community cards
// in burn, flop, flop, flop, burn, turn, burn, river order.
func (h *Hand) deal() error {
	for range 2 {
		for _, hp := range h.players {
			card, err := h.deck.Draw()
			if err != nil {
				return fmt.Errorf("dealing hole cards: %w", err)
			}
			hp.Hole = append(hp.Hole, card)
		}
	}
	for _, burn := range []bool{true, false, false, false, true, false, true, false} {
		card, err := h.deck.Draw()
		if err != nil {
			return fmt.Errorf("dealing community cards: %w", err)
		}
		if burn {
			h.discard = append(h.discard, card)
		} else {
			h.faceDown = append(h.faceDown, card)
		}
	}
	return nil
}

func (h *Hand) returnCards() {
	for _, hp := range h.players {
		h.deck.Return(hp.Hole...)
	}
	h.deck.Return(h.discard...)
	h.deck.Return(h.board...)
	h.deck.Return(h.faceDown...)
	h.discard, h.board, h.faceDown = nil, nil, nil
}

// announce opens the hand for everyone: banner, roster and holdings.
func (h *Hand) announce() {
	h.broadcast(protocol.HandBanner(h.number), nil)
	names := make([]string, len(h.players))
	for i, hp := range h.players {
		names[i] = hp.Name
	}
	h.broadcast(protocol.StillIn(names), nil)
	h.broadcast(protocol.MoneyLeft, nil)
	for _, hp := range h.players {
		h.send(hp, protocol.OwnHoldings(hp.Stack))
		h.broadcast(protocol.Holdings(hp.Name, hp.Stack), hp)
	}
}

// reveal turns the next n community cards face up for every seated player.
func (h *Hand) reveal(n int) {
	cards := h.faceDown[:n]
	h.faceDown = h.faceDown[n:]
	h.board = append(h.board, cards...)
	h.broadcast(protocol.Reveal(cards), nil)
	h.logger.Debug().Str("cards", poker.FormatCards(cards)).Msg("Revealed")
}

// showdown scores every player still in and announces the results.
func (h *Hand) showdown() error {
	var ranked []*HandPlayer
	for _, hp := range h.players {
		if hp.Folded {
			continue
		}
		score, err := poker.GetHandMax(append(slices.Clone(hp.Hole), h.board...))
		if err != nil {
			return fmt.Errorf("scoring %s: %w", hp.Name, err)
		}
		h.scores[hp] = score
		ranked = append(ranked, hp)
	}
	slices.SortStableFunc(ranked, func(a, b *HandPlayer) int {
		return h.scores[b].Value - h.scores[a].Value
	})

	h.broadcast(protocol.Results(len(ranked)), nil)
	for _, hp := range ranked {
		score := h.scores[hp].String()
		h.send(hp, protocol.OwnScore(score))
		h.broadcast(protocol.PlayerScore(hp.Name, score), hp)
	}
	return nil
}

// settle pays out every pot and announces the winnings.
func (h *Hand) settle() {
	h.broadcast(protocol.Pots(len(h.pots)), nil)
	for _, pot := range h.pots {
		winners := h.potWinners(pot)
		share := pot.Amount / len(winners)
		remainder := pot.Amount % len(winners)
		names := make([]string, len(winners))
		for i, w := range winners {
			names[i] = w.Name
			h.winnings[w] += share
			if i < remainder {
				h.winnings[w]++
			}
		}
		h.results = append(h.results, PotSummary{Amount: pot.Amount, Level: pot.Level, Winners: names, Share: share, Remainder: remainder})
		h.broadcast(protocol.PotWin(names, pot.Level, pot.Amount, share), nil)
		h.logger.Debug().Int("amount", pot.Amount).Int("level", pot.Level).Strs("winners", names).Msg("Pot settled")
	}

	h.broadcast(protocol.WinningsHeader, nil)
	for _, hp := range h.players {
		won := h.winnings[hp]
		hp.Stack += won
		h.send(hp, protocol.OwnWinnings(won))
		h.broadcast(protocol.PlayerWinnings(hp.Name, won), hp)
	}
}

// potWinners returns the best scoring non-folded players eligible for pot,
// in seat order from the start position. A pot whose eligible players have
// all folded goes to the players still in the hand.
func (h *Hand) potWinners(pot *Pot) []*HandPlayer {
	var candidates []*HandPlayer
	for _, hp := range pot.Eligible {
		if !hp.Folded {
			candidates = append(candidates, hp)
		}
	}
	if len(candidates) == 0 {
		for _, hp := range h.players {
			if !hp.Folded {
				candidates = append(candidates, hp)
			}
		}
	}

	best := -1
	var winners []*HandPlayer
	for _, hp := range candidates {
		value := h.scores[hp].Value
		switch {
		case value > best:
			best = value
			winners = []*HandPlayer{hp}
		case value == best:
			winners = append(winners, hp)
		}
	}

	n := len(h.players)
	slices.SortFunc(winners, func(a, b *HandPlayer) int {
		return (a.Seat-h.startPos+n)%n - (b.Seat-h.startPos+n)%n
	})
	return winners
}

// send delivers msg to one player. A failed send disconnects them.
func (h *Hand) send(hp *HandPlayer, msg string) {
	if hp.Disconnected {
		return
	}
	if err := hp.Conn.Send(msg); err != nil {
		h.disconnect(hp, err)
	}
}

// broadcast delivers msg to every seated player except one.
func (h *Hand) broadcast(msg string, except *HandPlayer) {
	for _, hp := range h.players {
		if hp != except {
			h.send(hp, msg)
		}
	}
}

// disconnect marks a player whose session failed. Before settlement they are
// folded and the table is told, unless they are the last player in the hand.
func (h *Hand) disconnect(hp *HandPlayer, err error) {
	if hp.Disconnected {
		return
	}
	hp.Disconnected = true
	h.logger.Warn().Err(err).Str("player", hp.Name).Msg("Player disconnected")

	if h.settling || hp.Folded {
		return
	}
	claimants := 0
	for _, other := range h.players {
		if !other.Folded {
			claimants++
		}
	}
	if claimants <= 1 {
		return
	}
	hp.Folded = true
	h.record(hp, "Fold", 0)
	h.broadcast(protocol.OpponentAction(hp.Name, protocol.Folded), hp)
}

func (h *Hand) record(hp *HandPlayer, action string, amount int) {
	h.actions = append(h.actions, ActionRecord{Round: h.round, Player: hp.Name, Action: action, Amount: amount})
}
