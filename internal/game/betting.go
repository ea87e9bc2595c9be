package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/lox/holdem-dealer/internal/protocol"
)

// RoundOutcome is what a betting round reports back to the hand.
type RoundOutcome int

const (
	// RoundContinued means at least two players can still act.
	RoundContinued RoundOutcome = iota
	// RoundClosed means betting for this street is over.
	RoundClosed
	// HandOver means only one player has not folded.
	HandOver
)

func (o RoundOutcome) String() string {
	switch o {
	case RoundContinued:
		return "continued"
	case RoundClosed:
		return "closed"
	case HandOver:
		return "hand over"
	default:
		return fmt.Sprintf("RoundOutcome(%d)", int(o))
	}
}

// outcome classifies the table as it stands.
func (h *Hand) outcome() RoundOutcome {
	claimants, active := 0, 0
	for _, hp := range h.players {
		if hp.Folded {
			continue
		}
		claimants++
		if hp.HasMoney() {
			active++
		}
	}
	switch {
	case claimants <= 1:
		return HandOver
	case active < 2:
		return RoundClosed
	default:
		return RoundContinued
	}
}

func (h *Hand) top() *Pot {
	return h.pots[len(h.pots)-1]
}

func (h *Hand) next(i int) int { return (i + 1) % len(h.players) }
func (h *Hand) prev(i int) int { return (i - 1 + len(h.players)) % len(h.players) }

// postBlinds takes the forced bets. The big blind sits just before the start
// position and the small blind before that; heads-up there is no small blind.
func (h *Hand) postBlinds(bets Bets) {
	n := len(h.players)
	smallEnabled := n > 2
	small := 0
	if smallEnabled {
		small = h.smallBlind
	}
	h.broadcast(protocol.BigBlindIs(h.bigBlind), nil)
	h.broadcast(protocol.SmallBlindIs(small), nil)

	bigSeat := h.prev(h.startPos)
	smallSeat := h.prev(bigSeat)
	for _, hp := range h.players {
		switch {
		case hp.Seat == bigSeat:
			h.post(bets, hp, h.bigBlind)
			h.send(hp, protocol.YouBigBlind)
			h.broadcast(protocol.PlayerBigBlind(hp.Name), hp)
		case smallEnabled && hp.Seat == smallSeat:
			h.post(bets, hp, h.smallBlind)
			h.send(hp, protocol.YouSmallBlind)
			h.broadcast(protocol.PlayerSmallBlind(hp.Name), hp)
		default:
			h.send(hp, protocol.YouNotBlind)
		}
	}
}

func (h *Hand) post(bets Bets, hp *HandPlayer, blind int) {
	amount := min(blind, hp.Stack)
	hp.wager(amount)
	bets.Add(hp, amount)
	h.record(hp, "Blind", amount)
	h.logger.Debug().Str("player", hp.Name).Int("amount", amount).Msg("Posted blind")
}

// bettingRound runs one street of betting starting at the start position and
// folds the bets into the pots when it closes.
func (h *Hand) bettingRound(ctx context.Context, blinds bool) (RoundOutcome, error) {
	if out := h.outcome(); out == HandOver {
		return out, nil
	}

	bets := Bets{}
	if blinds {
		h.postBlinds(bets)
	}

	acted := make(map[int]bool)
	current := h.startPos % len(h.players)
	roundEnd := h.prev(current)
	for h.outcome() == RoundContinued {
		hp := h.players[current]
		switch {
		case hp.Folded:
			h.send(hp, protocol.FoldedCannotBet)
		case !hp.HasMoney():
			h.send(hp, protocol.BrokeCannotBet)
		default:
			raised, err := h.takeAction(ctx, hp, bets, acted)
			if err != nil {
				return 0, err
			}
			if raised {
				roundEnd = h.prev(current)
			}
		}
		if current == roundEnd {
			break
		}
		current = h.next(current)
	}

	h.pots = collectBets(h.pots, bets)
	h.round++

	if h.outcome() == HandOver {
		return HandOver, nil
	}
	return RoundClosed, nil
}

// takeAction asks hp for a decision until it gets a legal one. It reports
// whether the player raised. A failed or timed out read folds the player.
func (h *Hand) takeAction(ctx context.Context, hp *HandPlayer, bets Bets, acted map[int]bool) (bool, error) {
	potBet := h.top().Level + bets.Max()
	toCall := potBet - hp.Bet
	canRaise := !acted[hp.ID] && hp.Stack > toCall
	acted[hp.ID] = true

	h.send(hp, protocol.Status(h.potAmount(bets), potBet, hp.Bet, hp.Stack))
	for {
		if hp.Disconnected {
			return false, nil
		}
		h.send(hp, protocol.Menu(canRaise))

		line, err := h.readAction(ctx, hp)
		if err != nil {
			if ctx.Err() != nil {
				return false, fmt.Errorf("waiting for %s: %w", hp.Name, ctx.Err())
			}
			h.disconnect(hp, err)
			return false, nil
		}

		display, raised, err := h.applyAction(hp, line, toCall, canRaise, bets)
		if err != nil {
			var actionErr *ActionError
			if !errors.As(err, &actionErr) {
				return false, err
			}
			h.logger.Debug().Str("player", hp.Name).Str("line", line).Str("reason", actionErr.Reason).Msg("Rejected action")
			h.send(hp, protocol.Error(actionErr.Reason))
			continue
		}

		h.send(hp, protocol.Success)
		h.broadcast(protocol.OpponentAction(hp.Name, display), hp)
		if raised {
			clear(acted)
			acted[hp.ID] = true
		}
		return raised, nil
	}
}

// applyAction validates and applies one action line and returns the text
// other players are told.
func (h *Hand) applyAction(hp *HandPlayer, line string, toCall int, canRaise bool, bets Bets) (string, bool, error) {
	action, err := protocol.ParseAction(line)
	if err != nil {
		return "", false, &ActionError{Player: hp.Name, Reason: err.Error()}
	}

	switch action.Kind {
	case protocol.Fold:
		hp.Folded = true
		h.record(hp, "Fold", 0)
		h.logger.Debug().Str("player", hp.Name).Msg("Folded")
		return protocol.Folded, false, nil

	case protocol.Call:
		amount := min(toCall, hp.Stack)
		hp.wager(amount)
		bets.Add(hp, amount)
		h.record(hp, "Call", amount)
		h.logger.Debug().Str("player", hp.Name).Int("amount", amount).Msg("Called")
		return protocol.Called, false, nil

	case protocol.Raise:
		if !canRaise {
			return "", false, &ActionError{Player: hp.Name, Reason: protocol.ErrInvalidCommand.Error()}
		}
		amount := toCall + action.Amount
		if hp.Stack < amount {
			return "", false, &ActionError{Player: hp.Name, Reason: fmt.Sprintf("not enough money to raise by %d", action.Amount)}
		}
		hp.wager(amount)
		bets.Add(hp, amount)
		h.record(hp, "Raise", amount)
		h.logger.Debug().Str("player", hp.Name).Int("raise", action.Amount).Int("to", hp.Bet).Msg("Raised")
		return protocol.RaisedBy(action.Amount, hp.Bet), true, nil
	}
	return "", false, fmt.Errorf("unhandled action kind %v", action.Kind)
}

// readAction reads the player's reply, bounded by the action timeout when one
// is configured.
func (h *Hand) readAction(ctx context.Context, hp *HandPlayer) (string, error) {
	if h.actionTimeout <= 0 {
		return hp.Conn.ReadLine(ctx)
	}

	readCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	timer := h.clock.AfterFunc(h.actionTimeout, func() {
		cancel(ErrActionTimeout)
	})
	defer timer.Stop()

	line, err := hp.Conn.ReadLine(readCtx)
	if err != nil {
		if cause := context.Cause(readCtx); errors.Is(cause, ErrActionTimeout) {
			return "", cause
		}
		return "", err
	}
	return line, nil
}

func (h *Hand) potAmount(bets Bets) int {
	return h.top().Amount + bets.Total()
}
