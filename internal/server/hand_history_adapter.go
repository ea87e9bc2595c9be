package server

import (
	"fmt"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/holdem-dealer/internal/game"
	"github.com/lox/holdem-dealer/internal/handlog"
)

// handHistoryAdapter records every settled hand through a handlog.Recorder.
type handHistoryAdapter struct {
	gameID   string
	recorder *handlog.Recorder
	clock    quartz.Clock
	logger   zerolog.Logger
}

func newHandHistoryAdapter(gameID string, recorder *handlog.Recorder, clock quartz.Clock, logger zerolog.Logger) *handHistoryAdapter {
	return &handHistoryAdapter{gameID: gameID, recorder: recorder, clock: clock, logger: logger}
}

// HandFinished implements game.Observer. Write failures are logged and the
// game goes on.
func (h *handHistoryAdapter) HandFinished(summary game.HandSummary) {
	hist := convertSummary(h.gameID, summary, h.clock.Now())
	if _, err := h.recorder.Write(hist); err != nil {
		h.logger.Warn().Err(err).Int("hand", summary.Number).Msg("Failed to write hand history")
	}
}

// boardStreets says which board cards are turned over before each betting round.
var boardStreets = [...][2]int{{0, 0}, {0, 3}, {3, 4}, {4, 5}}

func convertSummary(gameID string, s game.HandSummary, now time.Time) *handlog.HandHistory {
	n := len(s.Seats)
	hist := &handlog.HandHistory{
		Variant:           handlog.Variant,
		Table:             gameID,
		SeatCount:         n,
		Antes:             make([]int, n),
		BlindsOrStraddles: make([]int, n),
		MinBet:            s.BigBlind,
		StartingStacks:    make([]int, n),
		FinishingStacks:   make([]int, n),
		Winnings:          make([]int, n),
		Players:           make([]string, n),
		HandID:            fmt.Sprintf("%s-%d", gameID, s.Number),
		Metadata: map[string]any{
			"hand_number": s.Number,
			"start_pos":   s.StartPos,
		},
		Timestamp: now,
	}

	seatOf := make(map[string]int, n)
	showdown := false
	for i, seat := range s.Seats {
		seatOf[seat.Name] = i
		hist.Players[i] = seat.Name
		hist.StartingStacks[i] = seat.StartingStack
		hist.FinishingStacks[i] = seat.FinalStack
		hist.Winnings[i] = seat.Won
		hist.Actions = append(hist.Actions, handlog.DealHole(i, seat.Hole))
		if seat.Score != "" {
			showdown = true
		}
	}

	street := 0
	streetBets := make([]int, n)
	dealTo := func(round int) {
		for street < round && street+1 < len(boardStreets) {
			street++
			clear(streetBets)
			from, to := boardStreets[street][0], boardStreets[street][1]
			if to <= len(s.Board) {
				hist.Actions = append(hist.Actions, handlog.DealBoard(s.Board[from:to]))
			}
		}
	}

	for _, a := range s.Actions {
		i := seatOf[a.Player]
		dealTo(a.Round)
		switch a.Action {
		case "Blind":
			hist.BlindsOrStraddles[i] += a.Amount
			streetBets[i] += a.Amount
		case "Fold":
			hist.Actions = append(hist.Actions, handlog.Fold(i))
		case "Call":
			streetBets[i] += a.Amount
			hist.Actions = append(hist.Actions, handlog.CheckCall(i))
		case "Raise":
			streetBets[i] += a.Amount
			hist.Actions = append(hist.Actions, handlog.BetRaise(i, streetBets[i]))
		}
	}

	if showdown {
		dealTo(len(boardStreets) - 1)
		for i, seat := range s.Seats {
			if seat.Score != "" {
				hist.Actions = append(hist.Actions, handlog.ShowMuck(i, seat.Hole))
			}
		}
	}
	for i, seat := range s.Seats {
		if seat.Disconnected {
			hist.Actions = append(hist.Actions, handlog.Comment("p%d disconnected", i+1))
		}
	}
	return hist
}
