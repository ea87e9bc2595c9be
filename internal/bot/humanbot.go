package bot

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

// HumanBot asks a person at the terminal.
type HumanBot struct {
	rl *readline.Instance
}

// NewHumanBot opens a readline prompt. A nil config uses the terminal.
func NewHumanBot(cfg *readline.Config) (*HumanBot, error) {
	if cfg == nil {
		cfg = &readline.Config{}
	}
	if cfg.Prompt == "" {
		cfg.Prompt = "holdem> "
	}
	if cfg.AutoComplete == nil {
		cfg.AutoComplete = readline.NewPrefixCompleter(
			readline.PcItem("fold"),
			readline.PcItem("call"),
			readline.PcItem("raise"),
			readline.PcItem("allin"),
		)
	}
	cfg.InterruptPrompt = "^C"
	cfg.EOFPrompt = "fold"

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, fmt.Errorf("opening terminal: %w", err)
	}
	return &HumanBot{rl: rl}, nil
}

// Close releases the terminal.
func (h *HumanBot) Close() error {
	return h.rl.Close()
}

// Decide shows the table and reads a command. End of input folds.
func (h *HumanBot) Decide(s *client.State, canRaise bool) protocol.Action {
	out := h.rl.Stdout()
	writeTable(out, s, canRaise)

	for {
		line, err := h.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			fmt.Fprintln(out, "Type 'fold' to give up the hand")
			continue
		}
		if err != nil {
			return protocol.FoldAction()
		}

		action, err := parseCommand(line, s, canRaise)
		if err != nil {
			fmt.Fprintf(out, "%v\n", err)
			continue
		}
		return action
	}
}

func writeTable(w io.Writer, s *client.State, canRaise bool) {
	me := s.Me()
	fmt.Fprintf(w, "\nHand %d  hole: %s", s.HandNumber, poker.FormatCards(s.Hand))
	if len(s.Community) > 0 {
		fmt.Fprintf(w, "  board: %s", poker.FormatCards(s.Community))
	}
	fmt.Fprintf(w, "\nPot %d, to call %d, your bet %d, holdings %d\n", s.Pot, s.ToCall(), me.Bet, me.Holdings)
	for _, p := range s.Opponents() {
		status := ""
		if p.Folded {
			status = " (folded)"
		}
		fmt.Fprintf(w, "  %-12s bet %-5d holdings %d%s\n", p.Name, p.Bet, p.Holdings, status)
	}
	if canRaise {
		fmt.Fprintln(w, "fold | call | raise <n> | allin")
	} else {
		fmt.Fprintln(w, "fold | call")
	}
}

// parseCommand accepts the wire actions plus short aliases.
func parseCommand(line string, s *client.State, canRaise bool) (protocol.Action, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return protocol.Action{}, errors.New("enter an action")
	}

	switch fields[0] {
	case "f", "fold":
		return protocol.FoldAction(), nil
	case "c", "call", "check":
		return protocol.CallAction(), nil
	case "a", "allin":
		if !canRaise || raiseRoom(s) <= 0 {
			return protocol.Action{}, errors.New("you cannot raise")
		}
		return protocol.RaiseAction(raiseRoom(s)), nil
	case "r", "raise":
		if !canRaise {
			return protocol.Action{}, errors.New("you cannot raise")
		}
		if len(fields) < 2 {
			return protocol.Action{}, errors.New("raise by how much?")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n <= 0 {
			return protocol.Action{}, fmt.Errorf("invalid raise amount %q", fields[1])
		}
		return protocol.RaiseAction(n), nil
	}
	return protocol.Action{}, fmt.Errorf("unknown command %q", fields[0])
}
