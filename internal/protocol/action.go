package protocol

import (
	"errors"
	"strconv"
	"strings"
)

// ActionKind is what a player chose to do.
type ActionKind int

const (
	Fold ActionKind = iota
	Call
	Raise
)

func (k ActionKind) String() string {
	return [...]string{"Fold", "Call", "Raise"}[k]
}

// Action is a player's reply to the action menu. Amount is only used for raises
// and is the amount on top of the call.
type Action struct {
	Kind   ActionKind
	Amount int
}

// FoldAction, CallAction and RaiseAction build actions.
func FoldAction() Action { return Action{Kind: Fold} }
func CallAction() Action { return Action{Kind: Call} }
func RaiseAction(amount int) Action { return Action{Kind: Raise, Amount: amount} }

// String renders the action as the player sends it.
func (a Action) String() string {
	if a.Kind == Raise {
		return "Raise " + strconv.Itoa(a.Amount)
	}
	return a.Kind.String()
}

// Reasons returned by ParseAction. They are sent back verbatim after "ERROR: ".
var (
	ErrInvalidCommand   = errors.New("Invalid command")
	ErrNoRaiseAmount    = errors.New("there is no amount to raise by")
	ErrRaiseNotNumber   = errors.New("raise amount must be a number")
	ErrRaiseNotPositive = errors.New("raise amount must be positive")
)

// ParseAction parses "Fold", "Call" or "Raise <n>".
func ParseAction(line string) (Action, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "Fold":
		return FoldAction(), nil
	case line == "Call":
		return CallAction(), nil
	case strings.HasPrefix(line, "Raise"):
		fields := strings.Split(line, " ")
		if fields[0] != "Raise" {
			return Action{}, ErrInvalidCommand
		}
		if len(fields) != 2 {
			return Action{}, ErrNoRaiseAmount
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil {
			return Action{}, ErrRaiseNotNumber
		}
		if n <= 0 {
			return Action{}, ErrRaiseNotPositive
		}
		return RaiseAction(n), nil
	default:
		return Action{}, ErrInvalidCommand
	}
}
