package game

import (
	"errors"
	"fmt"
)

var (
	// ErrIllegalAction matches every *ActionError.
	ErrIllegalAction = errors.New("game: illegal action")
	// ErrInvalidConfig matches every *InvalidConfigError.
	ErrInvalidConfig = errors.New("game: invalid configuration")
	// ErrActionTimeout is the cause recorded when a player does not answer in time.
	ErrActionTimeout = errors.New("game: action timed out")
)

// ActionError rejects one player's action. The hand carries on and the same
// decision is offered again; Reason is what the player sees after "ERROR: ".
type ActionError struct {
	Player string
	Reason string
}

func (e *ActionError) Error() string { return e.Reason }

func (e *ActionError) Is(target error) bool { return target == ErrIllegalAction }

// InvalidConfigError reports blind or seating parameters the engine cannot run with.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

func (e *InvalidConfigError) Unwrap() error { return ErrInvalidConfig }
