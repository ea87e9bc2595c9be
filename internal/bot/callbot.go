package bot

import (
	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
)

// CallBot calls every bet to showdown.
type CallBot struct{}

// NewCallBot creates a new CallBot instance
func NewCallBot() *CallBot {
	return &CallBot{}
}

func (*CallBot) Decide(*client.State, bool) protocol.Action {
	return protocol.CallAction()
}
