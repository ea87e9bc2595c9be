package bot

import (
	"github.com/lox/holdem-dealer/internal/client"
	"github.com/lox/holdem-dealer/internal/protocol"
)

// FoldBot folds to any bet, and checks (calls nothing) when it can.
type FoldBot struct{}

// NewFoldBot creates a new FoldBot instance
func NewFoldBot() *FoldBot {
	return &FoldBot{}
}

func (*FoldBot) Decide(s *client.State, _ bool) protocol.Action {
	if s.ToCall() == 0 {
		return protocol.CallAction()
	}
	return protocol.FoldAction()
}
