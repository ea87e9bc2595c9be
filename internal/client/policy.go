package client

import "github.com/lox/holdem-dealer/internal/protocol"

// Policy decides what to do when the dealer offers the action menu. The
// state must be treated as read-only.
type Policy interface {
	Decide(s *State, canRaise bool) protocol.Action
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(s *State, canRaise bool) protocol.Action

func (f PolicyFunc) Decide(s *State, canRaise bool) protocol.Action {
	return f(s, canRaise)
}
