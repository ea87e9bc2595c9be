package client

import (
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

// EventKind says what a reduced line asks of the client.
type EventKind int

const (
	EventNone EventKind = iota
	// EventNameRequested asks for a (possibly different) name.
	EventNameRequested
	// EventJoined confirms the name; State.Name is set.
	EventJoined
	// EventPrompt asks for an action. Event.CanRaise says whether Raise is offered.
	EventPrompt
	// EventAccepted acknowledges the last action.
	EventAccepted
	// EventRejected refuses the last action; the prompt is repeated next.
	EventRejected
	// EventGameOver ends the session.
	EventGameOver
)

func (k EventKind) String() string {
	return [...]string{"none", "name requested", "joined", "prompt", "accepted", "rejected", "game over"}[k]
}

// Event is the result of applying one line.
type Event struct {
	Kind     EventKind
	CanRaise bool
	Reason   string
}

// UnrecognizedMessageError is returned for a line the reducer cannot classify.
// It means client and dealer disagree about the protocol.
type UnrecognizedMessageError struct {
	Line string
	Err  error
}

func (e *UnrecognizedMessageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("unrecognized message %q: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("unrecognized message %q", e.Line)
}

func (e *UnrecognizedMessageError) Unwrap() error { return e.Err }

// PlayerState is what the client knows about one seated player.
type PlayerState struct {
	Name     string
	Holdings int // chips behind
	Bet      int // cumulative this hand
	Folded   bool
	Actions  []string // this hand, as announced
	Score    string
	Won      int
}

type pending int

const (
	pendingNone pending = iota
	pendingHand
	pendingReveal
)

var (
	bannerRe   = regexp.MustCompile(`^---- New Hand :: Round (\d+) ----$`)
	welcomeRe  = regexp.MustCompile(`^Welcome to the poker lobby\. You are player (\d+) of (\d+)\. Please enter name:$`)
	greetingRe = regexp.MustCompile(`^Hi (\S+), please wait to be dealt your hand$`)
	holdingsRe = regexp.MustCompile(`^(\S+): (\d+)$`)
	blindRe    = regexp.MustCompile(`^(\S+) is (big|small) blind$`)
	raisedRe   = regexp.MustCompile(`^Raised by (\d+) to (\d+)$`)
	scoreRe    = regexp.MustCompile(`^(\S+) got (.+)$`)
	potWinRe   = regexp.MustCompile(`^(.+) win (\d+) bet pot worth (\d+) giving (\d+) each$`)
	wonRe      = regexp.MustCompile(`^In total (\S+) won (\d+)$`)
	countRe    = regexp.MustCompile(`^(?:Results|Pots) \[(\d+)\]$`)
)

// PotWin is one announced pot payout.
type PotWin struct {
	Winners []string
	Level   int
	Amount  int
	Share   int
}

// State replays the dealer's messages into a view of the table. It is a pure
// reducer: Apply is the only way it changes and it never does I/O.
type State struct {
	Name       string
	Seat       int
	Seats      int
	HandNumber int
	Hand       []poker.Card
	Community  []poker.Card
	Order      []string
	Players    map[string]*PlayerState
	Pot        int
	PotBet     int
	BigBlind   int
	SmallBlind int
	LastError  string
	PotWins    []PotWin
	Eliminated bool
	Champion   bool

	pending    pending
	pendingN   int
	lastAction *protocol.Action
}

// NewState returns an empty state.
func NewState() *State {
	return &State{Players: make(map[string]*PlayerState)}
}

// Me returns the client's own player, creating it if needed.
func (s *State) Me() *PlayerState {
	return s.player(s.Name)
}

// ToCall is how much more the client must put in to match the pot bet.
func (s *State) ToCall() int {
	return max(0, s.PotBet-s.Me().Bet)
}

// Opponents returns the other players in seat order.
func (s *State) Opponents() []*PlayerState {
	var out []*PlayerState
	for _, name := range s.Order {
		if name != s.Name {
			out = append(out, s.player(name))
		}
	}
	return out
}

// Sent records the action the client is about to send so that it can be
// applied when the dealer acknowledges it.
func (s *State) Sent(a protocol.Action) {
	s.lastAction = &a
}

func (s *State) player(name string) *PlayerState {
	p, ok := s.Players[name]
	if !ok {
		p = &PlayerState{Name: name}
		s.Players[name] = p
	}
	return p
}

func (s *State) known(name string) bool {
	return slices.Contains(s.Order, name)
}

// wager moves up to amount from p's holdings into the pot.
func (s *State) wager(p *PlayerState, amount int) {
	amount = min(amount, p.Holdings)
	if amount < 0 {
		amount = 0
	}
	p.Holdings -= amount
	p.Bet += amount
	s.Pot += amount
	s.PotBet = max(s.PotBet, p.Bet)
}

func (s *State) resetHand(number int) {
	s.HandNumber = number
	s.Hand = nil
	s.Community = nil
	s.Pot = 0
	s.PotBet = 0
	s.LastError = ""
	s.PotWins = nil
	s.lastAction = nil
	for _, p := range s.Players {
		p.Bet = 0
		p.Folded = false
		p.Actions = nil
		p.Score = ""
		p.Won = 0
	}
}

// Apply reduces one line from the dealer.
func (s *State) Apply(line string) (Event, error) {
	none := Event{Kind: EventNone}
	unrecognized := func(err error) (Event, error) {
		return none, &UnrecognizedMessageError{Line: line, Err: err}
	}

	switch s.pending {
	case pendingHand:
		s.pending = pendingNone
		cards, err := poker.ParseCards(line)
		if err != nil {
			return unrecognized(err)
		}
		if len(cards) != 2 {
			return unrecognized(fmt.Errorf("expected 2 hole cards, got %d", len(cards)))
		}
		s.Hand = cards
		return none, nil
	case pendingReveal:
		s.pending = pendingNone
		cards, err := poker.ParseCards(line)
		if err != nil {
			return unrecognized(err)
		}
		if len(cards) != s.pendingN {
			return unrecognized(fmt.Errorf("expected %d revealed cards, got %d", s.pendingN, len(cards)))
		}
		s.Community = append(s.Community, cards...)
		return none, nil
	}

	switch line {
	case protocol.NameTakenPrompt, protocol.NameInvalidPrompt, protocol.NameReservedPrompt:
		return Event{Kind: EventNameRequested}, nil
	case protocol.MoneyLeft, protocol.YouNotBlind, protocol.FoldedCannotBet,
		protocol.BrokeCannotBet, protocol.WinningsHeader:
		return none, nil
	case protocol.HandHeader:
		s.pending = pendingHand
		return none, nil
	case protocol.YouBigBlind:
		s.wager(s.Me(), s.BigBlind)
		return none, nil
	case protocol.YouSmallBlind:
		s.wager(s.Me(), s.SmallBlind)
		return none, nil
	case protocol.Menu(false), protocol.Menu(true):
		return Event{Kind: EventPrompt, CanRaise: line == protocol.Menu(true)}, nil
	case protocol.Success:
		s.applyOwn()
		return Event{Kind: EventAccepted}, nil
	case protocol.OutOfMoney:
		s.Eliminated = true
		return none, nil
	case protocol.Champion:
		s.Champion = true
		return none, nil
	case protocol.Goodbye:
		return Event{Kind: EventGameOver}, nil
	}

	if m := welcomeRe.FindStringSubmatch(line); m != nil {
		s.Seat, _ = strconv.Atoi(m[1])
		s.Seats, _ = strconv.Atoi(m[2])
		return Event{Kind: EventNameRequested}, nil
	}
	if m := greetingRe.FindStringSubmatch(line); m != nil {
		s.Name = m[1]
		s.player(s.Name)
		return Event{Kind: EventJoined}, nil
	}
	if m := bannerRe.FindStringSubmatch(line); m != nil {
		n, _ := strconv.Atoi(m[1])
		s.resetHand(n)
		return none, nil
	}
	if rest, ok := strings.CutPrefix(line, protocol.StillInPrefix); ok {
		s.Order = strings.Split(rest, ", ")
		for name := range s.Players {
			if !s.known(name) && name != s.Name {
				delete(s.Players, name)
			}
		}
		for _, name := range s.Order {
			s.player(name)
		}
		return none, nil
	}
	if rest, ok := strings.CutPrefix(line, protocol.ErrorPrefix); ok {
		s.LastError = rest
		s.lastAction = nil
		return Event{Kind: EventRejected, Reason: rest}, nil
	}
	if rest, ok := strings.CutPrefix(line, protocol.OpponentPrefix); ok {
		if err := s.applyOpponent(rest); err != nil {
			return unrecognized(err)
		}
		return none, nil
	}
	if rest, ok := strings.CutPrefix(line, protocol.RevealPrefix); ok {
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 {
			return unrecognized(err)
		}
		s.pending, s.pendingN = pendingReveal, n
		return none, nil
	}
	if m := countRe.FindStringSubmatch(line); m != nil {
		return none, nil
	}

	for _, field := range []struct {
		prefix string
		dst    *int
	}{
		{protocol.YouPrefix, &s.Me().Holdings},
		{protocol.BigBlindPrefix, &s.BigBlind},
		{protocol.SmallBlindPrefix, &s.SmallBlind},
		{protocol.CurrentPot, &s.Pot},
		{protocol.CurrentPotBet, &s.PotBet},
		{protocol.YourCurrentBet, &s.Me().Bet},
		{protocol.YourHoldings, &s.Me().Holdings},
		{protocol.YouWonPrefix, &s.Me().Won},
	} {
		if rest, ok := strings.CutPrefix(line, field.prefix); ok {
			n, err := strconv.Atoi(rest)
			if err != nil {
				return unrecognized(err)
			}
			*field.dst = n
			if field.prefix == protocol.YouWonPrefix {
				s.Me().Holdings += n
			}
			return none, nil
		}
	}

	if rest, ok := strings.CutPrefix(line, protocol.YouGotPrefix); ok {
		s.Me().Score = rest
		return none, nil
	}
	if m := blindRe.FindStringSubmatch(line); m != nil && s.known(m[1]) {
		blind := s.SmallBlind
		if m[2] == "big" {
			blind = s.BigBlind
		}
		s.wager(s.player(m[1]), blind)
		return none, nil
	}
	if m := wonRe.FindStringSubmatch(line); m != nil && s.known(m[1]) {
		n, _ := strconv.Atoi(m[2])
		p := s.player(m[1])
		p.Won = n
		p.Holdings += n
		return none, nil
	}
	if m := potWinRe.FindStringSubmatch(line); m != nil {
		win := PotWin{Winners: strings.Split(m[1], ", ")}
		win.Level, _ = strconv.Atoi(m[2])
		win.Amount, _ = strconv.Atoi(m[3])
		win.Share, _ = strconv.Atoi(m[4])
		s.PotWins = append(s.PotWins, win)
		return none, nil
	}
	if m := scoreRe.FindStringSubmatch(line); m != nil && s.known(m[1]) {
		s.player(m[1]).Score = m[2]
		return none, nil
	}
	if m := holdingsRe.FindStringSubmatch(line); m != nil && s.known(m[1]) {
		n, _ := strconv.Atoi(m[2])
		s.player(m[1]).Holdings = n
		return none, nil
	}
	return unrecognized(nil)
}

// applyOwn applies the acknowledged action to the client's own player.
func (s *State) applyOwn() {
	if s.lastAction == nil {
		return
	}
	a := *s.lastAction
	s.lastAction = nil
	me := s.Me()
	switch a.Kind {
	case protocol.Fold:
		me.Folded = true
	case protocol.Call:
		s.wager(me, s.ToCall())
	case protocol.Raise:
		s.wager(me, s.ToCall()+a.Amount)
	}
	me.Actions = append(me.Actions, a.String())
}

func (s *State) applyOpponent(rest string) error {
	name, what, ok := strings.Cut(rest, " ")
	if !ok || !s.known(name) {
		return fmt.Errorf("unknown player in %q", rest)
	}
	p := s.player(name)
	switch {
	case what == protocol.Folded:
		p.Folded = true
	case what == protocol.Called:
		s.wager(p, s.PotBet-p.Bet)
	default:
		m := raisedRe.FindStringSubmatch(what)
		if m == nil {
			return fmt.Errorf("unknown action %q", what)
		}
		to, _ := strconv.Atoi(m[2])
		s.wager(p, to-p.Bet)
	}
	p.Actions = append(p.Actions, what)
	return nil
}
