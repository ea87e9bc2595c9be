package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

func applyAll(t *testing.T, s *State, lines ...string) []Event {
	t.Helper()
	events := make([]Event, 0, len(lines))
	for _, line := range lines {
		ev, err := s.Apply(line)
		require.NoError(t, err, "line %q", line)
		events = append(events, ev)
	}
	return events
}

func joinedState(t *testing.T) *State {
	t.Helper()
	s := NewState()
	events := applyAll(t, s,
		protocol.Welcome(2, 3),
		protocol.Greeting("bob"),
	)
	require.Equal(t, EventNameRequested, events[0].Kind)
	require.Equal(t, EventJoined, events[1].Kind)
	return s
}

func TestStateFollowsHand(t *testing.T) {
	t.Parallel()

	s := joinedState(t)
	assert.Equal(t, "bob", s.Name)
	assert.Equal(t, 2, s.Seat)
	assert.Equal(t, 3, s.Seats)

	applyAll(t, s,
		"---- New Hand :: Round 1 ----",
		"The following players are still in: ann, bob, cat",
		"Money left",
		"ann: 100",
		"You: 100",
		"cat: 100",
		"Hand",
		"Ace of spades, King of spades",
		"Big blind is 10",
		"Small blind is 5",
		"You are small blind",
		"cat is big blind",
		"Opponent action: ann Raised by 20 to 30",
		"Current pot: 45",
		"Current pot bet: 30",
		"Your current bet: 5",
		"Your holdings: 95",
	)

	assert.Equal(t, 1, s.HandNumber)
	assert.Equal(t, []string{"ann", "bob", "cat"}, s.Order)
	assert.Equal(t, "Ace of spades, King of spades", poker.FormatCards(s.Hand))
	assert.Equal(t, 30, s.Players["ann"].Bet)
	assert.Equal(t, 70, s.Players["ann"].Holdings)
	assert.Equal(t, 10, s.Players["cat"].Bet)
	assert.Equal(t, 25, s.ToCall())

	ev, err := s.Apply("Fold/Call/Raise")
	require.NoError(t, err)
	assert.Equal(t, Event{Kind: EventPrompt, CanRaise: true}, ev)

	s.Sent(protocol.CallAction())
	ev, err = s.Apply("SUCCESS")
	require.NoError(t, err)
	assert.Equal(t, EventAccepted, ev.Kind)
	assert.Equal(t, 30, s.Me().Bet)
	assert.Equal(t, 70, s.Me().Holdings)
	assert.Equal(t, []string{"Call"}, s.Me().Actions)

	applyAll(t, s,
		"Opponent action: cat Called",
		"Reveal 3",
		"2 of hearts, 7 of clubs, Jack of diamonds",
		"Opponent action: ann Folded",
	)
	assert.Equal(t, 30, s.Players["cat"].Bet)
	assert.Equal(t, 90, s.Pot)
	assert.Len(t, s.Community, 3)
	assert.True(t, s.Players["ann"].Folded)
	assert.Equal(t, []string{"Raised by 20 to 30", "Folded"}, s.Players["ann"].Actions)

	ev, err = s.Apply("Fold/Call")
	require.NoError(t, err)
	assert.Equal(t, Event{Kind: EventPrompt}, ev)
	s.Sent(protocol.RaiseAction(10))
	ev, err = s.Apply("ERROR: Invalid command")
	require.NoError(t, err)
	assert.Equal(t, Event{Kind: EventRejected, Reason: "Invalid command"}, ev)
	assert.Equal(t, "Invalid command", s.LastError)
	assert.Equal(t, 30, s.Me().Bet, "a rejected action changes nothing")

	applyAll(t, s,
		"Reveal 1",
		"3 of hearts",
		"Reveal 1",
		"4 of hearts",
		"Results [2]",
		"You got High card: Ace of spades",
		"cat got One pair: 7 of hearts, 7 of clubs",
		"Pots [1]",
		"cat win 30 bet pot worth 90 giving 90 each",
		"Winnings",
		"In total ann won 0",
		"In total you won 0",
		"In total cat won 90",
	)
	assert.Len(t, s.Community, 5)
	assert.Equal(t, "High card: Ace of spades", s.Me().Score)
	assert.Equal(t, "One pair: 7 of hearts, 7 of clubs", s.Players["cat"].Score)
	require.Len(t, s.PotWins, 1)
	assert.Equal(t, PotWin{Winners: []string{"cat"}, Level: 30, Amount: 90, Share: 90}, s.PotWins[0])
	assert.Equal(t, 160, s.Players["cat"].Holdings)

	applyAll(t, s, "---- New Hand :: Round 2 ----")
	assert.Equal(t, 2, s.HandNumber)
	assert.Nil(t, s.Hand)
	assert.Empty(t, s.Community)
	assert.Zero(t, s.Pot)
	assert.False(t, s.Players["ann"].Folded, "per-hand fields reset")
	assert.Zero(t, s.Players["cat"].Bet)
	assert.Equal(t, 160, s.Players["cat"].Holdings, "holdings survive the reset")
	assert.Equal(t, 70, s.Me().Holdings)
	assert.Equal(t, "bob", s.Name)
}

func TestStateEndOfGame(t *testing.T) {
	t.Parallel()

	s := joinedState(t)
	events := applyAll(t, s, "You ran out of money", "Goodbye")
	assert.True(t, s.Eliminated)
	assert.Equal(t, EventGameOver, events[1].Kind)

	s = joinedState(t)
	applyAll(t, s, "YOU ARE THE CHAMPION")
	assert.True(t, s.Champion)
}

func TestStateDropsEliminatedPlayers(t *testing.T) {
	t.Parallel()

	s := joinedState(t)
	applyAll(t, s, "The following players are still in: ann, bob, cat")
	applyAll(t, s, "The following players are still in: bob, cat")
	assert.NotContains(t, s.Players, "ann")
	require.Len(t, s.Opponents(), 1)
	assert.Equal(t, "cat", s.Opponents()[0].Name)
}

func TestStateNameNegotiation(t *testing.T) {
	t.Parallel()

	s := NewState()
	for _, line := range []string{
		protocol.Welcome(1, 2),
		protocol.NameTakenPrompt,
		protocol.NameInvalidPrompt,
		protocol.NameReservedPrompt,
	} {
		ev, err := s.Apply(line)
		require.NoError(t, err)
		assert.Equal(t, EventNameRequested, ev.Kind, line)
	}
}

func TestStateRejectsUnknownMessages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		lines []string
	}{
		{"garbage", []string{"The dealer is on a break"}},
		{"unknown opponent", []string{"Opponent action: zed Called"}},
		{"unknown verb", []string{"The following players are still in: ann, bob", "Opponent action: ann Checked"}},
		{"holdings for stranger", []string{"zed: 100"}},
		{"bad hole cards", []string{"Hand", "Ace of cups, 2 of spades"}},
		{"short reveal", []string{"Reveal 3", "2 of hearts, 3 of hearts"}},
		{"bad reveal count", []string{"Reveal x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := joinedState(t)
			var err error
			for _, line := range tt.lines {
				if _, err = s.Apply(line); err != nil {
					break
				}
			}
			var unrecognized *UnrecognizedMessageError
			require.ErrorAs(t, err, &unrecognized)
			assert.Equal(t, tt.lines[len(tt.lines)-1], unrecognized.Line)
		})
	}
}
