package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-dealer/internal/protocol"
	"github.com/lox/holdem-dealer/poker"
)

// dealerScript plays the dealer's side of a session and records what the
// client sent.
type dealerScript struct {
	conn *protocol.Conn
	ctx  context.Context
	got  []string
}

func (d *dealerScript) send(lines ...string) error {
	for _, line := range lines {
		if err := d.conn.Send(line); err != nil {
			return err
		}
	}
	return nil
}

func (d *dealerScript) read() (string, error) {
	line, err := d.conn.ReadLine(d.ctx)
	if err == nil {
		d.got = append(d.got, line)
	}
	return line, err
}

// runSession connects a client to a scripted dealer and returns the client's
// result along with everything it sent.
func runSession(t *testing.T, name string, policy Policy, script func(d *dealerScript) error, opts ...Option) (*Client, []string, error) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	a, b := net.Pipe()
	d := &dealerScript{conn: protocol.NewConn(a), ctx: ctx}
	playerConn := protocol.NewConn(b)
	defer d.conn.Close()
	defer playerConn.Close()

	dealerErr := make(chan error, 1)
	go func() { dealerErr <- script(d) }()

	c := New(playerConn, name, policy, opts...)
	runErr := c.Run(ctx)
	require.NoError(t, <-dealerErr)
	return c, d.got, runErr
}

func raising(amount int) Policy {
	return PolicyFunc(func(*State, bool) protocol.Action { return protocol.RaiseAction(amount) })
}

func openHand(d *dealerScript, me string) error {
	return d.send(
		protocol.HandBanner(1),
		protocol.StillIn([]string{"ann", me}),
		protocol.MoneyLeft,
		protocol.Holdings("ann", 100),
		protocol.OwnHoldings(100),
		protocol.HoleCards([]poker.Card{poker.NewCard(poker.Ace, poker.Spades), poker.NewCard(poker.King, poker.Spades)}),
		protocol.BigBlindIs(10),
		protocol.SmallBlindIs(0),
		protocol.YouNotBlind,
		protocol.PlayerBigBlind("ann"),
		protocol.Status(10, 10, 0, 100),
	)
}

func TestClientRenamesAfterRejectedName(t *testing.T) {
	t.Parallel()

	c, got, err := runSession(t, "bob", raising(5), func(d *dealerScript) error {
		if err := d.send(protocol.Welcome(2, 2)); err != nil {
			return err
		}
		if _, err := d.read(); err != nil {
			return err
		}
		if err := d.send(protocol.NameTakenPrompt); err != nil {
			return err
		}
		name, err := d.read()
		if err != nil {
			return err
		}
		return d.send(protocol.Greeting(name), protocol.Goodbye)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "bob-2"}, got)
	assert.Equal(t, "bob-2", c.State().Name)
	assert.Equal(t, 2, c.State().Seat)
}

func TestClientReportsJoinOnce(t *testing.T) {
	t.Parallel()

	var joined []string
	_, _, err := runSession(t, "bob", raising(5), func(d *dealerScript) error {
		if err := d.send(protocol.Welcome(1, 2)); err != nil {
			return err
		}
		if _, err := d.read(); err != nil {
			return err
		}
		if err := d.send(protocol.NameTakenPrompt); err != nil {
			return err
		}
		name, err := d.read()
		if err != nil {
			return err
		}
		return d.send(protocol.Greeting(name), protocol.Goodbye)
	}, WithOnJoined(func(s *State) { joined = append(joined, s.Name) }))
	require.NoError(t, err)
	assert.Equal(t, []string{"bob-2"}, joined)
}

func TestClientSanitizesName(t *testing.T) {
	t.Parallel()

	_, got, err := runSession(t, " big, bob ", raising(5), func(d *dealerScript) error {
		if err := d.send(protocol.Welcome(1, 2)); err != nil {
			return err
		}
		name, err := d.read()
		if err != nil {
			return err
		}
		return d.send(protocol.Greeting(name), protocol.Goodbye)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"big__bob"}, got)
}

func TestClientFallsBackToCallAfterRejection(t *testing.T) {
	t.Parallel()

	c, got, err := runSession(t, "bob", raising(500), func(d *dealerScript) error {
		if err := d.send(protocol.Welcome(2, 2)); err != nil {
			return err
		}
		if _, err := d.read(); err != nil {
			return err
		}
		if err := d.send(protocol.Greeting("bob")); err != nil {
			return err
		}
		if err := openHand(d, "bob"); err != nil {
			return err
		}
		if err := d.send(protocol.Menu(true)); err != nil {
			return err
		}
		if _, err := d.read(); err != nil {
			return err
		}
		if err := d.send(protocol.Error("not enough money to raise by 500"), protocol.Menu(true)); err != nil {
			return err
		}
		if _, err := d.read(); err != nil {
			return err
		}
		return d.send(protocol.Success, protocol.Goodbye)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "Raise 500", "Call"}, got)
	assert.Equal(t, 10, c.State().Me().Bet)
	assert.Equal(t, 90, c.State().Me().Holdings)
	assert.Equal(t, "not enough money to raise by 500", c.State().LastError)
}

func TestClientCallsWhenRaiseNotOffered(t *testing.T) {
	t.Parallel()

	_, got, err := runSession(t, "bob", raising(5), func(d *dealerScript) error {
		if err := d.send(protocol.Welcome(2, 2)); err != nil {
			return err
		}
		if _, err := d.read(); err != nil {
			return err
		}
		if err := d.send(protocol.Greeting("bob")); err != nil {
			return err
		}
		if err := openHand(d, "bob"); err != nil {
			return err
		}
		if err := d.send(protocol.Menu(false)); err != nil {
			return err
		}
		if _, err := d.read(); err != nil {
			return err
		}
		return d.send(protocol.Success, protocol.Goodbye)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"bob", "Call"}, got)
}

func TestClientStopsOnUnrecognizedMessage(t *testing.T) {
	t.Parallel()

	_, _, err := runSession(t, "bob", raising(5), func(d *dealerScript) error {
		return d.send(protocol.Welcome(1, 2)+"!", protocol.Goodbye)
	})
	var unrecognized *UnrecognizedMessageError
	require.ErrorAs(t, err, &unrecognized)
}

func TestClientReportsLostConnection(t *testing.T) {
	t.Parallel()

	_, _, err := runSession(t, "bob", raising(5), func(d *dealerScript) error {
		if err := d.send(protocol.Welcome(1, 2)); err != nil {
			return err
		}
		if _, err := d.read(); err != nil {
			return err
		}
		return d.conn.Close()
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, protocol.ErrClosed), "got %v", err)
}
