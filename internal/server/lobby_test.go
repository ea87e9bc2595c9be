package server

import (
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-dealer/internal/game"
	"github.com/lox/holdem-dealer/internal/protocol"
)

// pipeListener hands out in-memory connections.
type pipeListener struct {
	conns chan io.ReadWriteCloser
}

func newPipeListener() *pipeListener {
	return &pipeListener{conns: make(chan io.ReadWriteCloser, 8)}
}

func (l *pipeListener) Accept(ctx context.Context) (io.ReadWriteCloser, error) {
	select {
	case c := <-l.conns:
		return c, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (l *pipeListener) Addr() net.Addr { return &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1)} }

func (l *pipeListener) Close() error { return nil }

func (l *pipeListener) dial() *protocol.Conn {
	a, b := net.Pipe()
	l.conns <- a
	return protocol.NewConn(b)
}

type gathered struct {
	players []*game.Player
	err     error
}

func gather(ctx context.Context, lobby *Lobby) chan gathered {
	done := make(chan gathered, 1)
	go func() {
		players, err := lobby.Gather(ctx)
		done <- gathered{players, err}
	}()
	return done
}

// exchange sends line and returns the dealer's reply.
func exchange(t *testing.T, ctx context.Context, c *protocol.Conn, line string) string {
	t.Helper()
	require.NoError(t, c.Send(line))
	reply, err := c.ReadLine(ctx)
	require.NoError(t, err)
	return reply
}

func readLine(t *testing.T, ctx context.Context, c *protocol.Conn) string {
	t.Helper()
	line, err := c.ReadLine(ctx)
	require.NoError(t, err)
	return line
}

func TestLobbyNegotiatesNames(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ln := newPipeListener()
	done := gather(ctx, NewLobby(ln, 2, 100, zerolog.Nop()))

	ann := ln.dial()
	defer ann.Close()
	assert.Equal(t, protocol.Welcome(1, 2), readLine(t, ctx, ann))
	assert.Equal(t, protocol.Greeting("ann"), exchange(t, ctx, ann, "ann"))

	bob := ln.dial()
	defer bob.Close()
	assert.Equal(t, protocol.Welcome(2, 2), readLine(t, ctx, bob))
	assert.Equal(t, protocol.NameTakenPrompt, exchange(t, ctx, bob, "ann"))
	assert.Equal(t, protocol.NameInvalidPrompt, exchange(t, ctx, bob, "big bob"))
	assert.Equal(t, protocol.NameInvalidPrompt, exchange(t, ctx, bob, "bob,jr"))
	assert.Equal(t, protocol.NameInvalidPrompt, exchange(t, ctx, bob, ""))
	assert.Equal(t, protocol.NameReservedPrompt, exchange(t, ctx, bob, "You"))
	assert.Equal(t, protocol.NameReservedPrompt, exchange(t, ctx, bob, "error"))
	assert.Equal(t, protocol.Greeting("bob"), exchange(t, ctx, bob, "  bob  "))

	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.players, 2)
	assert.Equal(t, "ann", res.players[0].Name)
	assert.Equal(t, 0, res.players[0].ID)
	assert.Equal(t, "bob", res.players[1].Name)
	assert.Equal(t, 1, res.players[1].ID)
	assert.Equal(t, 100, res.players[1].Holdings)
}

func TestLobbyReusesSeatOfDroppedConnection(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	ln := newPipeListener()
	done := gather(ctx, NewLobby(ln, 1, 50, zerolog.Nop()))

	quitter := ln.dial()
	assert.Equal(t, protocol.Welcome(1, 1), readLine(t, ctx, quitter))
	require.NoError(t, quitter.Close())

	cat := ln.dial()
	defer cat.Close()
	assert.Equal(t, protocol.Welcome(1, 1), readLine(t, ctx, cat))
	assert.Equal(t, protocol.Greeting("cat"), exchange(t, ctx, cat, "cat"))

	res := <-done
	require.NoError(t, res.err)
	require.Len(t, res.players, 1)
	assert.Equal(t, "cat", res.players[0].Name)
}

func TestLobbyCancelledClosesSeatedPlayers(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ln := newPipeListener()
	done := gather(ctx, NewLobby(ln, 3, 100, zerolog.Nop()))

	readCtx, readCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer readCancel()

	ann := ln.dial()
	defer ann.Close()
	readLine(t, readCtx, ann)
	assert.Equal(t, protocol.Greeting("ann"), exchange(t, readCtx, ann, "ann"))

	cancel()
	res := <-done
	require.ErrorIs(t, res.err, context.Canceled)

	_, err := ann.ReadLine(readCtx)
	require.ErrorIs(t, err, protocol.ErrClosed)
}
