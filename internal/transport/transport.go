// Package transport carries the dealer's line protocol over plain TCP or
// WebSocket. Either way a session is an io.ReadWriteCloser that
// protocol.NewConn can frame.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/gorilla/websocket"
)

// Kind names a transport in configuration.
type Kind string

const (
	TCP       Kind = "tcp"
	WebSocket Kind = "websocket"
)

// ParseKind validates a transport name. Empty means TCP.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case "", TCP:
		return TCP, nil
	case WebSocket:
		return WebSocket, nil
	}
	return "", fmt.Errorf("unknown transport %q (want tcp or websocket)", s)
}

// Listener hands out player sessions.
type Listener interface {
	Accept(ctx context.Context) (io.ReadWriteCloser, error)
	Addr() net.Addr
	Close() error
}

// Listen opens a listener of the given kind on addr.
func Listen(kind Kind, addr string) (Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listening on %s: %w", addr, err)
	}
	switch kind {
	case TCP:
		return &tcpListener{ln: ln}, nil
	case WebSocket:
		return newWSListener(ln), nil
	}
	ln.Close()
	return nil, fmt.Errorf("unknown transport %q", kind)
}

// Dial connects to a dealer.
func Dial(ctx context.Context, kind Kind, addr string) (io.ReadWriteCloser, error) {
	switch kind {
	case TCP:
		var d net.Dialer
		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			return nil, fmt.Errorf("dialing %s: %w", addr, err)
		}
		return conn, nil
	case WebSocket:
		ws, _, err := websocket.DefaultDialer.DialContext(ctx, "ws://"+addr+Path, nil)
		if err != nil {
			return nil, fmt.Errorf("dialing %s: %w", addr, err)
		}
		return newWSConn(ws), nil
	}
	return nil, fmt.Errorf("unknown transport %q", kind)
}

type tcpListener struct {
	ln net.Listener
}

func (l *tcpListener) Addr() net.Addr { return l.ln.Addr() }

func (l *tcpListener) Close() error { return l.ln.Close() }

// Accept waits for the next connection. Temporary failures are retried with
// a growing delay capped at one second; cancelling ctx closes the listener.
func (l *tcpListener) Accept(ctx context.Context) (io.ReadWriteCloser, error) {
	stop := context.AfterFunc(ctx, func() { l.ln.Close() })
	defer stop()

	var tempDelay time.Duration
	for {
		conn, err := l.ln.Accept()
		if err == nil {
			return conn, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var ne net.Error
		if errors.As(err, &ne) && ne.Timeout() {
			if tempDelay == 0 {
				tempDelay = 5 * time.Millisecond
			} else {
				tempDelay *= 2
			}
			tempDelay = min(tempDelay, time.Second)
			time.Sleep(tempDelay)
			continue
		}
		return nil, err
	}
}
