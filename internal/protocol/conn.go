package protocol

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrClosed is returned by ReadLine once the stream has ended.
var ErrClosed = errors.New("connection closed")

type lineResult struct {
	line string
	err  error
}

// Conn frames a byte stream into newline-terminated messages. A background
// pump owns the reader so ReadLine can be abandoned through its context
// without losing bytes.
type Conn struct {
	rwc   io.ReadWriteCloser
	lines chan lineResult
	done  chan struct{}

	wmu       sync.Mutex
	closeOnce sync.Once

	mu      sync.Mutex
	readErr error
}

// NewConn wraps rwc and starts the read pump.
func NewConn(rwc io.ReadWriteCloser) *Conn {
	c := &Conn{
		rwc:   rwc,
		lines: make(chan lineResult, 64),
		done:  make(chan struct{}),
	}
	go c.pump()
	return c
}

func (c *Conn) pump() {
	defer close(c.lines)
	r := bufio.NewReader(c.rwc)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			// A trailing partial line is a truncated message, not a message.
			if errors.Is(err, io.EOF) {
				err = ErrClosed
			}
			c.mu.Lock()
			c.readErr = err
			c.mu.Unlock()
			select {
			case c.lines <- lineResult{err: err}:
			case <-c.done:
			}
			return
		}
		select {
		case c.lines <- lineResult{line: strings.TrimRight(line, "\r\n")}:
		case <-c.done:
			return
		}
	}
}

// ReadLine returns the next line without its terminator.
func (c *Conn) ReadLine(ctx context.Context) (string, error) {
	select {
	case r, ok := <-c.lines:
		if !ok {
			c.mu.Lock()
			defer c.mu.Unlock()
			if c.readErr != nil {
				return "", fmt.Errorf("read line: %w", c.readErr)
			}
			return "", fmt.Errorf("read line: %w", ErrClosed)
		}
		if r.err != nil {
			return "", fmt.Errorf("read line: %w", r.err)
		}
		return r.line, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Send writes msg followed by a newline in a single write.
func (c *Conn) Send(msg string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	if _, err := io.WriteString(c.rwc, msg+"\n"); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Close closes the underlying stream and stops the pump.
func (c *Conn) Close() error {
	var err error
	c.closeOnce.Do(func() {
		close(c.done)
		err = c.rwc.Close()
	})
	return err
}
