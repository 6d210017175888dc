package client

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tompro/redis-ts/args"
	"github.com/tompro/redis-ts/errs"
	"github.com/tompro/redis-ts/resp"
)

// Conn is one command round-trip boundary: it sends a command with its
// encoded tokens and returns the decoded reply tree.
//
// Do returns server error replies as resp.ServerError values, so a nil
// error always comes with a non-error reply. Implementations must be safe
// for concurrent use.
type Conn interface {
	Do(ctx context.Context, command string, a *args.Args) (resp.Value, error)
	Close() error
}

// netConn is the TCP-backed Conn. A mutex serializes round-trips; there is
// no pipelining.
type netConn struct {
	mu     sync.Mutex
	conn   net.Conn
	reader *resp.Reader
	writer *resp.Writer
	cfg    *Config
	closed bool
}

var _ Conn = (*netConn)(nil)

func newNetConn(conn net.Conn, cfg *Config) *netConn {
	return &netConn{
		conn:   conn,
		reader: resp.NewReader(conn),
		writer: resp.NewWriter(conn),
		cfg:    cfg,
	}
}

// handshake authenticates and selects the configured database before the
// connection is handed to callers.
func (c *netConn) handshake(ctx context.Context) error {
	if c.cfg.Password != "" {
		if _, err := c.Do(ctx, "AUTH", args.New().Add(c.cfg.Password)); err != nil {
			return fmt.Errorf("auth: %w", err)
		}
	}

	if c.cfg.Database != 0 {
		if _, err := c.Do(ctx, "SELECT", args.New().AddInt(int64(c.cfg.Database))); err != nil {
			return fmt.Errorf("select database %d: %w", c.cfg.Database, err)
		}
	}

	return nil
}

func (c *netConn) Do(ctx context.Context, command string, a *args.Args) (resp.Value, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return resp.Value{}, errs.ErrConnClosed
	}
	if err := ctx.Err(); err != nil {
		return resp.Value{}, err
	}

	start := time.Now()
	v, err := c.roundTrip(ctx, command, a)

	entry := c.cfg.Logger.WithFields(logrus.Fields{
		"command": command,
		"args":    tokenCount(a),
		"elapsed": time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Debug("command failed")

		return resp.Value{}, err
	}
	entry.Debug("command completed")

	if srvErr := v.Err(); srvErr != nil {
		return resp.Value{}, srvErr
	}

	return v, nil
}

func (c *netConn) roundTrip(ctx context.Context, command string, a *args.Args) (resp.Value, error) {
	if err := c.conn.SetWriteDeadline(deadline(ctx, c.cfg.WriteTimeout)); err != nil {
		return resp.Value{}, fmt.Errorf("set write deadline: %w", err)
	}
	if err := c.writer.WriteCommand(command, a); err != nil {
		return resp.Value{}, fmt.Errorf("write %s: %w", command, err)
	}

	if err := c.conn.SetReadDeadline(deadline(ctx, c.cfg.ReadTimeout)); err != nil {
		return resp.Value{}, fmt.Errorf("set read deadline: %w", err)
	}
	v, err := c.reader.ReadValue()
	if err != nil {
		return resp.Value{}, fmt.Errorf("read %s reply: %w", command, err)
	}

	return v, nil
}

func (c *netConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	return c.conn.Close()
}

// deadline combines the configured timeout with the context deadline,
// whichever comes first. The zero time means no deadline.
func deadline(ctx context.Context, timeout time.Duration) time.Time {
	var d time.Time
	if timeout > 0 {
		d = time.Now().Add(timeout)
	}
	if ctxDeadline, ok := ctx.Deadline(); ok && (d.IsZero() || ctxDeadline.Before(d)) {
		d = ctxDeadline
	}

	return d
}

func tokenCount(a *args.Args) int {
	if a == nil {
		return 0
	}

	return a.Len()
}
