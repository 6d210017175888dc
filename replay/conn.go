package replay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/tompro/redis-ts/args"
	"github.com/tompro/redis-ts/client"
	"github.com/tompro/redis-ts/errs"
	"github.com/tompro/redis-ts/resp"
)

// Recorder wraps a Conn and captures every exchange that produced a reply.
// Transport failures leave no reply bytes behind and are not recorded.
type Recorder struct {
	mu      sync.Mutex
	conn    client.Conn
	journal Journal
}

var _ client.Conn = (*Recorder)(nil)

// NewRecorder wraps conn. Commands pass through unchanged.
func NewRecorder(conn client.Conn) *Recorder {
	return &Recorder{conn: conn}
}

func (r *Recorder) Do(ctx context.Context, command string, a *args.Args) (resp.Value, error) {
	v, err := r.conn.Do(ctx, command, a)

	var reply []byte
	if err != nil {
		var srvErr resp.ServerError
		if !errors.As(err, &srvErr) {
			return v, err
		}
		reply = resp.Encode(resp.ErrorReply(string(srvErr)))
	} else {
		reply = resp.Encode(v)
	}

	e := Exchange{Command: command, Reply: reply}
	if a != nil {
		e.Tokens = slices.Clone(a.Tokens())
	}

	r.mu.Lock()
	r.journal.Exchanges = append(r.journal.Exchanges, e)
	r.mu.Unlock()

	return v, err
}

// Close closes the wrapped connection. The recording stays available.
func (r *Recorder) Close() error {
	return r.conn.Close()
}

// Journal returns a snapshot of the recording so far.
func (r *Recorder) Journal() *Journal {
	r.mu.Lock()
	defer r.mu.Unlock()

	return &Journal{Exchanges: slices.Clone(r.journal.Exchanges)}
}

// Player replays a journal as a Conn. Every Do call must match the next
// recorded exchange's command and token list exactly; recorded error
// replies come back as resp.ServerError just as they would from the wire.
type Player struct {
	mu        sync.Mutex
	exchanges []Exchange
	pos       int
}

var _ client.Conn = (*Player)(nil)

// NewPlayer builds a Player over a decoded journal.
func NewPlayer(j *Journal) *Player {
	return &Player{exchanges: slices.Clone(j.Exchanges)}
}

func (p *Player) Do(ctx context.Context, command string, a *args.Args) (resp.Value, error) {
	if err := ctx.Err(); err != nil {
		return resp.Value{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pos >= len(p.exchanges) {
		return resp.Value{}, fmt.Errorf("%w: %s", errs.ErrReplayExhausted, command)
	}
	e := p.exchanges[p.pos]

	var tokens []string
	if a != nil {
		tokens = a.Tokens()
	}
	if command != e.Command || !slices.Equal(tokens, e.Tokens) {
		return resp.Value{}, fmt.Errorf("%w: exchange %d: got %s %v, recorded %s %v",
			errs.ErrReplayMismatch, p.pos, command, tokens, e.Command, e.Tokens)
	}
	p.pos++

	v, err := resp.NewReader(bytes.NewReader(e.Reply)).ReadValue()
	if err != nil {
		return resp.Value{}, fmt.Errorf("%w: exchange %d reply: %v", errs.ErrInvalidJournal, p.pos-1, err)
	}
	if srvErr := v.Err(); srvErr != nil {
		return resp.Value{}, srvErr
	}

	return v, nil
}

// Close is a no-op; the Player holds no resources.
func (p *Player) Close() error {
	return nil
}

// Remaining reports how many recorded exchanges have not been replayed.
func (p *Player) Remaining() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return len(p.exchanges) - p.pos
}
