package replay

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tompro/redis-ts/args"
	"github.com/tompro/redis-ts/client"
	"github.com/tompro/redis-ts/errs"
	"github.com/tompro/redis-ts/format"
	"github.com/tompro/redis-ts/resp"
	"github.com/tompro/redis-ts/ts"
)

type stubReply struct {
	v   resp.Value
	err error
}

type stubConn struct {
	replies []stubReply
	closed  bool
}

func (c *stubConn) Do(_ context.Context, _ string, _ *args.Args) (resp.Value, error) {
	if len(c.replies) == 0 {
		return resp.SimpleString("OK"), nil
	}
	r := c.replies[0]
	c.replies = c.replies[1:]

	return r.v, r.err
}

func (c *stubConn) Close() error {
	c.closed = true

	return nil
}

func TestRecorder_CapturesExchanges(t *testing.T) {
	stub := &stubConn{replies: []stubReply{
		{v: resp.SimpleString("OK")},
		{v: resp.Integer(1500)},
		{err: resp.ServerError("ERR TSDB: key already exists")},
	}}
	rec := NewRecorder(stub)
	ctx := context.Background()

	v, err := rec.Do(ctx, "TS.CREATE", args.New().Add("sensor:1"))
	require.NoError(t, err)
	require.Equal(t, resp.KindSimpleString, v.Kind())

	_, err = rec.Do(ctx, "TS.ADD", args.New().Add("sensor:1").AddInt(1500).AddFloat(3.5))
	require.NoError(t, err)

	_, err = rec.Do(ctx, "TS.CREATE", args.New().Add("sensor:1"))
	var srvErr resp.ServerError
	require.ErrorAs(t, err, &srvErr)

	journal := rec.Journal()
	require.Equal(t, []Exchange{
		{Command: "TS.CREATE", Tokens: []string{"sensor:1"}, Reply: []byte("+OK\r\n")},
		{Command: "TS.ADD", Tokens: []string{"sensor:1", "1500", "3.5"}, Reply: []byte(":1500\r\n")},
		{Command: "TS.CREATE", Tokens: []string{"sensor:1"}, Reply: []byte("-ERR TSDB: key already exists\r\n")},
	}, journal.Exchanges)
}

func TestRecorder_SkipsTransportFailures(t *testing.T) {
	transportErr := errors.New("broken pipe")
	stub := &stubConn{replies: []stubReply{{err: transportErr}}}
	rec := NewRecorder(stub)

	_, err := rec.Do(context.Background(), "PING", nil)
	require.ErrorIs(t, err, transportErr)
	require.Empty(t, rec.Journal().Exchanges)
}

func TestRecorder_JournalIsSnapshot(t *testing.T) {
	rec := NewRecorder(&stubConn{})

	_, err := rec.Do(context.Background(), "PING", nil)
	require.NoError(t, err)

	snapshot := rec.Journal()
	_, err = rec.Do(context.Background(), "PING", nil)
	require.NoError(t, err)

	require.Len(t, snapshot.Exchanges, 1)
	require.Len(t, rec.Journal().Exchanges, 2)
}

func TestRecorder_Close(t *testing.T) {
	stub := &stubConn{}
	rec := NewRecorder(stub)

	require.NoError(t, rec.Close())
	require.True(t, stub.closed)
}

func TestPlayer_ReplaysInOrder(t *testing.T) {
	player := NewPlayer(sampleJournal())
	ctx := context.Background()
	require.Equal(t, 3, player.Remaining())

	v, err := player.Do(ctx, "TS.CREATE", args.New().Add("sensor:1").Add("RETENTION").Add("60000"))
	require.NoError(t, err)
	require.Equal(t, resp.KindSimpleString, v.Kind())

	v, err = player.Do(ctx, "TS.GET", args.New().Add("sensor:1"))
	require.NoError(t, err)
	require.Equal(t, 2, v.Len())

	v, err = player.Do(ctx, "PING", nil)
	require.NoError(t, err)
	require.Equal(t, resp.KindSimpleString, v.Kind())
	require.Zero(t, player.Remaining())

	_, err = player.Do(ctx, "PING", nil)
	require.ErrorIs(t, err, errs.ErrReplayExhausted)
}

func TestPlayer_RejectsMismatch(t *testing.T) {
	journal := &Journal{Exchanges: []Exchange{
		{Command: "TS.GET", Tokens: []string{"sensor:1"}, Reply: []byte("+OK\r\n")},
	}}

	t.Run("wrong command", func(t *testing.T) {
		player := NewPlayer(journal)
		_, err := player.Do(context.Background(), "TS.INFO", args.New().Add("sensor:1"))
		require.ErrorIs(t, err, errs.ErrReplayMismatch)
		require.Equal(t, 1, player.Remaining())
	})

	t.Run("wrong tokens", func(t *testing.T) {
		player := NewPlayer(journal)
		_, err := player.Do(context.Background(), "TS.GET", args.New().Add("sensor:2"))
		require.ErrorIs(t, err, errs.ErrReplayMismatch)
		require.Equal(t, 1, player.Remaining())
	})
}

func TestPlayer_ReplaysServerErrors(t *testing.T) {
	journal := &Journal{Exchanges: []Exchange{
		{Command: "TS.CREATE", Tokens: []string{"k"}, Reply: []byte("-ERR TSDB: key already exists\r\n")},
	}}
	player := NewPlayer(journal)

	_, err := player.Do(context.Background(), "TS.CREATE", args.New().Add("k"))
	var srvErr resp.ServerError
	require.ErrorAs(t, err, &srvErr)
	require.Equal(t, "ERR TSDB: key already exists", string(srvErr))
}

func TestPlayer_RejectsCorruptReply(t *testing.T) {
	journal := &Journal{Exchanges: []Exchange{
		{Command: "PING", Reply: []byte("nonsense")},
	}}
	player := NewPlayer(journal)

	_, err := player.Do(context.Background(), "PING", nil)
	require.ErrorIs(t, err, errs.ErrInvalidJournal)
}

func TestPlayer_ContextCanceled(t *testing.T) {
	player := NewPlayer(sampleJournal())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := player.Do(ctx, "TS.CREATE", nil)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 3, player.Remaining())
}

// The same client scenario must produce identical results live and replayed,
// whichever codec packed the journal.
func TestReplay_EndToEnd(t *testing.T) {
	compressions := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, compression := range compressions {
		t.Run(compression.String(), func(t *testing.T) {
			stub := &stubConn{replies: []stubReply{
				{v: resp.SimpleString("OK")},
				{v: resp.Integer(1500)},
				{v: resp.Array(resp.Array(resp.Integer(1500), resp.BulkString("3.5")))},
				{err: resp.ServerError("ERR TSDB: the key does not exist")},
			}}
			rec := NewRecorder(stub)
			runScenario(t, client.New(rec))

			data, err := rec.Journal().Encode(WithCompression(compression))
			require.NoError(t, err)

			journal, err := Decode(data)
			require.NoError(t, err)

			player := NewPlayer(journal)
			runScenario(t, client.New(player))
			require.Zero(t, player.Remaining())
		})
	}
}

func runScenario(t *testing.T, c *client.Client) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, c.Create(ctx, "sensor:1", ts.Options{}.Retention(60000)))

	stamp, err := c.Add(ctx, "sensor:1", 1500, 3.5)
	require.NoError(t, err)
	require.Equal(t, int64(1500), stamp)

	samples, err := c.Range(ctx, "sensor:1", ts.RangeQuery{})
	require.NoError(t, err)
	require.Equal(t, []client.Sample{{Timestamp: 1500, Value: 3.5}}, samples)

	missing, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	require.Nil(t, missing)
}
