package client

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/tompro/redis-ts/args"
	"github.com/tompro/redis-ts/errs"
	"github.com/tompro/redis-ts/resp"
	"github.com/tompro/redis-ts/ts"
)

// Concrete result instantiations used by the Client: millisecond timestamps
// and float64 values. The generic decode functions in the ts package remain
// available for other scalar choices against Do.
type (
	Sample           = ts.Sample[int64, float64]
	MultiRangeEntry  = ts.MultiRangeEntry[int64, float64]
	MultiLatestEntry = ts.MultiLatestEntry[int64, float64]
)

// SeriesSample addresses one sample of one series for MAdd.
type SeriesSample struct {
	Key       string
	Timestamp int64
	Value     float64
}

// Client exposes the time-series command surface over a Conn.
//
// Client is safe for concurrent use when its Conn is; the net-backed Conn
// serializes round-trips internally.
type Client struct {
	conn Conn
}

// New wraps an existing Conn. Most callers use Dial instead; New is the
// entry point for replayed or otherwise custom transports.
func New(conn Conn) *Client {
	return &Client{conn: conn}
}

// Dial connects to addr with the default background context.
func Dial(addr string, opts ...Option) (*Client, error) {
	return DialContext(context.Background(), addr, opts...)
}

// DialContext connects to addr over TCP, applies opts, and performs the
// AUTH and SELECT handshake when configured.
func DialContext(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	conn, err := DialConn(ctx, addr, opts...)
	if err != nil {
		return nil, err
	}

	return New(conn), nil
}

// DialConn connects like DialContext but returns the raw Conn, for callers
// that layer middleware between the transport and the Client before
// wrapping it with New.
func DialConn(ctx context.Context, addr string, opts ...Option) (Conn, error) {
	cfg := defaultConfig()
	if err := applyOptions(cfg, opts); err != nil {
		return nil, err
	}

	dialer := net.Dialer{Timeout: cfg.DialTimeout}
	nc, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	conn := newNetConn(nc, cfg)
	if err := conn.handshake(ctx); err != nil {
		_ = conn.Close()

		return nil, err
	}

	return conn, nil
}

// Do sends a raw command, the escape hatch for anything the typed surface
// does not cover. Server error replies come back as resp.ServerError.
func (c *Client) Do(ctx context.Context, command string, a *args.Args) (resp.Value, error) {
	return c.conn.Do(ctx, command, a)
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Create creates a series with the given configuration.
func (c *Client) Create(ctx context.Context, key string, opts ts.Options) error {
	a := args.New().Add(key).Append(opts)

	return c.statusCmd(ctx, "TS.CREATE", a)
}

// Alter updates the configuration of an existing series. The server does
// not accept UNCOMPRESSED on TS.ALTER, so that flag is dropped here.
func (c *Client) Alter(ctx context.Context, key string, opts ts.Options) error {
	a := args.New().Add(key).Append(opts.Uncompressed(false))

	return c.statusCmd(ctx, "TS.ALTER", a)
}

// Add inserts a sample and returns its stored timestamp.
func (c *Client) Add(ctx context.Context, key string, timestamp int64, value float64) (int64, error) {
	a := args.New().Add(key).AddInt(timestamp).AddFloat(value)

	return c.intCmd(ctx, "TS.ADD", a)
}

// AddNow inserts a sample at the server's current time and returns the
// timestamp the server chose.
func (c *Client) AddNow(ctx context.Context, key string, value float64) (int64, error) {
	a := args.New().Add(key, "*").AddFloat(value)

	return c.intCmd(ctx, "TS.ADD", a)
}

// AddCreate inserts a sample, creating the series with the given
// configuration when it does not exist yet.
func (c *Client) AddCreate(ctx context.Context, key string, timestamp int64, value float64, opts ts.Options) (int64, error) {
	a := args.New().Add(key).AddInt(timestamp).AddFloat(value).Append(opts)

	return c.intCmd(ctx, "TS.ADD", a)
}

// AddCreateNow combines AddNow and AddCreate.
func (c *Client) AddCreateNow(ctx context.Context, key string, value float64, opts ts.Options) (int64, error) {
	a := args.New().Add(key, "*").AddFloat(value).Append(opts)

	return c.intCmd(ctx, "TS.ADD", a)
}

// MAdd inserts samples across one or more series in a single command and
// returns the stored timestamp per sample, in argument order.
func (c *Client) MAdd(ctx context.Context, samples ...SeriesSample) ([]int64, error) {
	a := args.New()
	for _, s := range samples {
		a.Add(s.Key).AddInt(s.Timestamp).AddFloat(s.Value)
	}

	v, err := c.conn.Do(ctx, "TS.MADD", a)
	if err != nil {
		return nil, err
	}
	if v.Kind() != resp.KindArray {
		return nil, fmt.Errorf("%w: TS.MADD reply is %s, want array", errs.ErrMalformedReply, v.Kind())
	}

	timestamps := make([]int64, 0, v.Len())
	for i, item := range v.Items() {
		// The server reports per-sample failures as error elements.
		if err := item.Err(); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		n, err := item.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: TS.MADD result %d: %v", errs.ErrMalformedReply, i, err)
		}
		timestamps = append(timestamps, n)
	}

	return timestamps, nil
}

// IncrBy adds value to the latest sample, stamped with the server's
// current time, and returns the resulting timestamp.
func (c *Client) IncrBy(ctx context.Context, key string, value float64) (int64, error) {
	a := args.New().Add(key).AddFloat(value)

	return c.intCmd(ctx, "TS.INCRBY", a)
}

// IncrByAt is IncrBy with an explicit timestamp.
func (c *Client) IncrByAt(ctx context.Context, key string, value float64, timestamp int64) (int64, error) {
	a := args.New().Add(key).AddFloat(value).Add("TIMESTAMP").AddInt(timestamp)

	return c.intCmd(ctx, "TS.INCRBY", a)
}

// IncrByCreate is IncrByAt, creating the series with the given
// configuration when it does not exist yet.
func (c *Client) IncrByCreate(ctx context.Context, key string, value float64, timestamp int64, opts ts.Options) (int64, error) {
	a := args.New().Add(key).AddFloat(value).Add("TIMESTAMP").AddInt(timestamp).Append(opts)

	return c.intCmd(ctx, "TS.INCRBY", a)
}

// IncrByCreateNow is IncrBy, creating the series with the given
// configuration when it does not exist yet.
func (c *Client) IncrByCreateNow(ctx context.Context, key string, value float64, opts ts.Options) (int64, error) {
	a := args.New().Add(key).AddFloat(value).Append(opts)

	return c.intCmd(ctx, "TS.INCRBY", a)
}

// DecrBy subtracts value from the latest sample, stamped with the server's
// current time, and returns the resulting timestamp.
func (c *Client) DecrBy(ctx context.Context, key string, value float64) (int64, error) {
	a := args.New().Add(key).AddFloat(value)

	return c.intCmd(ctx, "TS.DECRBY", a)
}

// DecrByAt is DecrBy with an explicit timestamp.
func (c *Client) DecrByAt(ctx context.Context, key string, value float64, timestamp int64) (int64, error) {
	a := args.New().Add(key).AddFloat(value).Add("TIMESTAMP").AddInt(timestamp)

	return c.intCmd(ctx, "TS.DECRBY", a)
}

// DecrByCreate is DecrByAt, creating the series with the given
// configuration when it does not exist yet.
func (c *Client) DecrByCreate(ctx context.Context, key string, value float64, timestamp int64, opts ts.Options) (int64, error) {
	a := args.New().Add(key).AddFloat(value).Add("TIMESTAMP").AddInt(timestamp).Append(opts)

	return c.intCmd(ctx, "TS.DECRBY", a)
}

// DecrByCreateNow is DecrBy, creating the series with the given
// configuration when it does not exist yet.
func (c *Client) DecrByCreateNow(ctx context.Context, key string, value float64, opts ts.Options) (int64, error) {
	a := args.New().Add(key).AddFloat(value).Append(opts)

	return c.intCmd(ctx, "TS.DECRBY", a)
}

// CreateRule sets up server-side compaction from sourceKey into destKey.
func (c *Client) CreateRule(ctx context.Context, sourceKey, destKey string, agg ts.Aggregation) error {
	a := args.New().Add(sourceKey, destKey).Append(agg)

	return c.statusCmd(ctx, "TS.CREATERULE", a)
}

// DeleteRule removes the compaction rule from sourceKey into destKey.
func (c *Client) DeleteRule(ctx context.Context, sourceKey, destKey string) error {
	a := args.New().Add(sourceKey, destKey)

	return c.statusCmd(ctx, "TS.DELETERULE", a)
}

// Range reads samples of one series in ascending order.
func (c *Client) Range(ctx context.Context, key string, query ts.RangeQuery) ([]Sample, error) {
	return c.rangeCmd(ctx, "TS.RANGE", key, query)
}

// RevRange reads samples of one series in descending order.
func (c *Client) RevRange(ctx context.Context, key string, query ts.RangeQuery) ([]Sample, error) {
	return c.rangeCmd(ctx, "TS.REVRANGE", key, query)
}

// MRange reads samples of every series matching the filters, ascending.
func (c *Client) MRange(ctx context.Context, query ts.RangeQuery, filters ts.FilterOptions) ([]MultiRangeEntry, error) {
	return c.multiRangeCmd(ctx, "TS.MRANGE", query, filters)
}

// MRevRange reads samples of every series matching the filters, descending.
func (c *Client) MRevRange(ctx context.Context, query ts.RangeQuery, filters ts.FilterOptions) ([]MultiRangeEntry, error) {
	return c.multiRangeCmd(ctx, "TS.MREVRANGE", query, filters)
}

// Get returns the latest sample of a series, or nil when the series is
// empty. A server error reply, such as the key not existing, also resolves
// to nil; only transport failures surface as errors.
func (c *Client) Get(ctx context.Context, key string) (*Sample, error) {
	v, err := c.conn.Do(ctx, "TS.GET", args.New().Add(key))
	if err != nil {
		var srvErr resp.ServerError
		if errors.As(err, &srvErr) {
			return nil, nil
		}

		return nil, err
	}

	sample, ok := ts.ParseLatest[int64, float64](v)
	if !ok {
		return nil, nil
	}

	return &sample, nil
}

// MGet returns the latest sample of every series matching the filters.
func (c *Client) MGet(ctx context.Context, filters ts.FilterOptions) ([]MultiLatestEntry, error) {
	v, err := c.conn.Do(ctx, "TS.MGET", args.New().Append(filters))
	if err != nil {
		return nil, err
	}

	return ts.ParseMultiLatest[int64, float64](v)
}

// Info returns the series metadata and configuration.
func (c *Client) Info(ctx context.Context, key string) (ts.SeriesInfo, error) {
	v, err := c.conn.Do(ctx, "TS.INFO", args.New().Add(key))
	if err != nil {
		return ts.SeriesInfo{}, err
	}

	return ts.ParseSeriesInfo(v)
}

// QueryIndex returns the keys of every series matching the filters. The
// command takes bare filter expressions, without the FILTER keyword and
// without WITHLABELS.
func (c *Client) QueryIndex(ctx context.Context, filters ts.FilterOptions) ([]string, error) {
	a := args.New()
	for _, f := range filters.Filters() {
		a.Add(f.String())
	}

	v, err := c.conn.Do(ctx, "TS.QUERYINDEX", a)
	if err != nil {
		return nil, err
	}
	if v.Kind() != resp.KindArray {
		return nil, fmt.Errorf("%w: TS.QUERYINDEX reply is %s, want array", errs.ErrMalformedReply, v.Kind())
	}

	keys := make([]string, 0, v.Len())
	for i, item := range v.Items() {
		key, err := item.Text()
		if err != nil {
			return nil, fmt.Errorf("%w: TS.QUERYINDEX key %d: %v", errs.ErrMalformedReply, i, err)
		}
		keys = append(keys, key)
	}

	return keys, nil
}

func (c *Client) statusCmd(ctx context.Context, command string, a *args.Args) error {
	_, err := c.conn.Do(ctx, command, a)

	return err
}

func (c *Client) intCmd(ctx context.Context, command string, a *args.Args) (int64, error) {
	v, err := c.conn.Do(ctx, command, a)
	if err != nil {
		return 0, err
	}

	n, err := v.Int64()
	if err != nil {
		return 0, fmt.Errorf("%w: %s reply: %v", errs.ErrMalformedReply, command, err)
	}

	return n, nil
}

func (c *Client) rangeCmd(ctx context.Context, command, key string, query ts.RangeQuery) ([]Sample, error) {
	a := args.New().Add(key).Append(query)

	v, err := c.conn.Do(ctx, command, a)
	if err != nil {
		return nil, err
	}

	return ts.ParseRange[int64, float64](v)
}

func (c *Client) multiRangeCmd(ctx context.Context, command string, query ts.RangeQuery, filters ts.FilterOptions) ([]MultiRangeEntry, error) {
	a := args.New().Append(query, filters)

	v, err := c.conn.Do(ctx, command, a)
	if err != nil {
		return nil, err
	}

	return ts.ParseMultiRange[int64, float64](v)
}
