// Package redists is a typed client for the time-series extension of the
// Redis protocol.
//
// The module splits into small packages: builders assemble command token
// lists, a wire codec frames them, and generic decoders destructure the
// reply trees that come back. This root package re-exports the surface most
// programs need so that a single import covers the common path.
//
// # Core Features
//
//   - Chainable value builders for series configuration, range queries and
//     label filters, safe to reuse as templates across goroutines
//   - Full command surface: create/alter, single and multi sample insert,
//     counters, compaction rules, range and multi-range queries, latest
//     sample lookup, metadata and index queries
//   - Generic reply decoding over any integer or float sample type
//   - RESP2 and RESP3 wire support with typed server errors
//   - Exchange recording and offline playback for fixture-driven tests
//     (see the replay package)
//
// # Basic Usage
//
// Connecting and writing samples:
//
//	import (
//		redists "github.com/tompro/redis-ts"
//		"github.com/tompro/redis-ts/ts"
//	)
//
//	c, err := redists.Dial("localhost:6379")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	ctx := context.Background()
//	err = c.Create(ctx, "sensor:1:temperature", redists.Options{}.
//		Retention(24*3600*1000).
//		Label("sensor", "1").
//		Label("kind", "temperature"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_, err = c.AddNow(ctx, "sensor:1:temperature", 21.5)
//
// Querying a range with server-side aggregation:
//
//	samples, err := c.Range(ctx, "sensor:1:temperature", redists.RangeQuery{}.
//		From(start).To(end).
//		Aggregation(ts.Avg(60000)))
//	for _, s := range samples {
//		fmt.Printf("ts=%d val=%f\n", s.Timestamp, s.Value)
//	}
//
// Querying across series by label:
//
//	entries, err := c.MRange(ctx, redists.RangeQuery{},
//		redists.FilterOptions{}.WithLabels(true).Equals("kind", "temperature"))
//
// # Package Structure
//
// This package wraps the client package for the common case. For
// fine-grained control import the packages directly: ts holds the builders
// and decoders, client the connection and command surface, resp the wire
// codec, replay the exchange recorder, and args the token accumulator they
// all share.
package redists

import (
	"context"

	"github.com/tompro/redis-ts/client"
	"github.com/tompro/redis-ts/ts"
)

// Re-exported types covering the common command path.
type (
	// Client is the connected command surface.
	Client = client.Client
	// Conn is the round-trip boundary a Client drives.
	Conn = client.Conn
	// Option configures dialing.
	Option = client.Option

	// Options configures series creation and alteration.
	Options = ts.Options
	// RangeQuery configures range and multi-range queries.
	RangeQuery = ts.RangeQuery
	// FilterOptions selects series by label predicates.
	FilterOptions = ts.FilterOptions
	// Aggregation pairs an aggregation kind with its bucket duration.
	Aggregation = ts.Aggregation
	// DuplicatePolicy resolves timestamp collisions on insert.
	DuplicatePolicy = ts.DuplicatePolicy

	// Label and Labels name a series.
	Label  = ts.Label
	Labels = ts.Labels

	// Sample is one decoded data point (millisecond timestamp, float value).
	Sample = client.Sample
	// SeriesSample addresses a sample of a named series for MAdd.
	SeriesSample = client.SeriesSample
	// SeriesInfo is decoded series metadata.
	SeriesInfo = ts.SeriesInfo
	// MultiRangeEntry and MultiLatestEntry are per-series query results.
	MultiRangeEntry  = client.MultiRangeEntry
	MultiLatestEntry = client.MultiLatestEntry
)

// Dial connects to addr with the default background context.
func Dial(addr string, opts ...Option) (*Client, error) {
	return client.Dial(addr, opts...)
}

// DialContext connects to addr over TCP, applies opts, and performs the
// AUTH and SELECT handshake when configured.
func DialContext(ctx context.Context, addr string, opts ...Option) (*Client, error) {
	return client.DialContext(ctx, addr, opts...)
}

// NewClient wraps an existing Conn, for replayed or otherwise custom
// transports.
func NewClient(conn Conn) *Client {
	return client.New(conn)
}
