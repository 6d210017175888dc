// Package ts models time-series commands and replies for the store's
// time-series extension.
//
// This package is the protocol translation core: builders accumulate typed
// configuration and serialize it to ordered wire tokens, and decode functions
// destructure generic reply trees into typed results. It performs no I/O;
// the client package owns the transport and hands the encoded tokens and raw
// replies back and forth.
//
// # Core Types
//
// **Builders**: Encode command clauses in the fixed order the server's
// parser requires
//   - Options: series configuration (retention, compression, duplicate
//     policy, chunk size, labels) for TS.CREATE, TS.ALTER and the
//     auto-creating write commands
//   - RangeQuery: bounds, filters, count cap and aggregation for TS.RANGE,
//     TS.REVRANGE, TS.MRANGE and TS.MREVRANGE
//   - FilterOptions: label predicates and the WITHLABELS flag for the
//     multi-series commands
//   - Aggregation, Align, BucketTimestamp, DuplicatePolicy: the small closed
//     enumerations the builders embed
//
// **Decoders**: Turn resp.Value reply trees into typed results
//   - ParseSeriesInfo: TS.INFO key/value reply into SeriesInfo
//   - ParseRange: sample list into []Sample
//   - ParseMultiRange: per-series entries with labels and samples
//   - ParseLatest: single optional sample (TS.GET)
//   - ParseMultiLatest: per-series entries with an optional sample (TS.MGET)
//
// # Building Commands
//
// Builders use value semantics with chainable methods. Each method returns a
// modified copy, so a partially configured builder is a safe template:
//
//	base := ts.Options{}.Retention(3600000).Label("region", "us")
//	cpu := base.Label("kind", "cpu")   // base is unchanged
//	mem := base.Label("kind", "mem")
//
// Encoding appends tokens to an args.Args in the exact order the server
// expects:
//
//	query := ts.RangeQuery{}.
//	    From(1500).To(2500).
//	    Aggregation(ts.Avg(5000)).
//	    Empty(true)
//
//	a := args.New().Add("key")
//	query.AppendArgs(a)
//	// a.Tokens() == ["key", "1500", "2500", "AGGREGATION", "avg", "5000", "EMPTY"]
//
// Clauses that are only valid alongside an aggregation (ALIGN,
// BUCKETTIMESTAMP, EMPTY) may be set in any order but are silently dropped
// at encode time when no aggregation is present, mirroring the server's own
// validation rules.
//
// # Decoding Replies
//
// Sample-bearing decoders are generic over the timestamp and value scalar
// types, constrained by resp.Scalar:
//
//	samples, err := ts.ParseRange[int64, float64](reply)
//
// Sample data decodes strictly: any arity or conversion failure fails the
// whole decode with errs.ErrMalformedReply, never a partial result.
// Metadata decodes permissively: SeriesInfo fields default to their zero
// values when absent, and malformed label or rule elements are skipped.
//
// # Open Enumerations
//
// DuplicatePolicy is decoded from server-controlled strings, so
// ParseDuplicatePolicy never fails: names outside the known set are carried
// through verbatim, and Known reports closed-set membership. This keeps old
// clients working when the server grows new policy names.
//
// # Thread Safety
//
// Builders and results are plain values with no internal locking. Sharing
// them across goroutines for reads is safe; mutating a shared builder
// concurrently is not, same as any Go value.
package ts
