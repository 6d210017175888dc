// Package resp implements the generic reply value model and the wire codec
// for the store's serialization protocol.
//
// # Value Model
//
// Every reply is a tree of Value nodes: integers, doubles, bulk byte
// strings, simple strings, errors, nil, and sequences of further values.
// Commands never need to know the concrete shape in advance; decoders in the
// ts package destructure the tree into typed results.
//
// Scalar conversion is generic over the caller's target type:
//
//	timestamp, err := resp.To[int64](v.Index(0))
//	value, err := resp.To[float64](v.Index(1))
//
// Conversion follows the protocol's own coercion rules: integers and
// numeric bulk strings convert to any numeric width (range-checked),
// doubles and integers convert to floats, and bulk or simple strings
// convert to string. Anything else fails with errs.ErrIncompatibleType.
//
// # Wire Codec
//
// Reader parses wire bytes into Values. It understands the classic protocol
// types (simple strings, errors, integers, bulk strings, arrays) and the
// protocol v3 extensions servers answer with when a client negotiates them:
// doubles, booleans (surfaced as 0/1 integers), nulls, big numbers and
// verbatim strings (surfaced as bulk strings), sets (surfaced as arrays),
// and maps, which are flattened to alternating key/value sequences so the
// pair-shaped decoders in the ts package work under either protocol
// version.
//
// Writer encodes a command name plus its argument tokens as an array of
// bulk strings and writes each frame with a single Write call. Encode goes
// the other way, re-serializing a decoded Value to wire bytes; the replay
// package stores reply frames in that form.
//
// Bulk payloads are copied out of the read buffer during parsing; a decoded
// Value never aliases transport memory.
package resp
