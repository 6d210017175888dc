// Package args models the ordered token list of a wire command.
//
// A command is sent as a flat sequence of byte-string tokens: the command
// name followed by keys, scalar values and clause keywords. Args accumulates
// those tokens in order; the builder types in the ts package append their
// clauses through the Appender interface, and the transport encodes the
// finished list as one protocol frame.
//
// All appenders are total: converting a well-typed scalar to its token form
// cannot fail. Numeric tokens use the canonical base-10 decimal form with no
// leading zeros, no sign on non-negative values and no locale formatting, so
// every integer width encodes identically after widening.
package args

import "strconv"

// Appender is implemented by types that encode themselves as command tokens.
//
// AppendArgs must append the type's clause tokens to dst in the exact order
// the wire protocol expects and must not retain dst.
type Appender interface {
	AppendArgs(dst *Args)
}

// Args accumulates wire command tokens in order.
//
// The zero value is ready to use. Args is not safe for concurrent mutation.
type Args struct {
	tokens []string
}

// New creates an empty token list.
func New() *Args {
	return &Args{}
}

// Add appends the given tokens verbatim.
func (a *Args) Add(tokens ...string) *Args {
	a.tokens = append(a.tokens, tokens...)
	return a
}

// AddString appends a single string token verbatim.
func (a *Args) AddString(token string) *Args {
	a.tokens = append(a.tokens, token)
	return a
}

// AddBytes appends a raw byte token. The bytes are copied.
func (a *Args) AddBytes(token []byte) *Args {
	a.tokens = append(a.tokens, string(token))
	return a
}

// AddInt appends a signed integer in canonical decimal form.
func (a *Args) AddInt(v int64) *Args {
	a.tokens = append(a.tokens, strconv.FormatInt(v, 10))
	return a
}

// AddUint appends an unsigned integer in canonical decimal form.
func (a *Args) AddUint(v uint64) *Args {
	a.tokens = append(a.tokens, strconv.FormatUint(v, 10))
	return a
}

// AddFloat appends a float in its shortest round-trippable decimal form.
func (a *Args) AddFloat(v float64) *Args {
	a.tokens = append(a.tokens, strconv.FormatFloat(v, 'g', -1, 64))
	return a
}

// Append applies each Appender in order.
func (a *Args) Append(appenders ...Appender) *Args {
	for _, ap := range appenders {
		ap.AppendArgs(a)
	}

	return a
}

// Len returns the number of accumulated tokens.
func (a *Args) Len() int {
	return len(a.tokens)
}

// Tokens returns the accumulated tokens in append order.
//
// The returned slice is the live backing store; callers must not hold on to
// it across further mutation of a.
func (a *Args) Tokens() []string {
	return a.tokens
}
