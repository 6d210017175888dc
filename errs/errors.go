// Package errs defines the sentinel errors shared across the module.
//
// Callers match them with errors.Is; packages wrap them with fmt.Errorf
// and %w to attach context.
package errs

import "errors"

var (
	// ErrMalformedReply indicates a reply tree did not have the structural
	// shape a decoder required (wrong top-level type or wrong arity).
	ErrMalformedReply = errors.New("malformed reply structure")

	// ErrIncompatibleType indicates a reply scalar could not be converted
	// to the requested Go type.
	ErrIncompatibleType = errors.New("reply type incompatible with target type")

	// ErrProtocol indicates bytes read from the wire did not form a valid
	// protocol frame.
	ErrProtocol = errors.New("invalid protocol data")

	// ErrConnClosed indicates an operation was attempted on a closed connection.
	ErrConnClosed = errors.New("connection closed")

	// ErrInvalidJournal indicates journal bytes could not be decoded: bad
	// magic, version or compression marker, or a corrupt frame stream.
	ErrInvalidJournal = errors.New("invalid journal data")

	// ErrReplayMismatch indicates a replayed command differed from the
	// recorded one.
	ErrReplayMismatch = errors.New("command does not match recording")

	// ErrReplayExhausted indicates a command was issued after the recording
	// ran out of exchanges.
	ErrReplayExhausted = errors.New("recording exhausted")
)
