package resp

import (
	"fmt"
	"math"
	"strconv"

	"github.com/tompro/redis-ts/errs"
)

// Kind identifies the shape of a reply Value.
type Kind uint8

const (
	KindNil          Kind = iota // absent value
	KindInteger                  // signed 64-bit integer
	KindDouble                   // 64-bit float (protocol v3)
	KindBulkString               // binary-safe byte string
	KindSimpleString             // status line, e.g. OK
	KindArray                    // sequence of nested values
	KindError                    // server-side error reply
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindInteger:
		return "integer"
	case KindDouble:
		return "double"
	case KindBulkString:
		return "bulk string"
	case KindSimpleString:
		return "simple string"
	case KindArray:
		return "array"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// ServerError is an error reply sent by the store.
type ServerError string

func (e ServerError) Error() string {
	return string(e)
}

// Value is one node of a generic reply tree.
//
// The zero Value is nil-kinded. Values are immutable once constructed and
// safe for concurrent reads.
type Value struct {
	kind  Kind
	num   int64
	fnum  float64
	data  []byte
	items []Value
}

// Nil returns the nil value.
func Nil() Value {
	return Value{}
}

// Integer returns an integer value.
func Integer(v int64) Value {
	return Value{kind: KindInteger, num: v}
}

// Double returns a double value.
func Double(v float64) Value {
	return Value{kind: KindDouble, fnum: v}
}

// BulkString returns a bulk string value holding s.
func BulkString(s string) Value {
	return Value{kind: KindBulkString, data: []byte(s)}
}

// BulkBytes returns a bulk string value holding a copy of data.
func BulkBytes(data []byte) Value {
	cp := make([]byte, len(data))
	copy(cp, data)

	return Value{kind: KindBulkString, data: cp}
}

// SimpleString returns a status value.
func SimpleString(s string) Value {
	return Value{kind: KindSimpleString, data: []byte(s)}
}

// ErrorReply returns an error value with the given message.
func ErrorReply(msg string) Value {
	return Value{kind: KindError, data: []byte(msg)}
}

// Array returns a sequence value over items.
func Array(items ...Value) Value {
	return Value{kind: KindArray, items: items}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil reports whether the value is the nil value.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// Len returns the number of elements of an array value, and 0 for every
// other kind.
func (v Value) Len() int {
	return len(v.items)
}

// Index returns the i-th element of an array value. It returns the nil
// value when v is not an array or i is out of range.
func (v Value) Index(i int) Value {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}
	}

	return v.items[i]
}

// Items returns the elements of an array value, or nil for every other
// kind. The returned slice is shared with v and must not be modified.
func (v Value) Items() []Value {
	if v.kind != KindArray {
		return nil
	}

	return v.items
}

// Err returns the value as a ServerError when it is an error reply, and nil
// otherwise.
func (v Value) Err() error {
	if v.kind != KindError {
		return nil
	}

	return ServerError(v.data)
}

// Int64 converts the value to a signed integer.
//
// Integers convert directly; bulk and simple strings are parsed as decimal.
func (v Value) Int64() (int64, error) {
	switch v.kind {
	case KindInteger:
		return v.num, nil
	case KindBulkString, KindSimpleString:
		n, err := strconv.ParseInt(string(v.data), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", errs.ErrIncompatibleType, v.data)
		}

		return n, nil
	default:
		return 0, fmt.Errorf("%w: cannot convert %s to integer", errs.ErrIncompatibleType, v.kind)
	}
}

// Uint64 converts the value to an unsigned integer.
func (v Value) Uint64() (uint64, error) {
	switch v.kind {
	case KindInteger:
		if v.num < 0 {
			return 0, fmt.Errorf("%w: negative value %d", errs.ErrIncompatibleType, v.num)
		}

		return uint64(v.num), nil
	case KindBulkString, KindSimpleString:
		n, err := strconv.ParseUint(string(v.data), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an unsigned integer", errs.ErrIncompatibleType, v.data)
		}

		return n, nil
	default:
		return 0, fmt.Errorf("%w: cannot convert %s to unsigned integer", errs.ErrIncompatibleType, v.kind)
	}
}

// Float64 converts the value to a float.
//
// Doubles and integers convert directly; bulk and simple strings are parsed,
// including the protocol's inf, -inf and nan spellings.
func (v Value) Float64() (float64, error) {
	switch v.kind {
	case KindDouble:
		return v.fnum, nil
	case KindInteger:
		return float64(v.num), nil
	case KindBulkString, KindSimpleString:
		f, err := strconv.ParseFloat(string(v.data), 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a float", errs.ErrIncompatibleType, v.data)
		}

		return f, nil
	default:
		return 0, fmt.Errorf("%w: cannot convert %s to float", errs.ErrIncompatibleType, v.kind)
	}
}

// Text converts the value to a string. Only bulk and simple strings convert.
func (v Value) Text() (string, error) {
	switch v.kind {
	case KindBulkString, KindSimpleString:
		return string(v.data), nil
	default:
		return "", fmt.Errorf("%w: cannot convert %s to string", errs.ErrIncompatibleType, v.kind)
	}
}

// Bytes returns the payload of a bulk or simple string value.
// The returned slice is shared with v and must not be modified.
func (v Value) Bytes() ([]byte, error) {
	switch v.kind {
	case KindBulkString, KindSimpleString:
		return v.data, nil
	default:
		return nil, fmt.Errorf("%w: cannot convert %s to bytes", errs.ErrIncompatibleType, v.kind)
	}
}

// Scalar enumerates the Go types a reply scalar can convert to. It is the
// constraint for To and for the decode functions in the ts package that are
// generic over timestamp and value types.
type Scalar interface {
	int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 |
		float32 | float64 | string
}

// To converts a reply scalar to the Go type T, applying the same coercion
// rules as the typed conversion methods and range-checking narrow integer
// targets.
func To[T Scalar](v Value) (T, error) {
	var zero T

	switch p := any(&zero).(type) {
	case *int64:
		n, err := v.Int64()
		if err != nil {
			return zero, err
		}
		*p = n
	case *int:
		n, err := v.Int64()
		if err != nil {
			return zero, err
		}
		if n < math.MinInt || n > math.MaxInt {
			return zero, rangeError(n)
		}
		*p = int(n)
	case *int8:
		n, err := v.Int64()
		if err != nil {
			return zero, err
		}
		if n < math.MinInt8 || n > math.MaxInt8 {
			return zero, rangeError(n)
		}
		*p = int8(n)
	case *int16:
		n, err := v.Int64()
		if err != nil {
			return zero, err
		}
		if n < math.MinInt16 || n > math.MaxInt16 {
			return zero, rangeError(n)
		}
		*p = int16(n)
	case *int32:
		n, err := v.Int64()
		if err != nil {
			return zero, err
		}
		if n < math.MinInt32 || n > math.MaxInt32 {
			return zero, rangeError(n)
		}
		*p = int32(n)
	case *uint64:
		n, err := v.Uint64()
		if err != nil {
			return zero, err
		}
		*p = n
	case *uint:
		n, err := v.Uint64()
		if err != nil {
			return zero, err
		}
		if n > math.MaxUint {
			return zero, rangeErrorU(n)
		}
		*p = uint(n)
	case *uint8:
		n, err := v.Uint64()
		if err != nil {
			return zero, err
		}
		if n > math.MaxUint8 {
			return zero, rangeErrorU(n)
		}
		*p = uint8(n)
	case *uint16:
		n, err := v.Uint64()
		if err != nil {
			return zero, err
		}
		if n > math.MaxUint16 {
			return zero, rangeErrorU(n)
		}
		*p = uint16(n)
	case *uint32:
		n, err := v.Uint64()
		if err != nil {
			return zero, err
		}
		if n > math.MaxUint32 {
			return zero, rangeErrorU(n)
		}
		*p = uint32(n)
	case *float64:
		f, err := v.Float64()
		if err != nil {
			return zero, err
		}
		*p = f
	case *float32:
		f, err := v.Float64()
		if err != nil {
			return zero, err
		}
		*p = float32(f)
	case *string:
		s, err := v.Text()
		if err != nil {
			return zero, err
		}
		*p = s
	}

	return zero, nil
}

func rangeError(n int64) error {
	return fmt.Errorf("%w: value %d out of range for target type", errs.ErrIncompatibleType, n)
}

func rangeErrorU(n uint64) error {
	return fmt.Errorf("%w: value %d out of range for target type", errs.ErrIncompatibleType, n)
}
