package resp

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/tompro/redis-ts/errs"
)

const (
	// maxBulkSize caps a declared bulk payload length, matching the server's
	// own proto-max-bulk-len default.
	maxBulkSize = 512 * 1024 * 1024

	// maxNestingDepth caps reply tree recursion so a misbehaving peer cannot
	// exhaust the stack.
	maxNestingDepth = 128
)

// Reader parses wire bytes into reply Values.
//
// Reader is not safe for concurrent use; the connection serializes access.
type Reader struct {
	br *bufio.Reader
}

// NewReader creates a Reader on top of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{br: bufio.NewReader(r)}
}

// ReadValue reads and parses the next reply tree.
//
// Framing violations return errs.ErrProtocol; I/O failures are returned
// as-is.
func (r *Reader) ReadValue() (Value, error) {
	return r.readValue(0)
}

func (r *Reader) readValue(depth int) (Value, error) {
	if depth > maxNestingDepth {
		return Value{}, fmt.Errorf("%w: reply nesting exceeds %d levels", errs.ErrProtocol, maxNestingDepth)
	}

	line, err := r.readLine()
	if err != nil {
		return Value{}, err
	}
	if len(line) == 0 {
		return Value{}, fmt.Errorf("%w: empty reply line", errs.ErrProtocol)
	}

	marker, rest := line[0], line[1:]
	switch marker {
	case '+':
		return SimpleString(string(rest)), nil

	case '-':
		return ErrorReply(string(rest)), nil

	case ':':
		n, err := parseInt(rest)
		if err != nil {
			return Value{}, err
		}

		return Integer(n), nil

	case ',':
		f, err := strconv.ParseFloat(string(rest), 64)
		if err != nil {
			return Value{}, fmt.Errorf("%w: bad double %q", errs.ErrProtocol, rest)
		}

		return Double(f), nil

	case '#':
		switch string(rest) {
		case "t":
			return Integer(1), nil
		case "f":
			return Integer(0), nil
		default:
			return Value{}, fmt.Errorf("%w: bad boolean %q", errs.ErrProtocol, rest)
		}

	case '_':
		if len(rest) != 0 {
			return Value{}, fmt.Errorf("%w: null carries payload %q", errs.ErrProtocol, rest)
		}

		return Nil(), nil

	case '(':
		// Big numbers exceed int64; surface the digits for the caller to parse.
		return BulkString(string(rest)), nil

	case '$', '=':
		return r.readBulk(rest)

	case '*', '~', '>':
		return r.readArray(rest, depth)

	case '%':
		return r.readMap(rest, depth)

	default:
		return Value{}, fmt.Errorf("%w: unknown type marker %q", errs.ErrProtocol, marker)
	}
}

// readBulk reads a bulk string body after its length header line.
func (r *Reader) readBulk(header []byte) (Value, error) {
	size, err := parseInt(header)
	if err != nil {
		return Value{}, err
	}
	if size == -1 {
		return Nil(), nil
	}
	if size < 0 || size > maxBulkSize {
		return Value{}, fmt.Errorf("%w: bulk length %d out of range", errs.ErrProtocol, size)
	}

	// The payload may contain CR and LF bytes, so it is read by length, not
	// by line. The copy also detaches the value from the read buffer.
	data := make([]byte, size+2)
	if _, err := io.ReadFull(r.br, data); err != nil {
		return Value{}, err
	}
	if data[size] != '\r' || data[size+1] != '\n' {
		return Value{}, fmt.Errorf("%w: bulk payload missing terminator", errs.ErrProtocol)
	}

	return Value{kind: KindBulkString, data: data[:size]}, nil
}

func (r *Reader) readArray(header []byte, depth int) (Value, error) {
	size, err := parseInt(header)
	if err != nil {
		return Value{}, err
	}
	if size == -1 {
		return Nil(), nil
	}
	if size < 0 {
		return Value{}, fmt.Errorf("%w: array length %d out of range", errs.ErrProtocol, size)
	}

	items := make([]Value, 0, min(size, 1024))
	for i := int64(0); i < size; i++ {
		item, err := r.readValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}

	return Value{kind: KindArray, items: items}, nil
}

// readMap reads a protocol v3 map and flattens it to an alternating
// key/value array, preserving the pair shape the ts decoders expect.
func (r *Reader) readMap(header []byte, depth int) (Value, error) {
	pairs, err := parseInt(header)
	if err != nil {
		return Value{}, err
	}
	if pairs < 0 {
		return Value{}, fmt.Errorf("%w: map length %d out of range", errs.ErrProtocol, pairs)
	}

	items := make([]Value, 0, min(pairs*2, 1024))
	for i := int64(0); i < pairs*2; i++ {
		item, err := r.readValue(depth + 1)
		if err != nil {
			return Value{}, err
		}
		items = append(items, item)
	}

	return Value{kind: KindArray, items: items}, nil
}

// readLine reads one CRLF-terminated header line, excluding the terminator.
func (r *Reader) readLine() ([]byte, error) {
	line, err := r.br.ReadBytes('\n')
	if err != nil {
		return nil, err
	}
	if len(line) < 2 || line[len(line)-2] != '\r' {
		return nil, fmt.Errorf("%w: line not CRLF terminated", errs.ErrProtocol)
	}

	return line[:len(line)-2], nil
}

func parseInt(b []byte) (int64, error) {
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: bad length %q", errs.ErrProtocol, b)
	}

	return n, nil
}
