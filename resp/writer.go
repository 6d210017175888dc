package resp

import (
	"io"
	"strconv"

	"github.com/tompro/redis-ts/args"
	"github.com/tompro/redis-ts/internal/pool"
)

// Writer encodes commands into wire frames.
//
// Writer is not safe for concurrent use; the connection serializes access.
type Writer struct {
	w io.Writer
}

// NewWriter creates a Writer on top of w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteCommand encodes the command name followed by the argument tokens as
// an array of bulk strings and writes the whole frame in a single call.
//
// A nil Args encodes a bare command.
func (w *Writer) WriteCommand(command string, a *args.Args) error {
	buf := pool.GetFrameBuffer()
	defer pool.PutFrameBuffer(buf)

	var tokens []string
	if a != nil {
		tokens = a.Tokens()
	}

	buf.MustWriteByte('*')
	appendIntLine(buf, int64(len(tokens)+1))
	writeBulk(buf, command)
	for _, tok := range tokens {
		writeBulk(buf, tok)
	}

	_, err := w.w.Write(buf.Bytes())

	return err
}

func writeBulk(buf *pool.ByteBuffer, s string) {
	buf.MustWriteByte('$')
	appendIntLine(buf, int64(len(s)))
	buf.MustWriteString(s)
	buf.MustWriteString("\r\n")
}

func appendIntLine(buf *pool.ByteBuffer, n int64) {
	buf.B = strconv.AppendInt(buf.B, n, 10)
	buf.MustWriteString("\r\n")
}
