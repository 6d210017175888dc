package replay

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/tompro/redis-ts/compress"
	"github.com/tompro/redis-ts/errs"
	"github.com/tompro/redis-ts/format"
	"github.com/tompro/redis-ts/internal/options"
	"github.com/tompro/redis-ts/internal/pool"
)

// Journal layout:
//
//	magic "TSRJ" | version byte | compression byte | compressed body
//
// The body is a frame stream. Each frame is a kind byte followed by a
// little-endian uint32 payload length and the payload. A request frame
// holds the command and its tokens, each length-prefixed the same way; a
// reply frame holds the reply bytes as they appeared on the wire. Frames
// alternate request, reply.
const (
	journalVersion byte = 0x1

	frameRequest byte = 0x1
	frameReply   byte = 0x2
)

var journalMagic = []byte("TSRJ")

// Exchange is one recorded command round-trip.
type Exchange struct {
	// Command and Tokens form the request as it was handed to Conn.Do.
	Command string
	Tokens  []string
	// Reply is the wire encoding of the reply, including error replies.
	Reply []byte
}

// Journal is an ordered recording of exchanges.
type Journal struct {
	Exchanges []Exchange
}

type encodeConfig struct {
	compression format.CompressionType
}

// Option configures Journal.Encode.
type Option = options.Option[*encodeConfig]

// WithCompression selects the codec the journal body is compressed with.
func WithCompression(c format.CompressionType) Option {
	return options.New(func(cfg *encodeConfig) error {
		if _, err := compress.GetCodec(c); err != nil {
			return err
		}
		cfg.compression = c

		return nil
	})
}

// Encode serializes the journal. The body is compressed with S2 unless
// WithCompression selects another codec.
func (j *Journal) Encode(opts ...Option) ([]byte, error) {
	cfg := &encodeConfig{compression: format.CompressionS2}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, err
	}

	buf := pool.GetJournalBuffer()
	defer pool.PutJournalBuffer(buf)

	for _, e := range j.Exchanges {
		appendRequestFrame(buf, e)
		appendReplyFrame(buf, e.Reply)
	}

	body, err := codec.Compress(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("compress journal body: %w", err)
	}

	out := make([]byte, 0, len(journalMagic)+2+len(body))
	out = append(out, journalMagic...)
	out = append(out, journalVersion, byte(cfg.compression))
	out = append(out, body...)

	return out, nil
}

// Decode parses bytes produced by Encode.
func Decode(data []byte) (*Journal, error) {
	headerLen := len(journalMagic) + 2
	if len(data) < headerLen {
		return nil, fmt.Errorf("%w: %d bytes is shorter than the header", errs.ErrInvalidJournal, len(data))
	}
	if !bytes.Equal(data[:len(journalMagic)], journalMagic) {
		return nil, fmt.Errorf("%w: bad magic %q", errs.ErrInvalidJournal, data[:len(journalMagic)])
	}
	if data[4] != journalVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", errs.ErrInvalidJournal, data[4])
	}

	compression := format.CompressionType(data[5])
	codec, err := compress.GetCodec(compression)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrInvalidJournal, err)
	}

	body, err := codec.Decompress(data[headerLen:])
	if err != nil {
		return nil, fmt.Errorf("%w: decompress body: %v", errs.ErrInvalidJournal, err)
	}

	return decodeFrames(body)
}

func appendRequestFrame(buf *pool.ByteBuffer, e Exchange) {
	size := 4 + len(e.Command) + 4
	for _, token := range e.Tokens {
		size += 4 + len(token)
	}

	buf.MustWriteByte(frameRequest)
	appendUint32(buf, uint32(size))
	appendChunk(buf, e.Command)
	appendUint32(buf, uint32(len(e.Tokens)))
	for _, token := range e.Tokens {
		appendChunk(buf, token)
	}
}

func appendReplyFrame(buf *pool.ByteBuffer, reply []byte) {
	buf.MustWriteByte(frameReply)
	appendUint32(buf, uint32(len(reply)))
	buf.MustWrite(reply)
}

func appendUint32(buf *pool.ByteBuffer, v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	buf.MustWrite(tmp[:])
}

func appendChunk(buf *pool.ByteBuffer, s string) {
	appendUint32(buf, uint32(len(s)))
	buf.MustWriteString(s)
}

func decodeFrames(body []byte) (*Journal, error) {
	j := &Journal{}

	var pending *Exchange
	for pos := 0; pos < len(body); {
		kind := body[pos]
		payload, next, err := readChunk(body, pos+1)
		if err != nil {
			return nil, err
		}
		pos = next

		switch kind {
		case frameRequest:
			if pending != nil {
				return nil, fmt.Errorf("%w: request %q has no reply", errs.ErrInvalidJournal, pending.Command)
			}
			e, err := decodeRequest(payload)
			if err != nil {
				return nil, err
			}
			pending = &e
		case frameReply:
			if pending == nil {
				return nil, fmt.Errorf("%w: reply frame without a request", errs.ErrInvalidJournal)
			}
			pending.Reply = append([]byte(nil), payload...)
			j.Exchanges = append(j.Exchanges, *pending)
			pending = nil
		default:
			return nil, fmt.Errorf("%w: unknown frame kind 0x%x", errs.ErrInvalidJournal, kind)
		}
	}

	if pending != nil {
		return nil, fmt.Errorf("%w: request %q has no reply", errs.ErrInvalidJournal, pending.Command)
	}

	return j, nil
}

func decodeRequest(payload []byte) (Exchange, error) {
	command, pos, err := readChunk(payload, 0)
	if err != nil {
		return Exchange{}, err
	}
	if len(payload)-pos < 4 {
		return Exchange{}, fmt.Errorf("%w: truncated token count", errs.ErrInvalidJournal)
	}
	count := binary.LittleEndian.Uint32(payload[pos : pos+4])
	pos += 4

	e := Exchange{Command: string(command)}
	for i := uint32(0); i < count; i++ {
		token, next, err := readChunk(payload, pos)
		if err != nil {
			return Exchange{}, err
		}
		e.Tokens = append(e.Tokens, string(token))
		pos = next
	}
	if pos != len(payload) {
		return Exchange{}, fmt.Errorf("%w: %d trailing bytes after request", errs.ErrInvalidJournal, len(payload)-pos)
	}

	return e, nil
}

func readChunk(data []byte, pos int) ([]byte, int, error) {
	if len(data)-pos < 4 {
		return nil, 0, fmt.Errorf("%w: truncated length prefix", errs.ErrInvalidJournal)
	}
	size := binary.LittleEndian.Uint32(data[pos : pos+4])
	pos += 4
	if uint64(size) > uint64(len(data)-pos) {
		return nil, 0, fmt.Errorf("%w: chunk length %d exceeds remaining %d bytes", errs.ErrInvalidJournal, size, len(data)-pos)
	}
	end := pos + int(size)

	return data[pos:end], end, nil
}
