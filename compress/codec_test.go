package compress

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tompro/redis-ts/format"
)

// journalPayload builds a representative journal body: repetitive command
// frames with varying keys and timestamps.
func journalPayload(frames int) []byte {
	var buf bytes.Buffer
	for i := 0; i < frames; i++ {
		buf.WriteString("*4\r\n$6\r\nTS.ADD\r\n$10\r\nsensor:001\r\n$13\r\n1650000000000\r\n$4\r\n26.1\r\n")
		buf.WriteString(":1650000000000\r\n")
		buf.WriteByte(byte(i))
	}

	return buf.Bytes()
}

func TestGetCodec_Builtin(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}
}

func TestGetCodec_Unknown(t *testing.T) {
	codec, err := GetCodec(format.CompressionType(0xFF))
	require.Error(t, err)
	require.Nil(t, codec)
	require.Contains(t, err.Error(), "unsupported compression type")
}

func TestAllCodecs_RoundTrip(t *testing.T) {
	payload := journalPayload(64)

	tests := []struct {
		name  string
		cType format.CompressionType
	}{
		{"none", format.CompressionNone},
		{"zstd", format.CompressionZstd},
		{"s2", format.CompressionS2},
		{"lz4", format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := GetCodec(tt.cType)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, payload, restored)
		})
	}
}

func TestAllCodecs_EmptyData(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(nil)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Empty(t, restored)
		})
	}
}

func TestAllCodecs_InvalidData(t *testing.T) {
	garbage := []byte("this was never compressed by anything")

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			_, err = codec.Decompress(garbage)
			require.Error(t, err, "decompressing garbage should fail")
		})
	}
}

func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	payload := journalPayload(16)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			var wg sync.WaitGroup
			for i := 0; i < 8; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for j := 0; j < 50; j++ {
						compressed, err := codec.Compress(payload)
						assert.NoError(t, err)
						restored, err := codec.Decompress(compressed)
						assert.NoError(t, err)
						assert.Equal(t, payload, restored)
					}
				}()
			}
			wg.Wait()
		})
	}
}

func TestAllCodecs_CompressesRepetitiveFrames(t *testing.T) {
	// Journal bodies repeat command names and keys heavily; every real codec
	// should beat the raw size comfortably.
	payload := journalPayload(256)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			compressed, err := codec.Compress(payload)
			require.NoError(t, err)
			require.Less(t, len(compressed), len(payload)/2, "repetitive frames should compress well")
		})
	}
}

func TestNoOpCompressor_PassThrough(t *testing.T) {
	codec := NewNoOpCompressor()
	payload := journalPayload(4)

	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	restored, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, restored)
}

func BenchmarkCodecs_Compress(b *testing.B) {
	payload := journalPayload(256)

	for _, ct := range []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		if err != nil {
			b.Fatal(err)
		}
		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(len(payload)))
			for i := 0; i < b.N; i++ {
				_, _ = codec.Compress(payload)
			}
		})
	}
}
