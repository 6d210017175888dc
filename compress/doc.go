// Package compress provides the compression codecs used for replay journal
// bodies.
//
// A journal body is a concatenation of recorded command and reply frames;
// compression is applied to the whole body after framing, selected per
// journal through format.CompressionType.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// GetCodec maps a format.CompressionType to its built-in Codec.
//
// # Supported Algorithms
//
//   - None (format.CompressionNone): pass-through, for journals kept small or
//     inspected by hand.
//   - Zstd (format.CompressionZstd): best ratio, for archived sessions. Backed
//     by valyala/gozstd when cgo is available and klauspost/compress/zstd
//     otherwise.
//   - S2 (format.CompressionS2): the default, balanced speed and ratio.
//   - LZ4 (format.CompressionLZ4): fastest decompression, for journals
//     replayed repeatedly in tight test loops.
//
// Recorded sessions are highly repetitive (command names, key names and label
// sets recur in almost every frame), so even the fast codecs reach useful
// ratios.
//
// # Thread Safety
//
// All codec implementations are stateless values or use internal pooling and
// are safe for concurrent use.
package compress
