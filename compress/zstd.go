package compress

// ZstdCompressor provides Zstandard compression for journals where ratio
// matters more than speed, such as archived debugging sessions.
//
// Two implementations back this type: valyala/gozstd (cgo builds) and
// klauspost/compress/zstd (pure Go builds). Both produce standard Zstd
// frames, so journals written by one build decompress under the other.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
