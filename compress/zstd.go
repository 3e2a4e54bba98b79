package compress

// ZstdCompressor is a reference codec using Zstandard.
//
// The default build uses the pure Go klauspost/compress/zstd implementation.
// Building with cgo and the gozstd tag switches to valyala/gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
