package compress

// NoOpCompressor passes data through unchanged. It is the baseline for Measure.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns a copy of data.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return clone(data), nil
}

// Decompress returns a copy of data.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return clone(data), nil
}

func clone(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)

	return out
}
