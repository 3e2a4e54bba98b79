package compress

import (
	"bytes"
	"fmt"
	"time"

	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/format"
)

// CompressionStats describes one measured compress/decompress round trip.
type CompressionStats struct {
	// Algorithm identifies the codec that was measured
	Algorithm format.Algorithm

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// CompressionTime is the wall time spent in Compress
	CompressionTime time.Duration

	// DecompressionTime is the wall time spent in Decompress
	DecompressionTime time.Duration
}

// CompressionRatio returns compressed size / original size.
//
// Values below 1.0 mean the codec saved space. Returns 0.0 for an empty input.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space saved as a percentage; negative when the output grew.
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Measure compresses data with codec, decompresses the result and checks it
// matches the input.
//
// Parameters:
//   - algorithm: Label recorded in the stats
//   - codec: Codec to measure
//   - data: Input buffer
//
// Returns:
//   - CompressionStats: Sizes and timings of the round trip
//   - error: Codec error, or errs.ErrRoundTripMismatch if the output differs from data
func Measure(algorithm format.Algorithm, codec Codec, data []byte) (CompressionStats, error) {
	stats := CompressionStats{
		Algorithm:    algorithm,
		OriginalSize: int64(len(data)),
	}

	start := time.Now()
	compressed, err := codec.Compress(data)
	stats.CompressionTime = time.Since(start)
	if err != nil {
		return stats, fmt.Errorf("%s compress: %w", algorithm, err)
	}
	stats.CompressedSize = int64(len(compressed))

	start = time.Now()
	restored, err := codec.Decompress(compressed)
	stats.DecompressionTime = time.Since(start)
	if err != nil {
		return stats, fmt.Errorf("%s decompress: %w", algorithm, err)
	}

	if !bytes.Equal(restored, data) {
		return stats, fmt.Errorf("%w: %s restored %d bytes, want %d",
			errs.ErrRoundTripMismatch, algorithm, len(restored), len(data))
	}

	return stats, nil
}

// MeasureAll runs Measure for each algorithm using the built-in codecs.
// It stops at the first failure and returns the stats gathered so far.
func MeasureAll(data []byte, algorithms ...format.Algorithm) ([]CompressionStats, error) {
	if len(algorithms) == 0 {
		algorithms = format.Algorithms
	}

	results := make([]CompressionStats, 0, len(algorithms))
	for _, algorithm := range algorithms {
		codec, err := GetCodec(algorithm)
		if err != nil {
			return results, err
		}

		stats, err := Measure(algorithm, codec, data)
		if err != nil {
			return results, err
		}
		results = append(results, stats)
	}

	return results, nil
}
