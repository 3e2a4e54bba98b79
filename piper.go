// Package piper provides lossless byte-stream compression with a choice of
// classic codecs behind one contract.
//
// Three hand-built codecs are available, each with its own self-contained
// binary format:
//
//   - huffman: static Huffman prefix coding with the frequency table in the header
//   - lz77: sliding-window dictionary coding with literal and match tokens
//   - rle: escape-coded run-length encoding
//
// The reference codecs none, zstd, s2 and lz4 share the same interface so
// they can be compared against the classic ones.
//
// # Basic Usage
//
// Codecs are selected by name:
//
//	import "github.com/arloliu/piper"
//
//	compressed, err := piper.Compress("lz77", data)
//	if err != nil {
//	    return err
//	}
//	original, err := piper.Decompress("lz77", compressed)
//
// Raw codec output does not record which codec produced it. Pack wraps the
// output in a frame that names the algorithm and carries a checksum, so
// Unpack needs no name:
//
//	packed, _ := piper.Pack("huffman", data)
//	original, _ := piper.Unpack(packed)
//
// # Package Structure
//
// This package is a thin wrapper. Use the compress package directly for
// codec configuration (for example LZ77 window sizes) and the frame package
// for frame options.
package piper

import (
	"github.com/arloliu/piper/compress"
	"github.com/arloliu/piper/format"
	"github.com/arloliu/piper/frame"
)

// Compress compresses data with the codec registered under name.
//
// Parameters:
//   - name: Codec name, case-insensitive ("huffman", "lz77", "rle", "none", "zstd", "s2", "lz4")
//   - data: Input bytes, not modified
//
// Returns:
//   - []byte: Codec output owned by the caller
//   - error: errs.ErrUnknownAlgorithm for an unknown name, or a codec error
func Compress(name string, data []byte) ([]byte, error) {
	codec, err := compress.GetCodecByName(name)
	if err != nil {
		return nil, err
	}

	return codec.Compress(data)
}

// Decompress reverses Compress for the codec registered under name.
//
// Returns:
//   - []byte: Original bytes
//   - error: errs.ErrUnknownAlgorithm for an unknown name, or the codec's validation error
func Decompress(name string, data []byte) ([]byte, error) {
	codec, err := compress.GetCodecByName(name)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(data)
}

// Pack compresses data with the named codec and wraps it in a frame.
//
// Example:
//
//	packed, err := piper.Pack("rle", data, frame.WithChecksum(false))
func Pack(name string, data []byte, opts ...frame.Option) ([]byte, error) {
	algorithm, err := format.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}

	return frame.Encode(algorithm, data, opts...)
}

// Unpack decodes a frame produced by Pack.
func Unpack(data []byte) ([]byte, error) {
	return frame.Decode(data)
}

// Algorithms returns the names of all registered codecs.
func Algorithms() []string {
	names := make([]string, 0, len(format.Algorithms))
	for _, a := range format.Algorithms {
		names = append(names, a.String())
	}

	return names
}
