package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/piper/errs"
)

// Algorithm identifies a codec. The value is also the method byte stored in a frame header.
type Algorithm uint8

const (
	AlgorithmNone    Algorithm = 0x1 // AlgorithmNone represents no compression.
	AlgorithmHuffman Algorithm = 0x2 // AlgorithmHuffman represents Huffman prefix coding.
	AlgorithmLZ77    Algorithm = 0x3 // AlgorithmLZ77 represents sliding-window LZ77.
	AlgorithmRLE     Algorithm = 0x4 // AlgorithmRLE represents escape-coded run-length encoding.

	AlgorithmZstd Algorithm = 0x10 // AlgorithmZstd represents Zstandard compression.
	AlgorithmS2   Algorithm = 0x11 // AlgorithmS2 represents S2 compression.
	AlgorithmLZ4  Algorithm = 0x12 // AlgorithmLZ4 represents LZ4 block compression.
)

// Algorithms lists every known algorithm in presentation order.
var Algorithms = []Algorithm{
	AlgorithmHuffman,
	AlgorithmLZ77,
	AlgorithmRLE,
	AlgorithmNone,
	AlgorithmZstd,
	AlgorithmS2,
	AlgorithmLZ4,
}

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmHuffman:
		return "huffman"
	case AlgorithmLZ77:
		return "lz77"
	case AlgorithmRLE:
		return "rle"
	case AlgorithmZstd:
		return "zstd"
	case AlgorithmS2:
		return "s2"
	case AlgorithmLZ4:
		return "lz4"
	default:
		return "unknown"
	}
}

// IsValid reports whether a names a known algorithm.
func (a Algorithm) IsValid() bool {
	return a.String() != "unknown"
}

// ParseAlgorithm maps a codec name to its Algorithm. Matching is case-insensitive.
//
// Returns:
//   - Algorithm: The matching algorithm
//   - error: errs.ErrUnknownAlgorithm if name is not recognized
func ParseAlgorithm(name string) (Algorithm, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, a := range Algorithms {
		if a.String() == n {
			return a, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", errs.ErrUnknownAlgorithm, name)
}
