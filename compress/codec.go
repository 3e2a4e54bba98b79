package compress

import (
	"fmt"

	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/format"
)

// Compressor compresses a complete in-memory buffer.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Compress(data []byte) ([]byte, error)
}

// Decompressor reverses a Compressor of the same algorithm.
//
// Decompressors validate their input and return an errs sentinel describing
// the first inconsistency found. Implementations in this package are safe for
// concurrent use.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	//
	// Error conditions:
	//   - errs.ErrTruncatedStream if the input ends inside a token or record
	//   - a codec specific sentinel for structurally invalid input
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CreateCodec creates a new Codec with default settings for the given algorithm.
//
// Parameters:
//   - algorithm: Codec to create
//
// Returns:
//   - Codec: Codec instance for the algorithm
//   - error: errs.ErrUnknownAlgorithm for an unknown algorithm
func CreateCodec(algorithm format.Algorithm) (Codec, error) {
	switch algorithm {
	case format.AlgorithmNone:
		return NewNoOpCompressor(), nil
	case format.AlgorithmHuffman:
		return NewHuffmanCompressor(), nil
	case format.AlgorithmLZ77:
		return NewDefaultLZ77Compressor(), nil
	case format.AlgorithmRLE:
		return NewRLECompressor(), nil
	case format.AlgorithmZstd:
		return NewZstdCompressor(), nil
	case format.AlgorithmS2:
		return NewS2Compressor(), nil
	case format.AlgorithmLZ4:
		return NewLZ4Compressor(), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownAlgorithm, uint8(algorithm))
	}
}

var builtinCodecs = map[format.Algorithm]Codec{
	format.AlgorithmNone:    NewNoOpCompressor(),
	format.AlgorithmHuffman: NewHuffmanCompressor(),
	format.AlgorithmLZ77:    NewDefaultLZ77Compressor(),
	format.AlgorithmRLE:     NewRLECompressor(),
	format.AlgorithmZstd:    NewZstdCompressor(),
	format.AlgorithmS2:      NewS2Compressor(),
	format.AlgorithmLZ4:     NewLZ4Compressor(),
}

// GetCodec retrieves the shared built-in Codec for the given algorithm.
func GetCodec(algorithm format.Algorithm) (Codec, error) {
	if codec, ok := builtinCodecs[algorithm]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownAlgorithm, uint8(algorithm))
}

// GetCodecByName parses name and retrieves the matching built-in Codec.
func GetCodecByName(name string) (Codec, error) {
	algorithm, err := format.ParseAlgorithm(name)
	if err != nil {
		return nil, err
	}

	return GetCodec(algorithm)
}
