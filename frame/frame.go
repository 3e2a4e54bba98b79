package frame

import (
	"fmt"
	"math"

	"github.com/arloliu/piper/compress"
	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/format"
	"github.com/arloliu/piper/internal/hash"
	"github.com/arloliu/piper/internal/options"
)

// Config controls how Encode builds a frame.
type Config struct {
	// Checksum stores an xxHash64 of the original bytes; enabled by default.
	Checksum bool
	// Codec overrides the built-in codec used to compress the payload, for
	// example an LZ77Compressor with a custom window.
	Codec compress.Compressor
}

// Option configures Encode.
type Option = options.Option[*Config]

// WithChecksum enables or disables the checksum field.
func WithChecksum(enabled bool) Option {
	return options.NoError(func(c *Config) {
		c.Checksum = enabled
	})
}

// WithCodec compresses the payload with codec instead of the built-in one.
// The codec must produce output the built-in decoder for the algorithm reads.
func WithCodec(codec compress.Compressor) Option {
	return options.New(func(c *Config) error {
		if codec == nil {
			return fmt.Errorf("%w: nil codec", errs.ErrInvalidOption)
		}
		c.Codec = codec

		return nil
	})
}

// Encode compresses data with algorithm and wraps the result in a frame.
//
// Returns:
//   - []byte: Frame bytes
//   - error: errs.ErrUnknownAlgorithm, errs.ErrInputTooLarge or a codec error
func Encode(algorithm format.Algorithm, data []byte, opts ...Option) ([]byte, error) {
	cfg := Config{Checksum: true}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	if uint64(len(data)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInputTooLarge, len(data))
	}

	codec := cfg.Codec
	if codec == nil {
		builtin, err := compress.GetCodec(algorithm)
		if err != nil {
			return nil, err
		}
		codec = builtin
	}

	payload, err := codec.Compress(data)
	if err != nil {
		return nil, fmt.Errorf("%s compress: %w", algorithm, err)
	}
	if uint64(len(payload)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d byte payload", errs.ErrInputTooLarge, len(payload))
	}

	h := Header{
		Algorithm:    algorithm,
		OriginalSize: uint32(len(data)),
		PayloadSize:  uint32(len(payload)),
	}
	if cfg.Checksum {
		h.Flags |= flagChecksum
		h.Checksum = hash.Checksum(data)
	}

	out := make([]byte, 0, h.Size()+len(payload))
	out = h.appendTo(out)
	out = append(out, payload...)

	return out, nil
}

// Decode validates a frame, decompresses its payload with the codec named by
// the method byte and verifies size and checksum.
//
// Returns:
//   - []byte: Original bytes
//   - error: errs.ErrInvalidFrame, errs.ErrTruncatedStream, errs.ErrUnknownAlgorithm,
//     errs.ErrChecksumMismatch or the codec's own decompression error
func Decode(data []byte) ([]byte, error) {
	h, err := Peek(data)
	if err != nil {
		return nil, err
	}

	body := data[h.Size():]
	if uint64(len(body)) < uint64(h.PayloadSize) {
		return nil, fmt.Errorf("%w: payload needs %d bytes, have %d", errs.ErrTruncatedStream, h.PayloadSize, len(body))
	}
	if uint64(len(body)) > uint64(h.PayloadSize) {
		return nil, fmt.Errorf("%w: %d bytes after payload", errs.ErrInvalidFrame, uint64(len(body))-uint64(h.PayloadSize))
	}

	codec, err := compress.GetCodec(h.Algorithm)
	if err != nil {
		return nil, err
	}

	out, err := codec.Decompress(body)
	if err != nil {
		return nil, fmt.Errorf("%s decompress: %w", h.Algorithm, err)
	}
	if uint64(len(out)) != uint64(h.OriginalSize) {
		return nil, fmt.Errorf("%w: decoded %d bytes, header declares %d", errs.ErrInvalidFrame, len(out), h.OriginalSize)
	}
	if h.HasChecksum() && !hash.Verify(out, h.Checksum) {
		return nil, fmt.Errorf("%w: xxhash64 %016x", errs.ErrChecksumMismatch, h.Checksum)
	}

	return out, nil
}
