package compress

import (
	"fmt"
	"math"

	"github.com/arloliu/piper/endian"
	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/internal/options"
	"github.com/arloliu/piper/internal/pool"
)

const (
	lz77HeaderSize = 4

	lz77FlagLiteral byte = 0x00
	lz77FlagMatch   byte = 0x01

	// lz77MatchBodySize is distance(2) + length(2) + next literal(1).
	lz77MatchBodySize = 5

	// lz77MaxInput keeps positions representable in the int32 chain tables.
	lz77MaxInput = math.MaxInt32

	// lz77PreallocRatio caps the output preallocation relative to the input,
	// so a forged length header cannot force a huge allocation up front.
	lz77PreallocRatio = 32
)

// LZ77Compressor implements LZ77 with a bounded sliding window.
//
// Stream layout: [u32 LE original length][token]*, where a token is either
// 0x00 b (literal) or 0x01 dist(u16 LE) len(u16 LE) b (match plus next literal).
type LZ77Compressor struct {
	cfg LZ77Config
}

var _ Codec = (*LZ77Compressor)(nil)

// NewLZ77Compressor creates an LZ77 compressor with the given options applied
// on top of DefaultLZ77Config.
//
// Returns:
//   - LZ77Compressor: Configured compressor
//   - error: errs.ErrInvalidOption if the resulting configuration is out of range
func NewLZ77Compressor(opts ...LZ77Option) (LZ77Compressor, error) {
	cfg := DefaultLZ77Config()
	if err := options.Apply(&cfg, opts...); err != nil {
		return LZ77Compressor{}, err
	}
	if err := cfg.Validate(); err != nil {
		return LZ77Compressor{}, err
	}

	return LZ77Compressor{cfg: cfg}, nil
}

// NewDefaultLZ77Compressor creates an LZ77 compressor with DefaultLZ77Config.
func NewDefaultLZ77Compressor() LZ77Compressor {
	return LZ77Compressor{cfg: DefaultLZ77Config()}
}

// Config returns the encoder parameters.
func (c LZ77Compressor) Config() LZ77Config {
	return c.cfg
}

// Compress LZ77 encodes data.
//
// At each position the longest match within the window is looked up; a match
// of at least MinMatchLength bytes becomes a match token followed by the next
// byte, anything shorter becomes a literal. A match that reaches the end of
// the input carries a zero next byte that the decoder drops.
func (c LZ77Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}
	if len(data) > lz77MaxInput {
		return nil, fmt.Errorf("%w: %d bytes", errs.ErrInputTooLarge, len(data))
	}

	cfg := c.cfg
	if cfg == (LZ77Config{}) {
		cfg = DefaultLZ77Config()
	}

	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)
	buf.Grow(lz77HeaderSize + len(data))

	engine := endian.GetLittleEndianEngine()
	buf.B = engine.AppendUint32(buf.B, uint32(len(data)))

	m := newLZ77Matcher(data, cfg)
	defer m.close()

	for p := 0; p < len(data); {
		distance, length := m.longestMatch(p)
		if length < cfg.MinMatchLength {
			buf.B = append(buf.B, lz77FlagLiteral, data[p])
			p++

			continue
		}

		var next byte
		if p+length < len(data) {
			next = data[p+length]
		}
		buf.B = append(buf.B, lz77FlagMatch)
		buf.B = engine.AppendUint16(buf.B, uint16(distance))
		buf.B = engine.AppendUint16(buf.B, uint16(length))
		buf.B = append(buf.B, next)
		p += length + 1
	}

	return buf.Clone(), nil
}

// Decompress decodes an LZ77 stream.
//
// Match copies run byte by byte, so a distance smaller than the length
// repeats the overlapping bytes as they are produced.
//
// Returns:
//   - []byte: Decoded data
//   - error: errs.ErrInvalidHeader, errs.ErrTruncatedStream, errs.ErrInvalidTokenFlag,
//     errs.ErrInvalidDistance, errs.ErrInvalidMatchLength or errs.ErrTrailingData
func (c LZ77Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	engine := endian.GetLittleEndianEngine()
	target32, ok := endian.Uint32At(engine, data, 0)
	if !ok {
		return nil, fmt.Errorf("%w: got %d bytes", errs.ErrInvalidHeader, len(data))
	}
	target := int(target32)

	out := make([]byte, 0, min(target, len(data)*lz77PreallocRatio))
	pos := lz77HeaderSize

	for len(out) < target {
		if pos >= len(data) {
			return nil, fmt.Errorf("%w: stream ended after %d of %d bytes", errs.ErrTruncatedStream, len(out), target)
		}

		flag := data[pos]
		pos++

		switch flag {
		case lz77FlagLiteral:
			if pos >= len(data) {
				return nil, fmt.Errorf("%w: literal token at offset %d has no byte", errs.ErrTruncatedStream, pos-1)
			}
			out = append(out, data[pos])
			pos++

		case lz77FlagMatch:
			if len(data)-pos < lz77MatchBodySize {
				return nil, fmt.Errorf("%w: match token at offset %d needs %d bytes, have %d",
					errs.ErrTruncatedStream, pos-1, lz77MatchBodySize, len(data)-pos)
			}
			distance := int(engine.Uint16(data[pos : pos+2]))
			length := int(engine.Uint16(data[pos+2 : pos+4]))
			next := data[pos+4]

			if distance == 0 || distance > len(out) {
				return nil, fmt.Errorf("%w: distance %d with %d bytes of history at offset %d",
					errs.ErrInvalidDistance, distance, len(out), pos-1)
			}
			if length == 0 || length > target-len(out) {
				return nil, fmt.Errorf("%w: length %d with %d bytes left at offset %d",
					errs.ErrInvalidMatchLength, length, target-len(out), pos-1)
			}
			pos += lz77MatchBodySize

			start := len(out) - distance
			for i := 0; i < length; i++ {
				out = append(out, out[start+i])
			}
			if len(out) < target {
				out = append(out, next)
			}

		default:
			return nil, fmt.Errorf("%w: 0x%02x at offset %d", errs.ErrInvalidTokenFlag, flag, pos-1)
		}
	}

	if pos != len(data) {
		return nil, fmt.Errorf("%w: %d bytes after offset %d", errs.ErrTrailingData, len(data)-pos, pos)
	}

	return out, nil
}
