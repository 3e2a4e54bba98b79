package compress

import (
	"fmt"

	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/internal/pool"
)

const (
	// RLEEscape is the reserved byte that introduces a run record.
	RLEEscape byte = 0xFF
	// RLEMaxRun is the longest run a single record can describe.
	RLEMaxRun = 255

	rleRecordSize = 3
	// Runs of other bytes shorter than this are cheaper written verbatim.
	rleMinRecordRun = 4
)

// RLECompressor implements escape-coded run-length encoding.
//
// Encoding rules for a run of byte b repeated c times (c <= 255):
//   - c == 1, b != 0xFF: b
//   - c == 1, b == 0xFF: 0xFF 0x00 0xFF
//   - 2 <= c <= 3, b != 0xFF: b repeated c times
//   - otherwise: 0xFF c b
type RLECompressor struct{}

var _ Codec = (*RLECompressor)(nil)

// NewRLECompressor creates a new RLE compressor.
func NewRLECompressor() RLECompressor {
	return RLECompressor{}
}

// Compress run-length encodes data.
func (c RLECompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	buf := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(buf)
	buf.Grow(len(data))

	for i := 0; i < len(data); {
		b := data[i]
		run := 1
		for i+run < len(data) && run < RLEMaxRun && data[i+run] == b {
			run++
		}

		buf.B = appendRLERun(buf.B, b, run)
		i += run
	}

	return buf.Clone(), nil
}

func appendRLERun(dst []byte, b byte, run int) []byte {
	switch {
	case run == 1 && b != RLEEscape:
		return append(dst, b)
	case run == 1:
		return append(dst, RLEEscape, 0x00, RLEEscape)
	case run < rleMinRecordRun && b != RLEEscape:
		for range run {
			dst = append(dst, b)
		}

		return dst
	default:
		return append(dst, RLEEscape, byte(run), b)
	}
}

// Decompress expands an RLE stream. The stream has no length header; decoding
// stops when the input is exhausted.
//
// Returns:
//   - []byte: Decoded data
//   - error: errs.ErrTruncatedStream if a record is cut short,
//     errs.ErrInvalidEscape if 0xFF 0x00 is not followed by 0xFF
func (c RLECompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	out := make([]byte, 0, len(data)*2)
	for i := 0; i < len(data); {
		b := data[i]
		if b != RLEEscape {
			out = append(out, b)
			i++

			continue
		}

		if len(data)-i < rleRecordSize {
			return nil, fmt.Errorf("%w: escape record at offset %d needs %d bytes, have %d",
				errs.ErrTruncatedStream, i, rleRecordSize, len(data)-i)
		}

		count, value := data[i+1], data[i+2]
		if count == 0 {
			if value != RLEEscape {
				return nil, fmt.Errorf("%w: escaped literal at offset %d ends with 0x%02x",
					errs.ErrInvalidEscape, i, value)
			}
			out = append(out, RLEEscape)
		} else {
			for range int(count) {
				out = append(out, value)
			}
		}
		i += rleRecordSize
	}

	return out, nil
}
