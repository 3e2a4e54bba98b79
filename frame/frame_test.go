package frame

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/piper/compress"
	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/format"
	"github.com/arloliu/piper/internal/hash"
)

func sampleData() []byte {
	return bytes.Repeat([]byte("frame payload with some repetition, aaaaaaaa bbbbbbbb. "), 64)
}

// ==============================================================================
// Encode / Decode
// ==============================================================================

func TestEncode_KnownBytes(t *testing.T) {
	got, err := Encode(format.AlgorithmNone, []byte("abc"), WithChecksum(false))
	require.NoError(t, err)

	want := []byte{
		'P', 'P', Version, byte(format.AlgorithmNone), 0x00,
		0x03, 0x00, 0x00, 0x00,
		0x03, 0x00, 0x00, 0x00,
		'a', 'b', 'c',
	}
	require.Equal(t, want, got)
}

func TestEncode_ChecksumField(t *testing.T) {
	data := []byte("abc")
	got, err := Encode(format.AlgorithmNone, data)
	require.NoError(t, err)
	require.Len(t, got, BaseHeaderSize+ChecksumSize+len(data))

	h, err := Peek(got)
	require.NoError(t, err)
	require.True(t, h.HasChecksum())
	require.Equal(t, hash.Checksum(data), h.Checksum)
	require.Equal(t, BaseHeaderSize+ChecksumSize, h.Size())
}

func TestFrame_RoundTrip(t *testing.T) {
	data := sampleData()

	for _, alg := range format.Algorithms {
		for _, checksum := range []bool{true, false} {
			name := alg.String()
			if !checksum {
				name += "/no-checksum"
			}
			t.Run(name, func(t *testing.T) {
				packed, err := Encode(alg, data, WithChecksum(checksum))
				require.NoError(t, err)

				h, err := Peek(packed)
				require.NoError(t, err)
				require.Equal(t, alg, h.Algorithm)
				require.Equal(t, uint32(len(data)), h.OriginalSize)
				require.Equal(t, uint32(len(packed)-h.Size()), h.PayloadSize)

				out, err := Decode(packed)
				require.NoError(t, err)
				require.Equal(t, data, out)
			})
		}
	}
}

func TestFrame_EmptyInput(t *testing.T) {
	for _, alg := range format.Algorithms {
		t.Run(alg.String(), func(t *testing.T) {
			packed, err := Encode(alg, nil)
			require.NoError(t, err)

			out, err := Decode(packed)
			require.NoError(t, err)
			require.Empty(t, out)
		})
	}
}

func TestEncode_WithCodec(t *testing.T) {
	codec, err := compress.NewLZ77Compressor(compress.WithWindowSize(64), compress.WithMaxChainDepth(4))
	require.NoError(t, err)

	data := sampleData()
	packed, err := Encode(format.AlgorithmLZ77, data, WithCodec(codec))
	require.NoError(t, err)

	out, err := Decode(packed)
	require.NoError(t, err)
	require.Equal(t, data, out)
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(format.Algorithm(0x7F), []byte("x"))
	require.ErrorIs(t, err, errs.ErrUnknownAlgorithm)

	_, err = Encode(format.AlgorithmNone, []byte("x"), WithCodec(nil))
	require.ErrorIs(t, err, errs.ErrInvalidOption)
}

// ==============================================================================
// Validation
// ==============================================================================

func TestDecode_Errors(t *testing.T) {
	valid, err := Encode(format.AlgorithmNone, []byte("hello frame"))
	require.NoError(t, err)

	mutate := func(fn func(b []byte) []byte) []byte {
		b := append([]byte(nil), valid...)
		return fn(b)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, errs.ErrTruncatedStream},
		{"short header", valid[:BaseHeaderSize-1], errs.ErrTruncatedStream},
		{"short checksum", valid[:BaseHeaderSize+3], errs.ErrTruncatedStream},
		{"bad magic", mutate(func(b []byte) []byte { b[0] = 'X'; return b }), errs.ErrInvalidFrame},
		{"bad version", mutate(func(b []byte) []byte { b[2] = 9; return b }), errs.ErrInvalidFrame},
		{"unknown method", mutate(func(b []byte) []byte { b[3] = 0x7F; return b }), errs.ErrUnknownAlgorithm},
		{"unknown flags", mutate(func(b []byte) []byte { b[4] |= 0x80; return b }), errs.ErrInvalidFrame},
		{"short payload", valid[:len(valid)-1], errs.ErrTruncatedStream},
		{"extra payload", append(append([]byte(nil), valid...), 0x00), errs.ErrInvalidFrame},
		{"size mismatch", mutate(func(b []byte) []byte { b[5]++; return b }), errs.ErrInvalidFrame},
		{"checksum mismatch", mutate(func(b []byte) []byte { b[BaseHeaderSize] ^= 0x01; return b }), errs.ErrChecksumMismatch},
		{"payload corrupted", mutate(func(b []byte) []byte { b[len(b)-1] ^= 0x20; return b }), errs.ErrChecksumMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDecode_CodecErrorPropagates(t *testing.T) {
	packed, err := Encode(format.AlgorithmLZ77, []byte("abcabcabc"), WithChecksum(false))
	require.NoError(t, err)

	// Rewrite the first token flag of the LZ77 payload.
	packed[BaseHeaderSize+4] = 0x07

	_, err = Decode(packed)
	require.ErrorIs(t, err, errs.ErrInvalidTokenFlag)
}

func TestPeek_DoesNotNeedPayload(t *testing.T) {
	packed, err := Encode(format.AlgorithmRLE, sampleData())
	require.NoError(t, err)

	h, err := Peek(packed[:BaseHeaderSize+ChecksumSize])
	require.NoError(t, err)
	require.Equal(t, format.AlgorithmRLE, h.Algorithm)
}
