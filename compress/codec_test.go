package compress

import (
	"bytes"
	"errors"
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/format"
)

// brokenCodec drops the last byte on decompression.
type brokenCodec struct{}

func (brokenCodec) Compress(data []byte) ([]byte, error) { return clone(data), nil }

func (brokenCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	return data[:len(data)-1], nil
}

// failingCodec always fails to compress.
type failingCodec struct{ err error }

func (f failingCodec) Compress([]byte) ([]byte, error)   { return nil, f.err }
func (f failingCodec) Decompress([]byte) ([]byte, error) { return nil, f.err }

func testPayloads() map[string][]byte {
	rng := rand.New(rand.NewSource(42))

	random := make([]byte, 8192)
	rng.Read(random)

	text := bytes.Repeat([]byte("the quick brown fox jumps over the lazy dog. "), 200)

	runs := make([]byte, 0, 4096)
	for i := 0; len(runs) < 4000; i++ {
		runs = append(runs, bytes.Repeat([]byte{byte(i % 7)}, 1+i%300)...)
	}

	escapes := bytes.Repeat([]byte{0xFF, 0x00, 0xFF, 0xFF, 0x01}, 300)

	allBytes := make([]byte, 0, 256*3)
	for r := 0; r < 3; r++ {
		for b := 0; b < 256; b++ {
			allBytes = append(allBytes, byte(b))
		}
	}

	return map[string][]byte{
		"single byte":  {0x42},
		"single 0xFF":  {0xFF},
		"two symbols":  []byte("abababababbbbbaaaa"),
		"uniform 0x41": bytes.Repeat([]byte{0x41}, 100),
		"all zeros":    make([]byte, 70000),
		"text":         text,
		"random":       random,
		"runs":         runs,
		"escapes":      escapes,
		"all bytes":    allBytes,
	}
}

func TestCreateCodec(t *testing.T) {
	for _, algorithm := range format.Algorithms {
		t.Run(algorithm.String(), func(t *testing.T) {
			codec, err := CreateCodec(algorithm)
			require.NoError(t, err)
			require.NotNil(t, codec)
		})
	}

	_, err := CreateCodec(format.Algorithm(0xEE))
	require.ErrorIs(t, err, errs.ErrUnknownAlgorithm)
}

func TestGetCodec(t *testing.T) {
	codec, err := GetCodec(format.AlgorithmHuffman)
	require.NoError(t, err)
	require.IsType(t, HuffmanCompressor{}, codec)

	_, err = GetCodec(format.Algorithm(0))
	require.ErrorIs(t, err, errs.ErrUnknownAlgorithm)
}

func TestGetCodecByName(t *testing.T) {
	tests := []struct {
		name     string
		expected Codec
	}{
		{"huffman", HuffmanCompressor{}},
		{"LZ77", NewDefaultLZ77Compressor()},
		{" rle ", RLECompressor{}},
		{"zstd", ZstdCompressor{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := GetCodecByName(tt.name)
			require.NoError(t, err)
			require.IsType(t, tt.expected, codec)
		})
	}

	_, err := GetCodecByName("bzip2")
	require.ErrorIs(t, err, errs.ErrUnknownAlgorithm)
}

func TestCodecs_RoundTrip(t *testing.T) {
	payloads := testPayloads()

	for _, algorithm := range format.Algorithms {
		codec, err := GetCodec(algorithm)
		require.NoError(t, err)

		for name, data := range payloads {
			t.Run(algorithm.String()+"/"+name, func(t *testing.T) {
				compressed, err := codec.Compress(data)
				require.NoError(t, err)

				restored, err := codec.Decompress(compressed)
				require.NoError(t, err)
				require.Equal(t, data, restored)
			})
		}
	}
}

func TestCodecs_EmptyInput(t *testing.T) {
	for _, algorithm := range format.Algorithms {
		t.Run(algorithm.String(), func(t *testing.T) {
			codec, err := GetCodec(algorithm)
			require.NoError(t, err)

			for _, empty := range [][]byte{nil, {}} {
				compressed, err := codec.Compress(empty)
				require.NoError(t, err)
				require.Empty(t, compressed)

				restored, err := codec.Decompress(empty)
				require.NoError(t, err)
				require.Empty(t, restored)
			}
		})
	}
}

func TestCodecs_DoNotModifyInput(t *testing.T) {
	data := bytes.Repeat([]byte("abcabcabcXYZ\xff\xff\xff\xff"), 50)
	original := append([]byte(nil), data...)

	for _, algorithm := range format.Algorithms {
		codec, err := GetCodec(algorithm)
		require.NoError(t, err)

		compressed, err := codec.Compress(data)
		require.NoError(t, err)
		require.Equal(t, original, data, "%s modified its input", algorithm)

		compressedCopy := append([]byte(nil), compressed...)
		_, err = codec.Decompress(compressed)
		require.NoError(t, err)
		require.Equal(t, compressedCopy, compressed, "%s modified its compressed input", algorithm)
	}
}

func TestCodecs_Concurrent(t *testing.T) {
	payloads := testPayloads()
	algorithms := []format.Algorithm{format.AlgorithmHuffman, format.AlgorithmLZ77, format.AlgorithmRLE}

	var wg sync.WaitGroup
	errCh := make(chan error, 64)

	for _, algorithm := range algorithms {
		codec, err := GetCodec(algorithm)
		require.NoError(t, err)

		for _, data := range payloads {
			wg.Add(1)
			go func(codec Codec, data []byte) {
				defer wg.Done()
				for i := 0; i < 5; i++ {
					compressed, err := codec.Compress(data)
					if err != nil {
						errCh <- err
						return
					}
					restored, err := codec.Decompress(compressed)
					if err != nil {
						errCh <- err
						return
					}
					if !bytes.Equal(data, restored) {
						errCh <- errors.New("concurrent round trip mismatch")
						return
					}
				}
			}(codec, data)
		}
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		require.NoError(t, err)
	}
}

func TestCodecs_RandomizedRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	codecs := []Codec{NewHuffmanCompressor(), NewDefaultLZ77Compressor(), NewRLECompressor()}

	for i := 0; i < 200; i++ {
		size := rng.Intn(2048)
		alphabet := 1 + rng.Intn(256)
		data := make([]byte, size)
		for j := range data {
			if j > 0 && rng.Intn(3) == 0 {
				data[j] = data[j-1]
			} else {
				data[j] = byte(rng.Intn(alphabet))
			}
		}

		for _, codec := range codecs {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			restored, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.Equal(t, data, restored, "iteration %d, %T", i, codec)
		}
	}
}

func TestNoOpCompressor_Copies(t *testing.T) {
	codec := NewNoOpCompressor()
	data := []byte("payload")

	out, err := codec.Compress(data)
	require.NoError(t, err)
	out[0] = 'P'
	require.Equal(t, []byte("payload"), data)
}
