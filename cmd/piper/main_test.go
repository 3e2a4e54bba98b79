package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/piper/format"
	"github.com/arloliu/piper/frame"
)

func writeInput(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	return path
}

func sampleInput() []byte {
	return bytes.Repeat([]byte("to be or not to be, that is the question. "), 40)
}

func TestRun_CompressDecompress(t *testing.T) {
	data := sampleInput()

	for _, alg := range []string{"huffman", "lz77", "rle"} {
		t.Run(alg, func(t *testing.T) {
			input := writeInput(t, "input.txt", data)
			var stdout, stderr bytes.Buffer

			code := run([]string{"-i", input, "-a", alg}, &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())
			require.Contains(t, stderr.String(), "compressed")

			compressed := input + "." + alg
			require.FileExists(t, compressed)

			restored := filepath.Join(t.TempDir(), "restored.txt")
			code = run([]string{"-i", compressed, "-o", restored, "-m", "decompress", "-a", alg}, &stdout, &stderr)
			require.Equal(t, 0, code, stderr.String())

			got, err := os.ReadFile(restored)
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestRun_FrameAutoDetectsAlgorithm(t *testing.T) {
	data := sampleInput()
	input := writeInput(t, "doc.txt", data)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-i", input, "-a", "huffman", "-frame"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	packed, err := os.ReadFile(input + ".huffman")
	require.NoError(t, err)
	h, err := frame.Peek(packed)
	require.NoError(t, err)
	require.Equal(t, format.AlgorithmHuffman, h.Algorithm)

	// -a names a different codec; the frame header wins.
	code = run([]string{"-i", input + ".huffman", "-m", "decompress", "-frame", "-a", "rle"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	got, err := os.ReadFile(input)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestRun_LZ77Flags(t *testing.T) {
	input := writeInput(t, "in.bin", sampleInput())
	var stdout, stderr bytes.Buffer

	code := run([]string{"-i", input, "-a", "lz77", "-window", "32", "-chain-depth", "2"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	code = run([]string{"-i", input, "-a", "lz77", "-window", "0"}, &stdout, &stderr)
	require.Equal(t, 2, code)
	require.Contains(t, stderr.String(), "invalid option")
}

func TestRun_Compare(t *testing.T) {
	input := writeInput(t, "cmp.txt", sampleInput())
	var stdout, stderr bytes.Buffer

	code := run([]string{"-i", input, "-m", "compare"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	out := stdout.String()
	for _, alg := range format.Algorithms {
		require.Contains(t, out, alg.String())
	}
	require.Equal(t, len(format.Algorithms), strings.Count(stderr.String(), "msg=measured"))
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer

	require.Equal(t, 2, run(nil, &stdout, &stderr))
	require.Equal(t, 2, run([]string{"-i", "x", "-m", "shrink"}, &stdout, &stderr))
	require.Equal(t, 2, run([]string{"-i", "x", "-a", "deflate"}, &stdout, &stderr))
	require.Equal(t, 1, run([]string{"-i", filepath.Join(t.TempDir(), "missing")}, &stdout, &stderr))

	corrupt := writeInput(t, "bad.lz77", []byte{0x05, 0x00, 0x00, 0x00, 0x09})
	require.Equal(t, 1, run([]string{"-i", corrupt, "-m", "decompress", "-a", "lz77"}, &stdout, &stderr))
	require.Contains(t, stderr.String(), "invalid token flag")
}

func TestDefaultOutput(t *testing.T) {
	require.Equal(t, "a.txt.rle", defaultOutput("a.txt", modeCompress, format.AlgorithmRLE))
	require.Equal(t, "a.txt", defaultOutput("a.txt.rle", modeDecompress, format.AlgorithmRLE))
	require.Equal(t, "noext.out", defaultOutput("noext", modeDecompress, format.AlgorithmRLE))
}

func TestFormatNumber(t *testing.T) {
	require.Equal(t, "0", formatNumber(0))
	require.Equal(t, "999", formatNumber(999))
	require.Equal(t, "1,000", formatNumber(1000))
	require.Equal(t, "12,345,678", formatNumber(12345678))
	require.Equal(t, "-1,234", formatNumber(-1234))
}
