package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/arloliu/piper/compress"
	"github.com/arloliu/piper/format"
)

// Modes accepted by -m.
const (
	modeCompress   = "compress"
	modeDecompress = "decompress"
	modeCompare    = "compare"
)

var errUsage = errors.New("usage")

// config holds the parsed command line.
type config struct {
	Input     string
	Output    string
	Mode      string
	Algorithm format.Algorithm
	Frame     bool
	Checksum  bool
	Verbose   bool

	LZ77 compress.LZ77Config
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	var algName string

	fs := flag.NewFlagSet("piper", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&cfg.Input, "i", "", "Input file (required)")
	fs.StringVar(&cfg.Output, "o", "", "Output file (default: <input>.<alg> for compress, <input> without extension for decompress)")
	fs.StringVar(&cfg.Mode, "m", modeCompress, "Mode: compress, decompress or compare")
	fs.StringVar(&algName, "a", format.AlgorithmLZ77.String(), "Algorithm: "+algorithmNames())
	fs.BoolVar(&cfg.Frame, "frame", false, "Wrap output in a frame (compress) or read a frame (decompress)")
	fs.BoolVar(&cfg.Checksum, "checksum", true, "Store an xxHash64 checksum in framed output")
	fs.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging")

	fs.IntVar(&cfg.LZ77.WindowSize, "window", compress.DefaultLZ77WindowSize, "LZ77 window size")
	fs.IntVar(&cfg.LZ77.LookaheadSize, "lookahead", compress.DefaultLZ77LookaheadSize, "LZ77 lookahead size")
	fs.IntVar(&cfg.LZ77.MinMatchLength, "min-match", compress.DefaultLZ77MinMatchLength, "LZ77 minimum match length")
	fs.IntVar(&cfg.LZ77.MaxChainDepth, "chain-depth", compress.DefaultLZ77MaxChainDepth, "LZ77 candidates examined per position")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.Input == "" {
		fs.Usage()
		return cfg, fmt.Errorf("%w: -i is required", errUsage)
	}

	switch cfg.Mode {
	case modeCompress, modeDecompress, modeCompare:
	default:
		return cfg, fmt.Errorf("%w: unknown mode %q", errUsage, cfg.Mode)
	}

	alg, err := format.ParseAlgorithm(algName)
	if err != nil {
		return cfg, err
	}
	cfg.Algorithm = alg

	if err := cfg.LZ77.Validate(); err != nil {
		return cfg, err
	}

	if cfg.Output == "" && cfg.Mode != modeCompare {
		cfg.Output = defaultOutput(cfg.Input, cfg.Mode, cfg.Algorithm)
	}

	return cfg, nil
}

// defaultOutput derives the output path when -o is omitted.
func defaultOutput(input, mode string, alg format.Algorithm) string {
	if mode == modeCompress {
		return input + "." + alg.String()
	}

	ext := filepath.Ext(input)
	if ext == "" {
		return input + ".out"
	}

	return strings.TrimSuffix(input, ext)
}

// codec returns the codec for cfg.Algorithm, applying the LZ77 flags.
func (c config) codec() (compress.Codec, error) {
	if c.Algorithm != format.AlgorithmLZ77 {
		return compress.GetCodec(c.Algorithm)
	}

	return compress.NewLZ77Compressor(
		compress.WithWindowSize(c.LZ77.WindowSize),
		compress.WithLookaheadSize(c.LZ77.LookaheadSize),
		compress.WithMinMatchLength(c.LZ77.MinMatchLength),
		compress.WithMaxChainDepth(c.LZ77.MaxChainDepth),
	)
}

func algorithmNames() string {
	names := make([]string, 0, len(format.Algorithms))
	for _, a := range format.Algorithms {
		names = append(names, a.String())
	}

	return strings.Join(names, ", ")
}
