package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/arloliu/piper/compress"
	"github.com/arloliu/piper/format"
	"github.com/arloliu/piper/frame"
)

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)

		return 2
	}

	logger := newLogger(stderr, cfg.Verbose)
	logger.Debug("starting",
		slog.String("input", cfg.Input),
		slog.String("mode", cfg.Mode),
		slog.String("algorithm", cfg.Algorithm.String()),
		slog.Bool("frame", cfg.Frame))

	data, err := os.ReadFile(cfg.Input)
	if err != nil {
		logger.Error("read input", slog.String("path", cfg.Input), slog.Any("error", err))
		return 1
	}

	switch cfg.Mode {
	case modeCompress:
		err = runCompress(cfg, data, logger)
	case modeDecompress:
		err = runDecompress(cfg, data, logger)
	case modeCompare:
		err = runCompare(cfg, data, stdout, logger)
	}
	if err != nil {
		logger.Error(cfg.Mode+" failed", slog.String("input", cfg.Input), slog.Any("error", err))
		return 1
	}

	return 0
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runCompress(cfg config, data []byte, logger *slog.Logger) error {
	codec, err := cfg.codec()
	if err != nil {
		return err
	}

	start := time.Now()
	var out []byte
	if cfg.Frame {
		out, err = frame.Encode(cfg.Algorithm, data,
			frame.WithCodec(codec),
			frame.WithChecksum(cfg.Checksum))
	} else {
		out, err = codec.Compress(data)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	stats := compress.CompressionStats{
		Algorithm:       cfg.Algorithm,
		OriginalSize:    int64(len(data)),
		CompressedSize:  int64(len(out)),
		CompressionTime: elapsed,
	}
	logger.Info("compressed",
		slog.String("output", cfg.Output),
		slog.String("algorithm", cfg.Algorithm.String()),
		slog.Int64("original_size", stats.OriginalSize),
		slog.Int64("compressed_size", stats.CompressedSize),
		slog.String("ratio", fmt.Sprintf("%.3f", stats.CompressionRatio())),
		slog.String("space_saved", fmt.Sprintf("%.1f%%", stats.SpaceSavings())),
		slog.Duration("elapsed", elapsed))

	return nil
}

func runDecompress(cfg config, data []byte, logger *slog.Logger) error {
	alg := cfg.Algorithm

	start := time.Now()
	var out []byte
	var err error
	if cfg.Frame {
		h, perr := frame.Peek(data)
		if perr != nil {
			return perr
		}
		alg = h.Algorithm
		logger.Debug("frame header",
			slog.String("algorithm", h.Algorithm.String()),
			slog.Uint64("original_size", uint64(h.OriginalSize)),
			slog.Uint64("payload_size", uint64(h.PayloadSize)),
			slog.Bool("checksum", h.HasChecksum()))

		out, err = frame.Decode(data)
	} else {
		codec, cerr := compress.GetCodec(alg)
		if cerr != nil {
			return cerr
		}
		out, err = codec.Decompress(data)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := os.WriteFile(cfg.Output, out, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	logger.Info("decompressed",
		slog.String("output", cfg.Output),
		slog.String("algorithm", alg.String()),
		slog.Int("compressed_size", len(data)),
		slog.Int("original_size", len(out)),
		slog.Duration("elapsed", elapsed))

	return nil
}

func runCompare(cfg config, data []byte, stdout io.Writer, logger *slog.Logger) error {
	results := make([]compress.CompressionStats, 0, len(format.Algorithms))
	for _, alg := range format.Algorithms {
		c := cfg
		c.Algorithm = alg

		codec, err := c.codec()
		if err != nil {
			return err
		}

		stats, err := compress.Measure(alg, codec, data)
		if err != nil {
			return err
		}
		results = append(results, stats)

		logger.Info("measured",
			slog.String("algorithm", alg.String()),
			slog.Int64("original_size", stats.OriginalSize),
			slog.Int64("compressed_size", stats.CompressedSize),
			slog.String("ratio", fmt.Sprintf("%.3f", stats.CompressionRatio())),
			slog.String("space_saved", fmt.Sprintf("%.1f%%", stats.SpaceSavings())),
			slog.Duration("compress", stats.CompressionTime),
			slog.Duration("decompress", stats.DecompressionTime))
	}

	printResults(stdout, cfg.Input, results)

	return nil
}
