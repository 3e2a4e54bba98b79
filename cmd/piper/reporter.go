package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/arloliu/piper/compress"
)

// printResults writes the compare table.
func printResults(w io.Writer, input string, results []compress.CompressionStats) {
	fmt.Fprintf(w, "=== Compression Comparison: %s ===\n\n", input)

	fmt.Fprintf(w, "%-9s | %-12s | %-12s | %-7s | %-8s | %-12s | %-12s\n",
		"Algorithm", "Original", "Compressed", "Ratio", "Saved", "Compress", "Decompress")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, r := range results {
		fmt.Fprintf(w, "%-9s | %-12s | %-12s | %-7s | %-8s | %-12s | %-12s\n",
			r.Algorithm,
			formatNumber(r.OriginalSize),
			formatNumber(r.CompressedSize),
			fmt.Sprintf("%.3f", r.CompressionRatio()),
			fmt.Sprintf("%.1f%%", r.SpaceSavings()),
			r.CompressionTime.Round(time.Microsecond),
			r.DecompressionTime.Round(time.Microsecond))
	}
	fmt.Fprintln(w)
}

// formatNumber formats an integer with thousands separators.
func formatNumber(n int64) string {
	if n < 0 {
		return "-" + formatNumber(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}

	return b.String()
}
