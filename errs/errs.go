// Package errs defines the sentinel errors returned by piper codecs and containers.
//
// Errors are returned wrapped with position details, so callers should match them
// with errors.Is rather than comparing values directly.
package errs

import "errors"

// Stream errors shared by all codecs.
var (
	// ErrTruncatedStream is returned when input ends before a complete token or record was read.
	ErrTruncatedStream = errors.New("truncated stream")
	// ErrTrailingData is returned when bytes remain after the declared output length was produced.
	ErrTrailingData = errors.New("trailing data after end of stream")
	// ErrInputTooLarge is returned when an input cannot be described by a 32-bit length header.
	ErrInputTooLarge = errors.New("input too large")
)

// LZ77 errors.
var (
	ErrInvalidHeader      = errors.New("invalid header: stream shorter than length header")
	ErrInvalidDistance    = errors.New("invalid match distance")
	ErrInvalidMatchLength = errors.New("invalid match length")
	ErrInvalidTokenFlag   = errors.New("invalid token flag")
)

// RLE errors.
var (
	ErrInvalidEscape = errors.New("invalid escape sequence")
)

// Huffman errors.
var (
	ErrCorruptHeader = errors.New("corrupt header")
)

// Dispatch, configuration and container errors.
var (
	ErrUnknownAlgorithm = errors.New("unknown algorithm")
	ErrInvalidOption    = errors.New("invalid option")
	ErrInvalidFrame     = errors.New("invalid frame")
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

// Measurement errors.
var (
	ErrRoundTripMismatch = errors.New("round trip mismatch")
)
