package compress

import (
	"fmt"
	"math"

	"github.com/arloliu/piper/errs"
	"github.com/arloliu/piper/internal/options"
)

// Default LZ77 parameters.
const (
	DefaultLZ77WindowSize     = 4096
	DefaultLZ77LookaheadSize  = 18
	DefaultLZ77MinMatchLength = 3
	DefaultLZ77MaxChainDepth  = 256
)

// LZ77Config holds the encoder parameters. The decoder needs none of them:
// distances and lengths are spelled out in every match token.
type LZ77Config struct {
	// WindowSize is how many bytes back a match may start, at most 65535.
	WindowSize int
	// LookaheadSize is the longest match the encoder emits, at most 65535.
	LookaheadSize int
	// MinMatchLength is the shortest match worth a 6-byte token; shorter ones become literals.
	MinMatchLength int
	// MaxChainDepth caps the candidates examined per position, which bounds the
	// search cost on highly repetitive input.
	MaxChainDepth int
}

// DefaultLZ77Config returns the default LZ77 parameters.
func DefaultLZ77Config() LZ77Config {
	return LZ77Config{
		WindowSize:     DefaultLZ77WindowSize,
		LookaheadSize:  DefaultLZ77LookaheadSize,
		MinMatchLength: DefaultLZ77MinMatchLength,
		MaxChainDepth:  DefaultLZ77MaxChainDepth,
	}
}

// Validate checks the parameters against the token format limits.
func (c *LZ77Config) Validate() error {
	if c.WindowSize < 1 || c.WindowSize > math.MaxUint16 {
		return fmt.Errorf("%w: window size %d not in [1, %d]", errs.ErrInvalidOption, c.WindowSize, math.MaxUint16)
	}
	if c.LookaheadSize < 1 || c.LookaheadSize > math.MaxUint16 {
		return fmt.Errorf("%w: lookahead size %d not in [1, %d]", errs.ErrInvalidOption, c.LookaheadSize, math.MaxUint16)
	}
	if c.MinMatchLength < lz77HashLength || c.MinMatchLength > c.LookaheadSize {
		return fmt.Errorf("%w: minimum match length %d not in [%d, %d]",
			errs.ErrInvalidOption, c.MinMatchLength, lz77HashLength, c.LookaheadSize)
	}
	if c.MaxChainDepth < 1 {
		return fmt.Errorf("%w: max chain depth %d must be positive", errs.ErrInvalidOption, c.MaxChainDepth)
	}

	return nil
}

// LZ77Option configures an LZ77Config.
type LZ77Option = options.Option[*LZ77Config]

// WithWindowSize sets the sliding window size.
func WithWindowSize(n int) LZ77Option {
	return options.NoError(func(c *LZ77Config) {
		c.WindowSize = n
	})
}

// WithLookaheadSize sets the maximum match length.
func WithLookaheadSize(n int) LZ77Option {
	return options.NoError(func(c *LZ77Config) {
		c.LookaheadSize = n
	})
}

// WithMinMatchLength sets the shortest match that is encoded as a match token.
func WithMinMatchLength(n int) LZ77Option {
	return options.NoError(func(c *LZ77Config) {
		c.MinMatchLength = n
	})
}

// WithMaxChainDepth sets the per-position candidate ceiling.
func WithMaxChainDepth(n int) LZ77Option {
	return options.NoError(func(c *LZ77Config) {
		c.MaxChainDepth = n
	})
}
