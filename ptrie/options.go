package ptrie

import (
	"math"

	"github.com/cockroachdb/errors"
)

const (
	DefaultHeapBound  = 128
	DefaultSplitBound = 128
	DefaultAllocSize  = 64 * 1024

	// MaxKeyLen is the longest key the 16-bit length prefix can encode.
	MaxKeyLen = math.MaxUint16
)

var (
	ErrInvalidOption = errors.New("ptrie: invalid option")
	ErrKeyTooLong    = errors.New("ptrie: key too long")
	ErrBadElemWidth  = errors.New("ptrie: key is not a whole number of elements")
)

type config struct {
	heapBound  int
	splitBound int
	allocSize  int
	elemWidth  int
}

// Option configures a Set or a Stable at construction time.
type Option func(*config) error

// WithHeapBound sets the tail length (in bytes) from which tails are stored
// in their own allocation instead of inline.
func WithHeapBound(n int) Option {
	return func(c *config) error {
		if n < 1 || n > math.MaxUint16 {
			return errors.Wrapf(ErrInvalidOption, "heap bound %d not in [1..%d]", n, math.MaxUint16)
		}
		c.heapBound = n
		return nil
	}
}

// WithSplitBound sets the number of entries a bucket may hold before it is split.
func WithSplitBound(n int) Option {
	return func(c *config) error {
		if n < 1 || n > math.MaxUint16 {
			return errors.Wrapf(ErrInvalidOption, "split bound %d not in [1..%d]", n, math.MaxUint16)
		}
		c.splitBound = n
		return nil
	}
}

// WithAllocSize sets the size in bytes of one allocator block.
func WithAllocSize(bytes int) Option {
	return func(c *config) error {
		if bytes < 1 {
			return errors.Wrapf(ErrInvalidOption, "alloc size %d must be positive", bytes)
		}
		c.allocSize = bytes
		return nil
	}
}

// WithElemWidth declares keys to be sequences of w-byte elements.
func WithElemWidth(w int) Option {
	return func(c *config) error {
		switch w {
		case 1, 2, 4, 8:
			c.elemWidth = w
			return nil
		}
		return errors.Wrapf(ErrInvalidOption, "element width %d not one of 1, 2, 4, 8", w)
	}
}

func newConfig(opts []Option) (config, error) {
	cfg := config{
		heapBound:  DefaultHeapBound,
		splitBound: DefaultSplitBound,
		allocSize:  DefaultAllocSize,
		elemWidth:  1,
	}

	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return config{}, err
		}
	}

	return cfg, nil
}

// checkKey panics if the key cannot be stored.
func (c *config) checkKey(key []byte) {
	if len(key) > MaxKeyLen {
		panic(errors.Wrapf(ErrKeyTooLong, "%d bytes (max %d)", len(key), MaxKeyLen))
	}
	if len(key)%c.elemWidth != 0 {
		panic(errors.Wrapf(ErrBadElemWidth, "%d bytes, element width %d", len(key), c.elemWidth))
	}
}
