package cdc

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMinSize is returned when minSize is 0.
	ErrInvalidMinSize = errors.New("minSize must be greater than 0")

	// ErrNormSizeTooSmall is returned when normSize is not greater than minSize.
	ErrNormSizeTooSmall = errors.New("normSize must be greater than minSize")

	// ErrMaxSizeTooSmall is returned when maxSize is not greater than normSize.
	ErrMaxSizeTooSmall = errors.New("maxSize must be greater than normSize")

	// ErrInvalidMask is returned when a chunking mask is 0.
	ErrInvalidMask = errors.New("mask must have at least one bit set")

	// ErrInvalidBufferSize is returned when bufferSize is not positive.
	ErrInvalidBufferSize = errors.New("bufferSize must be greater than 0")
)

const (
	// DefaultMinSize is the minimum chunk size (2 KiB).
	DefaultMinSize = 2048

	// DefaultNormSize is the target chunk size where the masks switch (4 KiB).
	DefaultNormSize = 4096

	// DefaultMaxSize is the maximum chunk size (64 KiB).
	DefaultMaxSize = 65536

	// DefaultMaskTight is the boundary mask below the target size
	// (14 bits), making cuts before the target rare.
	DefaultMaskTight = uint64(0x0003590703530000)

	// DefaultMaskLoose is the boundary mask beyond the target size
	// (11 bits), making cuts after the target likely.
	DefaultMaskLoose = uint64(0x0000d90003530000)

	// DefaultSeed derives the default gear table ("GEAR" in big-endian
	// ASCII). The seed is part of the identifier contract.
	DefaultSeed = uint64(0x47454152)

	// DefaultBufferSize is the internal read buffer size (2x max chunk).
	DefaultBufferSize = 2 * DefaultMaxSize
)

// Option configures a Chunker.
type Option func(*config) error

// config holds the chunking parameters.
type config struct {
	minSize    int
	normSize   int
	maxSize    int
	maskTight  uint64
	maskLoose  uint64
	seed       uint64
	bufferSize int
}

func defaultConfig() config {
	return config{
		minSize:    DefaultMinSize,
		normSize:   DefaultNormSize,
		maxSize:    DefaultMaxSize,
		maskTight:  DefaultMaskTight,
		maskLoose:  DefaultMaskLoose,
		seed:       DefaultSeed,
		bufferSize: DefaultBufferSize,
	}
}

// validate checks the configuration and adjusts the buffer size so a
// full maximum chunk always fits.
func (c *config) validate() error {
	if c.minSize <= 0 {
		return ErrInvalidMinSize
	}

	if c.normSize <= c.minSize {
		return fmt.Errorf("%w: normSize (%d), minSize (%d)", ErrNormSizeTooSmall, c.normSize, c.minSize)
	}

	if c.maxSize <= c.normSize {
		return fmt.Errorf("%w: maxSize (%d), normSize (%d)", ErrMaxSizeTooSmall, c.maxSize, c.normSize)
	}

	if c.maskTight == 0 || c.maskLoose == 0 {
		return ErrInvalidMask
	}

	if c.bufferSize < c.maxSize {
		c.bufferSize = c.maxSize
	}

	return nil
}

// WithMinSize sets the minimum chunk size.
func WithMinSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return ErrInvalidMinSize
		}

		c.minSize = size

		return nil
	}
}

// WithNormSize sets the target chunk size where the masks switch.
func WithNormSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return fmt.Errorf("%w: normSize (%d)", ErrNormSizeTooSmall, size)
		}

		c.normSize = size

		return nil
	}
}

// WithMaxSize sets the maximum chunk size.
func WithMaxSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return fmt.Errorf("%w: maxSize (%d)", ErrMaxSizeTooSmall, size)
		}

		c.maxSize = size

		return nil
	}
}

// WithMasks sets the tight and loose boundary masks.
func WithMasks(tight, loose uint64) Option {
	return func(c *config) error {
		if tight == 0 || loose == 0 {
			return ErrInvalidMask
		}

		c.maskTight = tight
		c.maskLoose = loose

		return nil
	}
}

// WithSeed sets the gear table seed. A non-default seed allocates a
// per-chunker table (2 KiB).
func WithSeed(seed uint64) Option {
	return func(c *config) error {
		c.seed = seed

		return nil
	}
}

// WithBufferSize sets the internal read buffer size. Values below
// maxSize are raised to maxSize.
func WithBufferSize(size int) Option {
	return func(c *config) error {
		if size <= 0 {
			return ErrInvalidBufferSize
		}

		c.bufferSize = size

		return nil
	}
}
