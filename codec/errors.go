package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyDigest is returned when encoding zero bytes.
	ErrEmptyDigest = errors.New("empty digest")

	// ErrPartialNotAllowed is returned when the partial flag is requested
	// for a kind outside the content family.
	ErrPartialNotAllowed = errors.New("partial flag requires a content kind")
)

// DigestLengthError indicates a digest whose length fits no group layout.
type DigestLengthError struct {
	Len int
}

func (e *DigestLengthError) Error() string {
	return fmt.Sprintf("digest length must be 8·k or 8·k+1 bytes, got %d", e.Len)
}

// DecodeError indicates a string that no Encode call can produce.
type DecodeError struct {
	Code   string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid code %q: %s", e.Code, e.Reason)
}

// HeaderError indicates an unknown component header byte.
type HeaderError struct {
	Byte byte
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("unknown component header 0x%02x", e.Byte)
}

// LengthMismatchError indicates a distance computation over bodies of
// different lengths.
type LengthMismatchError struct {
	LenA int
	LenB int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("length mismatch: %d vs %d bytes", e.LenA, e.LenB)
}
