package iscc

import (
	"errors"
	"fmt"

	"github.com/hupe1980/iscc/codec"
)

var (
	// ErrEmptyInput is returned when an operation has nothing to hash
	// after normalization.
	ErrEmptyInput = errors.New("empty input")

	// ErrNoImageDecoder is returned by ContentIDImageBytes when no
	// decoder was configured.
	ErrNoImageDecoder = errors.New("no image decoder configured")

	// ErrInsufficientCodes is returned when a mixed code is requested
	// for fewer than two inputs.
	ErrInsufficientCodes = errors.New("at least 2 codes required")

	// ErrInvalidTrim is returned for non-positive metadata trim budgets.
	ErrInvalidTrim = errors.New("trim budgets must be positive")
)

// WrongKindError indicates an input code whose kind an operation cannot
// accept.
type WrongKindError struct {
	// Index is the position of the offending code in the input.
	Index int

	// Kind is the kind the code carries.
	Kind codec.Kind
}

func (e *WrongKindError) Error() string {
	return fmt.Sprintf("code %d: kind %s is not a content kind", e.Index, e.Kind)
}

// opError prefixes an error with the failing operation, keeping the
// cause reachable for errors.Is and errors.As.
func opError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}
