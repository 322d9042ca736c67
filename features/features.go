// Package features turns normalized content into the 64-bit features
// that feed the similarity hashes. Text becomes overlapping rune n-grams
// or word shingles, each hashed with XXH64; byte chunks hash directly.
package features

import (
	"errors"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ErrInvalidWidth is returned for n-gram or shingle widths below 2.
var ErrInvalidWidth = errors.New("window width must be at least 2")

// Ngrams returns the sliding rune windows of the given width over s,
// advancing one rune at a time. A string shorter than width yields a
// single, shorter window, so no non-empty input ever produces zero
// n-grams. Width must be at least 2.
func Ngrams(s string, width int) ([]string, error) {
	if width < 2 {
		return nil, ErrInvalidWidth
	}

	runes := []rune(s)
	if len(runes) <= width {
		return []string{s}, nil
	}

	out := make([]string, 0, len(runes)-width+1)
	for i := 0; i+width <= len(runes); i++ {
		out = append(out, string(runes[i:i+width]))
	}
	return out, nil
}

// Shingles returns the sliding word windows of the given width, each
// window re-joined with a single space. The short-input rule matches
// Ngrams: fewer words than width yield a single shorter shingle.
func Shingles(words []string, width int) ([]string, error) {
	if width < 2 {
		return nil, ErrInvalidWidth
	}

	if len(words) <= width {
		return []string{strings.Join(words, " ")}, nil
	}

	out := make([]string, 0, len(words)-width+1)
	for i := 0; i+width <= len(words); i++ {
		out = append(out, strings.Join(words[i:i+width], " "))
	}
	return out, nil
}

// Hash returns the 64-bit feature of a textual n-gram or shingle.
func Hash(s string) uint64 {
	return xxhash.Sum64String(s)
}

// HashBytes returns the 64-bit feature of a raw byte chunk.
func HashBytes(b []byte) uint64 {
	return xxhash.Sum64(b)
}

// HashAll hashes every item of a feature list.
func HashAll(items []string) []uint64 {
	out := make([]uint64, len(items))
	for i, s := range items {
		out[i] = Hash(s)
	}
	return out
}
