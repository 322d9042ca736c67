// Package normalize prepares raw inputs for feature extraction. Text
// passes through Unicode normalization and category filtering so that
// encoding, casing and punctuation variants of the same content produce
// identical features; images reduce to a small grayscale matrix that
// discards resolution and color.
package normalize

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/unicode/norm"
)

// ErrInvalidUTF8 is returned by Decode when no encoding is given and
// the input is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8 input")

// Decode converts raw text bytes into an NFKC-normalized string. A nil
// encoding means strict UTF-8; any other x/text encoding is used as the
// decoder, and its errors pass through unchanged. A single leading byte
// order mark is dropped.
func Decode(data []byte, enc encoding.Encoding) (string, error) {
	var s string
	if enc == nil {
		if !utf8.Valid(data) {
			return "", ErrInvalidUTF8
		}
		s = string(data)
	} else {
		decoded, err := enc.NewDecoder().Bytes(data)
		if err != nil {
			return "", err
		}
		s = string(decoded)
	}
	s = strings.TrimPrefix(s, "\uFEFF")
	return norm.NFKC.String(s), nil
}

// Clean applies NFKC normalization, folding compatibility variants
// (ligatures, full-width forms, presentation digits) into their plain
// equivalents.
func Clean(s string) string {
	return norm.NFKC.String(s)
}

// Text canonicalizes a string for similarity hashing. The input is
// decomposed (NFD) and filtered rune by rune: whitespace becomes a
// plain space, letters, digits and symbols are kept lowercased, and
// everything else (marks, punctuation, controls) is dropped. Runs of
// spaces collapse to one when keepWhitespace is set and disappear
// entirely otherwise. The result is recomposed (NFC) and idempotent
// under repeated application.
func Text(s string, keepWhitespace bool) string {
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsSymbol(r):
			b.WriteRune(unicode.ToLower(r))
		}
	}

	sep := ""
	if keepWhitespace {
		sep = " "
	}
	collapsed := strings.Join(strings.Fields(b.String()), sep)

	return norm.NFC.String(collapsed)
}

// Trim cuts s to the longest prefix whose UTF-8 encoding fits maxBytes
// without splitting a rune, then strips surrounding whitespace.
func Trim(s string, maxBytes int) string {
	if maxBytes <= 0 {
		return ""
	}
	if len(s) > maxBytes {
		cut := maxBytes
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	return strings.TrimSpace(s)
}
