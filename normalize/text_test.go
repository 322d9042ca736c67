package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func TestDecode(t *testing.T) {
	got, err := Decode([]byte("Hello"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)

	// A single leading BOM is dropped.
	got, err = Decode([]byte("\uFEFFHello"), nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got)

	// NFKC folds compatibility forms during decoding.
	got, err = Decode([]byte("ﬁrst x²"), nil)
	require.NoError(t, err)
	assert.Equal(t, "first x2", got)
}

func TestDecodeInvalidUTF8(t *testing.T) {
	_, err := Decode([]byte{0x48, 0xFF}, nil)
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestDecodeLatin1(t *testing.T) {
	got, err := Decode([]byte{0x43, 0x61, 0x66, 0xE9}, charmap.ISO8859_1)
	require.NoError(t, err)
	assert.Equal(t, "Café", got)
}

func TestDecodeUTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

	got, err := Decode([]byte{0xFF, 0xFE, 0x48, 0x00, 0xE9, 0x00}, enc)
	require.NoError(t, err)
	assert.Equal(t, "Hé", got)
}

func TestClean(t *testing.T) {
	assert.Equal(t, "abc", Clean("abc"))
	assert.Equal(t, "fi", Clean("ﬁ"))
	assert.Equal(t, "2", Clean("²"))
	assert.Equal(t, "Hello", Clean("Ｈｅｌｌｏ"))
	// Decomposed input recomposes to a single rune.
	assert.Equal(t, "é", Clean("é"))
}

func TestText(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		keepWhitespace bool
		want           string
	}{
		{"punctuation dropped", "Hello,  World!", true, "hello world"},
		{"whitespace dropped", "Hello,  World!", false, "helloworld"},
		{"accents stripped", "Café au lait", true, "cafe au lait"},
		{"accents stripped no spaces", "Café au lait", false, "cafeaulait"},
		{"ring above stripped", "Åpple", false, "apple"},
		{"greek lowercased", "ὈΔΥΣΣΕΎΣ", true, "οδυσσευσ"},
		// NFD leaves the ligature alone; only NFKC would fold it.
		{"ligature kept", "  Ligature ﬁrst  ", true, "ligature ﬁrst"},
		{"only punctuation", "?!.,;:", true, ""},
		{"tabs and newlines", "a\tb\nc", true, "a b c"},
		{"apostrophe dropped", "don't", true, "dont"},
		{"currency symbol kept", "price 10€", true, "price 10€"},
		{"control dropped", "a\x00b", true, "ab"},
		{"empty", "", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Text(tt.input, tt.keepWhitespace)
			assert.Equal(t, tt.want, got)

			// Normalization is idempotent.
			assert.Equal(t, tt.want, Text(got, tt.keepWhitespace))
		})
	}
}

func TestTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxBytes int
		want     string
	}{
		{"fits", "hello", 10, "hello"},
		{"exact fit", "abc", 3, "abc"},
		{"cut at byte budget", "hello world", 5, "hello"},
		{"surrounding space stripped", "  pad  ", 100, "pad"},
		{"trailing space after cut", "ab cd", 3, "ab"},
		// The cut never splits a rune.
		{"multibyte boundary", "ééé", 3, "é"},
		{"multibyte first rune", "héllo", 2, "h"},
		{"zero budget", "abc", 0, ""},
		{"negative budget", "abc", -5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Trim(tt.input, tt.maxBytes))
		})
	}
}
