package iscc_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/iscc"
	"github.com/hupe1980/iscc/cdc"
	"github.com/hupe1980/iscc/codec"
	"github.com/hupe1980/iscc/testutil"
)

func TestDataID(t *testing.T) {
	pattern := testutil.Bytes(0xDA7A, 200000)

	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"empty", nil, "CDGD21N1afqnz"},
		{"short", []byte("hello world"), "CDffo111SJQca"},
		{"pattern", pattern, "CDh8gqkmT4ndb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := iscc.DataID(bytes.NewReader(tt.data))
			require.NoError(t, err)

			assert.Equal(t, tt.want, code.Code)
			assert.Equal(t, codec.KindData, code.Kind())
			assert.False(t, code.Partial())
		})
	}
}

func TestDataIDFramingIndependence(t *testing.T) {
	pattern := testutil.Bytes(0xDA7A, 200000)

	code, err := iscc.DataID(iotest.OneByteReader(bytes.NewReader(pattern)))
	require.NoError(t, err)
	assert.Equal(t, "CDh8gqkmT4ndb", code.Code)
}

func TestDataIDBytes(t *testing.T) {
	g, err := iscc.New()
	require.NoError(t, err)

	code, err := g.DataIDBytes([]byte("hello world"))
	require.NoError(t, err)
	assert.Equal(t, "CDffo111SJQca", code.Code)
}

func TestDataIDSingleBitFlip(t *testing.T) {
	pattern := testutil.Bytes(0xDA7A, 200000)
	mutated := bytes.Clone(pattern)
	mutated[100000] ^= 0x01

	a, err := iscc.DataID(bytes.NewReader(pattern))
	require.NoError(t, err)
	b, err := iscc.DataID(bytes.NewReader(mutated))
	require.NoError(t, err)

	assert.Equal(t, "CDh8hGekyuBwY", b.Code)

	dist, err := a.Distance(b)
	require.NoError(t, err)
	assert.Equal(t, 3, dist)
}

func TestDataIDReadError(t *testing.T) {
	sentinel := errors.New("disk gone")
	r := io.MultiReader(bytes.NewReader(testutil.Bytes(1, 5000)), iotest.ErrReader(sentinel))

	_, err := iscc.DataID(r)
	assert.ErrorIs(t, err, sentinel)
	assert.ErrorContains(t, err, "data-id")
}

func TestDataIDChunkerOptions(t *testing.T) {
	pattern := testutil.Bytes(0xDA7A, 200000)

	g, err := iscc.New(iscc.WithChunkerOptions(cdc.WithSeed(0xBEEF)))
	require.NoError(t, err)

	code, err := g.DataIDBytes(pattern)
	require.NoError(t, err)
	assert.NotEqual(t, "CDh8gqkmT4ndb", code.Code)

	// The configured seed stays deterministic across calls.
	again, err := g.DataIDBytes(pattern)
	require.NoError(t, err)
	assert.Equal(t, code.Code, again.Code)
}
