package cdc_test

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/cespare/xxhash/v2"

	"github.com/hupe1980/iscc/cdc"
	"github.com/hupe1980/iscc/testutil"
)

// Chunk sizes of the 200 KB reference stream under default options.
var patternSizes = []int{
	11514, 4184, 6142, 8753, 4098, 7372, 5223, 7100,
	4237, 9312, 4358, 4346, 6537, 5093, 5226, 4459,
	4441, 5450, 5523, 6462, 5286, 7790, 5985, 9612,
	4241, 5118, 7615, 4741, 6795, 13500, 8850, 637,
}

func pattern() []byte {
	return testutil.Bytes(0xDA7A, 200000)
}

func collect(t *testing.T, c *cdc.Chunker) []cdc.Chunk {
	t.Helper()

	var out []cdc.Chunk
	for {
		chunk, err := c.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		out = append(out, chunk)
	}
}

func TestChunkerPattern(t *testing.T) {
	t.Parallel()

	data := pattern()
	c, err := cdc.NewChunker(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	chunks := collect(t, c)
	if len(chunks) != len(patternSizes) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(patternSizes))
	}

	var offset uint64
	for i, chunk := range chunks {
		if len(chunk.Data) != patternSizes[i] {
			t.Errorf("chunk %d: size %d, want %d", i, len(chunk.Data), patternSizes[i])
		}
		if chunk.Offset != offset {
			t.Errorf("chunk %d: offset %d, want %d", i, chunk.Offset, offset)
		}
		if !bytes.Equal(chunk.Data, data[offset:offset+uint64(len(chunk.Data))]) {
			t.Errorf("chunk %d: data does not match the source range", i)
		}
		offset += uint64(len(chunk.Data))
	}
	if offset != uint64(len(data)) {
		t.Errorf("chunks cover %d bytes, want %d", offset, len(data))
	}

	if got := xxhash.Sum64(chunks[0].Data); got != 0xe3c29fbc3efd384d {
		t.Errorf("first chunk hash = %#016x, want 0xe3c29fbc3efd384d", got)
	}
}

// Chunk boundaries must not depend on reader framing or buffer size.
func TestChunkerFramingIndependence(t *testing.T) {
	t.Parallel()

	data := pattern()

	reference, err := cdc.NewChunker(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	want := collect(t, reference)

	tests := []struct {
		name   string
		reader io.Reader
		opts   []cdc.Option
	}{
		{"one byte reads", iotest.OneByteReader(bytes.NewReader(data)), nil},
		{"half reads", iotest.HalfReader(bytes.NewReader(data)), nil},
		{"minimal buffer", bytes.NewReader(data), []cdc.Option{cdc.WithBufferSize(cdc.DefaultMaxSize)}},
		{"odd buffer", bytes.NewReader(data), []cdc.Option{cdc.WithBufferSize(70001)}},
		{"tiny buffer raised to max", bytes.NewReader(data), []cdc.Option{cdc.WithBufferSize(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := cdc.NewChunker(tt.reader, tt.opts...)
			if err != nil {
				t.Fatal(err)
			}

			got := collect(t, c)
			if len(got) != len(want) {
				t.Fatalf("got %d chunks, want %d", len(got), len(want))
			}
			for i := range got {
				if got[i].Offset != want[i].Offset || !bytes.Equal(got[i].Data, want[i].Data) {
					t.Fatalf("chunk %d differs from reference", i)
				}
			}
		})
	}
}

// An edit near a cut point moves that boundary, but the chunk streams
// re-synchronize at the next shared boundary and stay identical after.
func TestChunkerEditResync(t *testing.T) {
	t.Parallel()

	data := pattern()
	orig, err := cdc.NewChunker(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	want := collect(t, orig)

	edited := bytes.Clone(data)
	edited[11500] ^= 0x01

	c, err := cdc.NewChunker(bytes.NewReader(edited))
	if err != nil {
		t.Fatal(err)
	}
	got := collect(t, c)

	// The flip erases the first cut, merging territory of the first two
	// chunks into a new pair.
	if len(got) != len(want)-1 {
		t.Fatalf("got %d chunks, want %d", len(got), len(want)-1)
	}
	if len(got[0].Data) != 13728 || len(got[1].Data) != 8112 {
		t.Fatalf("leading chunk sizes %d, %d; want 13728, 8112", len(got[0].Data), len(got[1].Data))
	}

	// Both streams share the boundary at offset 21840 and chunk
	// identically from there.
	if got[2].Offset != 21840 || want[3].Offset != 21840 {
		t.Fatalf("no shared boundary at 21840: got %d, want %d", got[2].Offset, want[3].Offset)
	}
	for i := 2; i < len(got); i++ {
		if got[i].Offset != want[i+1].Offset || !bytes.Equal(got[i].Data, want[i+1].Data) {
			t.Fatalf("chunk %d did not re-synchronize with the reference", i)
		}
	}
}

func TestChunkerEmpty(t *testing.T) {
	t.Parallel()

	c, err := cdc.NewChunker(bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}

	chunk, err := c.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunk.Offset != 0 || len(chunk.Data) != 0 {
		t.Errorf("got offset %d size %d, want the empty chunk", chunk.Offset, len(chunk.Data))
	}

	for i := 0; i < 2; i++ {
		if _, err := c.Next(); !errors.Is(err, io.EOF) {
			t.Fatalf("call %d after end: got %v, want io.EOF", i, err)
		}
	}
}

func TestChunkerSmallInput(t *testing.T) {
	t.Parallel()

	data := testutil.Bytes(3, 100)
	c, err := cdc.NewChunker(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	chunks := collect(t, c)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if !bytes.Equal(chunks[0].Data, data) {
		t.Error("single chunk does not match the input")
	}
}

func TestChunkerAll(t *testing.T) {
	t.Parallel()

	data := pattern()

	byNext, err := cdc.NewChunker(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	want := collect(t, byNext)

	byAll, err := cdc.NewChunker(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	var got []cdc.Chunk
	for chunk, err := range byAll.All() {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, chunk)
	}

	if len(got) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(got), len(want))
	}
	for i := range got {
		if got[i].Offset != want[i].Offset || !bytes.Equal(got[i].Data, want[i].Data) {
			t.Fatalf("chunk %d differs between All and Next", i)
		}
	}
}

func TestChunkerAllEarlyBreak(t *testing.T) {
	t.Parallel()

	c, err := cdc.NewChunker(bytes.NewReader(pattern()))
	if err != nil {
		t.Fatal(err)
	}

	seen := 0
	for range c.All() {
		seen++
		if seen == 3 {
			break
		}
	}
	if seen != 3 {
		t.Fatalf("got %d chunks before break, want 3", seen)
	}

	// The chunker itself remains usable after an abandoned iteration.
	chunk, err := c.Next()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chunk.Data) != patternSizes[3] {
		t.Errorf("resumed chunk size %d, want %d", len(chunk.Data), patternSizes[3])
	}
}

func TestChunkerReadError(t *testing.T) {
	t.Parallel()

	errBroken := errors.New("broken pipe")
	r := io.MultiReader(bytes.NewReader(testutil.Bytes(9, 5000)), iotest.ErrReader(errBroken))

	c, err := cdc.NewChunker(r)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := c.Next(); !errors.Is(err, errBroken) {
		t.Fatalf("got %v, want the reader error", err)
	}

	// All yields the error once and stops.
	c.Reset(io.MultiReader(bytes.NewReader(testutil.Bytes(9, 5000)), iotest.ErrReader(errBroken)))
	var errs []error
	for _, err := range c.All() {
		errs = append(errs, err)
	}
	if len(errs) != 1 || !errors.Is(errs[0], errBroken) {
		t.Fatalf("got %v, want exactly the reader error", errs)
	}
}

func TestChunkerDataOwnership(t *testing.T) {
	t.Parallel()

	data := pattern()

	clean, err := cdc.NewChunker(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	want := collect(t, clean)

	c, err := cdc.NewChunker(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	first, err := c.Next()
	if err != nil {
		t.Fatal(err)
	}
	for i := range first.Data {
		first.Data[i] = 0xAA
	}

	rest := collect(t, c)
	for i, chunk := range rest {
		if !bytes.Equal(chunk.Data, want[i+1].Data) {
			t.Fatalf("chunk %d corrupted by writes to an earlier chunk", i+1)
		}
	}
}

func TestChunkerOffset(t *testing.T) {
	t.Parallel()

	c, err := cdc.NewChunker(bytes.NewReader(pattern()))
	if err != nil {
		t.Fatal(err)
	}

	if c.Offset() != 0 {
		t.Fatalf("initial offset %d, want 0", c.Offset())
	}

	var consumed uint64
	for {
		chunk, err := c.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		consumed += uint64(len(chunk.Data))
		if c.Offset() != consumed {
			t.Fatalf("offset %d after %d consumed bytes", c.Offset(), consumed)
		}
	}
}

func TestChunkerReset(t *testing.T) {
	t.Parallel()

	data := pattern()
	c, err := cdc.NewChunker(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	// Consume part of the stream, then start over.
	for i := 0; i < 2; i++ {
		if _, err := c.Next(); err != nil {
			t.Fatal(err)
		}
	}

	c.Reset(bytes.NewReader(data))
	if c.Offset() != 0 {
		t.Fatalf("offset %d after reset, want 0", c.Offset())
	}

	chunks := collect(t, c)
	if len(chunks) != len(patternSizes) {
		t.Fatalf("got %d chunks after reset, want %d", len(chunks), len(patternSizes))
	}
	for i, chunk := range chunks {
		if len(chunk.Data) != patternSizes[i] {
			t.Errorf("chunk %d: size %d, want %d", i, len(chunk.Data), patternSizes[i])
		}
	}
}

func TestChunkerCustomSeed(t *testing.T) {
	t.Parallel()

	c, err := cdc.NewChunker(bytes.NewReader(pattern()), cdc.WithSeed(0xBEEF))
	if err != nil {
		t.Fatal(err)
	}

	chunks := collect(t, c)
	if len(chunks) != 35 {
		t.Fatalf("got %d chunks, want 35", len(chunks))
	}
	if len(chunks[0].Data) != 5125 {
		t.Errorf("first chunk size %d, want 5125", len(chunks[0].Data))
	}
}

func TestChunkerCustomSizes(t *testing.T) {
	t.Parallel()

	data := pattern()[:2000]
	c, err := cdc.NewChunker(
		bytes.NewReader(data),
		cdc.WithMinSize(64),
		cdc.WithNormSize(128),
		cdc.WithMaxSize(256),
	)
	if err != nil {
		t.Fatal(err)
	}

	want := []int{256, 256, 256, 256, 256, 256, 256, 208}
	chunks := collect(t, c)
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(want))
	}
	for i, chunk := range chunks {
		if len(chunk.Data) != want[i] {
			t.Errorf("chunk %d: size %d, want %d", i, len(chunk.Data), want[i])
		}
	}
}

func TestChunkerOptionErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts []cdc.Option
		want error
	}{
		{"zero min", []cdc.Option{cdc.WithMinSize(0)}, cdc.ErrInvalidMinSize},
		{"negative norm", []cdc.Option{cdc.WithNormSize(-1)}, cdc.ErrNormSizeTooSmall},
		{"zero max", []cdc.Option{cdc.WithMaxSize(0)}, cdc.ErrMaxSizeTooSmall},
		{"zero tight mask", []cdc.Option{cdc.WithMasks(0, 0xFF)}, cdc.ErrInvalidMask},
		{"zero loose mask", []cdc.Option{cdc.WithMasks(0xFF, 0)}, cdc.ErrInvalidMask},
		{"zero buffer", []cdc.Option{cdc.WithBufferSize(0)}, cdc.ErrInvalidBufferSize},
		{"min reaches norm", []cdc.Option{cdc.WithMinSize(cdc.DefaultNormSize)}, cdc.ErrNormSizeTooSmall},
		{"norm reaches max", []cdc.Option{cdc.WithNormSize(cdc.DefaultMaxSize)}, cdc.ErrMaxSizeTooSmall},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := cdc.NewChunker(bytes.NewReader(nil), tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func BenchmarkChunker(b *testing.B) {
	data := pattern()
	b.SetBytes(int64(len(data)))

	r := bytes.NewReader(data)
	c, err := cdc.NewChunker(r)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Reset(data)
		c.Reset(r)
		for {
			_, err := c.Next()
			if errors.Is(err, io.EOF) {
				break
			}
			if err != nil {
				b.Fatal(err)
			}
		}
	}
}
