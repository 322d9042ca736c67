// Package cdc implements content-defined chunking with a gear rolling
// hash and normalized chunking. Cut points depend only on the bytes in
// the rolling window, so identical content chunks identically no matter
// how it is framed or where it sits in the stream; inserting or deleting
// bytes disturbs only the chunks around the edit.
//
// Two masks steer chunk sizes toward the target: a tight mask (more
// bits) below the target size makes early cuts rare, a loose mask after
// it makes late cuts likely.
package cdc

import "github.com/hupe1980/iscc/internal/splitmix"

// Gear is the byte-to-fingerprint table of the rolling hash. The table
// derives deterministically from a seed, so a given seed always chunks
// a given input the same way.
type Gear [256]uint64

// NewGear derives a gear table from seed via splitmix64.
func NewGear(seed uint64) *Gear {
	var g Gear
	state := seed
	for i := range g {
		g[i] = splitmix.Next(&state)
	}
	return &g
}

// defaultGear backs every chunker that keeps the default seed.
var defaultGear = NewGear(DefaultSeed)

// DefaultGear returns the shared gear table for the default seed. The
// table is read-only after init, so sharing it is safe.
func DefaultGear() *Gear {
	return defaultGear
}

// Boundary returns the length of the first chunk of data.
//
// Data of minSize bytes or less is one chunk. Beyond that the rolling
// fingerprint folds in one byte at a time starting at offset minSize;
// the first offset whose fingerprint has no bit in common with the
// active mask becomes the cut. The triggering byte is excluded: it
// starts the next chunk. Without a match the chunk closes at maxSize,
// or at the end of data.
//
// The caller must present at least maxSize bytes unless data ends the
// stream, otherwise the cut would depend on buffer framing.
func (g *Gear) Boundary(data []byte, minSize, normSize, maxSize int, maskTight, maskLoose uint64) int {
	n := len(data)
	if n <= minSize {
		return n
	}

	i := minSize
	var fp uint64

	barrier := min(normSize, n)
	for ; i < barrier; i++ {
		fp = fp<<1 + g[data[i]]
		if fp&maskTight == 0 {
			return i
		}
	}

	barrier = min(maxSize, n)
	for ; i < barrier; i++ {
		fp = fp<<1 + g[data[i]]
		if fp&maskLoose == 0 {
			return i
		}
	}

	return i
}
