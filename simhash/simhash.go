// Package simhash implements the bit-majority similarity hash. The
// output digest sets every bit that at least half of the input digests
// set, so digests of overlapping feature sets land close in Hamming
// space.
package simhash

import "errors"

var (
	// ErrEmptyInput is returned when a digest is requested before any
	// input digest was added.
	ErrEmptyInput = errors.New("no input digests")

	// ErrLengthMismatch is returned when input digests differ in length.
	ErrLengthMismatch = errors.New("digest length mismatch")
)

// Hasher accumulates per-bit counts over a stream of equal-length
// digests. The digest length is fixed by the first Add call. The zero
// value is ready to use.
type Hasher struct {
	counts []int
	size   int
	n      int
}

// New creates an empty Hasher.
func New() *Hasher {
	return &Hasher{}
}

// Add feeds one digest into the accumulator.
func (h *Hasher) Add(digest []byte) error {
	if len(digest) == 0 {
		return ErrEmptyInput
	}
	if h.size == 0 {
		h.size = len(digest)
		h.counts = make([]int, h.size*8)
	}
	if len(digest) != h.size {
		return ErrLengthMismatch
	}

	for i, b := range digest {
		for k := 0; k < 8; k++ {
			h.counts[i*8+k] += int(b>>(7-k)) & 1
		}
	}
	h.n++
	return nil
}

// Count returns the number of digests added so far.
func (h *Hasher) Count() int {
	return h.n
}

// Sum returns the majority digest. An output bit is set when at least
// half of the added digests set it, so ties round up. Sum does not
// consume the accumulator.
func (h *Hasher) Sum() ([]byte, error) {
	if h.n == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]byte, h.size)
	for i := range out {
		var b byte
		for k := 0; k < 8; k++ {
			if 2*h.counts[i*8+k] >= h.n {
				b |= 1 << (7 - k)
			}
		}
		out[i] = b
	}
	return out, nil
}

// SimilarityHash returns the majority digest of a digest list in one
// call.
func SimilarityHash(digests [][]byte) ([]byte, error) {
	h := New()
	for _, d := range digests {
		if err := h.Add(d); err != nil {
			return nil, err
		}
	}
	return h.Sum()
}
