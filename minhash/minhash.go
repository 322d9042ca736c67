// Package minhash implements bottom-value MinHash signatures over
// 64-bit features. Each signature slot keeps the minimum of a fixed
// universal hash permutation across all features, so the fraction of
// equal slots between two signatures estimates the Jaccard similarity
// of the underlying feature sets.
//
// The permutations are derived once per signature size from a splitmix64
// sequence with a fixed seed. That derivation is part of the identifier
// contract: signatures of the same features are stable across versions
// and platforms.
package minhash

import (
	"errors"
	"math"
	"math/bits"
	"sync"

	"github.com/hupe1980/iscc/internal/splitmix"
)

const (
	// DefaultSize is the signature size used for granular features.
	DefaultSize = 64

	// Seed starts the splitmix64 sequence the permutations are drawn
	// from ("ISCC" in big-endian ASCII).
	Seed uint64 = 0x49534343

	// mersennePrime is the modulus of the universal hash family.
	mersennePrime = uint64(1)<<61 - 1

	maxHash = uint64(math.MaxUint32)
)

var (
	// ErrInvalidSize is returned for signature sizes below 1.
	ErrInvalidSize = errors.New("signature size must be positive")

	// ErrInvalidBits is returned when a compression bit count is outside
	// [1, 32] or the packed signature is not byte-aligned.
	ErrInvalidBits = errors.New("invalid compression bit count")

	// ErrEmptyInput is returned when comparing empty signatures.
	ErrEmptyInput = errors.New("empty signature")

	// ErrLengthMismatch is returned when comparing signatures of
	// different sizes.
	ErrLengthMismatch = errors.New("signature size mismatch")
)

// Signature holds the per-permutation minima, each masked to 32 bits.
type Signature []uint32

// permutation parameters per signature size, derived lazily and shared.
type perms struct {
	a []uint64 // multipliers in [1, p-1]
	b []uint64 // addends in [0, p-1]
}

var (
	permMu    sync.Mutex
	permCache = make(map[int]*perms)
)

func permsFor(size int) *perms {
	permMu.Lock()
	defer permMu.Unlock()

	if p, ok := permCache[size]; ok {
		return p
	}

	p := &perms{
		a: make([]uint64, size),
		b: make([]uint64, size),
	}
	state := Seed
	for i := 0; i < size; i++ {
		p.a[i] = splitmix.Next(&state)%(mersennePrime-1) + 1
		p.b[i] = splitmix.Next(&state) % mersennePrime
	}
	permCache[size] = p
	return p
}

// Hasher folds a stream of features into a signature without retaining
// the features. Not safe for concurrent use.
type Hasher struct {
	perms *perms
	mins  []uint32
	n     int
}

// New creates a Hasher producing signatures with size slots.
func New(size int) (*Hasher, error) {
	if size < 1 {
		return nil, ErrInvalidSize
	}

	h := &Hasher{
		perms: permsFor(size),
		mins:  make([]uint32, size),
	}
	for i := range h.mins {
		h.mins[i] = math.MaxUint32
	}
	return h, nil
}

// Add folds one feature into the signature.
func (h *Hasher) Add(feature uint64) {
	for i := range h.mins {
		v := uint32(addmod61(mulmod61(h.perms.a[i], feature), h.perms.b[i]) & maxHash)
		if v < h.mins[i] {
			h.mins[i] = v
		}
	}
	h.n++
}

// Count returns the number of features added so far.
func (h *Hasher) Count() int {
	return h.n
}

// Signature returns a copy of the current minima. With no features
// added every slot is at its maximum.
func (h *Hasher) Signature() Signature {
	out := make(Signature, len(h.mins))
	copy(out, h.mins)
	return out
}

// Sum computes the signature of a feature list in one call.
func Sum(features []uint64, size int) (Signature, error) {
	h, err := New(size)
	if err != nil {
		return nil, err
	}
	for _, f := range features {
		h.Add(f)
	}
	return h.Signature(), nil
}

// Similarity estimates the Jaccard similarity of the feature sets
// behind two signatures as the fraction of equal slots.
func Similarity(a, b Signature) (float64, error) {
	if len(a) != len(b) {
		return 0, ErrLengthMismatch
	}
	if len(a) == 0 {
		return 0, ErrEmptyInput
	}

	equal := 0
	for i := range a {
		if a[i] == b[i] {
			equal++
		}
	}
	return float64(equal) / float64(len(a)), nil
}

// Compress packs the low n bits of every slot into a byte digest. Bit
// planes come first: the lowest bit of every slot in order, then the
// next bit, packed most significant first. len(sig)*n must be a
// multiple of 8.
func Compress(sig Signature, n int) ([]byte, error) {
	if n < 1 || n > 32 {
		return nil, ErrInvalidBits
	}
	total := len(sig) * n
	if total == 0 || total%8 != 0 {
		return nil, ErrInvalidBits
	}

	out := make([]byte, total/8)
	pos := 0
	for bit := 0; bit < n; bit++ {
		for _, v := range sig {
			if v>>bit&1 == 1 {
				out[pos/8] |= 1 << (7 - pos%8)
			}
			pos++
		}
	}
	return out, nil
}

// addmod61 adds two values below the Mersenne prime 2^61-1.
func addmod61(a, b uint64) uint64 {
	s := a + b
	if s >= mersennePrime {
		s -= mersennePrime
	}
	return s
}

// mulmod61 multiplies modulo the Mersenne prime 2^61-1 using the
// congruence 2^64 ≡ 8.
func mulmod61(a, b uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	s, c := bits.Add64(mod61(lo), mod61(hi)*8, 0)
	return mod61(mod61(s) + c*8)
}

func mod61(x uint64) uint64 {
	x = (x >> 61) + (x & mersennePrime)
	if x >= mersennePrime {
		x -= mersennePrime
	}
	return x
}
