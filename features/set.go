package features

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
)

// Set is a set of 64-bit features backed by a roaring bitmap. It serves
// as the exact reference for the Jaccard similarity that minhash
// signatures estimate, and deduplicates granular features.
type Set struct {
	rb *roaring64.Bitmap
}

// NewSet creates a set holding the given features.
func NewSet(feats ...uint64) *Set {
	s := &Set{rb: roaring64.New()}
	for _, f := range feats {
		s.rb.Add(f)
	}
	return s
}

// Add inserts a feature.
func (s *Set) Add(f uint64) {
	s.rb.Add(f)
}

// Contains checks whether a feature is in the set.
func (s *Set) Contains(f uint64) bool {
	return s.rb.Contains(f)
}

// Cardinality returns the number of distinct features.
func (s *Set) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{rb: s.rb.Clone()}
}

// Jaccard returns |s ∩ other| / |s ∪ other|. Two empty sets have
// similarity 1.
func (s *Set) Jaccard(other *Set) float64 {
	union := s.rb.Clone()
	union.Or(other.rb)
	u := union.GetCardinality()
	if u == 0 {
		return 1.0
	}

	inter := s.rb.Clone()
	inter.And(other.rb)
	return float64(inter.GetCardinality()) / float64(u)
}
