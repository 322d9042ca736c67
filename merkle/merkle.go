// Package merkle implements the double-SHA256 hash tree behind instance
// codes. Chunks hash into leaf digests, adjacent digests pair into inner
// digests, and the surviving digest is the tree root. An odd digest at
// any level pairs with itself, so the root is defined for every positive
// leaf count.
package merkle

import (
	"crypto/sha256"
	"errors"
)

// Digest is a double-SHA256 tree node.
type Digest [32]byte

// ErrNoLeaves is returned when a root is requested for an empty tree.
var ErrNoLeaves = errors.New("no leaves")

// SHA256d returns SHA-256 applied twice.
func SHA256d(data []byte) Digest {
	first := sha256.Sum256(data)
	return sha256.Sum256(first[:])
}

// Leaf returns the leaf digest of a raw chunk.
func Leaf(chunk []byte) Digest {
	return SHA256d(chunk)
}

// Inner returns the digest of two child digests.
func Inner(left, right Digest) Digest {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return SHA256d(buf[:])
}

// TopHash folds an ordered list of leaf digests into the tree root. A
// single leaf is its own root, unchanged.
func TopHash(leaves []Digest) (Digest, error) {
	if len(leaves) == 0 {
		return Digest{}, ErrNoLeaves
	}

	level := make([]Digest, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		n := len(level)
		for j := 0; j < n/2; j++ {
			level[j] = Inner(level[2*j], level[2*j+1])
		}
		if n%2 == 1 {
			level[n/2] = Inner(level[n-1], level[n-1])
		}
		level = level[:(n+1)/2]
	}
	return level[0], nil
}

// Tree accumulates leaves for a streaming source. Not safe for
// concurrent use.
type Tree struct {
	leaves []Digest
}

// NewTree creates an empty tree.
func NewTree() *Tree {
	return &Tree{}
}

// Add hashes a chunk and appends its leaf digest.
func (t *Tree) Add(chunk []byte) {
	t.leaves = append(t.leaves, Leaf(chunk))
}

// AddLeaf appends an already hashed leaf digest.
func (t *Tree) AddLeaf(d Digest) {
	t.leaves = append(t.leaves, d)
}

// Leaves returns the number of leaves added so far.
func (t *Tree) Leaves() int {
	return len(t.leaves)
}

// Root folds the current leaves into the tree root.
func (t *Tree) Root() (Digest, error) {
	return TopHash(t.leaves)
}
