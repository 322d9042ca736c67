package iscc

import (
	"bytes"
	"errors"
	"io"
	"time"

	"github.com/hupe1980/iscc/codec"
	"github.com/hupe1980/iscc/merkle"
)

// instanceReadSize is the fixed section length hashed into one tree
// leaf. Fixed sections keep the root independent of reader framing.
const instanceReadSize = 64000

// InstanceResult is an instance code with the full tree root it
// truncates.
type InstanceResult struct {
	Code

	// Root is the untruncated 256-bit tree root, usable as a checksum.
	Root merkle.Digest

	// Leaves is the number of hashed sections.
	Leaves int
}

// InstanceID derives the instance code of an exact byte sequence. Any
// change to the stream, however small, produces an unrelated code. The
// stream is read exactly once in fixed sections.
func (g *Generator) InstanceID(r io.Reader) (*InstanceResult, error) {
	start := time.Now()
	res, read, err := g.instanceID(r)
	g.metrics.RecordInstance(time.Since(start), err)
	g.logger.LogStream("instance-id", read, instanceLeaves(res), err)
	return res, opError("instance-id", err)
}

// InstanceIDBytes derives the instance code of in-memory data.
func (g *Generator) InstanceIDBytes(data []byte) (*InstanceResult, error) {
	return g.InstanceID(bytes.NewReader(data))
}

func (g *Generator) instanceID(r io.Reader) (*InstanceResult, uint64, error) {
	tree := merkle.NewTree()
	buf := make([]byte, instanceReadSize)
	var read uint64

	for {
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			tree.Add(buf[:n])
			read += uint64(n)
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return nil, read, err
		}
	}

	// An empty stream still identifies: it hashes as one empty section.
	if tree.Leaves() == 0 {
		tree.Add(nil)
	}

	root, err := tree.Root()
	if err != nil {
		return nil, read, err
	}

	code, err := newCode(codec.KindInstance, false, root[:digestSize])
	if err != nil {
		return nil, read, err
	}

	return &InstanceResult{Code: *code, Root: root, Leaves: tree.Leaves()}, read, nil
}

// instanceLeaves extracts the leaf count of a result that may be nil.
func instanceLeaves(res *InstanceResult) int {
	if res == nil {
		return 0
	}
	return res.Leaves
}

// InstanceID derives an instance code with default options.
func InstanceID(r io.Reader) (*InstanceResult, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.InstanceID(r)
}
