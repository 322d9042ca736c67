package iscc

import (
	"bytes"
	"io"
	"time"

	"github.com/hupe1980/iscc/cdc"
	"github.com/hupe1980/iscc/codec"
	"github.com/hupe1980/iscc/features"
	"github.com/hupe1980/iscc/minhash"
)

// DataID derives the data code of an encoded stream. The stream chunks
// content-defined, so shifting, inserting or deleting bytes disturbs
// only nearby chunks and near-identical files keep small distances. The
// stream is read exactly once and never held in memory as a whole.
func (g *Generator) DataID(r io.Reader) (*Code, error) {
	start := time.Now()
	code, read, chunks, err := g.dataID(r)
	g.metrics.RecordData(time.Since(start), err)
	g.logger.LogStream("data-id", read, chunks, err)
	return code, opError("data-id", err)
}

// DataIDBytes derives the data code of in-memory data.
func (g *Generator) DataIDBytes(data []byte) (*Code, error) {
	return g.DataID(bytes.NewReader(data))
}

func (g *Generator) dataID(r io.Reader) (*Code, uint64, int, error) {
	chunker, err := cdc.NewChunker(r, g.opts.chunkerOptions...)
	if err != nil {
		return nil, 0, 0, err
	}

	hasher, err := minhash.New(signatureSize)
	if err != nil {
		return nil, 0, 0, err
	}

	var read uint64
	chunks := 0
	for chunk, err := range chunker.All() {
		if err != nil {
			return nil, read, chunks, err
		}
		hasher.Add(features.HashBytes(chunk.Data))
		read += uint64(len(chunk.Data))
		chunks++
	}

	digest, err := foldSignature(hasher.Signature())
	if err != nil {
		return nil, read, chunks, err
	}

	code, err := newCode(codec.KindData, false, digest)
	return code, read, chunks, err
}

// DataID derives a data code with default options.
func DataID(r io.Reader) (*Code, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.DataID(r)
}
