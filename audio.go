package iscc

import (
	"encoding/binary"
	"time"

	"github.com/hupe1980/iscc/codec"
	"github.com/hupe1980/iscc/simhash"
)

// audioWindowSize is the sliding window over fingerprint values. Each
// window packs into one input digest for the similarity hash.
const audioWindowSize = 8

// ContentIDAudio derives the content code of an audio fingerprint, the
// raw signed 32-bit values of a chromaprint. Set partial when the
// fingerprint covers only part of the asset.
func (g *Generator) ContentIDAudio(fingerprint []int32, partial bool) (*Code, error) {
	start := time.Now()
	code, err := g.contentIDAudio(fingerprint, partial)
	g.metrics.RecordContent(codec.KindContentAudio, time.Since(start), err)
	g.logger.LogCode("content-id-audio", codeStr(code), err)
	return code, opError("content-id-audio", err)
}

func (g *Generator) contentIDAudio(fingerprint []int32, partial bool) (*Code, error) {
	if len(fingerprint) == 0 {
		return nil, ErrEmptyInput
	}

	// A fingerprint shorter than one window zero-pads to full width, so
	// very short clips still produce a code.
	if len(fingerprint) < audioWindowSize {
		padded := make([]int32, audioWindowSize)
		copy(padded, fingerprint)
		fingerprint = padded
	}

	hasher := simhash.New()
	buf := make([]byte, 4*audioWindowSize)
	for i := 0; i+audioWindowSize <= len(fingerprint); i++ {
		for k, v := range fingerprint[i : i+audioWindowSize] {
			binary.BigEndian.PutUint32(buf[k*4:], uint32(v))
		}
		if err := hasher.Add(buf); err != nil {
			return nil, err
		}
	}

	digest, err := hasher.Sum()
	if err != nil {
		return nil, err
	}

	return newCode(codec.KindContentAudio, partial, digest[:digestSize])
}

// ContentIDAudio derives a content-audio code with default options.
func ContentIDAudio(fingerprint []int32, partial bool) (*Code, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.ContentIDAudio(fingerprint, partial)
}
