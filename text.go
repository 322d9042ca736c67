package iscc

import (
	"encoding/base64"
	"encoding/binary"
	"strings"
	"time"

	"github.com/hupe1980/iscc/cdc"
	"github.com/hupe1980/iscc/codec"
	"github.com/hupe1980/iscc/features"
	"github.com/hupe1980/iscc/minhash"
	"github.com/hupe1980/iscc/normalize"
)

const (
	// textShingleWidth is the word window for text similarity hashing.
	textShingleWidth = 5

	// featureNgramWidth is the rune n-gram width for granular text
	// features.
	featureNgramWidth = 13

	// signatureSize is the minhash size behind content-text and data
	// codes. The folded signature must fill exactly 8 bytes.
	signatureSize = 128
)

// ContentIDText derives the content code of extracted plain text. Typo
// -level edits move few bits, so near-duplicate texts land close in
// Hamming space. Set partial when the text covers only part of the
// asset.
func (g *Generator) ContentIDText(text string, partial bool) (*Code, error) {
	start := time.Now()
	code, err := g.contentIDText(text, partial)
	g.metrics.RecordContent(codec.KindContentText, time.Since(start), err)
	g.logger.LogCode("content-id-text", codeStr(code), err)
	return code, opError("content-id-text", err)
}

// ContentIDTextBytes is ContentIDText over raw bytes in the configured
// encoding.
func (g *Generator) ContentIDTextBytes(data []byte, partial bool) (*Code, error) {
	start := time.Now()
	code, err := g.contentIDTextBytes(data, partial)
	g.metrics.RecordContent(codec.KindContentText, time.Since(start), err)
	g.logger.LogCode("content-id-text", codeStr(code), err)
	return code, opError("content-id-text", err)
}

func (g *Generator) contentIDTextBytes(data []byte, partial bool) (*Code, error) {
	text, err := normalize.Decode(data, g.opts.textEncoding)
	if err != nil {
		return nil, err
	}
	return g.contentIDText(text, partial)
}

func (g *Generator) contentIDText(text string, partial bool) (*Code, error) {
	normalized := normalize.Text(text, true)
	if normalized == "" {
		return nil, ErrEmptyInput
	}

	shingles, err := features.Shingles(strings.Split(normalized, " "), textShingleWidth)
	if err != nil {
		return nil, err
	}

	sig, err := minhash.Sum(features.HashAll(shingles), signatureSize)
	if err != nil {
		return nil, err
	}
	digest, err := foldSignature(sig)
	if err != nil {
		return nil, err
	}

	return newCode(codec.KindContentText, partial, digest)
}

// ContentIDText derives a content-text code with default options.
func ContentIDText(text string, partial bool) (*Code, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.ContentIDText(text, partial)
}

// GranularFeatures describes a text as a sequence of chunk-level
// similarity features, for matching shared passages between assets.
type GranularFeatures struct {
	// Kind names the feature type, always "text".
	Kind string

	// Version is the feature algorithm version.
	Version int

	// Features holds one base64url feature per chunk.
	Features []string

	// Sizes holds the chunk lengths in characters, aligned with
	// Features.
	Sizes []int

	// Distinct counts unique features.
	Distinct int
}

// TextFeatures chunks normalized text content-defined and derives a
// compact similarity feature per chunk.
func (g *Generator) TextFeatures(text string) (*GranularFeatures, error) {
	res, err := g.textFeatures(text)
	if err != nil {
		g.logger.Error("text features failed", "error", err)
		return nil, opError("text-features", err)
	}
	g.logger.Debug("text features derived", "chunks", len(res.Features), "distinct", res.Distinct)
	return res, nil
}

func (g *Generator) textFeatures(text string) (*GranularFeatures, error) {
	normalized := normalize.Text(text, true)
	if normalized == "" {
		return nil, ErrEmptyInput
	}

	// Chunk boundaries are found on the UTF-32 big-endian encoding and
	// aligned down to rune width, so cuts never split a character.
	runes := []rune(normalized)
	data := make([]byte, 4*len(runes))
	for i, r := range runes {
		binary.BigEndian.PutUint32(data[i*4:], uint32(r))
	}

	gear := cdc.DefaultGear()
	set := features.NewSet()
	res := &GranularFeatures{Kind: "text", Version: 0}

	for off := 0; off < len(data); {
		rest := data[off:]
		cut := gear.Boundary(rest, cdc.DefaultMinSize, cdc.DefaultNormSize, cdc.DefaultMaxSize, cdc.DefaultMaskTight, cdc.DefaultMaskLoose)
		cut -= cut % 4

		chunk := string(runes[off/4 : (off+cut)/4])
		feature, err := g.chunkFeature(chunk)
		if err != nil {
			return nil, err
		}

		res.Features = append(res.Features, base64.RawURLEncoding.EncodeToString(feature))
		res.Sizes = append(res.Sizes, cut/4)
		set.Add(features.HashBytes(feature))

		off += cut
	}

	res.Distinct = int(set.Cardinality())
	return res, nil
}

// chunkFeature compresses one text chunk into an 8-byte feature.
func (g *Generator) chunkFeature(chunk string) ([]byte, error) {
	ngrams, err := features.Ngrams(chunk, featureNgramWidth)
	if err != nil {
		return nil, err
	}
	sig, err := minhash.Sum(features.HashAll(ngrams), minhash.DefaultSize)
	if err != nil {
		return nil, err
	}
	return minhash.Compress(sig, 1)
}

// TextFeatures derives granular text features with default options.
func TextFeatures(text string) (*GranularFeatures, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.TextFeatures(text)
}
