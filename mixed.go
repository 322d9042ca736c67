package iscc

import (
	"time"

	"github.com/hupe1980/iscc/codec"
	"github.com/hupe1980/iscc/simhash"
)

// ContentIDMixed derives the content code of a collection from the
// content codes of its parts, for assets that mix media types. At least
// two content codes are required; every input must be a content kind.
func (g *Generator) ContentIDMixed(codes []string, partial bool) (*Code, error) {
	start := time.Now()
	code, err := g.contentIDMixed(codes, partial)
	g.metrics.RecordContent(codec.KindContentMixed, time.Since(start), err)
	g.logger.LogCode("content-id-mixed", codeStr(code), err)
	return code, opError("content-id-mixed", err)
}

func (g *Generator) contentIDMixed(codes []string, partial bool) (*Code, error) {
	if len(codes) < 2 {
		return nil, ErrInsufficientCodes
	}

	hasher := simhash.New()
	for i, c := range codes {
		parsed, err := Parse(c)
		if err != nil {
			return nil, err
		}
		if !parsed.Kind().Content() {
			return nil, &WrongKindError{Index: i, Kind: parsed.Kind()}
		}

		// The header byte joins the feature digest, so codes of different
		// media types keep some distance even over similar bodies.
		feature := make([]byte, 0, digestSize)
		feature = append(feature, byte(parsed.Header))
		feature = append(feature, parsed.Digest[:digestSize-1]...)
		if err := hasher.Add(feature); err != nil {
			return nil, err
		}
	}

	digest, err := hasher.Sum()
	if err != nil {
		return nil, err
	}

	return newCode(codec.KindContentMixed, partial, digest)
}

// ContentIDMixed derives a content-mixed code with default options.
func ContentIDMixed(codes []string, partial bool) (*Code, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.ContentIDMixed(codes, partial)
}
