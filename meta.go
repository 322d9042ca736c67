package iscc

import (
	"strings"
	"time"

	"github.com/hupe1980/iscc/codec"
	"github.com/hupe1980/iscc/features"
	"github.com/hupe1980/iscc/normalize"
	"github.com/hupe1980/iscc/simhash"
)

const (
	// DefaultTrimTitle is the byte budget for the title field.
	DefaultTrimTitle = 128

	// DefaultTrimExtra is the byte budget for the extra field.
	DefaultTrimExtra = 4096

	// metaNgramWidth is the rune n-gram width for metadata hashing.
	metaNgramWidth = 3
)

// MetaResult is a derived meta code together with the trimmed field
// values that actually entered the hash.
type MetaResult struct {
	Code

	Title string
	Extra string
}

// MetaID derives the meta code from descriptive metadata. The title
// carries the weight; extra takes an optional disambiguating suffix
// (subtitle, creator, edition). Field order matters: swapped fields
// produce a different code.
func (g *Generator) MetaID(title, extra string) (*MetaResult, error) {
	start := time.Now()
	res, err := g.metaID(title, extra)
	g.metrics.RecordMeta(time.Since(start), err)
	g.logger.LogCode("meta-id", metaCode(res), err)
	return res, opError("meta-id", err)
}

// MetaIDBytes is MetaID over raw text bytes in the configured encoding.
func (g *Generator) MetaIDBytes(title, extra []byte) (*MetaResult, error) {
	start := time.Now()
	res, err := g.metaIDBytes(title, extra)
	g.metrics.RecordMeta(time.Since(start), err)
	g.logger.LogCode("meta-id", metaCode(res), err)
	return res, opError("meta-id", err)
}

func metaCode(res *MetaResult) string {
	if res == nil {
		return ""
	}
	return res.Code.Code
}

func (g *Generator) metaIDBytes(title, extra []byte) (*MetaResult, error) {
	t, err := normalize.Decode(title, g.opts.textEncoding)
	if err != nil {
		return nil, err
	}
	e, err := normalize.Decode(extra, g.opts.textEncoding)
	if err != nil {
		return nil, err
	}
	return g.metaID(t, e)
}

func (g *Generator) metaID(title, extra string) (*MetaResult, error) {
	title = normalize.Trim(normalize.Clean(title), g.opts.trimTitle)
	extra = normalize.Trim(normalize.Clean(extra), g.opts.trimExtra)

	concat := strings.TrimSpace(title + " " + extra)
	normalized := normalize.Text(concat, true)
	if normalized == "" {
		return nil, ErrEmptyInput
	}

	ngrams, err := features.Ngrams(normalized, metaNgramWidth)
	if err != nil {
		return nil, err
	}

	h := simhash.New()
	if err := hashDigests(h, features.HashAll(ngrams)); err != nil {
		return nil, err
	}
	digest, err := h.Sum()
	if err != nil {
		return nil, err
	}

	code, err := newCode(codec.KindMeta, false, digest)
	if err != nil {
		return nil, err
	}

	return &MetaResult{Code: *code, Title: title, Extra: extra}, nil
}

// MetaID derives a meta code with default options.
func MetaID(title, extra string) (*MetaResult, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.MetaID(title, extra)
}
