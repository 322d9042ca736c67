package iscc

import (
	"context"
	"image"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// Document bundles the extracted views of one digital asset. Populate
// the fields a media-type extraction pipeline produced; Compute derives
// one component per populated field.
type Document struct {
	// Title and Extra are descriptive metadata for the meta code.
	Title string
	Extra string

	// Text is the extracted plain text content.
	Text string

	// Image is the decoded main image.
	Image image.Image

	// Audio is the decoded chromaprint fingerprint.
	Audio []int32

	// Data is the raw encoded asset, feeding both the data and the
	// instance code. A nil slice means absent; an empty non-nil slice
	// is a zero-byte asset.
	Data []byte
}

// Summary holds the component codes derived from one document. Fields
// of components the document did not allow stay nil.
type Summary struct {
	Meta         *MetaResult
	ContentText  *Code
	ContentImage *Code
	ContentAudio *Code
	Data         *Code
	Instance     *InstanceResult

	// ISCC joins the derived components with dashes in canonical
	// order: meta, content, data, instance.
	ISCC string
}

// Components returns the derived component codes in canonical order.
func (s *Summary) Components() []*Code {
	var out []*Code
	if s.Meta != nil {
		out = append(out, &s.Meta.Code)
	}
	if s.ContentText != nil {
		out = append(out, s.ContentText)
	}
	if s.ContentImage != nil {
		out = append(out, s.ContentImage)
	}
	if s.ContentAudio != nil {
		out = append(out, s.ContentAudio)
	}
	if s.Data != nil {
		out = append(out, s.Data)
	}
	if s.Instance != nil {
		out = append(out, &s.Instance.Code)
	}
	return out
}

// Compute derives every component code the document's populated fields
// allow, concurrently. A canceled ctx stops components that have not
// started; a failing component cancels the rest. The document must
// populate at least one field.
func (g *Generator) Compute(ctx context.Context, doc *Document) (*Summary, error) {
	start := time.Now()
	sum, err := g.compute(ctx, doc)

	components := 0
	if sum != nil {
		components = len(sum.Components())
	}
	g.metrics.RecordCompute(components, time.Since(start))
	g.logger.LogCompute(ctx, components, err)

	if err != nil {
		return nil, opError("compute", err)
	}
	return sum, nil
}

func (g *Generator) compute(ctx context.Context, doc *Document) (*Summary, error) {
	if doc == nil {
		return nil, ErrEmptyInput
	}

	sum := &Summary{}
	grp, ctx := errgroup.WithContext(ctx)
	started := 0

	// Every goroutine writes a distinct Summary field, so the group
	// wait is the only synchronization needed.
	derive := func(fn func() error) {
		started++
		grp.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn()
		})
	}

	if doc.Title != "" || doc.Extra != "" {
		derive(func() error {
			res, err := g.MetaID(doc.Title, doc.Extra)
			sum.Meta = res
			return err
		})
	}
	if doc.Text != "" {
		derive(func() error {
			code, err := g.ContentIDText(doc.Text, false)
			sum.ContentText = code
			return err
		})
	}
	if doc.Image != nil {
		derive(func() error {
			code, err := g.ContentIDImage(doc.Image, false)
			sum.ContentImage = code
			return err
		})
	}
	if len(doc.Audio) > 0 {
		derive(func() error {
			code, err := g.ContentIDAudio(doc.Audio, false)
			sum.ContentAudio = code
			return err
		})
	}
	if doc.Data != nil {
		derive(func() error {
			code, err := g.DataIDBytes(doc.Data)
			sum.Data = code
			return err
		})
		derive(func() error {
			res, err := g.InstanceIDBytes(doc.Data)
			sum.Instance = res
			return err
		})
	}

	if started == 0 {
		return nil, ErrEmptyInput
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	codes := sum.Components()
	parts := make([]string, len(codes))
	for i, c := range codes {
		parts[i] = c.Code
	}
	sum.ISCC = strings.Join(parts, "-")

	return sum, nil
}

// Compute derives all component codes of a document with default
// options.
func Compute(ctx context.Context, doc *Document) (*Summary, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.Compute(ctx, doc)
}
