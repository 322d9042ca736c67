package iscc

import (
	"image"
	"time"

	"github.com/hupe1980/iscc/codec"
	"github.com/hupe1980/iscc/imagehash"
	"github.com/hupe1980/iscc/normalize"
)

// imageSize is the side length of the normalized grayscale matrix fed
// into the perceptual hash.
const imageSize = 32

// ImageDecoder turns an encoded image into pixels for
// ContentIDImageBytes. Implementations typically wrap image.Decode with
// the needed format packages imported.
type ImageDecoder interface {
	DecodeImage(data []byte) (image.Image, error)
}

// ImageDecoderFunc adapts a function to the ImageDecoder interface.
type ImageDecoderFunc func(data []byte) (image.Image, error)

// DecodeImage calls fn(data).
func (fn ImageDecoderFunc) DecodeImage(data []byte) (image.Image, error) {
	return fn(data)
}

// ContentIDImage derives the content code of decoded image pixels. The
// code tracks visual appearance, so rescaled or recompressed variants
// keep small distances. Set partial when the image is a detail of the
// asset.
func (g *Generator) ContentIDImage(img image.Image, partial bool) (*Code, error) {
	start := time.Now()
	code, err := g.contentIDImage(img, partial)
	g.metrics.RecordContent(codec.KindContentImage, time.Since(start), err)
	g.logger.LogCode("content-id-image", codeStr(code), err)
	return code, opError("content-id-image", err)
}

// ContentIDImageBytes decodes data with the configured ImageDecoder and
// derives its content code. Without a decoder it fails with
// ErrNoImageDecoder.
func (g *Generator) ContentIDImageBytes(data []byte, partial bool) (*Code, error) {
	start := time.Now()
	code, err := g.contentIDImageBytes(data, partial)
	g.metrics.RecordContent(codec.KindContentImage, time.Since(start), err)
	g.logger.LogCode("content-id-image", codeStr(code), err)
	return code, opError("content-id-image", err)
}

func (g *Generator) contentIDImageBytes(data []byte, partial bool) (*Code, error) {
	if g.opts.imageDecoder == nil {
		return nil, ErrNoImageDecoder
	}
	img, err := g.opts.imageDecoder.DecodeImage(data)
	if err != nil {
		return nil, err
	}
	return g.contentIDImage(img, partial)
}

func (g *Generator) contentIDImage(img image.Image, partial bool) (*Code, error) {
	pixels, err := normalize.Image(img, imageSize)
	if err != nil {
		return nil, err
	}
	digest, err := imagehash.Hash(pixels)
	if err != nil {
		return nil, err
	}
	return newCode(codec.KindContentImage, partial, digest)
}

// ContentIDImage derives a content-image code with default options.
func ContentIDImage(img image.Image, partial bool) (*Code, error) {
	g, err := New()
	if err != nil {
		return nil, err
	}
	return g.ContentIDImage(img, partial)
}
