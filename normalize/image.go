package normalize

import (
	"errors"
	"image"
	"math"
)

var (
	// ErrInvalidSize is returned for non-positive target matrix sizes.
	ErrInvalidSize = errors.New("target size must be positive")

	// ErrEmptyImage is returned for images with empty bounds.
	ErrEmptyImage = errors.New("empty image bounds")
)

// Image reduces an image to a size×size grayscale matrix in row-major
// order with values in [0, 255]. Pixels convert to luma with the BT.601
// weights; downscaling averages by exact pixel-area overlap, so the
// matrix is independent of the source resolution up to sampling error.
func Image(img image.Image, size int) ([][]float64, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, ErrEmptyImage
	}

	xw := overlaps(w, size)
	yw := overlaps(h, size)

	sums := make([][]float64, size)
	for i := range sums {
		sums[i] = make([]float64, size)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			gray := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			for _, oy := range yw[y] {
				for _, ox := range xw[x] {
					sums[oy.idx][ox.idx] += gray * ox.wt * oy.wt
				}
			}
		}
	}

	return sums, nil
}

// overlap is one destination cell covered by a source pixel, with the
// covered fraction measured in destination units.
type overlap struct {
	idx int
	wt  float64
}

// overlaps maps every source index to the destination cells its unit
// interval covers after scaling. The weights of one destination cell
// sum to exactly 1 across all sources, so accumulated values are
// weighted averages.
func overlaps(src, dst int) [][]overlap {
	scale := float64(dst) / float64(src)
	out := make([][]overlap, src)
	for x := 0; x < src; x++ {
		d0 := float64(x) * scale
		d1 := d0 + scale
		i0 := int(d0)
		i1 := int(math.Ceil(d1))
		if i1 > dst {
			i1 = dst
		}
		cells := make([]overlap, 0, i1-i0)
		for i := i0; i < i1; i++ {
			wt := math.Min(d1, float64(i+1)) - math.Max(d0, float64(i))
			if wt > 0 {
				cells = append(cells, overlap{idx: i, wt: wt})
			}
		}
		out[x] = cells
	}
	return out
}
