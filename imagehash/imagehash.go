// Package imagehash implements the perceptual image hash. A normalized
// grayscale pixel matrix passes through a two-dimensional DCT-II; the
// low-frequency corner of the spectrum, thresholded at its median, forms
// a 64-bit digest that survives scaling, recompression and small edits.
package imagehash

import (
	"encoding/binary"
	"errors"
	"math"
	"sort"
)

const blockSize = 8

var (
	// ErrInvalidLength is returned by DCT for lengths that are neither 1
	// nor even. Power-of-two lengths recurse cleanly all the way down.
	ErrInvalidLength = errors.New("transform length must be 1 or even")

	// ErrNotSquare is returned for non-square pixel matrices.
	ErrNotSquare = errors.New("pixel matrix must be square")

	// ErrMatrixTooSmall is returned when the matrix cannot cover the
	// low-frequency block.
	ErrMatrixTooSmall = errors.New("pixel matrix side must be at least 8")
)

// DCT returns the unscaled type-II discrete cosine transform of v,
// using the recursive even/odd split (Lee). Scaling factors are left
// out on purpose: the hash compares coefficients against their own
// median, so a constant factor cancels.
func DCT(v []float64) ([]float64, error) {
	n := len(v)
	if n == 1 {
		return []float64{v[0]}, nil
	}
	if n == 0 || n%2 != 0 {
		return nil, ErrInvalidLength
	}

	half := n / 2
	alpha := make([]float64, half)
	beta := make([]float64, half)
	for i := 0; i < half; i++ {
		alpha[i] = v[i] + v[n-1-i]
		beta[i] = (v[i] - v[n-1-i]) / (math.Cos((float64(i)+0.5)*math.Pi/float64(n)) * 2.0)
	}

	alpha, err := DCT(alpha)
	if err != nil {
		return nil, err
	}
	beta, err = DCT(beta)
	if err != nil {
		return nil, err
	}

	out := make([]float64, n)
	for i := 0; i < half-1; i++ {
		out[2*i] = alpha[i]
		out[2*i+1] = beta[i] + beta[i+1]
	}
	out[n-2] = alpha[half-1]
	out[n-1] = beta[half-1]
	return out, nil
}

// DCT2D transforms a square matrix row-wise and then column-wise.
func DCT2D(m [][]float64) ([][]float64, error) {
	n := len(m)
	rows := make([][]float64, n)
	for i, row := range m {
		if len(row) != n {
			return nil, ErrNotSquare
		}
		r, err := DCT(row)
		if err != nil {
			return nil, err
		}
		rows[i] = r
	}

	out := make([][]float64, n)
	for i := range out {
		out[i] = make([]float64, n)
	}
	col := make([]float64, n)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			col[i] = rows[i][j]
		}
		c, err := DCT(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			out[i][j] = c[i]
		}
	}
	return out, nil
}

// Hash derives the 64-bit perceptual digest of a normalized grayscale
// pixel matrix. The upper-left 8×8 block of the 2D spectrum, without
// the DC coefficient, yields 63 values; every value strictly above
// their median contributes a set bit. The top bit of the digest is
// always zero.
func Hash(pixels [][]float64) ([]byte, error) {
	n := len(pixels)
	if n < blockSize {
		return nil, ErrMatrixTooSmall
	}
	for _, row := range pixels {
		if len(row) != n {
			return nil, ErrNotSquare
		}
	}

	spectrum, err := DCT2D(pixels)
	if err != nil {
		return nil, err
	}

	flat := make([]float64, 0, blockSize*blockSize-1)
	for y := 0; y < blockSize; y++ {
		for x := 0; x < blockSize; x++ {
			if y == 0 && x == 0 {
				continue
			}
			flat = append(flat, spectrum[y][x])
		}
	}

	med := median(flat)
	var digest uint64
	for _, v := range flat {
		digest <<= 1
		if v > med {
			digest |= 1
		}
	}

	out := make([]byte, 8)
	binary.BigEndian.PutUint64(out, digest)
	return out, nil
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}
