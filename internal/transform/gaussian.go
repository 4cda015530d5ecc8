package transform

import (
	"fmt"
	"math"

	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
)

// GaussianParams configures GaussianBlur.
type GaussianParams struct {
	// KSizeX and KSizeY are the kernel width and height. Both must be odd
	// and positive.
	KSizeX int `yaml:"ksize_x" json:"ksize_x"`
	KSizeY int `yaml:"ksize_y" json:"ksize_y"`

	// SigmaX is the standard deviation along X. Zero derives it from
	// KSizeX.
	SigmaX float64 `yaml:"sigma_x" json:"sigma_x"`

	// SigmaY is the standard deviation along Y. Nil means SigmaX.
	SigmaY *float64 `yaml:"sigma_y,omitempty" json:"sigma_y,omitempty"`
}

// DefaultGaussianParams returns a 13x13 kernel with sigmas derived from the
// kernel size.
func DefaultGaussianParams() GaussianParams {
	return GaussianParams{KSizeX: 13, KSizeY: 13}
}

// Validate checks the kernel size and sigmas without touching any pixels.
func (p GaussianParams) Validate() error {
	if p.KSizeX <= 0 || p.KSizeY <= 0 || p.KSizeX%2 == 0 || p.KSizeY%2 == 0 {
		return fmt.Errorf("kernel size must be two odd, positive integers, got (%d, %d): %w",
			p.KSizeX, p.KSizeY, errdefs.ErrInvalidConfig)
	}
	if p.SigmaX < 0 || math.IsNaN(p.SigmaX) {
		return fmt.Errorf("sigma x must be non-negative, got %v: %w", p.SigmaX, errdefs.ErrInvalidConfig)
	}
	if p.SigmaY != nil && (*p.SigmaY < 0 || math.IsNaN(*p.SigmaY)) {
		return fmt.Errorf("sigma y must be non-negative, got %v: %w", *p.SigmaY, errdefs.ErrInvalidConfig)
	}
	return nil
}

// sigmas resolves the effective X and Y standard deviations.
func (p GaussianParams) sigmas() (sx, sy float64) {
	sx = p.SigmaX
	sy = sx
	if p.SigmaY != nil {
		sy = *p.SigmaY
	}
	return sx, sy
}

// GaussianBlur smooths every plane of r with a Gaussian kernel.
//
// The result matches OpenCV's GaussianBlur: a separable kernel, sigmas of 0
// derived from the kernel size and reflect-101 border handling. A 1x1 kernel
// returns an unchanged copy.
func GaussianBlur(r *raster.Raster, p GaussianParams) (*raster.Raster, error) {
	if r == nil {
		return nil, fmt.Errorf("tif band is required: %w", errdefs.ErrMissingBand)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return gaussianBlur(r, p)
}

// GaussianKernel returns the normalized 1-D Gaussian kernel of odd size n.
// A non-positive sigma is derived from n the way OpenCV does; small kernels
// with a derived sigma use OpenCV's fixed binomial tables.
func GaussianKernel(n int, sigma float64) []float64 {
	if sigma <= 0 {
		if fixed, ok := fixedKernels[n]; ok {
			out := make([]float64, n)
			copy(out, fixed)
			return out
		}
		sigma = 0.3*(float64(n-1)*0.5-1) + 0.8
	}

	k := make([]float64, n)
	half := n / 2
	scale := -0.5 / (sigma * sigma)
	var sum float64
	for i := range k {
		x := float64(i - half)
		k[i] = math.Exp(scale * x * x)
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

var fixedKernels = map[int][]float64{
	1: {1},
	3: {0.25, 0.5, 0.25},
	5: {0.0625, 0.25, 0.375, 0.25, 0.0625},
	7: {0.03125, 0.109375, 0.21875, 0.28125, 0.21875, 0.109375, 0.03125},
}

// reflect101 maps an out-of-range index onto [0, n) by mirroring around the
// edge samples without repeating them: -1 maps to 1, n maps to n-2.
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		}
		if i >= n {
			i = 2*(n-1) - i
		}
	}
	return i
}

// convolvePlane applies kx along rows and then ky along columns.
func convolvePlane(src []float64, rows, cols int, kx, ky []float64) []float64 {
	tmp := make([]float64, len(src))
	hx := len(kx) / 2
	for y := 0; y < rows; y++ {
		row := src[y*cols : (y+1)*cols]
		for x := 0; x < cols; x++ {
			var sum float64
			for i, w := range kx {
				sum += w * row[reflect101(x+i-hx, cols)]
			}
			tmp[y*cols+x] = sum
		}
	}

	out := make([]float64, len(src))
	hy := len(ky) / 2
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			var sum float64
			for i, w := range ky {
				sum += w * tmp[reflect101(y+i-hy, rows)*cols+x]
			}
			out[y*cols+x] = sum
		}
	}
	return out
}
