// Package raster holds the in-memory numeric arrays every FEZrs tool works on.
//
// A Raster is a stack of equally sized planes. Each plane is a row-major
// gonum *mat.Dense of float64 samples, so a single spectral band is a
// one-plane raster and an HSV composite is a three-plane raster.
//
// # Pixel Values
//
// Rasters built from images keep the raw sample values of the file:
//   - 8-bit images: 0 to 255
//   - 16-bit images: 0 to 65535
//
// Nothing in this package rescales; see bands.Normalize for that.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Raster is a stack of one or more planes that share the same dimensions.
//
// A Raster is not safe for concurrent mutation. Transforms never mutate
// their inputs; they return new rasters.
type Raster struct {
	rows, cols int
	planes     []*mat.Dense
}

// New creates a zero-filled raster with the given shape.
//
// It panics if any dimension is not positive, mirroring mat.NewDense.
func New(rows, cols, planes int) *Raster {
	if planes <= 0 {
		panic("raster: plane count must be positive")
	}
	r := &Raster{rows: rows, cols: cols, planes: make([]*mat.Dense, planes)}
	for i := range r.planes {
		r.planes[i] = mat.NewDense(rows, cols, nil)
	}
	return r
}

// FromPlanes builds a raster from existing planes. Contiguous planes are
// used as-is; strided views (from Slice) are copied.
//
// Returns an error if no planes are given or their dimensions differ.
func FromPlanes(planes ...*mat.Dense) (*Raster, error) {
	if len(planes) == 0 {
		return nil, fmt.Errorf("raster needs at least one plane")
	}
	rows, cols := planes[0].Dims()
	for i, p := range planes[1:] {
		pr, pc := p.Dims()
		if pr != rows || pc != cols {
			return nil, fmt.Errorf("plane %d is %dx%d, want %dx%d", i+1, pr, pc, rows, cols)
		}
	}
	own := make([]*mat.Dense, len(planes))
	for i, p := range planes {
		own[i] = p
		if p.RawMatrix().Stride != cols {
			own[i] = mat.DenseCopyOf(p)
		}
	}
	return &Raster{rows: rows, cols: cols, planes: own}, nil
}

// FromImage converts a decoded image into a raster of raw sample values.
//
// Grayscale images (*image.Gray, *image.Gray16) yield one plane. Every other
// color model yields three planes (R, G, B) read without alpha
// premultiplication; the alpha channel is dropped.
func FromImage(img image.Image) (*Raster, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("image has no pixels (%dx%d)", b.Dx(), b.Dy())
	}

	switch src := img.(type) {
	case *image.Gray:
		r := New(b.Dy(), b.Dx(), 1)
		data := r.Data(0)
		for y := 0; y < b.Dy(); y++ {
			off := src.PixOffset(b.Min.X, y+b.Min.Y)
			row := src.Pix[off : off+b.Dx()]
			for x, v := range row {
				data[y*b.Dx()+x] = float64(v)
			}
		}
		return r, nil
	case *image.Gray16:
		r := New(b.Dy(), b.Dx(), 1)
		data := r.Data(0)
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				data[y*b.Dx()+x] = float64(src.Gray16At(x+b.Min.X, y+b.Min.Y).Y)
			}
		}
		return r, nil
	}

	r := New(b.Dy(), b.Dx(), 3)
	red, green, blue := r.Data(0), r.Data(1), r.Data(2)
	deep := Depth(img) == 16
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			i := y*b.Dx() + x
			c := color.NRGBA64Model.Convert(img.At(x+b.Min.X, y+b.Min.Y)).(color.NRGBA64)
			if deep {
				red[i], green[i], blue[i] = float64(c.R), float64(c.G), float64(c.B)
			} else {
				red[i], green[i], blue[i] = float64(c.R>>8), float64(c.G>>8), float64(c.B>>8)
			}
		}
	}
	return r, nil
}

// Depth reports the bit depth per channel of a decoded image: 16 for the
// 16-bit Go image types, 8 for everything else.
func Depth(img image.Image) int {
	switch img.(type) {
	case *image.Gray16, *image.RGBA64, *image.NRGBA64:
		return 16
	}
	return 8
}

// Rows returns the raster height.
func (r *Raster) Rows() int { return r.rows }

// Cols returns the raster width.
func (r *Raster) Cols() int { return r.cols }

// Planes returns the number of planes.
func (r *Raster) Planes() int { return len(r.planes) }

// Dims returns rows, cols and planes.
func (r *Raster) Dims() (rows, cols, planes int) {
	return r.rows, r.cols, len(r.planes)
}

// Plane returns plane i. The returned matrix is shared with the raster.
func (r *Raster) Plane(i int) *mat.Dense { return r.planes[i] }

// Data returns the row-major backing slice of plane i.
func (r *Raster) Data(i int) []float64 {
	return r.planes[i].RawMatrix().Data
}

// At returns the sample at (row, col) in plane p.
func (r *Raster) At(row, col, p int) float64 {
	return r.planes[p].At(row, col)
}

// Set stores a sample at (row, col) in plane p.
func (r *Raster) Set(row, col, p int, v float64) {
	r.planes[p].Set(row, col, v)
}

// SameShape reports whether o has the same rows and cols as r.
func (r *Raster) SameShape(o *Raster) bool {
	return o != nil && r.rows == o.rows && r.cols == o.cols
}

// Clone returns a deep copy of the raster.
func (r *Raster) Clone() *Raster {
	c := &Raster{rows: r.rows, cols: r.cols, planes: make([]*mat.Dense, len(r.planes))}
	for i, p := range r.planes {
		c.planes[i] = mat.DenseCopyOf(p)
	}
	return c
}

// Select returns a one-plane copy of plane i.
func (r *Raster) Select(i int) *Raster {
	return &Raster{rows: r.rows, cols: r.cols, planes: []*mat.Dense{mat.DenseCopyOf(r.planes[i])}}
}

// MinMax returns the smallest and largest non-NaN samples across all planes.
// Both results are NaN when the raster holds no finite-comparable samples.
func (r *Raster) MinMax() (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := range r.planes {
		for _, v := range r.Data(i) {
			if math.IsNaN(v) {
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	if lo > hi {
		return math.NaN(), math.NaN()
	}
	return lo, hi
}

// Stack combines single-plane rasters into one multi-plane raster, in order.
//
// Every input must be non-nil, have exactly one plane and share the first
// input's shape. The planes are copied.
func Stack(rs ...*Raster) (*Raster, error) {
	if len(rs) == 0 {
		return nil, fmt.Errorf("nothing to stack")
	}
	planes := make([]*mat.Dense, len(rs))
	for i, r := range rs {
		if r == nil {
			return nil, fmt.Errorf("stack input %d is absent", i)
		}
		if r.Planes() != 1 {
			return nil, fmt.Errorf("stack input %d has %d planes, want 1", i, r.Planes())
		}
		if !rs[0].SameShape(r) {
			return nil, fmt.Errorf("stack input %d is %dx%d, want %dx%d",
				i, r.rows, r.cols, rs[0].rows, rs[0].cols)
		}
		planes[i] = mat.DenseCopyOf(r.planes[0])
	}
	return FromPlanes(planes...)
}
