//go:build opencv

package transform

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/ironsheep/fezrs/internal/raster"
)

// GaussianBackend names the implementation compiled into this binary.
const GaussianBackend = "opencv"

func gaussianBlur(r *raster.Raster, p GaussianParams) (*raster.Raster, error) {
	sx, sy := p.sigmas()
	rows, cols := r.Rows(), r.Cols()
	out := raster.New(rows, cols, r.Planes())

	for i := 0; i < r.Planes(); i++ {
		src := gocv.NewMatWithSize(rows, cols, gocv.MatTypeCV64F)
		data := r.Data(i)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				src.SetDoubleAt(y, x, data[y*cols+x])
			}
		}

		dst := gocv.NewMat()
		err := gocv.GaussianBlur(src, &dst, image.Pt(p.KSizeX, p.KSizeY), sx, sy, gocv.BorderReflect101)
		src.Close()
		if err != nil {
			dst.Close()
			return nil, fmt.Errorf("failed to blur plane %d: %w", i, err)
		}

		res := out.Data(i)
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				res[y*cols+x] = dst.GetDoubleAt(y, x)
			}
		}
		dst.Close()
	}
	return out, nil
}
