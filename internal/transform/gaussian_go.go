//go:build !opencv

package transform

import "github.com/ironsheep/fezrs/internal/raster"

// GaussianBackend names the implementation compiled into this binary.
const GaussianBackend = "go"

func gaussianBlur(r *raster.Raster, p GaussianParams) (*raster.Raster, error) {
	if p.KSizeX == 1 && p.KSizeY == 1 {
		return r.Clone(), nil
	}
	sx, sy := p.sigmas()
	kx := GaussianKernel(p.KSizeX, sx)
	ky := GaussianKernel(p.KSizeY, sy)

	out := raster.New(r.Rows(), r.Cols(), r.Planes())
	for i := 0; i < r.Planes(); i++ {
		copy(out.Data(i), convolvePlane(r.Data(i), r.Rows(), r.Cols(), kx, ky))
	}
	return out, nil
}
