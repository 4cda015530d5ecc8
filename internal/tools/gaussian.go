package tools

import (
	"fmt"

	"github.com/ironsheep/fezrs/internal/bands"
	"github.com/ironsheep/fezrs/internal/raster"
	"github.com/ironsheep/fezrs/internal/render"
	"github.com/ironsheep/fezrs/internal/transform"
)

// Gaussian blurs the raw TIF band.
type Gaussian struct {
	base
	params transform.GaussianParams
}

// NewGaussian loads the TIF band for a Gaussian blur tool. The parameters
// are checked by Validate, not here.
func NewGaussian(paths bands.Paths, params transform.GaussianParams, opts ...bands.Option) (*Gaussian, error) {
	b, err := newBase("GAUSSIAN", paths, []bands.Name{bands.TIF}, render.Options{
		FigSize:        [2]float64{10, 10},
		Colormap:       "gray",
		FilenamePrefix: "GAUSSIAN_output",
		DPI:            500,
		BBox:           render.BBoxTight,
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Gaussian{base: b, params: params}, nil
}

// Params returns the blur parameters.
func (t *Gaussian) Params() transform.GaussianParams { return t.params }

func (t *Gaussian) Validate() error {
	if err := t.params.Validate(); err != nil {
		return fmt.Errorf("invalid %s parameters: %w", t.name, err)
	}
	return t.checkBands()
}

func (t *Gaussian) Calculate() error {
	return t.compute(func() (*raster.Raster, error) {
		return transform.GaussianBlur(t.bands.Band(bands.TIF), t.params)
	})
}
