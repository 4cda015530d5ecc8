package tools

import (
	"github.com/ironsheep/fezrs/internal/bands"
	"github.com/ironsheep/fezrs/internal/raster"
	"github.com/ironsheep/fezrs/internal/render"
	"github.com/ironsheep/fezrs/internal/transform"
)

// HSV converts the (NIR, Green, Blue) false-color composite to HSV.
type HSV struct{ base }

// NewHSV loads the bands for an HSV tool. NIR, Green and Blue are required
// at Validate time.
func NewHSV(paths bands.Paths, opts ...bands.Option) (*HSV, error) {
	b, err := newBase("HSV", paths, []bands.Name{bands.NIR, bands.Green, bands.Blue}, render.Options{
		FigSize:        [2]float64{10, 10},
		FilenamePrefix: "HSV_output",
		DPI:            500,
		BBox:           render.BBoxTight,
	}, opts)
	if err != nil {
		return nil, err
	}
	return &HSV{b}, nil
}

func (t *HSV) Validate() error { return t.checkBands() }

func (t *HSV) Calculate() error {
	return t.compute(func() (*raster.Raster, error) {
		h := t.bands
		return transform.HSV(h.NormalizedBand(bands.NIR), h.NormalizedBand(bands.Green), h.NormalizedBand(bands.Blue))
	})
}

// Saturation extracts the saturation channel of the HSV composite.
type Saturation struct{ base }

// NewSaturation loads the bands for a saturation tool. NIR, Green and Blue
// are required.
func NewSaturation(paths bands.Paths, opts ...bands.Option) (*Saturation, error) {
	b, err := newBase("SATURATION", paths, []bands.Name{bands.NIR, bands.Green, bands.Blue}, render.Options{
		FigSize:        [2]float64{10, 5},
		ShowAxis:       true,
		ShowColorbar:   true,
		FilenamePrefix: "SATURATION_output",
		DPI:            500,
		Grid:           true,
	}, opts)
	if err != nil {
		return nil, err
	}
	return &Saturation{b}, nil
}

func (t *Saturation) Validate() error { return t.checkBands() }

func (t *Saturation) Calculate() error {
	return t.compute(func() (*raster.Raster, error) {
		h := t.bands
		return transform.Saturation(h.NormalizedBand(bands.NIR), h.NormalizedBand(bands.Green), h.NormalizedBand(bands.Blue))
	})
}

// IRSaturation extracts the saturation channel of the (SWIR2, SWIR1, Red)
// composite.
type IRSaturation struct{ base }

// NewIRSaturation loads the bands for an infrared saturation tool. SWIR2,
// SWIR1 and Red are required.
func NewIRSaturation(paths bands.Paths, opts ...bands.Option) (*IRSaturation, error) {
	b, err := newBase("IRSATURATION", paths, []bands.Name{bands.SWIR2, bands.SWIR1, bands.Red}, render.Options{
		FigSize:        [2]float64{10, 5},
		ShowAxis:       true,
		ShowColorbar:   true,
		FilenamePrefix: "IRSATURATION_output",
		DPI:            500,
	}, opts)
	if err != nil {
		return nil, err
	}
	return &IRSaturation{b}, nil
}

func (t *IRSaturation) Validate() error { return t.checkBands() }

func (t *IRSaturation) Calculate() error {
	return t.compute(func() (*raster.Raster, error) {
		h := t.bands
		return transform.IRSaturation(h.NormalizedBand(bands.SWIR2), h.NormalizedBand(bands.SWIR1), h.NormalizedBand(bands.Red))
	})
}
