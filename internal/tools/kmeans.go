package tools

import (
	"fmt"

	"github.com/ironsheep/fezrs/internal/bands"
	"github.com/ironsheep/fezrs/internal/raster"
	"github.com/ironsheep/fezrs/internal/render"
	"github.com/ironsheep/fezrs/internal/transform"
)

// KMeans segments the raw NIR band.
type KMeans struct {
	base
	params transform.KMeansParams
}

// NewKMeans loads the NIR band for a k-means tool.
func NewKMeans(paths bands.Paths, params transform.KMeansParams, opts ...bands.Option) (*KMeans, error) {
	b, err := newBase("KMEANS", paths, []bands.Name{bands.NIR}, render.Options{
		FigSize:        [2]float64{15, 10},
		ShowColorbar:   true,
		FilenamePrefix: "KMEANS_output",
		DPI:            100,
	}, opts)
	if err != nil {
		return nil, err
	}
	return &KMeans{base: b, params: params}, nil
}

// Params returns the clustering parameters.
func (t *KMeans) Params() transform.KMeansParams { return t.params }

func (t *KMeans) Validate() error {
	if err := t.params.Validate(); err != nil {
		return fmt.Errorf("invalid %s parameters: %w", t.name, err)
	}
	return t.checkBands()
}

func (t *KMeans) Calculate() error {
	return t.compute(func() (*raster.Raster, error) {
		return transform.KMeans(t.bands.Band(bands.NIR), t.params)
	})
}
