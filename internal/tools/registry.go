package tools

import (
	"fmt"
	"strings"

	"github.com/ironsheep/fezrs/internal/bands"
	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/transform"
)

// Params holds the transform parameters of the configurable tools.
type Params struct {
	Gaussian transform.GaussianParams `yaml:"gaussian" json:"gaussian"`
	KMeans   transform.KMeansParams   `yaml:"kmeans" json:"kmeans"`
}

// DefaultParams returns a 13x13 Gaussian kernel and four k-means clusters.
func DefaultParams() Params {
	return Params{
		Gaussian: transform.DefaultGaussianParams(),
		KMeans:   transform.DefaultKMeansParams(),
	}
}

// Info describes a registered tool.
type Info struct {
	Name        string
	Description string
	Required    []bands.Name
}

type entry struct {
	Info
	build func(bands.Paths, Params, []bands.Option) (Tool, error)
}

var registry = []entry{
	{
		Info{"HSV", "HSV conversion of the (NIR, Green, Blue) false-color composite", []bands.Name{bands.NIR, bands.Green, bands.Blue}},
		func(p bands.Paths, _ Params, o []bands.Option) (Tool, error) {
			t, err := NewHSV(p, o...)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
	},
	{
		Info{"SATURATION", "Saturation channel of the (NIR, Green, Blue) HSV composite", []bands.Name{bands.NIR, bands.Green, bands.Blue}},
		func(p bands.Paths, _ Params, o []bands.Option) (Tool, error) {
			t, err := NewSaturation(p, o...)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
	},
	{
		Info{"IRSATURATION", "Saturation channel of the (SWIR2, SWIR1, Red) HSV composite", []bands.Name{bands.SWIR2, bands.SWIR1, bands.Red}},
		func(p bands.Paths, _ Params, o []bands.Option) (Tool, error) {
			t, err := NewIRSaturation(p, o...)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
	},
	{
		Info{"GAUSSIAN", "Gaussian blur of the raw TIF band", []bands.Name{bands.TIF}},
		func(p bands.Paths, pr Params, o []bands.Option) (Tool, error) {
			t, err := NewGaussian(p, pr.Gaussian, o...)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
	},
	{
		Info{"KMEANS", "K-means segmentation of the raw NIR band", []bands.Name{bands.NIR}},
		func(p bands.Paths, pr Params, o []bands.Option) (Tool, error) {
			t, err := NewKMeans(p, pr.KMeans, o...)
			if err != nil {
				return nil, err
			}
			return t, nil
		},
	},
}

// Names lists the tool names in a stable order.
func Names() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.Name
	}
	return names
}

// Lookup returns the description of the named tool. Names are
// case-insensitive.
func Lookup(name string) (Info, error) {
	e, err := find(name)
	if err != nil {
		return Info{}, err
	}
	return e.Info, nil
}

// New builds the named tool from band paths and parameters.
func New(name string, paths bands.Paths, params Params, opts ...bands.Option) (Tool, error) {
	e, err := find(name)
	if err != nil {
		return nil, err
	}
	return e.build(paths, params, opts)
}

func find(name string) (entry, error) {
	key := strings.ToUpper(strings.TrimSpace(name))
	for _, e := range registry {
		if e.Name == key {
			return e, nil
		}
	}
	return entry{}, fmt.Errorf("unknown tool %q (want one of %s): %w", name, strings.Join(Names(), ", "), errdefs.ErrInvalidConfig)
}
