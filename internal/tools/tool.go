package tools

import (
	"fmt"

	"github.com/ironsheep/fezrs/internal/bands"
	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
	"github.com/ironsheep/fezrs/internal/render"
)

// Tool is one calculator instance.
type Tool interface {
	// Name is the upper-case tool name, e.g. "HSV".
	Name() string

	// Validate checks bands and parameters without computing anything.
	Validate() error

	// Calculate computes the output, replacing any previous one.
	Calculate() error

	// Output returns the computed raster, or nil before Calculate.
	Output() *raster.Raster

	// Export renders the output into dir and returns the file path. Unset
	// option fields take the tool's defaults.
	Export(dir string, opts render.Options) (string, error)

	// DefaultOptions returns the tool's export defaults.
	DefaultOptions() render.Options

	// Bands returns the band handler the tool reads from.
	Bands() *bands.Handler
}

// base carries the state every tool shares.
type base struct {
	name     string
	required []bands.Name
	bands    *bands.Handler
	output   *raster.Raster
	defaults render.Options
}

func newBase(name string, paths bands.Paths, required []bands.Name, defaults render.Options, opts []bands.Option) (base, error) {
	h, err := bands.Open(paths, opts...)
	if err != nil {
		return base{}, fmt.Errorf("failed to load %s bands: %w", name, err)
	}
	return base{name: name, required: required, bands: h, defaults: defaults}, nil
}

func (b *base) Name() string { return b.name }

func (b *base) Output() *raster.Raster { return b.output }

func (b *base) DefaultOptions() render.Options { return b.defaults }

func (b *base) Bands() *bands.Handler { return b.bands }

// checkBands reports the first required band that was not loaded.
func (b *base) checkBands() error {
	for _, n := range b.required {
		if !b.bands.Has(n) {
			return fmt.Errorf("%s requires the %s band: %w", b.name, n, errdefs.ErrMissingBand)
		}
	}
	return nil
}

// compute clears the output, runs f and stores its result on success.
func (b *base) compute(f func() (*raster.Raster, error)) error {
	b.output = nil
	out, err := f()
	if err != nil {
		return fmt.Errorf("failed to calculate %s: %w", b.name, err)
	}
	b.output = out
	return nil
}

func (b *base) Export(dir string, opts render.Options) (string, error) {
	if b.output == nil {
		return "", fmt.Errorf("%s data not computed, run Calculate before exporting: %w", b.name, errdefs.ErrNotComputed)
	}
	path, err := render.Export(b.output, dir, opts.WithDefaults(b.defaults))
	if err != nil {
		return "", fmt.Errorf("failed to export %s: %w", b.name, err)
	}
	return path, nil
}
