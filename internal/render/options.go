package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/ironsheep/fezrs/internal/errdefs"
)

// Bounding box modes.
const (
	// BBoxStandard keeps the whole canvas.
	BBoxStandard = "standard"
	// BBoxTight crops the canvas to the drawn content plus a small margin.
	BBoxTight = "tight"
)

// DefaultColormap is used when Options.Colormap is empty.
const DefaultColormap = "viridis"

// TitleSuffix is appended to every non-empty title.
const TitleSuffix = "-FEZrs"

// Options controls how a raster is drawn and where it is saved.
type Options struct {
	// Title is drawn above the image as "<Title>-FEZrs". Empty means none.
	Title string `yaml:"title" json:"title,omitempty"`

	// FigSize is the canvas width and height in inches.
	FigSize [2]float64 `yaml:"figsize" json:"figsize,omitempty"`

	// ShowAxis draws a frame with pixel-coordinate tick labels.
	ShowAxis bool `yaml:"show_axis" json:"show_axis"`

	// Colormap names the colormap for one-plane rasters, e.g. "viridis" or
	// "gray_r".
	Colormap string `yaml:"colormap" json:"colormap,omitempty"`

	// ShowColorbar draws a gradient bar with min and max labels.
	ShowColorbar bool `yaml:"show_colorbar" json:"show_colorbar"`

	// FilenamePrefix starts the output file name.
	FilenamePrefix string `yaml:"filename_prefix" json:"filename_prefix,omitempty"`

	// DPI is the number of pixels per inch of FigSize.
	DPI int `yaml:"dpi" json:"dpi,omitempty"`

	// BBox is BBoxStandard or BBoxTight. Empty means BBoxStandard.
	BBox string `yaml:"bbox" json:"bbox,omitempty"`

	// Grid draws grid lines at the tick positions. Ignored without ShowAxis.
	Grid bool `yaml:"grid" json:"grid"`
}

// WithDefaults returns o with its unset fields taken from d. Only fields
// whose zero value is not meaningful are filled: FigSize, Colormap,
// FilenamePrefix, DPI and BBox.
func (o Options) WithDefaults(d Options) Options {
	if o.FigSize[0] == 0 && o.FigSize[1] == 0 {
		o.FigSize = d.FigSize
	}
	if o.Colormap == "" {
		o.Colormap = d.Colormap
	}
	if o.FilenamePrefix == "" {
		o.FilenamePrefix = d.FilenamePrefix
	}
	if o.DPI == 0 {
		o.DPI = d.DPI
	}
	if o.BBox == "" {
		o.BBox = d.BBox
	}
	return o
}

// Validate checks the options without drawing anything.
func (o Options) Validate() error {
	if _, err := LookupColormap(o.colormap()); err != nil {
		return err
	}
	if o.DPI <= 0 {
		return fmt.Errorf("dpi must be positive, got %d: %w", o.DPI, errdefs.ErrInvalidConfig)
	}
	for i, v := range o.FigSize {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("figure size must be positive, got %v (index %d): %w", o.FigSize, i, errdefs.ErrInvalidConfig)
		}
	}
	w, h := o.canvasSize()
	if w < 1 || h < 1 {
		return fmt.Errorf("figure %v at %d dpi is smaller than one pixel: %w", o.FigSize, o.DPI, errdefs.ErrInvalidConfig)
	}
	switch strings.ToLower(o.BBox) {
	case "", BBoxStandard, BBoxTight:
	default:
		return fmt.Errorf("unknown bbox mode %q (want %q or %q): %w", o.BBox, BBoxStandard, BBoxTight, errdefs.ErrInvalidConfig)
	}
	if strings.ContainsAny(o.FilenamePrefix, `/\`) {
		return fmt.Errorf("filename prefix %q must not contain path separators: %w", o.FilenamePrefix, errdefs.ErrInvalidConfig)
	}
	return nil
}

func (o Options) colormap() string {
	if o.Colormap == "" {
		return DefaultColormap
	}
	return o.Colormap
}

func (o Options) tight() bool {
	return strings.ToLower(o.BBox) == BBoxTight
}

// canvasSize returns the figure size in pixels.
func (o Options) canvasSize() (w, h int) {
	return int(math.Round(o.FigSize[0] * float64(o.DPI))), int(math.Round(o.FigSize[1] * float64(o.DPI)))
}

// scale is the integer magnification for text and line widths. It treats
// 100 dpi as the natural size of the bitmap font.
func (o Options) scale() int {
	s := int(math.Round(float64(o.DPI) / 100))
	if s < 1 {
		return 1
	}
	return s
}
