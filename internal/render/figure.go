package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
)

// Figure layout as fractions of the canvas, measured from the top-left.
const (
	axesLeft   = 0.125
	axesRight  = 0.9
	axesTop    = 0.12
	axesBottom = 0.89

	// colorbarShare is the part of the axes width given up to the colorbar
	// and the gap before it.
	colorbarShare = 0.2
)

var (
	frameColor = color.NRGBA{A: 255}
	gridColor  = toNRGBA(mustHex("#b0b0b0"))
)

// Render draws r as a figure in memory.
//
// Returns an error wrapping errdefs.ErrNotComputed if r is nil, or
// errdefs.ErrInvalidConfig if the options or the raster's plane count are
// unusable.
func Render(r *raster.Raster, opts Options) (*image.NRGBA, error) {
	if r == nil {
		return nil, fmt.Errorf("nothing to render: %w", errdefs.ErrNotComputed)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	cmap, err := LookupColormap(opts.colormap())
	if err != nil {
		return nil, err
	}
	pixels, err := toImage(r, cmap)
	if err != nil {
		return nil, err
	}

	w, h := opts.canvasSize()
	canvas := imaging.New(w, h, color.White)
	scale := opts.scale()

	box := image.Rect(
		int(axesLeft*float64(w)), int(axesTop*float64(h)),
		int(axesRight*float64(w)), int(axesBottom*float64(h)),
	)
	if opts.ShowColorbar {
		box.Max.X -= int(colorbarShare * float64(box.Dx()))
	}

	dst := fit(box, r.Cols(), r.Rows())
	// NaN samples are transparent and leave the canvas white.
	draw.Draw(canvas, dst, imaging.Resize(pixels, dst.Dx(), dst.Dy(), imaging.NearestNeighbor), image.Point{}, draw.Over)

	if opts.ShowAxis {
		xt, yt := ticks(r.Cols()), ticks(r.Rows())
		if opts.Grid {
			drawGrid(canvas, dst, xt, yt, r.Cols(), r.Rows(), scale)
		}
		drawAxes(canvas, dst, xt, yt, r.Cols(), r.Rows(), scale)
	}

	if opts.ShowColorbar {
		lo, hi := r.MinMax()
		drawColorbar(canvas, dst, cmap, lo, hi, scale)
	}

	if opts.Title != "" {
		top := dst.Min.Y
		if opts.ShowAxis {
			top -= 4 * scale
		}
		drawText(canvas, opts.Title+TitleSuffix, dst.Min.X+dst.Dx()/2, top-6*scale, scale, frameColor, anchorBottomCenter)
	}

	if opts.tight() {
		canvas = cropTight(canvas, int(math.Round(0.1*float64(opts.DPI))))
	}
	return canvas, nil
}

// fit returns the largest rectangle with the aspect ratio cols:rows that is
// centered in box. It is never smaller than one pixel.
func fit(box image.Rectangle, cols, rows int) image.Rectangle {
	s := math.Min(float64(box.Dx())/float64(cols), float64(box.Dy())/float64(rows))
	w := int(math.Max(1, math.Round(s*float64(cols))))
	h := int(math.Max(1, math.Round(s*float64(rows))))
	x := box.Min.X + (box.Dx()-w)/2
	y := box.Min.Y + (box.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

// toImage converts r into an image with one pixel per sample.
func toImage(r *raster.Raster, cmap Colormap) (*image.NRGBA, error) {
	rows, cols := r.Rows(), r.Cols()
	img := image.NewNRGBA(image.Rect(0, 0, cols, rows))
	lo, hi := r.MinMax()

	switch r.Planes() {
	case 1:
		data := r.Data(0)
		span := hi - lo
		for i, v := range data {
			if math.IsNaN(v) {
				continue
			}
			t := 0.0
			if span > 0 {
				t = (v - lo) / span
			}
			c := cmap.At(t)
			img.Pix[4*i], img.Pix[4*i+1], img.Pix[4*i+2], img.Pix[4*i+3] = c.R, c.G, c.B, c.A
		}
	case 3:
		div := 1.0
		switch {
		case hi > 255:
			div = 65535
		case hi > 1:
			div = 255
		}
		red, green, blue := r.Data(0), r.Data(1), r.Data(2)
		for i := range red {
			img.Pix[4*i] = channel(red[i] / div)
			img.Pix[4*i+1] = channel(green[i] / div)
			img.Pix[4*i+2] = channel(blue[i] / div)
			img.Pix[4*i+3] = 255
		}
	default:
		return nil, fmt.Errorf("cannot draw a raster with %d planes (want 1 or 3): %w", r.Planes(), errdefs.ErrInvalidConfig)
	}
	return img, nil
}

// channel converts v in [0,1] to an 8-bit channel, clamping out-of-range
// values and mapping NaN to 0.
func channel(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

// ticks returns tick positions in sample coordinates for an axis of n
// samples, at a 1-2-5 step giving at most about six ticks.
func ticks(n int) []int {
	step := tickStep(n-1, 6)
	var out []int
	for v := 0; v < n; v += step {
		out = append(out, v)
	}
	return out
}

func tickStep(extent, maxTicks int) int {
	if extent <= 0 {
		return 1
	}
	raw := float64(extent) / float64(maxTicks)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	for _, m := range []float64{1, 2, 5, 10} {
		if step := m * mag; step >= raw {
			return int(math.Max(1, math.Ceil(step)))
		}
	}
	return int(math.Max(1, 10*mag))
}

// tickPos maps sample coordinate v of an axis with n samples to a pixel
// offset in [lo, hi), at the center of the sample.
func tickPos(v, n, lo, hi int) int {
	return lo + int((float64(v)+0.5)/float64(n)*float64(hi-lo))
}

func fillRect(dst *image.NRGBA, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawGrid(dst *image.NRGBA, area image.Rectangle, xt, yt []int, cols, rows, lw int) {
	for _, v := range xt {
		x := tickPos(v, cols, area.Min.X, area.Max.X)
		fillRect(dst, image.Rect(x, area.Min.Y, x+lw, area.Max.Y), gridColor)
	}
	for _, v := range yt {
		y := tickPos(v, rows, area.Min.Y, area.Max.Y)
		fillRect(dst, image.Rect(area.Min.X, y, area.Max.X, y+lw), gridColor)
	}
}

// drawAxes draws a frame around area with outward ticks and labels on the
// bottom and left edges.
func drawAxes(dst *image.NRGBA, area image.Rectangle, xt, yt []int, cols, rows, scale int) {
	lw := scale
	tick := 4 * scale
	drawFrame(dst, area, lw)

	for _, v := range xt {
		x := tickPos(v, cols, area.Min.X, area.Max.X)
		fillRect(dst, image.Rect(x, area.Max.Y, x+lw, area.Max.Y+tick), frameColor)
		drawText(dst, strconv.Itoa(v), x, area.Max.Y+tick+2*scale, scale, frameColor, anchorTopCenter)
	}
	for _, v := range yt {
		y := tickPos(v, rows, area.Min.Y, area.Max.Y)
		fillRect(dst, image.Rect(area.Min.X-tick, y, area.Min.X, y+lw), frameColor)
		drawText(dst, strconv.Itoa(v), area.Min.X-tick-2*scale, y, scale, frameColor, anchorMiddleRight)
	}
}

func drawFrame(dst *image.NRGBA, r image.Rectangle, lw int) {
	fillRect(dst, image.Rect(r.Min.X-lw, r.Min.Y-lw, r.Max.X+lw, r.Min.Y), frameColor)
	fillRect(dst, image.Rect(r.Min.X-lw, r.Max.Y, r.Max.X+lw, r.Max.Y+lw), frameColor)
	fillRect(dst, image.Rect(r.Min.X-lw, r.Min.Y, r.Min.X, r.Max.Y), frameColor)
	fillRect(dst, image.Rect(r.Max.X, r.Min.Y, r.Max.X+lw, r.Max.Y), frameColor)
}

// drawColorbar draws a vertical gradient to the right of area, low values
// at the bottom, labelled with lo and hi.
func drawColorbar(dst *image.NRGBA, area image.Rectangle, cmap Colormap, lo, hi float64, scale int) {
	pad := max(6*scale, area.Dx()/25)
	width := max(4*scale, area.Dy()/20)
	bar := image.Rect(area.Max.X+pad, area.Min.Y, area.Max.X+pad+width, area.Max.Y)

	for y := bar.Min.Y; y < bar.Max.Y; y++ {
		t := 1 - (float64(y-bar.Min.Y)+0.5)/float64(bar.Dy())
		fillRect(dst, image.Rect(bar.Min.X, y, bar.Max.X, y+1), cmap.At(t))
	}
	drawFrame(dst, bar, scale)

	tick := 3 * scale
	labels := []struct {
		y int
		v float64
	}{
		{bar.Max.Y - scale, lo},
		{bar.Min.Y, hi},
	}
	for _, l := range labels {
		fillRect(dst, image.Rect(bar.Max.X, l.y, bar.Max.X+tick, l.y+scale), frameColor)
		drawText(dst, formatValue(l.v), bar.Max.X+tick+2*scale, l.y, scale, frameColor, anchorMiddleLeft)
	}
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'g', 4, 64)
}

func toNRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}
