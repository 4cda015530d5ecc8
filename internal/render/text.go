package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var face = basicfont.Face7x13

// textSize returns the pixel size of s drawn at the given scale.
func textSize(s string, scale int) (w, h int) {
	w = font.MeasureString(face, s).Ceil()
	h = face.Metrics().Height.Ceil()
	return w * scale, h * scale
}

// Text anchors.
type anchor int

const (
	anchorTopLeft anchor = iota
	anchorTopCenter
	anchorBottomCenter
	anchorMiddleLeft
	anchorMiddleRight
)

// drawText draws s in color c so that the given anchor of its bounding box
// lands on (x, y). It returns the box that was drawn.
func drawText(dst *image.NRGBA, s string, x, y, scale int, c color.Color, at anchor) image.Rectangle {
	if s == "" {
		return image.Rectangle{}
	}
	bw, bh := textSize(s, 1)
	glyphs := image.NewNRGBA(image.Rect(0, 0, bw, bh))
	d := &font.Drawer{
		Dst:  glyphs,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(0, face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)

	var src image.Image = glyphs
	if scale > 1 {
		src = imaging.Resize(glyphs, bw*scale, bh*scale, imaging.NearestNeighbor)
	}
	w, h := bw*scale, bh*scale

	switch at {
	case anchorTopCenter:
		x -= w / 2
	case anchorBottomCenter:
		x -= w / 2
		y -= h
	case anchorMiddleLeft:
		y -= h / 2
	case anchorMiddleRight:
		x -= w
		y -= h / 2
	}
	r := image.Rect(x, y, x+w, y+h)
	draw.Draw(dst, r, src, image.Point{}, draw.Over)
	return r
}
