package render

import (
	"image"

	"github.com/disintegration/imaging"
)

// contentBounds returns the smallest rectangle holding every pixel of img
// that is not opaque white. It is empty if there is none.
func contentBounds(img *image.NRGBA) image.Rectangle {
	b := img.Bounds()
	minX, minY, maxX, maxY := b.Max.X, b.Max.Y, b.Min.X, b.Min.Y
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X-1, y)+4]
		for x := 0; x < b.Dx(); x++ {
			p := row[4*x : 4*x+4]
			if p[0] == 255 && p[1] == 255 && p[2] == 255 && p[3] == 255 {
				continue
			}
			px := b.Min.X + x
			minX, maxX = min(minX, px), max(maxX, px+1)
			minY, maxY = min(minY, y), max(maxY, y+1)
		}
	}
	if minX >= maxX || minY >= maxY {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX, maxY)
}

// cropTight crops img to its content plus pad pixels on every side, clipped
// to the canvas. A blank canvas is returned unchanged.
func cropTight(img *image.NRGBA, pad int) *image.NRGBA {
	c := contentBounds(img)
	if c.Empty() {
		return img
	}
	return imaging.Crop(img, c.Inset(-pad).Intersect(img.Bounds()))
}
