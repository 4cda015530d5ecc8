package transform

import (
	"fmt"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
)

// Channels of an HSV raster.
const (
	HueChannel        = 0
	SaturationChannel = 1
	ValueChannel      = 2
)

// composite checks that the three named inputs are present, single-plane and
// of the same shape, then stacks them as R, G, B.
func composite(names [3]string, rs [3]*raster.Raster) (*raster.Raster, error) {
	for i, r := range rs {
		if r == nil {
			return nil, fmt.Errorf("%s band is required: %w", names[i], errdefs.ErrMissingBand)
		}
		if r.Planes() != 1 {
			return nil, fmt.Errorf("%s band has %d planes, want 1: %w", names[i], r.Planes(), errdefs.ErrInvalidConfig)
		}
		if !rs[0].SameShape(r) {
			return nil, fmt.Errorf("%s band is %dx%d, %s band is %dx%d: %w",
				names[i], r.Rows(), r.Cols(), names[0], rs[0].Rows(), rs[0].Cols(), errdefs.ErrInvalidConfig)
		}
	}
	return raster.Stack(rs[0], rs[1], rs[2])
}

// RGBToHSV converts a three-plane raster with samples in [0,1] into H, S, V
// planes, each in [0,1]. Hue is the angle divided by 360, and is 0 for
// achromatic pixels. Samples outside [0,1] are clamped first.
func RGBToHSV(rgb *raster.Raster) (*raster.Raster, error) {
	if rgb == nil {
		return nil, fmt.Errorf("rgb raster is required: %w", errdefs.ErrMissingBand)
	}
	if rgb.Planes() != 3 {
		return nil, fmt.Errorf("rgb raster has %d planes, want 3: %w", rgb.Planes(), errdefs.ErrInvalidConfig)
	}

	out := raster.New(rgb.Rows(), rgb.Cols(), 3)
	r, g, b := rgb.Data(0), rgb.Data(1), rgb.Data(2)
	h, s, v := out.Data(HueChannel), out.Data(SaturationChannel), out.Data(ValueChannel)
	for i := range r {
		c := colorful.Color{R: r[i], G: g[i], B: b[i]}.Clamped()
		hue, sat, val := c.Hsv()
		h[i], s[i], v[i] = hue/360, sat, val
	}
	return out, nil
}

// HSV builds the (NIR, Green, Blue) composite of normalized bands and
// converts it to HSV. The result has the inputs' shape and three planes.
func HSV(nir, green, blue *raster.Raster) (*raster.Raster, error) {
	rgb, err := composite([3]string{"nir", "green", "blue"}, [3]*raster.Raster{nir, green, blue})
	if err != nil {
		return nil, err
	}
	return RGBToHSV(rgb)
}

// Saturation returns the saturation plane of HSV(nir, green, blue).
func Saturation(nir, green, blue *raster.Raster) (*raster.Raster, error) {
	hsv, err := HSV(nir, green, blue)
	if err != nil {
		return nil, err
	}
	return hsv.Select(SaturationChannel), nil
}

// IRSaturation returns the saturation plane of the (SWIR2, SWIR1, Red)
// composite.
func IRSaturation(swir2, swir1, red *raster.Raster) (*raster.Raster, error) {
	rgb, err := composite([3]string{"swir2", "swir1", "red"}, [3]*raster.Raster{swir2, swir1, red})
	if err != nil {
		return nil, err
	}
	hsv, err := RGBToHSV(rgb)
	if err != nil {
		return nil, err
	}
	return hsv.Select(SaturationChannel), nil
}
