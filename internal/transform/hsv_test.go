package transform

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
)

func band(t *testing.T, rows, cols int, data ...float64) *raster.Raster {
	t.Helper()
	r, err := raster.FromPlanes(mat.NewDense(rows, cols, data))
	if err != nil {
		t.Fatalf("FromPlanes failed: %v", err)
	}
	return r
}

func TestHSV_ShapeAndRange(t *testing.T) {
	nir := band(t, 2, 3, 0, 0.2, 0.4, 0.6, 0.8, 1)
	green := band(t, 2, 3, 1, 0.5, 0.1, 0.9, 0, 0.3)
	blue := band(t, 2, 3, 0.3, 0.3, 0.7, 0.2, 0.6, 1)

	hsv, err := HSV(nir, green, blue)
	if err != nil {
		t.Fatalf("HSV failed: %v", err)
	}
	rows, cols, planes := hsv.Dims()
	if rows != 2 || cols != 3 || planes != 3 {
		t.Fatalf("Dims: got %dx%dx%d, want 2x3x3", rows, cols, planes)
	}
	for p := 0; p < planes; p++ {
		for i, v := range hsv.Data(p) {
			if v < 0 || v > 1 {
				t.Errorf("plane %d sample %d: got %v, want value in [0,1]", p, i, v)
			}
		}
	}
}

func TestHSV_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b float64
		h, s, v float64
	}{
		{"red", 1, 0, 0, 0, 1, 1},
		{"green", 0, 1, 0, 1.0 / 3, 1, 1},
		{"blue", 0, 0, 1, 2.0 / 3, 1, 1},
		{"gray", 0.5, 0.5, 0.5, 0, 0, 0.5},
		{"black", 0, 0, 0, 0, 0, 0},
		{"half saturated", 1, 0.5, 0.5, 0, 0.5, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hsv, err := HSV(band(t, 1, 1, tt.r), band(t, 1, 1, tt.g), band(t, 1, 1, tt.b))
			if err != nil {
				t.Fatalf("HSV failed: %v", err)
			}
			got := []float64{hsv.At(0, 0, HueChannel), hsv.At(0, 0, SaturationChannel), hsv.At(0, 0, ValueChannel)}
			want := []float64{tt.h, tt.s, tt.v}
			for i := range want {
				if math.Abs(got[i]-want[i]) > 1e-9 {
					t.Errorf("channel %d: got %v, want %v", i, got[i], want[i])
				}
			}
		})
	}
}

func TestSaturation_IsHSVPlaneOne(t *testing.T) {
	nir := band(t, 2, 2, 0.1, 0.9, 0.4, 0.4)
	green := band(t, 2, 2, 0.5, 0.2, 0.4, 1)
	blue := band(t, 2, 2, 0.9, 0.2, 0.4, 0)

	hsv, err := HSV(nir, green, blue)
	if err != nil {
		t.Fatalf("HSV failed: %v", err)
	}
	sat, err := Saturation(nir, green, blue)
	if err != nil {
		t.Fatalf("Saturation failed: %v", err)
	}
	if sat.Planes() != 1 {
		t.Fatalf("Planes: got %d, want 1", sat.Planes())
	}
	for i, v := range sat.Data(0) {
		if v != hsv.Data(SaturationChannel)[i] {
			t.Errorf("sample %d: got %v, want %v", i, v, hsv.Data(SaturationChannel)[i])
		}
	}
}

func TestIRSaturation_ChannelOrder(t *testing.T) {
	swir2 := band(t, 1, 2, 1, 0.2)
	swir1 := band(t, 1, 2, 0.5, 0.2)
	red := band(t, 1, 2, 0.25, 0.8)

	sat, err := IRSaturation(swir2, swir1, red)
	if err != nil {
		t.Fatalf("IRSaturation failed: %v", err)
	}
	rgb, _ := raster.Stack(swir2, swir1, red)
	hsv, _ := RGBToHSV(rgb)
	for i, v := range sat.Data(0) {
		if v != hsv.Data(SaturationChannel)[i] {
			t.Errorf("sample %d: got %v, want %v", i, v, hsv.Data(SaturationChannel)[i])
		}
	}
	if math.Abs(sat.At(0, 0, 0)-0.75) > 1e-12 {
		t.Errorf("saturation of (1, 0.5, 0.25): got %v, want 0.75", sat.At(0, 0, 0))
	}
}

func TestHSV_Errors(t *testing.T) {
	ok := band(t, 2, 2, 0, 0, 0, 0)
	wide := band(t, 2, 3, 0, 0, 0, 0, 0, 0)
	multi := raster.New(2, 2, 3)

	tests := []struct {
		name             string
		nir, green, blue *raster.Raster
		want             error
	}{
		{"missing nir", nil, ok, ok, errdefs.ErrMissingBand},
		{"missing blue", ok, ok, nil, errdefs.ErrMissingBand},
		{"shape mismatch", ok, wide, ok, errdefs.ErrInvalidConfig},
		{"multi-plane input", ok, ok, multi, errdefs.ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := HSV(tt.nir, tt.green, tt.blue); !errors.Is(err, tt.want) {
				t.Errorf("HSV error: got %v, want %v", err, tt.want)
			}
			if _, err := Saturation(tt.nir, tt.green, tt.blue); !errors.Is(err, tt.want) {
				t.Errorf("Saturation error: got %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := IRSaturation(ok, nil, ok); !errors.Is(err, errdefs.ErrMissingBand) {
		t.Errorf("IRSaturation error: got %v, want ErrMissingBand", err)
	}
}

func TestRGBToHSV_RejectsWrongPlaneCount(t *testing.T) {
	if _, err := RGBToHSV(raster.New(1, 1, 2)); !errors.Is(err, errdefs.ErrInvalidConfig) {
		t.Errorf("RGBToHSV error: got %v, want ErrInvalidConfig", err)
	}
}
