package render

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/fezrs/internal/errdefs"
)

func blankCanvas(w, h int) *image.NRGBA {
	return imaging.New(w, h, color.White)
}

func TestLookupColormap(t *testing.T) {
	for _, name := range ColormapNames() {
		for _, n := range []string{name, name + "_r"} {
			t.Run(n, func(t *testing.T) {
				m, err := LookupColormap(n)
				if err != nil {
					t.Fatalf("LookupColormap(%q) failed: %v", n, err)
				}
				if m.Name() != n {
					t.Errorf("Name: got %s, want %s", m.Name(), n)
				}
			})
		}
	}

	if _, err := LookupColormap("Greys_Fancy"); !errors.Is(err, errdefs.ErrInvalidConfig) {
		t.Errorf("unknown colormap: got %v, want ErrInvalidConfig", err)
	}
	if m, err := LookupColormap(" GREY "); err != nil || m.Name() != "gray" {
		t.Errorf("LookupColormap(GREY): got %v, %v", m.Name(), err)
	}
}

func TestColormap_At(t *testing.T) {
	gray, _ := LookupColormap("gray")
	tests := []struct {
		t    float64
		want color.NRGBA
	}{
		{-1, color.NRGBA{0, 0, 0, 255}},
		{0, color.NRGBA{0, 0, 0, 255}},
		{0.5, color.NRGBA{128, 128, 128, 255}},
		{1, color.NRGBA{255, 255, 255, 255}},
		{2, color.NRGBA{255, 255, 255, 255}},
	}
	for _, tt := range tests {
		if got := gray.At(tt.t); got != tt.want {
			t.Errorf("gray.At(%v): got %v, want %v", tt.t, got, tt.want)
		}
	}

	rev, _ := LookupColormap("gray_r")
	if got := rev.At(0); got != (color.NRGBA{255, 255, 255, 255}) {
		t.Errorf("gray_r.At(0): got %v, want white", got)
	}

	viridis, _ := LookupColormap("viridis")
	if got := viridis.At(0); got != (color.NRGBA{0x44, 0x01, 0x54, 255}) {
		t.Errorf("viridis.At(0): got %v, want #440154", got)
	}
	if got := viridis.At(1); got != (color.NRGBA{0xfd, 0xe7, 0x25, 255}) {
		t.Errorf("viridis.At(1): got %v, want #fde725", got)
	}
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		extent, want int
	}{
		{0, 1}, {3, 1}, {9, 2}, {20, 5}, {99, 20}, {1000, 200}, {5000, 1000},
	}
	for _, tt := range tests {
		if got := tickStep(tt.extent, 6); got != tt.want {
			t.Errorf("tickStep(%d): got %d, want %d", tt.extent, got, tt.want)
		}
	}
}

func TestCropTight(t *testing.T) {
	o := Options{FigSize: [2]float64{1, 1}, DPI: 40}
	w, h := o.canvasSize()
	img := blankCanvas(w, h)
	img.SetNRGBA(10, 12, color.NRGBA{A: 255})
	img.SetNRGBA(20, 15, color.NRGBA{R: 200, A: 255})

	got := cropTight(img, 2)
	if got.Bounds().Dx() != 15 || got.Bounds().Dy() != 8 {
		t.Errorf("cropped size: got %v, want 15x8", got.Bounds().Size())
	}

	blank := blankCanvas(w, h)
	if cropTight(blank, 2) != blank {
		t.Error("blank canvas should be returned unchanged")
	}
}
