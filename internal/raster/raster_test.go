package raster

import (
	"image"
	"image/color"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

func TestNew(t *testing.T) {
	r := New(3, 4, 2)
	rows, cols, planes := r.Dims()
	if rows != 3 || cols != 4 || planes != 2 {
		t.Fatalf("Dims: got %dx%dx%d, want 3x4x2", rows, cols, planes)
	}
	for p := 0; p < planes; p++ {
		if len(r.Data(p)) != 12 {
			t.Errorf("plane %d: got %d samples, want 12", p, len(r.Data(p)))
		}
	}
}

func TestFromPlanes_ShapeMismatch(t *testing.T) {
	_, err := FromPlanes(mat.NewDense(2, 2, nil), mat.NewDense(2, 3, nil))
	if err == nil {
		t.Error("FromPlanes should fail for planes of different shape")
	}
	if _, err := FromPlanes(); err == nil {
		t.Error("FromPlanes should fail with no planes")
	}
}

func TestFromPlanes_CopiesStridedView(t *testing.T) {
	full := mat.NewDense(3, 3, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	view := full.Slice(0, 2, 1, 3).(*mat.Dense)

	r, err := FromPlanes(view)
	if err != nil {
		t.Fatalf("FromPlanes failed: %v", err)
	}
	want := []float64{2, 3, 5, 6}
	for i, v := range r.Data(0) {
		if v != want[i] {
			t.Errorf("sample %d: got %v, want %v", i, v, want[i])
		}
	}
}

func TestFromImage_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 2))
	img.SetGray(0, 0, color.Gray{Y: 10})
	img.SetGray(2, 1, color.Gray{Y: 250})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if r.Planes() != 1 {
		t.Fatalf("Planes: got %d, want 1", r.Planes())
	}
	if r.Rows() != 2 || r.Cols() != 3 {
		t.Fatalf("shape: got %dx%d, want 2x3", r.Rows(), r.Cols())
	}
	if r.At(0, 0, 0) != 10 {
		t.Errorf("At(0,0): got %v, want 10", r.At(0, 0, 0))
	}
	if r.At(1, 2, 0) != 250 {
		t.Errorf("At(1,2): got %v, want 250", r.At(1, 2, 0))
	}
}

func TestFromImage_Gray16KeepsRawValues(t *testing.T) {
	img := image.NewGray16(image.Rect(0, 0, 2, 2))
	img.SetGray16(1, 1, color.Gray16{Y: 40000})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if r.At(1, 1, 0) != 40000 {
		t.Errorf("At(1,1): got %v, want 40000", r.At(1, 1, 0))
	}
}

func TestFromImage_ColorGivesThreePlanes(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 1, color.RGBA{R: 200, G: 100, B: 50, A: 255})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if r.Planes() != 3 {
		t.Fatalf("Planes: got %d, want 3", r.Planes())
	}
	got := []float64{r.At(1, 0, 0), r.At(1, 0, 1), r.At(1, 0, 2)}
	want := []float64{200, 100, 50}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("plane %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestFromImage_OffsetBounds(t *testing.T) {
	img := image.NewGray(image.Rect(5, 5, 8, 7))
	img.SetGray(5, 5, color.Gray{Y: 7})

	r, err := FromImage(img)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}
	if r.At(0, 0, 0) != 7 {
		t.Errorf("At(0,0): got %v, want 7", r.At(0, 0, 0))
	}
}

func TestFromImage_Empty(t *testing.T) {
	if _, err := FromImage(image.NewGray(image.Rect(0, 0, 0, 0))); err == nil {
		t.Error("FromImage should fail for an empty image")
	}
}

func TestDepth(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
		want int
	}{
		{"gray", image.NewGray(image.Rect(0, 0, 1, 1)), 8},
		{"gray16", image.NewGray16(image.Rect(0, 0, 1, 1)), 16},
		{"rgba", image.NewRGBA(image.Rect(0, 0, 1, 1)), 8},
		{"nrgba64", image.NewNRGBA64(image.Rect(0, 0, 1, 1)), 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Depth(tt.img); got != tt.want {
				t.Errorf("Depth: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	p := mat.NewDense(2, 2, []float64{3, math.NaN(), -1, 8})
	r, _ := FromPlanes(p)
	lo, hi := r.MinMax()
	if lo != -1 || hi != 8 {
		t.Errorf("MinMax: got (%v,%v), want (-1,8)", lo, hi)
	}

	allNaN, _ := FromPlanes(mat.NewDense(1, 2, []float64{math.NaN(), math.NaN()}))
	lo, hi = allNaN.MinMax()
	if !math.IsNaN(lo) || !math.IsNaN(hi) {
		t.Errorf("MinMax of all-NaN raster: got (%v,%v), want (NaN,NaN)", lo, hi)
	}
}

func TestStack(t *testing.T) {
	a, _ := FromPlanes(mat.NewDense(1, 2, []float64{1, 2}))
	b, _ := FromPlanes(mat.NewDense(1, 2, []float64{3, 4}))

	s, err := Stack(a, b)
	if err != nil {
		t.Fatalf("Stack failed: %v", err)
	}
	if s.Planes() != 2 {
		t.Fatalf("Planes: got %d, want 2", s.Planes())
	}
	if s.At(0, 1, 1) != 4 {
		t.Errorf("At(0,1,1): got %v, want 4", s.At(0, 1, 1))
	}

	// Stacking copies, so mutating the result leaves the inputs alone.
	s.Set(0, 0, 0, 99)
	if a.At(0, 0, 0) != 1 {
		t.Error("Stack shared storage with its input")
	}
}

func TestStack_Errors(t *testing.T) {
	a, _ := FromPlanes(mat.NewDense(1, 2, nil))
	wide, _ := FromPlanes(mat.NewDense(1, 3, nil))
	multi := New(1, 2, 2)

	tests := []struct {
		name string
		in   []*Raster
	}{
		{"empty", nil},
		{"absent input", []*Raster{a, nil}},
		{"shape mismatch", []*Raster{a, wide}},
		{"multi-plane input", []*Raster{a, multi}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Stack(tt.in...); err == nil {
				t.Error("Stack should fail")
			}
		})
	}
}

func TestCloneAndSelect(t *testing.T) {
	r := New(2, 2, 3)
	r.Set(1, 1, 2, 5)

	c := r.Clone()
	c.Set(1, 1, 2, 6)
	if r.At(1, 1, 2) != 5 {
		t.Error("Clone shared storage with the original")
	}

	s := r.Select(2)
	if s.Planes() != 1 || s.At(1, 1, 0) != 5 {
		t.Errorf("Select: got %d planes, value %v; want 1 plane, value 5", s.Planes(), s.At(1, 1, 0))
	}
}
