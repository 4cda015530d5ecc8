package bands

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/ironsheep/fezrs/internal/raster"
)

func mustRaster(t *testing.T, rows, cols int, data ...float64) *raster.Raster {
	t.Helper()
	r, err := raster.FromPlanes(mat.NewDense(rows, cols, data))
	if err != nil {
		t.Fatalf("FromPlanes failed: %v", err)
	}
	return r
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   []float64
		want []float64
	}{
		{"ramp", []float64{10, 20, 30, 50}, []float64{0, 0.25, 0.5, 1}},
		{"negative", []float64{-2, 0, 2, 6}, []float64{0, 0.25, 0.5, 1}},
		{"constant", []float64{7, 7, 7, 7}, []float64{0, 0, 0, 0}},
		{"already unit", []float64{0, 1, 0, 1}, []float64{0, 1, 0, 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mustRaster(t, 2, 2, tt.in...)
			got := Normalize(in)
			for i, v := range got.Data(0) {
				if math.Abs(v-tt.want[i]) > 1e-12 {
					t.Errorf("sample %d: got %v, want %v", i, v, tt.want[i])
				}
			}
			if in.Data(0)[0] != tt.in[0] {
				t.Error("Normalize modified its input")
			}
		})
	}
}

func TestNormalize_Absent(t *testing.T) {
	if Normalize(nil) != nil {
		t.Error("Normalize(nil) should be nil")
	}
}

func TestNormalize_NaN(t *testing.T) {
	got := Normalize(mustRaster(t, 1, 3, 4, math.NaN(), 8))
	d := got.Data(0)
	if d[0] != 0 || d[2] != 1 {
		t.Errorf("got (%v, %v), want (0, 1)", d[0], d[2])
	}
	if !math.IsNaN(d[1]) {
		t.Errorf("NaN sample: got %v, want NaN", d[1])
	}

	allNaN := Normalize(mustRaster(t, 1, 2, math.NaN(), math.NaN()))
	for i, v := range allNaN.Data(0) {
		if !math.IsNaN(v) {
			t.Errorf("sample %d: got %v, want NaN", i, v)
		}
	}
}

func TestNormalize_AcrossPlanes(t *testing.T) {
	a := mat.NewDense(1, 2, []float64{0, 50})
	b := mat.NewDense(1, 2, []float64{100, 25})
	r, err := raster.FromPlanes(a, b)
	if err != nil {
		t.Fatalf("FromPlanes failed: %v", err)
	}
	got := Normalize(r)
	if got.At(0, 1, 0) != 0.5 || got.At(0, 0, 1) != 1 {
		t.Errorf("got (%v, %v), want (0.5, 1)", got.At(0, 1, 0), got.At(0, 0, 1))
	}
}
