package transform

import (
	"errors"
	"math"
	"testing"

	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
)

func TestKMeans_TwoValuesTwoClusters(t *testing.T) {
	in := band(t, 3, 3,
		10, 10, 200,
		200, 10, 200,
		10, 200, 10,
	)
	out, err := KMeans(in, KMeansParams{Clusters: 2})
	if err != nil {
		t.Fatalf("KMeans failed: %v", err)
	}
	if out.Rows() != 3 || out.Cols() != 3 || out.Planes() != 1 {
		t.Fatalf("Dims: got %dx%dx%d, want 3x3x1", out.Rows(), out.Cols(), out.Planes())
	}
	for i, v := range out.Data(0) {
		if v != in.Data(0)[i] {
			t.Errorf("sample %d: got %v, want %v", i, v, in.Data(0)[i])
		}
	}
}

func TestKMeans_SeparatesGroups(t *testing.T) {
	in := band(t, 2, 4,
		0, 0.01, 0.02, 0.99,
		0.98, 1, 0.01, 0.99,
	)
	out, err := KMeans(in, KMeansParams{Clusters: 2})
	if err != nil {
		t.Fatalf("KMeans failed: %v", err)
	}

	values := distinct(out.Data(0), 10)
	if len(values) != 2 {
		t.Fatalf("distinct centroids: got %v, want 2 values", values)
	}
	if math.Abs(values[0]-0.01) > 0.02 || math.Abs(values[1]-0.99) > 0.02 {
		t.Errorf("centroids: got %v, want about [0.01 0.99]", values)
	}
	for i, v := range in.Data(0) {
		want := values[0]
		if v > 0.5 {
			want = values[1]
		}
		if out.Data(0)[i] != want {
			t.Errorf("sample %d (%v): got centroid %v, want %v", i, v, out.Data(0)[i], want)
		}
	}
}

func TestKMeans_DefaultClusterCount(t *testing.T) {
	if DefaultKMeansParams().Clusters != 4 {
		t.Errorf("default clusters: got %d, want 4", DefaultKMeansParams().Clusters)
	}

	data := make([]float64, 64)
	for i := range data {
		data[i] = float64(i)
	}
	out, err := KMeans(band(t, 8, 8, data...), DefaultKMeansParams())
	if err != nil {
		t.Fatalf("KMeans failed: %v", err)
	}
	got := distinct(out.Data(0), 100)
	if len(got) > 4 {
		t.Errorf("centroids: got %d distinct values, want at most 4", len(got))
	}
	for _, v := range got {
		if v < 0 || v > 63 {
			t.Errorf("centroid %v outside the input range", v)
		}
	}
}

func TestKMeans_UsesFirstPlane(t *testing.T) {
	in := raster.New(1, 2, 3)
	in.Set(0, 0, 0, 1)
	in.Set(0, 1, 0, 5)
	in.Set(0, 0, 2, 99)

	out, err := KMeans(in, KMeansParams{Clusters: 2})
	if err != nil {
		t.Fatalf("KMeans failed: %v", err)
	}
	if out.At(0, 0, 0) != 1 || out.At(0, 1, 0) != 5 {
		t.Errorf("got (%v, %v), want (1, 5)", out.At(0, 0, 0), out.At(0, 1, 0))
	}
}

func TestKMeans_NaNStaysNaN(t *testing.T) {
	out, err := KMeans(band(t, 1, 3, 1, math.NaN(), 3), KMeansParams{Clusters: 2})
	if err != nil {
		t.Fatalf("KMeans failed: %v", err)
	}
	d := out.Data(0)
	if d[0] != 1 || !math.IsNaN(d[1]) || d[2] != 3 {
		t.Errorf("got %v, want [1 NaN 3]", d)
	}
}

func TestKMeansParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  KMeansParams
		wantErr bool
	}{
		{"default", DefaultKMeansParams(), false},
		{"one cluster", KMeansParams{Clusters: 1}, false},
		{"custom threshold", KMeansParams{Clusters: 3, Threshold: 0.05}, false},
		{"zero clusters", KMeansParams{}, true},
		{"negative clusters", KMeansParams{Clusters: -2}, true},
		{"threshold too large", KMeansParams{Clusters: 2, Threshold: 1}, true},
		{"negative threshold", KMeansParams{Clusters: 2, Threshold: -0.1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate: got %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errdefs.ErrInvalidConfig) {
				t.Errorf("Validate error should wrap ErrInvalidConfig: %v", err)
			}
		})
	}
}

func TestKMeans_Errors(t *testing.T) {
	if _, err := KMeans(nil, DefaultKMeansParams()); !errors.Is(err, errdefs.ErrMissingBand) {
		t.Errorf("KMeans(nil): got %v, want ErrMissingBand", err)
	}
	if _, err := KMeans(raster.New(2, 2, 1), KMeansParams{}); !errors.Is(err, errdefs.ErrInvalidConfig) {
		t.Errorf("KMeans with zero clusters: got %v, want ErrInvalidConfig", err)
	}
}
