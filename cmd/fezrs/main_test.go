package main

import (
	"testing"

	"github.com/ironsheep/fezrs/internal/config"
)

func TestParseFigSize(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{"10,5", []float64{10, 5}, false},
		{" 3.5 , 2 ", []float64{3.5, 2}, false},
		{"10", nil, true},
		{"a,b", nil, true},
		{"1,2,3", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseFigSize(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFigSize(%q) error: got %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got[0] != tt.want[0] || got[1] != tt.want[1] {
				t.Errorf("parseFigSize(%q): got %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestToolFlags_OnlySetFlagsOverride(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output = "from-config"
	cfg.Export.DPI = 72
	cfg.Bands["nir"] = "/config/nir.tif"

	f := newToolFlags("kmeans")
	if err := f.fs.Parse([]string{"-k", "6", "-colorbar=false", "-red", "/cli/red.tif", "-figsize", "4,3"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := f.apply(cfg); err != nil {
		t.Fatalf("apply failed: %v", err)
	}

	if cfg.KMeans.Clusters != 6 {
		t.Errorf("Clusters: got %d, want 6", cfg.KMeans.Clusters)
	}
	if cfg.Export.ShowColorbar == nil || *cfg.Export.ShowColorbar {
		t.Error("explicit -colorbar=false should override")
	}
	if cfg.Export.ShowAxis != nil {
		t.Error("unset -show-axis should not override")
	}
	if cfg.Export.DPI != 72 {
		t.Errorf("DPI: got %d, want the config value 72", cfg.Export.DPI)
	}
	if cfg.Output != "from-config" {
		t.Errorf("Output: got %s, want from-config", cfg.Output)
	}
	if cfg.Bands["nir"] != "/config/nir.tif" || cfg.Bands["red"] != "/cli/red.tif" {
		t.Errorf("Bands: got %v", cfg.Bands)
	}
	if len(cfg.Export.FigSize) != 2 || cfg.Export.FigSize[0] != 4 {
		t.Errorf("FigSize: got %v, want [4 3]", cfg.Export.FigSize)
	}
}

func TestNewToolFlags_ToolSpecific(t *testing.T) {
	if newToolFlags("gaussian").fs.Lookup("ksize-x") == nil {
		t.Error("gaussian should accept -ksize-x")
	}
	if newToolFlags("hsv").fs.Lookup("k") != nil {
		t.Error("hsv should not accept -k")
	}
	if newToolFlags("KMEANS").fs.Lookup("k") == nil {
		t.Error("kmeans should accept -k")
	}
}
