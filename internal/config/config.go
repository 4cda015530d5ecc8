// Package config loads FEZrs settings from YAML files and provides default
// values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/fezrs/internal/bands"
	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/render"
	"github.com/ironsheep/fezrs/internal/tools"
	"github.com/ironsheep/fezrs/internal/transform"
)

// Config represents the application configuration loaded from YAML
type Config struct {
	// Bands maps band names (tif, red, nir, blue, swir1, swir2, green) to
	// file paths.
	Bands map[string]string `yaml:"bands"`

	// Output is the directory exported figures are written to.
	Output string `yaml:"output"`

	// Export overrides the per-tool export defaults. Unset fields keep the
	// tool's own default.
	Export Export `yaml:"export"`

	// Gaussian configures the GAUSSIAN tool.
	Gaussian transform.GaussianParams `yaml:"gaussian"`

	// KMeans configures the KMEANS tool.
	KMeans transform.KMeansParams `yaml:"kmeans"`

	// Log controls logging output.
	Log struct {
		// Level is a logrus level name such as "debug" or "warn".
		Level string `yaml:"level"`
	} `yaml:"log"`
}

// Export holds export option overrides, as read from a config file or an
// MCP tool call. Pointer fields distinguish "false" from "not set".
type Export struct {
	Title          string    `yaml:"title,omitempty" json:"title,omitempty"`
	FigSize        []float64 `yaml:"figsize,omitempty" json:"figsize,omitempty"`
	ShowAxis       *bool     `yaml:"show_axis,omitempty" json:"show_axis,omitempty"`
	Colormap       string    `yaml:"colormap,omitempty" json:"colormap,omitempty"`
	ShowColorbar   *bool     `yaml:"show_colorbar,omitempty" json:"show_colorbar,omitempty"`
	FilenamePrefix string    `yaml:"filename_prefix,omitempty" json:"filename_prefix,omitempty"`
	DPI            int       `yaml:"dpi,omitempty" json:"dpi,omitempty"`
	BBox           string    `yaml:"bbox,omitempty" json:"bbox,omitempty"`
	Grid           *bool     `yaml:"grid,omitempty" json:"grid,omitempty"`
}

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	cfg := &Config{
		Bands:    map[string]string{},
		Output:   "output",
		Gaussian: transform.DefaultGaussianParams(),
		KMeans:   transform.DefaultKMeansParams(),
	}
	cfg.Log.Level = "info"
	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %v: %w", configPath, err, errdefs.ErrInvalidConfig)
	}
	if cfg.Bands == nil {
		cfg.Bands = map[string]string{}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}
	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file, creating its directory
// if needed.
func SaveConfig(cfg *Config, configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Validate checks band names, transform parameters, the figure size shape
// and the log level.
func (c *Config) Validate() error {
	if _, err := c.Paths(); err != nil {
		return err
	}
	if err := c.Gaussian.Validate(); err != nil {
		return err
	}
	if err := c.KMeans.Validate(); err != nil {
		return err
	}
	if n := len(c.Export.FigSize); n != 0 && n != 2 {
		return fmt.Errorf("export figsize must have 2 values, got %d: %w", n, errdefs.ErrInvalidConfig)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// Paths converts the bands section into band paths.
func (c *Config) Paths() (bands.Paths, error) {
	paths := make(bands.Paths, len(c.Bands))
	for k, v := range c.Bands {
		n, err := bands.ParseName(k)
		if err != nil {
			return nil, err
		}
		paths[n] = v
	}
	return paths, nil
}

// Params returns the transform parameters for tools.New.
func (c *Config) Params() tools.Params {
	return tools.Params{Gaussian: c.Gaussian, KMeans: c.KMeans}
}

// LogLevel parses the configured log level. Empty means info.
func (c *Config) LogLevel() (logrus.Level, error) {
	if c.Log.Level == "" {
		return logrus.InfoLevel, nil
	}
	lvl, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return 0, fmt.Errorf("log level: %v: %w", err, errdefs.ErrInvalidConfig)
	}
	return lvl, nil
}

// Apply returns o with every set override in e applied.
func (e Export) Apply(o render.Options) render.Options {
	if e.Title != "" {
		o.Title = e.Title
	}
	if len(e.FigSize) == 2 {
		o.FigSize = [2]float64{e.FigSize[0], e.FigSize[1]}
	}
	if e.ShowAxis != nil {
		o.ShowAxis = *e.ShowAxis
	}
	if e.Colormap != "" {
		o.Colormap = e.Colormap
	}
	if e.ShowColorbar != nil {
		o.ShowColorbar = *e.ShowColorbar
	}
	if e.FilenamePrefix != "" {
		o.FilenamePrefix = e.FilenamePrefix
	}
	if e.DPI != 0 {
		o.DPI = e.DPI
	}
	if e.BBox != "" {
		o.BBox = e.BBox
	}
	if e.Grid != nil {
		o.Grid = *e.Grid
	}
	return o
}
