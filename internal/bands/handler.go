package bands

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
)

// Handler loads and owns the bands of one tool instance.
//
// Bands are read once, when the Handler is opened, and are immutable
// afterwards. Absent bands are kept as explicit nil entries so that callers
// never need to distinguish "not given" from "not loaded".
type Handler struct {
	paths map[Name]string
	bands map[Name]*raster.Raster
	cache *Cache
}

// Option configures Open.
type Option func(*Handler)

// WithCache makes the Handler decode through a shared cache instead of a
// private one.
func WithCache(c *Cache) Option {
	return func(h *Handler) {
		if c != nil {
			h.cache = c
		}
	}
}

// Open loads every band that has a path.
//
// Parameters:
//   - paths: band name to file path. Missing keys and empty paths are absent
//     bands and are not an error.
//   - opts: optional settings such as WithCache.
//
// Returns:
//   - *Handler: owns the loaded bands.
//   - error: wraps errdefs.ErrInvalidConfig for names outside the band
//     vocabulary, errdefs.ErrFileNotFound for a path that does not exist, or
//     a decode error for unreadable files.
func Open(paths Paths, opts ...Option) (*Handler, error) {
	h := &Handler{
		paths: make(map[Name]string, len(All())),
		bands: make(map[Name]*raster.Raster, len(All())),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.cache == nil {
		h.cache = NewCache()
	}

	for name := range paths {
		if !name.Valid() {
			return nil, fmt.Errorf("unknown band %q: %w", name, errdefs.ErrInvalidConfig)
		}
	}

	for _, name := range All() {
		path := paths[name]
		h.paths[name] = path
		h.bands[name] = nil
		if path == "" {
			continue
		}
		d, err := h.cache.load(path)
		if err != nil {
			return nil, fmt.Errorf("band %s: %w", name, err)
		}
		h.bands[name] = d.raster
	}
	return h, nil
}

// Has reports whether band n was loaded.
func (h *Handler) Has(n Name) bool {
	return h.bands[n] != nil
}

// Band returns the raw band n, or nil if it is absent.
func (h *Handler) Band(n Name) *raster.Raster {
	return h.bands[n]
}

// Path returns the file path band n was loaded from, or "".
func (h *Handler) Path(n Name) string {
	return h.paths[n]
}

// Loaded lists the names of the present bands in canonical order.
func (h *Handler) Loaded() []Name {
	var names []Name
	for _, n := range All() {
		if h.bands[n] != nil {
			names = append(names, n)
		}
	}
	return names
}

// Requested returns the raw bands for the given names only. Absent bands map
// to nil; names outside the vocabulary are skipped.
func (h *Handler) Requested(names ...Name) map[Name]*raster.Raster {
	out := make(map[Name]*raster.Raster, len(names))
	for _, n := range names {
		if n.Valid() {
			out[n] = h.bands[n]
		}
	}
	return out
}

// Normalized returns every band rescaled to [0,1]. Each call recomputes the
// result from the raw bands. Absent bands map to nil.
func (h *Handler) Normalized() map[Name]*raster.Raster {
	out := make(map[Name]*raster.Raster, len(h.bands))
	for n, r := range h.bands {
		out[n] = Normalize(r)
	}
	return out
}

// NormalizedBand returns band n rescaled to [0,1], or nil if it is absent.
func (h *Handler) NormalizedBand(n Name) *raster.Raster {
	return Normalize(h.bands[n])
}

// Metadata describes one band file.
//
// Image and Raster are the two pixel representations of the file: the
// decoded image (nil with the gdal backend) and the raw samples as float64.
type Metadata struct {
	Image  image.Image    `json:"-"`
	Raster *raster.Raster `json:"-"`

	// Height is the number of pixel rows.
	Height int `json:"height"`

	// Width is the number of pixel columns.
	Width int `json:"width"`

	// Planes is 1 for grayscale bands, 3 for color files, or the dataset
	// band count with the gdal backend.
	Planes int `json:"planes"`

	// Format is detected from the file extension: "tiff", "png", "jpeg",
	// "gif", "bmp" or "unknown".
	Format string `json:"format"`

	// ColorModel is "gray" for single-plane bands and "rgb" for color files.
	// The gdal backend reports "float".
	ColorModel string `json:"color_model"`

	// BitDepth is 8 or 16 for decoded images, 64 for GDAL float samples.
	BitDepth int `json:"bit_depth"`

	// FileSizeBytes is the size of the file on disk.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Metadata returns descriptive records for the requested bands, computed on
// each call. With no names, every loaded band is described. Bands without a
// path, or whose file has since disappeared, are left out of the result.
func (h *Handler) Metadata(names ...Name) (map[Name]*Metadata, error) {
	if len(names) == 0 {
		names = h.Loaded()
	}

	out := make(map[Name]*Metadata, len(names))
	for _, n := range names {
		path := h.paths[n]
		if path == "" {
			continue
		}
		st, err := os.Stat(path)
		if err != nil {
			continue
		}
		d, err := h.cache.load(path)
		if err != nil {
			return nil, fmt.Errorf("band %s: %w", n, err)
		}

		md := &Metadata{
			Image:         d.img,
			Raster:        d.raster,
			Height:        d.raster.Rows(),
			Width:         d.raster.Cols(),
			Planes:        d.raster.Planes(),
			Format:        formatOf(path),
			ColorModel:    "float",
			BitDepth:      64,
			FileSizeBytes: st.Size(),
		}
		if d.img != nil {
			md.BitDepth = raster.Depth(d.img)
			md.ColorModel = "rgb"
			if d.raster.Planes() == 1 {
				md.ColorModel = "gray"
			}
		}
		out[n] = md
	}
	return out, nil
}

// formatOf maps a file extension to a format name.
func formatOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".tif", ".tiff":
		return "tiff"
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	}
	return "unknown"
}
