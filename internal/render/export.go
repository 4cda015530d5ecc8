package render

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/google/uuid"

	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
)

// DefaultPrefix names output files when Options.FilenamePrefix is empty.
const DefaultPrefix = "FEZrs_output"

// maxNameAttempts bounds the retries when a generated name already exists.
const maxNameAttempts = 8

// Export renders r and saves it as a PNG in dir, which is created with any
// missing parents.
//
// Parameters:
//   - r: the computed raster. Nil means nothing was computed.
//   - dir: the output directory.
//   - opts: drawing and naming options.
//
// Returns:
//   - string: the path of the new file, <dir>/<prefix>_<32 hex digits>.png.
//   - error: wraps errdefs.ErrNotComputed for a nil raster,
//     errdefs.ErrInvalidConfig for bad options, or the underlying I/O error.
//
// Existing files are never overwritten, and a failed export leaves no
// partial PNG behind.
func Export(r *raster.Raster, dir string, opts Options) (string, error) {
	if r == nil {
		return "", fmt.Errorf("nothing to export: %w", errdefs.ErrNotComputed)
	}
	if dir == "" {
		dir = "."
	}

	img, err := Render(r, opts)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".fezrs-*.png.tmp")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := imgio.PNGEncoder()(tmp, img); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to encode png: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write png: %w", err)
	}

	prefix := opts.FilenamePrefix
	if prefix == "" {
		prefix = DefaultPrefix
	}
	for i := 0; i < maxNameAttempts; i++ {
		name := filepath.Join(dir, fmt.Sprintf("%s_%s.png", prefix, Hex()))
		if _, err := os.Lstat(name); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to check %s: %w", name, err)
		}
		if err := os.Rename(tmpName, name); err != nil {
			return "", fmt.Errorf("failed to save %s: %w", name, err)
		}
		return name, nil
	}
	return "", fmt.Errorf("failed to find a free file name in %s", dir)
}

// Hex returns 32 random lowercase hex digits.
func Hex() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
