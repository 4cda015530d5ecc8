package bands

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"sync"

	"github.com/ironsheep/fezrs/internal/errdefs"
	"github.com/ironsheep/fezrs/internal/raster"
)

// decoded is what a decoder produces for one file.
type decoded struct {
	// img is the decoded image, or nil when the decoder reads samples
	// directly (the GDAL backend does).
	img    image.Image
	raster *raster.Raster
}

// Cache provides thread-safe caching of decoded band files to avoid
// redundant disk reads.
//
// The cache stores decoded files keyed by their path. Once a file is loaded,
// subsequent load calls for the same path return the cached copy without
// disk I/O. Cached rasters are shared between callers and must not be
// mutated.
//
// Cache is safe for concurrent use by multiple goroutines. A single Cache is
// shared by every tool the MCP server builds; a standalone Handler gets a
// private one.
//
// # Memory Management
//
// Cached files remain in memory until explicitly removed via Evict() or
// Clear(). Satellite scenes are large; long-running processes should evict
// scenes they no longer need.
type Cache struct {
	mu    sync.RWMutex
	files map[string]*decoded
}

// NewCache creates and initializes a new empty cache.
func NewCache() *Cache {
	return &Cache{
		files: make(map[string]*decoded),
	}
}

// load returns the decoded contents of path, reading the file on first use.
//
// # Errors
//
//   - Wraps errdefs.ErrFileNotFound if path does not exist or is a directory
//   - Returns a decode error if the file is not a supported raster
func (c *Cache) load(path string) (*decoded, error) {
	c.mu.RLock()
	if d, ok := c.files[path]; ok {
		c.mu.RUnlock()
		return d, nil
	}
	c.mu.RUnlock()

	if err := checkFile(path); err != nil {
		return nil, err
	}

	d, err := decodeFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	c.mu.Lock()
	c.files[path] = d
	c.mu.Unlock()

	return d, nil
}

// Clear removes every file from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.files = make(map[string]*decoded)
	c.mu.Unlock()
}

// Evict removes one path from the cache. Unknown paths are ignored.
func (c *Cache) Evict(path string) {
	c.mu.Lock()
	delete(c.files, path)
	c.mu.Unlock()
}

// Len returns the number of cached files.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.files)
}

// checkFile reports errdefs.ErrFileNotFound unless path names an existing
// regular file.
func checkFile(path string) error {
	st, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("file %s not found: %w", path, errdefs.ErrFileNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if st.IsDir() {
		return fmt.Errorf("%s is a directory: %w", path, errdefs.ErrFileNotFound)
	}
	return nil
}
