package bands

import (
	"fmt"
	"strings"

	"github.com/ironsheep/fezrs/internal/errdefs"
)

// Name identifies a spectral band. The vocabulary is closed; see All.
type Name string

// Band names accepted by the loader.
const (
	TIF   Name = "tif"
	Red   Name = "red"
	NIR   Name = "nir"
	Blue  Name = "blue"
	SWIR1 Name = "swir1"
	SWIR2 Name = "swir2"
	Green Name = "green"
)

// All lists every band name in canonical order.
func All() []Name {
	return []Name{TIF, Red, NIR, Blue, SWIR1, SWIR2, Green}
}

// Valid reports whether n belongs to the band vocabulary.
func (n Name) Valid() bool {
	for _, v := range All() {
		if n == v {
			return true
		}
	}
	return false
}

// ParseName converts user input such as "NIR" or "swir1" into a Name.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	if !n.Valid() {
		return "", fmt.Errorf("unknown band %q: %w", s, errdefs.ErrInvalidConfig)
	}
	return n, nil
}

// Paths maps band names to file paths. A missing key or an empty path
// means the band is absent.
type Paths map[Name]string
