//go:build !gdal

package bands

import (
	"github.com/disintegration/imaging"

	"github.com/ironsheep/fezrs/internal/raster"
)

// Backend names the decoder compiled into this binary.
const Backend = "imaging"

// decodeFile reads PNG, JPEG, GIF, TIFF and BMP files. TIFF support covers
// 8 and 16-bit integer samples; floating point GeoTIFFs need the gdal build.
func decodeFile(path string) (*decoded, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	r, err := raster.FromImage(img)
	if err != nil {
		return nil, err
	}
	return &decoded{img: img, raster: r}, nil
}
