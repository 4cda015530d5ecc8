//go:build gdal

package bands

import (
	"fmt"
	"math"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/ironsheep/fezrs/internal/raster"
)

// Backend names the decoder compiled into this binary.
const Backend = "gdal"

var registerOnce sync.Once

// decodeFile reads any GDAL-supported raster. Every dataset band becomes a
// plane of float64 samples; nodata samples become NaN so min/max and
// normalization skip them.
func decodeFile(path string) (*decoded, error) {
	registerOnce.Do(godal.RegisterAll)

	ds, err := godal.Open(path)
	if err != nil {
		return nil, err
	}
	defer ds.Close()

	st := ds.Structure()
	if st.SizeX <= 0 || st.SizeY <= 0 || st.NBands <= 0 {
		return nil, fmt.Errorf("dataset has no pixels (%dx%d, %d bands)", st.SizeX, st.SizeY, st.NBands)
	}

	r := raster.New(st.SizeY, st.SizeX, st.NBands)
	for i, band := range ds.Bands() {
		buf := r.Data(i)
		if err := band.Read(0, 0, buf, st.SizeX, st.SizeY); err != nil {
			return nil, fmt.Errorf("failed to read band %d: %w", i+1, err)
		}
		if nodata, ok := band.NoData(); ok {
			for j, v := range buf {
				if v == nodata {
					buf[j] = math.NaN()
				}
			}
		}
	}
	return &decoded{raster: r}, nil
}
