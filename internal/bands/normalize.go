package bands

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/fezrs/internal/raster"
)

// Normalize rescales a band so its minimum maps to 0 and its maximum to 1.
//
// The minimum and maximum are taken over every plane, ignoring NaN samples,
// which stay NaN. The input is not modified.
//
// # Degenerate Bands
//
//   - nil (absent band): returns nil
//   - constant band (min == max): returns all zeros
//   - band with no comparable samples (all NaN): returned unchanged as a copy
func Normalize(r *raster.Raster) *raster.Raster {
	if r == nil {
		return nil
	}
	out := r.Clone()
	lo, hi := r.MinMax()
	if math.IsNaN(lo) {
		return out
	}

	span := hi - lo
	for p := 0; p < out.Planes(); p++ {
		data := out.Data(p)
		if span == 0 {
			for i, v := range data {
				if !math.IsNaN(v) {
					data[i] = 0
				}
			}
			continue
		}
		// Division keeps the maximum at exactly 1.
		floats.AddConst(-lo, data)
		for i := range data {
			data[i] /= span
		}
	}
	return out
}
