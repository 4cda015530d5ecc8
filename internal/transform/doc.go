// Package transform implements the per-pixel calculators of FEZrs.
//
// Every function here is pure: it takes rasters, returns a new raster and
// never modifies its inputs. Parameters are validated before any work is
// done, so a bad kernel size or cluster count fails with
// errdefs.ErrInvalidConfig and an absent input band fails with
// errdefs.ErrMissingBand.
//
// # Calculators
//
//   - HSV: (NIR, Green, Blue) false-color composite converted to HSV
//   - Saturation: the S channel of HSV
//   - IRSaturation: the S channel of the (SWIR2, SWIR1, Red) composite
//   - GaussianBlur: separable Gaussian smoothing with OpenCV semantics
//   - KMeans: one-dimensional k-means segmentation of a single band
//
// # Backends
//
// GaussianBlur runs in pure Go by default. Building with -tags opencv routes
// it through gocv and the system OpenCV library instead; both backends
// produce the same kernel and border handling.
package transform
