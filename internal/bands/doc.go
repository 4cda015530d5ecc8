// Package bands loads the spectral bands a FEZrs tool works on.
//
// Bands are identified by a closed vocabulary of names (tif, red, nir, blue,
// swir1, swir2, green) and loaded from files into raster.Raster values of raw
// float64 samples. Every band is optional: a tool is built from whichever
// paths it was given, and absent bands are reported as nil rather than as an
// error.
//
// # Components
//
//   - Open: the band loader. Fails with errdefs.ErrFileNotFound for a path
//     that does not exist.
//   - Normalize: rescales a band to [0,1] using its own min and max.
//   - Handler.Metadata: per-file dimensions, format and pixel data.
//   - Cache: thread-safe decode cache that several handlers may share.
//
// # Decoders
//
// The default build decodes through disintegration/imaging (PNG, JPEG, GIF,
// 8/16-bit TIFF, BMP). Building with -tags gdal switches to GDAL, which also
// reads floating point and multi-band GeoTIFFs; nodata samples become NaN.
//
// # Constant Bands
//
// A band whose samples are all equal normalizes to all zeros.
package bands
