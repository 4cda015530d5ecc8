// Package render draws computed rasters as PNG figures and writes them to
// disk.
//
// A figure is a white canvas of FigSize inches at DPI pixels per inch. The
// raster is fitted inside an axes box with its aspect ratio kept, and can be
// decorated with a frame and tick labels, grid lines, a colorbar and a title.
//
// # Pixel Mapping
//
//   - One-plane rasters are color mapped. The colormap spans the raster's
//     minimum to maximum; NaN samples are left white.
//   - Three-plane rasters are drawn as RGB. Samples are expected in [0,1];
//     rasters whose maximum exceeds 1 are read as 8-bit (0-255) or 16-bit
//     (0-65535) values instead.
//
// # Output Files
//
// Export never overwrites anything: the PNG is encoded into a temporary file
// in the output directory and then renamed to <prefix>_<random hex>.png.
package render
