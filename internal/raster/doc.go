// Package raster reads named bands out of multi-dataset raster containers.
//
// A container (an HDF-EOS granule, a JSON fixture) is opened through an
// Opener and exposes its subdataset names. Bands are looked up by name
// suffix; a missing suffix is reported as ErrNotFound and never substituted.
//
// The GDAL-backed opener is only compiled with the "gdal" build tag.
package raster
