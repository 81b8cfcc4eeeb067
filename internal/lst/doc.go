// Package lst owns the numeric core of the inspector: decoding MODIS Land
// Surface Temperature samples into degrees Celsius under a QC mask, and
// reducing the masked grid to summary statistics.
//
// Key types: RawGrid, QCGrid, MaskedGrid, Decoder, Summary.
//
// Everything in this package is pure and in-memory. Reading rasters,
// discovering granules and writing reports live in raster, modis and report.
package lst
