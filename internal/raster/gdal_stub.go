//go:build !gdal

package raster

import "errors"

// ErrNoGDAL is returned when HDF granules are requested from a build without GDAL.
var ErrNoGDAL = errors.New("built without gdal support; rebuild with -tags gdal or use -dev fixtures")

// GDALOpener is unavailable in this build; Open always fails with ErrNoGDAL.
type GDALOpener struct{}

// NewGDALOpener returns an opener that reports ErrNoGDAL.
func NewGDALOpener() GDALOpener { return GDALOpener{} }

func (GDALOpener) Open(string) (Source, error) { return nil, ErrNoGDAL }
