//go:build gdal

package raster

import (
	"fmt"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/banshee-data/lst.report/internal/monitoring"
	"github.com/banshee-data/lst.report/internal/timeutil"
)

var registerOnce sync.Once

// GDALOpener opens HDF-EOS granules through GDAL.
type GDALOpener struct{}

// NewGDALOpener registers the GDAL drivers once and returns an opener.
func NewGDALOpener() GDALOpener {
	registerOnce.Do(godal.RegisterAll)
	return GDALOpener{}
}

func (GDALOpener) Open(path string) (Source, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gdal open %s: %w", path, err)
	}
	names := subdatasetNames(ds.Metadatas(godal.Domain("SUBDATASETS")))
	ds.Close()
	return &gdalSource{path: path, names: names}, nil
}

type gdalSource struct {
	path  string
	names []string
}

func (s *gdalSource) Path() string { return s.path }

func (s *gdalSource) Subdatasets() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Lookup opens the matched subdataset and reads band 1 in full.
func (s *gdalSource) Lookup(suffix string) (Band, error) {
	name, err := FindBySuffix(s.names, suffix)
	if err != nil {
		return Band{}, fmt.Errorf("%s: %w", s.path, err)
	}
	defer monitoring.Timed(timeutil.RealClock{}, "read "+suffix)()

	ds, err := godal.Open(name)
	if err != nil {
		return Band{}, fmt.Errorf("gdal open %s: %w", name, err)
	}
	defer ds.Close()

	st := ds.Structure()
	bands := ds.Bands()
	if len(bands) == 0 {
		return Band{}, fmt.Errorf("%s has no raster bands", name)
	}
	buf := make([]float64, st.SizeX*st.SizeY)
	if err := bands[0].Read(0, 0, buf, st.SizeX, st.SizeY); err != nil {
		return Band{}, fmt.Errorf("gdal read %s: %w", name, err)
	}
	return Band{Name: name, Rows: st.SizeY, Cols: st.SizeX, Data: buf}, nil
}

func (s *gdalSource) Close() error { return nil }
