// Package modis holds MOD11A2 product conventions: subdataset names, granule
// file naming and discovery.
package modis

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/banshee-data/lst.report/internal/fsutil"
)

// Subdataset name suffixes for the 8-day 1 km LST grid.
const (
	DayLSTSuffix   = ":MODIS_Grid_8Day_1km_LST:LST_Day_1km"
	DayQCSuffix    = ":MODIS_Grid_8Day_1km_LST:QC_Day"
	NightLSTSuffix = ":MODIS_Grid_8Day_1km_LST:LST_Night_1km"
	NightQCSuffix  = ":MODIS_Grid_8Day_1km_LST:QC_Night"
)

// Granule extensions.
const (
	HDFExt     = ".hdf"
	FixtureExt = ".json"
)

// ErrNoGranules is returned when a directory holds no granule files.
var ErrNoGranules = errors.New("no granules found")

// BandPair names an LST band and the QC band that masks it.
type BandPair struct {
	Name      string // "day" or "night"
	LSTSuffix string
	QCSuffix  string
}

var (
	DayPair   = BandPair{Name: "day", LSTSuffix: DayLSTSuffix, QCSuffix: DayQCSuffix}
	NightPair = BandPair{Name: "night", LSTSuffix: NightLSTSuffix, QCSuffix: NightQCSuffix}
)

// Pairs returns the band pairs to inspect.
func Pairs(checkNight bool) []BandPair {
	if checkNight {
		return []BandPair{DayPair, NightPair}
	}
	return []BandPair{DayPair}
}

// acquisitionRe matches the ".AYYYYDDD." acquisition token,
// e.g. MOD11A2.A2025001.h18v04.061.2025010.hdf.
var acquisitionRe = regexp.MustCompile(`\.A(\d{4})(\d{3})\.`)

// Label returns "YYYY-DOYddd" for a granule file name, or the name itself
// when it carries no acquisition token.
func Label(filename string) string {
	m := acquisitionRe.FindStringSubmatch(filename)
	if m == nil {
		return filename
	}
	return fmt.Sprintf("%s-DOY%s", m[1], m[2])
}

// tileRe matches the ".hHHvVV." sinusoidal tile token.
var tileRe = regexp.MustCompile(`\.(h\d{2}v\d{2})\.`)

// Tile returns the sinusoidal tile id ("h18v04") of a granule file name,
// or "" when it carries none.
func Tile(filename string) string {
	m := tileRe.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	return m[1]
}

// ListGranules returns the sorted names of regular files in dir whose
// extension matches ext case-insensitively.
func ListGranules(fsys fsutil.FileSystem, dir, ext string) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), ext) {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no %s files in %s", ErrNoGranules, ext, dir)
	}
	sort.Strings(names)
	return names, nil
}

// Sample returns the first n names. n <= 0 or n > len(names) returns all.
func Sample(names []string, n int) []string {
	if n <= 0 || n >= len(names) {
		return names
	}
	return names[:n]
}
