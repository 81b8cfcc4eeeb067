package modis

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/banshee-data/lst.report/internal/raster"
)

// SyntheticOptions controls SyntheticGranule.
type SyntheticOptions struct {
	Rows, Cols int
	Seed       int64
	DayMeanK   float64 // mean daytime temperature in Kelvin
	NightMeanK float64
	SpreadK    float64 // standard deviation in Kelvin
	FillFrac   float64 // share of cells set to the fill value
	BadQCFrac  float64 // share of cells flagged with a non-zero QA code
}

// DefaultSyntheticOptions returns a small mild-summer tile.
func DefaultSyntheticOptions() SyntheticOptions {
	return SyntheticOptions{
		Rows: 24, Cols: 24, Seed: 1,
		DayMeanK: 303, NightMeanK: 290, SpreadK: 3,
		FillFrac: 0.1, BadQCFrac: 0.15,
	}
}

// SyntheticGranule builds a fixture with all four 8-day LST subdatasets.
// The same options always produce the same fixture.
func SyntheticGranule(o SyntheticOptions) (raster.Fixture, error) {
	if o.Rows <= 0 || o.Cols <= 0 {
		return raster.Fixture{}, fmt.Errorf("synthetic granule needs a positive extent, got %dx%d", o.Rows, o.Cols)
	}
	if o.FillFrac < 0 || o.BadQCFrac < 0 || o.FillFrac+o.BadQCFrac > 1 {
		return raster.Fixture{}, fmt.Errorf("fill and bad-qc fractions must be non-negative and sum to at most 1")
	}
	rng := rand.New(rand.NewSource(o.Seed))

	dayLST, dayQC := syntheticBand(rng, o, o.DayMeanK)
	nightLST, nightQC := syntheticBand(rng, o, o.NightMeanK)
	band := func(suffix string, data []float64) raster.FixtureBand {
		return raster.FixtureBand{Name: strings.TrimPrefix(suffix, ":"), Rows: o.Rows, Cols: o.Cols, Data: data}
	}
	return raster.Fixture{Subdatasets: []raster.FixtureBand{
		band(DayLSTSuffix, dayLST),
		band(DayQCSuffix, dayQC),
		band(NightLSTSuffix, nightLST),
		band(NightQCSuffix, nightQC),
	}}, nil
}

func syntheticBand(rng *rand.Rand, o SyntheticOptions, meanK float64) (lstRaw, qc []float64) {
	n := o.Rows * o.Cols
	lstRaw = make([]float64, n)
	qc = make([]float64, n)
	for i := 0; i < n; i++ {
		k := meanK + rng.NormFloat64()*o.SpreadK
		// round(K / 0.02), kept above fill and within uint16
		lstRaw[i] = math.Min(math.Max(math.Round(k/0.02), 1), math.MaxUint16)

		switch u := rng.Float64(); {
		case u < o.FillFrac:
			lstRaw[i] = 0
		case u < o.FillFrac+o.BadQCFrac:
			qc[i] = float64(1 + rng.Intn(3))
		default:
			// Upper bits carry error estimates and never mask a cell.
			qc[i] = float64(rng.Intn(4) << 2)
		}
	}
	return lstRaw, qc
}

// GranuleName returns a MOD11A2 style file name for a year and day of year.
func GranuleName(year, doy int, tile, ext string) string {
	return fmt.Sprintf("MOD11A2.A%04d%03d.%s.061%s", year, doy, tile, ext)
}
