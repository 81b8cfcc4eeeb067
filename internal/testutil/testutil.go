// Package testutil provides shared test helpers: log muting and small
// MOD11A2 granule fixtures.
package testutil

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/banshee-data/lst.report/internal/modis"
	"github.com/banshee-data/lst.report/internal/monitoring"
	"github.com/banshee-data/lst.report/internal/raster"
)

// QuietLogs mutes monitoring.Logf for the duration of the test.
func QuietLogs(t *testing.T) {
	t.Helper()
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = original })
}

// CaptureLogs routes monitoring.Logf into a buffer and returns a function
// yielding the lines logged so far.
func CaptureLogs(t *testing.T) func() []string {
	t.Helper()
	var (
		mu    sync.Mutex
		lines []string
	)
	original := monitoring.Logf
	monitoring.SetLogger(func(format string, v ...interface{}) {
		mu.Lock()
		defer mu.Unlock()
		lines = append(lines, fmt.Sprintf(format, v...))
	})
	t.Cleanup(func() { monitoring.Logf = original })
	return func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), lines...)
	}
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Mixed 2x2 day grid: fill at (0,0), bad QC at (1,1), 26.85 °C elsewhere.
var (
	MixedDayLST   = []float64{0, 15000, 15000, 15000}
	MixedDayQC    = []float64{0, 0, 0, 1}
	MixedNightLST = []float64{14000, 0, 0, 0}
	MixedNightQC  = []float64{0, 0, 0, 0}
)

// MixedFixture returns a 2x2 granule fixture holding the mixed grids.
// The night pair is omitted when night is false.
func MixedFixture(night bool) raster.Fixture {
	fx := raster.Fixture{Subdatasets: []raster.FixtureBand{
		fixtureBand(modis.DayLSTSuffix, MixedDayLST),
		fixtureBand(modis.DayQCSuffix, MixedDayQC),
	}}
	if night {
		fx.Subdatasets = append(fx.Subdatasets,
			fixtureBand(modis.NightLSTSuffix, MixedNightLST),
			fixtureBand(modis.NightQCSuffix, MixedNightQC),
		)
	}
	return fx
}

func fixtureBand(suffix string, data []float64) raster.FixtureBand {
	return raster.FixtureBand{Name: strings.TrimPrefix(suffix, ":"), Rows: 2, Cols: 2, Data: append([]float64(nil), data...)}
}
