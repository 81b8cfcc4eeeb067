package modis

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/lst.report/internal/fsutil"
	"github.com/banshee-data/lst.report/internal/lst"
	"github.com/banshee-data/lst.report/internal/raster"
)

func TestSyntheticGranule(t *testing.T) {
	t.Parallel()

	o := DefaultSyntheticOptions()
	fx, err := SyntheticGranule(o)
	if err != nil {
		t.Fatalf("SyntheticGranule: %v", err)
	}
	if len(fx.Subdatasets) != 4 {
		t.Fatalf("got %d subdatasets, want 4", len(fx.Subdatasets))
	}

	again, err := SyntheticGranule(o)
	if err != nil {
		t.Fatalf("SyntheticGranule: %v", err)
	}
	if diff := cmp.Diff(fx, again); diff != "" {
		t.Errorf("same seed should give the same fixture (-first +second):\n%s", diff)
	}

	mfs := fsutil.NewMemoryFileSystem()
	path := "/fx/" + GranuleName(2025, 1, "h18v04", FixtureExt)
	if err := raster.WriteFixture(mfs, path, fx); err != nil {
		t.Fatalf("WriteFixture: %v", err)
	}

	src, err := raster.FixtureOpener{FS: mfs}.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	for _, pair := range Pairs(true) {
		lstBand, err := src.Lookup(pair.LSTSuffix)
		if err != nil {
			t.Fatalf("%s: %v", pair.Name, err)
		}
		qcBand, err := src.Lookup(pair.QCSuffix)
		if err != nil {
			t.Fatalf("%s: %v", pair.Name, err)
		}
		raw, err := lstBand.RawGrid()
		if err != nil {
			t.Fatalf("%s: %v", pair.Name, err)
		}
		qc, err := qcBand.QCGrid()
		if err != nil {
			t.Fatalf("%s: %v", pair.Name, err)
		}
		g, err := lst.Transform(raw, qc)
		if err != nil {
			t.Fatalf("%s: %v", pair.Name, err)
		}

		s := lst.Summarize(g)
		if s.ValidPct <= 50 || s.ValidPct >= 100 {
			t.Errorf("%s valid_pct = %.1f, want between 50 and 100", pair.Name, s.ValidPct)
		}
	}
}

func TestSyntheticGranule_MeanTracksInput(t *testing.T) {
	t.Parallel()

	o := DefaultSyntheticOptions()
	o.Rows, o.Cols = 60, 60
	o.FillFrac, o.BadQCFrac = 0, 0
	fx, err := SyntheticGranule(o)
	if err != nil {
		t.Fatalf("SyntheticGranule: %v", err)
	}

	b := raster.Band{Name: "day", Rows: o.Rows, Cols: o.Cols, Data: fx.Subdatasets[0].Data}
	raw, err := b.RawGrid()
	if err != nil {
		t.Fatalf("RawGrid: %v", err)
	}
	qc, err := lst.NewQCGrid(o.Rows, o.Cols, make([]uint8, o.Rows*o.Cols))
	if err != nil {
		t.Fatalf("NewQCGrid: %v", err)
	}
	g, err := lst.Transform(raw, qc)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	s := lst.Summarize(g)
	if s.ValidPct != 100 {
		t.Errorf("valid_pct = %v, want 100", s.ValidPct)
	}
	if want := o.DayMeanK - 273.15; math.Abs(s.Mean-want) > 0.5 {
		t.Errorf("mean = %.2f, want within 0.5 of %.2f", s.Mean, want)
	}
}

func TestSyntheticGranule_BadOptions(t *testing.T) {
	t.Parallel()

	noExtent := DefaultSyntheticOptions()
	noExtent.Rows = 0
	tooMuch := DefaultSyntheticOptions()
	tooMuch.FillFrac, tooMuch.BadQCFrac = 0.7, 0.5

	for name, o := range map[string]SyntheticOptions{"zero rows": noExtent, "fractions over 1": tooMuch} {
		if _, err := SyntheticGranule(o); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestGranuleName(t *testing.T) {
	t.Parallel()

	name := GranuleName(2025, 9, "h18v04", HDFExt)
	if name != "MOD11A2.A2025009.h18v04.061.hdf" {
		t.Errorf("GranuleName = %q", name)
	}
	if got := Label(name); got != "2025-DOY009" {
		t.Errorf("Label = %q, want 2025-DOY009", got)
	}
	if got := Tile(name); got != "h18v04" {
		t.Errorf("Tile = %q, want h18v04", got)
	}
}
