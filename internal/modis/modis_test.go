package modis

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/lst.report/internal/fsutil"
)

func TestLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     string
	}{
		{"MOD11A2.A2025001.h18v04.061.2025010045512.hdf", "2025-DOY001"},
		{"MOD11A2.A2024361.h18v04.061.hdf", "2024-DOY361"},
		{"MYD11A2.A2023097.h09v05.061.json", "2023-DOY097"},
		{"granule.hdf", "granule.hdf"},
		{"MOD11A2A2025001.hdf", "MOD11A2A2025001.hdf"},
		{"MOD11A2.A202501.h18v04.hdf", "MOD11A2.A202501.h18v04.hdf"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			t.Parallel()
			if got := Label(tt.filename); got != tt.want {
				t.Errorf("Label(%q) = %q, want %q", tt.filename, got, tt.want)
			}
		})
	}
}

func TestTile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		filename string
		want     string
	}{
		{"MOD11A2.A2025001.h18v04.061.2025010045512.hdf", "h18v04"},
		{"MYD11A2.A2023097.h09v05.061.json", "h09v05"},
		{"MOD11A2.A2025001.hdf", ""},
		{"MOD11A2.A2025001.h18v4.061.hdf", ""},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Tile(tt.filename); got != tt.want {
			t.Errorf("Tile(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}

func TestPairs(t *testing.T) {
	t.Parallel()

	if diff := cmp.Diff([]BandPair{DayPair}, Pairs(false)); diff != "" {
		t.Errorf("Pairs(false) mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]BandPair{DayPair, NightPair}, Pairs(true)); diff != "" {
		t.Errorf("Pairs(true) mismatch (-want +got):\n%s", diff)
	}
	if NightPair.QCSuffix != ":MODIS_Grid_8Day_1km_LST:QC_Night" {
		t.Errorf("NightPair.QCSuffix = %q", NightPair.QCSuffix)
	}
}

func TestListGranules(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	for _, name := range []string{
		"/src/MOD11A2.A2025009.hdf",
		"/src/MOD11A2.A2025001.HDF",
		"/src/notes.txt",
		"/src/MOD11A2.A2025017.hdf.xml",
		"/src/nested/MOD11A2.A2025025.hdf",
	} {
		if err := mfs.WriteFile(name, nil, 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", name, err)
		}
	}

	got, err := ListGranules(mfs, "/src", HDFExt)
	if err != nil {
		t.Fatalf("ListGranules: %v", err)
	}
	want := []string{"MOD11A2.A2025001.HDF", "MOD11A2.A2025009.hdf"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("ListGranules mismatch (-want +got):\n%s", diff)
	}
}

func TestListGranules_Empty(t *testing.T) {
	t.Parallel()

	mfs := fsutil.NewMemoryFileSystem()
	if err := mfs.WriteFile("/src/readme.md", nil, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ListGranules(mfs, "/src", HDFExt); !errors.Is(err, ErrNoGranules) {
		t.Errorf("err = %v, want ErrNoGranules", err)
	}

	_, err := ListGranules(mfs, "/missing", HDFExt)
	if err == nil {
		t.Fatal("expected error for a missing directory")
	}
	if errors.Is(err, ErrNoGranules) {
		t.Errorf("missing directory should not report ErrNoGranules: %v", err)
	}
}

func TestSample(t *testing.T) {
	t.Parallel()

	names := []string{"a", "b", "c", "d"}
	tests := []struct {
		name string
		in   []string
		n    int
		want []string
	}{
		{"first three", names, 3, []string{"a", "b", "c"}},
		{"more than available", names, 10, names},
		{"zero means all", names, 0, names},
		{"nil input", nil, 3, nil},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, Sample(tt.in, tt.n)); diff != "" {
			t.Errorf("%s: Sample mismatch (-want +got):\n%s", tt.name, diff)
		}
	}
}
