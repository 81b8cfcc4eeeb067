// Command gen-fixtures writes synthetic MOD11A2 JSON granules for lst-inspect -dev.
package main

import (
	"flag"
	"log"
	"path/filepath"

	"github.com/banshee-data/lst.report/internal/fsutil"
	"github.com/banshee-data/lst.report/internal/modis"
	"github.com/banshee-data/lst.report/internal/raster"
)

func main() {
	output := flag.String("o", "fixtures", "output directory")
	count := flag.Int("n", 3, "number of 8-day granules")
	year := flag.Int("year", 2025, "acquisition year")
	tile := flag.String("tile", "h18v04", "sinusoidal tile id")
	size := flag.Int("size", 24, "tile edge length in cells")
	seed := flag.Int64("seed", 1, "random seed")
	flag.Parse()

	if err := generate(fsutil.OSFileSystem{}, *output, *count, *year, *tile, *size, *seed); err != nil {
		log.Fatalf("gen-fixtures: %v", err)
	}
	log.Printf("✓ Created %d granules in %s", *count, *output)
}

func generate(fsys fsutil.FileSystem, dir string, count, year int, tile string, size int, seed int64) error {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		o := modis.DefaultSyntheticOptions()
		o.Rows, o.Cols = size, size
		o.Seed = seed + int64(i)
		// drift through the season, 8 days per composite
		o.DayMeanK += float64(i) * 0.5
		o.NightMeanK += float64(i) * 0.3

		fx, err := modis.SyntheticGranule(o)
		if err != nil {
			return err
		}
		name := modis.GranuleName(year, 1+8*i, tile, modis.FixtureExt)
		if err := raster.WriteFixture(fsys, filepath.Join(dir, name), fx); err != nil {
			return err
		}
		if (i+1)%10 == 0 {
			log.Printf("%d/%d granules", i+1, count)
		}
	}
	return nil
}
