// Command lst-inspect samples MODIS MOD11A2 granules, masks the LST bands
// with their QC bits, and writes per-granule temperature summaries.
//
// Usage:
//
//	lst-inspect -source /data/MOD11A2 -output ./processed [-samples 3] [-night=true]
//	lst-inspect -config inspect.json -db lst.db -plots ./plots -chart ./summary.html
//	lst-inspect -dev -source ./fixtures    # JSON granule fixtures, no GDAL needed
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/banshee-data/lst.report/internal/config"
	"github.com/banshee-data/lst.report/internal/db"
	"github.com/banshee-data/lst.report/internal/fsutil"
	"github.com/banshee-data/lst.report/internal/inspect"
	"github.com/banshee-data/lst.report/internal/modis"
	"github.com/banshee-data/lst.report/internal/monitoring"
	"github.com/banshee-data/lst.report/internal/raster"
	"github.com/banshee-data/lst.report/internal/timeutil"
	"github.com/banshee-data/lst.report/internal/version"
)

type options struct {
	configPath  string
	dev         bool
	showVersion bool
	override    config.Override
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("lst-inspect", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "Path to a JSON config file")
	fs.BoolVar(&opts.dev, "dev", false, "Read JSON granule fixtures instead of HDF files")
	fs.BoolVar(&opts.showVersion, "version", false, "Print version and exit")

	source := fs.String("source", "", "Directory holding MOD11A2 granules")
	output := fs.String("output", "", "Directory for the summary CSV")
	samples := fs.Int("samples", config.DefaultSampleCount, "Number of granules to process")
	night := fs.Bool("night", config.DefaultCheckNight, "Also inspect LST_Night_1km")
	dbPath := fs.String("db", "", "SQLite database for run history (disabled when empty)")
	plots := fs.String("plots", "", "Directory for per-band PNG heatmaps (disabled when empty)")
	chart := fs.String("chart", "", "Path of the HTML summary chart (disabled when empty)")
	unit := fs.String("units", config.DefaultUnits, "Display units: celsius, kelvin or fahrenheit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	// Only flags given on the command line override the config file.
	fs.Visit(func(f *flag.Flag) {
		o := &opts.override
		switch f.Name {
		case "source":
			o.SourceDir = source
		case "output":
			o.OutputDir = output
		case "samples":
			o.SampleCount = samples
		case "night":
			o.CheckNight = night
		case "db":
			o.DBPath = dbPath
		case "plots":
			o.PlotDir = plots
		case "chart":
			o.ChartPath = chart
		case "units":
			o.Units = unit
		}
	})
	return opts, nil
}

func loadConfig(opts *options) (*config.InspectConfig, error) {
	cfg := config.DefaultInspectConfig()
	if opts.configPath != "" {
		loaded, err := config.LoadInspectConfig(opts.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.Apply(opts.override); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	if err := cfg.RequireSource(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	if opts.showVersion {
		fmt.Fprintln(stdout, version.String())
		return nil
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	fsys := fsutil.OSFileSystem{}
	clock := timeutil.RealClock{}
	var opener raster.Opener = raster.NewGDALOpener()
	ext := modis.HDFExt
	if opts.dev {
		opener = raster.FixtureOpener{FS: fsys}
		ext = modis.FixtureExt
		monitoring.Logf("Dev mode: reading %s fixtures", ext)
	}

	sinks := []inspect.Sink{inspect.ConsoleSink{W: stdout, CheckNight: cfg.GetCheckNight(), Unit: cfg.GetUnits()}}

	var store *db.DB
	var runID string
	if path := cfg.GetDBPath(); path != "" {
		store, err = db.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer store.Close()

		runID, err = store.RecordRun(db.Run{
			StartedAt:   clock.Now(),
			SourceDir:   cfg.GetSourceDir(),
			SampleCount: cfg.GetSampleCount(),
			CheckNight:  cfg.GetCheckNight(),
			QCMask:      cfg.GetQCMask(),
			Version:     version.Version,
		})
		if err != nil {
			return err
		}
		monitoring.Logf("Recording run %s in %s", runID, path)
		sinks = append(sinks, inspect.DBSink{DB: store, RunID: runID})
	}

	in := &inspect.Inspector{
		FS:     fsys,
		Opener: opener,
		Config: cfg,
		Clock:  clock,
		Sinks:  sinks,
		Ext:    ext,
	}

	res, err := in.Run(ctx)
	if store != nil {
		if ferr := store.FinishRun(runID, clock.Now()); ferr != nil && err == nil {
			err = ferr
		}
	}
	if err != nil {
		return err
	}

	reps, err := in.WriteReports(res)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\nSummary written to: %s\n", reps.CSVPath)
	if reps.ChartPath != "" {
		fmt.Fprintf(stdout, "Chart written to: %s\n", reps.ChartPath)
	}
	for _, p := range res.Plots {
		monitoring.Logf("Heatmap written to: %s", p)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("lst-inspect: %v", err)
	}
}
