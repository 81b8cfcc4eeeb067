package inspect

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/banshee-data/lst.report/internal/config"
	"github.com/banshee-data/lst.report/internal/fsutil"
	"github.com/banshee-data/lst.report/internal/lst"
	"github.com/banshee-data/lst.report/internal/modis"
	"github.com/banshee-data/lst.report/internal/monitoring"
	"github.com/banshee-data/lst.report/internal/raster"
	"github.com/banshee-data/lst.report/internal/report"
	"github.com/banshee-data/lst.report/internal/timeutil"
)

// Inspector wires the collaborators of one inspection run.
type Inspector struct {
	FS     fsutil.FileSystem
	Opener raster.Opener
	Config *config.InspectConfig
	Clock  timeutil.Clock
	Sinks  []Sink

	// Ext selects granule files by extension. Empty means modis.HDFExt.
	Ext string
}

// Result is what a completed run produced.
type Result struct {
	SourceDir   string
	Granules    []string // sampled file names, in processing order
	Subdatasets []string // subdatasets of the first granule
	Rows        []report.Row
	Plots       []string
	StartedAt   time.Time
	FinishedAt  time.Time
}

// New returns an Inspector over the OS filesystem with a real clock.
func New(cfg *config.InspectConfig, opener raster.Opener, sinks ...Sink) *Inspector {
	return &Inspector{
		FS:     fsutil.OSFileSystem{},
		Opener: opener,
		Config: cfg,
		Clock:  timeutil.RealClock{},
		Sinks:  sinks,
	}
}

// Decoder returns the LST decoder configured for this run.
func (in *Inspector) Decoder() lst.Decoder {
	d := lst.DefaultDecoder()
	d.QCMask = in.Config.GetQCMask()
	return d
}

// Run processes the sampled granules. It halts on the first error; rows
// emitted before the failure are returned alongside it.
func (in *Inspector) Run(ctx context.Context) (*Result, error) {
	if err := in.Config.RequireSource(); err != nil {
		return nil, err
	}
	ext := in.Ext
	if ext == "" {
		ext = modis.HDFExt
	}
	dir := in.Config.GetSourceDir()

	res := &Result{SourceDir: dir, StartedAt: in.Clock.Now()}
	defer func() { res.FinishedAt = in.Clock.Now() }()

	names, err := modis.ListGranules(in.FS, dir, ext)
	if err != nil {
		return res, err
	}
	res.Granules = modis.Sample(names, in.Config.GetSampleCount())
	checkNight := in.Config.GetCheckNight()
	dec := in.Decoder()

	monitoring.Logf("Inspecting %s: %d granule(s) found, processing the first %d", dir, len(names), len(res.Granules))

	for i, name := range res.Granules {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("inspection cancelled before %s: %w", name, err)
		}

		path := filepath.Join(dir, name)
		done := monitoring.Timed(in.Clock, "Granule "+name)
		row, grids, subs, err := in.processGranule(path, name, dec, checkNight, i == 0)
		if i == 0 {
			res.Subdatasets = subs
		}
		if err != nil {
			return res, err
		}
		done()

		if plotDir := in.Config.GetPlotDir(); plotDir != "" {
			plots, err := in.writeHeatmaps(plotDir, row, grids)
			if err != nil {
				return res, err
			}
			res.Plots = append(res.Plots, plots...)
		}

		res.Rows = append(res.Rows, row)
		for _, s := range in.Sinks {
			if err := s.WriteRow(row); err != nil {
				return res, fmt.Errorf("sink failed for %s: %w", name, err)
			}
		}
	}
	monitoring.Logf("Inspected %d granule(s) in %s", len(res.Rows), in.Clock.Since(res.StartedAt).Round(time.Millisecond))
	return res, nil
}

// processGranule opens one granule and summarises its band pairs. The
// subdataset list is returned even when a band pair fails, and is logged
// before any band is read when logSubs is set.
func (in *Inspector) processGranule(path, name string, dec lst.Decoder, checkNight, logSubs bool) (report.Row, map[string]*lst.MaskedGrid, []string, error) {
	src, err := in.Opener.Open(path)
	if err != nil {
		return report.Row{}, nil, nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer src.Close()

	subs := src.Subdatasets()
	if logSubs {
		monitoring.Logf("Subdatasets found (first file):")
		for _, s := range subs {
			monitoring.Logf("  %s", s)
		}
	}

	row := report.Row{Filename: name, Label: modis.Label(name)}
	grids := make(map[string]*lst.MaskedGrid, 2)
	for _, pair := range modis.Pairs(checkNight) {
		grid, summary, err := ProcessPair(src, pair, dec)
		if err != nil {
			return report.Row{}, nil, subs, fmt.Errorf("%s: %w", name, err)
		}
		grids[pair.Name] = grid
		if pair == modis.NightPair {
			night := summary
			row.Night = &night
		} else {
			row.Day = summary
		}
	}
	return row, grids, subs, nil
}

// ProcessPair looks up an LST band and its QC band in src, masks and scales
// the LST samples, and summarises the result.
func ProcessPair(src raster.Source, pair modis.BandPair, dec lst.Decoder) (*lst.MaskedGrid, lst.Summary, error) {
	lstBand, err := src.Lookup(pair.LSTSuffix)
	if err != nil {
		return nil, lst.Summary{}, fmt.Errorf("%s band: %w", pair.Name, err)
	}
	qcBand, err := src.Lookup(pair.QCSuffix)
	if err != nil {
		return nil, lst.Summary{}, fmt.Errorf("%s qc: %w", pair.Name, err)
	}

	raw, err := lstBand.RawGrid()
	if err != nil {
		return nil, lst.Summary{}, fmt.Errorf("%s band: %w", pair.Name, err)
	}
	qc, err := qcBand.QCGrid()
	if err != nil {
		return nil, lst.Summary{}, fmt.Errorf("%s qc: %w", pair.Name, err)
	}

	grid, err := dec.Transform(raw, qc)
	if err != nil {
		return nil, lst.Summary{}, fmt.Errorf("%s: %w", pair.Name, err)
	}
	return grid, lst.Summarize(grid), nil
}
