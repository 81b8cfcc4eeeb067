package inspect

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/banshee-data/lst.report/internal/lst"
	"github.com/banshee-data/lst.report/internal/modis"
	"github.com/banshee-data/lst.report/internal/monitoring"
	"github.com/banshee-data/lst.report/internal/report"
	"github.com/banshee-data/lst.report/internal/visual"
)

// writeHeatmaps renders one PNG per band into dir, named after the granule
// file so tiles sharing an acquisition date do not collide. Bands without
// valid cells are skipped.
func (in *Inspector) writeHeatmaps(dir string, row report.Row, grids map[string]*lst.MaskedGrid) ([]string, error) {
	if err := in.FS.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plot dir: %w", err)
	}
	var paths []string
	for _, pair := range modis.Pairs(row.Night != nil) {
		g, ok := grids[pair.Name]
		if !ok {
			continue
		}
		title := fmt.Sprintf("%s %s LST", row.Label, pair.Name)
		if !lst.Summarize(g).HasData() {
			monitoring.Logf("Skipping heatmap for %s: no valid cells", title)
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", granuleStem(row.Filename), pair.Name))

		f, err := in.FS.Create(path)
		if err != nil {
			return paths, fmt.Errorf("failed to create %s: %w", path, err)
		}
		err = visual.HeatmapPNG(g, title, f)
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// Reports lists the files written by WriteReports.
type Reports struct {
	CSVPath   string
	ChartPath string
}

// WriteReports writes the summary CSV into the output directory and, when
// configured, the HTML chart.
func (in *Inspector) WriteReports(res *Result) (Reports, error) {
	var out Reports
	checkNight := in.Config.GetCheckNight()
	unit := in.Config.GetUnits()

	csvPath, err := report.WriteCSVFile(in.FS, in.Config.GetOutputDir(), in.Config.GetCSVName(), res.Rows, checkNight, unit)
	if err != nil {
		return out, err
	}
	out.CSVPath = csvPath

	if chartPath := in.Config.GetChartPath(); chartPath != "" {
		if err := in.FS.MkdirAll(filepath.Dir(chartPath), 0o755); err != nil {
			return out, fmt.Errorf("failed to create chart dir: %w", err)
		}
		f, err := in.FS.Create(chartPath)
		if err != nil {
			return out, fmt.Errorf("failed to create %s: %w", chartPath, err)
		}
		err = visual.ChartHTML(res.Rows, checkNight, unit, f)
		if cerr := f.Close(); err == nil && cerr != nil {
			err = cerr
		}
		if err != nil {
			return out, err
		}
		out.ChartPath = chartPath
	}
	return out, nil
}

func granuleStem(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
