package visual

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/lst.report/internal/lst"
	"github.com/banshee-data/lst.report/internal/modis"
	"github.com/banshee-data/lst.report/internal/report"
	"github.com/banshee-data/lst.report/internal/units"
)

// missing is how echarts marks an absent point.
const missing = "-"

// ChartHTML writes an HTML page with a temperature line chart (mean, min, max
// per granule) and a valid-coverage bar chart.
func ChartHTML(rows []report.Row, checkNight bool, unit string, w io.Writer) error {
	labels := categories(rows)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "MODIS LST Summary", Width: "100%", Height: "520px"}),
		charts.WithTitleOpts(opts.Title{Title: "Land Surface Temperature", Subtitle: fmt.Sprintf("granules=%d units=%s", len(rows), unit)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithYAxisOpts(opts.YAxis{Name: units.Symbol(unit)}),
	)
	line.SetXAxis(labels)
	for _, band := range bands(checkNight) {
		line.AddSeries(band.name+" mean", lineSeries(rows, band.pick, unit, func(s lst.Summary) float64 { return s.Mean })).
			AddSeries(band.name+" min", lineSeries(rows, band.pick, unit, func(s lst.Summary) float64 { return s.Min })).
			AddSeries(band.name+" max", lineSeries(rows, band.pick, unit, func(s lst.Summary) float64 { return s.Max }))
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Valid coverage", Subtitle: "cells passing fill and QC tests (%)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "%", Min: 0, Max: 100}),
	)
	bar.SetXAxis(labels)
	for _, band := range bands(checkNight) {
		data := make([]opts.BarData, len(rows))
		for i, r := range rows {
			if s, ok := band.pick(r); ok {
				data[i] = opts.BarData{Value: s.ValidPct}
			} else {
				data[i] = opts.BarData{Value: missing}
			}
		}
		bar.AddSeries(band.name+" valid", data,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}))
	}

	page := components.NewPage()
	page.PageTitle = "MODIS LST Summary"
	page.AddCharts(line, bar)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// categories names the x-axis points. Several tiles share an acquisition
// label, so the tile id is appended when present; any name still repeated
// falls back to the granule file name.
func categories(rows []report.Row) []string {
	out := make([]string, len(rows))
	seen := make(map[string]int, len(rows))
	for i, r := range rows {
		out[i] = r.Label
		if tile := modis.Tile(r.Filename); tile != "" {
			out[i] = r.Label + " " + tile
		}
		seen[out[i]]++
	}
	for i, r := range rows {
		if seen[out[i]] > 1 {
			out[i] = r.Filename
		}
	}
	return out
}

type bandPicker struct {
	name string
	pick func(report.Row) (lst.Summary, bool)
}

func bands(checkNight bool) []bandPicker {
	out := []bandPicker{{
		name: "day",
		pick: func(r report.Row) (lst.Summary, bool) { return r.Day, true },
	}}
	if checkNight {
		out = append(out, bandPicker{
			name: "night",
			pick: func(r report.Row) (lst.Summary, bool) {
				if r.Night == nil {
					return lst.Summary{}, false
				}
				return *r.Night, true
			},
		})
	}
	return out
}

func lineSeries(rows []report.Row, pick func(report.Row) (lst.Summary, bool), unit string, stat func(lst.Summary) float64) []opts.LineData {
	data := make([]opts.LineData, len(rows))
	for i, r := range rows {
		s, ok := pick(r)
		v := math.NaN()
		if ok {
			v = stat(s)
		}
		if math.IsNaN(v) {
			data[i] = opts.LineData{Value: missing}
			continue
		}
		data[i] = opts.LineData{Value: units.ConvertTemperature(v, unit)}
	}
	return data
}
