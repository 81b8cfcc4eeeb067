// Package report renders per-granule band summaries as console lines and CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"

	"github.com/banshee-data/lst.report/internal/fsutil"
	"github.com/banshee-data/lst.report/internal/lst"
	"github.com/banshee-data/lst.report/internal/units"
)

// Row is the summary of one granule. Night is nil when night bands were not inspected.
type Row struct {
	Filename string
	Label    string
	Day      lst.Summary
	Night    *lst.Summary
}

// Header returns the CSV column names in their fixed order.
func Header(checkNight bool) []string {
	header := []string{"filename", "label", "day_mean", "day_min", "day_max", "day_valid_pct"}
	if checkNight {
		header = append(header, "night_mean", "night_min", "night_max", "night_valid_pct")
	}
	return header
}

// Record returns the CSV fields for r. Temperatures are converted to unit;
// valid_pct is unitless. A missing night summary is written as nan.
func Record(r Row, checkNight bool, unit string) []string {
	rec := []string{r.Filename, r.Label}
	rec = append(rec, summaryFields(r.Day, unit)...)
	if checkNight {
		night := lst.SummarizeValues(nil)
		if r.Night != nil {
			night = *r.Night
		}
		rec = append(rec, summaryFields(night, unit)...)
	}
	return rec
}

func summaryFields(s lst.Summary, unit string) []string {
	return []string{
		FormatFloat(units.ConvertTemperature(s.Mean, unit)),
		FormatFloat(units.ConvertTemperature(s.Min, unit)),
		FormatFloat(units.ConvertTemperature(s.Max, unit)),
		FormatFloat(s.ValidPct),
	}
}

// FormatFloat renders v in its shortest round-trip form, with NaN as "nan".
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CSVWriter wraps csv.Writer with methods for summary output.
type CSVWriter struct {
	w          *csv.Writer
	checkNight bool
	unit       string
}

// NewCSVWriter creates a CSVWriter writing to out.
func NewCSVWriter(out io.Writer, checkNight bool, unit string) *CSVWriter {
	return &CSVWriter{w: csv.NewWriter(out), checkNight: checkNight, unit: unit}
}

// WriteHeader writes the column names.
func (c *CSVWriter) WriteHeader() error {
	return c.w.Write(Header(c.checkNight))
}

// WriteRow writes a single granule row.
func (c *CSVWriter) WriteRow(r Row) error {
	return c.w.Write(Record(r, c.checkNight, c.unit))
}

// Flush flushes buffered rows and reports any write error.
func (c *CSVWriter) Flush() error {
	c.w.Flush()
	return c.w.Error()
}

// WriteCSVFile writes header and rows to dir/name, creating dir. It returns the file path.
func WriteCSVFile(fsys fsutil.FileSystem, dir, name string, rows []Row, checkNight bool, unit string) (string, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}
	path := filepath.Join(dir, name)
	f, err := fsys.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := NewCSVWriter(f, checkNight, unit)
	if err := w.WriteHeader(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write header: %w", err)
	}
	for _, r := range rows {
		if err := w.WriteRow(r); err != nil {
			f.Close()
			return "", fmt.Errorf("failed to write row for %s: %w", r.Filename, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to flush csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", path, err)
	}
	return path, nil
}
