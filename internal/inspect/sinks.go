package inspect

import (
	"fmt"
	"io"

	"github.com/banshee-data/lst.report/internal/db"
	"github.com/banshee-data/lst.report/internal/modis"
	"github.com/banshee-data/lst.report/internal/report"
)

// Sink receives each granule row as soon as it is summarised.
type Sink interface {
	WriteRow(row report.Row) error
}

// ConsoleSink prints one line per granule.
type ConsoleSink struct {
	W          io.Writer
	CheckNight bool
	Unit       string
}

func (s ConsoleSink) WriteRow(row report.Row) error {
	_, err := fmt.Fprintln(s.W, report.FormatLine(row, s.CheckNight, s.Unit))
	return err
}

// DBSink stores the band summaries of each granule under an existing run,
// one transaction per granule.
type DBSink struct {
	DB    *db.DB
	RunID string
}

func (s DBSink) WriteRow(row report.Row) error {
	summaries := []db.BandSummary{{
		RunID:    s.RunID,
		Filename: row.Filename,
		Label:    row.Label,
		Band:     modis.DayPair.Name,
		Summary:  row.Day,
	}}
	if row.Night != nil {
		summaries = append(summaries, db.BandSummary{
			RunID:    s.RunID,
			Filename: row.Filename,
			Label:    row.Label,
			Band:     modis.NightPair.Name,
			Summary:  *row.Night,
		})
	}
	return s.DB.RecordSummaries(summaries...)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(report.Row) error

func (f SinkFunc) WriteRow(row report.Row) error { return f(row) }
