package report

import (
	"fmt"
	"strings"

	"github.com/banshee-data/lst.report/internal/lst"
	"github.com/banshee-data/lst.report/internal/units"
)

// FormatLine renders a row for the console:
//
//	2025-DOY001  day mean=26.85°C (min=26.85, max=26.85, valid=25.0%) | night mean=...
//
// NaN statistics print as "NaN".
func FormatLine(r Row, checkNight bool, unit string) string {
	var b strings.Builder
	b.WriteString(r.Label)
	b.WriteString("  day ")
	b.WriteString(formatSummary(r.Day, unit))
	if checkNight {
		night := lst.SummarizeValues(nil)
		if r.Night != nil {
			night = *r.Night
		}
		b.WriteString(" | night ")
		b.WriteString(formatSummary(night, unit))
	}
	return b.String()
}

func formatSummary(s lst.Summary, unit string) string {
	return fmt.Sprintf("mean=%.2f%s (min=%.2f, max=%.2f, valid=%.1f%%)",
		units.ConvertTemperature(s.Mean, unit), units.Symbol(unit),
		units.ConvertTemperature(s.Min, unit),
		units.ConvertTemperature(s.Max, unit),
		s.ValidPct)
}
