package lst

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds per-band statistics over the finite cells of a MaskedGrid.
// Mean, Min and Max are NaN when no cell is finite.
type Summary struct {
	Mean     float64
	Min      float64
	Max      float64
	ValidPct float64
	Valid    int
	Total    int
}

// HasData reports whether at least one cell contributed to the statistics.
func (s Summary) HasData() bool { return s.Valid > 0 }

func (s Summary) String() string {
	return fmt.Sprintf("mean=%.2f min=%.2f max=%.2f valid=%.1f%%", s.Mean, s.Min, s.Max, s.ValidPct)
}

// Summarize reduces a masked grid to a Summary.
func Summarize(g *MaskedGrid) Summary {
	var vals []float64
	if g != nil {
		vals = g.Values()
	}
	return SummarizeValues(vals)
}

// SummarizeValues computes a Summary over a flat slice, ignoring NaN and ±Inf.
func SummarizeValues(vals []float64) Summary {
	s := Summary{
		Mean:  math.NaN(),
		Min:   math.NaN(),
		Max:   math.NaN(),
		Total: len(vals),
	}
	finite := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	s.Valid = len(finite)
	if s.Valid == 0 {
		return s
	}
	s.Mean = stat.Mean(finite, nil)
	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	s.ValidPct = float64(s.Valid) / float64(s.Total) * 100
	return s
}
