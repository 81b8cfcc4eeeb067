// Package visual renders masked LST grids and per-granule summaries as
// offline images and HTML charts.
package visual

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/lst.report/internal/lst"
)

// ErrNoData is returned when a grid has no finite cell to plot.
var ErrNoData = errors.New("grid has no valid cells")

// gridXYZ adapts a grid matrix to plotter.GridXYZ. Matrix row 0 is drawn
// at the top.
type gridXYZ struct {
	m *mat.Dense
}

func (a gridXYZ) Dims() (c, r int) {
	r, c = a.m.Dims()
	return c, r
}

func (a gridXYZ) Z(c, r int) float64 {
	rows, _ := a.m.Dims()
	return a.m.At(rows-1-r, c)
}

func (a gridXYZ) X(c int) float64 { return float64(c) }
func (a gridXYZ) Y(r int) float64 { return float64(r) }

// HeatmapPNG renders g to out as a PNG heatmap. Masked cells are transparent.
func HeatmapPNG(g *lst.MaskedGrid, title string, out io.Writer) error {
	s := lst.Summarize(g)
	if !s.HasData() {
		return fmt.Errorf("%s: %w", title, ErrNoData)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "column"
	p.Y.Label.Text = "row (from bottom)"

	hm := plotter.NewHeatMap(gridXYZ{g.Matrix()}, palette.Heat(64, 1))
	hm.NaN = color.Transparent
	hm.Min, hm.Max = s.Min, s.Max
	if hm.Max-hm.Min < 1e-9 {
		// Single-valued grids need a non-empty range for palette scaling.
		hm.Min -= 0.5
		hm.Max += 0.5
	}
	p.Add(hm)

	w, h := plotSize(g.Shape())
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return fmt.Errorf("failed to render heatmap %s: %w", title, err)
	}
	if _, err := wt.WriteTo(out); err != nil {
		return fmt.Errorf("failed to write heatmap %s: %w", title, err)
	}
	return nil
}

// plotSize keeps the aspect ratio of the grid within an 8 inch box.
func plotSize(s lst.Shape) (vg.Length, vg.Length) {
	const box = 8 * vg.Inch
	rows, cols := float64(s.Rows), float64(s.Cols)
	longest := math.Max(rows, cols)
	w := box * vg.Length(cols/longest)
	h := box * vg.Length(rows/longest)
	// Leave room for axes and title on narrow grids.
	if w < 3*vg.Inch {
		w = 3 * vg.Inch
	}
	if h < 3*vg.Inch {
		h = 3 * vg.Inch
	}
	return w, h
}
