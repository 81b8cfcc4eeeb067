package lst

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShapeMismatch is returned when a raw grid and its QC grid differ in shape.
	ErrShapeMismatch = errors.New("raw and qc grid shapes differ")
	// ErrBadDimensions is returned when a grid's backing slice does not match Rows*Cols.
	ErrBadDimensions = errors.New("grid data length does not match dimensions")
)

// Shape is the (rows, cols) extent of a grid.
type Shape struct {
	Rows int
	Cols int
}

func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// Cells returns Rows*Cols.
func (s Shape) Cells() int {
	return s.Rows * s.Cols
}

// RawGrid holds fixed-point LST samples in row-major order.
// MOD11A2 stores LST as uint16 Kelvin scaled by 0.02.
type RawGrid struct {
	Rows int
	Cols int
	Data []uint16
}

// NewRawGrid builds a RawGrid, checking that data covers rows*cols cells.
func NewRawGrid(rows, cols int, data []uint16) (RawGrid, error) {
	g := RawGrid{Rows: rows, Cols: cols, Data: data}
	if err := checkDims(g.Shape(), len(data)); err != nil {
		return RawGrid{}, err
	}
	return g, nil
}

// Shape returns the grid extent.
func (g RawGrid) Shape() Shape { return Shape{Rows: g.Rows, Cols: g.Cols} }

// At returns the sample at row r, column c.
func (g RawGrid) At(r, c int) uint16 { return g.Data[r*g.Cols+c] }

// QCGrid holds per-pixel QC bitfields in row-major order.
// The two least significant bits are the mandatory QA code.
type QCGrid struct {
	Rows int
	Cols int
	Data []uint8
}

// NewQCGrid builds a QCGrid, checking that data covers rows*cols cells.
func NewQCGrid(rows, cols int, data []uint8) (QCGrid, error) {
	g := QCGrid{Rows: rows, Cols: cols, Data: data}
	if err := checkDims(g.Shape(), len(data)); err != nil {
		return QCGrid{}, err
	}
	return g, nil
}

// Shape returns the grid extent.
func (g QCGrid) Shape() Shape { return Shape{Rows: g.Rows, Cols: g.Cols} }

// At returns the bitfield at row r, column c.
func (g QCGrid) At(r, c int) uint8 { return g.Data[r*g.Cols+c] }

// MaskedGrid holds decoded temperatures in °C. Cells that failed the fill
// or QC test hold NaN.
type MaskedGrid struct {
	rows int
	cols int
	data []float64
}

// Shape returns the grid extent.
func (g *MaskedGrid) Shape() Shape { return Shape{Rows: g.rows, Cols: g.cols} }

// At returns the value at row r, column c.
func (g *MaskedGrid) At(r, c int) float64 { return g.data[r*g.cols+c] }

// Values returns the row-major cell values. The slice is shared with the grid.
func (g *MaskedGrid) Values() []float64 { return g.data }

// Matrix exposes the grid as a gonum matrix sharing the same storage.
// It returns nil for an empty grid because mat.Dense cannot be zero sized.
func (g *MaskedGrid) Matrix() *mat.Dense {
	if g.rows == 0 || g.cols == 0 {
		return nil
	}
	return mat.NewDense(g.rows, g.cols, g.data)
}

// IsNoData reports whether v is the no-data sentinel.
func IsNoData(v float64) bool { return math.IsNaN(v) }

func checkDims(s Shape, n int) error {
	if s.Rows < 0 || s.Cols < 0 {
		return fmt.Errorf("%w: negative extent %s", ErrBadDimensions, s)
	}
	if s.Cells() != n {
		return fmt.Errorf("%w: %s needs %d cells, got %d", ErrBadDimensions, s, s.Cells(), n)
	}
	return nil
}
