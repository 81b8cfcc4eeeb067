package raster

import (
	"errors"
	"fmt"
	"math"

	"github.com/banshee-data/lst.report/internal/lst"
)

// ErrOutOfRange is returned when a sample cannot be represented in the target grid type.
var ErrOutOfRange = errors.New("sample out of range")

// Band is a single 2-D raster read from a subdataset, row-major.
// Samples are carried as float64 regardless of the on-disk type.
type Band struct {
	Name string
	Rows int
	Cols int
	Data []float64
}

// RawGrid converts the band into a fixed-point LST grid.
func (b Band) RawGrid() (lst.RawGrid, error) {
	out := make([]uint16, len(b.Data))
	for i, v := range b.Data {
		if !isIntegral(v, math.MaxUint16) {
			return lst.RawGrid{}, fmt.Errorf("%s cell %d: %w for uint16: %v", b.Name, i, ErrOutOfRange, v)
		}
		out[i] = uint16(v)
	}
	g, err := lst.NewRawGrid(b.Rows, b.Cols, out)
	if err != nil {
		return lst.RawGrid{}, fmt.Errorf("%s: %w", b.Name, err)
	}
	return g, nil
}

// QCGrid converts the band into a QC bitfield grid. Samples may be any
// unsigned integer up to 32 bits; only the low byte is kept, since an
// lst.Decoder mask is a uint8 and tests no higher bit.
func (b Band) QCGrid() (lst.QCGrid, error) {
	out := make([]uint8, len(b.Data))
	for i, v := range b.Data {
		if !isIntegral(v, math.MaxUint32) {
			return lst.QCGrid{}, fmt.Errorf("%s cell %d: %w for a QC bitfield: %v", b.Name, i, ErrOutOfRange, v)
		}
		out[i] = uint8(uint32(v) & 0xff)
	}
	g, err := lst.NewQCGrid(b.Rows, b.Cols, out)
	if err != nil {
		return lst.QCGrid{}, fmt.Errorf("%s: %w", b.Name, err)
	}
	return g, nil
}

func isIntegral(v, max float64) bool {
	return v >= 0 && v <= max && v == math.Trunc(v)
}
