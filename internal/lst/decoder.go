package lst

import (
	"fmt"
	"math"
)

// MOD11A2 decoding constants.
const (
	FillValue   uint16  = 0
	ScaleFactor float64 = 0.02
	KelvinToC   float64 = -273.15
	// QCMandatory selects the mandatory QA bits; 00 means produced at good quality.
	QCMandatory uint8 = 0b11
)

// Decoder turns fixed-point LST samples into °C.
// A sample is kept when it is not Fill and (qc & QCMask) == 0.
type Decoder struct {
	Fill   uint16
	Scale  float64
	Offset float64
	QCMask uint8
}

// DefaultDecoder returns the MOD11A2 decoder: fill 0, scale 0.02, offset -273.15, mask 0b11.
func DefaultDecoder() Decoder {
	return Decoder{
		Fill:   FillValue,
		Scale:  ScaleFactor,
		Offset: KelvinToC,
		QCMask: QCMandatory,
	}
}

// Scaled converts a raw sample to °C without masking.
func (d Decoder) Scaled(raw uint16) float64 {
	return float64(raw)*d.Scale + d.Offset
}

// Valid reports whether a raw sample and its QC bits pass the mask.
func (d Decoder) Valid(raw uint16, qc uint8) bool {
	return raw != d.Fill && qc&d.QCMask == 0
}

// Transform applies the mask and scaling cell by cell. Invalid cells become NaN.
// An all-invalid grid is not an error.
func (d Decoder) Transform(raw RawGrid, qc QCGrid) (*MaskedGrid, error) {
	if raw.Shape() != qc.Shape() {
		return nil, fmt.Errorf("%w: raw %s, qc %s", ErrShapeMismatch, raw.Shape(), qc.Shape())
	}
	if err := checkDims(raw.Shape(), len(raw.Data)); err != nil {
		return nil, fmt.Errorf("raw grid: %w", err)
	}
	if err := checkDims(qc.Shape(), len(qc.Data)); err != nil {
		return nil, fmt.Errorf("qc grid: %w", err)
	}

	out := make([]float64, len(raw.Data))
	for i, v := range raw.Data {
		if d.Valid(v, qc.Data[i]) {
			out[i] = d.Scaled(v)
		} else {
			out[i] = math.NaN()
		}
	}
	return &MaskedGrid{rows: raw.Rows, cols: raw.Cols, data: out}, nil
}

// Transform masks and scales raw with the default MOD11A2 decoder.
func Transform(raw RawGrid, qc QCGrid) (*MaskedGrid, error) {
	return DefaultDecoder().Transform(raw, qc)
}
