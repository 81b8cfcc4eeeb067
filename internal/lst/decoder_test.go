package lst

import (
	"errors"
	"math"
	"testing"
)

func mustRaw(t *testing.T, rows, cols int, data ...uint16) RawGrid {
	t.Helper()
	g, err := NewRawGrid(rows, cols, data)
	if err != nil {
		t.Fatalf("NewRawGrid(%d, %d): %v", rows, cols, err)
	}
	return g
}

func mustQC(t *testing.T, rows, cols int, data ...uint8) QCGrid {
	t.Helper()
	g, err := NewQCGrid(rows, cols, data)
	if err != nil {
		t.Fatalf("NewQCGrid(%d, %d): %v", rows, cols, err)
	}
	return g
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTransform_MasksCells(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		raw   uint16
		qc    uint8
		valid bool
	}{
		{"fill with good qc", 0, 0, false},
		{"good sample", 15000, 0, true},
		{"qa code 01", 15000, 0b01, false},
		{"qa code 10", 15000, 0b10, false},
		{"qa code 11", 15000, 0b11, false},
		{"upper bits ignored", 15000, 0b1111_1100, true},
		{"fill and bad qc", 0, 0b11, false},
		{"max raw", math.MaxUint16, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			out, err := Transform(mustRaw(t, 1, 1, tt.raw), mustQC(t, 1, 1, tt.qc))
			if err != nil {
				t.Fatalf("Transform: %v", err)
			}
			v := out.At(0, 0)
			if !tt.valid {
				if !IsNoData(v) {
					t.Errorf("expected NaN, got %v", v)
				}
				return
			}
			if math.IsNaN(v) {
				t.Fatal("expected finite value, got NaN")
			}
			if want := float64(tt.raw)*0.02 - 273.15; !approxEqual(v, want) {
				t.Errorf("value = %v, want %v", v, want)
			}
		})
	}
}

func TestTransform_ShapeMismatch(t *testing.T) {
	t.Parallel()

	raw := mustRaw(t, 2, 2, 1, 2, 3, 4)
	qc := mustQC(t, 1, 4, 0, 0, 0, 0)

	out, err := Transform(raw, qc)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	if out != nil {
		t.Errorf("expected nil grid on error, got %v", out)
	}
}

func TestTransform_RejectsShortData(t *testing.T) {
	t.Parallel()

	raw := RawGrid{Rows: 2, Cols: 2, Data: []uint16{1, 2, 3}}
	qc := QCGrid{Rows: 2, Cols: 2, Data: []uint8{0, 0, 0, 0}}

	if _, err := Transform(raw, qc); !errors.Is(err, ErrBadDimensions) {
		t.Errorf("expected ErrBadDimensions, got %v", err)
	}
}

func TestNewGrid_BadDimensions(t *testing.T) {
	t.Parallel()

	if _, err := NewRawGrid(2, 3, make([]uint16, 5)); !errors.Is(err, ErrBadDimensions) {
		t.Errorf("NewRawGrid: expected ErrBadDimensions, got %v", err)
	}
	if _, err := NewQCGrid(-1, 0, nil); !errors.Is(err, ErrBadDimensions) {
		t.Errorf("NewQCGrid: expected ErrBadDimensions, got %v", err)
	}
}

func TestTransform_AllInvalid(t *testing.T) {
	t.Parallel()

	raw := mustRaw(t, 2, 3, 0, 0, 0, 15000, 15000, 15000)
	qc := mustQC(t, 2, 3, 0, 0, 0, 1, 2, 3)

	out, err := Transform(raw, qc)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if got := out.Shape(); got != (Shape{Rows: 2, Cols: 3}) {
		t.Errorf("Shape() = %+v, want 2x3", got)
	}
	for i, v := range out.Values() {
		if !math.IsNaN(v) {
			t.Errorf("cell %d = %v, want NaN", i, v)
		}
	}

	s := Summarize(out)
	if !math.IsNaN(s.Mean) || !math.IsNaN(s.Min) || !math.IsNaN(s.Max) {
		t.Errorf("expected NaN mean/min/max, got %+v", s)
	}
	if s.ValidPct != 0 {
		t.Errorf("ValidPct = %v, want 0", s.ValidPct)
	}
	if s.HasData() {
		t.Error("HasData() = true for an all-invalid grid")
	}
}

func TestTransform_AllValid(t *testing.T) {
	t.Parallel()

	raw := mustRaw(t, 2, 2, 14000, 14500, 15000, 15500)
	qc := mustQC(t, 2, 2, 0, 0, 0, 0)

	out, err := Transform(raw, qc)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	s := Summarize(out)
	if s.ValidPct != 100 {
		t.Errorf("ValidPct = %v, want 100", s.ValidPct)
	}
	if s.Valid != 4 {
		t.Errorf("Valid = %d, want 4", s.Valid)
	}
	if want := 14000*0.02 - 273.15; !approxEqual(s.Min, want) {
		t.Errorf("Min = %v, want %v", s.Min, want)
	}
	if want := 15500*0.02 - 273.15; !approxEqual(s.Max, want) {
		t.Errorf("Max = %v, want %v", s.Max, want)
	}
	if want := 14750*0.02 - 273.15; !approxEqual(s.Mean, want) {
		t.Errorf("Mean = %v, want %v", s.Mean, want)
	}
}

func TestScaled_RoundTrip(t *testing.T) {
	t.Parallel()

	d := DefaultDecoder()
	// 15000 * 0.02 = 300 K
	if got := d.Scaled(15000); !approxEqual(got, 26.85) {
		t.Errorf("Scaled(15000) = %v, want 26.85", got)
	}
	if got := d.Scaled(0); !approxEqual(got, -273.15) {
		t.Errorf("Scaled(0) = %v, want -273.15", got)
	}
}

func TestTransform_MixedGrid(t *testing.T) {
	t.Parallel()

	raw := mustRaw(t, 2, 2,
		0, 15000,
		15000, 15000,
	)
	qc := mustQC(t, 2, 2,
		0, 0,
		0, 1,
	)

	out, err := Transform(raw, qc)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	if !math.IsNaN(out.At(0, 0)) {
		t.Errorf("fill cell must be masked, got %v", out.At(0, 0))
	}
	if !approxEqual(out.At(0, 1), 26.85) || !approxEqual(out.At(1, 0), 26.85) {
		t.Errorf("good cells = %v, %v, want 26.85", out.At(0, 1), out.At(1, 0))
	}
	if !math.IsNaN(out.At(1, 1)) {
		t.Errorf("bad qc cell must be masked, got %v", out.At(1, 1))
	}

	s := Summarize(out)
	if !approxEqual(s.Mean, 26.85) || !approxEqual(s.Min, 26.85) || !approxEqual(s.Max, 26.85) {
		t.Errorf("summary = %+v, want mean/min/max 26.85", s)
	}
	if s.ValidPct != 50 {
		t.Errorf("ValidPct = %v, want 50", s.ValidPct)
	}
}

func TestTransform_SingleValidCell(t *testing.T) {
	t.Parallel()

	raw := mustRaw(t, 2, 2, 0, 15000, 15000, 15000)
	qc := mustQC(t, 2, 2, 0, 0, 1, 1)

	out, err := Transform(raw, qc)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}

	s := Summarize(out)
	if !approxEqual(s.Mean, 26.85) {
		t.Errorf("Mean = %v, want 26.85", s.Mean)
	}
	if s.Min != s.Max {
		t.Errorf("Min %v != Max %v for a single valid cell", s.Min, s.Max)
	}
	if s.ValidPct != 25 {
		t.Errorf("ValidPct = %v, want 25", s.ValidPct)
	}
}

func TestDecoder_CustomMask(t *testing.T) {
	t.Parallel()

	d := DefaultDecoder()
	d.QCMask = 0b1111

	raw := mustRaw(t, 1, 3, 15000, 15000, 15000)
	qc := mustQC(t, 1, 3, 0b0000, 0b0100, 0b1_0000)

	out, err := d.Transform(raw, qc)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	want := []bool{false, true, false}
	for c, masked := range want {
		if got := math.IsNaN(out.At(0, c)); got != masked {
			t.Errorf("cell %d masked = %v, want %v", c, got, masked)
		}
	}
}

func TestMaskedGrid_Matrix(t *testing.T) {
	t.Parallel()

	out, err := Transform(mustRaw(t, 0, 0), mustQC(t, 0, 0))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if m := out.Matrix(); m != nil {
		t.Errorf("Matrix() of an empty grid = %v, want nil", m)
	}

	out, err = Transform(mustRaw(t, 1, 2, 15000, 0), mustQC(t, 1, 2, 0, 0))
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	m := out.Matrix()
	if m == nil {
		t.Fatal("Matrix() = nil")
	}
	if r, c := m.Dims(); r != 1 || c != 2 {
		t.Errorf("Dims() = %d,%d, want 1,2", r, c)
	}
	if !approxEqual(m.At(0, 0), 26.85) {
		t.Errorf("At(0,0) = %v, want 26.85", m.At(0, 0))
	}
}
