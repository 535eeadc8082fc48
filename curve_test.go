package curveview

import (
	"errors"
	"math"
	"testing"
)

func TestNewCurve(t *testing.T) {
	pts := []Point{{0, 0}, {1, 2}, {-1, 3}}
	c, err := NewCurve(pts, ColorBlue)
	if err != nil {
		t.Fatalf("NewCurve: %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
	if c.Color() != ColorBlue {
		t.Errorf("Color() = %v, want blue", c.Color())
	}
	want := Bounds{XMin: -1, XMax: 1, YMin: 0, YMax: 3}
	if got := c.Bounds(); got != want {
		t.Errorf("Bounds() = %+v, want %+v", got, want)
	}
	if got := c.MCBoundingBox(); got != [6]float64{-1, 1, 0, 3, -1, 1} {
		t.Errorf("MCBoundingBox() = %v", got)
	}
}

func TestCurveIsImmutable(t *testing.T) {
	pts := []Point{{0, 0}, {1, 1}}
	c, err := NewCurve(pts, ColorRed)
	if err != nil {
		t.Fatal(err)
	}
	pts[1] = Pt(100, 100)
	out := c.Points()
	out[0] = Pt(-50, -50)

	if got := c.Points(); got[0] != Pt(0, 0) || got[1] != Pt(1, 1) {
		t.Errorf("curve points changed: %v", got)
	}
	if got := c.Bounds(); got.XMax != 1 || got.XMin != 0 {
		t.Errorf("curve bounds changed: %+v", got)
	}
}

func TestNewCurveErrors(t *testing.T) {
	tests := []struct {
		name  string
		pts   []Point
		color ColorIndex
		want  error
	}{
		{"no points", nil, ColorRed, ErrTooFewPoints},
		{"one point", []Point{{1, 1}}, ColorRed, ErrTooFewPoints},
		{"negative color", []Point{{0, 0}, {1, 1}}, -1, ErrInvalidColor},
		{"color past palette", []Point{{0, 0}, {1, 1}}, ColorIndex(PaletteSize), ErrInvalidColor},
		{"NaN point", []Point{{0, 0}, {math.NaN(), 1}}, ColorRed, ErrNonFinitePoint},
		{"infinite point", []Point{{math.Inf(-1), 0}, {1, 1}}, ColorRed, ErrNonFinitePoint},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCurve(tt.pts, tt.color)
			if !errors.Is(err, tt.want) {
				t.Errorf("NewCurve() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCurveFloat32(t *testing.T) {
	c, err := NewCurve([]Point{{0.5, -1}, {2, 3.25}}, ColorGreen)
	if err != nil {
		t.Fatal(err)
	}
	got := c.Float32()
	want := []float32{0.5, -1, 2, 3.25}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Float32()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
