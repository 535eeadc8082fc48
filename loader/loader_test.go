package loader

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"unicode/utf16"

	"github.com/gogpu/curveview"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const twoCurves = `
0 1 0 0   0 0 1 0   -1 1  5
1 0 0 0   0 2 0 0    0 4  3
`

func TestParse(t *testing.T) {
	specs, err := Parse(strings.NewReader(twoCurves))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := []Spec{
		{A: [4]float64{0, 1, 0, 0}, B: [4]float64{0, 0, 1, 0}, TMin: -1, TMax: 1, N: 5},
		{A: [4]float64{1, 0, 0, 0}, B: [4]float64{0, 2, 0, 0}, TMin: 0, TMax: 4, N: 3},
	}
	if diff := cmp.Diff(want, specs); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmpty(t *testing.T) {
	specs, err := Parse(strings.NewReader(" \n\t"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(specs) != 0 {
		t.Errorf("len = %d, want 0", len(specs))
	}
}

func TestParseBOM(t *testing.T) {
	utf8BOM := append([]byte{0xEF, 0xBB, 0xBF}, twoCurves...)

	// UTF-16 little-endian with BOM.
	var utf16LE bytes.Buffer
	utf16LE.Write([]byte{0xFF, 0xFE})
	for _, u := range utf16.Encode([]rune(twoCurves)) {
		utf16LE.Write([]byte{byte(u), byte(u >> 8)})
	}

	for name, data := range map[string][]byte{
		"utf-8 BOM": utf8BOM,
		"utf-16 LE": utf16LE.Bytes(),
	} {
		t.Run(name, func(t *testing.T) {
			specs, err := Parse(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(specs) != 2 || specs[1].TMax != 4 {
				t.Errorf("Parse() = %+v", specs)
			}
		})
	}
}

func TestParseMalformed(t *testing.T) {
	tests := []struct {
		name, in, record string
	}{
		{"truncated", "0 1 0 0 0 0 1 0 -1 1", "record 1"},
		{"truncated second", "0 1 0 0 0 0 1 0 -1 1 5  1 2 3", "record 2"},
		{"bad number", "0 x 0 0 0 0 1 0 -1 1 5", "record 1"},
		{"not finite", "0 1 0 0 0 0 1 0 -1 Inf 5", "record 1"},
		{"fractional count", "0 1 0 0 0 0 1 0 -1 1 2.5", "record 1"},
		{"one point", "0 1 0 0 0 0 1 0 -1 1 5  0 1 0 0 0 0 1 0 -1 1 1", "record 2"},
		{"huge count", "0 1 0 0 0 0 1 0 0 1 4000000000000000000", "record 1"},
		{"count above max", "0 1 0 0 0 0 1 0 0 1 " + strconv.Itoa(MaxPoints+1), "record 1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.in))
			if !errors.Is(err, ErrMalformed) {
				t.Fatalf("Parse() error = %v, want ErrMalformed", err)
			}
			if !strings.Contains(err.Error(), tt.record) {
				t.Errorf("error %q does not name %s", err, tt.record)
			}
		})
	}
}

func TestSample(t *testing.T) {
	// x = t, y = t² over [-1, 1].
	s := Spec{A: [4]float64{0, 1, 0, 0}, B: [4]float64{0, 0, 1, 0}, TMin: -1, TMax: 1, N: 5}
	got := s.Sample()
	want := []curveview.Point{{X: -1, Y: 1}, {X: -0.5, Y: 0.25}, {X: 0, Y: 0}, {X: 0.5, Y: 0.25}, {X: 1, Y: 1}}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-12)); diff != "" {
		t.Errorf("Sample() mismatch (-want +got):\n%s", diff)
	}

	// Endpoints are exact.
	c := Spec{A: [4]float64{1, -2, 0.5, 3}, B: [4]float64{0, 0, 0, 1}, TMin: 0.3, TMax: 2.7, N: 7}
	pts := c.Sample()
	if pts[0] != c.Eval(0.3) || math.Abs(pts[6].X-c.Eval(2.7).X) > 1e-12 {
		t.Errorf("endpoints = %v, %v", pts[0], pts[6])
	}
	if (Spec{N: MaxPoints + 1}).Sample() != nil {
		t.Error("Sample() above MaxPoints should be nil")
	}
	if (Spec{N: 1}).Sample() != nil {
		t.Error("Sample() with N=1 should be nil")
	}
}

func TestCurvesCycleColors(t *testing.T) {
	specs := make([]Spec, curveview.PaletteSize+2)
	for i := range specs {
		specs[i] = Spec{A: [4]float64{float64(i), 1, 0, 0}, TMin: 0, TMax: 1, N: 2}
	}
	curves, err := Curves(specs)
	if err != nil {
		t.Fatalf("Curves: %v", err)
	}
	for i, c := range curves {
		if want := curveview.CycleColor(i); c.Color() != want {
			t.Errorf("curve %d color = %v, want %v", i, c.Color(), want)
		}
	}
	if curves[curveview.PaletteSize].Color() != curveview.ColorRed {
		t.Error("palette did not wrap to red")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")
	if err := os.WriteFile(path, []byte(twoCurves), 0o600); err != nil {
		t.Fatal(err)
	}
	curves, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(curves) != 2 || curves[0].Len() != 5 || curves[1].Len() != 3 {
		t.Fatalf("Load() = %d curves", len(curves))
	}
	if b := curves[1].Bounds(); b.XMin != 1 || b.XMax != 1 || b.YMax != 8 {
		t.Errorf("second curve bounds = %+v", b)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
