// Package loader reads cubic parametric curve definitions and samples them
// into curveview curves.
//
// A data file is a whitespace separated sequence of records
//
//	a0 a1 a2 a3  b0 b1 b2 b3  tmin tmax  nPoints
//
// each describing
//
//	x(t) = a0 + a1·t + a2·t² + a3·t³
//	y(t) = b0 + b1·t + b2·t² + b3·t³
//
// sampled at nPoints evenly spaced values of t in [tmin, tmax]. Files may
// start with a UTF-8 or UTF-16 byte order mark.
package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/gogpu/curveview"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrMalformed is returned for data that does not form complete, valid
// records.
var ErrMalformed = errors.New("loader: malformed curve data")

const (
	// fieldsPerRecord is the number of values in one record.
	fieldsPerRecord = 11

	// MaxPoints is the largest point count a record may ask for. It keeps
	// one curve's vertex buffer within 128 MiB and its vertex count within
	// a uint32 draw call.
	MaxPoints = 1 << 24
)

// Spec is one parametric cubic curve definition.
type Spec struct {
	A    [4]float64 // x(t) coefficients, constant term first
	B    [4]float64 // y(t) coefficients, constant term first
	TMin float64
	TMax float64
	N    int
}

// Eval returns the curve point at parameter t.
func (s Spec) Eval(t float64) curveview.Point {
	return curveview.Pt(cubic(s.A, t), cubic(s.B, t))
}

func cubic(c [4]float64, t float64) float64 {
	return c[0] + t*(c[1]+t*(c[2]+t*c[3]))
}

// Sample evaluates the curve at N evenly spaced parameters from TMin to
// TMax inclusive. It returns nil when N is outside [2, MaxPoints].
func (s Spec) Sample() []curveview.Point {
	if s.N < 2 || s.N > MaxPoints {
		return nil
	}
	dt := (s.TMax - s.TMin) / float64(s.N-1)
	pts := make([]curveview.Point, s.N)
	for i := range pts {
		pts[i] = s.Eval(s.TMin + float64(i)*dt)
	}
	return pts
}

// Parse reads every record from r.
//
// It returns ErrMalformed, annotated with the 1-based record number, for a
// value that is not a finite number, a truncated final record or a point
// count outside [2, MaxPoints].
func Parse(r io.Reader) ([]Spec, error) {
	// BOMOverride switches to UTF-16 when a UTF-16 BOM is present and
	// strips a UTF-8 BOM; plain UTF-8 passes through.
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	sc := bufio.NewScanner(dec)
	sc.Split(bufio.ScanWords)

	var (
		specs  []Spec
		fields [fieldsPerRecord]string
		n      int
	)
	for sc.Scan() {
		fields[n] = sc.Text()
		n++
		if n < fieldsPerRecord {
			continue
		}
		spec, err := parseRecord(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", ErrMalformed, len(specs)+1, err)
		}
		specs = append(specs, spec)
		n = 0
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("loader: read: %w", err)
	}
	if n != 0 {
		return nil, fmt.Errorf("%w: record %d: truncated after %d of %d values",
			ErrMalformed, len(specs)+1, n, fieldsPerRecord)
	}
	curveview.Logger().Debug("curveview/loader: parsed", "curves", len(specs))
	return specs, nil
}

func parseRecord(fields [fieldsPerRecord]string) (Spec, error) {
	var v [fieldsPerRecord - 1]float64
	for i := range v {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return Spec{}, fmt.Errorf("value %d: %w", i+1, err)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return Spec{}, fmt.Errorf("value %d: %q is not finite", i+1, fields[i])
		}
		v[i] = f
	}
	n, err := strconv.Atoi(fields[fieldsPerRecord-1])
	if err != nil {
		return Spec{}, fmt.Errorf("point count: %w", err)
	}
	if n < 2 {
		return Spec{}, fmt.Errorf("point count %d, need at least 2", n)
	}
	if n > MaxPoints {
		return Spec{}, fmt.Errorf("point count %d exceeds %d", n, MaxPoints)
	}
	return Spec{
		A:    [4]float64{v[0], v[1], v[2], v[3]},
		B:    [4]float64{v[4], v[5], v[6], v[7]},
		TMin: v[8],
		TMax: v[9],
		N:    n,
	}, nil
}

// ParseFile reads every record from the named file.
func ParseFile(path string) ([]Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	specs, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// Curves samples every spec into a curve. Colors follow the palette order
// and wrap around after the last entry.
func Curves(specs []Spec) ([]*curveview.Curve, error) {
	curves := make([]*curveview.Curve, 0, len(specs))
	for i, s := range specs {
		c, err := curveview.NewCurve(s.Sample(), curveview.CycleColor(i))
		if err != nil {
			return nil, fmt.Errorf("loader: curve %d: %w", i+1, err)
		}
		curves = append(curves, c)
	}
	return curves, nil
}

// Load parses the named file and returns its sampled curves.
func Load(path string) ([]*curveview.Curve, error) {
	specs, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	return Curves(specs)
}
