package curveview

import (
	"fmt"
	"slices"
)

// Curve is an immutable line strip in model coordinates with a palette
// color. Its bounding box is computed once at construction.
type Curve struct {
	points []Point
	color  ColorIndex
	bounds Bounds
}

// NewCurve creates a curve from at least two finite points. The points are
// copied, so later changes to pts do not affect the curve.
func NewCurve(pts []Point, color ColorIndex) (*Curve, error) {
	if len(pts) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(pts))
	}
	if !color.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidColor, int(color))
	}
	for i, p := range pts {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: point %d is (%g, %g)", ErrNonFinitePoint, i, p.X, p.Y)
		}
	}
	owned := slices.Clone(pts)
	return &Curve{
		points: owned,
		color:  color,
		bounds: BoundsOf(owned),
	}, nil
}

// Points returns a copy of the curve's points.
func (c *Curve) Points() []Point {
	return slices.Clone(c.points)
}

// Len returns the number of points in the strip.
func (c *Curve) Len() int {
	return len(c.points)
}

// Color returns the curve's palette index.
func (c *Curve) Color() ColorIndex {
	return c.color
}

// Bounds returns the cached bounding box.
func (c *Curve) Bounds() Bounds {
	return c.bounds
}

// MCBoundingBox returns the curve's extent as
// {xmin, xmax, ymin, ymax, zmin, zmax}; z is always -1..+1.
func (c *Curve) MCBoundingBox() [6]float64 {
	return c.bounds.Region().Limits()
}

// Float32 returns the points as interleaved x,y float32 pairs, the layout of
// the curve's GPU vertex buffer.
func (c *Curve) Float32() []float32 {
	out := make([]float32, 0, 2*len(c.points))
	for _, p := range c.points {
		out = append(out, float32(p.X), float32(p.Y))
	}
	return out
}
