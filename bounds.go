package curveview

import "fmt"

// Region is a model-coordinate axis-aligned box: the region of interest.
// The z extent is carried for 2D scenes as -1..+1 and ignored by the
// viewport fitter.
type Region struct {
	XMin, XMax float64
	YMin, YMax float64
	ZMin, ZMax float64
}

// DefaultRegion returns the region a View starts with before any scene is
// framed: -1..+1 on every axis.
func DefaultRegion() Region {
	return Region{XMin: -1, XMax: 1, YMin: -1, YMax: 1, ZMin: -1, ZMax: 1}
}

// RegionFromLimits builds a region from the six-scalar layout
// {xmin, xmax, ymin, ymax, zmin, zmax}.
func RegionFromLimits(xyz [6]float64) Region {
	return Region{
		XMin: xyz[0], XMax: xyz[1],
		YMin: xyz[2], YMax: xyz[3],
		ZMin: xyz[4], ZMax: xyz[5],
	}
}

// Limits returns the region in the six-scalar layout
// {xmin, xmax, ymin, ymax, zmin, zmax}.
func (r Region) Limits() [6]float64 {
	return [6]float64{r.XMin, r.XMax, r.YMin, r.YMax, r.ZMin, r.ZMax}
}

// Width returns XMax - XMin.
func (r Region) Width() float64 { return r.XMax - r.XMin }

// Height returns YMax - YMin.
func (r Region) Height() float64 { return r.YMax - r.YMin }

// Center returns the midpoint of the xy extent.
func (r Region) Center() Point {
	return Point{X: 0.5 * (r.XMin + r.XMax), Y: 0.5 * (r.YMin + r.YMax)}
}

// AspectRatio returns height/width of the xy extent.
func (r Region) AspectRatio() float64 {
	return r.Height() / r.Width()
}

// Valid reports whether every bound is finite and no axis is inverted.
// Zero-extent axes are valid.
func (r Region) Valid() bool {
	for _, v := range r.Limits() {
		if !isFinite(v) {
			return false
		}
	}
	return r.XMin <= r.XMax && r.YMin <= r.YMax && r.ZMin <= r.ZMax
}

// Contains reports whether p lies inside the xy extent, edges included.
func (r Region) Contains(p Point) bool {
	return p.X >= r.XMin && p.X <= r.XMax && p.Y >= r.YMin && p.Y <= r.YMax
}

func (r Region) String() string {
	return fmt.Sprintf("x[%g,%g] y[%g,%g] z[%g,%g]", r.XMin, r.XMax, r.YMin, r.YMax, r.ZMin, r.ZMax)
}

// Bounds is a 2D axis-aligned bounding box.
type Bounds struct {
	XMin, XMax float64
	YMin, YMax float64
}

// BoundsOf returns the bounding box of pts. It returns the zero Bounds when
// pts is empty.
func BoundsOf(pts []Point) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{XMin: pts[0].X, XMax: pts[0].X, YMin: pts[0].Y, YMax: pts[0].Y}
	for _, p := range pts[1:] {
		b.XMin = min(b.XMin, p.X)
		b.XMax = max(b.XMax, p.X)
		b.YMin = min(b.YMin, p.Y)
		b.YMax = max(b.YMax, p.Y)
	}
	return b
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return Bounds{
		XMin: min(b.XMin, o.XMin),
		XMax: max(b.XMax, o.XMax),
		YMin: min(b.YMin, o.YMin),
		YMax: max(b.YMax, o.YMax),
	}
}

// Region lifts b to a region of interest with z fixed to -1..+1.
func (b Bounds) Region() Region {
	return Region{
		XMin: b.XMin, XMax: b.XMax,
		YMin: b.YMin, YMax: b.YMax,
		ZMin: -1, ZMax: 1,
	}
}
