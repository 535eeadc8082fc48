package curveview

import "math"

// Normalized device space bounds targeted by the fitter.
const (
	ndcMin = -1.0
	ndcMax = 1.0
)

// degenerateHalfExtent is the half-size given to a region axis with zero
// extent, so a constant coordinate (e.g. a horizontal line) maps to the
// center of the viewport instead of dividing by zero.
const degenerateHalfExtent = 1.0

// ScaleTrans is the per-axis model-to-NDC transform handed to the curve
// shader, packed as [xscale, xtrans, yscale, ytrans]:
//
//	ndc.x = xscale*x + xtrans
//	ndc.y = yscale*y + ytrans
//
// It is derived from the current view state every frame and never cached.
type ScaleTrans [4]float32

// XScale returns the x-axis scale.
func (st ScaleTrans) XScale() float32 { return st[0] }

// XTrans returns the x-axis translation.
func (st ScaleTrans) XTrans() float32 { return st[1] }

// YScale returns the y-axis scale.
func (st ScaleTrans) YScale() float32 { return st[2] }

// YTrans returns the y-axis translation.
func (st ScaleTrans) YTrans() float32 { return st[3] }

// Apply maps a model-coordinate point into normalized device space.
func (st ScaleTrans) Apply(p Point) Point {
	return st.Matrix().TransformPoint(p)
}

// Matrix returns the transform as an axis-aligned affine matrix.
func (st ScaleTrans) Matrix() Matrix {
	return Matrix{
		A: float64(st[0]), B: 0, C: float64(st[1]),
		D: 0, E: float64(st[2]), F: float64(st[3]),
	}
}

// Visible returns the model-space region that fills the whole viewport. It
// contains the region of interest, extended along one axis when the
// aspect ratio was corrected.
func (st ScaleTrans) Visible() Region {
	inv := st.Matrix().Invert()
	lo := inv.TransformPoint(Pt(-1, -1))
	hi := inv.TransformPoint(Pt(1, 1))
	return Region{XMin: lo.X, XMax: hi.X, YMin: lo.Y, YMax: hi.Y, ZMin: -1, ZMax: 1}
}

// LinearMap returns scale and trans such that t = scale*f + trans maps
// fromMin to toMin and fromMax to toMax. fromMin == fromMax yields
// non-finite results; ComputeScaleTrans never passes a degenerate range.
func LinearMap(fromMin, fromMax, toMin, toMax float64) (scale, trans float64) {
	scale = (toMax - toMin) / (fromMax - fromMin)
	trans = toMin - scale*fromMin
	return scale, trans
}

// ViewportAspectRatio returns the viewport's height/width ratio, the same
// convention Region.AspectRatio uses, so a region corrected to it fills the
// viewport without distortion. It returns 0 for an empty viewport (a
// minimized window), which disables correction for that frame.
func ViewportAspectRatio(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return float64(height) / float64(width)
}

// validAspectRatio reports whether vAR can drive aspect-ratio correction.
func validAspectRatio(vAR float64) bool {
	return vAR > 0 && !math.IsInf(vAR, 0)
}

// MatchAspectRatio grows the xy extent of r about its center so that its
// height/width equals the viewport ratio vAR. Only one axis changes and it
// only ever grows, so everything inside r stays visible. z is untouched.
//
// r is returned unchanged when vAR is zero, negative, or non-finite.
func MatchAspectRatio(r Region, vAR float64) Region {
	if !validAspectRatio(vAR) {
		return r
	}
	wWidth := r.Width()
	wHeight := r.Height()
	wAR := wHeight / wWidth
	if wAR > vAR {
		// Region is relatively taller: widen it.
		wWidth = wHeight / vAR
		xmid := 0.5 * (r.XMin + r.XMax)
		r.XMin = xmid - 0.5*wWidth
		r.XMax = xmid + 0.5*wWidth
	} else {
		// Region is relatively wider (or matching): make it taller.
		wHeight = wWidth * vAR
		ymid := 0.5 * (r.YMin + r.YMax)
		r.YMin = ymid - 0.5*wHeight
		r.YMax = ymid + 0.5*wHeight
	}
	return r
}

// padDegenerate expands every zero-extent xy axis of r to
// ±degenerateHalfExtent around its value.
func padDegenerate(r Region) Region {
	if r.XMax == r.XMin {
		r.XMin -= degenerateHalfExtent
		r.XMax += degenerateHalfExtent
	}
	if r.YMax == r.YMin {
		r.YMin -= degenerateHalfExtent
		r.YMax += degenerateHalfExtent
	}
	return r
}

// ComputeScaleTrans derives the model-to-NDC transform for one frame.
//
// With preservation enabled and a usable viewport ratio, the region is first
// grown to match the viewport so curves are never distorted. Otherwise the
// raw region maps directly and may stretch to fill the window. Axes left with
// zero extent are padded before the per-axis linear fit. The z bounds are
// ignored.
func ComputeScaleTrans(s ViewSnapshot, viewportAR float64) ScaleTrans {
	r := s.Region
	if s.PreserveAspectRatio && validAspectRatio(viewportAR) {
		if r.Width() == 0 && r.Height() == 0 {
			r = padDegenerate(r)
		}
		r = MatchAspectRatio(r, viewportAR)
	}
	r = padDegenerate(r)

	xs, xt := LinearMap(r.XMin, r.XMax, ndcMin, ndcMax)
	ys, yt := LinearMap(r.YMin, r.YMax, ndcMin, ndcMax)
	return ScaleTrans{float32(xs), float32(xt), float32(ys), float32(yt)}
}
