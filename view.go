package curveview

import (
	"fmt"
	"sync"
)

// View tracks the region of interest shared by every curve in a scene and
// whether the viewport fitter preserves aspect ratio.
//
// View is safe for concurrent use. Input handlers may write between frames
// while a render pass reads; each pass should take a single Snapshot so all
// curves in a frame see the same region.
type View struct {
	mu       sync.RWMutex
	region   Region
	home     Region
	preserve bool
}

// ViewSnapshot is a consistent copy of a View's state.
type ViewSnapshot struct {
	Region              Region
	PreserveAspectRatio bool
}

// NewView creates a View. Without options it starts at DefaultRegion with
// aspect-ratio preservation enabled.
func NewView(opts ...ViewOption) *View {
	o := defaultViewOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &View{
		region:   o.region,
		home:     o.region,
		preserve: o.preserve,
	}
}

// SetRegionOfInterest replaces the region of interest. It returns
// ErrInvalidRegion, leaving the current region untouched, if any bound is
// non-finite or an axis is inverted.
func (v *View) SetRegionOfInterest(r Region) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.setLocked(r)
}

// setLocked validates r and makes it the region of interest. v.mu must be
// held for writing.
func (v *View) setLocked(r Region) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRegion, r)
	}
	v.region = r
	Logger().Debug("curveview: region of interest set", "region", r.String())
	return nil
}

// RegionOfInterest returns the current region of interest.
func (v *View) RegionOfInterest() Region {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.region
}

// SetAspectRatioPreservationEnabled toggles aspect-ratio preservation.
// The transform is recomputed lazily on the next frame.
func (v *View) SetAspectRatioPreservationEnabled(enabled bool) {
	v.mu.Lock()
	v.preserve = enabled
	v.mu.Unlock()
	Logger().Debug("curveview: aspect ratio preservation", "enabled", enabled)
}

// AspectRatioPreservationEnabled reports whether aspect-ratio preservation is on.
func (v *View) AspectRatioPreservationEnabled() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.preserve
}

// ToggleAspectRatioPreservation flips the flag and returns the new value.
func (v *View) ToggleAspectRatioPreservation() bool {
	v.mu.Lock()
	v.preserve = !v.preserve
	enabled := v.preserve
	v.mu.Unlock()
	Logger().Debug("curveview: aspect ratio preservation", "enabled", enabled)
	return enabled
}

// Snapshot returns the region and flag read under one lock.
func (v *View) Snapshot() ViewSnapshot {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return ViewSnapshot{Region: v.region, PreserveAspectRatio: v.preserve}
}

// SetHome sets the region that Reset returns to and makes it the current
// region of interest.
func (v *View) SetHome(r Region) error {
	if !r.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidRegion, r)
	}
	v.mu.Lock()
	v.home = r
	v.region = r
	v.mu.Unlock()
	Logger().Debug("curveview: home region set", "region", r.String())
	return nil
}

// Reset restores the home region: the framed scene, or the initial region if
// no scene was framed.
func (v *View) Reset() {
	v.mu.Lock()
	v.region = v.home
	home := v.home
	v.mu.Unlock()
	Logger().Debug("curveview: region reset", "region", home.String())
}

// Zoom scales the region about its center. factor > 1 zooms in (the region
// shrinks), factor < 1 zooms out. Non-positive factors are rejected.
func (v *View) Zoom(factor float64) error {
	if !(factor > 0) || !isFinite(factor) {
		return fmt.Errorf("%w: zoom factor %g", ErrInvalidRegion, factor)
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	r := v.region
	c := r.Center()
	hw := 0.5 * r.Width() / factor
	hh := 0.5 * r.Height() / factor
	r.XMin, r.XMax = c.X-hw, c.X+hw
	r.YMin, r.YMax = c.Y-hh, c.Y+hh
	return v.setLocked(r)
}

// Pan moves the region by dx and dy, given as fractions of its width and
// height.
func (v *View) Pan(dx, dy float64) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	r := v.region
	ox := dx * r.Width()
	oy := dy * r.Height()
	r.XMin += ox
	r.XMax += ox
	r.YMin += oy
	r.YMax += oy
	return v.setLocked(r)
}

// ScaleTrans computes the model-to-NDC transform for a viewport with the
// given height/width aspect ratio from a fresh snapshot.
func (v *View) ScaleTrans(viewportAR float64) ScaleTrans {
	return ComputeScaleTrans(v.Snapshot(), viewportAR)
}
