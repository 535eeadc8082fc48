package curveview

import (
	"fmt"
	"sync"
)

// Scene owns a set of curves and the View they are displayed through.
type Scene struct {
	view *View

	mu     sync.RWMutex
	curves []*Curve
}

// NewScene creates a scene over view. A nil view gets a fresh NewView().
func NewScene(view *View, curves ...*Curve) *Scene {
	if view == nil {
		view = NewView()
	}
	s := &Scene{view: view}
	for _, c := range curves {
		s.Add(c)
	}
	return s
}

// View returns the scene's view state.
func (s *Scene) View() *View {
	return s.view
}

// Add appends a curve. Nil curves are ignored.
func (s *Scene) Add(c *Curve) {
	if c == nil {
		return
	}
	s.mu.Lock()
	s.curves = append(s.curves, c)
	s.mu.Unlock()
}

// Curves returns the scene's curves in insertion order.
func (s *Scene) Curves() []*Curve {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Curve, len(s.curves))
	copy(out, s.curves)
	return out
}

// Len returns the number of curves.
func (s *Scene) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.curves)
}

// OverallBounds returns the union of every curve's bounding box as a region
// with z fixed to -1..+1. ok is false when the scene is empty.
func (s *Scene) OverallBounds() (r Region, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.curves) == 0 {
		return Region{}, false
	}
	b := s.curves[0].Bounds()
	for _, c := range s.curves[1:] {
		b = b.Union(c.Bounds())
	}
	return b.Region(), true
}

// FrameAll seeds the view's region of interest with the overall scene
// bounds and makes it the region View.Reset returns to.
func (s *Scene) FrameAll() error {
	r, ok := s.OverallBounds()
	if !ok {
		return ErrEmptyScene
	}
	if err := s.view.SetHome(r); err != nil {
		return fmt.Errorf("frame scene: %w", err)
	}
	Logger().Info("curveview: scene framed", "curves", s.Len(), "region", r.String())
	return nil
}

// DrawItem is one curve's draw for a frame.
type DrawItem struct {
	Curve *Curve

	// Color is the curve's palette color as the shader's colorMode vec4.
	Color [4]float32
}

// Frame is everything a renderer needs for one pass: a single transform
// shared by every curve and the per-curve draws.
type Frame struct {
	ScaleTrans ScaleTrans
	Items      []DrawItem
}

// Frame snapshots the view once and builds the draws for a viewport with
// the given height/width aspect ratio (see ViewportAspectRatio).
func (s *Scene) Frame(viewportAR float64) Frame {
	st := ComputeScaleTrans(s.view.Snapshot(), viewportAR)
	curves := s.Curves()
	items := make([]DrawItem, 0, len(curves))
	for _, c := range curves {
		items = append(items, DrawItem{Curve: c, Color: palette[c.Color()].Float32()})
	}
	Logger().Debug("curveview: frame", "scaleTrans", st, "curves", len(items))
	return Frame{ScaleTrans: st, Items: items}
}
