package main

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/gogpu/curveview"
	"github.com/gogpu/gpucontext"
)

const (
	zoomStep = 1.25 // per key press
	panStep  = 0.1  // fraction of the region per key press
)

// keyHandler applies window key presses to a view.
type keyHandler struct {
	view   *curveview.View
	logger *slog.Logger

	// Bits of the last drawn viewport aspect ratio, for the V readout.
	viewportAR atomic.Uint64
}

func newKeyHandler(view *curveview.View, logger *slog.Logger) *keyHandler {
	k := &keyHandler{view: view, logger: logger}
	k.setViewportAspectRatio(1)
	return k
}

func (k *keyHandler) setViewportAspectRatio(vAR float64) {
	k.viewportAR.Store(math.Float64bits(vAR))
}

// handle applies key and reports whether it is bound.
func (k *keyHandler) handle(key gpucontext.Key) bool {
	var err error
	switch key {
	case gpucontext.KeySpace:
		on := k.view.ToggleAspectRatioPreservation()
		k.logger.Info("curveview: aspect-ratio preservation", "enabled", on)
	case gpucontext.KeyEqual:
		err = k.view.Zoom(zoomStep)
	case gpucontext.KeyMinus:
		err = k.view.Zoom(1 / zoomStep)
	case gpucontext.KeyLeft:
		err = k.view.Pan(-panStep, 0)
	case gpucontext.KeyRight:
		err = k.view.Pan(panStep, 0)
	case gpucontext.KeyUp:
		err = k.view.Pan(0, panStep)
	case gpucontext.KeyDown:
		err = k.view.Pan(0, -panStep)
	case gpucontext.KeyR:
		k.view.Reset()
	case gpucontext.KeyV:
		vAR := math.Float64frombits(k.viewportAR.Load())
		k.logger.Info("curveview: visible region",
			"region", k.view.ScaleTrans(vAR).Visible().String())
	default:
		return false
	}
	if err != nil {
		k.logger.Warn("curveview: view unchanged", "err", err)
	}
	return true
}
