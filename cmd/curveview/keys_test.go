package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/gogpu/curveview"
	"github.com/gogpu/gpucontext"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestKeyHandlerEditsView(t *testing.T) {
	home := curveview.Region{XMin: 0, XMax: 10, YMin: 0, YMax: 10, ZMin: -1, ZMax: 1}
	view := curveview.NewView(curveview.WithRegion(home))
	k := newKeyHandler(view, slog.New(slog.NewTextHandler(io.Discard, nil)))
	approx := cmpopts.EquateApprox(0, 1e-9)

	tests := []struct {
		key  gpucontext.Key
		want curveview.Region
	}{
		{gpucontext.KeyRight, curveview.Region{XMin: 1, XMax: 11, YMin: 0, YMax: 10, ZMin: -1, ZMax: 1}},
		{gpucontext.KeyUp, curveview.Region{XMin: 1, XMax: 11, YMin: 1, YMax: 11, ZMin: -1, ZMax: 1}},
		{gpucontext.KeyLeft, curveview.Region{XMin: 0, XMax: 10, YMin: 1, YMax: 11, ZMin: -1, ZMax: 1}},
		{gpucontext.KeyDown, home},
		{gpucontext.KeyEqual, curveview.Region{XMin: 1, XMax: 9, YMin: 1, YMax: 9, ZMin: -1, ZMax: 1}},
		{gpucontext.KeyMinus, home},
		{gpucontext.KeyRight, curveview.Region{XMin: 1, XMax: 11, YMin: 0, YMax: 10, ZMin: -1, ZMax: 1}},
		{gpucontext.KeyR, home},
	}
	for i, tt := range tests {
		if !k.handle(tt.key) {
			t.Fatalf("step %d: key %v not bound", i, tt.key)
		}
		if diff := cmp.Diff(tt.want, view.RegionOfInterest(), approx); diff != "" {
			t.Errorf("step %d (key %v) region (-want +got):\n%s", i, tt.key, diff)
		}
	}
}

func TestKeyHandlerToggleAndReadout(t *testing.T) {
	view := curveview.NewView()
	k := newKeyHandler(view, slog.New(slog.NewTextHandler(io.Discard, nil)))

	if !k.handle(gpucontext.KeySpace) || view.AspectRatioPreservationEnabled() {
		t.Error("Space should disable preservation")
	}
	k.setViewportAspectRatio(0.5)
	before := view.RegionOfInterest()
	if !k.handle(gpucontext.KeyV) {
		t.Error("V not bound")
	}
	if view.RegionOfInterest() != before {
		t.Error("V changed the region")
	}
	if k.handle(gpucontext.KeyA) {
		t.Error("A should be unbound")
	}
}
