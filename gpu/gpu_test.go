//go:build !nogpu

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/curveview"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// noopProvider shares a noop device the way gogpu shares its HAL device.
type noopProvider struct {
	device hal.Device
	queue  hal.Queue
}

func (p noopProvider) HalDevice() any { return p.device }
func (p noopProvider) HalQueue() any  { return p.queue }

func newNoopProvider(t *testing.T) noopProvider {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return noopProvider{device: openDev.Device, queue: openDev.Queue}
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name     string
		provider any
		want     error
	}{
		{"nil", nil, ErrNilProvider},
		{"not a provider", struct{}{}, ErrNoHAL},
		{"wrong device type", noopProvider{}, ErrNoHAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := New(tt.provider)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
			if r != nil {
				t.Error("expected nil renderer on error")
			}
		})
	}
}

func TestRenderScene(t *testing.T) {
	r, err := New(newNoopProvider(t), WithClearColor(curveview.Black))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Destroy()

	c, err := curveview.NewCurve([]curveview.Point{{X: 0, Y: 0}, {X: 4, Y: 2}}, curveview.ColorMagenta)
	if err != nil {
		t.Fatal(err)
	}
	s := curveview.NewScene(nil, c)
	if err := s.FrameAll(); err != nil {
		t.Fatal(err)
	}

	img, err := r.Render(40, 30, s)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 30 {
		t.Errorf("image size = %v, want 40x30", b)
	}
	if _, err := r.Render(0, 30, s); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestDrawRejectsForeignSurface(t *testing.T) {
	r, err := New(newNoopProvider(t))
	if err != nil {
		t.Fatal(err)
	}
	defer r.Destroy()

	s := curveview.NewScene(nil)
	if err := r.Draw("not a view", 10, 10, s, 1); !errors.Is(err, ErrNoHAL) {
		t.Errorf("Draw() error = %v, want ErrNoHAL", err)
	}
	// Minimized windows are skipped before the surface is inspected.
	if err := r.Draw(nil, 0, 0, s, 0); err != nil {
		t.Errorf("Draw() on empty viewport = %v, want nil", err)
	}
}
