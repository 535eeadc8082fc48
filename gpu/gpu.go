//go:build !nogpu

// Package gpu draws curveview scenes with the gogpu/wgpu GPU stack.
//
// A Renderer either shares the device of a window host such as gogpu:
//
//	r, err := gpu.New(app.GPUContextProvider())
//	...
//	err = r.Draw(dc.SurfaceView(), w, h, scene, curveview.ViewportAspectRatio(dc.Width(), dc.Height()))
//
// or opens its own Vulkan device for headless export with NewHeadless.
package gpu

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/curveview"
	gpuimpl "github.com/gogpu/curveview/internal/gpu"
	"github.com/gogpu/wgpu/hal"
)

var (
	// ErrNilProvider is returned by New for a nil provider.
	ErrNilProvider = errors.New("gpu: nil device provider")

	// ErrNoHAL is returned when a provider or surface does not expose the
	// wgpu HAL types this package draws with.
	ErrNoHAL = errors.New("gpu: HAL access not available")
)

// halProvider is implemented by hosts that share their HAL device, such as
// the gogpu GPU context provider.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// Option configures a Renderer.
type Option func(*options)

type options struct {
	clear curveview.RGBA
}

func defaultOptions() options {
	return options{clear: curveview.White}
}

// WithClearColor sets the color targets are cleared to. Default is white.
func WithClearColor(c curveview.RGBA) Option {
	return func(o *options) {
		o.clear = c
	}
}

// Renderer draws scenes through the curve line-strip pipeline.
type Renderer struct {
	impl   *gpuimpl.Renderer
	device *gpuimpl.Device // owned device, nil when shared
}

// New creates a renderer on the device shared by provider. The provider
// must implement HalDevice() any and HalQueue() any returning hal.Device and
// hal.Queue.
func New(provider any, opts ...Option) (*Renderer, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, fmt.Errorf("%w: provider %T does not expose HAL types", ErrNoHAL, provider)
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: provider HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: provider HalQueue is not hal.Queue", ErrNoHAL)
	}
	return newRenderer(device, queue, nil, opts), nil
}

// NewHeadless opens a Vulkan device owned by the renderer. Destroy closes it.
func NewHeadless(opts ...Option) (*Renderer, error) {
	d, err := gpuimpl.OpenVulkan()
	if err != nil {
		return nil, fmt.Errorf("gpu: open headless device: %w", err)
	}
	return newRenderer(d.Device, d.Queue, d, opts), nil
}

func newRenderer(device hal.Device, queue hal.Queue, owned *gpuimpl.Device, opts []Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	impl := gpuimpl.NewRenderer(device, queue)
	impl.SetClearColor(o.clear)
	return &Renderer{impl: impl, device: owned}
}

// Draw clears surfaceView and draws every curve of scene into it. The
// transform is computed once from the scene's view and viewportAR, the
// viewport's height/width ratio. A zero width or height (minimized window)
// draws nothing.
func (r *Renderer) Draw(surfaceView any, width, height uint32, scene *curveview.Scene, viewportAR float64) error {
	if width == 0 || height == 0 {
		return nil
	}
	view, ok := surfaceView.(hal.TextureView)
	if !ok || view == nil {
		return fmt.Errorf("%w: surface view %T is not hal.TextureView", ErrNoHAL, surfaceView)
	}
	if err := r.impl.Upload(scene.Curves()); err != nil {
		return fmt.Errorf("gpu: upload scene: %w", err)
	}
	if err := r.impl.RenderToView(view, scene.Frame(viewportAR)); err != nil {
		return fmt.Errorf("gpu: draw: %w", err)
	}
	return nil
}

// Render draws scene into a new width x height image.
func (r *Renderer) Render(width, height int, scene *curveview.Scene) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("gpu: invalid image size %dx%d", width, height)
	}
	if err := r.impl.Upload(scene.Curves()); err != nil {
		return nil, fmt.Errorf("gpu: upload scene: %w", err)
	}
	frame := scene.Frame(curveview.ViewportAspectRatio(width, height))
	img, err := r.impl.RenderToImage(uint32(width), uint32(height), frame) //nolint:gosec // checked positive above
	if err != nil {
		return nil, fmt.Errorf("gpu: render: %w", err)
	}
	return img, nil
}

// Destroy releases all GPU resources, and the device when it is owned.
func (r *Renderer) Destroy() {
	r.impl.Destroy()
	if r.device != nil {
		r.device.Close()
		r.device = nil
	}
}
