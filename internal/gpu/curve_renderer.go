//go:build !nogpu

package gpu

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/curveview"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// fenceTimeout bounds how long a frame submission may take.
const fenceTimeout = 5 * time.Second

// Renderer draws curveview frames on a HAL device. Curves are uploaded once
// with Upload; every frame then only rewrites the per-curve uniforms.
//
// A Renderer is not safe for concurrent use. The render loop owns it.
type Renderer struct {
	device hal.Device
	queue  hal.Queue

	pipeline *CurvePipeline
	buffers  map[*curveview.Curve]*CurveBuffers
	clear    curveview.RGBA

	// Offscreen target for RenderToImage, recreated on resize.
	target     hal.Texture
	targetView hal.TextureView
	width      uint32
	height     uint32
}

// NewRenderer creates a renderer on device and queue. GPU objects are
// created lazily by Upload.
func NewRenderer(device hal.Device, queue hal.Queue) *Renderer {
	return &Renderer{
		device:   device,
		queue:    queue,
		pipeline: NewCurvePipeline(device),
		buffers:  make(map[*curveview.Curve]*CurveBuffers),
		clear:    curveview.White,
	}
}

// SetClearColor sets the color the target is cleared to before drawing.
func (r *Renderer) SetClearColor(c curveview.RGBA) {
	r.clear = c
}

// Upload creates GPU buffers for every curve that does not have them yet.
// Curves are immutable, so already uploaded curves are skipped.
func (r *Renderer) Upload(curves []*curveview.Curve) error {
	if err := r.pipeline.ensure(); err != nil {
		return err
	}
	added := 0
	for _, c := range curves {
		if _, ok := r.buffers[c]; ok || c == nil {
			continue
		}
		b, err := NewCurveBuffers(r.device, r.queue, r.pipeline.uniformLayout, c)
		if err != nil {
			return fmt.Errorf("upload curve %d: %w", added, err)
		}
		r.buffers[c] = b
		added++
	}
	if added > 0 {
		slogger().Debug("curveview/gpu: curves uploaded", "added", added, "total", len(r.buffers))
	}
	return nil
}

// Uploaded returns the number of curves with GPU buffers.
func (r *Renderer) Uploaded() int {
	return len(r.buffers)
}

// RecordFrame writes the frame's uniforms and records one line-strip draw
// per item into rp. Items whose curve was never uploaded are skipped. The
// curve pipeline is set once per frame.
func (r *Renderer) RecordFrame(rp hal.RenderPassEncoder, f curveview.Frame) {
	if len(f.Items) == 0 {
		return
	}
	scope := newProgramScope(rp)
	release := scope.bind(r.pipeline.pipeline)
	defer release()

	for _, item := range f.Items {
		b, ok := r.buffers[item.Curve]
		if !ok {
			slogger().Warn("curveview/gpu: curve not uploaded, skipping draw")
			continue
		}
		b.Update(f.ScaleTrans, item.Color)
		r.drawCurve(rp, scope, b)
	}
}

// drawCurve issues one curve's draw with the curve pipeline bound for its
// duration.
func (r *Renderer) drawCurve(rp hal.RenderPassEncoder, scope *programScope, b *CurveBuffers) {
	release := scope.bind(r.pipeline.pipeline)
	defer release()

	rp.SetBindGroup(0, b.bindGroup, nil)
	rp.SetVertexBuffer(0, b.vertBuf, 0)
	rp.Draw(b.VertexCount(), 1, 0, 0)
}

// RenderToView clears view, draws f into it and waits for the GPU to finish.
// The caller keeps ownership of view and presents it afterwards.
func (r *Renderer) RenderToView(view hal.TextureView, f curveview.Frame) error {
	if err := r.pipeline.ensure(); err != nil {
		return err
	}
	encoder, err := r.encodePass("curve_surface", view, f)
	if err != nil {
		return err
	}
	return r.submit(encoder)
}

// RenderToImage draws f into an offscreen width x height texture and reads
// it back into an RGBA image.
func (r *Renderer) RenderToImage(width, height uint32, f curveview.Frame) (*image.RGBA, error) {
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("render to image: empty size %dx%d", width, height)
	}
	if err := r.pipeline.ensure(); err != nil {
		return nil, err
	}
	if err := r.ensureTarget(width, height); err != nil {
		return nil, fmt.Errorf("ensure target: %w", err)
	}

	encoder, err := r.encodePass("curve_offscreen", r.targetView, f)
	if err != nil {
		return nil, err
	}

	// The target is in COLOR_ATTACHMENT_OPTIMAL layout after the pass.
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.target,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})

	pixelBufSize := uint64(width) * uint64(height) * 4
	stagingBuf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "curve_staging",
		Size:  pixelBufSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("create staging buffer: %w", err)
	}
	defer r.device.DestroyBuffer(stagingBuf)

	encoder.CopyTextureToBuffer(r.target, stagingBuf, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: width * 4, RowsPerImage: height},
		TextureBase:  hal.ImageCopyTexture{Texture: r.target, MipLevel: 0},
		Size:         hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1},
	}})

	if err := r.submit(encoder); err != nil {
		return nil, err
	}

	readback := make([]byte, pixelBufSize)
	if err := r.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return nil, fmt.Errorf("readback: %w", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	bgraToRGBA(img.Pix, readback)
	return img, nil
}

// encodePass begins encoding and records one cleared render pass on view.
func (r *Renderer) encodePass(label string, view hal.TextureView, f curveview.Frame) (hal.CommandEncoder, error) {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: label + "_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(label); err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: gputypes.Color{R: r.clear.R, G: r.clear.G, B: r.clear.B, A: r.clear.A},
		}},
	})
	r.RecordFrame(rp, f)
	rp.End()
	return encoder, nil
}

// submit ends encoding, submits the commands and waits on a fence.
func (r *Renderer) submit(encoder hal.CommandEncoder) error {
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer r.device.FreeCommandBuffer(cmdBuf)

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer r.device.DestroyFence(fence)

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := r.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}
	return nil
}

// ensureTarget creates or recreates the offscreen texture for the size.
func (r *Renderer) ensureTarget(w, h uint32) error {
	if r.width == w && r.height == h && r.target != nil {
		return nil
	}
	r.destroyTarget()

	tex, err := r.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "curve_target",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        curveTargetFormat,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create target texture: %w", err)
	}
	r.target = tex

	view, err := r.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         "curve_target_view",
		Format:        curveTargetFormat,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		r.destroyTarget()
		return fmt.Errorf("create target view: %w", err)
	}
	r.targetView = view
	r.width, r.height = w, h
	return nil
}

func (r *Renderer) destroyTarget() {
	if r.targetView != nil {
		r.device.DestroyTextureView(r.targetView)
		r.targetView = nil
	}
	if r.target != nil {
		r.device.DestroyTexture(r.target)
		r.target = nil
	}
	r.width, r.height = 0, 0
}

// Destroy releases every GPU resource the renderer created. Safe to call
// multiple times.
func (r *Renderer) Destroy() {
	for c, b := range r.buffers {
		b.Destroy()
		delete(r.buffers, c)
	}
	r.destroyTarget()
	r.pipeline.Destroy()
}

// bgraToRGBA swaps the red and blue channels of packed BGRA8 pixels.
func bgraToRGBA(dst, src []byte) {
	n := min(len(dst), len(src)) / 4
	for i := range n {
		o := i * 4
		dst[o+0] = src[o+2]
		dst[o+1] = src[o+1]
		dst[o+2] = src[o+0]
		dst[o+3] = src[o+3]
	}
}
