//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/curveview"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// curveUniformSize is the byte size of the curve uniform buffer.
// Layout: scale_trans (vec4<f32>) + color_mode (vec4<f32>) = 32 bytes.
const curveUniformSize = 32

// CurveBuffers holds the GPU resources for one curve. The vertex buffer is
// written once at creation and never changes; the uniform buffer is
// rewritten every frame by Update.
type CurveBuffers struct {
	device hal.Device
	queue  hal.Queue

	vertBuf    hal.Buffer
	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup
	vertCount  uint32
}

// NewCurveBuffers uploads c's points and creates its uniform buffer and bind
// group against layout.
func NewCurveBuffers(device hal.Device, queue hal.Queue, layout hal.BindGroupLayout, c *curveview.Curve) (*CurveBuffers, error) {
	if uint64(c.Len()) > math.MaxUint32 {
		return nil, fmt.Errorf("curve has %d points, draw limit is %d", c.Len(), uint32(math.MaxUint32))
	}
	b := &CurveBuffers{
		device:    device,
		queue:     queue,
		vertCount: uint32(c.Len()), //nolint:gosec // bounded above
	}

	vertexData := encodeVertices(c.Float32())
	vertBuf, err := b.createAndUploadBuffer("curve_verts", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}
	b.vertBuf = vertBuf

	uniformBuf, err := b.createAndUploadBuffer("curve_uniform", make([]byte, curveUniformSize),
		gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		b.Destroy()
		return nil, fmt.Errorf("create uniform buffer: %w", err)
	}
	b.uniformBuf = uniformBuf

	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  "curve_bind",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: uniformBuf.NativeHandle(), Offset: 0, Size: curveUniformSize,
			}},
		},
	})
	if err != nil {
		b.Destroy()
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	b.bindGroup = bindGroup
	return b, nil
}

// Update writes the frame transform and the curve color into the uniform
// buffer.
func (b *CurveBuffers) Update(st curveview.ScaleTrans, color [4]float32) {
	b.queue.WriteBuffer(b.uniformBuf, 0, makeCurveUniform(st, color))
}

// VertexCount returns the number of line-strip vertices.
func (b *CurveBuffers) VertexCount() uint32 {
	return b.vertCount
}

// Destroy releases the curve's buffers and bind group. Safe to call more
// than once.
func (b *CurveBuffers) Destroy() {
	if b.bindGroup != nil {
		b.device.DestroyBindGroup(b.bindGroup)
		b.bindGroup = nil
	}
	if b.uniformBuf != nil {
		b.device.DestroyBuffer(b.uniformBuf)
		b.uniformBuf = nil
	}
	if b.vertBuf != nil {
		b.device.DestroyBuffer(b.vertBuf)
		b.vertBuf = nil
	}
}

func (b *CurveBuffers) createAndUploadBuffer(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", label, err)
	}
	b.queue.WriteBuffer(buf, 0, data)
	return buf, nil
}

// encodeVertices packs float32 coordinates as little-endian bytes.
func encodeVertices(coords []float32) []byte {
	buf := make([]byte, len(coords)*4)
	for i, v := range coords {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}

// makeCurveUniform encodes the CurveUniforms struct of curve.wgsl.
func makeCurveUniform(st curveview.ScaleTrans, color [4]float32) []byte {
	buf := make([]byte, curveUniformSize)
	for i, v := range st {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	for i, v := range color {
		binary.LittleEndian.PutUint32(buf[16+i*4:], math.Float32bits(v))
	}
	return buf
}
