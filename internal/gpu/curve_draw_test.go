//go:build !nogpu

package gpu

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gogpu/curveview"
	"github.com/gogpu/wgpu/hal"
)

// drawCall is one Draw recorded by drawRecorder.
type drawCall struct {
	vertexCount, instanceCount, firstVertex, firstInstance uint32
}

// drawRecorder records the pass commands a curve draw issues. Methods it
// does not override panic through the nil embedded interface.
type drawRecorder struct {
	hal.RenderPassEncoder

	pipelines  []hal.RenderPipeline
	bindGroups []hal.BindGroup
	vertBufs   []hal.Buffer
	draws      []drawCall
}

func (p *drawRecorder) SetPipeline(pipeline hal.RenderPipeline) {
	p.pipelines = append(p.pipelines, pipeline)
}

func (p *drawRecorder) SetBindGroup(_ uint32, group hal.BindGroup, _ []uint32) {
	p.bindGroups = append(p.bindGroups, group)
}

func (p *drawRecorder) SetVertexBuffer(_ uint32, buffer hal.Buffer, _ uint64) {
	p.vertBufs = append(p.vertBufs, buffer)
}

func (p *drawRecorder) Draw(vertexCount, instanceCount, firstVertex, firstInstance uint32) {
	p.draws = append(p.draws, drawCall{vertexCount, instanceCount, firstVertex, firstInstance})
}

type bufferWrite struct {
	buf  hal.Buffer
	data []byte
}

// writeRecorder forwards to a real queue and records every WriteBuffer.
type writeRecorder struct {
	hal.Queue
	writes []bufferWrite
}

func (q *writeRecorder) WriteBuffer(buffer hal.Buffer, offset uint64, data []byte) {
	q.writes = append(q.writes, bufferWrite{buf: buffer, data: append([]byte(nil), data...)})
	q.Queue.WriteBuffer(buffer, offset, data)
}

func TestRecordFrameDrawsEachCurve(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	q := &writeRecorder{Queue: queue}
	r := NewRenderer(device, q)
	defer r.Destroy()

	s := testScene(t)
	if err := r.Upload(s.Curves()); err != nil {
		t.Fatal(err)
	}
	q.writes = nil

	frame := s.Frame(0.5)
	pass := &drawRecorder{}
	r.RecordFrame(pass, frame)

	if len(pass.pipelines) != 1 || pass.pipelines[0] != r.pipeline.pipeline {
		t.Errorf("SetPipeline calls = %v, want the curve pipeline once", pass.pipelines)
	}
	if len(pass.draws) != len(frame.Items) {
		t.Fatalf("draws = %d, want %d", len(pass.draws), len(frame.Items))
	}
	if len(q.writes) != len(frame.Items) {
		t.Fatalf("uniform writes = %d, want %d", len(q.writes), len(frame.Items))
	}

	for i, item := range frame.Items {
		b := r.buffers[item.Curve]
		want := drawCall{vertexCount: uint32(item.Curve.Len()), instanceCount: 1}
		if pass.draws[i] != want {
			t.Errorf("draw %d = %+v, want %+v", i, pass.draws[i], want)
		}
		if pass.bindGroups[i] != b.bindGroup {
			t.Errorf("draw %d bound the wrong bind group", i)
		}
		if pass.vertBufs[i] != b.vertBuf {
			t.Errorf("draw %d bound the wrong vertex buffer", i)
		}

		w := q.writes[i]
		if w.buf != b.uniformBuf {
			t.Errorf("write %d did not target the curve's uniform buffer", i)
		}
		if want := makeCurveUniform(frame.ScaleTrans, item.Color); !bytes.Equal(w.data, want) {
			t.Errorf("uniform %d = %v, want %v", i, w.data, want)
		}
	}
}

func TestRecordFrameSkipsUnknownCurves(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	r := NewRenderer(device, queue)
	defer r.Destroy()

	s := testScene(t)
	uploaded := s.Curves()[0]
	if err := r.Upload([]*curveview.Curve{uploaded}); err != nil {
		t.Fatal(err)
	}

	pass := &drawRecorder{}
	r.RecordFrame(pass, s.Frame(1))
	if len(pass.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(pass.draws))
	}
	if got := pass.draws[0].vertexCount; got != uint32(uploaded.Len()) {
		t.Errorf("vertex count = %d, want %d", got, uploaded.Len())
	}

	// An empty frame records nothing.
	pass = &drawRecorder{}
	r.RecordFrame(pass, curveview.Frame{})
	if len(pass.pipelines) != 0 || len(pass.draws) != 0 {
		t.Errorf("empty frame recorded %d pipelines, %d draws", len(pass.pipelines), len(pass.draws))
	}
}

var errBeginFailed = errors.New("begin failed")

// failingEncoder fails BeginEncoding and records whether it was discarded.
type failingEncoder struct {
	hal.CommandEncoder
	discarded bool
}

func (e *failingEncoder) BeginEncoding(string) error { return errBeginFailed }
func (e *failingEncoder) DiscardEncoding()           { e.discarded = true }

// encoderDevice hands out a fixed command encoder.
type encoderDevice struct {
	hal.Device
	encoder hal.CommandEncoder
}

func (d *encoderDevice) CreateCommandEncoder(*hal.CommandEncoderDescriptor) (hal.CommandEncoder, error) {
	return d.encoder, nil
}

func TestRenderToViewDiscardsOnBeginFailure(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	enc := &failingEncoder{}
	r := NewRenderer(&encoderDevice{Device: device, encoder: enc}, queue)
	defer r.Destroy()

	err := r.RenderToView(nil, testScene(t).Frame(1))
	if !errors.Is(err, errBeginFailed) {
		t.Fatalf("RenderToView() error = %v, want errBeginFailed", err)
	}
	if !enc.discarded {
		t.Error("encoder not discarded after BeginEncoding failed")
	}
}
