//go:build !nogpu

// Package gpu draws curveview frames with the gogpu/wgpu HAL.
//
// Each curve is uploaded once into an immutable vertex buffer of float32
// (x, y) pairs. Every frame the shared model-to-NDC transform and the
// curve's palette color are written into that curve's uniform buffer, and
// the curve is drawn as a line strip:
//
//	curveview.Frame -> CurveBuffers.Update -> programScope.bind -> Draw(n, 1, 0, 0)
//
// Key components:
//
//   - CurvePipeline: the curve.wgsl shader, bind group layout and LineStrip pipeline
//   - CurveBuffers: per-curve vertex buffer, 32-byte uniform buffer and bind group
//   - programScope: scoped pipeline binding on a render pass
//   - Renderer: uploads scenes and encodes frames to a surface view or an offscreen image
//
// The package builds with the !nogpu tag. Tests run against the hal/noop device.
package gpu
