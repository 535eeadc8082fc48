// Package curveview fits 2D parametric curves into a GPU viewport.
//
// Curves are authored in arbitrary model coordinates. A View tracks the
// model-space region of interest shared by every curve, and the viewport
// fitter turns that region plus the window's aspect ratio into a per-axis
// scale/translate pair mapping model coordinates onto normalized device
// space [-1,+1]², the space the rasterizer consumes.
//
// # Overview
//
//	curves ──► Scene.FrameAll ──► View (region of interest, aspect flag)
//	                                   │
//	        window aspect ratio ──►  ComputeScaleTrans ──► ScaleTrans
//	                                                           │
//	            Frame{ScaleTrans, []DrawItem} ──► gpu.Renderer / SoftwareRenderer
//
// # Aspect ratio preservation
//
// With preservation enabled (the default), the fitter grows the region of
// interest along one axis, about its center, until its height/width matches
// the viewport's. Nothing is cropped and curves keep their shape. With
// preservation disabled, the region maps straight onto the viewport and
// curves stretch to fill it.
//
// # Quick start
//
//	view := curveview.NewView()
//	scene := curveview.NewScene(view, curves...)
//	if err := scene.FrameAll(); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Each frame:
//	frame := scene.Frame(curveview.ViewportAspectRatio(width, height))
//	img := curveview.NewSoftwareRenderer(width, height).Render(frame)
//
// For on-screen rendering through WebGPU, see package
// github.com/gogpu/curveview/gpu. Curve data files are read by package
// github.com/gogpu/curveview/loader.
package curveview
