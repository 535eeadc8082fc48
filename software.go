package curveview

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// DefaultLineWidth is the stroke width, in pixels, of a curve rendered by
// SoftwareRenderer.
const DefaultLineWidth = 1.5

// SoftwareRenderer rasterizes frames on the CPU. It applies the same
// model-to-NDC transform the GPU pipeline uploads, followed by the
// NDC-to-pixel viewport mapping, and draws each curve as a connected line
// strip.
//
// It backs headless export and serves as a reference for the GPU path.
type SoftwareRenderer struct {
	width, height int
	lineWidth     float64
	background    RGBA
	rasterizer    *vector.Rasterizer
}

// NewSoftwareRenderer creates a renderer for a width x height image with a
// white background.
func NewSoftwareRenderer(width, height int) *SoftwareRenderer {
	return &SoftwareRenderer{
		width:      width,
		height:     height,
		lineWidth:  DefaultLineWidth,
		background: White,
		rasterizer: vector.NewRasterizer(width, height),
	}
}

// SetLineWidth sets the stroke width in pixels. Non-positive widths are ignored.
func (r *SoftwareRenderer) SetLineWidth(w float64) {
	if w > 0 {
		r.lineWidth = w
	}
}

// SetBackground sets the clear color.
func (r *SoftwareRenderer) SetBackground(c RGBA) {
	r.background = c
}

// AspectRatio returns the height/width ratio of the target image.
func (r *SoftwareRenderer) AspectRatio() float64 {
	return ViewportAspectRatio(r.width, r.height)
}

// Render clears a new image and draws every item of f.
func (r *SoftwareRenderer) Render(f Frame) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	draw.Draw(img, img.Bounds(), image.NewUniform(r.background.Color()), image.Point{}, draw.Src)

	toPixel := NDCToPixel(r.width, r.height).Multiply(f.ScaleTrans.Matrix())
	for _, item := range f.Items {
		r.drawStrip(img, toPixel, item)
	}
	return img
}

// drawStrip strokes consecutive point pairs as quads of the configured width.
// Overlapping quads accumulate under the non-zero rule, so joints are filled.
func (r *SoftwareRenderer) drawStrip(dst *image.RGBA, toPixel Matrix, item DrawItem) {
	pts := item.Curve.points
	if len(pts) < 2 {
		return
	}
	r.rasterizer.Reset(r.width, r.height)
	half := 0.5 * r.lineWidth

	prev := toPixel.TransformPoint(pts[0])
	for _, p := range pts[1:] {
		cur := toPixel.TransformPoint(p)
		n := cur.Sub(prev).Normalize().Perp().Mul(half)
		if n == (Point{}) {
			prev = cur
			continue
		}
		a, b := prev.Add(n), cur.Add(n)
		c, d := cur.Sub(n), prev.Sub(n)
		r.rasterizer.MoveTo(float32(a.X), float32(a.Y))
		r.rasterizer.LineTo(float32(b.X), float32(b.Y))
		r.rasterizer.LineTo(float32(c.X), float32(c.Y))
		r.rasterizer.LineTo(float32(d.X), float32(d.Y))
		r.rasterizer.ClosePath()
		prev = cur
	}

	src := image.NewUniform(color.NRGBA{
		R: uint8(clamp255(float64(item.Color[0]) * 255)),
		G: uint8(clamp255(float64(item.Color[1]) * 255)),
		B: uint8(clamp255(float64(item.Color[2]) * 255)),
		A: uint8(clamp255(float64(item.Color[3]) * 255)),
	})
	r.rasterizer.DrawOp = draw.Over
	r.rasterizer.Draw(dst, dst.Bounds(), src, image.Point{})
}
