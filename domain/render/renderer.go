// Package render draws the editor canvas: the source photo at native
// resolution with the current selection overlaid.
package render

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"

	"github.com/soocke/glasses-studio/domain/selection"
)

// Style holds the cosmetic overlay parameters.
type Style struct {
	Stroke      color.NRGBA
	Fill        color.NRGBA
	StrokeWidth int
}

// DefaultStyle returns the gold overlay used by the studio.
func DefaultStyle() Style {
	return Style{
		Stroke:      color.NRGBA{R: 198, G: 161, B: 91, A: 242},
		Fill:        color.NRGBA{R: 198, G: 161, B: 91, A: 38},
		StrokeWidth: 4,
	}
}

// Surface is the drawing surface backing the editor canvas. Its pixel buffer
// always matches the native size of the image last rendered into it.
type Surface struct {
	pix *image.RGBA
}

// NewSurface returns an empty surface.
func NewSurface() *Surface { return &Surface{pix: image.NewRGBA(image.Rectangle{})} }

// Resize reallocates the buffer when the size changes. Contents are undefined
// afterwards.
func (s *Surface) Resize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	if s.pix != nil && s.pix.Rect.Dx() == w && s.pix.Rect.Dy() == h {
		return
	}
	s.pix = image.NewRGBA(image.Rect(0, 0, w, h))
}

// Size returns the intrinsic pixel size.
func (s *Surface) Size() image.Point {
	if s == nil || s.pix == nil {
		return image.Point{}
	}
	return s.pix.Rect.Size()
}

// Image exposes the pixel buffer. Callers must not retain it across renders.
func (s *Surface) Image() *image.RGBA {
	if s == nil {
		return nil
	}
	return s.pix
}

// Renderer redraws a Surface from current editor state.
type Renderer struct {
	style Style
}

// NewRenderer returns a renderer using style.
func NewRenderer(style Style) *Renderer {
	if style.StrokeWidth < 0 {
		style.StrokeWidth = 0
	}
	return &Renderer{style: style}
}

// Render draws src at native resolution and overlays r when non-nil.
// It reads its arguments only; the surface is the sole thing written.
func (rd *Renderer) Render(s *Surface, src image.Image, r *selection.Rect) {
	if s == nil {
		return
	}
	if src == nil {
		if s.pix != nil {
			clear(s.pix.Pix)
		}
		return
	}
	sb := src.Bounds()
	s.Resize(sb.Dx(), sb.Dy())
	xdraw.Draw(s.pix, s.pix.Rect, src, sb.Min, xdraw.Src)
	if r == nil {
		return
	}
	rd.strokeRect(s.pix, r.Bounds())
	fill(s.pix, r.Bounds(), rd.style.Fill)
}

// strokeRect draws a border of StrokeWidth centred on the rectangle edges as
// four non-overlapping bands, so translucent strokes blend once per pixel.
func (rd *Renderer) strokeRect(dst *image.RGBA, b image.Rectangle) {
	sw := rd.style.StrokeWidth
	if sw == 0 {
		return
	}
	in := sw / 2
	out := sw - in
	outer := image.Rect(b.Min.X-out, b.Min.Y-out, b.Max.X+out, b.Max.Y+out)
	inner := image.Rect(b.Min.X+in, b.Min.Y+in, b.Max.X-in, b.Max.Y-in)
	if inner.Dx() <= 0 || inner.Dy() <= 0 {
		fill(dst, outer, rd.style.Stroke)
		return
	}
	c := rd.style.Stroke
	fill(dst, image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y), c)
	fill(dst, image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y), c)
	fill(dst, image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y), c)
	fill(dst, image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y), c)
}

func fill(dst *image.RGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(dst.Rect)
	if r.Empty() || c.A == 0 {
		return
	}
	xdraw.Draw(dst, r, image.NewUniform(c), image.Point{}, xdraw.Over)
}
