package view

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/soocke/glasses-studio/domain/selection"
	"github.com/soocke/glasses-studio/ui/images"
	"github.com/soocke/glasses-studio/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// EditorCanvas hosts the rendered editing surface. The photo sits at the
// label's top-left corner with no border or padding, so event coordinates are
// surface display coordinates.
type EditorCanvas struct {
	label     *LabelWidget
	maxW      int
	maxH      int
	photo     *Img // last Tk photo image instance, deleted before replacement
	displayed selection.Size
	intrinsic image.Point
}

const (
	placeholderW = 480
	placeholderH = 320
)

// NewEditorCanvas creates the canvas label inside parent at row.
func NewEditorCanvas(parent *FrameWidget, row, maxW, maxH int) *EditorCanvas {
	c := &EditorCanvas{maxW: maxW, maxH: maxH}
	c.photo = NewPhoto(Data(placeholderPNG(placeholderW, placeholderH)))
	c.label = Label(Image(c.photo), Borderwidth(0), Padx(0), Pady(0), Anchor("nw"), Background(theme.ColorSurface))
	Grid(c.label, In(parent), Row(row), Column(0), Columnspan(4), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	return c
}

// BindPointer routes mouse input to the handlers. Press and drag are bound
// on the canvas; release is bound on the application root so a drag that
// leaves the canvas still ends.
func (c *EditorCanvas) BindPointer(down, move func(image.Point), up func()) {
	if c == nil || c.label == nil {
		return
	}
	Bind(c.label, "<ButtonPress-1>", Command(func(e *Event) { down(image.Pt(e.X, e.Y)) }))
	Bind(c.label, "<B1-Motion>", Command(func(e *Event) { move(image.Pt(e.X, e.Y)) }))
	Bind(App, "<ButtonRelease-1>", Command(up))
}

// Geometry reports how the surface is drawn right now.
func (c *EditorCanvas) Geometry() selection.Geometry {
	return selection.Geometry{Displayed: c.displayed, Intrinsic: c.intrinsic}
}

// ShowCanvas replaces the displayed surface; nil restores the placeholder.
func (c *EditorCanvas) ShowCanvas(img image.Image) {
	if c == nil || c.label == nil {
		return
	}
	var data []byte
	if img == nil {
		c.displayed, c.intrinsic = selection.Size{}, image.Point{}
		data = placeholderPNG(placeholderW, placeholderH)
	} else {
		scaled := images.ScaleToFit(img, c.maxW, c.maxH)
		sb := scaled.Bounds()
		c.displayed = selection.Size{W: float64(sb.Dx()), H: float64(sb.Dy())}
		c.intrinsic = img.Bounds().Size()
		data = images.EncodePNG(scaled)
	}
	if c.photo != nil {
		c.photo.Delete()
	}
	c.photo = NewPhoto(Data(data))
	c.label.Configure(Image(c.photo))
}

func placeholderPNG(w, h int) []byte {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{0x1c, 0x1c, 0x20, 0xff}}, image.Point{}, draw.Src)
	return images.EncodePNG(img)
}
