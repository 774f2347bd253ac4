package presenter

import (
	"image"
	"log/slog"

	"github.com/soocke/glasses-studio/domain/artifact"
	"github.com/soocke/glasses-studio/domain/render"
	"github.com/soocke/glasses-studio/domain/selection"
	"github.com/soocke/glasses-studio/domain/source"
	"github.com/soocke/glasses-studio/ui/model"
)

// EditorView is the drawing surface and its selection readout.
type EditorView interface {
	// Geometry reports where the surface is currently drawn.
	Geometry() selection.Geometry
	// ShowCanvas displays the rendered surface; nil shows the placeholder.
	ShowCanvas(img image.Image)
	SetSelectionText(text string)
}

// ResultInvalidator drops the current extraction result.
type ResultInvalidator interface {
	Invalidate() *artifact.Handle
}

// EditorPresenter turns pointer events into a selection and keeps the canvas
// in sync with the model.
type EditorPresenter struct {
	model    *model.StudioModel
	ctrl     *selection.Controller
	renderer *render.Renderer
	surface  *render.Surface
	sources  *artifact.Slot
	results  ResultInvalidator
	view     EditorView
	logger   *slog.Logger
	dirty    bool

	// overridable in tests
	load    func(path string) (*source.Image, error)
	capture func() (*source.Image, error)
}

// NewEditorPresenter wires the selection controller to the model. sources
// must be a KindSource slot.
func NewEditorPresenter(m *model.StudioModel, ctrl *selection.Controller, r *render.Renderer, sources *artifact.Slot, results ResultInvalidator, view EditorView, logger *slog.Logger) *EditorPresenter {
	p := &EditorPresenter{
		model:    m,
		ctrl:     ctrl,
		renderer: r,
		surface:  render.NewSurface(),
		sources:  sources,
		results:  results,
		view:     view,
		logger:   logger,
		dirty:    true,
		load:     source.Load,
		capture:  source.FromScreen,
	}
	ctrl.Subscribe(func(r *selection.Rect) { m.SetRect(r) })
	m.Subscribe(p.onChange)
	p.onChange(model.ChangeRect)
	return p
}

func (p *EditorPresenter) onChange(c model.Change) {
	switch c {
	case model.ChangeSource:
		p.dirty = true
	case model.ChangeRect:
		p.dirty = true
		if p.view == nil {
			return
		}
		if r := p.model.Rect(); r != nil {
			p.view.SetSelectionText(r.String())
		} else {
			p.view.SetSelectionText(StatusNoSelection)
		}
	}
}

func (p *EditorPresenter) toPixel(client image.Point) (image.Point, bool) {
	if p.model.Source() == nil || p.view == nil {
		return image.Point{}, false
	}
	return selection.ToPixel(client, p.view.Geometry())
}

// PointerDown starts a selection at client, given in canvas event coordinates.
func (p *EditorPresenter) PointerDown(client image.Point) {
	if pt, ok := p.toPixel(client); ok {
		p.ctrl.PointerDown(pt)
	}
}

// PointerMove extends an active selection.
func (p *EditorPresenter) PointerMove(client image.Point) {
	if p.ctrl.State() != selection.StateDragging {
		return
	}
	if pt, ok := p.toPixel(client); ok {
		p.ctrl.PointerMove(pt)
	}
}

// PointerUp ends the drag. It is bound application-wide so a release outside
// the canvas still finishes the selection.
func (p *EditorPresenter) PointerUp() { p.ctrl.PointerUp() }

// ResetSelection clears the rectangle.
func (p *EditorPresenter) ResetSelection() { p.ctrl.Reset() }

// LoadFile reads and shows the image at path.
func (p *EditorPresenter) LoadFile(path string) error {
	img, err := p.load(path)
	if err != nil {
		p.fail("source.load", err)
		return err
	}
	p.setSource(img)
	return nil
}

// CaptureScreen grabs the primary display and uses it as the source.
func (p *EditorPresenter) CaptureScreen() error {
	img, err := p.capture()
	if err != nil {
		p.fail("source.capture", err)
		return err
	}
	p.setSource(img)
	return nil
}

func (p *EditorPresenter) fail(op string, err error) {
	if p.logger != nil {
		p.logger.Error(op, "error", err)
	}
	p.model.SetActivity("Could not open image: " + err.Error())
}

// setSource replaces the image. The previous result and any extraction in
// flight belong to the old image and are dropped.
func (p *EditorPresenter) setSource(img *source.Image) {
	if p.results != nil {
		p.results.Invalidate()
	}
	p.model.SetResult(nil)
	h, prev := p.sources.Replace(img.Data, img.MediaType)
	p.ctrl.Reset()
	p.ctrl.SetBounds(img.Size)
	p.model.SetSource(img, h)
	p.model.SetActivity(StatusHint)
	if p.logger != nil {
		attrs := []any{"name", img.Name, "size", img.Size, "url", h.URL}
		if prev != nil {
			attrs = append(attrs, "released", prev.URL)
		}
		p.logger.Info("source.loaded", attrs...)
	}
}

// Redraw forces the next Flush to render, e.g. after a resize.
func (p *EditorPresenter) Redraw() { p.dirty = true }

// Flush renders the current image and selection if anything changed.
func (p *EditorPresenter) Flush() {
	if p == nil || !p.dirty {
		return
	}
	p.dirty = false
	src := p.model.Source()
	if src == nil {
		p.renderer.Render(p.surface, nil, nil)
		if p.view != nil {
			p.view.ShowCanvas(nil)
		}
		return
	}
	p.renderer.Render(p.surface, src.Pixels, p.model.Rect())
	if p.view != nil {
		p.view.ShowCanvas(p.surface.Image())
	}
}
