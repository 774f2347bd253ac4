package selection

import (
	"image"
	"log/slog"
)

// State is the drag state of the controller.
type State int

const (
	StateIdle State = iota
	StateDragging
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

// Listener receives every emitted rectangle. A nil rect means the selection
// was cleared.
type Listener func(r *Rect)

// Controller owns the drag-to-select state machine. It is driven from the UI
// thread only and needs no synchronization.
type Controller struct {
	state     State
	anchor    image.Point
	rect      Rect
	hasRect   bool
	bounds    image.Point // zero means only the lower clamp at 0 applies
	logger    *slog.Logger
	listeners []Listener
}

// NewController returns an idle controller with no selection.
func NewController(logger *slog.Logger) *Controller {
	return &Controller{logger: logger}
}

// Subscribe registers l for rectangle emissions.
func (c *Controller) Subscribe(l Listener) {
	if c == nil || l == nil {
		return
	}
	c.listeners = append(c.listeners, l)
}

// SetBounds sets the native image size points are clamped to.
func (c *Controller) SetBounds(size image.Point) {
	if c == nil {
		return
	}
	c.bounds = size
}

// State returns the current drag state.
func (c *Controller) State() State {
	if c == nil {
		return StateIdle
	}
	return c.state
}

// Rect returns the current selection, if any.
func (c *Controller) Rect() (Rect, bool) {
	if c == nil || !c.hasRect {
		return Rect{}, false
	}
	return c.rect, true
}

// PointerDown anchors a new selection at p and emits a 1x1 rectangle.
func (c *Controller) PointerDown(p image.Point) {
	if c == nil {
		return
	}
	p = c.clamp(p)
	c.state = StateDragging
	c.anchor = p
	c.emit(Rect{X: p.X, Y: p.Y, W: 1, H: 1})
	if c.logger != nil {
		c.logger.Debug("selection.start", "x", p.X, "y", p.Y)
	}
}

// PointerMove stretches the selection to p while dragging. It reports whether
// a rectangle was emitted; moves while idle are ignored.
func (c *Controller) PointerMove(p image.Point) bool {
	if c == nil || c.state != StateDragging {
		return false
	}
	c.emit(Span(c.anchor, c.clamp(p)))
	return true
}

// PointerUp ends the drag. The last rectangle stays selected.
func (c *Controller) PointerUp() {
	if c == nil || c.state != StateDragging {
		return
	}
	c.state = StateIdle
	if c.logger != nil {
		c.logger.Debug("selection.end", "rect", c.rect.String())
	}
}

// Reset drops any drag and selection.
func (c *Controller) Reset() {
	if c == nil {
		return
	}
	c.state = StateIdle
	c.anchor = image.Point{}
	c.rect = Rect{}
	c.hasRect = false
	for _, l := range c.listeners {
		l(nil)
	}
}

func (c *Controller) emit(r Rect) {
	c.rect = r
	c.hasRect = true
	for _, l := range c.listeners {
		rc := r
		l(&rc)
	}
}

func (c *Controller) clamp(p image.Point) image.Point {
	p.X = max(p.X, 0)
	p.Y = max(p.Y, 0)
	if c.bounds.X > 0 {
		p.X = min(p.X, c.bounds.X)
	}
	if c.bounds.Y > 0 {
		p.Y = min(p.Y, c.bounds.Y)
	}
	return p
}
