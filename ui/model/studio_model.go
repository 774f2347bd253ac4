package model

import (
	"github.com/soocke/glasses-studio/domain/artifact"
	"github.com/soocke/glasses-studio/domain/health"
	"github.com/soocke/glasses-studio/domain/selection"
	"github.com/soocke/glasses-studio/domain/source"
)

// Change identifies which part of the studio state was updated.
type Change int

const (
	ChangeSource Change = iota
	ChangeRect
	ChangeResult
	ChangeActivity
	ChangeService
)

func (c Change) String() string {
	switch c {
	case ChangeSource:
		return "source"
	case ChangeRect:
		return "rect"
	case ChangeResult:
		return "result"
	case ChangeActivity:
		return "activity"
	case ChangeService:
		return "service"
	default:
		return "unknown"
	}
}

// StudioModel holds the editor state shown by the views. It is only touched
// from the UI thread. The zero value is usable and methods are nil-safe.
type StudioModel struct {
	source       *source.Image
	sourceHandle *artifact.Handle
	rect         *selection.Rect
	result       *artifact.Handle
	activity     string
	service      health.Sample
	hasService   bool
	listeners    []func(Change)
}

func NewStudioModel() *StudioModel { return &StudioModel{} }

// Subscribe registers fn for every change notification.
func (m *StudioModel) Subscribe(fn func(Change)) {
	if m == nil || fn == nil {
		return
	}
	m.listeners = append(m.listeners, fn)
}

func (m *StudioModel) notify(c Change) {
	for _, fn := range m.listeners {
		fn(c)
	}
}

// SetSource replaces the loaded image and its handle. Loading an image
// clears the selection.
func (m *StudioModel) SetSource(img *source.Image, h *artifact.Handle) {
	if m == nil {
		return
	}
	m.source, m.sourceHandle = img, h
	m.notify(ChangeSource)
	if m.rect != nil {
		m.rect = nil
		m.notify(ChangeRect)
	}
}

func (m *StudioModel) Source() *source.Image {
	if m == nil {
		return nil
	}
	return m.source
}

func (m *StudioModel) SourceHandle() *artifact.Handle {
	if m == nil {
		return nil
	}
	return m.sourceHandle
}

// SetRect stores the selection in image pixels; nil clears it.
func (m *StudioModel) SetRect(r *selection.Rect) {
	if m == nil {
		return
	}
	if r != nil {
		c := *r
		r = &c
	}
	m.rect = r
	m.notify(ChangeRect)
}

// Rect returns a copy of the current selection, or nil.
func (m *StudioModel) Rect() *selection.Rect {
	if m == nil || m.rect == nil {
		return nil
	}
	c := *m.rect
	return &c
}

// SetResult stores the live result handle; nil clears it.
func (m *StudioModel) SetResult(h *artifact.Handle) {
	if m == nil || m.result == h {
		return
	}
	m.result = h
	m.notify(ChangeResult)
}

func (m *StudioModel) Result() *artifact.Handle {
	if m == nil {
		return nil
	}
	return m.result
}

// SetActivity sets the status line text.
func (m *StudioModel) SetActivity(s string) {
	if m == nil || m.activity == s {
		return
	}
	m.activity = s
	m.notify(ChangeActivity)
}

func (m *StudioModel) Activity() string {
	if m == nil {
		return ""
	}
	return m.activity
}

// SetService stores the latest availability sample. Every sample notifies,
// since its timestamp changes even when the status does not.
func (m *StudioModel) SetService(s health.Sample) {
	if m == nil {
		return
	}
	m.service, m.hasService = s, true
	m.notify(ChangeService)
}

// Service returns the latest sample and whether one has been seen.
func (m *StudioModel) Service() (health.Sample, bool) {
	if m == nil {
		return health.Sample{}, false
	}
	return m.service, m.hasService
}

// Available reports whether the latest sample saw the service online.
func (m *StudioModel) Available() bool {
	s, ok := m.Service()
	return ok && s.Available()
}
