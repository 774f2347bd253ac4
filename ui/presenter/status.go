package presenter

import (
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/soocke/glasses-studio/domain/extract"
	"github.com/soocke/glasses-studio/domain/health"
	"github.com/soocke/glasses-studio/ui/model"
)

// User-facing status lines.
const (
	StatusChecking    = "Checking service…"
	StatusOnline      = "Service online"
	StatusOffline     = "Service offline"
	StatusHint        = "Load a photo and outline the glasses with a rectangle."
	StatusNeedService = "Service offline. Start the extraction backend first."
	StatusExtracting  = "Extracting…"
	StatusNoSelection = "No selection"
)

func extractFailedText(err error) string {
	if code, ok := extract.StatusCode(err); ok {
		return fmt.Sprintf("Extract failed: %d", code)
	}
	return fmt.Sprintf("Extract failed: %v", err)
}

func extractDoneText(n int) string {
	return fmt.Sprintf("Done. PNG extracted (%s).", humanize.Bytes(uint64(n)))
}

func serviceText(s health.Sample, seen bool) string {
	switch {
	case !seen:
		return StatusChecking
	case s.Available():
		return StatusOnline
	default:
		return StatusOffline
	}
}

// preconditionText maps an Extract precondition error to its status line.
func preconditionText(err error) string {
	switch {
	case errors.Is(err, extract.ErrOffline):
		return StatusNeedService
	case errors.Is(err, extract.ErrMissingInput):
		return StatusHint
	default:
		return extractFailedText(err)
	}
}

// StatusView shows the service state and the activity line.
type StatusView interface {
	SetService(text string, online bool)
	SetActivity(text string)
}

// StatusPresenter mirrors model status fields to the status view.
type StatusPresenter struct {
	model *model.StudioModel
	view  StatusView
}

// NewStatusPresenter binds view to m and pushes the current values once.
func NewStatusPresenter(m *model.StudioModel, view StatusView) *StatusPresenter {
	p := &StatusPresenter{model: m, view: view}
	m.Subscribe(p.onChange)
	p.onChange(model.ChangeService)
	p.onChange(model.ChangeActivity)
	return p
}

func (p *StatusPresenter) onChange(c model.Change) {
	if p.view == nil {
		return
	}
	switch c {
	case model.ChangeService:
		s, seen := p.model.Service()
		p.view.SetService(serviceText(s, seen), seen && s.Available())
	case model.ChangeActivity:
		p.view.SetActivity(p.model.Activity())
	}
}
