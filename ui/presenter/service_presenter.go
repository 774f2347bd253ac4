package presenter

import (
	"github.com/soocke/glasses-studio/domain/health"
	"github.com/soocke/glasses-studio/ui/model"
)

// SampleSource delivers availability samples.
type SampleSource interface {
	Samples() <-chan health.Sample
}

// ServicePresenter moves monitor samples into the model on the UI thread.
type ServicePresenter struct {
	model *model.StudioModel
	src   SampleSource
}

func NewServicePresenter(m *model.StudioModel, src SampleSource) *ServicePresenter {
	return &ServicePresenter{model: m, src: src}
}

// Tick applies the newest pending sample, if any. It never blocks.
func (p *ServicePresenter) Tick() {
	if p == nil || p.src == nil {
		return
	}
	select {
	case s := <-p.src.Samples():
		p.model.SetService(s)
	default:
	}
}
