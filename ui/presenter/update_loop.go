package presenter

// Loop aggregates feature presenters and drives periodic updates.
//
// Each tick drains service samples and extraction completions, flushes the
// canvas and then invokes the scheduler callback. The zero value is usable
// (methods are nil-safe).
type Loop struct {
	Service  *ServicePresenter
	Extract  *ExtractPresenter
	Editor   *EditorPresenter
	Schedule func()
}

func NewLoop(svc *ServicePresenter, ex *ExtractPresenter, ed *EditorPresenter, schedule func()) *Loop {
	return &Loop{Service: svc, Extract: ex, Editor: ed, Schedule: schedule}
}

func (l *Loop) Tick() {
	if l == nil {
		return
	}
	if l.Service != nil {
		l.Service.Tick()
	}
	if l.Extract != nil {
		l.Extract.Tick()
	}
	if l.Editor != nil {
		l.Editor.Flush()
	}
	if l.Schedule != nil {
		l.Schedule()
	}
}
