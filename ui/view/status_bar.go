package view

import (
	"github.com/soocke/glasses-studio/ui/theme"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// StatusBar shows service availability, the activity line and the
// selection readout.
type StatusBar struct {
	serviceLbl   *TLabelWidget
	activityLbl  *TLabelWidget
	selectionLbl *TLabelWidget
}

// NewStatusBar places the service label in header at (0, col) and the
// activity and selection labels in body starting at row.
func NewStatusBar(header *FrameWidget, col int, body *FrameWidget, row int) *StatusBar {
	s := &StatusBar{
		serviceLbl:   TLabel(Txt(""), Style(theme.StyleOfflineLabel)),
		activityLbl:  TLabel(Txt(""), Style(theme.StyleMutedLabel), Wraplength("120m")),
		selectionLbl: TLabel(Txt(""), Style(theme.StyleMutedLabel)),
	}
	Grid(s.serviceLbl, In(header), Row(0), Column(col), Sticky("e"), Padx("0.4m"))
	Grid(s.activityLbl, In(body), Row(row), Column(0), Columnspan(4), Sticky("w"), Padx("0.4m"))
	Grid(s.selectionLbl, In(body), Row(row+1), Column(0), Columnspan(4), Sticky("w"), Padx("0.4m"))
	return s
}

func (s *StatusBar) SetService(text string, online bool) {
	if s == nil || s.serviceLbl == nil {
		return
	}
	style := theme.StyleOfflineLabel
	if online {
		style = theme.StyleOnlineLabel
	}
	s.serviceLbl.Configure(Txt(text), Style(style))
}

func (s *StatusBar) SetActivity(text string) {
	if s != nil && s.activityLbl != nil {
		s.activityLbl.Configure(Txt(text))
	}
}

func (s *StatusBar) SetSelectionText(text string) {
	if s != nil && s.selectionLbl != nil {
		s.selectionLbl.Configure(Txt("Selection: " + text))
	}
}
