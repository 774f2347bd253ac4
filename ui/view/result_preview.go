package view

import (
	"log/slog"

	"github.com/soocke/glasses-studio/ui/images"
	"github.com/soocke/glasses-studio/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// ResultPreview shows the extracted PNG over a checkerboard and owns the
// download button.
type ResultPreview struct {
	label    *LabelWidget
	download *TButtonWidget
	photo    *Img
	maxW     int
	maxH     int
	logger   *slog.Logger
}

// NewResultPreview builds the preview column inside parent.
func NewResultPreview(parent *FrameWidget, maxW, maxH int, onDownload func(), logger *slog.Logger) *ResultPreview {
	v := &ResultPreview{maxW: maxW, maxH: maxH, logger: logger}
	Grid(TLabel(Txt("Result"), Style(theme.StyleTitleLabel)), In(parent), Row(0), Column(0), Sticky("w"))
	v.photo = NewPhoto(Data(images.EncodePNG(images.Checkerboard(maxW, maxH/2, 8))))
	v.label = Label(Image(v.photo), Borderwidth(1), Relief("sunken"), Background(theme.ColorSurface))
	Grid(v.label, In(parent), Row(1), Column(0), Sticky("nwe"), Padx("0.4m"), Pady("0.4m"))
	v.download = TButton(Txt("Download PNG"), Style(theme.StylePrimaryButton), Command(onDownload))
	Grid(v.download, In(parent), Row(2), Column(0), Sticky("we"), Padx("0.4m"), Pady("0.4m"))
	v.SetDownloadEnabled(false)
	return v
}

// ShowResult decodes and displays png; nil shows an empty board.
func (v *ResultPreview) ShowResult(png []byte) {
	if v == nil || v.label == nil {
		return
	}
	data := images.EncodePNG(images.Checkerboard(v.maxW, v.maxH/2, 8))
	if png != nil {
		preview, err := images.PreviewPNG(png, v.maxW, v.maxH)
		if err != nil {
			if v.logger != nil {
				v.logger.Error("result.preview", "error", err)
			}
		} else {
			data = preview
		}
	}
	if v.photo != nil {
		v.photo.Delete()
	}
	v.photo = NewPhoto(Data(data))
	v.label.Configure(Image(v.photo))
}

func (v *ResultPreview) SetDownloadEnabled(enabled bool) {
	if v == nil || v.download == nil {
		return
	}
	if enabled {
		v.download.Configure(State("normal"))
	} else {
		v.download.Configure(State("disabled"))
	}
}
