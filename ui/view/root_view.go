package view

import (
	"image"
	"log/slog"

	"github.com/soocke/glasses-studio/config"
	"github.com/soocke/glasses-studio/domain/selection"
	"github.com/soocke/glasses-studio/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Handlers are the user actions wired by the application.
type Handlers struct {
	OnOpen      func(path string)
	OnCapture   func()
	OnExtract   func()
	OnReset     func()
	OnDownload  func()
	OnExit      func()
	PointerDown func(image.Point)
	PointerMove func(image.Point)
	PointerUp   func()
}

// RootView composes the top-level application layout and wires UI callbacks.
// It satisfies the editor, status and result view contracts of the presenters
// by delegating to its subviews.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	// Subviews
	Canvas *EditorCanvas
	Status *StatusBar
	Result *ResultPreview
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout: a header row, the editor column and the
// result column.
func (rv *RootView) Build(h Handlers) {
	if rv == nil {
		return
	}
	GridColumnConfigure(App, 0, Weight(1))
	GridRowConfigure(App, 1, Weight(1))

	// Row 0: title and service status
	header := Frame(Background(theme.CurrentPalette().AppBg))
	Grid(header, Row(0), Column(0), Columnspan(2), Sticky("we"), Padx("1m"), Pady("0.5m"))
	GridColumnConfigure(header.Window, 0, Weight(1))
	Grid(TLabel(Txt("Glasses Studio"), Style(theme.StyleTitleLabel)), In(header), Row(0), Column(0), Sticky("w"))
	Grid(TButton(Txt("Exit"), Style(theme.StyleGhostButton), Command(h.OnExit)), In(header), Row(0), Column(2), Sticky("e"), Padx("0.4m"))

	// Row 1, column 0: editor
	editor := Frame(Background(theme.CurrentPalette().AppBg))
	Grid(editor, Row(1), Column(0), Sticky("nwe"), Padx("1m"), Pady("0.5m"))
	rv.Canvas = NewEditorCanvas(editor, 0, rv.cfg.CanvasMaxW, rv.cfg.CanvasMaxH)
	rv.Canvas.BindPointer(h.PointerDown, h.PointerMove, h.PointerUp)

	buttons := []struct {
		text  string
		style string
		fn    func()
	}{
		{"Upload photo", theme.StyleGhostButton, func() { rv.chooseFile(h.OnOpen) }},
		{"Capture screen", theme.StyleGhostButton, h.OnCapture},
		{"Extract PNG", theme.StylePrimaryButton, h.OnExtract},
		{"Reset rect", theme.StyleGhostButton, h.OnReset},
	}
	for i, b := range buttons {
		Grid(TButton(Txt(b.text), Style(b.style), Command(b.fn)), In(editor), Row(1), Column(i), Sticky("we"), Padx("0.2m"), Pady("0.4m"))
	}
	rv.Status = NewStatusBar(header, 1, editor, 2)

	// Row 1, column 1: result
	result := Frame(Background(theme.CurrentPalette().AppBg))
	Grid(result, Row(1), Column(1), Sticky("nwe"), Padx("1m"), Pady("0.5m"))
	rv.Result = NewResultPreview(result, rv.cfg.PreviewMaxW, rv.cfg.PreviewMaxH, h.OnDownload, rv.logger)
}

func (rv *RootView) chooseFile(open func(string)) {
	files := GetOpenFile(Title("Choose a photo"), Filetypes([]FileType{
		{TypeName: "Images", Extensions: []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}},
		{TypeName: "All files", Extensions: []string{"*"}},
	}))
	if len(files) == 0 || files[0] == "" {
		return
	}
	open(files[0])
}

// --- EditorView contract ---

func (rv *RootView) Geometry() selection.Geometry {
	if rv == nil || rv.Canvas == nil {
		return selection.Geometry{}
	}
	return rv.Canvas.Geometry()
}

func (rv *RootView) ShowCanvas(img image.Image) {
	if rv != nil {
		rv.Canvas.ShowCanvas(img)
	}
}

func (rv *RootView) SetSelectionText(text string) {
	if rv != nil {
		rv.Status.SetSelectionText(text)
	}
}

// --- StatusView contract ---

func (rv *RootView) SetService(text string, online bool) {
	if rv != nil {
		rv.Status.SetService(text, online)
	}
}

func (rv *RootView) SetActivity(text string) {
	if rv != nil {
		rv.Status.SetActivity(text)
	}
}

// --- ResultView contract ---

func (rv *RootView) ShowResult(png []byte) {
	if rv != nil {
		rv.Result.ShowResult(png)
	}
}

func (rv *RootView) SetDownloadEnabled(enabled bool) {
	if rv != nil {
		rv.Result.SetDownloadEnabled(enabled)
	}
}
