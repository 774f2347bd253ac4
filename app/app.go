package app

import (
	"fmt"
	"image"
	"log/slog"
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/glasses-studio/config"
	"github.com/soocke/glasses-studio/debug"
	"github.com/soocke/glasses-studio/ui/theme"
	"github.com/soocke/glasses-studio/ui/view"
)

const (
	tick = 50 * time.Millisecond
)

type app struct {
	config  *config.Config
	logger  *slog.Logger
	c       *AppContainer
	root    *view.RootView
	afterID string
}

func NewApp(title string, cfg *config.Config, logger *slog.Logger) (*app, error) {
	c, err := BuildContainer(cfg, logger)
	if err != nil {
		return nil, err
	}
	a := &app{config: cfg, logger: logger, c: c}

	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", a.exitHandler)
	WmGeometry(App, fmt.Sprintf("%dx%d+100+100", cfg.WindowW, cfg.WindowH))
	return a, nil
}

// Start builds the UI, starts polling and runs the Tk event loop. initial,
// when set, is loaded as the first photo.
func (a *app) Start(initial string) {
	theme.InitStyles()
	a.root = view.NewRootView(a.config, a.logger)
	a.root.Build(view.Handlers{
		OnOpen:      func(path string) { _ = a.c.Editor.LoadFile(path) },
		OnCapture:   func() { _ = a.c.Editor.CaptureScreen() },
		OnExtract:   func() { _ = a.c.Extract.Extract() },
		OnReset:     func() { a.c.Editor.ResetSelection() },
		OnDownload:  a.download,
		OnExit:      a.exitHandler,
		PointerDown: func(p image.Point) { a.c.Editor.PointerDown(p) },
		PointerMove: func(p image.Point) { a.c.Editor.PointerMove(p) },
		PointerUp:   func() { a.c.Editor.PointerUp() },
	})
	a.c.Bind(a.root, a.root, a.root, a.scheduleUpdate)

	a.c.Monitor.Start(a.c.Context())
	if a.config.Debug {
		debug.StartGoroutineLogger(a.c.Context(), 5*time.Second, a.logger)
		debug.StartMemLogger(a.c.Context(), 5*time.Second, a.logger, a.c.Registry)
	}
	if initial != "" {
		_ = a.c.Editor.LoadFile(initial)
	}

	// Kick off update loop.
	a.scheduleUpdate()

	App.Wait()
}

func (a *app) download() {
	path, err := a.c.Extract.Download()
	if err != nil {
		a.logger.Error("result.download", "error", err)
		return
	}
	a.logger.Debug("result.download", "path", path)
}

func (a *app) exitHandler() {
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
		a.afterID = ""
	}
	a.c.Shutdown()
	Destroy(App)
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(tick, func() { a.c.Loop.Tick() })
}
