package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/soocke/glasses-studio/config"
	"github.com/soocke/glasses-studio/domain/artifact"
	"github.com/soocke/glasses-studio/domain/extract"
	"github.com/soocke/glasses-studio/domain/health"
	"github.com/soocke/glasses-studio/domain/render"
	"github.com/soocke/glasses-studio/domain/selection"
	"github.com/soocke/glasses-studio/ui/model"
	"github.com/soocke/glasses-studio/ui/presenter"
)

// Container assembles models, services, presenters and the root view.
type AppContainer struct {
	Config     *config.Config
	Logger     *slog.Logger
	Registry   *artifact.Registry
	Model      *model.StudioModel
	Client     *extract.Client
	Monitor    *health.Monitor
	Extractor  *extract.Extractor
	Controller *selection.Controller

	// Presenters
	Editor  *presenter.EditorPresenter
	Extract *presenter.ExtractPresenter
	Service *presenter.ServicePresenter
	Status  *presenter.StatusPresenter
	Loop    *presenter.Loop

	ctx    context.Context
	cancel context.CancelFunc
}

// BuildContainer constructs the toolkit independent components. Nothing is
// started yet.
func BuildContainer(cfg *config.Config, logger *slog.Logger) (*AppContainer, error) {
	client, err := extract.NewClient(cfg.ServiceURL, cfg.RequestTimeout(), logger)
	if err != nil {
		return nil, fmt.Errorf("extraction client: %w", err)
	}
	c := &AppContainer{Config: cfg, Logger: logger, Client: client}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.Registry = artifact.NewRegistry(logger)
	c.Model = model.NewStudioModel()
	c.Model.SetActivity(presenter.StatusHint)
	c.Monitor = health.NewMonitor(client, cfg.HealthInterval(), logger)
	// The model mirrors the latest sample on the UI thread, so it gates
	// extraction with exactly what the user sees.
	c.Extractor = extract.NewExtractor(client, c.Model, artifact.NewSlot(c.Registry, artifact.KindResult), logger)
	c.Controller = selection.NewController(logger)
	return c, nil
}

// Bind wires presenters to the views. schedule re-arms the UI timer.
func (c *AppContainer) Bind(editor presenter.EditorView, status presenter.StatusView, result presenter.ResultView, schedule func()) {
	c.Status = presenter.NewStatusPresenter(c.Model, status)
	c.Service = presenter.NewServicePresenter(c.Model, c.Monitor)
	c.Editor = presenter.NewEditorPresenter(c.Model, c.Controller, render.NewRenderer(render.DefaultStyle()),
		artifact.NewSlot(c.Registry, artifact.KindSource), c.Extractor, editor, c.Logger)
	c.Extract = presenter.NewExtractPresenter(c.ctx, c.Model, c.Extractor, result, c.Config.DownloadDir, c.Config.DownloadName, c.Logger)
	c.Loop = presenter.NewLoop(c.Service, c.Extract, c.Editor, schedule)
}

// Context is the session context; it is cancelled by Shutdown.
func (c *AppContainer) Context() context.Context { return c.ctx }

// Shutdown stops polling, drops undelivered results and revokes every handle.
func (c *AppContainer) Shutdown() {
	c.Monitor.Stop()
	c.cancel()
	n := c.Registry.ReleaseAll()
	if c.Logger != nil {
		c.Logger.Info("session.closed", "released", n, "pending", c.Extractor.Pending())
	}
}
