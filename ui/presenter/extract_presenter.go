package presenter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/soocke/glasses-studio/domain/extract"
	"github.com/soocke/glasses-studio/ui/model"
)

// ErrNoResult is returned by Download when nothing has been extracted.
var ErrNoResult = errors.New("no extracted image")

// ResultView shows the extracted PNG.
type ResultView interface {
	// ShowResult displays png; nil shows the placeholder.
	ShowResult(png []byte)
	SetDownloadEnabled(bool)
}

// ExtractPresenter issues extractions and applies their completions.
type ExtractPresenter struct {
	ctx    context.Context
	model  *model.StudioModel
	ex     *extract.Extractor
	view   ResultView
	logger *slog.Logger

	downloadDir  string
	downloadName string
}

// NewExtractPresenter binds the result view to the model. ctx is the session
// context handed to every request.
func NewExtractPresenter(ctx context.Context, m *model.StudioModel, ex *extract.Extractor, view ResultView, downloadDir, downloadName string, logger *slog.Logger) *ExtractPresenter {
	p := &ExtractPresenter{ctx: ctx, model: m, ex: ex, view: view, logger: logger, downloadDir: downloadDir, downloadName: downloadName}
	m.Subscribe(p.onChange)
	p.onChange(model.ChangeResult)
	return p
}

func (p *ExtractPresenter) onChange(c model.Change) {
	if c != model.ChangeResult || p.view == nil {
		return
	}
	h := p.model.Result()
	if h == nil {
		p.view.ShowResult(nil)
		p.view.SetDownloadEnabled(false)
		return
	}
	p.view.ShowResult(h.Data)
	p.view.SetDownloadEnabled(true)
}

// Extract sends the current image and selection. Precondition failures only
// update the status line.
func (p *ExtractPresenter) Extract() error {
	_, err := p.ex.Extract(p.ctx, p.model.Source(), p.model.Rect())
	if err != nil {
		p.model.SetActivity(preconditionText(err))
		return err
	}
	p.model.SetActivity(StatusExtracting)
	return nil
}

// Tick applies finished extractions. Results arrive in completion order and
// each success replaces the previous one.
func (p *ExtractPresenter) Tick() {
	if p == nil || p.ex == nil {
		return
	}
	p.ex.Drain(func(c extract.Completion) {
		if c.Err != nil {
			p.model.SetActivity(extractFailedText(c.Err))
			return
		}
		p.model.SetResult(c.Handle)
		p.model.SetActivity(extractDoneText(c.Handle.Size()))
	})
}

// Download writes the current result into the download directory and
// returns the written path.
func (p *ExtractPresenter) Download() (string, error) {
	h := p.model.Result()
	if h == nil {
		return "", ErrNoResult
	}
	dir := p.downloadDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("download dir: %w", err)
	}
	path := filepath.Join(dir, p.downloadName)
	if err := os.WriteFile(path, h.Data, 0o644); err != nil {
		p.model.SetActivity("Save failed: " + err.Error())
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	p.model.SetActivity(fmt.Sprintf("Saved %s (%s).", path, humanize.Bytes(uint64(h.Size()))))
	if p.logger != nil {
		p.logger.Info("result.saved", "path", path, "bytes", h.Size(), "url", h.URL)
	}
	return path, nil
}
