package presenter

import (
	"context"
	"errors"
	"image"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/glasses-studio/domain/artifact"
	"github.com/soocke/glasses-studio/domain/extract"
	"github.com/soocke/glasses-studio/domain/health"
	"github.com/soocke/glasses-studio/domain/render"
	"github.com/soocke/glasses-studio/domain/selection"
	"github.com/soocke/glasses-studio/domain/source"
	"github.com/soocke/glasses-studio/ui/model"
)

type studioFixture struct {
	model   *model.StudioModel
	reg     *artifact.Registry
	ex      *extract.Extractor
	tr      *mockTransport
	editor  *EditorPresenter
	extract *ExtractPresenter
	ev      *mockEditorView
	rv      *mockResultView
	sv      *mockStatusView
}

func newStudio(t *testing.T) *studioFixture {
	t.Helper()
	f := &studioFixture{
		model: model.NewStudioModel(),
		reg:   artifact.NewRegistry(discard),
		tr:    &mockTransport{png: []byte("\x89PNG-result")},
		ev:    &mockEditorView{},
		rv:    &mockResultView{},
		sv:    &mockStatusView{},
	}
	f.ex = extract.NewExtractor(f.tr, f.model, artifact.NewSlot(f.reg, artifact.KindResult), discard)
	NewStatusPresenter(f.model, f.sv)
	f.editor = NewEditorPresenter(f.model, selection.NewController(discard), render.NewRenderer(render.DefaultStyle()),
		artifact.NewSlot(f.reg, artifact.KindSource), f.ex, f.ev, discard)
	f.editor.load = func(path string) (*source.Image, error) { return fakeImage(filepath.Base(path), 800, 600), nil }
	f.extract = NewExtractPresenter(context.Background(), f.model, f.ex, f.rv, t.TempDir(), "glasses.png", discard)
	return f
}

func (f *studioFixture) online(b bool) {
	s := health.Sample{Status: health.StatusOffline}
	if b {
		s.Status = health.StatusOnline
	}
	f.model.SetService(s)
}

func (f *studioFixture) finish() {
	f.ex.Wait()
	f.extract.Tick()
}

func TestStudio_DragAndExtract(t *testing.T) {
	f := newStudio(t)
	f.online(true)
	if err := f.editor.LoadFile("/photos/face.png"); err != nil {
		t.Fatalf("load: %v", err)
	}
	// 800x600 image drawn at 400x300
	f.ev.geom = selection.Geometry{Displayed: selection.Size{W: 400, H: 300}, Intrinsic: image.Pt(800, 600)}

	f.editor.PointerDown(image.Pt(50, 50))
	f.editor.PointerMove(image.Pt(150, 125))
	f.editor.PointerUp()

	r := f.model.Rect()
	if r == nil || *r != (selection.Rect{X: 100, Y: 100, W: 200, H: 150}) {
		t.Fatalf("unexpected rect %+v", r)
	}
	if f.ev.selection != "100,100 200×150" {
		t.Fatalf("unexpected readout %q", f.ev.selection)
	}

	if err := f.extract.Extract(); err != nil {
		t.Fatalf("extract: %v", err)
	}
	if f.sv.activity != StatusExtracting {
		t.Fatalf("expected extracting status, got %q", f.sv.activity)
	}
	f.finish()

	req := f.tr.last.Load()
	if req == nil || req.Rect != *r || req.Filename != "face.png" {
		t.Fatalf("unexpected request %+v", req)
	}
	h := f.model.Result()
	if h == nil || string(f.rv.last()) != "\x89PNG-result" || !f.rv.enabled {
		t.Fatalf("result not shown")
	}
	if _, ok := f.reg.Resolve(h.URL); !ok {
		t.Fatalf("result handle not live")
	}
	if f.sv.activity != extractDoneText(h.Size()) {
		t.Fatalf("unexpected status %q", f.sv.activity)
	}
}

func TestStudio_OfflineExtractMakesNoRequest(t *testing.T) {
	f := newStudio(t)
	f.online(false)
	f.editor.LoadFile("a.png")
	f.ev.geom = selection.Geometry{Displayed: selection.Size{W: 800, H: 600}, Intrinsic: image.Pt(800, 600)}
	f.editor.PointerDown(image.Pt(10, 10))
	f.editor.PointerMove(image.Pt(50, 50))

	err := f.extract.Extract()
	if !errors.Is(err, extract.ErrOffline) {
		t.Fatalf("expected ErrOffline, got %v", err)
	}
	f.finish()
	if f.tr.calls.Load() != 0 || f.model.Result() != nil {
		t.Fatalf("offline extract produced a request or result")
	}
	if f.sv.activity != StatusNeedService || f.sv.service != StatusOffline || f.sv.online {
		t.Fatalf("unexpected status %q / %q", f.sv.activity, f.sv.service)
	}
}

func TestStudio_MissingSelectionShowsHint(t *testing.T) {
	f := newStudio(t)
	f.online(true)
	f.editor.LoadFile("a.png")
	if err := f.extract.Extract(); !errors.Is(err, extract.ErrMissingInput) {
		t.Fatalf("expected ErrMissingInput, got %v", err)
	}
	if f.sv.activity != StatusHint || f.tr.calls.Load() != 0 {
		t.Fatalf("unexpected status %q", f.sv.activity)
	}
}

func TestStudio_FailureReportsStatusCode(t *testing.T) {
	f := newStudio(t)
	f.online(true)
	f.tr.err = &extract.StatusError{Op: "extract_glasses", Code: http.StatusInternalServerError}
	f.editor.LoadFile("a.png")
	f.ev.geom = selection.Geometry{Displayed: selection.Size{W: 800, H: 600}, Intrinsic: image.Pt(800, 600)}
	f.editor.PointerDown(image.Pt(1, 1))
	f.extract.Extract()
	f.finish()
	if f.sv.activity != "Extract failed: 500" {
		t.Fatalf("unexpected status %q", f.sv.activity)
	}
	if f.model.Result() != nil {
		t.Fatalf("failure must not produce a result")
	}
}

func TestStudio_NewImageReleasesHandlesAndClearsSelection(t *testing.T) {
	f := newStudio(t)
	f.online(true)
	f.editor.LoadFile("a.png")
	f.ev.geom = selection.Geometry{Displayed: selection.Size{W: 800, H: 600}, Intrinsic: image.Pt(800, 600)}
	f.editor.PointerDown(image.Pt(1, 1))
	f.extract.Extract()
	f.finish()
	first := f.model.SourceHandle()
	result := f.model.Result()

	f.editor.LoadFile("b.png")
	if f.model.Rect() != nil || f.ev.selection != StatusNoSelection {
		t.Fatalf("new image must clear the selection")
	}
	if f.model.Result() != nil || f.rv.last() != nil || f.rv.enabled {
		t.Fatalf("new image must clear the result")
	}
	for _, h := range []*artifact.Handle{first, result} {
		if _, ok := f.reg.Resolve(h.URL); ok {
			t.Fatalf("handle %s still live", h.URL)
		}
	}
	if f.reg.Live(artifact.KindSource) != 1 || f.reg.Live(artifact.KindResult) != 0 {
		t.Fatalf("unexpected live handles: %d source, %d result", f.reg.Live(artifact.KindSource), f.reg.Live(artifact.KindResult))
	}
}

func TestEditor_FlushOnlyWhenDirty(t *testing.T) {
	f := newStudio(t)
	f.editor.Flush()
	if len(f.ev.shown) != 1 || f.ev.shown[0] != nil {
		t.Fatalf("expected placeholder on first flush, got %d", len(f.ev.shown))
	}
	f.editor.Flush()
	if len(f.ev.shown) != 1 {
		t.Fatalf("clean flush should not redraw")
	}
	f.editor.LoadFile("a.png")
	f.editor.Flush()
	if len(f.ev.shown) != 2 || f.ev.shown[1].Bounds().Dx() != 800 {
		t.Fatalf("expected 800px surface after load")
	}
	f.editor.Redraw()
	f.editor.Flush()
	if len(f.ev.shown) != 3 {
		t.Fatalf("Redraw should force a flush")
	}
}

func TestEditor_PointerIgnoredWithoutImage(t *testing.T) {
	f := newStudio(t)
	f.ev.geom = selection.Geometry{Displayed: selection.Size{W: 10, H: 10}, Intrinsic: image.Pt(10, 10)}
	f.editor.PointerDown(image.Pt(1, 1))
	if f.model.Rect() != nil {
		t.Fatalf("selection started without an image")
	}
}

func TestEditor_LoadErrorKeepsState(t *testing.T) {
	f := newStudio(t)
	f.editor.LoadFile("a.png")
	before := f.model.SourceHandle()
	f.editor.load = func(string) (*source.Image, error) { return nil, source.ErrEmpty }
	if err := f.editor.LoadFile("bad.png"); !errors.Is(err, source.ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	if f.model.SourceHandle() != before {
		t.Fatalf("failed load replaced the source")
	}
}

func TestExtract_DownloadWritesFile(t *testing.T) {
	f := newStudio(t)
	if _, err := f.extract.Download(); !errors.Is(err, ErrNoResult) {
		t.Fatalf("expected ErrNoResult, got %v", err)
	}
	f.online(true)
	f.editor.LoadFile("a.png")
	f.ev.geom = selection.Geometry{Displayed: selection.Size{W: 800, H: 600}, Intrinsic: image.Pt(800, 600)}
	f.editor.PointerDown(image.Pt(1, 1))
	f.extract.Extract()
	f.finish()
	path, err := f.extract.Download()
	if err != nil {
		t.Fatalf("download: %v", err)
	}
	if filepath.Base(path) != "glasses.png" {
		t.Fatalf("unexpected file name %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "\x89PNG-result" {
		t.Fatalf("unexpected file content %q (%v)", data, err)
	}
}

type sampleChan chan health.Sample

func (c sampleChan) Samples() <-chan health.Sample { return c }

func TestServicePresenter_TickAppliesSample(t *testing.T) {
	m := model.NewStudioModel()
	sv := &mockStatusView{}
	NewStatusPresenter(m, sv)
	if sv.service != StatusChecking {
		t.Fatalf("expected checking before first sample, got %q", sv.service)
	}
	ch := make(sampleChan, 1)
	p := NewServicePresenter(m, ch)
	p.Tick()
	if sv.service != StatusChecking {
		t.Fatalf("empty tick changed status")
	}
	ch <- health.Sample{Status: health.StatusOnline}
	p.Tick()
	if sv.service != StatusOnline || !sv.online || !m.Available() {
		t.Fatalf("online sample not applied: %q", sv.service)
	}
}

func TestLoop_NilSafe(t *testing.T) {
	var l *Loop
	l.Tick()
	n := 0
	(&Loop{Schedule: func() { n++ }}).Tick()
	if n != 1 {
		t.Fatalf("schedule not called")
	}
}
