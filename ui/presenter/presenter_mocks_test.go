package presenter

import (
	"context"
	"image"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/soocke/glasses-studio/domain/extract"
	"github.com/soocke/glasses-studio/domain/selection"
	"github.com/soocke/glasses-studio/domain/source"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type mockEditorView struct {
	geom      selection.Geometry
	shown     []image.Image
	selection string
}

func (v *mockEditorView) Geometry() selection.Geometry { return v.geom }
func (v *mockEditorView) ShowCanvas(img image.Image)   { v.shown = append(v.shown, img) }
func (v *mockEditorView) SetSelectionText(s string)    { v.selection = s }

type mockResultView struct {
	shown   [][]byte
	enabled bool
}

func (v *mockResultView) ShowResult(png []byte)       { v.shown = append(v.shown, png) }
func (v *mockResultView) SetDownloadEnabled(b bool) { v.enabled = b }

func (v *mockResultView) last() []byte {
	if len(v.shown) == 0 {
		return nil
	}
	return v.shown[len(v.shown)-1]
}

type mockStatusView struct {
	service  string
	online   bool
	activity string
}

func (v *mockStatusView) SetService(text string, online bool) { v.service, v.online = text, online }
func (v *mockStatusView) SetActivity(text string)             { v.activity = text }

// mockTransport answers every request with png or err.
type mockTransport struct {
	calls atomic.Int32
	last  atomic.Pointer[extract.Request]
	png   []byte
	err   error
}

func (t *mockTransport) Extract(ctx context.Context, r extract.Request) ([]byte, error) {
	t.calls.Add(1)
	t.last.Store(&r)
	return t.png, t.err
}

func fakeImage(name string, w, h int) *source.Image {
	return &source.Image{
		Name:      name,
		MediaType: "image/png",
		Data:      []byte(name),
		Pixels:    image.NewRGBA(image.Rect(0, 0, w, h)),
		Size:      image.Pt(w, h),
	}
}
