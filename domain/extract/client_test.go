package extract

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/soocke/glasses-studio/domain/selection"
)

func TestNewClient_RejectsBadURLs(t *testing.T) {
	for _, u := range []string{"", "127.0.0.1:8000", "ftp://host", "http://"} {
		if _, err := NewClient(u, time.Second, nil); err == nil {
			t.Fatalf("expected error for %q", u)
		}
	}
	c, err := NewClient("http://127.0.0.1:8000/", time.Second, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.BaseURL() != "http://127.0.0.1:8000" {
		t.Fatalf("trailing slash not trimmed: %q", c.BaseURL())
	}
}

func TestClient_ExtractSendsMultipartFields(t *testing.T) {
	fs, srv := newFakeService(t)
	c, err := NewClient(srv.URL, 5*time.Second, discardLogger)
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	img := []byte("raw-jpeg-bytes")
	png, err := c.Extract(context.Background(), Request{
		Filename: "frames.jpg",
		Image:    img,
		Rect:     selection.Rect{X: 100, Y: 100, W: 200, H: 150},
	})
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if string(png) != "\x89PNG-fake" {
		t.Fatalf("unexpected payload %q", png)
	}
	calls := fs.calls()
	if len(calls) != 1 {
		t.Fatalf("expected 1 upload, got %d", len(calls))
	}
	u := calls[0]
	if u.filename != "frames.jpg" || !bytes.Equal(u.image, img) {
		t.Fatalf("unexpected upload file %q %q", u.filename, u.image)
	}
	if u.x != 100 || u.y != 100 || u.w != 200 || u.h != 150 {
		t.Fatalf("unexpected fields %+v", u)
	}
}

func TestClient_ExtractNonOKCarriesStatus(t *testing.T) {
	fs, srv := newFakeService(t)
	fs.set(http.StatusInternalServerError, nil)
	c, _ := NewClient(srv.URL, 5*time.Second, discardLogger)
	_, err := c.Extract(context.Background(), Request{Image: []byte("x"), Rect: selection.Rect{W: 1, H: 1}})
	code, ok := StatusCode(err)
	if !ok || code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %v", err)
	}
}

func TestClient_Health(t *testing.T) {
	fs, srv := newFakeService(t)
	c, _ := NewClient(srv.URL, time.Second, nil)
	if err := c.Health(context.Background()); err != nil {
		t.Fatalf("healthy service reported %v", err)
	}
	fs.mu.Lock()
	fs.healthCode = http.StatusServiceUnavailable
	fs.mu.Unlock()
	if code, ok := StatusCode(c.Health(context.Background())); !ok || code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 status error")
	}
	srv.Close()
	if err := c.Health(context.Background()); err == nil {
		t.Fatalf("closed server should be unavailable")
	}
}
