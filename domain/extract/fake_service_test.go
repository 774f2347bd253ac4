package extract

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// upload is what the fake service saw for one extraction call.
type upload struct {
	filename   string
	image      []byte
	x, y, w, h int
}

// fakeService mimics the extraction backend.
type fakeService struct {
	mu           sync.Mutex
	extractCode  int
	healthCode   int
	png          []byte
	uploads      []upload
	healthProbes int
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	fs := &fakeService{extractCode: http.StatusOK, healthCode: http.StatusOK, png: []byte("\x89PNG-fake")}
	r := gin.New()
	r.GET("/health", func(c *gin.Context) {
		fs.mu.Lock()
		fs.healthProbes++
		code := fs.healthCode
		fs.mu.Unlock()
		if code != http.StatusOK {
			c.Status(code)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/extract_glasses", func(c *gin.Context) {
		fh, err := c.FormFile("image")
		if err != nil {
			c.Status(http.StatusUnprocessableEntity)
			return
		}
		f, err := fh.Open()
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		u := upload{filename: fh.Filename, image: data}
		for key, dst := range map[string]*int{"x": &u.x, "y": &u.y, "w": &u.w, "h": &u.h} {
			v, err := strconv.Atoi(c.PostForm(key))
			if err != nil {
				c.Status(http.StatusUnprocessableEntity)
				return
			}
			*dst = v
		}
		fs.mu.Lock()
		fs.uploads = append(fs.uploads, u)
		code, png := fs.extractCode, fs.png
		fs.mu.Unlock()
		if code != http.StatusOK {
			c.Status(code)
			return
		}
		c.Data(http.StatusOK, "image/png", png)
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return fs, srv
}

func (fs *fakeService) calls() []upload {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]upload(nil), fs.uploads...)
}

func (fs *fakeService) set(extractCode int, png []byte) {
	fs.mu.Lock()
	fs.extractCode = extractCode
	if png != nil {
		fs.png = png
	}
	fs.mu.Unlock()
}
