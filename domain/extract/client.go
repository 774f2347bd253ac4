// Package extract talks to the glasses extraction service and manages the
// lifecycle of the PNG artifacts it returns.
package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/soocke/glasses-studio/domain/selection"
)

const (
	healthPath  = "/health"
	extractPath = "/extract_glasses"
)

// Request is one extraction call.
type Request struct {
	Filename string
	Image    []byte
	Rect     selection.Rect
}

// Client is the HTTP binding of the extraction service.
type Client struct {
	base   string
	http   *http.Client
	logger *slog.Logger
}

// NewClient validates baseURL and returns a client whose calls time out
// after timeout (zero disables the client-side timeout).
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse service url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("service url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("service url %q: missing host", baseURL)
	}
	return &Client{
		base:   strings.TrimRight(u.String(), "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

// BaseURL returns the normalized service address.
func (c *Client) BaseURL() string { return c.base }

// Health probes the service. Any 2xx answer means available.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+healthPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Cache-Control", "no-store")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Op: "health", Code: resp.StatusCode}
	}
	return nil
}

// Extract uploads the image with the selection and returns the PNG payload.
// Non-2xx answers yield a *StatusError; the body is not parsed.
func (c *Client) Extract(ctx context.Context, r Request) ([]byte, error) {
	body, contentType, err := encodeForm(r)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+extractPath, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		if c.logger != nil {
			c.logger.Warn("extract.http", "status", resp.StatusCode, "elapsed", time.Since(start))
		}
		return nil, &StatusError{Op: "extract_glasses", Code: resp.StatusCode}
	}
	png, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read extract response: %w", err)
	}
	if c.logger != nil {
		c.logger.Debug("extract.http", "status", resp.StatusCode, "bytes", len(png), "elapsed", time.Since(start))
	}
	return png, nil
}

func encodeForm(r Request) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	name := r.Filename
	if name == "" {
		name = "image"
	}
	fw, err := mw.CreateFormFile("image", name)
	if err != nil {
		return nil, "", err
	}
	if _, err := fw.Write(r.Image); err != nil {
		return nil, "", err
	}
	fields := []struct {
		key string
		val int
	}{
		{"x", r.Rect.X},
		{"y", r.Rect.Y},
		{"w", r.Rect.W},
		{"h", r.Rect.H},
	}
	for _, f := range fields {
		if err := mw.WriteField(f.key, strconv.Itoa(f.val)); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}
