// Package artifact tracks in-memory binary artifacts behind revocable,
// dereferenceable handles.
package artifact

import (
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind groups handles; the studio keeps at most one live handle per kind.
type Kind string

const (
	KindSource Kind = "source"
	KindResult Kind = "result"
)

const urlPrefix = "blob:glasses-studio/"

// Handle references artifact bytes plus a URL that can be resolved while
// the handle is live. Data must be treated as read-only.
type Handle struct {
	ID        uuid.UUID
	Kind      Kind
	URL       string
	MediaType string
	Data      []byte
	Created   time.Time
}

// Size returns the payload length in bytes.
func (h *Handle) Size() int {
	if h == nil {
		return 0
	}
	return len(h.Data)
}

// Registry owns live handles. It is safe for concurrent use; the debug
// samplers read counts from their own goroutines.
type Registry struct {
	mu     sync.Mutex
	live   map[string]*Handle
	logger *slog.Logger
}

// NewRegistry returns an empty registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{live: make(map[string]*Handle), logger: logger}
}

// Create registers data under a fresh handle.
func (r *Registry) Create(kind Kind, data []byte, mediaType string) *Handle {
	id := uuid.New()
	h := &Handle{
		ID:        id,
		Kind:      kind,
		URL:       urlPrefix + id.String(),
		MediaType: mediaType,
		Data:      data,
		Created:   time.Now(),
	}
	r.mu.Lock()
	r.live[h.URL] = h
	r.mu.Unlock()
	if r.logger != nil {
		r.logger.Debug("artifact.create", "kind", kind, "url", h.URL, "bytes", len(data))
	}
	return h
}

// Release revokes h. It reports false when h was not live.
func (r *Registry) Release(h *Handle) bool {
	if r == nil || h == nil {
		return false
	}
	r.mu.Lock()
	_, ok := r.live[h.URL]
	delete(r.live, h.URL)
	r.mu.Unlock()
	if ok && r.logger != nil {
		r.logger.Debug("artifact.release", "kind", h.Kind, "url", h.URL)
	}
	return ok
}

// Resolve dereferences a live URL.
func (r *Registry) Resolve(url string) (*Handle, bool) {
	if r == nil || !strings.HasPrefix(url, urlPrefix) {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	h, ok := r.live[url]
	return h, ok
}

// Live counts live handles of kind.
func (r *Registry) Live(kind Kind) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, h := range r.live {
		if h.Kind == kind {
			n++
		}
	}
	return n
}

// LiveTotal counts all live handles.
func (r *Registry) LiveTotal() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// ReleaseAll revokes every live handle and returns how many were released.
func (r *Registry) ReleaseAll() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	n := len(r.live)
	clear(r.live)
	r.mu.Unlock()
	return n
}
