package extract

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/soocke/glasses-studio/domain/artifact"
	"github.com/soocke/glasses-studio/domain/selection"
	"github.com/soocke/glasses-studio/domain/source"
)

// Transport performs the remote extraction call.
type Transport interface {
	Extract(ctx context.Context, r Request) ([]byte, error)
}

// Gate reports the latest availability sample.
type Gate interface {
	Available() bool
}

// Completion describes one finished extraction as applied on the UI thread.
// On success Handle is the new result and Released the predecessor it
// replaced (nil for the first result). On failure only Err is set and the
// current result is left as it was.
type Completion struct {
	Seq      uint64
	Handle   *artifact.Handle
	Released *artifact.Handle
	Err      error
	Elapsed  time.Duration
}

type finished struct {
	seq     uint64
	gen     uint64
	png     []byte
	err     error
	elapsed time.Duration
}

// Extractor runs extraction requests and owns the result artifact slot.
// Extract, Drain and Invalidate must be called from the UI thread; requests
// run on their own goroutines and are handed back through Drain.
type Extractor struct {
	transport Transport
	gate      Gate
	slot      *artifact.Slot
	logger    *slog.Logger

	results chan finished
	wg      sync.WaitGroup
	seq     uint64
	gen     uint64
	pending int
}

// NewExtractor wires an extractor. slot must be of kind artifact.KindResult.
func NewExtractor(t Transport, gate Gate, slot *artifact.Slot, logger *slog.Logger) *Extractor {
	return &Extractor{
		transport: t,
		gate:      gate,
		slot:      slot,
		logger:    logger,
		results:   make(chan finished, 16),
	}
}

// Extract validates inputs and issues one request. Preconditions are checked
// in order: availability first, then image and selection. A failed
// precondition returns ErrOffline or ErrMissingInput without any network
// traffic. Overlapping calls are independent requests.
//
// ctx is the session context: cancelling it drops undelivered results but
// does not abort a request already on the wire.
func (e *Extractor) Extract(ctx context.Context, src *source.Image, rect *selection.Rect) (uint64, error) {
	if e.gate == nil || !e.gate.Available() {
		return 0, ErrOffline
	}
	if src == nil || rect == nil || len(src.Data) == 0 {
		return 0, ErrMissingInput
	}
	e.seq++
	seq, gen := e.seq, e.gen
	req := Request{Filename: src.Name, Image: src.Data, Rect: *rect}
	e.pending++
	e.wg.Add(1)
	if e.logger != nil {
		e.logger.Info("extract.start", "seq", seq, "image", src.Name, "rect", rect.String())
	}
	go func() {
		defer e.wg.Done()
		start := time.Now()
		png, err := e.transport.Extract(context.WithoutCancel(ctx), req)
		f := finished{seq: seq, gen: gen, png: png, err: err, elapsed: time.Since(start)}
		select {
		case e.results <- f:
		case <-ctx.Done():
		}
	}()
	return seq, nil
}

// Drain applies every finished request and calls fn for each one that still
// belongs to the current image. It never blocks and returns the number of
// completions reported.
func (e *Extractor) Drain(fn func(Completion)) int {
	n := 0
	for {
		select {
		case f := <-e.results:
			e.pending--
			c, ok := e.apply(f)
			if !ok {
				continue
			}
			n++
			if fn != nil {
				fn(c)
			}
		default:
			return n
		}
	}
}

func (e *Extractor) apply(f finished) (Completion, bool) {
	if f.gen != e.gen {
		if e.logger != nil {
			e.logger.Info("extract.discard", "seq", f.seq, "reason", "image replaced")
		}
		return Completion{}, false
	}
	c := Completion{Seq: f.seq, Elapsed: f.elapsed}
	if f.err != nil {
		c.Err = f.err
		if e.logger != nil {
			e.logger.Error("extract.failed", "seq", f.seq, "error", f.err, "elapsed", f.elapsed)
		}
		return c, true
	}
	c.Handle, c.Released = e.slot.Replace(f.png, "image/png")
	if e.logger != nil {
		e.logger.Info("extract.done", "seq", f.seq, "bytes", len(f.png), "url", c.Handle.URL, "elapsed", f.elapsed)
	}
	return c, true
}

// Invalidate forgets the current result and any request still in flight,
// e.g. when a new image is loaded. It returns the released handle, if any.
func (e *Extractor) Invalidate() *artifact.Handle {
	e.gen++
	return e.slot.Clear()
}

// Current returns the live result handle, or nil.
func (e *Extractor) Current() *artifact.Handle { return e.slot.Current() }

// Pending returns the number of requests not yet drained.
func (e *Extractor) Pending() int { return e.pending }

// Wait blocks until every request goroutine has returned.
func (e *Extractor) Wait() { e.wg.Wait() }
