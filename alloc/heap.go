package alloc

import (
	"os"

	"github.com/joshuapare/dequekit/internal/logger"
)

// Runtime debug flag for block-level logging - controlled by DEQUEKIT_LOG_ALLOC env var.
var logAlloc = os.Getenv("DEQUEKIT_LOG_ALLOC") != ""

// Heap is the simplest strategy: every block is a fresh Go byte slice.
// It keeps a set of live blocks so that leaks show up in Stats and so that
// Dealloc of anything it did not issue (or already released) is a no-op.
//
// Heap is not safe for concurrent use.
type Heap struct {
	live     map[*Block]struct{}
	maxBytes int64 // 0 = unlimited
	closed   bool
	stats    Stats
}

// NewHeap creates a Heap strategy. maxBytes caps the bytes that may be live at
// once; zero means unlimited.
func NewHeap(maxBytes int64) *Heap {
	return &Heap{
		live:     make(map[*Block]struct{}),
		maxBytes: maxBytes,
	}
}

// Alloc reserves size bytes on the Go heap.
func (h *Heap) Alloc(size int) (*Block, error) {
	if h.closed {
		return nil, ErrClosed
	}
	if size < 0 {
		return nil, ErrBadSize
	}
	if size > MaxBlockSize || h.maxBytes > 0 && h.stats.LiveBytes+int64(size) > h.maxBytes {
		return nil, ErrOutOfMemory
	}

	b := NewBlock(make([]byte, size))
	h.live[b] = struct{}{}
	h.stats.Allocs++
	h.stats.Live++
	h.stats.LiveBytes += int64(size)

	if logAlloc {
		logger.Debug("heap: alloc", "size", size, "live", h.stats.Live)
	}
	return b, nil
}

// Dealloc releases b if it is live in this strategy; otherwise it does nothing.
func (h *Heap) Dealloc(b *Block) {
	if _, ok := h.live[b]; !ok {
		h.stats.Ignored++
		if logAlloc {
			logger.Debug("heap: ignored dealloc of unknown block")
		}
		return
	}
	delete(h.live, b)
	h.stats.Deallocs++
	h.stats.Live--
	h.stats.LiveBytes -= int64(b.size)
	b.buf = nil
}

// Owns reports whether b is live in this strategy.
func (h *Heap) Owns(b *Block) bool {
	_, ok := h.live[b]
	return ok
}

// Stats returns a snapshot of the block accounting.
func (h *Heap) Stats() Stats {
	return h.stats
}

// Close reclaims every outstanding block. Further Alloc calls fail with ErrClosed.
func (h *Heap) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	if n := len(h.live); n > 0 {
		logger.Warn("heap: closing with live blocks", "blocks", n, "bytes", h.stats.LiveBytes)
	}
	for b := range h.live {
		b.buf = nil
		h.stats.Reclaimed++
	}
	clear(h.live)
	h.stats.Live = 0
	h.stats.LiveBytes = 0
	return nil
}

// Compile-time interface checks
var (
	_ Strategy = (*Heap)(nil)
	_ Tracker  = (*Heap)(nil)
	_ Owner    = (*Heap)(nil)
)
