package alloc

import (
	"io"

	"github.com/joshuapare/dequekit/internal/logger"
)

// Shared is a reference-counted handle to one Strategy. Every allocator and
// container that uses the strategy holds one reference; when the last one is
// released the strategy is closed (if it implements io.Closer), which
// reclaims anything still outstanding.
//
// Shared is not safe for concurrent use. Callers sharing a strategy between
// containers must serialize access themselves.
type Shared struct {
	s    Strategy
	refs int
}

// Share wraps s in a handle holding one reference, owned by the caller.
func Share(s Strategy) (*Shared, error) {
	if s == nil {
		return nil, ErrNilStrategy
	}
	return &Shared{s: s, refs: 1}, nil
}

// MustShare is like Share but panics on a nil strategy.
func MustShare(s Strategy) *Shared {
	h, err := Share(s)
	if err != nil {
		panic(err)
	}
	return h
}

// Strategy returns the underlying strategy, or nil once fully released.
func (h *Shared) Strategy() Strategy {
	if h == nil || h.refs == 0 {
		return nil
	}
	return h.s
}

// Refs reports the number of outstanding references.
func (h *Shared) Refs() int {
	if h == nil {
		return 0
	}
	return h.refs
}

// Retain adds a reference and returns h for chaining.
func (h *Shared) Retain() *Shared {
	if h != nil && h.refs > 0 {
		h.refs++
	}
	return h
}

// Release drops one reference. Dropping the last one closes the strategy.
func (h *Shared) Release() error {
	if h == nil || h.refs == 0 {
		return ErrHandleReleased
	}
	h.refs--
	if h.refs > 0 {
		return nil
	}
	logger.Debug("alloc: last strategy reference released", "outstanding", Outstanding(h.s))
	if c, ok := h.s.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
