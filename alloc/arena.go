package alloc

import (
	"math"

	"github.com/joshuapare/dequekit/internal/logger"
)

// DefaultArenaSize is the mapping size used when Options.ArenaSize is zero.
const DefaultArenaSize = 1 << 20 // 1MB

// arenaAlign is the alignment of every block handed out by Arena.
const arenaAlign = 8

// Arena carves blocks out of a single anonymous memory mapping.
// Allocation bumps a pointer through the mapping; released ranges go onto
// exact-size free lists and are reused before the bump pointer advances.
// When neither source can satisfy a request Alloc fails with ErrOutOfMemory;
// the arena never grows.
//
// Bytes views handed out by an Arena become invalid after Close unmaps the
// region; Close clears them on every live block.
//
// Arena is not safe for concurrent use.
type Arena struct {
	region []byte
	top    int           // bump pointer: next unused offset
	free   map[int][]int // aligned size -> released offsets
	live   map[*Block]struct{}
	closed bool
	stats  Stats
}

// NewArena maps size bytes of anonymous memory and returns an arena over it.
func NewArena(size int) (*Arena, error) {
	if size <= 0 || size > math.MaxInt-arenaAlign {
		return nil, ErrBadSize
	}
	region, err := mapRegion(alignUp(size))
	if err != nil {
		return nil, err
	}
	return &Arena{
		region: region,
		free:   make(map[int][]int),
		live:   make(map[*Block]struct{}),
	}, nil
}

func alignUp(n int) int {
	return (n + arenaAlign - 1) &^ (arenaAlign - 1)
}

// Alloc reserves size bytes inside the mapping.
func (a *Arena) Alloc(size int) (*Block, error) {
	if a.closed {
		return nil, ErrClosed
	}
	if size < 0 {
		return nil, ErrBadSize
	}

	if size > len(a.region) {
		return nil, ErrOutOfMemory
	}

	need := alignUp(max(size, 1))
	off := -1
	if list := a.free[need]; len(list) > 0 {
		off = list[len(list)-1]
		a.free[need] = list[:len(list)-1]
		clear(a.region[off : off+need])
	} else if a.top+need <= len(a.region) {
		off = a.top
		a.top += need
	} else {
		return nil, ErrOutOfMemory
	}

	b := &Block{buf: a.region[off : off+size : off+need], size: size, class: -1, off: off}
	a.live[b] = struct{}{}
	a.stats.Allocs++
	a.stats.Live++
	a.stats.LiveBytes += int64(size)

	if logAlloc {
		logger.Debug("arena: alloc", "size", size, "off", off, "top", a.top)
	}
	return b, nil
}

// Dealloc puts b's range on the free list if b is live in this arena.
func (a *Arena) Dealloc(b *Block) {
	if _, ok := a.live[b]; !ok {
		a.stats.Ignored++
		return
	}
	delete(a.live, b)
	a.stats.Deallocs++
	a.stats.Live--
	a.stats.LiveBytes -= int64(b.size)

	need := alignUp(max(b.size, 1))
	a.free[need] = append(a.free[need], b.off)
	b.buf = nil
}

// Owns reports whether b is live in this strategy.
func (a *Arena) Owns(b *Block) bool {
	_, ok := a.live[b]
	return ok
}

// Stats returns a snapshot of the block accounting.
func (a *Arena) Stats() Stats {
	return a.stats
}

// Capacity returns the size of the mapping in bytes.
func (a *Arena) Capacity() int {
	return len(a.region)
}

// Used returns how far the bump pointer has advanced.
func (a *Arena) Used() int {
	return a.top
}

// Close reclaims every live block and unmaps the region.
func (a *Arena) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	if n := len(a.live); n > 0 {
		logger.Warn("arena: closing with live blocks", "blocks", n, "bytes", a.stats.LiveBytes)
	}
	for b := range a.live {
		b.buf = nil
		a.stats.Reclaimed++
	}
	clear(a.live)
	clear(a.free)
	a.stats.Live = 0
	a.stats.LiveBytes = 0

	region := a.region
	a.region = nil
	return unmapRegion(region)
}

// Compile-time interface checks
var (
	_ Strategy = (*Arena)(nil)
	_ Tracker  = (*Arena)(nil)
	_ Owner    = (*Arena)(nil)
)
