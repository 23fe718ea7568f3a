package alloc

import "github.com/joshuapare/dequekit/internal/logger"

// Pool recycles released buffers through segregated free lists, one per size
// class. Every Alloc returns a fresh *Block handle even when the bytes are
// recycled, so a stale handle can never release somebody else's live block.
//
// Pool is not safe for concurrent use.
type Pool struct {
	table     *sizeClassTable
	freeLists [][][]byte // per class: recycled buffers
	live      map[*Block]struct{}
	maxBytes  int64
	held      int64 // capacity of the buffers backing live blocks
	closed    bool
	reused    int
	stats     Stats
}

// NewPool creates a Pool using the given size class configuration.
// maxBytes caps the capacity of the buffers backing live blocks, so a block is
// charged its full size class rather than the bytes requested. Buffers parked
// in the free lists are not charged; Close drops them. Zero means unlimited.
func NewPool(config SizeClassConfig, maxBytes int64) *Pool {
	table := newSizeClassTable(config)
	return &Pool{
		table:     table,
		freeLists: make([][][]byte, table.NumClasses()),
		live:      make(map[*Block]struct{}),
		maxBytes:  maxBytes,
	}
}

// Alloc reserves size bytes, reusing a cached buffer of the same class if one exists.
func (p *Pool) Alloc(size int) (*Block, error) {
	if p.closed {
		return nil, ErrClosed
	}
	if size < 0 {
		return nil, ErrBadSize
	}
	if size > MaxBlockSize {
		return nil, ErrOutOfMemory
	}

	cls := p.table.classOf(size)
	charge := int64(size)
	if cls >= 0 {
		charge = int64(p.table.capacity(cls))
	}
	if p.maxBytes > 0 && p.held+charge > p.maxBytes {
		return nil, ErrOutOfMemory
	}

	var b *Block
	switch {
	case cls < 0:
		// Too large to pool
		b = NewBlock(make([]byte, size))
	case len(p.freeLists[cls]) > 0:
		list := p.freeLists[cls]
		buf := list[len(list)-1]
		p.freeLists[cls] = list[:len(list)-1]
		clear(buf)
		b = &Block{buf: buf[:size], size: size, class: cls, off: -1}
		p.reused++
	default:
		buf := make([]byte, p.table.capacity(cls))
		b = &Block{buf: buf[:size], size: size, class: cls, off: -1}
	}

	p.live[b] = struct{}{}
	p.held += charge
	p.stats.Allocs++
	p.stats.Live++
	p.stats.LiveBytes += int64(size)

	if logAlloc {
		logger.Debug("pool: alloc", "size", size, "class", cls, "live", p.stats.Live)
	}
	return b, nil
}

// Dealloc returns b's buffer to its class free list if b is live here.
func (p *Pool) Dealloc(b *Block) {
	if _, ok := p.live[b]; !ok {
		p.stats.Ignored++
		return
	}
	delete(p.live, b)
	p.stats.Deallocs++
	p.stats.Live--
	p.stats.LiveBytes -= int64(b.size)
	p.held -= int64(cap(b.buf))

	if b.class >= 0 {
		p.freeLists[b.class] = append(p.freeLists[b.class], b.buf[:cap(b.buf)])
	}
	b.buf = nil
}

// Owns reports whether b is live in this strategy.
func (p *Pool) Owns(b *Block) bool {
	_, ok := p.live[b]
	return ok
}

// Stats returns a snapshot of the block accounting.
func (p *Pool) Stats() Stats {
	return p.stats
}

// Reused reports how many allocations were served from a free list.
func (p *Pool) Reused() int {
	return p.reused
}

// Held reports the capacity of the buffers backing live blocks, the figure
// the byte budget is checked against.
func (p *Pool) Held() int64 {
	return p.held
}

// Cached reports how many released buffers are waiting in the free lists.
func (p *Pool) Cached() int {
	n := 0
	for _, l := range p.freeLists {
		n += len(l)
	}
	return n
}

// Close reclaims all live blocks and drops the free lists.
func (p *Pool) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if n := len(p.live); n > 0 {
		logger.Warn("pool: closing with live blocks", "blocks", n, "bytes", p.stats.LiveBytes)
	}
	for b := range p.live {
		b.buf = nil
		p.stats.Reclaimed++
	}
	clear(p.live)
	for i := range p.freeLists {
		p.freeLists[i] = nil
	}
	p.held = 0
	p.stats.Live = 0
	p.stats.LiveBytes = 0
	return nil
}

// Compile-time interface checks
var (
	_ Strategy = (*Pool)(nil)
	_ Tracker  = (*Pool)(nil)
	_ Owner    = (*Pool)(nil)
)
