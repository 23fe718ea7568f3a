package alloc

import "math"

// MaxBlockSize is the largest request any strategy will try to satisfy.
// Larger requests fail with ErrOutOfMemory.
const MaxBlockSize = math.MaxInt32

// Strategy is a pluggable policy that hands out and takes back raw blocks.
//
// Implementations:
//   - Heap: Go-heap blocks, live set for leak and double-free detection
//   - Pool: size-class free lists that recycle released blocks
//   - Arena: one anonymous memory mapping with bump allocation
//
// Dealloc never fails. A nil block, a block issued by another strategy, or a
// block that was already released is ignored, so callers migrating blocks
// between strategies can never free memory the receiver did not issue.
type Strategy interface {
	// Alloc reserves size bytes and returns the block that owns them.
	Alloc(size int) (*Block, error)

	// Dealloc releases a block previously returned by Alloc on the same strategy.
	Dealloc(b *Block)
}

// Tracker is implemented by strategies that keep live-block accounting.
type Tracker interface {
	Stats() Stats
}

// Owner is implemented by strategies that can tell whether a block is one of
// their live blocks.
type Owner interface {
	Owns(b *Block) bool
}

// Stats is a snapshot of a strategy's block accounting.
type Stats struct {
	Allocs    int   // Successful Alloc calls
	Deallocs  int   // Dealloc calls that released a live block
	Ignored   int   // Dealloc calls on nil, foreign or already-released blocks
	Reclaimed int   // Blocks reclaimed by Close while still live
	Live      int   // Blocks currently outstanding
	LiveBytes int64 // Bytes held by outstanding blocks
}

// Outstanding reports the number of live blocks held by s.
// Strategies that do not track blocks report -1.
func Outstanding(s Strategy) int {
	if t, ok := s.(Tracker); ok {
		return t.Stats().Live
	}
	return -1
}

// Block is an opaque handle to a reserved byte range.
// Its identity is the pointer; two blocks never compare equal.
type Block struct {
	buf   []byte
	size  int
	class int // size class for Pool, -1 otherwise
	off   int // offset inside the Arena mapping, -1 otherwise
}

// NewBlock wraps buf in a block handle. Strategies outside this package use it
// to build the handles they return from Alloc.
func NewBlock(buf []byte) *Block {
	return &Block{buf: buf, size: len(buf), class: -1, off: -1}
}

// Bytes returns the reserved bytes, or nil once the block has been released.
func (b *Block) Bytes() []byte {
	if b == nil {
		return nil
	}
	return b.buf
}

// Size returns the requested size of the block.
func (b *Block) Size() int {
	if b == nil {
		return 0
	}
	return b.size
}

// Destroyer is implemented by values that need teardown when the typed
// allocator destroys the object holding them.
type Destroyer interface {
	Destroy() error
}
