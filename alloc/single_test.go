package alloc

import (
	"errors"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X, Y int64
}

// closer counts Destroy calls and can be told to fail.
type closer struct {
	calls *int
	fail  bool
}

func (c *closer) Destroy() error {
	*c.calls++
	if c.fail {
		return errors.New("destroy failed")
	}
	return nil
}

func newSingleForTest[T any](t *testing.T) (Single[T], *Heap) {
	t.Helper()
	heap := NewHeap(0)
	h := MustShare(heap)
	a := NewSingle[T](h)
	require.NoError(t, h.Release(), "drop the caller's reference")
	t.Cleanup(func() { _ = a.Close() })
	return a, heap
}

func TestSingle_ConstructDestroy(t *testing.T) {
	a, heap := newSingleForTest[point](t)

	obj, err := a.Construct(func(p *point) error {
		p.X, p.Y = 3, 4
		return nil
	})
	require.NoError(t, err)
	require.True(t, obj.Live())
	assert.Equal(t, point{3, 4}, *obj.Ptr())
	assert.Equal(t, int(unsafe.Sizeof(point{})), obj.Block().Size())
	assert.Equal(t, 1, heap.Stats().Live)

	require.NoError(t, a.Destroy(obj))
	assert.False(t, obj.Live())
	assert.Equal(t, 0, heap.Stats().Live)
}

func TestSingle_NilInitLeavesZero(t *testing.T) {
	a, _ := newSingleForTest[point](t)
	obj, err := a.Construct(nil)
	require.NoError(t, err)
	assert.Equal(t, point{}, *obj.Ptr())
}

// TestSingle_InitFailureReleasesBlock tests that no raw block leaks when construction fails.
func TestSingle_InitFailureReleasesBlock(t *testing.T) {
	a, heap := newSingleForTest[point](t)
	boom := errors.New("boom")

	obj, err := a.Construct(func(*point) error { return boom })
	require.ErrorIs(t, err, boom)
	assert.Nil(t, obj)

	st := heap.Stats()
	assert.Equal(t, 0, st.Live)
	assert.Equal(t, 1, st.Allocs)
	assert.Equal(t, 1, st.Deallocs)
}

func TestSingle_OutOfMemoryPropagates(t *testing.T) {
	h := MustShare(NewHeap(1))
	defer h.Release()
	a := NewSingle[point](h)
	defer a.Close()

	called := false
	_, err := a.Construct(func(*point) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, ErrOutOfMemory)
	assert.False(t, called, "init must not run without a block")
}

// TestSingle_DestroyOnce tests that Destroyer runs exactly once per object.
func TestSingle_DestroyOnce(t *testing.T) {
	a, heap := newSingleForTest[closer](t)
	calls := 0

	obj, err := a.Construct(func(c *closer) error {
		c.calls = &calls
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, a.Destroy(obj))
	require.NoError(t, a.Destroy(obj))
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, heap.Stats().Ignored, "second destroy reaches the no-op path")
	require.NoError(t, a.Destroy(nil))
}

func TestSingle_DestroyErrorStillReleases(t *testing.T) {
	a, heap := newSingleForTest[closer](t)
	calls := 0

	obj, err := a.Construct(func(c *closer) error {
		c.calls = &calls
		c.fail = true
		return nil
	})
	require.NoError(t, err)

	require.Error(t, a.Destroy(obj))
	assert.Equal(t, 0, heap.Stats().Live)
}

func TestSingle_PointerPayloadDestroyer(t *testing.T) {
	a, _ := newSingleForTest[*closer](t)
	calls := 0
	obj, err := a.Construct(func(c **closer) error {
		*c = &closer{calls: &calls}
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, a.Destroy(obj))
	assert.Equal(t, 1, calls)
}

// TestSingle_CloneSharesStrategy tests that copying the allocator shares the
// handle and never duplicates blocks.
func TestSingle_CloneSharesStrategy(t *testing.T) {
	heap := NewHeap(0)
	h := MustShare(heap)
	a := NewSingle[point](h)
	assert.Equal(t, 2, h.Refs())

	b := a.Clone()
	assert.Equal(t, 3, h.Refs())
	assert.Same(t, a.Shared(), b.Shared())

	obj, err := a.Construct(nil)
	require.NoError(t, err)
	require.NoError(t, b.Destroy(obj), "either copy may destroy")
	assert.Equal(t, 0, heap.Stats().Live)

	require.NoError(t, a.Close())
	require.NoError(t, b.Close())
	require.NoError(t, h.Release())
	assert.Nil(t, a.Strategy())

	_, err = a.Construct(nil)
	require.ErrorIs(t, err, ErrNilStrategy)
}

func TestSingle_DestroyAfterStrategyGone(t *testing.T) {
	h := MustShare(NewHeap(0))
	a := NewSingle[point](h)
	obj, err := a.Construct(nil)
	require.NoError(t, err)

	require.NoError(t, a.Close())
	require.NoError(t, h.Release())

	require.NoError(t, a.Destroy(obj), "destroy degrades to a no-op")
	assert.False(t, obj.Live())
}
