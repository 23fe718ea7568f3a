package deque

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/dequekit/alloc"
)

// newTestHeap returns a shared Heap strategy. The test's reference is
// released at cleanup so leaks show up as Reclaimed blocks, not panics.
func newTestHeap(t *testing.T, maxBytes int64) (*alloc.Shared, *alloc.Heap) {
	t.Helper()
	heap := alloc.NewHeap(maxBytes)
	h := alloc.MustShare(heap)
	t.Cleanup(func() { _ = h.Release() })
	return h, heap
}

// newTestDeque builds a deque over a fresh Heap and pushes vals to the back.
func newTestDeque(t *testing.T, vals ...int) (*Deque[int], *alloc.Heap) {
	t.Helper()
	h, heap := newTestHeap(t, 0)
	d, err := New[int](h)
	require.NoError(t, err)
	for _, v := range vals {
		require.NoError(t, d.PushBack(v))
	}
	return d, heap
}

// requireValues asserts contents, Len and structural invariants together.
func requireValues[T any](t *testing.T, d *Deque[T], want ...T) {
	t.Helper()
	require.NoError(t, d.Verify())
	if len(want) == 0 {
		require.True(t, d.IsEmpty())
		require.Zero(t, d.Len())
		require.Empty(t, d.Values())
		return
	}
	require.False(t, d.IsEmpty())
	require.Equal(t, len(want), d.Len())
	require.Equal(t, want, d.Values())
}

// resource is a payload that records teardown and copying.
type resource struct {
	id        int
	destroyed *int
	failOn    bool // Destroy fails
	cloneFail bool // Clone fails
}

func (r resource) Destroy() error {
	*r.destroyed++
	if r.failOn {
		return errors.New("resource: destroy failed")
	}
	return nil
}

func (r resource) Clone() (resource, error) {
	if r.cloneFail {
		return resource{}, errClone
	}
	return resource{id: r.id + 1000, destroyed: r.destroyed}, nil
}

var errClone = errors.New("resource: clone failed")
