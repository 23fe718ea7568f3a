package deque

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/joshuapare/dequekit/alloc"
)

// dequeMachine drives a Deque and a reference slice with the same operations.
type dequeMachine struct {
	d   *Deque[int]
	ref []int
	cur alloc.Strategy
}

func (m *dequeMachine) init(t *rapid.T) {
	m.cur = alloc.NewHeap(0)
	h := alloc.MustShare(m.cur)
	d, err := New[int](h)
	require.NoError(t, err)
	require.NoError(t, h.Release())
	m.d = d
	m.ref = nil
}

func (m *dequeMachine) PushBack(t *rapid.T) {
	v := rapid.Int().Draw(t, "v")
	require.NoError(t, m.d.PushBack(v))
	m.ref = append(m.ref, v)
}

func (m *dequeMachine) PushFront(t *rapid.T) {
	v := rapid.Int().Draw(t, "v")
	require.NoError(t, m.d.PushFront(v))
	m.ref = append([]int{v}, m.ref...)
}

func (m *dequeMachine) PopBack(t *rapid.T) {
	v, err := m.d.PopBack()
	if len(m.ref) == 0 {
		require.ErrorIs(t, err, ErrEmpty)
		return
	}
	require.NoError(t, err)
	require.Equal(t, m.ref[len(m.ref)-1], v)
	m.ref = m.ref[:len(m.ref)-1]
}

func (m *dequeMachine) PopFront(t *rapid.T) {
	v, err := m.d.PopFront()
	if len(m.ref) == 0 {
		require.ErrorIs(t, err, ErrEmpty)
		return
	}
	require.NoError(t, err)
	require.Equal(t, m.ref[0], v)
	m.ref = m.ref[1:]
}

func (m *dequeMachine) Clear(t *rapid.T) {
	require.NoError(t, m.d.Clear())
	m.ref = nil
}

func (m *dequeMachine) ChangeAllocator(t *rapid.T) {
	kind := rapid.SampledFrom([]alloc.Kind{alloc.KindHeap, alloc.KindPool, alloc.KindArena}).Draw(t, "kind")
	s, err := alloc.NewStrategy(kind, alloc.DefaultOptions())
	require.NoError(t, err)
	h := alloc.MustShare(s)

	old := m.cur
	require.NoError(t, m.d.ChangeAllocator(h))
	require.NoError(t, h.Release())
	m.cur = s

	// The deque held the last reference, so old is closed by now; anything
	// it had to reclaim was leaked by the migration.
	require.Equal(t, 0, alloc.Outstanding(old), "old strategy drained")
	require.Zero(t, old.(alloc.Tracker).Stats().Reclaimed, "no node left behind on the old strategy")
}

func (m *dequeMachine) CloneIsolated(t *rapid.T) {
	c, err := m.d.Clone()
	require.NoError(t, err)
	require.Equal(t, m.d.Values(), c.Values())

	require.NoError(t, c.PushBack(-1))
	require.NoError(t, c.Release())
}

func (m *dequeMachine) MoveRoundTrip(t *rapid.T) {
	moved, err := m.d.Move()
	require.NoError(t, err)
	require.True(t, m.d.IsEmpty())
	require.NoError(t, m.d.MoveFrom(moved))
	require.NoError(t, moved.Release())
}

func (m *dequeMachine) Check(t *rapid.T) {
	require.NoError(t, m.d.Verify())
	require.Equal(t, len(m.ref), m.d.Len())
	require.Equal(t, len(m.ref) == 0, m.d.IsEmpty())
	if len(m.ref) == 0 {
		require.Empty(t, m.d.Values())
	} else {
		require.Equal(t, m.ref, m.d.Values())
	}
	require.Equal(t, len(m.ref), alloc.Outstanding(m.cur), "one block per element")
}

// TestDequeMatchesReference checks arbitrary interleavings of operations
// against a plain slice.
func TestDequeMatchesReference(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := &dequeMachine{}
		m.init(t)
		t.Repeat(rapid.StateMachineActions(m))
		require.NoError(t, m.d.Release())
		require.Zero(t, m.cur.(alloc.Tracker).Stats().Reclaimed)
	})
}
