// Package deque implements an allocator-aware double-ended queue.
//
// # Overview
//
// Deque[T] is a doubly linked list whose nodes are created and destroyed
// exclusively through an alloc.Single, which in turn draws blocks from a
// replaceable alloc.Strategy. There is no default strategy: New requires one.
//
//	h := alloc.MustShare(alloc.NewHeap(0))
//	defer h.Release()
//
//	d, err := deque.New[int](h)
//	if err != nil {
//	    return err
//	}
//	defer d.Release()
//
//	_ = d.PushBack(3)
//	_ = d.PushFront(1)
//	v, err := d.PopFront() // 1
//
// # Lifecycle
//
//   - Copy: Clone, CloneWith, Assign, AssignWith build a complete copy under
//     the target strategy before any old node is released. Payloads
//     implementing Cloner are deep-copied.
//   - Move: Move and MoveFrom transfer the chain and the strategy reference in
//     O(1); the source is left empty and usable.
//   - Migration: ChangeAllocator rebuilds the chain under a new strategy and
//     only then releases each old node through the strategy that issued it.
//   - Release: destroys every node and drops the strategy reference; the
//     deque cannot be used afterwards.
//
// Operations that construct nodes are atomic with respect to failure: an
// ErrOutOfMemory (or a failing Cloner) leaves the deque exactly as it was.
//
// # Payload Teardown
//
// Payloads implementing alloc.Destroyer are destroyed when their node is
// destroyed by Clear, Release, or an assignment that overwrites them.
// Payloads that leave the deque (PopFront, PopBack) or are carried over by a
// migration are never destroyed by the deque.
//
// # Iteration
//
// Begin/End/Cursor give a forward cursor that fails with ErrInvalidCursor on
// the sentinel. All and Backward return range-over-func iterators.
//
// # Thread Safety
//
// A Deque is not safe for concurrent use. Deques sharing a strategy must be
// serialized by the caller.
package deque
