package deque

import (
	"github.com/joshuapare/dequekit/alloc"
)

// node is one link of the chain. next owns the following node; prev is a
// back-reference used for O(1) unlinking and never the basis for freeing.
type node[T any] struct {
	value T
	next  *alloc.Object[node[T]]
	prev  *alloc.Object[node[T]]

	// moved is set once the payload has been handed elsewhere (popped or
	// migrated); destroying the node then leaves the payload alone.
	moved bool
}

// Destroy tears down the payload unless it was moved out.
func (n *node[T]) Destroy() error {
	if n.moved {
		return nil
	}
	return alloc.DestroyValue(&n.value)
}

// Deque is a double-ended sequence whose nodes are created and destroyed
// through a replaceable allocation strategy.
//
// The zero value has no strategy and is not usable; build one with New.
// A Deque is not safe for concurrent use.
type Deque[T any] struct {
	head *alloc.Object[node[T]] // owns the whole chain through next links
	tail *alloc.Object[node[T]] // back-reference for O(1) back operations
	size int

	nodes    alloc.Single[node[T]]
	released bool
}

// New creates an empty deque whose nodes come from h. The deque holds its own
// reference on h; the caller keeps (and must eventually release) theirs.
func New[T any](h *alloc.Shared) (*Deque[T], error) {
	if h.Strategy() == nil {
		return nil, ErrNoStrategy
	}
	return &Deque[T]{nodes: alloc.NewSingle[node[T]](h)}, nil
}

// check reports whether d may be used for mutation.
func (d *Deque[T]) check() error {
	if d.released {
		return ErrReleased
	}
	if d.nodes.Strategy() == nil {
		return ErrNoStrategy
	}
	return nil
}

// Strategy returns the handle of the strategy currently backing the nodes.
func (d *Deque[T]) Strategy() *alloc.Shared {
	return d.nodes.Shared()
}

// IsEmpty reports whether the deque holds no elements.
func (d *Deque[T]) IsEmpty() bool {
	return d.head == nil
}

// Len returns the number of elements.
func (d *Deque[T]) Len() int {
	return d.size
}

// PushBack appends v. If the node cannot be constructed the deque is left
// exactly as it was.
func (d *Deque[T]) PushBack(v T) error {
	if err := d.check(); err != nil {
		return err
	}

	obj, err := d.nodes.Construct(func(n *node[T]) error {
		n.value = v
		n.prev = d.tail
		return nil
	})
	if err != nil {
		return err
	}

	if d.tail == nil {
		d.head = obj
	} else {
		d.tail.Ptr().next = obj
	}
	d.tail = obj
	d.size++
	return nil
}

// PushFront prepends v. If the node cannot be constructed the deque is left
// exactly as it was.
func (d *Deque[T]) PushFront(v T) error {
	if err := d.check(); err != nil {
		return err
	}

	obj, err := d.nodes.Construct(func(n *node[T]) error {
		n.value = v
		n.next = d.head
		return nil
	})
	if err != nil {
		return err
	}

	if d.head == nil {
		d.tail = obj
	} else {
		d.head.Ptr().prev = obj
	}
	d.head = obj
	d.size++
	return nil
}

// PopBack removes and returns the last element.
func (d *Deque[T]) PopBack() (T, error) {
	var zero T
	if d.released {
		return zero, ErrReleased
	}
	if d.tail == nil {
		return zero, ErrEmpty
	}

	obj := d.tail
	n := obj.Ptr()
	v := n.value

	d.tail = n.prev
	if d.tail == nil {
		d.head = nil
	} else {
		d.tail.Ptr().next = nil
	}
	d.size--

	n.moved = true
	return v, d.nodes.Destroy(obj)
}

// PopFront removes and returns the first element.
func (d *Deque[T]) PopFront() (T, error) {
	var zero T
	if d.released {
		return zero, ErrReleased
	}
	if d.head == nil {
		return zero, ErrEmpty
	}

	obj := d.head
	n := obj.Ptr()
	v := n.value

	d.head = n.next
	if d.head == nil {
		d.tail = nil
	} else {
		d.head.Ptr().prev = nil
	}
	d.size--

	n.moved = true
	return v, d.nodes.Destroy(obj)
}

// Front returns the first element without removing it.
func (d *Deque[T]) Front() (T, error) {
	var zero T
	if d.head == nil {
		return zero, ErrEmpty
	}
	return d.head.Ptr().value, nil
}

// Back returns the last element without removing it.
func (d *Deque[T]) Back() (T, error) {
	var zero T
	if d.tail == nil {
		return zero, ErrEmpty
	}
	return d.tail.Ptr().value, nil
}
