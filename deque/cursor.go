package deque

import (
	"iter"

	"github.com/joshuapare/dequekit/alloc"
)

// Cursor is a forward position in a deque. The zero Cursor, and the one
// returned by End, is the sentinel "no element" position.
//
// A cursor is invalidated when the element it points at is removed.
type Cursor[T any] struct {
	obj *alloc.Object[node[T]]
}

// Begin returns a cursor at the first element, or End when d is empty.
func (d *Deque[T]) Begin() Cursor[T] {
	return Cursor[T]{obj: d.head}
}

// End returns the sentinel cursor.
func (d *Deque[T]) End() Cursor[T] {
	return Cursor[T]{}
}

// Valid reports whether c points at a live element.
func (c Cursor[T]) Valid() bool {
	return c.obj.Live()
}

// Value returns a pointer to the element under c.
func (c Cursor[T]) Value() (*T, error) {
	if !c.Valid() {
		return nil, ErrInvalidCursor
	}
	return &c.obj.Ptr().value, nil
}

// Next returns the cursor one step forward.
func (c Cursor[T]) Next() (Cursor[T], error) {
	if !c.Valid() {
		return Cursor[T]{}, ErrInvalidCursor
	}
	return Cursor[T]{obj: c.obj.Ptr().next}, nil
}

// All yields the elements front to back.
func (d *Deque[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for obj := d.head; obj != nil; obj = obj.Ptr().next {
			if !yield(obj.Ptr().value) {
				return
			}
		}
	}
}

// Backward yields the elements back to front.
func (d *Deque[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for obj := d.tail; obj != nil; obj = obj.Ptr().prev {
			if !yield(obj.Ptr().value) {
				return
			}
		}
	}
}

// Values returns the elements front to back in a new slice.
func (d *Deque[T]) Values() []T {
	out := make([]T, 0, d.size)
	for v := range d.All() {
		out = append(out, v)
	}
	return out
}
