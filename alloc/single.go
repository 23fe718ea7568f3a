package alloc

import "unsafe"

// Single turns a shared Strategy into a factory for objects of type T.
// It reserves one block sized for T per object, constructs the value in the
// object's slot, and on Destroy tears the value down before handing the block
// back to the strategy.
//
// A Single holds one reference on its Shared handle. Copying the struct
// copies the handle without retaining; use Clone for an independently
// released copy and Close to drop the reference.
type Single[T any] struct {
	h *Shared
}

// Object is one value constructed by a Single, paired with the block that
// accounts for it. The collector cannot trace pointers stored inside raw
// block bytes, so the value lives here and the block is the unit of
// accounting and lifetime.
type Object[T any] struct {
	value T
	block *Block
	live  bool
}

// Ptr returns a pointer to the constructed value.
func (o *Object[T]) Ptr() *T {
	return &o.value
}

// Block returns the block backing o.
func (o *Object[T]) Block() *Block {
	return o.block
}

// Live reports whether o has been constructed and not yet destroyed.
func (o *Object[T]) Live() bool {
	return o != nil && o.live
}

// NewSingle creates a typed allocator over h, retaining one reference.
func NewSingle[T any](h *Shared) Single[T] {
	return Single[T]{h: h.Retain()}
}

// Shared returns the handle this allocator draws from.
func (a Single[T]) Shared() *Shared {
	return a.h
}

// Strategy returns the underlying strategy, or nil when the handle is gone.
func (a Single[T]) Strategy() Strategy {
	return a.h.Strategy()
}

// Clone returns an allocator sharing the same strategy with its own reference.
func (a Single[T]) Clone() Single[T] {
	return Single[T]{h: a.h.Retain()}
}

// Close drops this allocator's reference on the strategy.
func (a Single[T]) Close() error {
	if a.h == nil {
		return nil
	}
	return a.h.Release()
}

// BlockSize is the number of bytes requested from the strategy per object.
func (a Single[T]) BlockSize() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

// Construct reserves a block and builds a T in place by running init on the
// zero value. If init fails the block goes back to the strategy before the
// error is returned. A nil init leaves the zero value.
func (a Single[T]) Construct(init func(*T) error) (*Object[T], error) {
	s := a.h.Strategy()
	if s == nil {
		return nil, ErrNilStrategy
	}

	b, err := s.Alloc(a.BlockSize())
	if err != nil {
		return nil, err
	}

	o := &Object[T]{block: b}
	if init != nil {
		if err := init(&o.value); err != nil {
			s.Dealloc(b)
			return nil, err
		}
	}
	o.live = true
	return o, nil
}

// Destroy tears down o's value (once) and returns its block to the strategy.
// Destroying an object twice, or one whose block the strategy no longer
// tracks, only reaches the strategy's no-op path. The block is released even
// when the value's Destroy fails; that error is returned.
func (a Single[T]) Destroy(o *Object[T]) error {
	if o == nil {
		return nil
	}

	var err error
	if o.live {
		o.live = false
		err = DestroyValue(&o.value)
		var zero T
		o.value = zero
	}

	if s := a.h.Strategy(); s != nil {
		s.Dealloc(o.block)
	}
	return err
}

// DestroyValue runs Destroy on v if either *T or T implements Destroyer.
func DestroyValue[T any](v *T) error {
	if d, ok := any(v).(Destroyer); ok {
		return d.Destroy()
	}
	if d, ok := any(*v).(Destroyer); ok {
		return d.Destroy()
	}
	return nil
}
