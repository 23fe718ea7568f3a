package deque

import (
	"go.uber.org/multierr"

	"github.com/joshuapare/dequekit/alloc"
	"github.com/joshuapare/dequekit/internal/logger"
)

// Cloner is implemented by payloads that need a deep copy when a deque is
// copied. Payloads without it are copied by assignment.
type Cloner[T any] interface {
	Clone() (T, error)
}

// clonePayload copies v through Cloner when T or *T implements it.
func clonePayload[T any](v T) (T, error) {
	if c, ok := any(v).(Cloner[T]); ok {
		return c.Clone()
	}
	if c, ok := any(&v).(Cloner[T]); ok {
		return c.Clone()
	}
	return v, nil
}

// chain is a detached run of nodes, all built by the same allocator.
type chain[T any] struct {
	head *alloc.Object[node[T]]
	tail *alloc.Object[node[T]]
	size int
}

// push constructs one node at the end of c. init fills the payload.
func (c *chain[T]) push(nodes alloc.Single[node[T]], init func(*T) error) error {
	obj, err := nodes.Construct(func(n *node[T]) error {
		if err := init(&n.value); err != nil {
			return err
		}
		n.prev = c.tail
		return nil
	})
	if err != nil {
		return err
	}

	if c.tail == nil {
		c.head = obj
	} else {
		c.tail.Ptr().next = obj
	}
	c.tail = obj
	c.size++
	return nil
}

// markMoved flags every payload in the chain as handed off.
func (c chain[T]) markMoved() {
	for obj := c.head; obj != nil; obj = obj.Ptr().next {
		obj.Ptr().moved = true
	}
}

// free destroys every node of c through nodes, continuing past failures.
func (c chain[T]) free(nodes alloc.Single[node[T]]) error {
	var err error
	for obj := c.head; obj != nil; {
		next := obj.Ptr().next
		err = multierr.Append(err, nodes.Destroy(obj))
		obj = next
	}
	return err
}

// detach hands the chain to the caller and leaves d empty.
func (d *Deque[T]) detach() chain[T] {
	c := chain[T]{head: d.head, tail: d.tail, size: d.size}
	d.head, d.tail, d.size = nil, nil, 0
	return c
}

// adopt installs c as d's chain. d must be empty.
func (d *Deque[T]) adopt(c chain[T]) {
	d.head, d.tail, d.size = c.head, c.tail, c.size
}

// copyChain deep-copies src's payloads, in order, into a new chain built by
// nodes. On failure everything built so far is destroyed through nodes.
func copyChain[T any](src *Deque[T], nodes alloc.Single[node[T]]) (chain[T], error) {
	var c chain[T]
	for obj := src.head; obj != nil; obj = obj.Ptr().next {
		v := obj.Ptr().value
		err := c.push(nodes, func(dst *T) error {
			cp, err := clonePayload(v)
			if err != nil {
				return err
			}
			*dst = cp
			return nil
		})
		if err != nil {
			return chain[T]{}, multierr.Append(err, c.free(nodes))
		}
	}
	return c, nil
}

// moveChain rebuilds src's payloads into a new chain built by nodes without
// copying them. src stays intact; on failure the partial chain is released
// without touching the payloads it shares with src.
func moveChain[T any](src *Deque[T], nodes alloc.Single[node[T]]) (chain[T], error) {
	var c chain[T]
	for obj := src.head; obj != nil; obj = obj.Ptr().next {
		v := obj.Ptr().value
		err := c.push(nodes, func(dst *T) error {
			*dst = v
			return nil
		})
		if err != nil {
			c.markMoved()
			return chain[T]{}, multierr.Append(err, c.free(nodes))
		}
	}
	return c, nil
}

// Clear destroys every element. The deque is empty afterwards even if some
// payload's Destroy fails; the remaining nodes are still released and the
// failures are returned together.
func (d *Deque[T]) Clear() error {
	if d.released {
		return ErrReleased
	}
	return d.detach().free(d.nodes)
}

// Release destroys every element and drops the deque's strategy reference.
// The deque cannot be used afterwards.
func (d *Deque[T]) Release() error {
	if d.released {
		return ErrReleased
	}
	n := d.size
	err := d.detach().free(d.nodes)
	d.released = true
	err = multierr.Append(err, d.nodes.Close())
	logger.Debug("deque: released", "nodes", n)
	return err
}

// Clone returns a deep copy of d sharing d's strategy.
func (d *Deque[T]) Clone() (*Deque[T], error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	return d.cloneInto(d.nodes.Clone())
}

// CloneWith returns a deep copy of d whose nodes come from h.
func (d *Deque[T]) CloneWith(h *alloc.Shared) (*Deque[T], error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	if h.Strategy() == nil {
		return nil, ErrNoStrategy
	}
	return d.cloneInto(alloc.NewSingle[node[T]](h))
}

func (d *Deque[T]) cloneInto(nodes alloc.Single[node[T]]) (*Deque[T], error) {
	c, err := copyChain(d, nodes)
	if err != nil {
		return nil, multierr.Append(err, nodes.Close())
	}
	out := &Deque[T]{nodes: nodes}
	out.adopt(c)
	return out, nil
}

// Assign replaces d's contents with a deep copy of src and adopts src's
// strategy. The copy is built before d's old nodes are released through d's
// previous strategy; if copying fails d is unchanged.
func (d *Deque[T]) Assign(src *Deque[T]) error {
	if err := d.check(); err != nil {
		return err
	}
	if src == d {
		return nil
	}
	if err := src.check(); err != nil {
		return err
	}
	return d.replaceWith(src, src.nodes.Clone())
}

// AssignWith replaces d's contents with a deep copy of src built under h.
// src may be d itself, which re-copies d onto h.
func (d *Deque[T]) AssignWith(src *Deque[T], h *alloc.Shared) error {
	if err := d.check(); err != nil {
		return err
	}
	if err := src.check(); err != nil {
		return err
	}
	if h.Strategy() == nil {
		return ErrNoStrategy
	}
	return d.replaceWith(src, alloc.NewSingle[node[T]](h))
}

func (d *Deque[T]) replaceWith(src *Deque[T], nodes alloc.Single[node[T]]) error {
	c, err := copyChain(src, nodes)
	if err != nil {
		return multierr.Append(err, nodes.Close())
	}

	old, oldNodes := d.detach(), d.nodes
	d.nodes = nodes
	d.adopt(c)
	return multierr.Combine(old.free(oldNodes), oldNodes.Close())
}

// Move transfers d's nodes and strategy to a new deque in O(1). d is left
// empty and still usable with its current strategy.
func (d *Deque[T]) Move() (*Deque[T], error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	out := &Deque[T]{nodes: d.nodes}
	out.adopt(d.detach())
	d.nodes = d.nodes.Clone()
	return out, nil
}

// MoveFrom releases d's nodes through d's strategy, then takes over src's
// nodes and strategy in O(1). src is left empty and still usable.
func (d *Deque[T]) MoveFrom(src *Deque[T]) error {
	if err := d.check(); err != nil {
		return err
	}
	if src == d {
		return nil
	}
	if err := src.check(); err != nil {
		return err
	}

	oldNodes := d.nodes
	err := d.detach().free(oldNodes)

	d.nodes = src.nodes
	d.adopt(src.detach())
	src.nodes = d.nodes.Clone()

	return multierr.Append(err, oldNodes.Close())
}

// ChangeAllocator re-homes every node onto h. The new chain is built first;
// only once it is complete are the old nodes released, each through the
// strategy that allocated it. If building fails, the partial new chain is
// released through h and d keeps its old nodes and strategy.
func (d *Deque[T]) ChangeAllocator(h *alloc.Shared) error {
	if err := d.check(); err != nil {
		return err
	}
	if h.Strategy() == nil {
		return ErrNoStrategy
	}

	nodes := alloc.NewSingle[node[T]](h)
	c, err := moveChain(d, nodes)
	if err != nil {
		return multierr.Append(err, nodes.Close())
	}

	old, oldNodes := d.detach(), d.nodes
	old.markMoved()
	d.nodes = nodes
	d.adopt(c)

	err = old.free(oldNodes)
	logger.Debug("deque: changed allocator", "nodes", c.size,
		"old_outstanding", alloc.Outstanding(oldNodes.Strategy()))
	return multierr.Append(err, oldNodes.Close())
}
