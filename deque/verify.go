package deque

import (
	"fmt"

	"github.com/joshuapare/dequekit/alloc"
)

// VerifyError describes the first structural invariant found broken.
type VerifyError struct {
	Check   string
	Message string
	Index   int // Position in the chain (-1 if N/A)
}

func (e *VerifyError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("deque: %s at node %d: %s", e.Check, e.Index, e.Message)
	}
	return fmt.Sprintf("deque: %s: %s", e.Check, e.Message)
}

// Verify checks the structural invariants of d and returns a *VerifyError
// for the first violation, or nil:
//   - head is nil iff tail is nil iff the deque is empty
//   - head.prev and tail.next are nil
//   - walking next from head reaches tail in Len steps, and walking prev
//     from tail reaches head in the same count
//   - every node is live and, when the strategy implements alloc.Owner,
//     owned by the current strategy
func (d *Deque[T]) Verify() error {
	if (d.head == nil) != (d.tail == nil) {
		return &VerifyError{Check: "Ends", Message: "exactly one of head and tail is nil", Index: -1}
	}
	if d.head == nil {
		if d.size != 0 {
			return &VerifyError{Check: "Size", Message: fmt.Sprintf("empty chain but size %d", d.size), Index: -1}
		}
		return nil
	}
	if d.head.Ptr().prev != nil {
		return &VerifyError{Check: "Ends", Message: "head has a previous node", Index: 0}
	}
	if d.tail.Ptr().next != nil {
		return &VerifyError{Check: "Ends", Message: "tail has a next node", Index: d.size - 1}
	}

	owner, _ := d.nodes.Strategy().(alloc.Owner)

	// Forward walk, bounded so a cycle cannot spin forever.
	var last *alloc.Object[node[T]]
	count := 0
	for obj := d.head; obj != nil; obj = obj.Ptr().next {
		if count > d.size {
			return &VerifyError{Check: "Forward", Message: fmt.Sprintf("more than %d nodes reachable", d.size), Index: count}
		}
		if !obj.Live() {
			return &VerifyError{Check: "Live", Message: "node already destroyed", Index: count}
		}
		if owner != nil && !owner.Owns(obj.Block()) {
			return &VerifyError{Check: "Owner", Message: "node block not issued by the current strategy", Index: count}
		}
		if obj.Ptr().prev != last {
			return &VerifyError{Check: "Links", Message: "prev does not point at the preceding node", Index: count}
		}
		last = obj
		count++
	}
	if count != d.size {
		return &VerifyError{Check: "Forward", Message: fmt.Sprintf("reached %d nodes, size is %d", count, d.size), Index: -1}
	}
	if last != d.tail {
		return &VerifyError{Check: "Forward", Message: "forward walk does not end at tail", Index: count - 1}
	}

	count = 0
	var first *alloc.Object[node[T]]
	for obj := d.tail; obj != nil; obj = obj.Ptr().prev {
		if count > d.size {
			return &VerifyError{Check: "Backward", Message: fmt.Sprintf("more than %d nodes reachable", d.size), Index: -1}
		}
		first = obj
		count++
	}
	if count != d.size || first != d.head {
		return &VerifyError{Check: "Backward", Message: fmt.Sprintf("backward walk reached %d nodes, size is %d", count, d.size), Index: -1}
	}
	return nil
}
