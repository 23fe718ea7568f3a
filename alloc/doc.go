// Package alloc provides swappable allocation strategies and a typed
// single-object allocator built on top of them.
//
// # Overview
//
// Containers in dequekit never create or release their backing nodes
// directly. They go through a Single[T], which in turn asks a Strategy for
// raw blocks. Data only flows one way:
//
//	container -> Single[T] -> Strategy
//
// The strategy never sees node structure and the typed allocator never sees
// list topology.
//
// # Strategy Interface
//
// The core abstraction is the Strategy interface:
//
//   - Alloc(size): reserve a block of size bytes
//   - Dealloc(block): release a block previously issued by the same strategy
//
// Dealloc of a nil block, a block issued by another strategy, or a block that
// was already released is a no-op. This tolerance is load-bearing: a
// container migrating its nodes to a new strategy must never be able to make
// one strategy free memory it did not issue.
//
// # Implementations
//
// Heap: one Go byte slice per block
//
//   - Live-block set for leak and double-free detection
//   - Optional byte budget (ErrOutOfMemory when exceeded)
//
// Pool: segregated free lists per size class
//
//   - Size classes from SizeClassConfig (linear, then logarithmic)
//   - Released buffers are recycled; block handles never are
//
// Arena: one anonymous memory mapping
//
//   - 8-byte aligned bump allocation plus exact-size free lists
//   - Fixed capacity (ErrOutOfMemory when exhausted)
//   - Close unmaps the region
//
// All three implement Tracker, so Outstanding(s) reports live blocks.
//
// # Shared Handles
//
// A strategy is shared through a reference-counted *Shared handle:
//
//	h, err := alloc.Share(alloc.NewHeap(0))
//	if err != nil {
//	    return err
//	}
//	defer h.Release()
//
//	nodes := alloc.NewSingle[node](h) // retains
//	defer nodes.Close()               // releases
//
// Releasing the last reference closes the strategy, reclaiming any blocks
// still outstanding.
//
// # Typed Allocation
//
//	obj, err := nodes.Construct(func(n *node) error {
//	    n.value = 42
//	    return nil
//	})
//	...
//	err = nodes.Destroy(obj)
//
// If the init function fails, the block is released before the error is
// returned. Values implementing Destroyer are torn down exactly once.
//
// # Thread Safety
//
// Strategies and handles are not thread-safe. Callers sharing a strategy
// between containers must synchronize access externally.
package alloc
