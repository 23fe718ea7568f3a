package alloc

import "errors"

var (
	// ErrOutOfMemory indicates the strategy cannot satisfy a block request.
	ErrOutOfMemory = errors.New("alloc: out of memory")

	// ErrBadSize indicates a negative block size was requested.
	ErrBadSize = errors.New("alloc: bad block size")

	// ErrClosed indicates an allocation against a strategy that has been closed.
	ErrClosed = errors.New("alloc: strategy closed")

	// ErrNilStrategy indicates a nil strategy was handed to Share or NewStrategy.
	ErrNilStrategy = errors.New("alloc: nil strategy")

	// ErrHandleReleased indicates a shared handle was released more times than retained.
	ErrHandleReleased = errors.New("alloc: shared handle already released")

	// ErrUnknownKind indicates an unrecognised strategy kind name.
	ErrUnknownKind = errors.New("alloc: unknown strategy kind")
)
