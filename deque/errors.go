package deque

import "errors"

var (
	// ErrEmpty indicates a pop or peek on a container with no elements.
	ErrEmpty = errors.New("deque: empty container")

	// ErrInvalidCursor indicates a dereference or advance of the end cursor.
	ErrInvalidCursor = errors.New("deque: invalid cursor")

	// ErrNoStrategy indicates a container built without an allocation strategy.
	ErrNoStrategy = errors.New("deque: no allocation strategy")

	// ErrReleased indicates use of a container after Release.
	ErrReleased = errors.New("deque: container released")
)
