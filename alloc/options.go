package alloc

import (
	"fmt"
	"strings"
)

// Kind selects a concrete strategy implementation.
type Kind int

const (
	// KindHeap selects Heap.
	KindHeap Kind = iota

	// KindPool selects Pool.
	KindPool

	// KindArena selects Arena.
	KindArena
)

var kindNames = map[Kind]string{
	KindHeap:  "heap",
	KindPool:  "pool",
	KindArena: "arena",
}

// String returns the lowercase kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a name ("heap", "pool", "arena") to a Kind.
func ParseKind(name string) (Kind, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for k, n := range kindNames {
		if n == want {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, name)
}

// Options configures strategy construction.
//
// Use DefaultOptions() for sensible defaults.
type Options struct {
	// MaxBytes caps the live bytes of Heap and Pool strategies. Heap counts
	// requested bytes; Pool counts the size class capacity of each block.
	// Default: 0 (unlimited)
	MaxBytes int64

	// SizeClasses configures Pool bucketing.
	// Default: DefaultConfig
	SizeClasses SizeClassConfig

	// ArenaSize is the mapping size for Arena in bytes.
	// Default: DefaultArenaSize
	ArenaSize int
}

// DefaultOptions returns the default strategy options.
func DefaultOptions() Options {
	return Options{
		SizeClasses: DefaultConfig,
		ArenaSize:   DefaultArenaSize,
	}
}

// NewStrategy builds a strategy of the given kind. Zero-valued option fields
// fall back to their defaults.
func NewStrategy(kind Kind, opts Options) (Strategy, error) {
	switch kind {
	case KindHeap:
		return NewHeap(opts.MaxBytes), nil
	case KindPool:
		cfg := opts.SizeClasses
		if cfg.MediumMax == 0 {
			cfg = DefaultConfig
		}
		return NewPool(cfg, opts.MaxBytes), nil
	case KindArena:
		size := opts.ArenaSize
		if size == 0 {
			size = DefaultArenaSize
		}
		a, err := NewArena(size)
		if err != nil {
			return nil, err
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, kind)
	}
}
