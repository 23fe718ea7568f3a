package alloc

import "math"

// SizeClassConfig defines how Pool buckets block sizes.
// Requests in the same class share recycled buffers, so coarser classes reuse
// more often at the cost of internal fragmentation.
type SizeClassConfig struct {
	// Name for this configuration (for benchmarking and logs)
	Name string

	// Small allocation settings (linear increments)
	SmallMin       int // Minimum class size (typically 8)
	SmallMax       int // Max for linear increments (typically 256-512)
	SmallIncrement int // Increment size for small allocations (8, 16, or 32)

	// Medium allocation settings (logarithmic growth)
	MediumMax    int     // Sizes above this are not pooled
	GrowthFactor float64 // Exponential growth factor (1.5, 2.0, etc.)
}

// Predefined configurations.
var (
	// FineGrained: many small buckets, tight fit for small node types.
	ConfigFineGrained = SizeClassConfig{
		Name:           "FineGrained",
		SmallMin:       8,
		SmallMax:       256,
		SmallIncrement: 8,
		MediumMax:      16384,
		GrowthFactor:   1.5,
	}

	// Balanced: good balance between bucket count and reuse.
	ConfigBalanced = SizeClassConfig{
		Name:           "Balanced",
		SmallMin:       8,
		SmallMax:       512,
		SmallIncrement: 16,
		MediumMax:      16384,
		GrowthFactor:   1.5,
	}

	// Coarse: fewer buckets, more reuse, more internal fragmentation.
	ConfigCoarse = SizeClassConfig{
		Name:           "Coarse",
		SmallMin:       8,
		SmallMax:       512,
		SmallIncrement: 32,
		MediumMax:      16384,
		GrowthFactor:   2.0,
	}

	// DefaultConfig is used when no configuration is specified.
	DefaultConfig = ConfigBalanced
)

// sizeClassTable holds the computed size class boundaries.
type sizeClassTable struct {
	config     SizeClassConfig
	boundaries []int // Upper bound (inclusive) for each size class
}

// newSizeClassTable computes size class boundaries from config.
func newSizeClassTable(config SizeClassConfig) *sizeClassTable {
	table := &sizeClassTable{
		config:     config,
		boundaries: make([]int, 0, 64),
	}

	// Phase 1: Small allocations (linear increments)
	if config.SmallIncrement > 0 {
		for size := config.SmallMin; size < config.SmallMax; size += config.SmallIncrement {
			table.boundaries = append(table.boundaries, size+config.SmallIncrement-1)
		}
	}

	// Phase 2: Medium allocations (logarithmic growth)
	size := config.SmallMax
	for size < config.MediumMax {
		next := int(math.Ceil(float64(size) * config.GrowthFactor))
		if next <= size {
			next = size + 1 // Ensure progress
		}
		table.boundaries = append(table.boundaries, next-1)
		size = next
	}

	return table
}

// classOf returns the size class index for size, or -1 when size is too large
// to be pooled.
func (t *sizeClassTable) classOf(size int) int {
	lo, hi := 0, len(t.boundaries)-1
	found := -1
	for lo <= hi {
		mid := (lo + hi) / 2
		if size <= t.boundaries[mid] {
			found = mid
			hi = mid - 1
		} else {
			lo = mid + 1
		}
	}
	return found
}

// capacity returns the buffer size backing every block of class c.
func (t *sizeClassTable) capacity(c int) int {
	return t.boundaries[c]
}

// NumClasses returns the number of pooled size classes.
func (t *sizeClassTable) NumClasses() int {
	return len(t.boundaries)
}

// String returns the configuration name.
func (t *sizeClassTable) String() string {
	return t.config.Name
}
