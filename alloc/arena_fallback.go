//go:build !unix

package alloc

// mapRegion falls back to a Go byte slice when mmap is not available.
func mapRegion(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapRegion([]byte) error {
	return nil
}
