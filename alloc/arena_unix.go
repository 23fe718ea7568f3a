//go:build unix

package alloc

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// mapRegion reserves size bytes of private anonymous memory.
func mapRegion(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		if errors.Is(err, unix.ENOMEM) {
			return nil, ErrOutOfMemory
		}
		return nil, errors.Wrapf(err, "alloc: mmap %d bytes", size)
	}
	return data, nil
}

// unmapRegion releases a region returned by mapRegion.
func unmapRegion(data []byte) error {
	if data == nil {
		return nil
	}
	if err := unix.Munmap(data); err != nil {
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return errors.Wrap(err, "alloc: munmap")
	}
	return nil
}
