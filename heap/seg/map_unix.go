//go:build unix

package seg

import (
	"errors"

	"golang.org/x/sys/unix"
)

// mapAnon reserves size bytes as a private anonymous mapping. The
// mapping is page aligned, which is what guarantees unit-aligned block
// offsets translate into maximally aligned payload addresses.
func mapAnon(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmap(buf []byte) error {
	err := unix.Munmap(buf)
	if errors.Is(err, unix.EINVAL) {
		// Treat double-unmap as no-op for callers.
		return nil
	}
	return err
}

func pageSize() int {
	return unix.Getpagesize()
}
