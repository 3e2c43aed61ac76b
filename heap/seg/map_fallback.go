//go:build !unix

package seg

import "os"

// mapAnon on platforms without anonymous mappings falls back to a
// heap-allocated buffer. Capacity is fixed at creation, so the backing
// array still never relocates.
func mapAnon(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmap(_ []byte) error {
	return nil
}

func pageSize() int {
	return os.Getpagesize()
}
