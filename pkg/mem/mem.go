// Package mem provides a high-level API over a single process-wide
// heap allocator.
//
// # Quick Start
//
//	if err := mem.Init(); err != nil {
//	    log.Fatal(err)
//	}
//	defer mem.Deinit()
//
//	ref, buf, err := mem.Malloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(buf, data)
//	mem.Free(ref)
//
// The package owns one allocator instance and its segment. Lifecycle
// is Init, then any mix of Malloc/Calloc/Realloc/Free/Reset, then
// Deinit. Reset and Deinit invalidate every outstanding reference.
//
// For multiple independent heaps, or to control the segment directly,
// use heap/alloc and heap/seg instead. Like the underlying allocator,
// this package is not safe for concurrent use.
package mem

import (
	"errors"

	"github.com/joshuapare/memkit/heap/alloc"
	"github.com/joshuapare/memkit/heap/seg"
)

// Ref identifies a live allocation from the process-wide heap.
type Ref = alloc.Ref

// NilRef is the nil allocation reference.
const NilRef = alloc.NilRef

// ErrNotInitialized indicates use of the package before Init or after
// Deinit.
var ErrNotInitialized = errors.New("mem: allocator not initialized")

var (
	segment *seg.Segment
	heap    *alloc.Heap
)

// Init acquires the segment and prepares the allocator. Calling Init
// on an initialized package tears the old instance down first.
func Init(opts ...Option) error {
	cfg := defaultConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if segment != nil {
		if err := Deinit(); err != nil {
			return err
		}
	}
	s, err := seg.New(cfg.capacity)
	if err != nil {
		return err
	}
	segment = s
	heap = alloc.New(s)
	return nil
}

// Reset discards every allocation and rolls the heap back to empty.
func Reset() {
	if heap != nil {
		heap.Reset()
	}
}

// Deinit releases the segment. The package is unusable until the next
// Init.
func Deinit() error {
	if segment == nil {
		return nil
	}
	err := segment.Close()
	segment = nil
	heap = nil
	return err
}

// Malloc allocates at least n bytes and returns the reference and the
// payload slice.
func Malloc(n int) (Ref, []byte, error) {
	if heap == nil {
		return NilRef, nil, ErrNotInitialized
	}
	return heap.Alloc(n)
}

// Calloc allocates zeroed space for count elements of size bytes each.
func Calloc(count, size int) (Ref, []byte, error) {
	if heap == nil {
		return NilRef, nil, ErrNotInitialized
	}
	return heap.Calloc(count, size)
}

// Realloc resizes an allocation, relocating and copying if the current
// block is too small.
func Realloc(ref Ref, n int) (Ref, []byte, error) {
	if heap == nil {
		return NilRef, nil, ErrNotInitialized
	}
	return heap.Realloc(ref, n)
}

// Free returns an allocation to the pool. NilRef is a no-op.
func Free(ref Ref) {
	if heap == nil {
		return
	}
	heap.Free(ref)
}

// GetFree returns the total bytes on the free list.
func GetFree() int {
	if heap == nil {
		return 0
	}
	return heap.GetFree()
}

// HeapSize returns the current segment size in bytes.
func HeapSize() int {
	if segment == nil {
		return 0
	}
	return segment.Size()
}

// Stats returns the allocator counters.
func Stats() alloc.Stats {
	if heap == nil {
		return alloc.Stats{}
	}
	return heap.Stats()
}
