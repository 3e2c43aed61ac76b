// Package alloc implements a first-fit heap allocator with boundary
// tags and immediate bidirectional coalescing over a growable segment.
//
// # Overview
//
// The allocator services requests for arbitrarily sized byte buffers
// from a contiguous segment (see heap/seg), recycling freed space
// before asking the segment for more. Free blocks live on a single
// circular doubly linked list threaded through the blocks themselves:
// the header record carries the next link, the footer record carries
// the prev link, and both records mirror the block size so physical
// neighbours can be found from either side in O(1).
//
// # Allocation
//
// Alloc rounds the request up to whole 16-byte units (header + payload
// + footer), then walks the free list from the roving head looking for
// the first block large enough. A block that fits exactly, or leaves
// only a single spare unit, is taken whole; a one-unit residual could
// not hold its own header and footer. Anything larger is split: the
// free block shrinks in place and the allocated piece is carved from
// its upper end, which leaves the free block's list links untouched.
//
// When the walk wraps around without a fit, the segment is grown by at
// least one page and the new region is released into the free list
// through the normal Free path, so every block installation exercises
// the same coalescing code.
//
// # Freeing
//
// Free locates the block from its payload reference, merges it with a
// free upper neighbour and then a free lower neighbour, and links the
// result back in at the roving head. The allocated/free discriminator
// is the header link word: nil means allocated. Unlink nulls a block's
// links for exactly that reason.
//
// # Lifecycle
//
//	s, _ := seg.New(seg.DefaultCapacity)
//	h := alloc.New(s)
//
//	ref, buf, err := h.Alloc(256)
//	if err != nil {
//	    return err
//	}
//	copy(buf, payload)
//
//	h.Free(ref)
//
// Reset discards every block and rolls the segment back to empty;
// outstanding references are invalid afterwards.
//
// # Error handling
//
// Exhaustion surfaces as ErrNoMemory from Alloc, Realloc and Calloc.
// Calloc reports multiplication overflow as ErrOverflow without
// touching the segment. Freeing a reference whose recorded size is
// zero or exceeds the heap is unrecoverable corruption and panics.
//
// # Thread safety
//
// A Heap is not safe for concurrent use. Callers serialise access.
package alloc
