package alloc

import (
	"github.com/joshuapare/memkit/internal/layout"
)

// Ref identifies a live allocation: the byte offset of its payload
// within the segment. NilRef is the absent value; payloads always sit
// at least one unit above the segment's low watermark, so offset zero
// is never a valid payload.
type Ref int64

// NilRef is the nil allocation reference. Freeing it is a no-op.
const NilRef Ref = 0

// Segment is the contract the allocator consumes from its underlying
// storage. *seg.Segment satisfies it. The backing array returned by
// Bytes must not relocate across Sbrk calls.
type Segment interface {
	// Bytes returns the live region between the watermarks.
	Bytes() []byte

	// Size returns the live region size in bytes.
	Size() int

	// PageSize returns the growth granularity hint in bytes.
	PageSize() int

	// Sbrk extends the high watermark by n bytes and returns the byte
	// offset of the new region, or an error if it cannot.
	Sbrk(n int) (int, error)

	// Reset rolls the high watermark back to the low watermark.
	Reset()
}

// Heap is a first-fit allocator over a Segment. The zero value is not
// usable; construct with New. Not safe for concurrent use.
type Heap struct {
	seg Segment

	// freep is the roving head of the circular free list, or NilBlock
	// when the list is empty. It migrates on every operation to spread
	// wear over the list.
	freep layout.Block

	stats Stats
}

// New returns a Heap over the given segment with an empty free list.
// The first allocation seeds the list by growing the segment.
func New(s Segment) *Heap {
	return &Heap{seg: s, freep: layout.NilBlock}
}

// GetFree returns the total bytes currently on the free list, metadata
// included.
func (h *Heap) GetFree() int {
	if h.freep == layout.NilBlock {
		return 0
	}
	data := h.seg.Bytes()
	var total int64
	p := h.freep
	for {
		total += layout.Size(data, p)
		p = layout.Next(data, p)
		if p == h.freep {
			break
		}
	}
	return layout.Bytes(total)
}

// Payload returns the payload slice for a live reference, spanning the
// block's full capacity. The slice is only valid until the reference is
// freed or the heap is reset.
func (h *Heap) Payload(ref Ref) []byte {
	if ref == NilRef {
		return nil
	}
	data := h.seg.Bytes()
	b := blockOf(ref)
	return data[int(ref) : int(ref)+layout.PayloadBytes(layout.Size(data, b))]
}

// Reset rolls the segment back to empty and clears the free list.
// Every outstanding reference is invalid afterwards.
func (h *Heap) Reset() {
	h.seg.Reset()
	h.freep = layout.NilBlock
	h.stats = Stats{}
}

// blockOf derives the block handle from a payload reference: the
// header is the unit immediately below the payload.
func blockOf(ref Ref) layout.Block {
	return layout.BlockAt(int(ref)) - 1
}
