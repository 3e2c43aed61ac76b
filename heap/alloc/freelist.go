package alloc

import (
	"github.com/joshuapare/memkit/internal/layout"
)

// Circular doubly linked free list operations. All are O(1). The list
// is threaded through the blocks themselves: next in the header, prev
// in the footer. Traversal order is insertion history, not address
// order.

// link inserts b immediately before pos. A nil pos forms a singleton
// cycle and makes b the roving head.
func (h *Heap) link(data []byte, b, pos layout.Block) {
	if pos == layout.NilBlock {
		layout.SetNext(data, b, b)
		layout.SetPrev(data, b, b)
		h.freep = b
		return
	}
	prev := layout.Prev(data, pos)
	layout.SetNext(data, prev, b)
	layout.SetPrev(data, b, prev)
	layout.SetNext(data, b, pos)
	layout.SetPrev(data, pos, b)
}

// unlink splices b out of the cycle and nulls its own links. The
// nulled header link is what marks b allocated afterwards, so this is
// not optional bookkeeping. A singleton empties the list.
func (h *Heap) unlink(data []byte, b layout.Block) {
	if layout.Next(data, b) == b {
		layout.SetNext(data, b, layout.NilBlock)
		layout.SetPrev(data, b, layout.NilBlock)
		h.freep = layout.NilBlock
		return
	}
	prev := layout.Prev(data, b)
	next := layout.Next(data, b)
	layout.SetNext(data, prev, next)
	layout.SetPrev(data, next, prev)
	layout.SetNext(data, b, layout.NilBlock)
	layout.SetPrev(data, b, layout.NilBlock)
}

// after returns the physically following block, or NilBlock if b is at
// the high watermark.
func after(data []byte, b layout.Block) layout.Block {
	n := b + layout.Block(layout.Size(data, b))
	if layout.Bytes(int64(n)) >= len(data) {
		return layout.NilBlock
	}
	return n
}

// before returns the physically preceding block, reconstructed from
// the footer record just below b's header, or NilBlock if b is at the
// low watermark.
func before(data []byte, b layout.Block) layout.Block {
	if b <= 0 {
		return layout.NilBlock
	}
	return b - layout.Block(layout.Size(data, b-1))
}
