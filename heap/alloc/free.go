package alloc

import (
	"github.com/intuitivelabs/slog"

	"github.com/joshuapare/memkit/internal/layout"
)

// Free returns an allocation to the pool, merging it with any free
// physical neighbour before linking it in at the roving head. A NilRef
// is a no-op. A reference whose recorded size is zero or exceeds the
// heap is corruption and panics.
func (h *Heap) Free(ref Ref) {
	if ref == NilRef {
		return
	}
	data := h.seg.Bytes()
	if int(ref)%layout.UnitSize != 0 ||
		int(ref) < layout.UnitSize ||
		int(ref)+layout.UnitSize > len(data) {
		PANIC("free: bad payload ref %d (heap %d bytes)", int(ref), len(data))
	}

	b := blockOf(ref)
	sz := layout.Size(data, b)
	if sz <= 0 || layout.Bytes(sz) > h.seg.Size() {
		PANIC("free: block %d has corrupt size %d (heap %d bytes)",
			int(b), sz, h.seg.Size())
	}
	h.stats.FreeCalls++
	h.stats.BytesFreed += int64(layout.Bytes(sz))

	if h.freep == layout.NilBlock {
		h.link(data, b, layout.NilBlock)
		return
	}

	// Upper neighbour free: absorb it. Its header and footer become
	// interior bytes of b.
	if u := after(data, b); u != layout.NilBlock && layout.Next(data, u) != layout.NilBlock {
		if Log.L(slog.LDBG) {
			Log.LLog(slog.LDBG, 1, pDBG, "coalesce upper: %d <- %d\n", int(b), int(u))
		}
		if h.freep == u {
			h.freep = layout.Prev(data, u)
		}
		h.unlink(data, u)
		layout.SetSize(data, b, sz+layout.Size(data, u))
		layout.SetNext(data, b, layout.NilBlock)
		layout.SetPrev(data, b, layout.NilBlock)
		sz = layout.Size(data, b)
		h.stats.CoalesceUpper++
	}

	// Lower neighbour free: absorb b into it and continue with the
	// merged block.
	if l := before(data, b); l != layout.NilBlock && layout.Next(data, l) != layout.NilBlock {
		if Log.L(slog.LDBG) {
			Log.LLog(slog.LDBG, 1, pDBG, "coalesce lower: %d <- %d\n", int(l), int(b))
		}
		if h.freep == l {
			h.freep = layout.Prev(data, l)
		}
		h.unlink(data, l)
		layout.SetSize(data, l, layout.Size(data, l)+sz)
		layout.SetNext(data, l, layout.NilBlock)
		layout.SetPrev(data, l, layout.NilBlock)
		b = l
		h.stats.CoalesceLower++
	}

	h.link(data, b, h.freep)
	h.freep = layout.Prev(data, b)
}
