package alloc

import (
	"github.com/intuitivelabs/slog"

	"github.com/joshuapare/memkit/internal/layout"
)

// Alloc returns a reference to at least nbytes of payload, together
// with the payload slice spanning the block's full capacity. The
// payload is 16-byte aligned. Returns ErrNoMemory when the segment
// cannot be grown to cover the request.
func (h *Heap) Alloc(nbytes int) (Ref, []byte, error) {
	if nbytes < 0 {
		return NilRef, nil, ErrBadSize
	}
	h.stats.AllocCalls++
	units := layout.UnitsFor(nbytes)
	if Log.L(slog.LDBG) {
		Log.LLog(slog.LDBG, 1, pDBG, "alloc %d bytes -> %d units\n", nbytes, units)
	}

	if h.freep == layout.NilBlock {
		if _, err := h.grow(units); err != nil {
			return NilRef, nil, err
		}
	}

	data := h.seg.Bytes()
	for p := layout.Next(data, h.freep); ; p = layout.Next(data, p) {
		if sz := layout.Size(data, p); sz >= units {
			if sz == units || sz == units+1 {
				// Exact or near fit: take the block whole. The +1 case
				// would otherwise leave a one-unit residual that cannot
				// hold a header and footer.
				if h.freep == p {
					h.freep = layout.Prev(data, p)
				}
				h.unlink(data, p)
			} else {
				// Split: shrink the free block in place and carve the
				// allocated piece from its upper end. The free block's
				// header stays put, so its list links survive; only the
				// relocated footer needs its prev link rewritten.
				prev := layout.Prev(data, p)
				next := layout.Next(data, p)
				layout.SetSize(data, p, sz-units)
				layout.SetPrev(data, p, prev)
				layout.SetNext(data, p, next)

				p += layout.Block(sz - units)
				layout.SetSize(data, p, units)
				layout.SetNext(data, p, layout.NilBlock)
				layout.SetPrev(data, p, layout.NilBlock)

				h.freep = prev
				h.stats.Splits++
			}
			h.stats.BytesAllocated += int64(layout.Bytes(layout.Size(data, p)))
			off := layout.PayloadOff(p)
			return Ref(off), data[off : off+layout.PayloadBytes(layout.Size(data, p))], nil
		}

		if p == h.freep {
			// Wrapped around the whole list without a fit.
			np, err := h.grow(units)
			if err != nil {
				return NilRef, nil, err
			}
			data = h.seg.Bytes()
			p = np
			h.freep = layout.Prev(data, p)
		}
	}
}

// grow extends the segment by at least units, page rounded, and folds
// the new region into the free list by releasing it through Free. That
// keeps the release path the only code that installs blocks, so the
// new region coalesces with a free block at the old top of heap.
// Returns the roving head on success.
func (h *Heap) grow(units int64) (layout.Block, error) {
	pageUnits := int64(h.seg.PageSize() / layout.UnitSize)
	if units < pageUnits {
		units = pageUnits
	}

	off, err := h.seg.Sbrk(layout.Bytes(units))
	if err != nil {
		if Log.WARNon() {
			WARN("grow %d units refused by segment: %v\n", units, err)
		}
		return layout.NilBlock, ErrNoMemory
	}
	h.stats.GrowCalls++
	h.stats.GrowBytes += int64(layout.Bytes(units))

	data := h.seg.Bytes()
	b := layout.BlockAt(off)
	layout.SetSize(data, b, units)
	// The region may hold stale bytes after a reset; a stale header
	// link would make Free's neighbour probes misread the block.
	layout.SetNext(data, b, layout.NilBlock)
	layout.SetPrev(data, b, layout.NilBlock)

	h.Free(Ref(layout.PayloadOff(b)))
	return h.freep, nil
}
