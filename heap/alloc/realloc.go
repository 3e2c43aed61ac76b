package alloc

import (
	"math/bits"

	"github.com/joshuapare/memkit/internal/layout"
)

// Realloc resizes an allocation. A NilRef behaves as Alloc. If the
// existing block already has capacity for nbytes, the same reference
// is returned. Otherwise a fresh block is allocated, the payload is
// copied, and the old block is freed. On failure the old allocation is
// left intact.
func (h *Heap) Realloc(ref Ref, nbytes int) (Ref, []byte, error) {
	if ref == NilRef {
		return h.Alloc(nbytes)
	}
	if nbytes < 0 {
		return NilRef, nil, ErrBadSize
	}

	data := h.seg.Bytes()
	b := blockOf(ref)
	sz := layout.Size(data, b)
	if sz >= layout.UnitsFor(nbytes) {
		return ref, data[int(ref) : int(ref)+layout.PayloadBytes(sz)], nil
	}

	newRef, newPayload, err := h.Alloc(nbytes)
	if err != nil {
		return NilRef, nil, err
	}

	// Alloc may have grown the segment; refresh before reading the old
	// payload. Only payload bytes are copied, not the old footer.
	data = h.seg.Bytes()
	old := data[int(ref) : int(ref)+layout.PayloadBytes(sz)]
	n := len(old)
	if nbytes < n {
		n = nbytes
	}
	copy(newPayload, old[:n])
	h.Free(ref)
	return newRef, newPayload, nil
}

// Calloc allocates zeroed space for count elements of elemSize bytes
// each. A count*elemSize overflow returns ErrOverflow without
// consulting the segment.
func (h *Heap) Calloc(count, elemSize int) (Ref, []byte, error) {
	if count < 0 || elemSize < 0 {
		return NilRef, nil, ErrBadSize
	}
	hi, lo := bits.Mul64(uint64(count), uint64(elemSize))
	if hi != 0 || lo > uint64(maxInt) {
		return NilRef, nil, ErrOverflow
	}

	ref, payload, err := h.Alloc(int(lo))
	if err != nil {
		return NilRef, nil, err
	}
	clear(payload)
	return ref, payload, nil
}

const maxInt = int(^uint(0) >> 1)
