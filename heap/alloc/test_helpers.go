package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/heap/seg"
	"github.com/joshuapare/memkit/internal/layout"
)

// Test fixtures use a fixed 4KB page so unit arithmetic in assertions
// is deterministic across platforms.
const (
	testPage      = 4096
	testPageUnits = testPage / layout.UnitSize
)

// stubSegment is an in-memory Segment with a fixed reservation and an
// injectable sbrk failure, for driving the allocator without the OS.
type stubSegment struct {
	buf       []byte
	brk       int
	sbrkCalls int
	failSbrk  bool
}

func newStubSegment(pages int) *stubSegment {
	return &stubSegment{buf: make([]byte, pages*testPage)}
}

func (s *stubSegment) Bytes() []byte { return s.buf[:s.brk] }
func (s *stubSegment) Size() int     { return s.brk }
func (s *stubSegment) PageSize() int { return testPage }
func (s *stubSegment) Reset()        { s.brk = 0 }

func (s *stubSegment) Sbrk(n int) (int, error) {
	s.sbrkCalls++
	if s.failSbrk || s.brk+n > len(s.buf) {
		return 0, seg.ErrSegmentFull
	}
	off := s.brk
	s.brk += n
	return off, nil
}

// newTestHeap returns a fresh heap over a stub segment of the given
// page capacity.
func newTestHeap(pages int) (*Heap, *stubSegment) {
	s := newStubSegment(pages)
	return New(s), s
}

// mustAlloc allocates or fails the test.
func mustAlloc(t *testing.T, h *Heap, nbytes int) (Ref, []byte) {
	t.Helper()
	ref, payload, err := h.Alloc(nbytes)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
	require.GreaterOrEqual(t, len(payload), nbytes)
	return ref, payload
}

// bytesForUnits returns the largest request that yields a block of
// exactly the given unit count: the block's full payload capacity.
func bytesForUnits(units int64) int {
	return layout.PayloadBytes(units)
}

// checkInvariants validates the structural invariants that must hold
// between any two external calls:
//
//  1. header.size == footer.size >= 2 for every block
//  2. block sizes tile the segment exactly
//  3. header.next != nil iff the block is on the free list
//  4. next(prev(b)) == b and prev(next(b)) == b for list members
//  5. no two physically adjacent blocks are both free
//  7. freep == nil iff the list is empty
func checkInvariants(t *testing.T, h *Heap) {
	t.Helper()
	data := h.seg.Bytes()
	unitTotal := int64(len(data) / layout.UnitSize)

	// Physical walk, bottom to top.
	var sum int64
	freeByWalk := make(map[layout.Block]bool)
	prevFree := false
	for b := layout.Block(0); int64(b) < unitTotal; {
		sz := layout.Size(data, b)
		require.GreaterOrEqual(t, sz, int64(layout.MinBlockUnits),
			"block %d: size %d below minimum", b, sz)
		require.LessOrEqual(t, int64(b)+sz, unitTotal,
			"block %d: size %d overruns segment", b, sz)
		require.Equal(t, sz, layout.Size(data, b+layout.Block(sz)-1),
			"block %d: footer tag does not mirror header", b)

		free := layout.Next(data, b) != layout.NilBlock
		if free {
			require.False(t, prevFree,
				"block %d: adjacent free blocks not coalesced", b)
			freeByWalk[b] = true
		}
		prevFree = free
		sum += sz
		b += layout.Block(sz)
	}
	require.Equal(t, unitTotal, sum, "block sizes must tile the segment")

	// Free list walk from the roving head.
	if h.freep == layout.NilBlock {
		require.Empty(t, freeByWalk,
			"freep is nil but blocks are marked free")
		return
	}
	seen := make(map[layout.Block]bool)
	p := h.freep
	for {
		require.False(t, seen[p], "free list revisits block %d", p)
		seen[p] = true
		next := layout.Next(data, p)
		prev := layout.Prev(data, p)
		require.Equal(t, p, layout.Prev(data, next),
			"block %d: prev(next) broken", p)
		require.Equal(t, p, layout.Next(data, prev),
			"block %d: next(prev) broken", p)
		p = next
		if p == h.freep {
			break
		}
	}
	require.Equal(t, freeByWalk, seen,
		"free list membership disagrees with header links")
}
