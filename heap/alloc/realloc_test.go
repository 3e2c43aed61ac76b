package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/layout"
)

func Test_Realloc_NilRefActsAsAlloc(t *testing.T) {
	h, _ := newTestHeap(2)

	ref, payload, err := h.Realloc(NilRef, 100)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
	require.GreaterOrEqual(t, len(payload), 100)
	checkInvariants(t, h)
}

func Test_Realloc_InPlaceWhenCapacitySuffices(t *testing.T) {
	h, _ := newTestHeap(2)

	ref, payload := mustAlloc(t, h, 100)
	free := h.GetFree()

	// Shrinking, or growing within the block's rounded-up capacity,
	// returns the same reference and moves nothing.
	for _, n := range []int{100, 10, 1, len(payload)} {
		got, gotPayload, err := h.Realloc(ref, n)
		require.NoError(t, err)
		require.Equal(t, ref, got, "Realloc(%d) must stay in place", n)
		require.Len(t, gotPayload, len(payload))
	}
	require.Equal(t, free, h.GetFree())
	checkInvariants(t, h)
}

func Test_Realloc_RelocatesAndPreservesContent(t *testing.T) {
	h, _ := newTestHeap(8)

	ref, payload := mustAlloc(t, h, 100)
	for i := 0; i < 100; i++ {
		payload[i] = byte(i*7 + 1)
	}

	// 10000 bytes cannot fit the old block; the content must follow.
	newRef, newPayload, err := h.Realloc(ref, 10000)
	require.NoError(t, err)
	require.NotEqual(t, ref, newRef)
	require.GreaterOrEqual(t, len(newPayload), 10000)
	for i := 0; i < 100; i++ {
		require.Equal(t, byte(i*7+1), newPayload[i], "content lost at byte %d", i)
	}

	// The old block went back to the pool and merged with the free block
	// below it, which now spans the whole first page.
	data := h.seg.Bytes()
	require.NotEqual(t, layout.NilBlock, layout.Next(data, 0),
		"old block must be free after relocation")
	require.Equal(t, int64(testPageUnits), layout.Size(data, 0))
	checkInvariants(t, h)
}

func Test_Realloc_ZeroSizeStaysInPlace(t *testing.T) {
	h, _ := newTestHeap(2)

	// Every block has capacity for zero bytes, so the block is kept.
	ref, payload := mustAlloc(t, h, 100)
	newRef, newPayload, err := h.Realloc(ref, 0)
	require.NoError(t, err)
	require.Equal(t, ref, newRef)
	require.Len(t, newPayload, len(payload))

	data := h.seg.Bytes()
	require.Equal(t, layout.UnitsFor(100),
		layout.Size(data, blockOf(newRef)))
	checkInvariants(t, h)
}

func Test_Realloc_FailurePreservesOriginal(t *testing.T) {
	h, s := newTestHeap(1)

	ref, payload := mustAlloc(t, h, 100)
	for i := range payload {
		payload[i] = 0xC3
	}

	s.failSbrk = true
	newRef, newPayload, err := h.Realloc(ref, testPage*4)
	require.ErrorIs(t, err, ErrNoMemory)
	require.Equal(t, NilRef, newRef)
	require.Nil(t, newPayload)

	// The original allocation is untouched on failure.
	for i, b := range h.Payload(ref) {
		require.Equal(t, byte(0xC3), b, "byte %d clobbered", i)
	}
	checkInvariants(t, h)
}

func Test_Calloc_ReturnsZeroedPayload(t *testing.T) {
	h, _ := newTestHeap(2)

	// Dirty the heap first so Calloc has something to scrub.
	ref, payload := mustAlloc(t, h, 512)
	for i := range payload {
		payload[i] = 0xFF
	}
	h.Free(ref)

	cref, cpayload, err := h.Calloc(64, 8)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, cref)
	require.GreaterOrEqual(t, len(cpayload), 512)
	for i, b := range cpayload {
		require.Zero(t, b, "byte %d not zeroed", i)
	}
	checkInvariants(t, h)
}

func Test_Calloc_OverflowDetected(t *testing.T) {
	h, s := newTestHeap(2)

	ref, payload, err := h.Calloc(maxInt/2+1, 4)
	require.ErrorIs(t, err, ErrOverflow)
	require.Equal(t, NilRef, ref)
	require.Nil(t, payload)
	require.Zero(t, s.sbrkCalls, "overflow must not consult the segment")
}

func Test_Calloc_ZeroCount(t *testing.T) {
	h, _ := newTestHeap(2)

	ref, payload, err := h.Calloc(0, 8)
	require.NoError(t, err)
	require.NotEqual(t, NilRef, ref)
	require.Empty(t, payload)
	checkInvariants(t, h)
}
