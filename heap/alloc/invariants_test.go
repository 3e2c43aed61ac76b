package alloc

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/memkit/internal/layout"
)

// Test_Fuzz_RandomAllocFree_InvariantsHold drives the allocator with a
// reproducible random mix of operations and validates the structural
// invariants after every single call.
func Test_Fuzz_RandomAllocFree_InvariantsHold(t *testing.T) {
	h, s := newTestHeap(64)

	rng := rand.New(rand.NewSource(42))
	type allocation struct {
		ref  Ref
		fill byte
		n    int
	}
	var live []allocation

	for i := 0; i < 500; i++ {
		switch op := rng.Intn(10); {
		case op < 6: // allocate, biased to keep the heap busy
			n := rng.Intn(2000)
			ref, payload, err := h.Alloc(n)
			if err != nil {
				require.ErrorIs(t, err, ErrNoMemory)
				break
			}
			fill := byte(rng.Intn(255) + 1)
			for j := range payload {
				payload[j] = fill
			}
			live = append(live, allocation{ref, fill, len(payload)})

		case op < 9: // free a random live allocation
			if len(live) == 0 {
				break
			}
			k := rng.Intn(len(live))
			h.Free(live[k].ref)
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]

		default: // realloc a random live allocation
			if len(live) == 0 {
				break
			}
			k := rng.Intn(len(live))
			n := rng.Intn(3000)
			ref, payload, err := h.Realloc(live[k].ref, n)
			if err != nil {
				require.ErrorIs(t, err, ErrNoMemory)
				break
			}
			fill := live[k].fill
			keep := live[k].n
			if n < keep {
				keep = n
			}
			for j := 0; j < keep; j++ {
				require.Equal(t, fill, payload[j],
					"step %d: realloc lost byte %d", i, j)
			}
			for j := range payload {
				payload[j] = fill
			}
			live[k] = allocation{ref, fill, len(payload)}
		}

		checkInvariants(t, h)

		// Live payloads never overlap: each still carries its fill.
		for k, a := range live {
			p := h.Payload(a.ref)
			require.Len(t, p, a.n)
			if len(p) > 0 {
				require.Equal(t, a.fill, p[0], "step %d: allocation %d head", i, k)
				require.Equal(t, a.fill, p[len(p)-1], "step %d: allocation %d tail", i, k)
			}
		}
	}

	// Releasing everything must coalesce the heap back into a single
	// free block covering the whole segment.
	for _, a := range live {
		h.Free(a.ref)
		checkInvariants(t, h)
	}
	require.Equal(t, s.Size(), h.GetFree())
	require.Len(t, freeSizes(h), 1)
}

// Test_Sequence_GetFreeConservation tracks the conservation identity:
// free bytes plus live block bytes always equals the heap size.
func Test_Sequence_GetFreeConservation(t *testing.T) {
	h, _ := newTestHeap(16)

	rng := rand.New(rand.NewSource(7))
	liveBytes := 0
	var refs []Ref

	for i := 0; i < 200; i++ {
		if rng.Intn(3) > 0 || len(refs) == 0 {
			n := rng.Intn(1000)
			ref, _, err := h.Alloc(n)
			if err != nil {
				break
			}
			refs = append(refs, ref)
		} else {
			k := rng.Intn(len(refs))
			refs[k], refs[len(refs)-1] = refs[len(refs)-1], refs[k]
			h.Free(refs[len(refs)-1])
			refs = refs[:len(refs)-1]
		}

		liveBytes = 0
		data := h.seg.Bytes()
		for _, ref := range refs {
			liveBytes += len(h.Payload(ref)) + 2*layout.UnitSize
		}
		require.Equal(t, len(data), h.GetFree()+liveBytes,
			"free + live must account for every heap byte")
	}
}
