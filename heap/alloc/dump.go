package alloc

import (
	"fmt"
	"io"

	"github.com/joshuapare/memkit/internal/layout"
)

// Dump writes a human-readable rendition of the free list to w, one
// line per block in traversal order starting at the roving head.
func (h *Heap) Dump(w io.Writer) {
	if h.freep == layout.NilBlock {
		fmt.Fprintln(w, "free list: empty")
		return
	}
	data := h.seg.Bytes()
	fmt.Fprintf(w, "free list (heap %d bytes):\n", len(data))
	p := h.freep
	for {
		sz := layout.Size(data, p)
		marker := "  "
		if p == h.freep {
			marker = "* "
		}
		fmt.Fprintf(w, "%sblock %6d  size %6d units  %9d bytes\n",
			marker, int(p), sz, layout.Bytes(sz))
		p = layout.Next(data, p)
		if p == h.freep {
			break
		}
	}
}
