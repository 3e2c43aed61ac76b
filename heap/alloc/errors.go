package alloc

import "errors"

var (
	// ErrNoMemory indicates the segment could not be grown to satisfy
	// the request.
	ErrNoMemory = errors.New("alloc: out of memory")

	// ErrOverflow indicates a Calloc count*size multiplication
	// overflowed. The segment is not consulted in this case.
	ErrOverflow = errors.New("alloc: allocation size overflows")

	// ErrBadSize indicates a negative request size.
	ErrBadSize = errors.New("alloc: negative size")
)
