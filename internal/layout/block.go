// Package layout defines the on-segment block format used by the heap
// allocator: fixed-size header and footer records with mirrored size
// fields (boundary tags) and free-list link words.
//
// # Record format
//
// A block is a contiguous run of 16-byte units inside the segment. Its
// first unit is the header, its last unit is the footer:
//
//	header:  word0 = next free block link    word1 = size in units
//	footer:  word0 = prev free block link    word1 = size in units
//
// The size counts ALL units in the block, header and footer included,
// and is stored in both records so that a physical neighbour can be
// located from either end in O(1).
//
// Link words encode a Block (a unit index into the segment) with a +1
// bias: the zero word is the nil link. A block whose header link is nil
// is allocated; a non-nil header link means the block is on the free
// list. The allocator depends on this discriminator during coalescing,
// so the link slot is never reused for anything else while a block is
// allocated.
package layout

// Block is a handle to a block: the unit index of its header within the
// segment. NilBlock is the absent value.
type Block int64

// NilBlock is the nil block handle. It is distinct from unit index 0,
// which is a valid block position at the bottom of the segment.
const NilBlock Block = -1

// UnitsFor returns the block size in units needed to satisfy a request
// of nbytes payload bytes: the smallest count of units that holds the
// payload plus a footer, plus one more unit for the header. The result
// is always at least MinBlockUnits.
func UnitsFor(nbytes int) int64 {
	return int64((nbytes+2*UnitSize-1)/UnitSize) + 1
}

// Bytes converts a unit count to bytes.
func Bytes(units int64) int {
	return int(units) * UnitSize
}

// BlockAt returns the block handle for a header located at the given
// byte offset. The offset must be unit aligned.
func BlockAt(byteOff int) Block {
	return Block(byteOff / UnitSize)
}

// PayloadOff returns the byte offset of a block's payload, the unit
// immediately after the header.
func PayloadOff(b Block) int {
	return (int(b) + 1) * UnitSize
}

// PayloadBytes returns the payload capacity in bytes of a block of the
// given size: everything between header and footer.
func PayloadBytes(units int64) int {
	return int(units-MinBlockUnits) * UnitSize
}

// Size returns the size in units recorded at unit u. The size word sits
// at the same offset in header and footer records, so u may be either.
func Size(data []byte, u Block) int64 {
	return int64(ReadU64(data, int(u)*UnitSize+sizeField))
}

// SetSize records size n in both boundary tags of block b: the header
// at b and the footer at b+n-1.
func SetSize(data []byte, b Block, n int64) {
	PutU64(data, int(b)*UnitSize+sizeField, uint64(n))
	PutU64(data, (int(b)+int(n)-1)*UnitSize+sizeField, uint64(n))
}

// Next returns the free-list successor stored in b's header, or
// NilBlock if the link is nil (b is allocated).
func Next(data []byte, b Block) Block {
	return decodeLink(ReadU64(data, int(b)*UnitSize))
}

// SetNext stores the free-list successor in b's header.
func SetNext(data []byte, b, next Block) {
	PutU64(data, int(b)*UnitSize, encodeLink(next))
}

// Prev returns the free-list predecessor stored in b's footer, or
// NilBlock if the link is nil.
func Prev(data []byte, b Block) Block {
	return decodeLink(ReadU64(data, footerOff(data, b)))
}

// SetPrev stores the free-list predecessor in b's footer.
func SetPrev(data []byte, b, prev Block) {
	PutU64(data, footerOff(data, b), encodeLink(prev))
}

// footerOff returns the byte offset of b's footer record, located from
// the header's size tag.
func footerOff(data []byte, b Block) int {
	return (int(b) + int(Size(data, b)) - 1) * UnitSize
}

func encodeLink(b Block) uint64 {
	if b == NilBlock {
		return 0
	}
	return uint64(b) + 1
}

func decodeLink(w uint64) Block {
	if w == 0 {
		return NilBlock
	}
	return Block(w - 1)
}
