package layout

// Core sizing constants for the block format.
//
// Every size in the allocator is counted in units of one header record.
// A record is two 64-bit words, which also makes it as strictly aligned
// as any scalar the platform supports, so payloads that start on a unit
// boundary satisfy maximal alignment.
const (
	// WordSize is the size of one record word in bytes.
	WordSize = 8

	// UnitSize is the size of one allocation unit (one header or footer
	// record) in bytes.
	UnitSize = 2 * WordSize

	// MinBlockUnits is the smallest legal block: a header and a footer
	// with no payload between them.
	MinBlockUnits = 2

	// sizeField is the byte offset of the size word within a record.
	// The link word is at offset 0 in both header and footer records.
	sizeField = WordSize
)
