// Package format defines the on-disk block type markers used by the
// seriesfile block payload header (spec §6).
package format

// BlockType identifies the value column's encoding within a block payload.
// It is stored as a single byte immediately after the block's CRC-32.
type BlockType uint8

const (
	// Float64 blocks decode to a Float ColumnPair via the Gorilla codec.
	Float64 BlockType = 0
	// Int64 blocks decode to an Integer ColumnPair.
	Int64 BlockType = 1
	// Bool blocks are recognized but rejected with UnsupportedBlockType.
	Bool BlockType = 2
	// String blocks are recognized but rejected with UnsupportedBlockType.
	String BlockType = 3
	// Unsigned blocks are recognized but rejected with UnsupportedBlockType.
	Unsigned BlockType = 4
)

func (t BlockType) String() string {
	switch t {
	case Float64:
		return "Float64"
	case Int64:
		return "Int64"
	case Bool:
		return "Bool"
	case String:
		return "String"
	case Unsigned:
		return "Unsigned"
	default:
		return "Unknown"
	}
}

// Supported reports whether this reader can decode the value column for
// this block type. Float64 and Int64 are the only supported types; Bool,
// String, Unsigned, and any other marker are recognized-but-unsupported.
func (t BlockType) Supported() bool {
	return t == Float64 || t == Int64
}
