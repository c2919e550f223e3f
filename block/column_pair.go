// Package block decodes a single data block's byte range into a typed,
// length-aligned columnar pair of timestamps and values (spec §4.3).
package block

import "github.com/arloliu/seriesfile/format"

// ColumnPair is a tagged union over the value column's type. Exactly one of
// the float and integer value columns is populated, selected by Kind and
// read through AsFloat or AsInteger; Bool, String, and
// Unsigned are representable Kinds (for exhaustive switches at call sites,
// spec §9) but a ColumnPair is never constructed with one of them — Reader
// rejects those block types before producing a value.
//
// Invariant: len(Timestamps) equals the length of whichever value column
// applies, and that length is at most 1000 (spec §3).
type ColumnPair struct {
	Kind       format.BlockType
	Timestamps []int64
	floats     []float64
	integers   []int64
}

// AsFloat returns the float64 values and true if Kind is Float64.
func (c ColumnPair) AsFloat() ([]float64, bool) {
	if c.Kind != format.Float64 {
		return nil, false
	}

	return c.floats, true
}

// AsInteger returns the int64 values and true if Kind is Int64.
func (c ColumnPair) AsInteger() ([]int64, bool) {
	if c.Kind != format.Int64 {
		return nil, false
	}

	return c.integers, true
}

// Len returns the number of data points in the pair.
func (c ColumnPair) Len() int {
	return len(c.Timestamps)
}
