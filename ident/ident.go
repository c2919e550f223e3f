// Package ident provides the 64-bit identifier used for organization and
// bucket ids throughout seriesfile: parsing from and formatting to
// zero-padded lowercase hexadecimal text.
package ident

import (
	"fmt"

	"github.com/arloliu/seriesfile/errs"
)

// ID is a 64-bit identifier. It fills two roles in a series key: the
// organization id and the bucket id. Its textual form is always 16
// lowercase hex digits, zero-padded; Parse accepts any width up to 16
// digits.
type ID uint64

// hexDigits maps a byte to its hex value, or 0xFF if it is not a hex digit.
var hexDigits = buildHexTable()

func buildHexTable() [256]uint8 {
	var t [256]uint8
	for i := range t {
		t[i] = 0xFF
	}
	for c := byte('0'); c <= '9'; c++ {
		t[c] = c - '0'
	}
	for c := byte('a'); c <= 'f'; c++ {
		t[c] = c - 'a' + 10
	}
	for c := byte('A'); c <= 'F'; c++ {
		t[c] = c - 'A' + 10
	}

	return t
}

// Parse decodes a hexadecimal string into an ID. It accepts any width up to
// 16 digits and is case-insensitive; it does not require zero-padding.
func Parse(s string) (ID, error) {
	if len(s) == 0 || len(s) > 16 {
		return 0, errs.Wrap(errs.KindDecode, errs.ErrInvalidHex, "length %d", len(s))
	}

	var v uint64
	for i := 0; i < len(s); i++ {
		d := hexDigits[s[i]]
		if d == 0xFF {
			return 0, errs.Wrap(errs.KindDecode, errs.ErrInvalidHex, "byte %q at position %d", s[i], i)
		}
		v = v<<4 | uint64(d)
	}

	return ID(v), nil
}

// String formats the ID as 16 lowercase hex digits, zero-padded.
func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// Uint64 returns the identifier as a plain uint64.
func (id ID) Uint64() uint64 {
	return uint64(id)
}
