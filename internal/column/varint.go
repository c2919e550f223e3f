// Package column implements the external column decoders the block reader
// treats as a fixed black-box contract (spec §6): a self-terminating
// timestamp decoder plus count-driven float and integer value decoders.
// The encode side exists only to build test fixtures; nothing in the
// public API writes seriesfile data (spec §1 Non-goals).
package column

import "encoding/binary"

// appendUvarint appends the unsigned LEB128 encoding of v to buf.
func appendUvarint(buf []byte, v uint64) []byte {
	var tmp [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(tmp[:], v)

	return append(buf, tmp[:n]...)
}

// decodeUvarint decodes one unsigned LEB128 varint from data starting at
// offset, matching the fast-path/fallback shape of the teacher's
// decodeVarint64 (internal/encoding/ts_delta.go) but reporting overflow
// explicitly instead of silently failing, since the block header's ts_len
// varint (spec §4.3 step 4) must distinguish "truncated" from "overflowed".
func decodeUvarint(data []byte, offset int) (value uint64, next int, overflow bool, ok bool) {
	v, n := binary.Uvarint(data[offset:])
	if n == 0 {
		return 0, offset, false, false // truncated: not enough bytes
	}
	if n < 0 {
		return 0, offset, true, false // overflow: more than 64 bits
	}

	return v, offset + n, false, true
}

// ReadTsLen decodes the block payload's leading ts_len varint (spec §6:
// "varint ts_len"), returning the decoded value and the number of bytes it
// occupied. ok is false if data is too short; overflow is true if the
// varint claims to need more than 64 bits.
func ReadTsLen(data []byte) (value uint64, consumed int, overflow bool, ok bool) {
	return decodeUvarint(data, 0)
}

func zigzagEncode(v int64) uint64 {
	return uint64((v << 1) ^ (v >> 63))
}

func zigzagDecode(v uint64) int64 {
	return int64(v>>1) ^ -int64(v&1)
}
