package column

// DecodeTimestamps decodes a delta-of-delta, zigzag-varint encoded
// timestamp stream: the first timestamp is a plain unsigned varint, the
// second is a zigzag-varint delta from the first, and every subsequent
// timestamp is a zigzag-varint delta-of-delta. Decoding continues until
// data is exhausted, so the resulting count is however many timestamps fit
// — the block reader treats this as self-terminating (spec §4.3 step 4).
//
// Grounded on the teacher's TimestampDeltaDecoder.All
// (internal/encoding/ts_delta.go), adapted from a count-bounded iterator to
// a byte-bounded one.
func DecodeTimestamps(data []byte) ([]int64, error) {
	if len(data) == 0 {
		return nil, nil
	}

	first, offset, overflow, ok := decodeUvarint(data, 0)
	if overflow {
		return nil, errVarintOverflow
	}
	if !ok {
		return nil, errTruncated
	}

	out := []int64{int64(first)} //nolint:gosec
	if offset == len(data) {
		return out, nil
	}

	zigzag, offset, overflow, ok := decodeUvarint(data, offset)
	if overflow {
		return nil, errVarintOverflow
	}
	if !ok {
		return nil, errTruncated
	}

	prevDelta := zigzagDecode(zigzag)
	curTS := out[0] + prevDelta
	out = append(out, curTS)

	for offset < len(data) {
		deltaZigzag, next, overflow, ok := decodeUvarint(data, offset)
		if overflow {
			return nil, errVarintOverflow
		}
		if !ok {
			return nil, errTruncated
		}
		offset = next

		prevDelta += zigzagDecode(deltaZigzag)
		curTS += prevDelta
		out = append(out, curTS)
	}

	return out, nil
}

// EncodeTimestamps is the inverse of DecodeTimestamps. It exists for
// building synthetic test fixtures; the public API never writes data
// (spec §1 Non-goals).
func EncodeTimestamps(values []int64) []byte {
	if len(values) == 0 {
		return nil
	}

	buf := appendUvarint(nil, uint64(values[0])) //nolint:gosec
	if len(values) == 1 {
		return buf
	}

	prevDelta := values[1] - values[0]
	buf = appendUvarint(buf, zigzagEncode(prevDelta))

	for i := 2; i < len(values); i++ {
		delta := values[i] - values[i-1]
		buf = appendUvarint(buf, zigzagEncode(delta-prevDelta))
		prevDelta = delta
	}

	return buf
}
