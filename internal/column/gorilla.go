package column

import (
	"math"
	"math/bits"
)

// DecodeFloats decodes count float64 values from a Gorilla-compressed byte
// stream (XOR of consecutive bit patterns, with leading/trailing zero
// run-length framing). The caller supplies count — derived from the
// timestamp column it was decoded alongside — so the cross-column length
// invariant |ts| = |values| holds by construction (spec §4.3 step 5).
//
// Grounded on the teacher's NumericGorillaEncoder/Decoder
// (internal/encoding/numeric_gorilla.go); this version folds the encoder's
// "reuse previous block" size optimization out, since it only affects
// compression ratio, not the decodability contract this reader needs.
func DecodeFloats(data []byte, count int) ([]float64, error) {
	if count == 0 {
		return nil, nil
	}
	if len(data) < 8 {
		return nil, errTruncated
	}

	r := &bitReader{data: data}
	first, ok := r.readBits(64)
	if !ok {
		return nil, errTruncated
	}

	out := make([]float64, count)
	prevBits := first
	out[0] = math.Float64frombits(prevBits)

	for i := 1; i < count; i++ {
		bit, ok := r.readBit()
		if !ok {
			return nil, errTruncated
		}
		if bit == 0 {
			out[i] = math.Float64frombits(prevBits)
			continue
		}

		leading, ok := r.readBits(5)
		if !ok {
			return nil, errTruncated
		}
		blockSizeMinus1, ok := r.readBits(6)
		if !ok {
			return nil, errTruncated
		}
		blockSize := int(blockSizeMinus1) + 1
		trailing := 64 - int(leading) - blockSize

		meaningful, ok := r.readBits(blockSize)
		if !ok {
			return nil, errTruncated
		}

		prevBits ^= meaningful << uint(trailing)
		out[i] = math.Float64frombits(prevBits)
	}

	return out, nil
}

// EncodeFloats is the inverse of DecodeFloats, used to build test fixtures.
func EncodeFloats(values []float64) []byte {
	if len(values) == 0 {
		return nil
	}

	w := &bitWriter{}
	prevBits := math.Float64bits(values[0])
	w.writeBits(prevBits, 64)

	for i := 1; i < len(values); i++ {
		curBits := math.Float64bits(values[i])
		xor := curBits ^ prevBits
		prevBits = curBits

		if xor == 0 {
			w.writeBit(0)
			continue
		}

		w.writeBit(1)
		leading := bits.LeadingZeros64(xor)
		trailing := bits.TrailingZeros64(xor)
		if leading > 31 {
			adjustment := leading - 31
			leading = 31
			trailing -= adjustment
			if trailing < 0 {
				trailing = 0
			}
		}
		blockSize := 64 - leading - trailing

		w.writeBits(uint64(leading), 5)
		w.writeBits(uint64(blockSize-1), 6)
		w.writeBits(xor>>uint(trailing), blockSize)
	}

	return w.bytes()
}
