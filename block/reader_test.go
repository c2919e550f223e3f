package block

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"testing"

	"github.com/arloliu/seriesfile/errs"
	"github.com/arloliu/seriesfile/format"
	"github.com/arloliu/seriesfile/internal/column"
	"github.com/arloliu/seriesfile/section"
	"github.com/stretchr/testify/require"
)

// buildPayload assembles a block_payload as described in spec §6:
// u32 crc32 ; u8 block_type ; varint ts_len ; ts_stream ; value_stream.
func buildPayload(blockType format.BlockType, tsBytes, valueBytes []byte) []byte {
	var buf []byte
	buf = append(buf, 0xDE, 0xAD, 0xBE, 0xEF) // unverified CRC-32 placeholder
	buf = append(buf, byte(blockType))

	var varintBuf [binary.MaxVarintLen64]byte
	n := binary.PutUvarint(varintBuf[:], uint64(len(tsBytes)))
	buf = append(buf, varintBuf[:n]...)
	buf = append(buf, tsBytes...)
	buf = append(buf, valueBytes...)

	return buf
}

func TestDecode_Float(t *testing.T) {
	ts := []int64{1_590_585_530_000_000_000, 1_590_585_531_000_000_000, 1_590_585_532_000_000_000}
	vals := []float64{1.5, 2.5, 3.5}
	payload := buildPayload(format.Float64, column.EncodeTimestamps(ts), column.EncodeFloats(vals))

	src := bytes.NewReader(payload)
	r := NewReader(src)

	desc := section.BlockDescriptor{Offset: 0, Size: uint32(len(payload))}
	pair, err := r.Decode(desc)
	require.NoError(t, err)
	require.Equal(t, format.Float64, pair.Kind)
	require.Equal(t, ts, pair.Timestamps)

	got, ok := pair.AsFloat()
	require.True(t, ok)
	require.Equal(t, vals, got)
	require.Equal(t, len(pair.Timestamps), len(got))

	_, ok = pair.AsInteger()
	require.False(t, ok)
}

func TestDecode_Integer(t *testing.T) {
	ts := []int64{100, 200, 300, 400}
	vals := []int64{-5, 10, 0, 99}
	payload := buildPayload(format.Int64, column.EncodeTimestamps(ts), column.EncodeIntegers(vals))

	src := bytes.NewReader(payload)
	pair, err := NewReader(src).Decode(section.BlockDescriptor{Offset: 0, Size: uint32(len(payload))})
	require.NoError(t, err)
	require.Equal(t, format.Int64, pair.Kind)

	got, ok := pair.AsInteger()
	require.True(t, ok)
	require.Equal(t, vals, got)
	require.Equal(t, len(pair.Timestamps), len(got))
}

func TestDecode_UnsupportedBlockTypes(t *testing.T) {
	for _, bt := range []format.BlockType{format.Bool, format.String, format.Unsigned, format.BlockType(99)} {
		payload := buildPayload(bt, column.EncodeTimestamps([]int64{1, 2}), nil)
		src := bytes.NewReader(payload)
		_, err := NewReader(src).Decode(section.BlockDescriptor{Offset: 0, Size: uint32(len(payload))})
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrUnsupportedType)
	}
}

func TestDecode_TruncatedBlock(t *testing.T) {
	payload := buildPayload(format.Float64, column.EncodeTimestamps([]int64{1, 2}), column.EncodeFloats([]float64{1, 2}))
	src := bytes.NewReader(payload)
	// Declare a size larger than what is actually available in the source.
	_, err := NewReader(src).Decode(section.BlockDescriptor{Offset: 0, Size: uint32(len(payload)) + 10})
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrTruncatedBlock)
}

func TestDecode_CRCValidation(t *testing.T) {
	ts := column.EncodeTimestamps([]int64{1, 2})
	vals := column.EncodeFloats([]float64{1, 2})

	body := append([]byte{byte(format.Float64)}, mustVarint(len(ts))...)
	body = append(body, ts...)
	body = append(body, vals...)

	var good [4]byte
	binary.BigEndian.PutUint32(good[:], crc32.ChecksumIEEE(body))
	payload := append(good[:], body...)

	src := bytes.NewReader(payload)
	desc := section.BlockDescriptor{Offset: 0, Size: uint32(len(payload))}

	_, err := NewReader(src, WithCRCValidation()).Decode(desc)
	require.NoError(t, err)

	corrupted := bytes.Clone(payload)
	corrupted[0] ^= 0xFF
	_, err = NewReader(bytes.NewReader(corrupted), WithCRCValidation()).Decode(desc)
	require.Error(t, err)
	require.ErrorIs(t, err, errs.ErrCRCMismatch)
}

func mustVarint(n int) []byte {
	var buf [binary.MaxVarintLen64]byte
	written := binary.PutUvarint(buf[:], uint64(n))

	return buf[:written]
}

func TestDecode_EmptyBlock(t *testing.T) {
	payload := buildPayload(format.Float64, nil, nil)
	src := bytes.NewReader(payload)
	pair, err := NewReader(src).Decode(section.BlockDescriptor{Offset: 0, Size: uint32(len(payload))})
	require.NoError(t, err)
	require.Equal(t, 0, pair.Len())
}
