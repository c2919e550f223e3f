package index

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/arloliu/seriesfile/section"
	"github.com/stretchr/testify/require"
)

// seriesFixture describes one series_block to append to a synthetic index
// section: a key, a block type marker, and one block record per block.
type seriesFixture struct {
	key       []byte
	blockType byte
	blocks    []section.BlockDescriptor
}

// buildFile assembles a minimal seriesfile: an arbitrary data section
// (data offsets are never dereferenced by the index reader, so it is just
// padding) followed by an index section built from fixtures and an 8-byte
// trailer pointing at it.
func buildFile(dataSectionLen int, fixtures []seriesFixture) []byte {
	buf := make([]byte, dataSectionLen)

	indexStart := uint64(len(buf)) //nolint:gosec

	for _, f := range fixtures {
		var lenBuf [2]byte
		binary.BigEndian.PutUint16(lenBuf[:], uint16(len(f.key))) //nolint:gosec
		buf = append(buf, lenBuf[:]...)
		buf = append(buf, f.key...)
		buf = append(buf, f.blockType)

		var countBuf [2]byte
		binary.BigEndian.PutUint16(countBuf[:], uint16(len(f.blocks))) //nolint:gosec
		buf = append(buf, countBuf[:]...)

		for _, b := range f.blocks {
			var rec [section.BlockRecordSize]byte
			binary.BigEndian.PutUint64(rec[0:8], uint64(b.MinTime)) //nolint:gosec
			binary.BigEndian.PutUint64(rec[8:16], uint64(b.MaxTime)) //nolint:gosec
			binary.BigEndian.PutUint64(rec[16:24], b.Offset)
			binary.BigEndian.PutUint32(rec[24:28], b.Size)
			buf = append(buf, rec[:]...)
		}
	}

	var trailer [8]byte
	binary.BigEndian.PutUint64(trailer[:], indexStart)
	buf = append(buf, trailer[:]...)

	return buf
}

func TestReader_FullWalk(t *testing.T) {
	fixtures := []seriesFixture{
		{
			key:       []byte("series-a"),
			blockType: 0,
			blocks: []section.BlockDescriptor{
				{MinTime: 100, MaxTime: 200, Offset: 0, Size: 10},
				{MinTime: 200, MaxTime: 300, Offset: 10, Size: 20},
			},
		},
		{
			key:       []byte("series-b"),
			blockType: 1,
			blocks: []section.BlockDescriptor{
				{MinTime: 50, MaxTime: 60, Offset: 30, Size: 5},
			},
		},
	}

	data := buildFile(64, fixtures)
	r, err := Open(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var entries []Entry
	for r.Next() {
		entries = append(entries, r.Entry())
	}
	require.NoError(t, r.Err())
	require.Len(t, entries, 3)

	require.Equal(t, []byte("series-a"), entries[0].Key)
	require.Equal(t, uint16(2), entries[0].Count)
	require.Equal(t, uint16(1), entries[0].Cursor)
	require.Equal(t, section.BlockDescriptor{MinTime: 100, MaxTime: 200, Offset: 0, Size: 10}, entries[0].Block)

	require.Equal(t, []byte("series-a"), entries[1].Key)
	require.Equal(t, uint16(2), entries[1].Cursor)
	require.Equal(t, section.BlockDescriptor{MinTime: 200, MaxTime: 300, Offset: 10, Size: 20}, entries[1].Block)

	require.Equal(t, []byte("series-b"), entries[2].Key)
	require.Equal(t, uint16(1), entries[2].Count)
	require.Equal(t, uint16(1), entries[2].Cursor)

	// entries[0] and entries[1] share the same backing array.
	require.Same(t, &entries[0].Key[0], &entries[1].Key[0])
}

func TestReader_EmptyIndex(t *testing.T) {
	data := buildFile(16, nil)
	r, err := Open(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.False(t, r.Next())
	require.NoError(t, r.Err())
}

func TestReader_SingleSeriesSingleBlock(t *testing.T) {
	fixtures := []seriesFixture{
		{
			key:       []byte("only"),
			blockType: 0,
			blocks:    []section.BlockDescriptor{{MinTime: 1, MaxTime: 2, Offset: 0, Size: 1}},
		},
	}
	data := buildFile(0, fixtures)
	r, err := Open(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	require.True(t, r.Next())
	require.Equal(t, []byte("only"), r.Entry().Key)
	require.False(t, r.Next())
	require.NoError(t, r.Err())
}

func TestReader_OrgAndBucketID(t *testing.T) {
	key := make([]byte, 16)
	binary.BigEndian.PutUint64(key[0:8], 0x1122334455667788)
	binary.BigEndian.PutUint64(key[8:16], 0xAABBCCDDEEFF0011)

	fixtures := []seriesFixture{
		{key: key, blockType: 0, blocks: []section.BlockDescriptor{{Offset: 0, Size: 1}}},
	}
	data := buildFile(0, fixtures)
	r, err := Open(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.True(t, r.Next())

	entry := r.Entry()
	require.Equal(t, "1122334455667788", entry.OrgID().String())
	require.Equal(t, "aabbccddeeff0011", entry.BucketID().String())
}

// TestReader_TrailerPastEnd matches spec §8 scenario 6: a trailer whose
// index_start points past EOF fails lazily, on the first Next, with an
// IoError rather than at Open.
func TestReader_TrailerPastEnd(t *testing.T) {
	var trailer [8]byte
	binary.BigEndian.PutUint64(trailer[:], 1_000_000)
	data := trailer[:]

	r, err := Open(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	require.False(t, r.Next())
	require.Error(t, r.Err())
}

func TestReader_TruncatedTrailer(t *testing.T) {
	_, err := Open(bytes.NewReader([]byte{1, 2, 3}), 3)
	require.Error(t, err)
}
