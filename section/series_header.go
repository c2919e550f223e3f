package section

import (
	"encoding/binary"

	"github.com/arloliu/seriesfile/errs"
)

// SeriesHeaderFixedSize is the byte length of a series header excluding the
// variable-length key: key_len(2) + block_type(1) + count(2).
const SeriesHeaderFixedSize = 2 + 1 + 2

// SeriesHeader is the fixed-shape prefix of a series_block: the raw series
// key followed by the type marker shared by every block of the series and
// the total number of blocks the series has in the index.
type SeriesHeader struct {
	Key       []byte
	BlockType byte
	Count     uint16
}

// ParseSeriesHeader decodes a series header starting at data[0]. It returns
// the header and the number of bytes consumed (2 + len(key) + 1 + 2), so
// callers can advance their cursor to the first block record.
func ParseSeriesHeader(data []byte) (SeriesHeader, int, error) {
	if len(data) < 2 {
		return SeriesHeader{}, 0, errs.Wrap(errs.KindDecode, errs.ErrTruncatedHeader, "missing key_len")
	}

	keyLen := int(binary.BigEndian.Uint16(data[0:2]))
	consumed := 2 + keyLen + SeriesHeaderFixedSize - 2
	if len(data) < consumed {
		return SeriesHeader{}, 0, errs.Wrap(errs.KindDecode, errs.ErrTruncatedHeader,
			"need %d bytes for key+type+count, have %d", consumed, len(data))
	}

	key := data[2 : 2+keyLen]
	blockType := data[2+keyLen]
	count := binary.BigEndian.Uint16(data[2+keyLen+1 : 2+keyLen+3])

	return SeriesHeader{Key: key, BlockType: blockType, Count: count}, consumed, nil
}
