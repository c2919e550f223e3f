// Package section decodes the fixed-size binary records that make up a
// seriesfile's index section: series headers and the block records that
// follow each one (spec §3, §6).
package section

import (
	"encoding/binary"

	"github.com/arloliu/seriesfile/errs"
)

// BlockRecordSize is the on-disk byte length of one block record.
const BlockRecordSize = 8 + 8 + 8 + 4 // min_time, max_time, offset, size

// BlockDescriptor is an immutable record of where one data block lives in
// the file and the time range it covers.
type BlockDescriptor struct {
	// MinTime is the smallest timestamp in the block, nanosecond epoch.
	MinTime int64
	// MaxTime is the largest timestamp in the block, nanosecond epoch.
	MaxTime int64
	// Offset is the byte position of the block payload in the file.
	Offset uint64
	// Size is the byte length of the block payload.
	Size uint32
}

// ParseBlockRecord decodes one 28-byte block record from data.
func ParseBlockRecord(data []byte) (BlockDescriptor, error) {
	if len(data) < BlockRecordSize {
		return BlockDescriptor{}, errs.Wrap(errs.KindDecode, errs.ErrTruncatedRecord,
			"need %d bytes, have %d", BlockRecordSize, len(data))
	}

	return BlockDescriptor{
		MinTime: int64(binary.BigEndian.Uint64(data[0:8])),
		MaxTime: int64(binary.BigEndian.Uint64(data[8:16])),
		Offset:  binary.BigEndian.Uint64(data[16:24]),
		Size:    binary.BigEndian.Uint32(data[24:28]),
	}, nil
}
