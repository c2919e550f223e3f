package index

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/arloliu/seriesfile/errs"
	"github.com/arloliu/seriesfile/section"
)

// trailerSize is the width of the trailing index_start pointer (spec §3).
const trailerSize = 8

// Reader walks a seriesfile's index section one block record at a time,
// grounded on vishalbelsare-lindb's kv/table/reader.go HasNext/Key/Value
// pull-iterator shape. A Reader is single-pass and not safe for concurrent
// use: call Next until it returns false, check Err, and discard the Reader.
type Reader struct {
	br  *bufio.Reader
	pos uint64 // absolute file offset of the next unread byte
	end uint64 // absolute file offset one past the index section (= offset of the 8-byte trailer)

	curKey       []byte
	curBlockType byte
	curCount     uint16
	curCursor    uint16

	entry Entry
	err   error
	done  bool
}

// Open seeks src to the 8-byte trailer at the end of a file of the given
// length, reads the index_start offset it records, and positions the
// Reader at the start of the index section (spec §4.2 Construction).
//
// Open itself only seeks; it never validates that index_start falls inside
// the file. A corrupt trailer surfaces as an IoError from the first call to
// Next, not from Open, matching the lazy failure spec §8 scenario 6
// describes.
func Open(src io.ReadSeeker, fileLength int64) (*Reader, error) {
	if fileLength < trailerSize {
		return nil, errs.Wrap(errs.KindIo, errs.ErrTruncatedTrailer, "file length %d", fileLength)
	}

	end := uint64(fileLength - trailerSize) //nolint:gosec

	if _, err := src.Seek(int64(end), io.SeekStart); err != nil { //nolint:gosec
		return nil, errs.Wrap(errs.KindIo, err, "seeking to trailer at offset %d", end)
	}

	var trailer [trailerSize]byte
	if _, err := io.ReadFull(src, trailer[:]); err != nil {
		return nil, errs.Wrap(errs.KindIo, err, "reading index trailer")
	}

	indexStart := binary.BigEndian.Uint64(trailer[:])

	if _, err := src.Seek(int64(indexStart), io.SeekStart); err != nil { //nolint:gosec
		return nil, errs.Wrap(errs.KindIo, err, "seeking to index start at offset %d", indexStart)
	}

	return &Reader{
		br:  bufio.NewReader(src),
		pos: indexStart,
		end: end,
	}, nil
}

// Next advances to the next entry (spec §4.2 state machine: Start ->
// InSeries(1) -> ... -> InSeries(count) -> Start -> ... -> Done). It
// returns false when the index section is exhausted or a read fails; in
// the latter case Err reports the failure.
func (r *Reader) Next() bool {
	if r.err != nil || r.done {
		return false
	}

	if r.curCursor == r.curCount {
		if r.pos == r.end {
			r.done = true
			return false
		}

		if err := r.readSeriesHeader(); err != nil {
			r.err = err
			return false
		}
	}

	desc, err := r.readBlockRecord()
	if err != nil {
		r.err = err
		return false
	}

	r.curCursor++
	r.entry = Entry{
		Key:       r.curKey,
		BlockType: r.curBlockType,
		Count:     r.curCount,
		Block:     desc,
		Cursor:    r.curCursor,
	}

	return true
}

// Entry returns the entry produced by the most recent successful Next.
func (r *Reader) Entry() Entry {
	return r.entry
}

// Err reports the failure, if any, that ended iteration. A nil Err after
// Next returns false means the index section was fully consumed.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) readSeriesHeader() error {
	var lenBuf [2]byte
	if _, err := io.ReadFull(r.br, lenBuf[:]); err != nil {
		return errs.Wrap(errs.KindIo, err, "reading series key length at offset %d", r.pos)
	}

	keyLen := int(binary.BigEndian.Uint16(lenBuf[:]))

	rest := make([]byte, keyLen+section.SeriesHeaderFixedSize-2)
	if _, err := io.ReadFull(r.br, rest); err != nil {
		return errs.Wrap(errs.KindIo, err, "reading series header at offset %d", r.pos)
	}

	header, consumed, err := section.ParseSeriesHeader(append(lenBuf[:], rest...))
	if err != nil {
		return err
	}

	r.pos += uint64(consumed) //nolint:gosec
	r.curKey = header.Key
	r.curBlockType = header.BlockType
	r.curCount = header.Count
	r.curCursor = 0

	return nil
}

func (r *Reader) readBlockRecord() (section.BlockDescriptor, error) {
	buf := make([]byte, section.BlockRecordSize)
	if _, err := io.ReadFull(r.br, buf); err != nil {
		return section.BlockDescriptor{}, errs.Wrap(errs.KindIo, err, "reading block record at offset %d", r.pos)
	}

	desc, err := section.ParseBlockRecord(buf)
	if err != nil {
		return section.BlockDescriptor{}, err
	}

	r.pos += section.BlockRecordSize

	return desc, nil
}
