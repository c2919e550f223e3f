// Package index provides a lazy, non-restartable iterator over a
// seriesfile's index section: series headers and, for each, the block
// records describing its data blocks (spec §4.2).
package index

import (
	"encoding/binary"

	"github.com/arloliu/seriesfile/ident"
	"github.com/arloliu/seriesfile/key"
	"github.com/arloliu/seriesfile/section"
)

// Entry pairs one series' shared key with a single one of its block
// descriptors. Iterating a series with count == k yields k Entries sharing
// the same Key, BlockType, and Count, differing only in Block and Cursor.
//
// The key bytes are shared (via normal Go slice aliasing) by every Entry
// produced for one series; there is no reference counting to manage, Go's
// garbage collector keeps the backing array alive as long as any Entry
// holds a slice into it (spec §9 ownership note).
type Entry struct {
	Key       []byte
	BlockType byte
	Count     uint16
	Block     section.BlockDescriptor
	Cursor    uint16
}

// OrgID decodes bytes [0:8) of Key as a big-endian identifier.
func (e Entry) OrgID() ident.ID {
	return ident.ID(binary.BigEndian.Uint64(e.Key[0:8]))
}

// BucketID decodes bytes [8:16) of Key as a big-endian identifier.
func (e Entry) BucketID() ident.ID {
	return ident.ID(binary.BigEndian.Uint64(e.Key[8:16]))
}

// ParseKey delegates to package key to extract the measurement, tag set,
// and field name encoded in Key.
func (e Entry) ParseKey() (key.ParsedKey, error) {
	return key.Parse(e.Key)
}
