// Package seriesfile provides a read-only decoder for an InfluxDB-style
// time-series on-disk file format: a data section of compressed block
// payloads followed by an index section describing, per series, where
// each of its blocks lives and what time range it covers.
//
// # Basic Usage
//
// Opening a file and walking every series and block:
//
//	sf, err := seriesfile.Open("001-01.tsm")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer sf.Close()
//
//	idx, err := sf.Index()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	blocks := sf.Blocks()
//
//	for idx.Next() {
//	    entry := idx.Entry()
//	    parsed, err := entry.ParseKey()
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    pair, err := blocks.Decode(entry.Block)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    fmt.Printf("%s: %d points\n", parsed.Measurement, pair.Len())
//	}
//	if err := idx.Err(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Package Structure
//
// This package is a thin convenience wrapper wiring package index and
// package block onto a single os.File. For direct control over either
// component — e.g. decoding blocks from a source other than a local file —
// use those packages directly.
package seriesfile

import (
	"io"
	"os"

	"github.com/arloliu/seriesfile/block"
	"github.com/arloliu/seriesfile/errs"
	"github.com/arloliu/seriesfile/index"
)

// File is an open seriesfile on disk. It is safe to call Blocks and Index
// concurrently: Index walks the file with an internal Seek-based cursor
// while Blocks reads via ReadAt (pread), which does not share or disturb
// the file's seek offset.
type File struct {
	f    *os.File
	size int64
}

// Open opens the file at path and stats it to learn its length, needed to
// locate the trailing index_start pointer (spec §3).
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.KindIo, err, "opening %s", path)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()

		return nil, errs.Wrap(errs.KindIo, err, "stat %s", path)
	}

	return &File{f: f, size: info.Size()}, nil
}

// Close closes the underlying file.
func (sf *File) Close() error {
	return sf.f.Close()
}

// Size returns the file length in bytes, as observed at Open.
func (sf *File) Size() int64 {
	return sf.size
}

// Index returns a new index.Reader positioned at the start of the index
// section. Each call re-seeks the file and starts a fresh, independent
// walk; index.Reader is single-pass, so call Index again to re-scan.
func (sf *File) Index() (*index.Reader, error) {
	return index.Open(io.NewSectionReader(sf.f, 0, sf.size), sf.size)
}

// Blocks returns a block.Reader for decoding block payloads named by the
// BlockDescriptors an index.Reader yields. Pass block.WithCRCValidation()
// to verify each block's checksum before decoding.
func (sf *File) Blocks(opts ...block.Option) *block.Reader {
	return block.NewReader(sf.f, opts...)
}
