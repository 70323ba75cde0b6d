// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

import "fmt"

// Entry is one named record of the decoded directory table: a file when
// Offset is non-zero, a path-only record otherwise.
type Entry struct {
	// Name is the archive-internal path of the record.
	Name string
	// inline holds V1114 payload bytes captured from the live header
	// stream; nil for every other version.
	inline []byte
	// RealSize is the decompressed payload size in bytes.
	RealSize uint32
	// CompressedSize is the stored payload size in bytes.
	CompressedSize uint32
	// Offset is the payload byte offset within the whole archive buffer.
	// Zero marks a path-only record.
	Offset uint32
	// CRC is the stored payload checksum; meaningful only when HasCRC.
	CRC uint32
	// HasCRC reports whether the record layout carries a CRC field
	// (absent in V1114 and V2215).
	HasCRC bool
}

// IsFile reports whether the entry describes a file. Derived, never
// stored: a zero offset marks a directory/path record.
func (e *Entry) IsFile() bool {
	return e.Offset != 0
}

// entryDecoder constructs one directory entry from the decoded header
// cursor using a version-specific record layout.
type entryDecoder func(*Cursor) (Entry, error)

// entryDecoders maps each archive version to its record decoder.
// V2947RU, V2947WW and VXDB share one layout.
var entryDecoders = map[Version]entryDecoder{
	V1114:   decodeEntry1114,
	V2215:   decodeEntry2215,
	V2945:   decodeEntry2945,
	V2947RU: decodeEntry2947,
	V2947WW: decodeEntry2947,
	VXDB:    decodeEntry2947,
}

// decodeEntry1114 reads the oldest record layout: name, real size,
// offset, compressed size. The table is driven from a live cursor:
// file records are followed inline by their payload bytes, which are
// captured here so later payload reads do not disturb the stream.
func decodeEntry1114(cur *Cursor) (Entry, error) {
	name, err := cur.CString()
	if err != nil {
		return Entry{}, err
	}

	e := Entry{Name: name}
	if e.RealSize, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}
	if e.Offset, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}
	if e.CompressedSize, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}

	if e.IsFile() {
		if e.inline, err = cur.Bytes(int(e.CompressedSize)); err != nil {
			return Entry{}, err
		}
	}

	return e, nil
}

// decodeEntry2215 reads: name, offset, real size, compressed size.
func decodeEntry2215(cur *Cursor) (Entry, error) {
	name, err := cur.CString()
	if err != nil {
		return Entry{}, err
	}

	e := Entry{Name: name}
	if e.Offset, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}
	if e.RealSize, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}
	if e.CompressedSize, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}

	return e, nil
}

// decodeEntry2945 reads: name, crc, offset, real size, compressed size.
func decodeEntry2945(cur *Cursor) (Entry, error) {
	name, err := cur.CString()
	if err != nil {
		return Entry{}, err
	}

	e := Entry{Name: name, HasCRC: true}
	if e.CRC, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}
	if e.Offset, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}
	if e.RealSize, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}
	if e.CompressedSize, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}

	return e, nil
}

// decodeEntry2947 reads the V2947/XDB layout: record length, real size,
// compressed size, crc, length-delimited name, offset. The name length
// is recordLen-16 even though the fixed fields before the name sum to
// 14 bytes; real archives encode it this way.
func decodeEntry2947(cur *Cursor) (Entry, error) {
	recordLen, err := cur.Uint16()
	if err != nil {
		return Entry{}, err
	}

	e := Entry{HasCRC: true}
	if e.RealSize, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}
	if e.CompressedSize, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}
	if e.CRC, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}

	nameLen := int(recordLen) - 16
	if nameLen < 0 {
		return Entry{}, fmt.Errorf("%w: entry record length %d", ErrWrongFormat, recordLen)
	}

	name, err := cur.Bytes(nameLen)
	if err != nil {
		return Entry{}, err
	}

	// Entries own their name: the decoded header buffer outlives them
	// only within one session.
	e.Name = string(name)

	if e.Offset, err = cur.Uint32(); err != nil {
		return Entry{}, err
	}

	return e, nil
}
