// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

import "fmt"

// Structural limits guarding against corrupted or adversarial size fields.
const (
	// maxHeaderSize bounds the decoded directory-header size.
	maxHeaderSize = 256 << 20
	// maxEntryCount bounds the number of decoded directory entries.
	maxEntryCount = 1 << 20
)

// Raw chunk type field layout: bit 31 is the compressed flag, the low
// 31 bits are the chunk kind code.
const (
	chunkCompressedFlag uint32 = 0x80000000
	chunkKindMask       uint32 = 0x7fffffff
)

// ChunkKind is a validated chunk type code with the compressed flag
// masked off.
type ChunkKind uint32

// Chunk kinds used by the DB/XDB container.
const (
	// ChunkData holds raw file payload bytes.
	ChunkData ChunkKind = 0
	// ChunkHeader holds the encoded directory-entry table.
	ChunkHeader ChunkKind = 1
	// ChunkUserData holds free-form archive user data.
	ChunkUserData ChunkKind = 0x29a
)

// String returns the chunk kind name.
func (k ChunkKind) String() string {
	switch k {
	case ChunkData:
		return "DATA"
	case ChunkHeader:
		return "HEADER"
	case ChunkUserData:
		return "USERDATA"
	default:
		return fmt.Sprintf("UNKNOWN(0x%x)", uint32(k))
	}
}

// Chunk is one classified chunk of a DB/XDB archive.
type Chunk struct {
	// data is a borrowed payload view into the archive buffer.
	data []byte
	// Offset is the payload byte offset within the archive buffer.
	Offset int
	// Kind is the validated chunk kind.
	Kind ChunkKind
	// Size is the payload size in bytes.
	Size uint32
	// Compressed reports whether the raw type field carried bit 31.
	Compressed bool
}

// Data returns the chunk payload bytes. The slice aliases the archive
// buffer and must not be modified.
func (c *Chunk) Data() []byte {
	return c.data
}

// String formats chunk metadata for diagnostics.
func (c *Chunk) String() string {
	suffix := ""
	if c.Compressed {
		suffix = " compressed"
	}

	return fmt.Sprintf("Chunk type=%s offset=%d size=%d%s", c.Kind, c.Offset, c.Size, suffix)
}

// newChunk classifies one raw chunk record, rejecting unknown kind codes.
func newChunk(raw RawChunk) (Chunk, error) {
	kind := ChunkKind(raw.Type & chunkKindMask)
	switch kind {
	case ChunkData, ChunkHeader, ChunkUserData:
	default:
		return Chunk{}, fmt.Errorf("%w: unknown chunk type 0x%x", ErrWrongFormat, raw.Type)
	}

	return Chunk{
		Kind:       kind,
		Size:       raw.Size,
		Offset:     raw.Offset,
		Compressed: raw.Type&chunkCompressedFlag != 0,
		data:       raw.Data,
	}, nil
}
