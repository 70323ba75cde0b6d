// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

import (
	"fmt"
	"io"
)

// RawChunk is one (type, size, payload) record from a sequential chunk
// stream. The payload is a borrowed view into the scanned buffer.
type RawChunk struct {
	// Data is the chunk payload, exactly Size bytes.
	Data []byte
	// Offset is the payload offset within the scanned buffer.
	Offset int
	// Type is the raw type field, flag bits included.
	Type uint32
	// Size is the declared payload size in bytes.
	Size uint32
}

// ChunkScanner walks a buffer as a sequence of raw chunks. It knows
// nothing about chunk semantics (type codes, compression flags); the
// same scanner is reused by other chunked binary formats.
type ChunkScanner struct {
	cur *Cursor
}

// NewChunkScanner creates a scanner positioned at the start of buf.
func NewChunkScanner(buf []byte) *ChunkScanner {
	return &ChunkScanner{cur: NewCursor(buf)}
}

// Reset rewinds the scanner to the start of the buffer.
func (s *ChunkScanner) Reset() {
	s.cur.pos = 0
}

// Next reads the next chunk record. It returns io.EOF when the buffer end
// is reached exactly, ErrOutOfBounds when the 8-byte chunk header itself
// is truncated, and ErrChunkOverrun when the declared payload size
// exceeds the remaining bytes.
func (s *ChunkScanner) Next() (RawChunk, error) {
	if s.cur.Remain() == 0 {
		return RawChunk{}, io.EOF
	}

	rawType, err := s.cur.Uint32()
	if err != nil {
		return RawChunk{}, fmt.Errorf("chunk type: %w", err)
	}

	size, err := s.cur.Uint32()
	if err != nil {
		return RawChunk{}, fmt.Errorf("chunk size: %w", err)
	}

	if int64(size) > int64(s.cur.Remain()) {
		return RawChunk{}, fmt.Errorf("%w: declared %d, remain %d", ErrChunkOverrun, size, s.cur.Remain())
	}

	offset := s.cur.Pos()
	data, err := s.cur.Bytes(int(size))
	if err != nil {
		return RawChunk{}, err
	}

	return RawChunk{Type: rawType, Size: size, Offset: offset, Data: data}, nil
}
