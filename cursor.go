// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Cursor is a positional little-endian reader over a borrowed byte buffer.
// Every read that would run past the end of the buffer fails with
// ErrOutOfBounds without consuming anything; this is the format's only
// defense against truncated or corrupted input.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor at position zero over buf. The buffer is
// borrowed, not copied; it must stay immutable while the cursor is in use.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remain returns the number of unread bytes.
func (c *Cursor) Remain() int {
	return len(c.buf) - c.pos
}

// Uint32 reads one little-endian uint32.
func (c *Cursor) Uint32() (uint32, error) {
	if c.pos+4 > len(c.buf) {
		return 0, fmt.Errorf("%w: uint32 at %d", ErrOutOfBounds, c.pos)
	}

	v := binary.LittleEndian.Uint32(c.buf[c.pos:])
	c.pos += 4
	return v, nil
}

// Uint16 reads one little-endian uint16.
func (c *Cursor) Uint16() (uint16, error) {
	if c.pos+2 > len(c.buf) {
		return 0, fmt.Errorf("%w: uint16 at %d", ErrOutOfBounds, c.pos)
	}

	v := binary.LittleEndian.Uint16(c.buf[c.pos:])
	c.pos += 2
	return v, nil
}

// Byte reads one byte.
func (c *Cursor) Byte() (byte, error) {
	if c.pos >= len(c.buf) {
		return 0, fmt.Errorf("%w: byte at %d", ErrOutOfBounds, c.pos)
	}

	v := c.buf[c.pos]
	c.pos++
	return v, nil
}

// CString reads a null-terminated string and advances past the terminator.
// A missing terminator is an out-of-bounds condition.
func (c *Cursor) CString() (string, error) {
	end := bytes.IndexByte(c.buf[c.pos:], 0)
	if end < 0 {
		return "", fmt.Errorf("%w: unterminated string at %d", ErrOutOfBounds, c.pos)
	}

	s := string(c.buf[c.pos : c.pos+end])
	c.pos += end + 1
	return s, nil
}

// Bytes reads exactly n raw bytes as a view into the underlying buffer.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.buf) {
		return nil, fmt.Errorf("%w: %d bytes at %d", ErrOutOfBounds, n, c.pos)
	}

	b := c.buf[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

// Rest returns all unread bytes and marks the cursor exhausted.
func (c *Cursor) Rest() []byte {
	b := c.buf[c.pos:]
	c.pos = len(c.buf)
	return b
}

// Skip advances the position by n bytes without interpreting them.
func (c *Cursor) Skip(n int) error {
	if n < 0 || c.pos+n > len(c.buf) {
		return fmt.Errorf("%w: skip %d at %d", ErrOutOfBounds, n, c.pos)
	}

	c.pos += n
	return nil
}
