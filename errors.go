// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

import "errors"

// Sentinel errors for DB/XDB operations. Use errors.Is in callers.
var (
	// ErrOutOfBounds means a read required more bytes than remain in the buffer.
	ErrOutOfBounds = errors.New("read past end of buffer")
	// ErrWrongFormat means a chunk type code, header, or record could not be parsed.
	ErrWrongFormat = errors.New("wrong db file format")
	// ErrUnknownVersion means no single archive version could be determined.
	ErrUnknownVersion = errors.New("unspecified or ambiguous db file version")
	// ErrChunkOverrun means a chunk's declared size exceeds the remaining buffer.
	ErrChunkOverrun = errors.New("chunk size exceeds remaining buffer")
	// ErrNilReader means the reader is nil or has no buffer.
	ErrNilReader = errors.New("reader is nil")
	// ErrChunkNotFound means no chunk of the requested kind or index exists.
	ErrChunkNotFound = errors.New("chunk not found")
	// ErrNotFile means the directory entry describes a path, not a file.
	ErrNotFile = errors.New("entry is a path, not a file")
	// ErrInvalidFilterRules means one or more entry filter rules are invalid.
	ErrInvalidFilterRules = errors.New("invalid filter rules")
)
