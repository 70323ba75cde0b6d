// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	lzo "github.com/rminnich/go-lzo"
)

// Reader is one archive session. It owns the whole archive buffer for
// its lifetime and lazily decodes the directory header exactly once.
type Reader struct {
	// buf is the whole archive, read once before any decoding begins.
	buf []byte
	// header is the memoized decoded header chunk payload.
	header []byte
	// entries is the memoized decoded directory table.
	entries []Entry
	// version is the resolved archive layout, exactly one bit set.
	version Version
	// mu guards the decode-and-cache step of the header.
	mu sync.Mutex
	// decoded reports whether header and entries are already cached.
	decoded bool
}

// Open reads the archive file into memory and creates a session.
// A zero version is inferred from the file-name extension.
func Open(path string, version Version) (*Reader, error) {
	resolved, err := resolveVersion(path, version)
	if err != nil {
		return nil, err
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	return &Reader{buf: buf, version: resolved}, nil
}

// NewReader creates a session over an in-memory archive buffer. The
// buffer is borrowed and must stay immutable for the session lifetime;
// the version must be explicit and valid.
func NewReader(buf []byte, version Version) (*Reader, error) {
	if !version.IsValid() {
		return nil, fmt.Errorf("%w: 0x%x", ErrUnknownVersion, uint32(version))
	}

	return &Reader{buf: buf, version: version}, nil
}

// Version returns the resolved archive version.
func (r *Reader) Version() Version {
	if r == nil {
		return 0
	}

	return r.version
}

// Size returns the archive buffer length in bytes.
func (r *Reader) Size() int {
	if r == nil {
		return 0
	}

	return len(r.buf)
}

// Chunks classifies and returns all chunks from the start of the
// buffer. A malformed type code fails with ErrWrongFormat; a declared
// size past the buffer end fails with ErrChunkOverrun.
func (r *Reader) Chunks() ([]Chunk, error) {
	if r == nil || r.buf == nil {
		return nil, ErrNilReader
	}

	var chunks []Chunk
	s := NewChunkScanner(r.buf)
	for {
		raw, err := s.Next()
		if errors.Is(err, io.EOF) {
			return chunks, nil
		}
		if err != nil {
			return nil, err
		}

		chunk, err := newChunk(raw)
		if err != nil {
			return nil, err
		}

		chunks = append(chunks, chunk)
	}
}

// FindChunk scans from the start of the buffer and returns the first
// chunk of the given kind, or ErrChunkNotFound.
func (r *Reader) FindChunk(kind ChunkKind) (Chunk, error) {
	chunks, err := r.Chunks()
	if err != nil {
		return Chunk{}, err
	}

	for _, chunk := range chunks {
		if chunk.Kind == kind {
			return chunk, nil
		}
	}

	return Chunk{}, fmt.Errorf("%w: kind %s", ErrChunkNotFound, kind)
}

// DumpChunk returns a copy of the raw payload of the chunk at the given
// index in stream order.
func (r *Reader) DumpChunk(index int) ([]byte, error) {
	chunks, err := r.Chunks()
	if err != nil {
		return nil, err
	}

	if index < 0 || index >= len(chunks) {
		return nil, fmt.Errorf("%w: index %d of %d", ErrChunkNotFound, index, len(chunks))
	}

	return bytes.Clone(chunks[index].Data()), nil
}

// unscrambleHeader recovers the plain header table from the header
// chunk payload according to the archive version: V2947RU/WW headers
// are stream-ciphered and then LZHUF-compressed, every other version is
// LZHUF-compressed only. Uncompressed headers pass through as a copy.
func (r *Reader) unscrambleHeader(chunk Chunk) ([]byte, error) {
	buf := chunk.Data()
	if !chunk.Compressed {
		return bytes.Clone(buf), nil
	}

	switch r.version {
	case V2947RU:
		buf = NewScrambler(ScramblerRU).Decrypt(buf)
	case V2947WW:
		buf = NewScrambler(ScramblerWW).Decrypt(buf)
	}

	decoded, err := DecodeLzHuf(buf)
	if err != nil {
		return nil, fmt.Errorf("decode header chunk: %w", err)
	}
	if len(decoded) > maxHeaderSize {
		return nil, fmt.Errorf("%w: decoded header of %d bytes", ErrWrongFormat, len(decoded))
	}

	return decoded, nil
}

// decodeDirectory decodes all directory records from the header buffer
// using the version's record layout.
func (r *Reader) decodeDirectory(header []byte) ([]Entry, error) {
	decode := entryDecoders[r.version]
	if decode == nil {
		return nil, fmt.Errorf("%w: 0x%x", ErrUnknownVersion, uint32(r.version))
	}

	var entries []Entry
	cur := NewCursor(header)
	for cur.Remain() > 0 {
		entry, err := decode(cur)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", len(entries), err)
		}

		entries = append(entries, entry)
		if len(entries) > maxEntryCount {
			return nil, fmt.Errorf("%w: more than %d directory entries", ErrWrongFormat, maxEntryCount)
		}
	}

	return entries, nil
}

// decodeHeader finds, unscrambles, and decodes the header chunk and its
// directory table, caching both for the session lifetime. Safe for
// concurrent use; the decode runs at most once.
func (r *Reader) decodeHeader() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.decoded {
		return nil
	}

	chunk, err := r.FindChunk(ChunkHeader)
	if err != nil {
		return err
	}

	// A zero-size header chunk yields an empty directory.
	if chunk.Size == 0 {
		r.header = nil
		r.entries = nil
		r.decoded = true
		return nil
	}

	header, err := r.unscrambleHeader(chunk)
	if err != nil {
		return err
	}

	entries, err := r.decodeDirectory(header)
	if err != nil {
		return err
	}

	r.header = header
	r.entries = entries
	r.decoded = true
	return nil
}

// Entries returns the decoded directory table. The header chunk is
// decoded on first use and reused on repeated calls.
func (r *Reader) Entries() ([]Entry, error) {
	if r == nil || r.buf == nil {
		return nil, ErrNilReader
	}

	if err := r.decodeHeader(); err != nil {
		return nil, err
	}

	entries := make([]Entry, len(r.entries))
	copy(entries, r.entries)
	return entries, nil
}

// ReadEntry returns the decompressed payload of a file entry. Payloads
// whose stored and real sizes match are literal bytes; others are
// LZO1X-compressed and are decompressed to exactly RealSize bytes.
// V1114 payloads come from the header stream itself and use the LZHUF
// codec when RealSize is zero.
func (r *Reader) ReadEntry(entry Entry) ([]byte, error) {
	if r == nil || r.buf == nil {
		return nil, ErrNilReader
	}
	if !entry.IsFile() {
		return nil, fmt.Errorf("%w: %s", ErrNotFile, entry.Name)
	}

	if r.version == V1114 {
		return readEntry1114(entry)
	}

	offset, size := int64(entry.Offset), int64(entry.CompressedSize)
	if offset+size > int64(len(r.buf)) {
		return nil, fmt.Errorf("%w: payload of %s at %d+%d", ErrOutOfBounds, entry.Name, offset, size)
	}

	raw := r.buf[offset : offset+size]
	if entry.CompressedSize == entry.RealSize {
		return bytes.Clone(raw), nil
	}

	out, err := lzo.Decompress1X(bytes.NewReader(raw), len(raw), int(entry.RealSize))
	if err != nil {
		return nil, fmt.Errorf("decompress %s: %w", entry.Name, err)
	}
	if len(out) != int(entry.RealSize) {
		return nil, fmt.Errorf("%w: %s decompressed to %d bytes, want %d", ErrWrongFormat, entry.Name, len(out), entry.RealSize)
	}

	return out, nil
}

// readEntry1114 serves a payload captured inline from the live header
// cursor. A non-zero real size means the bytes are stored as-is; a zero
// real size marks an LZHUF-compressed payload. Legacy behavior, kept
// exactly.
func readEntry1114(entry Entry) ([]byte, error) {
	if entry.inline == nil {
		return nil, fmt.Errorf("%w: %s has no captured payload", ErrWrongFormat, entry.Name)
	}

	if entry.RealSize != 0 {
		return bytes.Clone(entry.inline), nil
	}

	out, err := DecodeLzHuf(entry.inline)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", entry.Name, err)
	}

	return out, nil
}
