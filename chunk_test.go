package xrdb

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// rawChunkBytes frames one chunk record for synthetic streams.
func rawChunkBytes(rawType uint32, payload []byte) []byte {
	out := make([]byte, 8+len(payload))
	binary.LittleEndian.PutUint32(out, rawType)
	binary.LittleEndian.PutUint32(out[4:], uint32(len(payload)))
	copy(out[8:], payload)
	return out
}

func TestChunkScanner_Sequence(t *testing.T) {
	var buf []byte
	buf = append(buf, rawChunkBytes(7, []byte("first"))...)
	buf = append(buf, rawChunkBytes(0x80000001, []byte("second!"))...)
	buf = append(buf, rawChunkBytes(42, nil)...)

	s := NewChunkScanner(buf)

	c, err := s.Next()
	if err != nil {
		t.Fatalf("first Next: %v", err)
	}
	if c.Type != 7 || c.Size != 5 || c.Offset != 8 || !bytes.Equal(c.Data, []byte("first")) {
		t.Fatalf("first chunk = %+v", c)
	}

	c, err = s.Next()
	if err != nil {
		t.Fatalf("second Next: %v", err)
	}
	if c.Type != 0x80000001 || !bytes.Equal(c.Data, []byte("second!")) {
		t.Fatalf("second chunk = %+v", c)
	}

	c, err = s.Next()
	if err != nil {
		t.Fatalf("third Next: %v", err)
	}
	if c.Type != 42 || c.Size != 0 || len(c.Data) != 0 {
		t.Fatalf("third chunk = %+v", c)
	}

	if _, err = s.Next(); !errors.Is(err, io.EOF) {
		t.Fatalf("Next at end err = %v, want io.EOF", err)
	}
}

func TestChunkScanner_Reset(t *testing.T) {
	buf := rawChunkBytes(1, []byte("data"))
	s := NewChunkScanner(buf)

	if _, err := s.Next(); err != nil {
		t.Fatalf("Next: %v", err)
	}

	s.Reset()
	c, err := s.Next()
	if err != nil || c.Type != 1 {
		t.Fatalf("Next after Reset = %+v, %v", c, err)
	}
}

func TestChunkScanner_Overrun(t *testing.T) {
	// Declared size 100, only 4 payload bytes present.
	buf := rawChunkBytes(1, []byte("data"))
	binary.LittleEndian.PutUint32(buf[4:], 100)

	s := NewChunkScanner(buf)
	if _, err := s.Next(); !errors.Is(err, ErrChunkOverrun) {
		t.Fatalf("err = %v, want ErrChunkOverrun", err)
	}
}

func TestChunkScanner_OverrunAfterValidChunks(t *testing.T) {
	var buf []byte
	buf = append(buf, rawChunkBytes(1, []byte("ok"))...)
	bad := rawChunkBytes(2, []byte("short"))
	binary.LittleEndian.PutUint32(bad[4:], 1000)
	buf = append(buf, bad...)

	s := NewChunkScanner(buf)

	c, err := s.Next()
	if err != nil || !bytes.Equal(c.Data, []byte("ok")) {
		t.Fatalf("first chunk = %+v, %v", c, err)
	}

	if _, err = s.Next(); !errors.Is(err, ErrChunkOverrun) {
		t.Fatalf("second chunk err = %v, want ErrChunkOverrun", err)
	}
}

func TestChunkScanner_TruncatedHeader(t *testing.T) {
	s := NewChunkScanner([]byte{1, 0, 0})
	if _, err := s.Next(); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("err = %v, want ErrOutOfBounds", err)
	}
}

func TestNewChunk_Classification(t *testing.T) {
	tests := []struct {
		name       string
		rawType    uint32
		wantKind   ChunkKind
		compressed bool
		wantErr    bool
	}{
		{"data", 0, ChunkData, false, false},
		{"header", 1, ChunkHeader, false, false},
		{"userdata", 0x29a, ChunkUserData, false, false},
		{"compressed header", 0x80000001, ChunkHeader, true, false},
		{"compressed userdata", 0x8000029a, ChunkUserData, true, false},
		{"unknown", 5, 0, false, true},
		{"compressed unknown", 0x80000005, 0, false, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chunk, err := newChunk(RawChunk{Type: tc.rawType})
			if tc.wantErr {
				if !errors.Is(err, ErrWrongFormat) {
					t.Fatalf("err = %v, want ErrWrongFormat", err)
				}
				return
			}

			if err != nil {
				t.Fatalf("newChunk: %v", err)
			}
			if chunk.Kind != tc.wantKind || chunk.Compressed != tc.compressed {
				t.Fatalf("chunk = %+v", chunk)
			}
		})
	}
}
