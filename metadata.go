// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

// ListEntries opens an archive and returns its decoded directory table.
// A zero version is inferred from the file-name extension.
func ListEntries(path string, version Version) ([]Entry, error) {
	r, err := Open(path, version)
	if err != nil {
		return nil, err
	}

	return r.Entries()
}

// ListChunks opens an archive and returns its classified chunk
// metadata without decoding the directory header.
func ListChunks(path string, version Version) ([]Chunk, error) {
	r, err := Open(path, version)
	if err != nil {
		return nil, err
	}

	return r.Chunks()
}
