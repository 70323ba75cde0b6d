// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

/*
Package xrdb reads the X-Ray engine DB/XDB game-archive containers: one
or more sequentially-chunked binary blobs packing a whole asset tree,
with the directory header optionally scrambled by a keystream cipher
and compressed with the engine's adaptive Huffman+LZ77 codec, and file
payloads compressed with LZO1X.

Six on-disk layouts are supported transparently; the layout is selected
by an explicit Version or inferred from the file-name extension.

# Reading

Open an archive and list or read entries:

	r, err := xrdb.Open("gamedata.db0", xrdb.V2947RU)
	if err != nil {
	    return err
	}
	entries, err := r.Entries()
	if err != nil {
	    return err
	}
	for _, e := range entries {
	    if !e.IsFile() {
	        continue
	    }
	    data, _ := r.ReadEntry(e)
	    // use data
	}

For XDB archives the version is inferred from the extension:

	entries, err := xrdb.ListEntries("levels.xdb0", 0)
	if err != nil {
	    return err
	}
	_ = entries

For entry subset selection, combine path-rule filters:

	scripts, err := xrdb.FilterEntries(entries, xrdb.FilterOptions{
	    FilesOnly: true,
	    Rules: []pathrules.Rule{
	        {Action: pathrules.ActionInclude, Pattern: "*.script"},
	    },
	})
	if err != nil {
	    return err
	}
	_ = scripts

# Low-level access

Chunk enumeration and raw chunk dumps are exposed for tooling:

	chunks, err := r.Chunks()
	if err != nil {
	    return err
	}
	raw, err := r.DumpChunk(1)
	if err != nil {
	    return err
	}
	_, _ = chunks, raw

The building blocks are exported for unrelated chunked formats:
Cursor (positional little-endian reads), ChunkScanner (generic
type/size/payload streams), Scrambler (the V2947 header cipher), and
DecodeLzHuf (the engine's adaptive Huffman+LZ77 decoder).

Writing archives is out of scope; only decode paths are implemented.
*/
package xrdb
