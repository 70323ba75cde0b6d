// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

import "fmt"

// LZHUF (Lempel-Ziv + adaptive Huffman by Haruyasu Yoshizaki) decoder,
// matching the legacy engine codec bit for bit: literals and match
// lengths share one adaptive Huffman tree, match distances use a fixed
// canonical table for their top 6 bits, and matches are copied byte at
// a time out of a 4096-byte space-filled ring buffer.

// Codec constants.
const (
	lzhufN         = 4096   // ring buffer size
	lzhufF         = 60     // maximum match length
	lzhufThreshold = 2      // minimum encoded match length - 1
	lzhufMaxFreq   = 0x4000 // tree rebuild trigger

	lzhufNChar = 256 - lzhufThreshold + lzhufF // literal + length symbols
	lzhufT     = lzhufNChar*2 - 1              // tree node count
	lzhufRoot  = lzhufT - 1

	// lzhufMaxOutput caps the declared output length as a guard against
	// corrupted size fields.
	lzhufMaxOutput = 1 << 30
)

// Distance tables: a stored byte indexes dCode for the top 6 distance
// bits and dLen for the total prefix bit count. The canonical layout is
// 1/3/8/12/24/16 codes of 3..8 bits, each code covering 2^(8-len)
// consecutive byte values.
var dCode, dLen = buildDistanceTables()

func buildDistanceTables() (code, length [256]byte) {
	codesPerLen := [...]int{3: 1, 4: 3, 5: 8, 6: 12, 7: 24, 8: 16}

	i, c := 0, 0
	for bits := 3; bits <= 8; bits++ {
		for n := 0; n < codesPerLen[bits]; n++ {
			for slot := 0; slot < 1<<(8-bits); slot++ {
				code[i] = byte(c)
				length[i] = byte(bits)
				i++
			}
			c++
		}
	}

	return code, length
}

// lzhufState is the ephemeral per-call decode state: the adaptive tree
// arrays, the bit reader, and the LZ77 ring buffer. The tree's learned
// shape is input-specific, so state is never shared across calls.
type lzhufState struct {
	freq [lzhufT + 1]uint16
	son  [lzhufT]uint16
	prnt [lzhufT + lzhufNChar]uint16

	ring [lzhufN + lzhufF - 1]byte

	src    []byte
	srcPos int

	getbuf uint16
	getlen int
}

// startHuff builds the initial tree: every symbol a leaf of frequency 1,
// leaves paired bottom-up into internal nodes, root frequency pinned to
// the sentinel maximum.
func (d *lzhufState) startHuff() {
	for i := 0; i < lzhufNChar; i++ {
		d.freq[i] = 1
		d.son[i] = uint16(i + lzhufT)
		d.prnt[i+lzhufT] = uint16(i)
	}

	i, j := 0, lzhufNChar
	for j <= lzhufRoot {
		d.freq[j] = d.freq[i] + d.freq[i+1]
		d.son[j] = uint16(i)
		d.prnt[i] = uint16(j)
		d.prnt[i+1] = uint16(j)
		i += 2
		j++
	}

	d.freq[lzhufT] = 0xffff
	d.prnt[lzhufRoot] = 0
}

// getc returns the next source byte, or zero once input is exhausted.
// Trailing reads past the end must decode as zero bits, matching the
// legacy decoder.
func (d *lzhufState) getc() byte {
	if d.srcPos < len(d.src) {
		c := d.src[d.srcPos]
		d.srcPos++
		return c
	}

	return 0
}

// getBit reads one bit, most significant first.
func (d *lzhufState) getBit() int {
	for d.getlen <= 8 {
		d.getbuf |= uint16(d.getc()) << (8 - d.getlen)
		d.getlen += 8
	}

	i := d.getbuf
	d.getbuf <<= 1
	d.getlen--
	return int(i >> 15)
}

// getByte reads eight bits at once.
func (d *lzhufState) getByte() byte {
	for d.getlen <= 8 {
		d.getbuf |= uint16(d.getc()) << (8 - d.getlen)
		d.getlen += 8
	}

	i := d.getbuf
	d.getbuf <<= 8
	d.getlen -= 8
	return byte(i >> 8)
}

// decodeChar walks the tree from the root, bit 0 selecting the first
// child and bit 1 the second, and updates the tree for the decoded
// symbol.
func (d *lzhufState) decodeChar() int {
	c := int(d.son[lzhufRoot])

	for c < lzhufT {
		c += d.getBit()
		c = int(d.son[c])
	}

	c -= lzhufT
	d.update(c)
	return c
}

// decodePosition recovers a match distance in [0, 4095]: one raw byte
// indexes the canonical tables for the top 6 bits, then the remaining
// prefix bits are read verbatim.
func (d *lzhufState) decodePosition() int {
	i := int(d.getByte())
	c := int(dCode[i]) << 6

	for j := int(dLen[i]) - 2; j > 0; j-- {
		i = (i << 1) + d.getBit()
	}

	return c | (i & 0x3f)
}

// reconst halves all leaf frequencies (rounding up) and rebuilds the
// internal tree from scratch, preserving relative order.
func (d *lzhufState) reconst() {
	// Collect leaves into the first half of the table.
	j := 0
	for i := 0; i < lzhufT; i++ {
		if d.son[i] >= lzhufT {
			d.freq[j] = (d.freq[i] + 1) / 2
			d.son[j] = d.son[i]
			j++
		}
	}

	// Reconnect internal nodes, keeping freq ordering by insertion.
	i := 0
	for j = lzhufNChar; j < lzhufT; j++ {
		k := i + 1
		f := d.freq[i] + d.freq[k]
		d.freq[j] = f

		k = j - 1
		for f < d.freq[k] {
			k--
		}
		k++

		copy(d.freq[k+1:j+1], d.freq[k:j])
		d.freq[k] = f
		copy(d.son[k+1:j+1], d.son[k:j])
		d.son[k] = uint16(i)

		i += 2
	}

	// Reconnect parent pointers.
	for i := 0; i < lzhufT; i++ {
		k := int(d.son[i])
		if k >= lzhufT {
			d.prnt[k] = uint16(i)
		} else {
			d.prnt[k] = uint16(i)
			d.prnt[k+1] = uint16(i)
		}
	}
}

// update increments the decoded symbol's leaf frequency and walks the
// increment up to the root, swapping nodes whenever sibling frequency
// ordering would be violated.
func (d *lzhufState) update(c int) {
	if d.freq[lzhufRoot] == lzhufMaxFreq {
		d.reconst()
	}

	c = int(d.prnt[c+lzhufT])
	for {
		d.freq[c]++
		k := d.freq[c]

		l := c + 1
		if k > d.freq[l] {
			for k > d.freq[l+1] {
				l++
			}

			d.freq[c] = d.freq[l]
			d.freq[l] = k

			i := int(d.son[c])
			d.prnt[i] = uint16(l)
			if i < lzhufT {
				d.prnt[i+1] = uint16(l)
			}

			j := int(d.son[l])
			d.son[l] = uint16(i)

			d.prnt[j] = uint16(c)
			if j < lzhufT {
				d.prnt[j+1] = uint16(c)
			}
			d.son[c] = uint16(j)

			c = l
		}

		c = int(d.prnt[c])
		if c == 0 {
			break
		}
	}
}

// DecodeLzHuf decompresses one LZHUF stream. The first 4 bytes declare
// the exact output length little-endian; the rest is the bitstream.
// Streams shorter than the 4-byte prefix fail with ErrWrongFormat, as
// do declared lengths beyond the structural output cap.
func DecodeLzHuf(code []byte) ([]byte, error) {
	if len(code) < 4 {
		return nil, fmt.Errorf("%w: lzhuf stream shorter than length prefix", ErrWrongFormat)
	}

	textSize := int(uint32(code[0]) | uint32(code[1])<<8 | uint32(code[2])<<16 | uint32(code[3])<<24)
	if textSize < 0 || textSize > lzhufMaxOutput {
		return nil, fmt.Errorf("%w: lzhuf declared output %d", ErrWrongFormat, uint32(textSize))
	}

	d := &lzhufState{src: code, srcPos: 4}
	d.startHuff()

	for i := 0; i < lzhufN-lzhufF; i++ {
		d.ring[i] = ' '
	}
	r := lzhufN - lzhufF

	// Output normally lands exactly on textSize; append tolerates a
	// match copy running past the declared bound on malformed input.
	dst := make([]byte, 0, textSize)
	for len(dst) < textSize {
		c := d.decodeChar()
		if c < 256 {
			dst = append(dst, byte(c))
			d.ring[r] = byte(c)
			r = (r + 1) & (lzhufN - 1)
			continue
		}

		i := (r - d.decodePosition() - 1) & (lzhufN - 1)
		j := c - 255 + lzhufThreshold
		for k := 0; k < j; k++ {
			b := d.ring[(i+k)&(lzhufN-1)]
			dst = append(dst, b)
			d.ring[r] = b
			r = (r + 1) & (lzhufN - 1)
		}
	}

	return dst[:textSize], nil
}
