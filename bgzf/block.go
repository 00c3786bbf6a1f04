// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import "io"

// MaxBlockSize is the maximum size in bytes of a BGZF block's uncompressed
// payload.
const MaxBlockSize = 0x10000

// Block holds the uncompressed payload of a single BGZF member together
// with the virtual-position bookkeeping needed to resume reading from any
// point inside it.
type Block struct {
	// cOffset is the compressed byte offset of this block's gzip header
	// from the start of the stream.
	cOffset int64

	// position is the current read cursor into data, in [0, len(data)].
	position int

	data []byte
}

// Len returns the number of bytes remaining to be read from the block.
func (b *Block) Len() int { return len(b.data) - b.position }

// Size returns the total size of the block's uncompressed payload.
func (b *Block) Size() int { return len(b.data) }

// COffset returns the compressed byte offset of the block's gzip header.
func (b *Block) COffset() int64 { return b.cOffset }

// Position returns the block's current intra-block read cursor.
func (b *Block) Position() int { return b.position }

// VirtualPosition returns the virtual position of the block's current read
// cursor.
func (b *Block) VirtualPosition() VirtualPosition {
	return VirtualOffset(b.cOffset, uint16(b.position))
}

// seek moves the block's read cursor to the given intra-block offset.
func (b *Block) seek(u int) error {
	if u < 0 || u > len(b.data) {
		return ErrInvalidUncompressedOffset
	}
	b.position = u
	return nil
}

// reset clears the block's payload and cursor in preparation for reuse by
// Reader.ReadBlock, and records the new compressed offset.
func (b *Block) reset(cOffset int64) {
	b.data = b.data[:0]
	b.position = 0
	b.cOffset = cOffset
}

// Read implements io.Reader over the block's remaining uncompressed payload.
func (b *Block) Read(p []byte) (int, error) {
	if b.position >= len(b.data) {
		return 0, io.EOF
	}
	n := copy(p, b.data[b.position:])
	b.position += n
	return n, nil
}
