// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/klauspost/compress/flate"
)

// DefaultUncompressedBlockSize is the default uncompressed payload size a
// Writer accumulates before flushing a block; it matches the value used by
// sambamba and biogo.
const DefaultUncompressedBlockSize = 0xff00

// bgzfExtraPrefix is the start of the BGZF gzip Extra subfield: subfield
// id 'B','C' and subfield length 2; the little-endian BSIZE follows it.
var bgzfExtraPrefix = [4]byte{'B', 'C', 2, 0}

// Writer compresses data into BGZF format: a sequence of independently
// deflated blocks, each carrying a BSIZE Extra header field giving its
// on-disk size minus one, terminated by the 28-byte BGZF EOF marker.
//
// Writer is single-threaded and owns its buffers exclusively.
type Writer struct {
	w                io.Writer
	level            int
	uncompressedSize int

	pending bytes.Buffer
	coffset int64
}

// NewWriter returns a new Writer with the given compression level (see
// compress/flate for level constants) writing to w.
func NewWriter(w io.Writer, level int) *Writer {
	return &Writer{w: w, level: level, uncompressedSize: DefaultUncompressedBlockSize}
}

// Write appends buf to the BGZF payload, flushing complete blocks as the
// configured uncompressed block size is reached.
func (w *Writer) Write(buf []byte) (int, error) {
	for i := 0; i < len(buf); {
		end := len(buf)
		if limit := i + w.uncompressedSize - w.pending.Len(); limit < end {
			end = limit
		}
		n, _ := w.pending.Write(buf[i:end])
		i += n
		if err := w.flushFull(); err != nil {
			return i, err
		}
	}
	return len(buf), nil
}

// flushFull compresses and emits complete uncompressedSize-sized blocks
// from the pending buffer.
func (w *Writer) flushFull() error {
	for w.pending.Len() >= w.uncompressedSize {
		if err := w.writeBlock(w.pending.Next(w.uncompressedSize)); err != nil {
			return err
		}
	}
	return nil
}

// CloseWithoutTerminator flushes any partial block but does not append the
// BGZF EOF marker. The resulting output is not a complete BGZF stream
// until a terminator is appended, e.g. by a later shard in a
// multi-shard write (see Close).
func (w *Writer) CloseWithoutTerminator() error {
	if w.pending.Len() > 0 {
		return w.writeBlock(w.pending.Next(w.pending.Len()))
	}
	return nil
}

// Close flushes any partial block and appends the BGZF EOF marker.
func (w *Writer) Close() error {
	if err := w.CloseWithoutTerminator(); err != nil {
		return err
	}
	_, err := w.w.Write(eofMarker[:])
	return err
}

// VirtualPosition returns the virtual position of the next byte to be
// written.
func (w *Writer) VirtualPosition() VirtualPosition {
	return VirtualOffset(w.coffset, uint16(w.pending.Len()))
}

// writeBlock compresses a single uncompressed chunk (at most
// uncompressedSize bytes) into one BGZF member and writes it out.
func (w *Writer) writeBlock(chunk []byte) error {
	var compressed bytes.Buffer
	fw, err := flate.NewWriter(&compressed, w.level)
	if err != nil {
		return err
	}
	if _, err := fw.Write(chunk); err != nil {
		return err
	}
	if err := fw.Close(); err != nil {
		return err
	}

	blockSize := headerSize + compressed.Len() + trailerSize
	if blockSize > 0x10000 {
		return errBlockTooLarge
	}
	bsize := uint16(blockSize - 1)

	var header [headerSize]byte
	header[0], header[1], header[2], header[3] = bgzfMagic[0], bgzfMagic[1], bgzfMagic[2], bgzfMagic[3]
	header[9] = 0xff // OS: unknown
	header[10], header[11] = 6, 0
	copy(header[12:16], bgzfExtraPrefix[:])
	binary.LittleEndian.PutUint16(header[16:18], bsize)

	crc := crc32.ChecksumIEEE(chunk)
	var trailer [trailerSize]byte
	binary.LittleEndian.PutUint32(trailer[0:4], crc)
	binary.LittleEndian.PutUint32(trailer[4:8], uint32(len(chunk)))

	if _, err := w.w.Write(header[:]); err != nil {
		return err
	}
	if _, err := compressed.WriteTo(w.w); err != nil {
		return err
	}
	if _, err := w.w.Write(trailer[:]); err != nil {
		return err
	}
	w.coffset += int64(blockSize)
	return nil
}
