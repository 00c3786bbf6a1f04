// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"encoding/binary"
	"io"

	"github.com/klauspost/compress/flate"
)

// headerSize is the fixed size in bytes of a BGZF gzip member header,
// including the 6-byte XLEN=6 Extra subfield that carries BSIZE.
const headerSize = 18

// trailerSize is the size in bytes of the gzip CRC32||ISIZE trailer that
// follows every member's compressed payload.
const trailerSize = 8

// bsizeOffset is the byte offset of the little-endian BSIZE field within
// a BGZF member header.
const bsizeOffset = 16

var bgzfMagic = [4]byte{0x1f, 0x8b, 0x08, 0x04}

// eofMarker is the 28-byte empty BGZF block written at the end of a
// complete BGZF stream.
var eofMarker = [28]byte{
	0x1f, 0x8b, 0x08, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0xff, 0x06, 0x00, 0x42, 0x43,
	0x02, 0x00, 0x1b, 0x00, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

// Reader decodes a stream of BGZF blocks one at a time. It is
// single-threaded and owns its buffers exclusively; it is safe to hand off
// between goroutines but not to share between them concurrently.
type Reader struct {
	r io.Reader

	// pos is the reader's current compressed byte position, i.e. the
	// start of the next block to be read.
	pos int64

	cdata []byte

	started   bool
	current   Block
	lastChunk Chunk

	err error
}

// NewReader returns a new Reader reading BGZF blocks from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// ReadBlock reads the next BGZF block from the underlying stream into
// sink, returning the number of bytes consumed from the stream (the
// on-disk block size, BSIZE+1), or 0 at a clean EOF.
//
// A short read at the start of a member's header is EOF, not an error:
// this is how a well-formed end of stream (or simply running out of
// blocks) is distinguished from a truncated stream, which fails mid-body.
func (r *Reader) ReadBlock(sink *Block) (int, error) {
	var header [headerSize]byte
	n, err := io.ReadFull(r.r, header[:])
	if err != nil {
		if n == 0 && err == io.ErrUnexpectedEOF {
			err = io.EOF
		}
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, err
	}
	if header[0] != bgzfMagic[0] || header[1] != bgzfMagic[1] || header[2] != bgzfMagic[2] {
		return 0, ErrHeaderMagic
	}

	bsize := binary.LittleEndian.Uint16(header[bsizeOffset : bsizeOffset+2])
	blockSize := int(bsize) + 1
	cdataLen := blockSize - headerSize - trailerSize
	if cdataLen < 0 {
		return 0, ErrNoBlockSize
	}

	if cap(r.cdata) < cdataLen {
		r.cdata = make([]byte, cdataLen)
	}
	r.cdata = r.cdata[:cdataLen]
	if _, err := io.ReadFull(r.r, r.cdata); err != nil {
		return 0, unexpectedEOF(err)
	}

	var trailer [trailerSize]byte
	if _, err := io.ReadFull(r.r, trailer[:]); err != nil {
		return 0, unexpectedEOF(err)
	}

	sink.reset(r.pos)
	fr := flate.NewReader(&byteSliceReader{r.cdata})
	defer fr.Close()
	buf, err := growToRead(sink.data, fr)
	if err != nil {
		return 0, err
	}
	sink.data = buf

	r.pos += int64(headerSize + cdataLen + trailerSize)
	return blockSize, nil
}

// unexpectedEOF turns a raw io.EOF encountered mid-block into
// io.ErrUnexpectedEOF, since only a header-boundary EOF is benign.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

// growToRead reads all of r into buf (reusing its backing array when
// possible) and returns the result.
func growToRead(buf []byte, r io.Reader) ([]byte, error) {
	for {
		if len(buf) == cap(buf) {
			buf = append(buf, 0)[:len(buf)]
		}
		n, err := r.Read(buf[len(buf):cap(buf)])
		buf = buf[:len(buf)+n]
		if err != nil {
			if err == io.EOF {
				return buf, nil
			}
			return buf, err
		}
	}
}

// byteSliceReader is a minimal io.Reader over a fixed []byte, used to feed
// flate.NewReader without pulling in bytes.Reader's broader API.
type byteSliceReader struct{ b []byte }

func (r *byteSliceReader) Read(p []byte) (int, error) {
	if len(r.b) == 0 {
		return 0, io.EOF
	}
	n := copy(p, r.b)
	r.b = r.b[n:]
	return n, nil
}

// Seek moves the reader to the block containing vp and positions that
// block's read cursor at vp's uncompressed offset. The underlying stream
// must implement io.Seeker.
func (r *Reader) Seek(vp VirtualPosition) error {
	rs, ok := r.r.(io.Seeker)
	if !ok {
		return ErrNotASeeker
	}
	c := vp.CompressedOffset()
	if _, err := rs.Seek(c, io.SeekStart); err != nil {
		return err
	}
	r.pos = c
	if _, err := r.ReadBlock(&r.current); err != nil {
		return err
	}
	if err := r.current.seek(int(vp.UncompressedOffset())); err != nil {
		return err
	}
	r.started = true
	r.lastChunk = Chunk{Begin: vp, End: vp}
	return nil
}

// LastChunk returns the virtual-position region spanned by the most
// recent Read or Seek operation.
func (r *Reader) LastChunk() Chunk { return r.lastChunk }

// Read implements io.Reader, transparently advancing across block
// boundaries as needed.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	if !r.started {
		r.started = true
		for {
			if _, err := r.ReadBlock(&r.current); err != nil {
				r.err = err
				return 0, err
			}
			if r.current.Size() > 0 {
				break
			}
		}
	}

	r.lastChunk.Begin = r.current.VirtualPosition()

	var n int
	for n < len(p) {
		nn, err := r.current.Read(p[n:])
		n += nn
		if nn > 0 {
			r.lastChunk.End = r.current.VirtualPosition()
		}
		if err == nil {
			continue
		}
		if err != io.EOF {
			r.err = err
			return n, err
		}
		if n == len(p) {
			break
		}
		// Advance across block boundaries, discarding any empty
		// blocks (including the terminal EOF marker) until either
		// data is found or the underlying stream is truly exhausted.
		for {
			if _, err := r.ReadBlock(&r.current); err != nil {
				r.err = err
				return n, err
			}
			if r.current.Size() > 0 {
				break
			}
		}
	}
	return n, nil
}
