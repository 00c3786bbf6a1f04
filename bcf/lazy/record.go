// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lazy provides a lazily-inspected view over a single BCF
// record: only the chromosome id and position/end coordinates a region
// query needs are decoded eagerly; the remaining fields stay as raw
// bytes until a caller asks for them.
package lazy

import (
	"encoding/binary"
	"io"
)

// Record is a single BCF record, decoded just far enough to answer
// region-query questions. ReadFrom reuses Record's buffer across calls,
// so a Record read by one call is invalidated by the next.
type Record struct {
	chromosomeID int32
	position     int32
	end          int32

	buf []byte
}

// ChromosomeID returns the record's 0-based reference sequence index,
// i.e. its position in the VCF header's contig list.
func (r *Record) ChromosomeID() int32 { return r.chromosomeID }

// Position returns the record's 0-based leftmost coordinate (POS-1).
func (r *Record) Position() int32 { return r.position }

// End returns the record's 0-based exclusive end coordinate, as recorded
// in the BCF site's rlen field (POS-1+rlen).
func (r *Record) End() int32 { return r.end }

// Bytes returns the record's raw site-and-genotype bytes, excluding the
// 8-byte l_shared/l_indiv length prefix ReadFrom consumed.
func (r *Record) Bytes() []byte { return r.buf }

// ReadFrom decodes the next BCF record from r into the receiver, reusing
// its buffer. It returns the number of bytes read, or 0 and io.EOF at a
// clean end of stream.
//
// The BCF2 record layout is: l_shared (int32), l_indiv (int32), then
// l_shared+l_indiv bytes of shared and individual genotype data; the
// first 8 bytes of the shared data are chrom (int32), pos-1 (int32).
func (r *Record) ReadFrom(src io.Reader) (int64, error) {
	var lens [8]byte
	n, err := io.ReadFull(src, lens[:])
	if err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return int64(n), err
	}
	lShared := int32(binary.LittleEndian.Uint32(lens[0:4]))
	lIndiv := int32(binary.LittleEndian.Uint32(lens[4:8]))
	total := int(lShared) + int(lIndiv)

	if cap(r.buf) < total {
		r.buf = make([]byte, total)
	}
	r.buf = r.buf[:total]
	if _, err := io.ReadFull(src, r.buf); err != nil {
		return int64(n), io.ErrUnexpectedEOF
	}

	if len(r.buf) < 8 {
		return int64(n) + int64(total), io.ErrUnexpectedEOF
	}
	r.chromosomeID = int32(binary.LittleEndian.Uint32(r.buf[0:4]))
	pos := int32(binary.LittleEndian.Uint32(r.buf[4:8]))
	r.position = pos

	rlen := int32(1)
	if len(r.buf) >= 12 {
		rlen = int32(binary.LittleEndian.Uint32(r.buf[8:12]))
	}
	r.end = pos + rlen

	return int64(n) + int64(total), nil
}
