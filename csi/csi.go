// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package csi implements the coordinate-sorted index (CSI) format used to
// seek directly to the BGZF blocks holding records overlapping a given
// reference interval, without scanning the whole file.
package csi

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"github.com/Schaudge/htscore/bgzf"
	"github.com/Schaudge/htscore/internal"
)

const magic = "CSI\x01"

// ErrBadMagic is returned by ReadFrom when the stream does not begin with
// the CSI magic bytes.
var ErrBadMagic = errors.New("csi: invalid magic")

// ReferenceStats holds the per-reference mapped/unmapped record counts and
// the virtual-position span of the pseudo-bin, as stored in a CSI/BAI
// index's optional metadata bin.
type ReferenceStats struct {
	Chunk    bgzf.Chunk
	Mapped   uint64
	Unmapped uint64
}

// bin is a single bin's chunk list, plus the bin's loffset as stored in
// the index (CSI only; left is the zero value when unused). Chunks does
// not use left to prune chunks.
type bin struct {
	bin    uint32
	left   bgzf.VirtualPosition
	chunks []bgzf.Chunk
}

// pseudoBinNumber is the bin number htslib reserves for the unmapped-reads
// metadata record in an index of depth 5. This package uses it for every
// depth.
const pseudoBinNumber = 0x924a // (1<<(3*(depth+1))-1)/7 + 1 for depth==5, see htslib.

// refIndex is the per-reference portion of an Index: the bin list together
// with any metadata bin, which is stored separately since it is shaped
// differently (mapped/unmapped counts rather than a chunk list to scan).
type refIndex struct {
	bins  []bin
	stats *ReferenceStats
}

// Index is an in-memory decoding of a tabix-style CSI index (versions 1
// and 2 only differ in whether each bin also stores a record count, which
// this package discards on read and writes back as zero).
type Index struct {
	// Version is the CSI format version (1 or 2) used by WriteTo; it is
	// set by ReadFrom to whatever version was decoded.
	Version int

	// Auxilliary carries the format-specific auxiliary data blob (for
	// tabix-style indexes, compressed tabix header parameters).
	Auxilliary []byte

	minShift int
	depth    int

	refs []refIndex

	unmapped *uint64
	isSorted bool
}

// IsSorted returns whether the indexed file was determined to be
// coordinate sorted.
func (i *Index) IsSorted() bool { return i.isSorted }

// Unmapped returns the total count of unmapped reads with no reference
// assignment, if the index stored one.
func (i *Index) Unmapped() (n uint64, ok bool) {
	if i.unmapped == nil {
		return 0, false
	}
	return *i.unmapped, true
}

// ReferenceStats returns the mapped/unmapped counts for the given
// reference id, if the index's pseudo-bin recorded them.
func (i *Index) ReferenceStats(ref int) (ReferenceStats, bool) {
	if ref < 0 || ref >= len(i.refs) || i.refs[ref].stats == nil {
		return ReferenceStats{}, false
	}
	return *i.refs[ref].stats, true
}

// Chunks returns the list of BGZF chunks that may hold records for
// reference ref overlapping the half-open interval [beg, end): every chunk
// of every bin that overlaps the interval, merged by bgzf.MergeChunks.
// Chunks are not pruned by the bins' linear-index offsets.
func (i *Index) Chunks(ref, beg, end int) []bgzf.Chunk {
	if ref < 0 || ref >= len(i.refs) {
		return nil
	}
	if !internal.IsValidIndexPos(beg) || !internal.IsValidIndexPos(end) {
		return nil
	}

	want := make(map[uint32]bool)
	for _, b := range binsForShift(beg, end, i.minShift, i.depth) {
		want[uint32(b)] = true
	}

	var chunks []bgzf.Chunk
	for _, b := range i.refs[ref].bins {
		if b.bin == pseudoBinNumber || !want[b.bin] {
			continue
		}
		chunks = append(chunks, b.chunks...)
	}
	return bgzf.MergeChunks(chunks)
}

// binsForShift is internal.BinsFor generalised to an arbitrary min_shift;
// CSI indexes (unlike the fixed BAI layout) may use any min_shift/depth
// pair, so the bin tiers must be recomputed rather than using the BAI
// constants directly.
func binsForShift(beg, end, minShift, depth int) []int {
	if end <= beg {
		end = beg + 1
	}
	end--
	var list []int
	base := 0
	maxShift := uint(minShift + 3*depth)
	for level := 0; level <= depth; level++ {
		shift := maxShift - 3*uint(level)
		lo := base + (beg >> shift)
		hi := base + (end >> shift)
		for b := lo; b <= hi; b++ {
			list = append(list, b)
		}
		base += 1 << (3 * uint(level))
	}
	return list
}

// ReadFrom decodes a CSI index from its uncompressed binary form (the
// caller is responsible for wrapping a BGZF stream in bgzf.NewReader
// first, since CSI files are themselves BGZF-compressed).
func ReadFrom(r io.Reader) (*Index, error) {
	br := bufio.NewReader(r)

	var hdr [4]byte
	if _, err := io.ReadFull(br, hdr[:]); err != nil {
		return nil, err
	}
	if string(hdr[:3]) != "CSI" {
		return nil, ErrBadMagic
	}

	idx := &Index{Version: int(hdr[3]), isSorted: true}

	var i32 [4]byte
	readI32 := func() (int32, error) {
		if _, err := io.ReadFull(br, i32[:]); err != nil {
			return 0, err
		}
		return int32(binary.LittleEndian.Uint32(i32[:])), nil
	}
	var i64 [8]byte
	readI64 := func() (int64, error) {
		if _, err := io.ReadFull(br, i64[:]); err != nil {
			return 0, err
		}
		return int64(binary.LittleEndian.Uint64(i64[:])), nil
	}
	readVP := func() (bgzf.VirtualPosition, error) {
		v, err := readI64()
		return bgzf.VirtualPosition(v), err
	}

	minShift, err := readI32()
	if err != nil {
		return nil, err
	}
	depth, err := readI32()
	if err != nil {
		return nil, err
	}
	idx.minShift, idx.depth = int(minShift), int(depth)

	lAux, err := readI32()
	if err != nil {
		return nil, err
	}
	if lAux > 0 {
		idx.Auxilliary = make([]byte, lAux)
		if _, err := io.ReadFull(br, idx.Auxilliary); err != nil {
			return nil, err
		}
	}

	nRef, err := readI32()
	if err != nil {
		return nil, err
	}
	idx.refs = make([]refIndex, nRef)

	for ref := range idx.refs {
		nBin, err := readI32()
		if err != nil {
			return nil, err
		}
		for b := 0; b < int(nBin); b++ {
			binNum, err := readI32()
			if err != nil {
				return nil, err
			}
			left, err := readVP()
			if err != nil {
				return nil, err
			}
			if idx.Version == 2 {
				if _, err := readI64(); err != nil { // n_rec, unused
					return nil, err
				}
			}
			nChunk, err := readI32()
			if err != nil {
				return nil, err
			}
			if binNum == pseudoBinNumber {
				// The pseudo-bin always carries exactly two entries:
				// the unmapped span followed by mapped/unmapped counts
				// reinterpreted in the same 16-byte chunk slots.
				unmappedBeg, err := readVP()
				if err != nil {
					return nil, err
				}
				unmappedEnd, err := readVP()
				if err != nil {
					return nil, err
				}
				mapped, err := readI64()
				if err != nil {
					return nil, err
				}
				unmapped, err := readI64()
				if err != nil {
					return nil, err
				}
				idx.refs[ref].stats = &ReferenceStats{
					Chunk:    bgzf.Chunk{Begin: unmappedBeg, End: unmappedEnd},
					Mapped:   uint64(mapped),
					Unmapped: uint64(unmapped),
				}
				continue
			}
			chunks := make([]bgzf.Chunk, nChunk)
			for c := range chunks {
				begin, err := readVP()
				if err != nil {
					return nil, err
				}
				end, err := readVP()
				if err != nil {
					return nil, err
				}
				chunks[c] = bgzf.Chunk{Begin: begin, End: end}
			}
			idx.refs[ref].bins = append(idx.refs[ref].bins, bin{bin: uint32(binNum), left: left, chunks: chunks})
		}
	}

	nNoCoor, err := readI64()
	if err == nil {
		u := uint64(nNoCoor)
		idx.unmapped = &u
	} else if err != io.EOF {
		return nil, err
	}

	return idx, nil
}

// WriteTo encodes idx in CSI binary format to w, using idx.Version (1 or
// 2) to decide whether per-bin record counts are emitted.
func WriteTo(w io.Writer, idx *Index) error {
	bw := bufio.NewWriter(w)

	version := idx.Version
	if version == 0 {
		version = 2
	}
	if _, err := bw.Write([]byte{'C', 'S', 'I', byte(version)}); err != nil {
		return err
	}

	var buf [8]byte
	writeI32 := func(v int32) error {
		binary.LittleEndian.PutUint32(buf[:4], uint32(v))
		_, err := bw.Write(buf[:4])
		return err
	}
	writeI64 := func(v int64) error {
		binary.LittleEndian.PutUint64(buf[:8], uint64(v))
		_, err := bw.Write(buf[:8])
		return err
	}
	writeVP := func(v bgzf.VirtualPosition) error { return writeI64(int64(v)) }

	if err := writeI32(int32(idx.minShift)); err != nil {
		return err
	}
	if err := writeI32(int32(idx.depth)); err != nil {
		return err
	}
	if err := writeI32(int32(len(idx.Auxilliary))); err != nil {
		return err
	}
	if len(idx.Auxilliary) > 0 {
		if _, err := bw.Write(idx.Auxilliary); err != nil {
			return err
		}
	}

	if err := writeI32(int32(len(idx.refs))); err != nil {
		return err
	}
	for _, ref := range idx.refs {
		nBin := len(ref.bins)
		if ref.stats != nil {
			nBin++
		}
		if err := writeI32(int32(nBin)); err != nil {
			return err
		}
		for _, b := range ref.bins {
			if err := writeI32(int32(b.bin)); err != nil {
				return err
			}
			if err := writeVP(b.left); err != nil {
				return err
			}
			if version == 2 {
				if err := writeI64(0); err != nil { // n_rec
					return err
				}
			}
			if err := writeI32(int32(len(b.chunks))); err != nil {
				return err
			}
			for _, ch := range b.chunks {
				if err := writeVP(ch.Begin); err != nil {
					return err
				}
				if err := writeVP(ch.End); err != nil {
					return err
				}
			}
		}
		if ref.stats != nil {
			if err := writeI32(pseudoBinNumber); err != nil {
				return err
			}
			if err := writeVP(ref.stats.Chunk.Begin); err != nil {
				return err
			}
			if version == 2 {
				if err := writeI64(0); err != nil {
					return err
				}
			}
			if err := writeI32(2); err != nil { // n_chunk, always 2
				return err
			}
			if err := writeVP(ref.stats.Chunk.Begin); err != nil {
				return err
			}
			if err := writeVP(ref.stats.Chunk.End); err != nil {
				return err
			}
			if err := writeI64(int64(ref.stats.Mapped)); err != nil {
				return err
			}
			if err := writeI64(int64(ref.stats.Unmapped)); err != nil {
				return err
			}
		}
	}

	if idx.unmapped != nil {
		if err := writeI64(int64(*idx.unmapped)); err != nil {
			return err
		}
	}

	return bw.Flush()
}
