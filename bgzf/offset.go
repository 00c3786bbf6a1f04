// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import "fmt"

// VirtualPosition is a BGZF virtual file offset: the upper 48 bits hold the
// compressed byte offset of a block's gzip header from the start of the
// stream, and the lower 16 bits hold an uncompressed offset within that
// block's payload.
//
// Numeric ordering of VirtualPosition values is equivalent to lexicographic
// ordering on (compressed offset, uncompressed offset), since the
// uncompressed offset always fits in the low 16 bits.
type VirtualPosition uint64

// CompressedOffset returns the compressed byte offset component of vp.
//
// The mask is retained even though the upper 16 bits of a well-formed
// VirtualPosition are always zero; it guards against malformed input
// rather than expressing a real ambiguity in the encoding.
func (vp VirtualPosition) CompressedOffset() int64 {
	return int64((vp >> 16) & 0xffff_ffff_ffff)
}

// UncompressedOffset returns the intra-block uncompressed offset component
// of vp.
func (vp VirtualPosition) UncompressedOffset() uint16 {
	return uint16(vp & 0xffff)
}

// VirtualOffset composes a compressed offset and an intra-block
// uncompressed offset into a VirtualPosition.
//
// c must be less than 2^48 and u less than 2^16; callers that cannot
// guarantee this should mask before calling.
func VirtualOffset(c int64, u uint16) VirtualPosition {
	return VirtualPosition(c<<16 | int64(u))
}

func (vp VirtualPosition) String() string {
	return fmt.Sprintf("%d/%d", vp.CompressedOffset(), vp.UncompressedOffset())
}

// Chunk is a half-open range of virtual positions [Begin, End) identifying
// a contiguous record region in a compressed file. Chunks are produced by
// an external index (see package csi) and consumed by region queries.
type Chunk struct {
	Begin VirtualPosition
	End   VirtualPosition
}
