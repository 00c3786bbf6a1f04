// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

// Header is a CRAM slice header: the fixed fields that precede a slice's
// core and external data blocks.
type Header struct {
	ReferenceSequenceID ReferenceSequenceID
	AlignmentStart      int
	AlignmentSpan       int
	RecordCount         int
	RecordCounter       int64
	BlockCount          int
	BlockContentIDs     []int32
	ReferenceMD5        [16]byte
}

// Slice is a built CRAM slice: its header plus the core data block and
// the external data blocks its records were partitioned into.
type Slice struct {
	Header         Header
	CoreDataBlock  *Block
	ExternalBlocks []*Block
}
