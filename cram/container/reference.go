// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

// ReferenceSequenceIDKind distinguishes the three ways a slice can relate
// to a single reference sequence.
type ReferenceSequenceIDKind int

const (
	// RefSome means every record in the slice shares the same reference
	// sequence ID.
	RefSome ReferenceSequenceIDKind = iota
	// RefNone means every record in the slice is unmapped.
	RefNone
	// RefMany means the slice's records span more than one reference
	// sequence (or mix mapped and unmapped records).
	RefMany
)

// ReferenceSequenceID classifies a slice's records per the CRAM slice
// header's reference_sequence_id field: a concrete id, the unmapped
// sentinel (-1), or the multi-reference sentinel (-2).
type ReferenceSequenceID struct {
	Kind ReferenceSequenceIDKind
	ID   int32
}

// Some returns the ReferenceSequenceID for a slice whose records all
// belong to reference sequence id.
func Some(id int32) ReferenceSequenceID {
	return ReferenceSequenceID{Kind: RefSome, ID: id}
}

// None is the ReferenceSequenceID of an all-unmapped slice.
var None = ReferenceSequenceID{Kind: RefNone}

// Many is the ReferenceSequenceID of a slice spanning multiple
// references.
var Many = ReferenceSequenceID{Kind: RefMany}

// Int32 returns the on-disk representation of id: the concrete reference
// id for RefSome, -1 for RefNone, or -2 for RefMany.
func (id ReferenceSequenceID) Int32() int32 {
	switch id.Kind {
	case RefSome:
		return id.ID
	case RefNone:
		return -1
	default:
		return -2
	}
}

// ReferenceRepository resolves a reference sequence's bases, e.g. from an
// indexed FASTA, so the builder can compute a slice's reference MD5.
type ReferenceRepository interface {
	// Sequence returns the bases of the named reference sequence.
	Sequence(name string) ([]byte, error)
}
