// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

// Flags mirrors CRAM's per-record bit flags (distinct from SAM's
// alignment flags), tracked so the builder can force every record to the
// "detached" representation it emits.
type Flags uint8

const (
	FlagQualityScoresStored Flags = 1 << iota
	FlagDetached
	FlagHasMateDownstream
	FlagDecodeSequenceAsUnknown
)

// Has reports whether all bits in mask are set.
func (f Flags) Has(mask Flags) bool { return f&mask == mask }

// SubstitutionValue is the closed union of how a Substitution feature can
// represent its change: either as the literal reference/read base pair
// read from a SAM record, or as a code already resolved against a
// substitution matrix.
type SubstitutionValue struct {
	hasCode             bool
	code                byte
	referenceBase, base byte
}

// SubstitutionBases returns a SubstitutionValue holding the literal
// reference and read bases.
func SubstitutionBases(referenceBase, base byte) SubstitutionValue {
	return SubstitutionValue{referenceBase: referenceBase, base: base}
}

// SubstitutionCode returns a SubstitutionValue already resolved to a
// substitution-matrix code.
func SubstitutionCode(code byte) SubstitutionValue {
	return SubstitutionValue{hasCode: true, code: code}
}

// IsCode reports whether v already holds a resolved code.
func (v SubstitutionValue) IsCode() bool { return v.hasCode }

// Bases returns the literal reference and read bases; valid only when
// !v.IsCode().
func (v SubstitutionValue) Bases() (referenceBase, base byte) { return v.referenceBase, v.base }

// Code returns the resolved substitution code; valid only when
// v.IsCode().
func (v SubstitutionValue) Code() byte { return v.code }

// FeatureKind identifies the kind of read feature a Feature carries.
type FeatureKind int

const (
	FeatureSubstitution FeatureKind = iota
	FeatureInsertion
	FeatureDeletion
	FeatureSoftClip
)

// Feature is one entry of a record's read-feature list: a positioned
// edit relative to the reference, such as a substitution, insertion or
// deletion.
type Feature struct {
	Kind     FeatureKind
	Position int
	Sub      SubstitutionValue
	Bases    []byte
	Length   int
}

// Record is the subset of a CRAM alignment record the slice builder
// needs: enough to classify a slice's reference sequence, compute its
// alignment span, and rewrite its substitution features.
type Record struct {
	ReferenceSequenceID *int32 // nil means unmapped
	AlignmentStart      int    // 1-based; 0 means unset/unmapped
	AlignmentEnd        int    // 1-based, inclusive

	Flags    Flags
	Features []Feature

	// DistanceToNextFragment is cleared by the builder once a record is
	// forced into the detached representation.
	DistanceToNextFragment *int
}
