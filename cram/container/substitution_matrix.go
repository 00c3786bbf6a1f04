// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

// bases is the fixed base order CRAM's substitution matrix indexes by,
// per the format's 5x4 reference/read base table.
var bases = [5]byte{'A', 'C', 'G', 'T', 'N'}

// SubstitutionMatrix maps a (reference base, read base) pair to the 2-bit
// code CRAM stores in place of the literal bases, as built from the
// compression header's preservation map.
type SubstitutionMatrix struct {
	// codes[r] lists, for reference base r, the four possible read bases
	// in the order their 2-bit code assigns them (most frequent first).
	codes [5][4]byte
}

// NewSubstitutionMatrix builds a SubstitutionMatrix from its already
// frequency-ranked per-reference-base code assignment, as decoded from a
// compression header's preservation map.
func NewSubstitutionMatrix(codes [5][4]byte) *SubstitutionMatrix {
	return &SubstitutionMatrix{codes: codes}
}

// FindCode returns the substitution code for changing referenceBase to
// base.
func (m *SubstitutionMatrix) FindCode(referenceBase, base byte) byte {
	r := baseIndex(referenceBase)
	for code, b := range m.codes[r] {
		if b == base {
			return byte(code)
		}
	}
	return 0
}

func baseIndex(b byte) int {
	for i, c := range bases {
		if c == b {
			return i
		}
	}
	return len(bases) - 1
}
