// Copyright ©2012-2013 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sam holds the small pieces of the SAM text format that the
// lower-level codecs in this module need to agree on; full SAM record
// tokenizing lives outside this module.
package sam

import (
	"errors"
	"io"
)

// AuxType enumerates the one-byte type tags that precede an optional
// field's value in both SAM's text encoding and BAM's binary encoding.
type AuxType byte

const (
	AuxCharacter AuxType = 'A'
	AuxInt32     AuxType = 'i'
	AuxFloat     AuxType = 'f'
	AuxString    AuxType = 'Z'
	AuxHex       AuxType = 'H'
	AuxArray     AuxType = 'B'
)

// errInvalidAuxType is returned for a type byte outside the six
// recognised tags.
var errInvalidAuxType = errors.New("sam: invalid aux type")

// ParseAuxType reads the leading type byte of an optional field's value
// from b, returning the byte consumed. An empty b is UnexpectedEOF; a
// byte outside {A,i,f,Z,H,B} is a plain invalid-data error.
func ParseAuxType(b []byte) (AuxType, error) {
	if len(b) == 0 {
		return 0, io.ErrUnexpectedEOF
	}
	switch t := AuxType(b[0]); t {
	case AuxCharacter, AuxInt32, AuxFloat, AuxString, AuxHex, AuxArray:
		return t, nil
	default:
		return 0, errInvalidAuxType
	}
}
