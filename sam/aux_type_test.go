// Copyright ©2012-2013 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sam

import (
	"io"
	"testing"

	"github.com/grailbio/testutil/assert"
)

func TestParseAuxType(t *testing.T) {
	typ, err := ParseAuxType([]byte("i"))
	assert.NoError(t, err)
	if typ != AuxInt32 {
		t.Errorf("got %v, want AuxInt32", typ)
	}

	_, err = ParseAuxType(nil)
	if err != io.ErrUnexpectedEOF {
		t.Errorf("got %v, want io.ErrUnexpectedEOF", err)
	}

	_, err = ParseAuxType([]byte("n"))
	if err == nil {
		t.Error("want error for invalid type byte")
	}
}
