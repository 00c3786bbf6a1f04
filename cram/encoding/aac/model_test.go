// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aac

import (
	"bytes"
	"testing"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestRoundTrip(c *check.C) {
	msg := []byte("mississippi river mississippi river mississippi river")

	var buf bytes.Buffer
	enc := NewEncoder()
	m := New(256)
	for _, b := range msg {
		c.Assert(m.Encode(&buf, enc, b), check.IsNil)
	}
	c.Assert(enc.Flush(&buf), check.IsNil)

	dec, err := NewDecoder(&buf)
	c.Assert(err, check.IsNil)
	d := New(256)
	got := make([]byte, len(msg))
	for i := range got {
		b, err := d.Decode(&buf, dec)
		c.Assert(err, check.IsNil)
		got[i] = b
	}
	c.Check(got, check.DeepEquals, msg)
}

func (s *S) TestInitialFrequenciesAreAsymmetric(c *check.C) {
	m := New(4)
	c.Check(m.freqs, check.DeepEquals, []uint32{0, 1, 2, 3})
	c.Check(m.totalFreq, check.Equals, uint32(4))
}

func (s *S) TestRenormalize(c *check.C) {
	m := &Model{totalFreq: 10, symbols: []byte{0, 1}, freqs: []uint32{7, 3}}
	m.renormalize()
	c.Check(m.freqs, check.DeepEquals, []uint32{4, 2})
	c.Check(m.totalFreq, check.Equals, uint32(6))
}
