// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ltf8

import (
	"testing"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestRoundTrip(c *check.C) {
	values := []int64{
		0, 1, 127, 128, 16383, 16384,
		2097151, 2097152, 268435455, 268435456,
		1 << 34, 1 << 41, 1 << 48, 1 << 55, 1 << 62,
		-1, -128, -1 << 40,
	}
	for _, v := range values {
		enc := Encode(nil, v)
		got, n, ok := Decode(enc)
		c.Check(ok, check.Equals, true)
		c.Check(n, check.Equals, len(enc))
		c.Check(got, check.Equals, v)
	}
}

func (s *S) TestDecodeShort(c *check.C) {
	enc := Encode(nil, 1<<40)
	_, n, ok := Decode(enc[:1])
	c.Check(ok, check.Equals, false)
	c.Check(n, check.Equals, len(enc))
}
