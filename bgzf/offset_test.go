// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"testing"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

func (s *S) TestCompressedOffset(c *check.C) {
	c.Check(VirtualPosition(88384945211).CompressedOffset(), check.Equals, int64(1348647))
	c.Check(VirtualPosition(188049630896).CompressedOffset(), check.Equals, int64(2869409))
	c.Check(VirtualPosition(26155658182977).CompressedOffset(), check.Equals, int64(399103671))
}

func (s *S) TestUncompressedOffset(c *check.C) {
	c.Check(VirtualPosition(88384945211).UncompressedOffset(), check.Equals, uint16(15419))
	c.Check(VirtualPosition(188049630896).UncompressedOffset(), check.Equals, uint16(42672))
	c.Check(VirtualPosition(26155658182977).UncompressedOffset(), check.Equals, uint16(321))
}

func (s *S) TestVirtualOffsetRoundTrip(c *check.C) {
	for _, vp := range []VirtualPosition{0, 1, 88384945211, 188049630896, 26155658182977} {
		got := VirtualOffset(vp.CompressedOffset(), vp.UncompressedOffset())
		c.Check(got, check.Equals, vp)
	}
}
