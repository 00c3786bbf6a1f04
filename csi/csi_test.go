// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package csi

import (
	"bytes"
	"testing"

	"github.com/Schaudge/htscore/bgzf"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

// conceptualCSIv1Data is an uncompressed CSIv1 index for three records on a
// single reference, laid out the way htslib's bam_index_build produces it.
var conceptualCSIv1Data = []byte{
	0x43, 0x53, 0x49, 0x01, 0x0e, 0x00, 0x00, 0x00,
	0x05, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x01, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x65, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x65, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0xe4, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x4a, 0x92, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x65, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0xe4, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x03, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
}

func (s *S) TestConceptualCSIv1(c *check.C) {
	idx, err := ReadFrom(bytes.NewReader(conceptualCSIv1Data))
	c.Assert(err, check.IsNil)

	want := []bgzf.Chunk{{Begin: bgzf.VirtualOffset(101, 0), End: bgzf.VirtualOffset(228, 0)}}
	c.Check(idx.Chunks(0, 65000, 71000), check.DeepEquals, want)

	stats, ok := idx.ReferenceStats(0)
	c.Check(ok, check.Equals, true)
	c.Check(stats, check.Equals, ReferenceStats{
		Chunk:    bgzf.Chunk{Begin: bgzf.VirtualOffset(101, 0), End: bgzf.VirtualOffset(228, 0)},
		Mapped:   3,
		Unmapped: 0,
	})

	unmapped, ok := idx.Unmapped()
	c.Check(ok, check.Equals, true)
	c.Check(unmapped, check.Equals, uint64(0))
}

func (s *S) TestRoundTrip(c *check.C) {
	u := uint64(1)
	orig := &Index{
		Version:  2,
		minShift: 14,
		depth:    5,
		refs: []refIndex{
			{
				bins: []bin{
					{
						bin:  4681,
						left: bgzf.VirtualOffset(98, 0),
						chunks: []bgzf.Chunk{
							{Begin: bgzf.VirtualOffset(98, 0), End: bgzf.VirtualOffset(401, 0)},
						},
					},
				},
				stats: &ReferenceStats{
					Chunk:    bgzf.Chunk{Begin: bgzf.VirtualOffset(98, 0), End: bgzf.VirtualOffset(401, 0)},
					Mapped:   8,
					Unmapped: 1,
				},
			},
		},
		unmapped: &u,
		isSorted: true,
	}

	var buf bytes.Buffer
	c.Assert(WriteTo(&buf, orig), check.IsNil)

	got, err := ReadFrom(&buf)
	c.Assert(err, check.IsNil)
	c.Check(got.minShift, check.Equals, orig.minShift)
	c.Check(got.depth, check.Equals, orig.depth)
	c.Check(got.refs, check.DeepEquals, orig.refs)
	c.Check(*got.unmapped, check.Equals, *orig.unmapped)
}
