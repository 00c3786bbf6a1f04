// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"bytes"

	"gopkg.in/check.v1"
)

func (s *S) TestBlockRoundTrip(c *check.C) {
	blk, err := NewBlock(ContentTypeExternalData, 3, []byte("hello, cram"), MethodGzip)
	c.Assert(err, check.IsNil)

	var buf bytes.Buffer
	_, err = blk.WriteTo(&buf)
	c.Assert(err, check.IsNil)

	got, err := ReadBlockFrom(&buf)
	c.Assert(err, check.IsNil)
	c.Check(got.ContentID, check.Equals, int32(3))
	c.Check(got.Type, check.Equals, ContentTypeExternalData)

	data, err := got.Data()
	c.Assert(err, check.IsNil)
	c.Check(string(data), check.Equals, "hello, cram")
}

func (s *S) TestBlockRawMethodSizeMismatch(c *check.C) {
	blk := &Block{Method: MethodRaw, Type: ContentTypeExternalData, ContentID: 1, rawSize: 5, data: []byte("abc")}
	var buf bytes.Buffer
	_, err := blk.WriteTo(&buf)
	c.Assert(err, check.IsNil)
	_, err = ReadBlockFrom(&buf)
	c.Assert(err, check.NotNil)
}
