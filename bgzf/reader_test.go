// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import (
	"bytes"
	"io"

	"gopkg.in/check.v1"
)

func (s *S) TestRoundTrip(c *check.C) {
	var buf bytes.Buffer
	payloads := [][]byte{[]byte("noodles"), []byte("bgzf"), []byte("")}

	for _, p := range payloads {
		w := NewWriter(&buf, 6)
		if _, err := w.Write(p); err != nil {
			c.Fatal(err)
		}
		if err := w.CloseWithoutTerminator(); err != nil {
			c.Fatal(err)
		}
	}
	// Final terminator for the stream as a whole.
	buf.Write(eofMarker[:])

	r := NewReader(&buf)
	var blk Block
	for _, want := range payloads {
		n, err := r.ReadBlock(&blk)
		c.Assert(err, check.IsNil)
		c.Check(n > 0, check.Equals, true)
		c.Check(blk.data, check.DeepEquals, want)
	}

	n, err := r.ReadBlock(&blk)
	c.Check(n, check.Equals, 0)
	c.Check(err, check.Equals, io.EOF)
}

func (s *S) TestSeek(c *check.C) {
	var buf bytes.Buffer
	w := NewWriter(&buf, 6)
	if _, err := w.Write([]byte("hello, world")); err != nil {
		c.Fatal(err)
	}
	if err := w.Close(); err != nil {
		c.Fatal(err)
	}

	// Seeking requires the wrapped io.Reader to implement io.Seeker.
	r2 := NewReader(bytes.NewReader(buf.Bytes()))
	err := r2.Seek(VirtualOffset(0, 7))
	c.Assert(err, check.IsNil)

	got := make([]byte, 5)
	n, err := io.ReadFull(r2, got)
	c.Assert(err, check.IsNil)
	c.Check(string(got[:n]), check.Equals, "world")
}
