// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package query

import (
	"context"
	"encoding/binary"
	"io"
	"testing"

	"github.com/Schaudge/htscore/bgzf"

	"gopkg.in/check.v1"
)

func Test(t *testing.T) { check.TestingT(t) }

type S struct{}

var _ = check.Suite(&S{})

// stubReader is a recordReader over a flat in-memory buffer, standing in
// for a real BGZF stream so the state machine can be exercised without
// compressing anything: virtual positions are just byte offsets with a
// zero uncompressed-offset component.
type stubReader struct {
	data      []byte
	pos       int
	lastChunk bgzf.Chunk
}

func (s *stubReader) Seek(vp bgzf.VirtualPosition) error {
	s.pos = int(vp.CompressedOffset())
	return nil
}

func (s *stubReader) LastChunk() bgzf.Chunk { return s.lastChunk }

func (s *stubReader) Read(p []byte) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(p, s.data[s.pos:])
	s.pos += n
	s.lastChunk.End = bgzf.VirtualOffset(int64(s.pos), 0)
	return n, nil
}

func encodeRecord(chromID, pos0, rlen int32) []byte {
	shared := make([]byte, 12)
	binary.LittleEndian.PutUint32(shared[0:4], uint32(chromID))
	binary.LittleEndian.PutUint32(shared[4:8], uint32(pos0))
	binary.LittleEndian.PutUint32(shared[8:12], uint32(rlen))

	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf[0:4], uint32(len(shared)))
	binary.LittleEndian.PutUint32(buf[4:8], 0)
	return append(buf, shared...)
}

func (s *S) TestNextFiltersByChromosomeAndInterval(c *check.C) {
	r1 := encodeRecord(0, 5, 10)  // 1-based [6,15]
	r2 := encodeRecord(1, 30, 10) // chromosome 1, 1-based [31,40]
	r3 := encodeRecord(0, 30, 5)  // 1-based [31,35]

	var data []byte
	data = append(data, r1...)
	data = append(data, r2...)
	data = append(data, r3...)

	chunks := []bgzf.Chunk{
		{Begin: bgzf.VirtualOffset(0, 0), End: bgzf.VirtualOffset(int64(len(r1)+len(r2)), 0)},
		{Begin: bgzf.VirtualOffset(int64(len(r1)+len(r2)), 0), End: bgzf.VirtualOffset(int64(len(data)), 0)},
	}

	src := &stubReader{data: data}
	reader := NewReader(src, chunks, 0, Interval{Start: 25, End: 50})

	var got []int32
	for reader.Next(context.Background()) {
		got = append(got, reader.Record().Position())
	}
	c.Assert(reader.Err(), check.IsNil)
	c.Check(got, check.DeepEquals, []int32{30})
}

func (s *S) TestNextStopsOnCanceledContext(c *check.C) {
	src := &stubReader{data: encodeRecord(0, 1, 1)}
	chunks := []bgzf.Chunk{{Begin: bgzf.VirtualOffset(0, 0), End: bgzf.VirtualOffset(100, 0)}}
	reader := NewReader(src, chunks, 0, Interval{Start: 1, End: 1})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Check(reader.Next(ctx), check.Equals, false)
	c.Check(reader.Err(), check.Equals, context.Canceled)
}
