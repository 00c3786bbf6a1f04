// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package query implements region-filtered iteration over a
// BGZF-compressed, CSI-indexed BCF stream: given the list of chunks a
// CSI lookup produced for a (chromosome, interval) query, it visits only
// the records those chunks cover and yields the ones that actually
// intersect the query interval.
package query

import (
	"context"
	"io"

	"github.com/Schaudge/htscore/bcf/lazy"
	"github.com/Schaudge/htscore/bgzf"
)

// Interval is a half-open-on-neither-end 1-based region, matching VCF's
// inclusive POS/END convention.
type Interval struct {
	Start, End int
}

// Intersects reports whether i and other share at least one coordinate.
func (i Interval) Intersects(other Interval) bool {
	return i.Start <= other.End && other.Start <= i.End
}

// state is the query iterator's three-phase cursor, mirroring the
// Seek/Read/Done state machine a coroutine-based reader would express as
// suspension points; here it is simply which branch Next's poll takes.
type state int

const (
	stateSeek state = iota
	stateRead
	stateDone
)

// recordReader is the minimal surface query.Reader needs from a BGZF
// stream carrying lazy BCF records: seek to a virtual position, report
// the virtual-position span of the most recent read, and supply the raw
// bytes lazy.Record.ReadFrom decodes.
type recordReader interface {
	Seek(vp bgzf.VirtualPosition) error
	LastChunk() bgzf.Chunk
	io.Reader
}

// Reader is a single-use, poll-based iterator over the records covered
// by a chunk list that intersect (chromosomeID, interval). A call to Next
// keeps seeking and reading records until it finds a matching record, the
// chunk list is exhausted, an error occurs or ctx is done, so one call may
// perform many seeks and record reads; ctx is checked before each of them.
type Reader struct {
	src          recordReader
	chunks       []bgzf.Chunk
	chromosomeID int32
	interval     Interval

	state    state
	chunkEnd bgzf.VirtualPosition

	record lazy.Record
	err    error
}

// NewReader returns a Reader that visits chunks in src, a BGZF stream
// carrying lazy BCF records, yielding only records on chromosomeID that
// intersect interval.
func NewReader(src recordReader, chunks []bgzf.Chunk, chromosomeID int32, interval Interval) *Reader {
	return &Reader{src: src, chunks: chunks, chromosomeID: chromosomeID, interval: interval}
}

// Next advances the iterator to the next matching record, returning
// false once the chunk list is exhausted or an error occurred (check Err
// to distinguish the two). The matching record is available from Record
// until the next call to Next.
func (r *Reader) Next(ctx context.Context) bool {
	for {
		if err := ctx.Err(); err != nil {
			r.err = err
			return false
		}

		switch r.state {
		case stateSeek:
			if len(r.chunks) == 0 {
				r.state = stateDone
				continue
			}
			chunk := r.chunks[0]
			r.chunks = r.chunks[1:]
			if err := r.src.Seek(chunk.Begin); err != nil {
				r.err = err
				return false
			}
			r.chunkEnd = chunk.End
			r.state = stateRead

		case stateRead:
			if _, err := r.record.ReadFrom(r.src); err != nil {
				if err == io.EOF {
					r.state = stateSeek
					continue
				}
				r.err = err
				return false
			}

			if r.src.LastChunk().End >= r.chunkEnd {
				r.state = stateSeek
			}

			if r.intersects() {
				return true
			}

		case stateDone:
			return false
		}
	}
}

// Record returns the most recent matching record found by Next.
func (r *Reader) Record() *lazy.Record { return &r.record }

// Err returns the error, if any, that caused Next to return false.
func (r *Reader) Err() error { return r.err }

// intersects reports whether the current record is on the query's
// chromosome and overlaps its interval.
func (r *Reader) intersects() bool {
	if r.record.ChromosomeID() != r.chromosomeID {
		return false
	}
	recInterval := Interval{Start: int(r.record.Position()) + 1, End: int(r.record.End())}
	return recInterval.Intersects(r.interval)
}
