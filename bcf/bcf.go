// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bcf provides CSI-indexed region queries over BGZF-compressed
// BCF2 variant call files.
package bcf

import (
	"github.com/Schaudge/htscore/bcf/query"
	"github.com/Schaudge/htscore/bgzf"
	"github.com/Schaudge/htscore/csi"
)

// Query returns an iterator over the records on reference ref that
// overlap the half-open interval [beg, end), using idx to find the
// chunks of r that may hold them.
func Query(r *bgzf.Reader, idx *csi.Index, ref int, beg, end int) *query.Reader {
	chunks := idx.Chunks(ref, beg, end)
	return query.NewReader(r, chunks, int32(ref), query.Interval{Start: beg + 1, End: end})
}
