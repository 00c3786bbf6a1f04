// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import "sort"

// MergeChunks sorts chunks by starting virtual position and coalesces any
// whose compressed-offset spans touch or overlap, reducing the number of
// seeks an index query needs to make.
func MergeChunks(chunks []Chunk) []Chunk {
	if len(chunks) < 2 {
		return chunks
	}

	sorted := make([]Chunk, len(chunks))
	copy(sorted, chunks)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Begin < sorted[j].Begin })

	merged := sorted[:1]
	for _, c := range sorted[1:] {
		last := &merged[len(merged)-1]
		if c.Begin.CompressedOffset() <= last.End.CompressedOffset() {
			if c.End > last.End {
				last.End = c.End
			}
			continue
		}
		merged = append(merged, c)
	}
	return merged
}
