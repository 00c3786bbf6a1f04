// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bgzf implements the BGZF block-gzip format: a self-synchronizing
// stream of independently deflated blocks, each no larger than 64KB
// uncompressed, addressed by a 64-bit virtual position that composes a
// compressed byte offset with an intra-block uncompressed offset.
//
// See the SAM/BAM specification, section 4.1, for the on-disk layout this
// package implements: https://samtools.github.io/hts-specs/SAMv1.pdf
package bgzf
