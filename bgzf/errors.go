// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bgzf

import "errors"

var (
	// ErrNotASeeker is returned by Seek when the underlying reader does
	// not implement io.Seeker.
	ErrNotASeeker = errors.New("bgzf: not a seeker")

	// ErrInvalidUncompressedOffset is returned when a seek targets an
	// intra-block offset beyond the block's uncompressed payload.
	ErrInvalidUncompressedOffset = errors.New("bgzf: invalid uncompressed offset")

	// ErrHeaderMagic is returned when a block's gzip header does not
	// carry the expected magic bytes.
	ErrHeaderMagic = errors.New("bgzf: invalid block header magic")

	// ErrNoBlockSize is returned when a block's BSIZE field is too small
	// to cover the block's own header and trailer.
	ErrNoBlockSize = errors.New("bgzf: no block size in header")

	// errBlockTooLarge is returned by Writer when a compressed block
	// would exceed the maximum on-disk BGZF block size of 64KB.
	errBlockTooLarge = errors.New("bgzf: compressed block exceeds 64KB")
)
