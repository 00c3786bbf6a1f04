// Copyright ©2012 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package internal holds binning helpers shared by the index-consuming
// packages that do not belong in any single public API.
package internal

// MaxPosition is the largest valid 0-based coordinate representable in a
// BAI/CSI bin index built with 14-bit bins (the classic htslib layout).
const MaxPosition = 1<<29 - 1

// IsValidIndexPos returns whether pos is representable in a BAI/CSI index.
func IsValidIndexPos(pos int) bool {
	return -1 <= pos && pos <= MaxPosition
}

// BinFor returns the htslib reg2bin bin number for the half-open interval
// [beg, end). It implements the classic 14/17/20/23/26-bit tiling used by
// BAI indexes and by CSI indexes with the default min_shift=14, depth=5.
func BinFor(beg, end int) int {
	end--
	switch {
	case beg>>14 == end>>14:
		return ((1 << 15) - 1) / 7 + (beg >> 14)
	case beg>>17 == end>>17:
		return ((1 << 12) - 1) / 7 + (beg >> 17)
	case beg>>20 == end>>20:
		return ((1 << 9) - 1) / 7 + (beg >> 20)
	case beg>>23 == end>>23:
		return ((1 << 6) - 1) / 7 + (beg >> 23)
	case beg>>26 == end>>26:
		return ((1 << 3) - 1) / 7 + (beg >> 26)
	}
	return 0
}

// BinsFor returns the list of bin numbers that overlap the half-open
// interval [beg, end), across all six tiers (the whole-reference bin 0
// plus the five 26/23/20/17/14-bit tiers), in the order a CSI/BAI reader
// visits them.
func BinsFor(beg, end int) []int {
	end--
	list := []int{0}
	for _, shift := range []uint{26, 23, 20, 17, 14} {
		base := binTierBase(shift)
		lo := base + (beg >> shift)
		hi := base + (end >> shift)
		for b := lo; b <= hi; b++ {
			list = append(list, b)
		}
	}
	return list
}

// binTierBase returns the first bin number of the tier addressed by the
// given shift, per the htslib 5-level binning scheme.
func binTierBase(shift uint) int {
	switch shift {
	case 26:
		return ((1 << 3) - 1) / 7
	case 23:
		return ((1 << 6) - 1) / 7
	case 20:
		return ((1 << 9) - 1) / 7
	case 17:
		return ((1 << 12) - 1) / 7
	case 14:
		return ((1 << 15) - 1) / 7
	}
	return 0
}
