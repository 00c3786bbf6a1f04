// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package itf8 implements the CRAM ITF-8 variable-length integer encoding:
// a big-endian, UTF-8-like representation of a 32-bit integer in 1 to 5
// bytes, with the leading byte's high bits signalling the total length.
package itf8

// Decode reads a single ITF-8 value from the start of b. It returns the
// decoded value, the number of bytes the encoding occupies, and whether b
// held enough bytes to decode it; callers that only have the first byte
// available should call Decode(b[:1]) to learn the required length n, then
// re-call Decode with n bytes once they are read.
func Decode(b []byte) (v int32, n int, ok bool) {
	if len(b) == 0 {
		return 0, 0, false
	}
	b0 := b[0]
	switch {
	case b0&0x80 == 0:
		n = 1
	case b0&0x40 == 0:
		n = 2
	case b0&0x20 == 0:
		n = 3
	case b0&0x10 == 0:
		n = 4
	default:
		n = 5
	}
	if len(b) < n {
		return 0, n, false
	}
	switch n {
	case 1:
		v = int32(b0)
	case 2:
		v = int32(b0&0x7f)<<8 | int32(b[1])
	case 3:
		v = int32(b0&0x3f)<<16 | int32(b[1])<<8 | int32(b[2])
	case 4:
		v = int32(b0&0x1f)<<24 | int32(b[1])<<16 | int32(b[2])<<8 | int32(b[3])
	case 5:
		v = int32(b0&0x0f)<<28 | int32(b[1])<<20 | int32(b[2])<<12 | int32(b[3])<<4 | int32(b[4]&0x0f)
	}
	return v, n, true
}

// Encode appends the ITF-8 encoding of v to b and returns the extended
// slice.
func Encode(b []byte, v int32) []byte {
	switch {
	case v>>7 == 0:
		return append(b, byte(v))
	case v>>14 == 0:
		return append(b, byte(v>>8)|0x80, byte(v))
	case v>>21 == 0:
		return append(b, byte(v>>16)|0xc0, byte(v>>8), byte(v))
	case v>>28 == 0:
		return append(b, byte(v>>24)|0xe0, byte(v>>16), byte(v>>8), byte(v))
	default:
		return append(b, byte(v>>28)|0xf0, byte(v>>20), byte(v>>12), byte(v>>4), byte(v))
	}
}

// Len returns the number of bytes Encode would need for v.
func Len(v int32) int {
	switch {
	case v>>7 == 0:
		return 1
	case v>>14 == 0:
		return 2
	case v>>21 == 0:
		return 3
	case v>>28 == 0:
		return 4
	default:
		return 5
	}
}
