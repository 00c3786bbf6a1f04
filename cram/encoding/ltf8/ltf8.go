// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ltf8 implements the CRAM LTF-8 variable-length integer encoding:
// the 64-bit analogue of ITF-8, using the count of leading 1-bits in the
// first byte to signal the total encoded length, 1 to 9 bytes.
package ltf8

// Decode reads a single LTF-8 value from the start of b, returning the
// decoded value, the number of bytes the encoding occupies, and whether b
// held enough bytes to decode it. As with itf8.Decode, callers that only
// have the leading byte available can call Decode(b[:1]) to learn the
// required length before reading the rest.
func Decode(b []byte) (v int64, n int, ok bool) {
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
	case b0&0x08 == 0:
		n = 5
	case b0&0x04 == 0:
		n = 6
	case b0&0x02 == 0:
		n = 7
	case b0&0x01 == 0:
		n = 8
	default:
		n = 9
	}
	if len(b) < n {
		return 0, n, false
	}
	switch n {
	case 1:
		v = int64(b0)
	case 2:
		v = int64(b0&0x3f)<<8 | int64(b[1])
	case 3:
		v = int64(b0&0x1f)<<16 | int64(b[1])<<8 | int64(b[2])
	case 4:
		v = int64(b0&0x0f)<<24 | int64(b[1])<<16 | int64(b[2])<<8 | int64(b[3])
	case 5:
		v = int64(b0&0x07)<<32 | int64(b[1])<<24 | int64(b[2])<<16 | int64(b[3])<<8 | int64(b[4])
	case 6:
		v = int64(b0&0x03)<<40 | int64(b[1])<<32 | int64(b[2])<<24 | int64(b[3])<<16 | int64(b[4])<<8 | int64(b[5])
	case 7:
		v = int64(b0&0x01)<<48 | int64(b[1])<<40 | int64(b[2])<<32 | int64(b[3])<<24 | int64(b[4])<<16 | int64(b[5])<<8 | int64(b[6])
	case 8:
		v = int64(b[1])<<48 | int64(b[2])<<40 | int64(b[3])<<32 | int64(b[4])<<24 | int64(b[5])<<16 | int64(b[6])<<8 | int64(b[7])
	case 9:
		v = int64(b[1])<<56 | int64(b[2])<<48 | int64(b[3])<<40 | int64(b[4])<<32 | int64(b[5])<<24 | int64(b[6])<<16 | int64(b[7])<<8 | int64(b[8])
	}
	return v, n, true
}

// Encode appends the LTF-8 encoding of v to b and returns the extended
// slice.
func Encode(b []byte, v int64) []byte {
	switch {
	case uint64(v)>>7 == 0:
		return append(b, byte(v))
	case uint64(v)>>14 == 0:
		return append(b, byte(v>>8)|0x80, byte(v))
	case uint64(v)>>21 == 0:
		return append(b, byte(v>>16)|0xc0, byte(v>>8), byte(v))
	case uint64(v)>>28 == 0:
		return append(b, byte(v>>24)|0xe0, byte(v>>16), byte(v>>8), byte(v))
	case uint64(v)>>35 == 0:
		return append(b, byte(v>>32)|0xf0, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	case uint64(v)>>42 == 0:
		return append(b, byte(v>>40)|0xf8, byte(v>>32), byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	case uint64(v)>>49 == 0:
		return append(b, byte(v>>48)|0xfc, byte(v>>40), byte(v>>32), byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	case uint64(v)>>56 == 0:
		return append(b, 0xfe, byte(v>>48), byte(v>>40), byte(v>>32), byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	default:
		return append(b, 0xff, byte(v>>56), byte(v>>48), byte(v>>40), byte(v>>32), byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
	}
}
