// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package aac implements CRAM's adaptive arithmetic coding (AAC) byte
// model, a carryless range coder driving a self-organizing order-0
// frequency table.
package aac

import (
	"encoding/binary"
	"io"
)

const (
	rangeTop    = uint32(1) << 24
	rangeBottom = uint32(1) << 16
)

// RangeCoder implements the carryless range coder CRAM's arithmetic block
// method normalizes its probability interval against. A single RangeCoder
// is shared across every Model symbol decoded or encoded from one block.
type RangeCoder struct {
	low   uint32
	rng   uint32
	code  uint32
	isDec bool
}

// NewDecoder returns a RangeCoder primed to decode from r, consuming the
// 4-byte big-endian code word every CRAM arithmetic block starts with.
func NewDecoder(r io.Reader) (*RangeCoder, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return nil, err
	}
	return &RangeCoder{rng: 0xffffffff, code: binary.BigEndian.Uint32(buf[:]), isDec: true}, nil
}

// NewEncoder returns a RangeCoder primed to encode; call Flush on the
// returned coder once every symbol has been written to emit the trailing
// code word.
func NewEncoder() *RangeCoder {
	return &RangeCoder{rng: 0xffffffff}
}

// RangeGetFreq maps the coder's current state to a cumulative frequency
// in [0, totalFreq), which the caller's model uses to find which symbol's
// frequency band that value falls in.
func (rc *RangeCoder) RangeGetFreq(totalFreq uint32) uint32 {
	rc.rng /= totalFreq
	return (rc.code - rc.low) / rc.rng
}

// RangeDecode consumes the symbol whose cumulative frequency band is
// [cumFreq, cumFreq+freq), renormalizing against r as needed.
func (rc *RangeCoder) RangeDecode(r io.Reader, cumFreq, freq uint32) error {
	rc.low += cumFreq * rc.rng
	rc.rng *= freq
	for {
		if (rc.low^(rc.low+rc.rng)) < rangeTop {
			// top byte settled, nothing to shift out yet
		} else if rc.rng < rangeBottom {
			rc.rng = -rc.low & (rangeBottom - 1)
		} else {
			break
		}
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		rc.code = rc.code<<8 | uint32(b[0])
		rc.low <<= 8
		rc.rng <<= 8
	}
	return nil
}

// RangeEncode emits the symbol occupying [cumFreq, cumFreq+freq) out of
// totalFreq, renormalizing into w as needed.
func (rc *RangeCoder) RangeEncode(w io.Writer, cumFreq, freq, totalFreq uint32) error {
	rc.rng /= totalFreq
	rc.low += cumFreq * rc.rng
	rc.rng *= freq
	for {
		if (rc.low^(rc.low+rc.rng)) < rangeTop {
		} else if rc.rng < rangeBottom {
			rc.rng = -rc.low & (rangeBottom - 1)
		} else {
			break
		}
		if _, err := w.Write([]byte{byte(rc.low >> 24)}); err != nil {
			return err
		}
		rc.low <<= 8
		rc.rng <<= 8
	}
	return nil
}

// Flush emits the remaining bytes of low, completing the code word a
// decoder's NewDecoder call expects to read.
func (rc *RangeCoder) Flush(w io.Writer) error {
	for i := 0; i < 4; i++ {
		if _, err := w.Write([]byte{byte(rc.low >> 24)}); err != nil {
			return err
		}
		rc.low <<= 8
	}
	return nil
}
