// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package aac

import (
	"fmt"
	"io"
)

// Model is a single order-0 adaptive frequency table over an alphabet of
// byte symbols, as used by CRAM's arithmetic external block codec. Each
// distinct context (e.g. each data series, or each order-1 predecessor
// byte) gets its own Model.
//
// A Model is asymmetrically seeded so that higher symbol values start
// with higher frequency, self-organizes its symbol order by promoting
// whichever symbol was most recently decoded or encoded, and halves all
// frequencies once their sum would overflow the range coder's 16-bit
// precision.
type Model struct {
	totalFreq uint32
	symbols   []byte
	freqs     []uint32
}

// New returns a Model over the first numSym byte values 0..numSym-1, with
// frequencies[i] initialized to i (so that symbol 0 is never the most
// frequent until it has actually been seen).
func New(numSym int) *Model {
	m := &Model{
		totalFreq: uint32(numSym),
		symbols:   make([]byte, numSym),
		freqs:     make([]uint32, numSym),
	}
	for i := 0; i < numSym; i++ {
		m.symbols[i] = byte(i)
		m.freqs[i] = uint32(i)
	}
	return m
}

// Decode reads the next symbol from r using range_coder's current state,
// updates the model's frequency table, and returns the decoded symbol.
func (m *Model) Decode(r io.Reader, rangeCoder *RangeCoder) (byte, error) {
	freq := rangeCoder.RangeGetFreq(m.totalFreq)

	var acc uint32
	x := 0
	for acc+m.freqs[x] <= freq {
		acc += m.freqs[x]
		x++
	}

	if err := rangeCoder.RangeDecode(r, acc, m.freqs[x]); err != nil {
		return 0, err
	}

	sym := m.symbols[x]
	m.bumpAndPromote(x)

	return sym, nil
}

// Encode writes sym to w using range_coder's current state, updating the
// model's frequency table the same way Decode does.
func (m *Model) Encode(w io.Writer, rangeCoder *RangeCoder, sym byte) error {
	x := -1
	for i, s := range m.symbols {
		if s == sym {
			x = i
			break
		}
	}
	if x < 0 {
		return fmt.Errorf("aac: symbol %d not in model alphabet", sym)
	}

	var acc uint32
	for i := 0; i < x; i++ {
		acc += m.freqs[i]
	}

	if err := rangeCoder.RangeEncode(w, acc, m.freqs[x], m.totalFreq); err != nil {
		return err
	}

	m.bumpAndPromote(x)
	return nil
}

// bumpAndPromote applies the frequency increment, renormalizes if the
// table has grown past the coder's precision, and performs the one-step
// adaptive swap that keeps frequently-seen symbols near the front of the
// linear scan Decode/Encode perform.
func (m *Model) bumpAndPromote(x int) {
	m.freqs[x] += 16
	m.totalFreq += 16

	if m.totalFreq > (1<<16)-17 {
		m.renormalize()
	}

	if x > 0 && m.freqs[x] > m.freqs[x-1] {
		m.freqs[x], m.freqs[x-1] = m.freqs[x-1], m.freqs[x]
		m.symbols[x], m.symbols[x-1] = m.symbols[x-1], m.symbols[x]
	}
}

// renormalize halves every symbol's frequency, rounding up, so that no
// symbol's count ever reaches zero and the table never stops adapting.
func (m *Model) renormalize() {
	var total uint32
	for i, f := range m.freqs {
		f -= f / 2
		m.freqs[i] = f
		total += f
	}
	m.totalFreq = total
}
