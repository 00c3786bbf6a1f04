// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package container implements the CRAM data container layer: blocks,
// slices and the slice builder that partitions a run of alignment
// records into CRAM's container/slice/block hierarchy.
package container

import (
	"bytes"
	"compress/bzip2"
	"errors"
	"fmt"
	"hash/crc32"
	"io"

	"github.com/Schaudge/htscore/cram/encoding/itf8"
	"github.com/klauspost/compress/gzip"
	"github.com/ulikunitz/xz/lzma"
)

// CompressionMethod identifies how a Block's data is packed on disk.
type CompressionMethod byte

const (
	MethodRaw CompressionMethod = iota
	MethodGzip
	MethodBzip2
	MethodLZMA
	MethodRANS
)

// ContentType identifies what a Block holds.
type ContentType byte

const (
	ContentTypeFileHeader ContentType = iota
	ContentTypeCompressionHeader
	ContentTypeSliceHeader
	contentTypeReserved
	ContentTypeExternalData
	ContentTypeCoreData
)

// ErrRANSUnimplemented is returned by Block.Data for a block compressed
// with the rANS method, which this package does not decode.
var ErrRANSUnimplemented = errors.New("cram: rANS decompression unimplemented")

// Block is a single compressed unit of CRAM data: either the core data
// stream of a slice, or one of its external data streams keyed by content
// ID, or (at the container level) a file or compression header.
type Block struct {
	Method    CompressionMethod
	Type      ContentType
	ContentID int32

	rawSize int32
	data    []byte // as stored on disk; compressed unless Method == MethodRaw
	crc32   uint32
}

// NewBlock returns a Block holding raw (uncompressed) data under
// contentID, compressed right away with the given method; only MethodRaw
// and MethodGzip are supported for writing.
func NewBlock(typ ContentType, contentID int32, raw []byte, method CompressionMethod) (*Block, error) {
	b := &Block{Type: typ, ContentID: contentID, Method: method, rawSize: int32(len(raw))}
	compressed, err := compress(raw, method)
	if err != nil {
		return nil, err
	}
	b.data = compressed
	return b, nil
}

// Data decompresses and returns the block's uncompressed payload.
func (b *Block) Data() ([]byte, error) {
	switch b.Method {
	case MethodRaw:
		return b.data, nil
	case MethodGzip:
		gz, err := gzip.NewReader(bytes.NewReader(b.data))
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return io.ReadAll(gz)
	case MethodBzip2:
		return io.ReadAll(bzip2.NewReader(bytes.NewReader(b.data)))
	case MethodLZMA:
		lz, err := lzma.NewReader(bytes.NewReader(b.data))
		if err != nil {
			return nil, err
		}
		return io.ReadAll(lz)
	case MethodRANS:
		return nil, ErrRANSUnimplemented
	default:
		return nil, fmt.Errorf("cram: unknown block compression method %d", b.Method)
	}
}

// compress packs raw using method, returning the on-disk representation.
func compress(raw []byte, method CompressionMethod) ([]byte, error) {
	switch method {
	case MethodRaw:
		return raw, nil
	case MethodGzip:
		var buf bytes.Buffer
		gz := gzip.NewWriter(&buf)
		if _, err := gz.Write(raw); err != nil {
			return nil, err
		}
		if err := gz.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("cram: compression method %d unsupported for writing", method)
	}
}

// ReadBlockFrom decodes a Block from r, validating its trailing CRC32
// against the header-plus-data bytes actually read, per the CRAM block
// layout: method, type, content ID (itf8), compressed size (itf8), raw
// size (itf8), data, crc32.
func ReadBlockFrom(r io.Reader) (*Block, error) {
	crc := crc32.NewIEEE()
	tr := io.TeeReader(r, crc)

	var head [2]byte
	if _, err := io.ReadFull(tr, head[:]); err != nil {
		return nil, err
	}
	b := &Block{Method: CompressionMethod(head[0]), Type: ContentType(head[1])}

	contentID, err := readITF8(tr)
	if err != nil {
		return nil, err
	}
	b.ContentID = contentID

	compressedSize, err := readITF8(tr)
	if err != nil {
		return nil, err
	}
	rawSize, err := readITF8(tr)
	if err != nil {
		return nil, err
	}
	b.rawSize = rawSize

	if b.Method == MethodRaw && compressedSize != rawSize {
		return nil, fmt.Errorf("cram: compressed size (%d) != raw size (%d) for raw block", compressedSize, rawSize)
	}

	b.data = make([]byte, compressedSize)
	if _, err := io.ReadFull(tr, b.data); err != nil {
		return nil, err
	}

	sum := crc.Sum32()
	var trailer [4]byte
	if _, err := io.ReadFull(r, trailer[:]); err != nil {
		return nil, err
	}
	b.crc32 = uint32(trailer[0]) | uint32(trailer[1])<<8 | uint32(trailer[2])<<16 | uint32(trailer[3])<<24
	if b.crc32 != sum {
		return nil, fmt.Errorf("cram: block crc32 mismatch got:0x%08x want:0x%08x", sum, b.crc32)
	}

	return b, nil
}

// WriteTo encodes the block in CRAM's on-disk layout, including its
// trailing CRC32.
func (b *Block) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	buf.WriteByte(byte(b.Method))
	buf.WriteByte(byte(b.Type))
	buf.Write(itf8.Encode(nil, b.ContentID))
	buf.Write(itf8.Encode(nil, int32(len(b.data))))
	buf.Write(itf8.Encode(nil, b.rawSize))
	buf.Write(b.data)

	crc := crc32.ChecksumIEEE(buf.Bytes())
	var trailer [4]byte
	trailer[0], trailer[1], trailer[2], trailer[3] = byte(crc), byte(crc>>8), byte(crc>>16), byte(crc>>24)

	n, err := w.Write(buf.Bytes())
	if err != nil {
		return int64(n), err
	}
	m, err := w.Write(trailer[:])
	return int64(n + m), err
}

// readITF8 reads a single ITF-8 value from r.
func readITF8(r io.Reader) (int32, error) {
	var first [1]byte
	if _, err := io.ReadFull(r, first[:]); err != nil {
		return 0, err
	}
	_, n, _ := itf8.Decode(first[:])
	buf := make([]byte, n)
	buf[0] = first[0]
	if n > 1 {
		if _, err := io.ReadFull(r, buf[1:]); err != nil {
			return 0, err
		}
	}
	v, _, ok := itf8.Decode(buf)
	if !ok {
		return 0, fmt.Errorf("cram: truncated itf8 value")
	}
	return v, nil
}
