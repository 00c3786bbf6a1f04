// Copyright ©2015 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package container

// DataSeries enumerates the external data streams CRAM's record writer
// partitions a slice's records into; each non-empty one gets its own
// external Block, keyed by content ID DataSeries+1 (content ID 0 is
// reserved for the core data block).
type DataSeries int

const (
	DataSeriesBamFlags DataSeries = iota
	DataSeriesCramFlags
	DataSeriesReferenceID
	DataSeriesReadLength
	DataSeriesAlignmentStart
	DataSeriesReadGroup
	DataSeriesMateFlags
	DataSeriesNextFragmentReferenceID
	DataSeriesNextMateAlignmentStart
	DataSeriesTemplateSize
	DataSeriesDistanceToNextFragment
	DataSeriesTagIDs
	DataSeriesNumberOfReadFeatures
	DataSeriesReadFeaturesCode
	DataSeriesInReadPosition
	DataSeriesDeletionLength
	DataSeriesStretchesOfBases
	DataSeriesMappingQuality
	DataSeriesQualityScores
	DataSeriesBases
)

// LenDataSeries is the number of DataSeries values, i.e. the count of
// fixed external buffers every slice pre-seeds; a buffer no record
// writes to stays empty and gets no block.
const LenDataSeries = int(DataSeriesBases) + 1
