package segment

import "github.com/simsieg/hyrise/pkg/container/types"

// ReferencedTable is the narrow slice of storage.Table a reference
// segment needs: random access to the segment backing one column of
// one chunk. Defined here (consumer side) rather than imported from
// the table package, so storage/table can depend on segment without
// creating an import cycle.
type ReferencedTable interface {
	ColumnSegment(chunkID types.ChunkId, columnID types.ColumnId) (Segment, error)
}

// ReferenceSegment is a virtual segment: it stores no values of its
// own, only a position list into another table's column. By
// construction the referenced table is always a Data table, so
// dereferencing never chains through a second reference.
type ReferenceSegment struct {
	dataType         types.T
	referencedTable  ReferencedTable
	referencedColumn types.ColumnId
	posList          types.PosList
}

// NewReferenceSegment builds a reference segment over posList,
// sharing the list with any sibling column segments of the same
// output chunk.
func NewReferenceSegment(dt types.T, referencedTable ReferencedTable, referencedColumn types.ColumnId, posList types.PosList) *ReferenceSegment {
	return &ReferenceSegment{
		dataType:         dt,
		referencedTable:  referencedTable,
		referencedColumn: referencedColumn,
		posList:          posList,
	}
}

func (s *ReferenceSegment) Size() int              { return len(s.posList) }
func (s *ReferenceSegment) DataType() types.T      { return s.dataType }
func (s *ReferenceSegment) PosList() types.PosList { return s.posList }
func (s *ReferenceSegment) ReferencedTable() ReferencedTable {
	return s.referencedTable
}
func (s *ReferenceSegment) ReferencedColumn() types.ColumnId {
	return s.referencedColumn
}

func (s *ReferenceSegment) dereference(rowID types.RowId) Position {
	if rowID.IsNull() {
		return Position{Value: types.Null(s.dataType), Null: true, Offset: types.ChunkOffset(^uint32(0))}
	}
	seg, err := s.referencedTable.ColumnSegment(rowID.ChunkId, s.referencedColumn)
	if err != nil {
		return Position{Value: types.Null(s.dataType), Null: true}
	}
	return seg.ValueAt(rowID.ChunkOffset)
}

// ValueAt dereferences the row-id stored at posList[offset]. offset
// here indexes into the reference segment itself, i.e. the output
// chunk's local offset, not the referenced table's offset.
func (s *ReferenceSegment) ValueAt(offset types.ChunkOffset) Position {
	pos := s.dereference(s.posList[offset])
	pos.Offset = offset
	return pos
}

func (s *ReferenceSegment) Iterate(filter *PositionFilter) Iterator {
	return &referenceSegmentIterator{seg: s, filter: filter, i: -1}
}

// referenceSegmentIterator is the erased-only iterator for reference
// segments: position lists are not contiguous in the referenced
// table, so there is no encoding to monomorphize on, and join/scan
// dispatch always resolves a reference segment through the erased
// path.
type referenceSegmentIterator struct {
	seg    *ReferenceSegment
	filter *PositionFilter
	i      int
}

func (it *referenceSegmentIterator) Next() bool {
	it.i++
	if it.filter != nil {
		return it.i < len(it.filter.Offsets)
	}
	return it.i < it.seg.Size()
}

func (it *referenceSegmentIterator) Current() Position {
	off := types.ChunkOffset(it.i)
	if it.filter != nil {
		off = it.filter.Offsets[it.i]
	}
	return it.seg.ValueAt(off)
}
