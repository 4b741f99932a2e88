package colexec

import (
	"context"

	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/moerr"
	"github.com/simsieg/hyrise/pkg/storage/table"
)

// RootRowID resolves the row that (chunkID, offset) in t actually
// names, flattening one level of reference indirection when t is a
// References table. offset must be a real position, never
// NULL_ROW_ID's sentinel offset.
func RootRowID(t *table.Table, chunkID types.ChunkId, offset types.ChunkOffset) (types.RowId, error) {
	c, err := t.GetChunk(chunkID)
	if err != nil {
		return types.RowId{}, err
	}
	seg0, ok := c.Segment(0)
	if !ok {
		return types.RowId{ChunkId: chunkID, ChunkOffset: offset}, nil
	}
	if rs, ok := seg0.(*segment.ReferenceSegment); ok {
		return rs.PosList()[offset], nil
	}
	return types.RowId{ChunkId: chunkID, ChunkOffset: offset}, nil
}

// RootReferent returns the (table, column) pair a freshly built
// reference segment over column columnID of t should point to: t
// itself if t is a Data table, or the root of t's own indirection if
// t is already a References table. If t is an empty References
// table, it fabricates a dummy Data table so the new reference
// segment always has a live referent.
func RootReferent(t *table.Table, columnID types.ColumnId) (segment.ReferencedTable, types.ColumnId, error) {
	if t.TableType() != table.References {
		return t, columnID, nil
	}
	if t.ChunkCount() == 0 {
		return table.NewEmptyDataTable(t.Schema()), columnID, nil
	}
	c, err := t.GetChunk(0)
	if err != nil {
		return nil, 0, err
	}
	seg, ok := c.Segment(columnID)
	if !ok {
		return nil, 0, moerr.NewOutOfRange(context.Background(), "column %d out of range for chunk", columnID)
	}
	rs := seg.(*segment.ReferenceSegment)
	return rs.ReferencedTable(), rs.ReferencedColumn(), nil
}

// EmptyContext is a convenience for operators that do not yet thread
// a caller context through every internal call.
func EmptyContext() context.Context {
	return context.Background()
}
