package tablescan

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simsieg/hyrise/pkg/container/nulls"
	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/moerr"
	"github.com/simsieg/hyrise/pkg/sql/plan"
	"github.com/simsieg/hyrise/pkg/storage/table"
)

func demoSchema() []types.ColumnDefinition {
	return []types.ColumnDefinition{{Name: "v", DataType: types.T_int32, Nullable: true}}
}

func dictTable(t *testing.T, attributes []types.ValueId) *table.Table {
	t.Helper()
	dseg := segment.NewDictionarySegment[int32](types.T_int32, []int32{1, 2, 3}, attributes)
	tbl := table.New(demoSchema(), table.Data, 100, false)
	require.NoError(t, tbl.AppendChunk([]segment.Segment{dseg}))
	return tbl
}

func TestScan_DictionaryRangeCoveringWholeDictionaryMatchesAll(t *testing.T) {
	tbl := dictTable(t, []types.ValueId{0, 1, 2, 0})

	op := New(tbl, 0, types.Int32(0), types.Int32(4), plan.BetweenInclusive)
	result, err := op.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(4), result.RowCount())
}

func TestScan_DictionaryRangeMatchingNoCodesReturnsEmpty(t *testing.T) {
	tbl := dictTable(t, []types.ValueId{0, 1, 2, 0})

	op := New(tbl, 0, types.Int32(10), types.Int32(20), plan.BetweenInclusive)
	result, err := op.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(0), result.RowCount())
	require.Equal(t, 1, result.ChunkCount())
}

func TestScan_NullBoundIsAlwaysEmpty(t *testing.T) {
	tbl := dictTable(t, []types.ValueId{0, 1, 2, 0})

	op := New(tbl, 0, types.Null(types.T_int32), types.Int32(20), plan.BetweenInclusive)
	result, err := op.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, uint64(0), result.RowCount())
	require.Equal(t, 0, result.ChunkCount())
}

func TestScan_UnrecognizedBetweenConditionIsUnreachablePredicate(t *testing.T) {
	tbl := dictTable(t, []types.ValueId{0, 1, 2, 0})

	op := New(tbl, 0, types.Int32(0), types.Int32(4), plan.BetweenCondition(4))
	_, err := op.Execute(context.Background())
	require.Error(t, err)
	require.True(t, moerr.Is(err, moerr.KindUnreachablePredicate))
}

func TestScan_WithFiltersRestrictsScanToGivenOffsets(t *testing.T) {
	valueSeg := segment.NewValueSegment[int32](types.T_int32, []int32{1, 2, 3, 4, 5}, nil)
	tbl := table.New(demoSchema(), table.Data, 100, false)
	require.NoError(t, tbl.AppendChunk([]segment.Segment{valueSeg}))

	// Without a filter, [2,5] matches offsets 1,2,3,4 (values 2,3,4,5).
	unfiltered := New(tbl, 0, types.Int32(2), types.Int32(5), plan.BetweenInclusive)
	unfilteredResult, err := unfiltered.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, []types.ChunkOffset{1, 2, 3, 4}, offsetsOf(t, unfilteredResult))

	// Restricting the scan to offsets 0, 2, 4 (values 1, 3, 5) leaves
	// only 3 and 5 satisfying [2,5].
	filtered := New(tbl, 0, types.Int32(2), types.Int32(5), plan.BetweenInclusive).
		WithFilters([]*segment.PositionFilter{segment.NewPositionFilter([]types.ChunkOffset{0, 2, 4})})
	filteredResult, err := filtered.Execute(context.Background())
	require.NoError(t, err)
	require.Equal(t, []types.ChunkOffset{2, 4}, offsetsOf(t, filteredResult))
}

func TestScan_GenericAndDictionaryPathsAgree(t *testing.T) {
	// Invariant 3: dictionary fast-path and generic-path scans on the
	// same logical data must produce identical position lists.
	dictSeg := segment.NewDictionarySegment[int32](types.T_int32, []int32{1, 2, 3}, []types.ValueId{0, 1, 2, 0, 3})
	dictTbl := table.New(demoSchema(), table.Data, 100, false)
	require.NoError(t, dictTbl.AppendChunk([]segment.Segment{dictSeg}))

	valueSeg := segment.NewValueSegment[int32](types.T_int32, []int32{1, 2, 3, 1, 0}, nullBitmapAt(4))
	valueTbl := table.New(demoSchema(), table.Data, 100, false)
	require.NoError(t, valueTbl.AppendChunk([]segment.Segment{valueSeg}))

	dictOp := New(dictTbl, 0, types.Int32(1), types.Int32(2), plan.BetweenInclusive)
	valueOp := New(valueTbl, 0, types.Int32(1), types.Int32(2), plan.BetweenInclusive)

	dictResult, err := dictOp.Execute(context.Background())
	require.NoError(t, err)
	valueResult, err := valueOp.Execute(context.Background())
	require.NoError(t, err)

	require.Equal(t, offsetsOf(t, dictResult), offsetsOf(t, valueResult))
}

func nullBitmapAt(offsets ...uint32) *nulls.Bitmap {
	b := nulls.New()
	for _, o := range offsets {
		b.Add(o)
	}
	return b
}

func offsetsOf(t *testing.T, tbl *table.Table) []types.ChunkOffset {
	t.Helper()
	if tbl.ChunkCount() == 0 {
		return nil
	}
	c, err := tbl.GetChunk(0)
	require.NoError(t, err)
	seg0, ok := c.Segment(0)
	require.True(t, ok)
	rs, ok := seg0.(*segment.ReferenceSegment)
	require.True(t, ok)
	out := make([]types.ChunkOffset, len(rs.PosList()))
	for i, rid := range rs.PosList() {
		out[i] = rid.ChunkOffset
	}
	return out
}
