package nestedloopjoin

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simsieg/hyrise/pkg/container/nulls"
	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/storage/table"
)

func intSchema(name string) []types.ColumnDefinition {
	return []types.ColumnDefinition{{Name: name, DataType: types.T_int32, Nullable: true}}
}

func intTable(t *testing.T, name string, values []int32, nullOffsets ...uint32) *table.Table {
	t.Helper()
	nm := nulls.New()
	for _, o := range nullOffsets {
		nm.Add(o)
	}
	seg := segment.NewValueSegment[int32](types.T_int32, values, nm)
	tbl := table.New(intSchema(name), table.Data, 100, false)
	require.NoError(t, tbl.AppendChunk([]segment.Segment{seg}))
	return tbl
}

type joinedRow struct {
	leftNull, rightNull bool
	leftVal, rightVal   int32
}

func outputRows(t *testing.T, result *table.Table) []joinedRow {
	t.Helper()
	require.Equal(t, 1, result.ChunkCount())
	c, err := result.GetChunk(0)
	require.NoError(t, err)
	leftSeg, ok := c.Segment(0)
	require.True(t, ok)
	rightSeg, ok := c.Segment(1)
	require.True(t, ok)

	rows := make([]joinedRow, c.Size())
	for off := 0; off < c.Size(); off++ {
		lp := leftSeg.ValueAt(types.ChunkOffset(off))
		rp := rightSeg.ValueAt(types.ChunkOffset(off))
		rows[off].leftNull = lp.Null
		rows[off].rightNull = rp.Null
		if !lp.Null {
			rows[off].leftVal = lp.Value.AsInt32()
		}
		if !rp.Null {
			rows[off].rightVal = rp.Value.AsInt32()
		}
	}
	return rows
}

func TestNestedLoopJoin_LeftJoinEqualityKeepsUnmatchedLeftRows(t *testing.T) {
	left := intTable(t, "l", []int32{1, 2, 0}, 2)
	right := intTable(t, "r", []int32{2, 3})

	op := New(left, right, Left, 0, 0, types.OpEQ)
	result, err := op.Execute(context.Background())
	require.NoError(t, err)

	rows := outputRows(t, result)
	require.Len(t, rows, 3)

	require.Equal(t, int32(1), rows[0].leftVal)
	require.True(t, rows[0].rightNull)

	require.Equal(t, int32(2), rows[1].leftVal)
	require.False(t, rows[1].rightNull)
	require.Equal(t, int32(2), rows[1].rightVal)

	require.True(t, rows[2].leftNull)
	require.True(t, rows[2].rightNull)
}

func TestNestedLoopJoin_Inner_NoUnmatchedRows(t *testing.T) {
	left := intTable(t, "l", []int32{1, 2, 3})
	right := intTable(t, "r", []int32{2, 3, 5})

	op := New(left, right, Inner, 0, 0, types.OpEQ)
	result, err := op.Execute(context.Background())
	require.NoError(t, err)

	rows := outputRows(t, result)
	require.Len(t, rows, 2)
	for _, r := range rows {
		require.False(t, r.leftNull)
		require.False(t, r.rightNull)
	}
}

func TestNestedLoopJoin_Right_NormalizesToLeftAndSwapsBack(t *testing.T) {
	left := intTable(t, "l", []int32{1, 2})
	right := intTable(t, "r", []int32{2, 3, 9})

	op := New(left, right, Right, 0, 0, types.OpEQ)
	result, err := op.Execute(context.Background())
	require.NoError(t, err)

	rows := outputRows(t, result)
	require.Len(t, rows, 3)

	require.False(t, rows[0].leftNull)
	require.Equal(t, int32(2), rows[0].leftVal)
	require.Equal(t, int32(2), rows[0].rightVal)

	require.True(t, rows[1].leftNull)
	require.Equal(t, int32(3), rows[1].rightVal)

	require.True(t, rows[2].leftNull)
	require.Equal(t, int32(9), rows[2].rightVal)
}

func TestNestedLoopJoin_Outer_UnmatchedOnBothSides(t *testing.T) {
	left := intTable(t, "l", []int32{1, 2})
	right := intTable(t, "r", []int32{2, 9})

	op := New(left, right, Outer, 0, 0, types.OpEQ)
	result, err := op.Execute(context.Background())
	require.NoError(t, err)

	rows := outputRows(t, result)
	require.Len(t, rows, 3)

	require.Equal(t, int32(1), rows[0].leftVal)
	require.True(t, rows[0].rightNull)

	require.Equal(t, int32(2), rows[1].leftVal)
	require.Equal(t, int32(2), rows[1].rightVal)

	require.True(t, rows[2].leftNull)
	require.Equal(t, int32(9), rows[2].rightVal)
}
