package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
)

func schema() []types.ColumnDefinition {
	return []types.ColumnDefinition{
		{Name: "id", DataType: types.T_int32, Nullable: false},
		{Name: "score", DataType: types.T_float64, Nullable: true},
	}
}

func TestTable_RowCountIsSumOfChunkSizes(t *testing.T) {
	tbl := New(schema(), Data, 2, false)
	rows := [][2]any{
		{int32(1), 1.5}, {int32(2), 2.5}, {int32(3), nil}, {int32(4), 4.5}, {int32(5), 5.5},
	}
	for _, r := range rows {
		var score types.Value
		if r[1] == nil {
			score = types.Null(types.T_float64)
		} else {
			score = types.Float64(r[1].(float64))
		}
		require.NoError(t, tbl.Append([]types.Value{types.Int32(r[0].(int32)), score}))
	}

	require.Equal(t, uint64(5), tbl.RowCount())
	require.Equal(t, 3, tbl.ChunkCount())

	var total int
	for i := 0; i < tbl.ChunkCount(); i++ {
		c, err := tbl.GetChunk(types.ChunkId(i))
		require.NoError(t, err)
		total += c.Size()
	}
	require.Equal(t, int(tbl.RowCount()), total)
}

func TestTable_MaxChunkSizeSealsFullChunks(t *testing.T) {
	tbl := New(schema(), Data, 2, false)
	for i := 0; i < 4; i++ {
		require.NoError(t, tbl.Append([]types.Value{types.Int32(int32(i)), types.Null(types.T_float64)}))
	}
	require.Equal(t, 2, tbl.ChunkCount())
	c0, err := tbl.GetChunk(0)
	require.NoError(t, err)
	require.Equal(t, 2, c0.Size())
}

func TestTable_AppendRejectsNullOnNonNullableColumn(t *testing.T) {
	tbl := New(schema(), Data, 10, false)
	err := tbl.Append([]types.Value{types.Null(types.T_int32), types.Float64(1)})
	require.Error(t, err)
}

func TestTable_AppendRejectsTypeMismatch(t *testing.T) {
	tbl := New(schema(), Data, 10, false)
	err := tbl.Append([]types.Value{types.Int32(1), types.Int32(2)})
	require.Error(t, err)
}

func TestTable_AppendChunkRejectsReferenceIntoDataTable(t *testing.T) {
	referent := New(schema(), Data, 10, false)
	require.NoError(t, referent.Append([]types.Value{types.Int32(1), types.Float64(1)}))

	dataTbl := New(schema(), Data, 10, false)
	refSeg := segment.NewReferenceSegment(types.T_int32, referent, 0, types.PosList{{ChunkId: 0, ChunkOffset: 0}})

	err := dataTbl.AppendChunk([]segment.Segment{refSeg, refSeg})
	require.Error(t, err)
}

func TestTable_AppendChunkRejectsValueIntoReferencesTable(t *testing.T) {
	refTbl := New(schema(), References, 10, false)
	valSeg := segment.NewValueSegment[int32](types.T_int32, []int32{1}, nil)

	err := refTbl.AppendChunk([]segment.Segment{valSeg, valSeg})
	require.Error(t, err)
}

func TestTable_AppendChunkRejectsMismatchedSegmentSizes(t *testing.T) {
	tbl := New(schema(), Data, 10, false)
	a := segment.NewValueSegment[int32](types.T_int32, []int32{1, 2}, nil)
	b := segment.NewValueSegment[float64](types.T_float64, []float64{1}, nil)

	err := tbl.AppendChunk([]segment.Segment{a, b})
	require.Error(t, err)
}

func TestTable_GetChunkOutOfRange(t *testing.T) {
	tbl := New(schema(), Data, 10, false)
	_, err := tbl.GetChunk(0)
	require.Error(t, err)
}

func TestTable_MVCCAllocatesRowVersionsOnAppend(t *testing.T) {
	tbl := New(schema(), Data, 10, true)
	require.NoError(t, tbl.Append([]types.Value{types.Int32(1), types.Float64(1)}))
	require.NoError(t, tbl.Append([]types.Value{types.Int32(2), types.Float64(2)}))

	c, err := tbl.GetChunk(0)
	require.NoError(t, err)
	require.Len(t, c.RowVersions, 2)
}
