package segment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simsieg/hyrise/pkg/container/nulls"
	"github.com/simsieg/hyrise/pkg/container/types"
)

func TestValueSegment_ValueAt(t *testing.T) {
	nm := nulls.New()
	nm.Add(1)
	seg := NewValueSegment[int32](types.T_int32, []int32{10, 0, 30}, nm)

	require.Equal(t, 3, seg.Size())
	require.Equal(t, types.T_int32, seg.DataType())

	p0 := seg.ValueAt(0)
	require.False(t, p0.Null)
	require.Equal(t, int32(10), p0.Value.AsInt32())

	p1 := seg.ValueAt(1)
	require.True(t, p1.Null)
}

func TestValueSegment_TypedIterateSkipsNothingButFlagsNulls(t *testing.T) {
	nm := nulls.New()
	nm.Add(2)
	seg := NewValueSegment[int32](types.T_int32, []int32{1, 2, 0, 4}, nm)

	it := seg.TypedIterate(nil)
	var seen []types.ChunkOffset
	var nullSeen []bool
	for it.Next() {
		cur := it.Current()
		seen = append(seen, cur.Offset)
		nullSeen = append(nullSeen, cur.Null)
	}
	require.Equal(t, []types.ChunkOffset{0, 1, 2, 3}, seen)
	require.Equal(t, []bool{false, false, true, false}, nullSeen)
}

func TestValueSegment_IterateHonorsPositionFilter(t *testing.T) {
	seg := NewValueSegment[int32](types.T_int32, []int32{1, 2, 3, 4}, nil)
	filter := NewPositionFilter([]types.ChunkOffset{3, 1})

	it := seg.Iterate(filter)
	var vals []int32
	for it.Next() {
		vals = append(vals, it.Current().Value.AsInt32())
	}
	require.Equal(t, []int32{4, 2}, vals)
}
