package segment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simsieg/hyrise/pkg/container/types"
)

func TestDictionarySegment_LowerUpperBound(t *testing.T) {
	seg := NewDictionarySegment[int32](types.T_int32, []int32{10, 20, 30}, []types.ValueId{0, 1, 2, 0})

	require.Equal(t, types.ValueId(0), seg.LowerBound(10))
	require.Equal(t, types.ValueId(1), seg.LowerBound(11))
	require.Equal(t, seg.UniqueValuesCount(), seg.LowerBound(31))

	require.Equal(t, types.ValueId(1), seg.UpperBound(10))
	require.Equal(t, types.ValueId(0), seg.UpperBound(9))
	require.Equal(t, seg.UniqueValuesCount(), seg.UpperBound(30))
}

func TestDictionarySegment_NullEncodingIsUniqueValuesCount(t *testing.T) {
	seg := NewDictionarySegment[int32](types.T_int32, []int32{10, 20}, []types.ValueId{0, 2, 1})

	require.False(t, seg.IsNull(0))
	require.True(t, seg.IsNull(1))
	require.False(t, seg.IsNull(2))

	p1 := seg.ValueAt(1)
	require.True(t, p1.Null)

	p2 := seg.ValueAt(2)
	require.False(t, p2.Null)
	require.Equal(t, int32(20), p2.Value.AsInt32())
}

func TestDictionarySegment_TypedIterateDecodesEachCode(t *testing.T) {
	seg := NewDictionarySegment[int32](types.T_int32, []int32{1, 2, 3}, []types.ValueId{2, 0, 1})

	it := seg.TypedIterate(nil)
	var decoded []int32
	for it.Next() {
		decoded = append(decoded, it.Current().Value)
	}
	require.Equal(t, []int32{3, 1, 2}, decoded)
}
