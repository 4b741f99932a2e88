package table

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/simsieg/hyrise/pkg/config"
	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
)

func TestBuilder_LowCardinalityColumnBuildsDictionarySegment(t *testing.T) {
	orig := config.Get()
	defer config.Set(orig)
	config.Set(config.EngineConfig{MaxChunkSize: 10, DictionaryScanThreshold: 8})

	tbl := New(schema(), Data, 10, false)
	for _, id := range []int32{1, 2, 1, 3, 2, 1} {
		require.NoError(t, tbl.Append([]types.Value{types.Int32(id), types.Null(types.T_float64)}))
	}

	c, err := tbl.GetChunk(0)
	require.NoError(t, err)
	seg, ok := c.Segment(0)
	require.True(t, ok)
	_, isDict := seg.(*segment.DictionarySegment[int32])
	require.True(t, isDict, "expected a dictionary-encoded segment below the threshold")
}

func TestBuilder_HighCardinalityColumnFallsBackToValueSegment(t *testing.T) {
	orig := config.Get()
	defer config.Set(orig)
	config.Set(config.EngineConfig{MaxChunkSize: 10, DictionaryScanThreshold: 2})

	tbl := New(schema(), Data, 10, false)
	for _, id := range []int32{1, 2, 3, 4, 5} {
		require.NoError(t, tbl.Append([]types.Value{types.Int32(id), types.Null(types.T_float64)}))
	}

	c, err := tbl.GetChunk(0)
	require.NoError(t, err)
	seg, ok := c.Segment(0)
	require.True(t, ok)
	_, isValue := seg.(*segment.ValueSegment[int32])
	require.True(t, isValue, "expected a plain value segment above the threshold")
}

func TestBuilder_ZeroThresholdDisablesDictionaryEncoding(t *testing.T) {
	orig := config.Get()
	defer config.Set(orig)
	config.Set(config.EngineConfig{MaxChunkSize: 10, DictionaryScanThreshold: 0})

	tbl := New(schema(), Data, 10, false)
	require.NoError(t, tbl.Append([]types.Value{types.Int32(1), types.Null(types.T_float64)}))
	require.NoError(t, tbl.Append([]types.Value{types.Int32(1), types.Null(types.T_float64)}))

	c, err := tbl.GetChunk(0)
	require.NoError(t, err)
	seg, ok := c.Segment(0)
	require.True(t, ok)
	_, isValue := seg.(*segment.ValueSegment[int32])
	require.True(t, isValue)
}

func TestBuilder_DictionaryEncodedColumnPreservesNulls(t *testing.T) {
	orig := config.Get()
	defer config.Set(orig)
	config.Set(config.EngineConfig{MaxChunkSize: 10, DictionaryScanThreshold: 8})

	tbl := New(schema(), Data, 10, false)
	require.NoError(t, tbl.Append([]types.Value{types.Int32(1), types.Float64(1.5)}))
	require.NoError(t, tbl.Append([]types.Value{types.Int32(2), types.Null(types.T_float64)}))
	require.NoError(t, tbl.Append([]types.Value{types.Int32(1), types.Float64(2.5)}))

	c, err := tbl.GetChunk(0)
	require.NoError(t, err)
	scoreSeg, ok := c.Segment(1)
	require.True(t, ok)
	dseg, isDict := scoreSeg.(*segment.DictionarySegment[float64])
	require.True(t, isDict)
	require.True(t, dseg.IsNull(1))
	require.False(t, dseg.IsNull(0))
	require.False(t, dseg.IsNull(2))
}
