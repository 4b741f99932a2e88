package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRowId_NullRowIdIsSentinel(t *testing.T) {
	require.True(t, NullRowId.IsNull())
	require.Equal(t, "NULL_ROW", NullRowId.String())

	real := RowId{ChunkId: 0, ChunkOffset: 3}
	require.False(t, real.IsNull())
	require.Equal(t, "(0,3)", real.String())
}

func TestCompareOp_Flip(t *testing.T) {
	cases := map[CompareOp]CompareOp{
		OpLT: OpGT,
		OpLE: OpGE,
		OpGT: OpLT,
		OpGE: OpLE,
		OpEQ: OpEQ,
		OpNE: OpNE,
	}
	for op, want := range cases {
		require.Equal(t, want, op.Flip())
		require.Equal(t, op, op.Flip().Flip())
	}
}

func TestEvalTrivalent_NullIsAlwaysUnknown(t *testing.T) {
	n := Null(T_int32)
	v := Int32(5)
	for _, op := range []CompareOp{OpEQ, OpNE, OpLT, OpLE, OpGT, OpGE} {
		require.Equal(t, Unknown, EvalTrivalent(op, n, v))
		require.Equal(t, Unknown, EvalTrivalent(op, v, n))
		require.Equal(t, Unknown, EvalTrivalent(op, n, n))
	}
}

func TestEvalTrivalent_OrderedComparisons(t *testing.T) {
	a, b := Int32(3), Int32(7)
	require.Equal(t, True, EvalTrivalent(OpLT, a, b))
	require.Equal(t, False, EvalTrivalent(OpGT, a, b))
	require.Equal(t, True, EvalTrivalent(OpNE, a, b))
	require.Equal(t, False, EvalTrivalent(OpEQ, a, b))
	require.Equal(t, True, EvalTrivalent(OpEQ, a, a))
	require.Equal(t, True, EvalTrivalent(OpLE, a, a))
	require.Equal(t, True, EvalTrivalent(OpGE, a, a))
}

func TestCompare_StringsAndFloats(t *testing.T) {
	require.Equal(t, -1, Compare(String("abc"), String("abd")))
	require.Equal(t, 0, Compare(Float64(1.5), Float64(1.5)))
	require.Equal(t, 1, Compare(Float32(2), Float32(1)))
}

func TestCompare_MismatchedTypesPanics(t *testing.T) {
	require.Panics(t, func() {
		Compare(Int32(1), Int64(1))
	})
}
