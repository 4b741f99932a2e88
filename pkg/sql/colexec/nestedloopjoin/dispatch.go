package nestedloopjoin

import (
	"context"

	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/moerr"
)

// dispatchInnerLoop runs the double-iterator scan of one (left chunk
// segment, right chunk segment) pair, invoking emit(leftOffset,
// rightOffset) for every position pair satisfying op under SQL
// three-valued semantics.
func dispatchInnerLoop(ctx context.Context, lSeg, rSeg segment.Segment, op types.CompareOp, emit func(l, r types.ChunkOffset)) error {
	lIsStr := lSeg.DataType() == types.T_varchar
	rIsStr := rSeg.DataType() == types.T_varchar
	if lIsStr != rIsStr {
		return moerr.NewTypeMismatch(ctx, "join predicate compares %s with %s", lSeg.DataType(), rSeg.DataType())
	}

	if lSeg.DataType() == rSeg.DataType() && segment.EncodingOf(lSeg) == segment.EncodingOf(rSeg) {
		if fastDispatch(lSeg, rSeg, op, emit) {
			return nil
		}
	}
	slowLoop(lSeg, rSeg, op, emit)
	return nil
}

// fastDispatch picks the monomorphized element type and runs
// fastLoop, reporting whether both segments actually resolved to a
// matching TypedSegment[T]. Value and dictionary segments do once data
// type and encoding agree; two reference segments agree on both but
// never resolve, so they report false and take the slow path.
func fastDispatch(lSeg, rSeg segment.Segment, op types.CompareOp, emit func(l, r types.ChunkOffset)) bool {
	switch lSeg.DataType() {
	case types.T_int32:
		return fastLoop[int32](lSeg, rSeg, op, emit)
	case types.T_int64:
		return fastLoop[int64](lSeg, rSeg, op, emit)
	case types.T_float32:
		return fastLoop[float32](lSeg, rSeg, op, emit)
	case types.T_float64:
		return fastLoop[float64](lSeg, rSeg, op, emit)
	case types.T_varchar:
		return fastLoop[string](lSeg, rSeg, op, emit)
	default:
		return false
	}
}

// fastLoop is the fast path: both segments resolve to TypedSegment[T],
// so the comparator is a monomorphized function over T and both sides
// iterate without boxing through types.Value.
func fastLoop[T segment.Numeric](lSeg, rSeg segment.Segment, op types.CompareOp, emit func(l, r types.ChunkOffset)) bool {
	lt, ok1 := segment.Resolve[T](lSeg)
	rt, ok2 := segment.Resolve[T](rSeg)
	if !ok1 || !ok2 {
		return false
	}

	type rightRow struct {
		val T
		off types.ChunkOffset
	}
	var rightRows []rightRow
	rit := rt.TypedIterate(nil)
	for rit.Next() {
		p := rit.Current()
		if p.Null {
			continue
		}
		rightRows = append(rightRows, rightRow{p.Value, p.Offset})
	}

	cmp := typedComparator[T](op)
	lit := lt.TypedIterate(nil)
	for lit.Next() {
		lp := lit.Current()
		if lp.Null {
			continue
		}
		for _, rr := range rightRows {
			if cmp(lp.Value, rr.val) {
				emit(lp.Offset, rr.off)
			}
		}
	}
	return true
}

func typedComparator[T segment.Numeric](op types.CompareOp) func(a, b T) bool {
	switch op {
	case types.OpEQ:
		return func(a, b T) bool { return a == b }
	case types.OpNE:
		return func(a, b T) bool { return a != b }
	case types.OpLT:
		return func(a, b T) bool { return a < b }
	case types.OpLE:
		return func(a, b T) bool { return a <= b }
	case types.OpGT:
		return func(a, b T) bool { return a > b }
	case types.OpGE:
		return func(a, b T) bool { return a >= b }
	default:
		return func(a, b T) bool { return false }
	}
}

// slowLoop is the erased path: both sides iterate as boxed
// types.Value and the comparator is EvalTrivalent, which also covers
// the case where lSeg/rSeg cannot be resolved to a shared
// TypedSegment[T] at all (e.g. one side is a reference segment).
func slowLoop(lSeg, rSeg segment.Segment, op types.CompareOp, emit func(l, r types.ChunkOffset)) {
	type rightRow struct {
		val types.Value
		off types.ChunkOffset
	}
	var rightRows []rightRow
	rit := rSeg.Iterate(nil)
	for rit.Next() {
		p := rit.Current()
		if p.Null {
			continue
		}
		rightRows = append(rightRows, rightRow{p.Value, p.Offset})
	}

	lit := lSeg.Iterate(nil)
	for lit.Next() {
		lp := lit.Current()
		if lp.Null {
			continue
		}
		for _, rr := range rightRows {
			if types.EvalTrivalent(op, lp.Value, rr.val) == types.True {
				emit(lp.Offset, rr.off)
			}
		}
	}
}
