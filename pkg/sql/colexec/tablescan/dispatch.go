package tablescan

import (
	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/sql/plan"
)

// scanSegment resolves seg's data type and dispatches to the
// monomorphized scan for that element type.
func scanSegment(seg segment.Segment, lo, hi types.Value, cond plan.BetweenCondition, filter *segment.PositionFilter) []types.ChunkOffset {
	switch seg.DataType() {
	case types.T_int32:
		return scanTyped(seg, lo.AsInt32(), hi.AsInt32(), cond, filter)
	case types.T_int64:
		return scanTyped(seg, lo.AsInt64(), hi.AsInt64(), cond, filter)
	case types.T_float32:
		return scanTyped(seg, lo.AsFloat32(), hi.AsFloat32(), cond, filter)
	case types.T_float64:
		return scanTyped(seg, lo.AsFloat64(), hi.AsFloat64(), cond, filter)
	case types.T_varchar:
		return scanTyped(seg, lo.AsString(), hi.AsString(), cond, filter)
	default:
		return nil
	}
}

// scanTyped picks the dictionary fast path when seg is dictionary
// encoded, the generic typed path when it can be resolved to
// TypedSegment[T] (a plain value segment), and otherwise falls back
// to the erased path (reference segments, or any future encoding
// this core doesn't specialize).
func scanTyped[T segment.Numeric](seg segment.Segment, lo, hi T, cond plan.BetweenCondition, filter *segment.PositionFilter) []types.ChunkOffset {
	if dseg, ok := segment.AsDictionary[T](seg); ok {
		return scanDictionary(dseg, lo, hi, cond, filter)
	}
	if tseg, ok := segment.Resolve[T](seg); ok {
		return scanGenericTyped(tseg, lo, hi, cond, filter)
	}
	return scanErased(seg, toValue(lo), toValue(hi), cond, filter)
}

func toValue[T segment.Numeric](v T) types.Value {
	switch x := any(v).(type) {
	case int32:
		return types.Int32(x)
	case int64:
		return types.Int64(x)
	case float32:
		return types.Float32(x)
	case float64:
		return types.Float64(x)
	case string:
		return types.String(x)
	default:
		panic("tablescan: unsupported element type")
	}
}

// scanGenericTyped is the generic path: resolve to typed iteration
// and test the inlined comparator per position.
func scanGenericTyped[T segment.Numeric](ts segment.TypedSegment[T], lo, hi T, cond plan.BetweenCondition, filter *segment.PositionFilter) []types.ChunkOffset {
	var out []types.ChunkOffset
	it := ts.TypedIterate(filter)
	for it.Next() {
		p := it.Current()
		if p.Null {
			continue
		}
		if betweenHolds(p.Value, lo, hi, cond) {
			out = append(out, p.Offset)
		}
	}
	return out
}

func betweenHolds[T segment.Numeric](v, lo, hi T, cond plan.BetweenCondition) bool {
	lowerOK := v > lo || (cond.LowerInclusive() && v == lo)
	upperOK := v < hi || (cond.UpperInclusive() && v == hi)
	return lowerOK && upperOK
}

// scanErased is the fallback path for segments that cannot be
// resolved to a typed iterator (reference segments chiefly),
// evaluating the comparator over boxed types.Value via SQL
// three-valued semantics.
func scanErased(seg segment.Segment, lo, hi types.Value, cond plan.BetweenCondition, filter *segment.PositionFilter) []types.ChunkOffset {
	lowerOp := types.OpGT
	if cond.LowerInclusive() {
		lowerOp = types.OpGE
	}
	upperOp := types.OpLT
	if cond.UpperInclusive() {
		upperOp = types.OpLE
	}

	var out []types.ChunkOffset
	it := seg.Iterate(filter)
	for it.Next() {
		p := it.Current()
		if p.Null {
			continue
		}
		if types.EvalTrivalent(lowerOp, p.Value, lo) == types.True &&
			types.EvalTrivalent(upperOp, p.Value, hi) == types.True {
			out = append(out, p.Offset)
		}
	}
	return out
}

// scanDictionary is the dictionary-accelerated path: it narrows the
// scan to a contiguous range of dictionary codes without decoding any
// value.
func scanDictionary[T segment.Numeric](dseg *segment.DictionarySegment[T], lo, hi T, cond plan.BetweenCondition, filter *segment.PositionFilter) []types.ChunkOffset {
	unique := dseg.UniqueValuesCount()

	var leftID types.ValueId
	if cond.LowerInclusive() {
		leftID = dseg.LowerBound(lo)
	} else {
		leftID = dseg.UpperBound(lo)
	}

	var rightID types.ValueId
	if cond.UpperInclusive() {
		rightID = dseg.UpperBound(hi)
	} else {
		rightID = dseg.LowerBound(hi)
	}
	if rightID == types.InvalidValueId {
		rightID = unique
	}

	switch {
	case leftID == 0 && rightID == unique:
		return allNonNull(dseg, filter)
	case leftID >= unique || leftID >= rightID:
		return nil
	default:
		return matchByCodeRange(dseg, leftID, rightID, filter)
	}
}

func allNonNull[T segment.Numeric](dseg *segment.DictionarySegment[T], filter *segment.PositionFilter) []types.ChunkOffset {
	var out []types.ChunkOffset
	offsets := offsetsToVisit(dseg.Size(), filter)
	for _, off := range offsets {
		if !dseg.IsNull(off) {
			out = append(out, off)
		}
	}
	return out
}

func matchByCodeRange[T segment.Numeric](dseg *segment.DictionarySegment[T], leftID, rightID types.ValueId, filter *segment.PositionFilter) []types.ChunkOffset {
	var out []types.ChunkOffset
	width := uint32(rightID - leftID)
	offsets := offsetsToVisit(dseg.Size(), filter)
	for _, off := range offsets {
		code := uint32(dseg.Code(off))
		if code-uint32(leftID) < width {
			out = append(out, off)
		}
	}
	return out
}

func offsetsToVisit(size int, filter *segment.PositionFilter) []types.ChunkOffset {
	if filter != nil {
		return filter.Offsets
	}
	all := make([]types.ChunkOffset, size)
	for i := range all {
		all[i] = types.ChunkOffset(i)
	}
	return all
}
