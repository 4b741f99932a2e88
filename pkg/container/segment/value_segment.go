package segment

import (
	"github.com/simsieg/hyrise/pkg/container/nulls"
	"github.com/simsieg/hyrise/pkg/container/types"
)

// ValueSegment is a dense typed array plus an optional null bitmap: a
// fixed-size column backed by a Go slice and a roaring bitmap of null
// positions.
type ValueSegment[T Numeric] struct {
	dataType types.T
	values   []T
	nullMap  *nulls.Bitmap
}

// NewValueSegment builds a value segment. nullMap may be nil for a
// non-nullable column.
func NewValueSegment[T Numeric](dt types.T, values []T, nullMap *nulls.Bitmap) *ValueSegment[T] {
	return &ValueSegment[T]{dataType: dt, values: values, nullMap: nullMap}
}

func (s *ValueSegment[T]) Size() int          { return len(s.values) }
func (s *ValueSegment[T]) DataType() types.T  { return s.dataType }
func (s *ValueSegment[T]) Values() []T        { return s.values }
func (s *ValueSegment[T]) NullMap() *nulls.Bitmap { return s.nullMap }

func (s *ValueSegment[T]) IsNull(offset types.ChunkOffset) bool {
	return s.nullMap.Contains(uint32(offset))
}

func (s *ValueSegment[T]) At(offset types.ChunkOffset) T {
	return s.values[offset]
}

func (s *ValueSegment[T]) toValue(v T) types.Value {
	return toGenericValue(s.dataType, v)
}

func toGenericValue[T Numeric](dt types.T, v T) types.Value {
	switch any(v).(type) {
	case int32:
		return types.Int32(any(v).(int32))
	case int64:
		return types.Int64(any(v).(int64))
	case float32:
		return types.Float32(any(v).(float32))
	case float64:
		return types.Float64(any(v).(float64))
	case string:
		return types.String(any(v).(string))
	default:
		panic("segment: unsupported element type")
	}
}

func (s *ValueSegment[T]) ValueAt(offset types.ChunkOffset) Position {
	return Position{
		Value:  s.toValue(s.At(offset)),
		Null:   s.IsNull(offset),
		Offset: offset,
	}
}

func (s *ValueSegment[T]) Iterate(filter *PositionFilter) Iterator {
	return &valueSegmentErasedIterator[T]{seg: s, filter: filter, i: -1}
}

func (s *ValueSegment[T]) TypedIterate(filter *PositionFilter) TypedIterator[T] {
	return &valueSegmentTypedIterator[T]{seg: s, filter: filter, i: -1}
}

type valueSegmentTypedIterator[T Numeric] struct {
	seg    *ValueSegment[T]
	filter *PositionFilter
	i      int
}

func (it *valueSegmentTypedIterator[T]) Next() bool {
	it.i++
	if it.filter != nil {
		return it.i < len(it.filter.Offsets)
	}
	return it.i < it.seg.Size()
}

func (it *valueSegmentTypedIterator[T]) offset() types.ChunkOffset {
	if it.filter != nil {
		return it.filter.Offsets[it.i]
	}
	return types.ChunkOffset(it.i)
}

func (it *valueSegmentTypedIterator[T]) Current() TypedPosition[T] {
	off := it.offset()
	return TypedPosition[T]{
		Value:  it.seg.At(off),
		Null:   it.seg.IsNull(off),
		Offset: off,
	}
}

type valueSegmentErasedIterator[T Numeric] struct {
	seg    *ValueSegment[T]
	filter *PositionFilter
	i      int
}

func (it *valueSegmentErasedIterator[T]) Next() bool {
	it.i++
	if it.filter != nil {
		return it.i < len(it.filter.Offsets)
	}
	return it.i < it.seg.Size()
}

func (it *valueSegmentErasedIterator[T]) Current() Position {
	off := types.ChunkOffset(it.i)
	if it.filter != nil {
		off = it.filter.Offsets[it.i]
	}
	v := it.seg.At(off)
	return Position{
		Value:  it.seg.toValue(v),
		Null:   it.seg.IsNull(off),
		Offset: off,
	}
}
