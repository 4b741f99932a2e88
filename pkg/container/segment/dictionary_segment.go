package segment

import (
	"github.com/google/btree"

	"github.com/simsieg/hyrise/pkg/container/types"
)

// DictionarySegment stores a sorted, unique dictionary of values plus
// a per-row attribute vector of dictionary codes. A[i] equal to the
// dictionary size denotes NULL. The dictionary's ordered lookups
// (lower_bound/upper_bound) are served by a google/btree index rather
// than a hand-rolled binary search.
type DictionarySegment[T Numeric] struct {
	dataType   types.T
	dictionary []T
	tree       *btree.BTree
	attributes []types.ValueId
}

type dictItem[T Numeric] struct {
	value T
	id    types.ValueId
}

func (d dictItem[T]) Less(than btree.Item) bool {
	other := than.(dictItem[T])
	return d.value < other.value
}

// NewDictionarySegment builds a dictionary segment from an already
// sorted, deduplicated dictionary and a parallel attribute vector.
func NewDictionarySegment[T Numeric](dt types.T, dictionary []T, attributes []types.ValueId) *DictionarySegment[T] {
	tr := btree.New(32)
	for i, v := range dictionary {
		tr.ReplaceOrInsert(dictItem[T]{value: v, id: types.ValueId(i)})
	}
	return &DictionarySegment[T]{
		dataType:   dt,
		dictionary: dictionary,
		tree:       tr,
		attributes: attributes,
	}
}

func (s *DictionarySegment[T]) Size() int         { return len(s.attributes) }
func (s *DictionarySegment[T]) DataType() types.T { return s.dataType }

// UniqueValuesCount is |D|, and also the sentinel attribute code
// that denotes NULL.
func (s *DictionarySegment[T]) UniqueValuesCount() types.ValueId {
	return types.ValueId(len(s.dictionary))
}

func (s *DictionarySegment[T]) Code(offset types.ChunkOffset) types.ValueId {
	return s.attributes[offset]
}

func (s *DictionarySegment[T]) IsNull(offset types.ChunkOffset) bool {
	return s.attributes[offset] == s.UniqueValuesCount()
}

func (s *DictionarySegment[T]) DecodeValue(id types.ValueId) T {
	return s.dictionary[id]
}

// LowerBound returns the smallest ValueId whose dictionary value is
// >= v, or UniqueValuesCount() if none.
func (s *DictionarySegment[T]) LowerBound(v T) types.ValueId {
	result := s.UniqueValuesCount()
	s.tree.AscendGreaterOrEqual(dictItem[T]{value: v}, func(item btree.Item) bool {
		result = item.(dictItem[T]).id
		return false
	})
	return result
}

// UpperBound returns the smallest ValueId whose dictionary value is
// > v, or UniqueValuesCount() if none.
func (s *DictionarySegment[T]) UpperBound(v T) types.ValueId {
	result := s.UniqueValuesCount()
	s.tree.AscendGreaterOrEqual(dictItem[T]{value: v}, func(item btree.Item) bool {
		it := item.(dictItem[T])
		if it.value == v {
			return true
		}
		result = it.id
		return false
	})
	return result
}

func (s *DictionarySegment[T]) toValue(v T) types.Value {
	return toGenericValue(s.dataType, v)
}

func (s *DictionarySegment[T]) ValueAt(offset types.ChunkOffset) Position {
	null := s.IsNull(offset)
	var val types.Value
	if null {
		val = zeroValue(s.dataType)
	} else {
		val = s.toValue(s.DecodeValue(s.Code(offset)))
	}
	return Position{Value: val, Null: null, Offset: offset}
}

func (s *DictionarySegment[T]) Iterate(filter *PositionFilter) Iterator {
	return &dictSegmentErasedIterator[T]{seg: s, filter: filter, i: -1}
}

func (s *DictionarySegment[T]) TypedIterate(filter *PositionFilter) TypedIterator[T] {
	return &dictSegmentTypedIterator[T]{seg: s, filter: filter, i: -1}
}

type dictSegmentTypedIterator[T Numeric] struct {
	seg    *DictionarySegment[T]
	filter *PositionFilter
	i      int
}

func (it *dictSegmentTypedIterator[T]) Next() bool {
	it.i++
	if it.filter != nil {
		return it.i < len(it.filter.Offsets)
	}
	return it.i < it.seg.Size()
}

func (it *dictSegmentTypedIterator[T]) offset() types.ChunkOffset {
	if it.filter != nil {
		return it.filter.Offsets[it.i]
	}
	return types.ChunkOffset(it.i)
}

func (it *dictSegmentTypedIterator[T]) Current() TypedPosition[T] {
	off := it.offset()
	null := it.seg.IsNull(off)
	var v T
	if !null {
		v = it.seg.DecodeValue(it.seg.Code(off))
	}
	return TypedPosition[T]{Value: v, Null: null, Offset: off}
}

type dictSegmentErasedIterator[T Numeric] struct {
	seg    *DictionarySegment[T]
	filter *PositionFilter
	i      int
}

func (it *dictSegmentErasedIterator[T]) Next() bool {
	it.i++
	if it.filter != nil {
		return it.i < len(it.filter.Offsets)
	}
	return it.i < it.seg.Size()
}

func (it *dictSegmentErasedIterator[T]) Current() Position {
	off := types.ChunkOffset(it.i)
	if it.filter != nil {
		off = it.filter.Offsets[it.i]
	}
	null := it.seg.IsNull(off)
	var val types.Value
	if null {
		val = zeroValue(it.seg.dataType)
	} else {
		val = it.seg.toValue(it.seg.DecodeValue(it.seg.Code(off)))
	}
	return Position{Value: val, Null: null, Offset: off}
}

func zeroValue(dt types.T) types.Value {
	return types.Null(dt)
}
