// Package segment implements the typed columnar storage blocks that
// back a chunk: dense value segments, dictionary-encoded segments,
// and reference segments that point into another table through a
// shared position list.
package segment

import (
	"github.com/simsieg/hyrise/pkg/container/types"
)

// Numeric is the constraint over element types a Segment may store.
type Numeric interface {
	int32 | int64 | float32 | float64 | string
}

// Segment is the type-erased contract every encoding implements:
// size, data type, and a lazy position iterator.
type Segment interface {
	Size() int
	DataType() types.T
	// Iterate returns an erased iterator honoring filter (nil means
	// "all positions in storage order").
	Iterate(filter *PositionFilter) Iterator
	// ValueAt performs random access to a single position, used by
	// reference segments to dereference through a position list
	// without materializing a full iterator per row.
	ValueAt(offset types.ChunkOffset) Position
}

// PositionFilter restricts iteration to a caller-chosen, ordered set
// of chunk offsets, e.g. to re-scan only the rows that survived an
// earlier predicate.
type PositionFilter struct {
	Offsets []types.ChunkOffset
}

// NewPositionFilter builds a filter over the given offsets, preserving
// their order.
func NewPositionFilter(offsets []types.ChunkOffset) *PositionFilter {
	return &PositionFilter{Offsets: offsets}
}

// Position is one yielded (value, null?, offset) triple from an
// erased iterator.
type Position struct {
	Value  types.Value
	Null   bool
	Offset types.ChunkOffset
}

// Iterator is the erased, single-pass, finite iteration contract
// every segment encoding supports.
type Iterator interface {
	// Next advances to the next position, returning false once
	// exhausted.
	Next() bool
	Current() Position
}

// TypedSegment is implemented by encodings that can hand out a
// monomorphized iterator over their concrete element type, letting
// hot loops inline a comparator instead of paying for the erased
// Value() boxing.
type TypedSegment[T Numeric] interface {
	Segment
	TypedIterate(filter *PositionFilter) TypedIterator[T]
}

// TypedPosition is the monomorphized analogue of Position.
type TypedPosition[T Numeric] struct {
	Value  T
	Null   bool
	Offset types.ChunkOffset
}

// TypedIterator is the monomorphized iteration contract.
type TypedIterator[T Numeric] interface {
	Next() bool
	Current() TypedPosition[T]
}
