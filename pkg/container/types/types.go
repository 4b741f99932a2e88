// Package types holds the closed data-type enumeration, the tagged
// value variant, and the stable integer handles shared across the
// storage and execution layers.
package types

import "fmt"

// T is the closed set of column data types.
type T uint8

const (
	T_invalid T = iota
	T_int32
	T_int64
	T_float32
	T_float64
	T_varchar
)

func (t T) String() string {
	switch t {
	case T_int32:
		return "INT"
	case T_int64:
		return "BIGINT"
	case T_float32:
		return "FLOAT"
	case T_float64:
		return "DOUBLE"
	case T_varchar:
		return "VARCHAR"
	default:
		return "INVALID"
	}
}

// ChunkId identifies a chunk within a table's append-only sequence.
type ChunkId uint32

// ColumnId identifies a column within a table's schema.
type ColumnId uint16

// ChunkOffset identifies a row within a single chunk.
type ChunkOffset uint32

// ValueId is a dictionary code. INVALID_VALUE_ID marks "no such
// value". DictionarySegment's LowerBound/UpperBound never return it;
// they return UniqueValuesCount() when no code qualifies.
type ValueId uint32

const InvalidValueId ValueId = ^ValueId(0)

// RowId names a row by (chunk, offset). NullRowId is the sentinel
// used for the unmatched side of an outer join.
type RowId struct {
	ChunkId     ChunkId
	ChunkOffset ChunkOffset
}

var NullRowId = RowId{ChunkId: ^ChunkId(0), ChunkOffset: ^ChunkOffset(0)}

func (r RowId) IsNull() bool {
	return r == NullRowId
}

func (r RowId) String() string {
	if r.IsNull() {
		return "NULL_ROW"
	}
	return fmt.Sprintf("(%d,%d)", r.ChunkId, r.ChunkOffset)
}

// PosList is an ordered sequence of RowIds produced by a scan or join
// and consumed by reference segments. Once handed to a consumer it is
// treated as immutable.
type PosList []RowId

// ColumnDefinition describes one column of a table's schema.
type ColumnDefinition struct {
	Name     string
	DataType T
	Nullable bool
}
