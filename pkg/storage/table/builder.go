package table

import (
	"context"
	"sort"

	"github.com/simsieg/hyrise/pkg/config"
	"github.com/simsieg/hyrise/pkg/container/chunk"
	"github.com/simsieg/hyrise/pkg/container/nulls"
	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/moerr"
)

// columnBuilder accumulates one column's values for the trailing,
// not-yet-full chunk of a Data table.
type columnBuilder interface {
	append(v types.Value) error
	build() segment.Segment
}

type valueColumnBuilder[T segment.Numeric] struct {
	dataType types.T
	values   []T
	nullMap  *nulls.Bitmap
	extract  func(types.Value) T
}

func (b *valueColumnBuilder[T]) append(v types.Value) error {
	if v.IsNull() {
		if b.nullMap == nil {
			b.nullMap = nulls.New()
		}
		b.nullMap.Add(uint32(len(b.values)))
		var zero T
		b.values = append(b.values, zero)
		return nil
	}
	b.values = append(b.values, b.extract(v))
	return nil
}

// build produces a dictionary-encoded segment when the column's
// distinct value count fits within config.DictionaryScanThreshold,
// falling back to a plain value segment otherwise.
func (b *valueColumnBuilder[T]) build() segment.Segment {
	if threshold := config.Get().DictionaryScanThreshold; threshold > 0 {
		if dseg, ok := b.buildDictionary(threshold); ok {
			return dseg
		}
	}
	return segment.NewValueSegment(b.dataType, append([]T(nil), b.values...), b.nullMap.Clone())
}

// buildDictionary attempts a dictionary encoding, bailing out as soon
// as the running unique-value count exceeds threshold.
func (b *valueColumnBuilder[T]) buildDictionary(threshold int) (segment.Segment, bool) {
	seen := make(map[T]struct{})
	for i, v := range b.values {
		if b.nullMap.Contains(uint32(i)) {
			continue
		}
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			if len(seen) > threshold {
				return nil, false
			}
		}
	}

	dictionary := make([]T, 0, len(seen))
	for v := range seen {
		dictionary = append(dictionary, v)
	}
	sort.Slice(dictionary, func(i, j int) bool { return dictionary[i] < dictionary[j] })

	codeOf := make(map[T]types.ValueId, len(dictionary))
	for i, v := range dictionary {
		codeOf[v] = types.ValueId(i)
	}
	nullCode := types.ValueId(len(dictionary))

	attributes := make([]types.ValueId, len(b.values))
	for i, v := range b.values {
		if b.nullMap.Contains(uint32(i)) {
			attributes[i] = nullCode
			continue
		}
		attributes[i] = codeOf[v]
	}
	return segment.NewDictionarySegment(b.dataType, dictionary, attributes), true
}

func newColumnBuilder(def types.ColumnDefinition) columnBuilder {
	switch def.DataType {
	case types.T_int32:
		return &valueColumnBuilder[int32]{dataType: def.DataType, extract: types.Value.AsInt32}
	case types.T_int64:
		return &valueColumnBuilder[int64]{dataType: def.DataType, extract: types.Value.AsInt64}
	case types.T_float32:
		return &valueColumnBuilder[float32]{dataType: def.DataType, extract: types.Value.AsFloat32}
	case types.T_float64:
		return &valueColumnBuilder[float64]{dataType: def.DataType, extract: types.Value.AsFloat64}
	case types.T_varchar:
		return &valueColumnBuilder[string]{dataType: def.DataType, extract: types.Value.AsString}
	default:
		return nil
	}
}

// chunkBuilder holds the trailing, not-yet-full chunk of a Data
// table while it is being filled row by row.
type chunkBuilder struct {
	columns []columnBuilder
	size    int
}

func newChunkBuilder(schema []types.ColumnDefinition) *chunkBuilder {
	cb := &chunkBuilder{columns: make([]columnBuilder, len(schema))}
	for i, def := range schema {
		cb.columns[i] = newColumnBuilder(def)
	}
	return cb
}

func (cb *chunkBuilder) appendRow(row []types.Value) error {
	for i, v := range row {
		if err := cb.columns[i].append(v); err != nil {
			return err
		}
	}
	cb.size++
	return nil
}

// snapshot materializes the builder's current state into an
// immutable Chunk without disturbing further mutation of the
// builder's backing slices (build() copies).
func (cb *chunkBuilder) snapshot(mvccEnabled bool) *chunk.Chunk {
	segments := make([]segment.Segment, len(cb.columns))
	for i, c := range cb.columns {
		segments[i] = c.build()
	}
	return chunk.New(segments, mvccEnabled)
}

// AppendMutableChunk starts a new trailing chunk to receive rows via
// Append. It is a no-op if a trailing chunk is already open; callers
// normally never need to call it directly, since Append opens one
// lazily.
func (t *Table) AppendMutableChunk() {
	t.appendMu.Lock()
	defer t.appendMu.Unlock()
	if t.builder == nil {
		t.builder = newChunkBuilder(t.schema)
	}
}

// Append adds one row to the table, opening a new trailing chunk if
// none is open, and sealing the trailing chunk into the immutable
// chunk sequence as soon as this row fills it to max_chunk_size. Only
// valid for Data tables; row length and types must match the schema.
func (t *Table) Append(row []types.Value) error {
	ctx := context.Background()
	if t.tableType != Data {
		return moerr.NewSchemaMismatch(ctx, "Append called on a References table")
	}
	if len(row) != len(t.schema) {
		return moerr.NewSchemaMismatch(ctx, "row has %d values, schema has %d columns", len(row), len(t.schema))
	}
	for i, v := range row {
		def := t.schema[i]
		if v.IsNull() {
			if !def.Nullable {
				return moerr.NewSchemaMismatch(ctx, "column %q is not nullable", def.Name)
			}
			continue
		}
		if v.DataType() != def.DataType {
			return moerr.NewSchemaMismatch(ctx, "column %q expects %s, got %s", def.Name, def.DataType, v.DataType())
		}
	}

	t.appendMu.Lock()
	defer t.appendMu.Unlock()

	if t.builder == nil {
		t.builder = newChunkBuilder(t.schema)
	}
	if err := t.builder.appendRow(row); err != nil {
		return err
	}
	if t.builder.size >= int(t.maxChunkSize) {
		t.chunks = append(t.chunks, t.builder.snapshot(t.mvccEnabled))
		t.builder = nil
	}
	return nil
}
