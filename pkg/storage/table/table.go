// Package table implements the schema-plus-chunk-sequence table
// abstraction: Data tables that own their segments, and References
// tables whose every segment is a reference segment produced by an
// operator.
package table

import (
	"context"
	"sync"

	"github.com/simsieg/hyrise/pkg/container/chunk"
	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/logutil"
	"github.com/simsieg/hyrise/pkg/moerr"
)

// Type distinguishes a table that owns its storage from one that is
// purely a view over another table's rows.
type Type uint8

const (
	Data Type = iota
	References
)

// Table is a column schema plus an append-only, ordered sequence of
// chunks.
type Table struct {
	schema       []types.ColumnDefinition
	tableType    Type
	maxChunkSize uint32
	mvccEnabled  bool

	appendMu sync.Mutex
	chunks   []*chunk.Chunk

	// builder accumulates rows for the not-yet-full trailing chunk of
	// a Data table filled via Append(row). References tables never
	// use it; their chunks always arrive complete via AppendChunk.
	builder *chunkBuilder
}

// New constructs an empty table. maxChunkSize must be positive.
func New(schema []types.ColumnDefinition, tableType Type, maxChunkSize uint32, mvccEnabled bool) *Table {
	if maxChunkSize == 0 {
		maxChunkSize = 1
	}
	return &Table{
		schema:       schema,
		tableType:    tableType,
		maxChunkSize: maxChunkSize,
		mvccEnabled:  mvccEnabled,
	}
}

// NewEmptyDataTable builds a zero-chunk Data table with the given
// schema. Used to fabricate a referent when an operator would
// otherwise emit a References table over zero input chunks.
func NewEmptyDataTable(schema []types.ColumnDefinition) *Table {
	return New(schema, Data, 1, false)
}

func (t *Table) Schema() []types.ColumnDefinition { return t.schema }
func (t *Table) TableType() Type                  { return t.tableType }
func (t *Table) MaxChunkSize() uint32             { return t.maxChunkSize }
func (t *Table) MVCCEnabled() bool                { return t.mvccEnabled }
func (t *Table) ColumnCount() int                 { return len(t.schema) }

func (t *Table) ColumnDataType(columnID types.ColumnId) types.T {
	return t.schema[int(columnID)].DataType
}

// ChunkCount returns the number of complete, immutable, appended
// chunks, plus the in-progress trailing chunk if one exists. Readers
// may safely index [0, ChunkCount()) without holding the append
// mutex: earlier chunks never change once observed.
func (t *Table) ChunkCount() int {
	n := len(t.chunks)
	if t.builder != nil {
		n++
	}
	return n
}

// RowCount returns Σ size(chunk) across every chunk.
func (t *Table) RowCount() uint64 {
	var n uint64
	for _, c := range t.chunks {
		n += uint64(c.Size())
	}
	if t.builder != nil {
		n += uint64(t.builder.size)
	}
	return n
}

// GetChunk returns the chunk at id, snapshotting the in-progress
// trailing chunk if id addresses it.
func (t *Table) GetChunk(id types.ChunkId) (*chunk.Chunk, error) {
	idx := int(id)
	if idx < 0 || idx >= t.ChunkCount() {
		return nil, moerr.NewOutOfRange(context.Background(), "chunk id %d out of range [0,%d)", id, t.ChunkCount())
	}
	if idx < len(t.chunks) {
		return t.chunks[idx], nil
	}
	return t.builder.snapshot(t.mvccEnabled), nil
}

// ColumnSegment implements segment.ReferencedTable: random access to
// one column's segment within one chunk, the primitive reference
// segments dereference through.
func (t *Table) ColumnSegment(chunkID types.ChunkId, columnID types.ColumnId) (segment.Segment, error) {
	c, err := t.GetChunk(chunkID)
	if err != nil {
		return nil, err
	}
	seg, ok := c.Segment(columnID)
	if !ok {
		return nil, moerr.NewOutOfRange(context.Background(), "column id %d out of range [0,%d)", columnID, c.ColumnCount())
	}
	return seg, nil
}

// AcquireAppendMutex exposes the table's append mutex to callers that
// need to serialize a multi-step append sequence (e.g. an operator
// appending several chunks that must land contiguously).
func (t *Table) AcquireAppendMutex() *sync.Mutex {
	return &t.appendMu
}

// AppendChunk appends a complete, immutable chunk built from segments
// — the path operators use to publish scan/join results. It enforces
// the Data/References segment-kind invariant and the equal-length
// invariant.
func (t *Table) AppendChunk(segments []segment.Segment) error {
	ctx := context.Background()
	if len(segments) != len(t.schema) {
		return moerr.NewSchemaMismatch(ctx, "chunk has %d segments, schema has %d columns", len(segments), len(t.schema))
	}
	var size = -1
	for i, seg := range segments {
		if size == -1 {
			size = seg.Size()
		} else if seg.Size() != size {
			return moerr.NewSchemaMismatch(ctx, "segment %d has size %d, expected %d", i, seg.Size(), size)
		}
		isRef := segment.EncodingOf(seg) == segment.EncodingReference
		if t.tableType == Data && isRef {
			return moerr.NewSchemaMismatch(ctx, "column %d: reference segment appended into a Data table", i)
		}
		if t.tableType == References && !isRef {
			return moerr.NewSchemaMismatch(ctx, "column %d: non-reference segment appended into a References table", i)
		}
	}

	t.appendMu.Lock()
	defer t.appendMu.Unlock()
	t.chunks = append(t.chunks, chunk.New(segments, t.mvccEnabled))
	logutil.Debug(ctx, "appended chunk", zapChunkFields(t, size)...)
	return nil
}
