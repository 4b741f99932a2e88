// Package tablescan implements the ColumnBetweenTableScan operator: a
// single-column range predicate evaluated per chunk, with a
// dictionary-encoded fast path that never materializes a decoded
// value.
package tablescan

import (
	"context"

	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/logutil"
	"github.com/simsieg/hyrise/pkg/moerr"
	"github.com/simsieg/hyrise/pkg/sql/colexec"
	"github.com/simsieg/hyrise/pkg/sql/plan"
	"github.com/simsieg/hyrise/pkg/storage/table"
	"go.uber.org/zap"
)

// ColumnBetweenTableScan evaluates lo <op> column <op> hi (per
// Condition's inclusivity) against every chunk of Input, producing a
// References table with one output chunk per input chunk.
type ColumnBetweenTableScan struct {
	Input     *table.Table
	Column    types.ColumnId
	Lo, Hi    types.Value
	Condition plan.BetweenCondition

	// Filters, when non-nil, restricts chunk i's scan to
	// Filters[i]'s offsets (e.g. the surviving positions of an
	// earlier operator in the same predicate chain). A missing or
	// nil entry means "scan every position in the chunk".
	Filters []*segment.PositionFilter

	params map[string]any
}

// New builds a scan of column over [lo, hi] under condition.
func New(input *table.Table, column types.ColumnId, lo, hi types.Value, condition plan.BetweenCondition) *ColumnBetweenTableScan {
	return &ColumnBetweenTableScan{Input: input, Column: column, Lo: lo, Hi: hi, Condition: condition}
}

// WithFilters attaches per-chunk position filters and returns the
// receiver for chaining.
func (op *ColumnBetweenTableScan) WithFilters(filters []*segment.PositionFilter) *ColumnBetweenTableScan {
	op.Filters = filters
	return op
}

func (op *ColumnBetweenTableScan) Name() string { return "ColumnBetweenTableScan" }

func (op *ColumnBetweenTableScan) SetParameters(params map[string]any) { op.params = params }

// DeepCopy returns an independent copy of the operator. Table scan is
// a leaf operator (it reads directly from a stored table rather than
// another operator's output), so inputs is always empty.
func (op *ColumnBetweenTableScan) DeepCopy(inputs ...colexec.Operator) colexec.Operator {
	cp := *op
	return &cp
}

// Execute runs the scan. If either bound is NULL the predicate can
// never be satisfied under three-valued logic and the result is an
// empty References table with the input's schema.
func (op *ColumnBetweenTableScan) Execute(ctx context.Context) (*table.Table, error) {
	if !op.Condition.Valid() {
		return nil, moerr.NewUnreachablePredicate(ctx, "between condition %d matches none of the four recognized inclusivity combinations", op.Condition)
	}

	schema := op.Input.Schema()
	result := table.New(schema, table.References, op.Input.MaxChunkSize(), op.Input.MVCCEnabled())

	if op.Lo.IsNull() || op.Hi.IsNull() {
		logutil.Debug(ctx, "table scan short-circuited on NULL bound", zap.Uint16("column", uint16(op.Column)))
		return result, nil
	}

	for i := 0; i < op.Input.ChunkCount(); i++ {
		chunkID := types.ChunkId(i)
		colSeg, err := op.Input.ColumnSegment(chunkID, op.Column)
		if err != nil {
			return nil, err
		}

		var filter *segment.PositionFilter
		if i < len(op.Filters) {
			filter = op.Filters[i]
		}

		localOffsets := scanSegment(colSeg, op.Lo, op.Hi, op.Condition, filter)

		posList := make(types.PosList, len(localOffsets))
		for j, off := range localOffsets {
			rootID, err := colexec.RootRowID(op.Input, chunkID, off)
			if err != nil {
				return nil, err
			}
			posList[j] = rootID
		}

		segs := make([]segment.Segment, len(schema))
		for col := range schema {
			refTable, refCol, err := colexec.RootReferent(op.Input, types.ColumnId(col))
			if err != nil {
				return nil, err
			}
			segs[col] = segment.NewReferenceSegment(schema[col].DataType, refTable, refCol, posList)
		}
		if err := result.AppendChunk(segs); err != nil {
			return nil, err
		}
	}

	logutil.Debug(ctx, "table scan complete", zap.Uint64("rows", result.RowCount()))
	return result, nil
}
