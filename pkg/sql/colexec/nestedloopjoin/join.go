// Package nestedloopjoin implements the nested-loop join operator:
// Inner/Left/Right/Outer join modes over a column pair, with
// right-mode normalization, a fast/slow comparator dispatch per
// chunk pair, and reference flattening on the output.
package nestedloopjoin

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/simsieg/hyrise/pkg/container/nulls"
	"github.com/simsieg/hyrise/pkg/container/segment"
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/logutil"
	"github.com/simsieg/hyrise/pkg/sql/colexec"
	"github.com/simsieg/hyrise/pkg/storage/table"
	"go.uber.org/zap"
)

// JoinMode selects the nested-loop join's unmatched-row behavior.
// Cross, Semi and Anti are part of the closed vocabulary this core's
// planner may eventually target but have no operator here yet.
type JoinMode uint8

const (
	Inner JoinMode = iota
	Left
	Right
	Outer
)

func (m JoinMode) String() string {
	switch m {
	case Inner:
		return "inner"
	case Left:
		return "left"
	case Right:
		return "right"
	case Outer:
		return "outer"
	default:
		return "unknown"
	}
}

// maxProbeWorkers bounds the ants pool used to probe right chunks
// concurrently for a single left chunk; a nested-loop join over a
// handful of chunks gains nothing from unbounded goroutines.
const maxProbeWorkers = 8

// NestedLoopJoin evaluates `Left.LeftColumn Op Right.RightColumn` for
// every row pair, producing a single References table chunk whose
// schema is Left's columns followed by Right's.
type NestedLoopJoin struct {
	Left, Right             *table.Table
	Mode                    JoinMode
	LeftColumn, RightColumn types.ColumnId
	Op                      types.CompareOp

	params map[string]any
}

// New builds a join of left.leftColumn Op right.rightColumn under mode.
func New(left, right *table.Table, mode JoinMode, leftColumn, rightColumn types.ColumnId, op types.CompareOp) *NestedLoopJoin {
	return &NestedLoopJoin{Left: left, Right: right, Mode: mode, LeftColumn: leftColumn, RightColumn: rightColumn, Op: op}
}

func (j *NestedLoopJoin) Name() string { return "NestedLoopJoin" }

func (j *NestedLoopJoin) SetParameters(params map[string]any) { j.params = params }

func (j *NestedLoopJoin) DeepCopy(inputs ...colexec.Operator) colexec.Operator {
	cp := *j
	return &cp
}

type matchedRight struct {
	chunk  types.ChunkId
	offset types.ChunkOffset
}

// Execute runs the join and returns the resulting References table.
func (j *NestedLoopJoin) Execute(ctx context.Context) (*table.Table, error) {
	probeTable, buildTable, probeCol, buildCol, op, swapped := j.normalize()
	mode := j.Mode
	if swapped {
		mode = Left
	}

	pl, pr, err := runNestedLoop(ctx, probeTable, buildTable, probeCol, buildCol, op, mode)
	if err != nil {
		return nil, err
	}

	// pl/pr are position lists local to probeTable/buildTable's own
	// chunk numbering. Swap them back to (left, right) order and
	// flatten each through one level of reference indirection before
	// building the output.
	var outLeftTable, outRightTable *table.Table
	var outPL, outPR types.PosList
	if swapped {
		outLeftTable, outRightTable = buildTable, probeTable
		outPL, outPR = pr, pl
	} else {
		outLeftTable, outRightTable = probeTable, buildTable
		outPL, outPR = pl, pr
	}

	flatLeft, err := flattenPositions(outLeftTable, outPL)
	if err != nil {
		return nil, err
	}
	flatRight, err := flattenPositions(outRightTable, outPR)
	if err != nil {
		return nil, err
	}

	schema := make([]types.ColumnDefinition, 0, len(outLeftTable.Schema())+len(outRightTable.Schema()))
	schema = append(schema, outLeftTable.Schema()...)
	schema = append(schema, outRightTable.Schema()...)

	maxChunkSize := outLeftTable.MaxChunkSize()
	mvcc := outLeftTable.MVCCEnabled() || outRightTable.MVCCEnabled()
	result := table.New(schema, table.References, maxChunkSize, mvcc)

	segs := make([]segment.Segment, 0, len(schema))
	for col := range outLeftTable.Schema() {
		refTable, refCol, err := colexec.RootReferent(outLeftTable, types.ColumnId(col))
		if err != nil {
			return nil, err
		}
		segs = append(segs, segment.NewReferenceSegment(outLeftTable.Schema()[col].DataType, refTable, refCol, flatLeft))
	}
	for col := range outRightTable.Schema() {
		refTable, refCol, err := colexec.RootReferent(outRightTable, types.ColumnId(col))
		if err != nil {
			return nil, err
		}
		segs = append(segs, segment.NewReferenceSegment(outRightTable.Schema()[col].DataType, refTable, refCol, flatRight))
	}

	if err := result.AppendChunk(segs); err != nil {
		return nil, err
	}

	logutil.Debug(ctx, "nested loop join complete", zap.String("mode", j.Mode.String()), zap.Uint64("rows", result.RowCount()))
	return result, nil
}

// normalize applies the right-mode rewrite: a Right join runs as a
// Left join with the inputs swapped and the predicate operator
// flipped, so downstream code only ever handles Inner/Left/Outer. It
// returns (probeTable, buildTable, probeColumn, buildColumn, op,
// swapped) where probeTable plays the "left" role in runNestedLoop.
func (j *NestedLoopJoin) normalize() (probe, build *table.Table, probeCol, buildCol types.ColumnId, op types.CompareOp, swapped bool) {
	if j.Mode != Right {
		return j.Left, j.Right, j.LeftColumn, j.RightColumn, j.Op, false
	}
	return j.Right, j.Left, j.RightColumn, j.LeftColumn, j.Op.Flip(), true
}

// runNestedLoop is the core double loop of the join, structured
// left-row-major so its output already satisfies the required
// (left chunk, left offset, right chunk, right offset) ordering
// without a separate sort step.
func runNestedLoop(ctx context.Context, left, right *table.Table, leftCol, rightCol types.ColumnId, op types.CompareOp, mode JoinMode) (types.PosList, types.PosList, error) {
	rightChunkCount := right.ChunkCount()

	var globalRightMatches []*nulls.Bitmap
	if mode == Outer {
		globalRightMatches = make([]*nulls.Bitmap, rightChunkCount)
		for ri := range globalRightMatches {
			globalRightMatches[ri] = nulls.New()
		}
	}

	trackLeft := mode == Left || mode == Outer

	var PL, PR types.PosList

	for li := 0; li < left.ChunkCount(); li++ {
		lChunkID := types.ChunkId(li)
		lChunk, err := left.GetChunk(lChunkID)
		if err != nil {
			return nil, nil, err
		}
		lSeg, err := left.ColumnSegment(lChunkID, leftCol)
		if err != nil {
			return nil, nil, err
		}
		leftSize := lChunk.Size()

		perLeftOffset, rightMatchesByChunk, err := probeAllRightChunks(ctx, lSeg, right, rightCol, op, leftSize, mode == Outer)
		if err != nil {
			return nil, nil, err
		}
		if mode == Outer {
			for ri, matched := range rightMatchesByChunk {
				if matched == nil {
					continue
				}
				c, err := right.GetChunk(types.ChunkId(ri))
				if err != nil {
					return nil, nil, err
				}
				for off := 0; off < c.Size(); off++ {
					if matched.Contains(uint32(off)) {
						globalRightMatches[ri].Add(uint32(off))
					}
				}
			}
		}

		leftMatched := nulls.New()
		for loff := 0; loff < leftSize; loff++ {
			matches := perLeftOffset[loff]
			if len(matches) > 0 {
				leftMatched.Add(uint32(loff))
			}
			for _, m := range matches {
				PL = append(PL, types.RowId{ChunkId: lChunkID, ChunkOffset: types.ChunkOffset(loff)})
				PR = append(PR, types.RowId{ChunkId: m.chunk, ChunkOffset: m.offset})
			}
			if trackLeft && !leftMatched.Contains(uint32(loff)) {
				PL = append(PL, types.RowId{ChunkId: lChunkID, ChunkOffset: types.ChunkOffset(loff)})
				PR = append(PR, types.NullRowId)
			}
		}
	}

	if mode == Outer {
		for ri := 0; ri < rightChunkCount; ri++ {
			c, err := right.GetChunk(types.ChunkId(ri))
			if err != nil {
				return nil, nil, err
			}
			for off := 0; off < c.Size(); off++ {
				if !globalRightMatches[ri].Contains(uint32(off)) {
					PL = append(PL, types.NullRowId)
					PR = append(PR, types.RowId{ChunkId: types.ChunkId(ri), ChunkOffset: types.ChunkOffset(off)})
				}
			}
		}
	}

	return PL, PR, nil
}

type rightChunkProbe struct {
	perLeftOffset [][]matchedRight
	rightMatched  *nulls.Bitmap
	err           error
}

// probeAllRightChunks scans every right chunk against lSeg
// concurrently (one ants task per right chunk, on a pool of at most
// maxProbeWorkers workers), merging results
// back in ascending chunk order to preserve the ordering guarantee.
func probeAllRightChunks(ctx context.Context, lSeg segment.Segment, right *table.Table, rightCol types.ColumnId, op types.CompareOp, leftSize int, trackRight bool) ([][]matchedRight, []*nulls.Bitmap, error) {
	rightChunkCount := right.ChunkCount()
	results := make([]rightChunkProbe, rightChunkCount)

	workers := rightChunkCount
	if workers > maxProbeWorkers {
		workers = maxProbeWorkers
	}
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for ri := 0; ri < rightChunkCount; ri++ {
		ri := ri
		wg.Add(1)
		task := func() {
			defer wg.Done()
			results[ri] = probeOneRightChunk(ctx, lSeg, right, types.ChunkId(ri), rightCol, op, leftSize, trackRight)
		}
		if err := pool.Submit(task); err != nil {
			task()
		}
	}
	wg.Wait()

	merged := make([][]matchedRight, leftSize)
	rightMatched := make([]*nulls.Bitmap, rightChunkCount)
	for ri, res := range results {
		if res.err != nil {
			return nil, nil, res.err
		}
		for loff := 0; loff < leftSize; loff++ {
			merged[loff] = append(merged[loff], res.perLeftOffset[loff]...)
		}
		rightMatched[ri] = res.rightMatched
	}
	return merged, rightMatched, nil
}

func probeOneRightChunk(ctx context.Context, lSeg segment.Segment, right *table.Table, rChunkID types.ChunkId, rightCol types.ColumnId, op types.CompareOp, leftSize int, trackRight bool) rightChunkProbe {
	rSeg, err := right.ColumnSegment(rChunkID, rightCol)
	if err != nil {
		return rightChunkProbe{err: err}
	}
	perLeftOffset := make([][]matchedRight, leftSize)
	var rightMatched *nulls.Bitmap
	if trackRight {
		rightMatched = nulls.New()
	}
	err = dispatchInnerLoop(ctx, lSeg, rSeg, op, func(loff, roff types.ChunkOffset) {
		perLeftOffset[loff] = append(perLeftOffset[loff], matchedRight{chunk: rChunkID, offset: roff})
		if rightMatched != nil {
			rightMatched.Add(uint32(roff))
		}
	})
	if err != nil {
		return rightChunkProbe{err: err}
	}
	return rightChunkProbe{perLeftOffset: perLeftOffset, rightMatched: rightMatched}
}

// flattenPositions resolves every RowId in posList to its root row in
// t's ultimate Data-table ancestor, propagating NullRowId unchanged.
func flattenPositions(t *table.Table, posList types.PosList) (types.PosList, error) {
	out := make(types.PosList, len(posList))
	for i, rid := range posList {
		if rid.IsNull() {
			out[i] = types.NullRowId
			continue
		}
		root, err := colexec.RootRowID(t, rid.ChunkId, rid.ChunkOffset)
		if err != nil {
			return nil, err
		}
		out[i] = root
	}
	return out, nil
}
