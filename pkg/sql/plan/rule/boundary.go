// Package rule implements logical-plan rewrites. BetweenComposition
// collapses a maximal chain of single-consumer comparison predicates
// on the same column into a between-predicate, preserving one-sided
// bounds and unrecognized predicates unchanged.
package rule

import (
	"github.com/simsieg/hyrise/pkg/container/types"
	"github.com/simsieg/hyrise/pkg/sql/plan"
)

// boundaryKind classifies a derived column boundary.
type boundaryKind uint8

const (
	kindNone boundaryKind = iota
	kindLowerInclusive
	kindLowerExclusive
	kindUpperInclusive
	kindUpperExclusive
)

// boundary is one column_ref/value/kind triple derived from a single
// comparison, plus the original comparison node it was cut from (so
// a one-sided or unrecognized boundary can be re-emitted verbatim).
type boundary struct {
	column types.ColumnId
	value  types.Value
	kind   boundaryKind
	origin plan.Expr
}

// deriveBoundary classifies a single comparison into a column
// boundary. ok is false for comparisons that are not `column op
// value` / `value op column` shaped (e.g. column-to-column, or an
// operator with no boundary mapping).
func deriveBoundary(cmp *plan.BinaryComparison) (boundary, bool) {
	if col, lit, ok := asColumnOpValue(cmp); ok {
		if k, ok := kindForColumnOpValue(cmp.Op); ok {
			return boundary{column: col.Column, value: lit.Value, kind: k, origin: cmp}, true
		}
		return boundary{}, false
	}
	if lit, col, ok := asValueOpColumn(cmp); ok {
		if k, ok := kindForValueOpColumn(cmp.Op); ok {
			return boundary{column: col.Column, value: lit.Value, kind: k, origin: cmp}, true
		}
		return boundary{}, false
	}
	return boundary{}, false
}

func asColumnOpValue(cmp *plan.BinaryComparison) (*plan.ColumnRef, *plan.Literal, bool) {
	col, colOk := cmp.Lhs.(*plan.ColumnRef)
	lit, litOk := cmp.Rhs.(*plan.Literal)
	return col, lit, colOk && litOk
}

func asValueOpColumn(cmp *plan.BinaryComparison) (*plan.Literal, *plan.ColumnRef, bool) {
	lit, litOk := cmp.Lhs.(*plan.Literal)
	col, colOk := cmp.Rhs.(*plan.ColumnRef)
	return lit, col, litOk && colOk
}

// kindForColumnOpValue covers the `col op v` shape.
func kindForColumnOpValue(op types.CompareOp) (boundaryKind, bool) {
	switch op {
	case types.OpGE:
		return kindLowerInclusive, true
	case types.OpGT:
		return kindLowerExclusive, true
	case types.OpLE:
		return kindUpperInclusive, true
	case types.OpLT:
		return kindUpperExclusive, true
	default:
		return kindNone, false
	}
}

// kindForValueOpColumn covers the `v op col` half; `v <= col` behaves
// like `col >= v`, so the op is flipped before reuse.
func kindForValueOpColumn(op types.CompareOp) (boundaryKind, bool) {
	return kindForColumnOpValue(op.Flip())
}
