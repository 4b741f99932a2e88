package plan

import "github.com/simsieg/hyrise/pkg/container/types"

// Expr is the closed algebraic expression variant referenced by
// predicate nodes: binary comparison, logical conjunction/
// disjunction, between, column reference, and literal.
type Expr interface {
	isExpr()
}

// ColumnRef names a column by id.
type ColumnRef struct {
	Column types.ColumnId
}

func (*ColumnRef) isExpr() {}

// Literal wraps a constant value operand.
type Literal struct {
	Value types.Value
}

func (*Literal) isExpr() {}

// BinaryComparison is `lhs op rhs`, where exactly one side is
// typically a ColumnRef and the other a Literal (column-column and
// literal-literal forms are legal expressions but never yield a
// boundary — see deriveBoundary in package rule).
type BinaryComparison struct {
	Op       types.CompareOp
	Lhs, Rhs Expr
}

func (*BinaryComparison) isExpr() {}

// LogicalOp distinguishes AND from OR.
type LogicalOp uint8

const (
	And LogicalOp = iota
	Or
)

// Logical is a conjunction/disjunction of children.
type Logical struct {
	Op       LogicalOp
	Children []Expr
}

func (*Logical) isExpr() {}

// BetweenCondition names one of the four recognized inclusivity
// combinations for a Between predicate.
type BetweenCondition uint8

const (
	BetweenInclusive BetweenCondition = iota
	BetweenLowerExclusive
	BetweenUpperExclusive
	BetweenExclusive
)

func (c BetweenCondition) LowerInclusive() bool {
	return c == BetweenInclusive || c == BetweenUpperExclusive
}

func (c BetweenCondition) UpperInclusive() bool {
	return c == BetweenInclusive || c == BetweenLowerExclusive
}

// Valid reports whether c is one of the four declared inclusivity
// combinations.
func (c BetweenCondition) Valid() bool {
	switch c {
	case BetweenInclusive, BetweenLowerExclusive, BetweenUpperExclusive, BetweenExclusive:
		return true
	default:
		return false
	}
}

// Between is `lo <op> column <op> hi`, folded from a chain of
// one-sided comparisons by the predicate-composition rule.
type Between struct {
	Column    types.ColumnId
	Lo, Hi    types.Value
	Condition BetweenCondition
}

func (*Between) isExpr() {}

// Other is an opaque passthrough for predicate shapes the
// composition rule does not decompose (LIKE, IN, disjunctions, ...).
// It carries the original expression unchanged.
type Other struct {
	Expr Expr
}

func (*Other) isExpr() {}
