package rule

import "github.com/simsieg/hyrise/pkg/sql/plan"

// atom is one predicate cut out of a chain: either a derived boundary
// candidate for fusion, or an opaque passthrough expression that must
// survive unchanged (a non-boundary comparison, an AND child that
// isn't a comparison, or an entire OR/LIKE/IN predicate).
type atom struct {
	asBoundary   *boundary
	passthrough  plan.Expr
}

// flattenPredicate greedily flattens a predicate node's expression
// into atoms: a bare comparison yields one atom; a top-level AND
// flattens its children (recursively, for nested ANDs); anything else
// (OR, a non-comparison AND child, LIKE/IN placeholders modeled as
// *plan.Other) becomes one opaque passthrough atom that is kept
// unchanged.
func flattenPredicate(expr plan.Expr) []atom {
	switch e := expr.(type) {
	case *plan.BinaryComparison:
		if b, ok := deriveBoundary(e); ok {
			return []atom{{asBoundary: &b}}
		}
		return []atom{{passthrough: e}}
	case *plan.Logical:
		if e.Op == plan.And {
			var out []atom
			for _, child := range e.Children {
				out = append(out, flattenPredicate(child)...)
			}
			return out
		}
		return []atom{{passthrough: e}}
	default:
		return []atom{{passthrough: expr}}
	}
}
