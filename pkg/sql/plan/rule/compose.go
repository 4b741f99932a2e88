package rule

import "github.com/simsieg/hyrise/pkg/sql/plan"

// compose reduces the atoms flattened out of a predicate chain into
// the replacement node list: passthrough predicates first (in chain
// order), then one-sided bounds that did not fuse (in first-seen-column
// order), then fused between-predicates (also in first-seen-column
// order — conjunction is commutative, so any deterministic order is
// semantics-preserving).
func compose(atoms []atom) []plan.Expr {
	groups := make(map[uint32]*columnGroup)
	var order []uint32
	var unfused []plan.Expr

	for _, a := range atoms {
		if a.passthrough != nil {
			unfused = append(unfused, a.passthrough)
			continue
		}
		b := *a.asBoundary
		key := uint32(b.column)
		g, ok := groups[key]
		if !ok {
			g = &columnGroup{column: b.column, firstIndex: len(order)}
			groups[key] = g
			order = append(order, key)
		}
		switch b.kind {
		case kindLowerInclusive, kindLowerExclusive:
			g.considerLower(b)
		case kindUpperInclusive, kindUpperExclusive:
			g.considerUpper(b)
		}
	}

	var betweens []plan.Expr
	for _, key := range order {
		g := groups[key]
		switch {
		case g.lower != nil && g.upper != nil:
			betweens = append(betweens, &plan.Between{
				Column:    g.column,
				Lo:        g.lower.value,
				Hi:        g.upper.value,
				Condition: betweenCondition(g.lower.kind, g.upper.kind),
			})
		case g.lower != nil:
			unfused = append(unfused, g.lower.origin)
		case g.upper != nil:
			unfused = append(unfused, g.upper.origin)
		}
	}

	return append(unfused, betweens...)
}

func betweenCondition(lower, upper boundaryKind) plan.BetweenCondition {
	lowerIncl := lower == kindLowerInclusive
	upperIncl := upper == kindUpperInclusive
	switch {
	case lowerIncl && upperIncl:
		return plan.BetweenInclusive
	case lowerIncl && !upperIncl:
		return plan.BetweenUpperExclusive
	case !lowerIncl && upperIncl:
		return plan.BetweenLowerExclusive
	default:
		return plan.BetweenExclusive
	}
}
