package rule

import "github.com/simsieg/hyrise/pkg/sql/plan"

// BetweenComposition rewrites comparison-predicate chains into
// between-predicates. Rewrite walks the plan top-down; wherever it
// finds a maximal chain of single-consumer predicate nodes it
// replaces the chain with unfused predicates followed by fused
// between-predicates, then recurses into the input below the chain.
// It is idempotent: a second call finds no chain longer than one
// PredicateNode wrapping a *plan.Between, which composes back to
// itself unchanged.
type BetweenComposition struct{}

// Rewrite returns the root of the rewritten plan. Callers must
// reassign their root reference to the result, since the root itself
// may be replaced if it is the head of a chain.
func (BetweenComposition) Rewrite(node plan.Node) plan.Node {
	if node == nil {
		return nil
	}
	if pn, ok := node.(*plan.PredicateNode); ok && pn.Consumers() == 1 {
		chain, tail := collectChain(pn)
		return rebuildChain(chain, tail)
	}
	node.SetLeft(BetweenComposition{}.Rewrite(node.Left()))
	if node.Right() != nil {
		node.SetRight(BetweenComposition{}.Rewrite(node.Right()))
	}
	return node
}

// collectChain walks left from head as long as it keeps finding
// single-consumer PredicateNodes, returning the chain (head first)
// and the first non-chain node below it (the "input" the new chain
// must reattach to).
func collectChain(head *plan.PredicateNode) (chain []*plan.PredicateNode, tail plan.Node) {
	chain = []*plan.PredicateNode{head}
	cur := plan.Node(head)
	for {
		next := cur.Left()
		if next == nil {
			return chain, nil
		}
		pn, ok := next.(*plan.PredicateNode)
		if !ok || pn.Consumers() != 1 {
			return chain, next
		}
		chain = append(chain, pn)
		cur = pn
	}
}

// rebuildChain detaches every node in chain, flattens their
// predicates into atoms, composes the replacement expression list,
// and links fresh PredicateNodes into a new chain feeding
// Rewrite(tail), recursing into the input below the chain.
func rebuildChain(chain []*plan.PredicateNode, tail plan.Node) plan.Node {
	var atoms []atom
	for _, pn := range chain {
		atoms = append(atoms, flattenPredicate(pn.Predicate())...)
		pn.Detach()
	}
	exprs := compose(atoms)

	rewrittenTail := BetweenComposition{}.Rewrite(tail)

	if len(exprs) == 0 {
		return rewrittenTail
	}

	var head plan.Node = rewrittenTail
	for i := len(exprs) - 1; i >= 0; i-- {
		head = plan.NewPredicateNode(exprs[i], head)
	}
	return head
}
