// Package plan implements the logical-plan node and expression
// algebra the predicate-composition rule rewrites. A rewrite builds
// fresh predicate nodes for a fused chain and links them into the
// chain's consumer in place through SetLeft/SetRight; nodes outside
// the chain keep their identity.
package plan

// NodeType classifies a plan node for the rewrite's top-down walk.
type NodeType uint8

const (
	SourceType NodeType = iota
	PredicateType
	OtherOperatorType
)

// Node is the logical-plan interface the rewrite rule operates on.
// Every node has a left input and, for binary operators (joins,
// unions — representable by OtherOperatorNode below), a right input.
type Node interface {
	Type() NodeType
	Left() Node
	Right() Node
	SetLeft(Node)
	SetRight(Node)
	// Predicate returns the node's predicate expression, or nil for
	// non-predicate nodes.
	Predicate() Expr
	// Consumers reports how many other nodes reference this node as
	// an input. The composition rule only fuses predicate nodes with
	// exactly one consumer; nodes shared by more than one consumer
	// are left as chain boundaries.
	Consumers() int
	// ShallowCopy duplicates the node without its inputs, used by
	// optimizer bookkeeping.
	ShallowCopy() Node
}

// SourceNode is a leaf plan node (a table scan target, in this
// core's terms — the underlying table itself is opaque to the plan
// layer, which only needs it as an anchor for chain recursion).
type SourceNode struct {
	Name      string
	consumers int
}

func NewSourceNode(name string) *SourceNode { return &SourceNode{Name: name, consumers: 1} }

func (n *SourceNode) Type() NodeType    { return SourceType }
func (n *SourceNode) Left() Node        { return nil }
func (n *SourceNode) Right() Node       { return nil }
func (n *SourceNode) SetLeft(Node)      {}
func (n *SourceNode) SetRight(Node)     {}
func (n *SourceNode) Predicate() Expr   { return nil }
func (n *SourceNode) Consumers() int    { return n.consumers }
func (n *SourceNode) SetConsumers(c int) { n.consumers = c }
func (n *SourceNode) ShallowCopy() Node {
	cp := *n
	return &cp
}

// PredicateNode is a unary node: single left input, no right input,
// wrapping one predicate expression. Both plain comparisons and
// between-predicates are PredicateNodes distinguished by the
// concrete Expr type their Predicate() returns.
type PredicateNode struct {
	expr      Expr
	left      Node
	consumers int
}

func NewPredicateNode(expr Expr, left Node) *PredicateNode {
	return &PredicateNode{expr: expr, left: left, consumers: 1}
}

func (n *PredicateNode) Type() NodeType    { return PredicateType }
func (n *PredicateNode) Left() Node        { return n.left }
func (n *PredicateNode) Right() Node       { return nil }
func (n *PredicateNode) SetLeft(l Node)    { n.left = l }
func (n *PredicateNode) SetRight(Node)     {}
func (n *PredicateNode) Predicate() Expr   { return n.expr }
func (n *PredicateNode) Consumers() int    { return n.consumers }
func (n *PredicateNode) SetConsumers(c int) { n.consumers = c }
func (n *PredicateNode) ShallowCopy() Node {
	return &PredicateNode{expr: n.expr, consumers: n.consumers}
}

// Detach clears the node's input, used when unlinking a predicate
// node from a chain that is about to be discarded.
func (n *PredicateNode) Detach() {
	n.left = nil
}

// OtherOperatorNode stands in for any binary or unary operator this
// spec does not model in detail (joins, unions, projections above a
// predicate chain); it exists so tests can exercise re-linking a
// rewritten chain back into a consumer with two input sides.
type OtherOperatorNode struct {
	Name      string
	left      Node
	right     Node
	consumers int
}

func NewOtherOperatorNode(name string, left, right Node) *OtherOperatorNode {
	return &OtherOperatorNode{Name: name, left: left, right: right, consumers: 1}
}

func (n *OtherOperatorNode) Type() NodeType    { return OtherOperatorType }
func (n *OtherOperatorNode) Left() Node        { return n.left }
func (n *OtherOperatorNode) Right() Node       { return n.right }
func (n *OtherOperatorNode) SetLeft(l Node)    { n.left = l }
func (n *OtherOperatorNode) SetRight(r Node)   { n.right = r }
func (n *OtherOperatorNode) Predicate() Expr   { return nil }
func (n *OtherOperatorNode) Consumers() int    { return n.consumers }
func (n *OtherOperatorNode) SetConsumers(c int) { n.consumers = c }
func (n *OtherOperatorNode) ShallowCopy() Node {
	cp := *n
	cp.left, cp.right = nil, nil
	return &cp
}
