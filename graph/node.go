package graph

import "github.com/agencyenterprise/zkgraph/field"

// Op is the role a Node plays when the expression graph is flattened into
// gates: every non-input op reduces to exactly one Add or Mul of two
// existing nodes, with transcendental or reciprocal work folded into a
// freshly synthesized input constant ahead of time.
type Op uint8

const (
	OpInput Op = iota
	OpAdd
	OpMul
	OpRelay
)

// Node is one vertex of the expression graph under construction. Value
// always holds the concrete, already-computed field element for this node;
// the graph records how that value was derived, not a symbolic unknown.
type Node struct {
	id    int
	op    Op
	value field.Element

	left, right *Node // right is nil for OpInput and OpRelay

	layer     int // -1 until combine() or promotion assigns one
	consumers []*Node
}

// Layer reports the node's assigned layer, or -1 if it has not been
// combined into an expression yet.
func (n *Node) Layer() int { return n.layer }

// Value returns the node's concrete field value.
func (n *Node) Value() field.Element { return n.value }
