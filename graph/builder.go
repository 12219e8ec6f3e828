// Package graph builds expression graphs over quantized field values and
// flattens them into the layered arithmetic circuits the GKR prover and
// verifier operate on.
//
// A Builder is not safe for concurrent use: it keeps process-wide state (the
// node counter and the in-progress layer assignment) for the duration of a
// single CompileLayeredCircuit call, mirroring the single-ceremony
// assumption the rest of the protocol makes about a circuit's construction.
package graph

import "github.com/agencyenterprise/zkgraph/field"

// Builder constructs a single expression graph. Create one with NewBuilder,
// build nodes with its Const/Add/Mul/... methods, then call
// CompileLayeredCircuit on the node that represents the circuit's output.
type Builder struct {
	counter    int
	anyLayered bool
	compiling  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

func (b *Builder) nextID() int {
	id := b.counter
	b.counter++
	return id
}

// Const returns a fresh input node holding the given field value. Inputs
// start unlayered; combine() assigns a layer the first time one is used as
// an operand.
func (b *Builder) Const(v field.Element) *Node {
	return &Node{id: b.nextID(), op: OpInput, value: v, layer: -1}
}

// combine links l and r beneath a new node of the given op, assigning
// layers on the fly: unlayered operands are placed at layer 0 (or 1, if any
// node anywhere in this build has already been layered — so a later-arriving
// input never collides with gates already placed at layer 0), and the new
// node is placed one layer above the higher of its two operands.
func (b *Builder) combine(op Op, l, r *Node) *Node {
	switch {
	case l.layer < 0 && r.layer < 0:
		lay := 0
		if b.anyLayered {
			lay = 1
		}
		l.layer, r.layer = lay, lay
	case l.layer < 0:
		l.layer = r.layer
	case r.layer < 0:
		r.layer = l.layer
	}
	b.anyLayered = true

	lay := l.layer
	if r.layer > lay {
		lay = r.layer
	}
	out := &Node{id: b.nextID(), op: op, left: l, right: r, value: evalOp(op, l.value, r.value), layer: lay + 1}
	l.consumers = append(l.consumers, out)
	r.consumers = append(r.consumers, out)
	return out
}

func evalOp(op Op, l, r field.Element) field.Element {
	switch op {
	case OpAdd:
		return field.QAdd(l, r)
	case OpMul:
		return field.QMul(l, r)
	default:
		return l
	}
}
