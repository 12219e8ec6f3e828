package graph

import "github.com/agencyenterprise/zkgraph/field"

// GateType identifies the arithmetic role of a gate within a layer.
type GateType uint8

const (
	GateMul   GateType = 1
	GateAdd   GateType = 2
	GateInput GateType = 7
	GateRelay GateType = 14
)

// dummyIndex marks a padding gate's wires as unused: the gate's value comes
// directly from its constant field C rather than from a lower layer.
const dummyIndex = ^uint32(0)

// Gate is one node of a layered arithmetic circuit. U and V index gates in
// the layer immediately below; C carries an input constant (GateInput) or is
// zero for padding.
type Gate struct {
	Type     GateType
	U, V     uint32
	C        field.Element
	IsAssert bool
}

// Layer is one power-of-two-sized row of a LayeredCircuit.
type Layer struct {
	BitLength uint8
	Size      uint32
	Gates     []Gate
}

// LayeredCircuit is the wire format the prover and verifier share: layer 0
// holds the inputs, and each subsequent layer's gates reference wires in the
// layer directly below it.
type LayeredCircuit struct {
	Layers []Layer
}

// Depth returns the number of layers, including the input layer.
func (c *LayeredCircuit) Depth() int { return len(c.Layers) }

// OutputLayer returns the topmost layer, whose single surviving gate (after
// padding) is the circuit's result.
func (c *LayeredCircuit) OutputLayer() Layer { return c.Layers[len(c.Layers)-1] }
