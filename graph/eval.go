package graph

import "github.com/agencyenterprise/zkgraph/field"

// Evaluate computes the wire values of every layer of c by straightforward
// bottom-up gate evaluation. It does not touch the transcript or any
// cryptographic machinery; it exists so the prover can assert its circuit
// was built correctly before committing to it, and so tests can check a
// LayeredCircuit against the expression graph it was compiled from.
func Evaluate(c *LayeredCircuit) [][]field.Element {
	wires := make([][]field.Element, len(c.Layers))
	for i, layer := range c.Layers {
		row := make([]field.Element, layer.Size)
		for j, g := range layer.Gates {
			switch g.Type {
			case GateInput:
				row[j] = g.C
			case GateAdd:
				row[j] = field.QAdd(wires[i-1][g.U], wires[i-1][g.V])
			case GateMul:
				row[j] = wires[i-1][g.U].Mul(wires[i-1][g.V])
			case GateRelay:
				if g.U == dummyIndex {
					row[j] = g.C
				} else {
					row[j] = wires[i-1][g.U]
				}
			}
		}
		wires[i] = row
	}
	return wires
}

// Output returns the single live value at the top of the circuit: the
// compiled graph always reduces to one real output gate at index 0 of its
// last layer, with any remaining slots in that layer being padding.
func Output(c *LayeredCircuit) field.Element {
	wires := Evaluate(c)
	return wires[len(wires)-1][0]
}
