package graph

import "github.com/agencyenterprise/zkgraph/field"

// BuildZWeights collapses a layer's two batched GKR evaluation points into
// one weight per gate: weight[j] = alpha*eq(r0, bits(j)) + beta*eq(r1,
// bits(j)). Every wiring-predicate helper below takes these weights
// instead of (r0, r1, alpha, beta) directly, since both the prover and the
// verifier compute them once per layer and then reuse them across the
// add/mult/relay/const predicate evaluations.
func BuildZWeights(layerSize uint32, bitlen int, r0, r1 []field.Element, alpha, beta field.Element) []field.Element {
	w := make([]field.Element, layerSize)
	for j := uint32(0); j < layerSize; j++ {
		bj := bitsOf(j, bitlen)
		w[j] = alpha.Mul(EqMLE(r0, bj)).Add(beta.Mul(EqMLE(r1, bj)))
	}
	return w
}

// AddMLE, MultMLE, RelayMLE and ConstMLE are the multilinear extensions of
// this layer's wiring predicates, batched by BuildZWeights. They depend
// only on the circuit's wiring, never on witness values, so the verifier
// can evaluate them directly from the compiled circuit.
func (c *LayeredCircuit) AddMLE(layerIdx int, zWeight []field.Element, x, y []field.Element) field.Element {
	below := c.Layers[layerIdx-1]
	total := field.Zero()
	for j, g := range c.Layers[layerIdx].Gates {
		if g.Type != GateAdd {
			continue
		}
		total = total.Add(zWeight[j].Mul(EqMLE(x, bitsOf(g.U, int(below.BitLength)))).Mul(EqMLE(y, bitsOf(g.V, int(below.BitLength)))))
	}
	return total
}

func (c *LayeredCircuit) MultMLE(layerIdx int, zWeight []field.Element, x, y []field.Element) field.Element {
	below := c.Layers[layerIdx-1]
	total := field.Zero()
	for j, g := range c.Layers[layerIdx].Gates {
		if g.Type != GateMul {
			continue
		}
		total = total.Add(zWeight[j].Mul(EqMLE(x, bitsOf(g.U, int(below.BitLength)))).Mul(EqMLE(y, bitsOf(g.V, int(below.BitLength)))))
	}
	return total
}

// RelayMLE is the single-input relay predicate: it never depends on y, so
// a relay gate's contribution resolves entirely during phase 1 of a
// layer's sumcheck.
func (c *LayeredCircuit) RelayMLE(layerIdx int, zWeight []field.Element, x []field.Element) field.Element {
	below := c.Layers[layerIdx-1]
	total := field.Zero()
	for j, g := range c.Layers[layerIdx].Gates {
		if g.Type != GateRelay || g.U == dummyIndex {
			continue
		}
		total = total.Add(zWeight[j].Mul(EqMLE(x, bitsOf(g.U, int(below.BitLength)))))
	}
	return total
}

// AddXSum is sum_y add~(x,y) for x fixed: since eq(y, bits(g.V)) sums to 1
// over the full y hypercube regardless of g.V, this collapses to a sum
// over add gates weighted only by zWeight and the eq term in x. The
// verifier uses it standalone (without building the full phase-2 table) to
// recompute BuildPhase2Table's drelay term from a claimed v_u.
func (c *LayeredCircuit) AddXSum(layerIdx int, zWeight []field.Element, x []field.Element) field.Element {
	below := c.Layers[layerIdx-1]
	total := field.Zero()
	for j, g := range c.Layers[layerIdx].Gates {
		if g.Type != GateAdd {
			continue
		}
		total = total.Add(zWeight[j].Mul(EqMLE(x, bitsOf(g.U, int(below.BitLength)))))
	}
	return total
}

// ConstMLE is the contribution of padding (dummy) relay gates, whose value
// is a literal constant rather than a wire reference one layer down.
func (c *LayeredCircuit) ConstMLE(layerIdx int, zWeight []field.Element) field.Element {
	total := field.Zero()
	for j, g := range c.Layers[layerIdx].Gates {
		if g.Type != GateRelay || g.U != dummyIndex {
			continue
		}
		total = total.Add(zWeight[j].Mul(g.C))
	}
	return total
}

// Phase1Tables holds the bookkeeping tables a layer's sumcheck prover folds
// over the l_{i-1} rounds that bind x (the "u" half of the wire below):
// P is the coefficient of V(x), Q is the additive term contributed by add
// gates' V(y) side while y is still summed over its full hypercube.
type Phase1Tables struct {
	P, Q []field.Element
}

// BuildPhase1Tables computes P and Q directly from the gate list and the
// (known-to-the-prover) wire values one layer down, in O(gates) time: each
// gate contributes to exactly one table entry, since phase 1 hasn't bound
// any bits of x yet.
func BuildPhase1Tables(layerIdx int, c *LayeredCircuit, zWeight []field.Element, below []field.Element) Phase1Tables {
	belowSize := c.Layers[layerIdx-1].Size
	t := Phase1Tables{P: make([]field.Element, belowSize), Q: make([]field.Element, belowSize)}
	for j, g := range c.Layers[layerIdx].Gates {
		w := zWeight[j]
		if w.IsZero() {
			continue
		}
		switch g.Type {
		case GateAdd:
			t.P[g.U] = t.P[g.U].Add(w)
			t.Q[g.U] = t.Q[g.U].Add(w.Mul(below[g.V]))
		case GateMul:
			t.P[g.U] = t.P[g.U].Add(w.Mul(below[g.V]))
		case GateRelay:
			if g.U != dummyIndex {
				t.P[g.U] = t.P[g.U].Add(w)
			}
		}
	}
	return t
}

// BuildPhase2Table computes phase 2's coefficient table G (the coefficient
// of V(y), now that x is bound to rx and V(rx)=vu is a known scalar), along
// with drelay, the scalar phase-1's add gates contribute once x is fixed
// and y is still summed over its full hypercube: drelay = vu * sum_y
// add~(rx,y), which is a pure wiring quantity both the prover and the
// verifier can compute from (zWeight, rx) alone.
func BuildPhase2Table(layerIdx int, c *LayeredCircuit, zWeight []field.Element, rx []field.Element, below []field.Element, vu field.Element) (G []field.Element, drelay field.Element) {
	belowBits := int(c.Layers[layerIdx-1].BitLength)
	belowSize := c.Layers[layerIdx-1].Size
	G = make([]field.Element, belowSize)
	drelay = field.Zero()
	for j, g := range c.Layers[layerIdx].Gates {
		w := zWeight[j]
		if w.IsZero() {
			continue
		}
		switch g.Type {
		case GateAdd:
			uw := w.Mul(EqMLE(rx, bitsOf(g.U, belowBits)))
			G[g.V] = G[g.V].Add(uw)
			drelay = drelay.Add(uw)
		case GateMul:
			uw := w.Mul(EqMLE(rx, bitsOf(g.U, belowBits)))
			G[g.V] = G[g.V].Add(uw.Mul(vu))
		}
	}
	drelay = drelay.Mul(vu)
	return G, drelay
}
