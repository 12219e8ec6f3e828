package prover

import (
	"testing"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/graph"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// sumCircuit builds (a+b)+(c+d) as a three-layer circuit: two add gates in
// layer 1 batch into a single claim about layer 0, exercising the
// alpha/beta transition between layers alongside the within-layer
// two-phase sum-check.
func sumCircuit(a, b, c, d float64) *graph.LayeredCircuit {
	layer0 := graph.Layer{
		BitLength: 2,
		Size:      4,
		Gates: []graph.Gate{
			{Type: graph.GateInput, C: field.Quantize(a)},
			{Type: graph.GateInput, C: field.Quantize(b)},
			{Type: graph.GateInput, C: field.Quantize(c)},
			{Type: graph.GateInput, C: field.Quantize(d)},
		},
	}
	layer1 := graph.Layer{
		BitLength: 1,
		Size:      2,
		Gates: []graph.Gate{
			{Type: graph.GateAdd, U: 0, V: 1},
			{Type: graph.GateAdd, U: 2, V: 3},
		},
	}
	layer2 := graph.Layer{
		BitLength: 0,
		Size:      1,
		Gates: []graph.Gate{
			{Type: graph.GateAdd, U: 0, V: 1},
		},
	}
	return &graph.LayeredCircuit{Layers: []graph.Layer{layer0, layer1, layer2}}
}

// mulCircuit builds (a*b)+(c*d): the same three-layer shape as sumCircuit,
// but with a Mul layer feeding the final Add, so the sum-check machinery's
// bilinear predicates (graph.MultMLE, BuildPhase1Tables's GateMul case) are
// actually exercised against a circuit that uses them.
func mulCircuit(a, b, c, d float64) *graph.LayeredCircuit {
	layer0 := graph.Layer{
		BitLength: 2,
		Size:      4,
		Gates: []graph.Gate{
			{Type: graph.GateInput, C: field.Quantize(a)},
			{Type: graph.GateInput, C: field.Quantize(b)},
			{Type: graph.GateInput, C: field.Quantize(c)},
			{Type: graph.GateInput, C: field.Quantize(d)},
		},
	}
	layer1 := graph.Layer{
		BitLength: 1,
		Size:      2,
		Gates: []graph.Gate{
			{Type: graph.GateMul, U: 0, V: 1},
			{Type: graph.GateMul, U: 2, V: 3},
		},
	}
	layer2 := graph.Layer{
		BitLength: 0,
		Size:      1,
		Gates: []graph.Gate{
			{Type: graph.GateAdd, U: 0, V: 1},
		},
	}
	return &graph.LayeredCircuit{Layers: []graph.Layer{layer0, layer1, layer2}}
}

func TestProveMulCircuitSucceeds(t *testing.T) {
	c := mulCircuit(1, 2, 3, 4)
	proof, err := Prove(c, zerolog.Nop())
	require.NoError(t, err)
	want := field.Quantize(1).Mul(field.Quantize(2)).Add(field.Quantize(3).Mul(field.Quantize(4)))
	require.True(t, proof.Output.Equal(want))
	require.NotEmpty(t, proof.Log)
}

func TestProveSumCircuitSucceeds(t *testing.T) {
	c := sumCircuit(1, 2, 3, 4)
	proof, err := Prove(c, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, proof.Output.Equal(field.Quantize(10)))
	require.NotEmpty(t, proof.Log)
}

func TestProveRejectsFailedAssertion(t *testing.T) {
	layer0 := graph.Layer{
		BitLength: 1,
		Size:      2,
		Gates: []graph.Gate{
			{Type: graph.GateInput, C: field.Quantize(1)},
			{Type: graph.GateInput, C: field.Quantize(2)},
		},
	}
	layer1 := graph.Layer{
		BitLength: 0,
		Size:      1,
		Gates: []graph.Gate{
			{Type: graph.GateAdd, U: 0, V: 1, IsAssert: true},
		},
	}
	c := &graph.LayeredCircuit{Layers: []graph.Layer{layer0, layer1}}

	_, err := Prove(c, zerolog.Nop())
	require.ErrorIs(t, err, ErrAssertionFailed)
}

func TestProveTranscriptLabelsAreDeterministic(t *testing.T) {
	c1 := sumCircuit(1, 2, 3, 4)
	c2 := sumCircuit(1, 2, 3, 4)

	p1, err := Prove(c1, zerolog.Nop())
	require.NoError(t, err)
	p2, err := Prove(c2, zerolog.Nop())
	require.NoError(t, err)

	require.Equal(t, len(p1.Log), len(p2.Log))
	for i := range p1.Log {
		require.Equal(t, p1.Log[i].Label, p2.Log[i].Label)
	}
}
