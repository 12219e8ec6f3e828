package verifier

import (
	"testing"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/graph"
	"github.com/agencyenterprise/zkgraph/prover"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// sumCircuit builds (a+b)+(c+d) as a three-layer circuit, the same shape
// prover's own tests exercise, so a genuine proof has two layers of
// sum-check (with an alpha/beta batching transition between them) to
// replay here.
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

// mulCircuit builds (a*b)+(c*d), the same shape as sumCircuit but with a
// Mul layer, so a genuine proof carries a real GateMul final-round check
// (expectedCoeff.Mul(vv) in verifyLayer) through this replay, not just
// Add's simpler predicate.
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

func TestVerifyAcceptsGenuineMulProof(t *testing.T) {
	c := mulCircuit(1, 2, 3, 4)
	proof, err := prover.Prove(c, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Verify(c, proof, zerolog.Nop()))
}

func TestVerifyAcceptsGenuineProof(t *testing.T) {
	c := sumCircuit(1, 2, 3, 4)
	proof, err := prover.Prove(c, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Verify(c, proof, zerolog.Nop()))
}

func TestVerifyRejectsTamperedOutput(t *testing.T) {
	c := sumCircuit(1, 2, 3, 4)
	proof, err := prover.Prove(c, zerolog.Nop())
	require.NoError(t, err)

	proof.Output = field.Quantize(999)
	require.ErrorIs(t, Verify(c, proof, zerolog.Nop()), ErrVerificationFailure)
}

func TestVerifyRejectsTamperedRoundMessage(t *testing.T) {
	c := sumCircuit(1, 2, 3, 4)
	proof, err := prover.Prove(c, zerolog.Nop())
	require.NoError(t, err)

	for i, rec := range proof.Log {
		if rec.Label == "phase_1#2#0" {
			flipped := append([]byte(nil), rec.Data[0]...)
			flipped[len(flipped)-1] ^= 0x01
			proof.Log[i].Data[0] = flipped
			break
		}
	}

	require.ErrorIs(t, Verify(c, proof, zerolog.Nop()), ErrVerificationFailure)
}

func TestVerifyRejectsWrongCircuit(t *testing.T) {
	c := sumCircuit(1, 2, 3, 4)
	proof, err := prover.Prove(c, zerolog.Nop())
	require.NoError(t, err)

	other := sumCircuit(5, 6, 7, 8)
	require.Error(t, Verify(other, proof, zerolog.Nop()))
}
