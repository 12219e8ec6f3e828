package zkgraph

import (
	"testing"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/graph"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// TestAddThenScaleRoundTrips builds A=1, B=2, C=A+B, C=C*1, C=C*2 end to
// end: compile, prove, and run, the smallest circuit that chains an Add
// layer into two further Mul layers.
func TestAddThenScaleRoundTrips(t *testing.T) {
	b := graph.NewBuilder()
	a := b.Const(field.Quantize(1))
	bb := b.Const(field.Quantize(2))
	c := b.Add(a, bb)
	one := b.Const(field.Quantize(1))
	c = b.Mul(c, one)
	two := b.Const(field.Quantize(2))
	c = b.Mul(c, two)

	cc, err := Compile(b, c)
	require.NoError(t, err)

	proofBytes, err := cc.Prove(zerolog.Nop())
	require.NoError(t, err)

	ok, err := cc.Run(proofBytes, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, ok)
}

// TestAddThenScaleRejectsTamperedProof flips a byte deep inside the
// transcript portion of the proof and checks Run reports failure instead
// of silently accepting a different computation.
func TestAddThenScaleRejectsTamperedProof(t *testing.T) {
	b := graph.NewBuilder()
	a := b.Const(field.Quantize(1))
	bb := b.Const(field.Quantize(2))
	c := b.Add(a, bb)
	one := b.Const(field.Quantize(1))
	c = b.Mul(c, one)
	two := b.Const(field.Quantize(2))
	c = b.Mul(c, two)

	cc, err := Compile(b, c)
	require.NoError(t, err)

	proofBytes, err := cc.Prove(zerolog.Nop())
	require.NoError(t, err)

	tampered := append([]byte(nil), proofBytes...)
	tampered[len(tampered)-1] ^= 0x01

	ok, err := cc.Run(tampered, zerolog.Nop())
	require.Error(t, err)
	require.False(t, ok)
}

// TestMatrixVectorProductRoundTrips builds A=[[1,2],[2,1]] times the
// 2-vector B=[3,4], folding the two products down to a single scalar
// output so the result flows through one Compile call, then proves and
// runs the result.
func TestMatrixVectorProductRoundTrips(t *testing.T) {
	b := graph.NewBuilder()
	lit := func(x float64) *graph.Node { return b.Const(field.Quantize(x)) }

	a := graph.Matrix{
		{lit(1), lit(2)},
		{lit(2), lit(1)},
	}
	v := graph.Matrix{
		{lit(3)},
		{lit(4)},
	}
	prod := b.MatMul(a, v)
	out := b.Add(prod[0][0], prod[1][0])

	cc, err := Compile(b, out)
	require.NoError(t, err)

	proofBytes, err := cc.Prove(zerolog.Nop())
	require.NoError(t, err)

	ok, err := cc.Run(proofBytes, zerolog.Nop())
	require.NoError(t, err)
	require.True(t, ok)
}
