package graph

import (
	"testing"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/stretchr/testify/require"
)

// buildSample constructs (a+c)*(a-c), a circuit with both Add and Mul
// layers and edges that span more than one layer: a feeds both the sum at
// layer 1 and the difference at layer 2, and the sum waits at layer 1 for
// the top Mul at layer 3.
func buildSample(b *Builder) (*Node, *Node, *Node) {
	a := b.Const(field.Quantize(5))
	c := b.Const(field.Quantize(3))
	sum := b.Add(a, c)
	diff := b.Sub(a, c)
	out := b.Mul(sum, diff)
	return a, c, out
}

func TestCompileIsDeterministic(t *testing.T) {
	b1 := NewBuilder()
	_, _, out1 := buildSample(b1)
	circuit1, err := b1.CompileLayeredCircuit(out1)
	require.NoError(t, err)

	b2 := NewBuilder()
	_, _, out2 := buildSample(b2)
	circuit2, err := b2.CompileLayeredCircuit(out2)
	require.NoError(t, err)

	require.Equal(t, len(circuit1.Layers), len(circuit2.Layers))
	for i := range circuit1.Layers {
		require.Equal(t, circuit1.Layers[i].Size, circuit2.Layers[i].Size)
		require.Equal(t, circuit1.Layers[i].BitLength, circuit2.Layers[i].BitLength)
		for j := range circuit1.Layers[i].Gates {
			g1, g2 := circuit1.Layers[i].Gates[j], circuit2.Layers[i].Gates[j]
			require.Equal(t, g1.Type, g2.Type)
			require.Equal(t, g1.U, g2.U)
			require.Equal(t, g1.V, g2.V)
			require.True(t, g1.C.Equal(g2.C))
		}
	}
}

func TestCompileEvaluatesToExpectedOutput(t *testing.T) {
	b := NewBuilder()
	_, _, out := buildSample(b)
	circuit, err := b.CompileLayeredCircuit(out)
	require.NoError(t, err)

	got := Output(circuit)
	// GateMul wires are raw field products, not qmul-rescaled: Evaluate
	// must agree with the same function the sumcheck bookkeeping tables
	// assume, field.Element.Mul.
	want := field.QAdd(field.Quantize(5), field.Quantize(3)).Mul(field.Quantize(5).Sub(field.Quantize(3)))
	require.True(t, got.Equal(want))
}

func TestLayerSizesArePowersOfTwoAndNonDecreasing(t *testing.T) {
	b := NewBuilder()
	_, _, out := buildSample(b)
	circuit, err := b.CompileLayeredCircuit(out)
	require.NoError(t, err)

	var prev uint32 = 1
	for _, l := range circuit.Layers {
		require.Equal(t, l.Size, l.Size&-l.Size, "layer size %d is not a power of two", l.Size)
		require.GreaterOrEqual(t, l.Size, prev)
		require.Equal(t, int(l.Size), len(l.Gates))
		prev = l.Size
	}
}

func TestBitLengthFloorsAtOne(t *testing.T) {
	require.Equal(t, uint8(1), bitLength(1))
	require.Equal(t, uint8(1), bitLength(2))
	require.Equal(t, uint8(2), bitLength(4))
	require.Equal(t, uint8(3), bitLength(8))
}

func TestFloatingInputIsPromotedToLayerZero(t *testing.T) {
	b := NewBuilder()
	x := b.Const(field.Quantize(2))
	y := b.Const(field.Quantize(3))
	z := b.Const(field.Quantize(4))

	xy := b.Mul(x, y)   // x, y land at layer 0, xy at layer 1
	out := b.Mul(xy, z) // z is first used here, at layer 1 -- floating

	circuit, err := b.CompileLayeredCircuit(out)
	require.NoError(t, err)
	require.True(t, circuit.Layers[0].Gates[0].Type == GateInput || circuit.Layers[0].Gates[1].Type == GateInput)

	got := Output(circuit)
	want := field.Quantize(2).Mul(field.Quantize(3)).Mul(field.Quantize(4))
	require.True(t, got.Equal(want))
}

func TestMatMulCircuitMatchesScalarProduct(t *testing.T) {
	b := NewBuilder()
	lit := func(x float64) *Node { return b.Const(field.Quantize(x)) }

	a := Matrix{
		{lit(1), lit(2)},
		{lit(3), lit(4)},
	}
	m := Matrix{
		{lit(5), lit(6)},
		{lit(7), lit(8)},
	}
	prod := b.MatMul(a, m)

	// Fold the 2x2 product down to a single scalar so it can flow through a
	// single CompileLayeredCircuit call: sum of all four entries.
	sum := b.Add(b.Add(prod[0][0], prod[0][1]), b.Add(prod[1][0], prod[1][1]))
	circuit, err := b.CompileLayeredCircuit(sum)
	require.NoError(t, err)

	// Mul gates are raw field products (see Evaluate), so a product's
	// scale doubles relative to its inputs; compare against the same raw
	// arithmetic rather than dequantizing, which would only undo a single
	// multiplication's scale.
	q := func(x float64) field.Element { return field.Quantize(x) }
	want := q(1).Mul(q(5)).Add(q(2).Mul(q(7))).
		Add(q(1).Mul(q(6)).Add(q(2).Mul(q(8)))).
		Add(q(3).Mul(q(5)).Add(q(4).Mul(q(7)))).
		Add(q(3).Mul(q(6)).Add(q(4).Mul(q(8))))
	require.True(t, Output(circuit).Equal(want))
}

// dequantizeAfterOneMul undoes both the input's fixed-point scale and the
// extra factor of 2^PrecisionBits a single raw Mul gate leaves behind (see
// Evaluate's GateMul case): Relu/Tanh/Exp/Log all desugar to one Mul gate
// between an input and a synthesized ratio constant.
func dequantizeAfterOneMul(e field.Element) float64 {
	return field.Dequantize(e) / float64(uint64(1)<<field.PrecisionBits)
}

func TestReluZeroesNegativeInputs(t *testing.T) {
	b := NewBuilder()
	neg := b.Const(field.Quantize(-4))
	out := b.Relu(neg)
	circuit, err := b.CompileLayeredCircuit(out)
	require.NoError(t, err)
	require.InDelta(t, 0.0, dequantizeAfterOneMul(Output(circuit)), 1e-2)

	b2 := NewBuilder()
	pos := b2.Const(field.Quantize(4))
	out2 := b2.Relu(pos)
	circuit2, err := b2.CompileLayeredCircuit(out2)
	require.NoError(t, err)
	require.InDelta(t, 4.0, dequantizeAfterOneMul(Output(circuit2)), 1e-2)
}

func TestCircuitTooLargeIsReported(t *testing.T) {
	sizes, err := computeSizesFromCounts([]uint32{maxLayerSize + 1})
	require.Nil(t, sizes)
	require.ErrorIs(t, err, ErrCircuitTooLarge)
}
