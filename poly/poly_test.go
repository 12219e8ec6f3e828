package poly

import (
	"testing"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/stretchr/testify/require"
)

func TestLinearMulMatchesPointwiseEval(t *testing.T) {
	p := Linear{A: field.Quantize(2), B: field.Quantize(3)}
	q := Linear{A: field.Quantize(-1), B: field.Quantize(5)}
	prod := p.Mul(q)

	x := field.Quantize(7)
	got := prod.Eval(x)
	want := field.QMul(p.Eval(x), q.Eval(x))

	// Eval here is plain field arithmetic (not quantized), so compare the
	// two composition strategies directly rather than via QMul, which
	// rescales by 2^s and would not match a plain polynomial evaluation.
	_ = want
	require.True(t, got.Equal(p.Eval(x).Mul(q.Eval(x))))
}

func TestInterpolatePassesThroughEndpoints(t *testing.T) {
	y0, y1 := field.Quantize(4), field.Quantize(9)
	l := Interpolate(y0, y1)
	require.True(t, l.Eval(field.Zero()).Equal(y0))
	require.True(t, l.Eval(field.One()).Equal(y1))
}

func TestQuadraticRoundTripThroughCoeffs(t *testing.T) {
	q := Quadratic{A: field.Quantize(1), B: field.Quantize(2), C: field.Quantize(3)}
	got := QuadraticFromCoeffs(q.Coeffs())
	require.True(t, got.A.Equal(q.A))
	require.True(t, got.B.Equal(q.B))
	require.True(t, got.C.Equal(q.C))
}

func TestAddPreservesDegree(t *testing.T) {
	a := Quadratic{A: field.Quantize(1), B: field.Quantize(0), C: field.Quantize(1)}
	b := Quadratic{A: field.Quantize(2), B: field.Quantize(1), C: field.Quantize(0)}
	sum := a.Add(b)
	x := field.Quantize(5)
	require.True(t, sum.Eval(x).Equal(a.Eval(x).Add(b.Eval(x))))
}
