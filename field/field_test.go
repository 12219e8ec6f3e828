package field

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQuantizeRoundTrip(t *testing.T) {
	cases := []float64{0, 1, -1, 3.5, -3.5, 0.00001, 1234.5678, -9999.25}
	for _, x := range cases {
		got := Dequantize(Quantize(x))
		require.InDelta(t, x, got, 1.0/float64(uint64(1)<<PrecisionBits))
	}
}

func TestQAddApproximatesRealAddition(t *testing.T) {
	a, b := 12.25, -7.5
	got := Dequantize(QAdd(Quantize(a), Quantize(b)))
	require.InDelta(t, a+b, got, 1e-3)
}

func TestQMulApproximatesRealMultiplication(t *testing.T) {
	pairs := [][2]float64{{2, 3}, {-2, 3}, {2, -3}, {-2, -3}, {0.5, 0.5}, {0, 10}}
	for _, p := range pairs {
		got := Dequantize(QMul(Quantize(p[0]), Quantize(p[1])))
		require.InDelta(t, p[0]*p[1], got, 1e-2)
	}
}

func TestQDivByZero(t *testing.T) {
	_, err := QDiv(Quantize(1), Quantize(0))
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestQDiv(t *testing.T) {
	got, err := QDiv(Quantize(10), Quantize(4))
	require.NoError(t, err)
	require.InDelta(t, 2.5, Dequantize(got), 1e-2)
}

func TestQExp(t *testing.T) {
	got := QExp(Quantize(2), 5)
	require.InDelta(t, 32.0, Dequantize(got), 1e-1)

	identity := QExp(Quantize(7), 0)
	require.InDelta(t, 1.0, Dequantize(identity), 1e-6)
}

func TestComparisonsMatchDequantizedOrder(t *testing.T) {
	values := []float64{-5, -1.5, 0, 0.5, 3, 100}
	for _, x := range values {
		for _, y := range values {
			a, b := Quantize(x), Quantize(y)
			require.Equal(t, x < y, QLT(a, b))
			require.Equal(t, x > y, QGT(a, b))
			require.Equal(t, x <= y, QLE(a, b))
			require.Equal(t, x >= y, QGE(a, b))
		}
	}
}

func TestInverse(t *testing.T) {
	a := Quantize(3.0)
	inv, err := a.Inverse()
	require.NoError(t, err)
	require.True(t, a.Mul(inv).Equal(One()))

	_, err = Zero().Inverse()
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestBytesRoundTrip(t *testing.T) {
	a := Quantize(-42.125)
	b := FromBytes(func() []byte { bs := a.Bytes(); return bs[:] }())
	require.True(t, a.Equal(b))
}

func TestQuantizeHandlesNaNFree(t *testing.T) {
	require.False(t, math.IsNaN(Dequantize(Quantize(0))))
}
