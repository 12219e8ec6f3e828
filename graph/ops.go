package graph

import (
	"math"

	"github.com/agencyenterprise/zkgraph/field"
)

// Add returns a node computing l + r.
func (b *Builder) Add(l, r *Node) *Node { return b.combine(OpAdd, l, r) }

// Mul returns a node computing l * r.
func (b *Builder) Mul(l, r *Node) *Node { return b.combine(OpMul, l, r) }

// Neg returns a node computing -x, as a multiplication by the constant -1
// so every node keeps exactly two inputs of total degree at most 2. The
// constant is the unscaled field element -1, so the Mul gate's raw product
// is exactly -x; the node's quantized value is set to -x directly.
func (b *Builder) Neg(x *Node) *Node {
	n := b.Mul(x, b.Const(field.One().Neg()))
	n.value = x.value.Neg()
	return n
}

// Sub returns a node computing l - r.
func (b *Builder) Sub(l, r *Node) *Node { return b.Add(l, b.Neg(r)) }

// Div returns a node computing l / r. Division is not itself a gate type:
// r's reciprocal is a concrete value known at build time (r already holds a
// computed activation, not a prover-chosen unknown), so it is folded into a
// synthesized constant and the division becomes a multiplication.
func (b *Builder) Div(l, r *Node) (*Node, error) {
	inv, err := field.QDiv(field.Quantize(1), r.value)
	if err != nil {
		return nil, err
	}
	return b.Mul(l, b.Const(inv)), nil
}

// Pow raises x to the non-negative integer power k by repeated
// multiplication, desugaring integer exponentiation into a chain of Mul
// gates rather than introducing a dedicated power gate.
func (b *Builder) Pow(x *Node, k uint) *Node {
	if k == 0 {
		return b.Const(field.Quantize(1))
	}
	result := x
	for i := uint(1); i < k; i++ {
		result = b.Mul(result, x)
	}
	return result
}

// round5 rounds to five decimal places, the precision the non-linear
// rewrites below commit to so two evaluations of the same graph agree bit
// for bit.
func round5(x float64) float64 {
	return math.Round(x*1e5) / 1e5
}

// nonlinear rewrites y = f(x) as x * (f(x)/x), a Mul gate whose second
// operand is a synthesized constant carrying the transcendental work. At
// x == 0 the ratio is taken as 0, so the gate outputs 0 whatever f(0) is;
// tanh and relu are 0 there, and Exp handles its own x == 0 case (see Exp
// below).
func (b *Builder) nonlinear(x *Node, f func(float64) float64) *Node {
	xv := field.Dequantize(x.value)
	var ratio float64
	if xv == 0 {
		ratio = 0
	} else {
		ratio = round5(f(xv)) / xv
	}
	t := b.Const(field.Quantize(round5(ratio)))
	return b.Mul(x, t)
}

// Tanh returns a node computing tanh(x).
func (b *Builder) Tanh(x *Node) *Node { return b.nonlinear(x, math.Tanh) }

// Log returns a node computing ln(x).
func (b *Builder) Log(x *Node) *Node { return b.nonlinear(x, math.Log) }

// Relu returns a node computing max(x, 0).
func (b *Builder) Relu(x *Node) *Node {
	return b.nonlinear(x, func(v float64) float64 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Exp returns a node computing e^x. Unlike Tanh and Relu, exp(0) = 1 != 0,
// so the x == 0 case can't use the x * (f(x)/x) rewrite (a 0/0 division);
// it is instead represented as x*0 + 1, which keeps the result wired to x
// through two ordinary gates.
func (b *Builder) Exp(x *Node) *Node {
	xv := field.Dequantize(x.value)
	if xv == 0 {
		zeroed := b.Mul(x, b.Const(field.Quantize(0)))
		return b.Add(zeroed, b.Const(field.Quantize(1)))
	}
	return b.nonlinear(x, math.Exp)
}
