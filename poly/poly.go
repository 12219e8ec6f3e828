// Package poly implements the small, fixed-degree univariate polynomials
// that carry sumcheck round messages: Linear and Quadratic, each dense in
// its coefficients and evaluated by Horner's scheme.
package poly

import "github.com/agencyenterprise/zkgraph/field"

// Linear is a*x + b.
type Linear struct {
	A, B field.Element
}

// Eval returns a*x + b.
func (l Linear) Eval(x field.Element) field.Element {
	return l.A.Mul(x).Add(l.B)
}

// Coeffs returns the coefficients in ascending degree order: [b, a].
func (l Linear) Coeffs() []field.Element { return []field.Element{l.B, l.A} }

// Add returns the sum of two Linear polynomials.
func (l Linear) Add(o Linear) Linear {
	return Linear{A: l.A.Add(o.A), B: l.B.Add(o.B)}
}

// Mul multiplies two Linear polynomials into a Quadratic:
// (a1 x + b1)(a2 x + b2) = a1 a2 x^2 + (a1 b2 + b1 a2) x + b1 b2.
func (l Linear) Mul(o Linear) Quadratic {
	return Quadratic{
		A: l.A.Mul(o.A),
		B: l.A.Mul(o.B).Add(l.B.Mul(o.A)),
		C: l.B.Mul(o.B),
	}
}

// Interpolate returns the unique Linear polynomial through (0, y0) and
// (1, y1): L(x) = (y1-y0)*x + y0. This is the only interpolation needed
// by the sumcheck prover, whose per-round messages are linear in the
// newly-bound bit.
func Interpolate(y0, y1 field.Element) Linear {
	return Linear{A: y1.Sub(y0), B: y0}
}

// Quadratic is a*x^2 + b*x + c.
type Quadratic struct {
	A, B, C field.Element
}

func (q Quadratic) Eval(x field.Element) field.Element {
	return q.A.Mul(x).Add(q.B).Mul(x).Add(q.C)
}

func (q Quadratic) Coeffs() []field.Element { return []field.Element{q.C, q.B, q.A} }

func (q Quadratic) Add(o Quadratic) Quadratic {
	return Quadratic{A: q.A.Add(o.A), B: q.B.Add(o.B), C: q.C.Add(o.C)}
}

// QuadraticFromCoeffs rebuilds a Quadratic from its ascending-order coefficient
// list, as produced by Coeffs and consumed when decoding a transcript
// message of length 3: the degree every phase-1/phase-2 sumcheck round
// message takes in this implementation.
func QuadraticFromCoeffs(c []field.Element) Quadratic {
	return Quadratic{C: c[0], B: c[1], A: c[2]}
}
