// Package mkzg implements the multilinear KZG polynomial commitment scheme
// over the BLS12-381 pairing group: trusted setup tables, commitment,
// opening by iterated polynomial division, and pairing-based verification,
// for the three polynomial families the prover needs (a general bounded
// per-variable-degree multilinear polynomial, a univariate-in-each-variable
// restriction of it, and the doubled-variable form the zero-knowledge
// sumcheck masking uses).
package mkzg

import (
	"fmt"
	"strings"

	"github.com/agencyenterprise/zkgraph/field"
)

// Exp is an exponent vector: Exp{e0,...,e_{n-1}} names the monomial
// x0^e0 * x1^e1 * ... * x_{n-1}^e_{n-1}.
type Exp []int

func (e Exp) key() string {
	var sb strings.Builder
	for i, v := range e {
		if i > 0 {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	return sb.String()
}

func (e Exp) clone() Exp {
	out := make(Exp, len(e))
	copy(out, e)
	return out
}

// term is one monomial of a Poly: its exponent vector and coefficient.
type term struct {
	exp Exp
	c   field.Element
}

// Poly is a sparse multivariate polynomial over the field, keyed by the
// string encoding of its exponent vector so equal monomials collapse
// naturally under addition.
type Poly map[string]term

// NewPoly builds a Poly from parallel exponent/coefficient slices,
// dropping any term with a zero coefficient.
func NewPoly(exps []Exp, coeffs []field.Element) Poly {
	p := make(Poly, len(exps))
	for i, e := range exps {
		if coeffs[i].IsZero() {
			continue
		}
		p.set(e, coeffs[i])
	}
	return p
}

func (p Poly) set(e Exp, c field.Element) {
	if c.IsZero() {
		delete(p, e.key())
		return
	}
	p[e.key()] = term{exp: e.clone(), c: c}
}

func (p Poly) add(e Exp, c field.Element) {
	k := e.key()
	if existing, ok := p[k]; ok {
		p.set(e, existing.c.Add(c))
		return
	}
	p.set(e, c)
}

// NumVars returns the number of variables the polynomial is defined over,
// read off an arbitrary term's exponent vector (all terms share the same
// length by construction).
func (p Poly) NumVars() int {
	for _, t := range p {
		return len(t.exp)
	}
	return 0
}

// Eval evaluates p at point r by summing each monomial's contribution.
func (p Poly) Eval(r []field.Element) field.Element {
	sum := field.Zero()
	for _, t := range p {
		sum = sum.Add(t.c.Mul(monomialAt(t.exp, r)))
	}
	return sum
}

func monomialAt(e Exp, r []field.Element) field.Element {
	v := field.One()
	for i, ei := range e {
		for k := 0; k < ei; k++ {
			v = v.Mul(r[i])
		}
	}
	return v
}

// divideByLinear performs synthetic division of p, viewed as a univariate
// polynomial in variable i whose coefficients are polynomials in the
// remaining variables, by (x_i - r). It returns the quotient (a polynomial
// whose monomials have x_i's exponent reduced by one relative to p's, and
// x_i's contribution from the original p folded in via Horner's rule) and
// the remainder (p with x_i fixed to r, i.e. variable i's exponent zeroed
// out everywhere).
//
// This generalizes the classic single-variable synthetic division: grouping
// p's terms by every variable except i, each group is itself a univariate
// polynomial in x_i, divided independently.
func (p Poly) divideByLinear(i int, r field.Element) (quotient, remainder Poly) {
	groups := make(map[string][]term)
	var order []string
	for _, t := range p {
		rest := t.exp.clone()
		rest[i] = 0
		k := rest.key()
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], t)
	}

	quotient = make(Poly)
	remainder = make(Poly)
	for _, k := range order {
		terms := groups[k]
		maxDeg := 0
		for _, t := range terms {
			if t.exp[i] > maxDeg {
				maxDeg = t.exp[i]
			}
		}
		coeffs := make([]field.Element, maxDeg+1)
		for j := range coeffs {
			coeffs[j] = field.Zero()
		}
		for _, t := range terms {
			coeffs[t.exp[i]] = t.c
		}

		// Synthetic division of sum_j coeffs[j] x_i^j by (x_i - r): the
		// quotient's coefficients are a running Horner accumulation from
		// the top degree down, and the final accumulator is the remainder
		// (the value at x_i = r).
		qCoeffs := make([]field.Element, maxDeg)
		acc := field.Zero()
		for j := maxDeg; j >= 0; j-- {
			if j < maxDeg {
				qCoeffs[j] = acc
			}
			acc = coeffs[j].Add(acc.Mul(r))
		}

		var rest Exp
		for _, t := range terms {
			rest = t.exp.clone()
			rest[i] = 0
			break
		}
		for j, qc := range qCoeffs {
			if qc.IsZero() {
				continue
			}
			e := rest.clone()
			e[i] = j
			quotient.add(e, qc)
		}
		if !acc.IsZero() {
			remainder.add(rest.clone(), acc)
		}
	}
	return quotient, remainder
}
