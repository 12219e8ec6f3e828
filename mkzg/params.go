package mkzg

import (
	"github.com/agencyenterprise/zkgraph/field"
	"github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Family selects which set of exponent vectors a PublicParams table covers.
type Family int

const (
	// General tabulates every exponent vector in {0,...,d}^n.
	General Family = iota
	// UnivariatePerVar tabulates only monomials that use exactly one
	// variable (degree 0 in every other), plus the constant.
	UnivariatePerVar
	// ZKSumcheck tabulates t_i and t_i^2 as separate entries for each of
	// n "logical" variables, i.e. 2n real table variables, matching the
	// a0 + sum a_i x_i + a_i' x_i^2 shape the sumcheck masking polynomial
	// takes.
	ZKSumcheck
)

// maxTableSize is the dense-family cap from the specification: 2^14
// entries.
const maxTableSize = 1 << 14

// PublicParams is the trusted setup output: for every exponent vector e in
// the family's table, the pair (g1^{t^e}, g2^{t^e}).
type PublicParams struct {
	Family  Family
	NumVars int
	Degree  int

	G1Gen bls12381.G1Affine
	G2Gen bls12381.G2Affine

	g1 map[string]bls12381.G1Affine
	g2 map[string]bls12381.G2Affine
	// exponents is the canonical, sorted table domain, kept alongside the
	// maps so Setup's persistence layer (package setup) can iterate it in
	// a fixed order.
	exponents []Exp
}

// Exponents returns the table's domain in its canonical order.
func (pp *PublicParams) Exponents() []Exp { return pp.exponents }

// G1At and G2At look up a table entry, reporting ok=false if e is outside
// the table (the condition Commit reports as ErrMissingMonomial).
func (pp *PublicParams) G1At(e Exp) (bls12381.G1Affine, bool) {
	v, ok := pp.g1[e.key()]
	return v, ok
}

func (pp *PublicParams) G2At(e Exp) (bls12381.G2Affine, bool) {
	v, ok := pp.g2[e.key()]
	return v, ok
}

// familySize reports a family's table size without enumerating it, so
// Setup can reject an oversized request before paying to build it.
func familySize(family Family, n, d int) int {
	switch family {
	case UnivariatePerVar:
		return 1 + n*d
	case ZKSumcheck:
		return 1 + 2*n
	default: // General
		size := 1
		for i := 0; i < n; i++ {
			size *= d + 1
			if size > maxTableSize {
				return size // overflowed the cap; exact value doesn't matter past this point
			}
		}
		return size
	}
}

// familyExponents enumerates the exponent vectors a family covers for n
// variables of per-variable degree bound d.
func familyExponents(family Family, n, d int) []Exp {
	switch family {
	case UnivariatePerVar:
		exps := []Exp{make(Exp, n)} // the all-zero constant term
		for i := 0; i < n; i++ {
			for deg := 1; deg <= d; deg++ {
				e := make(Exp, n)
				e[i] = deg
				exps = append(exps, e)
			}
		}
		return exps
	case ZKSumcheck:
		// 2n real variables: t_i and t_i^2 are tabulated as independent
		// degree-1 table entries, so the prover can treat a_i*x_i +
		// a_i'*x_i^2 as linear in 2n logical variables.
		exps := []Exp{make(Exp, 2*n)}
		for i := 0; i < 2*n; i++ {
			e := make(Exp, 2*n)
			e[i] = 1
			exps = append(exps, e)
		}
		return exps
	default: // General
		var exps []Exp
		var rec func(prefix Exp)
		rec = func(prefix Exp) {
			if len(prefix) == n {
				exps = append(exps, append(Exp{}, prefix...))
				return
			}
			for deg := 0; deg <= d; deg++ {
				rec(append(prefix, deg))
			}
		}
		rec(Exp{})
		return exps
	}
}

// TableExponents returns the exponent vectors a (family, n, d) table would
// cover, or ErrUnsupportedSize if that table would exceed the 2^14 cap.
// Exposed so callers that want to generate the table themselves (package
// setup's parallel ceremony) don't have to duplicate the family layout.
func TableExponents(family Family, n, d int) ([]Exp, error) {
	if familySize(family, n, d) > maxTableSize {
		return nil, ErrUnsupportedSize
	}
	return familyExponents(family, n, d), nil
}

// Generators returns the BLS12-381 G1 and G2 generators every PublicParams
// table is built from.
func Generators() (bls12381.G1Affine, bls12381.G2Affine) {
	_, _, g1Gen, g2Gen := bls12381.Generators()
	return g1Gen, g2Gen
}

// ComputeEntry returns the table entry (g1^{t^e}, g2^{t^e}) for a single
// exponent vector, the unit of work package setup's worker pool fans out
// over a table's exponent list.
func ComputeEntry(g1Gen bls12381.G1Affine, g2Gen bls12381.G2Affine, e Exp, t []field.Element) (bls12381.G1Affine, bls12381.G2Affine) {
	scalar := monomialAt(e, t).BigInt()

	var g1p bls12381.G1Affine
	g1p.ScalarMultiplication(&g1Gen, scalar)

	var g2p bls12381.G2Affine
	g2p.ScalarMultiplication(&g2Gen, scalar)

	return g1p, g2p
}

// FromTable assembles a PublicParams directly from a precomputed table,
// parallel to exps. It's the assembly step package setup's worker pool
// calls after fanning ComputeEntry out across exps in chunks.
func FromTable(family Family, n, d int, g1Gen bls12381.G1Affine, g2Gen bls12381.G2Affine, exps []Exp, g1s []bls12381.G1Affine, g2s []bls12381.G2Affine) *PublicParams {
	pp := &PublicParams{
		Family:    family,
		NumVars:   n,
		Degree:    d,
		G1Gen:     g1Gen,
		G2Gen:     g2Gen,
		g1:        make(map[string]bls12381.G1Affine, len(exps)),
		g2:        make(map[string]bls12381.G2Affine, len(exps)),
		exponents: exps,
	}
	for i, e := range exps {
		pp.g1[e.key()] = g1s[i]
		pp.g2[e.key()] = g2s[i]
	}
	return pp
}

// Setup builds a PublicParams table from secret exponent values t (length n
// for General/UnivariatePerVar, 2n for ZKSumcheck, where the ZKSumcheck
// caller passes t_i followed by t_i^2 for each i). It fails with
// ErrUnsupportedSize if the resulting table would exceed 2^14 entries.
// It computes every entry sequentially; for large dense tables see package
// setup's parallel ceremony built on ComputeEntry and FromTable.
func Setup(family Family, n, d int, t []field.Element) (*PublicParams, error) {
	exps, err := TableExponents(family, n, d)
	if err != nil {
		return nil, err
	}

	g1Gen, g2Gen := Generators()
	g1s := make([]bls12381.G1Affine, len(exps))
	g2s := make([]bls12381.G2Affine, len(exps))
	for i, e := range exps {
		g1s[i], g2s[i] = ComputeEntry(g1Gen, g2Gen, e, t)
	}
	return FromTable(family, n, d, g1Gen, g2Gen, exps, g1s, g2s), nil
}
