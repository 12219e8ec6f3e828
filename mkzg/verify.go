package mkzg

import (
	"math/big"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/agencyenterprise/zkgraph/field"
)

// scaleG2 returns base scaled by scalar, as a Jacobian point so it can be
// cheaply combined with other points before a single affine conversion.
func scaleG2(base bls12381.G2Affine, scalar *big.Int) bls12381.G2Jac {
	var p bls12381.G2Jac
	p.FromAffine(&base)
	p.ScalarMultiplication(&p, scalar)
	return p
}

// subG2 returns a - b as an affine point.
func subG2(a, b bls12381.G2Jac) bls12381.G2Affine {
	var nb bls12381.G2Jac
	nb.Neg(&b)
	var diff bls12381.G2Jac
	diff.Set(&a)
	diff.AddAssign(&nb)
	var out bls12381.G2Affine
	out.FromJacobian(&diff)
	return out
}

// Verify checks that commitment opens to value at r, given the opening
// Open produced. It mirrors Open's variable-by-variable elimination: for
// each non-final variable it pairs the G1 proof against the G2 divisor
// g_{t_i} - r_i*g2, and for the final variable it re-commits the clear
// quotient in G1 itself before pairing.
func Verify(pp *PublicParams, commitment bls12381.G2Affine, r []field.Element, value field.Element, op *Opening) (bool, error) {
	n := len(r)
	if len(op.Proofs) != n-1 {
		return false, ErrInvalidDecomposition
	}

	commitJac := scaleG2(commitment, big.NewInt(1))
	valueTerm := scaleG2(pp.G2Gen, value.BigInt())
	lhsG2 := subG2(commitJac, valueTerm)

	lhs, err := bls12381.Pair([]bls12381.G1Affine{pp.G1Gen}, []bls12381.G2Affine{lhsG2})
	if err != nil {
		return false, err
	}

	g1s := make([]bls12381.G1Affine, 0, n)
	g2s := make([]bls12381.G2Affine, 0, n)
	for i := 0; i < n-1; i++ {
		divisor, err := variableDivisor(pp, n, i, r[i])
		if err != nil {
			return false, err
		}
		g1s = append(g1s, op.Proofs[i])
		g2s = append(g2s, divisor)
	}

	lastCommit, err := commitG1(pp, op.Last)
	if err != nil {
		return false, err
	}
	lastDivisor, err := variableDivisor(pp, n, n-1, r[n-1])
	if err != nil {
		return false, err
	}
	g1s = append(g1s, lastCommit)
	g2s = append(g2s, lastDivisor)

	rhs, err := bls12381.Pair(g1s, g2s)
	if err != nil {
		return false, err
	}

	return lhs.Equal(&rhs), nil
}

// variableDivisor returns g_{t_i} - r*g2 in G2, the divisor a single
// variable's elimination pairs against.
func variableDivisor(pp *PublicParams, n, i int, r field.Element) (bls12381.G2Affine, error) {
	e := make(Exp, n)
	e[i] = 1
	gti, ok := pp.G2At(e)
	if !ok {
		return bls12381.G2Affine{}, ErrMissingMonomial
	}
	gtiJac := scaleG2(gti, big.NewInt(1))
	rg := scaleG2(pp.G2Gen, r.BigInt())
	return subG2(gtiJac, rg), nil
}
