package mkzg

import (
	"fmt"

	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
)

// Commit returns C(f) = sum_m c_m * g2^{t^exp(m)}, summed in G2 over f's
// nonzero monomials.
func Commit(pp *PublicParams, p Poly) (bls12381.G2Affine, error) {
	var acc bls12381.G2Jac
	for _, t := range p {
		base, ok := pp.G2At(t.exp)
		if !ok {
			return bls12381.G2Affine{}, fmt.Errorf("%w: %v", ErrMissingMonomial, t.exp)
		}
		var term bls12381.G2Jac
		term.FromAffine(&base)
		term.ScalarMultiplication(&term, t.c.BigInt())
		acc.AddAssign(&term)
	}
	var out bls12381.G2Affine
	out.FromJacobian(&acc)
	return out, nil
}

// commitG1 is Commit's G1 counterpart, used for the opening proofs and for
// the final quotient, which Verify re-commits in G1 from its clear
// coefficients.
func commitG1(pp *PublicParams, p Poly) (bls12381.G1Affine, error) {
	var acc bls12381.G1Jac
	for _, t := range p {
		base, ok := pp.G1At(t.exp)
		if !ok {
			return bls12381.G1Affine{}, fmt.Errorf("%w: %v", ErrMissingMonomial, t.exp)
		}
		var term bls12381.G1Jac
		term.FromAffine(&base)
		term.ScalarMultiplication(&term, t.c.BigInt())
		acc.AddAssign(&term)
	}
	var out bls12381.G1Affine
	out.FromJacobian(&acc)
	return out, nil
}
