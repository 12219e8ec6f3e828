package mkzg

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"

	"github.com/agencyenterprise/zkgraph/field"
)

// Opening is the result of Open: the evaluation, one G1 commitment per
// eliminated variable but the last, and the final quotient kept in the
// clear (Verify re-commits it itself before pairing).
type Opening struct {
	Value  field.Element
	Proofs []bls12381.G1Affine
	Last   Poly
}

// Open evaluates p at r and decomposes p(x) - p(r) by iterated synthetic
// division, one variable at a time: at each step the quotient with respect
// to variable i is committed in G1 and the remainder (p with variables
// 0..i fixed to r) carries forward. The last variable's quotient is
// returned uncommitted, in the clear, since Verify needs its coefficients
// directly to re-derive the final pairing term.
func Open(pp *PublicParams, p Poly, r []field.Element) (*Opening, error) {
	n := len(r)
	cur := p
	proofs := make([]bls12381.G1Affine, 0, n-1)
	for i := 0; i < n-1; i++ {
		q, rem := cur.divideByLinear(i, r[i])
		c, err := commitG1(pp, q)
		if err != nil {
			return nil, err
		}
		proofs = append(proofs, c)
		cur = rem
	}

	last, rem := cur.divideByLinear(n-1, r[n-1])
	if len(rem) > 1 {
		return nil, ErrInvalidDecomposition
	}
	value := field.Zero()
	for _, t := range rem {
		value = t.c
	}

	return &Opening{Value: value, Proofs: proofs, Last: last}, nil
}
