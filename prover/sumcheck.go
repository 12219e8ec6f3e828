package prover

import (
	"fmt"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/graph"
	"github.com/agencyenterprise/zkgraph/poly"
	"github.com/agencyenterprise/zkgraph/transcript"
	"github.com/rs/zerolog"
)

// sumQuadraticProduct sums, over every adjacent pair of a and b, the degree-2
// polynomial obtained by interpolating each pair to a line and multiplying
// the two lines together: the shape of every phase-1/phase-2 round message's
// "coefficient times witness" half.
func sumQuadraticProduct(a, b []field.Element) poly.Quadratic {
	acc := poly.Quadratic{}
	half := len(a) / 2
	for i := 0; i < half; i++ {
		acc = acc.Add(poly.Interpolate(a[2*i], a[2*i+1]).Mul(poly.Interpolate(b[2*i], b[2*i+1])))
	}
	return acc
}

// sumLinear sums, over every adjacent pair of a, the line interpolating that
// pair: the shape of a round message's purely additive half.
func sumLinear(a []field.Element) poly.Linear {
	acc := poly.Linear{}
	half := len(a) / 2
	for i := 0; i < half; i++ {
		acc = acc.Add(poly.Interpolate(a[2*i], a[2*i+1]))
	}
	return acc
}

func scaleLinear(l poly.Linear, s field.Element) poly.Linear {
	return poly.Linear{A: s.Mul(l.A), B: s.Mul(l.B)}
}

// runSumcheckRounds drives `rounds` rounds of a degree-2 sum-check over four
// same-length (2^rounds) tables: P and V multiply together to form a round
// message's quadratic half, Q is an additive term, and mask is the
// rho-scaled zero-knowledge blind folded in alongside Q. It appends each
// round's message and draws each round's challenge on tr, and returns the
// single entry every table folds down to, the challenges drawn (low bit
// first, matching graph.FoldOneBit/EqMLE's convention), and an error if the
// running target ever disagrees with the message just built — which can
// only mean the tables passed in don't actually sum to the claimed target.
func runSumcheckRounds(tr *transcript.ProverTranscript, log zerolog.Logger, label string, rounds int, P, V, Q, mask []field.Element, rho, target field.Element) (finalP, finalV, finalQ, finalMask field.Element, challenges []field.Element, err error) {
	challenges = make([]field.Element, rounds)
	for k := 0; k < rounds; k++ {
		log.Debug().Str("round", label).Int("k", k).Msg("sumcheck round")
		quad := sumQuadraticProduct(P, V)
		lin := sumLinear(Q).Add(scaleLinear(sumLinear(mask), rho))
		roundPoly := quad.Add(poly.Quadratic{C: lin.B, B: lin.A})

		if !roundPoly.Eval(field.Zero()).Add(roundPoly.Eval(field.One())).Equal(target) {
			return field.Element{}, field.Element{}, field.Element{}, field.Element{}, nil,
				fmt.Errorf("%w: %s round %d: p(0)+p(1) disagrees with the running target", ErrProverLogic, label, k)
		}

		roundLabel := fmt.Sprintf("%s#%d", label, k)
		tr.Append(roundLabel, roundPoly.Coeffs()...)
		r := tr.Challenge(roundLabel + "_r")
		challenges[k] = r

		target = roundPoly.Eval(r)
		P = graph.FoldOneBit(P, r)
		V = graph.FoldOneBit(V, r)
		Q = graph.FoldOneBit(Q, r)
		mask = graph.FoldOneBit(mask, r)
	}
	return P[0], V[0], Q[0], mask[0], challenges, nil
}
