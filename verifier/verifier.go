package verifier

import (
	"bytes"
	"fmt"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/graph"
	"github.com/agencyenterprise/zkgraph/poly"
	"github.com/agencyenterprise/zkgraph/prover"
	"github.com/agencyenterprise/zkgraph/transcript"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"
)

// layerResult mirrors prover's internal type: one layer's sum-check
// produces claims about the layer below at two points.
type layerResult struct {
	Ru, Rv []field.Element
	Vu, Vv field.Element
}

// Verify checks proof against c, the same compiled circuit (including its
// input-layer constants) the prover ran against. It returns nil only if
// every sum-check round, mask commitment, and final wiring check holds and
// the transcript's record queue is fully consumed. log receives one
// structured event per layer and per sum-check round replayed; pass
// zerolog.Nop() for silent operation.
func Verify(c *graph.LayeredCircuit, proof *prover.Proof, log zerolog.Logger) error {
	tr := transcript.NewVerifierTranscript(graph.Domain(c), proof.Log)

	outChunks, err := tr.NextElements("output")
	if err != nil {
		return fail(-1, "output", err)
	}
	if len(outChunks) != 1 || !outChunks[0].Equal(proof.Output) {
		return fail(-1, "output", fmt.Errorf("output record disagreed with proof.Output"))
	}
	log.Info().Int("layers", len(c.Layers)).Str("output", proof.Output.String()).Msg("verifying")

	top := len(c.Layers) - 1
	topBits := int(c.Layers[top].BitLength)
	zero := make([]field.Element, topBits)
	r0, r1 := zero, zero
	alpha, beta := field.One(), field.Zero()
	claim := proof.Output

	var last layerResult
	for i := top; i >= 1; i-- {
		res, err := verifyLayer(tr, log, c, i, r0, r1, alpha, beta, claim)
		if err != nil {
			return err
		}
		last = res
		r0, r1 = res.Ru, res.Rv
		if i > 1 {
			alpha = tr.Challenge(fmt.Sprintf("alpha#%d", i-1))
			beta = tr.Challenge(fmt.Sprintf("beta#%d", i-1))
			claim = alpha.Mul(res.Vu).Add(beta.Mul(res.Vv))
		}
	}

	inputs := inputLayerValues(c)
	actualVu := graph.EvalMLE(inputs, last.Ru)
	actualVv := graph.EvalMLE(inputs, last.Rv)
	if !actualVu.Equal(last.Vu) || !actualVv.Equal(last.Vv) {
		return fail(0, "input", fmt.Errorf("input layer disagreed with the claim carried down from layer 1"))
	}

	if !tr.Done() {
		return fail(-1, "transcript", fmt.Errorf("proof has unconsumed transcript records"))
	}
	log.Info().Msg("proof accepted")
	return nil
}

// inputLayerValues reads layer 0's wire values directly off the compiled
// circuit: an input gate's value is its constant C, no evaluation needed.
func inputLayerValues(c *graph.LayeredCircuit) []field.Element {
	layer := c.Layers[0]
	vals := make([]field.Element, layer.Size)
	for j, g := range layer.Gates {
		vals[j] = g.C
	}
	return vals
}

// verifyLayer replays one layer's two-phase sum-check, mirroring
// prover.proveLayer step for step but reading every polynomial and scalar
// off the transcript instead of computing it, and checking the wiring
// identities that only the verifier needs to check.
func verifyLayer(tr *transcript.VerifierTranscript, log zerolog.Logger, c *graph.LayeredCircuit, layerIdx int, r0, r1 []field.Element, alpha, beta, claim field.Element) (layerResult, error) {
	log.Debug().Int("layer", layerIdx).Msg("replaying layer")
	layer := c.Layers[layerIdx]
	belowLayer := c.Layers[layerIdx-1]
	belowSize := int(belowLayer.Size)
	belowBits := int(belowLayer.BitLength)

	zWeight := graph.BuildZWeights(layer.Size, int(layer.BitLength), r0, r1, alpha, beta)
	phase1Target := claim.Sub(c.ConstMLE(layerIdx, zWeight))

	commitChunks, err := tr.Next(fmt.Sprintf("mask_commitment#%d", layerIdx))
	if err != nil {
		return layerResult{}, fail(layerIdx, "mask_commitment", err)
	}
	if len(commitChunks) != 1 {
		return layerResult{}, fail(layerIdx, "mask_commitment", fmt.Errorf("malformed mask commitment record"))
	}
	commitment := commitChunks[0]
	rho := tr.Challenge(fmt.Sprintf("rho#%d", layerIdx))

	s1, rx, err := replayRounds(tr, log, fmt.Sprintf("phase_1#%d", layerIdx), belowBits, phase1Target)
	if err != nil {
		return layerResult{}, fail(layerIdx, "phase_1", err)
	}

	vuChunks, err := tr.NextElements(fmt.Sprintf("v_u#%d", layerIdx))
	if err != nil {
		return layerResult{}, fail(layerIdx, "v_u", err)
	}
	if len(vuChunks) != 1 {
		return layerResult{}, fail(layerIdx, "v_u", fmt.Errorf("malformed v_u record"))
	}
	vu := vuChunks[0]

	drelay := vu.Mul(c.AddXSum(layerIdx, zWeight, rx))
	phase2Target := s1.Sub(drelay).Sub(vu.Mul(c.RelayMLE(layerIdx, zWeight, rx)))

	s2, ry, err := replayRounds(tr, log, fmt.Sprintf("phase_2#%d", layerIdx), belowBits, phase2Target)
	if err != nil {
		return layerResult{}, fail(layerIdx, "phase_2", err)
	}

	vvChunks, err := tr.NextElements(fmt.Sprintf("v_v#%d", layerIdx))
	if err != nil {
		return layerResult{}, fail(layerIdx, "v_v", err)
	}
	if len(vvChunks) != 1 {
		return layerResult{}, fail(layerIdx, "v_v", fmt.Errorf("malformed v_v record"))
	}
	vv := vvChunks[0]

	seedChunks, err := tr.Next(fmt.Sprintf("mask_seed#%d", layerIdx))
	if err != nil {
		return layerResult{}, fail(layerIdx, "mask_seed", err)
	}
	if len(seedChunks) != 1 {
		return layerResult{}, fail(layerIdx, "mask_seed", fmt.Errorf("malformed mask seed record"))
	}
	seed := seedChunks[0]
	gotCommitment := sha3.Sum256(seed)
	if !bytes.Equal(gotCommitment[:], commitment) {
		return layerResult{}, fail(layerIdx, "mask_seed", fmt.Errorf("revealed mask seed does not hash to its earlier commitment"))
	}

	mask := graph.DeriveMaskTable(seed, belowSize*belowSize)
	// mask is flat-indexed x*belowSize+y (see prover.proveLayer): y
	// occupies the low bits, so it must come first here too.
	point := append(append([]field.Element(nil), ry...), rx...)
	maskVal := graph.EvalMLE(mask, point)

	expectedCoeff := c.AddMLE(layerIdx, zWeight, rx, ry).Add(vu.Mul(c.MultMLE(layerIdx, zWeight, rx, ry)))
	expectedFinal := expectedCoeff.Mul(vv).Add(rho.Mul(maskVal))
	if !s2.Equal(expectedFinal) {
		return layerResult{}, fail(layerIdx, "final", fmt.Errorf("final round disagreed with the wiring predicate"))
	}

	log.Debug().Int("layer", layerIdx).Msg("layer replayed")
	return layerResult{Ru: rx, Rv: ry, Vu: vu, Vv: vv}, nil
}

// replayRounds replays `rounds` sum-check rounds under label, checking
// each round's message against the running target and returning the
// target's final value plus the challenges drawn, in the same
// low-bit-first order the prover folded its tables in.
func replayRounds(tr *transcript.VerifierTranscript, log zerolog.Logger, label string, rounds int, target field.Element) (field.Element, []field.Element, error) {
	challenges := make([]field.Element, rounds)
	for k := 0; k < rounds; k++ {
		log.Debug().Str("round", label).Int("k", k).Msg("sumcheck round")
		roundLabel := fmt.Sprintf("%s#%d", label, k)
		coeffs, err := tr.NextElements(roundLabel)
		if err != nil {
			return field.Element{}, nil, err
		}
		if len(coeffs) != 3 {
			return field.Element{}, nil, fmt.Errorf("%s: expected a degree-2 round message, got %d coefficients", roundLabel, len(coeffs))
		}
		q := poly.QuadraticFromCoeffs(coeffs)
		if !q.Eval(field.Zero()).Add(q.Eval(field.One())).Equal(target) {
			return field.Element{}, nil, fmt.Errorf("%s: p(0)+p(1) disagreed with the running target", roundLabel)
		}
		r := tr.Challenge(roundLabel + "_r")
		challenges[k] = r
		target = q.Eval(r)
	}
	return target, challenges, nil
}
