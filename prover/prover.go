package prover

import (
	"crypto/rand"
	"fmt"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/graph"
	"github.com/agencyenterprise/zkgraph/transcript"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/sha3"
)

// Proof is everything a verifier needs to replay and check a GKR run: the
// claimed output value and the full Fiat-Shamir transcript log the prover
// produced while reducing that claim down to the input layer.
type Proof struct {
	Output field.Element
	Log    []transcript.Record
}

// layerResult carries one layer's completed two-phase sum-check outcome
// into the next (lower) layer's claim.
type layerResult struct {
	Ru, Rv []field.Element
	Vu, Vv field.Element
}

// Prove evaluates c and produces a zero-knowledge GKR proof that the
// evaluation is correct: every assertion gate evaluated to zero, and the
// claimed output follows from the circuit's input constants through the
// layer-by-layer wiring. It returns ErrAssertionFailed if c's own
// constraints reject its inputs, and ErrProverLogic if an internal
// sum-check identity fails to hold, which can only happen for a malformed
// circuit. log receives one structured event per layer reduction and per
// sum-check round; pass zerolog.Nop() for silent operation.
func Prove(c *graph.LayeredCircuit, log zerolog.Logger) (*Proof, error) {
	wires := graph.Evaluate(c)

	for i, layer := range c.Layers {
		for j, g := range layer.Gates {
			if g.IsAssert && !wires[i][j].IsZero() {
				return nil, ErrAssertionFailed
			}
		}
	}

	tr := transcript.NewProverTranscript(graph.Domain(c))

	top := len(c.Layers) - 1
	topBits := int(c.Layers[top].BitLength)
	output := wires[top][0]
	tr.Append("output", output)
	log.Info().Int("layers", len(c.Layers)).Str("output", output.String()).Msg("proving")

	zero := make([]field.Element, topBits)
	r0, r1 := zero, zero
	alpha, beta := field.One(), field.Zero()
	claim := output

	var last layerResult
	for i := top; i >= 1; i-- {
		res, err := proveLayer(tr, log, c, i, wires[i-1], r0, r1, alpha, beta, claim)
		if err != nil {
			return nil, err
		}
		last = res
		r0, r1 = res.Ru, res.Rv
		if i > 1 {
			alpha = tr.Challenge(fmt.Sprintf("alpha#%d", i-1))
			beta = tr.Challenge(fmt.Sprintf("beta#%d", i-1))
			claim = alpha.Mul(res.Vu).Add(beta.Mul(res.Vv))
		}
	}

	actualVu := graph.EvalMLE(wires[0], last.Ru)
	actualVv := graph.EvalMLE(wires[0], last.Rv)
	if !actualVu.Equal(last.Vu) || !actualVv.Equal(last.Vv) {
		return nil, fmt.Errorf("%w: input layer disagreed with the claim carried down from layer 1", ErrProverLogic)
	}

	log.Info().Int("records", len(tr.Log)).Msg("proof complete")
	return &Proof{Output: output, Log: tr.Log}, nil
}

// proveLayer reduces a claim about c.Layers[layerIdx]'s wire function —
// alpha*V_i(r0)+beta*V_i(r1) — into a claim about V_{i-1} at two fresh
// points, via the two-phase zero-knowledge sum-check described in doc.go.
// below holds layer i-1's wire values, known to the prover but not the
// verifier.
func proveLayer(tr *transcript.ProverTranscript, log zerolog.Logger, c *graph.LayeredCircuit, layerIdx int, below []field.Element, r0, r1 []field.Element, alpha, beta, claim field.Element) (layerResult, error) {
	log.Debug().Int("layer", layerIdx).Msg("reducing layer")
	layer := c.Layers[layerIdx]
	belowLayer := c.Layers[layerIdx-1]
	belowSize := int(belowLayer.Size)
	belowBits := int(belowLayer.BitLength)

	zWeight := graph.BuildZWeights(layer.Size, int(layer.BitLength), r0, r1, alpha, beta)
	phase1Target := claim.Sub(c.ConstMLE(layerIdx, zWeight))

	tables := graph.BuildPhase1Tables(layerIdx, c, zWeight, below)

	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return layerResult{}, fmt.Errorf("prover: sampling mask seed: %w", err)
	}
	commitment := sha3.Sum256(seed)
	tr.AppendBytes(fmt.Sprintf("mask_commitment#%d", layerIdx), commitment[:])
	rho := tr.Challenge(fmt.Sprintf("rho#%d", layerIdx))

	mask := graph.DeriveMaskTable(seed, belowSize*belowSize)
	maskRows := make([][]field.Element, belowSize)
	for x := 0; x < belowSize; x++ {
		maskRows[x] = mask[x*belowSize : (x+1)*belowSize]
	}
	maskX := make([]field.Element, belowSize)
	maskSum := field.Zero()
	for x := 0; x < belowSize; x++ {
		row := field.Zero()
		for y := 0; y < belowSize; y++ {
			row = row.Add(maskRows[x][y])
		}
		maskX[x] = row
		maskSum = maskSum.Add(row)
	}
	phase1Target = phase1Target.Add(rho.Mul(maskSum))

	belowCopy := append([]field.Element(nil), below...)
	pFinal, vu, qFinal, maskXFinal, rx, err := runSumcheckRounds(
		tr, log, fmt.Sprintf("phase_1#%d", layerIdx), belowBits,
		tables.P, belowCopy, tables.Q, maskX, rho, phase1Target,
	)
	if err != nil {
		return layerResult{}, err
	}
	tr.Append(fmt.Sprintf("v_u#%d", layerIdx), vu)

	s1 := pFinal.Mul(vu).Add(qFinal).Add(rho.Mul(maskXFinal))
	drelay := vu.Mul(c.AddXSum(layerIdx, zWeight, rx))
	phase2Target := s1.Sub(drelay).Sub(vu.Mul(c.RelayMLE(layerIdx, zWeight, rx)))

	G, drelayCheck := graph.BuildPhase2Table(layerIdx, c, zWeight, rx, below, vu)
	if !drelayCheck.Equal(drelay) {
		return layerResult{}, fmt.Errorf("%w: phase_1#%d boundary deduction disagreed with BuildPhase2Table", ErrProverLogic, layerIdx)
	}

	rows := maskRows
	for _, xi := range rx {
		rows = foldRowsOneBit(rows, xi)
	}
	maskY := rows[0]
	zeroQ := make([]field.Element, belowSize)

	pFinal2, vv, qFinal2, maskYFinal, ry, err := runSumcheckRounds(
		tr, log, fmt.Sprintf("phase_2#%d", layerIdx), belowBits,
		G, belowCopy, zeroQ, maskY, rho, phase2Target,
	)
	if err != nil {
		return layerResult{}, err
	}
	tr.Append(fmt.Sprintf("v_v#%d", layerIdx), vv)
	tr.AppendBytes(fmt.Sprintf("mask_seed#%d", layerIdx), seed)

	// mask is flat-indexed x*belowSize+y, so y occupies the low bits:
	// EvalMLE must see y's coordinates before x's to land on the same
	// (x,y) point the live row-fold above produced.
	point := append(append([]field.Element(nil), ry...), rx...)
	expectedCoeff := c.AddMLE(layerIdx, zWeight, rx, ry).Add(vu.Mul(c.MultMLE(layerIdx, zWeight, rx, ry)))
	expectedFinal := expectedCoeff.Mul(vv).Add(rho.Mul(graph.EvalMLE(mask, point)))
	actualFinal := pFinal2.Mul(vv).Add(qFinal2).Add(rho.Mul(maskYFinal))
	if !actualFinal.Equal(expectedFinal) {
		return layerResult{}, fmt.Errorf("%w: phase_2#%d final round disagreed with the wiring predicate", ErrProverLogic, layerIdx)
	}

	log.Debug().Int("layer", layerIdx).Msg("layer reduced")
	return layerResult{Ru: rx, Rv: ry, Vu: vu, Vv: vv}, nil
}
