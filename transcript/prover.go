package transcript

import "github.com/agencyenterprise/zkgraph/field"

// ProverTranscript is the prover's half of the Fiat-Shamir exchange: every
// Append call both feeds the sponge and records a Record onto the Log, so
// the finished Log can be serialized into the proof and replayed bit for
// bit by a VerifierTranscript.
type ProverTranscript struct {
	sponge sponge
	Log    []Record
}

// NewProverTranscript starts a fresh transcript under the given domain
// separator (typically the circuit's identity), so proofs for different
// circuits never share a challenge derivation even if their early messages
// happen to coincide.
func NewProverTranscript(domain string) *ProverTranscript {
	return &ProverTranscript{sponge: newSponge(domain)}
}

// Append absorbs a labeled list of field elements and records them.
func (p *ProverTranscript) Append(label string, values ...field.Element) {
	chunks := make([][]byte, len(values))
	for i, v := range values {
		b := v.Bytes()
		chunks[i] = append([]byte(nil), b[:]...)
	}
	p.AppendBytes(label, chunks...)
}

// AppendBytes absorbs a labeled list of already-encoded chunks (used for
// values, like curve points, that field.Element can't represent directly).
func (p *ProverTranscript) AppendBytes(label string, chunks ...[]byte) {
	p.sponge.absorb(label, chunks...)
	p.Log = append(p.Log, Record{Label: label, Data: chunks})
}

// Challenge squeezes a single field element bound to everything absorbed
// under label so far.
func (p *ProverTranscript) Challenge(label string) field.Element {
	return field.FromBytes(p.sponge.squeeze(label))
}

// ChallengeVector squeezes n independent field elements, one per indexed
// sub-label.
func (p *ProverTranscript) ChallengeVector(label string, n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = p.Challenge(indexedLabel(label, i))
	}
	return out
}
