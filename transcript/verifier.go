package transcript

import (
	"fmt"

	"github.com/agencyenterprise/zkgraph/field"
)

// VerifierTranscript replays a proof's recorded message queue against a
// fresh sponge under the same domain. It never trusts the prover's
// challenges: Next absorbs exactly the bytes the prover claims to have
// sent, in the same FIFO order, and Challenge re-derives each challenge
// independently, so the verifier accepts only if the prover's later
// messages are consistent with what an honest sponge would have produced.
type VerifierTranscript struct {
	sponge sponge
	queue  []Record
	pos    int
}

// NewVerifierTranscript starts a replay over records (the proof's message
// queue) under the same domain the prover used.
func NewVerifierTranscript(domain string, records []Record) *VerifierTranscript {
	return &VerifierTranscript{sponge: newSponge(domain), queue: records}
}

// Next consumes and absorbs the next record, failing if the queue is
// exhausted or the next record's label doesn't match what the caller
// expected at this point in the protocol.
func (v *VerifierTranscript) Next(label string) ([][]byte, error) {
	if v.pos >= len(v.queue) {
		return nil, fmt.Errorf("transcript: no more records for label %q: %w", label, ErrTranscriptExhausted)
	}
	rec := v.queue[v.pos]
	if rec.Label != label {
		return nil, fmt.Errorf("transcript: expected label %q, got %q: %w", label, rec.Label, ErrTranscriptExhausted)
	}
	v.pos++
	v.sponge.absorb(rec.Label, rec.Data...)
	return rec.Data, nil
}

// NextElements is Next plus decoding each chunk as a field.Element, the
// common case for sumcheck round messages and opening values.
func (v *VerifierTranscript) NextElements(label string) ([]field.Element, error) {
	chunks, err := v.Next(label)
	if err != nil {
		return nil, err
	}
	out := make([]field.Element, len(chunks))
	for i, c := range chunks {
		out[i] = field.FromBytes(c)
	}
	return out, nil
}

// Challenge squeezes the same challenge a ProverTranscript would have
// produced at this point, given an identical sequence of prior Next calls.
func (v *VerifierTranscript) Challenge(label string) field.Element {
	return field.FromBytes(v.sponge.squeeze(label))
}

// ChallengeVector squeezes n independent field elements under indexed
// sub-labels, mirroring ProverTranscript.ChallengeVector.
func (v *VerifierTranscript) ChallengeVector(label string, n int) []field.Element {
	out := make([]field.Element, n)
	for i := range out {
		out[i] = v.Challenge(indexedLabel(label, i))
	}
	return out
}

// Done reports whether every record in the queue has been consumed, which
// the verifier checks at the end of verifier.Verify to reject a proof with leftover,
// unverified messages.
func (v *VerifierTranscript) Done() bool { return v.pos == len(v.queue) }
