// Package transcript implements the Fiat-Shamir duplex-sponge transcript
// shared by the prover and verifier: every value either side wants to bind
// into the proof is labeled and absorbed in a fixed order, and challenges
// are squeezed out as a deterministic function of everything absorbed so
// far.
package transcript

import (
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// ErrTranscriptExhausted is returned when a verifier replay runs past the
// end of the proof's message queue, or encounters a record under a label
// the replay didn't expect.
var ErrTranscriptExhausted = errors.New("transcript: exhausted")

// Record is one labeled entry of a transcript's message queue, as replayed
// by a VerifierTranscript from a decoded proof.
type Record struct {
	Label string
	Data  [][]byte
}

// challengeBytes is the number of bytes squeezed per challenge, enough to
// reduce modulo the BLS12-381 scalar field with negligible bias.
const challengeBytes = 64

// sponge wraps the duplex primitive shared by ProverTranscript and
// VerifierTranscript. Absorption always happens on the single long-lived
// hash; squeezing clones it first (sha3.ShakeHash.Clone) so a challenge can
// be read without disturbing the ability to absorb more data afterwards --
// golang.org/x/crypto/sha3's XOF panics if Write is called after Read.
type sponge struct {
	state sha3.ShakeHash
}

func newSponge(domain string) sponge {
	return sponge{state: sha3.NewCShake256(nil, []byte("zkgraph/transcript/"+domain))}
}

func (s *sponge) absorb(label string, chunks ...[]byte) {
	s.state.Write([]byte(label))
	var lenBuf [8]byte
	for _, c := range chunks {
		binary.BigEndian.PutUint64(lenBuf[:], uint64(len(c)))
		s.state.Write(lenBuf[:])
		s.state.Write(c)
	}
}

func (s *sponge) squeeze(label string) []byte {
	clone := s.state.Clone()
	clone.Write([]byte(label))
	out := make([]byte, challengeBytes)
	clone.Read(out)
	return out
}

func indexedLabel(label string, i int) string {
	return fmt.Sprintf("%s#%d", label, i)
}
