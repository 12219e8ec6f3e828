package transcript

import (
	"testing"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/stretchr/testify/require"
)

func TestChallengesAreDeterministicGivenTheSameTranscript(t *testing.T) {
	build := func() field.Element {
		p := NewProverTranscript("test")
		p.Append("a", field.Quantize(1), field.Quantize(2))
		c1 := p.Challenge("round1")
		p.Append("b", c1)
		return p.Challenge("round2")
	}
	require.True(t, build().Equal(build()))
}

func TestDifferentDomainsDiverge(t *testing.T) {
	p1 := NewProverTranscript("circuit-a")
	p1.Append("x", field.Quantize(1))
	c1 := p1.Challenge("y")

	p2 := NewProverTranscript("circuit-b")
	p2.Append("x", field.Quantize(1))
	c2 := p2.Challenge("y")

	require.False(t, c1.Equal(c2))
}

func TestVerifierReplayMatchesProver(t *testing.T) {
	p := NewProverTranscript("roundtrip")
	p.Append("in", field.Quantize(3), field.Quantize(4))
	c1 := p.Challenge("c1")
	p.Append("mid", c1)
	c2 := p.Challenge("c2")

	v := NewVerifierTranscript("roundtrip", p.Log)
	got, err := v.NextElements("in")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.True(t, got[0].Equal(field.Quantize(3)))

	vc1 := v.Challenge("c1")
	require.True(t, vc1.Equal(c1))

	_, err = v.Next("mid")
	require.NoError(t, err)
	vc2 := v.Challenge("c2")
	require.True(t, vc2.Equal(c2))
	require.True(t, v.Done())
}

func TestVerifierRejectsWrongLabel(t *testing.T) {
	p := NewProverTranscript("mismatch")
	p.Append("a", field.Quantize(1))

	v := NewVerifierTranscript("mismatch", p.Log)
	_, err := v.Next("b")
	require.ErrorIs(t, err, ErrTranscriptExhausted)
}

func TestVerifierRejectsExhaustedQueue(t *testing.T) {
	p := NewProverTranscript("short")
	p.Append("a", field.Quantize(1))

	v := NewVerifierTranscript("short", p.Log)
	_, err := v.Next("a")
	require.NoError(t, err)

	_, err = v.Next("b")
	require.ErrorIs(t, err, ErrTranscriptExhausted)
}

func TestChallengeVectorEntriesAreDistinct(t *testing.T) {
	p := NewProverTranscript("vec")
	p.Append("seed", field.Quantize(7))
	vec := p.ChallengeVector("batch", 4)
	for i := range vec {
		for j := range vec {
			if i != j {
				require.False(t, vec[i].Equal(vec[j]))
			}
		}
	}
}
