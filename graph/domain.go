package graph

import (
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Domain derives a Fiat-Shamir domain separator from a circuit's shape, so
// prover and verifier transcripts for the same compiled circuit always
// agree, and a proof produced for one circuit can never be replayed
// against a differently-shaped one.
func Domain(c *LayeredCircuit) string {
	h := sha3.New256()
	var buf [4]byte
	for _, l := range c.Layers {
		binary.BigEndian.PutUint32(buf[:], l.Size)
		h.Write(buf[:])
	}
	return "zkgraph/circuit/" + hex.EncodeToString(h.Sum(nil))
}
