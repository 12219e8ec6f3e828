package graph

import (
	"encoding/binary"

	"github.com/agencyenterprise/zkgraph/field"
	"golang.org/x/crypto/sha3"
)

// bitsOf returns the little-endian bit decomposition of idx as field
// elements 0 or 1, length bitlen: bitsOf(idx,n)[0] is idx's least
// significant bit. EvalMLE folds its input in the same order, so a
// challenge vector r and an index's bitsOf representation always line up.
func bitsOf(idx uint32, bitlen int) []field.Element {
	out := make([]field.Element, bitlen)
	for i := 0; i < bitlen; i++ {
		if (idx>>uint(i))&1 == 1 {
			out[i] = field.One()
		} else {
			out[i] = field.Zero()
		}
	}
	return out
}

// EqMLE evaluates the multilinear extension of the equality indicator
// between two equal-length points: prod_i (a_i*b_i + (1-a_i)*(1-b_i)).
// When b is boolean this is 1 exactly at a==b and extends multilinearly
// elsewhere; the prover and verifier both use it to weight a single gate's
// contribution to a layer's wiring predicate at an arbitrary challenge
// point.
func EqMLE(a, b []field.Element) field.Element {
	result := field.One()
	for i := range a {
		term := a[i].Mul(b[i]).Add(field.One().Sub(a[i]).Mul(field.One().Sub(b[i])))
		result = result.Mul(term)
	}
	return result
}

// EvalMLE evaluates the multilinear extension of a hypercube-indexed value
// table at an arbitrary point r, folding one bit at a time: values must
// have length 2^len(r). This is the same "halve by one bit" fold the
// zero-knowledge sumcheck prover runs per round, exposed here once so both
// the prover (building round messages) and the input-layer consistency
// check can share it.
func EvalMLE(values []field.Element, r []field.Element) field.Element {
	cur := append([]field.Element(nil), values...)
	for _, ri := range r {
		half := len(cur) / 2
		next := make([]field.Element, half)
		for i := 0; i < half; i++ {
			next[i] = cur[2*i].Add(ri.Mul(cur[2*i+1].Sub(cur[2*i])))
		}
		cur = next
	}
	return cur[0]
}

// DeriveMaskTable expands a short random seed into a dense table of size
// field elements, one SHA3-256 digest per entry domain-separated by index.
// Both the zero-knowledge prover and the verifier call this with the same
// (seed, size): the prover to build the random blinding table it folds
// into a layer's sum-check rounds, the verifier to rebuild the identical
// table once the prover reveals seed at the end of that layer.
func DeriveMaskTable(seed []byte, size int) []field.Element {
	out := make([]field.Element, size)
	var idxBuf [8]byte
	for i := range out {
		binary.BigEndian.PutUint64(idxBuf[:], uint64(i))
		h := sha3.New256()
		h.Write(seed)
		h.Write(idxBuf[:])
		out[i] = field.FromBytes(h.Sum(nil))
	}
	return out
}

// FoldOneBit halves a hypercube table by binding its lowest-order unbound
// bit to x, the per-round operation the sumcheck prover repeats to shrink
// its bookkeeping tables from 2^k to 2^(k-1) entries.
func FoldOneBit(values []field.Element, x field.Element) []field.Element {
	half := len(values) / 2
	next := make([]field.Element, half)
	for i := 0; i < half; i++ {
		next[i] = values[2*i].Add(x.Mul(values[2*i+1].Sub(values[2*i])))
	}
	return next
}
