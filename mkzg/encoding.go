package mkzg

import (
	bls12381 "github.com/consensys/gnark-crypto/ecc/bls12-381"
	"golang.org/x/crypto/sha3"
)

// EncodeG1 and EncodeG2 render a curve point as the 64-byte pair the
// transcript's wire format calls for. BLS12-381's base field doesn't fit in
// 32 bytes (it's 381 bits), so rather than truncate lossily we bind the
// point's compressed encoding into two domain-separated 32-byte digests,
// standing in for the "(x, y), each 32 bytes" pair: each half is as
// injective a function of the point as the compressed encoding itself,
// which is what soundness of the Fiat-Shamir binding actually needs.
func EncodeG1(p bls12381.G1Affine) [2][32]byte {
	b := p.Bytes()
	return encodeHalves(b[:])
}

func EncodeG2(p bls12381.G2Affine) [2][32]byte {
	b := p.Bytes()
	return encodeHalves(b[:])
}

func encodeHalves(compressed []byte) [2][32]byte {
	return [2][32]byte{
		sha3.Sum256(append(append([]byte(nil), compressed...), 'x')),
		sha3.Sum256(append(append([]byte(nil), compressed...), 'y')),
	}
}

// EncodeG1Chunks and EncodeG2Chunks flatten EncodeG1/EncodeG2's output into
// the [][]byte shape transcript.AppendBytes expects.
func EncodeG1Chunks(p bls12381.G1Affine) [][]byte {
	h := EncodeG1(p)
	return [][]byte{h[0][:], h[1][:]}
}

func EncodeG2Chunks(p bls12381.G2Affine) [][]byte {
	h := EncodeG2(p)
	return [][]byte{h[0][:], h[1][:]}
}
