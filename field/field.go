// Package field implements the signed fixed-point encoding that zkgraph
// uses to carry real-valued neural-network activations through a prime
// field: quantization, dequantization, and the arithmetic and comparison
// operators that operate on quantized values directly.
//
// The field is the BLS12-381 scalar field, so field.Element values can be
// used as exponents/openings against the pairing group in package mkzg
// without a second modular reduction.
package field

import (
	"errors"
	"math"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// PrecisionBits is the number of fractional bits in the fixed-point
// encoding (the scale is 2^PrecisionBits). 16 bits keeps the rescale step
// in qmul comfortably below the field modulus; the alternative branch in
// the original implementation used 64 bits of precision at the cost of
// overflow headroom for repeated multiplication (see SPEC_FULL.md).
const PrecisionBits = 16

// ErrDivisionByZero is returned by QDiv and Inverse when the divisor is
// the zero element.
var ErrDivisionByZero = errors.New("field: division by zero")

var (
	modulus     = fr.Modulus()
	scale       = new(big.Int).Lsh(big.NewInt(1), PrecisionBits)
	scaleFloat  = new(big.Float).SetInt(scale)
	halfModulus = new(big.Int).Rsh(new(big.Int).Set(modulus), 1)
)

// Element is a value in the prime field of order p used throughout
// zkgraph. Values above p/2 are interpreted as the negative half of the
// field by the fixed-point encoding below.
type Element struct {
	v fr.Element
}

// Zero returns the additive identity.
func Zero() Element { return Element{} }

// One returns the multiplicative identity.
func One() Element {
	var e Element
	e.v.SetOne()
	return e
}

// FromUint64 lifts an unsigned integer into the field without quantizing
// it (useful for loop counters, bit masks, and gate indices reinterpreted
// as field elements).
func FromUint64(x uint64) Element {
	var e Element
	e.v.SetUint64(x)
	return e
}

// FromBigInt reduces x modulo p.
func FromBigInt(x *big.Int) Element {
	var e Element
	e.v.SetBigInt(x)
	return e
}

// FromBytes interprets b as a big-endian integer and reduces it modulo p.
func FromBytes(b []byte) Element {
	var e Element
	e.v.SetBytes(b)
	return e
}

// BigInt returns the canonical representative of e in [0, p).
func (e Element) BigInt() *big.Int {
	var b big.Int
	e.v.BigInt(&b)
	return &b
}

// Bytes returns the canonical 32-byte big-endian encoding of e.
func (e Element) Bytes() [32]byte { return e.v.Bytes() }

func (e Element) IsZero() bool       { return e.v.IsZero() }
func (e Element) Equal(o Element) bool { return e.v.Equal(&o.v) }
func (e Element) String() string     { return e.v.String() }

func (a Element) Add(b Element) Element {
	var r Element
	r.v.Add(&a.v, &b.v)
	return r
}

func (a Element) Sub(b Element) Element {
	var r Element
	r.v.Sub(&a.v, &b.v)
	return r
}

func (a Element) Neg() Element {
	var r Element
	r.v.Neg(&a.v)
	return r
}

// Mul is plain field multiplication (unscaled). Quantized values must be
// combined with QMul, not Mul, or the fixed-point scale doubles up.
func (a Element) Mul(b Element) Element {
	var r Element
	r.v.Mul(&a.v, &b.v)
	return r
}

// Inverse returns the multiplicative inverse of a.
func (a Element) Inverse() (Element, error) {
	if a.IsZero() {
		return Element{}, ErrDivisionByZero
	}
	var r Element
	r.v.Inverse(&a.v)
	return r, nil
}

// aboveHalf reports whether e's canonical representative lies in the
// upper half of the field, i.e. whether it encodes a negative real value.
func (e Element) aboveHalf() bool {
	return e.BigInt().Cmp(halfModulus) > 0
}

// Quantize encodes a real number as a field element: round(|x|*2^s) for
// x >= 0, or p - round(|x|*2^s) for x < 0.
func Quantize(x float64) Element {
	neg := x < 0
	ax := math.Abs(x)

	scaled := new(big.Float).SetPrec(200).Mul(big.NewFloat(ax), scaleFloat)
	scaled.Add(scaled, big.NewFloat(0.5)) // round half up, matching Python's round()
	rounded, _ := scaled.Int(nil)
	rounded.Mod(rounded, modulus)

	if neg {
		rounded.Sub(modulus, rounded)
		rounded.Mod(rounded, modulus)
	}
	return FromBigInt(rounded)
}

// Dequantize decodes a field element back into a real number, treating
// values above p/2 as negative.
func Dequantize(e Element) float64 {
	v := e.BigInt()
	if v.Cmp(halfModulus) > 0 {
		v = new(big.Int).Sub(v, modulus)
	}
	f := new(big.Float).SetPrec(200).SetInt(v)
	f.Quo(f, scaleFloat)
	out, _ := f.Float64()
	return out
}

// QAdd adds two quantized values; field addition is already correctly
// scaled.
func QAdd(a, b Element) Element { return a.Add(b) }

// QMul multiplies two quantized values, rescaling the product by 2^s so
// the result is quantized at the same precision as its operands. Signs
// are tracked explicitly via the "above p/2" rule rather than relying on
// field arithmetic to do the right thing across the rescale's integer
// division.
func QMul(a, b Element) Element {
	av, bv := a.BigInt(), b.BigInt()
	negA, negB := av.Cmp(halfModulus) > 0, bv.Cmp(halfModulus) > 0

	ap := new(big.Int).Set(av)
	if negA {
		ap.Sub(modulus, ap)
	}
	bp := new(big.Int).Set(bv)
	if negB {
		bp.Sub(modulus, bp)
	}

	product := new(big.Int).Mul(ap, bp)
	product.Mod(product, modulus)
	product.Div(product, scale)

	if (negA != negB) && product.Sign() != 0 {
		product.Sub(modulus, product)
		product.Mod(product, modulus)
	}
	return FromBigInt(product)
}

// QDiv divides two quantized values by dequantizing, dividing as reals,
// and requantizing. It fails with ErrDivisionByZero when b is zero.
func QDiv(a, b Element) (Element, error) {
	if b.IsZero() {
		return Element{}, ErrDivisionByZero
	}
	return Quantize(Dequantize(a) / Dequantize(b)), nil
}

// QExp raises a quantized value to an integer power via binary
// exponentiation using QMul; QExp(a, 0) is the quantized identity.
func QExp(a Element, k uint64) Element {
	result := Quantize(1)
	base := a
	for k > 0 {
		if k&1 == 1 {
			result = QMul(result, base)
		}
		base = QMul(base, base)
		k >>= 1
	}
	return result
}

// QLT, QGT, QLE, QGE, QEQ, QNEQ compare quantized values on their
// dequantized real values.
func QLT(a, b Element) bool { return Dequantize(a) < Dequantize(b) }
func QGT(a, b Element) bool { return Dequantize(a) > Dequantize(b) }
func QLE(a, b Element) bool { return Dequantize(a) <= Dequantize(b) }
func QGE(a, b Element) bool { return Dequantize(a) >= Dequantize(b) }
func QEQ(a, b Element) bool { return Dequantize(a) == Dequantize(b) }
func QNEQ(a, b Element) bool { return Dequantize(a) != Dequantize(b) }

// Modulus returns the prime p of the field, shared with package mkzg's
// pairing group scalar field.
func Modulus() *big.Int { return new(big.Int).Set(modulus) }
