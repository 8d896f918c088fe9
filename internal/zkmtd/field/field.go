// Package field implements arithmetic over the Goldilocks field
// GF(2^64 - 2^32 + 1), the field all ZKMTD hashing and binding-hash
// arithmetic runs over.
package field

import "encoding/binary"

// Modulus is the Goldilocks prime p = 2^64 - 2^32 + 1.
const Modulus uint64 = 0xFFFFFFFF00000001

// Element is a canonical representative of GF(Modulus), always held
// in [0, Modulus).
type Element struct {
	v uint64
}

// Zero is the additive identity.
var Zero = Element{0}

// One is the multiplicative identity.
var One = Element{1}

// New reduces x modulo the field's modulus and returns the canonical
// element.
func New(x uint64) Element {
	if x >= Modulus {
		return Element{x - Modulus}
	}
	return Element{x}
}

// FromCanonical wraps a value already known to be in [0, Modulus)
// without re-reducing it.
func FromCanonical(x uint64) Element {
	return Element{x}
}

// Uint64 returns the canonical uint64 representative.
func (e Element) Uint64() uint64 {
	return e.v
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.v == 0
}

// Equal reports whether e and o represent the same field element.
// Not constant-time; use sponge.CtEqDigest for secret-dependent
// comparisons.
func (e Element) Equal(o Element) bool {
	return e.v == o.v
}

// Add returns e + o mod p.
func (e Element) Add(o Element) Element {
	sum, carry := addWithCarry(e.v, o.v)
	return reduce128(carry, sum)
}

// Sub returns e - o mod p.
func (e Element) Sub(o Element) Element {
	if e.v >= o.v {
		return Element{e.v - o.v}
	}
	return Element{Modulus - (o.v - e.v)}
}

// Neg returns -e mod p.
func (e Element) Neg() Element {
	if e.v == 0 {
		return e
	}
	return Element{Modulus - e.v}
}

// Mul returns e * o mod p using a 128-bit product reduced via the
// Goldilocks-specific fold (p = 2^64 - 2^32 + 1 lets a 128-bit
// product be reduced with shifts and adds instead of a full
// division).
func (e Element) Mul(o Element) Element {
	hi, lo := mul64(e.v, o.v)
	return reduce128(hi, lo)
}

// Square returns e^2 mod p.
func (e Element) Square() Element {
	return e.Mul(e)
}

// Exp returns e^n mod p via square-and-multiply.
func (e Element) Exp(n uint64) Element {
	result := One
	base := e
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Square()
		n >>= 1
	}
	return result
}

// Pow7 returns e^7, the Poseidon2 S-box used throughout the sponge.
func (e Element) Pow7() Element {
	sq := e.Square()
	q4 := sq.Square()
	return q4.Mul(sq).Mul(e)
}

// Inv returns the multiplicative inverse of e. Panics if e is zero;
// callers that need a fallible inverse should check IsZero first.
func (e Element) Inv() Element {
	if e.v == 0 {
		panic("field: inverse of zero")
	}
	return e.Exp(Modulus - 2)
}

// Bytes encodes e as 8 little-endian bytes of its canonical
// representative.
func (e Element) Bytes() [8]byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], e.v)
	return b
}

// FromBytes decodes 8 little-endian bytes into a canonical element,
// reducing if the encoded value is >= Modulus.
func FromBytes(b [8]byte) Element {
	return New(binary.LittleEndian.Uint64(b[:]))
}

// EncodeVector concatenates the canonical little-endian encoding of
// each element.
func EncodeVector(elems []Element) []byte {
	out := make([]byte, 8*len(elems))
	for i, e := range elems {
		b := e.Bytes()
		copy(out[i*8:], b[:])
	}
	return out
}

// addWithCarry adds a and b, returning the 64-bit sum and the carry
// (0 or 1) out of the top bit.
func addWithCarry(a, b uint64) (sum, carry uint64) {
	sum = a + b
	if sum < a {
		carry = 1
	}
	return sum, carry
}

// mul64 returns the 128-bit product of a and b as (hi, lo).
func mul64(a, b uint64) (hi, lo uint64) {
	const mask32 = 0xFFFFFFFF
	aLo, aHi := a&mask32, a>>32
	bLo, bHi := b&mask32, b>>32

	lo = aLo * bLo
	mid1 := aHi * bLo
	mid2 := aLo * bHi
	hi = aHi * bHi

	midSum := mid1 + mid2
	var midCarry uint64
	if midSum < mid1 {
		midCarry = 1
	}

	loLow := lo + (midSum << 32)
	var loCarry uint64
	if loLow < lo {
		loCarry = 1
	}

	hi += (midSum >> 32) + (midCarry << 32) + loCarry
	lo = loLow
	return hi, lo
}

// epsilon is 2^32 - 1, the value such that 2^64 = epsilon (mod p).
const epsilon = uint64(0xFFFFFFFF)

// reduce128 reduces a 128-bit value (hi<<64 | lo) modulo the
// Goldilocks prime, using 2^64 = epsilon (mod p) to fold the high
// limb down in two steps (a subtraction and one 32x32-bit multiply by
// epsilon) rather than a 128-bit division.
func reduce128(hi, lo uint64) Element {
	hiHi := hi >> 32
	hiLo := hi & epsilon

	t0, borrow := subBorrow(lo, hiHi)
	if borrow != 0 {
		t0 -= epsilon
	}

	t1 := hiLo * epsilon
	t2, carry := addWithCarry(t0, t1)
	if carry != 0 {
		t2 += epsilon
	}

	return New(t2)
}

// subBorrow subtracts b from a, reporting a borrow of 1 if a < b.
func subBorrow(a, b uint64) (diff, borrow uint64) {
	diff = a - b
	if a < b {
		borrow = 1
	}
	return diff, borrow
}
