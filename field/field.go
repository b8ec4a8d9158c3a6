// Package field wraps the ~255-bit prime field zkplex's circuit arithmetic
// operates in (spec.md §3.1). It reuses the BN254 scalar field from
// gnark-crypto rather than hand-rolling modular arithmetic, so the exact
// same field the proof driver's constraint system is compiled over is used
// for witness evaluation.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Modulus is the field's prime order, exposed for range/size checks
// (ordering comparisons must additionally fit in max_bits, §3.1).
func Modulus() *big.Int {
	return fr.Modulus()
}

// Element is a field element. The zero value is the additive identity.
type Element struct {
	inner fr.Element
}

// FromBigInt reduces v modulo the field and returns the resulting Element.
func FromBigInt(v *big.Int) Element {
	var e Element
	e.inner.SetBigInt(v)
	return e
}

// FromUint64 builds an Element from a small non-negative integer.
func FromUint64(v uint64) Element {
	var e Element
	e.inner.SetUint64(v)
	return e
}

// BigInt returns the canonical non-negative big.Int representation of e,
// in [0, Modulus).
func (e Element) BigInt() *big.Int {
	var out big.Int
	e.inner.BigInt(&out)
	return &out
}

func (e Element) Add(o Element) Element {
	var r Element
	r.inner.Add(&e.inner, &o.inner)
	return r
}

func (e Element) Sub(o Element) Element {
	var r Element
	r.inner.Sub(&e.inner, &o.inner)
	return r
}

func (e Element) Mul(o Element) Element {
	var r Element
	r.inner.Mul(&e.inner, &o.inner)
	return r
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.inner.IsZero()
}

// Equal reports field equality.
func (e Element) Equal(o Element) bool {
	return e.inner.Equal(&o.inner)
}

// Bool coerces e to {0,1}: 0 stays 0, any non-zero value becomes 1.
func (e Element) Bool() Element {
	if e.IsZero() {
		return FromUint64(0)
	}
	return FromUint64(1)
}

// String returns the canonical decimal representation.
func (e Element) String() string {
	return e.BigInt().String()
}

// Fits reports whether e's canonical representative fits in bits unsigned
// bits (used for ordering-comparison range validation, spec.md §3.1/§3.7).
func (e Element) Fits(bits uint) bool {
	return e.BigInt().BitLen() <= int(bits)
}
