package field

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestFromBigIntReducesModulo(t *testing.T) {
	c := qt.New(t)
	over := new(big.Int).Add(Modulus(), big.NewInt(7))
	e := FromBigInt(over)
	c.Assert(e.BigInt().Cmp(big.NewInt(7)), qt.Equals, 0)
}

func TestArithmetic(t *testing.T) {
	c := qt.New(t)
	a := FromUint64(5)
	b := FromUint64(3)
	c.Assert(a.Add(b).String(), qt.Equals, "8")
	c.Assert(a.Sub(b).String(), qt.Equals, "2")
	c.Assert(a.Mul(b).String(), qt.Equals, "15")
}

func TestSubWraps(t *testing.T) {
	c := qt.New(t)
	a := FromUint64(0)
	b := FromUint64(1)
	neg := a.Sub(b)
	want := new(big.Int).Sub(Modulus(), big.NewInt(1))
	c.Assert(neg.BigInt().Cmp(want), qt.Equals, 0)
}

func TestIsZeroAndEqual(t *testing.T) {
	c := qt.New(t)
	zero := FromUint64(0)
	c.Assert(zero.IsZero(), qt.IsTrue)
	a := FromUint64(42)
	b := FromUint64(42)
	c.Assert(a.Equal(b), qt.IsTrue)
	c.Assert(a.Equal(zero), qt.IsFalse)
}

func TestBool(t *testing.T) {
	c := qt.New(t)
	c.Assert(FromUint64(0).Bool().IsZero(), qt.IsTrue)
	c.Assert(FromUint64(7).Bool().String(), qt.Equals, "1")
	c.Assert(FromUint64(1).Bool().String(), qt.Equals, "1")
}

func TestFits(t *testing.T) {
	c := qt.New(t)
	e := FromUint64(255)
	c.Assert(e.Fits(8), qt.IsTrue)
	c.Assert(e.Fits(7), qt.IsFalse)
	e = FromUint64(256)
	c.Assert(e.Fits(8), qt.IsFalse)
	c.Assert(e.Fits(9), qt.IsTrue)
}

func TestStringRoundTrip(t *testing.T) {
	c := qt.New(t)
	v := big.NewInt(123456789)
	e := FromBigInt(v)
	c.Assert(e.String(), qt.Equals, "123456789")
}
