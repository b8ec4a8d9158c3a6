package types

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/fxamacker/cbor/v2"
)

func TestPlaceholderValue(t *testing.T) {
	c := qt.New(t)
	v := PlaceholderValue()
	c.Assert(v.IsPlaceholder(), qt.IsTrue)
	c.Assert(v.String(), qt.Equals, Placeholder)
}

func TestValueString(t *testing.T) {
	c := qt.New(t)
	v := Value{Int: big.NewInt(42), Bytes: []byte{0x2a}}
	c.Assert(v.String(), qt.Equals, "42")
}

func TestValueFieldElement(t *testing.T) {
	c := qt.New(t)
	v := Value{Int: big.NewInt(100)}
	c.Assert(v.FieldElement().String(), qt.Equals, "100")

	v2 := Value{Bytes: []byte{0x01}}
	c.Assert(v2.FieldElement().String(), qt.Equals, "1")
}

func TestValueCBORRoundTrip(t *testing.T) {
	c := qt.New(t)
	v := Value{Int: big.NewInt(123456789), Bytes: []byte{1, 2, 3}}
	b, err := cbor.Marshal(v)
	c.Assert(err, qt.IsNil)

	var out Value
	c.Assert(cbor.Unmarshal(b, &out), qt.IsNil)
	c.Assert(out.Int.String(), qt.Equals, "123456789")
	c.Assert(out.Bytes, qt.DeepEquals, []byte{1, 2, 3})
}

func TestValueCBORRoundTripPlaceholder(t *testing.T) {
	c := qt.New(t)
	v := PlaceholderValue()
	b, err := cbor.Marshal(v)
	c.Assert(err, qt.IsNil)

	var out Value
	c.Assert(cbor.Unmarshal(b, &out), qt.IsNil)
	c.Assert(out.IsPlaceholder(), qt.IsTrue)
}
