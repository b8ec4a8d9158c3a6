package codec

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/zkplex/zkplex-core/types"
)

func TestDecodeDecimal(t *testing.T) {
	c := qt.New(t)
	v, enc, err := Decode("12345", types.EncodingDecimal)
	c.Assert(err, qt.IsNil)
	c.Assert(enc, qt.Equals, types.EncodingDecimal)
	c.Assert(v.Int.String(), qt.Equals, "12345")
}

func TestDecodeHex(t *testing.T) {
	c := qt.New(t)
	v, enc, err := Decode("0xdeadbeef", types.EncodingHex)
	c.Assert(err, qt.IsNil)
	c.Assert(enc, qt.Equals, types.EncodingHex)
	c.Assert(v.Bytes, qt.DeepEquals, []byte{0xde, 0xad, 0xbe, 0xef})
}

func TestDecodeHexOddDigits(t *testing.T) {
	c := qt.New(t)
	_, _, err := Decode("0xabc", types.EncodingHex)
	c.Assert(err, qt.ErrorMatches, ".*odd number of digits.*")
}

func TestDecodeAutoDetectHex(t *testing.T) {
	c := qt.New(t)
	_, enc, err := Decode("0x1234", types.EncodingAuto)
	c.Assert(err, qt.IsNil)
	c.Assert(enc, qt.Equals, types.EncodingHex)
}

func TestDecodeAutoDetectDecimal(t *testing.T) {
	c := qt.New(t)
	_, enc, err := Decode("987", types.EncodingAuto)
	c.Assert(err, qt.IsNil)
	c.Assert(enc, qt.Equals, types.EncodingDecimal)
}

func TestDecodeAutoAmbiguous(t *testing.T) {
	c := qt.New(t)
	_, _, err := Decode("hello", types.EncodingAuto)
	c.Assert(err, qt.ErrorMatches, ".*ambiguous.*")
}

func TestDecodeNeverReturnsAutoEncoding(t *testing.T) {
	c := qt.New(t)
	_, enc, err := Decode("42", types.EncodingAuto)
	c.Assert(err, qt.IsNil)
	c.Assert(enc, qt.Not(qt.Equals), types.EncodingAuto)
}

func TestDecodePlaceholder(t *testing.T) {
	c := qt.New(t)
	v, enc, err := Decode(types.Placeholder, types.EncodingDecimal)
	c.Assert(err, qt.IsNil)
	c.Assert(v.IsPlaceholder(), qt.IsTrue)
	c.Assert(enc, qt.Equals, types.EncodingDecimal)
}

func TestDecodeBase58RoundTrip(t *testing.T) {
	c := qt.New(t)
	lit, err := Encode(types.Value{Bytes: []byte("hello world")}, types.EncodingBase58)
	c.Assert(err, qt.IsNil)
	v, _, err := Decode(lit, types.EncodingBase58)
	c.Assert(err, qt.IsNil)
	c.Assert(string(v.Bytes), qt.Equals, "hello world")
}

func TestDecodeBase64RoundTrip(t *testing.T) {
	c := qt.New(t)
	lit, err := Encode(types.Value{Bytes: []byte("zkplex")}, types.EncodingBase64)
	c.Assert(err, qt.IsNil)
	v, _, err := Decode(lit, types.EncodingBase64)
	c.Assert(err, qt.IsNil)
	c.Assert(string(v.Bytes), qt.Equals, "zkplex")
}

func TestDecodeBase85RoundTrip(t *testing.T) {
	c := qt.New(t)
	lit, err := Encode(types.Value{Bytes: []byte("zkplex proof")}, types.EncodingBase85)
	c.Assert(err, qt.IsNil)
	v, _, err := Decode(lit, types.EncodingBase85)
	c.Assert(err, qt.IsNil)
	c.Assert(string(v.Bytes), qt.Equals, "zkplex proof")
}

func TestDecodeText(t *testing.T) {
	c := qt.New(t)
	v, _, err := Decode("abc", types.EncodingText)
	c.Assert(err, qt.IsNil)
	c.Assert(string(v.Bytes), qt.Equals, "abc")
}

func TestFormatArg(t *testing.T) {
	c := qt.New(t)
	v := types.Value{Int: big.NewInt(255), Bytes: []byte("x")}
	b, err := FormatArg(v, "%x")
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, "ff")

	b, err = FormatArg(v, "%d")
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, "255")

	b, err = FormatArg(v, "%s")
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, "x")
}

func TestFormatArgHexZero(t *testing.T) {
	c := qt.New(t)
	v := types.Value{Int: big.NewInt(0)}
	b, err := FormatArg(v, "%x")
	c.Assert(err, qt.IsNil)
	c.Assert(string(b), qt.Equals, "0")
}

func TestFormatArgUnknownSpec(t *testing.T) {
	c := qt.New(t)
	_, err := FormatArg(types.Value{Int: big.NewInt(1)}, "%q")
	c.Assert(err, qt.ErrorMatches, ".*unknown format specifier.*")
}

func TestParseFormatSpec(t *testing.T) {
	c := qt.New(t)
	for _, ok := range []string{"%x", "%d", "%s"} {
		got, err := ParseFormatSpec(ok)
		c.Assert(err, qt.IsNil)
		c.Assert(got, qt.Equals, ok)
	}
	_, err := ParseFormatSpec("%z")
	c.Assert(err, qt.Not(qt.IsNil))
}
