package types

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestParseEncodingValid(t *testing.T) {
	c := qt.New(t)
	e, err := ParseEncoding("hex")
	c.Assert(err, qt.IsNil)
	c.Assert(e, qt.Equals, EncodingHex)
}

func TestParseEncodingEmptyIsAuto(t *testing.T) {
	c := qt.New(t)
	e, err := ParseEncoding("")
	c.Assert(err, qt.IsNil)
	c.Assert(e, qt.Equals, EncodingAuto)
}

func TestParseEncodingUnknown(t *testing.T) {
	c := qt.New(t)
	_, err := ParseEncoding("rot13")
	c.Assert(err, qt.ErrorMatches, ".*unknown encoding.*")
}

func TestEncodingStringAuto(t *testing.T) {
	c := qt.New(t)
	c.Assert(EncodingAuto.String(), qt.Equals, "auto")
	c.Assert(EncodingDecimal.String(), qt.Equals, "decimal")
}

func TestEncodingValid(t *testing.T) {
	c := qt.New(t)
	for _, e := range []Encoding{EncodingDecimal, EncodingHex, EncodingBase58, EncodingBase64, EncodingBase85, EncodingText} {
		c.Assert(e.Valid(), qt.IsTrue)
	}
	c.Assert(EncodingAuto.Valid(), qt.IsFalse)
}
