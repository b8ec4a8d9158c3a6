package types

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestVerifyContextEncodeDecodeRoundTrip(t *testing.T) {
	c := qt.New(t)
	ctx := &VerifyContext{
		Version:         CurrentVersion,
		Preprocess:      []string{"h <== sha256(a{%x})"},
		Circuit:         []string{"out <== a + b"},
		SecretNames:     []string{"a"},
		PublicNames:     []string{"b"},
		PublicEncodings: []Encoding{EncodingDecimal},
		OutputSignal:    "out",
		K:               4,
		StrategyTag:     StrategyBitD,
		CachedMaxBits:   32,
	}
	b, err := ctx.Encode()
	c.Assert(err, qt.IsNil)

	out, err := DecodeVerifyContext(b)
	c.Assert(err, qt.IsNil)
	c.Assert(out.Version, qt.Equals, ctx.Version)
	c.Assert(out.Circuit, qt.DeepEquals, ctx.Circuit)
	c.Assert(out.SecretNames, qt.DeepEquals, ctx.SecretNames)
	c.Assert(out.PublicNames, qt.DeepEquals, ctx.PublicNames)
	c.Assert(out.PublicEncodings, qt.DeepEquals, ctx.PublicEncodings)
	c.Assert(out.OutputSignal, qt.Equals, ctx.OutputSignal)
	c.Assert(out.K, qt.Equals, ctx.K)
	c.Assert(out.StrategyTag, qt.Equals, ctx.StrategyTag)
	c.Assert(out.CachedMaxBits, qt.Equals, ctx.CachedMaxBits)
}

func TestDecodeVerifyContextRejectsWrongVersion(t *testing.T) {
	c := qt.New(t)
	ctx := &VerifyContext{Version: CurrentVersion + 1}
	b, err := ctx.Encode()
	c.Assert(err, qt.IsNil)

	_, err = DecodeVerifyContext(b)
	c.Assert(err, qt.ErrorMatches, ".*unsupported verify context version.*")
}
