package lang

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/zkplex/zkplex-core/types"
)

func TestParseCompactBasic(t *testing.T) {
	c := qt.New(t)
	p, err := ParseCompact("1/a:5/b:7/out <== a + b")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Version, qt.Equals, 1)
	c.Assert(p.Secret, qt.HasLen, 1)
	c.Assert(p.Secret[0].Name, qt.Equals, "a")
	c.Assert(p.Secret[0].Value.Int.String(), qt.Equals, "5")
	c.Assert(p.Public, qt.HasLen, 1)
	c.Assert(p.Preprocess, qt.HasLen, 0)
	c.Assert(p.Circuit, qt.DeepEquals, []string{"out <== a + b"})
}

func TestParseCompactWithPreprocess(t *testing.T) {
	c := qt.New(t)
	p, err := ParseCompact("1/a:5/-/h <== sha256(a{%x})/out <== h")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Preprocess, qt.DeepEquals, []string{"h <== sha256(a{%x})"})
	c.Assert(p.Circuit, qt.DeepEquals, []string{"out <== h"})
}

func TestParseCompactEmptySignals(t *testing.T) {
	c := qt.New(t)
	p, err := ParseCompact("1/-/-/out <== 1")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Secret, qt.HasLen, 0)
	c.Assert(p.Public, qt.HasLen, 0)
}

func TestParseCompactDivisionInCircuitNotMistakenForSeparator(t *testing.T) {
	c := qt.New(t)
	p, err := ParseCompact("1/a:10/b:3/out <== a / b")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Preprocess, qt.HasLen, 0)
	c.Assert(p.Circuit, qt.DeepEquals, []string{"out <== a / b"})
}

func TestParseCompactDivisionWithPreprocessSplit(t *testing.T) {
	c := qt.New(t)
	p, err := ParseCompact("1/a:10/b:3/h <== sha256(a{%x})/out <== a / b")
	c.Assert(err, qt.IsNil)
	c.Assert(p.Preprocess, qt.DeepEquals, []string{"h <== sha256(a{%x})"})
	c.Assert(p.Circuit, qt.DeepEquals, []string{"out <== a / b"})
}

func TestParseCompactInvalidSignalName(t *testing.T) {
	c := qt.New(t)
	_, err := ParseCompact("1/1bad:5/-/out <== 1")
	c.Assert(err, qt.ErrorMatches, ".*invalid signal name.*")
}

func TestParseCompactTooFewSegments(t *testing.T) {
	c := qt.New(t)
	_, err := ParseCompact("1/a/b")
	c.Assert(err, qt.ErrorMatches, ".*expected at least 4 slash-delimited segments.*")
}

func TestFormatCompactOmitsEmptyPreprocess(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Version: 1,
		Secret:  []types.Signal{{Name: "a", Value: types.PlaceholderValue()}},
		Circuit: []string{"out <== a"},
	}
	out, err := FormatCompact(p)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "1/a/-/out <== a")
}

func TestFormatCompactWithEncodedValue(t *testing.T) {
	c := qt.New(t)
	p, err := ParseCompact("1/a:0xdead:hex/-/out <== a")
	c.Assert(err, qt.IsNil)
	out, err := FormatCompact(p)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, "1/a:dead:hex/-/out <== a")
}

func TestCompactRoundTripThroughParseAndFormat(t *testing.T) {
	c := qt.New(t)
	src := "1/a:5,b:7/c:9/out <== a + b + c"
	p, err := ParseCompact(src)
	c.Assert(err, qt.IsNil)
	out, err := FormatCompact(p)
	c.Assert(err, qt.IsNil)
	p2, err := ParseCompact(out)
	c.Assert(err, qt.IsNil)
	c.Assert(p2.Circuit, qt.DeepEquals, p.Circuit)
	c.Assert(p2.Secret, qt.HasLen, 2)
}
