package lang

import (
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestCompactToStructuredAndBack(t *testing.T) {
	c := qt.New(t)
	src := "1/a:5/b:7/out <== a + b"
	sp, err := CompactToStructured(src)
	c.Assert(err, qt.IsNil)
	c.Assert(sp.Secret["a"].Value, qt.Equals, "5")

	back, err := StructuredToCompact(sp)
	c.Assert(err, qt.IsNil)
	c.Assert(back, qt.Equals, src)
}

func TestRoundtripIsStable(t *testing.T) {
	c := qt.New(t)
	src := "1/a:5/-/out <== a"
	out, err := Roundtrip(src)
	c.Assert(err, qt.IsNil)
	c.Assert(out, qt.Equals, src)
}

func TestProgramFromCompactAndStructuredAgree(t *testing.T) {
	c := qt.New(t)
	src := "1/a:5/b:7/out <== a + b"
	p1, err := ProgramFromCompact(src)
	c.Assert(err, qt.IsNil)

	sp, err := CompactToStructured(src)
	c.Assert(err, qt.IsNil)
	p2, err := ProgramFromStructured(sp)
	c.Assert(err, qt.IsNil)

	c.Assert(p1.Circuit, qt.DeepEquals, p2.Circuit)
	c.Assert(p1.Secret[0].Value.Int.String(), qt.Equals, p2.Secret[0].Value.Int.String())
}
