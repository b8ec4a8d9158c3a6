package types

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"
)

func TestAllSignalsOrder(t *testing.T) {
	c := qt.New(t)
	p := &Program{
		Secret: []Signal{{Name: "a"}},
		Public: []Signal{{Name: "b"}},
	}
	all := p.AllSignals()
	c.Assert(len(all), qt.Equals, 2)
	c.Assert(all[0].Name, qt.Equals, "a")
	c.Assert(all[1].Name, qt.Equals, "b")
}

func TestLookup(t *testing.T) {
	c := qt.New(t)
	p := &Program{
		Secret: []Signal{{Name: "x"}},
		Public: []Signal{{Name: "y"}},
	}
	s, ok := p.Lookup("y")
	c.Assert(ok, qt.IsTrue)
	c.Assert(s.Name, qt.Equals, "y")

	_, ok = p.Lookup("z")
	c.Assert(ok, qt.IsFalse)
}

func TestApplyOverridesReplacesPlaceholder(t *testing.T) {
	c := qt.New(t)
	p := &Program{
		Secret: []Signal{{Name: "a", Value: PlaceholderValue()}},
	}
	err := p.ApplyOverrides(map[string]Value{"a": {Int: big.NewInt(7), Bytes: []byte("7")}})
	c.Assert(err, qt.IsNil)
	c.Assert(p.Secret[0].Value.Int.String(), qt.Equals, "7")
}

func TestApplyOverridesRejectsAlreadySet(t *testing.T) {
	c := qt.New(t)
	p := &Program{
		Secret: []Signal{{Name: "a", Value: Value{Int: big.NewInt(1), Bytes: []byte("1")}}},
	}
	err := p.ApplyOverrides(map[string]Value{"a": {Int: big.NewInt(2), Bytes: []byte("2")}})
	c.Assert(err, qt.ErrorMatches, ".*already has a value.*")
}

func TestApplyOverridesRejectsUndeclaredName(t *testing.T) {
	c := qt.New(t)
	p := &Program{Secret: []Signal{{Name: "a", Value: PlaceholderValue()}}}
	err := p.ApplyOverrides(map[string]Value{"ghost": {Int: big.NewInt(1)}})
	c.Assert(err, qt.ErrorMatches, ".*undeclared signal.*")
}

func TestValidateNamespaceRejectsDuplicate(t *testing.T) {
	c := qt.New(t)
	p := &Program{
		Secret: []Signal{{Name: "a"}},
		Public: []Signal{{Name: "a"}},
	}
	err := p.ValidateNamespace()
	c.Assert(err, qt.ErrorMatches, ".*declared in both.*")
}

func TestValidateNamespaceRejectsBadName(t *testing.T) {
	c := qt.New(t)
	p := &Program{Secret: []Signal{{Name: "1bad"}}}
	err := p.ValidateNamespace()
	c.Assert(err, qt.ErrorMatches, ".*invalid signal name.*")
}

func TestValidateNamespaceOK(t *testing.T) {
	c := qt.New(t)
	p := &Program{
		Secret: []Signal{{Name: "a"}},
		Public: []Signal{{Name: "b"}},
	}
	c.Assert(p.ValidateNamespace(), qt.IsNil)
}
