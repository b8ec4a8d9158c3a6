package lang

import (
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/zkplex/zkplex-core/types"
)

func TestStructuredToProgram(t *testing.T) {
	c := qt.New(t)
	sp := &StructuredProgram{
		Version: 1,
		Secret:  map[string]StructuredSignal{"a": {Value: "5"}},
		Public:  map[string]StructuredSignal{"b": {Value: "0xff", Encoding: "hex"}},
		Circuit: []string{"out <== a + b"},
	}
	p, err := sp.ToProgram()
	c.Assert(err, qt.IsNil)
	c.Assert(p.Version, qt.Equals, 1)
	c.Assert(p.Secret, qt.HasLen, 1)
	c.Assert(p.Secret[0].Value.Int.String(), qt.Equals, "5")
	c.Assert(p.Public[0].Encoding, qt.Equals, types.EncodingHex)
}

func TestStructuredToProgramPlaceholder(t *testing.T) {
	c := qt.New(t)
	sp := &StructuredProgram{
		Version: 1,
		Secret:  map[string]StructuredSignal{"a": {}},
		Public:  map[string]StructuredSignal{},
		Circuit: []string{"a == 1"},
	}
	p, err := sp.ToProgram()
	c.Assert(err, qt.IsNil)
	c.Assert(p.Secret[0].Value.IsPlaceholder(), qt.IsTrue)
}

func TestFromProgramEncodesValues(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Version: 1,
		Secret: []types.Signal{
			{Name: "a", Value: types.PlaceholderValue()},
		},
		Public: []types.Signal{
			{Name: "b", Value: types.Value{Int: big.NewInt(12), Bytes: []byte("12")}, Encoding: types.EncodingDecimal},
		},
		Circuit: []string{"out <== a + b"},
	}
	sp, err := FromProgram(p)
	c.Assert(err, qt.IsNil)
	c.Assert(sp.Secret["a"].Value, qt.Equals, "")
	c.Assert(sp.Public["b"].Value, qt.Equals, "12")
	c.Assert(sp.Public["b"].Encoding, qt.Equals, "decimal")
}

func TestStructuredProgramJSONRoundTrip(t *testing.T) {
	c := qt.New(t)
	sp := &StructuredProgram{
		Version: 1,
		Secret:  map[string]StructuredSignal{"a": {Value: "5"}},
		Public:  map[string]StructuredSignal{},
		Circuit: []string{"out <== a"},
	}
	data, err := sp.MarshalJSON()
	c.Assert(err, qt.IsNil)

	var out StructuredProgram
	c.Assert(out.UnmarshalJSON(data), qt.IsNil)
	c.Assert(out.Version, qt.Equals, 1)
	c.Assert(out.Secret["a"].Value, qt.Equals, "5")
	c.Assert(out.Circuit, qt.DeepEquals, []string{"out <== a"})
}

func TestStructuredUnknownEncodingRejected(t *testing.T) {
	c := qt.New(t)
	sp := &StructuredProgram{
		Secret: map[string]StructuredSignal{"a": {Value: "5", Encoding: "rot13"}},
		Public: map[string]StructuredSignal{},
	}
	_, err := sp.ToProgram()
	c.Assert(err, qt.ErrorMatches, ".*unknown encoding.*")
}
