package constraint

import (
	"errors"
	"math/big"
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/zkplex/zkplex-core/lang"
	"github.com/zkplex/zkplex-core/types"
)

func mustStmt(c *qt.C, src string) lang.Statement {
	stmt, err := lang.ParseStatement(src, false)
	c.Assert(err, qt.IsNil)
	return stmt
}

func TestOutputNameFromAssignment(t *testing.T) {
	c := qt.New(t)
	stmts := []lang.Statement{mustStmt(c, "out <== a + b")}
	c.Assert(OutputName(stmts), qt.Equals, "out")
}

func TestOutputNameFromBareExpression(t *testing.T) {
	c := qt.New(t)
	stmts := []lang.Statement{mustStmt(c, "a == b")}
	c.Assert(OutputName(stmts), qt.Equals, syntheticOutputName)
}

func TestOutputNameEmptyStatements(t *testing.T) {
	c := qt.New(t)
	c.Assert(OutputName(nil), qt.Equals, "")
}

func TestBuildAssignsSlotsInOrder(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Secret:  []types.Signal{{Name: "a"}},
		Public:  []types.Signal{{Name: "b"}},
		Circuit: []string{"out <== a + b"},
	}
	b := &Builder{MaxBits: 32, Strategy: types.StrategyBitD}
	circ, err := b.Build(p, []string{"derived1"})
	c.Assert(err, qt.IsNil)
	c.Assert(circ.SecretNames(), qt.DeepEquals, []string{"a", "derived1"})
	c.Assert(circ.PublicNames(), qt.DeepEquals, []string{"b"})
	c.Assert(circ.OutputSignal(), qt.Equals, "out")
	c.Assert(circ.Secret, qt.HasLen, 2)
	c.Assert(circ.Public, qt.HasLen, 1)
}

func TestBuildRejectsEmptyCircuit(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{}
	b := &Builder{MaxBits: 32, Strategy: types.StrategyBitD}
	_, err := b.Build(p, nil)
	c.Assert(err, qt.ErrorMatches, ".*no circuit statements.*")
}

func TestBuildBooleanRejectsComparison(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Secret:  []types.Signal{{Name: "a"}, {Name: "b"}},
		Circuit: []string{"a < b"},
	}
	b := &Builder{MaxBits: 32, Strategy: types.StrategyBoolean}
	_, err := b.Build(p, nil)
	c.Assert(errors.Is(err, ErrBooleanRangeCheck), qt.IsTrue)
}

func TestBuildBooleanAllowsDivision(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Secret:  []types.Signal{{Name: "a"}, {Name: "b"}},
		Circuit: []string{"out <== a / b"},
	}
	b := &Builder{MaxBits: 32, Strategy: types.StrategyBoolean}
	circ, err := b.Build(p, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(circ.OutputSignal(), qt.Equals, "out")
}

func TestDesignatedOutputFindsUnreferencedPublicPlaceholder(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Secret: []types.Signal{{Name: "age"}},
		Public: []types.Signal{{Name: "result", Value: types.PlaceholderValue()}},
	}
	circuitStmts := []lang.Statement{mustStmt(c, "age>=18")}
	name, ok := DesignatedOutput(p, nil, circuitStmts)
	c.Assert(ok, qt.IsTrue)
	c.Assert(name, qt.Equals, "result")
}

func TestDesignatedOutputNoneWhenPlaceholderReferenced(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Secret: []types.Signal{{Name: "age"}},
		Public: []types.Signal{{Name: "result", Value: types.PlaceholderValue()}},
	}
	circuitStmts := []lang.Statement{mustStmt(c, "out <== age + result")}
	_, ok := DesignatedOutput(p, nil, circuitStmts)
	c.Assert(ok, qt.IsFalse)
}

func TestDesignatedOutputNoneWhenSignalHasValue(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Secret: []types.Signal{{Name: "age"}},
		Public: []types.Signal{{Name: "result", Value: types.Value{Int: big.NewInt(1)}}},
	}
	circuitStmts := []lang.Statement{mustStmt(c, "age>=18")}
	_, ok := DesignatedOutput(p, nil, circuitStmts)
	c.Assert(ok, qt.IsFalse)
}

func TestBuildUsesOutputOverrideForBareExpression(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Secret:  []types.Signal{{Name: "age"}},
		Public:  []types.Signal{{Name: "result", Value: types.PlaceholderValue()}},
		Circuit: []string{"age>=18"},
	}
	b := &Builder{MaxBits: 32, Strategy: types.StrategyBitD, OutputOverride: "result"}
	circ, err := b.Build(p, nil)
	c.Assert(err, qt.IsNil)
	c.Assert(circ.OutputSignal(), qt.Equals, "result")
	c.Assert(circ.PublicNames(), qt.HasLen, 0)
}

func TestBuildRejectsInvalidMaxBits(t *testing.T) {
	c := qt.New(t)
	p := &types.Program{
		Secret:  []types.Signal{{Name: "a"}},
		Circuit: []string{"out <== a + 1"},
	}
	b := &Builder{MaxBits: 24, Strategy: types.StrategyBitD}
	_, err := b.Build(p, nil)
	c.Assert(err, qt.ErrorMatches, ".*max_bits must be one of.*")
}

func TestContainsComparisonNested(t *testing.T) {
	c := qt.New(t)
	stmt := mustStmt(c, "out <== (a + 1) < b")
	c.Assert(containsComparison(stmt.Expr), qt.IsTrue)

	stmt2 := mustStmt(c, "out <== a + b")
	c.Assert(containsComparison(stmt2.Expr), qt.IsFalse)
}
