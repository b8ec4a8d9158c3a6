package estimator

import (
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

func TestEstimateSimpleAddition(t *testing.T) {
	c := qt.New(t)
	stmts := []lang.Statement{mustStmt(c, "out <== a + b")}
	rep, err := Estimate(stmts, types.StrategyBitD, 32)
	c.Assert(err, qt.IsNil)
	c.Assert(rep.Compatible, qt.IsTrue)
	c.Assert(rep.Strategy, qt.Equals, types.StrategyBitD)
	c.Assert(rep.CircuitRows, qt.Equals, uint(2)) // gateCost[Add]=1 + 1 statement cell
	c.Assert(rep.LookupRows, qt.Equals, uint(0))
}

func TestEstimateLookupComparisonCostsTableRows(t *testing.T) {
	c := qt.New(t)
	stmts := []lang.Statement{mustStmt(c, "a < b")}
	rep, err := Estimate(stmts, types.StrategyLookup, 8)
	c.Assert(err, qt.IsNil)
	c.Assert(rep.LookupRows, qt.Equals, uint(1<<8))
	c.Assert(rep.Strategy, qt.Equals, types.StrategyLookup)
}

func TestEstimateBooleanIncompatibleWithComparison(t *testing.T) {
	c := qt.New(t)
	stmts := []lang.Statement{mustStmt(c, "a < b")}
	rep, err := Estimate(stmts, types.StrategyBoolean, 32)
	c.Assert(err, qt.IsNil)
	c.Assert(rep.Compatible, qt.IsFalse)
	c.Assert(rep.Incompatible, qt.Matches, ".*boolean strategy does not support ordering comparisons.*")
}

func TestEstimateAutoResolvesStrategy(t *testing.T) {
	c := qt.New(t)
	stmts := []lang.Statement{mustStmt(c, "out <== a + b")}
	rep, err := Estimate(stmts, types.StrategyAuto, 32)
	c.Assert(err, qt.IsNil)
	c.Assert(rep.Strategy, qt.Equals, types.StrategyBitD)
}

func TestEstimateRejectsUnknownStrategy(t *testing.T) {
	c := qt.New(t)
	stmts := []lang.Statement{mustStmt(c, "out <== a + b")}
	_, err := Estimate(stmts, types.Strategy("bogus"), 32)
	c.Assert(err, qt.Not(qt.IsNil))
}

func TestEstimateSuggestsTightBoundMerge(t *testing.T) {
	c := qt.New(t)
	stmts := []lang.Statement{
		mustStmt(c, "a >= k"),
		mustStmt(c, "a <= k"),
	}
	rep, err := Estimate(stmts, types.StrategyBitD, 32)
	c.Assert(err, qt.IsNil)
	c.Assert(rep.Suggestions, qt.HasLen, 1)
	c.Assert(rep.Suggestions[0], qt.Matches, ".*tight two-sided bound.*")
}

func TestEstimateArtifactSizesGrowWithLookupColumn(t *testing.T) {
	c := qt.New(t)
	stmts := []lang.Statement{mustStmt(c, "out <== a + b")}
	repBitD, err := Estimate(stmts, types.StrategyBitD, 32)
	c.Assert(err, qt.IsNil)
	repLookup, err := Estimate(stmts, types.StrategyLookup, 32)
	c.Assert(err, qt.IsNil)
	c.Assert(repLookup.ProofSizeBytes > repBitD.ProofSizeBytes, qt.IsTrue)
	c.Assert(repLookup.VKSizeBytes > repBitD.VKSizeBytes, qt.IsTrue)
}
