// Package estimator computes circuit-resource estimates (row counts, k,
// artifact sizes) for a Zircon program under a candidate strategy, without
// invoking the proving library (spec.md §4.8).
package estimator

import (
	"fmt"

	"github.com/zkplex/zkplex-core/lang"
	"github.com/zkplex/zkplex-core/strategy"
	"github.com/zkplex/zkplex-core/types"
)

// blindingRows is the minimum extra row budget reserved by the proving
// library for zero-knowledge blinding (spec.md §4.8).
const blindingRows = 10

// gateCost is the per-construct row cost table of spec.md §4.6.
var gateCost = map[lang.Op]uint{
	lang.OpAdd: 1, lang.OpSub: 1, lang.OpMul: 1,
	lang.OpEq: 3, lang.OpNeq: 3,
	lang.OpAnd: 6, lang.OpOr: 7, lang.OpNot: 3,
}

// Report is the estimator's structured result (spec.md §4.8: "the
// estimator must expose these as structured fields, not guesses").
type Report struct {
	MaxBits         uint
	CircuitRows     uint
	LookupRows      uint
	K               int
	Strategy        types.Strategy
	Compatible      bool
	Incompatible    string // non-empty reason when Compatible is false
	Suggestions     []string
	ProofSizeBytes  int
	VKSizeBytes     int
	ParamsSizeBytes int
}

// Estimate computes a Report for stmts (preprocess+circuit statements
// combined, already parsed) under requested, resolving Auto first.
func Estimate(stmts []lang.Statement, requested types.Strategy, maxBits uint) (*Report, error) {
	resolved, err := strategy.Resolve(requested, stmts, maxBits)
	if err != nil {
		return nil, err
	}

	rows := circuitRows(stmts, resolved, maxBits)
	lookupRows := uint(0)
	if resolved == types.StrategyLookup {
		lookupRows = uint(1) << maxBits
	}
	// spec.md §4.8: k is the smallest integer such that 2^k covers
	// circuit_rows + lookup_rows + a fixed blinding reserve.
	k := ceilLog2(rows + lookupRows + blindingRows)

	rep := &Report{
		MaxBits:     maxBits,
		CircuitRows: rows,
		LookupRows:  lookupRows,
		K:           k,
		Strategy:    resolved,
		Compatible:  true,
	}

	if verr := strategy.Validate(resolved, stmts); verr != nil {
		rep.Compatible = false
		rep.Incompatible = verr.Error()
	}

	rep.Suggestions = suggest(stmts)
	rep.ProofSizeBytes, rep.VKSizeBytes, rep.ParamsSizeBytes = artifactSizes(k, resolved)
	return rep, nil
}

// circuitRows sums the shared-gate cost table plus the strategy-dependent
// range-check cost for every ordering comparison and division (spec.md
// §4.6).
func circuitRows(stmts []lang.Statement, strat types.Strategy, maxBits uint) uint {
	var total uint
	var walk func(n lang.Node)
	walk = func(n lang.Node) {
		switch node := n.(type) {
		case *lang.BinaryNode:
			walk(node.Left)
			walk(node.Right)
			if node.Op.IsComparison() {
				total += rangeCheckCost(strat, maxBits)
				return
			}
			if node.Op == lang.OpDiv {
				total += 1 + rangeCheckCost(strat, maxBits)
				return
			}
			total += gateCost[node.Op]
		case *lang.UnaryNode:
			walk(node.Operand)
			total += gateCost[node.Op]
		}
	}
	for _, stmt := range stmts {
		walk(stmt.Expr)
		total++ // x <== e / constraint evaluation cell, spec.md §4.6
	}
	return total
}

// rangeCheckCost is the strategy-dependent cost of one range check
// (spec.md §4.6): N+2 for BitD, ~1 for Lookup (the shared table itself is
// costed separately as lookupRows).
func rangeCheckCost(strat types.Strategy, maxBits uint) uint {
	switch strat {
	case types.StrategyLookup:
		return 1
	default: // BitD, Boolean (never actually reached for Boolean)
		return maxBits + 2
	}
}

// suggest proposes mechanical rewrites that reduce row cost (spec.md
// §4.8's example: "replace a>=k;a<=k with a==k to drop two range
// checks"). It only recognizes that specific redundant-bound pattern.
func suggest(stmts []lang.Statement) []string {
	var out []string
	for i := 0; i+1 < len(stmts); i++ {
		a, ok1 := stmts[i].Expr.(*lang.BinaryNode)
		b, ok2 := stmts[i+1].Expr.(*lang.BinaryNode)
		if !ok1 || !ok2 {
			continue
		}
		if isBoundPair(a, b) {
			out = append(out, fmt.Sprintf("statements %d-%d form a tight two-sided bound; consider a single == constraint", i+1, i+2))
		}
	}
	return out
}

func isBoundPair(a, b *lang.BinaryNode) bool {
	if a.Op != lang.OpGe && a.Op != lang.OpLe {
		return false
	}
	if b.Op != lang.OpGe && b.Op != lang.OpLe {
		return false
	}
	return a.Op != b.Op && sameOperands(a, b)
}

func sameOperands(a, b *lang.BinaryNode) bool {
	an, aok := a.Left.(*lang.NameNode)
	bn, bok := b.Left.(*lang.NameNode)
	if !aok || !bok || an.Name != bn.Name {
		return false
	}
	switch ar := a.Right.(type) {
	case *lang.NameNode:
		br, ok := b.Right.(*lang.NameNode)
		return ok && ar.Name == br.Name
	case *lang.NumberNode:
		br, ok := b.Right.(*lang.NumberNode)
		return ok && ar.Value == br.Value
	}
	return false
}

// artifactSizes derives approximate proof/VK/params byte sizes from k and
// strategy column counts, per the proving library's documented PLONK
// formulas (spec.md §4.8). gnark's PLONK proofs are a fixed number of
// BN254 group/field elements regardless of k, and so is the VK here;
// params scale with 2^k.
func artifactSizes(k int, strat types.Strategy) (proof, vk, params int) {
	const g1 = 32 // compressed BN254 G1 point
	const fr = 32 // BN254 scalar

	columns := 5 // gnark PLONK's standard gate width
	if strat == types.StrategyLookup {
		columns++ // extra lookup-argument commitment
	}
	proof = columns*g1 + 4*fr
	vk = columns*g1 + 2*fr
	rows := 1 << k
	params = rows * g1 * 2 // SRS-derived commitment key scales with row count
	return proof, vk, params
}

func ceilLog2(n uint) int {
	if n <= 1 {
		return 0
	}
	k, pow := 0, uint(1)
	for pow < n {
		pow <<= 1
		k++
	}
	return k
}
