// Package strategy resolves and validates the four proof strategies of
// spec.md §4.6-§4.7: how ordering comparisons (and division remainders)
// get range-checked in the constraint system.
package strategy

import (
	"fmt"

	"github.com/zkplex/zkplex-core/errs"
	"github.com/zkplex/zkplex-core/lang"
	"github.com/zkplex/zkplex-core/types"
)

// Resolve turns a possibly-Auto strategy into a concrete one (spec.md
// §4.6's Auto rule): BitD when maxBits exceeds 16 or the program contains
// no ordering comparisons at all (in which case Boolean's restriction is
// moot and BitD is simply the cheaper no-op range checker), Lookup
// otherwise.
func Resolve(requested types.Strategy, stmts []lang.Statement, maxBits uint) (types.Strategy, error) {
	if !requested.Valid() {
		return "", errs.Strategy(fmt.Sprintf("unknown strategy %q", requested))
	}
	if requested != types.StrategyAuto {
		return requested, nil
	}
	if maxBits > 16 || !anyComparison(stmts) {
		return types.StrategyBitD, nil
	}
	return types.StrategyLookup, nil
}

// ValidateMaxBits rejects a configured max_bits outside spec.md §4.6's
// allowed range-check widths. AllowedMaxBits exists precisely so this
// check has something to consult instead of accepting any width.
func ValidateMaxBits(maxBits uint) error {
	if !types.ValidMaxBits(maxBits) {
		return errs.Range(fmt.Sprintf("max_bits must be one of %v", types.AllowedMaxBits))
	}
	return nil
}

// RejectWideComparisons statically rejects any ordering comparison whose
// operand is one of wideNames — signals produced by a hash call, whose
// output is wider than 64 bits regardless of the configured max_bits
// (spec.md §8.1 property 8, §8.2 scenario 4: "ordering on wide hash
// rejected"). This is a build-time, value-independent check: it never
// looks at what the hash actually evaluates to, only at whether the
// comparison's operand is structurally a hash-call result.
func RejectWideComparisons(stmts []lang.Statement, wideNames []string) error {
	if len(wideNames) == 0 {
		return nil
	}
	wide := make(map[string]bool, len(wideNames))
	for _, n := range wideNames {
		wide[n] = true
	}
	for _, stmt := range stmts {
		if comparesWideOperand(stmt.Expr, wide) {
			return errs.Range("max_bits must be ≤ 64 for ordering comparisons")
		}
	}
	return nil
}

func comparesWideOperand(n lang.Node, wide map[string]bool) bool {
	switch node := n.(type) {
	case *lang.BinaryNode:
		if node.Op.IsComparison() && (isWideName(node.Left, wide) || isWideName(node.Right, wide)) {
			return true
		}
		return comparesWideOperand(node.Left, wide) || comparesWideOperand(node.Right, wide)
	case *lang.UnaryNode:
		return comparesWideOperand(node.Operand, wide)
	default:
		return false
	}
}

func isWideName(n lang.Node, wide map[string]bool) bool {
	name, ok := n.(*lang.NameNode)
	return ok && wide[name.Name]
}

// Validate enforces spec.md §4.7's compatibility rules for a concrete
// (non-Auto) strategy against a set of parsed statements.
func Validate(strat types.Strategy, stmts []lang.Statement) error {
	switch strat {
	case types.StrategyBoolean:
		if anyComparison(stmts) {
			return errs.Strategy("boolean strategy does not support ordering comparisons (>, <, >=, <=)")
		}
		return nil
	case types.StrategyLookup, types.StrategyBitD:
		return nil
	case types.StrategyAuto:
		return errs.Strategy("strategy must be resolved to a concrete value before validation")
	default:
		return errs.Strategy(fmt.Sprintf("unknown strategy %q", strat))
	}
}

// MinK returns the smallest k satisfying strategy's row-count requirement
// given circuitRows and maxBits (spec.md §4.7):
//
//	Lookup requires k >= ceil(log2(2^N + circuit_rows))
//	BitD   requires k >= ceil(log2(circuit_rows))   (comparisons already
//	                                                  costed into circuitRows
//	                                                  at O(N) each by the
//	                                                  caller, per §4.6's
//	                                                  cost table)
func MinK(strat types.Strategy, circuitRows, maxBits uint) (int, error) {
	switch strat {
	case types.StrategyLookup:
		lookupRows := uint(1) << maxBits
		return ceilLog2(lookupRows + circuitRows), nil
	case types.StrategyBitD, types.StrategyBoolean:
		return ceilLog2(circuitRows), nil
	default:
		return 0, errs.Strategy(fmt.Sprintf("unknown strategy %q", strat))
	}
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

func anyComparison(stmts []lang.Statement) bool {
	for _, stmt := range stmts {
		if nodeHasComparison(stmt.Expr) {
			return true
		}
	}
	return false
}

func nodeHasComparison(n lang.Node) bool {
	switch node := n.(type) {
	case *lang.BinaryNode:
		if node.Op.IsComparison() {
			return true
		}
		return nodeHasComparison(node.Left) || nodeHasComparison(node.Right)
	case *lang.UnaryNode:
		return nodeHasComparison(node.Operand)
	default:
		return false
	}
}
