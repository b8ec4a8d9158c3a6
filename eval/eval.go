// Package eval implements the pure field-arithmetic evaluator of
// spec.md §4.4, used to compute witness values and, during verification,
// to optimistically evaluate expressions whose secret operands are
// unknown (spec.md §4.9 step 3).
package eval

import (
	"math/big"

	"github.com/zkplex/zkplex-core/errs"
	"github.com/zkplex/zkplex-core/field"
	"github.com/zkplex/zkplex-core/lang"
)

// Env maps signal names to field elements. A name mapping to (Element{},
// false) in Lookup models a secret value unknown to the verifier
// (spec.md §4.9 step 3): Eval propagates that as ErrUnknown rather than
// failing, so callers can distinguish "truly undefined" from "known to
// exist but not known to this evaluator".
type Env interface {
	Lookup(name string) (field.Element, bool, error)
}

// MapEnv is the simplest Env: a concrete map of known values.
type MapEnv map[string]field.Element

func (m MapEnv) Lookup(name string) (field.Element, bool, error) {
	v, ok := m[name]
	return v, ok, nil
}

// ErrUnknown is returned by Eval when a sub-expression cannot be computed
// because one of its operands is not present in Env (spec.md §4.9 step 3).
// It is not a real error: callers performing optimistic evaluation should
// treat it as "skip this witness assignment".
var ErrUnknown = errs.Runtime("value unknown to this evaluator")

// MaxBits governs the width ordering comparisons are checked against
// (spec.md §3.1, §4.6); it must match the program's cached_max_bits during
// verification.
type Options struct {
	MaxBits uint
}

// Eval computes expr's value under env (spec.md §4.4's semantics table).
func Eval(expr lang.Node, env Env, opt Options) (field.Element, error) {
	switch n := expr.(type) {
	case *lang.NumberNode:
		v, ok := new(big.Int).SetString(n.Value, 10)
		if !ok {
			return field.Element{}, errs.Runtime("invalid number literal " + n.Value)
		}
		return field.FromBigInt(v), nil

	case *lang.NameNode:
		v, ok, err := env.Lookup(n.Name)
		if err != nil {
			return field.Element{}, err
		}
		if !ok {
			return field.Element{}, ErrUnknown
		}
		return v, nil

	case *lang.HashCallNode:
		// Hash calls are resolved by the preprocess engine before an
		// assignment's evaluation begins; by the time the circuit
		// evaluator sees a signal, the hash's result already lives in
		// env under the assigned name. A bare HashCallNode reaching
		// Eval means it was referenced directly in a non-assignment
		// position, which the parser already prevents producing
		// meaningfully, but we fail closed regardless.
		return field.Element{}, errs.Runtime("hash call cannot be evaluated directly")

	case *lang.UnaryNode:
		return evalUnary(n, env, opt)

	case *lang.BinaryNode:
		return evalBinary(n, env, opt)

	default:
		return field.Element{}, errs.Runtime("unknown expression node")
	}
}

func evalUnary(n *lang.UnaryNode, env Env, opt Options) (field.Element, error) {
	v, err := Eval(n.Operand, env, opt)
	if err != nil {
		return field.Element{}, err
	}
	switch n.Op {
	case lang.OpNeg:
		return field.FromUint64(0).Sub(v), nil
	case lang.OpNot:
		return field.FromUint64(1).Sub(v.Bool()), nil
	default:
		return field.Element{}, errs.Runtime("unknown unary operator " + string(n.Op))
	}
}

func evalBinary(n *lang.BinaryNode, env Env, opt Options) (field.Element, error) {
	l, err := Eval(n.Left, env, opt)
	if err != nil {
		return field.Element{}, err
	}
	r, err := Eval(n.Right, env, opt)
	if err != nil {
		return field.Element{}, err
	}
	switch n.Op {
	case lang.OpAdd:
		return l.Add(r), nil
	case lang.OpSub:
		return l.Sub(r), nil
	case lang.OpMul:
		return l.Mul(r), nil
	case lang.OpDiv:
		return evalDiv(l, r)
	case lang.OpEq:
		if l.Equal(r) {
			return field.FromUint64(1), nil
		}
		return field.FromUint64(0), nil
	case lang.OpNeq:
		if l.Equal(r) {
			return field.FromUint64(0), nil
		}
		return field.FromUint64(1), nil
	case lang.OpGt, lang.OpLt, lang.OpGe, lang.OpLe:
		return evalCompare(n.Op, l, r, opt.MaxBits)
	case lang.OpAnd:
		lb, rb := l.Bool(), r.Bool()
		if lb.IsZero() || rb.IsZero() {
			return field.FromUint64(0), nil
		}
		return field.FromUint64(1), nil
	case lang.OpOr:
		lb, rb := l.Bool(), r.Bool()
		if lb.IsZero() && rb.IsZero() {
			return field.FromUint64(0), nil
		}
		return field.FromUint64(1), nil
	default:
		return field.Element{}, errs.Runtime("unknown binary operator " + string(n.Op))
	}
}

// evalDiv implements floor division over the non-negative integers
// (spec.md §3.6): defined only for a nonzero divisor.
func evalDiv(l, r field.Element) (field.Element, error) {
	if r.IsZero() {
		return field.Element{}, errs.Runtime("division by zero")
	}
	q := new(big.Int).Quo(l.BigInt(), r.BigInt())
	return field.FromBigInt(q), nil
}

// evalCompare implements ordering comparisons over [0, 2^max_bits)
// integers (spec.md §4.4). Operands exceeding max_bits are a Range error,
// not a silent wraparound.
func evalCompare(op lang.Op, l, r field.Element, maxBits uint) (field.Element, error) {
	if !l.Fits(maxBits) || !r.Fits(maxBits) {
		return field.Element{}, errs.Range("ordering comparison operand exceeds max_bits").WithOp(string(op))
	}
	cmp := l.BigInt().Cmp(r.BigInt())
	var result bool
	switch op {
	case lang.OpGt:
		result = cmp > 0
	case lang.OpLt:
		result = cmp < 0
	case lang.OpGe:
		result = cmp >= 0
	case lang.OpLe:
		result = cmp <= 0
	}
	if result {
		return field.FromUint64(1), nil
	}
	return field.FromUint64(0), nil
}
