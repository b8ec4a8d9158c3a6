package constraint

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/zkplex/zkplex-core/errs"
	"github.com/zkplex/zkplex-core/lang"
)

// Emitter walks a parsed expression and emits the gnark gates computing its
// value, mirroring eval.Eval's semantics (spec.md §4.4) but producing
// frontend.Variable wires instead of field.Element constants.
type Emitter struct {
	api     frontend.API
	rc      RangeChecker
	maxBits int
	env     map[string]frontend.Variable
}

// NewEmitter constructs an Emitter over env, the signal-name-to-wire
// binding accumulated so far (spec.md §4.6: circuit statements execute in
// source order, extending this binding one assignment at a time).
func NewEmitter(api frontend.API, rc RangeChecker, maxBits int, env map[string]frontend.Variable) *Emitter {
	return &Emitter{api: api, rc: rc, maxBits: maxBits, env: env}
}

// Emit lowers expr to a single frontend.Variable wire.
func (e *Emitter) Emit(expr lang.Node) (frontend.Variable, error) {
	switch n := expr.(type) {
	case *lang.NumberNode:
		return frontend.Variable(n.Value), nil

	case *lang.NameNode:
		v, ok := e.env[n.Name]
		if !ok {
			return nil, errs.Name(fmt.Sprintf("undefined signal %q", n.Name), n.Name)
		}
		return v, nil

	case *lang.HashCallNode:
		return nil, errs.Runtime("hash call cannot be emitted directly; resolved during preprocessing")

	case *lang.UnaryNode:
		return e.emitUnary(n)

	case *lang.BinaryNode:
		return e.emitBinary(n)

	default:
		return nil, errs.Runtime("unknown expression node")
	}
}

func (e *Emitter) emitUnary(n *lang.UnaryNode) (frontend.Variable, error) {
	v, err := e.Emit(n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case lang.OpNeg:
		return e.api.Sub(0, v), nil
	case lang.OpNot:
		// 1 - bool(v), where bool(v) = 1 - IsZero(v), is IsZero(v).
		return e.api.IsZero(v), nil
	default:
		return nil, errs.Runtime("unknown unary operator " + string(n.Op))
	}
}

func (e *Emitter) emitBinary(n *lang.BinaryNode) (frontend.Variable, error) {
	l, err := e.Emit(n.Left)
	if err != nil {
		return nil, err
	}
	r, err := e.Emit(n.Right)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case lang.OpAdd:
		return e.api.Add(l, r), nil
	case lang.OpSub:
		return e.api.Sub(l, r), nil
	case lang.OpMul:
		return e.api.Mul(l, r), nil
	case lang.OpDiv:
		return e.emitDiv(l, r)
	case lang.OpEq:
		return e.api.IsZero(e.api.Sub(l, r)), nil
	case lang.OpNeq:
		return e.api.Sub(1, e.api.IsZero(e.api.Sub(l, r))), nil
	case lang.OpGt, lang.OpLt, lang.OpGe, lang.OpLe:
		// Boolean-strategy programs never reach here with a comparison
		// node: Builder.Build statically rejects them first (spec.md
		// §4.6). e.rc is still a concrete checker in that case, only
		// ever exercised by emitDiv.
		return Compare(e.api, e.rc, n.Op, l, r, e.maxBits), nil
	case lang.OpAnd:
		lb, rb := e.api.Sub(1, e.api.IsZero(l)), e.api.Sub(1, e.api.IsZero(r))
		return e.api.Mul(lb, rb), nil
	case lang.OpOr:
		lb, rb := e.api.Sub(1, e.api.IsZero(l)), e.api.Sub(1, e.api.IsZero(r))
		return e.api.Sub(e.api.Add(lb, rb), e.api.Mul(lb, rb)), nil
	default:
		return nil, errs.Runtime("unknown binary operator " + string(n.Op))
	}
}

// emitDiv lowers non-negative floor division a/b (spec.md §3.6) using the
// same quotRemHint that backs the comparator's top-bit split: the prover
// supplies q,r with a == q*b+r, and r is range-checked to maxBits so it
// cannot silently wrap the field. The divisor is constrained to be
// nonzero, so a zero divisor makes proving fail.
func (e *Emitter) emitDiv(a, b frontend.Variable) (frontend.Variable, error) {
	e.api.AssertIsDifferent(b, 0)
	outs, err := e.api.Compiler().NewHint(quotRemHint, 2, a, b)
	if err != nil {
		return nil, errs.Runtime("division hint failed: " + err.Error())
	}
	q, r := outs[0], outs[1]
	e.rc.Check(e.api, r, e.maxBits)
	e.api.AssertIsEqual(a, e.api.Add(e.api.Mul(q, b), r))
	return q, nil
}
