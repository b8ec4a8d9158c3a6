package preprocess

import (
	"fmt"
	"math/big"

	"github.com/zkplex/zkplex-core/codec"
	"github.com/zkplex/zkplex-core/errs"
	"github.com/zkplex/zkplex-core/eval"
	"github.com/zkplex/zkplex-core/field"
	"github.com/zkplex/zkplex-core/lang"
	"github.com/zkplex/zkplex-core/types"
)

// Engine executes a sequence of preprocess statements (spec.md §4.5),
// extending env after every assignment. Preprocess statements execute
// strictly in source order (spec.md §5); Engine never reorders them.
type Engine struct {
	env map[string]types.Value
}

// NewEngine seeds an Engine with the program's known signal values (the
// secret/public signals after overrides, spec.md §4.2).
func NewEngine(known map[string]types.Value) *Engine {
	env := make(map[string]types.Value, len(known))
	for k, v := range known {
		env[k] = v
	}
	return &Engine{env: env}
}

// Env returns the accumulated signal values after Run. The Engine itself,
// through Lookup, satisfies eval.Env for field-arithmetic evaluation.
func (e *Engine) Env() map[string]types.Value { return e.env }

func (e *Engine) Lookup(name string) (field.Element, bool, error) {
	v, ok := e.env[name]
	if !ok {
		return field.Element{}, false, nil
	}
	if v.IsPlaceholder() {
		return field.Element{}, false, nil
	}
	return v.FieldElement(), true, nil
}

// Run executes stmts in order. maxBits bounds ordering comparisons that
// may legally appear in a preprocess expression, though hash arguments
// never participate in comparisons directly (spec.md §4.6 only applies
// ordering to signal values, and a hash's output signal is later subject
// to the same width checks as any other signal).
func (e *Engine) Run(stmts []lang.Statement, maxBits uint) error {
	for _, stmt := range stmts {
		if err := e.runOne(stmt, maxBits); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) runOne(stmt lang.Statement, maxBits uint) error {
	if hc, ok := stmt.Expr.(*lang.HashCallNode); ok && stmt.Kind == lang.KindAssignment {
		return e.runHashAssignment(stmt.Target, hc)
	}
	v, err := eval.Eval(stmt.Expr, e, eval.Options{MaxBits: maxBits})
	if err != nil {
		return err
	}
	switch stmt.Kind {
	case lang.KindAssignment:
		if _, exists := e.env[stmt.Target]; exists {
			return errs.Name(fmt.Sprintf("signal %q already defined", stmt.Target), stmt.Target)
		}
		e.env[stmt.Target] = types.Value{Int: v.BigInt(), Bytes: v.BigInt().Bytes()}
		return nil
	case lang.KindConstraint:
		if !v.Equal(field.FromUint64(1)) {
			return errs.Semantics("preprocess constraint did not hold: " + stmt.Source)
		}
		return nil
	default:
		return errs.Runtime("unknown statement kind")
	}
}

// runHashAssignment implements spec.md §4.5's three steps: format each
// argument, concatenate with no separator (the surface syntax's "|" is
// purely grammatical), then feed the primitive.
func (e *Engine) runHashAssignment(target string, hc *lang.HashCallNode) error {
	if _, exists := e.env[target]; exists {
		return errs.Name(fmt.Sprintf("signal %q already defined", target), target)
	}
	var concatenated []byte
	for _, arg := range hc.Args {
		v, ok := e.env[arg.Name]
		if !ok {
			return errs.Name(fmt.Sprintf("undefined signal %q referenced in hash call", arg.Name), arg.Name)
		}
		if v.IsPlaceholder() {
			return errs.Semantics(fmt.Sprintf("signal %q has no value at hash-call time", arg.Name)).WithSignal(arg.Name)
		}
		formatted, err := codec.FormatArg(v, arg.Format)
		if err != nil {
			return errs.Parse(err.Error())
		}
		concatenated = append(concatenated, formatted...)
	}
	digest, err := computeHash(hc.Hash, concatenated)
	if err != nil {
		return err
	}
	e.env[target] = types.Value{Int: digest.BigInt(), Bytes: digest.BigInt().Bytes()}
	return nil
}

// HashDerivedNames returns the preprocess-assignment targets whose value
// comes directly from a hash call. Every primitive except crc32 (32 bits)
// yields a digest wider than 64 bits (spec.md §8.1 property 8); callers
// use this set, crc32 targets included, to reject ordering comparisons on
// these names before building the circuit, independent of what the hash
// actually evaluates to.
func HashDerivedNames(stmts []lang.Statement) []string {
	var out []string
	for _, stmt := range stmts {
		if stmt.Kind != lang.KindAssignment {
			continue
		}
		if _, ok := stmt.Expr.(*lang.HashCallNode); ok {
			out = append(out, stmt.Target)
		}
	}
	return out
}

// DAGCheck verifies that assignments across preprocess+circuit reference
// only prior names and never cycle (spec.md §3.7). It is a pure
// name-order check, independent of values, so it can run before any
// override is applied.
func DAGCheck(known map[string]bool, stmts []lang.Statement) error {
	defined := make(map[string]bool, len(known))
	for k := range known {
		defined[k] = true
	}
	for _, stmt := range stmts {
		if err := checkNamesDefined(stmt.Expr, defined); err != nil {
			return err
		}
		if stmt.Kind == lang.KindAssignment {
			if defined[stmt.Target] {
				return errs.Semantics(fmt.Sprintf("signal %q assigned more than once", stmt.Target)).WithSignal(stmt.Target)
			}
			defined[stmt.Target] = true
		}
	}
	return nil
}

func checkNamesDefined(n lang.Node, defined map[string]bool) error {
	switch node := n.(type) {
	case *lang.NumberNode:
		return nil
	case *lang.NameNode:
		if !defined[node.Name] {
			return errs.Name(fmt.Sprintf("undefined signal %q", node.Name), node.Name)
		}
		return nil
	case *lang.HashCallNode:
		for _, a := range node.Args {
			if !defined[a.Name] {
				return errs.Name(fmt.Sprintf("undefined signal %q", a.Name), a.Name)
			}
		}
		return nil
	case *lang.UnaryNode:
		return checkNamesDefined(node.Operand, defined)
	case *lang.BinaryNode:
		if err := checkNamesDefined(node.Left, defined); err != nil {
			return err
		}
		return checkNamesDefined(node.Right, defined)
	default:
		return errs.Runtime("unknown expression node")
	}
}

// bigZero is a shared zero big.Int. Nothing in the module reads it.
var bigZero = big.NewInt(0)
