package constraint

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/zkplex/zkplex-core/errs"
	"github.com/zkplex/zkplex-core/lang"
	"github.com/zkplex/zkplex-core/types"
)

// Circuit is the gnark frontend.Circuit produced from a Zircon program
// (spec.md §4.6). Secret holds every secret-visibility and
// preprocess-derived signal (derived signals are always secret, spec.md
// §3.3); Public holds the declared public signals except the program's
// output signal, which is carried on Output instead.
type Circuit struct {
	Secret []frontend.Variable `gnark:",secret"`
	Public []frontend.Variable `gnark:",public"`
	Output frontend.Variable   `gnark:",public"`

	secretNames  []string
	publicNames  []string
	outputName   string
	circuitStmts []lang.Statement
	maxBits      int
	strategy     types.Strategy
}

// Define implements frontend.Circuit. It is called once at compile time
// (keygen) and once per proving/verification run; it never inspects
// concrete variable values, only wires gates between them, so it behaves
// identically whether or not the caller knows the secret witness
// (spec.md §4.9 step 3's optimistic-evaluation property holds for free
// here, since Define never evaluates anything natively).
func (c *Circuit) Define(api frontend.API) error {
	env := make(map[string]frontend.Variable, len(c.secretNames)+len(c.publicNames))
	for i, name := range c.secretNames {
		env[name] = c.Secret[i]
	}
	for i, name := range c.publicNames {
		env[name] = c.Public[i]
	}

	rc := newRangeChecker(api, c.strategy)
	emitter := NewEmitter(api, rc, c.maxBits, env)

	var last frontend.Variable
	for i, stmt := range c.circuitStmts {
		v, err := emitter.Emit(stmt.Expr)
		if err != nil {
			return err
		}
		switch stmt.Kind {
		case lang.KindAssignment:
			if _, exists := env[stmt.Target]; exists {
				return errs.Semantics(fmt.Sprintf("signal %q already defined", stmt.Target)).WithSignal(stmt.Target)
			}
			env[stmt.Target] = v
		case lang.KindConstraint:
			api.AssertIsEqual(v, 1)
		default:
			return errs.Runtime("unknown statement kind")
		}
		if i == len(c.circuitStmts)-1 {
			last = v
		}
	}

	// spec.md §3.4, §4.6: the final circuit statement's value is the
	// circuit output, and it must equal 1 for the proof to be meaningful.
	api.AssertIsEqual(c.Output, last)
	api.AssertIsEqual(last, 1)
	return nil
}

// OutputSignal returns the name Build assigned as this circuit's output
// signal (spec.md §3.8's VerifyContext.output_signal field).
func (c *Circuit) OutputSignal() string { return c.outputName }

// SecretNames and PublicNames expose the slot ordering Build computed, so
// callers can construct a matching Assign/AssignPublic value map.
func (c *Circuit) SecretNames() []string { return c.secretNames }
func (c *Circuit) PublicNames() []string { return c.publicNames }

// newRangeChecker installs the strategy-dependent gadget (spec.md
// §4.6-§4.7). Boolean strategy still needs one for division's remainder
// check, even though it rejects ordering comparisons outright (enforced
// earlier, in Builder.Build, not here).
func newRangeChecker(api frontend.API, strategy types.Strategy) RangeChecker {
	switch strategy {
	case types.StrategyBitD, types.StrategyBoolean:
		return BitDChecker{}
	case types.StrategyLookup:
		return NewLookupChecker(api)
	default:
		// Auto is resolved to BitD or Lookup by the strategy package
		// before a Circuit is ever built (spec.md §4.7); reaching here
		// with StrategyAuto is a caller error.
		panic("constraint: newRangeChecker called with unresolved strategy " + string(strategy))
	}
}

// Builder assembles a Circuit from a parsed program (spec.md §4.6). It
// performs only structural work — statement parsing, name-slot
// assignment, the Boolean-strategy static rejection — and never touches
// concrete signal values; those are supplied later as the gnark witness.
type Builder struct {
	MaxBits  int
	Strategy types.Strategy

	// OutputOverride names the signal that should receive the circuit's
	// implicit output value when the final circuit statement is a bare
	// expression rather than an assignment (spec.md §3.4). Prove supplies
	// the program's DesignatedOutput signal here; Verify supplies
	// VerifyContext.OutputSignal, which was computed the same way at
	// proving time. Ignored when the final statement is an assignment,
	// since that already names its own output.
	OutputOverride string
}

// OutputName returns the circuit's designated output signal name (spec.md
// §3.4: "the final expression of the circuit section designates the
// circuit output; if it is an assignment, the assigned signal is the
// output; otherwise it is an implicit signal whose value equals the
// expression. The name 'output' carries no special status.").
func OutputName(circuitStmts []lang.Statement) string {
	if len(circuitStmts) == 0 {
		return ""
	}
	last := circuitStmts[len(circuitStmts)-1]
	if last.Kind == lang.KindAssignment {
		return last.Target
	}
	return syntheticOutputName
}

// syntheticOutputName names the implicit output signal when the circuit's
// final statement is a bare expression rather than an assignment and no
// designated output signal binds it to a real name.
const syntheticOutputName = "__circuit_output__"

// DesignatedOutput finds the public placeholder signal, if exactly one
// exists, that spec.md §4.2 exempts from the "every signal must have a
// concrete value" gate: a public signal still holding "?" after override
// application that no preprocess or circuit statement ever assigns to or
// reads. Such a signal exists purely to receive the circuit's implicit
// output value (spec.md §3.4: "an implicit signal whose value equals the
// expression... the name 'output' carries no special status" — the
// program gives that implicit signal its public name precisely by
// declaring it this way).
func DesignatedOutput(program *types.Program, preStmts, circuitStmts []lang.Statement) (string, bool) {
	referenced := make(map[string]bool)
	mark := func(stmts []lang.Statement) {
		for _, stmt := range stmts {
			markReferencedNames(stmt.Expr, referenced)
			if stmt.Kind == lang.KindAssignment {
				referenced[stmt.Target] = true
			}
		}
	}
	mark(preStmts)
	mark(circuitStmts)

	var candidate string
	found := 0
	for _, s := range program.Public {
		if s.Value.IsPlaceholder() && !referenced[s.Name] {
			candidate = s.Name
			found++
		}
	}
	if found == 1 {
		return candidate, true
	}
	return "", false
}

func markReferencedNames(n lang.Node, referenced map[string]bool) {
	switch node := n.(type) {
	case *lang.NameNode:
		referenced[node.Name] = true
	case *lang.HashCallNode:
		for _, a := range node.Args {
			referenced[a.Name] = true
		}
	case *lang.UnaryNode:
		markReferencedNames(node.Operand, referenced)
	case *lang.BinaryNode:
		markReferencedNames(node.Left, referenced)
		markReferencedNames(node.Right, referenced)
	}
}

// Build parses preprocess and circuit statement text and lays out the
// Circuit's Secret/Public variable slots. derivedNames lists the
// preprocess-assignment targets in source order (the names a circuit
// statement may reference beyond the program's declared signals);
// callers collect it with a static scan of the preprocess statements'
// assignment targets, since no value computation is required here.
func (b *Builder) Build(program *types.Program, derivedNames []string) (*Circuit, error) {
	circuitStmts := make([]lang.Statement, 0, len(program.Circuit))
	for _, src := range program.Circuit {
		stmt, err := lang.ParseStatement(src, false)
		if err != nil {
			return nil, err
		}
		circuitStmts = append(circuitStmts, stmt)
	}
	if len(circuitStmts) == 0 {
		return nil, errs.Semantics("program has no circuit statements")
	}
	if !types.ValidMaxBits(uint(b.MaxBits)) {
		return nil, errs.Range(fmt.Sprintf("max_bits must be one of %v", types.AllowedMaxBits))
	}

	if b.Strategy == types.StrategyBoolean {
		for _, stmt := range circuitStmts {
			if containsComparison(stmt.Expr) {
				return nil, ErrBooleanRangeCheck
			}
		}
	}

	outputName := OutputName(circuitStmts)
	if outputName == syntheticOutputName && b.OutputOverride != "" {
		outputName = b.OutputOverride
	}

	secretNames := make([]string, 0, len(program.Secret)+len(derivedNames))
	for _, s := range program.Secret {
		secretNames = append(secretNames, s.Name)
	}
	secretNames = append(secretNames, derivedNames...)

	publicNames := make([]string, 0, len(program.Public))
	for _, s := range program.Public {
		if s.Name == outputName {
			// The designated output is bound to Circuit.Output, not an
			// ordinary public witness slot (spec.md §3.4).
			continue
		}
		publicNames = append(publicNames, s.Name)
	}

	return &Circuit{
		Secret:       make([]frontend.Variable, len(secretNames)),
		Public:       make([]frontend.Variable, len(publicNames)),
		secretNames:  secretNames,
		publicNames:  publicNames,
		outputName:   outputName,
		circuitStmts: circuitStmts,
		maxBits:      b.MaxBits,
		strategy:     b.Strategy,
	}, nil
}

func containsComparison(n lang.Node) bool {
	switch node := n.(type) {
	case *lang.BinaryNode:
		if node.Op.IsComparison() {
			return true
		}
		return containsComparison(node.Left) || containsComparison(node.Right)
	case *lang.UnaryNode:
		return containsComparison(node.Operand)
	default:
		return false
	}
}
