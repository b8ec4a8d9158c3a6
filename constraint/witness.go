package constraint

import (
	"fmt"

	"github.com/consensys/gnark/frontend"

	"github.com/zkplex/zkplex-core/errs"
	"github.com/zkplex/zkplex-core/field"
)

// Assign builds a concrete Circuit instance (one gnark can turn into a
// frontend.Witness) from resolved field values, reusing the Circuit's
// name layout so the prover never has to re-derive slot order (spec.md
// §4.9 step 2). known must carry a value for every name in secretNames
// and publicNames; missing secret values (the verifier's case, spec.md
// §4.9 step 3) should call AssignPublic instead. Output is always 1
// (spec.md §4.6: "the output is an instance cell... it must equal 1 for
// the proof to be meaningful").
func (c *Circuit) Assign(known map[string]field.Element) (*Circuit, error) {
	out := &Circuit{
		Secret:       make([]frontend.Variable, len(c.secretNames)),
		Public:       make([]frontend.Variable, len(c.publicNames)),
		Output:       field.FromUint64(1).BigInt(),
		secretNames:  c.secretNames,
		publicNames:  c.publicNames,
		outputName:   c.outputName,
		circuitStmts: c.circuitStmts,
		maxBits:      c.maxBits,
		strategy:     c.strategy,
	}
	for i, name := range c.secretNames {
		v, ok := known[name]
		if !ok {
			return nil, errs.Name(fmt.Sprintf("no value supplied for secret signal %q", name), name)
		}
		out.Secret[i] = v.BigInt()
	}
	for i, name := range c.publicNames {
		v, ok := known[name]
		if !ok {
			return nil, errs.Name(fmt.Sprintf("no value supplied for public signal %q", name), name)
		}
		out.Public[i] = v.BigInt()
	}
	return out, nil
}

// AssignPublic builds the public-only witness a verifier uses to check a
// proof (spec.md §4.9 step 4): every Secret slot is left nil, which
// gnark's frontend.NewWitness(..., frontend.PublicOnly()) expects.
func (c *Circuit) AssignPublic(knownPublic map[string]field.Element) (*Circuit, error) {
	out := &Circuit{
		Secret:       make([]frontend.Variable, len(c.secretNames)),
		Public:       make([]frontend.Variable, len(c.publicNames)),
		Output:       field.FromUint64(1).BigInt(),
		secretNames:  c.secretNames,
		publicNames:  c.publicNames,
		outputName:   c.outputName,
		circuitStmts: c.circuitStmts,
		maxBits:      c.maxBits,
		strategy:     c.strategy,
	}
	for i, name := range c.publicNames {
		v, ok := knownPublic[name]
		if !ok {
			return nil, errs.Name(fmt.Sprintf("no value supplied for public signal %q", name), name)
		}
		out.Public[i] = v.BigInt()
	}
	return out, nil
}
