// Package prover implements the proof/verify driver of spec.md §4.9: the
// orchestration that ties the program model, preprocess engine, strategy
// resolution, estimator, and constraint builder to gnark's PLONK backend
// (the concrete stand-in for spec.md §6.4's "Halo2-like proving library"
// collaborator).
package prover

import (
	"bytes"
	"encoding/ascii85"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/plonk"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/scs"

	"github.com/zkplex/zkplex-core/constraint"
	"github.com/zkplex/zkplex-core/errs"
	"github.com/zkplex/zkplex-core/estimator"
	"github.com/zkplex/zkplex-core/field"
	"github.com/zkplex/zkplex-core/lang"
	"github.com/zkplex/zkplex-core/log"
	"github.com/zkplex/zkplex-core/paramcache"
	"github.com/zkplex/zkplex-core/preprocess"
	"github.com/zkplex/zkplex-core/strategy"
	"github.com/zkplex/zkplex-core/types"
)

// curve is the scalar field zkplex compiles circuits over (spec.md §3.1:
// the proving library's field determines the program's field).
var curve = ecc.BN254

// defaultMemoryWarningMB is the projected-memory threshold beyond which
// Prove attaches a warning to ProveResponse.Debug (spec.md §5: "default
// 512 MB").
const defaultMemoryWarningMB = 512

// baseMemoryMB and perKMB approximate gnark's PLONK prover footprint
// (spec.md §5's "~50-200 MB per additional k" rough guide); they are a
// documented estimate, not a measurement.
const baseMemoryMB = 64
const perKMB = 96

// ProveRequest is the input to Prove (spec.md §4.9).
type ProveRequest struct {
	Program         *types.Program
	Overrides       map[string]types.Value
	Strategy        types.Strategy
	MaxBits         uint
	MemoryWarningMB int // 0 uses defaultMemoryWarningMB
	IncludeDebug    bool
	Params          *paramcache.Cache
}

// PublicSignal is one entry of ProveResponse.PublicSignals (spec.md §6.2).
type PublicSignal struct {
	Value    string
	Encoding types.Encoding
}

// Debug carries the informational fields of spec.md §6.2's optional
// debug block. Never required for verification.
type Debug struct {
	K             int
	Strategy      types.Strategy
	SecretSignals []string
	OutputSignal  string
	Preprocess    []string
	Circuit       []string
	Warnings      []string
}

// ProveResponse is Prove's output (spec.md §6.2).
type ProveResponse struct {
	Version       int
	Proof         string // ASCII85
	VerifyContext string // ASCII85
	PublicSignals map[string]PublicSignal
	Debug         *Debug
}

// Prove implements spec.md §4.9's eight-step prove() driver.
func Prove(req ProveRequest) (*ProveResponse, error) {
	if req.Params == nil {
		return nil, errs.Runtime("ProveRequest.Params (param cache) is required")
	}
	program := req.Program
	if err := program.ApplyOverrides(req.Overrides); err != nil {
		return nil, errs.Semantics(err.Error())
	}
	if err := program.ValidateNamespace(); err != nil {
		return nil, errs.Semantics(err.Error())
	}

	preStmts, err := parseStatements(program.Preprocess, true)
	if err != nil {
		return nil, err
	}
	circuitStmts, err := parseStatements(program.Circuit, false)
	if err != nil {
		return nil, err
	}
	if len(circuitStmts) == 0 {
		return nil, errs.Semantics("program has no circuit statements")
	}
	if err := strategy.ValidateMaxBits(req.MaxBits); err != nil {
		return nil, err
	}
	allStmts := append(append([]lang.Statement{}, preStmts...), circuitStmts...)
	if err := strategy.RejectWideComparisons(allStmts, preprocess.HashDerivedNames(preStmts)); err != nil {
		return nil, err
	}

	// spec.md §3.4/§4.2: a public placeholder signal that the program never
	// references is the designated output and is exempt from the
	// missing-value gate below. When the circuit's final statement is a
	// bare expression and no such signal exists, §3.4's "at least one
	// public output required" is violated.
	outputName, hasDesignatedOutput := constraint.DesignatedOutput(program, preStmts, circuitStmts)
	if circuitStmts[len(circuitStmts)-1].Kind != lang.KindAssignment && !hasDesignatedOutput {
		return nil, errs.Semantics("missing public output signal")
	}

	known := make(map[string]types.Value, len(program.Secret)+len(program.Public))
	declared := make(map[string]bool, len(program.Secret)+len(program.Public))
	for _, s := range program.AllSignals() {
		if hasDesignatedOutput && s.Name == outputName {
			declared[s.Name] = true
			continue
		}
		if !s.HasValue() {
			return nil, errs.Semantics(fmt.Sprintf("signal %q has no value; supply an override before proving", s.Name)).WithSignal(s.Name)
		}
		known[s.Name] = s.Value
		declared[s.Name] = true
	}
	if err := preprocess.DAGCheck(declared, allStmts); err != nil {
		return nil, err
	}

	engine := preprocess.NewEngine(known)
	if err := engine.Run(preStmts, req.MaxBits); err != nil {
		return nil, err
	}
	derivedNames := assignmentTargets(preStmts)

	resolved, err := strategy.Resolve(req.Strategy, circuitStmts, req.MaxBits)
	if err != nil {
		return nil, err
	}

	rep, err := estimator.Estimate(allStmts, resolved, req.MaxBits)
	if err != nil {
		return nil, err
	}
	if !rep.Compatible {
		return nil, errs.Strategy(rep.Incompatible)
	}

	var warnings []string
	warnThresholdMB := req.MemoryWarningMB
	if warnThresholdMB <= 0 {
		warnThresholdMB = defaultMemoryWarningMB
	}
	if projected := baseMemoryMB + perKMB*rep.K; projected > warnThresholdMB {
		warnings = append(warnings, fmt.Sprintf("projected prover memory ~%dMB exceeds warning threshold %dMB at k=%d", projected, warnThresholdMB, rep.K))
	}

	builder := &constraint.Builder{MaxBits: int(req.MaxBits), Strategy: resolved}
	if hasDesignatedOutput {
		builder.OutputOverride = outputName
	}
	circuit, err := builder.Build(program, derivedNames)
	if err != nil {
		return nil, err
	}

	ccs, err := frontend.Compile(curve.ScalarField(), scs.NewBuilder, circuit)
	if err != nil {
		return nil, errs.Proving("compile circuit", err)
	}

	params, err := req.Params.Get(rep.K, ccs)
	if err != nil {
		return nil, err
	}
	pk, vk, err := plonk.Setup(ccs, &params.Canonical, &params.Lagrange)
	if err != nil {
		return nil, errs.Proving("plonk setup", err)
	}

	env := engine.Env()
	fieldEnv := make(map[string]field.Element, len(env))
	for name, v := range env {
		fieldEnv[name] = v.FieldElement()
	}
	assigned, err := circuit.Assign(fieldEnv)
	if err != nil {
		return nil, err
	}
	fullWitness, err := frontend.NewWitness(assigned, curve.ScalarField())
	if err != nil {
		return nil, errs.Proving("build witness", err)
	}

	proof, err := plonk.Prove(ccs, pk, fullWitness)
	if err != nil {
		return nil, errs.Proving("create proof", err)
	}
	_ = vk // vk is not serialized; the verifier regenerates it deterministically (spec.md §4.9 step 4/§6.4)

	var proofBuf bytes.Buffer
	if _, err := proof.WriteTo(&proofBuf); err != nil {
		return nil, errs.Proving("serialize proof", err)
	}

	ctx := &types.VerifyContext{
		Version:         types.CurrentVersion,
		Preprocess:      program.Preprocess,
		Circuit:         program.Circuit,
		SecretNames:     circuit.SecretNames(),
		PublicNames:     circuit.PublicNames(),
		PublicEncodings: publicEncodings(program, circuit.OutputSignal()),
		OutputSignal:    circuit.OutputSignal(),
		K:               rep.K,
		StrategyTag:     resolved,
		CachedMaxBits:   req.MaxBits,
	}
	ctxBytes, err := ctx.Encode()
	if err != nil {
		return nil, errs.Runtime(fmt.Sprintf("encode verify context: %v", err))
	}

	publicSignals := make(map[string]PublicSignal, len(program.Public)+1)
	for _, s := range program.Public {
		if s.Name == circuit.OutputSignal() {
			continue
		}
		publicSignals[s.Name] = PublicSignal{Value: s.Value.String(), Encoding: s.Encoding}
	}
	publicSignals[circuit.OutputSignal()] = PublicSignal{Value: "1", Encoding: types.EncodingDecimal}

	resp := &ProveResponse{
		Version:       types.CurrentVersion,
		Proof:         ascii85Encode(proofBuf.Bytes()),
		VerifyContext: ascii85Encode(ctxBytes),
		PublicSignals: publicSignals,
	}
	if req.IncludeDebug {
		resp.Debug = &Debug{
			K:             rep.K,
			Strategy:      resolved,
			SecretSignals: circuit.SecretNames(),
			OutputSignal:  circuit.OutputSignal(),
			Preprocess:    program.Preprocess,
			Circuit:       program.Circuit,
			Warnings:      warnings,
		}
	}
	log.Infow("proof generated", "k", rep.K, "strategy", string(resolved), "rows", rep.CircuitRows)
	return resp, nil
}

// VerifyRequest is the input to Verify (spec.md §4.9).
type VerifyRequest struct {
	Proof         string // ASCII85
	VerifyContext string // ASCII85
	PublicSignals map[string]types.Value
	Params        *paramcache.Cache
}

// VerifyResponse is Verify's output.
type VerifyResponse struct {
	Valid bool
	Error string
}

// Verify implements spec.md §4.9's six-step verify() driver.
func Verify(req VerifyRequest) (*VerifyResponse, error) {
	if req.Params == nil {
		return nil, errs.Runtime("VerifyRequest.Params (param cache) is required")
	}
	ctxBytes, err := ascii85Decode(req.VerifyContext)
	if err != nil {
		return nil, errs.Parse(fmt.Sprintf("decode verify context: %v", err))
	}
	ctx, err := types.DecodeVerifyContext(ctxBytes)
	if err != nil {
		return nil, errs.Parse(err.Error())
	}
	proofBytes, err := ascii85Decode(req.Proof)
	if err != nil {
		return nil, errs.Parse(fmt.Sprintf("decode proof: %v", err))
	}

	program := reconstructProgram(ctx)

	preStmts, err := parseStatements(ctx.Preprocess, true)
	if err != nil {
		return nil, err
	}
	circuitStmts, err := parseStatements(ctx.Circuit, false)
	if err != nil {
		return nil, err
	}
	if err := strategy.ValidateMaxBits(ctx.CachedMaxBits); err != nil {
		return nil, err
	}
	allStmts := append(append([]lang.Statement{}, preStmts...), circuitStmts...)
	if err := strategy.RejectWideComparisons(allStmts, preprocess.HashDerivedNames(preStmts)); err != nil {
		return nil, err
	}
	derivedNames := assignmentTargets(preStmts)

	builder := &constraint.Builder{MaxBits: int(ctx.CachedMaxBits), Strategy: ctx.StrategyTag, OutputOverride: ctx.OutputSignal}
	circuit, err := builder.Build(program, derivedNames)
	if err != nil {
		return nil, err
	}

	ccs, err := frontend.Compile(curve.ScalarField(), scs.NewBuilder, circuit)
	if err != nil {
		return nil, errs.Proving("compile circuit", err)
	}
	params, err := req.Params.Get(ctx.K, ccs)
	if err != nil {
		return nil, err
	}
	_, vk, err := plonk.Setup(ccs, &params.Canonical, &params.Lagrange)
	if err != nil {
		return nil, errs.Proving("keygen_vk", err)
	}

	publicKnown := make(map[string]field.Element, len(ctx.PublicNames))
	for _, name := range ctx.PublicNames {
		v, ok := req.PublicSignals[name]
		if !ok {
			return nil, errs.Semantics(fmt.Sprintf("missing public signal %q", name)).WithSignal(name)
		}
		publicKnown[name] = v.FieldElement()
	}
	assigned, err := circuit.AssignPublic(publicKnown)
	if err != nil {
		return nil, err
	}
	publicWitness, err := frontend.NewWitness(assigned, curve.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return nil, errs.Proving("build public witness", err)
	}

	proof := plonk.NewProof(curve)
	if _, err := proof.ReadFrom(bytes.NewReader(proofBytes)); err != nil {
		return nil, errs.Parse(fmt.Sprintf("deserialize proof: %v", err))
	}

	if err := plonk.Verify(proof, vk, publicWitness); err != nil {
		return &VerifyResponse{Valid: false, Error: err.Error()}, nil
	}
	return &VerifyResponse{Valid: true}, nil
}

func reconstructProgram(ctx *types.VerifyContext) *types.Program {
	p := &types.Program{
		Version:    ctx.Version,
		Preprocess: ctx.Preprocess,
		Circuit:    ctx.Circuit,
	}
	for _, name := range ctx.SecretNames {
		p.Secret = append(p.Secret, types.Signal{Name: name, Visibility: types.Secret, Value: types.PlaceholderValue()})
	}
	for i, name := range ctx.PublicNames {
		enc := types.EncodingDecimal
		if i < len(ctx.PublicEncodings) {
			enc = ctx.PublicEncodings[i]
		}
		p.Public = append(p.Public, types.Signal{Name: name, Visibility: types.Public, Value: types.PlaceholderValue(), Encoding: enc})
	}
	return p
}

func parseStatements(src []string, inPreprocess bool) ([]lang.Statement, error) {
	out := make([]lang.Statement, 0, len(src))
	for _, s := range src {
		stmt, err := lang.ParseStatement(s, inPreprocess)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}

func assignmentTargets(stmts []lang.Statement) []string {
	var out []string
	for _, stmt := range stmts {
		if stmt.Kind == lang.KindAssignment {
			out = append(out, stmt.Target)
		}
	}
	return out
}

func publicEncodings(program *types.Program, outputName string) []types.Encoding {
	out := make([]types.Encoding, 0, len(program.Public))
	for _, s := range program.Public {
		if s.Name == outputName {
			continue
		}
		out = append(out, s.Encoding)
	}
	return out
}

func ascii85Encode(data []byte) string {
	buf := make([]byte, ascii85.MaxEncodedLen(len(data)))
	n := ascii85.Encode(buf, data)
	return string(buf[:n])
}

func ascii85Decode(s string) ([]byte, error) {
	buf := make([]byte, len(s))
	n, _, err := ascii85.Decode(buf, []byte(s), true)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
