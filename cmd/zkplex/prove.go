package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/zkplex/zkplex-core/log"
	"github.com/zkplex/zkplex-core/paramcache"
	"github.com/zkplex/zkplex-core/prover"
	"github.com/zkplex/zkplex-core/types"
)

func runProve(requestID string, args []string) error {
	fs := flag.NewFlagSet("prove", flag.ExitOnError)
	fs.String("program", "", "path to a compact or structured Zircon program (required)")
	fs.Uint("max-bits", 32, "range-check width N (8, 16, 32 or 64)")
	fs.String("strategy", string(types.StrategyAuto), "auto, lookup, bitd or boolean")
	fs.StringArray("override", nil, "signal override name=value[:encoding], repeatable")
	fs.Bool("debug", false, "include ProveResponse.Debug in the output")
	fs.String("out", "", "directory to write proof.txt/verify_context.txt/public_signals.json (stdout if empty)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v := bindEnv(fs, "ZKPLEX")

	programPath := v.GetString("program")
	if programPath == "" {
		return fmt.Errorf("--program is required")
	}
	p, err := loadProgram(programPath)
	if err != nil {
		return err
	}
	overrideMap, err := parseNameValues(v.GetStringSlice("override"))
	if err != nil {
		return fmt.Errorf("--override: %w", err)
	}

	cache, err := paramcache.New(0)
	if err != nil {
		return fmt.Errorf("build param cache: %w", err)
	}

	strategy := v.GetString("strategy")
	maxBits := v.GetUint("max-bits")
	log.Infow("proving", "requestID", requestID, "program", programPath, "strategy", strategy, "maxBits", maxBits)
	resp, err := prover.Prove(prover.ProveRequest{
		Program:      p,
		Overrides:    overrideMap,
		Strategy:     types.Strategy(strategy),
		MaxBits:      maxBits,
		IncludeDebug: v.GetBool("debug"),
		Params:       cache,
	})
	if err != nil {
		return err
	}
	return writeProveResponse(resp, v.GetString("out"))
}

func writeProveResponse(resp *prover.ProveResponse, outDir string) error {
	if outDir == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", outDir, err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "proof.txt"), []byte(resp.Proof), 0o644); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "verify_context.txt"), []byte(resp.VerifyContext), 0o644); err != nil {
		return err
	}
	signals, err := json.MarshalIndent(resp.PublicSignals, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "public_signals.json"), signals, 0o644); err != nil {
		return err
	}
	if resp.Debug != nil {
		debugBytes, err := json.MarshalIndent(resp.Debug, "", "  ")
		if err != nil {
			return err
		}
		if err := os.WriteFile(filepath.Join(outDir, "debug.json"), debugBytes, 0o644); err != nil {
			return err
		}
	}
	fmt.Printf("wrote proof, verify context and public signals to %s\n", outDir)
	return nil
}
