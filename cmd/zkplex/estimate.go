package main

import (
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/zkplex/zkplex-core/estimator"
	"github.com/zkplex/zkplex-core/lang"
	"github.com/zkplex/zkplex-core/log"
	"github.com/zkplex/zkplex-core/types"
)

func runEstimate(requestID string, args []string) error {
	fs := flag.NewFlagSet("estimate", flag.ExitOnError)
	fs.String("program", "", "path to a compact or structured Zircon program (required)")
	fs.Uint("max-bits", 32, "range-check width N (8, 16, 32 or 64)")
	fs.String("strategy", string(types.StrategyAuto), "auto, lookup, bitd or boolean")
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

	stmts, err := allStatements(p)
	if err != nil {
		return err
	}

	log.Infow("estimating", "requestID", requestID, "program", programPath, "strategy", v.GetString("strategy"))
	rep, err := estimator.Estimate(stmts, types.Strategy(v.GetString("strategy")), v.GetUint("max-bits"))
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}

func allStatements(p *types.Program) ([]lang.Statement, error) {
	out := make([]lang.Statement, 0, len(p.Preprocess)+len(p.Circuit))
	for _, src := range p.Preprocess {
		stmt, err := lang.ParseStatement(src, true)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	for _, src := range p.Circuit {
		stmt, err := lang.ParseStatement(src, false)
		if err != nil {
			return nil, err
		}
		out = append(out, stmt)
	}
	return out, nil
}
