package main

import (
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/zkplex/zkplex-core/log"
	"github.com/zkplex/zkplex-core/paramcache"
	"github.com/zkplex/zkplex-core/prover"
)

func runVerify(requestID string, args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	fs.String("proof", "", "path to the proof artifact (ASCII85), or - to read proof.txt from --dir")
	fs.String("context", "", "path to the verify context artifact (ASCII85), or - to read verify_context.txt from --dir")
	fs.String("dir", "", "directory produced by 'zkplex prove --out'; fills --proof/--context when they are empty")
	fs.StringArray("public", nil, "public signal value name=value[:encoding], repeatable")
	if err := fs.Parse(args); err != nil {
		return err
	}
	v := bindEnv(fs, "ZKPLEX")

	proofPath, contextPath := v.GetString("proof"), v.GetString("context")
	if dir := v.GetString("dir"); dir != "" {
		if proofPath == "" || proofPath == "-" {
			proofPath = dir + "/proof.txt"
		}
		if contextPath == "" || contextPath == "-" {
			contextPath = dir + "/verify_context.txt"
		}
	}
	if proofPath == "" || contextPath == "" {
		return fmt.Errorf("--proof and --context (or --dir) are required")
	}

	proofBytes, err := os.ReadFile(proofPath)
	if err != nil {
		return fmt.Errorf("read proof %s: %w", proofPath, err)
	}
	contextBytes, err := os.ReadFile(contextPath)
	if err != nil {
		return fmt.Errorf("read verify context %s: %w", contextPath, err)
	}

	publics, err := parseNameValues(v.GetStringSlice("public"))
	if err != nil {
		return fmt.Errorf("--public: %w", err)
	}

	cache, err := paramcache.New(0)
	if err != nil {
		return fmt.Errorf("build param cache: %w", err)
	}

	log.Infow("verifying", "requestID", requestID, "proof", proofPath, "context", contextPath)
	resp, err := prover.Verify(prover.VerifyRequest{
		Proof:         string(proofBytes),
		VerifyContext: string(contextBytes),
		PublicSignals: publics,
		Params:        cache,
	})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}
	if !resp.Valid {
		return fmt.Errorf("proof did not verify: %s", resp.Error)
	}
	return nil
}
