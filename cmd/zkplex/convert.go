package main

import (
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/zkplex/zkplex-core/lang"
	"github.com/zkplex/zkplex-core/log"
)

func runConvert(requestID string, args []string) error {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	fs.String("program", "", "path to a compact or structured Zircon program (required)")
	fs.String("to", "", "target form: compact or structured (required)")
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
	log.Infow("converting", "requestID", requestID, "program", programPath, "to", v.GetString("to"))

	switch v.GetString("to") {
	case "compact":
		out, err := lang.FormatCompact(p)
		if err != nil {
			return err
		}
		fmt.Println(out)
	case "structured":
		sp, err := lang.FromProgram(p)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(sp); err != nil {
			return err
		}
	default:
		return fmt.Errorf("--to must be 'compact' or 'structured', got %q", v.GetString("to"))
	}
	return nil
}
