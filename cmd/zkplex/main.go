// Command zkplex is the toolchain driver of spec.md §6.5: it loads a
// Zircon program in either surface form and dispatches to prove, verify,
// estimate or convert.
package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/zkplex/zkplex-core/log"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	cmd, args := os.Args[1], os.Args[2:]

	// requestID correlates every log line of a single CLI invocation, the
	// way the sequencer's structured fields correlate a process's events.
	requestID := uuid.NewString()

	var err error
	switch cmd {
	case "prove":
		err = runProve(requestID, args)
	case "verify":
		err = runVerify(requestID, args)
	case "estimate":
		err = runEstimate(requestID, args)
	case "convert":
		err = runConvert(requestID, args)
	case "-h", "--help", "help":
		usage()
		return
	default:
		fmt.Fprintf(os.Stderr, "zkplex: unknown command %q\n\n", cmd)
		usage()
		os.Exit(1)
	}
	if err != nil {
		log.Errorw(err, "command failed", "command", cmd, "requestID", requestID)
		fmt.Fprintf(os.Stderr, "zkplex %s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `zkplex - Zircon to zero-knowledge proof compiler

Usage:
  zkplex prove    --program <file> [--max-bits N] [--strategy auto|lookup|bitd|boolean] [--override name=value[:encoding]]... [--debug] [--out <dir>]
  zkplex verify   --proof <file> --context <file> [--public name=value[:encoding]]...
  zkplex estimate --program <file> [--max-bits N] [--strategy auto|lookup|bitd|boolean]
  zkplex convert  --program <file> --to compact|structured

Environment variables are also available with the same name as flags,
  prefixed with ZKPLEX_, dashes replaced by underscores.`)
}
