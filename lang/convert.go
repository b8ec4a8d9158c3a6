package lang

import "github.com/zkplex/zkplex-core/types"

// CompactToStructured converts compact-form source into its equivalent
// StructuredProgram (spec.md §6.1: "both forms are lossless
// inter-convertible").
func CompactToStructured(src string) (*StructuredProgram, error) {
	p, err := ParseCompact(src)
	if err != nil {
		return nil, err
	}
	return FromProgram(p)
}

// StructuredToCompact converts a StructuredProgram into compact-form
// source.
func StructuredToCompact(sp *StructuredProgram) (string, error) {
	p, err := sp.ToProgram()
	if err != nil {
		return "", err
	}
	return FormatCompact(p)
}

// Roundtrip converts compact-form source to the structured form and back,
// returning the resulting canonical compact rendering (spec.md
// §342's "round-trip of surface forms" invariant).
func Roundtrip(src string) (string, error) {
	sp, err := CompactToStructured(src)
	if err != nil {
		return "", err
	}
	return StructuredToCompact(sp)
}

// ProgramFromCompact is a convenience wrapper equal to ParseCompact, kept
// for symmetry with ProgramFromStructured.
func ProgramFromCompact(src string) (*types.Program, error) {
	return ParseCompact(src)
}

// ProgramFromStructured is a convenience wrapper equal to
// (*StructuredProgram).ToProgram, kept for symmetry with
// ProgramFromCompact.
func ProgramFromStructured(sp *StructuredProgram) (*types.Program, error) {
	return sp.ToProgram()
}
