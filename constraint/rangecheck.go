package constraint

import (
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/rangecheck"

	"github.com/zkplex/zkplex-core/errs"
)

// RangeChecker asserts that v's canonical representative fits in bits
// unsigned bits. The four strategies of spec.md §4.6-§4.7 differ only in
// which implementation is installed into the Builder.
type RangeChecker interface {
	Check(api frontend.API, v frontend.Variable, bits int)
}

// BitDChecker decomposes v into bits bit-cells and asserts their weighted
// sum equals v (spec.md §4.6 BitD: cost ≈ bits+2 rows, no lookup table).
// gnark's api.ToBinary already emits exactly that decomposition gate set.
type BitDChecker struct{}

func (BitDChecker) Check(api frontend.API, v frontend.Variable, bits int) {
	api.ToBinary(v, bits)
}

// LookupChecker checks v against a single fixed lookup table covering
// [0, 2^bits) (spec.md §4.6 Lookup: cost ≈ 1 row + table, requires
// row count >= 2^bits). It is backed by gnark's std/rangecheck gadget,
// which compiles to a lookup argument when the backend's commit API
// supports it.
type LookupChecker struct {
	checker *rangecheck.Checker
}

// NewLookupChecker builds a LookupChecker bound to api. One Checker must
// be shared across every Check call in a circuit (gnark batches the
// lookup-table rows lazily until Define returns).
func NewLookupChecker(api frontend.API) *LookupChecker {
	return &LookupChecker{checker: rangecheck.New(api)}
}

func (c *LookupChecker) Check(api frontend.API, v frontend.Variable, bits int) {
	c.checker.Check(v, bits)
}

// BooleanChecker is a defensive fallback that should never run in
// practice: Builder.Build statically rejects any program containing an
// ordering comparison under the Boolean strategy before emission begins
// (spec.md §4.6: "Boolean strategy... does not support ordering
// comparisons; the builder rejects the program"). Division is still
// legal under Boolean, so newRangeChecker installs BitDChecker, not this type,
// as the Boolean strategy's concrete RangeChecker.
type BooleanChecker struct{}

func (BooleanChecker) Check(frontend.API, frontend.Variable, int) {
	panic("constraint: BooleanChecker.Check invoked; caller should have rejected the program first")
}

// ErrBooleanRangeCheck is returned by Builder.Build when a Boolean-strategy
// program contains an ordering comparison.
var ErrBooleanRangeCheck = errs.Strategy("boolean strategy does not support ordering comparisons")
