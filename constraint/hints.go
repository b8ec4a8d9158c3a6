// Package constraint lowers a Zircon program's statements into a gnark
// circuit: the constraint builder shared by every strategy (spec.md §4.6),
// plus the strategy-selectable range-check gadget ordering comparisons and
// division remainders are checked against (spec.md §4.6-§4.7).
package constraint

import (
	"math/big"

	"github.com/consensys/gnark/constraint/solver"
)

func init() {
	solver.RegisterHint(quotRemHint)
}

// quotRemHint computes floor(a/b) and a-b*floor(a/b) over canonical
// (non-negative, already-reduced) big.Int witnesses. It backs both
// integer division (spec.md §3.6, §4.6 "a/b") and the comparison
// top-bit/remainder split (constraint/compare.go): both need the prover
// to supply a quotient and an in-range remainder that the circuit then
// checks algebraically.
func quotRemHint(_ *big.Int, in, out []*big.Int) error {
	a, b := in[0], in[1]
	q, r := new(big.Int), new(big.Int)
	if b.Sign() == 0 {
		// Emitter.emitDiv constrains the divisor to be nonzero, so a
		// witness reaching this branch fails that constraint; this hint is
		// also used by the comparator with a nonzero power-of-two divisor,
		// so it never legitimately sees b == 0 there.
		q.SetInt64(0)
		r.Set(a)
	} else {
		q.QuoRem(a, b, r)
	}
	out[0].Set(q)
	out[1].Set(r)
	return nil
}
