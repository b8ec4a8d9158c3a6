// Package errs collects the sentinel error kinds of zkplex (spec.md §7) so
// callers can branch on error category with errors.Is / errors.As while
// each wrapper still carries structured context for diagnostics.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Every wrapper below satisfies errors.Is against exactly
// one of these.
var (
	ErrParse        = errors.New("parse error")
	ErrName         = errors.New("name error")
	ErrRange        = errors.New("range error")
	ErrSemantics    = errors.New("semantics error")
	ErrStrategy     = errors.New("strategy error")
	ErrRuntime      = errors.New("runtime error")
	ErrProving      = errors.New("proving error")
	ErrVerification = errors.New("verification error")
)

// Kind is a structured error carrying a sentinel, a human message and
// optional named context fields (signal name, operator, source position).
type Kind struct {
	sentinel error
	msg      string
	Signal   string
	Op       string
	Pos      int
	wrapped  error
}

func (k *Kind) Error() string {
	s := k.msg
	if k.Signal != "" {
		s += fmt.Sprintf(" (signal=%s)", k.Signal)
	}
	if k.Op != "" {
		s += fmt.Sprintf(" (op=%s)", k.Op)
	}
	if k.wrapped != nil {
		s += ": " + k.wrapped.Error()
	}
	return s
}

func (k *Kind) Unwrap() error {
	if k.wrapped != nil {
		return k.wrapped
	}
	return k.sentinel
}

func (k *Kind) Is(target error) bool {
	return target == k.sentinel
}

func new_(sentinel error, msg string) *Kind { return &Kind{sentinel: sentinel, msg: msg} }

// Parse builds a parse-kind error (malformed text, unknown operator, odd hex
// digits, invalid base58/64/85, missing format specifier, hash outside
// preprocess).
func Parse(msg string) *Kind { return new_(ErrParse, msg) }

// Name builds a name-kind error (undefined reference, duplicate signal,
// override of a non-placeholder).
func Name(msg, signal string) *Kind { return &Kind{sentinel: ErrName, msg: msg, Signal: signal} }

// Range builds a type/range-kind error (ordering comparison exceeding
// max_bits, ordering on a too-wide hash output).
func Range(msg string) *Kind { return new_(ErrRange, msg) }

// Semantics builds a semantics-kind error (cyclic assignment, missing
// override at proof time, missing public output).
func Semantics(msg string) *Kind { return new_(ErrSemantics, msg) }

// Strategy builds a strategy-compatibility error.
func Strategy(msg string) *Kind { return new_(ErrStrategy, msg) }

// Runtime builds a witness-computation runtime error (division by zero,
// unrepresentable field overflow).
func Runtime(msg string) *Kind { return new_(ErrRuntime, msg) }

// Proving wraps ConstraintSystemFailure and other proving-time failures.
// Per spec.md §7, a false statement surfaces as-is: callers must not treat
// this as a bug in the toolchain.
func Proving(msg string, cause error) *Kind {
	return &Kind{sentinel: ErrProving, msg: msg, wrapped: cause}
}

// Verification builds a verification-time error (decode failure, missing
// cached_max_bits, VK mismatch, cryptographic rejection).
func Verification(msg string, cause error) *Kind {
	return &Kind{sentinel: ErrVerification, msg: msg, wrapped: cause}
}

// WithSignal attaches a signal name to an existing Kind and returns it for
// chaining at the call site.
func (k *Kind) WithSignal(name string) *Kind { k.Signal = name; return k }

// WithOp attaches an operator name.
func (k *Kind) WithOp(op string) *Kind { k.Op = op; return k }

// WithPos attaches a lexer/parser source position.
func (k *Kind) WithPos(pos int) *Kind { k.Pos = pos; return k }

// Wrap attaches an underlying cause.
func (k *Kind) Wrap(cause error) *Kind { k.wrapped = cause; return k }
