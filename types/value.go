package types

import (
	"fmt"
	"math/big"

	"github.com/fxamacker/cbor/v2"

	"github.com/zkplex/zkplex-core/field"
)

// Value is the canonical, decoded form of a signal literal (spec.md §3.1,
// design note in §9): every decoded value carries both a big-integer
// interpretation and a byte string, mirroring the teacher's BigInt/HexBytes
// pair (types/big.go, types/hexbytes.go) rather than a tagged union, since
// every encoding in §3.2 produces both forms trivially (decimal's byte
// string is its ASCII digits; every other encoding's integer is the
// big-endian interpretation of its bytes).
type Value struct {
	Int   *big.Int
	Bytes []byte
}

// Placeholder is the literal marker for a signal value awaiting an
// override (spec.md §3.3).
const Placeholder = "?"

// IsPlaceholder reports whether v represents an unresolved "?" value.
func (v Value) IsPlaceholder() bool {
	return v.Int == nil && v.Bytes == nil
}

// PlaceholderValue returns the placeholder sentinel Value.
func PlaceholderValue() Value { return Value{} }

// FieldElement reduces v's integer interpretation into the field.
func (v Value) FieldElement() field.Element {
	if v.Int == nil {
		return field.FromBigInt(new(big.Int).SetBytes(v.Bytes))
	}
	return field.FromBigInt(v.Int)
}

// String returns the canonical decimal string of v's integer form, used
// for ProveResponse.public_signals (spec.md §6.2).
func (v Value) String() string {
	if v.IsPlaceholder() {
		return Placeholder
	}
	if v.Int != nil {
		return v.Int.String()
	}
	return new(big.Int).SetBytes(v.Bytes).String()
}

// cborValue is the wire shape of Value: decimal string of the integer
// form plus the raw byte string, so a round trip never re-derives Bytes
// from Int (they may legitimately differ in byte-length/padding for
// leading-zero literals).
type cborValue struct {
	Int   string `cbor:"i"`
	Bytes []byte `cbor:"b,omitempty"`
}

func (v Value) MarshalCBOR() ([]byte, error) {
	if v.IsPlaceholder() {
		return cbor.Marshal(cborValue{Int: Placeholder})
	}
	i := v.Int
	if i == nil {
		i = new(big.Int).SetBytes(v.Bytes)
	}
	return cbor.Marshal(cborValue{Int: i.String(), Bytes: v.Bytes})
}

func (v *Value) UnmarshalCBOR(data []byte) error {
	var w cborValue
	if err := cbor.Unmarshal(data, &w); err != nil {
		return err
	}
	if w.Int == Placeholder {
		*v = PlaceholderValue()
		return nil
	}
	n, ok := new(big.Int).SetString(w.Int, 10)
	if !ok {
		return fmt.Errorf("invalid encoded value integer %q", w.Int)
	}
	v.Int = n
	v.Bytes = w.Bytes
	return nil
}
