// Package preprocess executes the sequential preprocess phase of a Zircon
// program: ordinary field-arithmetic assignments plus formatted hash
// invocations (spec.md §4.5).
package preprocess

import (
	"crypto/md5"  //nolint:gosec // spec-mandated legacy primitive, black-box per spec.md §1
	"crypto/sha1" //nolint:gosec // spec-mandated legacy primitive
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"hash/crc32"
	"math/big"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // spec-mandated legacy primitive
	"golang.org/x/crypto/sha3"

	"github.com/zkplex/zkplex-core/errs"
	"github.com/zkplex/zkplex-core/field"
)

// hashPrimitive describes one named hash function: how to compute its
// digest and whether that digest needs reducing modulo the field
// (spec.md §9 design notes, Open Question 2 — resolved in SPEC_FULL.md §C:
// every primitive is reduced mod F uniformly, which is a no-op for digests
// that already fit).
type hashPrimitive struct {
	newHash func() hash.Hash
	bits    int
}

var hashPrimitives = map[string]hashPrimitive{
	"sha1":      {sha1.New, 160},
	"sha256":    {sha256.New, 256},
	"sha512":    {sha512.New, 512},
	"sha3_256":  {sha3.New256, 256},
	"sha3_512":  {sha3.New512, 512},
	"md5":       {md5.New, 128},
	"blake2b":   {func() hash.Hash { h, _ := blake2b.New512(nil); return h }, 512},
	"blake2s":   {func() hash.Hash { h, _ := blake2s.New256(nil); return h }, 256},
	"blake3":    {func() hash.Hash { return blake3.New() }, 256},
	"keccak256": {sha3.NewLegacyKeccak256, 256},
	"ripemd160": {ripemd160.New, 160},
	"crc32":     {func() hash.Hash { return crc32.NewIEEE() }, 32},
}

// computeHash runs the named primitive over concatenated and returns the
// digest reduced modulo the field (spec.md §4.5 step 3).
func computeHash(name string, concatenated []byte) (field.Element, error) {
	prim, ok := hashPrimitives[name]
	if !ok {
		return field.Element{}, errs.Parse(fmt.Sprintf("unknown hash primitive %q", name))
	}
	h := prim.newHash()
	if _, err := h.Write(concatenated); err != nil {
		return field.Element{}, errs.Runtime(fmt.Sprintf("hash %q write failed: %v", name, err))
	}
	digest := h.Sum(nil)
	n := new(big.Int).SetBytes(digest)
	return field.FromBigInt(n), nil
}
