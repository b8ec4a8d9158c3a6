// Package paramcache holds a process-local cache of KZG setup parameters
// keyed by k (spec.md §5): Halo2-style universal parameters are expensive
// to derive, so repeated prove/verify calls against the same k reuse one
// in-memory SRS pair instead of regenerating it.
package paramcache

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254/kzg"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/test/unsafekzg"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/zkplex/zkplex-core/errs"
)

// Params is one cached (canonical, Lagrange) KZG SRS pair sized for a
// particular k (spec.md §4.9 step 6: "generate/fetch Params(k)").
type Params struct {
	K         int
	Canonical kzg.SRS
	Lagrange  kzg.SRS
}

// Cache is a bounded, mutex-guarded LRU of Params keyed by k. The zero
// value is not usable; construct with New.
type Cache struct {
	mu  sync.Mutex
	lru *lru.Cache[int, *Params]
}

// defaultCapacity bounds how many distinct k values are held in memory at
// once; k rarely varies within a single process's workload, so a small
// cache absorbs the common case of a handful of strategies/widths in use.
const defaultCapacity = 8

// New constructs a Cache holding up to capacity distinct k values. A
// capacity of 0 uses defaultCapacity.
func New(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	l, err := lru.New[int, *Params](capacity)
	if err != nil {
		return nil, fmt.Errorf("build params cache: %w", err)
	}
	return &Cache{lru: l}, nil
}

// Get returns the cached Params for k, generating one from cs (via
// gnark's unsafekzg test-SRS generator) on first use. cs must have been
// compiled to a degree compatible with k; the first caller for a given k
// fixes the SRS size for every later caller sharing that k (spec.md §9
// design notes: k, not the individual circuit, is the cache key, matching
// Halo2's reusable-parameters model).
//
// unsafekzg produces an insecure, non-ceremony SRS. Swapping in a
// production Powers-of-Tau source is an external-collaborator concern
// (spec.md §1's "underlying Halo2-like proving library... assumed
// available") and out of scope here.
func (c *Cache) Get(k int, cs constraint.ConstraintSystem) (*Params, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p, ok := c.lru.Get(k); ok {
		return p, nil
	}

	canonical, lagrange, err := unsafekzg.NewSRS(cs)
	if err != nil {
		return nil, errs.Proving(fmt.Sprintf("generate SRS for k=%d", k), err)
	}
	srsCanon, ok := canonical.(*kzg.SRS)
	if !ok {
		return nil, errs.Proving("unexpected canonical SRS type from unsafekzg", nil)
	}
	srsLagrange, ok := lagrange.(*kzg.SRS)
	if !ok {
		return nil, errs.Proving("unexpected Lagrange SRS type from unsafekzg", nil)
	}

	p := &Params{K: k, Canonical: *srsCanon, Lagrange: *srsLagrange}
	c.lru.Add(k, p)
	return p, nil
}
