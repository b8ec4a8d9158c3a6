package types

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// VerifyContext is the public metadata needed to rebuild the constraint
// system for verification without secret values (spec.md §3.8). It is
// safe to publish alongside the proof.
type VerifyContext struct {
	Version    int      `cbor:"version"`
	Preprocess []string `cbor:"preprocess"`
	Circuit    []string `cbor:"circuit"`
	// SecretNames holds names only, never values.
	SecretNames []string `cbor:"secret_names"`
	// PublicNames and PublicEncodings are parallel arrays (cbor maps don't
	// preserve ordering guarantees across implementations, and statement
	// order is semantically meaningful here).
	PublicNames     []string   `cbor:"public_names"`
	PublicEncodings []Encoding `cbor:"public_encodings"`
	OutputSignal    string     `cbor:"output_signal"`
	K               int        `cbor:"k"`
	StrategyTag     Strategy   `cbor:"strategy_tag"`
	// CachedMaxBits is the range-check width fixed at proving time.
	// Essential: see spec.md §4.9 step 4 and §9 design notes. Restoring
	// this before keygen_vk is non-negotiable for VK reproducibility.
	CachedMaxBits uint `cbor:"cached_max_bits"`
}

// cborSchemaVersion is bumped whenever the wire shape below changes in a
// way existing bytes can't be read back as (spec.md §6.3).
const cborSchemaVersion = 1

// Encode produces the deterministic tagged-field serialization of ctx
// (spec.md §6.3). The canonical encoding mode sorts keys, and it sorts a
// struct's field keys the same way as map keys, so the output bytes are a
// pure function of the field values.
func (ctx *VerifyContext) Encode() ([]byte, error) {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return nil, fmt.Errorf("build canonical cbor encoder: %w", err)
	}
	return em.Marshal(ctx)
}

// DecodeVerifyContext is the inverse of Encode.
func DecodeVerifyContext(data []byte) (*VerifyContext, error) {
	var ctx VerifyContext
	if err := cbor.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("decode verify context: %w", err)
	}
	if ctx.Version != CurrentVersion {
		return nil, fmt.Errorf("unsupported verify context version %d", ctx.Version)
	}
	return &ctx, nil
}
