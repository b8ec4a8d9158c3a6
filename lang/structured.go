package lang

import (
	"encoding/json"
	"fmt"

	"github.com/zkplex/zkplex-core/codec"
	"github.com/zkplex/zkplex-core/types"
)

// StructuredProgram is the JSON-serializable "structured object form" of
// spec.md §6.1: a self-describing record equivalent to the compact
// slash-delimited form, with secret/public as name-keyed maps rather than
// positional lists.
type StructuredProgram struct {
	Version    int                         `json:"version"`
	Secret     map[string]StructuredSignal `json:"secret"`
	Public     map[string]StructuredSignal `json:"public"`
	Preprocess []string                    `json:"preprocess,omitempty"`
	Circuit    []string                    `json:"circuit"`
}

// StructuredSignal is one entry of a StructuredProgram's secret/public map.
// Both fields are optional: an absent Value means the placeholder "?", an
// absent Encoding means auto-detection (spec.md §3.2-§3.3).
type StructuredSignal struct {
	Value    string `json:"value,omitempty"`
	Encoding string `json:"encoding,omitempty"`
}

// ToProgram converts sp into the typed types.Program, decoding every
// signal's literal through the codec package. Preprocess and Circuit are
// kept as statement text, not re-parsed here; callers parse them with
// ParseStatement as needed.
func (sp *StructuredProgram) ToProgram() (*types.Program, error) {
	p := &types.Program{
		Version:    sp.Version,
		Preprocess: append([]string{}, sp.Preprocess...),
		Circuit:    append([]string{}, sp.Circuit...),
	}
	secret, err := structuredSignalsToTyped(sp.Secret, types.Secret)
	if err != nil {
		return nil, err
	}
	public, err := structuredSignalsToTyped(sp.Public, types.Public)
	if err != nil {
		return nil, err
	}
	p.Secret = secret
	p.Public = public
	return p, nil
}

func structuredSignalsToTyped(m map[string]StructuredSignal, vis types.Visibility) ([]types.Signal, error) {
	out := make([]types.Signal, 0, len(m))
	for name, ss := range m {
		enc, err := types.ParseEncoding(ss.Encoding)
		if err != nil {
			return nil, fmt.Errorf("signal %q: %w", name, err)
		}
		literal := ss.Value
		if literal == "" {
			literal = types.Placeholder
		}
		val, resolved, err := codec.Decode(literal, enc)
		if err != nil {
			return nil, fmt.Errorf("signal %q: %w", name, err)
		}
		out = append(out, types.Signal{Name: name, Visibility: vis, Value: val, Encoding: resolved})
	}
	return out, nil
}

// FromProgram builds the structured form of p, encoding each signal's
// Value back into its textual literal. A placeholder signal is rendered
// with an empty Value field, per the omitempty tag.
func FromProgram(p *types.Program) (*StructuredProgram, error) {
	sp := &StructuredProgram{
		Version:    p.Version,
		Secret:     make(map[string]StructuredSignal, len(p.Secret)),
		Public:     make(map[string]StructuredSignal, len(p.Public)),
		Preprocess: append([]string{}, p.Preprocess...),
		Circuit:    append([]string{}, p.Circuit...),
	}
	if err := typedSignalsToStructured(sp.Secret, p.Secret); err != nil {
		return nil, err
	}
	if err := typedSignalsToStructured(sp.Public, p.Public); err != nil {
		return nil, err
	}
	return sp, nil
}

func typedSignalsToStructured(dst map[string]StructuredSignal, signals []types.Signal) error {
	for _, s := range signals {
		ss := StructuredSignal{}
		if s.Encoding != types.EncodingAuto {
			ss.Encoding = s.Encoding.String()
		}
		if s.HasValue() {
			literal, err := codec.Encode(s.Value, s.Encoding)
			if err != nil {
				return fmt.Errorf("signal %q: %w", s.Name, err)
			}
			ss.Value = literal
		}
		dst[s.Name] = ss
	}
	return nil
}

// MarshalJSON and UnmarshalJSON give StructuredProgram the JSON
// serialization spec.md §6.1 calls "self-describing".
func (sp StructuredProgram) MarshalJSON() ([]byte, error) {
	type alias StructuredProgram
	return json.Marshal(alias(sp))
}

func (sp *StructuredProgram) UnmarshalJSON(data []byte) error {
	type alias StructuredProgram
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*sp = StructuredProgram(a)
	return nil
}
