package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/zkplex/zkplex-core/codec"
	"github.com/zkplex/zkplex-core/lang"
	"github.com/zkplex/zkplex-core/types"
)

// loadProgram reads path and parses it as either the structured (JSON)
// form or the compact slash-delimited form, sniffing on the first
// non-whitespace byte (spec.md §6.1: both forms are equivalent).
func loadProgram(path string) (*types.Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read program %s: %w", path, err)
	}
	text := strings.TrimSpace(string(data))
	if text == "" {
		return nil, fmt.Errorf("program %s is empty", path)
	}
	if text[0] == '{' {
		var sp lang.StructuredProgram
		if err := json.Unmarshal([]byte(text), &sp); err != nil {
			return nil, fmt.Errorf("parse structured program %s: %w", path, err)
		}
		return sp.ToProgram()
	}
	p, err := lang.ParseCompact(text)
	if err != nil {
		return nil, fmt.Errorf("parse compact program %s: %w", path, err)
	}
	return p, nil
}

// parseNameValue parses a repeatable CLI flag of the form
// "name=value[:encoding]" into a name and decoded types.Value, used by
// both --override and --public.
func parseNameValue(s string) (string, types.Value, error) {
	eq := strings.IndexByte(s, '=')
	if eq < 0 {
		return "", types.Value{}, fmt.Errorf("expected name=value[:encoding], got %q", s)
	}
	name := s[:eq]
	rest := s[eq+1:]

	literal, encTag := rest, ""
	if i := strings.LastIndexByte(rest, ':'); i >= 0 {
		if enc := rest[i+1:]; types.Encoding(enc).Valid() {
			literal, encTag = rest[:i], enc
		}
	}
	enc, err := types.ParseEncoding(encTag)
	if err != nil {
		return "", types.Value{}, fmt.Errorf("%s: %w", name, err)
	}
	val, _, err := codec.Decode(literal, enc)
	if err != nil {
		return "", types.Value{}, fmt.Errorf("%s: %w", name, err)
	}
	return name, val, nil
}

// parseNameValues applies parseNameValue to every entry of raw into a map.
func parseNameValues(raw []string) (map[string]types.Value, error) {
	out := make(map[string]types.Value, len(raw))
	for _, s := range raw {
		name, val, err := parseNameValue(s)
		if err != nil {
			return nil, err
		}
		out[name] = val
	}
	return out, nil
}
