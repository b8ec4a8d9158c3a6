package lang

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/zkplex/zkplex-core/codec"
	"github.com/zkplex/zkplex-core/types"
)

// ParseCompact parses the slash-delimited compact form of spec.md §6.1:
//
//	program := version '/' signals '/' signals ('/' stmts)? '/' stmts
//
// The secret and public signals segments never contain '/' or ';', so they
// split unambiguously on the first two top-level separators. The trailing
// stmts tail is ambiguous in the literal grammar whenever a statement's
// division expression ('/') sits next to the optional preprocess/circuit
// boundary (the same character serves both roles); this parser resolves
// that by first trying the tail as a single circuit-only statement list,
// falling back to the first split point, scanning left to right, whose two
// halves both parse as valid statement lists when that whole-tail parse
// fails.
func ParseCompact(src string) (*types.Program, error) {
	parts := strings.SplitN(src, "/", 4)
	if len(parts) != 4 {
		return nil, fmt.Errorf("compact program: expected at least 4 slash-delimited segments, got %d", len(parts))
	}
	version, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("compact program: invalid version %q: %w", parts[0], err)
	}

	secret, err := parseCompactSignals(parts[1], types.Secret)
	if err != nil {
		return nil, err
	}
	public, err := parseCompactSignals(parts[2], types.Public)
	if err != nil {
		return nil, err
	}

	preSrc, circSrc, err := splitStmtsTail(parts[3])
	if err != nil {
		return nil, err
	}

	return &types.Program{
		Version:    version,
		Secret:     secret,
		Public:     public,
		Preprocess: preSrc,
		Circuit:    circSrc,
	}, nil
}

// splitStmtsTail resolves the optional-preprocess ambiguity described on
// ParseCompact.
func splitStmtsTail(tail string) (preprocess, circuit []string, err error) {
	if circ, ok := tryParseStmtList(tail); ok {
		return nil, circ, nil
	}
	for i, r := range tail {
		if r != '/' {
			continue
		}
		left, right := tail[:i], tail[i+1:]
		preStmts, ok1 := tryParseStmtList(left)
		if !ok1 {
			continue
		}
		circStmts, ok2 := tryParseStmtList(right)
		if !ok2 {
			continue
		}
		return preStmts, circStmts, nil
	}
	return nil, nil, fmt.Errorf("compact program: could not parse statement segment %q", tail)
}

// tryParseStmtList reports whether every ';'-separated piece of s parses as
// a valid statement, returning the surface-text list on success. inPreprocess
// is tried first since hash calls are only legal there; a program whose
// tail is ambiguous between preprocess and circuit interpretations is
// exceedingly rare, and either parse validates the surface text equally.
func tryParseStmtList(s string) ([]string, bool) {
	pieces := splitTopLevel(s, ';')
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		trimmed := trim(p)
		if trimmed == "" {
			return nil, false
		}
		if _, err := ParseStatement(trimmed, true); err != nil {
			if _, err2 := ParseStatement(trimmed, false); err2 != nil {
				return nil, false
			}
		}
		out = append(out, trimmed)
	}
	return out, true
}

// parseCompactSignals parses one signals segment: '-' for empty, otherwise
// a comma-separated list of name(:value)?(:encoding)? entries.
func parseCompactSignals(segment string, vis types.Visibility) ([]types.Signal, error) {
	segment = trim(segment)
	if segment == "" || segment == "-" {
		return nil, nil
	}
	fields := splitTopLevel(segment, ',')
	out := make([]types.Signal, 0, len(fields))
	for _, f := range fields {
		sig, err := parseCompactSignal(trim(f), vis)
		if err != nil {
			return nil, err
		}
		out = append(out, sig)
	}
	return out, nil
}

func parseCompactSignal(field string, vis types.Visibility) (types.Signal, error) {
	parts := strings.SplitN(field, ":", 3)
	name := trim(parts[0])
	if !types.ValidName(name) {
		return types.Signal{}, fmt.Errorf("compact program: invalid signal name %q", name)
	}
	sig := types.Signal{Name: name, Visibility: vis, Value: types.PlaceholderValue()}
	if len(parts) == 1 {
		return sig, nil
	}

	literal := trim(parts[1])
	var encTag string
	if len(parts) == 3 {
		encTag = trim(parts[2])
	}
	enc, err := types.ParseEncoding(encTag)
	if err != nil {
		return types.Signal{}, fmt.Errorf("signal %q: %w", name, err)
	}
	val, resolved, err := codec.Decode(literal, enc)
	if err != nil {
		return types.Signal{}, fmt.Errorf("signal %q: %w", name, err)
	}
	sig.Value = val
	sig.Encoding = resolved
	return sig, nil
}

// FormatCompact renders p as the compact slash-delimited form, omitting
// the preprocess segment entirely when it is empty (spec.md §6.1's
// canonicalization rule).
func FormatCompact(p *types.Program) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "%d/", p.Version)
	sec, err := formatCompactSignals(p.Secret)
	if err != nil {
		return "", err
	}
	pub, err := formatCompactSignals(p.Public)
	if err != nil {
		return "", err
	}
	b.WriteString(sec)
	b.WriteByte('/')
	b.WriteString(pub)
	b.WriteByte('/')
	if len(p.Preprocess) > 0 {
		b.WriteString(strings.Join(p.Preprocess, ";"))
		b.WriteByte('/')
	}
	b.WriteString(strings.Join(p.Circuit, ";"))
	return b.String(), nil
}

func formatCompactSignals(signals []types.Signal) (string, error) {
	if len(signals) == 0 {
		return "-", nil
	}
	fields := make([]string, 0, len(signals))
	for _, s := range signals {
		field := s.Name
		if s.HasValue() {
			literal, err := codec.Encode(s.Value, s.Encoding)
			if err != nil {
				return "", fmt.Errorf("signal %q: %w", s.Name, err)
			}
			field += ":" + literal
			// Encode renders decimal as plain digits, which auto-detection
			// resolves back to decimal, so that tag is left implicit.
			if s.Encoding != types.EncodingAuto && s.Encoding != types.EncodingDecimal {
				field += ":" + s.Encoding.String()
			}
		}
		fields = append(fields, field)
	}
	return strings.Join(fields, ","), nil
}
