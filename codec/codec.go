// Package codec implements the value codec of spec.md §4.1: parsing and
// emitting literals in the six canonical encodings, plus the hash-argument
// format specifiers used by the preprocess engine.
package codec

import (
	"encoding/ascii85"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/mr-tron/base58"

	"github.com/zkplex/zkplex-core/types"
)

// Decode parses literal under encoding into a canonical types.Value and
// returns the resolved encoding actually used. If encoding is
// types.EncodingAuto, Decode attempts auto-detection per spec.md §3.2 and
// returns an error if the literal is ambiguous; for any literal other than
// the placeholder, the resolved encoding is never EncodingAuto once Decode
// returns successfully (types.Encoding's doc comment: "must never appear on
// a resolved Signal"). The placeholder literal is returned with encoding
// unchanged, which may be EncodingAuto.
func Decode(literal string, encoding types.Encoding) (types.Value, types.Encoding, error) {
	if literal == types.Placeholder {
		return types.PlaceholderValue(), encoding, nil
	}
	if encoding == types.EncodingAuto {
		detected, err := detect(literal)
		if err != nil {
			return types.Value{}, "", err
		}
		encoding = detected
	}
	var (
		v   types.Value
		err error
	)
	switch encoding {
	case types.EncodingDecimal:
		v, err = decodeDecimal(literal)
	case types.EncodingHex:
		v, err = decodeHex(literal)
	case types.EncodingBase58:
		v, err = decodeBase58(literal)
	case types.EncodingBase64:
		v, err = decodeBase64(literal)
	case types.EncodingBase85:
		v, err = decodeBase85(literal)
	case types.EncodingText:
		v, err = decodeText(literal)
	default:
		return types.Value{}, "", fmt.Errorf("unknown encoding %q", encoding)
	}
	if err != nil {
		return types.Value{}, "", err
	}
	return v, encoding, nil
}

// detect implements auto-detection (spec.md §3.2) with two rules: a "0x"
// prefix means hex and all-decimal-digits means decimal. Any other literal
// is rejected as ambiguous with an explicit "encoding required" error
// rather than a silent guess; text must be tagged explicitly.
func detect(literal string) (types.Encoding, error) {
	if strings.HasPrefix(literal, "0x") {
		return types.EncodingHex, nil
	}
	if isAllDigits(literal) {
		return types.EncodingDecimal, nil
	}
	return "", fmt.Errorf("encoding required: literal %q is ambiguous", literal)
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func decodeDecimal(literal string) (types.Value, error) {
	if !isAllDigits(literal) {
		return types.Value{}, fmt.Errorf("invalid decimal literal %q", literal)
	}
	n, ok := new(big.Int).SetString(literal, 10)
	if !ok {
		return types.Value{}, fmt.Errorf("invalid decimal literal %q", literal)
	}
	return types.Value{Int: n, Bytes: []byte(literal)}, nil
}

func decodeHex(literal string) (types.Value, error) {
	h := strings.TrimPrefix(literal, "0x")
	if len(h)%2 != 0 {
		return types.Value{}, fmt.Errorf("invalid hex literal %q: odd number of digits", literal)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return types.Value{}, fmt.Errorf("invalid hex literal %q: %w", literal, err)
	}
	return types.Value{Int: new(big.Int).SetBytes(b), Bytes: b}, nil
}

func decodeBase58(literal string) (types.Value, error) {
	b, err := base58.Decode(literal)
	if err != nil {
		return types.Value{}, fmt.Errorf("invalid base58 literal %q: %w", literal, err)
	}
	return types.Value{Int: new(big.Int).SetBytes(b), Bytes: b}, nil
}

func decodeBase64(literal string) (types.Value, error) {
	b, err := base64.StdEncoding.DecodeString(literal)
	if err != nil {
		return types.Value{}, fmt.Errorf("invalid base64 literal %q: %w", literal, err)
	}
	return types.Value{Int: new(big.Int).SetBytes(b), Bytes: b}, nil
}

func decodeBase85(literal string) (types.Value, error) {
	trimmed := literal
	if strings.HasPrefix(trimmed, "<~") && strings.HasSuffix(trimmed, "~>") {
		trimmed = trimmed[2 : len(trimmed)-2]
	}
	dst := make([]byte, len(trimmed))
	n, _, err := ascii85.Decode(dst, []byte(trimmed), true)
	if err != nil {
		return types.Value{}, fmt.Errorf("invalid base85 literal %q: %w", literal, err)
	}
	b := dst[:n]
	return types.Value{Int: new(big.Int).SetBytes(b), Bytes: b}, nil
}

func decodeText(literal string) (types.Value, error) {
	b := []byte(literal)
	return types.Value{Int: new(big.Int).SetBytes(b), Bytes: b}, nil
}

// Encode is the inverse of Decode, used to render hash-formatted
// arguments (spec.md §4.1).
func Encode(v types.Value, encoding types.Encoding) (string, error) {
	switch encoding {
	case types.EncodingDecimal:
		return v.Int.String(), nil
	case types.EncodingHex:
		return hex.EncodeToString(v.Bytes), nil
	case types.EncodingBase58:
		return base58.Encode(v.Bytes), nil
	case types.EncodingBase64:
		return base64.StdEncoding.EncodeToString(v.Bytes), nil
	case types.EncodingBase85:
		buf := make([]byte, ascii85.MaxEncodedLen(len(v.Bytes)))
		n := ascii85.Encode(buf, v.Bytes)
		return string(buf[:n]), nil
	case types.EncodingText:
		return string(v.Bytes), nil
	default:
		return "", fmt.Errorf("unknown encoding %q", encoding)
	}
}

// FormatArg renders a hash-call argument per its mandatory format specifier
// (spec.md §4.1):
//
//	%x -> lowercase hex of the integer form, minimum length, no leading
//	      zeros (value 0 renders as "0")
//	%d -> decimal string of the integer form
//	%s -> the byte string as-is
func FormatArg(v types.Value, spec string) ([]byte, error) {
	switch spec {
	case "%x":
		if v.Int.Sign() == 0 {
			return []byte("0"), nil
		}
		s := v.Int.Text(16)
		return []byte(s), nil
	case "%d":
		return []byte(v.Int.String()), nil
	case "%s":
		return v.Bytes, nil
	default:
		return nil, fmt.Errorf("unknown format specifier %q", spec)
	}
}

// ParseFormatSpec validates a hash-argument format specifier token as it
// appears in surface syntax, e.g. "%x".
func ParseFormatSpec(s string) (string, error) {
	switch s {
	case "%x", "%d", "%s":
		return s, nil
	default:
		return "", fmt.Errorf("invalid format specifier %q", s)
	}
}

// quoteLiteral echoes a literal using Go-style quoting. Nothing in the
// module calls it.
func quoteLiteral(s string) string {
	return strconv.Quote(s)
}
