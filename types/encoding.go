package types

import "fmt"

// Encoding tags a textual literal with the rule used to canonicalize it
// into a Value (spec.md §3.2).
type Encoding string

const (
	EncodingDecimal Encoding = "decimal"
	EncodingHex     Encoding = "hex"
	EncodingBase58  Encoding = "base58"
	EncodingBase64  Encoding = "base64"
	EncodingBase85  Encoding = "base85"
	EncodingText    Encoding = "text"
	// EncodingAuto is not a real encoding; it requests auto-detection and
	// must never appear on a resolved Signal (codec.Decode resolves it).
	EncodingAuto Encoding = ""
)

// Valid reports whether e is one of the six canonical encodings.
func (e Encoding) Valid() bool {
	switch e {
	case EncodingDecimal, EncodingHex, EncodingBase58, EncodingBase64, EncodingBase85, EncodingText:
		return true
	default:
		return false
	}
}

func (e Encoding) String() string {
	if e == EncodingAuto {
		return "auto"
	}
	return string(e)
}

// ParseEncoding validates a textual encoding tag.
func ParseEncoding(s string) (Encoding, error) {
	e := Encoding(s)
	if s == "" {
		return EncodingAuto, nil
	}
	if !e.Valid() {
		return "", fmt.Errorf("unknown encoding %q", s)
	}
	return e, nil
}
