package stream

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/Neumenon/slon/slon"
)

// Fingerprint computes xxhash64 of the canonical encoding of v.
//
// Canonical encoding sorts object keys, so trees that differ only in
// member order fingerprint equally.
func Fingerprint(v *slon.Value) (uint64, error) {
	text, err := slon.Encode(v)
	if err != nil {
		return 0, err
	}
	return FingerprintText(text), nil
}

// FingerprintText hashes text that is already canonical.
func FingerprintText(canonical string) uint64 {
	return xxhash.Sum64String(canonical)
}

// FingerprintHex is Fingerprint as 16 lowercase hex digits.
func FingerprintHex(v *slon.Value) (string, error) {
	h, err := Fingerprint(v)
	if err != nil {
		return "", err
	}
	return HashToHex(h), nil
}

// HashToHex formats a fingerprint as 16 lowercase hex digits.
func HashToHex(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

// HexToHash parses a 16-digit hex fingerprint.
func HexToHash(s string) (uint64, bool) {
	if len(s) != 16 {
		return 0, false
	}
	h, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, false
	}
	return h, true
}
