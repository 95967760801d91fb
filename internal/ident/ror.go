package ident

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// RORBaseURL is the canonical prefix for ROR identifier URLs.
const RORBaseURL = "https://ror.org/"

// crockfordAlphabet is Crockford's base32 alphabet (no i, l, o, u).
const crockfordAlphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// rorPattern matches a ROR identifier: a leading zero, six base32
// characters, and a two-digit decimal checksum.
var rorPattern = regexp.MustCompile(`^0[0-9a-hjkmnp-tv-z]{6}[0-9]{2}$`)

// ValidateROR checks a ROR URL (https://ror.org/048g3cy84) and returns its
// canonical lowercase form. Bare identifiers are rejected: ROR IDs are
// always written as URLs in technote.toml.
func ValidateROR(value string) (string, error) {
	value = strings.TrimSpace(value)
	u, err := url.Parse(value)
	if err != nil || u.Scheme == "" {
		return "", fmt.Errorf("%w: expected a ROR URL, got %q", ErrInvalidIdentifier, value)
	}
	if u.Scheme != "https" {
		return "", fmt.Errorf("%w: ROR URL must use https, got %q", ErrInvalidIdentifier, value)
	}
	if !strings.EqualFold(u.Hostname(), "ror.org") {
		return "", fmt.Errorf("%w: expected a ror.org URL, got %q", ErrInvalidIdentifier, value)
	}

	identifier := strings.ToLower(strings.Trim(u.Path, "/"))
	if !rorPattern.MatchString(identifier) {
		return "", fmt.Errorf("%w: %q is not a ROR identifier", ErrInvalidIdentifier, value)
	}
	if !VerifyRORChecksum(identifier) {
		return "", fmt.Errorf("%w: ROR checksum failed for %q", ErrInvalidIdentifier, value)
	}

	return RORBaseURL + identifier, nil
}

// VerifyRORChecksum decodes the base32 body of a ROR identifier and compares
// the trailing two digits with the ISO 7064 MOD 97-10 checksum of the decoded value.
func VerifyRORChecksum(identifier string) bool {
	identifier = strings.ToLower(identifier)
	if len(identifier) < 3 {
		return false
	}
	body, sum := identifier[:len(identifier)-2], identifier[len(identifier)-2:]

	want, err := strconv.Atoi(sum)
	if err != nil {
		return false
	}

	var n int64
	for _, r := range body {
		idx := strings.IndexRune(crockfordAlphabet, r)
		if idx < 0 {
			return false
		}
		n = n*32 + int64(idx)
	}

	return int64(want) == 98-(n*100)%97
}
