package ident

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// ORCIDBaseURL is the canonical prefix for ORCID iD URLs.
const ORCIDBaseURL = "https://orcid.org/"

// orcidPattern matches a bare ORCID identifier: four groups of four digits,
// where only the final character may be the check digit "X".
var orcidPattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{4}-[0-9]{4}-[0-9]{3}[0-9X]$`)

// ValidateORCID checks an ORCID iD given either as a bare identifier
// (0000-0002-1825-0097) or as an orcid.org URL, and returns the canonical
// https://orcid.org/{identifier} form.
func ValidateORCID(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("%w: empty ORCID", ErrInvalidIdentifier)
	}

	identifier := value
	if strings.Contains(value, "://") {
		u, err := url.Parse(value)
		if err != nil {
			return "", fmt.Errorf("%w: malformed ORCID URL %q", ErrInvalidIdentifier, value)
		}
		if u.Scheme != "https" && u.Scheme != "http" {
			return "", fmt.Errorf("%w: ORCID URL must use https, got %q", ErrInvalidIdentifier, value)
		}
		if !strings.EqualFold(u.Hostname(), "orcid.org") {
			return "", fmt.Errorf("%w: expected an orcid.org URL, got %q", ErrInvalidIdentifier, value)
		}
		identifier = strings.Trim(u.Path, "/")
	}

	identifier = strings.ToUpper(identifier)
	if !orcidPattern.MatchString(identifier) {
		return "", fmt.Errorf("%w: %q is not an ORCID identifier", ErrInvalidIdentifier, value)
	}
	if !VerifyORCIDChecksum(identifier) {
		return "", fmt.Errorf("%w: ORCID checksum failed for %q", ErrInvalidIdentifier, value)
	}

	return ORCIDBaseURL + identifier, nil
}

// VerifyORCIDChecksum reports whether the final character of a bare ORCID
// identifier matches its ISO 7064 MOD 11-2 check digit. Hyphens are ignored.
func VerifyORCIDChecksum(identifier string) bool {
	digits := strings.ReplaceAll(identifier, "-", "")
	if len(digits) != 16 {
		return false
	}

	total := 0
	for _, r := range digits[:15] {
		if r < '0' || r > '9' {
			return false
		}
		total = (total + int(r-'0')) * 2
	}
	check := (12 - total%11) % 11

	want := byte('0' + check)
	if check == 10 {
		want = 'X'
	}
	return digits[15] == want
}
