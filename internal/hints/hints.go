// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"errors"
	"strings"

	"github.com/alnah/go-technote/internal/config"
	"github.com/alnah/go-technote/internal/ident"
	"github.com/alnah/go-technote/internal/spdx"
)

// ForConfigNotFound returns hints for a missing technote.toml.
func ForConfigNotFound() string {
	return format("run inside the technote directory or use --config /path/to/" + config.FileName)
}

// ForMalformedSyntax returns hints for TOML syntax errors.
func ForMalformedSyntax() string {
	return format("strings need double quotes and tables are written [technote.table]")
}

// ForRootFileNotFound returns hints when no root content file exists.
func ForRootFileNotFound(candidates []string) string {
	if len(candidates) == 0 {
		return ""
	}
	return format("create one of: " + strings.Join(candidates, ", "))
}

// ForValidation returns one hint line per field problem that has a known
// fix. It returns "" when err is not a *config.ValidationError.
func ForValidation(err error) string {
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		return ""
	}

	var b strings.Builder
	for _, fe := range verr.Errors {
		if h := forField(fe); h != "" {
			b.WriteString(format(fe.Path + ": " + h))
		}
	}
	return b.String()
}

// forField returns the hint text for one field problem, or "".
func forField(fe config.FieldError) string {
	switch {
	case errors.Is(fe.Err, spdx.ErrLicenseNotFound):
		return forLicense(fe)
	case errors.Is(fe.Err, ident.ErrInvalidIdentifier) && strings.HasSuffix(fe.Path, ".orcid"):
		return "ORCID iDs look like 0000-0002-1825-0097 or https://orcid.org/0000-0002-1825-0097; check the last character"
	case errors.Is(fe.Err, ident.ErrInvalidIdentifier) && strings.HasSuffix(fe.Path, ".ror"):
		return "ROR IDs look like https://ror.org/05gq02987; copy the URL from ror.org"
	case strings.HasSuffix(fe.Path, ".email"):
		return "use a bare address such as name@example.org"
	case strings.HasSuffix(fe.Path, ".state"):
		return "use draft, stable, deprecated or other"
	}
	return ""
}

func forLicense(fe config.FieldError) string {
	reg, err := spdx.Load()
	if err != nil {
		return ""
	}
	id := quoted(fe.Reason)
	if suggestions := reg.Suggest(id); len(suggestions) > 0 {
		return "did you mean " + strings.Join(suggestions, ", ") + "?"
	}
	return "use an SPDX identifier such as CC-BY-4.0 or MIT; see https://spdx.org/licenses/"
}

// quoted returns the first double-quoted substring of s, or s.
func quoted(s string) string {
	start := strings.IndexByte(s, '"')
	if start == -1 {
		return s
	}
	end := strings.IndexByte(s[start+1:], '"')
	if end == -1 {
		return s
	}
	return s[start+1 : start+1+end]
}

// ForMissingRef returns a hint when the version-control ref is unknown
// outside GitHub Actions, where it is normally provided. lookup reads the
// build environment.
func ForMissingRef(lookup func(string) (string, bool)) string {
	if _, ok := lookup("GITHUB_REF_NAME"); ok {
		return ""
	}
	if _, inActions := lookup("GITHUB_ACTIONS"); inActions {
		return ""
	}
	return format("set GITHUB_REF_NAME and GITHUB_REF_TYPE, or pass --env-file")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
