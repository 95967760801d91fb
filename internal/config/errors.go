package config

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("technote.toml not found")
	ErrMalformedSyntax = errors.New("malformed technote.toml")
	ErrValidation      = errors.New("invalid technote.toml")
)

// FieldError is a single violation at a dotted field path such as
// "technote.authors[0].orcid".
type FieldError struct {
	Path   string
	Reason string
	Err    error // underlying cause, may be nil
}

func (e FieldError) Error() string {
	return e.Path + ": " + e.Reason
}

// ValidationError aggregates every violation found during one Parse call.
// It matches ErrValidation with errors.Is, and also any cause carried by
// its field errors (for example ident.ErrInvalidIdentifier).
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d problem", ErrValidation, len(e.Errors))
	if len(e.Errors) != 1 {
		b.WriteByte('s')
	}
	for _, fe := range e.Errors {
		b.WriteString("\n  - ")
		b.WriteString(fe.Error())
	}
	return b.String()
}

// Unwrap exposes ErrValidation and every field cause to errors.Is/As.
func (e *ValidationError) Unwrap() []error {
	errs := []error{ErrValidation}
	for _, fe := range e.Errors {
		if fe.Err != nil {
			errs = append(errs, fe.Err)
		}
	}
	return errs
}

// Has reports whether any violation was recorded at path or below it.
func (e *ValidationError) Has(path string) bool {
	for _, fe := range e.Errors {
		if fe.Path == path || strings.HasPrefix(fe.Path, path+".") || strings.HasPrefix(fe.Path, path+"[") {
			return true
		}
	}
	return false
}
