package technote

import (
	"errors"

	"github.com/alnah/go-technote/internal/config"
	"github.com/alnah/go-technote/internal/ident"
	"github.com/alnah/go-technote/internal/spdx"
)

// Sentinel errors for library operations.
var (
	// Configuration errors.
	ErrConfigNotFound  = config.ErrConfigNotFound
	ErrMalformedSyntax = config.ErrMalformedSyntax
	ErrValidation      = config.ErrValidation

	// Identifier and license errors. Both surface inside a ValidationError
	// when raised during parsing.
	ErrInvalidIdentifier = ident.ErrInvalidIdentifier
	ErrLicenseNotFound   = spdx.ErrLicenseNotFound

	// ErrMissingTitle means the title was read before content discovery
	// supplied one. It signals a build-ordering bug in the host.
	ErrMissingTitle = errors.New("technote title is not set")

	ErrRootFileNotFound = errors.New("root content file not found")
)

// ValidationError aggregates every problem found in technote.toml.
type ValidationError = config.ValidationError

// FieldError is one problem within a ValidationError.
type FieldError = config.FieldError
