// Package ident validates and canonicalizes persistent identifiers used in
// technote metadata: ORCID iDs for people and ROR IDs for organizations.
//
// Validators are pure functions. They return the canonical URL form of the
// identifier, or an error wrapping ErrInvalidIdentifier.
package ident

import "errors"

// ErrInvalidIdentifier indicates an identifier failed pattern or checksum validation.
var ErrInvalidIdentifier = errors.New("invalid identifier")
