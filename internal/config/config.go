// Package config parses and validates technote.toml.
//
// The file is decoded into toml-tagged structs, then validated. Parse never
// returns a partially populated Config: either every table validates or the
// caller gets one *ValidationError listing every violation by field path.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/alnah/go-technote/internal/tomlutil"
	"github.com/alnah/go-technote/internal/vocab"
)

// FileName is the conventional name of the configuration file.
const FileName = "technote.toml"

// DefaultBranch is used when github_default_branch is not set.
const DefaultBranch = "main"

// Config is the validated content of a technote.toml file.
type Config struct {
	Technote Technote

	// IgnoredTables lists top-level tables other than [technote], sorted.
	// They belong to other tools and are never validated.
	IgnoredTables []string
}

// Technote is the [technote] table.
//
// Empty strings and zero times mean the field was not set.
type Technote struct {
	ID                  string
	SeriesID            string
	Organization        *Organization
	DateCreated         time.Time
	DateUpdated         time.Time
	Version             string
	DOI                 string
	Title               string // empty = derive from content
	CanonicalURL        string
	GitHubURL           string
	GitHubDefaultBranch string
	Status              *Status
	License             *License
	Authors             []Person
	Contributors        []Contributor
	Sphinx              Sphinx

	// IgnoredKeys lists unrecognized keys inside [technote], sorted.
	IgnoredKeys []string
}

// Organization identifies an institution. At least one of InternalID,
// ROR or Name is set.
type Organization struct {
	InternalID string
	ROR        string // canonical https://ror.org/ URL
	Name       string
	Address    string
	URL        string
}

// PersonName is a structured person name.
type PersonName struct {
	Family string
	Given  string
}

// PlainTextName returns "{given} {family}".
func (n PersonName) PlainTextName() string {
	return n.Given + " " + n.Family
}

// Person is an author.
type Person struct {
	Name         PersonName
	InternalID   string
	ORCID        string // canonical https://orcid.org/ URL
	Affiliations []Organization
	Email        string
}

// Contributor is a person with an optional contribution role.
type Contributor struct {
	Person
	Role vocab.Role
	Note string
}

// License is the [technote.license] table.
type License struct {
	ID string // SPDX license identifier
}

// Link is a URL with an optional title.
type Link struct {
	URL   string
	Title string
}

// Status is the [technote.status] table.
type Status struct {
	State           vocab.State
	Note            string
	SupersedingURLs []Link
}

// Sphinx is the [technote.sphinx] pass-through table consumed by the
// document build tool.
type Sphinx struct {
	Nitpicky            bool
	NitpickIgnore       [][2]string
	NitpickIgnoreRegex  [][2]string
	Extensions          []string
	IntersphinxProjects map[string]string
	LinkcheckIgnore     []string
}

// knownTechnoteKeys are the keys read from [technote].
var knownTechnoteKeys = map[string]bool{
	"id": true, "series_id": true, "organization": true,
	"date_created": true, "date_updated": true, "version": true,
	"doi": true, "title": true, "canonical_url": true, "github_url": true,
	"github_default_branch": true, "status": true, "license": true,
	"authors": true, "contributors": true, "sphinx": true,
}

// Parse decodes and validates technote.toml content.
//
// Syntax errors wrap ErrMalformedSyntax. Every other problem is reported
// through a single *ValidationError.
func Parse(data []byte) (*Config, error) {
	doc, err := tomlutil.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedSyntax, err)
	}

	var raw rawFile
	if err := tomlutil.Unmarshal(data, &raw); err != nil {
		return nil, &ValidationError{Errors: []FieldError{
			{Path: "technote", Reason: err.Error(), Err: err},
		}}
	}

	cfg := &Config{IgnoredTables: otherKeys(doc, map[string]bool{"technote": true})}

	tbl, _ := doc["technote"].(map[string]any)
	ensure(&raw.Technote, doc, "technote")
	if raw.Technote == nil {
		return nil, &ValidationError{Errors: []FieldError{
			{Path: "technote", Reason: "table required"},
		}}
	}
	// Empty sub-tables still count as present.
	ensure(&raw.Technote.Organization, tbl, "organization")
	ensure(&raw.Technote.Status, tbl, "status")
	ensure(&raw.Technote.License, tbl, "license")

	v := &validator{}
	cfg.Technote = v.technote(raw.Technote, "technote")
	cfg.Technote.IgnoredKeys = otherKeys(tbl, knownTechnoteKeys)

	if len(v.errs) > 0 {
		return nil, &ValidationError{Errors: v.errs}
	}
	return cfg, nil
}

// ensure allocates *p when tbl has key but decoding left *p nil.
func ensure[T any](p **T, tbl map[string]any, key string) {
	if *p != nil {
		return
	}
	if _, present := tbl[key]; present {
		*p = new(T)
	}
}

// otherKeys returns the keys of tbl not in known, sorted.
func otherKeys(tbl map[string]any, known map[string]bool) []string {
	var out []string
	for key := range tbl {
		if !known[key] {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// LoadFile reads and parses a technote.toml file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is user-provided
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data)
}
