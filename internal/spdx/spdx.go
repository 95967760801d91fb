// Package spdx provides access to the SPDX license list bundled with the binary.
//
// The bundled licenses.json mirrors the layout of the canonical database at
// https://github.com/spdx/license-list-data/blob/main/json/licenses.json.
// It is decoded once per process and never mutated afterwards.
package spdx

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

//go:embed licenses.json
var licensesJSON []byte

// ErrLicenseNotFound indicates the license ID is not in the registry.
var ErrLicenseNotFound = errors.New("license not found")

// License is one entry of the SPDX license list.
type License struct {
	Name          string   `json:"name"`
	LicenseID     string   `json:"licenseId"`
	SeeAlso       []string `json:"seeAlso"`
	IsOSIApproved bool     `json:"isOsiApproved"`
	IsDeprecated  bool     `json:"isDeprecatedLicenseId"`
}

// file is the on-disk shape of licenses.json.
type file struct {
	LicenseListVersion string    `json:"licenseListVersion"`
	Licenses           []License `json:"licenses"`
}

// Registry answers membership and lookup queries by SPDX license ID.
type Registry struct {
	version  string
	licenses map[string]License
}

var (
	loadOnce sync.Once
	loaded   *Registry
	loadErr  error
)

// Load returns the registry decoded from the bundled license list.
// The first call decodes the file; later calls return the same registry.
func Load() (*Registry, error) {
	loadOnce.Do(func() {
		loaded, loadErr = Parse(licensesJSON)
	})
	return loaded, loadErr
}

// Parse decodes a license list in the SPDX JSON format.
func Parse(data []byte) (*Registry, error) {
	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decoding license list: %w", err)
	}
	if len(f.Licenses) == 0 {
		return nil, errors.New("decoding license list: no licenses")
	}

	r := &Registry{
		version:  f.LicenseListVersion,
		licenses: make(map[string]License, len(f.Licenses)),
	}
	for _, l := range f.Licenses {
		r.licenses[l.LicenseID] = l
	}
	return r, nil
}

// Version returns the licenseListVersion of the decoded list.
func (r *Registry) Version() string {
	return r.version
}

// Contains reports whether id is a known SPDX license identifier.
// Matching is case-sensitive, as SPDX IDs are. Deprecated IDs such as
// GPL-2.0 are still listed and still match.
func (r *Registry) Contains(id string) bool {
	_, ok := r.licenses[id]
	return ok
}

// Get returns the license with the given ID.
func (r *Registry) Get(id string) (License, error) {
	l, ok := r.licenses[id]
	if !ok {
		return License{}, fmt.Errorf("%w: %q", ErrLicenseNotFound, id)
	}
	l.SeeAlso = append([]string(nil), l.SeeAlso...)
	return l, nil
}

// Suggest returns current IDs that match id case-insensitively or that
// share its prefix, sorted. Deprecated IDs are never suggested. Used to
// build hints for typos like "cc-by-4.0".
func (r *Registry) Suggest(id string) []string {
	lower := strings.ToLower(strings.TrimSpace(id))
	if lower == "" {
		return nil
	}

	var out []string
	for known, l := range r.licenses {
		if l.IsDeprecated {
			continue
		}
		k := strings.ToLower(known)
		if k == lower || strings.HasPrefix(k, lower) {
			out = append(out, known)
		}
	}
	sort.Strings(out)
	return out
}
