package config

import (
	"fmt"
	"net/mail"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/alnah/go-technote/internal/dateutil"
	"github.com/alnah/go-technote/internal/ident"
	"github.com/alnah/go-technote/internal/spdx"
	"github.com/alnah/go-technote/internal/vocab"
)

// validator converts decoded raw tables into the public types, recording a
// FieldError for every problem instead of stopping at the first.
type validator struct {
	errs []FieldError
}

func (v *validator) fail(path string, cause error, format string, args ...any) {
	v.errs = append(v.errs, FieldError{Path: path, Reason: fmt.Sprintf(format, args...), Err: cause})
}

func join(parent, key string) string {
	if parent == "" {
		return key
	}
	return parent + "." + key
}

func index(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

func (v *validator) technote(r *rawTechnote, path string) Technote {
	t := Technote{
		ID:                  r.ID,
		SeriesID:            r.SeriesID,
		DateCreated:         v.date(r.DateCreated, join(path, "date_created")),
		DateUpdated:         v.date(r.DateUpdated, join(path, "date_updated")),
		Version:             r.Version,
		DOI:                 r.DOI,
		Title:               r.Title,
		CanonicalURL:        v.httpURL(r.CanonicalURL, join(path, "canonical_url")),
		GitHubURL:           v.httpURL(r.GitHubURL, join(path, "github_url")),
		GitHubDefaultBranch: DefaultBranch,
	}
	if r.GitHubDefaultBranch != "" {
		t.GitHubDefaultBranch = r.GitHubDefaultBranch
	}

	if r.Organization != nil {
		o := v.organization(r.Organization, join(path, "organization"))
		t.Organization = &o
	}
	if r.Status != nil {
		s := v.status(r.Status, join(path, "status"))
		t.Status = &s
	}
	if r.License != nil {
		l := v.license(r.License, join(path, "license"))
		t.License = &l
	}

	t.Authors = make([]Person, 0, len(r.Authors))
	for i := range r.Authors {
		t.Authors = append(t.Authors, v.person(&r.Authors[i], index(join(path, "authors"), i)))
	}

	t.Contributors = make([]Contributor, 0, len(r.Contributors))
	for i := range r.Contributors {
		t.Contributors = append(t.Contributors, v.contributor(&r.Contributors[i], index(join(path, "contributors"), i)))
	}

	t.Sphinx = v.sphinx(&r.Sphinx, join(path, "sphinx"))
	return t
}

func (v *validator) organization(r *rawOrganization, path string) Organization {
	o := Organization{
		InternalID: r.InternalID,
		Name:       collapseWhitespace(r.Name),
		Address:    r.Address,
		URL:        v.httpURL(r.URL, join(path, "url")),
	}
	if r.ROR != nil {
		canonical, err := ident.ValidateROR(*r.ROR)
		if err != nil {
			v.fail(join(path, "ror"), err, "%v", err)
		}
		o.ROR = canonical
	}
	if o.InternalID == "" && o.Name == "" && r.ROR == nil {
		v.fail(path, nil, "organization must have at least one of internal_id, ror or name")
	}
	return o
}

func (v *validator) person(r *rawPerson, path string) Person {
	p := Person{InternalID: r.InternalID}

	if r.Name == nil {
		v.fail(join(path, "name"), nil, "field required")
	} else {
		np := join(path, "name")
		p.Name = PersonName{
			Family: collapseWhitespace(v.required(r.Name.Family, join(np, "family"))),
			Given:  collapseWhitespace(v.required(r.Name.Given, join(np, "given"))),
		}
	}

	if r.ORCID != nil {
		canonical, err := ident.ValidateORCID(*r.ORCID)
		if err != nil {
			v.fail(join(path, "orcid"), err, "%v", err)
		}
		p.ORCID = canonical
	}

	p.Affiliations = make([]Organization, 0, len(r.Affiliations))
	for i := range r.Affiliations {
		p.Affiliations = append(p.Affiliations, v.organization(&r.Affiliations[i], index(join(path, "affiliations"), i)))
	}

	p.Email = v.email(r.Email, join(path, "email"))
	return p
}

func (v *validator) contributor(r *rawPerson, path string) Contributor {
	c := Contributor{Person: v.person(r, path), Note: r.Note}
	if r.Role != nil {
		role, err := vocab.ParseRole(*r.Role)
		if err != nil {
			v.fail(join(path, "role"), nil, "%v", err)
		}
		c.Role = role
	}
	return c
}

func (v *validator) license(r *rawLicense, path string) License {
	id := v.required(r.ID, join(path, "id"))
	if id == "" {
		return License{}
	}
	reg, err := spdx.Load()
	if err != nil {
		v.fail(join(path, "id"), err, "license registry unavailable: %v", err)
		return License{ID: id}
	}
	if !reg.Contains(id) {
		v.fail(join(path, "id"), spdx.ErrLicenseNotFound, "%q is not an SPDX license identifier", id)
	}
	return License{ID: id}
}

func (v *validator) status(r *rawStatus, path string) Status {
	s := Status{Note: r.Note}
	if r.State == nil {
		v.fail(join(path, "state"), nil, "field required")
	} else {
		state, err := vocab.ParseState(*r.State)
		if err != nil {
			v.fail(join(path, "state"), nil, "%v", err)
		}
		s.State = state
	}

	key, links := "supersceding_urls", r.Supersceding
	if links == nil {
		key, links = "superseding_urls", r.Superseding
	}
	s.SupersedingURLs = make([]Link, 0, len(links))
	for i, l := range links {
		lp := index(join(path, key), i)
		if l.URL == nil {
			v.fail(join(lp, "url"), nil, "field required")
		}
		s.SupersedingURLs = append(s.SupersedingURLs, Link{
			URL:   v.httpURL(l.URL, join(lp, "url")),
			Title: l.Title,
		})
	}
	return s
}

func (v *validator) sphinx(r *rawSphinx, path string) Sphinx {
	s := Sphinx{
		Nitpicky:            r.Nitpicky,
		NitpickIgnore:       v.pairs(r.NitpickIgnore, join(path, "nitpick_ignore")),
		NitpickIgnoreRegex:  v.pairs(r.NitpickIgnoreRegex, join(path, "nitpick_ignore_regex")),
		Extensions:          r.Extensions,
		IntersphinxProjects: make(map[string]string, len(r.Intersphinx.Projects)),
		LinkcheckIgnore:     r.Linkcheck.Ignore,
	}

	for i, pair := range s.NitpickIgnoreRegex {
		for j, pattern := range pair {
			if err := compileCheck(pattern); err != nil {
				v.fail(index(index(join(path, "nitpick_ignore_regex"), i), j), err, "invalid regular expression: %v", err)
			}
		}
	}

	pp := join(path, "intersphinx.projects")
	names := make([]string, 0, len(r.Intersphinx.Projects))
	for name := range r.Intersphinx.Projects {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		raw := r.Intersphinx.Projects[name]
		if u := v.httpURL(&raw, join(pp, name)); u != "" {
			s.IntersphinxProjects[name] = u
		}
	}

	for i, pattern := range s.LinkcheckIgnore {
		if err := compileCheck(pattern); err != nil {
			v.fail(index(join(path, "linkcheck.ignore"), i), err, "invalid regular expression: %v", err)
		}
	}
	return s
}

// required records a violation when s is absent.
func (v *validator) required(s *string, path string) string {
	if s == nil {
		v.fail(path, nil, "field required")
		return ""
	}
	return *s
}

// pairs checks that every entry is a [type, target] pair.
func (v *validator) pairs(raw [][]string, path string) [][2]string {
	if raw == nil {
		return nil
	}
	out := make([][2]string, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 {
			v.fail(index(path, i), nil, "expected a [type, target] pair")
			continue
		}
		out = append(out, [2]string{pair[0], pair[1]})
	}
	return out
}

// date accepts a TOML date/datetime or an ISO 8601 string, normalized to UTC.
func (v *validator) date(raw any, path string) time.Time {
	if raw == nil {
		return time.Time{}
	}
	t, err := dateutil.Normalize(raw)
	if err != nil {
		v.fail(path, err, "%v", err)
		return time.Time{}
	}
	return t
}

// httpURL checks an absolute http(s) URL; s may be nil.
func (v *validator) httpURL(s *string, path string) string {
	if s == nil {
		return ""
	}
	if err := checkHTTPURL(*s); err != nil {
		v.fail(path, nil, "%v", err)
		return ""
	}
	return strings.TrimSpace(*s)
}

// email checks a bare RFC 5322 address; s may be nil.
func (v *validator) email(s *string, path string) string {
	if s == nil {
		return ""
	}
	addr, err := mail.ParseAddress(*s)
	if err != nil || addr.Name != "" {
		v.fail(path, nil, "%q is not a valid email address", *s)
		return ""
	}
	return addr.Address
}

func checkHTTPURL(s string) error {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid URL %q: %v", s, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL %q must use http or https", s)
	}
	if u.Host == "" {
		return fmt.Errorf("URL %q has no host", s)
	}
	return nil
}

func compileCheck(pattern string) error {
	_, err := regexp.Compile(pattern)
	return err
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
