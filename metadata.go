package technote

import (
	"slices"
	"time"

	"github.com/alnah/go-technote/internal/config"
	"github.com/alnah/go-technote/internal/vocab"
)

// Config is the validated content of technote.toml.
type Config = config.Config

// State is the lifecycle state of a technote.
type State = vocab.State

// Document states.
const (
	StateDraft      = vocab.StateDraft
	StateStable     = vocab.StateStable
	StateDeprecated = vocab.StateDeprecated
	StateOther      = vocab.StateOther
)

// Role is a contributor role from the Zenodo contributor vocabulary.
type Role = vocab.Role

// Organization identifies an institution.
type Organization struct {
	InternalID string
	ROR        string
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

// Person is a technote author.
type Person struct {
	Name         PersonName
	InternalID   string
	ORCID        string
	Affiliations []Organization
	Email        string
}

// Contributor is a person who contributed to the technote in a given role.
type Contributor struct {
	Person
	Role Role
	Note string
}

// Link is a URL with an optional title.
type Link struct {
	URL   string
	Title string
}

// Status describes where the technote is in its lifecycle.
type Status struct {
	State           State
	Note            string
	SupersedingURLs []Link
}

// SourceRepository locates the technote source.
type SourceRepository struct {
	URL    string
	Path   string // base path within the repository
	Branch string
	Commit string
}

// Citation holds bibliographic identifiers.
type Citation struct {
	DOI        string
	ADSBibcode string
}

// Metadata is the citable description of one technote, independent of
// the configuration file layout.
//
// Title and AbstractPlain are the only fields filled after construction:
// an empty Title means "not known yet", a nil AbstractPlain means no
// abstract has been discovered. Zero times mean the date is unknown.
type Metadata struct {
	Title            string
	Status           Status
	CanonicalURL     string
	ID               string
	SeriesID         string
	DateCreated      time.Time
	DateUpdated      time.Time
	Version          string
	Authors          []Person
	Contributors     []Contributor
	SourceRepository *SourceRepository
	LicenseID        string
	Citation         *Citation
	AbstractPlain    *string
}

// Clone returns a deep copy of m.
func (m *Metadata) Clone() *Metadata {
	if m == nil {
		return nil
	}
	c := *m
	c.Status.SupersedingURLs = slices.Clone(m.Status.SupersedingURLs)
	c.Authors = clonePersons(m.Authors)
	c.Contributors = slices.Clone(m.Contributors)
	for i := range c.Contributors {
		c.Contributors[i].Affiliations = slices.Clone(c.Contributors[i].Affiliations)
	}
	if m.SourceRepository != nil {
		repo := *m.SourceRepository
		c.SourceRepository = &repo
	}
	if m.Citation != nil {
		cit := *m.Citation
		c.Citation = &cit
	}
	if m.AbstractPlain != nil {
		abstract := *m.AbstractPlain
		c.AbstractPlain = &abstract
	}
	return &c
}

func clonePersons(in []Person) []Person {
	out := slices.Clone(in)
	for i := range out {
		out[i].Affiliations = slices.Clone(out[i].Affiliations)
	}
	return out
}
