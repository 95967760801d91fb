package technote

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-technote/internal/config"
)

// Factory builds Metadata from a validated Config.
type Factory struct {
	now    func() time.Time
	logger *log.Logger
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithClock sets the clock used when technote.toml omits date_updated.
func WithClock(now func() time.Time) FactoryOption {
	return func(f *Factory) {
		if now != nil {
			f.now = now
		}
	}
}

// WithFactoryLogger sets the logger that reports applied defaults.
func WithFactoryLogger(l *log.Logger) FactoryOption {
	return func(f *Factory) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFactory creates a Factory using the system clock.
func NewFactory(opts ...FactoryOption) *Factory {
	f := &Factory{
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Build converts cfg into Metadata. Nested records are copied so the
// result shares no memory with cfg.
//
// Defaults: a missing status is stable with no note, a missing
// date_updated is the current time in UTC, and a missing title is ""
// until content discovery supplies one.
func (f *Factory) Build(cfg *Config) *Metadata {
	tn := cfg.Technote

	md := &Metadata{
		Title:        tn.Title,
		CanonicalURL: tn.CanonicalURL,
		ID:           tn.ID,
		SeriesID:     tn.SeriesID,
		DateCreated:  tn.DateCreated,
		DateUpdated:  tn.DateUpdated,
		Version:      tn.Version,
		Authors:      make([]Person, 0, len(tn.Authors)),
		Contributors: make([]Contributor, 0, len(tn.Contributors)),
	}

	if tn.Status != nil {
		md.Status = Status{
			State:           tn.Status.State,
			Note:            tn.Status.Note,
			SupersedingURLs: make([]Link, 0, len(tn.Status.SupersedingURLs)),
		}
		for _, l := range tn.Status.SupersedingURLs {
			md.Status.SupersedingURLs = append(md.Status.SupersedingURLs, Link{URL: l.URL, Title: l.Title})
		}
	} else {
		md.Status = Status{State: StateStable, SupersedingURLs: []Link{}}
		f.logger.Debug("status not set, defaulting", "state", StateStable)
	}

	if md.DateUpdated.IsZero() {
		md.DateUpdated = f.now().UTC()
		f.logger.Debug("date_updated not set, using build time", "date_updated", md.DateUpdated)
	}

	if tn.GitHubURL != "" {
		md.SourceRepository = &SourceRepository{
			URL:    tn.GitHubURL,
			Branch: tn.GitHubDefaultBranch,
		}
	}

	if tn.License != nil {
		md.LicenseID = tn.License.ID
	}

	if tn.DOI != "" {
		md.Citation = &Citation{DOI: tn.DOI}
	}

	for _, a := range tn.Authors {
		md.Authors = append(md.Authors, toPerson(a))
	}
	for _, c := range tn.Contributors {
		md.Contributors = append(md.Contributors, Contributor{
			Person: toPerson(c.Person),
			Role:   c.Role,
			Note:   c.Note,
		})
	}

	if md.Title == "" {
		f.logger.Debug("title not set, waiting for content discovery")
	}
	return md
}

func toPerson(p config.Person) Person {
	out := Person{
		Name:         PersonName{Family: p.Name.Family, Given: p.Name.Given},
		InternalID:   p.InternalID,
		ORCID:        p.ORCID,
		Email:        p.Email,
		Affiliations: make([]Organization, 0, len(p.Affiliations)),
	}
	for _, o := range p.Affiliations {
		out.Affiliations = append(out.Affiliations, toOrganization(o))
	}
	return out
}

func toOrganization(o config.Organization) Organization {
	return Organization{
		InternalID: o.InternalID,
		ROR:        o.ROR,
		Name:       o.Name,
		Address:    o.Address,
		URL:        o.URL,
	}
}
