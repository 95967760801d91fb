package config

// The raw* types mirror technote.toml as written. Optional scalars whose
// presence matters are pointers; everything else is checked and copied
// into the public types by validator.

type rawFile struct {
	Technote *rawTechnote `toml:"technote"`
}

type rawTechnote struct {
	ID                  string           `toml:"id"`
	SeriesID            string           `toml:"series_id"`
	Organization        *rawOrganization `toml:"organization"`
	DateCreated         any              `toml:"date_created"` // TOML date or ISO 8601 string
	DateUpdated         any              `toml:"date_updated"`
	Version             string           `toml:"version"`
	DOI                 string           `toml:"doi"`
	Title               string           `toml:"title"`
	CanonicalURL        *string          `toml:"canonical_url"`
	GitHubURL           *string          `toml:"github_url"`
	GitHubDefaultBranch string           `toml:"github_default_branch"`
	Status              *rawStatus       `toml:"status"`
	License             *rawLicense      `toml:"license"`
	Authors             []rawPerson      `toml:"authors"`
	Contributors        []rawPerson      `toml:"contributors"`
	Sphinx              rawSphinx        `toml:"sphinx"`
}

type rawOrganization struct {
	InternalID string  `toml:"internal_id"`
	ROR        *string `toml:"ror"`
	Name       string  `toml:"name"`
	Address    string  `toml:"address"`
	URL        *string `toml:"url"`
}

type rawName struct {
	Family *string `toml:"family"`
	Given  *string `toml:"given"`
}

// rawPerson covers both authors and contributors; Role and Note are only
// read for contributors.
type rawPerson struct {
	Name         *rawName          `toml:"name"`
	InternalID   string            `toml:"internal_id"`
	ORCID        *string           `toml:"orcid"`
	Affiliations []rawOrganization `toml:"affiliations"`
	Email        *string           `toml:"email"`
	Role         *string           `toml:"role"`
	Note         string            `toml:"note"`
}

type rawLicense struct {
	ID *string `toml:"id"`
}

type rawLink struct {
	URL   *string `toml:"url"`
	Title string  `toml:"title"`
}

type rawStatus struct {
	State *string `toml:"state"`
	Note  string  `toml:"note"`

	// Supersceding is the historical spelling and wins when both are set.
	Supersceding []rawLink `toml:"supersceding_urls"`
	Superseding  []rawLink `toml:"superseding_urls"`
}

type rawSphinx struct {
	Nitpicky           bool       `toml:"nitpicky"`
	NitpickIgnore      [][]string `toml:"nitpick_ignore"`
	NitpickIgnoreRegex [][]string `toml:"nitpick_ignore_regex"`
	Extensions         []string   `toml:"extensions"`
	Intersphinx        struct {
		Projects map[string]string `toml:"projects"`
	} `toml:"intersphinx"`
	Linkcheck struct {
		Ignore []string `toml:"ignore"`
	} `toml:"linkcheck"`
}
