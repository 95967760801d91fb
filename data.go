package technote

// TemplateData is a serializable snapshot of a Context, shaped for
// html/template and for JSON or YAML export. Unset optional values are
// empty and omitted from exports.
type TemplateData struct {
	Title           string            `json:"title"`
	Abstract        string            `json:"abstract,omitempty"`
	ID              string            `json:"id,omitempty"`
	SeriesID        string            `json:"series_id,omitempty"`
	Version         string            `json:"version,omitempty"`
	CanonicalURL    string            `json:"canonical_url,omitempty"`
	DateCreated     string            `json:"date_created,omitempty"`
	DateUpdated     string            `json:"date_updated,omitempty"`
	DatetimeCreated string            `json:"datetime_created,omitempty"`
	DatetimeUpdated string            `json:"datetime_updated,omitempty"`
	Status          StatusData        `json:"status"`
	Authors         []PersonData      `json:"authors"`
	Contributors    []ContributorData `json:"contributors,omitempty"`
	LicenseID       string            `json:"license_id,omitempty"`
	DOI             string            `json:"doi,omitempty"`
	GitHubURL       string            `json:"github_url,omitempty"`
	GitHubRepoSlug  string            `json:"github_repo_slug,omitempty"`
	GitHubEditURL   string            `json:"github_edit_url,omitempty"`
	GitHubRefName   string            `json:"github_ref_name,omitempty"`
	GitHubRefType   string            `json:"github_ref_type,omitempty"`
	RepositoryURL   string            `json:"repository_url,omitempty"`
}

// StatusData is the status part of TemplateData.
type StatusData struct {
	State           string     `json:"state"`
	Label           string     `json:"label"`
	Note            string     `json:"note,omitempty"`
	SupersedingURLs []LinkData `json:"superseding_urls,omitempty"`
}

// LinkData is a link in TemplateData.
type LinkData struct {
	URL   string `json:"url"`
	Title string `json:"title,omitempty"`
}

// OrganizationData is an affiliation in TemplateData. Its fields mirror
// Organization.
type OrganizationData struct {
	InternalID string `json:"internal_id,omitempty"`
	ROR        string `json:"ror,omitempty"`
	Name       string `json:"name,omitempty"`
	Address    string `json:"address,omitempty"`
	URL        string `json:"url,omitempty"`
}

// PersonData is an author in TemplateData.
type PersonData struct {
	Name         string             `json:"name"`
	Given        string             `json:"given"`
	Family       string             `json:"family"`
	InternalID   string             `json:"internal_id,omitempty"`
	ORCID        string             `json:"orcid,omitempty"`
	Email        string             `json:"email,omitempty"`
	Affiliations []OrganizationData `json:"affiliations,omitempty"`
}

// ContributorData is a contributor in TemplateData.
type ContributorData struct {
	Name         string             `json:"name"`
	Given        string             `json:"given"`
	Family       string             `json:"family"`
	InternalID   string             `json:"internal_id,omitempty"`
	ORCID        string             `json:"orcid,omitempty"`
	Email        string             `json:"email,omitempty"`
	Affiliations []OrganizationData `json:"affiliations,omitempty"`
	Role         string             `json:"role,omitempty"`
	Note         string             `json:"note,omitempty"`
}

// stateLabels are the headings shown in the status notice.
var stateLabels = map[State]string{
	StateDraft:      "Draft",
	StateStable:     "Stable",
	StateDeprecated: "Deprecated",
	StateOther:      "Status",
}

// Data returns a snapshot of the context. Unlike Title, it never fails:
// a missing title is "".
func (c *Context) Data() TemplateData {
	md := c.md
	d := TemplateData{
		Title:           md.Title,
		ID:              md.ID,
		SeriesID:        md.SeriesID,
		Version:         md.Version,
		CanonicalURL:    md.CanonicalURL,
		DateCreated:     c.DateCreatedISO(),
		DateUpdated:     c.DateUpdatedISO(),
		DatetimeCreated: c.DatetimeCreatedISO(),
		DatetimeUpdated: c.DatetimeUpdatedISO(),
		Status:          statusData(md.Status),
		Authors:         make([]PersonData, 0, len(md.Authors)),
		LicenseID:       md.LicenseID,
		GitHubURL:       c.GitHubURL(),
		GitHubRepoSlug:  c.GitHubRepoSlug(),
		GitHubEditURL:   c.GitHubEditURL(),
		GitHubRefName:   c.GitHubRefName(),
		GitHubRefType:   c.GitHubRefType(),
	}
	if md.AbstractPlain != nil {
		d.Abstract = *md.AbstractPlain
	}
	if md.Citation != nil {
		d.DOI = md.Citation.DOI
	}
	if md.SourceRepository != nil {
		d.RepositoryURL = md.SourceRepository.URL
	}
	for _, a := range md.Authors {
		d.Authors = append(d.Authors, personData(a))
	}
	for _, ct := range md.Contributors {
		p := personData(ct.Person)
		d.Contributors = append(d.Contributors, ContributorData{
			Name:         p.Name,
			Given:        p.Given,
			Family:       p.Family,
			InternalID:   p.InternalID,
			ORCID:        p.ORCID,
			Email:        p.Email,
			Affiliations: p.Affiliations,
			Role:         string(ct.Role),
			Note:         ct.Note,
		})
	}
	return d
}

func statusData(s Status) StatusData {
	label, ok := stateLabels[s.State]
	if !ok {
		label = string(s.State)
	}
	out := StatusData{State: string(s.State), Label: label, Note: s.Note}
	for _, l := range s.SupersedingURLs {
		out.SupersedingURLs = append(out.SupersedingURLs, LinkData(l))
	}
	return out
}

func personData(p Person) PersonData {
	out := PersonData{
		Name:       p.Name.PlainTextName(),
		Given:      p.Name.Given,
		Family:     p.Name.Family,
		InternalID: p.InternalID,
		ORCID:      p.ORCID,
		Email:      p.Email,
	}
	for _, o := range p.Affiliations {
		out.Affiliations = append(out.Affiliations, OrganizationData(o))
	}
	return out
}
