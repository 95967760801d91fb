package technote

import (
	"fmt"

	"github.com/alnah/go-technote/internal/dateutil"
)

// highwire formats citation_* tags read by academic indexers such as
// Google Scholar.
var highwire = tagFormatter{fields: []tagField{
	{"title", highwireTitle},
	{"author_info", highwireAuthors},
	{"date", highwireDate},
	{"doi", highwireDOI},
	{"technical_report_number", highwireReportNumber},
	{"fulltext_html_url", highwireHTMLURL},
}}

// HighwireTags renders the Highwire Press citation tags for md.
//
// Missing optional fields are skipped. The citation date is the update
// date, falling back to the creation date, as YYYY-MM-DD.
func HighwireTags(md *Metadata) string {
	if md == nil {
		return ""
	}
	return highwire.render(md)
}

func highwireTag(name, content string) string {
	return fmt.Sprintf(`<meta name="citation_%s" content="%s" data-highwire="true">`, name, escape(content))
}

func highwireTitle(md *Metadata) []string {
	if md.Title == "" {
		return nil
	}
	return one(highwireTag("title", md.Title))
}

// highwireAuthors emits, per author: the name, each named institution,
// the email and the ORCID.
func highwireAuthors(md *Metadata) []string {
	var tags []string
	for _, a := range md.Authors {
		tags = append(tags, highwireTag("author", a.Name.PlainTextName()))
		for _, org := range a.Affiliations {
			if org.Name != "" {
				tags = append(tags, highwireTag("author_institution", org.Name))
			}
		}
		if a.Email != "" {
			tags = append(tags, highwireTag("author_email", a.Email))
		}
		if a.ORCID != "" {
			tags = append(tags, highwireTag("author_orcid", a.ORCID))
		}
	}
	return tags
}

func highwireDate(md *Metadata) []string {
	switch {
	case !md.DateUpdated.IsZero():
		return one(highwireTag("date", dateutil.FormatISODate(md.DateUpdated)))
	case !md.DateCreated.IsZero():
		return one(highwireTag("date", dateutil.FormatISODate(md.DateCreated)))
	}
	return nil
}

func highwireDOI(md *Metadata) []string {
	if md.Citation == nil || md.Citation.DOI == "" {
		return nil
	}
	return one(highwireTag("doi", md.Citation.DOI))
}

func highwireReportNumber(md *Metadata) []string {
	if md.ID == "" {
		return nil
	}
	return one(highwireTag("technical_report_number", md.ID))
}

func highwireHTMLURL(md *Metadata) []string {
	if md.CanonicalURL == "" {
		return nil
	}
	return one(highwireTag("fulltext_html_url", md.CanonicalURL))
}
