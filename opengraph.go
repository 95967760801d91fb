package technote

import (
	"fmt"

	"github.com/alnah/go-technote/internal/dateutil"
)

// openGraph formats og:* tags used by social link previews.
var openGraph = tagFormatter{fields: []tagField{
	{"title", ogTitle},
	{"description", ogDescription},
	{"url", ogURL},
	{"type", ogType},
	{"authors", ogAuthors},
	{"dates", ogDates},
}}

// OpenGraphTags renders the Open Graph tags for md. The description is
// omitted until an abstract has been set.
func OpenGraphTags(md *Metadata) string {
	if md == nil {
		return ""
	}
	return openGraph.render(md)
}

func ogTag(property, content string) string {
	return fmt.Sprintf(`<meta property="og:%s" content="%s">`, property, escape(content))
}

func ogTitle(md *Metadata) []string {
	if md.Title == "" {
		return nil
	}
	return one(ogTag("title", md.Title))
}

func ogDescription(md *Metadata) []string {
	if md.AbstractPlain == nil {
		return nil
	}
	return one(ogTag("description", *md.AbstractPlain))
}

func ogURL(md *Metadata) []string {
	if md.CanonicalURL == "" {
		return nil
	}
	return one(ogTag("url", md.CanonicalURL))
}

func ogType(*Metadata) []string {
	return one(ogTag("type", "article"))
}

func ogAuthors(md *Metadata) []string {
	tags := make([]string, 0, len(md.Authors))
	for _, a := range md.Authors {
		tags = append(tags, ogTag("article:author", a.Name.PlainTextName()))
	}
	return tags
}

// ogDates publishes the only known date, or the creation date with the
// update date as the modification time.
func ogDates(md *Metadata) []string {
	created, updated := !md.DateCreated.IsZero(), !md.DateUpdated.IsZero()
	switch {
	case created && updated:
		return []string{
			ogTag("article:published_time", dateutil.FormatISODatetime(md.DateCreated)),
			ogTag("article:modified_time", dateutil.FormatISODatetime(md.DateUpdated)),
		}
	case created:
		return one(ogTag("article:published_time", dateutil.FormatISODatetime(md.DateCreated)))
	case updated:
		return one(ogTag("article:published_time", dateutil.FormatISODatetime(md.DateUpdated)))
	}
	return nil
}
