package technote

import (
	"net/url"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/alnah/go-technote/internal/dateutil"
)

// modulePath identifies this module in build info.
const modulePath = "github.com/alnah/go-technote"

// Environment variables naming the version-control ref being built.
const (
	EnvRefName = "GITHUB_REF_NAME"
	EnvRefType = "GITHUB_REF_TYPE"
)

// Context exposes one technote's metadata to the host templating layer.
//
// A Context is built in two phases. The factory seeds it from
// technote.toml, then content discovery calls SetContentTitle and
// SetAbstract. Title returns ErrMissingTitle until one of the two phases
// has supplied a title.
//
// A Context is not safe for concurrent use.
type Context struct {
	md           *Metadata
	rootFilename string
	lookupEnv    func(string) (string, bool)
	version      string
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithEnvLookup sets the function used to read the build environment.
// The default is os.LookupEnv.
func WithEnvLookup(lookup func(string) (string, bool)) ContextOption {
	return func(c *Context) {
		if lookup != nil {
			c.lookupEnv = lookup
		}
	}
}

// WithGeneratorVersion overrides the version reported by GeneratorTag.
func WithGeneratorVersion(v string) ContextOption {
	return func(c *Context) {
		if v != "" {
			c.version = v
		}
	}
}

// NewContext wraps md. rootFilename is the root content file, used only to
// build the edit URL. The Context takes ownership of md. Metadata with no
// state is treated as stable, the same default the Factory applies.
func NewContext(md *Metadata, rootFilename string, opts ...ContextOption) *Context {
	if md == nil {
		md = &Metadata{}
	}
	if md.Status.State == "" {
		md.Status.State = StateStable
	}
	c := &Context{
		md:           md,
		rootFilename: rootFilename,
		lookupEnv:    os.LookupEnv,
		version:      moduleVersion(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Metadata returns a copy of the current metadata.
func (c *Context) Metadata() *Metadata {
	return c.md.Clone()
}

// RootFilename returns the root content filename.
func (c *Context) RootFilename() string {
	return c.rootFilename
}

// Title returns the technote title, from technote.toml or the content.
func (c *Context) Title() (string, error) {
	if c.md.Title == "" {
		return "", ErrMissingTitle
	}
	return c.md.Title, nil
}

// Abstract returns the plain-text abstract and whether one was discovered.
func (c *Context) Abstract() (string, bool) {
	if c.md.AbstractPlain == nil {
		return "", false
	}
	return *c.md.AbstractPlain, true
}

// SetContentTitle sets the title discovered in the content. A title set
// in technote.toml, or by an earlier call, takes precedence.
func (c *Context) SetContentTitle(title string) {
	if c.md.Title == "" {
		c.md.Title = title
	}
}

// SetAbstract sets the plain-text abstract discovered in the content.
// The last call wins.
func (c *Context) SetAbstract(abstract string) {
	c.md.AbstractPlain = &abstract
}

// State returns the lifecycle state.
func (c *Context) State() State {
	return c.md.Status.State
}

// StatusNeedsNotice reports whether readers should see a status notice,
// which is the case for every state except stable.
func (c *Context) StatusNeedsNotice() bool {
	return c.md.Status.State != StateStable
}

// DateCreatedISO returns the creation date as YYYY-MM-DD in UTC, or "".
func (c *Context) DateCreatedISO() string {
	return isoDate(c.md.DateCreated)
}

// DateUpdatedISO returns the update date as YYYY-MM-DD in UTC, or "".
func (c *Context) DateUpdatedISO() string {
	return isoDate(c.md.DateUpdated)
}

// DatetimeCreatedISO returns the creation time as YYYY-MM-DDTHH:MM:SSZ, or "".
func (c *Context) DatetimeCreatedISO() string {
	return isoDatetime(c.md.DateCreated)
}

// DatetimeUpdatedISO returns the update time as YYYY-MM-DDTHH:MM:SSZ, or "".
func (c *Context) DatetimeUpdatedISO() string {
	return isoDatetime(c.md.DateUpdated)
}

// Version returns the technote version string, or "".
func (c *Context) Version() string { return c.md.Version }

// CanonicalURL returns the URL where the technote is published, or "".
func (c *Context) CanonicalURL() string { return c.md.CanonicalURL }

// Authors returns the author names joined by ", ".
func (c *Context) Authors() string {
	names := make([]string, len(c.md.Authors))
	for i, a := range c.md.Authors {
		names[i] = a.Name.PlainTextName()
	}
	return strings.Join(names, ", ")
}

// GitHubURL returns the source repository URL when it is hosted on
// github.com, or "".
func (c *Context) GitHubURL() string {
	repo := c.md.SourceRepository
	if repo == nil || !strings.HasPrefix(repo.URL, "https://github.com") {
		return ""
	}
	return repo.URL
}

// GitHubRepoSlug returns "owner/name" for a GitHub repository, or "".
func (c *Context) GitHubRepoSlug() string {
	gh := c.GitHubURL()
	if gh == "" {
		return ""
	}
	u, err := url.Parse(gh)
	if err != nil {
		return ""
	}
	parts := strings.Split(strings.TrimLeft(u.Path, "/"), "/")
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.TrimSuffix(strings.Join(parts, "/"), ".git")
}

// GitHubEditURL returns the URL of the root content file on the default
// branch, or "" when the repository is not on GitHub.
func (c *Context) GitHubEditURL() string {
	gh := c.GitHubURL()
	if gh == "" {
		return ""
	}
	branch := c.md.SourceRepository.Branch
	if branch == "" {
		branch = "main"
	}
	root := strings.TrimSuffix(gh, ".git")
	return root + "/blob/" + branch + "/" + filepath.Base(c.rootFilename)
}

// GitHubRefName returns the branch or tag being built, read from the
// environment on every call.
func (c *Context) GitHubRefName() string {
	v, _ := c.lookupEnv(EnvRefName)
	return v
}

// GitHubRefType returns "branch" or "tag", read from the environment on
// every call.
func (c *Context) GitHubRefType() string {
	v, _ := c.lookupEnv(EnvRefType)
	return v
}

// HighwireTags renders the citation tags for the current metadata.
func (c *Context) HighwireTags() string {
	return HighwireTags(c.md)
}

// OpenGraphTags renders the Open Graph tags for the current metadata.
func (c *Context) OpenGraphTags() string {
	return OpenGraphTags(c.md)
}

// generatorMarker starts every generator tag. A page containing it has
// already been through InjectHTML.
const generatorMarker = `<meta name="generator" content="technote `

// GeneratorTag returns a meta generator tag naming this module's version.
func (c *Context) GeneratorTag() string {
	return generatorMarker + escape(c.version) + `: https://technote.lsst.io">`
}

// HeadTags returns the Highwire, Open Graph and generator tags, in that
// order, ready to place in the document head.
func (c *Context) HeadTags() string {
	return c.HighwireTags() + c.OpenGraphTags() + c.GeneratorTag() + "\n"
}

func isoDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dateutil.FormatISODate(t)
}

func isoDatetime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return dateutil.FormatISODatetime(t)
}

// moduleVersion reports this module's version from build info, or "0.0.0"
// when it is unavailable.
func moduleVersion() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "0.0.0"
	}
	if info.Main.Path == modulePath && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	for _, dep := range info.Deps {
		if dep.Path == modulePath {
			return dep.Version
		}
	}
	return "0.0.0"
}
