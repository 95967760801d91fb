package technote

import (
	"context"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-technote/internal/assets"
	"github.com/alnah/go-technote/internal/config"
	"github.com/alnah/go-technote/internal/fileutil"
	"github.com/alnah/go-technote/internal/pipeline"
)

// RootFilenames are the root content files of a technote, in lookup order.
var RootFilenames = []string{"index.rst", "index.md", "index.ipynb"}

// BaseExtension is the build-tool extension every technote loads.
const BaseExtension = "technote.ext"

// Project is a technote directory: its validated configuration, its root
// content file and the Context built from them.
//
// A Project belongs to one build pass and is not safe for concurrent use.
type Project struct {
	Dir        string
	ConfigPath string
	RootPath   string
	Config     *Config

	ctx    *Context
	logger *log.Logger
	assets assets.Loader
}

type projectOptions struct {
	logger     *log.Logger
	configPath string
	assetPath  string
	clock      func() time.Time
	lookupEnv  func(string) (string, bool)
	version    string
}

// Option configures Open.
type Option func(*projectOptions)

// WithLogger sets the logger. The default discards all output.
func WithLogger(l *log.Logger) Option {
	return func(o *projectOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithConfigPath reads technote.toml from path instead of the project
// directory.
func WithConfigPath(path string) Option {
	return func(o *projectOptions) {
		o.configPath = path
	}
}

// WithAssetPath sets a directory whose styles/ and templates/ override the
// embedded assets.
func WithAssetPath(path string) Option {
	return func(o *projectOptions) {
		o.assetPath = path
	}
}

// WithProjectClock sets the clock used for a missing date_updated.
func WithProjectClock(now func() time.Time) Option {
	return func(o *projectOptions) {
		o.clock = now
	}
}

// WithProjectEnv sets the build environment lookup passed to the Context.
func WithProjectEnv(lookup func(string) (string, bool)) Option {
	return func(o *projectOptions) {
		o.lookupEnv = lookup
	}
}

// WithVersion sets the version reported in the generator tag.
func WithVersion(v string) Option {
	return func(o *projectOptions) {
		o.version = v
	}
}

// Open loads the technote in dir: it parses technote.toml, builds the
// metadata and locates the root content file.
//
// Errors wrap ErrConfigNotFound, ErrMalformedSyntax, ErrValidation or
// ErrRootFileNotFound.
func Open(dir string, opts ...Option) (*Project, error) {
	o := projectOptions{
		logger:    log.New(io.Discard),
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.configPath == "" {
		o.configPath = filepath.Join(dir, config.FileName)
	}

	cfg, err := config.LoadFile(o.configPath)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("loaded configuration", "path", o.configPath)
	for _, table := range cfg.IgnoredTables {
		o.logger.Debug("ignoring table", "table", table)
	}
	for _, key := range cfg.Technote.IgnoredKeys {
		o.logger.Debug("ignoring key", "key", "technote."+key)
	}

	rootPath, err := fileutil.FirstExisting(dir, RootFilenames...)
	if err != nil {
		if errors.Is(err, fileutil.ErrNoCandidate) {
			return nil, fmt.Errorf("%w: %v", ErrRootFileNotFound, err)
		}
		return nil, err
	}
	o.logger.Debug("found root content file", "path", rootPath)

	resolver, err := assets.NewResolver(o.assetPath)
	if err != nil {
		return nil, fmt.Errorf("asset path: %w", err)
	}

	factory := NewFactory(WithClock(o.clock), WithFactoryLogger(o.logger))
	md := factory.Build(cfg)

	return &Project{
		Dir:        dir,
		ConfigPath: o.configPath,
		RootPath:   rootPath,
		Config:     cfg,
		ctx: NewContext(md, filepath.Base(rootPath),
			WithEnvLookup(o.lookupEnv),
			WithGeneratorVersion(o.version),
		),
		logger: o.logger,
		assets: resolver,
	}, nil
}

// Context returns the project's templating context.
func (p *Project) Context() *Context {
	return p.ctx
}

// discovererFor picks the content reader for a root file.
func discovererFor(path string) (pipeline.Discoverer, error) {
	switch filepath.Ext(path) {
	case ".md":
		return pipeline.NewMarkdownDiscoverer(), nil
	case ".rst":
		return pipeline.NewRSTDiscoverer(), nil
	case ".ipynb":
		return pipeline.NewNotebookDiscoverer(), nil
	case ".html", ".htm":
		return pipeline.NewHTMLDiscoverer(), nil
	}
	return nil, fmt.Errorf("%w: unsupported content type %q", pipeline.ErrDiscovery, filepath.Ext(path))
}

// Discover reads the root content file and feeds its title and abstract
// to the Context. A title from technote.toml is kept.
func (p *Project) Discover(ctx context.Context) error {
	d, err := discovererFor(p.RootPath)
	if err != nil {
		return err
	}
	source, err := os.ReadFile(p.RootPath) // #nosec G304 -- path is found inside the project directory
	if err != nil {
		return fmt.Errorf("reading %s: %w", p.RootPath, err)
	}
	return p.apply(ctx, d, source, p.RootPath)
}

// DiscoverHTML reads the title and abstract from a rendered page.
func (p *Project) DiscoverHTML(ctx context.Context, page []byte) error {
	return p.apply(ctx, pipeline.NewHTMLDiscoverer(), page, "html")
}

func (p *Project) apply(ctx context.Context, d pipeline.Discoverer, source []byte, origin string) error {
	found, err := d.Discover(ctx, source)
	if err != nil {
		return err
	}
	if found.Title != "" {
		p.ctx.SetContentTitle(found.Title)
		p.logger.Debug("discovered title", "source", origin, "title", found.Title)
	}
	if found.Abstract != nil {
		p.ctx.SetAbstract(*found.Abstract)
		p.logger.Debug("discovered abstract", "source", origin, "length", len(*found.Abstract))
	}
	return nil
}

// InjectHTML adds the head tags to page and, for technotes that are not
// stable, the status styles and the status aside under the title. Pages
// that already carry the generator tag keep their head as is, so running
// it twice adds nothing.
func (p *Project) InjectHTML(ctx context.Context, page string) (string, error) {
	page = (&pipeline.HeadInjection{Marker: generatorMarker}).InjectHead(ctx, page, p.ctx.HeadTags())
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !p.ctx.StatusNeedsNotice() {
		return page, nil
	}

	css, err := p.assets.LoadStyle(assets.StatusStyleName)
	if err != nil {
		return "", fmt.Errorf("loading status style: %w", err)
	}
	tmpl, err := p.assets.LoadTemplate(assets.StatusTemplateName)
	if err != nil {
		return "", fmt.Errorf("loading status template: %w", err)
	}
	injector, err := pipeline.NewStatusInjection(tmpl)
	if err != nil {
		return "", err
	}

	withAside, err := injector.InjectStatus(ctx, page, statusInjectionData(p.ctx.Data().Status))
	if err != nil {
		return "", err
	}
	if withAside == page {
		p.logger.Debug("status notice already present")
		return page, nil
	}
	p.logger.Debug("inserted status notice", "state", p.ctx.State())
	return (&pipeline.CSSInjection{}).InjectCSS(ctx, withAside, css), nil
}

func statusInjectionData(s StatusData) *pipeline.StatusData {
	out := &pipeline.StatusData{State: s.State, Label: s.Label, Note: s.Note}
	for _, l := range s.SupersedingURLs {
		out.SupersedingURLs = append(out.SupersedingURLs, pipeline.StatusLink{URL: l.URL, Title: l.Title})
	}
	return out
}

// Extensions returns base followed by the configured extensions that base
// does not already contain.
func (p *Project) Extensions(base []string) []string {
	out := slices.Clone(base)
	for _, ext := range p.Config.Technote.Sphinx.Extensions {
		if !slices.Contains(out, ext) {
			out = append(out, ext)
		}
	}
	return out
}

// IntersphinxMapping returns the configured intersphinx projects.
func (p *Project) IntersphinxMapping() map[string]string {
	return maps.Clone(p.Config.Technote.Sphinx.IntersphinxProjects)
}

// LinkcheckIgnore returns the URL patterns skipped by link checking.
func (p *Project) LinkcheckIgnore() []string {
	return slices.Clone(p.Config.Technote.Sphinx.LinkcheckIgnore)
}

// NitpickIgnore returns the (type, target) pairs exempt from nitpicky mode.
func (p *Project) NitpickIgnore() [][2]string {
	return slices.Clone(p.Config.Technote.Sphinx.NitpickIgnore)
}

// NitpickIgnoreRegex returns the (type, target) regular expression pairs
// exempt from nitpicky mode.
func (p *Project) NitpickIgnoreRegex() [][2]string {
	return slices.Clone(p.Config.Technote.Sphinx.NitpickIgnoreRegex)
}

// Nitpicky reports whether the build warns about every missing reference.
func (p *Project) Nitpicky() bool {
	return p.Config.Technote.Sphinx.Nitpicky
}

// BuildSettings are the settings handed to the document build tool.
type BuildSettings struct {
	Project            string            `json:"project"`
	Author             string            `json:"author"`
	Extensions         []string          `json:"extensions"`
	Nitpicky           bool              `json:"nitpicky"`
	NitpickIgnore      [][2]string       `json:"nitpick_ignore"`
	NitpickIgnoreRegex [][2]string       `json:"nitpick_ignore_regex"`
	IntersphinxMapping map[string]string `json:"intersphinx_mapping"`
	LinkcheckIgnore    []string          `json:"linkcheck_ignore"`
	HTMLBaseURL        string            `json:"html_baseurl,omitempty"`
}

// Settings returns the build-tool settings derived from technote.toml.
// Project is the configured title, or "" when the title comes from content.
func (p *Project) Settings() BuildSettings {
	return BuildSettings{
		Project:            p.Config.Technote.Title,
		Author:             p.ctx.Authors(),
		Extensions:         p.Extensions([]string{BaseExtension}),
		Nitpicky:           p.Nitpicky(),
		NitpickIgnore:      nonNil(p.NitpickIgnore()),
		NitpickIgnoreRegex: nonNil(p.NitpickIgnoreRegex()),
		IntersphinxMapping: p.IntersphinxMapping(),
		LinkcheckIgnore:    nonNil(p.LinkcheckIgnore()),
		HTMLBaseURL:        p.ctx.CanonicalURL(),
	}
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
