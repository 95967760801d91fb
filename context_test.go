package technote

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fakeEnv(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// ---------------------------------------------------------------------------
// TestContextTitle - Two-phase title initialization
// ---------------------------------------------------------------------------

func TestContextTitle(t *testing.T) {
	t.Parallel()

	t.Run("missing before discovery", func(t *testing.T) {
		t.Parallel()

		ctx := NewContext(&Metadata{}, "index.rst")
		if _, err := ctx.Title(); !errors.Is(err, ErrMissingTitle) {
			t.Fatalf("Title() error = %v, want ErrMissingTitle", err)
		}
	})

	t.Run("content title fills empty title", func(t *testing.T) {
		t.Parallel()

		ctx := NewContext(&Metadata{}, "index.rst")
		ctx.SetContentTitle("From content")
		got, err := ctx.Title()
		if err != nil || got != "From content" {
			t.Errorf("Title() = %q, %v", got, err)
		}
	})

	t.Run("configured title wins", func(t *testing.T) {
		t.Parallel()

		ctx := NewContext(&Metadata{Title: "Configured"}, "index.rst")
		ctx.SetContentTitle("First")
		ctx.SetContentTitle("Second")
		got, _ := ctx.Title()
		if got != "Configured" {
			t.Errorf("Title() = %q, want %q", got, "Configured")
		}
	})

	t.Run("first content title wins", func(t *testing.T) {
		t.Parallel()

		ctx := NewContext(&Metadata{}, "index.rst")
		ctx.SetContentTitle("First")
		ctx.SetContentTitle("Second")
		got, _ := ctx.Title()
		if got != "First" {
			t.Errorf("Title() = %q, want %q", got, "First")
		}
	})
}

func TestContextAbstract(t *testing.T) {
	t.Parallel()

	ctx := NewContext(&Metadata{}, "index.rst")
	if _, ok := ctx.Abstract(); ok {
		t.Fatal("Abstract() reported a value before discovery")
	}

	ctx.SetAbstract("First.")
	ctx.SetAbstract("Second.")
	got, ok := ctx.Abstract()
	if !ok || got != "Second." {
		t.Errorf("Abstract() = %q, %v; want last writer", got, ok)
	}

	ctx.SetAbstract("")
	if got, ok := ctx.Abstract(); !ok || got != "" {
		t.Errorf("empty abstract should still count as set, got %q, %v", got, ok)
	}
}

func TestContextMetadataIsCopy(t *testing.T) {
	t.Parallel()

	ctx := NewContext(&Metadata{Title: "T", Authors: []Person{{Name: PersonName{Given: "A", Family: "B"}}}}, "index.rst")
	md := ctx.Metadata()
	md.Title = "changed"
	md.Authors[0].Name.Family = "changed"

	if got, _ := ctx.Title(); got != "T" {
		t.Errorf("Title changed through Metadata(): %q", got)
	}
	if ctx.Authors() != "A B" {
		t.Errorf("Authors changed through Metadata(): %q", ctx.Authors())
	}
}

// ---------------------------------------------------------------------------
// TestContextDates - ISO views normalized to UTC
// ---------------------------------------------------------------------------

func TestContextDates(t *testing.T) {
	t.Parallel()

	md := buildMetadata(t, `
[technote]
date_created = "2015-11-18"
date_updated = "2015-11-23T15:00:00Z"
`)
	ctx := NewContext(md, "index.rst")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"DateCreatedISO", ctx.DateCreatedISO(), "2015-11-18"},
		{"DateUpdatedISO", ctx.DateUpdatedISO(), "2015-11-23"},
		{"DatetimeCreatedISO", ctx.DatetimeCreatedISO(), "2015-11-18T00:00:00Z"},
		{"DatetimeUpdatedISO", ctx.DatetimeUpdatedISO(), "2015-11-23T15:00:00Z"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}
}

func TestContextDates_Unset(t *testing.T) {
	t.Parallel()

	ctx := NewContext(&Metadata{}, "index.rst")
	if ctx.DateCreatedISO() != "" || ctx.DatetimeCreatedISO() != "" {
		t.Error("unset creation date should format as empty")
	}
	if ctx.DateUpdatedISO() != "" || ctx.DatetimeUpdatedISO() != "" {
		t.Error("unset update date should format as empty")
	}
}

func TestContextDates_OffsetNormalized(t *testing.T) {
	t.Parallel()

	est := time.FixedZone("EST", -5*3600)
	ctx := NewContext(&Metadata{DateUpdated: time.Date(2015, 11, 23, 21, 0, 0, 0, est)}, "index.rst")

	if got := ctx.DateUpdatedISO(); got != "2015-11-24" {
		t.Errorf("DateUpdatedISO = %q, want UTC date", got)
	}
	if got := ctx.DatetimeUpdatedISO(); got != "2015-11-24T02:00:00Z" {
		t.Errorf("DatetimeUpdatedISO = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestContextGitHub - Repository slug and edit URL
// ---------------------------------------------------------------------------

func TestContextGitHub(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		repo     *SourceRepository
		root     string
		wantURL  string
		wantSlug string
		wantEdit string
	}{
		{
			name:     "default branch",
			repo:     &SourceRepository{URL: "https://github.com/lsst-sqre/sqr-000", Branch: "main"},
			root:     "index.rst",
			wantURL:  "https://github.com/lsst-sqre/sqr-000",
			wantSlug: "lsst-sqre/sqr-000",
			wantEdit: "https://github.com/lsst-sqre/sqr-000/blob/main/index.rst",
		},
		{
			name:     "empty branch falls back to main",
			repo:     &SourceRepository{URL: "https://github.com/lsst-sqre/sqr-000"},
			root:     "/work/sqr-000/index.md",
			wantURL:  "https://github.com/lsst-sqre/sqr-000",
			wantSlug: "lsst-sqre/sqr-000",
			wantEdit: "https://github.com/lsst-sqre/sqr-000/blob/main/index.md",
		},
		{
			name:     "trailing .git stripped",
			repo:     &SourceRepository{URL: "https://github.com/lsst-sqre/sqr-000.git", Branch: "develop"},
			root:     "index.rst",
			wantURL:  "https://github.com/lsst-sqre/sqr-000.git",
			wantSlug: "lsst-sqre/sqr-000",
			wantEdit: "https://github.com/lsst-sqre/sqr-000/blob/develop/index.rst",
		},
		{
			name:     "extra path segments ignored in slug",
			repo:     &SourceRepository{URL: "https://github.com/lsst-sqre/sqr-000/tree/main", Branch: "main"},
			root:     "index.rst",
			wantURL:  "https://github.com/lsst-sqre/sqr-000/tree/main",
			wantSlug: "lsst-sqre/sqr-000",
			wantEdit: "https://github.com/lsst-sqre/sqr-000/tree/main/blob/main/index.rst",
		},
		{
			name: "not on GitHub",
			repo: &SourceRepository{URL: "https://gitlab.com/group/project"},
			root: "index.rst",
		},
		{
			name: "no repository",
			root: "index.rst",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := NewContext(&Metadata{SourceRepository: tt.repo}, tt.root)
			if got := ctx.GitHubURL(); got != tt.wantURL {
				t.Errorf("GitHubURL() = %q, want %q", got, tt.wantURL)
			}
			if got := ctx.GitHubRepoSlug(); got != tt.wantSlug {
				t.Errorf("GitHubRepoSlug() = %q, want %q", got, tt.wantSlug)
			}
			if got := ctx.GitHubEditURL(); got != tt.wantEdit {
				t.Errorf("GitHubEditURL() = %q, want %q", got, tt.wantEdit)
			}
		})
	}
}

func TestContextGitHub_FromConfig(t *testing.T) {
	t.Parallel()

	md := buildMetadata(t, `
[technote]
github_url = "https://github.com/lsst-sqre/sqr-000"
`)
	ctx := NewContext(md, "index.rst")

	if got := ctx.GitHubRepoSlug(); got != "lsst-sqre/sqr-000" {
		t.Errorf("GitHubRepoSlug() = %q", got)
	}
	if got := ctx.GitHubEditURL(); !strings.HasSuffix(got, "/blob/main/index.rst") {
		t.Errorf("GitHubEditURL() = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestContextRef - Build environment is read through the injected lookup
// ---------------------------------------------------------------------------

func TestContextRef(t *testing.T) {
	t.Parallel()

	vars := map[string]string{EnvRefName: "main", EnvRefType: "branch"}
	ctx := NewContext(&Metadata{}, "index.rst", WithEnvLookup(fakeEnv(vars)))

	if got := ctx.GitHubRefName(); got != "main" {
		t.Errorf("GitHubRefName() = %q", got)
	}
	if got := ctx.GitHubRefType(); got != "branch" {
		t.Errorf("GitHubRefType() = %q", got)
	}

	// Read on every call, not captured at construction.
	vars[EnvRefName] = "v1.0"
	vars[EnvRefType] = "tag"
	if ctx.GitHubRefName() != "v1.0" || ctx.GitHubRefType() != "tag" {
		t.Error("ref values were cached")
	}

	empty := NewContext(&Metadata{}, "index.rst", WithEnvLookup(fakeEnv(nil)))
	if empty.GitHubRefName() != "" || empty.GitHubRefType() != "" {
		t.Error("unset variables should be empty")
	}
}

// ---------------------------------------------------------------------------
// TestContextMisc - Remaining accessors
// ---------------------------------------------------------------------------

func TestContextAuthors(t *testing.T) {
	t.Parallel()

	ctx := NewContext(&Metadata{Authors: []Person{
		{Name: PersonName{Given: "Jonathan", Family: "Sick"}},
		{Name: PersonName{Given: "Frossie", Family: "Economou"}},
	}}, "index.rst")

	if got := ctx.Authors(); got != "Jonathan Sick, Frossie Economou" {
		t.Errorf("Authors() = %q", got)
	}
	if got := NewContext(&Metadata{}, "index.rst").Authors(); got != "" {
		t.Errorf("Authors() with no authors = %q", got)
	}
}

func TestContextStatusNeedsNotice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		state State
		want  bool
	}{
		{StateStable, false},
		{StateDraft, true},
		{StateDeprecated, true},
		{StateOther, true},
	}
	for _, tt := range tests {
		ctx := NewContext(&Metadata{Status: Status{State: tt.state}}, "index.rst")
		if got := ctx.StatusNeedsNotice(); got != tt.want {
			t.Errorf("StatusNeedsNotice(%s) = %v, want %v", tt.state, got, tt.want)
		}
	}
}

func TestContextStatusNeedsNotice_UnsetState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		md   *Metadata
	}{
		{"nil metadata", nil},
		{"metadata built by hand", &Metadata{Title: "T"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := NewContext(tt.md, "index.rst")
			if ctx.StatusNeedsNotice() {
				t.Error("StatusNeedsNotice() = true, want false for unset state")
			}
			if got := ctx.State(); got != StateStable {
				t.Errorf("State() = %q, want %q", got, StateStable)
			}
		})
	}
}

func TestContextGeneratorTag(t *testing.T) {
	t.Parallel()

	ctx := NewContext(&Metadata{}, "index.rst", WithGeneratorVersion("1.2.3"))
	want := `<meta name="generator" content="technote 1.2.3: https://technote.lsst.io">`
	if got := ctx.GeneratorTag(); got != want {
		t.Errorf("GeneratorTag() = %q, want %q", got, want)
	}

	if got := NewContext(&Metadata{}, "index.rst").GeneratorTag(); !strings.HasPrefix(got, `<meta name="generator" content="technote `) {
		t.Errorf("default GeneratorTag() = %q", got)
	}
}

func TestContextHeadTags(t *testing.T) {
	t.Parallel()

	ctx := NewContext(&Metadata{Title: "T"}, "index.rst", WithGeneratorVersion("1.0.0"))
	got := ctx.HeadTags()

	hw := strings.Index(got, `name="citation_title"`)
	og := strings.Index(got, `property="og:title"`)
	gen := strings.Index(got, `name="generator"`)
	if hw < 0 || og < 0 || gen < 0 || hw >= og || og >= gen {
		t.Errorf("HeadTags() order wrong:\n%s", got)
	}
	if !strings.HasSuffix(got, "\n") {
		t.Error("HeadTags() should end with a newline")
	}
}

func TestNewContext_NilMetadata(t *testing.T) {
	t.Parallel()

	ctx := NewContext(nil, "index.rst")
	if _, err := ctx.Title(); !errors.Is(err, ErrMissingTitle) {
		t.Errorf("Title() error = %v", err)
	}
	if ctx.RootFilename() != "index.rst" {
		t.Errorf("RootFilename() = %q", ctx.RootFilename())
	}
}

// ---------------------------------------------------------------------------
// TestContextData - Template snapshot
// ---------------------------------------------------------------------------

func TestContextData(t *testing.T) {
	t.Parallel()

	md := buildMetadata(t, factoryTOML)
	ctx := NewContext(md, "index.rst", WithEnvLookup(fakeEnv(map[string]string{EnvRefName: "main"})))
	ctx.SetAbstract("Summary.")

	d := ctx.Data()

	if d.Title != "The technote platform" || d.Abstract != "Summary." {
		t.Errorf("Title/Abstract = %q / %q", d.Title, d.Abstract)
	}
	if d.DateCreated != "2015-11-18" || d.DatetimeUpdated != "2015-11-23T15:00:00Z" {
		t.Errorf("dates = %q / %q", d.DateCreated, d.DatetimeUpdated)
	}
	if d.Status.State != "stable" || d.Status.Label != "Stable" {
		t.Errorf("Status = %+v", d.Status)
	}
	if len(d.Authors) != 1 || d.Authors[0].Name != "Jonathan Sick" || len(d.Authors[0].Affiliations) != 1 {
		t.Errorf("Authors = %+v", d.Authors)
	}
	if len(d.Contributors) != 1 || d.Contributors[0].Role != "Editor" {
		t.Errorf("Contributors = %+v", d.Contributors)
	}
	if d.DOI != "10.5281/zenodo.1234" || d.LicenseID != "CC-BY-4.0" {
		t.Errorf("DOI/License = %q / %q", d.DOI, d.LicenseID)
	}
	if d.GitHubRepoSlug != "lsst-sqre/sqr-000" || d.GitHubRefName != "main" {
		t.Errorf("GitHub = %q / %q", d.GitHubRepoSlug, d.GitHubRefName)
	}
}

func TestContextData_MissingTitle(t *testing.T) {
	t.Parallel()

	d := NewContext(&Metadata{Status: Status{State: StateOther}}, "index.rst").Data()
	if d.Title != "" {
		t.Errorf("Title = %q, want empty", d.Title)
	}
	if d.Status.Label != "Status" {
		t.Errorf("Label = %q", d.Status.Label)
	}
}
