package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestResolver - Override-first loading with built-in fallback
// ---------------------------------------------------------------------------

func TestResolver_BuiltinOnly(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("")
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if r.HasOverrides() {
		t.Error("HasOverrides() = true, want false")
	}

	want, _ := LoadTemplate(StatusTemplateName)
	got, err := r.LoadTemplate(StatusTemplateName)
	if err != nil || got != want {
		t.Errorf("LoadTemplate = %q, %v; want built-in template", got, err)
	}
}

func TestResolver_InvalidDir(t *testing.T) {
	t.Parallel()

	_, err := NewResolver(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrInvalidAssetDir) {
		t.Fatalf("error = %v, want ErrInvalidAssetDir", err)
	}
}

func TestResolver_Fallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "templates/status.html", `<aside class="custom">{{.Label}}</aside>`)

	r, err := NewResolver(dir)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}
	if !r.HasOverrides() {
		t.Error("HasOverrides() = false, want true")
	}

	tmpl, err := r.LoadTemplate(StatusTemplateName)
	if err != nil {
		t.Fatalf("LoadTemplate: %v", err)
	}
	if !strings.Contains(tmpl, `class="custom"`) {
		t.Errorf("template override not used: %q", tmpl)
	}

	css, err := r.LoadStyle(StatusStyleName)
	if err != nil {
		t.Fatalf("LoadStyle: %v", err)
	}
	builtinCSS, _ := LoadStyle(StatusStyleName)
	if css != builtinCSS {
		t.Error("missing style override should fall back to the built-in style")
	}
}

func TestResolver_Errors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A directory where a file is expected cannot be read.
	if err := os.MkdirAll(filepath.Join(dir, "styles", "status.css"), 0o750); err != nil {
		t.Fatal(err)
	}
	r, err := NewResolver(dir)
	if err != nil {
		t.Fatalf("NewResolver: %v", err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		wantErr error
	}{
		{name: "invalid name is not retried", load: r.LoadTemplate, asset: "a/b", wantErr: ErrInvalidAssetName},
		{name: "read error is not retried", load: r.LoadStyle, asset: StatusStyleName, wantErr: ErrAssetRead},
		{name: "missing everywhere", load: r.LoadStyle, asset: "print", wantErr: ErrStyleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := tt.load(tt.asset); !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
