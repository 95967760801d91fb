package assets

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// writeAsset creates dir/rel with content.
func writeAsset(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestNewOverrides - Directory checks
// ---------------------------------------------------------------------------

func TestNewOverrides(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		dir     string
		wantErr error
	}{
		{name: "directory", dir: t.TempDir()},
		{name: "empty path", dir: "", wantErr: ErrInvalidAssetDir},
		{name: "missing directory", dir: filepath.Join(t.TempDir(), "missing"), wantErr: ErrInvalidAssetDir},
		{name: "regular file", dir: file, wantErr: ErrInvalidAssetDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o, err := NewOverrides(tt.dir)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !filepath.IsAbs(o.Dir()) {
				t.Errorf("Dir() = %q, want absolute path", o.Dir())
			}
		})
	}
}

func TestNewOverrides_RelativePath(t *testing.T) {
	// Not parallel: changes the working directory.
	dir := t.TempDir()
	t.Chdir(dir)
	writeAsset(t, dir, "theme/styles/status.css", ".x {}")

	o, err := NewOverrides("theme")
	if err != nil {
		t.Fatalf("NewOverrides: %v", err)
	}
	if got, err := o.LoadStyle("status"); err != nil || got != ".x {}" {
		t.Errorf("LoadStyle = %q, %v", got, err)
	}
}

// ---------------------------------------------------------------------------
// TestOverridesLoad - Reading override files
// ---------------------------------------------------------------------------

func TestOverridesLoad(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles/status.css", ".technote-status-aside { color: red; }")
	writeAsset(t, dir, "templates/status.html", "<aside>{{.Label}}</aside>")

	o, err := NewOverrides(dir)
	if err != nil {
		t.Fatalf("NewOverrides: %v", err)
	}

	tests := []struct {
		name    string
		load    func(string) (string, error)
		asset   string
		want    string
		wantErr error
	}{
		{name: "style", load: o.LoadStyle, asset: "status", want: ".technote-status-aside { color: red; }"},
		{name: "template", load: o.LoadTemplate, asset: "status", want: "<aside>{{.Label}}</aside>"},
		{name: "missing style", load: o.LoadStyle, asset: "print", wantErr: ErrStyleNotFound},
		{name: "missing template", load: o.LoadTemplate, asset: "banner", wantErr: ErrTemplateNotFound},
		{name: "traversal", load: o.LoadStyle, asset: "../../etc/passwd", wantErr: ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := tt.load(tt.asset)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("content = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestOverridesLoad_SymlinkEscape(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	outside := filepath.Join(t.TempDir(), "secret.css")
	if err := os.WriteFile(outside, []byte("secret"), 0o600); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(outside, filepath.Join(dir, "styles", "status.css")); err != nil {
		t.Fatal(err)
	}

	o, err := NewOverrides(dir)
	if err != nil {
		t.Fatalf("NewOverrides: %v", err)
	}
	got, err := o.LoadStyle("status")
	if !errors.Is(err, ErrAssetRead) {
		t.Fatalf("error = %v, want ErrAssetRead (content %q)", err, got)
	}
}

func TestOverridesLoad_SymlinkInside(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on Windows")
	}

	dir := t.TempDir()
	writeAsset(t, dir, "shared/status.css", ".shared {}")
	if err := os.MkdirAll(filepath.Join(dir, "styles"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join("..", "shared", "status.css"), filepath.Join(dir, "styles", "status.css")); err != nil {
		t.Fatal(err)
	}

	o, err := NewOverrides(dir)
	if err != nil {
		t.Fatalf("NewOverrides: %v", err)
	}
	if got, err := o.LoadStyle("status"); err != nil || got != ".shared {}" {
		t.Errorf("LoadStyle = %q, %v", got, err)
	}
}
