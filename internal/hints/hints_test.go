package hints

import (
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-technote/internal/config"
)

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound()
	if !strings.HasPrefix(hint, "\n  hint: ") {
		t.Errorf("hint should start with hint prefix, got %q", hint)
	}
	if !strings.Contains(hint, "--config") || !strings.Contains(hint, "technote.toml") {
		t.Errorf("hint should mention --config and technote.toml, got %q", hint)
	}
}

func TestForMalformedSyntax(t *testing.T) {
	t.Parallel()

	if hint := ForMalformedSyntax(); !strings.Contains(hint, "double quotes") {
		t.Errorf("unexpected hint %q", hint)
	}
}

func TestForRootFileNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{"lists candidates", []string{"index.rst", "index.md"}, "create one of: index.rst, index.md"},
		{"no candidates", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			hint := ForRootFileNotFound(tt.candidates)
			if tt.want == "" {
				if hint != "" {
					t.Errorf("expected empty hint, got %q", hint)
				}
				return
			}
			if !strings.Contains(hint, tt.want) {
				t.Errorf("hint %q should contain %q", hint, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestForValidation - Per-field hints from a parse failure
// ---------------------------------------------------------------------------

func TestForValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		toml    string
		want    []string
		wantNot []string
	}{
		{
			name:    "license case typo",
			toml:    "[technote]\nlicense = { id = \"cc-by-4.0\" }\n",
			want:    []string{"technote.license.id: did you mean", "CC-BY-4.0"},
			wantNot: []string{"spdx.org"},
		},
		{
			name: "unknown license",
			toml: "[technote]\nlicense = { id = \"NOT-A-REAL-ID\" }\n",
			want: []string{"https://spdx.org/licenses/"},
		},
		{
			name: "bad orcid",
			toml: "[technote]\n[[technote.authors]]\nname = { given = \"A\", family = \"B\" }\norcid = \"0000-0003-3001-6760\"\n",
			want: []string{"technote.authors[0].orcid: ORCID iDs look like"},
		},
		{
			name: "bad ror",
			toml: "[technote]\norganization = { ror = \"https://ror.org/048g3cy85\" }\n",
			want: []string{"technote.organization.ror: ROR IDs look like"},
		},
		{
			name: "bad state",
			toml: "[technote]\nstatus = { state = \"final\" }\n",
			want: []string{"use draft, stable, deprecated or other"},
		},
		{
			name:    "problem without hint",
			toml:    "[technote]\norganization = { address = \"Tucson\" }\n",
			wantNot: []string{"hint:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Parse([]byte(tt.toml))
			if err == nil {
				t.Fatal("expected a validation error")
			}
			hint := ForValidation(err)
			for _, w := range tt.want {
				if !strings.Contains(hint, w) {
					t.Errorf("hint should contain %q, got %q", w, hint)
				}
			}
			for _, w := range tt.wantNot {
				if strings.Contains(hint, w) {
					t.Errorf("hint should not contain %q, got %q", w, hint)
				}
			}
		})
	}
}

func TestForValidation_OtherErrors(t *testing.T) {
	t.Parallel()

	if hint := ForValidation(errors.New("boom")); hint != "" {
		t.Errorf("expected empty hint, got %q", hint)
	}
	if hint := ForValidation(nil); hint != "" {
		t.Errorf("expected empty hint for nil, got %q", hint)
	}
}

func TestQuoted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{`"cc-by-4.0" is not an SPDX license identifier`, "cc-by-4.0"},
		{"no quotes", "no quotes"},
		{`"unterminated`, `"unterminated`},
	}
	for _, tt := range tests {
		if got := quoted(tt.in); got != tt.want {
			t.Errorf("quoted(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// TestForMissingRef - Build environment hints
// ---------------------------------------------------------------------------

func TestForMissingRef(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vars     map[string]string
		wantHint bool
	}{
		{"local build", nil, true},
		{"ref set", map[string]string{"GITHUB_REF_NAME": "main"}, false},
		{"in GitHub Actions", map[string]string{"GITHUB_ACTIONS": "true"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			lookup := func(key string) (string, bool) {
				v, ok := tt.vars[key]
				return v, ok
			}
			hint := ForMissingRef(lookup)
			if tt.wantHint && !strings.Contains(hint, "--env-file") {
				t.Errorf("expected --env-file suggestion, got %q", hint)
			}
			if !tt.wantHint && hint != "" {
				t.Errorf("expected no hint, got %q", hint)
			}
		})
	}
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	if got := format(""); got != "" {
		t.Errorf("format(\"\") = %q", got)
	}
	if got := format("x"); got != "\n  hint: x" {
		t.Errorf("format(\"x\") = %q", got)
	}
}
