package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
)

// Names of the built-in assets.
const (
	StatusTemplateName = "status"
	StatusStyleName    = "status"
)

//go:embed styles templates
var builtin embed.FS

// Loader loads CSS styles and HTML templates by name, without extension.
type Loader interface {
	LoadStyle(name string) (string, error)
	LoadTemplate(name string) (string, error)
}

// kind is one family of assets stored under a common directory.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styles    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templates = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// path returns the slash-separated path of name relative to an asset root.
func (k kind) path(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, `/\.`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return k.dir + "/" + name + k.ext, nil
}

// Builtin loads the assets embedded in the binary.
type Builtin struct{}

// LoadStyle loads an embedded style.
func (Builtin) LoadStyle(name string) (string, error) { return readBuiltin(styles, name) }

// LoadTemplate loads an embedded template.
func (Builtin) LoadTemplate(name string) (string, error) { return readBuiltin(templates, name) }

func readBuiltin(k kind, name string) (string, error) {
	p, err := k.path(name)
	if err != nil {
		return "", err
	}
	content, err := fs.ReadFile(builtin, p)
	if err != nil {
		return "", fmt.Errorf("%w: %q", k.notFound, name)
	}
	return string(content), nil
}

// LoadStyle loads a built-in CSS style by name.
func LoadStyle(name string) (string, error) {
	return Builtin{}.LoadStyle(name)
}

// LoadTemplate loads a built-in HTML template by name.
func LoadTemplate(name string) (string, error) {
	return Builtin{}.LoadTemplate(name)
}

var _ Loader = Builtin{}
