package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Overrides loads assets from a project directory.
type Overrides struct {
	dir string
}

// NewOverrides checks that dir is a readable directory.
// Returns ErrInvalidAssetDir otherwise.
func NewOverrides(dir string) (*Overrides, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidAssetDir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetDir, err)
	}
	root, err := os.OpenRoot(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetDir, err)
	}
	_ = root.Close()
	return &Overrides{dir: abs}, nil
}

// Dir returns the absolute override directory.
func (o *Overrides) Dir() string {
	return o.dir
}

// LoadStyle loads {dir}/styles/{name}.css.
func (o *Overrides) LoadStyle(name string) (string, error) {
	return o.read(styles, name)
}

// LoadTemplate loads {dir}/templates/{name}.html.
func (o *Overrides) LoadTemplate(name string) (string, error) {
	return o.read(templates, name)
}

func (o *Overrides) read(k kind, name string) (string, error) {
	p, err := k.path(name)
	if err != nil {
		return "", err
	}

	root, err := os.OpenRoot(o.dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer func() { _ = root.Close() }()

	content, err := root.ReadFile(filepath.FromSlash(p))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %q", k.notFound, name)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	return string(content), nil
}

var _ Loader = (*Overrides)(nil)
