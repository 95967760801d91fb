package assets

import "errors"

// Resolver loads from an optional override directory, then from the
// built-in assets. Only a missing override falls back; invalid names and
// read errors are returned as is.
type Resolver struct {
	overrides *Overrides // nil when no directory is configured
}

// NewResolver creates a Resolver. An empty dir uses built-in assets only.
func NewResolver(dir string) (*Resolver, error) {
	r := &Resolver{}
	if dir != "" {
		o, err := NewOverrides(dir)
		if err != nil {
			return nil, err
		}
		r.overrides = o
	}
	return r, nil
}

// LoadStyle loads a CSS style.
func (r *Resolver) LoadStyle(name string) (string, error) {
	return r.load(styles, name, Loader.LoadStyle)
}

// LoadTemplate loads an HTML template.
func (r *Resolver) LoadTemplate(name string) (string, error) {
	return r.load(templates, name, Loader.LoadTemplate)
}

func (r *Resolver) load(k kind, name string, fn func(Loader, string) (string, error)) (string, error) {
	if r.overrides != nil {
		content, err := fn(r.overrides, name)
		if !errors.Is(err, k.notFound) {
			return content, err
		}
	}
	return fn(Builtin{}, name)
}

// HasOverrides reports whether an override directory is configured.
func (r *Resolver) HasOverrides() bool {
	return r.overrides != nil
}

var _ Loader = (*Resolver)(nil)
