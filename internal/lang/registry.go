package lang

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// Registry resolves a file to its Language by extension, or by name when the
// caller already knows which grammar it wants (spec §4.2).
type Registry struct {
	byName map[Name]*Language
	byExt  map[string]Name
}

// NewRegistry builds the registry with every supported language and confirms
// each one's parser initializes; a grammar that fails to load here would
// otherwise fail silently on the first real parse. overrides replaces a
// language's default Formatter with a ShellFormatter built from the given
// command and args, keyed by language name (e.g. "rust", "toml"); a language
// absent from overrides keeps its default.
func NewRegistry(overrides map[string]FormatterOverride) (*Registry, error) {
	languages := []*Language{
		goLanguage(),
		rustLanguage(),
		pythonLanguage(),
		jsonLanguage(),
		tomlLanguage(),
		javascriptLanguage(),
		typescriptLanguage(),
	}

	r := &Registry{
		byName: make(map[Name]*Language, len(languages)),
		byExt:  make(map[string]Name),
	}

	for _, l := range languages {
		if override, ok := overrides[string(l.Name)]; ok {
			l.Formatter = ShellFormatter{Command: override.Command, Args: override.Args}
		}

		if _, err := l.Parse(context.Background(), []byte(""), nil); err != nil {
			return nil, fmt.Errorf("initializing %s grammar: %w", l.Name, err)
		}
		r.byName[l.Name] = l
		for _, ext := range l.Extensions {
			r.byExt[ext] = l.Name
		}
	}

	return r, nil
}

// Get returns the language registered under name.
func (r *Registry) Get(name Name) (*Language, error) {
	l, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("unregistered language %q", name)
	}
	return l, nil
}

// Detect infers a language from path's extension.
func (r *Registry) Detect(path string) (*Language, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	name, ok := r.byExt[ext]
	if !ok {
		return nil, false
	}
	l, _ := r.byName[name]
	return l, l != nil
}

// GetWithHint resolves a language by an explicit hint name first, falling
// back to extension-based detection on path when hint is empty.
func (r *Registry) GetWithHint(path, hint string) (*Language, error) {
	if hint != "" {
		return r.Get(Name(hint))
	}
	l, ok := r.Detect(path)
	if !ok {
		return nil, fmt.Errorf("cannot detect language for %q; pass an explicit language hint", path)
	}
	return l, nil
}

// Names returns every registered language name, for documentation listings.
func (r *Registry) Names() []Name {
	names := make([]Name, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}
