package lang

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistryRegistersCoreLanguages(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	for _, name := range []Name{Go, Rust, Python, JSON, TOML} {
		l, err := r.Get(name)
		require.NoError(t, err)
		assert.Equal(t, name, l.Name)
	}
}

func TestDetectByExtension(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	l, ok := r.Detect("/tmp/main.go")
	require.True(t, ok)
	assert.Equal(t, Go, l.Name)

	_, ok = r.Detect("/tmp/main.unknownext")
	assert.False(t, ok)
}

func TestGetWithHintPrefersExplicitHint(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	l, err := r.GetWithHint("/tmp/whatever.go", "python")
	require.NoError(t, err)
	assert.Equal(t, Python, l.Name)
}

func TestGetWithHintFallsBackToDetection(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	l, err := r.GetWithHint("/tmp/main.rs", "")
	require.NoError(t, err)
	assert.Equal(t, Rust, l.Name)
}

func TestGetWithHintErrorsWithoutDetectionOrHint(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	_, err = r.GetWithHint("/tmp/whatever.xyz", "")
	assert.Error(t, err)
}

func TestGetUnregisteredLanguage(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	_, err = r.Get(Name("cobol"))
	assert.Error(t, err)
}

func TestCollectErrorsOnValidSource(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	goLang, err := r.Get(Go)
	require.NoError(t, err)

	src := []byte("package main\n\nfunc main() {}\n")
	tree, err := goLang.Parse(context.Background(), src, nil)
	require.NoError(t, err)

	assert.Empty(t, goLang.CollectErrors(tree, src))
}

func TestCollectErrorsOnBrokenSource(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	goLang, err := r.Get(Go)
	require.NoError(t, err)

	src := []byte("package main\n\nfunc main( {\n")
	tree, err := goLang.Parse(context.Background(), src, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, goLang.CollectErrors(tree, src))
}

func TestNewRegistryAppliesFormatterOverride(t *testing.T) {
	r, err := NewRegistry(map[string]FormatterOverride{
		"rust": {Command: "rustfmt-nightly", Args: []string{"--edition", "2021"}},
	})
	require.NoError(t, err)

	rustLang, err := r.Get(Rust)
	require.NoError(t, err)

	shell, ok := rustLang.Formatter.(ShellFormatter)
	require.True(t, ok)
	assert.Equal(t, "rustfmt-nightly", shell.Command)
	assert.Equal(t, []string{"--edition", "2021"}, shell.Args)

	// A language absent from overrides keeps its default formatter.
	goLang, err := r.Get(Go)
	require.NoError(t, err)
	_, ok = goLang.Formatter.(GoFormatter)
	assert.True(t, ok)
}

func TestDocumentationListsNamedNodeKinds(t *testing.T) {
	r, err := NewRegistry(nil)
	require.NoError(t, err)

	goLang, err := r.Get(Go)
	require.NoError(t, err)

	doc := goLang.Documentation()
	assert.Contains(t, doc, "function_declaration")
}
