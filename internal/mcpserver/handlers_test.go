package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWireFieldNamesMatchSpec guards against silently decoding a
// spec-compliant client's call to a zero value: open_files takes
// "file_paths", preview_edit takes "file_path", per spec.md §6.2/§6.3.
func TestWireFieldNamesMatchSpec(t *testing.T) {
	var openFiles OpenFilesParams
	require.NoError(t, json.Unmarshal([]byte(`{"file_paths":["a.go","b.go"]}`), &openFiles))
	assert.Equal(t, []string{"a.go", "b.go"}, openFiles.Paths)

	var preview PreviewEditParams
	require.NoError(t, json.Unmarshal([]byte(`{"file_path":"a.go","selector":{"operation":"insert_before","anchor":"x"},"content":"y"}`), &preview))
	assert.Equal(t, "a.go", preview.Path)
}

func newTestTools(t *testing.T) *Tools {
	t.Helper()
	tools, err := New("", 10, nil, zerolog.Nop())
	require.NoError(t, err)
	return tools
}

func writeTempGoFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSetWorkingDirectory(t *testing.T) {
	tools := newTestTools(t)
	dir := t.TempDir()

	result, _, err := tools.handleSetWorkingDirectory(context.Background(), "s1", SetWorkingDirectoryParams{Path: dir})
	require.NoError(t, err)
	require.False(t, result.IsError)

	resolved, err := tools.resolvePath("s1", "main.go")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "main.go"), resolved)
}

func TestSetWorkingDirectoryRejectsMissingPath(t *testing.T) {
	tools := newTestTools(t)
	result, _, err := tools.handleSetWorkingDirectory(context.Background(), "s1", SetWorkingDirectoryParams{Path: "/no/such/directory/at/all"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestOpenFilesReadsAndCaches(t *testing.T) {
	tools := newTestTools(t)
	path := writeTempGoFile(t, "package main\n\nfunc main() {}\n")

	result, files, err := tools.handleOpenFiles(context.Background(), "s1", OpenFilesParams{Paths: []string{path}})
	require.NoError(t, err)
	require.False(t, result.IsError)

	opened := files.([]openedFile)
	require.Len(t, opened, 1)
	assert.Equal(t, "go", opened[0].Language)
	assert.Contains(t, opened[0].ASTDump, "source_file")
	assert.Contains(t, opened[0].Documentation, "function_declaration")
}

func TestOpenFilesDiffSinceReturnsDiffOnCacheHit(t *testing.T) {
	tools := newTestTools(t)
	path := writeTempGoFile(t, "package main\n\nfunc main() {}\n")

	first, firstFiles, err := tools.handleOpenFiles(context.Background(), "s1", OpenFilesParams{Paths: []string{path}})
	require.NoError(t, err)
	require.False(t, first.IsError)
	version := firstFiles.([]openedFile)[0].Version

	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {\n\tprintln(\"hi\")\n}\n"), 0o644))

	second, secondFiles, err := tools.handleOpenFiles(context.Background(), "s1", OpenFilesParams{
		Paths:     []string{path},
		DiffSince: version,
	})
	require.NoError(t, err)
	require.False(t, second.IsError)

	opened := secondFiles.([]openedFile)[0]
	assert.Empty(t, opened.Content)
	assert.Contains(t, opened.Diff, "println")
}

func TestOpenFilesDiffSinceRejectsMultiplePaths(t *testing.T) {
	tools := newTestTools(t)
	path := writeTempGoFile(t, "package main\n\nfunc main() {}\n")

	result, _, err := tools.handleOpenFiles(context.Background(), "s1", OpenFilesParams{
		Paths:     []string{path, path},
		DiffSince: "abc",
	})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestPreviewThenPersistEdit(t *testing.T) {
	tools := newTestTools(t)
	path := writeTempGoFile(t, "package main\n\nfunc main() {\n}\n")

	preview, _, err := tools.handlePreviewEdit(context.Background(), "s1", PreviewEditParams{
		Path:     path,
		Selector: SelectorParams{Operation: "insert_before", Anchor: "}"},
		Content:  "\tx := 1\n\t_ = x\n",
	})
	require.NoError(t, err)
	require.False(t, preview.IsError)

	persisted, _, err := tools.handlePersistEdit(context.Background(), "s1", PersistEditParams{})
	require.NoError(t, err)
	require.False(t, persisted.IsError)

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "x := 1")
}

func TestPersistEditWithoutPreviewIsRejected(t *testing.T) {
	tools := newTestTools(t)
	result, _, err := tools.handlePersistEdit(context.Background(), "s1", PersistEditParams{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}
