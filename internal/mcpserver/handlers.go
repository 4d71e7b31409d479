package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jbr/semantic-edit-mcp-sub000/internal/cache"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/diffutil"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/executor"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/lang"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/planner"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/stage"
)

// resolvePath implements the precedence decided for the ambiguity spec.md
// leaves open: an absolute path always wins; otherwise a relative path
// resolves against the session's working directory if one was set, and
// against the process's current directory otherwise.
func (t *Tools) resolvePath(sessionID, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	data, err := t.sessions.GetOrCreate(sessionID)
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}

	base := data.WorkingDirectory
	if base == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving process working directory: %w", err)
		}
		base = cwd
	}

	return filepath.Clean(filepath.Join(base, path)), nil
}

func (t *Tools) handleSetWorkingDirectory(_ context.Context, sessionID string, args SetWorkingDirectoryParams) (*mcpsdk.CallToolResult, any, error) {
	abs, err := filepath.Abs(args.Path)
	if err != nil {
		return errorResult(fmt.Sprintf("resolving path: %s", err)), nil, nil
	}

	info, err := os.Stat(abs)
	if err != nil {
		return errorResult(fmt.Sprintf("%s does not exist or is not accessible: %s", abs, err)), nil, nil
	}
	if !info.IsDir() {
		return errorResult(fmt.Sprintf("%s is not a directory", abs)), nil, nil
	}

	if err := t.sessions.Update(sessionID, func(d *SessionData) { d.WorkingDirectory = abs }); err != nil {
		return nil, nil, err
	}

	t.stageFor(sessionID).Clear()

	return textResult(fmt.Sprintf("Working directory set to %s", abs)), nil, nil
}

type openedFile struct {
	Path          string `json:"path"`
	Language      string `json:"language,omitempty"`
	Version       string `json:"version"`
	Content       string `json:"content,omitempty"`
	Diff          string `json:"diff,omitempty"`
	ASTDump       string `json:"ast_dump,omitempty"`
	Documentation string `json:"documentation,omitempty"`
}

func (t *Tools) handleOpenFiles(ctx context.Context, sessionID string, args OpenFilesParams) (*mcpsdk.CallToolResult, any, error) {
	if args.DiffSince != "" && len(args.Paths) > 1 {
		return errorResult("diff_since can only be used with exactly one path"), nil, nil
	}

	var results []openedFile
	var errs []string

	for _, p := range args.Paths {
		resolved, err := t.resolvePath(sessionID, p)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %s", p, err))
			continue
		}

		contentBytes, err := os.ReadFile(resolved)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %s", resolved, err))
			continue
		}
		content := string(contentBytes)

		t.cache.Put(resolved, content)
		versionHash := cache.VersionHash(content)

		var lng *lang.Language
		if l, err2 := t.registry.GetWithHint(resolved, args.Language); err2 == nil {
			lng = l
		}

		of := openedFile{Path: resolved, Version: versionHash}
		if lng != nil {
			of.Language = string(lng.Name)
			of.Documentation = lng.Documentation()
			if tree, perr := lng.Parse(ctx, contentBytes, nil); perr == nil {
				of.ASTDump = lng.Dump(tree, contentBytes)
			}
		}

		if args.DiffSince != "" {
			if previous, ok := t.cache.Get(cache.Key(resolved, args.DiffSince)); ok {
				of.Diff = diffutil.Diff("open_files diff_since="+args.DiffSince, previous, content, "")
			} else {
				of.Content = content
			}
		} else {
			of.Content = content
		}

		results = append(results, of)
	}

	text := formatOpenedFiles(results, errs)
	return textResult(text), results, nil
}

func formatOpenedFiles(files []openedFile, errs []string) string {
	out := ""
	for _, f := range files {
		out += fmt.Sprintf("=== %s (%s) ===\n", f.Path, f.Version)
		if f.Diff != "" {
			out += f.Diff + "\n\n"
			continue
		}
		out += f.Content + "\n"
		if f.Documentation != "" {
			out += "\n" + f.Documentation
		}
		if f.ASTDump != "" {
			out += "\n===AST===\n" + f.ASTDump
		}
		out += "\n"
	}
	for _, e := range errs {
		out += fmt.Sprintf("error opening %s\n", e)
	}
	return out
}

func (t *Tools) handlePreviewEdit(ctx context.Context, sessionID string, args PreviewEditParams) (*mcpsdk.CallToolResult, any, error) {
	resolved, err := t.resolvePath(sessionID, args.Path)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	sourceBytes, err := os.ReadFile(resolved)
	if err != nil {
		return errorResult(fmt.Sprintf("reading %s: %s", resolved, err)), nil, nil
	}
	source := string(sourceBytes)

	language, err := t.registry.GetWithHint(resolved, args.Language)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	sel := args.Selector.toSelector()
	tree, err := language.Parse(ctx, sourceBytes, nil)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	pos, err := planner.Plan(sel, source, tree)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	result, err := executor.Execute(ctx, language, source, pos, args.Content, sel)
	if err != nil {
		return nil, nil, err
	}
	if !result.Applied {
		return textResult(result.Message), nil, nil
	}

	t.stageFor(sessionID).Stage(stage.Operation{
		Selector:     sel,
		Content:      args.Content,
		FilePath:     resolved,
		LanguageName: string(language.Name),
		Position:     pos,
	})

	preview := diffutil.Diff(sel.Operation.Name(), source, result.Output, args.Content)
	return textResult(preview), nil, nil
}

func (t *Tools) handleRetargetEdit(ctx context.Context, sessionID string, args RetargetEditParams) (*mcpsdk.CallToolResult, any, error) {
	store := t.stageFor(sessionID)
	staged, ok := store.Peek()
	if !ok {
		return errorResult("no edit is currently staged in this session; call preview_edit first"), nil, nil
	}

	sourceBytes, err := os.ReadFile(staged.FilePath)
	if err != nil {
		return errorResult(fmt.Sprintf("reading %s: %s", staged.FilePath, err)), nil, nil
	}
	source := string(sourceBytes)

	language, err := t.registry.Get(lang.Name(staged.LanguageName))
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	sel := args.Selector.toSelector()
	tree, err := language.Parse(ctx, sourceBytes, nil)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	pos, err := planner.Plan(sel, source, tree)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	result, err := executor.Execute(ctx, language, source, pos, staged.Content, sel)
	if err != nil {
		return nil, nil, err
	}
	if !result.Applied {
		return textResult(result.Message), nil, nil
	}

	store.Stage(stage.Operation{
		Selector:     sel,
		Content:      staged.Content,
		FilePath:     staged.FilePath,
		LanguageName: staged.LanguageName,
		Position:     pos,
	})

	preview := diffutil.Diff(sel.Operation.Name(), source, result.Output, staged.Content)
	return textResult(preview), nil, nil
}

func (t *Tools) handlePersistEdit(ctx context.Context, sessionID string, _ PersistEditParams) (*mcpsdk.CallToolResult, any, error) {
	store := t.stageFor(sessionID)
	staged, ok := store.Take()
	if !ok {
		return errorResult("no edit is currently staged in this session; call preview_edit first"), nil, nil
	}

	sourceBytes, err := os.ReadFile(staged.FilePath)
	if err != nil {
		return errorResult(fmt.Sprintf("reading %s: %s", staged.FilePath, err)), nil, nil
	}
	source := string(sourceBytes)

	language, err := t.registry.Get(lang.Name(staged.LanguageName))
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	// The staged position was captured against an earlier read of the
	// file. It is reused as long as its byte offsets still fall inside the
	// current file; only when they do not is the edit replanned from the
	// selector against a fresh parse. A change to the file that leaves the
	// offsets in bounds is not detected, and the edit is spliced at the
	// staged offsets.
	tree, err := language.Parse(ctx, sourceBytes, nil)
	if err != nil {
		return errorResult(err.Error()), nil, nil
	}

	pos := staged.Position
	if !positionStillValid(pos, len(source)) {
		pos, err = planner.Plan(staged.Selector, source, tree)
		if err != nil {
			return errorResult(fmt.Sprintf("staged edit is stale and could not be replanned: %s", err)), nil, nil
		}
	}

	result, err := executor.Execute(ctx, language, source, pos, staged.Content, staged.Selector)
	if err != nil {
		return nil, nil, err
	}
	if !result.Applied {
		return textResult(result.Message), nil, nil
	}

	if err := os.WriteFile(staged.FilePath, []byte(result.Output), 0o644); err != nil {
		return nil, nil, fmt.Errorf("writing %s: %w", staged.FilePath, err)
	}

	t.cache.Put(staged.FilePath, result.Output)

	message := diffutil.CommitMessage(staged.Selector.Operation.Name(), result.Message, source, result.Output, staged.Content)
	return textResult(message), nil, nil
}

func positionStillValid(pos planner.Position, sourceLen int) bool {
	if pos.StartByte < 0 || pos.StartByte > sourceLen {
		return false
	}
	if pos.EndByte != nil && (*pos.EndByte < pos.StartByte || *pos.EndByte > sourceLen) {
		return false
	}
	return true
}
