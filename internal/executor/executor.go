// Package executor applies a planned edit: it splices new content into a
// source file, reparses, validates the result both grammatically and
// structurally, and runs the language's formatter — falling back cleanly
// at each stage the way editor.rs and editor/edit.rs do.
package executor

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jbr/semantic-edit-mcp-sub000/internal/diffutil"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/indent"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/lang"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/planner"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/selector"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/validate"
)

// Result is the outcome of one applied edit.
type Result struct {
	// Message is always set: either a rejection explanation or a success
	// confirmation.
	Message string
	// Output holds the new file content when Applied is true.
	Output  string
	Applied bool
}

// Execute runs the full splice/reparse/validate/format pipeline for a
// single planned position, trying each content variant sel yields (§4.6's
// variant-fallback) in order and keeping the first that validates. When
// none validates, the first attempted variant's message is returned so
// failures are stable across retries.
func Execute(ctx context.Context, language *lang.Language, source string, pos planner.Position, newContent string, sel selector.Selector) (Result, error) {
	tree, err := language.Parse(ctx, []byte(source), nil)
	if err != nil {
		return Result{}, err
	}

	if msg, ok := validateContent(language, tree, source); !ok {
		return Result{Message: fmt.Sprintf(
			"Syntax error found prior to edit, not attempting.\n"+
				"Suggestion: pause and show your human collaborator this context:\n\n%s", msg,
		)}, nil
	}

	operationName := sel.Operation.Name()
	var firstAttempt *Result
	for _, variant := range contentVariants(pos, sel, newContent) {
		shaped := shapeIndentation(source, pos, variant)
		spliced := splice(source, pos, shaped)

		newTree, err := language.Parse(ctx, []byte(spliced), nil)
		if err != nil {
			result := Result{Message: "Unable to parse result so no changes were made. The file is still in a good state. Try a different edit."}
			if firstAttempt == nil {
				firstAttempt = &result
			}
			continue
		}

		if msg, ok := validateContent(language, newTree, spliced); !ok {
			diff := diffutil.Diff(operationName+" (rejected)", source, spliced, variant)
			result := Result{Message: fmt.Sprintf(
				"This edit would result in invalid syntax, but the file is still in a valid state. "+
					"No change was performed.\nSuggestion: try a different change.\n\n%s\n\n%s", msg, diff,
			)}
			if firstAttempt == nil {
				firstAttempt = &result
			}
			continue
		}

		formatted, err := language.Formatter.Format(ctx, []byte(spliced))
		if err != nil {
			result := Result{Message: fmt.Sprintf(
				"The formatter has encountered the following error making that change, so the file "+
					"has not been modified. The tool has prevented what it believes to be an unsafe edit. "+
					"Please try a different edit.\n\n%s", err,
			)}
			if firstAttempt == nil {
				firstAttempt = &result
			}
			continue
		}

		return Result{
			Message: fmt.Sprintf("Applied %s operation", operationName),
			Output:  string(formatted),
			Applied: true,
		}, nil
	}

	return *firstAttempt, nil
}

// contentVariants returns the ordered candidate contents to splice for an
// insertion, per §4.6's variant-fallback: the content as given, then (when
// the caller redundantly repeated the anchor text inside the content
// itself) the content trimmed down to just the side of the anchor that
// belongs at this position — e.g. pasting the whole following statement,
// anchor included, when only insert_after was needed.
func contentVariants(pos planner.Position, sel selector.Selector, content string) []string {
	variants := []string{content}
	if !pos.IsInsert() || sel.Anchor == "" {
		return variants
	}

	switch sel.Operation {
	case selector.InsertAfter, selector.InsertAfterNode:
		if idx := strings.Index(content, sel.Anchor); idx >= 0 {
			variants = append(variants, content[idx+len(sel.Anchor):])
		}
	case selector.InsertBefore:
		if idx := strings.LastIndex(content, sel.Anchor); idx >= 0 {
			variants = append(variants, content[:idx])
		}
	}

	return variants
}

func splice(source string, pos planner.Position, content string) string {
	end := pos.StartByte
	if pos.EndByte != nil {
		end = *pos.EndByte
	}
	return source[:pos.StartByte] + content + source[end:]
}

// shapeIndentation reindents newContent to match the indentation level of
// the line the edit lands on, preserving newContent's own relative
// structure (nested blocks stay nested).
func shapeIndentation(source string, pos planner.Position, newContent string) string {
	style, ok := indent.Determine(source)
	if !ok {
		return newContent
	}

	lineStart := strings.LastIndexByte(source[:pos.StartByte], '\n') + 1
	lineEnd := pos.StartByte
	if idx := strings.IndexByte(source[pos.StartByte:], '\n'); idx >= 0 {
		lineEnd = pos.StartByte + idx
	}
	targetLevel := style.UnitCount(source[lineStart:lineEnd])

	return indent.Reindent(style, targetLevel, newContent)
}

// validateContent runs grammar-error and structural checks together,
// returning a formatted error report and false when either finds a
// problem.
func validateContent(language *lang.Language, tree *sitter.Tree, source string) (string, bool) {
	errLines := language.CollectErrors(tree, []byte(source))
	if len(errLines) > 0 {
		return formatSyntaxErrors(errLines, source), false
	}

	if language.ValidationQuery == "" {
		return "", true
	}

	violations, err := validate.Run(language.ValidationQuery, language.ValidationMessages, language.Sitter, tree, []byte(source))
	if err != nil || len(violations) == 0 {
		return "", true
	}
	return validate.FormatViolations(violations, source), false
}

// formatSyntaxErrors renders a "===SYNTAX ERRORS===" report with ±3 lines
// of context around each error line, arrow-marking the offending lines,
// mirroring editor.rs's Editor::validate.
func formatSyntaxErrors(errLines []int, source string) string {
	const contextRadius = 3

	hasError := make(map[int]bool, len(errLines))
	wantContext := make(map[int]bool)
	for _, line := range errLines {
		hasError[line] = true
		for l := line - contextRadius; l <= line+contextRadius; l++ {
			if l >= 0 {
				wantContext[l] = true
			}
		}
	}

	var b strings.Builder
	b.WriteString("===SYNTAX ERRORS===\n")
	for i, line := range strings.Split(source, "\n") {
		if !wantContext[i] {
			continue
		}
		marker := "  "
		if hasError[i] {
			marker = "->"
		}
		fmt.Fprintf(&b, "%4d %s⎸%s\n", i+1, marker, line)
	}
	return strings.TrimRight(b.String(), "\n")
}
