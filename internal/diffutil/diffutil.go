// Package diffutil renders unified diffs for staged edits, cleaned up for
// display to an LLM collaborator rather than a terminal, per editor.rs's
// diff()/changed_lines().
package diffutil

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff returns a unified-style diff between before and after, stripped of
// file and hunk headers, prefixed with a "STAGED: <operation>" banner and
// an "===DIFF===" marker, with an efficiency tip when editContent (the
// edit's own replacement/insertion payload, not the file) is long enough
// for the changed fraction to be meaningful. editContent is empty for
// calls with no associated edit payload (e.g. a plain file-to-file diff),
// which simply skips the tip.
func Diff(operation, before, after, editContent string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "STAGED: %s\n\n", operation)
	b.WriteString(cleanedDiff(before, after, editContent))
	return b.String()
}

// CommitMessage formats the result message editor.rs's commit() produces:
// the operation name, the edit message, and the diff, run together.
func CommitMessage(operation, message, before, after, editContent string) string {
	return fmt.Sprintf("%s operation result:\n%s\n\n%s", operation, message, cleanedDiff(before, after, editContent))
}

func cleanedDiff(before, after, editContent string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(before, after, false)
	diffs = dmp.DiffCleanupSemantic(diffs)
	unified := toUnifiedLines(diffs)

	var b strings.Builder

	// Mirrors editor.rs's diff(): content_line_count is self.content's line
	// count, the edit's own payload, not the file being edited.
	contentLineCount := strings.Count(editContent, "\n") + 1
	if contentLineCount > 10 {
		changed := changedLineCount(diffs)
		changedFraction := (changed * 100) / contentLineCount
		if changedFraction < 30 {
			b.WriteString("💡 TIP: for focused changes like this, you might try targeted insert/replace operations for easier review and iteration\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("===DIFF===\nNote: the editor applies a consistent formatting style to the entire file, including your edit\n")
	b.WriteString(strings.Join(unified, "\n"))

	return strings.TrimRight(b.String(), "\n")
}

// toUnifiedLines renders diffmatchpatch's diff ops as +/-/space-prefixed
// lines, skipping the file and hunk headers a full unified-diff formatter
// would otherwise emit — only the changed lines themselves are useful to an
// LLM collaborator.
func toUnifiedLines(diffs []diffmatchpatch.Diff) []string {
	var out []string
	for _, d := range diffs {
		prefix := "  "
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			prefix = "+ "
		case diffmatchpatch.DiffDelete:
			prefix = "- "
		}
		text := strings.TrimSuffix(d.Text, "\n")
		if text == "" {
			continue
		}
		for _, line := range strings.Split(text, "\n") {
			out = append(out, prefix+line)
		}
	}
	return out
}

// changedLineCount sums, over every insert and delete operation, the
// number of lines that operation's text spans. Lines are not deduplicated:
// a line touched by both a delete and an insert is counted once for each.
func changedLineCount(diffs []diffmatchpatch.Diff) int {
	lines := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			continue
		}
		lines += strings.Count(d.Text, "\n") + 1
	}
	return lines
}
