// Package validate runs structural queries over a parsed tree to catch
// edits that are grammatically valid but semantically nonsensical — a
// function nested inside a struct's field list, an impl block nested
// inside a function body — beyond what the grammar alone rejects.
// Grounded on validation/context_validator.rs.
package validate

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Violation is one structural rule match.
type Violation struct {
	Type     string
	NodeType string
	Line     int // 1-indexed
	Column   int // 1-indexed
	Message  string
}

// Run compiles query against language and reports every match whose
// capture name starts with "invalid.". An empty query is a no-op: the
// language simply has no structural rules beyond its grammar, per
// SPEC_FULL.md's resolved open question on a per-language opt-in design.
func Run(query string, messages map[string]string, language *sitter.Language, tree *sitter.Tree, source []byte) ([]Violation, error) {
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}

	q, err := sitter.NewQuery([]byte(query), language)
	if err != nil {
		return nil, fmt.Errorf("compiling validation query: %w", err)
	}

	qc := sitter.NewQueryCursor()
	qc.Exec(q, tree.RootNode())

	var violations []Violation
	for {
		m, ok := qc.NextMatch()
		if !ok {
			break
		}
		m = qc.FilterPredicates(m, source)
		for _, c := range m.Captures {
			name := q.CaptureNameForId(c.Index)
			if !strings.HasPrefix(name, "invalid.") {
				continue
			}
			violations = append(violations, Violation{
				Type:     name,
				NodeType: c.Node.Type(),
				Line:     int(c.Node.StartPoint().Row) + 1,
				Column:   int(c.Node.StartPoint().Column) + 1,
				Message:  messages[name],
			})
		}
	}

	return violations, nil
}

// FormatViolations renders violations the way a syntax-error report is
// rendered, with ±3 lines of source context per match (spec §4.7), for
// inclusion in a rejected-edit message.
func FormatViolations(violations []Violation, source string) string {
	const contextRadius = 3
	lines := strings.Split(source, "\n")

	var b strings.Builder
	b.WriteString("===STRUCTURAL VALIDATION ERRORS===\n")
	for _, v := range violations {
		msg := v.Message
		if msg == "" {
			msg = v.Type
		}
		fmt.Fprintf(&b, "%d:%d %s (%s)\n", v.Line, v.Column, msg, v.NodeType)

		errLine := v.Line - 1 // to 0-indexed
		for l := errLine - contextRadius; l <= errLine+contextRadius; l++ {
			if l < 0 || l >= len(lines) {
				continue
			}
			marker := "  "
			if l == errLine {
				marker = "->"
			}
			fmt.Fprintf(&b, "%4d %s⎸%s\n", l+1, marker, lines[l])
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
