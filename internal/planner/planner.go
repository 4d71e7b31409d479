// Package planner turns a selector into concrete candidate byte positions
// in a source file, disambiguating when an anchor matches more than once,
// per spec §4.5.
package planner

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jbr/semantic-edit-mcp-sub000/internal/anchor"
	"github.com/jbr/semantic-edit-mcp-sub000/internal/selector"
)

// Position is a planned edit location: an insertion point (EndByte nil) or
// a replacement span.
type Position struct {
	StartByte int
	EndByte   *int
}

// IsInsert reports whether this position describes an insertion rather
// than a replacement.
func (p Position) IsInsert() bool { return p.EndByte == nil }

type candidate struct {
	pos         Position
	description string
}

// Plan resolves selector against source (and its parsed tree, needed for
// structural operations) into exactly one Position. When the selector's
// anchor is ambiguous, the returned error lists every candidate, mirroring
// editor/edit_iterator.rs's format_multiple_matches: an insertion candidate
// is shown with ±50 bytes of surrounding context, while a replacement
// candidate shows only the text it would replace (cut to 100 bytes), with
// no surrounding context.
func Plan(sel selector.Selector, source string, tree *sitter.Tree) (Position, error) {
	if violations := sel.Validate(); len(violations) > 0 {
		return Position{}, fmt.Errorf("invalid selector: %s", strings.Join(violations, "; "))
	}

	candidates, err := findCandidates(sel, source, tree)
	if err != nil {
		return Position{}, err
	}

	switch len(candidates) {
	case 0:
		return Position{}, fmt.Errorf("no matches found for anchor %q", sel.Anchor)
	case 1:
		return candidates[0].pos, nil
	default:
		return Position{}, fmt.Errorf("%s", formatMultipleMatches(candidates, source))
	}
}

func findCandidates(sel selector.Selector, source string, tree *sitter.Tree) ([]candidate, error) {
	switch sel.Operation {
	case selector.InsertBefore, selector.InsertAfter:
		return findInsertCandidates(sel, source)
	case selector.InsertAfterNode:
		return findInsertAfterNodeCandidates(sel, source, tree)
	case selector.ReplaceExact:
		return findExactCandidates(sel, source)
	case selector.ReplaceRange:
		return findRangeCandidates(sel, source)
	case selector.ReplaceNode:
		return findNodeCandidates(sel, source, tree)
	default:
		return nil, fmt.Errorf("unrecognized operation %q", sel.Operation)
	}
}

func findInsertCandidates(sel selector.Selector, source string) ([]candidate, error) {
	ranges, err := anchor.Find(source, sel.Anchor)
	if err != nil {
		return nil, err
	}

	out := make([]candidate, 0, len(ranges))
	for _, r := range ranges {
		offset := r.Start
		if sel.Operation == selector.InsertAfter {
			offset = r.End
		}
		out = append(out, candidate{
			pos:         Position{StartByte: offset},
			description: fmt.Sprintf("%s anchor %q", sel.Operation.Name(), sel.Anchor),
		})
	}
	return out, nil
}

func findInsertAfterNodeCandidates(sel selector.Selector, source string, tree *sitter.Tree) ([]candidate, error) {
	ranges, err := anchor.Find(source, sel.Anchor)
	if err != nil {
		return nil, err
	}

	out := make([]candidate, 0, len(ranges))
	for _, r := range ranges {
		node := enclosingNode(tree, r.Start, r.End)
		if node == nil {
			continue
		}
		end := int(node.EndByte())
		out = append(out, candidate{
			pos:         Position{StartByte: end},
			description: fmt.Sprintf("insert after node enclosing anchor %q", sel.Anchor),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("anchor %q matched, but no enclosing node was found", sel.Anchor)
	}
	return out, nil
}

func findExactCandidates(sel selector.Selector, source string) ([]candidate, error) {
	ranges, err := anchor.Find(source, sel.Anchor)
	if err != nil {
		return nil, err
	}

	out := make([]candidate, 0, len(ranges))
	for _, r := range ranges {
		start, end := r.Start, r.End
		out = append(out, candidate{
			pos:         Position{StartByte: start, EndByte: &end},
			description: fmt.Sprintf("replace exact match %q", sel.Anchor),
		})
	}
	return out, nil
}

func findRangeCandidates(sel selector.Selector, source string) ([]candidate, error) {
	fromRanges, err := anchor.Find(source, sel.Anchor)
	if err != nil {
		return nil, err
	}
	toRanges, err := anchor.Find(source, *sel.End)
	if err != nil {
		return nil, err
	}

	var out []candidate
	for _, from := range fromRanges {
		for _, to := range toRanges {
			if to.Start >= from.End {
				start, end := from.Start, to.End
				out = append(out, candidate{
					pos:         Position{StartByte: start, EndByte: &end},
					description: fmt.Sprintf("replace range from %q to %q", sel.Anchor, *sel.End),
				})
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no valid range found from %q to %q", sel.Anchor, *sel.End)
	}
	return out, nil
}

func findNodeCandidates(sel selector.Selector, source string, tree *sitter.Tree) ([]candidate, error) {
	ranges, err := anchor.Find(source, sel.Anchor)
	if err != nil {
		return nil, err
	}

	out := make([]candidate, 0, len(ranges))
	seen := map[[2]int]bool{}
	for _, r := range ranges {
		node := enclosingNode(tree, r.Start, r.End)
		if node == nil {
			continue
		}
		start, end := int(node.StartByte()), int(node.EndByte())
		key := [2]int{start, end}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, candidate{
			pos:         Position{StartByte: start, EndByte: &end},
			description: fmt.Sprintf("replace node enclosing %q", sel.Anchor),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("anchor %q matched, but no enclosing node was found", sel.Anchor)
	}
	return out, nil
}

// enclosingNode returns the smallest named node spanning [start, end),
// falling back to the smallest node of any kind.
func enclosingNode(tree *sitter.Tree, start, end int) *sitter.Node {
	if tree == nil {
		return nil
	}
	root := tree.RootNode()
	if n := root.NamedDescendantForByteRange(uint32(start), uint32(end)); n != nil {
		return n
	}
	return root.DescendantForByteRange(uint32(start), uint32(end))
}

func contextAround(source string, pos, radius int) string {
	start := pos - radius
	if start < 0 {
		start = 0
	}
	end := pos + radius
	if end > len(source) {
		end = len(source)
	}
	snippet := source[start:end]
	snippet = strings.ReplaceAll(snippet, "\n", "\\n")
	snippet = strings.ReplaceAll(snippet, "\t", "\\t")
	return snippet
}

func formatMultipleMatches(candidates []candidate, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Found %d possible matches. Please be more specific:\n\n", len(candidates))

	for i, c := range candidates {
		preview := preview(c, source)
		fmt.Fprintf(&b, "%d. %s: %s\n", i+1, c.description, preview)
	}

	b.WriteString("\nSuggestion: add more context to your anchor text to uniquely identify the target.")
	return b.String()
}

func preview(c candidate, source string) string {
	if c.pos.IsInsert() {
		return contextAround(source, c.pos.StartByte, 50)
	}
	text := source[c.pos.StartByte:*c.pos.EndByte]
	if len(text) > 100 {
		text = text[:97] + "..."
	}
	return strings.ReplaceAll(text, "\n", "\\n")
}
