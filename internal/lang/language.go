// Package lang catalogs the languages this editor understands: for each,
// a tree-sitter grammar, a formatter, an error collector, and an optional
// structural validation query, per spec §3 and §4.2.
package lang

import (
	"context"
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
)

// Name identifies one of the registry's supported languages.
type Name string

const (
	Go     Name = "go"
	Rust   Name = "rust"
	Python Name = "python"
	JSON   Name = "json"
	TOML   Name = "toml"
)

// Language bundles everything the edit pipeline needs for one grammar.
type Language struct {
	Name Name

	// Extensions lists the file extensions (without the leading dot) this
	// language claims, in detection-priority order.
	Extensions []string

	Sitter *sitter.Language

	Formatter Formatter

	// ValidationQuery is a tree-sitter S-expression query whose matches
	// denote structurally invalid placements; empty means no structural
	// checks for this language, per spec §9's resolved open question.
	ValidationQuery string

	// ValidationMessages maps each @diagnostic capture name produced by
	// ValidationQuery to the human-readable message reported when it
	// matches.
	ValidationMessages map[string]string
}

// NewParser returns a tree-sitter parser configured for this language. A
// fresh parser is cheap and not safe for concurrent reuse, so the pipeline
// creates one per parse rather than sharing.
func (l *Language) NewParser() *sitter.Parser {
	p := sitter.NewParser()
	p.SetLanguage(l.Sitter)
	return p
}

// Parse parses source, optionally reusing oldTree for incremental reparse
// after tree.Edit has been called on it.
func (l *Language) Parse(ctx context.Context, source []byte, oldTree *sitter.Tree) (*sitter.Tree, error) {
	tree, err := l.NewParser().ParseCtx(ctx, oldTree, source)
	if err != nil {
		return nil, fmt.Errorf("parsing as %s: %w", l.Name, err)
	}
	if tree == nil {
		return nil, fmt.Errorf("parsing as %s produced no tree", l.Name)
	}
	return tree, nil
}

// CollectErrors returns the sorted, deduplicated 0-indexed line numbers of
// every ERROR or missing node in tree.
func (l *Language) CollectErrors(tree *sitter.Tree, source []byte) []int {
	lines := map[int]struct{}{}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if n.IsMissing() || n.Type() == "ERROR" {
			lines[int(n.StartPoint().Row)] = struct{}{}
		}
		childCount := int(n.ChildCount())
		for i := 0; i < childCount; i++ {
			walk(n.Child(i))
		}
	}
	walk(tree.RootNode())

	out := make([]int, 0, len(lines))
	for line := range lines {
		out = append(out, line)
	}
	sort.Ints(out)
	return out
}

// Dump renders tree as an indented, named-node-only outline with each
// node's kind and byte range, grounded on ast_explorer.rs's node
// inspection (byte_range, kind) folded into a flat textual form suitable
// for returning over the wire alongside a file's contents.
func (l *Language) Dump(tree *sitter.Tree, source []byte) string {
	var b []byte
	var walk func(n *sitter.Node, depth int)
	walk = func(n *sitter.Node, depth int) {
		if n == nil || !n.IsNamed() {
			return
		}
		for i := 0; i < depth; i++ {
			b = append(b, ' ', ' ')
		}
		b = append(b, fmt.Sprintf("%s [%d, %d)", n.Type(), n.StartByte(), n.EndByte())...)
		b = append(b, '\n')
		childCount := int(n.NamedChildCount())
		for i := 0; i < childCount; i++ {
			walk(n.NamedChild(i), depth+1)
		}
	}
	walk(tree.RootNode(), 0)
	return string(b)
}

// Documentation lists the named node kinds this language's grammar exposes,
// for use as ancestor/anchor targeting hints in selectors (spec §4.2).
func (l *Language) Documentation() string {
	count := l.Sitter.SymbolCount()
	kinds := make([]string, 0, count)
	seen := map[string]struct{}{}
	for i := uint32(0); i < count; i++ {
		sym := sitter.Symbol(i)
		if l.Sitter.SymbolType(sym) != sitter.SymbolTypeNamed {
			continue
		}
		name := l.Sitter.SymbolName(sym)
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		kinds = append(kinds, name)
	}
	sort.Strings(kinds)

	out := fmt.Sprintf("Named node kinds available in %s selectors:\n", l.Name)
	for _, kind := range kinds {
		out += "  - " + kind + "\n"
	}
	return out
}
