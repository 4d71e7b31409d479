package lang

import (
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// typescriptLanguage is a supplemental registration beyond the spec's core
// five languages, grounded on the teacher's own use of the typescript
// sub-binding in coding/tree_sitter.
func typescriptLanguage() *Language {
	return &Language{
		Name:       "typescript",
		Extensions: []string{"ts"},
		Sitter:     typescript.GetLanguage(),
		Formatter:  ShellFormatter{Command: "prettier", Args: []string{"--parser", "typescript"}},
	}
}
