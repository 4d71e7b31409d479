package lang

import (
	"github.com/smacker/go-tree-sitter/javascript"
)

// javascriptLanguage is a supplemental registration beyond the spec's core
// five languages, exercising the same tree-sitter sub-binding pattern the
// teacher uses for its own JS/TS tooling.
func javascriptLanguage() *Language {
	return &Language{
		Name:       "javascript",
		Extensions: []string{"js", "mjs", "cjs"},
		Sitter:     javascript.GetLanguage(),
		Formatter:  ShellFormatter{Command: "prettier", Args: []string{"--parser", "babel"}},
	}
}
